package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pefman/poke-duel/internal/battle"
	"github.com/pefman/poke-duel/internal/config"
	"github.com/pefman/poke-duel/internal/roster"
	"github.com/pefman/poke-duel/internal/server"
	"github.com/pefman/poke-duel/internal/session"
	"github.com/pefman/poke-duel/internal/weatherapi"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	// Unknown types are a configuration bug; refuse to start on a bad chart.
	if err := battle.VerifyTypeChart(); err != nil {
		log.Error("type chart verification failed", "error", err)
		os.Exit(1)
	}

	rosters, err := roster.OpenSQLite(cfg.RosterDBPath)
	if err != nil {
		log.Error("open roster store", "error", err)
		os.Exit(1)
	}
	defer rosters.Close()

	machine := battle.NewMachine(battle.Config{
		HackChanceInit: cfg.HackChanceInit,
		HackChanceTurn: cfg.HackChanceTurn,
		HackEveryTurns: cfg.HackEveryTurns,
		HackMaxWrong:   cfg.HackMaxWrong,
	})
	sessions := session.NewStore(cfg.SessionIdleTimeout, cfg.SessionRetention)
	stop := make(chan struct{})
	defer close(stop)
	go sessions.RunSweeper(cfg.SweepInterval, stop)

	var weather *weatherapi.Client
	if cfg.WeatherAPIBase != "" {
		weather = weatherapi.NewClient(cfg.WeatherAPIBase, cfg.WeatherAPIKey)
	}

	metrics := server.NewMetrics(prometheus.DefaultRegisterer)
	srv := server.New(log, machine, sessions, rosters, weather, server.BearerResolver{}, metrics)

	addr := ":" + cfg.Port
	log.Info("poke-duel starting", "version", buildVersion, "built", buildTime, "addr", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Error("listen", "error", err)
		os.Exit(1)
	}
}
