// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the battle service.
type Config struct {
	Port           string `env:"PORT" envDefault:"8081"`
	WeatherAPIBase string `env:"WEATHER_API_BASE" envDefault:"https://api.openweathermap.org/data/2.5"`
	WeatherAPIKey  string `env:"WEATHER_API_KEY"`
	RosterDBPath   string `env:"ROSTER_DB_PATH" envDefault:"poke-duel.db"`

	// Hack challenge trigger policy; see battle.Config.
	HackChanceInit float64 `env:"HACK_CHANCE_INIT" envDefault:"0.10"`
	HackChanceTurn float64 `env:"HACK_CHANCE_TURN" envDefault:"0.15"`
	HackEveryTurns int     `env:"HACK_EVERY_TURNS" envDefault:"5"`
	HackMaxWrong   int     `env:"HACK_MAX_WRONG" envDefault:"3"`

	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SessionRetention   time.Duration `env:"SESSION_RETENTION" envDefault:"10m"`
	SweepInterval      time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
