// Package server exposes the battle engine over HTTP and websockets.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"

	"github.com/pefman/poke-duel/internal/battle"
	"github.com/pefman/poke-duel/internal/roster"
	"github.com/pefman/poke-duel/internal/session"
	"github.com/pefman/poke-duel/internal/stats"
	"github.com/pefman/poke-duel/internal/weatherapi"
)

// Server wires the engine, stores and collaborators behind the HTTP surface.
type Server struct {
	log      *slog.Logger
	machine  *battle.Machine
	sessions *session.Store
	rosters  roster.Store
	weather  *weatherapi.Client
	resolver CallerResolver
	metrics  *Metrics
	hub      *Hub

	// now is the wall clock, swappable in tests.
	now func() time.Time
}

// New builds a server. weather may be nil; battles then always run under
// clear-day.
func New(log *slog.Logger, machine *battle.Machine, sessions *session.Store, rosters roster.Store, weather *weatherapi.Client, resolver CallerResolver, metrics *Metrics) *Server {
	return &Server{
		log:      log,
		machine:  machine,
		sessions: sessions,
		rosters:  rosters,
		weather:  weather,
		resolver: resolver,
		metrics:  metrics,
		hub:      NewHub(log),
		now:      time.Now,
	}
}

// Router registers every route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/teams", s.handleTeams).Methods(http.MethodGet)
	r.HandleFunc("/api/battle", s.handleInit).Methods(http.MethodPost)
	r.HandleFunc("/api/battle/{id}", s.handleGetState).Methods(http.MethodGet)
	r.HandleFunc("/api/battle/{id}/move", s.handleMove).Methods(http.MethodPost)
	r.HandleFunc("/api/battle/{id}/hack", s.handleHack).Methods(http.MethodPost)
	r.HandleFunc("/api/battle/{id}/forfeit", s.handleForfeit).Methods(http.MethodPost)
	r.HandleFunc("/api/leaderboard/daily", s.handleLeaderboardDaily).Methods(http.MethodGet)
	r.HandleFunc("/ws/battle/{id}", s.handleWS).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	caller, err := s.resolver.Resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}
	teams, err := s.rosters.ListTeams(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleLeaderboardDaily(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stats.Get())
}

type initRequest struct {
	PlayerTeamID string   `json:"player_team_id"`
	EnemyTeamID  string   `json:"enemy_team_id"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	caller, err := s.resolver.Resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req initRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, oops.Code(battle.CodeValidation).Errorf("malformed request body"))
		return
	}
	if req.PlayerTeamID == "" || req.EnemyTeamID == "" {
		writeError(w, oops.Code(battle.CodeValidation).Errorf("player_team_id and enemy_team_id are required"))
		return
	}

	playerTeam, err := s.rosters.GetTeam(r.Context(), req.PlayerTeamID, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	enemyTeam, err := s.rosters.GetTeam(r.Context(), req.EnemyTeamID, caller)
	if err != nil {
		writeError(w, err)
		return
	}

	snapshot := s.weatherSnapshot(r, req.Lat, req.Lon)
	sess, err := s.machine.InitBattle(caller, playerTeam.BaseRoster(), enemyTeam.BaseRoster(), snapshot, battle.NewRNG())
	if err != nil {
		writeError(w, err)
		return
	}
	s.sessions.Put(sess)
	s.metrics.BattlesStarted.Inc()
	if sess.Hack != nil {
		s.metrics.HacksIssued.Inc()
	}
	s.log.Info("battle started", "battle_id", sess.ID, "owner", caller, "weather", snapshot.Condition)
	writeJSON(w, http.StatusCreated, BuildSnapshot(sess, s.now()))
}

// weatherSnapshot resolves live weather when coordinates are given, falling
// back to clear-day whenever the source is missing or unavailable.
func (s *Server) weatherSnapshot(r *http.Request, lat, lon *float64) battle.WeatherSnapshot {
	hour := s.now().Hour()
	if lat == nil || lon == nil || s.weather == nil {
		return battle.SnapshotFor(battle.ConditionFromDescription("", hour))
	}
	cond, err := s.weather.Condition(r.Context(), *lat, *lon)
	if err != nil {
		s.log.Warn("weather source unavailable, using clear-day", "error", err)
		return battle.ClearDaySnapshot()
	}
	return battle.SnapshotFor(battle.ConditionFromDescription(cond.Description, hour))
}

type moveRequest struct {
	MoveIndex int `json:"move_index"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	caller, err := s.resolver.Resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, oops.Code(battle.CodeValidation).Errorf("malformed request body"))
		return
	}
	id := mux.Vars(r)["id"]

	var prevHack, prevFinished bool
	var newEntries []battle.LogEntry
	next, err := s.sessions.Mutate(id, caller, func(sess *battle.Session) error {
		prevHack = sess.Hack != nil
		prevFinished = sess.Status == battle.SessionFinished
		before := len(sess.Log)
		mvErr := s.machine.SubmitMove(sess, req.MoveIndex)
		newEntries = sess.Log[before:]
		return mvErr
	})
	if next != nil {
		s.afterMutation(next, caller, prevHack, prevFinished, newEntries)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildSnapshot(next, s.now()))
}

type hackRequest struct {
	Answer string `json:"answer"`
}

// hackResponse carries the validation outcome alongside the updated state.
type hackResponse struct {
	Outcome string `json:"outcome"`
	Snapshot
}

func (s *Server) handleHack(w http.ResponseWriter, r *http.Request) {
	caller, err := s.resolver.Resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req hackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, oops.Code(battle.CodeValidation).Errorf("malformed request body"))
		return
	}
	id := mux.Vars(r)["id"]

	var outcome battle.HackOutcome
	var prevFinished bool
	next, err := s.sessions.Mutate(id, caller, func(sess *battle.Session) error {
		prevFinished = sess.Status == battle.SessionFinished
		var hErr error
		outcome, hErr = s.machine.SubmitHackAnswer(sess, req.Answer)
		return hErr
	})
	if next != nil {
		s.afterMutation(next, caller, true, prevFinished, nil)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	switch outcome {
	case battle.HackSolved:
		s.metrics.HacksSolved.Inc()
	case battle.HackExpired:
		s.metrics.HacksExpired.Inc()
	}
	writeJSON(w, http.StatusOK, hackResponse{Outcome: string(outcome), Snapshot: BuildSnapshot(next, s.now())})
}

func (s *Server) handleForfeit(w http.ResponseWriter, r *http.Request) {
	caller, err := s.resolver.Resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id := mux.Vars(r)["id"]

	var prevFinished bool
	next, err := s.sessions.Mutate(id, caller, func(sess *battle.Session) error {
		prevFinished = sess.Status == battle.SessionFinished
		return s.machine.Forfeit(sess, battle.SidePlayer)
	})
	if next != nil {
		s.afterMutation(next, caller, next.Hack != nil, prevFinished, nil)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildSnapshot(next, s.now()))
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	caller, err := s.resolver.Resolve(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.sessions.GetOwned(mux.Vars(r)["id"], caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildSnapshot(sess, s.now()))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.serve(w, r, id, BuildSnapshot(sess, s.now()))
}

// afterMutation handles the cross-cutting consequences of a published
// mutation: metrics, daily records and the spectator broadcast.
func (s *Server) afterMutation(sess *battle.Session, caller string, hadHack, wasFinished bool, newEntries []battle.LogEntry) {
	if !hadHack && sess.Hack != nil {
		s.metrics.HacksIssued.Inc()
	}
	if !wasFinished && sess.Status == battle.SessionFinished {
		s.metrics.BattlesFinished.WithLabelValues(string(sess.Winner)).Inc()
		stats.MaybeFastestWin(stats.FastestWin{User: caller, Turns: sess.Turn, Winner: string(sess.Winner)})
		s.log.Info("battle finished", "battle_id", sess.ID, "winner", sess.Winner, "turns", sess.Turn)
	}
	for _, e := range newEntries {
		if e.Actor == battle.SidePlayer && e.Move != "" && e.Damage > 0 {
			stats.MaybeTopHit(stats.TopHit{User: caller, Pokemon: e.Pokemon, Move: e.Move, Damage: e.Damage, Crit: e.Critical})
		}
	}
	s.hub.Broadcast(sess.ID, BuildSnapshot(sess, s.now()))
}
