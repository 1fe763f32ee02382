package server

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	BattlesStarted  prometheus.Counter
	BattlesFinished *prometheus.CounterVec
	HacksIssued     prometheus.Counter
	HacksSolved     prometheus.Counter
	HacksExpired    prometheus.Counter
}

// NewMetrics creates and registers the battle metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BattlesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokeduel_battles_started_total",
			Help: "Total number of battles initialized",
		}),
		BattlesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pokeduel_battles_finished_total",
			Help: "Total number of battles finished by winning side",
		}, []string{"winner"}),
		HacksIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokeduel_hack_challenges_issued_total",
			Help: "Total number of hack challenges attached to battles",
		}),
		HacksSolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokeduel_hack_challenges_solved_total",
			Help: "Total number of hack challenges solved",
		}),
		HacksExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokeduel_hack_challenges_expired_total",
			Help: "Total number of hack challenges that expired",
		}),
	}
	reg.MustRegister(m.BattlesStarted, m.BattlesFinished, m.HacksIssued, m.HacksSolved, m.HacksExpired)
	return m
}
