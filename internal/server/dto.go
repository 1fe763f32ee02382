package server

import (
	"time"

	"github.com/pefman/poke-duel/internal/battle"
)

// MoveView is a move as shown to the caller.
type MoveView struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Power    int    `json:"power"`
	Accuracy int    `json:"accuracy"`
	PP       int    `json:"pp"`
	MaxPP    int    `json:"max_pp"`
}

// PokemonView is the externally visible state of one battle pokemon.
type PokemonView struct {
	Name    string     `json:"name"`
	Type    string     `json:"type"`
	HP      int        `json:"hp"`
	MaxHP   int        `json:"max_hp"`
	Status  string     `json:"status"`
	Fainted bool       `json:"fainted"`
	Moves   []MoveView `json:"moves"`
}

// SideView is one roster with its active slot.
type SideView struct {
	Active  int           `json:"active"`
	Pokemon []PokemonView `json:"pokemon"`
}

// HackView is the caller-facing challenge: payload and scheme, never the
// answer.
type HackView struct {
	ID            string  `json:"id"`
	Payload       string  `json:"payload"`
	Scheme        string  `json:"scheme"`
	Difficulty    string  `json:"difficulty"`
	SecondsLeft   float64 `json:"seconds_left"`
	WrongAttempts int     `json:"wrong_attempts"`
}

// Snapshot is the externally representable battle state returned by every
// operation.
type Snapshot struct {
	BattleID  string            `json:"battle_id"`
	Status    string            `json:"status"`
	State     string            `json:"state"`
	NextActor string            `json:"next_actor,omitempty"`
	Turn      int               `json:"turn"`
	Weather   string            `json:"weather"`
	TimeBonus float64           `json:"time_bonus"`
	Player    SideView          `json:"player"`
	Enemy     SideView          `json:"enemy"`
	Hack      *HackView         `json:"hack,omitempty"`
	Log       []battle.LogEntry `json:"log"`
	Winner    string            `json:"winner,omitempty"`
}

func sideView(t *battle.TeamState) SideView {
	v := SideView{Active: t.Active, Pokemon: make([]PokemonView, len(t.Pokemon))}
	for i, p := range t.Pokemon {
		moves := make([]MoveView, len(p.Moves))
		for j, m := range p.Moves {
			moves[j] = MoveView{
				Name: m.Name, Type: string(m.Type),
				Power: m.Power, Accuracy: m.Accuracy,
				PP: m.PP, MaxPP: m.MaxPP,
			}
		}
		v.Pokemon[i] = PokemonView{
			Name:    p.Base.Name,
			Type:    string(p.Base.Type),
			HP:      p.HP,
			MaxHP:   p.Base.MaxHP,
			Status:  string(p.Status),
			Fainted: p.Fainted(),
			Moves:   moves,
		}
	}
	return v
}

// BuildSnapshot projects a session into its caller-facing shape.
func BuildSnapshot(s *battle.Session, now time.Time) Snapshot {
	snap := Snapshot{
		BattleID:  s.ID,
		Status:    string(s.Status),
		State:     string(s.State),
		NextActor: string(s.NextActor),
		Turn:      s.Turn,
		Weather:   string(s.Weather.Condition),
		TimeBonus: s.Weather.TimeBonus,
		Player:    sideView(s.Player),
		Enemy:     sideView(s.Enemy),
		Log:       s.Log,
		Winner:    string(s.Winner),
	}
	if s.Hack != nil {
		snap.Hack = &HackView{
			ID:            s.Hack.ID,
			Payload:       s.Hack.Payload,
			Scheme:        string(s.Hack.Scheme),
			Difficulty:    string(s.Hack.Difficulty),
			SecondsLeft:   s.Hack.Remaining(now).Seconds(),
			WrongAttempts: s.HackWrong,
		}
	}
	return snap
}
