// Package roster holds the static team data the battle engine consumes. The
// engine only sees the Store interface; persistence lives behind it.
package roster

import (
	"context"

	"github.com/pefman/poke-duel/internal/battle"
)

// Stable machine-readable error codes surfaced to the request layer.
const (
	CodeNotFound  = "NOT_FOUND"
	CodeForbidden = "FORBIDDEN"
)

// Pokemon is a roster pokemon with base stats and up to four moves.
type Pokemon struct {
	Name    string        `json:"name"`
	Type    battle.Type   `json:"type"`
	MaxHP   int           `json:"max_hp"`
	Attack  int           `json:"attack"`
	Defense int           `json:"defense"`
	Speed   int           `json:"speed"`
	Moves   []battle.Move `json:"moves"`
}

// Team is an ordered roster owned by a user. The empty owner marks a shared
// team anyone may battle with or against (the built-in enemy rosters).
type Team struct {
	ID      string    `json:"id"`
	Owner   string    `json:"owner,omitempty"`
	Name    string    `json:"name"`
	Pokemon []Pokemon `json:"pokemon"`
}

// Store resolves teams for battle init. Implementations return NOT_FOUND for
// unknown ids and FORBIDDEN when the caller does not own a private team.
type Store interface {
	GetTeam(ctx context.Context, teamID, ownerID string) (*Team, error)
	ListTeams(ctx context.Context, ownerID string) ([]Team, error)
}

// BaseRoster converts a team into the value-copied shapes the engine freezes
// at battle init.
func (t *Team) BaseRoster() []battle.BasePokemon {
	out := make([]battle.BasePokemon, len(t.Pokemon))
	for i, p := range t.Pokemon {
		out[i] = battle.BasePokemon{
			Name:    p.Name,
			Type:    p.Type,
			MaxHP:   p.MaxHP,
			Attack:  p.Attack,
			Defense: p.Defense,
			Speed:   p.Speed,
			Moves:   append([]battle.Move(nil), p.Moves...),
		}
	}
	return out
}
