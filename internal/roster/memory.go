package roster

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/oops"
)

// MemoryStore is an in-memory Store, used by the CLI and in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	teams map[string]Team
}

// NewMemoryStore builds a store holding the given teams.
func NewMemoryStore(teams []Team) *MemoryStore {
	m := &MemoryStore{teams: make(map[string]Team, len(teams))}
	for _, t := range teams {
		m.teams[t.ID] = t
	}
	return m
}

// GetTeam mirrors the sqlite store's visibility rules.
func (m *MemoryStore) GetTeam(_ context.Context, teamID, ownerID string) (*Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.teams[teamID]
	if !ok {
		return nil, oops.Code(CodeNotFound).Errorf("team %s not found", teamID)
	}
	if t.Owner != "" && t.Owner != ownerID {
		return nil, oops.Code(CodeForbidden).Errorf("team %s does not belong to caller", teamID)
	}
	cp := t
	cp.Pokemon = append([]Pokemon(nil), t.Pokemon...)
	return &cp, nil
}

// ListTeams returns shared teams plus the caller's own, sorted by name.
func (m *MemoryStore) ListTeams(_ context.Context, ownerID string) ([]Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Team
	for _, t := range m.teams {
		if t.Owner == "" || t.Owner == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
