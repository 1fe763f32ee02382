// Package session provides the concurrency-safe keyed store for active
// battles. Each battle gets its own lock so unrelated battles never block
// each other; reads observe atomically published snapshots.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/pefman/poke-duel/internal/battle"
)

// Stable machine-readable error codes surfaced to the request layer.
const (
	CodeNotFound  = "NOT_FOUND"
	CodeForbidden = "FORBIDDEN"
)

type entry struct {
	// mu serializes mutations for this battle only.
	mu sync.Mutex
	// state holds the published snapshot; swapped whole after a mutation so
	// readers never see a partially-applied one.
	state atomic.Pointer[battle.Session]
}

// Store maps battle ids to sessions with per-key mutual exclusion.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	idleTimeout time.Duration
	retention   time.Duration
	now         func() time.Time
}

// NewStore builds a store. Finished sessions are reclaimed after retention,
// abandoned ones after idleTimeout; both are enforced by Sweep.
func NewStore(idleTimeout, retention time.Duration) *Store {
	return &Store{
		entries:     make(map[string]*entry),
		idleTimeout: idleTimeout,
		retention:   retention,
		now:         time.Now,
	}
}

// Put registers a freshly initialized session.
func (s *Store) Put(sess *battle.Session) {
	e := &entry{}
	e.state.Store(sess)
	s.mu.Lock()
	s.entries[sess.ID] = e
	s.mu.Unlock()
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, oops.Code(CodeNotFound).Errorf("battle %s not found", id)
	}
	return e, nil
}

// Get returns the current published snapshot. Safe to call concurrently with
// any mutation; never blocks behind one.
func (s *Store) Get(id string) (*battle.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.state.Load(), nil
}

// GetOwned is Get plus an ownership check.
func (s *Store) GetOwned(id, owner string) (*battle.Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Owner != owner {
		return nil, oops.Code(CodeForbidden).Errorf("battle %s does not belong to caller", id)
	}
	return sess, nil
}

// Mutate applies fn to a private clone of the session under the battle's own
// lock, then publishes the clone in one atomic swap. fn errors discard the
// clone, so a failed operation never leaves partial state behind. The updated
// snapshot is returned alongside fn's error: a mutation that both changed
// state and failed (e.g. lazy hack expiry followed by a conflict) still
// publishes.
func (s *Store) Mutate(id, owner string, fn func(*battle.Session) error) (*battle.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.state.Load()
	if owner != "" && cur.Owner != owner {
		return nil, oops.Code(CodeForbidden).Errorf("battle %s does not belong to caller", id)
	}

	next := cur.Clone()
	fnErr := fn(next)
	if fnErr != nil && next.UpdatedAt.Equal(cur.UpdatedAt) && next.Status == cur.Status {
		// Pure rejection: nothing to publish.
		return cur, fnErr
	}
	e.state.Store(next)
	return next, fnErr
}

// Sweep evicts finished sessions past retention and idle sessions past the
// abandoned-battle timeout. Returns the number removed.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		sess := e.state.Load()
		age := now.Sub(sess.UpdatedAt)
		expired := (sess.Status == battle.SessionFinished && age > s.retention) ||
			(sess.Status == battle.SessionActive && age > s.idleTimeout)
		if expired {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// RunSweeper sweeps on the given interval until stop is closed.
func (s *Store) RunSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-stop:
			return
		}
	}
}
