package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pefman/poke-duel/internal/battle"
)

func storedSession(t *testing.T, owner string) *battle.Session {
	t.Helper()
	roster := []battle.BasePokemon{{
		Name: "Sparky", Type: battle.TypeElectric, MaxHP: 100, Attack: 55, Defense: 40, Speed: 90,
		Moves: []battle.Move{{Name: "Thunder Shock", Type: battle.TypeElectric, Power: 40, Accuracy: 100, MaxPP: 30}},
	}}
	m := battle.NewMachine(battle.Config{HackMaxWrong: 3})
	s, err := m.InitBattle(owner, roster, roster, battle.ClearDaySnapshot(), battle.NewSeededRNG(1))
	require.NoError(t, err)
	return s
}

func TestGetUnknownIsNotFound(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)
	_, err := store.Get("no-such-battle")
	oerr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, oerr.Code())
}

func TestGetOwnedRejectsOtherCaller(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)
	sess := storedSession(t, "alice")
	store.Put(sess)

	got, err := store.GetOwned(sess.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	_, err = store.GetOwned(sess.ID, "bob")
	oerr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, oerr.Code())
}

func TestMutateRejectsOtherCaller(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)
	sess := storedSession(t, "alice")
	store.Put(sess)

	_, err := store.Mutate(sess.ID, "bob", func(s *battle.Session) error {
		t.Fatal("fn must not run for a foreign caller")
		return nil
	})
	oerr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, oerr.Code())
}

func TestMutatePublishesNewSnapshot(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)
	sess := storedSession(t, "alice")
	store.Put(sess)

	before, err := store.Get(sess.ID)
	require.NoError(t, err)

	updated, err := store.Mutate(sess.ID, "alice", func(s *battle.Session) error {
		s.Turn = 7
		s.UpdatedAt = s.UpdatedAt.Add(time.Second)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Turn)

	after, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.Turn)
	assert.Equal(t, 1, before.Turn, "old snapshot stays untouched")
}

func TestMutatePureRejectionKeepsOldSnapshot(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)
	sess := storedSession(t, "alice")
	store.Put(sess)

	boom := errors.New("rejected")
	got, err := store.Mutate(sess.ID, "alice", func(s *battle.Session) error {
		s.Turn = 99 // discarded, timestamps untouched
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, got.Turn)

	after, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Turn)
}

func TestMutateFailedButChangedStillPublishes(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)
	sess := storedSession(t, "alice")
	store.Put(sess)

	boom := errors.New("conflict after expiry")
	got, err := store.Mutate(sess.ID, "alice", func(s *battle.Session) error {
		s.Status = battle.SessionFinished
		s.UpdatedAt = s.UpdatedAt.Add(time.Second)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, battle.SessionFinished, got.Status)

	after, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, battle.SessionFinished, after.Status)
}

func TestMutateSerializesPerBattle(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)
	sess := storedSession(t, "alice")
	store.Put(sess)

	const workers = 16
	const perWorker = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := store.Mutate(sess.ID, "alice", func(s *battle.Session) error {
					s.Turn++
					return nil
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	after, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1+workers*perWorker, after.Turn, "every increment applied exactly once")
}

func TestSweepEvictsFinishedAndIdle(t *testing.T) {
	store := NewStore(30*time.Minute, 10*time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }

	fresh := storedSession(t, "alice")
	fresh.UpdatedAt = base
	store.Put(fresh)

	done := storedSession(t, "alice")
	done.Status = battle.SessionFinished
	done.UpdatedAt = base.Add(-11 * time.Minute)
	store.Put(done)

	idle := storedSession(t, "alice")
	idle.UpdatedAt = base.Add(-31 * time.Minute)
	store.Put(idle)

	assert.Equal(t, 2, store.Sweep())
	assert.Equal(t, 1, store.Len())

	_, err := store.Get(fresh.ID)
	assert.NoError(t, err)
	_, err = store.Get(done.ID)
	assert.Error(t, err)
	_, err = store.Get(idle.ID)
	assert.Error(t, err)
}
