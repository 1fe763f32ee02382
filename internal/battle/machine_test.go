package battle

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietConfig disables every hack trigger so turn tests stay deterministic.
func quietConfig() Config {
	return Config{HackChanceInit: 0, HackChanceTurn: 0, HackEveryTurns: 0, HackMaxWrong: 3}
}

func testRoster(name string, typ Type, hp, atk, def, spd int) []BasePokemon {
	return []BasePokemon{{
		Name: name, Type: typ, MaxHP: hp, Attack: atk, Defense: def, Speed: spd,
		Moves: []Move{
			{Name: "Tackle", Type: TypeNormal, Power: 40, Accuracy: 100, MaxPP: 35},
			{Name: "Swift", Type: TypeNormal, Power: 60, Accuracy: 100, MaxPP: 20},
		},
	}}
}

func newTestSession(t *testing.T, m *Machine, seed int64) *Session {
	t.Helper()
	s, err := m.InitBattle("tester",
		testRoster("Hitter", TypeNormal, 120, 70, 60, 80),
		testRoster("Tank", TypeNormal, 140, 50, 80, 40),
		ClearDaySnapshot(), NewSeededRNG(seed))
	require.NoError(t, err)
	return s
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	oerr, ok := oops.AsOops(err)
	require.True(t, ok, "expected tagged error, got %v", err)
	code, ok := oerr.Code().(string)
	require.True(t, ok, "error code is not a string: %v", oerr.Code())
	return code
}

func TestInitBattleValidatesTeams(t *testing.T) {
	m := NewMachine(quietConfig())

	_, err := m.InitBattle("u", nil, testRoster("B", TypeNormal, 100, 50, 50, 50), ClearDaySnapshot(), NewSeededRNG(1))
	assert.Equal(t, CodeValidation, errCode(t, err))

	noMoves := []BasePokemon{{Name: "Mute", Type: TypeNormal, MaxHP: 100, Attack: 50, Defense: 50, Speed: 50}}
	_, err = m.InitBattle("u", noMoves, testRoster("B", TypeNormal, 100, 50, 50, 50), ClearDaySnapshot(), NewSeededRNG(1))
	assert.Equal(t, CodeValidation, errCode(t, err))
}

func TestInitBattleCopiesRoster(t *testing.T) {
	m := NewMachine(quietConfig())
	roster := testRoster("Hitter", TypeNormal, 120, 70, 60, 80)
	s, err := m.InitBattle("u", roster, testRoster("Tank", TypeNormal, 140, 50, 80, 40), ClearDaySnapshot(), NewSeededRNG(1))
	require.NoError(t, err)

	// Mutating the source roster must not reach the in-progress battle.
	roster[0].Moves[0].Power = 999
	assert.Equal(t, 40, s.Player.ActivePokemon().Moves[0].Power)
}

func TestSubmitMoveRunsATurn(t *testing.T) {
	m := NewMachine(quietConfig())
	s := newTestSession(t, m, 11)

	require.NoError(t, m.SubmitMove(s, 0))
	assert.Equal(t, 2, s.Turn)
	assert.Equal(t, 34, s.Player.ActivePokemon().Moves[0].PP, "move use consumed")
	assert.NotEmpty(t, s.Log)
	// The faster side (player, speed 80) acts first; the tank must have
	// taken damage.
	assert.Less(t, s.Enemy.ActivePokemon().HP, 140)
}

func TestSubmitMoveValidation(t *testing.T) {
	m := NewMachine(quietConfig())
	s := newTestSession(t, m, 2)

	assert.Equal(t, CodeValidation, errCode(t, m.SubmitMove(s, -1)))
	assert.Equal(t, CodeValidation, errCode(t, m.SubmitMove(s, 5)))

	s.Player.ActivePokemon().Moves[0].PP = 0
	assert.Equal(t, CodeValidation, errCode(t, m.SubmitMove(s, 0)))
}

func TestSubmitMoveOnFinishedSessionConflicts(t *testing.T) {
	m := NewMachine(quietConfig())
	s := newTestSession(t, m, 3)
	require.NoError(t, m.Forfeit(s, SidePlayer))

	logLen := len(s.Log)
	err := m.SubmitMove(s, 0)
	assert.Equal(t, CodeConflict, errCode(t, err))
	assert.Equal(t, logLen, len(s.Log), "failed operation must not touch the log")
}

func TestSubmitMoveDuringHackPendingConflicts(t *testing.T) {
	cfg := quietConfig()
	cfg.HackEveryTurns = 1
	m := NewMachine(cfg)
	s := newTestSession(t, m, 4)

	require.NoError(t, m.SubmitMove(s, 0))
	require.Equal(t, StateHackPending, s.State)
	require.NotNil(t, s.Hack)

	err := m.SubmitMove(s, 1)
	assert.Equal(t, CodeConflict, errCode(t, err))
}

func TestHackSolveResumesWithoutConsumingTurn(t *testing.T) {
	cfg := quietConfig()
	cfg.HackEveryTurns = 1
	m := NewMachine(cfg)
	s := newTestSession(t, m, 5)

	require.NoError(t, m.SubmitMove(s, 0))
	require.NotNil(t, s.Hack)
	turn := s.Turn

	answer := answerFor(t, s.Hack)
	outcome, err := m.SubmitHackAnswer(s, "  "+answer+"  ")
	require.NoError(t, err)
	assert.Equal(t, HackSolved, outcome)
	assert.Equal(t, StateAwaitingMove, s.State)
	assert.Nil(t, s.Hack)
	assert.Equal(t, turn, s.Turn)
}

func TestHackAnswerCaseInsensitive(t *testing.T) {
	cfg := quietConfig()
	cfg.HackEveryTurns = 1
	m := NewMachine(cfg)
	s := newTestSession(t, m, 6)
	require.NoError(t, m.SubmitMove(s, 0))
	require.NotNil(t, s.Hack)

	upper := []rune(answerFor(t, s.Hack))
	for i, r := range upper {
		if r >= 'a' && r <= 'z' {
			upper[i] = r - 32
		}
	}
	outcome, err := m.SubmitHackAnswer(s, string(upper))
	require.NoError(t, err)
	assert.Equal(t, HackSolved, outcome)
}

func TestHackWrongAnswersForfeitAtCap(t *testing.T) {
	cfg := quietConfig()
	cfg.HackEveryTurns = 1
	cfg.HackMaxWrong = 2
	m := NewMachine(cfg)
	s := newTestSession(t, m, 7)
	require.NoError(t, m.SubmitMove(s, 0))
	require.NotNil(t, s.Hack)

	outcome, err := m.SubmitHackAnswer(s, "definitely wrong")
	require.NoError(t, err)
	assert.Equal(t, HackWrong, outcome)
	assert.Equal(t, SessionActive, s.Status, "challenge stays open below the cap")

	outcome, err = m.SubmitHackAnswer(s, "still wrong")
	require.NoError(t, err)
	assert.Equal(t, HackWrong, outcome)
	assert.Equal(t, SessionFinished, s.Status)
	assert.Equal(t, SideEnemy, s.Winner)
}

func TestHackExpiryBeatsCorrectAnswer(t *testing.T) {
	cfg := quietConfig()
	cfg.HackEveryTurns = 1
	m := NewMachine(cfg)
	s := newTestSession(t, m, 8)
	require.NoError(t, m.SubmitMove(s, 0))
	require.NotNil(t, s.Hack)

	answer := answerFor(t, s.Hack)
	deadline := s.Hack.ExpiresAt()
	m.Now = func() time.Time { return deadline.Add(time.Second) }

	outcome, err := m.SubmitHackAnswer(s, answer)
	require.NoError(t, err)
	assert.Equal(t, HackExpired, outcome)
	assert.Equal(t, SessionFinished, s.Status)
	assert.Equal(t, SideEnemy, s.Winner)
}

func TestLazyExpiryOnSubmitMove(t *testing.T) {
	cfg := quietConfig()
	cfg.HackEveryTurns = 1
	m := NewMachine(cfg)
	s := newTestSession(t, m, 9)
	require.NoError(t, m.SubmitMove(s, 0))
	require.NotNil(t, s.Hack)

	deadline := s.Hack.ExpiresAt()
	m.Now = func() time.Time { return deadline.Add(time.Minute) }

	err := m.SubmitMove(s, 0)
	assert.Equal(t, CodeConflict, errCode(t, err))
	assert.Equal(t, SessionFinished, s.Status)
	assert.Equal(t, SideEnemy, s.Winner)
}

func TestHackAnswerWithNonePendingConflicts(t *testing.T) {
	m := NewMachine(quietConfig())
	s := newTestSession(t, m, 10)

	_, err := m.SubmitHackAnswer(s, "anything")
	assert.Equal(t, CodeConflict, errCode(t, err))
}

func TestForfeitDuringHackPending(t *testing.T) {
	cfg := quietConfig()
	cfg.HackEveryTurns = 1
	m := NewMachine(cfg)
	s := newTestSession(t, m, 12)
	require.NoError(t, m.SubmitMove(s, 0))
	require.Equal(t, StateHackPending, s.State)

	require.NoError(t, m.Forfeit(s, SidePlayer))
	assert.Equal(t, SessionFinished, s.Status)
	assert.Equal(t, StateFinished, s.State)
	assert.Equal(t, SideEnemy, s.Winner)
	assert.Nil(t, s.Hack)
}

func TestForfeitOnFinishedConflicts(t *testing.T) {
	m := NewMachine(quietConfig())
	s := newTestSession(t, m, 13)
	require.NoError(t, m.Forfeit(s, SideEnemy))
	assert.Equal(t, SidePlayer, s.Winner)

	err := m.Forfeit(s, SidePlayer)
	assert.Equal(t, CodeConflict, errCode(t, err))
}

func TestBattleRunsToKnockout(t *testing.T) {
	m := NewMachine(quietConfig())
	s, err := m.InitBattle("tester",
		testRoster("Crusher", TypeNormal, 200, 200, 120, 90),
		testRoster("Victim", TypeNormal, 60, 10, 10, 10),
		ClearDaySnapshot(), NewSeededRNG(14))
	require.NoError(t, err)

	for i := 0; i < 50 && s.Status == SessionActive; i++ {
		require.NoError(t, m.SubmitMove(s, 0))
	}
	require.Equal(t, SessionFinished, s.Status)
	assert.Equal(t, SidePlayer, s.Winner)
	assert.True(t, s.Enemy.AllFainted())
}

func TestFaintAdvancesToNextPokemon(t *testing.T) {
	m := NewMachine(quietConfig())
	frail := BasePokemon{
		Name: "Frail", Type: TypeNormal, MaxHP: 1, Attack: 10, Defense: 1, Speed: 1,
		Moves: []Move{{Name: "Tackle", Type: TypeNormal, Power: 40, Accuracy: 100, MaxPP: 35}},
	}
	backup := BasePokemon{
		Name: "Backup", Type: TypeNormal, MaxHP: 150, Attack: 50, Defense: 80, Speed: 1,
		Moves: []Move{{Name: "Tackle", Type: TypeNormal, Power: 40, Accuracy: 100, MaxPP: 35}},
	}
	s, err := m.InitBattle("tester",
		testRoster("Hitter", TypeNormal, 120, 90, 60, 80),
		[]BasePokemon{frail, backup},
		ClearDaySnapshot(), NewSeededRNG(15))
	require.NoError(t, err)

	require.NoError(t, m.SubmitMove(s, 0))
	assert.Equal(t, SessionActive, s.Status, "enemy still has a backup")
	assert.Equal(t, 1, s.Enemy.Active)
	assert.Equal(t, "Backup", s.Enemy.ActivePokemon().Base.Name)
}

// A queued move belongs to the pokemon that chose it. When a faster enemy
// faints the lead before it acts, the replacement must not inherit the queued
// index, which may not even exist in its smaller move set.
func TestQueuedMoveDiesWithItsChooser(t *testing.T) {
	m := NewMachine(quietConfig())
	fourMoves := []Move{
		{Name: "Tackle", Type: TypeNormal, Power: 40, Accuracy: 100, MaxPP: 35},
		{Name: "Swift", Type: TypeNormal, Power: 60, Accuracy: 100, MaxPP: 20},
		{Name: "Stomp", Type: TypeNormal, Power: 65, Accuracy: 100, MaxPP: 20},
		{Name: "Slash", Type: TypeNormal, Power: 70, Accuracy: 100, MaxPP: 20},
	}
	lead := BasePokemon{Name: "Lead", Type: TypeNormal, MaxHP: 1, Attack: 40, Defense: 1, Speed: 10, Moves: fourMoves}
	backup := BasePokemon{
		Name: "Backup", Type: TypeNormal, MaxHP: 120, Attack: 50, Defense: 60, Speed: 10,
		Moves: []Move{{Name: "Tackle", Type: TypeNormal, Power: 40, Accuracy: 100, MaxPP: 35}},
	}
	bruiser := []BasePokemon{{
		Name: "Bruiser", Type: TypeNormal, MaxHP: 200, Attack: 300, Defense: 100, Speed: 200,
		Moves: []Move{{Name: "Slam", Type: TypeNormal, Power: 100, Accuracy: 100, MaxPP: 20}},
	}}
	s, err := m.InitBattle("tester", []BasePokemon{lead, backup}, bruiser, ClearDaySnapshot(), NewSeededRNG(21))
	require.NoError(t, err)

	require.NotPanics(t, func() {
		require.NoError(t, m.SubmitMove(s, 3))
	})
	require.Equal(t, 1, s.Player.Active, "backup sent out after the lead fainted")
	sentOut := s.Player.ActivePokemon()
	assert.Equal(t, sentOut.Moves[0].MaxPP, sentOut.Moves[0].PP, "replacement did not act this turn")
	assert.Equal(t, 200, s.Enemy.ActivePokemon().HP, "the fainted chooser's move never landed")
	assert.Equal(t, SessionActive, s.Status)
	assert.Equal(t, 2, s.Turn)
}

func TestNextActorTracksLifecycle(t *testing.T) {
	m := NewMachine(quietConfig())
	s := newTestSession(t, m, 22)
	assert.Equal(t, SidePlayer, s.NextActor)

	require.NoError(t, m.SubmitMove(s, 0))
	assert.Equal(t, SidePlayer, s.NextActor, "both sides resolve per submission; the caller always moves next")

	require.NoError(t, m.Forfeit(s, SidePlayer))
	assert.Equal(t, Side(""), s.NextActor, "no one moves in a finished battle")
}

// answerFor decodes the challenge payload through its declared scheme.
func answerFor(t *testing.T, c *HackChallenge) string {
	t.Helper()
	switch c.Scheme {
	case SchemeReverse:
		return reverseString(c.Payload)
	case SchemeCaesar:
		return caesarEncode(c.Payload, 26-caesarShift)
	case SchemeBase64:
		raw, err := base64.StdEncoding.DecodeString(c.Payload)
		require.NoError(t, err)
		return string(raw)
	}
	t.Fatalf("unknown scheme %q", c.Scheme)
	return ""
}
