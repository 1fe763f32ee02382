package battle

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Stable machine-readable error codes surfaced to the request layer.
const (
	CodeValidation = "VALIDATION"
	CodeConflict   = "CONFLICT"
)

// Config holds the tunable battle parameters. The hack trigger policy is
// deliberately configuration, not contract: both a fixed turn interval and a
// per-turn probability are supported, and the interval wins when both apply.
type Config struct {
	HackChanceInit float64
	HackChanceTurn float64
	HackEveryTurns int
	HackMaxWrong   int
}

// DefaultConfig is the trigger policy used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		HackChanceInit: 0.10,
		HackChanceTurn: 0.15,
		HackEveryTurns: 5,
		HackMaxWrong:   3,
	}
}

// Machine sequences turns and owns every session mutation. It is stateless
// across sessions; callers serialize mutations per battle id.
type Machine struct {
	cfg Config

	// Now is the wall clock, swappable in tests.
	Now func() time.Time
}

// NewMachine builds a machine with the given trigger policy.
func NewMachine(cfg Config) *Machine {
	if cfg.HackMaxWrong <= 0 {
		cfg.HackMaxWrong = 3
	}
	return &Machine{cfg: cfg, Now: time.Now}
}

var hackDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// InitBattle validates both rosters, value-copies them into battle state and
// returns a fresh active session. The weather snapshot is frozen for the
// session's lifetime.
func (m *Machine) InitBattle(owner string, playerRoster, enemyRoster []BasePokemon, weather WeatherSnapshot, rng *rand.Rand) (*Session, error) {
	if len(playerRoster) == 0 || len(enemyRoster) == 0 {
		return nil, oops.Code(CodeValidation).Errorf("both teams must have at least one pokemon")
	}
	for _, roster := range [][]BasePokemon{playerRoster, enemyRoster} {
		for _, p := range roster {
			if len(p.Moves) == 0 {
				return nil, oops.Code(CodeValidation).Errorf("pokemon %q has no moves", p.Name)
			}
			if p.MaxHP <= 0 {
				return nil, oops.Code(CodeValidation).Errorf("pokemon %q has no hit points", p.Name)
			}
		}
	}

	now := m.Now()
	s := &Session{
		ID:        ulid.Make().String(),
		Owner:     owner,
		Player:    newTeamState(SidePlayer, playerRoster),
		Enemy:     newTeamState(SideEnemy, enemyRoster),
		Turn:      1,
		Status:    SessionActive,
		State:     StateAwaitingMove,
		NextActor: SidePlayer,
		Weather:   weather,
		CreatedAt: now,
		UpdatedAt: now,
		rng:       rng,
	}
	s.appendLog(LogEntry{Text: fmt.Sprintf("battle started under %s", weather.Condition)})
	if rng.Float64() < m.cfg.HackChanceInit {
		m.attachHack(s)
	}
	return s, nil
}

// SubmitMove resolves one full turn: the player's chosen move and the enemy's
// rng-picked response, in effective-speed order, then end-of-turn status
// damage and the hack trigger policy.
func (m *Machine) SubmitMove(s *Session, moveIndex int) error {
	now := m.Now()
	if m.expireStaleHack(s, now) {
		return oops.Code(CodeConflict).Errorf("battle %s is finished", s.ID)
	}
	if s.Status == SessionFinished {
		return oops.Code(CodeConflict).Errorf("battle %s is finished", s.ID)
	}
	if s.State == StateHackPending {
		return oops.Code(CodeConflict).Errorf("battle %s is paused for a hack challenge", s.ID)
	}

	active := s.Player.ActivePokemon()
	if moveIndex < 0 || moveIndex >= len(active.Moves) {
		return oops.Code(CodeValidation).Errorf("move index %d out of range for %s", moveIndex, active.Base.Name)
	}
	if active.Moves[moveIndex].PP <= 0 {
		return oops.Code(CodeValidation).Errorf("%s has no uses of %s left", active.Base.Name, active.Moves[moveIndex].Name)
	}

	s.UpdatedAt = now

	enemyIndex := pickMove(s.Enemy.ActivePokemon(), s.rng)

	type action struct {
		side  Side
		actor *BattlePokemon
		idx   int
	}
	order := []action{
		{SidePlayer, s.Player.ActivePokemon(), moveIndex},
		{SideEnemy, s.Enemy.ActivePokemon(), enemyIndex},
	}
	playerSpeed := CalculateStats(s.Player.ActivePokemon(), s.Weather).Speed
	enemySpeed := CalculateStats(s.Enemy.ActivePokemon(), s.Weather).Speed
	// Ties go to the player side; never broken by randomness.
	if enemySpeed > playerSpeed {
		order[0], order[1] = order[1], order[0]
	}

	for _, a := range order {
		if s.Status == SessionFinished {
			break
		}
		m.performAction(s, a.side, a.actor, a.idx)
	}

	if s.Status == SessionActive {
		m.applyEndOfTurn(s)
	}
	if s.Status == SessionActive {
		s.Turn++
		m.maybeTriggerHack(s)
	}
	return nil
}

// performAction resolves one side's queued move against the other's active
// pokemon. A queued move belongs to the pokemon that chose it: when the side's
// active slot changed since queueing (the chooser fainted mid-turn), the
// replacement does not act until the next turn.
func (m *Machine) performAction(s *Session, side Side, actor *BattlePokemon, moveIndex int) {
	attacker := s.Team(side).ActivePokemon()
	defender := s.Team(side.Other()).ActivePokemon()
	if attacker != actor || attacker.Fainted() || moveIndex < 0 {
		return
	}

	if ok, note := canAct(attacker, s.rng); !ok {
		s.appendLog(LogEntry{Actor: side, Text: note})
		return
	} else if note != "" {
		s.appendLog(LogEntry{Actor: side, Text: note})
	}

	move := &attacker.Moves[moveIndex]
	move.PP--

	typeMult := Effectiveness(move.Type, defender.Base.Type)
	res := ResolveMove(attacker, defender, move.Move, typeMult, s.Weather, s.rng)

	entry := LogEntry{
		Actor:    side,
		Pokemon:  attacker.Base.Name,
		Move:     move.Name,
		Damage:   res.Amount,
		Critical: res.Critical,
		Missed:   !res.Hit,
	}
	switch {
	case !res.Hit:
		entry.Text = fmt.Sprintf("%s used %s but missed", attacker.Base.Name, move.Name)
	case res.Amount == 0:
		entry.Text = fmt.Sprintf("%s used %s but it had no effect on %s", attacker.Base.Name, move.Name, defender.Base.Name)
	default:
		entry.Text = fmt.Sprintf("%s used %s on %s for %d damage", attacker.Base.Name, move.Name, defender.Base.Name, res.Amount)
		if res.Critical {
			entry.Text += " (critical hit)"
		}
	}

	if res.Hit && res.Amount > 0 {
		defender.HP -= res.Amount
		if defender.HP < 0 {
			defender.HP = 0
		}
		applyStatusOnHit(defender, res.Inflicted, s.rng)
		if res.Inflicted != StatusNone && defender.Status == res.Inflicted {
			entry.Text += fmt.Sprintf("; %s is now %s", defender.Base.Name, res.Inflicted)
		}
	}

	if defender.Fainted() {
		entry.Fainted = true
		entry.Text += fmt.Sprintf("; %s fainted", defender.Base.Name)
	}
	s.appendLog(entry)

	m.checkFaint(s, side.Other())
}

// checkFaint advances the side's active pokemon past a faint, finishing the
// battle when the roster is exhausted. Called after every HP mutation.
func (m *Machine) checkFaint(s *Session, side Side) {
	team := s.Team(side)
	if !team.ActivePokemon().Fainted() {
		return
	}
	if !team.advance() {
		m.finish(s, side.Other(), fmt.Sprintf("all of %s side's pokemon fainted", side))
		return
	}
	s.appendLog(LogEntry{Actor: side, Text: fmt.Sprintf("%s side sent out %s", side, team.ActivePokemon().Base.Name)})
}

func (m *Machine) applyEndOfTurn(s *Session) {
	for _, side := range []Side{SidePlayer, SideEnemy} {
		if s.Status == SessionFinished {
			return
		}
		p := s.Team(side).ActivePokemon()
		if loss := endOfTurnChip(p); loss > 0 {
			s.appendLog(LogEntry{Actor: side, Damage: loss, Text: fmt.Sprintf("%s took %d damage from %s", p.Base.Name, loss, p.Status)})
			m.checkFaint(s, side)
		}
	}
}

// SubmitHackAnswer validates an answer against the pending challenge. Wrong
// answers leave the challenge open until the configured cap; expiry or the
// cap forfeit the battle to the enemy side. Solving never consumes a turn.
func (m *Machine) SubmitHackAnswer(s *Session, answer string) (HackOutcome, error) {
	if s.Status == SessionFinished {
		return "", oops.Code(CodeConflict).Errorf("battle %s is finished", s.ID)
	}
	if s.State != StateHackPending || s.Hack == nil {
		return "", oops.Code(CodeConflict).Errorf("battle %s has no hack challenge pending", s.ID)
	}

	now := m.Now()
	s.UpdatedAt = now
	outcome := ValidateChallenge(s.Hack, answer, now)
	switch outcome {
	case HackExpired:
		s.Hack = nil
		s.appendLog(LogEntry{Actor: SidePlayer, Text: "hack challenge expired"})
		m.finish(s, SideEnemy, "hack challenge expired")
	case HackWrong:
		s.HackWrong++
		s.appendLog(LogEntry{Actor: SidePlayer, Text: fmt.Sprintf("wrong hack answer (%d/%d)", s.HackWrong, m.cfg.HackMaxWrong)})
		if s.HackWrong >= m.cfg.HackMaxWrong {
			s.Hack = nil
			m.finish(s, SideEnemy, "too many wrong hack answers")
		}
	case HackSolved:
		s.Hack = nil
		s.HackWrong = 0
		s.State = StateAwaitingMove
		s.appendLog(LogEntry{Actor: SidePlayer, Text: "hack challenge solved, battle resumes"})
	}
	return outcome, nil
}

// Forfeit ends the battle with the other side as winner. Always legal while
// the session is active, including during hack-pending.
func (m *Machine) Forfeit(s *Session, side Side) error {
	if s.Status == SessionFinished {
		return oops.Code(CodeConflict).Errorf("battle %s is finished", s.ID)
	}
	s.UpdatedAt = m.Now()
	s.Hack = nil
	s.appendLog(LogEntry{Actor: side, Text: fmt.Sprintf("%s side forfeited", side)})
	m.finish(s, side.Other(), "forfeit")
	return nil
}

// ExpireStaleHack applies lazy hack expiry against the wall clock. It returns
// true when the session transitioned to finished. There is no background
// timer; any operation touching the session settles an abandoned challenge.
func (m *Machine) ExpireStaleHack(s *Session) bool {
	return m.expireStaleHack(s, m.Now())
}

func (m *Machine) expireStaleHack(s *Session, now time.Time) bool {
	if s.Status != SessionActive || s.State != StateHackPending || s.Hack == nil {
		return false
	}
	if !s.Hack.Expired(now) {
		return false
	}
	s.UpdatedAt = now
	s.Hack = nil
	s.appendLog(LogEntry{Actor: SidePlayer, Text: "hack challenge expired"})
	m.finish(s, SideEnemy, "hack challenge expired")
	return true
}

func (m *Machine) finish(s *Session, winner Side, reason string) {
	s.Status = SessionFinished
	s.State = StateFinished
	s.NextActor = ""
	s.Winner = winner
	s.appendLog(LogEntry{Text: fmt.Sprintf("battle over: %s side wins (%s)", winner, reason)})
}

func (m *Machine) maybeTriggerHack(s *Session) {
	if s.State != StateAwaitingMove {
		return
	}
	interval := m.cfg.HackEveryTurns
	if interval > 0 && s.Turn%interval == 0 {
		m.attachHack(s)
		return
	}
	if s.rng.Float64() < m.cfg.HackChanceTurn {
		m.attachHack(s)
	}
}

func (m *Machine) attachHack(s *Session) {
	difficulty := hackDifficulties[s.rng.Intn(len(hackDifficulties))]
	s.Hack = GenerateChallenge(difficulty, s.rng, m.Now())
	s.HackWrong = 0
	s.State = StateHackPending
	s.appendLog(LogEntry{Text: fmt.Sprintf("hack challenge issued (%s, %s): decode %q", difficulty, s.Hack.Scheme, s.Hack.Payload)})
}

// pickMove selects a usable move index for the given pokemon with the battle
// rng, or -1 when nothing has uses left.
func pickMove(p *BattlePokemon, rng *rand.Rand) int {
	usable := make([]int, 0, len(p.Moves))
	for i, mv := range p.Moves {
		if mv.PP > 0 {
			usable = append(usable, i)
		}
	}
	if len(usable) == 0 {
		return -1
	}
	return usable[rng.Intn(len(usable))]
}
