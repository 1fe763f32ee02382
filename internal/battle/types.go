package battle

import (
	"math/rand"
	"time"
)

// Type is one of the fixed elemental types. The set is closed; the chart in
// typechart.go must cover every ordered pair.
type Type string

const (
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeElectric Type = "electric"
	TypeGrass    Type = "grass"
	TypeIce      Type = "ice"
	TypeFighting Type = "fighting"
	TypePoison   Type = "poison"
	TypeGround   Type = "ground"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeBug      Type = "bug"
	TypeRock     Type = "rock"
	TypeGhost    Type = "ghost"
	TypeDragon   Type = "dragon"
)

// AllTypes lists the closed type set in chart order.
var AllTypes = []Type{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon,
}

// Status is a pokemon's condition. A pokemon holds at most one; the first
// inflicted wins and later attempts are ignored.
type Status string

const (
	StatusNone      Status = "normal"
	StatusPoisoned  Status = "poisoned"
	StatusParalyzed Status = "paralyzed"
	StatusBurned    Status = "burned"
	StatusFrozen    Status = "frozen"
	StatusAsleep    Status = "asleep"
)

// Side identifies which roster an action belongs to.
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Move is a roster move profile. Power 0..N, Accuracy 0..100.
type Move struct {
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	Power    int    `json:"power"`
	Accuracy int    `json:"accuracy"`
	MaxPP    int    `json:"max_pp"`
}

// MoveState is a move plus its remaining uses for one battle.
type MoveState struct {
	Move
	PP int `json:"pp"`
}

// BasePokemon captures the minimal roster stats needed for resolution.
type BasePokemon struct {
	Name    string `json:"name"`
	Type    Type   `json:"type"`
	MaxHP   int    `json:"max_hp"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Speed   int    `json:"speed"`
	Moves   []Move `json:"moves"`
}

// BattlePokemon is the per-battle mutable copy of a roster pokemon. The base
// values and move set are frozen at init so roster edits cannot touch an
// in-progress battle.
type BattlePokemon struct {
	Base       BasePokemon `json:"base"`
	HP         int         `json:"hp"`
	Status     Status      `json:"status"`
	SleepTurns int         `json:"sleep_turns,omitempty"`
	Moves      []MoveState `json:"moves"`
}

func newBattlePokemon(base BasePokemon) *BattlePokemon {
	moves := make([]MoveState, len(base.Moves))
	for i, m := range base.Moves {
		moves[i] = MoveState{Move: m, PP: m.MaxPP}
	}
	base.Moves = append([]Move(nil), base.Moves...)
	return &BattlePokemon{Base: base, HP: base.MaxHP, Status: StatusNone, Moves: moves}
}

// Fainted reports whether the pokemon is out of the battle.
func (p *BattlePokemon) Fainted() bool { return p.HP <= 0 }

func (p *BattlePokemon) clone() *BattlePokemon {
	cp := *p
	cp.Moves = append([]MoveState(nil), p.Moves...)
	cp.Base.Moves = append([]Move(nil), p.Base.Moves...)
	return &cp
}

// TeamState is one side's roster during a battle. Active points at the
// pokemon currently fighting; fainting advances it to the next healthy slot.
type TeamState struct {
	Side    Side             `json:"side"`
	Pokemon []*BattlePokemon `json:"pokemon"`
	Active  int              `json:"active"`
}

func newTeamState(side Side, roster []BasePokemon) *TeamState {
	team := &TeamState{Side: side, Pokemon: make([]*BattlePokemon, len(roster))}
	for i, base := range roster {
		team.Pokemon[i] = newBattlePokemon(base)
	}
	return team
}

// ActivePokemon returns the pokemon currently fighting for this side.
func (t *TeamState) ActivePokemon() *BattlePokemon { return t.Pokemon[t.Active] }

// AllFainted reports whether the side has lost every pokemon.
func (t *TeamState) AllFainted() bool {
	for _, p := range t.Pokemon {
		if !p.Fainted() {
			return false
		}
	}
	return true
}

// advance moves Active to the next healthy pokemon. Returns false when none
// remain.
func (t *TeamState) advance() bool {
	for i, p := range t.Pokemon {
		if !p.Fainted() {
			t.Active = i
			return true
		}
	}
	return false
}

func (t *TeamState) clone() *TeamState {
	cp := &TeamState{Side: t.Side, Active: t.Active, Pokemon: make([]*BattlePokemon, len(t.Pokemon))}
	for i, p := range t.Pokemon {
		cp.Pokemon[i] = p.clone()
	}
	return cp
}

// SessionStatus is the battle lifecycle tag.
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionFinished SessionStatus = "finished"
)

// State is the state-machine position within an active session.
type State string

const (
	StateAwaitingMove State = "awaiting-move"
	StateHackPending  State = "hack-pending"
	StateFinished     State = "finished"
)

// LogEntry is one turn-result record in the append-only battle log.
type LogEntry struct {
	Turn     int       `json:"turn"`
	Actor    Side      `json:"actor,omitempty"`
	Pokemon  string    `json:"pokemon,omitempty"`
	Move     string    `json:"move,omitempty"`
	Damage   int       `json:"damage,omitempty"`
	Critical bool      `json:"critical,omitempty"`
	Missed   bool      `json:"missed,omitempty"`
	Fainted  bool      `json:"fainted,omitempty"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}

// Session is the full mutable state of one battle. All mutation goes through
// the Machine; readers only ever see published snapshots.
type Session struct {
	ID        string          `json:"id"`
	Owner     string          `json:"owner"`
	Player    *TeamState      `json:"player"`
	Enemy     *TeamState      `json:"enemy"`
	Turn      int             `json:"turn"`
	Status    SessionStatus   `json:"status"`
	State     State           `json:"state"`
	NextActor Side            `json:"next_actor,omitempty"`
	Weather   WeatherSnapshot `json:"weather"`
	Hack      *HackChallenge  `json:"hack,omitempty"`
	HackWrong int             `json:"hack_wrong,omitempty"`
	Log       []LogEntry      `json:"log"`
	Winner    Side            `json:"winner,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// rng drives every roll for this battle. It is shared across clones and
	// only touched by serialized mutations, never by snapshot readers.
	rng *rand.Rand
}

// Clone deep-copies the session state. The rng pointer is shared: mutations
// on a battle are serialized by the store, and published snapshots never
// roll dice.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Player = s.Player.clone()
	cp.Enemy = s.Enemy.clone()
	cp.Log = append([]LogEntry(nil), s.Log...)
	if s.Hack != nil {
		h := *s.Hack
		cp.Hack = &h
	}
	return &cp
}

// RNG exposes the battle's random source, for enemy move selection and tests.
func (s *Session) RNG() *rand.Rand { return s.rng }

// Team returns the roster for the given side.
func (s *Session) Team(side Side) *TeamState {
	if side == SidePlayer {
		return s.Player
	}
	return s.Enemy
}

func (s *Session) appendLog(e LogEntry) {
	e.Turn = s.Turn
	e.At = s.UpdatedAt
	s.Log = append(s.Log, e)
}
