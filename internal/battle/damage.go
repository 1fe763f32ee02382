package battle

import (
	"math"
	"math/rand"
)

const (
	critChance = 1.0 / 16.0
	critBonus  = 1.5
	stabBonus  = 1.5
	varianceLo = 0.85
	varianceHi = 1.0
)

// statusTable gives the per-move-type chance of inflicting a condition on the
// defender. A pokemon already affected cannot receive a second status.
var statusTable = map[Type]struct {
	status Status
	chance float64
}{
	TypeElectric: {StatusParalyzed, 0.10},
	TypeFire:     {StatusBurned, 0.10},
	TypePoison:   {StatusPoisoned, 0.20},
	TypeGrass:    {StatusPoisoned, 0.10},
	TypeIce:      {StatusFrozen, 0.10},
	TypePsychic:  {StatusAsleep, 0.10},
}

// DamageResult captures the outcome of one resolved move.
type DamageResult struct {
	Amount         int     `json:"amount"`
	Critical       bool    `json:"critical"`
	Hit            bool    `json:"hit"`
	TypeMultiplier float64 `json:"type_multiplier"`
	STAB           bool    `json:"stab"`
	Inflicted      Status  `json:"inflicted,omitempty"`
}

// ResolveMove runs the full damage pipeline for one move: accuracy, critical,
// base damage with STAB/type/variance, then status infliction. The defender's
// HP is not touched here; the caller applies Amount.
//
// A critical hit uses the defender's base defense, not the weather-modulated
// value.
func ResolveMove(attacker, defender *BattlePokemon, move Move, typeMult float64, weather WeatherSnapshot, rng *rand.Rand) DamageResult {
	res := DamageResult{TypeMultiplier: typeMult}

	// Accuracy: uniform in [0,100); miss is terminal for the action.
	if roll := rng.Float64() * 100; roll >= float64(move.Accuracy) {
		return res
	}
	res.Hit = true

	if typeMult == 0 {
		// Immune: the move connects but does nothing.
		return res
	}

	res.Critical = rng.Float64() < critChance

	atkStats := CalculateStats(attacker, weather)
	defense := CalculateStats(defender, weather).Defense
	if res.Critical {
		defense = defender.Base.Defense
	}
	if defense < 1 {
		defense = 1
	}

	dmg := float64(atkStats.Attack) * float64(move.Power) / (float64(defense) * 2.0)
	if move.Type == attacker.Base.Type {
		res.STAB = true
		dmg *= stabBonus
	}
	dmg *= typeMult
	if res.Critical {
		dmg *= critBonus
	}
	dmg *= varianceLo + rng.Float64()*(varianceHi-varianceLo)

	amount := int(math.Floor(dmg))
	if amount < 1 {
		amount = 1
	}
	res.Amount = amount

	if ent, ok := statusTable[move.Type]; ok && defender.Status == StatusNone {
		if rng.Float64() < ent.chance {
			res.Inflicted = ent.status
		}
	}
	return res
}

// applyStatusOnHit records an inflicted condition on the defender. Sleep
// duration is drawn once, at infliction.
func applyStatusOnHit(defender *BattlePokemon, inflicted Status, rng *rand.Rand) {
	if inflicted == StatusNone || defender.Status != StatusNone {
		return
	}
	defender.Status = inflicted
	if inflicted == StatusAsleep {
		defender.SleepTurns = 1 + rng.Intn(3)
	}
}

// canAct rolls the attacker's condition gate for this turn. Paralysis skips
// 25% of the time, frozen thaws 20% of the time and otherwise skips, asleep
// counts down its drawn duration.
func canAct(p *BattlePokemon, rng *rand.Rand) (bool, string) {
	switch p.Status {
	case StatusParalyzed:
		if rng.Float64() < 0.25 {
			return false, p.Base.Name + " is paralyzed and can't move"
		}
	case StatusFrozen:
		if rng.Float64() < 0.20 {
			p.Status = StatusNone
			return true, p.Base.Name + " thawed out"
		}
		return false, p.Base.Name + " is frozen solid"
	case StatusAsleep:
		if p.SleepTurns > 0 {
			p.SleepTurns--
			return false, p.Base.Name + " is fast asleep"
		}
		p.Status = StatusNone
		return true, p.Base.Name + " woke up"
	}
	return true, ""
}

// endOfTurnChip applies poison/burn damage after both sides act. Returns the
// HP lost (0 for unaffected pokemon). HP never goes below 0.
func endOfTurnChip(p *BattlePokemon) int {
	if p.Fainted() {
		return 0
	}
	var loss int
	switch p.Status {
	case StatusPoisoned:
		loss = p.Base.MaxHP / 8
	case StatusBurned:
		loss = p.Base.MaxHP / 16
	default:
		return 0
	}
	if loss < 1 {
		loss = 1
	}
	p.HP -= loss
	if p.HP < 0 {
		p.HP = 0
	}
	return loss
}
