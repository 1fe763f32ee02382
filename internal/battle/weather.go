package battle

import (
	"math"
	"strings"
)

// Condition is the small fixed set of weather tags a raw description maps to.
type Condition string

const (
	ClearDay     Condition = "clear-day"
	ClearNight   Condition = "clear-night"
	Rain         Condition = "rain"
	Snow         Condition = "snow"
	Thunderstorm Condition = "thunderstorm"
)

// WeatherSnapshot is computed once at battle init and frozen for the whole
// battle. Weather never changes mid-battle.
type WeatherSnapshot struct {
	Condition       Condition        `json:"condition"`
	TypeMultipliers map[Type]float64 `json:"type_multipliers"`
	TimeBonus       float64          `json:"time_bonus"`
}

// conditionEffects is the static per-condition stat modulation table.
var conditionEffects = map[Condition]struct {
	mults map[Type]float64
	bonus float64
}{
	ClearDay: {
		mults: map[Type]float64{TypeFire: 1.1, TypeGrass: 1.1},
		bonus: 1.05,
	},
	ClearNight: {
		mults: map[Type]float64{TypeGhost: 1.15, TypePsychic: 1.15},
		bonus: 0.95,
	},
	Rain: {
		mults: map[Type]float64{TypeWater: 1.2, TypeFire: 0.8},
		bonus: 1.0,
	},
	Snow: {
		mults: map[Type]float64{TypeIce: 1.25, TypeGrass: 0.9, TypeWater: 0.9},
		bonus: 1.0,
	},
	Thunderstorm: {
		mults: map[Type]float64{TypeElectric: 1.3, TypeWater: 1.1, TypeFire: 0.7},
		bonus: 1.0,
	},
}

// nightHour reports whether the hour counts as night.
func nightHour(hour int) bool { return hour < 6 || hour > 18 }

// ConditionFromDescription maps a raw weather description and hour-of-day to
// a condition tag. Matching is by keyword substring; storm beats rain beats
// snow, and anything unrecognized falls back to clear.
func ConditionFromDescription(desc string, hour int) Condition {
	d := strings.ToLower(desc)
	switch {
	case strings.Contains(d, "storm") || strings.Contains(d, "thunder"):
		return Thunderstorm
	case strings.Contains(d, "rain") || strings.Contains(d, "drizzle"):
		return Rain
	case strings.Contains(d, "snow"):
		return Snow
	default:
		if nightHour(hour) {
			return ClearNight
		}
		return ClearDay
	}
}

// SnapshotFor builds the frozen weather snapshot for a condition tag.
func SnapshotFor(cond Condition) WeatherSnapshot {
	eff, ok := conditionEffects[cond]
	if !ok {
		eff = conditionEffects[ClearDay]
		cond = ClearDay
	}
	mults := make(map[Type]float64, len(eff.mults))
	for t, m := range eff.mults {
		mults[t] = m
	}
	return WeatherSnapshot{Condition: cond, TypeMultipliers: mults, TimeBonus: eff.bonus}
}

// ClearDaySnapshot is the fallback used when the weather source is
// unavailable. Environmental modulation is a soft enhancement; battle init
// never fails on weather.
func ClearDaySnapshot() WeatherSnapshot { return SnapshotFor(ClearDay) }

// Multiplier returns the snapshot's multiplier for a type (1.0 if unlisted).
func (w WeatherSnapshot) Multiplier(t Type) float64 {
	if m, ok := w.TypeMultipliers[t]; ok {
		return m
	}
	return 1.0
}

// EffectiveStats are a pokemon's base stats after weather and time-of-day
// modulation.
type EffectiveStats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

func scaleStat(base int, mult float64, floor int) int {
	v := int(math.Round(float64(base) * mult))
	if v < floor {
		v = floor
	}
	return v
}

// CalculateStats applies the snapshot's type multiplier and time bonus to a
// pokemon's combat stats, rounding to nearest. Stats never go below 1.
func CalculateStats(p *BattlePokemon, w WeatherSnapshot) EffectiveStats {
	mult := w.Multiplier(p.Base.Type) * w.TimeBonus
	stats := EffectiveStats{
		Attack:  scaleStat(p.Base.Attack, mult, 1),
		Defense: scaleStat(p.Base.Defense, mult, 1),
		Speed:   scaleStat(p.Base.Speed, mult, 1),
	}
	if p.Status == StatusParalyzed {
		stats.Speed = scaleStat(stats.Speed, 0.5, 1)
	}
	return stats
}
