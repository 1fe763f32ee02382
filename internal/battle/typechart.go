package battle

import "fmt"

// Effectiveness multipliers. Immune rows are listed explicitly; anything not
// named in a row is neutral.
const (
	multImmune  = 0.0
	multWeak    = 0.5
	multNeutral = 1.0
	multSuper   = 2.0
)

// typeChart maps attack type -> defense type -> multiplier for non-neutral
// pairs. Derived from the classic gen-1 chart, trimmed to the closed type set.
var typeChart = map[Type]map[Type]float64{
	TypeNormal: {
		TypeRock: multWeak, TypeGhost: multImmune,
	},
	TypeFire: {
		TypeFire: multWeak, TypeWater: multWeak, TypeGrass: multSuper,
		TypeIce: multSuper, TypeBug: multSuper, TypeRock: multWeak, TypeDragon: multWeak,
	},
	TypeWater: {
		TypeFire: multSuper, TypeWater: multWeak, TypeGrass: multWeak,
		TypeGround: multSuper, TypeRock: multSuper, TypeDragon: multWeak,
	},
	TypeElectric: {
		TypeWater: multSuper, TypeElectric: multWeak, TypeGrass: multWeak,
		TypeGround: multImmune, TypeFlying: multSuper, TypeDragon: multWeak,
	},
	TypeGrass: {
		TypeFire: multWeak, TypeWater: multSuper, TypeGrass: multWeak,
		TypePoison: multWeak, TypeGround: multSuper, TypeFlying: multWeak,
		TypeBug: multWeak, TypeRock: multSuper, TypeDragon: multWeak,
	},
	TypeIce: {
		TypeWater: multWeak, TypeGrass: multSuper, TypeIce: multWeak,
		TypeGround: multSuper, TypeFlying: multSuper, TypeDragon: multSuper,
	},
	TypeFighting: {
		TypeNormal: multSuper, TypeIce: multSuper, TypePoison: multWeak,
		TypeFlying: multWeak, TypePsychic: multWeak, TypeBug: multWeak,
		TypeRock: multSuper, TypeGhost: multImmune,
	},
	TypePoison: {
		TypeGrass: multSuper, TypePoison: multWeak, TypeGround: multWeak,
		TypeRock: multWeak, TypeGhost: multWeak,
	},
	TypeGround: {
		TypeFire: multSuper, TypeElectric: multSuper, TypeGrass: multWeak,
		TypePoison: multSuper, TypeFlying: multImmune, TypeBug: multWeak,
		TypeRock: multSuper,
	},
	TypeFlying: {
		TypeElectric: multWeak, TypeGrass: multSuper, TypeFighting: multSuper,
		TypeBug: multSuper, TypeRock: multWeak,
	},
	TypePsychic: {
		TypeFighting: multSuper, TypePoison: multSuper, TypePsychic: multWeak,
	},
	TypeBug: {
		TypeFire: multWeak, TypeGrass: multSuper, TypeFighting: multWeak,
		TypePoison: multSuper, TypeFlying: multWeak, TypePsychic: multSuper,
		TypeGhost: multWeak,
	},
	TypeRock: {
		TypeFire: multSuper, TypeIce: multSuper, TypeFighting: multWeak,
		TypeGround: multWeak, TypeFlying: multSuper, TypeBug: multSuper,
	},
	TypeGhost: {
		TypeNormal: multImmune, TypePsychic: multImmune, TypeGhost: multSuper,
	},
	TypeDragon: {
		TypeDragon: multSuper,
	},
}

// Effectiveness returns the attack-vs-defense multiplier, one of
// {0, 0.5, 1, 2}. Unknown types are a configuration bug caught by
// VerifyTypeChart at startup, not a runtime condition.
func Effectiveness(attack, defense Type) float64 {
	row, ok := typeChart[attack]
	if !ok {
		return multNeutral
	}
	if m, ok := row[defense]; ok {
		return m
	}
	return multNeutral
}

// VerifyTypeChart checks the chart is exhaustive over the closed type set and
// that every multiplier is one of the four legal values. Call once at startup
// and fail fast on error.
func VerifyTypeChart() error {
	known := make(map[Type]bool, len(AllTypes))
	for _, t := range AllTypes {
		known[t] = true
	}
	for atk, row := range typeChart {
		if !known[atk] {
			return fmt.Errorf("type chart: unknown attack type %q", atk)
		}
		for def, m := range row {
			if !known[def] {
				return fmt.Errorf("type chart: unknown defense type %q in row %q", def, atk)
			}
			switch m {
			case multImmune, multWeak, multNeutral, multSuper:
			default:
				return fmt.Errorf("type chart: illegal multiplier %v for %s vs %s", m, atk, def)
			}
		}
	}
	for _, atk := range AllTypes {
		for _, def := range AllTypes {
			// Forces every ordered pair through the lookup path.
			switch Effectiveness(atk, def) {
			case multImmune, multWeak, multNeutral, multSuper:
			default:
				return fmt.Errorf("type chart: %s vs %s resolves outside legal set", atk, def)
			}
		}
	}
	return nil
}
