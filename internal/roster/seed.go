package roster

import "github.com/pefman/poke-duel/internal/battle"

// SeedTeams are the shared rosters installed into an empty database. Stats
// are loosely gen-1 flavored and balanced for short battles.
func SeedTeams() []Team {
	return []Team{
		{
			ID:   "starter-blaze",
			Name: "Blaze Squad",
			Pokemon: []Pokemon{
				{
					Name: "Charizard", Type: battle.TypeFire, MaxHP: 120, Attack: 84, Defense: 78, Speed: 100,
					Moves: []battle.Move{
						{Name: "Flamethrower", Type: battle.TypeFire, Power: 90, Accuracy: 100, MaxPP: 15},
						{Name: "Dragon Claw", Type: battle.TypeDragon, Power: 80, Accuracy: 100, MaxPP: 15},
						{Name: "Wing Attack", Type: battle.TypeFlying, Power: 60, Accuracy: 100, MaxPP: 35},
						{Name: "Slash", Type: battle.TypeNormal, Power: 70, Accuracy: 100, MaxPP: 20},
					},
				},
				{
					Name: "Arcanine", Type: battle.TypeFire, MaxHP: 130, Attack: 110, Defense: 80, Speed: 95,
					Moves: []battle.Move{
						{Name: "Fire Blast", Type: battle.TypeFire, Power: 110, Accuracy: 85, MaxPP: 5},
						{Name: "Bite", Type: battle.TypeNormal, Power: 60, Accuracy: 100, MaxPP: 25},
						{Name: "Take Down", Type: battle.TypeNormal, Power: 90, Accuracy: 85, MaxPP: 20},
					},
				},
				{
					Name: "Magmar", Type: battle.TypeFire, MaxHP: 105, Attack: 95, Defense: 57, Speed: 93,
					Moves: []battle.Move{
						{Name: "Fire Punch", Type: battle.TypeFire, Power: 75, Accuracy: 100, MaxPP: 15},
						{Name: "Psychic", Type: battle.TypePsychic, Power: 90, Accuracy: 100, MaxPP: 10},
					},
				},
			},
		},
		{
			ID:   "starter-tide",
			Name: "Tide Riders",
			Pokemon: []Pokemon{
				{
					Name: "Blastoise", Type: battle.TypeWater, MaxHP: 125, Attack: 83, Defense: 100, Speed: 78,
					Moves: []battle.Move{
						{Name: "Hydro Pump", Type: battle.TypeWater, Power: 110, Accuracy: 80, MaxPP: 5},
						{Name: "Surf", Type: battle.TypeWater, Power: 90, Accuracy: 100, MaxPP: 15},
						{Name: "Ice Beam", Type: battle.TypeIce, Power: 90, Accuracy: 100, MaxPP: 10},
						{Name: "Bite", Type: battle.TypeNormal, Power: 60, Accuracy: 100, MaxPP: 25},
					},
				},
				{
					Name: "Lapras", Type: battle.TypeWater, MaxHP: 160, Attack: 85, Defense: 80, Speed: 60,
					Moves: []battle.Move{
						{Name: "Surf", Type: battle.TypeWater, Power: 90, Accuracy: 100, MaxPP: 15},
						{Name: "Blizzard", Type: battle.TypeIce, Power: 110, Accuracy: 70, MaxPP: 5},
						{Name: "Body Slam", Type: battle.TypeNormal, Power: 85, Accuracy: 100, MaxPP: 15},
					},
				},
				{
					Name: "Starmie", Type: battle.TypeWater, MaxHP: 100, Attack: 75, Defense: 85, Speed: 115,
					Moves: []battle.Move{
						{Name: "Bubble Beam", Type: battle.TypeWater, Power: 65, Accuracy: 100, MaxPP: 20},
						{Name: "Psychic", Type: battle.TypePsychic, Power: 90, Accuracy: 100, MaxPP: 10},
						{Name: "Swift", Type: battle.TypeNormal, Power: 60, Accuracy: 100, MaxPP: 20},
					},
				},
			},
		},
		{
			ID:   "starter-volt",
			Name: "Volt Vanguard",
			Pokemon: []Pokemon{
				{
					Name: "Raichu", Type: battle.TypeElectric, MaxHP: 100, Attack: 90, Defense: 55, Speed: 110,
					Moves: []battle.Move{
						{Name: "Thunderbolt", Type: battle.TypeElectric, Power: 90, Accuracy: 100, MaxPP: 15},
						{Name: "Thunder", Type: battle.TypeElectric, Power: 110, Accuracy: 70, MaxPP: 10},
						{Name: "Quick Attack", Type: battle.TypeNormal, Power: 40, Accuracy: 100, MaxPP: 30},
					},
				},
				{
					Name: "Jolteon", Type: battle.TypeElectric, MaxHP: 105, Attack: 65, Defense: 60, Speed: 130,
					Moves: []battle.Move{
						{Name: "Thunder Shock", Type: battle.TypeElectric, Power: 40, Accuracy: 100, MaxPP: 30},
						{Name: "Pin Missile", Type: battle.TypeBug, Power: 50, Accuracy: 95, MaxPP: 20},
						{Name: "Double Kick", Type: battle.TypeFighting, Power: 60, Accuracy: 100, MaxPP: 30},
					},
				},
				{
					Name: "Golem", Type: battle.TypeRock, MaxHP: 120, Attack: 110, Defense: 130, Speed: 45,
					Moves: []battle.Move{
						{Name: "Earthquake", Type: battle.TypeGround, Power: 100, Accuracy: 100, MaxPP: 10},
						{Name: "Rock Slide", Type: battle.TypeRock, Power: 75, Accuracy: 90, MaxPP: 10},
						{Name: "Tackle", Type: battle.TypeNormal, Power: 40, Accuracy: 100, MaxPP: 35},
					},
				},
			},
		},
		{
			ID:   "starter-fern",
			Name: "Fern Guard",
			Pokemon: []Pokemon{
				{
					Name: "Venusaur", Type: battle.TypeGrass, MaxHP: 125, Attack: 82, Defense: 83, Speed: 80,
					Moves: []battle.Move{
						{Name: "Razor Leaf", Type: battle.TypeGrass, Power: 55, Accuracy: 95, MaxPP: 25},
						{Name: "Solar Beam", Type: battle.TypeGrass, Power: 120, Accuracy: 100, MaxPP: 10},
						{Name: "Sludge Bomb", Type: battle.TypePoison, Power: 90, Accuracy: 100, MaxPP: 10},
					},
				},
				{
					Name: "Exeggutor", Type: battle.TypeGrass, MaxHP: 135, Attack: 95, Defense: 85, Speed: 55,
					Moves: []battle.Move{
						{Name: "Egg Bomb", Type: battle.TypeNormal, Power: 100, Accuracy: 75, MaxPP: 10},
						{Name: "Psychic", Type: battle.TypePsychic, Power: 90, Accuracy: 100, MaxPP: 10},
						{Name: "Stomp", Type: battle.TypeNormal, Power: 65, Accuracy: 100, MaxPP: 20},
					},
				},
				{
					Name: "Gengar", Type: battle.TypeGhost, MaxHP: 100, Attack: 65, Defense: 60, Speed: 110,
					Moves: []battle.Move{
						{Name: "Shadow Ball", Type: battle.TypeGhost, Power: 80, Accuracy: 100, MaxPP: 15},
						{Name: "Sludge Bomb", Type: battle.TypePoison, Power: 90, Accuracy: 100, MaxPP: 10},
						{Name: "Lick", Type: battle.TypeGhost, Power: 30, Accuracy: 100, MaxPP: 30},
					},
				},
			},
		},
	}
}
