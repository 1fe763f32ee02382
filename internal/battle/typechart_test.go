package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyTypeChart(t *testing.T) {
	require.NoError(t, VerifyTypeChart())
}

func TestEffectivenessLegalValues(t *testing.T) {
	for _, atk := range AllTypes {
		for _, def := range AllTypes {
			m := Effectiveness(atk, def)
			assert.Contains(t, []float64{0, 0.5, 1, 2}, m, "%s vs %s", atk, def)
		}
	}
}

func TestEffectivenessKnownPairs(t *testing.T) {
	assert.Equal(t, 2.0, Effectiveness(TypeWater, TypeFire))
	assert.Equal(t, 0.5, Effectiveness(TypeFire, TypeWater))
	assert.Equal(t, 0.0, Effectiveness(TypeElectric, TypeGround))
	assert.Equal(t, 0.0, Effectiveness(TypeNormal, TypeGhost))
	assert.Equal(t, 1.0, Effectiveness(TypeNormal, TypeNormal))
	assert.Equal(t, 2.0, Effectiveness(TypeIce, TypeDragon))
}
