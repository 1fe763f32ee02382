package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaybeTopHitKeepsTheBiggest(t *testing.T) {
	ResetDaily()
	t.Cleanup(ResetDaily)

	MaybeTopHit(TopHit{User: "ash", Pokemon: "Raichu", Move: "Thunderbolt", Damage: 40})
	MaybeTopHit(TopHit{User: "gary", Pokemon: "Blastoise", Move: "Hydro Pump", Damage: 95, Crit: true})
	MaybeTopHit(TopHit{User: "ash", Pokemon: "Raichu", Move: "Thunder", Damage: 60})
	MaybeTopHit(TopHit{User: "misty", Pokemon: "Starmie", Move: "Swift", Damage: 0})

	d := Get()
	if assert.NotNil(t, d.TopHit) {
		assert.Equal(t, "gary", d.TopHit.User)
		assert.Equal(t, 95, d.TopHit.Damage)
	}
}

func TestMaybeFastestWinKeepsTheQuickest(t *testing.T) {
	ResetDaily()
	t.Cleanup(ResetDaily)

	MaybeFastestWin(FastestWin{User: "ash", Turns: 12, Winner: "player"})
	MaybeFastestWin(FastestWin{User: "gary", Turns: 7, Winner: "player"})
	MaybeFastestWin(FastestWin{User: "misty", Turns: 9, Winner: "enemy"})
	MaybeFastestWin(FastestWin{User: "brock", Turns: 0, Winner: "player"})

	d := Get()
	if assert.NotNil(t, d.FastestWin) {
		assert.Equal(t, "gary", d.FastestWin.User)
		assert.Equal(t, 7, d.FastestWin.Turns)
	}
}

func TestGetOnEmptyDayHasNoRecords(t *testing.T) {
	ResetDaily()
	t.Cleanup(ResetDaily)

	d := Get()
	assert.NotEmpty(t, d.Date)
	assert.Nil(t, d.TopHit)
	assert.Nil(t, d.FastestWin)
}
