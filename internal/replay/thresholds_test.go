package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func avgPlayer(id, name string, attrs Attributes) Player {
	return Player{ID: id, Name: name, Attrs: attrs}
}

func TestInStrikeZoneClampedToMax(t *testing.T) {
	th := NewThresholds(0.5)
	var attrs Attributes
	attrs[Ruthlessness] = 5.0
	g := GameAtTick{
		game: &Game{
			Home: GameTeam{Pitcher: avgPlayer("p", "Pitcher", attrs)},
			Away: GameTeam{Lineup: []Player{avgPlayer("b", "Batter", Attributes{})}},
		},
		Half: Top,
	}
	assert.Equal(t, 0.9, th.InStrikeZone(g))
}

func TestFlyUsesBatterSuppressionTypo(t *testing.T) {
	th := NewThresholds(0.5)
	var batterAttrs Attributes
	batterAttrs[Suppression] = 1.0
	batter := avgPlayer("b", "Batter", batterAttrs)
	otherBatter := avgPlayer("b2", "Batter2", Attributes{})

	g1 := GameAtTick{
		game: &Game{Away: GameTeam{Lineup: []Player{batter}}},
		Half: Top,
	}
	g2 := GameAtTick{
		game: &Game{Away: GameTeam{Lineup: []Player{otherBatter}}},
		Half: Top,
	}

	assert.NotEqual(t, th.Fly(g1), th.Fly(g2), "Fly must read suppression from the batter, not the pitcher")
}

func TestFlyFloorsAtPointZeroOne(t *testing.T) {
	th := NewThresholds(0.5)
	var attrs Attributes
	attrs[Suppression] = 100.0
	batter := avgPlayer("b", "Batter", attrs)
	g := GameAtTick{game: &Game{Away: GameTeam{Lineup: []Player{batter}}}, Half: Top}
	assert.Equal(t, 0.01, th.Fly(g))
}

func TestClampHelper(t *testing.T) {
	assert.Equal(t, 0.1, clamp(0.1, 0.9, 0.0))
	assert.Equal(t, 0.9, clamp(0.1, 0.9, 5.0))
	assert.Equal(t, 0.5, clamp(0.1, 0.9, 0.5))
}

func TestVibeFactorNeutralAtZero(t *testing.T) {
	assert.Equal(t, 1.0, vibeFactor(0))
	assert.Equal(t, 1.2, vibeFactor(1))
	assert.Equal(t, 0.8, vibeFactor(-1))
}

func TestAdvanceOnHitClamped(t *testing.T) {
	th := NewThresholds(0.5)
	var runnerAttrs, fielderAttrs Attributes
	runnerAttrs[BaseThirst] = 100.0
	runner := avgPlayer("r", "Runner", runnerAttrs)
	fielder := avgPlayer("f", "Fielder", fielderAttrs)
	assert.Equal(t, 0.95, th.AdvanceOnHit(runner, fielder))
}
