package replay

import (
	"testing"

	"github.com/lox/blaseplay/internal/randutil"
	"github.com/stretchr/testify/assert"
)

// randomPlayer builds a player with attributes drawn uniformly from
// [0, 1), using randutil's deterministic seeding so a failure is
// reproducible from the seed alone.
func randomPlayer(seed int64, id string) Player {
	rnd := randutil.New(seed)
	var attrs Attributes
	for i := range attrs {
		attrs[i] = rnd.Float64()
	}
	return Player{ID: id, Name: id, Attrs: attrs}
}

func TestInStrikeZoneStaysWithinClampAcrossRandomRosters(t *testing.T) {
	th := NewThresholds(0.5)
	for seed := int64(0); seed < 200; seed++ {
		pitcher := randomPlayer(seed, "pitcher")
		batter := randomPlayer(seed+1_000_000, "batter")
		game := &Game{
			Away: GameTeam{Lineup: []Player{batter}, Pitcher: pitcher},
			Home: GameTeam{Lineup: []Player{batter}, Pitcher: pitcher},
		}
		g := GameAtTick{game: game, Half: Top, MaxOuts: 3}
		v := th.InStrikeZone(g)
		assert.GreaterOrEqual(t, v, 0.0, "seed %d", seed)
		assert.LessOrEqual(t, v, 0.9, "seed %d", seed)
	}
}

func TestFlyNeverGoesBelowItsFloorAcrossRandomRosters(t *testing.T) {
	th := NewThresholds(0.5)
	for seed := int64(0); seed < 200; seed++ {
		batter := randomPlayer(seed, "batter")
		game := &Game{
			Away: GameTeam{Lineup: []Player{batter}, Pitcher: batter},
			Home: GameTeam{Lineup: []Player{batter}, Pitcher: batter},
		}
		g := GameAtTick{game: game, Half: Top, MaxOuts: 3}
		v := th.Fly(g)
		assert.GreaterOrEqual(t, v, 0.01, "seed %d", seed)
	}
}
