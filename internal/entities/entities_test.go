package entities

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blaseplay/internal/replay"
)

func writeFixture(t *testing.T, fx Fixture) string {
	t.Helper()
	data, err := json.Marshal(fx)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sampleFixture() Fixture {
	return Fixture{
		Teams: []replay.TeamInfo{
			{ID: "team-1", Nickname: "Lovers", LineupIDs: []string{"p1"}, RotationIDs: []string{"p2"}},
		},
		Players: []PlayerFixture{
			{ID: "p1", Name: "Jessica Telephone", Attributes: map[string]float64{"Musclitude": 0.8}, Vibes: 0.1},
			{ID: "p2", Name: "Nagomi McDaniel", Attributes: map[string]float64{"Ruthlessness": 0.6, "NotARealAttribute": 99}},
		},
	}
}

func TestLoadResolvesTeamAndPlayer(t *testing.T) {
	path := writeFixture(t, sampleFixture())

	store, err := Load(path, 16)
	require.NoError(t, err)

	team, err := store.FetchTeam(context.Background(), "team-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Lovers", team.Nickname)

	player, err := store.FetchPlayer(context.Background(), "p1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Jessica Telephone", player.Name)
	assert.Equal(t, 0.8, player.Attrs[replay.Musclitude])
}

func TestLoadIgnoresUnknownAttributeNames(t *testing.T) {
	path := writeFixture(t, sampleFixture())

	store, err := Load(path, 16)
	require.NoError(t, err)

	player, err := store.FetchPlayer(context.Background(), "p2", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.6, player.Attrs[replay.Ruthlessness])
}

func TestFetchTeamUnknownIDErrors(t *testing.T) {
	path := writeFixture(t, sampleFixture())
	store, err := Load(path, 16)
	require.NoError(t, err)

	_, err = store.FetchTeam(context.Background(), "no-such-team", time.Now())
	require.Error(t, err)
}

func TestFetchPlayerPopulatesCache(t *testing.T) {
	path := writeFixture(t, sampleFixture())
	store, err := Load(path, 16)
	require.NoError(t, err)

	first, err := store.FetchPlayer(context.Background(), "p1", time.Now())
	require.NoError(t, err)
	_, cached := store.cache.Get("p1")
	assert.True(t, cached, "first fetch should leave p1 in the cache")

	second, err := store.FetchPlayer(context.Background(), "p1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
