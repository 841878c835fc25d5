// Package entities provides a fixture-backed implementation of
// replay.Store for tests and offline replay: teams and players loaded
// from a JSON document instead of a live entity archive.
package entities

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	lru "github.com/opencoff/golang-lru"

	"github.com/lox/blaseplay/internal/replay"
)

// Fixture is the on-disk shape: every team and player this store can ever
// resolve, each keyed by id. Real archives version entities by time; a
// fixture instead assumes each id names one fixed snapshot, which is
// sufficient for replaying the fragments a test cares about.
type Fixture struct {
	Teams   []replay.TeamInfo `json:"teams"`
	Players []PlayerFixture   `json:"players"`
}

// PlayerFixture is the JSON shape of one player: an attribute bundle keyed
// by name rather than by the dense Attribute enum, since fixture files are
// hand-edited.
type PlayerFixture struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Attributes map[string]float64 `json:"attributes"`
	Vibes      float64            `json:"vibes"`
}

var attributeNames = map[string]replay.Attribute{}

func init() {
	for a := replay.Attribute(0); a.String() != "Unknown"; a++ {
		attributeNames[a.String()] = a
	}
}

func (p PlayerFixture) toPlayer() replay.Player {
	var attrs replay.Attributes
	for name, v := range p.Attributes {
		if a, ok := attributeNames[name]; ok {
			attrs[a] = v
		}
	}
	return replay.Player{ID: p.ID, Name: p.Name, Attrs: attrs, Vibes: p.Vibes}
}

// FixtureStore is a replay.Store backed by an in-memory fixture, with an
// LRU of resolved players bounding memory for fixtures with large rosters.
type FixtureStore struct {
	teams   map[string]replay.TeamInfo
	players map[string]replay.Player
	cache   *lru.Cache[string, replay.Player]
}

// Load reads filename as a JSON Fixture and builds a FixtureStore over it.
// cacheSize bounds how many resolved players are kept in the LRU before
// older entries are evicted; since every player here is already resident
// in players, the cache only avoids repeated struct copies for hot ids.
func Load(filename string, cacheSize int) (*FixtureStore, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("entities: read %s: %w", filename, err)
	}
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("entities: decode %s: %w", filename, err)
	}

	cache, err := lru.New[string, replay.Player](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("entities: build cache: %w", err)
	}

	teams := make(map[string]replay.TeamInfo, len(fx.Teams))
	for _, tm := range fx.Teams {
		teams[tm.ID] = tm
	}
	players := make(map[string]replay.Player, len(fx.Players))
	for _, p := range fx.Players {
		players[p.ID] = p.toPlayer()
	}

	return &FixtureStore{teams: teams, players: players, cache: cache}, nil
}

// FetchTeam implements replay.Store. at is ignored: a fixture has exactly
// one snapshot per id.
func (s *FixtureStore) FetchTeam(ctx context.Context, teamID string, at time.Time) (replay.TeamInfo, error) {
	tm, ok := s.teams[teamID]
	if !ok {
		return replay.TeamInfo{}, fmt.Errorf("entities: no such team %s", teamID)
	}
	return tm, nil
}

// FetchPlayer implements replay.Store.
func (s *FixtureStore) FetchPlayer(ctx context.Context, playerID string, at time.Time) (replay.Player, error) {
	if p, ok := s.cache.Get(playerID); ok {
		return p, nil
	}
	p, ok := s.players[playerID]
	if !ok {
		return replay.Player{}, fmt.Errorf("entities: no such player %s", playerID)
	}
	s.cache.Add(playerID, p)
	return p, nil
}
