package replay

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// HalfInning is which team is at bat.
type HalfInning int

const (
	Top HalfInning = iota
	Bottom
)

func (h HalfInning) String() string {
	if h == Top {
		return "Top"
	}
	return "Bottom"
}

// TeamInfo is the entity store's raw view of a team as of a point in time:
// enough to resolve a lineup and a pitcher, nothing else.
type TeamInfo struct {
	ID           string
	Nickname     string
	LineupIDs    []string
	RotationIDs  []string
	RotationSlot int64
}

// Store is the entity-store interface the engine consumes. It is satisfied
// by a live archive client (out of scope here) or by entities.FixtureStore.
type Store interface {
	FetchTeam(ctx context.Context, teamID string, at time.Time) (TeamInfo, error)
	FetchPlayer(ctx context.Context, playerID string, at time.Time) (Player, error)
}

// Runner is a baserunner: which base they occupy (1, 2, or 3) and who they
// are.
type Runner struct {
	Base     int
	PlayerID string
}

// GameTeam is a team's frozen roster for the lifetime of one Game: an
// ordered lineup and the pitcher resolved at game-creation time.
type GameTeam struct {
	ID       string
	Nickname string
	Lineup   []Player
	Pitcher  Player
}

func fetchGameTeam(ctx context.Context, store Store, teamID string, at time.Time) (GameTeam, error) {
	info, err := store.FetchTeam(ctx, teamID, at)
	if err != nil {
		return GameTeam{}, fmt.Errorf("replay: fetch team %s: %w", teamID, err)
	}

	lineup := make([]Player, len(info.LineupIDs))
	g, fetchCtx := errgroup.WithContext(ctx)
	for i, playerID := range info.LineupIDs {
		i, playerID := i, playerID
		g.Go(func() error {
			p, err := store.FetchPlayer(fetchCtx, playerID, at)
			if err != nil {
				return fmt.Errorf("replay: fetch lineup player %s: %w", playerID, err)
			}
			lineup[i] = p
			return nil
		})
	}

	var pitcher Player
	if len(info.RotationIDs) > 0 {
		// This +1 is the quickest way to land on the right pitcher for the
		// games this was checked against; no authoritative justification
		// for it has ever surfaced.
		idx := int(info.RotationSlot+1) % len(info.RotationIDs)
		pitcherID := info.RotationIDs[idx]
		g.Go(func() error {
			p, err := store.FetchPlayer(fetchCtx, pitcherID, at)
			if err != nil {
				return fmt.Errorf("replay: fetch pitcher %s: %w", pitcherID, err)
			}
			pitcher = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return GameTeam{}, err
	}

	return GameTeam{ID: info.ID, Nickname: info.Nickname, Lineup: lineup, Pitcher: pitcher}, nil
}

// Game is a static record per in-progress game: both teams' frozen rosters
// plus the baserunner set carried over from the previously-processed tick.
// It is owned exclusively by the engine and never shared.
type Game struct {
	Away        GameTeam
	Home        GameTeam
	PrevRunners []Runner
}

// GameUpdate is the subset of a chronicler-style game-state snapshot this
// engine needs to drive replay.
type GameUpdate struct {
	GameID              string
	Timestamp           time.Time
	Season              int64
	Day                 int64
	PlayCount           int64
	TopOfInning         bool
	AwayTeamBatterCount int64
	HomeTeamBatterCount int64
	AwayTeamID          string
	HomeTeamID          string
	AwayTeamNickname    string
	HomeTeamNickname    string
	AwayBatterID        string
	HomeBatterID        string
	AwayPitcherID       string
	HomePitcherID       string
	LastUpdate          string
	Outs                int
	MaxOuts             int
	RunnersAtEnd        []Runner
}

// FromFirstUpdate fetches both teams as of the first update's timestamp.
// The two fetches are independent reads from the same Store, so they run
// concurrently via errgroup; the engine does not resume until both return,
// preserving the single-suspension-point concurrency model.
func FromFirstUpdate(ctx context.Context, store Store, u GameUpdate) (*Game, error) {
	var away, home GameTeam
	g, fetchCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		away, err = fetchGameTeam(fetchCtx, store, u.AwayTeamID, u.Timestamp)
		return err
	})
	g.Go(func() (err error) {
		home, err = fetchGameTeam(fetchCtx, store, u.HomeTeamID, u.Timestamp)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Game{Away: away, Home: home}, nil
}

// GameAtTick is a per-update derived view: which half, whose turn to bat,
// outs, and baserunners at the start and end of this tick.
type GameAtTick struct {
	game           *Game
	Half           HalfInning
	BatterCount    int64
	Outs           int
	MaxOuts        int
	RunnersAtStart []Runner
	RunnersAtEnd   []Runner
}

// AtTick materializes the per-tick view for update u.
func (g *Game) AtTick(u GameUpdate) GameAtTick {
	half := Bottom
	if u.TopOfInning {
		half = Top
	}
	batterCount := u.HomeTeamBatterCount
	if half == Top {
		batterCount = u.AwayTeamBatterCount
	}
	return GameAtTick{
		game:           g,
		Half:           half,
		BatterCount:    batterCount,
		Outs:           u.Outs,
		MaxOuts:        u.MaxOuts,
		RunnersAtStart: g.PrevRunners,
		RunnersAtEnd:   u.RunnersAtEnd,
	}
}

func (t GameAtTick) battingTeam() *GameTeam {
	if t.Half == Top {
		return &t.game.Away
	}
	return &t.game.Home
}

// pitchingTeam looks backwards: the team batting in the Top half is away,
// so the pitching team during the Top half is home. This reads wrong at
// first glance and is correct — see sim.rs's own bewildered comment.
func (t GameAtTick) pitchingTeam() *GameTeam {
	if t.Half == Top {
		return &t.game.Home
	}
	return &t.game.Away
}

// Pitcher returns the pitching team's pitcher.
func (t GameAtTick) Pitcher() Player {
	return t.pitchingTeam().Pitcher
}

// Batter returns the lineup entry at BatterCount mod lineup length.
func (t GameAtTick) Batter() Player {
	lineup := t.battingTeam().Lineup
	idx := int(t.BatterCount) % len(lineup)
	return lineup[idx]
}

// Fielders returns the pitching team's lineup, the pool fielders are drawn
// from.
func (t GameAtTick) Fielders() []Player {
	return t.pitchingTeam().Lineup
}

// Validate reports non-fatal mismatches between the computed batter/pitcher
// and the update's observed ids. batter_count < 0 before the first genuine
// batter is ignored.
func (t GameAtTick) Validate(u GameUpdate) (errors, warnings []string) {
	if t.BatterCount < 0 {
		return nil, nil
	}

	observedBatter := u.HomeBatterID
	if t.Half == Top {
		observedBatter = u.AwayBatterID
	}
	if observedBatter != "" {
		if computed := t.Batter(); computed.ID != observedBatter {
			errors = append(errors, fmt.Sprintf("batter mismatch: computed %s, observed %s", computed.ID, observedBatter))
		}
	}

	observedPitcher := u.AwayPitcherID
	if t.Half == Top {
		observedPitcher = u.HomePitcherID
	}
	if observedPitcher != "" {
		if computed := t.Pitcher(); computed.ID != observedPitcher {
			errors = append(errors, fmt.Sprintf("pitcher mismatch: computed %s, observed %s", computed.ID, observedPitcher))
		}
	}

	return errors, warnings
}

// PlayerByID finds a player by id among the batting team's lineup, used to
// resolve a baserunner to their attribute bundle.
func (t GameAtTick) PlayerByID(id string) (Player, bool) {
	for _, p := range t.battingTeam().Lineup {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func runnersDescending(runners []Runner) []Runner {
	sorted := make([]Runner, len(runners))
	copy(sorted, runners)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Base < sorted[j].Base; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted
}

func runnerAtEnd(runnersAtEnd []Runner, playerID string) (base int, scored bool) {
	for _, r := range runnersAtEnd {
		if r.PlayerID == playerID {
			return r.Base, false
		}
	}
	return 4, true
}
