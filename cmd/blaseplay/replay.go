package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blaseplay/internal/entities"
	"github.com/lox/blaseplay/internal/fileutil"
	"github.com/lox/blaseplay/internal/fragments"
	"github.com/lox/blaseplay/internal/pacer"
	"github.com/lox/blaseplay/internal/replay"
)

// ReplayCmd drives the engine over one fragment from the catalog, writing
// the finished DayContexts it produces to an output directory as indented
// JSON reports, one file per day.
type ReplayCmd struct {
	Catalog  string  `kong:"required,help='Path to the HCL fragment catalog'"`
	Label    string  `kong:"required,help='Fragment label to replay'"`
	Entities string  `kong:"required,name='entities',help='Path to the JSON entity fixture'"`
	Updates  string  `kong:"required,help='Path to an NDJSON stream of game updates'"`
	Out      string  `kong:"default='./replay-out',help='Directory to write day reports into'"`
	Pace     float64 `kong:"default='0',help='Wall-clock playback speed (0 disables pacing)'"`
	Debug    bool    `kong:"help='Enable debug logging'"`
}

func (c *ReplayCmd) Run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	catalog, err := fragments.Load(c.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var fragment *fragments.Fragment
	for i := range catalog {
		if catalog[i].Label == c.Label {
			fragment = &catalog[i]
			break
		}
	}
	if fragment == nil {
		return fmt.Errorf("no fragment labeled %q in %s", c.Label, c.Catalog)
	}

	store, err := entities.Load(c.Entities, 1024)
	if err != nil {
		return fmt.Errorf("load entities: %w", err)
	}

	updatesFile, err := os.Open(c.Updates)
	if err != nil {
		return fmt.Errorf("open updates: %w", err)
	}
	defer updatesFile.Close()

	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	engine := replay.NewEngine(fragment.RNG, store, replay.NewThresholds(0.5), fragment.Stream, logger)
	clock := quartz.NewReal()
	pace := pacer.New(clock, c.Pace)

	ctx := context.Background()
	scanner := bufio.NewScanner(updatesFile)
	dayCount := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		u, err := decodeUpdate(line)
		if err != nil {
			return fmt.Errorf("decode update: %w", err)
		}
		if u.Timestamp.Before(fragment.StartTime) || !u.Timestamp.Before(fragment.EndTime) {
			continue
		}

		if err := pace.WaitForTick(ctx, u.Timestamp); err != nil {
			return fmt.Errorf("pace: %w", err)
		}

		day, err := engine.NextUpdate(ctx, u)
		if err != nil {
			return fmt.Errorf("engine: %w", err)
		}
		if day != nil {
			if err := writeDayReport(c.Out, day); err != nil {
				return err
			}
			dayCount++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read updates: %w", err)
	}

	finalDay, err := engine.Flush(ctx)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if finalDay != nil {
		if err := writeDayReport(c.Out, finalDay); err != nil {
			return err
		}
		dayCount++
	}

	logger.Info("replay finished", "fragment", c.Label, "days_written", dayCount)
	return nil
}

type jsonRunner struct {
	Base     int    `json:"base"`
	PlayerID string `json:"player_id"`
}

type jsonUpdate struct {
	GameID              string       `json:"game_id"`
	Timestamp           time.Time    `json:"timestamp"`
	Season              int64        `json:"season"`
	Day                 int64        `json:"day"`
	PlayCount           int64        `json:"play_count"`
	TopOfInning         bool         `json:"top_of_inning"`
	AwayTeamBatterCount int64        `json:"away_team_batter_count"`
	HomeTeamBatterCount int64        `json:"home_team_batter_count"`
	AwayTeamID          string       `json:"away_team"`
	HomeTeamID          string       `json:"home_team"`
	AwayTeamNickname    string       `json:"away_team_nickname"`
	HomeTeamNickname    string       `json:"home_team_nickname"`
	AwayBatterID        string       `json:"away_batter"`
	HomeBatterID        string       `json:"home_batter"`
	AwayPitcherID       string       `json:"away_pitcher"`
	HomePitcherID       string       `json:"home_pitcher"`
	LastUpdate          string       `json:"last_update"`
	Outs                int          `json:"outs"`
	MaxOuts             int          `json:"max_outs"`
	RunnersAtEnd        []jsonRunner `json:"runners_at_end"`
}

func decodeUpdate(line []byte) (replay.GameUpdate, error) {
	var ju jsonUpdate
	if err := json.Unmarshal(line, &ju); err != nil {
		return replay.GameUpdate{}, err
	}
	runners := make([]replay.Runner, len(ju.RunnersAtEnd))
	for i, r := range ju.RunnersAtEnd {
		runners[i] = replay.Runner{Base: r.Base, PlayerID: r.PlayerID}
	}
	return replay.GameUpdate{
		GameID:              ju.GameID,
		Timestamp:           ju.Timestamp,
		Season:              ju.Season,
		Day:                 ju.Day,
		PlayCount:           ju.PlayCount,
		TopOfInning:         ju.TopOfInning,
		AwayTeamBatterCount: ju.AwayTeamBatterCount,
		HomeTeamBatterCount: ju.HomeTeamBatterCount,
		AwayTeamID:          ju.AwayTeamID,
		HomeTeamID:          ju.HomeTeamID,
		AwayTeamNickname:    ju.AwayTeamNickname,
		HomeTeamNickname:    ju.HomeTeamNickname,
		AwayBatterID:        ju.AwayBatterID,
		HomeBatterID:        ju.HomeBatterID,
		AwayPitcherID:       ju.AwayPitcherID,
		HomePitcherID:       ju.HomePitcherID,
		LastUpdate:          ju.LastUpdate,
		Outs:                ju.Outs,
		MaxOuts:             ju.MaxOuts,
		RunnersAtEnd:        runners,
	}, nil
}

func writeDayReport(dir string, day *replay.DayContext) error {
	data, err := json.MarshalIndent(day, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal day report: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("s%02d-d%03d.json", day.Season+1, day.Day+1))
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
