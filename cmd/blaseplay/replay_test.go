package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blaseplay/internal/replay"
)

func TestDecodeUpdateMapsRunnersAtEnd(t *testing.T) {
	line := []byte(`{
		"game_id": "game-1",
		"timestamp": "2024-05-01T18:00:00Z",
		"season": 1,
		"day": 2,
		"play_count": 4,
		"away_team": "away-1",
		"home_team": "home-1",
		"last_update": "",
		"runners_at_end": [{"base": 1, "player_id": "p1"}, {"base": 3, "player_id": "p2"}]
	}`)

	u, err := decodeUpdate(line)
	if err != nil {
		t.Fatalf("decodeUpdate error: %v", err)
	}
	if u.GameID != "game-1" {
		t.Fatalf("expected game_id game-1, got %s", u.GameID)
	}
	if !u.Timestamp.Equal(time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp: %v", u.Timestamp)
	}
	if len(u.RunnersAtEnd) != 2 || u.RunnersAtEnd[0].Base != 1 || u.RunnersAtEnd[1].PlayerID != "p2" {
		t.Fatalf("unexpected runners: %+v", u.RunnersAtEnd)
	}
}

func TestDecodeUpdateRejectsMalformedJSON(t *testing.T) {
	if _, err := decodeUpdate([]byte("not json")); err == nil {
		t.Fatalf("expected an error for malformed input")
	}
}

func TestWriteDayReportProducesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	day := &replay.DayContext{Season: 0, Day: 0}

	if err := writeDayReport(dir, day); err != nil {
		t.Fatalf("writeDayReport error: %v", err)
	}

	path := filepath.Join(dir, "s01-d001.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected report file: %v", err)
	}

	var decoded replay.DayContext
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Season != 0 || decoded.Day != 0 {
		t.Fatalf("unexpected decoded day: %+v", decoded)
	}
}
