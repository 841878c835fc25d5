package replay

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blaseplay/internal/checkroll"
	"github.com/lox/blaseplay/internal/rng"
)

// EngineFatalError is returned by Engine.NextUpdate when the update stream
// violates an ordering assumption the engine cannot recover from, or when
// the reference stream runs out of draws before a plan is complete.
type EngineFatalError struct {
	Kind                  string
	StoredEventTimestamp  time.Time
	NewEventTimestamp     time.Time
	StoredDay, NewDay     [2]int64
	InGame                string
}

func (e *EngineFatalError) Error() string {
	switch e.Kind {
	case "EventOutOfOrder":
		return fmt.Sprintf("event out of order: event with timestamp %s came in after event with timestamp %s",
			e.NewEventTimestamp, e.StoredEventTimestamp)
	case "DaysOutOfOrder":
		return fmt.Sprintf("days out of order: event for %v came in after event for %v from game %s",
			e.NewDay, e.StoredDay, e.InGame)
	case "RanOutOfCheckRolls":
		return fmt.Sprintf("ran out of reference check rolls mid-plan for game %s", e.InGame)
	default:
		return "engine: fatal error"
	}
}

// RollContext is a rendered draw: its classification, a human-readable
// description mirroring the host's own roll-log lines, and the raw value.
type RollContext struct {
	Outcome     RollOutcome
	Description string
	Roll        float64
	Resim       *ResimMatchContext
}

// GameTickContext is one game's contribution to a tick: the parsed play's
// description, any validation problems, and the rolls it consumed.
type GameTickContext struct {
	GameLabel   string
	Description string
	Errors      []string
	Warnings    []string
	Rolls       []RollContext
}

// TickContext groups every game's activity that shares one timestamp.
type TickContext struct {
	TickTimestamp time.Time
	Games         []GameTickContext
}

// DayContext accumulates every tick belonging to one (season, day) pair.
// The engine emits a DayContext when it observes the first update of the
// following day, at which point the day is complete and its games are
// discarded.
type DayContext struct {
	Season int64
	Day    int64
	Ticks  []TickContext
}

func renderRoll(roll RollData, resim *ResimMatchContext) RollContext {
	outcome := roll.Usage.Outcome(roll.Roll)
	var description string
	switch {
	case roll.Usage.IsChoice:
		if roll.Usage.SelectedOption != nil {
			description = fmt.Sprintf("%s: option %d of %d (%g)", roll.Purpose, *roll.Usage.SelectedOption, roll.Usage.NumOptions, roll.Roll)
		} else {
			description = fmt.Sprintf("%s: Unused (%g)", roll.Purpose, roll.Roll)
		}
	case roll.Usage.Threshold == nil:
		description = fmt.Sprintf("%s: Unconstrained (%g)", roll.Purpose, roll.Roll)
	case outcome == OutcomeSuccess:
		description = fmt.Sprintf("%s: passed (%g < %g)", roll.Purpose, roll.Roll, *roll.Usage.Threshold)
	default:
		description = fmt.Sprintf("%s: failed (%g !< %g)", roll.Purpose, roll.Roll, *roll.Usage.Threshold)
	}
	return RollContext{Outcome: outcome, Description: description, Roll: roll.Roll, Resim: resim}
}

// runGameTick plans the rolls one game's update consumed and, when stream
// is attached, pairs each planned draw with the reference stream's next
// entry. Running out of reference draws before the plan is complete is
// fatal (RanOutOfCheckRolls) — a reference stream that's shorter than the
// plan it's supposed to explain means something upstream has already
// diverged.
func runGameTick(ctx context.Context, game *Game, u GameUpdate, th Thresholds, r *rng.Rng, stream *checkroll.RollStream, logger *log.Logger) (GameTickContext, error) {
	gameAtTick := game.AtTick(u)
	errs, warnings := gameAtTick.Validate(u)
	label := fmt.Sprintf("%s @ %s", u.AwayTeamNickname, u.HomeTeamNickname)

	parsed, err := ParseUpdate(u.LastUpdate)
	if err != nil {
		errs = append(errs, fmt.Sprintf("parse error: %s", err))
		game.PrevRunners = u.RunnersAtEnd
		return GameTickContext{GameLabel: label, Description: u.LastUpdate, Errors: errs, Warnings: warnings}, nil
	}

	planned := PlanRolls(r, parsed, th, gameAtTick)
	rolls := make([]RollContext, len(planned))
	for i, roll := range planned {
		var resim *ResimMatchContext
		if stream != nil {
			cr, ok, err := stream.Next()
			if err != nil {
				return GameTickContext{}, err
			}
			if !ok {
				return GameTickContext{}, &EngineFatalError{Kind: "RanOutOfCheckRolls", InGame: u.GameID}
			}
			resim = Compare(roll, &cr)
		}
		rolls[i] = renderRoll(roll, resim)
		if rolls[i].Outcome == OutcomeFailure {
			logger.Debug("roll failed", "game", label, "purpose", roll.Purpose.String(), "roll", roll.Roll)
		}
	}

	game.PrevRunners = u.RunnersAtEnd
	return GameTickContext{GameLabel: label, Description: u.LastUpdate, Errors: errs, Warnings: warnings, Rolls: rolls}, nil
}

// Engine ingests a chronological update stream, groups same-timestamp
// updates into ticks, and advances the shared generator through every roll
// each tick's games consumed. It owns one *rng.Rng and a Store used to
// materialize games the first time they're observed.
type Engine struct {
	rng         *rng.Rng
	store       Store
	thresholds  Thresholds
	stream      *checkroll.RollStream
	logger      *log.Logger
	activeGames map[string]*Game
	pending     []GameUpdate
	currentDay  *DayContext
}

// NewEngine constructs an Engine over the given generator state, entity
// store, and threshold configuration. logger may be nil, in which case a
// discarding logger is used. stream may be nil, in which case no
// RollContext carries a Resim comparison.
func NewEngine(r rng.Rng, store Store, th Thresholds, stream *checkroll.RollStream, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		rng:         &r,
		store:       store,
		thresholds:  th,
		stream:      stream,
		logger:      logger,
		activeGames: make(map[string]*Game),
	}
}

// NextUpdate feeds one update into the engine. It returns a non-nil
// *DayContext exactly when processing this update completed the prior day;
// the caller should treat that as the finished day's full report. Pending
// same-timestamp updates are buffered until an update with a later
// timestamp arrives and forces the tick to process.
func (e *Engine) NextUpdate(ctx context.Context, u GameUpdate) (*DayContext, error) {
	if len(e.pending) > 0 {
		pending := e.pending[0]
		switch {
		case u.Timestamp.Before(pending.Timestamp):
			return nil, &EngineFatalError{
				Kind:                 "EventOutOfOrder",
				StoredEventTimestamp: pending.Timestamp,
				NewEventTimestamp:    u.Timestamp,
			}
		case u.Timestamp.Equal(pending.Timestamp):
			e.pending = append(e.pending, u)
			return nil, nil
		default:
			toProcess := e.pending
			e.pending = []GameUpdate{u}
			finished, err := e.tick(ctx, toProcess)
			if err != nil || finished != nil {
				return finished, err
			}
			// u is the first update of a later day: the current day is
			// complete now, without waiting for u's own tick.
			if e.currentDay != nil && (u.Season > e.currentDay.Season || (u.Season == e.currentDay.Season && u.Day > e.currentDay.Day)) {
				finished = e.currentDay
				e.currentDay = nil
				e.activeGames = make(map[string]*Game)
			}
			return finished, nil
		}
	}

	e.pending = append(e.pending, u)
	return nil, nil
}

// Flush forces any buffered same-timestamp updates through a final tick and
// returns the day-in-progress, if any. A live update stream never truly
// ends, so the engine only learns a day is finished by seeing the next
// day's first update; a finite offline replay has no such update and must
// call Flush once its input is exhausted to recover the last day's report.
func (e *Engine) Flush(ctx context.Context) (*DayContext, error) {
	if len(e.pending) == 0 {
		day := e.currentDay
		e.currentDay = nil
		return day, nil
	}
	toProcess := e.pending
	e.pending = nil
	if _, err := e.tick(ctx, toProcess); err != nil {
		return nil, err
	}
	day := e.currentDay
	e.currentDay = nil
	return day, nil
}

func (e *Engine) tick(ctx context.Context, updates []GameUpdate) (*DayContext, error) {
	if len(updates) == 0 {
		panic("replay: tick called with no updates")
	}
	first := updates[0]

	var finished *DayContext
	if e.currentDay != nil {
		storedDay := [2]int64{e.currentDay.Season, e.currentDay.Day}
		newDay := [2]int64{first.Season, first.Day}
		switch {
		case newDay[0] < storedDay[0] || (newDay[0] == storedDay[0] && newDay[1] < storedDay[1]):
			return nil, &EngineFatalError{
				Kind:      "DaysOutOfOrder",
				StoredDay: storedDay,
				NewDay:    newDay,
				InGame:    first.GameID,
			}
		case newDay == storedDay:
			// same day, nothing to finish
		default:
			finished = e.currentDay
			e.currentDay = nil
			e.activeGames = make(map[string]*Game)
		}
	}

	if e.currentDay == nil {
		e.logger.Debug("starting new day", "season", first.Season+1, "day", first.Day+1)
		e.currentDay = &DayContext{Season: first.Season, Day: first.Day}
	}

	tickTimestamp := first.Timestamp
	games := make([]GameTickContext, 0, len(updates))
	for _, u := range updates {
		game, ok := e.activeGames[u.GameID]
		if !ok {
			if u.PlayCount >= 3 {
				return nil, fmt.Errorf("replay: first observed update for game %s has play_count %d (expected < 3)", u.GameID, u.PlayCount)
			}
			var err error
			game, err = FromFirstUpdate(ctx, e.store, u)
			if err != nil {
				return nil, err
			}
			e.activeGames[u.GameID] = game
		}
		gameTick, err := runGameTick(ctx, game, u, e.thresholds, e.rng, e.stream, e.logger)
		if err != nil {
			return nil, err
		}
		games = append(games, gameTick)
	}

	e.currentDay.Ticks = append(e.currentDay.Ticks, TickContext{TickTimestamp: tickTimestamp, Games: games})
	return finished, nil
}
