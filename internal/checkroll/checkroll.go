// Package checkroll decodes a reference draw stream — the NDJSON log a
// prior resim run produced — and recognizes each entry's free-text label
// back into a structured purpose, so internal/replay's comparator can line
// each of its own computed draws up against what the reference claims it
// drew for the same purpose.
package checkroll

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// CheckRoll is one reference draw: the recognized purpose it was drawn
// for, the value drawn, and optionally the reference's own pass/threshold
// bookkeeping (present for threshold-variant rolls, absent for choices).
type CheckRoll struct {
	Label     string
	Purpose   Purpose
	Roll      float64
	Passed    *bool
	Threshold *float64
}

type rawCheckRoll struct {
	Label     string   `json:"label"`
	Roll      json.Number `json:"roll"`
	Passed    *bool    `json:"passed,omitempty"`
	Threshold *json.Number `json:"threshold,omitempty"`
}

// RollStream is a FIFO of CheckRolls read from an NDJSON reference log.
type RollStream struct {
	dec  *json.Decoder
	peek *CheckRoll
}

// NewRollStream wraps r as a RollStream. Each line is decoded with
// json.Number (UseNumber), and the roll and threshold text is then parsed
// with json.Number.Float64 to the nearest float64, so the comparator's
// exact == checks see the value the reference text denotes. Only the
// parsed float64 is kept, not the original decimal text.
func NewRollStream(r io.Reader) *RollStream {
	dec := json.NewDecoder(bufio.NewReader(r))
	dec.UseNumber()
	return &RollStream{dec: dec}
}

// Next pops the next reference draw, or returns ok=false at end of stream.
func (s *RollStream) Next() (CheckRoll, bool, error) {
	if s.peek != nil {
		cr := *s.peek
		s.peek = nil
		return cr, true, nil
	}
	var raw rawCheckRoll
	if err := s.dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return CheckRoll{}, false, nil
		}
		return CheckRoll{}, false, fmt.Errorf("checkroll: decode: %w", err)
	}
	roll, err := raw.Roll.Float64()
	if err != nil {
		return CheckRoll{}, false, fmt.Errorf("checkroll: roll %q is not a float: %w", raw.Roll, err)
	}
	var threshold *float64
	if raw.Threshold != nil {
		t, err := raw.Threshold.Float64()
		if err != nil {
			return CheckRoll{}, false, fmt.Errorf("checkroll: threshold %q is not a float: %w", *raw.Threshold, err)
		}
		threshold = &t
	}
	return CheckRoll{
		Label:     raw.Label,
		Purpose:   Recognize(raw.Label),
		Roll:      roll,
		Passed:    raw.Passed,
		Threshold: threshold,
	}, true, nil
}

// Exhausted reports whether the stream has no more entries, without
// consuming one (the engine needs this to distinguish "ran out mid-plan",
// a fatal RanOutOfCheckRolls condition, from a plan that legitimately
// needed no further reference draws).
func (s *RollStream) Exhausted() (bool, error) {
	if s.peek != nil {
		return false, nil
	}
	cr, ok, err := s.Next()
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	s.peek = &cr
	return false, nil
}
