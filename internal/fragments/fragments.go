// Package fragments loads the catalog of replay windows: named time spans
// to feed to the engine, each with its own initial generator state and an
// optional reference draw stream to compare against.
package fragments

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blaseplay/internal/checkroll"
	"github.com/lox/blaseplay/internal/rng"
)

// Catalog is the decoded HCL document: a flat list of fragments.
type Catalog struct {
	Fragments []FragmentConfig `hcl:"fragment,block"`
}

// FragmentConfig is one catalog entry as it appears on disk.
type FragmentConfig struct {
	Label       string `hcl:"label,label"`
	StartTime   string `hcl:"start_time"`
	EndTime     string `hcl:"end_time"`
	RNG         string `hcl:"rng"`
	InitialStep int32  `hcl:"initial_step,optional"`
	RollStream  string `hcl:"roll_stream,optional"`
}

// Fragment is one decoded, validated catalog entry: a time window, the
// generator state to start the engine from, and an optional reference
// stream opened from the file the catalog points at.
type Fragment struct {
	Label     string
	StartTime time.Time
	EndTime   time.Time
	RNG       rng.Rng
	Stream    *checkroll.RollStream
}

// Load parses filename as an HCL fragment catalog, validating every entry
// before returning: start_time before end_time, and an rng field that
// parses via rng.ParseState. A fragment naming a roll_stream file that
// can't be opened is a load error, not a per-fragment runtime failure —
// spec.md §7 classifies a corrupt or incomplete catalog as a setup error
// that must prevent the replay from starting at all.
func Load(filename string) ([]Fragment, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("fragments: parse %s: %s", filename, diags.Error())
	}

	var catalog Catalog
	diags = gohcl.DecodeBody(file.Body, nil, &catalog)
	if diags.HasErrors() {
		return nil, fmt.Errorf("fragments: decode %s: %s", filename, diags.Error())
	}

	fragments := make([]Fragment, len(catalog.Fragments))
	for i, fc := range catalog.Fragments {
		f, err := resolve(fc)
		if err != nil {
			return nil, fmt.Errorf("fragments: %s: %w", fc.Label, err)
		}
		fragments[i] = f
	}
	return fragments, nil
}

func resolve(fc FragmentConfig) (Fragment, error) {
	start, err := time.Parse(time.RFC3339, fc.StartTime)
	if err != nil {
		return Fragment{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, fc.EndTime)
	if err != nil {
		return Fragment{}, fmt.Errorf("end_time: %w", err)
	}
	if !start.Before(end) {
		return Fragment{}, fmt.Errorf("start_time %s must be before end_time %s", start, end)
	}

	state, err := rng.ParseState(fc.RNG)
	if err != nil {
		return Fragment{}, fmt.Errorf("rng: %w", err)
	}
	if fc.InitialStep != 0 {
		state.Step(fc.InitialStep)
	}

	var stream *checkroll.RollStream
	if fc.RollStream != "" {
		f, err := os.Open(fc.RollStream)
		if err != nil {
			return Fragment{}, fmt.Errorf("roll_stream: %w", err)
		}
		stream = checkroll.NewRollStream(f)
	}

	return Fragment{Label: fc.Label, StartTime: start, EndTime: end, RNG: state, Stream: stream}, nil
}
