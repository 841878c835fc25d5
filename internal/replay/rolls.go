package replay

import (
	"fmt"

	"github.com/lox/blaseplay/internal/rng"
)

// PurposeKind tags the semantic label attached to a draw.
type PurposeKind int

const (
	PurposeParty PurposeKind = iota
	PurposePartyTargetTeam
	PurposeStealFielder
	PurposeSteal
	PurposeMildPitch
	PurposeInStrikeZone
	PurposeSwing
	PurposeContact
	PurposeFairOrFoul
	PurposeFielder
	PurposeOut
	PurposeFly
	PurposeHomeRun
	PurposeDouble
	PurposeTriple
	PurposeAdvance
	PurposeDoublePlayHappens
	PurposeDoublePlayWhere
	PurposeUnparsed
)

// RollPurpose is a closed, tagged label. Parameterized variants (Out,
// Double, Triple, Steal, Advance, Unparsed) carry their payload in the
// unused-elsewhere fields below; String renders exactly the text the
// reference draw stream's recognizer must parse back (see
// internal/checkroll).
type RollPurpose struct {
	Kind     PurposeKind
	Fielder  string
	Base     int64
	Advanced bool
	Raw      string
}

func (p RollPurpose) String() string {
	switch p.Kind {
	case PurposeParty:
		return "Was there a party?"
	case PurposePartyTargetTeam:
		return "Which team partied?"
	case PurposeStealFielder:
		return "Choose the steal fielder"
	case PurposeSteal:
		return fmt.Sprintf("Did the runner steal base %d?", p.Base)
	case PurposeMildPitch:
		return "Mild pitch?"
	case PurposeInStrikeZone:
		return "Ball in strike zone?"
	case PurposeSwing:
		return "Did batter swing?"
	case PurposeContact:
		return "Did batter make contact?"
	case PurposeFairOrFoul:
		return "Was the ball fair?"
	case PurposeFielder:
		return "Choose the fielder"
	case PurposeOut:
		return fmt.Sprintf("Did %s catch the out?", p.Fielder)
	case PurposeFly:
		return "Was it a flyout?"
	case PurposeHomeRun:
		return "Was it a home run?"
	case PurposeDouble:
		return fmt.Sprintf("Was it a double? (with fielder %s)", p.Fielder)
	case PurposeTriple:
		return fmt.Sprintf("Was it a triple? (with fielder %s)", p.Fielder)
	case PurposeAdvance:
		return "Did the runner advance?"
	case PurposeDoublePlayHappens:
		return "Was there a double play?"
	case PurposeDoublePlayWhere:
		return "Where was the double play?"
	case PurposeUnparsed:
		return "Other: " + p.Raw
	default:
		return "Unknown"
	}
}

// RollUsage is either Threshold (with optional known threshold/expected
// pass) or Choice (with option cardinality and optional known selection).
type RollUsage struct {
	IsChoice       bool
	Threshold      *float64
	Passed         *bool
	NumOptions     int
	SelectedOption *int
}

// RollOutcome is a four-way classification of a roll's outcome, kept from
// desim/src/main.rs's RollConstraintOutcome: unconstrained choice rolls are
// TrivialSuccess/Unused, thresholded rolls are Success/Failure by comparing
// roll against threshold.
type RollOutcome int

const (
	OutcomeUnused RollOutcome = iota
	OutcomeTrivialSuccess
	OutcomeSuccess
	OutcomeFailure
)

func (u RollUsage) Outcome(roll float64) RollOutcome {
	if u.IsChoice {
		if u.SelectedOption != nil {
			return OutcomeTrivialSuccess
		}
		return OutcomeUnused
	}
	if u.Threshold == nil {
		return OutcomeUnused
	}
	if roll < *u.Threshold {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// RollData is one consumed draw: the PRNG state it was drawn from, the
// value, its purpose, and how that value was to be used.
type RollData struct {
	StateString string
	Roll        float64
	Purpose     RollPurpose
	Usage       RollUsage
}

// rollForThreshold steps the generator once and records a threshold-usage
// draw. threshold and passed may be nil when the plan doesn't assert a
// known value (the draw is still recorded, for the comparator to judge
// against a reference stream).
func rollForThreshold(r *rng.Rng, purpose RollPurpose, threshold *float64, passed *bool) RollData {
	r.Step(1)
	return RollData{
		StateString: r.String(),
		Roll:        r.Value(),
		Purpose:     purpose,
		Usage:       RollUsage{Threshold: threshold, Passed: passed},
	}
}

// rollForChoice steps the generator once and records a choice-usage draw.
func rollForChoice(r *rng.Rng, purpose RollPurpose, numOptions int, selected *int) RollData {
	r.Step(1)
	return RollData{
		StateString: r.String(),
		Roll:        r.Value(),
		Purpose:     purpose,
		Usage:       RollUsage{IsChoice: true, NumOptions: numOptions, SelectedOption: selected},
	}
}
