package replay

import (
	"strconv"

	"github.com/lox/blaseplay/internal/checkroll"
)

// ThreeWayMatch is the three-valued outcome of comparing an optional local
// value against an optional reference value.
type ThreeWayMatch int

const (
	Matches ThreeWayMatch = iota
	MineMissingResimExists
	MineExistsResimMissing
	Mismatch
)

// FloatMismatch renders a roll/threshold mismatch as the longest common
// decimal-string prefix, the resim's tail after that prefix, and any local
// characters beyond the resim's length, per spec.md §4.7's float-mismatch
// rendering rule.
type FloatMismatch struct {
	Mine               float64
	Resim              float64
	MatchingDigits     string
	MismatchingDigits  string
	ExtraDigits        string
}

// boolMismatch and FloatMismatch carry the two sides of a Mismatch-valued
// ThreeWayMatch for the passed/threshold sub-fields.
type boolMismatch struct {
	Mine, Resim bool
}

type floatThreeWay struct {
	Match   ThreeWayMatch
	Details *FloatMismatch
}

type boolThreeWay struct {
	Match   ThreeWayMatch
	Details *boolMismatch
}

// RollMatch compares the two sides' roll values via decimal-string common
// prefix, as the spec's float mismatch rendering requires (not a tolerance
// comparison — exact decimal text divergence).
type RollMatch struct {
	Equal   bool
	Details *FloatMismatch
}

// PurposeMatch compares the rendered purpose text on each side.
type PurposeMatch struct {
	Equal      bool
	Mine       string
	Resim      string
}

// ResimMatchContext is the comparator's output for one paired draw.
// Threshold-variant draws populate Passed and Threshold; choice-variant
// draws leave both nil (spec.md §4.7: "Choice variant: rolls and purpose
// only").
type ResimMatchContext struct {
	Roll      RollMatch
	Purpose   PurposeMatch
	Passed    *boolThreeWay
	Threshold *floatThreeWay
}

// decimalCommonPrefix computes the longest common character prefix of the
// two values' default decimal renderings (strconv.FormatFloat with 'f',
// shortest round-trip precision), splitting each side's remainder into the
// resim's mismatching tail and the local value's extra tail beyond the
// reference's length.
func decimalCommonPrefix(mine, resim float64) FloatMismatch {
	mineText := strconv.FormatFloat(mine, 'f', -1, 64)
	resimText := strconv.FormatFloat(resim, 'f', -1, 64)

	n := 0
	for n < len(mineText) && n < len(resimText) && mineText[n] == resimText[n] {
		n++
	}

	mismatching := ""
	if n < len(resimText) {
		mismatching = resimText[n:]
	}
	extra := ""
	if len(mineText) > len(resimText) {
		extra = mineText[len(resimText):]
	}

	return FloatMismatch{
		Mine:              mine,
		Resim:             resim,
		MatchingDigits:    mineText[:n],
		MismatchingDigits: mismatching,
		ExtraDigits:       extra,
	}
}

func compareFloats(mine, resim float64) RollMatch {
	if mine == resim {
		return RollMatch{Equal: true}
	}
	details := decimalCommonPrefix(mine, resim)
	return RollMatch{Equal: false, Details: &details}
}

func compareBoolPtrs(mine, resim *bool) boolThreeWay {
	switch {
	case mine == nil && resim == nil:
		return boolThreeWay{Match: Matches}
	case mine == nil:
		return boolThreeWay{Match: MineMissingResimExists}
	case resim == nil:
		return boolThreeWay{Match: MineExistsResimMissing}
	case *mine == *resim:
		return boolThreeWay{Match: Matches}
	default:
		return boolThreeWay{Match: Mismatch, Details: &boolMismatch{Mine: *mine, Resim: *resim}}
	}
}

func compareFloatPtrs(mine, resim *float64) floatThreeWay {
	switch {
	case mine == nil && resim == nil:
		return floatThreeWay{Match: Matches}
	case mine == nil:
		return floatThreeWay{Match: MineMissingResimExists}
	case resim == nil:
		return floatThreeWay{Match: MineExistsResimMissing}
	case *mine == *resim:
		return floatThreeWay{Match: Matches}
	default:
		d := decimalCommonPrefix(*mine, *resim)
		return floatThreeWay{Match: Mismatch, Details: &d}
	}
}

// Compare pairs one locally-computed draw against the corresponding entry
// from a reference draw stream. Choice-variant draws (RollUsage.IsChoice)
// compare only roll value and purpose text; threshold-variant draws also
// compare the pass/fail outcome and the threshold itself.
func Compare(mine RollData, resim *checkroll.CheckRoll) *ResimMatchContext {
	if resim == nil {
		return nil
	}

	mineLabel := mine.Purpose.String()
	ctx := &ResimMatchContext{
		Roll:    compareFloats(mine.Roll, resim.Roll),
		Purpose: PurposeMatch{Equal: mineLabel == resim.Label, Mine: mineLabel, Resim: resim.Label},
	}

	if mine.Usage.IsChoice {
		return ctx
	}

	passed := compareBoolPtrs(mine.Usage.Passed, resim.Passed)
	threshold := compareFloatPtrs(mine.Usage.Threshold, resim.Threshold)
	ctx.Passed = &passed
	ctx.Threshold = &threshold
	return ctx
}
