package checkroll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opencoff/go-chd"
)

// Kind mirrors internal/replay.PurposeKind's set of variant names, kept as
// an independent closed string enumeration here so this package never has
// to import internal/replay (the comparator lives on the replay side and
// consumes this package, not the reverse).
type Kind string

const (
	KindParty              Kind = "Party"
	KindPartyTargetTeam    Kind = "PartyTargetTeam"
	KindStealFielder       Kind = "StealFielder"
	KindSteal              Kind = "Steal"
	KindMildPitch          Kind = "MildPitch"
	KindInStrikeZone       Kind = "InStrikeZone"
	KindSwing              Kind = "Swing"
	KindContact            Kind = "Contact"
	KindFairOrFoul         Kind = "FairOrFoul"
	KindFielder            Kind = "Fielder"
	KindOut                Kind = "Out"
	KindFly                Kind = "Fly"
	KindHomeRun            Kind = "HomeRun"
	KindDouble             Kind = "Double"
	KindTriple             Kind = "Triple"
	KindAdvance            Kind = "Advance"
	KindDoublePlayHappens  Kind = "DoublePlayHappens"
	KindDoublePlayWhere    Kind = "DoublePlayWhere"
	KindUnparsed           Kind = "Unparsed"
)

// Purpose is the recognized form of a reference draw's label: a kind plus
// whatever parameter that kind's label text carried (fielder name, base
// number, raw text for the Unparsed fallback).
type Purpose struct {
	Kind    Kind
	Fielder string
	Base    int64
	Raw     string
}

// fixedLabels is the closed set of labels with no parameters, exactly the
// text internal/replay.RollPurpose.String() renders for those variants.
var fixedLabels = []struct {
	text string
	kind Kind
}{
	{"Was there a party?", KindParty},
	{"Which team partied?", KindPartyTargetTeam},
	{"Choose the steal fielder", KindStealFielder},
	{"Mild pitch?", KindMildPitch},
	{"Ball in strike zone?", KindInStrikeZone},
	{"Did batter swing?", KindSwing},
	{"Did batter make contact?", KindContact},
	{"Was the ball fair?", KindFairOrFoul},
	{"Choose the fielder", KindFielder},
	{"Was it a flyout?", KindFly},
	{"Was it a home run?", KindHomeRun},
	{"Did the runner advance?", KindAdvance},
	{"Was there a double play?", KindDoublePlayHappens},
	{"Where was the double play?", KindDoublePlayWhere},
}

// fixedIndex is a minimal perfect hash over fixedLabels' text, built once.
// It only ever needs to answer "which of these closed labels is this",
// never membership for arbitrary strings — any candidate it returns is
// verified against the stored text before being trusted, the standard way
// to use a perfect hash that wasn't built to also reject unknown keys.
var fixedIndex *chd.CHD

func init() {
	b := chd.NewBuilder()
	for i, l := range fixedLabels {
		b.Add([]byte(l.text), uint64(i))
	}
	h, err := b.Freeze(0.5)
	if err != nil {
		panic(fmt.Sprintf("checkroll: failed to build label hash: %s", err))
	}
	fixedIndex = h
}

func lookupFixed(label string) (Kind, bool) {
	idx, ok := fixedIndex.Find([]byte(label))
	if !ok || int(idx) >= len(fixedLabels) || fixedLabels[idx].text != label {
		return "", false
	}
	return fixedLabels[idx].kind, true
}

// Recognize maps a reference draw stream's label text back to a Purpose,
// covering every fixed label, every parameterized label shape the planner
// emits, and falling back to Unparsed(raw) for anything else.
func Recognize(label string) Purpose {
	if kind, ok := lookupFixed(label); ok {
		return Purpose{Kind: kind, Raw: label}
	}

	if base, ok := parseSuffixInt(label, "Did the runner steal base ", "?"); ok {
		return Purpose{Kind: KindSteal, Base: base, Raw: label}
	}
	if name, ok := parsePrefixSuffix(label, "Did ", " catch the out?"); ok {
		return Purpose{Kind: KindOut, Fielder: name, Raw: label}
	}
	if name, ok := parsePrefixSuffix(label, "Was it a double? (with fielder ", ")"); ok {
		return Purpose{Kind: KindDouble, Fielder: name, Raw: label}
	}
	if name, ok := parsePrefixSuffix(label, "Was it a triple? (with fielder ", ")"); ok {
		return Purpose{Kind: KindTriple, Fielder: name, Raw: label}
	}
	if raw, ok := strings.CutPrefix(label, "Other: "); ok {
		return Purpose{Kind: KindUnparsed, Raw: raw}
	}

	return Purpose{Kind: KindUnparsed, Raw: label}
}

func parsePrefixSuffix(s, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, suffix) {
		return "", false
	}
	inner := s[len(prefix) : len(s)-len(suffix)]
	if inner == "" {
		return "", false
	}
	return inner, true
}

func parseSuffixInt(s, prefix, suffix string) (int64, bool) {
	inner, ok := parsePrefixSuffix(s, prefix, suffix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(inner, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
