package replay

import "github.com/lox/blaseplay/internal/rng"

// boolPtr and intPtr are small literal-to-pointer helpers; Go has no
// address-of-literal syntax.
func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int   { return &i }

// standardRolls is the prefix every pitch sequence starts with: Party,
// conditionally PartyTargetTeam, StealFielder, then one Steal roll per
// runner on base in descending base order. It is never invoked for the
// no-op update kinds (Empty, PlayBall, InningTurnover, BatterUp,
// InningEnd) — those produce zero rolls entirely, matching
// rolls_for_update's literal empty-vec arms.
func standardRolls(r *rng.Rng, th Thresholds, g GameAtTick) []RollData {
	var rolls []RollData

	partyThreshold := th.Party
	party := rollForThreshold(r, RollPurpose{Kind: PurposeParty}, &partyThreshold, nil)
	passed := party.Roll < partyThreshold
	party.Usage.Passed = &passed
	rolls = append(rolls, party)

	// PartyTargetTeam completes a TODO the original source left dead
	// (the enum variant exists but rolls_for_update never emits it);
	// spec.md directs emitting it whenever the party roll passes.
	if passed {
		rolls = append(rolls, rollForChoice(r, RollPurpose{Kind: PurposePartyTargetTeam}, 2, nil))
	}

	_, rolls = chooseFielderForPurpose(r, g, rolls, RollPurpose{Kind: PurposeStealFielder})

	for _, runner := range runnersDescending(g.RunnersAtStart) {
		rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeSteal, Base: int64(runner.Base)}, nil, nil))
	}

	return rolls
}

func chooseFielderForPurpose(r *rng.Rng, g GameAtTick, rolls []RollData, purpose RollPurpose) (Player, []RollData) {
	fielders := g.Fielders()
	r.Step(1)
	idx := int(r.Value() * float64(len(fielders)))
	if idx >= len(fielders) {
		idx = len(fielders) - 1
	}
	fielder := fielders[idx]
	rolls = append(rolls, RollData{
		StateString: r.String(),
		Roll:        r.Value(),
		Purpose:     purpose,
		Usage:       RollUsage{IsChoice: true, NumOptions: len(fielders), SelectedOption: intPtr(idx)},
	})
	return fielder, rolls
}

func chooseFielder(r *rng.Rng, g GameAtTick, rolls []RollData) (Player, []RollData) {
	return chooseFielderForPurpose(r, g, rolls, RollPurpose{Kind: PurposeFielder})
}

// rollsForPitch is standardRolls plus MildPitch, InStrikeZone, and Swing.
// inStrikeZone, when known from the parsed text (Ball is always false,
// Strike/StrikeoutLooking always true), is asserted as the InStrikeZone
// roll's expected pass. When unknown (fouls may be in or out of zone),
// the Swing threshold's in-zone argument is instead derived from the
// InStrikeZone roll's own resolved outcome — spec.md's resolution of the
// open question the source left as a placeholder.
func rollsForPitch(r *rng.Rng, th Thresholds, g GameAtTick, inStrikeZone *bool) []RollData {
	rolls := standardRolls(r, th, g)

	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeMildPitch}, nil, boolPtr(false)))

	zoneThreshold := th.InStrikeZone(g)
	zoneRoll := rollForThreshold(r, RollPurpose{Kind: PurposeInStrikeZone}, &zoneThreshold, inStrikeZone)
	rolls = append(rolls, zoneRoll)

	resolvedZone := inStrikeZone
	if resolvedZone == nil {
		z := zoneRoll.Roll < zoneThreshold
		resolvedZone = &z
	}

	var swingThreshold float64
	if *resolvedZone {
		swingThreshold = th.SwingOnPitchInZone(g)
	} else {
		swingThreshold = th.SwingOnPitchNotInZone(g)
	}
	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeSwing}, &swingThreshold, nil))

	return rolls
}

func rollsForContact(r *rng.Rng, th Thresholds, g GameAtTick) []RollData {
	rolls := rollsForPitch(r, th, g, nil)
	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeContact}, nil, nil))
	return rolls
}

func rollsForFoulOrFair(r *rng.Rng, th Thresholds, g GameAtTick, fair bool) []RollData {
	rolls := rollsForContact(r, th, g)
	threshold := th.FairBall(g)
	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeFairOrFoul}, &threshold, boolPtr(fair)))
	return rolls
}

func rollsForFoul(r *rng.Rng, th Thresholds, g GameAtTick) []RollData {
	return rollsForFoulOrFair(r, th, g, false)
}

// rollsForFair additionally chooses a fielder and rolls Out. The source's
// own comment flags passed=is_hit as backwards-named ("described as 'was
// it an out' but a hit is the pass condition"); spec.md directs keeping
// the behavior as-is.
func rollsForFair(r *rng.Rng, th Thresholds, g GameAtTick, isHit bool) ([]RollData, Player) {
	rolls := rollsForFoulOrFair(r, th, g, true)
	fielder, rolls := chooseFielder(r, g, rolls)
	threshold := th.Out(g, fielder)
	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeOut, Fielder: fielder.Name}, &threshold, boolPtr(isHit)))
	return rolls, fielder
}

func rollsForOut(r *rng.Rng, th Thresholds, g GameAtTick, isFlyout, isDP bool) []RollData {
	rolls, _ := rollsForFair(r, th, g, false)

	_, rolls = chooseFielder(r, g, rolls)
	flyThreshold := th.Fly(g)
	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeFly}, &flyThreshold, boolPtr(isFlyout)))

	if !isFlyout {
		_, rolls = chooseFielder(r, g, rolls)
	}

	eligibleForDoublePlay := len(g.RunnersAtStart) > 0 && g.Outs+1 >= g.MaxOuts
	if eligibleForDoublePlay {
		rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeDoublePlayHappens}, nil, nil))
		if isDP {
			rolls = append(rolls, rollForChoice(r, RollPurpose{Kind: PurposeDoublePlayWhere}, len(g.RunnersAtStart), nil))
		}
	}

	return rolls
}

func rollsForBasicOut(r *rng.Rng, th Thresholds, g GameAtTick, isFlyout bool) []RollData {
	return rollsForOut(r, th, g, isFlyout, false)
}

func rollsForDoublePlay(r *rng.Rng, th Thresholds, g GameAtTick) []RollData {
	return rollsForOut(r, th, g, false, true)
}

// rollsForHit generalizes rolls_for_hit beyond its "TODO Support Hits
// other than Singles" limitation: base_after_auto uses the Hit's actual
// bases count, and runners whose starting base already puts them at or
// past third are skipped entirely (no roll, deemed scored) rather than
// always rolling one Advance per runner. Both are spec.md's explicit
// generalization of the source's single-only behavior.
func rollsForHit(r *rng.Rng, th Thresholds, g GameAtTick, bases int64, scored []string) []RollData {
	rolls, _ := rollsForFair(r, th, g, true)

	hrThreshold := th.HomeRun(g)
	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeHomeRun}, &hrThreshold, boolPtr(false)))

	fielder, rolls := chooseFielder(r, g, rolls)

	doubleThreshold := th.Double(g, fielder)
	doublePassed := bases == 2
	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeDouble, Fielder: fielder.Name}, &doubleThreshold, &doublePassed))

	tripleThreshold := th.Triple(g, fielder)
	rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeTriple, Fielder: fielder.Name}, &tripleThreshold, boolPtr(false)))

	for _, runner := range runnersDescending(g.RunnersAtStart) {
		if runner.Base >= 3 {
			continue
		}
		baseAfterAuto := int64(runner.Base) + bases
		if baseAfterAuto >= 4 {
			continue
		}

		occupied := false
		for _, other := range g.RunnersAtStart {
			if other.PlayerID != runner.PlayerID && baseAfterAuto+1 < 4 && int64(other.Base)+bases == baseAfterAuto+1 {
				occupied = true
				break
			}
		}
		if occupied {
			continue
		}

		baseAtEnd, _ := runnerAtEnd(g.RunnersAtEnd, runner.PlayerID)
		advanced := int64(baseAtEnd) > baseAfterAuto

		runnerPlayer, _ := g.PlayerByID(runner.PlayerID)
		advanceThreshold := th.AdvanceOnHit(runnerPlayer, fielder)
		rolls = append(rolls, rollForThreshold(r, RollPurpose{Kind: PurposeAdvance, Base: baseAfterAuto, Advanced: advanced}, &advanceThreshold, &advanced))
	}

	return rolls
}

// PlanRolls returns the ordered sequence of draw specs a host would have
// consumed for this parsed update, dispatching on its kind exactly as
// rolls_for_update does: no-op kinds draw nothing at all.
func PlanRolls(r *rng.Rng, u Update, th Thresholds, g GameAtTick) []RollData {
	switch u.Kind {
	case Empty, PlayBall, InningTurnover, BatterUp, InningEnd:
		return nil
	case Ball:
		return rollsForPitch(r, th, g, boolPtr(false))
	case FoulBall:
		return rollsForFoul(r, th, g)
	case StrikeLooking, StrikeoutLooking:
		return rollsForPitch(r, th, g, boolPtr(true))
	case StrikeSwinging, StrikeoutSwinging:
		return rollsForContact(r, th, g)
	case GroundOut:
		return rollsForBasicOut(r, th, g, false)
	case Flyout:
		return rollsForBasicOut(r, th, g, true)
	case Hit:
		return rollsForHit(r, th, g, u.Bases, u.Scored)
	case DoublePlay:
		return rollsForDoublePlay(r, th, g)
	default:
		return nil
	}
}
