package replay

import "math"

// Ballpark holds the stadium attributes the threshold formulas read.
// Every field defaults to 0.5 when no stadium is modeled, per spec.md
// §4.4; the additive Sum* fields represent a stadium's contribution to
// the corresponding hit-type formula.
type Ballpark struct {
	Forwardness   float64
	Obtuseness    float64
	Viscosity     float64
	Grandiosity   float64
	Ominousness   float64
	Inconvenience float64
	SumHR         float64
	Sum2B         float64
	Sum3B         float64
}

// DefaultBallpark is the neutral stadium used when none is configured.
func DefaultBallpark() Ballpark {
	return Ballpark{
		Forwardness: 0.5, Obtuseness: 0.5, Viscosity: 0.5,
		Grandiosity: 0.5, Ominousness: 0.5, Inconvenience: 0.5,
		SumHR: 0.5, Sum2B: 0.5, Sum3B: 0.5,
	}
}

// mysticism is a constant in every known formula revision; no source ever
// wires it to an attribute.
const mysticism = 0.5

// Thresholds bundles the configured constants (party threshold, ballpark)
// the pure threshold formulas close over.
type Thresholds struct {
	Party    float64
	Ballpark Ballpark
}

// NewThresholds builds a Thresholds with the default neutral ballpark.
func NewThresholds(party float64) Thresholds {
	return Thresholds{Party: party, Ballpark: DefaultBallpark()}
}

func (t Thresholds) InStrikeZone(g GameAtTick) float64 {
	pitcher, batter := g.Pitcher(), g.Batter()
	ruth := pitcher.Attribute(Ruthlessness)
	musc := batter.Attribute(Musclitude)
	v := 0.2 + 0.35*ruth.Multiplied()*ruth.VibeFactor() + 0.2*t.Ballpark.Forwardness + 0.1*musc.Multiplied()
	return math.Min(0.9, v)
}

func (t Thresholds) SwingOnPitchInZone(g GameAtTick) float64 {
	batter, pitcher := g.Batter(), g.Pitcher()
	avg := (batter.Attribute(Divinity).Multiplied() +
		batter.Attribute(Musclitude).Multiplied() +
		batter.Attribute(Patheticism).InverseMultiplied() +
		batter.Attribute(Thwackability).Multiplied()) / 4.0
	return 0.7 + 0.35*avg - 0.4*pitcher.Attribute(Ruthlessness).Multiplied() + 0.2*(t.Ballpark.Viscosity-0.5)
}

func (t Thresholds) SwingOnPitchNotInZone(g GameAtTick) float64 {
	pitcher, batter := g.Pitcher(), g.Batter()
	combined := (12*pitcher.Attribute(Ruthlessness).Multiplied() -
		5*batter.Attribute(Moxie).Multiplied() +
		5*batter.Attribute(Patheticism).Multiplied() +
		4*t.Ballpark.Viscosity) / 20.0
	return clamp(0.1, 0.95, math.Pow(combined, 1.5))
}

// MadeContact is a fixed placeholder; the source never replaces this with
// an attribute-derived formula.
func (t Thresholds) MadeContact(g GameAtTick) float64 { return 0.2 }

func (t Thresholds) MildPitch(g GameAtTick) float64 {
	return 0.0005 + 0.004*mysticism
}

func (t Thresholds) FairBall(g GameAtTick) float64 {
	batter := g.Batter()
	avg := (batter.Attribute(Musclitude).Multiplied() +
		batter.Attribute(Thwackability).Multiplied() +
		batter.Attribute(Divinity).Multiplied()) / 3.0
	return 0.25 + 0.1*t.Ballpark.Forwardness - 0.1*t.Ballpark.Obtuseness + 0.1*avg*vibeFactor(batter.Vibes)
}

func (t Thresholds) Out(g GameAtTick, fielder Player) float64 {
	batter, pitcher := g.Batter(), g.Pitcher()
	batThwack := batter.Attribute(Thwackability).Multiplied() * vibeFactor(batter.Vibes)
	pitUnthwack := pitcher.Attribute(Unthwackability).Multiplied() * vibeFactor(pitcher.Vibes)
	fldOmni := fielder.Attribute(Omniscience).Multiplied() * vibeFactor(fielder.Vibes)
	bp := t.Ballpark
	return 0.315 + 0.1*batThwack - 0.08*pitUnthwack - 0.07*fldOmni +
		0.0145*(bp.Grandiosity-0.5) + 0.0085*(bp.Ominousness-0.5) -
		0.011*(bp.Inconvenience-0.5) - 0.005*(bp.Viscosity-0.5) + 0.01*(bp.Forwardness-0.5)
}

// Fly preserves an upstream typo: suppression is read from the batter's
// attributes even though suppression is a pitching attribute.
func (t Thresholds) Fly(g GameAtTick) float64 {
	batter := g.Batter()
	buoyancyInv := batter.Attribute(Buoyancy).InverseMultiplied()
	suppressionBatter := batter.Attribute(Suppression).Multiplied()
	v := 0.18 + 0.3*buoyancyInv - 0.16*suppressionBatter - 0.1*(t.Ballpark.Ominousness-0.5)
	return math.Max(0.01, v)
}

func (t Thresholds) HomeRun(g GameAtTick) float64 {
	batter, pitcher := g.Batter(), g.Pitcher()
	batDiv := batter.Attribute(Divinity).Multiplied() * vibeFactor(batter.Vibes)
	pitOpw := pitcher.Attribute(Overpowerment).Multiplied()
	pitSupp := pitcher.Attribute(Suppression).Multiplied()
	combined := (10*pitOpw+pitSupp)/11.0*vibeFactor(pitcher.Vibes)
	return 0.12 + 0.16*batDiv - 0.08*combined - 0.18*t.Ballpark.SumHR
}

func (t Thresholds) Double(g GameAtTick, fielder Player) float64 {
	batter, pitcher := g.Batter(), g.Pitcher()
	batMusc := batter.Attribute(Musclitude).Multiplied() * vibeFactor(batter.Vibes)
	pitOpw := pitcher.Attribute(Overpowerment).Multiplied() * vibeFactor(pitcher.Vibes)
	fldChase := fielder.Attribute(Chasiness).Multiplied() * vibeFactor(fielder.Vibes)
	return 0.17 + 0.2*batMusc - 0.04*pitOpw - 0.1*fldChase + t.Ballpark.Sum2B
}

func (t Thresholds) Triple(g GameAtTick, fielder Player) float64 {
	batter, pitcher := g.Batter(), g.Pitcher()
	batGround := batter.Attribute(GroundFriction).Multiplied() * vibeFactor(batter.Vibes)
	pitOpw := pitcher.Attribute(Overpowerment).Multiplied() * vibeFactor(pitcher.Vibes)
	fldChase := fielder.Attribute(Chasiness).Multiplied() * vibeFactor(fielder.Vibes)
	return 0.05 + 0.2*batGround - 0.04*pitOpw - 0.06*fldChase + 0.1*t.Ballpark.Sum3B
}

// AdvanceOnHit is a source-defined placeholder with no canonical formula;
// this is a chosen stand-in, not a verified value: a
// baserunning-attribute-driven threshold shaped like every other
// threshold here, built from the runner's baserunning attributes against
// the fielder's ability to cut them down.
func (t Thresholds) AdvanceOnHit(runner, fielder Player) float64 {
	thirst := runner.Attribute(BaseThirst).Multiplied()
	chase := fielder.Attribute(Chasiness).Multiplied()
	v := 0.4 + 0.25*thirst - 0.2*chase
	return clamp(0.05, 0.95, v)
}
