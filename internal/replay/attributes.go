package replay

// Attribute is a fixed enumeration of player attributes. Storage is a dense
// array indexed by this enum rather than a string-keyed map, per the
// "dynamic dispatch over attributes" design note: the attribute set is
// closed and known at compile time.
type Attribute int

const (
	Buoyancy Attribute = iota
	Divinity
	Martyrdom
	Moxie
	Musclitude
	Patheticism
	Thwackability
	Tragicness
	Ruthlessness
	Overpowerment
	Unthwackability
	Shakespearianism
	Suppression
	Coldness
	BaseThirst
	Laserlikeness
	Continuation
	GroundFriction
	Indulgence
	Anticapitalism
	Chasiness
	Omniscience
	Tenaciousness
	Watchfulness
	numAttributes
)

func (a Attribute) String() string {
	names := [numAttributes]string{
		"Buoyancy", "Divinity", "Martyrdom", "Moxie", "Musclitude",
		"Patheticism", "Thwackability", "Tragicness", "Ruthlessness",
		"Overpowerment", "Unthwackability", "Shakespearianism", "Suppression",
		"Coldness", "BaseThirst", "Laserlikeness", "Continuation",
		"GroundFriction", "Indulgence", "Anticapitalism", "Chasiness",
		"Omniscience", "Tenaciousness", "Watchfulness",
	}
	if a < 0 || int(a) >= len(names) {
		return "Unknown"
	}
	return names[a]
}

// Attributes is the dense per-player attribute bundle.
type Attributes [numAttributes]float64

// Player is immutable at replay time: an opaque id, a display name, and a
// fixed attribute bundle. Vibes is a time-varying multiplier read at use
// site by threshold formulas; the source does not model it, so it defaults
// to zero (a neutral vibe factor of 1.0) unless a caller sets it.
type Player struct {
	ID    string
	Name  string
	Attrs Attributes
	Vibes float64
}

// Attribute returns a read handle for one of the player's attributes,
// carrying the player's current vibes for formulas that want the vibe
// factor applied at the call site.
func (p Player) Attribute(a Attribute) AttributeValue {
	return AttributeValue{base: p.Attrs[a], vibes: p.Vibes}
}

// AttributeValue is a single attribute read, exposing both the multiplied
// and inverse-multiplied views the threshold formulas use.
type AttributeValue struct {
	base  float64
	vibes float64
}

// multiplier stands in for item/stadium multiplier contributions, which
// this replay engine does not model (no stadium or item data source
// exists in scope); it is always neutral.
func (v AttributeValue) multiplier() float64 { return 1.0 }

// Multiplied returns base_value * multiplier().
func (v AttributeValue) Multiplied() float64 { return v.base * v.multiplier() }

// InverseMultiplied returns base_value / multiplier().
func (v AttributeValue) InverseMultiplied() float64 { return v.base * 1.0 / v.multiplier() }

// VibeFactor returns (1 + 0.2*vibes) for this read.
func (v AttributeValue) VibeFactor() float64 { return vibeFactor(v.vibes) }

func vibeFactor(vibes float64) float64 { return 1 + 0.2*vibes }

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
