package behavior

import "github.com/phanxgames/bunnyworld/stage"

// Kind identifies an ambient creature type.
type Kind uint8

const (
	Firefly Kind = iota
	Bird
	Butterfly
	MagicParticle
)

var kindNames = [...]string{"firefly", "bird", "butterfly", "magic_particle"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Pattern is one of the motion patterns a creature cycles through.
type Pattern uint8

const (
	Drift Pattern = iota
	Spiral
	Float
	Pause
	Curve
)

var patternNames = [...]string{"drift", "spiral", "float", "pause", "curve"}

func (p Pattern) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return "unknown"
}

// Profile holds the motion constants of one creature kind. Pixel values are
// screen pixels, durations are milliseconds.
type Profile struct {
	Speed    IntRange // px/s
	Margin   float64
	MaxYFrac float64
	Scale    stage.Range
	Depth    int

	// Tilt is the initial angle in degrees. Zero range leaves it at 0.
	Tilt IntRange
	// Spin rotates the node a full turn every Spin ms, forever.
	Spin IntRange
	// Glow makes the alpha flicker.
	Glow bool
	// FaceTravel turns the sprite toward its direction of travel.
	FaceTravel bool
	// FaceTangent turns the sprite along the spiral tangent.
	FaceTangent bool

	DriftBob       IntRange
	DriftBobPeriod int
	DriftWait      IntRange
	// DriftPulse scales the node by 1.1 and back while drifting.
	DriftPulse bool
	// ArrivalTilt re-tilts the sprite when a drift arrives.
	ArrivalTilt IntRange

	SpiralRadius   IntRange
	SpiralDuration IntRange
	SpiralStep     float64 // radians per 16 ms tick
	SpiralFlatten  float64

	FloatDistance IntRange
	FloatDuration IntRange
	FloatDrift    int

	PauseDuration IntRange
	PauseBob      float64
	PausePeriod   int
	// PausePulse dims to 0.7 alpha and scales by 1.15 instead of bobbing.
	PausePulse bool

	MinDistance float64
}

// Bounds returns the area the creature roams on a w x h screen.
func (p Profile) Bounds(w, h float64) Bounds {
	return Bounds{
		MinX: p.Margin,
		MaxX: w - p.Margin,
		MinY: p.Margin,
		MaxY: h * p.MaxYFrac,
	}
}

var profiles = [...]Profile{
	Firefly: {
		Speed:    IntRange{15, 35},
		Margin:   30,
		MaxYFrac: 0.7,
		Scale:    stage.Range{Min: 0.8, Max: 1.2},
		Depth:    45,
		Glow:     true,

		DriftBob:       IntRange{-6, 6},
		DriftBobPeriod: 2000,
		DriftWait:      IntRange{500, 1500},

		SpiralRadius:   IntRange{20, 50},
		SpiralDuration: IntRange{2000, 4000},
		SpiralStep:     0.05,
		SpiralFlatten:  0.5,

		FloatDistance: IntRange{15, 35},
		FloatDuration: IntRange{2000, 4000},
		FloatDrift:    20,

		PauseDuration: IntRange{1500, 3000},
		PauseBob:      2,
		PausePeriod:   1200,

		MinDistance: 30,
	},
	Bird: {
		Speed:      IntRange{40, 80},
		Margin:     40,
		MaxYFrac:   0.6,
		Scale:      stage.Range{Min: 0.7, Max: 1.0},
		Depth:      45,
		Tilt:       IntRange{-10, 10},
		FaceTravel: true,

		DriftBob:       IntRange{-5, 5},
		DriftBobPeriod: 1500,
		DriftWait:      IntRange{500, 1500},

		SpiralRadius:   IntRange{40, 80},
		SpiralDuration: IntRange{3000, 6000},
		SpiralStep:     0.06,
		SpiralFlatten:  0.6,
		FaceTangent:    true,

		FloatDistance: IntRange{20, 50},
		FloatDuration: IntRange{2000, 4000},
		FloatDrift:    40,

		PauseDuration: IntRange{1000, 2500},
		PauseBob:      3,
		PausePeriod:   1000,

		MinDistance: 50,
	},
	Butterfly: {
		Speed:    IntRange{20, 50},
		Margin:   50,
		MaxYFrac: 0.7,
		Scale:    stage.Range{Min: 0.6, Max: 1.0},
		Depth:    50,
		Tilt:     IntRange{-15, 15},

		DriftBob:       IntRange{-10, 10},
		DriftBobPeriod: 2000,
		DriftWait:      IntRange{500, 1500},
		ArrivalTilt:    IntRange{-10, 10},

		SpiralRadius:   IntRange{30, 80},
		SpiralDuration: IntRange{3000, 6000},
		SpiralStep:     0.05,
		SpiralFlatten:  0.5,
		FaceTangent:    true,

		FloatDistance: IntRange{20, 50},
		FloatDuration: IntRange{2000, 4000},
		FloatDrift:    30,

		// Three bobs of 1.5 s.
		PauseDuration: IntRange{3000, 3000},
		PauseBob:      5,
		PausePeriod:   1500,

		MinDistance: 40,
	},
	MagicParticle: {
		Speed:    IntRange{10, 25},
		Margin:   20,
		MaxYFrac: 0.7,
		Scale:    stage.Range{Min: 0.6, Max: 1.0},
		Depth:    40,
		Tilt:     IntRange{0, 360},
		Spin:     IntRange{5000, 10000},

		DriftBob:       IntRange{-5, 5},
		DriftBobPeriod: 3000,
		DriftWait:      IntRange{1000, 2000},
		DriftPulse:     true,

		SpiralRadius:   IntRange{15, 40},
		SpiralDuration: IntRange{4000, 8000},
		SpiralStep:     0.03,
		SpiralFlatten:  0.5,

		FloatDistance: IntRange{10, 30},
		FloatDuration: IntRange{3000, 6000},
		FloatDrift:    15,

		PauseDuration: IntRange{2000, 4000},
		PausePeriod:   1500,
		PausePulse:    true,

		MinDistance: 20,
	},
}

// ProfileFor returns the motion profile of kind. Unknown kinds get the
// firefly profile.
func ProfileFor(kind Kind) Profile {
	if int(kind) < len(profiles) {
		return profiles[kind]
	}
	return profiles[Firefly]
}
