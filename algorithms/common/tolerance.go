package common

import "math"

// Tolerance parameters for floating-point comparison. Epsilons scale the
// machine epsilon when either operand is exactly zero; ULPs scale the unit
// in the last place otherwise.
type Tolerance struct {
	Epsilons int `json:"epsilons" yaml:"epsilons"`
	ULPs      int `json:"ulps" yaml:"ulps"`
}

const (
	// DefaultEpsilons and DefaultULPs govern chord comparison.
	DefaultEpsilons = 20
	DefaultULPs     = 200

	// SectorEpsilons and SectorULPs are wider, for comparisons made after
	// multi-step geometric transforms where rounding accumulates.
	SectorEpsilons = 1000
	SectorULPs     = 10000
)

// MachineEpsilon is the difference between 1 and the next float64.
const MachineEpsilon = 2.220446049250313e-16

var (
	DefaultTolerance = Tolerance{Epsilons: DefaultEpsilons, ULPs: DefaultULPs}
	SectorTolerance  = Tolerance{Epsilons: SectorEpsilons, ULPs: SectorULPs}
)

// ULP returns the unit in the last place of x.
func ULP(x float64) float64 {
	x = math.Abs(x)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return math.NaN()
	}
	if x == math.MaxFloat64 {
		return x - math.Nextafter(x, 0)
	}
	return math.Nextafter(x, math.Inf(1)) - x
}

// EqTolerance reports whether a and b are equal within tolerance.
//
// Exact equality is true. An operand at the float64 maximum, infinite or NaN
// is never equal to anything else. When either operand is exactly zero the
// difference must not exceed epsilons machine epsilons; otherwise it must not
// exceed ulps units in the last place of the larger operand.
func EqTolerance(a, b float64, epsilons, ulps int) bool {
	if a == b {
		return true
	}
	if a == math.MaxFloat64 || b == math.MaxFloat64 {
		return false
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	difference := math.Abs(a - b)
	if a == 0 || b == 0 {
		return difference <= float64(epsilons)*MachineEpsilon
	}
	magnitude := math.Max(math.Abs(a), math.Abs(b))
	return difference <= float64(ulps)*ULP(magnitude)
}

// LtTolerance is a < b with tolerance-equal values never less.
func LtTolerance(a, b float64, epsilons, ulps int) bool {
	if EqTolerance(a, b, epsilons, ulps) {
		return false
	}
	return a < b
}

// LeTolerance is a < b or a equal to b within tolerance.
func LeTolerance(a, b float64, epsilons, ulps int) bool {
	if EqTolerance(a, b, epsilons, ulps) {
		return true
	}
	return a < b
}

// GtTolerance is a > b with tolerance-equal values never greater.
func GtTolerance(a, b float64, epsilons, ulps int) bool {
	if EqTolerance(a, b, epsilons, ulps) {
		return false
	}
	return a > b
}

// GeTolerance is a > b or a equal to b within tolerance.
func GeTolerance(a, b float64, epsilons, ulps int) bool {
	if EqTolerance(a, b, epsilons, ulps) {
		return true
	}
	return a > b
}

func (t Tolerance) Eq(a, b float64) bool { return EqTolerance(a, b, t.Epsilons, t.ULPs) }
func (t Tolerance) Lt(a, b float64) bool { return LtTolerance(a, b, t.Epsilons, t.ULPs) }
func (t Tolerance) Le(a, b float64) bool { return LeTolerance(a, b, t.Epsilons, t.ULPs) }
func (t Tolerance) Gt(a, b float64) bool { return GtTolerance(a, b, t.Epsilons, t.ULPs) }
func (t Tolerance) Ge(a, b float64) bool { return GeTolerance(a, b, t.Epsilons, t.ULPs) }

// PitchEq is Eq with an absolute floor of Epsilons machine epsilons per
// octave. Pitches near zero that arrive there by subtraction, as after
// removing a chord's mean, carry absolute error of the order of the
// operands they came from, which a relative test alone rejects.
func (t Tolerance) PitchEq(a, b float64) bool {
	if t.Eq(a, b) {
		return true
	}
	return math.Abs(a-b) <= float64(t.Epsilons)*MachineEpsilon*Octave
}

// PitchCompare returns -1, 0 or +1 with equality decided by PitchEq.
func (t Tolerance) PitchCompare(a, b float64) int {
	switch {
	case t.PitchEq(a, b):
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// Eq compares with the default chord tolerance.
func Eq(a, b float64) bool { return DefaultTolerance.Eq(a, b) }

// Lt compares with the default chord tolerance.
func Lt(a, b float64) bool { return DefaultTolerance.Lt(a, b) }

// Le compares with the default chord tolerance.
func Le(a, b float64) bool { return DefaultTolerance.Le(a, b) }

// Gt compares with the default chord tolerance.
func Gt(a, b float64) bool { return DefaultTolerance.Gt(a, b) }

// Ge compares with the default chord tolerance.
func Ge(a, b float64) bool { return DefaultTolerance.Ge(a, b) }

// Compare returns -1, 0 or +1 under the default tolerance.
func Compare(a, b float64) int {
	switch {
	case Eq(a, b):
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}
