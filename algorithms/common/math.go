package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Octave is the size of the octave in semitones.
const Octave = 12.0

// MiddleC is the pitch of middle C.
const MiddleC = 60.0

// Voice counts covered by the sector geometry.
const (
	MinVoices = 3
	MaxVoices = 11
)

// Modulo is the Euclidean remainder of dividend by divisor, using floor
// division for positive divisors and ceiling division otherwise.
func Modulo(dividend, divisor float64) float64 {
	var quotient float64
	if divisor > 0 {
		quotient = math.Floor(dividend / divisor)
	} else {
		quotient = math.Ceil(dividend / divisor)
	}
	return dividend - quotient*divisor
}

// SnapModulo is Modulo with remainders that round to the divisor, or lie
// within tolerance of zero, returned as exactly zero.
func SnapModulo(dividend, divisor float64) float64 {
	r := Modulo(dividend, divisor)
	if Eq(r, divisor) || Eq(r, 0) {
		return 0
	}
	return r
}

// CeilTolerance is math.Ceil, except that values tolerance-equal to an
// integer return that integer.
func CeilTolerance(x float64) float64 {
	r := math.Round(x)
	if Eq(x, r) {
		return Clean(r)
	}
	return Clean(math.Ceil(x))
}

// Clean maps negative zero, and values within tolerance of zero, to +0.
func Clean(x float64) float64 {
	if x == 0 || Eq(x, 0) {
		return 0
	}
	return x
}

// Sum returns the sum of the values using gonum
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Sum(data)
}

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Dot returns the inner product of two equal-length vectors.
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// Norm returns the Euclidean length of a vector.
func Norm(data []float64) float64 {
	return floats.Norm(data, 2)
}

// EuclideanDistance returns the L2 distance between two points.
func EuclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanDistance returns the L1 (taxicab) distance between two points.
func ManhattanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// Normalize returns a unit-length copy of the vector; the zero vector is
// returned unchanged.
func Normalize(data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	norm := Norm(out)
	if norm == 0 {
		return out
	}
	floats.Scale(1/norm, out)
	return out
}
