package voiceleading

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
)

// DistanceMetric selects how the size of a voice leading is measured.
type DistanceMetric int

const (
	TaxicabDistance DistanceMetric = iota
	EuclideanDistance
	ChebyshevDistance
	MovedVoicesDistance
)

// DistanceFunction is a function type for computing the distance between
// two chords of equal voice count
type DistanceFunction func(a, b chord.Chord) float64

// GetDistanceFunction returns the appropriate distance function for the given metric
func GetDistanceFunction(metric DistanceMetric) DistanceFunction {
	switch metric {
	case TaxicabDistance:
		return Smoothness
	case EuclideanDistance:
		return Euclidean
	case ChebyshevDistance:
		return Chebyshev
	case MovedVoicesDistance:
		return MovedVoices
	default:
		return Smoothness
	}
}

// Smoothness is the taxicab length of the voice leading from a to b: the
// sum of the absolute per-voice intervals.
func Smoothness(a, b chord.Chord) float64 {
	return common.ManhattanDistance(a.Pitches(), b.Pitches())
}

// Euclidean is the straight-line distance between a and b.
func Euclidean(a, b chord.Chord) float64 {
	return common.EuclideanDistance(a.Pitches(), b.Pitches())
}

// Chebyshev is the largest single-voice interval.
func Chebyshev(a, b chord.Chord) float64 {
	return floats.Distance(a.Pitches(), b.Pitches(), math.Inf(1))
}

// MovedVoices counts the voices whose pitch changes.
func MovedVoices(a, b chord.Chord) float64 {
	return float64(a.Voices() - ZeroIntervals(a, b))
}

func (m DistanceMetric) String() string {
	switch m {
	case TaxicabDistance:
		return "Taxicab"
	case EuclideanDistance:
		return "Euclidean"
	case ChebyshevDistance:
		return "Chebyshev"
	case MovedVoicesDistance:
		return "MovedVoices"
	default:
		return "Unknown"
	}
}
