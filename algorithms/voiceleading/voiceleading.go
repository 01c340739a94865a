package voiceleading

import (
	"iter"
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
	"github.com/RyanBlaney/sonido-chordspace/config"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

// Voiceleading returns the directed interval each voice moves from a to b.
func Voiceleading(a, b chord.Chord) []float64 {
	intervals := make([]float64, a.Voices())
	vecmath.ScaleBlock(intervals, a.Pitches(), -1)
	vecmath.AddBlockInPlace(intervals, b.Pitches())
	return intervals
}

// ZeroIntervals counts the voices that do not move from a to b.
func ZeroIntervals(a, b chord.Chord) int {
	count := 0
	for _, interval := range Voiceleading(a, b) {
		if common.Eq(interval, 0) {
			count++
		}
	}
	return count
}

// Simpler returns whichever destination moves fewer voices from source,
// d1 on a tie.
func Simpler(source, d1, d2 chord.Chord) chord.Chord {
	if ZeroIntervals(source, d2) > ZeroIntervals(source, d1) {
		return d2
	}
	return d1
}

// Smoother returns whichever destination has the smaller taxicab voice
// leading from source, d1 on a tie.
func Smoother(source, d1, d2 chord.Chord) chord.Chord {
	if common.Lt(Smoothness(source, d2), Smoothness(source, d1)) {
		return d2
	}
	return d1
}

// Closer compares smoothness first and breaks ties by simplicity.
func Closer(source, d1, d2 chord.Chord) chord.Chord {
	return closer(source, d1, d2, Smoothness)
}

// closer is Closer with the voice-leading size given by measure.
func closer(source, d1, d2 chord.Chord, measure DistanceFunction) chord.Chord {
	m1, m2 := measure(source, d1), measure(source, d2)
	switch {
	case common.Lt(m1, m2):
		return d1
	case common.Lt(m2, m1):
		return d2
	default:
		return Simpler(source, d1, d2)
	}
}

// ParallelFifth reports whether two voices that move are a perfect fifth
// (modulo octaves) apart both before and after.
func ParallelFifth(a, b chord.Chord) bool {
	n := min(a.Voices(), b.Voices())
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if common.Eq(a.Pitch(i), b.Pitch(i)) && common.Eq(a.Pitch(j), b.Pitch(j)) {
				continue
			}
			if isFifth(a.Pitch(j)-a.Pitch(i)) && isFifth(b.Pitch(j)-b.Pitch(i)) {
				return true
			}
		}
	}
	return false
}

func isFifth(interval float64) bool {
	return common.Eq(common.SnapModulo(math.Abs(interval), common.Octave), 7)
}

// Closest returns the candidate closest to source, skipping candidates that
// make parallel fifths when avoidParallels is set. It reports false when no
// candidate qualifies.
func Closest(source chord.Chord, candidates []chord.Chord, avoidParallels bool) (chord.Chord, bool) {
	return closest(source, slices.Values(candidates), avoidParallels, Smoothness)
}

func closest(source chord.Chord, candidates iter.Seq[chord.Chord], avoidParallels bool, measure DistanceFunction) (chord.Chord, bool) {
	var best chord.Chord
	found := false
	for candidate := range candidates {
		if avoidParallels && ParallelFifth(source, candidate) {
			continue
		}
		if !found {
			best, found = candidate, true
			continue
		}
		best = closer(source, best, candidate, measure)
	}
	return best, found
}

// DefaultMaxPermutedVoices is the largest chord whose pitch classes are
// tried in every voice order. Larger chords try only the rotations of their
// ascending pitch classes.
const DefaultMaxPermutedVoices = 5

// Revoicings yields assignments of the pitch classes of destination to
// voices, each voice placed in one of the octaves of the register that
// starts an octave below the source's lowest octave and spans rangeSize
// plus one octave. Chords of up to maxPermutedVoices voices get every
// distinct assignment; larger ones get the rotations of the ascending
// classes, n times octaves^n candidates rather than n! times as many.
func Revoicings(source, destination chord.Chord, rangeSize float64, maxPermutedVoices int) iter.Seq[chord.Chord] {
	return func(yield func(chord.Chord) bool) {
		n := destination.Voices()
		if n == 0 {
			return
		}
		base := common.Octave*math.Floor(source.Min()/common.Octave) - common.Octave
		octaves := int(math.Ceil(rangeSize/common.Octave)) + 1

		classes := destination.EPPCs().Pitches()
		next := nextPermutation
		if n > maxPermutedVoices {
			next = rotator(n)
		}

		digits := make([]int, n)
		for {
			for {
				pitches := make([]float64, n)
				for i := range pitches {
					pitches[i] = base + classes[i] + float64(digits[i])*common.Octave
				}
				if !yield(chord.FromPitches(pitches...)) {
					return
				}
				if !nextOdometer(digits, octaves) {
					break
				}
			}
			if !next(classes) {
				return
			}
		}
	}
}

// nextOdometer advances per-voice digits in [0, base), voice 0 fastest, and
// reports false after wrapping back to all zeros.
func nextOdometer(digits []int, base int) bool {
	for i := range digits {
		digits[i]++
		if digits[i] < base {
			return true
		}
		digits[i] = 0
	}
	return false
}

// nextPermutation rearranges values into the next lexicographic order and
// reports false after the last, so repeated values yield each distinct
// arrangement once.
func nextPermutation(values []float64) bool {
	i := len(values) - 2
	for i >= 0 && values[i] >= values[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(values) - 1
	for values[j] <= values[i] {
		j--
	}
	values[i], values[j] = values[j], values[i]
	for l, r := i+1, len(values)-1; l < r; l, r = l+1, r-1 {
		values[l], values[r] = values[r], values[l]
	}
	return true
}

// rotator returns a step function that rotates values left by one and
// reports false once n rotations have been produced.
func rotator(n int) func([]float64) bool {
	produced := 1
	return func(values []float64) bool {
		if produced == n {
			return false
		}
		produced++
		first := values[0]
		copy(values, values[1:])
		values[len(values)-1] = first
		return true
	}
}

// ClosestRevoicing returns the revoicing of destination nearest to source.
// When avoidParallels excludes every revoicing, the nearest one is returned
// regardless.
func ClosestRevoicing(source, destination chord.Chord, rangeSize float64, avoidParallels bool) chord.Chord {
	return Leader{
		Range:             rangeSize,
		AvoidParallels:    avoidParallels,
		Metric:            TaxicabDistance,
		MaxPermutedVoices: DefaultMaxPermutedVoices,
	}.ClosestRevoicing(source, destination)
}

// Progression voice-leads from start through each target in turn, each
// chord the closest revoicing of its target to the one before. The result
// begins with start.
func Progression(start chord.Chord, targets []chord.Chord, rangeSize float64, avoidParallels bool) []chord.Chord {
	return Leader{
		Range:             rangeSize,
		AvoidParallels:    avoidParallels,
		Metric:            TaxicabDistance,
		MaxPermutedVoices: DefaultMaxPermutedVoices,
	}.Progression(start, targets...)
}

// Leader applies the voice-leading block of an engine config. Metric sizes
// each candidate voice leading; simplicity breaks ties.
type Leader struct {
	Range             float64
	AvoidParallels    bool
	Metric            DistanceMetric
	MaxPermutedVoices int
}

// NewLeader returns a Leader configured from cfg.
func NewLeader(cfg config.EngineConfig) Leader {
	return Leader{
		Range:             cfg.VoiceLeading.Range,
		AvoidParallels:    cfg.VoiceLeading.AvoidParallels,
		Metric:            TaxicabDistance,
		MaxPermutedVoices: DefaultMaxPermutedVoices,
	}
}

// ClosestRevoicing returns the revoicing of destination nearest to source
// under the leader's metric.
func (l Leader) ClosestRevoicing(source, destination chord.Chord) chord.Chord {
	measure := GetDistanceFunction(l.Metric)
	revoicings := Revoicings(source, destination, l.Range, l.MaxPermutedVoices)
	if best, ok := closest(source, revoicings, l.AvoidParallels, measure); ok {
		return best
	}
	logging.Component("voiceleading").Debug("Every revoicing makes parallel fifths", logging.Fields{
		"source":      source.String(),
		"destination": destination.String(),
	})
	best, _ := closest(source, revoicings, false, measure)
	return best
}

// Progression voice-leads from start through each target with the
// leader's settings.
func (l Leader) Progression(start chord.Chord, targets ...chord.Chord) []chord.Chord {
	progression := make([]chord.Chord, 0, len(targets)+1)
	progression = append(progression, start)
	current := start
	for _, target := range targets {
		current = l.ClosestRevoicing(current, target)
		progression = append(progression, current)
	}
	return progression
}
