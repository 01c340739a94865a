package voiceleading

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/config"
)

func TestVoiceleadingIntervals(t *testing.T) {
	cMajor := chord.FromPitches(0, 4, 7)
	cMinor := chord.FromPitches(0, 3, 7)

	assert.Equal(t, []float64{0, -1, 0}, Voiceleading(cMajor, cMinor))
	assert.Equal(t, 1.0, Smoothness(cMajor, cMinor))
	assert.Equal(t, 2, ZeroIntervals(cMajor, cMinor))
	assert.InDelta(t, 1.0, Euclidean(cMajor, cMinor), 1e-12)
}

func TestParallelFifth(t *testing.T) {
	tests := []struct {
		name     string
		a, b     chord.Chord
		expected bool
	}{
		{"similar motion", chord.FromPitches(60, 67), chord.FromPitches(62, 69), true},
		{"compound fifth", chord.FromPitches(60, 67), chord.FromPitches(50, 69), true},
		{"fifth held", chord.FromPitches(60, 67), chord.FromPitches(60, 67), false},
		{"fifth to sixth", chord.FromPitches(60, 67), chord.FromPitches(62, 70), false},
		{"fifth to fourth", chord.FromPitches(60, 67), chord.FromPitches(57, 62), false},
		{"inner voices", chord.FromPitches(48, 60, 67), chord.FromPitches(48, 62, 69), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParallelFifth(tt.a, tt.b))
		})
	}
}

func TestComparators(t *testing.T) {
	source := chord.FromPitches(0, 4, 7)

	oneMoved := chord.FromPitches(0, 3, 7)
	allMoved := chord.FromPitches(1, 3, 8)
	assert.True(t, chord.Equal(oneMoved, Simpler(source, allMoved, oneMoved)))
	assert.True(t, chord.Equal(oneMoved, Smoother(source, allMoved, oneMoved)))

	// equal smoothness and simplicity keep the first
	raised := chord.FromPitches(0, 4, 8)
	lowered := chord.FromPitches(0, 3, 7)
	assert.True(t, chord.Equal(raised, Closer(source, raised, lowered)))
	assert.True(t, chord.Equal(lowered, Closer(source, lowered, raised)))

	// equal smoothness falls back to simplicity
	twoMoved := chord.FromPitches(1, 5, 7)
	oneMovedByTwo := chord.FromPitches(0, 4, 9)
	assert.True(t, chord.Equal(oneMovedByTwo, Closer(source, twoMoved, oneMovedByTwo)))
}

func TestClosest(t *testing.T) {
	source := chord.FromPitches(60, 67)
	candidates := []chord.Chord{
		chord.FromPitches(62, 69),
		chord.FromPitches(57, 62),
	}

	closest, ok := Closest(source, candidates, false)
	require.True(t, ok)
	assert.Equal(t, "62 69", closest.Key())

	closest, ok = Closest(source, candidates, true)
	require.True(t, ok)
	assert.Equal(t, "57 62", closest.Key())

	_, ok = Closest(source, candidates[:1], true)
	assert.False(t, ok)
}

func TestRevoicingsCoverEveryAssignment(t *testing.T) {
	source := chord.FromPitches(60, 64, 67)
	revoicings := slices.Collect(Revoicings(source, chord.FromPitches(0, 3, 7), 36, DefaultMaxPermutedVoices))

	// 3! pitch-class assignments times 4 octaves per voice
	assert.Len(t, revoicings, 6*4*4*4)
	for _, revoicing := range revoicings {
		assert.Equal(t, "0 3 7", revoicing.EPPCs().Key())
		assert.GreaterOrEqual(t, revoicing.Min(), 48.0)
		assert.Less(t, revoicing.Max(), 96.0)
	}

	doubled := slices.Collect(Revoicings(source, chord.FromPitches(0, 0, 7), 12, DefaultMaxPermutedVoices))
	assert.Len(t, doubled, 3*2*2*2)

	// past the limit only the 3 rotations are tried
	rotated := slices.Collect(Revoicings(source, chord.FromPitches(0, 3, 7), 36, 2))
	assert.Len(t, rotated, 3*4*4*4)
}

func TestRevoicingsStopEarly(t *testing.T) {
	count := 0
	for range Revoicings(chord.FromPitches(60, 64, 67), chord.FromPitches(0, 3, 7), 36, DefaultMaxPermutedVoices) {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)
}

func TestClosestRevoicingOfSevenVoices(t *testing.T) {
	// G13 stacked in thirds to C13
	source := chord.FromPitches(55, 59, 62, 65, 69, 72, 76)
	target := chord.FromPitches(0, 4, 7, 10, 14, 17, 21)

	count := 0
	for range Revoicings(source, target, 36, DefaultMaxPermutedVoices) {
		count++
	}
	assert.Equal(t, 7*4*4*4*4*4*4*4, count)

	result := ClosestRevoicing(source, target, 36, false)
	require.Equal(t, 7, result.Voices())
	assert.Equal(t, target.EPPCs().Key(), result.EPPCs().Key())
	// (55 57 58 60 74 76 77) is one of the rotations and moves 21 semitones
	assert.LessOrEqual(t, Smoothness(source, result), 21.0)
}

func TestClosestRevoicing(t *testing.T) {
	cMajor := chord.FromPitches(60, 64, 67)

	cMinor := ClosestRevoicing(cMajor, chord.FromPitches(0, 3, 7), 36, false)
	assert.Equal(t, "60 63 67", cMinor.Key())

	aMinor := ClosestRevoicing(cMajor, chord.FromPitches(9, 12, 16), 36, false)
	assert.Equal(t, "60 64 69", aMinor.Key())
	assert.Equal(t, 2.0, Smoothness(cMajor, aMinor))
}

func TestClosestRevoicingAvoidsParallels(t *testing.T) {
	fifth := chord.FromPitches(60, 67)
	target := chord.FromPitches(2, 9)

	assert.Equal(t, "62 69", ClosestRevoicing(fifth, target, 36, false).Key())
	assert.Equal(t, "57 62", ClosestRevoicing(fifth, target, 36, true).Key())
}

func TestProgression(t *testing.T) {
	start := chord.FromPitches(60, 64, 67)
	targets := []chord.Chord{
		chord.FromPitches(5, 9, 12),
		chord.FromPitches(7, 11, 14),
		chord.FromPitches(0, 4, 7),
	}

	progression := Progression(start, targets, 36, true)
	require.Len(t, progression, 4)
	assert.True(t, chord.Equal(start, progression[0]))
	assert.Equal(t, "60 65 69", progression[1].Key())
	for i, target := range targets {
		assert.Equal(t, target.EPPCs().Key(), progression[i+1].EPPCs().Key())
		assert.False(t, ParallelFifth(progression[i], progression[i+1]))
	}
}

func TestLeaderFromConfig(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.VoiceLeading.AvoidParallels = true
	leader := NewLeader(cfg)

	assert.Equal(t, 36.0, leader.Range)
	assert.True(t, leader.AvoidParallels)
	assert.Equal(t, TaxicabDistance, leader.Metric)
	assert.Equal(t, DefaultMaxPermutedVoices, leader.MaxPermutedVoices)
	assert.Equal(t, "57 62", leader.ClosestRevoicing(chord.FromPitches(60, 67), chord.FromPitches(2, 9)).Key())
	assert.Len(t, leader.Progression(chord.FromPitches(60, 64, 67), chord.FromPitches(0, 3, 7)), 2)
}

func TestDistanceMetrics(t *testing.T) {
	a := chord.FromPitches(0, 4, 7)
	b := chord.FromPitches(1, 2, 7)

	assert.Equal(t, 3.0, GetDistanceFunction(TaxicabDistance)(a, b))
	assert.Equal(t, 2.0, GetDistanceFunction(ChebyshevDistance)(a, b))
	assert.Equal(t, 2.0, GetDistanceFunction(MovedVoicesDistance)(a, b))
	assert.InDelta(t, 2.2360679775, GetDistanceFunction(EuclideanDistance)(a, b), 1e-9)

	assert.Equal(t, "Chebyshev", ChebyshevDistance.String())
	assert.Equal(t, "Unknown", DistanceMetric(42).String())
}

func TestLeaderMetricSelectsClosest(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	taxicab := NewLeader(config.DefaultEngineConfig())
	chebyshev := taxicab
	chebyshev.Metric = ChebyshevDistance

	for trial := 0; trial < 20; trial++ {
		source := chord.FromPitches(float64(48+rng.Intn(24)), float64(48+rng.Intn(24)), float64(48+rng.Intn(24)))
		target := chord.FromPitches(float64(rng.Intn(12)), float64(rng.Intn(12)), float64(rng.Intn(12)))

		byTaxicab := taxicab.ClosestRevoicing(source, target)
		byChebyshev := chebyshev.ClosestRevoicing(source, target)
		assert.LessOrEqual(t, Smoothness(source, byTaxicab), Smoothness(source, byChebyshev)+1e-9)
		assert.LessOrEqual(t, Chebyshev(source, byChebyshev), Chebyshev(source, byTaxicab)+1e-9)
	}
}
