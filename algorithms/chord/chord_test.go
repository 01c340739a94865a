package chord

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
)

func requirePitches(t *testing.T, want []float64, got Chord) {
	t.Helper()
	require.Equal(t, len(want), got.Voices(), "voice count of %v", got)
	for i, p := range want {
		assert.InDelta(t, p, got.Pitch(i), 1e-9, "voice %d of %v", i, got)
	}
}

func TestCMajorScenarios(t *testing.T) {
	cMajor := FromPitches(0, 4, 7)

	assert.True(t, Equal(cMajor, cMajor.EP()), "already ascending")

	et := cMajor.ET()
	assert.InDelta(t, 0, et.Layer(), 1e-12)
	requirePitches(t, []float64{-11.0 / 3, 1.0 / 3, 10.0 / 3}, et)
	assert.InDelta(t, -3.67, et.Pitch(0), 0.005)
	assert.InDelta(t, 0.33, et.Pitch(1), 0.005)
	assert.InDelta(t, 3.33, et.Pitch(2), 0.005)

	eo := cMajor.EO()
	for i := 0; i < eo.Voices(); i++ {
		assert.GreaterOrEqual(t, eo.Pitch(i), 0.0)
		assert.LessOrEqual(t, eo.Pitch(i), 12.0)
	}
	assert.GreaterOrEqual(t, eo.Layer(), 0.0)
	assert.LessOrEqual(t, eo.Layer(), 12.0)

	requirePitches(t, []float64{4, 7, 12}, cMajor.V(1))
}

func TestCycleAndRevoicing(t *testing.T) {
	c := FromPitches(0, 4, 7)

	requirePitches(t, []float64{4, 7, 0}, c.Cycle(1))
	requirePitches(t, []float64{7, 0, 4}, c.Cycle(-1))
	requirePitches(t, []float64{0, 4, 7}, c.Cycle(3))

	requirePitches(t, []float64{-5, 0, 4}, c.V(-1))
	requirePitches(t, []float64{7, 12, 16}, c.V(2))
	assert.True(t, Equal(c, c.V(1).V(-1)))

	voicings := c.Voicings()
	require.Len(t, voicings, 3)
	requirePitches(t, []float64{0, 4, 7}, voicings[0])
	requirePitches(t, []float64{4, 7, 12}, voicings[1])
	requirePitches(t, []float64{7, 12, 16}, voicings[2])

	perms := c.Permutations()
	require.Len(t, perms, 3)
	requirePitches(t, []float64{0, 4, 7}, perms[0])
	requirePitches(t, []float64{4, 7, 0}, perms[1])
	requirePitches(t, []float64{7, 0, 4}, perms[2])
}

func TestAttributesTravelWithPitch(t *testing.T) {
	c := FromVoices(
		Voice{Pitch: 67, Loudness: 60, Instrument: 3},
		Voice{Pitch: 60, Loudness: 80, Instrument: 1},
		Voice{Pitch: 64, Loudness: 70, Instrument: 2},
	)
	sorted := c.EP()
	assert.Equal(t, Voice{Pitch: 60, Loudness: 80, Instrument: 1}, sorted.Voice(0))
	assert.Equal(t, Voice{Pitch: 67, Loudness: 60, Instrument: 3}, sorted.Voice(2))

	// receiver untouched
	assert.Equal(t, 67.0, c.Pitch(0))
	moved := c.T(12)
	assert.Equal(t, 79.0, moved.Pitch(0))
	assert.Equal(t, 67.0, c.Pitch(0))
	assert.Equal(t, 60.0, moved.Voice(0).Loudness)
}

func TestInversionIsAffine(t *testing.T) {
	c := FromPitches(0, 4, 7)
	requirePitches(t, []float64{0, -4, -7}, c.I(0))
	requirePitches(t, []float64{12, 8, 5}, c.I(6))
	assert.True(t, Equal(c, c.I(3.5).I(3.5)))
}

func TestPitchClasses(t *testing.T) {
	c := FromPitches(67, 60, 76, -1)
	requirePitches(t, []float64{7, 0, 4, 11}, c.EPCs())
	requirePitches(t, []float64{0, 4, 7, 11}, c.EPPCs())
}

func TestTotalOrderLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := func(n int) Chord {
		c := New(n)
		for i := 0; i < n; i++ {
			c = c.WithPitch(i, float64(rng.Intn(5)))
		}
		return c
	}
	for n := 3; n <= 7; n++ {
		for trial := 0; trial < 200; trial++ {
			a, b := random(n), random(n)
			lt, eq, gt := Less(a, b), Equal(a, b), Less(b, a)
			count := 0
			for _, v := range []bool{lt, eq, gt} {
				if v {
					count++
				}
			}
			require.Equal(t, 1, count, "trichotomy for %v and %v", a, b)
			require.Equal(t, lt || eq, LessEqual(a, b))
		}
	}
}

func TestCompareToleranceAndLength(t *testing.T) {
	tenth, fifth := 0.1, 0.2
	a := FromPitches(tenth+fifth, 4)
	b := FromPitches(0.3, 4)
	assert.Equal(t, 0, Compare(a, b))
	assert.True(t, Equal(a, b))

	assert.Equal(t, -1, Compare(FromPitches(0, 4), FromPitches(0, 4, 7)))
	assert.Equal(t, 1, Compare(FromPitches(0, 5), FromPitches(0, 4, 7)))
	assert.False(t, Equal(FromPitches(0, 4), FromPitches(0, 4, 7)))
}

func TestEqualWithinNearZero(t *testing.T) {
	a := FromPitches(-0.003345097929384533, 4)
	b := FromPitches(-0.003345097929384977, 4)
	assert.True(t, Equal(a, b))
	assert.True(t, EqualWithin(a, b, common.SectorTolerance))

	loose := FromPitches(1e-12, 4)
	assert.False(t, Equal(FromPitches(0, 4), loose))
	assert.True(t, EqualWithin(FromPitches(0, 4), loose, common.SectorTolerance))
	assert.False(t, EqualWithin(FromPitches(0, 4), FromPitches(0, 4, 7), common.SectorTolerance))
}

func TestMaxPrefersLowestIndexOnTies(t *testing.T) {
	c := FromPitches(7, 2, 7+1e-15)
	assert.Equal(t, 0, c.maxIndex())
	assert.Equal(t, 7.0, c.Max())
}

func TestSummaries(t *testing.T) {
	c := FromPitches(7, 0, 4, 0)
	assert.Equal(t, 7.0, c.Max())
	assert.Equal(t, 0.0, c.Min())
	assert.Equal(t, 11.0, c.Layer())
	assert.Equal(t, 7.0, c.Span())
	assert.Equal(t, 2, c.Count(0))
	assert.Equal(t, 0.0, New(0).Max())
	assert.False(t, math.IsNaN(New(0).Layer()))
}
