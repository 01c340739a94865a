package pitv

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/chordspace"
	"github.com/RyanBlaney/sonido-chordspace/config"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

func newIndex(t *testing.T, voices int) *PITV {
	t.Helper()
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	t.Cleanup(func() { logging.SetGlobalLogger(logging.NewDefaultLogger()) })

	space, err := chordspace.New(config.DefaultEngineConfig())
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Voices = voices
	index, err := New(space, opts)
	require.NoError(t, err)
	return index
}

func TestTriadCounts(t *testing.T) {
	index := newIndex(t, 3)

	// 12 trichords, 6 doubled dyads, 1 unison
	assert.Equal(t, 19, index.CountP())
	assert.Equal(t, 31, index.NormalForms())
	assert.Equal(t, 2, index.CountI())
	assert.Equal(t, 12, index.CountT())
	assert.Equal(t, 64, index.CountV())
	assert.Equal(t, 19*2*12*64, index.Size())

	primes := index.List()
	require.Len(t, primes, 19)
	for i := 1; i < len(primes); i++ {
		assert.True(t, chord.Less(primes[i-1], primes[i]), "ascending prime forms")
	}
	assert.Equal(t, "0 0 0", primes[0].Key())
}

func TestCMajorIndex(t *testing.T) {
	index := newIndex(t, 3)

	cMajor := chord.FromPitches(0, 4, 7)
	x := index.FromChord(cMajor)
	assert.Equal(t, "0 3 7", index.PrimeForm(x.P).Key())
	assert.Equal(t, 1, x.I)
	assert.Equal(t, 0, x.T)
	assert.Equal(t, 0, x.V)
	assert.True(t, chord.Equal(cMajor, index.ToChord(x)))

	dMinor := chord.FromPitches(2, 5, 9)
	y := index.FromChord(dMinor)
	assert.Equal(t, x.P, y.P)
	assert.Equal(t, 0, y.I)
	assert.Equal(t, 2, y.T)

	voiced := chord.FromPitches(12, 16, 31)
	z := index.FromChord(voiced)
	assert.Equal(t, 1+1*4+2*16, z.V)
	assert.True(t, chord.Equal(voiced, index.ToChord(z)))

	steps := index.ToChordSteps(z)
	assert.Equal(t, "0 3 7", steps.Prime.Key())
	assert.Equal(t, "0 4 7", steps.Inverted.Key())
	assert.Equal(t, "0 4 7", steps.OP.Key())
	assert.Equal(t, "12 16 31", steps.Chord.Key())
}

func TestRoundTrip(t *testing.T) {
	for _, voices := range []int{3, 4} {
		index := newIndex(t, voices)
		rng := rand.New(rand.NewSource(99))
		for trial := 0; trial < 200; trial++ {
			pitches := make([]float64, voices)
			for i := range pitches {
				pitches[i] = float64(rng.Intn(36) - 12)
			}
			op := chord.FromPitches(pitches...).EOP()
			x := index.FromChord(op)
			require.True(t, chord.Equal(op, index.ToChord(x)), "%v -> %v -> %v", op, x, index.ToChord(x))

			v := rng.Intn(index.CountV())
			revoiced := index.Revoicing(op, v)
			y := index.FromChord(revoiced)
			require.Equal(t, v, y.V)
			require.True(t, chord.Equal(revoiced, index.ToChord(y)))
		}
	}
}

func TestIndicesReduceModuloCounts(t *testing.T) {
	index := newIndex(t, 3)
	x := Index{P: 3, I: 1, T: 5, V: 7}
	wrapped := Index{
		P: x.P + index.CountP(),
		I: x.I - index.CountI(),
		T: x.T + 3*index.CountT(),
		V: x.V + index.CountV(),
	}
	assert.True(t, chord.Equal(index.ToChord(x), index.ToChord(wrapped)))
}

func TestUnreachableVoicingIsLogged(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logging.SetGlobalLogger(logging.NewDefaultLoggerWithWriters(&stdout, &stderr, false))
	defer logging.SetGlobalLogger(logging.NewDefaultLogger())

	space, err := chordspace.New(config.DefaultEngineConfig())
	require.NoError(t, err)
	index, err := New(space, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "[INFO] Built PITV index")

	x := index.FromChord(chord.FromPitches(60, 64, 67))
	assert.Equal(t, 0, x.V)
	assert.Contains(t, stderr.String(), "[WARN] Chord is not a revoicing within range")
	assert.Contains(t, stderr.String(), "component=pitv")
}

func TestLogLevelFollowsConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logging.SetGlobalLogger(logging.NewDefaultLoggerWithWriters(&stdout, &stderr, false))
	defer logging.SetGlobalLogger(logging.NewDefaultLogger())

	cfg := config.DefaultEngineConfig()
	cfg.LogLevel = "error"
	space, err := chordspace.New(cfg)
	require.NoError(t, err)
	index, err := New(space, DefaultOptions())
	require.NoError(t, err)

	index.FromChord(chord.FromPitches(60, 64, 67))
	assert.NotContains(t, stdout.String(), "Built PITV index")
	assert.NotContains(t, stderr.String(), "Chord is not a revoicing within range")
}

func TestNewRejectsOptions(t *testing.T) {
	space := chordspace.Default()
	tests := []struct {
		name string
		opts Options
		err  error
	}{
		{"two voices", Options{Voices: 2, Range: 36, G: 1}, ErrVoiceCount},
		{"twelve voices", Options{Voices: 12, Range: 36, G: 1}, ErrVoiceCount},
		{"zero generator", Options{Voices: 3, Range: 36, G: 0}, ErrGenerator},
		{"generator not dividing octave", Options{Voices: 3, Range: 36, G: 5}, ErrGenerator},
		{"fractional range", Options{Voices: 3, Range: 30, G: 1}, ErrRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(space, tt.opts)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.ConfigForTuning(config.Tuning24TET)
	cfg.PITV.Voices = 4
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, Options{Voices: 4, Range: 36, G: 0.5}, opts)
}

func TestNextMultiset(t *testing.T) {
	sequence := []int{0, 0}
	count := 1
	for nextMultiset(sequence, 3) {
		count++
	}
	assert.Equal(t, 6, count)
	assert.Equal(t, []int{2, 2}, sequence)
}
