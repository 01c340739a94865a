package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/config"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

type ScaleSuite struct {
	suite.Suite
	registry *Registry
	cMajor   Scale
}

func (s *ScaleSuite) SetupTest() {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	s.registry = NewRegistry(config.DefaultEngineConfig())

	var err error
	s.cMajor, err = NewScale(s.registry, "C major")
	s.Require().NoError(err)
}

func (s *ScaleSuite) TearDownTest() {
	logging.SetGlobalLogger(logging.NewDefaultLogger())
}

func TestScaleSuite(t *testing.T) {
	suite.Run(t, new(ScaleSuite))
}

func (s *ScaleSuite) TestChordNames() {
	cMajor, err := s.registry.ChordForName("CM")
	s.Require().NoError(err)
	s.Equal("0 4 7", cMajor.Key())

	dMinor7, err := s.registry.ChordForName("Dm7")
	s.Require().NoError(err)
	s.Equal("2 5 9 12", dMinor7.Key())

	_, err = s.registry.ChordForName("Hm")
	s.ErrorIs(err, ErrUnknownName)

	// octave and order do not matter
	s.Equal("CM", s.registry.NameForChord(chord.FromPitches(64, 55, 72)))
	s.Equal("", s.registry.NameForChord(chord.FromPitches(0, 1, 2)))

	s.Equal("CM6", s.registry.NameForChord(chord.FromPitches(0, 4, 7, 9)))
	s.Contains(s.registry.NamesForChord(chord.FromPitches(0, 4, 7, 9)), "Am7")

	enharmonic := s.registry.NamesForChord(chord.FromPitches(1, 5, 8))
	s.Contains(enharmonic, "C#M")
	s.Contains(enharmonic, "DbM")
	s.Equal("C#M", enharmonic[0])
}

func (s *ScaleSuite) TestAddChord() {
	tristan := chord.FromPitches(5, 11, 15, 20)
	s.registry.AddChord("Tristan", tristan)

	c, err := s.registry.ChordForName("Tristan")
	s.Require().NoError(err)
	s.True(chord.Equal(tristan, c))

	names := s.registry.NamesForChord(tristan)
	s.Contains(names, "Fø7")
	s.Equal("Tristan", names[len(names)-1])

	// rebinding moves the name
	s.registry.AddChord("Tristan", chord.FromPitches(0, 1, 2))
	s.NotContains(s.registry.NamesForChord(tristan), "Tristan")
	s.Equal("Tristan", s.registry.NameForChord(chord.FromPitches(0, 1, 2)))
}

func (s *ScaleSuite) TestScaleNames() {
	s.Equal([]float64{0, 2, 4, 5, 7, 9, 11}, s.cMajor.Pitches())
	s.Equal(" major", s.cMajor.TypeName())
	s.Equal("C major", s.registry.NameForScale(s.cMajor))

	aMinor, err := NewScale(s.registry, "A Aeolian")
	s.Require().NoError(err)
	s.Equal("A natural minor", s.registry.NameForScale(aMinor))
	s.Equal(9.0, aMinor.Tonic())

	// same pitch classes, different tonic
	s.NotEqual(s.cMajor.Key(), aMinor.Key())

	_, err = NewScale(s.registry, "H major")
	s.ErrorIs(err, ErrUnknownName)
}

func (s *ScaleSuite) TestFromPitchesAndChord() {
	mystic, err := FromPitches(s.registry, "C mystic", 0, 6, 16, 10, 2, 9, 12)
	s.Require().NoError(err)
	s.Equal([]float64{0, 2, 4, 6, 9, 10}, mystic.Pitches())
	s.Equal(" mystic", mystic.TypeName())
	s.Equal("C mystic", s.registry.NameForScale(mystic))

	_, err = FromPitches(s.registry, "nothing")
	s.ErrorIs(err, ErrEmptyScale)

	derived, err := FromChord(s.registry, chord.FromPitches(60, 64, 67, 69, 71, 62, 65))
	s.Require().NoError(err)
	s.Equal("C major", derived.Name())

	unnamed, err := FromChord(s.registry, chord.FromPitches(0, 1, 2))
	s.Require().NoError(err)
	s.Equal("", unnamed.Name())
	s.Equal("0 1 2", unnamed.String())
}

func (s *ScaleSuite) TestDegreeChords() {
	s.Equal("0 4 7", s.cMajor.Chord(1, 3, 3).Key())
	s.Equal("2 5 9", s.cMajor.Chord(2, 3, 3).Key())
	s.Equal("11 14 17", s.cMajor.Chord(7, 3, 3).Key())
	s.Equal("7 11 14 17", s.cMajor.Chord(5, 4, 3).Key())
	s.Equal("0 5 11", s.cMajor.Chord(1, 3, 4).Key())
	s.Equal("-1 2 5", s.cMajor.Chord(0, 3, 3).Key())

	degree, ok := s.cMajor.Degree(chord.FromPitches(62, 65, 69), 3)
	s.True(ok)
	s.Equal(2, degree)

	_, ok = s.cMajor.Degree(chord.FromPitches(0, 3, 7), 3)
	s.False(ok)

	s.Equal(0.0, s.cMajor.SemitonesForDegree(1))
	s.Equal(7.0, s.cMajor.SemitonesForDegree(5))
	s.Equal(12.0, s.cMajor.SemitonesForDegree(8))
	s.Equal(-1.0, s.cMajor.SemitonesForDegree(0))
}

func (s *ScaleSuite) TestTranspose() {
	dMajor := s.cMajor.Transpose(2)
	s.Equal("D major", dMajor.Name())
	s.Equal([]float64{2, 4, 6, 7, 9, 11, 13}, dMajor.Pitches())

	s.Equal("B major", s.cMajor.Transpose(-1).Name())
	s.Equal("C# major", s.cMajor.Transpose(13).Name())

	next, ok := s.cMajor.TransposeDegrees(chord.FromPitches(0, 4, 7), 1, 3)
	s.True(ok)
	s.Equal("2 5 9", next.Key())

	_, ok = s.cMajor.TransposeDegrees(chord.FromPitches(0, 3, 7), 1, 3)
	s.False(ok)
}

func (s *ScaleSuite) TestModulations() {
	names := func(scales []Scale) []string {
		var result []string
		for _, sc := range scales {
			result = append(result, sc.Name())
		}
		return result
	}

	modulations := s.cMajor.Modulations(chord.FromPitches(0, 4, 7), 3, 3)
	s.ElementsMatch([]string{"E harmonic minor", "F major", "F harmonic minor", "G major"}, names(modulations))

	s.registry.SetModulationTypes("major")
	s.Equal([]string{"major"}, s.registry.ModulationTypes())
	modulations = s.cMajor.Modulations(chord.FromPitches(0, 4, 7), 3, 3)
	s.ElementsMatch([]string{"F major", "G major"}, names(modulations))

	s.Empty(s.cMajor.Modulations(chord.FromPitches(0, 3, 7), 3, 3))
}

func (s *ScaleSuite) TestTonicizations() {
	// V of ii
	tonicizations := s.cMajor.Tonicizations(chord.FromPitches(2, 5, 9), 5, 3)
	s.Require().Len(tonicizations, 1)
	s.Equal("D harmonic minor", tonicizations[0].Scale.Name())
	s.Equal("9 13 16", tonicizations[0].Chord.Key())

	relative := s.cMajor.RelativeTonicizations(chord.FromPitches(7, 11, 14), 5, 3)
	s.Require().Len(relative, 1)
	s.Equal("C harmonic minor", relative[0].Scale.Name())
	s.Equal("0 3 7", relative[0].Chord.Key())

	s.Nil(s.cMajor.Tonicizations(chord.FromPitches(0, 3, 7), 5, 3))
}

func TestDefaultRegistryIsShared(t *testing.T) {
	registry := DefaultRegistry()
	require.Same(t, registry, DefaultRegistry())
	assert.Equal(t, []string{"major", "harmonic minor"}, registry.ModulationTypes())
	assert.NotEmpty(t, registry.Scales())
}

func TestZeroScale(t *testing.T) {
	var s Scale
	assert.Equal(t, 0, s.Chord(1, 3, 3).Voices())
	assert.Nil(t, s.Modulations(chord.FromPitches(0, 4, 7), 3, 3))
	assert.Equal(t, 0.0, s.SemitonesForDegree(3))
}
