package scale

import (
	"fmt"
	"slices"
	"strings"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
)

// Scale is a tonic-anchored pitch collection: voice 0 holds the tonic pitch
// class and the remaining voices rise through the octave above it.
type Scale struct {
	tones    chord.Chord
	name     string
	typeName string // with its leading space, e.g. " major"
	registry *Registry
}

// Tonicization pairs a scale found by a tonicization search with the chord
// it yields.
type Tonicization struct {
	Scale Scale
	Chord chord.Chord
}

// NewScale returns the scale registered under name, such as "C major".
func NewScale(registry *Registry, name string) (Scale, error) {
	return registry.ScaleForName(name)
}

// FromPitches builds a scale from pitches, the first being the tonic, and
// registers it under name.
func FromPitches(registry *Registry, name string, pitches ...float64) (Scale, error) {
	return registry.AddScale(name, pitches...)
}

// FromChord derives a scale from the pitches of c with voice 0 as tonic. If
// the result is registered it carries the registered name.
func FromChord(registry *Registry, c chord.Chord) (Scale, error) {
	s, err := newScale(registry, "", c.Pitches())
	if err != nil {
		return Scale{}, err
	}
	if name := registry.NameForScale(s); name != "" {
		return registry.ScaleForName(name)
	}
	return s, nil
}

func newScale(registry *Registry, name string, pitches []float64) (Scale, error) {
	if len(pitches) == 0 {
		return Scale{}, fmt.Errorf("%w: %q", ErrEmptyScale, name)
	}

	tonic := common.SnapModulo(pitches[0], common.Octave)
	var above []float64
	for _, p := range pitches[1:] {
		interval := common.SnapModulo(p-tonic, common.Octave)
		if common.Eq(interval, 0) {
			continue
		}
		if slices.ContainsFunc(above, func(q float64) bool { return common.Eq(q, tonic+interval) }) {
			continue
		}
		above = append(above, tonic+interval)
	}
	slices.Sort(above)

	tones := chord.FromPitches(append([]float64{tonic}, above...)...)
	return Scale{
		tones:    tones,
		name:     name,
		typeName: typeName(name),
		registry: registry,
	}, nil
}

// typeName is everything from the first space of a scale name, or the
// whole name if it has none.
func typeName(name string) string {
	if i := strings.Index(name, " "); i > 0 {
		return name[i:]
	}
	return name
}

// Name returns the name the scale was registered or looked up under.
func (s Scale) Name() string { return s.name }

// TypeName returns the scale type with its leading space.
func (s Scale) TypeName() string { return s.typeName }

// Tonic returns the tonic pitch class.
func (s Scale) Tonic() float64 { return s.tones.Pitch(0) }

// Voices returns the number of scale degrees.
func (s Scale) Voices() int { return s.tones.Voices() }

// Pitches returns the scale's pitches, tonic first.
func (s Scale) Pitches() []float64 { return s.tones.Pitches() }

// Tones returns the scale as a chord.
func (s Scale) Tones() chord.Chord { return s.tones }

// Key identifies the scale by its pitches.
func (s Scale) Key() string { return s.tones.Key() }

func (s Scale) String() string {
	if s.name != "" {
		return s.name
	}
	return s.tones.String()
}

// pitchAt returns the pitch of a zero-based degree index, which may run
// past either end of the scale into neighboring octaves.
func (s Scale) pitchAt(index int) float64 {
	n := s.tones.Voices()
	octave := index / n
	if index%n != 0 && index < 0 {
		octave--
	}
	return s.tones.Pitch(index-octave*n) + float64(octave)*common.Octave
}

// Chord stacks voices pitches on a one-based scale degree, each a fixed
// number of scale steps above the last: interval 3 stacks thirds, 4
// fourths. Steps that run past the top of the scale wrap an octave higher.
func (s Scale) Chord(degree, voices, interval int) chord.Chord {
	if s.tones.Voices() == 0 {
		return chord.New(0)
	}
	pitches := make([]float64, voices)
	for v := range pitches {
		pitches[v] = s.pitchAt(degree - 1 + v*(interval-1))
	}
	return chord.FromPitches(pitches...)
}

// Degree returns the one-based scale degree on which c, up to octave and
// permutation, is built by stacking the given interval.
func (s Scale) Degree(c chord.Chord, interval int) (int, bool) {
	for degree := 1; degree <= s.tones.Voices(); degree++ {
		if s.hasDegree(c, degree, interval) {
			return degree, true
		}
	}
	return 0, false
}

func (s Scale) hasDegree(c chord.Chord, degree, interval int) bool {
	return chord.Equal(s.Chord(degree, c.Voices(), interval).EOP(), c.EOP())
}

// SemitonesForDegree returns the distance in semitones from the tonic up to
// a one-based scale degree. Degrees past the octave include it; degree 0 is
// the step below the tonic.
func (s Scale) SemitonesForDegree(degree int) float64 {
	if s.tones.Voices() == 0 {
		return 0
	}
	return s.pitchAt(degree-1) - s.Tonic()
}

// Transpose returns the scale of the same type on a tonic semitones away,
// the registered one if there is one.
func (s Scale) Transpose(semitones float64) Scale {
	tonic := common.SnapModulo(s.Tonic()+semitones, common.Octave)
	pitches := transpose(tonic-s.Tonic(), s.Pitches())

	var name string
	if tonicName := nameForPitchClass(tonic); tonicName != "" {
		name = tonicName + s.typeName
	}
	transposed, _ := newScale(s.registry, name, pitches)
	if s.registry != nil && name != "" {
		if registered, err := s.registry.ScaleForName(name); err == nil && registered.Key() == transposed.Key() {
			return registered
		}
	}
	return transposed
}

// TransposeDegrees moves c by a number of scale degrees within the scale,
// keeping its voice count. It reports false when c is not a chord of the
// scale.
func (s Scale) TransposeDegrees(c chord.Chord, degrees, interval int) (chord.Chord, bool) {
	degree, ok := s.Degree(c, interval)
	if !ok {
		return chord.Chord{}, false
	}
	return s.Chord(degree+degrees, c.Voices(), interval), true
}

// Modulations returns the other registered scales of the modulation types
// that contain the chord of this scale at c's degree, built with the given
// number of voices. It is empty when c is not a chord of the scale.
func (s Scale) Modulations(c chord.Chord, voices, interval int) []Scale {
	degree, ok := s.Degree(c, interval)
	if !ok || s.registry == nil {
		return nil
	}
	target := s.Chord(degree, voices, interval)

	var result []Scale
	for _, candidate := range s.registry.modulationScales() {
		if candidate.Key() == s.Key() {
			continue
		}
		if _, ok := candidate.Degree(target, interval); ok {
			result = append(result, candidate)
		}
	}
	return result
}

// Tonicizations treats the triadic chord at c's degree as a new tonic: it
// returns each modulation-type scale having that chord on degree 1,
// together with that scale's chord at targetDegree. A targetDegree of 5
// gives the secondary dominants.
func (s Scale) Tonicizations(c chord.Chord, targetDegree, voices int) []Tonicization {
	degree, ok := s.Degree(c, 3)
	if !ok || s.registry == nil {
		return nil
	}
	tonic := s.Chord(degree, voices, 3)

	var result []Tonicization
	for _, candidate := range s.registry.modulationScales() {
		if candidate.Key() == s.Key() || !candidate.hasDegree(tonic, 1, 3) {
			continue
		}
		result = append(result, Tonicization{
			Scale: candidate,
			Chord: candidate.Chord(targetDegree, voices, 3),
		})
	}
	return result
}

// RelativeTonicizations finds the modulation-type scales in which the
// chord at c's degree stands at targetDegree, paired with each scale's
// tonic chord.
func (s Scale) RelativeTonicizations(c chord.Chord, targetDegree, voices int) []Tonicization {
	degree, ok := s.Degree(c, 3)
	if !ok || s.registry == nil {
		return nil
	}
	function := s.Chord(degree, voices, 3)

	var result []Tonicization
	for _, candidate := range s.registry.modulationScales() {
		if candidate.Key() == s.Key() || !candidate.hasDegree(function, targetDegree, 3) {
			continue
		}
		result = append(result, Tonicization{
			Scale: candidate,
			Chord: candidate.Chord(1, voices, 3),
		})
	}
	return result
}
