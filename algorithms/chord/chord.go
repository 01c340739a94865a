package chord

import (
	"slices"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
)

// Voice is one pitch-bearing coordinate of a chord. Only Pitch takes part in
// equivalence and geometry; the other attributes travel with it.
type Voice struct {
	Pitch      float64 `json:"pitch"`      // Semitones, middle C = 60
	Duration   float64 `json:"duration"`   // Seconds or beats, caller's choice
	Loudness   float64 `json:"loudness"`   // MIDI velocity scale
	Instrument float64 `json:"instrument"` // Channel or instrument number
	Pan        float64 `json:"pan"`        // Stereo position
}

// Chord is an ordered, fixed-size sequence of voices. Chords are values:
// every operation returns a new chord and never modifies its receiver.
type Chord struct {
	voices []Voice
}

// New creates a chord of n voices, all at pitch 0 (the origin).
func New(n int) Chord {
	if n < 0 {
		n = 0
	}
	return Chord{voices: make([]Voice, n)}
}

// FromPitches creates a chord with one voice per pitch.
func FromPitches(pitches ...float64) Chord {
	c := New(len(pitches))
	for i, p := range pitches {
		c.voices[i].Pitch = p
	}
	return c
}

// FromVoices creates a chord from full voice records.
func FromVoices(voices ...Voice) Chord {
	return Chord{voices: slices.Clone(voices)}
}

func (c Chord) clone() Chord {
	return Chord{voices: slices.Clone(c.voices)}
}

// Voices returns the number of voices.
func (c Chord) Voices() int {
	return len(c.voices)
}

// Pitch returns the pitch of voice i.
func (c Chord) Pitch(i int) float64 {
	return c.voices[i].Pitch
}

// Voice returns the full attribute record of voice i.
func (c Chord) Voice(i int) Voice {
	return c.voices[i]
}

// WithPitch returns a copy with voice i moved to pitch.
func (c Chord) WithPitch(i int, pitch float64) Chord {
	out := c.clone()
	out.voices[i].Pitch = pitch
	return out
}

// WithVoice returns a copy with voice i replaced.
func (c Chord) WithVoice(i int, v Voice) Chord {
	out := c.clone()
	out.voices[i] = v
	return out
}

// Pitches returns a copy of the pitch vector.
func (c Chord) Pitches() []float64 {
	pitches := make([]float64, len(c.voices))
	for i, v := range c.voices {
		pitches[i] = v.Pitch
	}
	return pitches
}

// WithPitches returns a copy carrying c's attributes and the given pitches,
// which must number Voices().
func (c Chord) WithPitches(pitches []float64) Chord {
	out := c.clone()
	for i := range out.voices {
		out.voices[i].Pitch = pitches[i]
	}
	return out
}

// Max returns the highest pitch, or 0 for an empty chord.
func (c Chord) Max() float64 {
	if len(c.voices) == 0 {
		return 0
	}
	return c.voices[c.maxIndex()].Pitch
}

// Min returns the lowest pitch, or 0 for an empty chord.
func (c Chord) Min() float64 {
	if len(c.voices) == 0 {
		return 0
	}
	low := c.voices[0].Pitch
	for _, v := range c.voices[1:] {
		if v.Pitch < low {
			low = v.Pitch
		}
	}
	return low
}

func (c Chord) maxIndex() int {
	index := 0
	for i, v := range c.voices {
		if common.Gt(v.Pitch, c.voices[index].Pitch) {
			index = i
		}
	}
	return index
}

// Layer returns the sum of the pitches.
func (c Chord) Layer() float64 {
	return common.Sum(c.Pitches())
}

// Span returns the distance from the lowest to the highest pitch.
func (c Chord) Span() float64 {
	return c.Max() - c.Min()
}

// Count returns how many voices are tolerance-equal to pitch.
func (c Chord) Count(pitch float64) int {
	count := 0
	for _, v := range c.voices {
		if common.Eq(v.Pitch, pitch) {
			count++
		}
	}
	return count
}

// T transposes every voice by interval.
func (c Chord) T(interval float64) Chord {
	out := c.clone()
	for i := range out.voices {
		out.voices[i].Pitch += interval
	}
	return out
}

// I reflects every voice through center: 2*center - pitch.
func (c Chord) I(center float64) Chord {
	out := c.clone()
	for i := range out.voices {
		out.voices[i].Pitch = common.Clean(2*center - out.voices[i].Pitch)
	}
	return out
}

// Cycle rotates the voice labels. A positive stride pops the front voice and
// appends it at the back; a negative stride does the reverse. The set of
// pitches is unchanged.
func (c Chord) Cycle(stride int) Chord {
	n := len(c.voices)
	out := New(n)
	if n == 0 {
		return out
	}
	shift := ((stride % n) + n) % n
	for i := range out.voices {
		out.voices[i] = c.voices[(i+shift)%n]
	}
	return out
}

// V revoices the chord by octaves: each step up cycles by one and raises the
// voice that wrapped to the back by an octave; each step down cycles the
// other way and lowers the voice that wrapped to the front.
func (c Chord) V(direction int) Chord {
	out := c.clone()
	n := len(out.voices)
	if n == 0 {
		return out
	}
	for ; direction > 0; direction-- {
		out = out.Cycle(1)
		out.voices[n-1].Pitch += common.Octave
	}
	for ; direction < 0; direction++ {
		out = out.Cycle(-1)
		out.voices[0].Pitch -= common.Octave
	}
	return out
}

// Voicings returns the n octave revoicings of the chord, starting with the
// chord itself and applying V(1) successively.
func (c Chord) Voicings() []Chord {
	voicings := make([]Chord, 0, len(c.voices))
	voicing := c.clone()
	for range c.voices {
		voicings = append(voicings, voicing)
		voicing = voicing.V(1)
	}
	return voicings
}

// Permutations returns the n cyclic rotations of the voices, sorted.
func (c Chord) Permutations() []Chord {
	permutations := make([]Chord, 0, len(c.voices))
	for i := range c.voices {
		permutations = append(permutations, c.Cycle(i))
	}
	Sort(permutations)
	return permutations
}

// EPCs reduces every voice to its pitch class.
func (c Chord) EPCs() Chord {
	out := c.clone()
	for i := range out.voices {
		out.voices[i].Pitch = common.SnapModulo(out.voices[i].Pitch, common.Octave)
	}
	return out
}

// EPPCs reduces every voice to its pitch class and sorts.
func (c Chord) EPPCs() Chord {
	return c.EPCs().EP()
}

// Compare orders chords lexicographically by pitch under the default
// tolerance; a shorter chord is less when the common prefix ties.
func Compare(a, b Chord) int {
	return CompareWithin(a, b, common.DefaultTolerance)
}

// CompareWithin is Compare with pitches matched by tol.PitchEq.
func CompareWithin(a, b Chord, tol common.Tolerance) int {
	n := min(len(a.voices), len(b.voices))
	for i := 0; i < n; i++ {
		if order := tol.PitchCompare(a.voices[i].Pitch, b.voices[i].Pitch); order != 0 {
			return order
		}
	}
	switch {
	case len(a.voices) < len(b.voices):
		return -1
	case len(a.voices) > len(b.voices):
		return 1
	default:
		return 0
	}
}

// Equal reports pairwise tolerance equality of pitches.
func Equal(a, b Chord) bool {
	if len(a.voices) != len(b.voices) {
		return false
	}
	return Compare(a, b) == 0
}

// EqualWithin is Equal under tol.
func EqualWithin(a, b Chord, tol common.Tolerance) bool {
	if len(a.voices) != len(b.voices) {
		return false
	}
	return CompareWithin(a, b, tol) == 0
}

// Less reports whether a orders before b.
func Less(a, b Chord) bool {
	return Compare(a, b) < 0
}

// LessEqual reports whether a orders before or equal to b.
func LessEqual(a, b Chord) bool {
	return Compare(a, b) <= 0
}

// Sort sorts chords in place by Compare.
func Sort(chords []Chord) {
	slices.SortStableFunc(chords, Compare)
}

// Equal is the method form of the package-level Equal.
func (c Chord) Equal(other Chord) bool {
	return Equal(c, other)
}

// Contains reports whether any voice is tolerance-equal to pitch.
func (c Chord) Contains(pitch float64) bool {
	return c.Count(pitch) > 0
}

// Distinct returns the tolerance-distinct pitches in ascending order.
func (c Chord) Distinct() []float64 {
	sorted := c.EP()
	distinct := make([]float64, 0, len(sorted.voices))
	for _, v := range sorted.voices {
		if len(distinct) == 0 || !common.Eq(distinct[len(distinct)-1], v.Pitch) {
			distinct = append(distinct, v.Pitch)
		}
	}
	return distinct
}
