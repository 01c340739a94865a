package chordspace

import (
	"slices"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
)

// NormalOrder returns the rotation of the sorted pitch classes of c that is
// most compact: among the rotations, keep those whose interval from the
// first voice to voice w is least, for w from the last voice down to the
// second, until one remains. Remaining ties go to the least rotation.
func NormalOrder(c chord.Chord) chord.Chord {
	n := c.Voices()
	if n == 0 {
		return c
	}
	candidates := c.EPPCs().Permutations()
	for window := n - 1; window > 0 && len(candidates) > 1; window-- {
		candidates = mostCompact(candidates, window)
	}
	return slices.MinFunc(candidates, chord.Compare)
}

// mostCompact returns a new slice holding the candidates with the least
// wrapped interval from voice 0 to voice window.
func mostCompact(candidates []chord.Chord, window int) []chord.Chord {
	spans := make([]float64, len(candidates))
	least := 0.0
	for i, candidate := range candidates {
		spans[i] = wrappedSpan(candidate, window)
		if i == 0 || common.Lt(spans[i], least) {
			least = spans[i]
		}
	}
	kept := make([]chord.Chord, 0, len(candidates))
	for i, candidate := range candidates {
		if common.Eq(spans[i], least) {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// wrappedSpan sums the upward pitch-class steps from voice 0 to voice
// window, so a rotation that comes back to its starting class spans an
// octave rather than nothing.
func wrappedSpan(rotation chord.Chord, window int) float64 {
	span := 0.0
	for i := 0; i < window; i++ {
		span += common.SnapModulo(rotation.Pitch(i+1)-rotation.Pitch(i), common.Octave)
	}
	return span
}

// NormalForm returns the normal order of c transposed to start on 0.
// Results are memoized and carry pitches only.
func (s *Space) NormalForm(c chord.Chord) chord.Chord {
	key := c.Key()
	if form, ok := s.normalForms.get(key); ok {
		return form
	}
	form := NormalOrder(c)
	if form.Voices() > 0 {
		form = NormalOrder(form.T(-form.Pitch(0)))
	}
	form = chord.FromPitches(form.Pitches()...)
	s.normalForms.put(key, form)
	return form
}

// PrimeForm returns the lesser of the normal form of c and the normal form
// of its inversion.
func (s *Space) PrimeForm(c chord.Chord) chord.Chord {
	key := c.Key()
	if form, ok := s.primeForms.get(key); ok {
		return form
	}
	normal, inverse := s.inversionPair(c)
	form := normal
	if chord.Less(inverse, normal) {
		form = inverse
	}
	s.primeForms.put(key, form)
	return form
}

// InversePrimeForm returns the greater of the normal form of c and the
// normal form of its inversion. It equals PrimeForm for self-inverse chords.
func (s *Space) InversePrimeForm(c chord.Chord) chord.Chord {
	key := c.Key()
	if form, ok := s.inversePrimeForms.get(key); ok {
		return form
	}
	normal, inverse := s.inversionPair(c)
	form := normal
	if chord.Less(normal, inverse) {
		form = inverse
	}
	s.inversePrimeForms.put(key, form)
	return form
}

func (s *Space) inversionPair(c chord.Chord) (normal, inverse chord.Chord) {
	normal = s.NormalForm(c)
	inverse = s.NormalForm(normal.I(0))
	return normal, inverse
}

// IsNormalForm reports whether c is its own normal form.
func (s *Space) IsNormalForm(c chord.Chord) bool {
	return chord.Equal(c, s.NormalForm(c))
}

// IsPrimeForm reports whether c is its own prime form.
func (s *Space) IsPrimeForm(c chord.Chord) bool {
	return chord.Equal(c, s.PrimeForm(c))
}

// IsInversion reports whether c is not the prime form of its set class.
func (s *Space) IsInversion(c chord.Chord) bool {
	return !chord.Equal(s.NormalForm(c), s.PrimeForm(c))
}
