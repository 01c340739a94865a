package chord

import (
	"slices"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
)

// Elementary equivalences that need no sector geometry. Checks on the pitch
// sum use the sector tolerance because the sum accumulates one rounding per
// voice.

// Er reduces every voice into [0, rangeSize).
func (c Chord) Er(rangeSize float64) Chord {
	out := c.clone()
	for i := range out.voices {
		out.voices[i].Pitch = common.SnapModulo(out.voices[i].Pitch, rangeSize)
	}
	return out
}

// IsEr reports whether every voice lies in [0, rangeSize).
func (c Chord) IsEr(rangeSize float64) bool {
	for _, v := range c.voices {
		if !common.Ge(v.Pitch, 0) || !common.Lt(v.Pitch, rangeSize) {
			return false
		}
	}
	return true
}

// ER reduces every voice into [0, rangeSize) and then lowers the highest
// voice by rangeSize until the pitch sum is no greater than rangeSize.
func (c Chord) ER(rangeSize float64) Chord {
	if rangeSize <= 0 {
		return c.clone()
	}
	out := c.Er(rangeSize)
	for !common.SectorTolerance.Le(out.Layer(), rangeSize) {
		out.voices[out.maxIndex()].Pitch -= rangeSize
	}
	return out
}

// IsER reports whether the chord spans no more than rangeSize and its pitch
// sum lies in [0, rangeSize].
func (c Chord) IsER(rangeSize float64) bool {
	if !common.Le(c.Max(), c.Min()+rangeSize) {
		return false
	}
	layer := c.Layer()
	return common.SectorTolerance.Le(0, layer) && common.SectorTolerance.Le(layer, rangeSize)
}

// EP sorts the voices by ascending pitch; attributes move with their pitch.
func (c Chord) EP() Chord {
	out := c.clone()
	slices.SortStableFunc(out.voices, func(a, b Voice) int {
		switch {
		case a.Pitch < b.Pitch:
			return -1
		case a.Pitch > b.Pitch:
			return 1
		default:
			return 0
		}
	})
	return out
}

// IsEP reports whether the pitches ascend.
func (c Chord) IsEP() bool {
	for i := 1; i < len(c.voices); i++ {
		if !common.Le(c.voices[i-1].Pitch, c.voices[i].Pitch) {
			return false
		}
	}
	return true
}

// ET transposes the chord so its pitch sum is zero. A chord already
// summing to zero is returned unchanged.
func (c Chord) ET() Chord {
	if c.IsET() {
		return c.clone()
	}
	pitches := c.Pitches()
	mean := common.Mean(pitches)
	for i := range pitches {
		pitches[i] = common.Clean(pitches[i] - mean)
	}
	return c.WithPitches(pitches)
}

// IsET reports whether the pitch sum is zero.
func (c Chord) IsET() bool {
	return common.SectorTolerance.Eq(c.Layer(), 0)
}

// ETg applies ET and then transposes up by the least amount that puts the
// first voice on a multiple of g, so the pitch sum is non-negative. Only
// voice 0 is aligned to the lattice; the other voices keep their intervals
// above it rather than each being rounded up to a multiple of g.
func (c Chord) ETg(g float64) Chord {
	et := c.ET()
	if len(et.voices) == 0 || g <= 0 {
		return et
	}
	first := et.voices[0].Pitch
	shift := common.CeilTolerance(first/g)*g - first
	out := et.T(shift)
	for i := range out.voices {
		out.voices[i].Pitch = common.Clean(out.voices[i].Pitch)
	}
	return out
}

// IsETg reports whether the chord is its own ETg.
func (c Chord) IsETg(g float64) bool {
	return Equal(c, c.ETg(g))
}

// ERP is ER followed by EP.
func (c Chord) ERP(rangeSize float64) Chord {
	return c.ER(rangeSize).EP()
}

// IsERP reports whether the chord is both R- and P-normal.
func (c Chord) IsERP(rangeSize float64) bool {
	return c.IsEP() && c.IsER(rangeSize)
}

// EO is ER with the octave as range.
func (c Chord) EO() Chord {
	return c.ER(common.Octave)
}

// IsEO is IsER with the octave as range.
func (c Chord) IsEO() bool {
	return c.IsER(common.Octave)
}

// EOP is ERP with the octave as range.
func (c Chord) EOP() Chord {
	return c.ERP(common.Octave)
}

// IsEOP is IsERP with the octave as range.
func (c Chord) IsEOP() bool {
	return c.IsERP(common.Octave)
}
