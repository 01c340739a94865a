package chordspace

import (
	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

// Compound predicates are the conjunction of the elementary predicates they
// are built from plus a check that the chord is its own representative.
// None of the functions here may dispatch through relationTable.

func (s *Space) isRmod(c chord.Chord, p Params) bool { return c.IsEr(p.Range) }

func (s *Space) equateRmod(c chord.Chord, p Params) chord.Chord { return c.Er(p.Range) }

func (s *Space) isR(c chord.Chord, p Params) bool { return c.IsER(p.Range) }

func (s *Space) equateR(c chord.Chord, p Params) chord.Chord { return c.ER(p.Range) }

func (s *Space) isP(c chord.Chord, _ Params) bool { return c.IsEP() }

func (s *Space) equateP(c chord.Chord, _ Params) chord.Chord { return c.EP() }

func (s *Space) isT(c chord.Chord, _ Params) bool { return c.IsET() }

func (s *Space) equateT(c chord.Chord, _ Params) chord.Chord { return c.ET() }

func (s *Space) isTg(c chord.Chord, p Params) bool { return c.IsETg(p.G) }

func (s *Space) equateTg(c chord.Chord, p Params) chord.Chord { return c.ETg(p.G) }

// isI holds for chords in the minor half of the sector or on its flat.
func (s *Space) isI(c chord.Chord, p Params) bool {
	h := s.geometryFor(c.Voices()).hyperplanes[sectorIndex(p.Sector, c.Voices())]
	if s.sectorTolerance.Ge(h.Distance(c), 0) {
		return true
	}
	return s.equal(c, Reflect(c, h))
}

func (s *Space) equateI(c chord.Chord, p Params) chord.Chord {
	if s.isI(c, p) {
		return c
	}
	h := s.geometryFor(c.Voices()).hyperplanes[sectorIndex(p.Sector, c.Voices())]
	return Reflect(c, h)
}

func (s *Space) isRP(c chord.Chord, p Params) bool { return c.IsERP(p.Range) }

func (s *Space) equateRP(c chord.Chord, p Params) chord.Chord { return c.ERP(p.Range) }

// equateRT moves voice 0 to the origin before R so the result depends only
// on the RT class, then applies T.
func (s *Space) equateRT(c chord.Chord, p Params) chord.Chord {
	if c.Voices() == 0 {
		return c
	}
	return c.T(-c.Pitch(0)).ER(p.Range).ET()
}

func (s *Space) isRT(c chord.Chord, p Params) bool {
	return c.IsER(p.Range) && c.IsET() && s.equal(c, s.equateRT(c, p))
}

// equateRTg is RT with Tg in place of T. It has no tag of its own and
// serves RTgI.
func (s *Space) equateRTg(c chord.Chord, p Params) chord.Chord {
	if c.Voices() == 0 {
		return c
	}
	return c.T(-c.Pitch(0)).ER(p.Range).ETg(p.G)
}

// withinRange is the spread half of the R predicate. Tg moves the pitch sum
// to [0, n*g), so Tg compounds check only the spread.
func withinRange(c chord.Chord, rangeSize float64) bool {
	return common.Le(c.Max(), c.Min()+rangeSize)
}

func (s *Space) isRTg(c chord.Chord, p Params) bool {
	return withinRange(c, p.Range) && c.IsETg(p.G) && s.equal(c, s.equateRTg(c, p))
}

func (s *Space) equateRPT(c chord.Chord, p Params) chord.Chord {
	return s.sectorVoicing(c, p, chord.Chord.ET)
}

func (s *Space) isRPT(c chord.Chord, p Params) bool {
	return c.IsEP() && c.IsER(p.Range) && c.IsET() &&
		s.InSector(c, p.Sector) && s.sectorEqual(c, s.equateRPT(c, p))
}

func (s *Space) equateRPTg(c chord.Chord, p Params) chord.Chord {
	return s.sectorVoicing(c, p, func(voicing chord.Chord) chord.Chord {
		return voicing.ETg(p.G)
	})
}

func (s *Space) isRPTg(c chord.Chord, p Params) bool {
	return c.IsEP() && withinRange(c, p.Range) && c.IsETg(p.G) &&
		s.InSector(c, p.Sector) && s.sectorEqual(c, s.equateRPTg(c, p))
}

// sectorVoicing T-normalizes each octave revoicing of the RP representative
// and returns the least of those lying in the requested sector. A class on
// the sector boundary can have several voicings there; those on the minor
// side of the sector's inversion flat come first.
func (s *Space) sectorVoicing(c chord.Chord, p Params, normalize func(chord.Chord) chord.Chord) chord.Chord {
	n := c.Voices()
	sector := sectorIndex(p.Sector, n)
	h := s.geometryFor(n).hyperplanes[sector]

	var best, least chord.Chord
	found, bestMinor := false, false
	for i, voicing := range c.ERP(p.Range).Voicings() {
		candidate := normalize(voicing)
		if i == 0 || chord.Less(candidate, least) {
			least = candidate
		}
		if !s.InSector(candidate, sector) {
			continue
		}
		minor := s.sectorTolerance.Ge(h.Distance(candidate), 0)
		switch {
		case !found, minor && !bestMinor, minor == bestMinor && chord.Less(candidate, best):
			best, bestMinor, found = candidate, minor, true
		}
	}
	if found {
		return best
	}

	s.logger.Debug("No revoicing lies in sector, using least", logging.Fields{
		"chord":  c.String(),
		"sector": sector,
	})
	return least
}

func (s *Space) equateRPI(c chord.Chord, p Params) chord.Chord {
	return lesserInversion(c, p, s.equateRP)
}

func (s *Space) isRPI(c chord.Chord, p Params) bool {
	return s.isRP(c, p) && s.equal(c, s.equateRPI(c, p))
}

func (s *Space) equateRTI(c chord.Chord, p Params) chord.Chord {
	return lesserInversion(c, p, s.equateRT)
}

func (s *Space) isRTI(c chord.Chord, p Params) bool {
	return s.isRT(c, p) && s.equal(c, s.equateRTI(c, p))
}

func (s *Space) equateRTgI(c chord.Chord, p Params) chord.Chord {
	return lesserInversion(c, p, s.equateRTg)
}

func (s *Space) isRTgI(c chord.Chord, p Params) bool {
	return s.isRTg(c, p) && s.equal(c, s.equateRTgI(c, p))
}

// lesserInversion normalizes c and its inversion through pitch 0 and
// returns the lesser.
func lesserInversion(c chord.Chord, p Params, normalize func(chord.Chord, Params) chord.Chord) chord.Chord {
	normal := normalize(c, p)
	inverse := normalize(normal.I(0), p)
	if chord.LessEqual(normal, inverse) {
		return normal
	}
	return inverse
}

func (s *Space) equateRPTI(c chord.Chord, p Params) chord.Chord {
	return s.minorInversion(c, p, s.equateRPT)
}

func (s *Space) isRPTI(c chord.Chord, p Params) bool {
	return s.isRPT(c, p) && s.isI(c, p) && s.sectorEqual(c, s.equateRPTI(c, p))
}

func (s *Space) equateRPTgI(c chord.Chord, p Params) chord.Chord {
	return s.minorInversion(c, p, s.equateRPTg)
}

func (s *Space) isRPTgI(c chord.Chord, p Params) bool {
	return s.isRPTg(c, p) && s.isI(c, p) && s.sectorEqual(c, s.equateRPTgI(c, p))
}

// minorInversion normalizes c and its inversion into the same sector and
// returns the one farther on the minor side of the sector's inversion flat,
// the lesser on a tie.
func (s *Space) minorInversion(c chord.Chord, p Params, normalize func(chord.Chord, Params) chord.Chord) chord.Chord {
	h := s.geometryFor(c.Voices()).hyperplanes[sectorIndex(p.Sector, c.Voices())]
	normal := normalize(c, p)
	inverse := normalize(normal.I(0), p)

	normalDistance, inverseDistance := h.Distance(normal), h.Distance(inverse)
	switch {
	case s.sectorTolerance.Gt(normalDistance, inverseDistance):
		return normal
	case s.sectorTolerance.Lt(normalDistance, inverseDistance):
		return inverse
	case chord.LessEqual(normal, inverse):
		return normal
	default:
		return inverse
	}
}

// EOPT returns the chord type of c in the configured sector.
func (s *Space) EOPT(c chord.Chord) chord.Chord {
	return s.equateRPT(c, s.octaveParams())
}

// EOPTI returns the set class of c in the configured sector.
func (s *Space) EOPTI(c chord.Chord) chord.Chord {
	return s.equateRPTI(c, s.octaveParams())
}

// EOPTgI is EOPTI on the configured generator lattice.
func (s *Space) EOPTgI(c chord.Chord) chord.Chord {
	return s.equateRPTgI(c, s.octaveParams())
}

func (s *Space) octaveParams() Params {
	p := s.DefaultParams()
	p.Range = common.Octave
	return p
}
