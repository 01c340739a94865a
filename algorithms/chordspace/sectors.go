package chordspace

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

// HyperplaneEquation is the inversion flat of one sector: the points x with
// Normal·x = Constant. Normal has unit length.
type HyperplaneEquation struct {
	Normal   []float64 `json:"normal"`
	Constant float64   `json:"constant"`
}

// Distance returns the signed distance of c from the hyperplane. Chords on
// the positive side lie in the sector's minor half.
func (h HyperplaneEquation) Distance(c chord.Chord) float64 {
	return common.Dot(h.Normal, c.Pitches()) - h.Constant
}

func (h HyperplaneEquation) clone() HyperplaneEquation {
	return HyperplaneEquation{Normal: slices.Clone(h.Normal), Constant: h.Constant}
}

// Reflect mirrors c through the hyperplane; c must have as many voices as
// the normal has components. Voice attributes are kept.
func Reflect(c chord.Chord, h HyperplaneEquation) chord.Chord {
	pitches := c.Pitches()
	offset := make([]float64, len(pitches))
	vecmath.ScaleBlock(offset, h.Normal, -2*h.Distance(c))
	vecmath.AddBlockInPlace(pitches, offset)
	for i := range pitches {
		pitches[i] = common.Clean(pitches[i])
	}
	return c.WithPitches(pitches)
}

// geometry is the sector decomposition of the zero-sum cyclical region for
// one voice count.
type geometry struct {
	voices      int
	vertices    []chord.Chord   // origin.V(k).ET() for k = 0..n-1
	apex        chord.Chord     // centroid, the maximally even chord
	simplices   [][]chord.Chord // sector k: apex plus every vertex but k
	systems     []*mat.Dense    // barycentric system per sector, last row ones
	hyperplanes []HyperplaneEquation
}

func newGeometry(n int) *geometry {
	g := &geometry{voices: n}

	origin := chord.New(n)
	centroid := make([]float64, n)
	for k := 0; k < n; k++ {
		vertex := origin.V(k).ET()
		g.vertices = append(g.vertices, vertex)
		floats.Add(centroid, vertex.Pitches())
	}
	floats.Scale(1/float64(n), centroid)
	g.apex = chord.FromPitches(centroid...).ET()

	for k := 0; k < n; k++ {
		simplex := make([]chord.Chord, 0, n)
		simplex = append(simplex, g.apex)
		for j, vertex := range g.vertices {
			if j != k {
				simplex = append(simplex, vertex)
			}
		}
		g.simplices = append(g.simplices, simplex)

		system := mat.NewDense(n+1, n, nil)
		for col, point := range simplex {
			for row := 0; row < n; row++ {
				system.Set(row, col, point.Pitch(row))
			}
			system.Set(n, col, 1)
		}
		g.systems = append(g.systems, system)

		normal := make([]float64, n)
		floats.SubTo(normal, g.vertices[(k+1)%n].Pitches(), g.vertices[(k+n-1)%n].Pitches())
		normal = common.Normalize(normal)
		g.hyperplanes = append(g.hyperplanes, HyperplaneEquation{
			Normal:   normal,
			Constant: common.Dot(normal, g.apex.Pitches()),
		})
	}

	return g
}

// sectorIndex reduces a sector number into [0, n).
func sectorIndex(sector, n int) int {
	return ((sector % n) + n) % n
}

// CyclicalRegion returns the n vertices of the zero-sum cyclical region: the
// octave revoicings of the origin, each T-normalized.
func (s *Space) CyclicalRegion(n int) []chord.Chord {
	return slices.Clone(s.geometryFor(n).vertices)
}

// Apex returns the centroid of the cyclical region for n voices.
func (s *Space) Apex(n int) chord.Chord {
	return s.geometryFor(n).apex
}

// SectorSimplices returns the vertex sets of the n sectors.
func (s *Space) SectorSimplices(n int) [][]chord.Chord {
	g := s.geometryFor(n)
	simplices := make([][]chord.Chord, len(g.simplices))
	for i, simplex := range g.simplices {
		simplices[i] = slices.Clone(simplex)
	}
	return simplices
}

// HyperplaneEquations returns the inversion flats of the n sectors.
func (s *Space) HyperplaneEquations(n int) []HyperplaneEquation {
	g := s.geometryFor(n)
	equations := make([]HyperplaneEquation, len(g.hyperplanes))
	for i, h := range g.hyperplanes {
		equations[i] = h.clone()
	}
	return equations
}

// Hyperplane returns the inversion flat of one sector; the sector number is
// taken modulo n.
func (s *Space) Hyperplane(n, sector int) HyperplaneEquation {
	return s.geometryFor(n).hyperplanes[sectorIndex(sector, n)].clone()
}

// sectorPoint maps c into the zero-sum cyclical region. Chords already
// ascending within an octave keep their voicing; others are first reduced
// to their OP representative.
func sectorPoint(c chord.Chord) chord.Chord {
	if c.IsEP() && common.Le(c.Span(), common.Octave) {
		return c.ET()
	}
	return c.EOP().ET()
}

// Sectors returns the sectors containing c, sorted and without duplicates.
// Chords on a shared facet belong to every sector that contains the facet.
// The result is never empty: when no containment test succeeds the sector
// with the nearest vertices is returned.
func (s *Space) Sectors(c chord.Chord) []int {
	n := c.Voices()
	g := s.geometryFor(n)
	point := sectorPoint(c)

	rhs := mat.NewVecDense(n+1, append(point.Pitches(), 1))
	var sectors []int
	for k, system := range g.systems {
		if s.contains(system, rhs, n) {
			sectors = append(sectors, k)
		}
	}
	if len(sectors) > 0 {
		return sectors
	}

	nearest := g.nearestSector(point)
	s.logger.Debug("No sector contains chord, using nearest", logging.Fields{
		"chord":  c.String(),
		"sector": nearest,
	})
	return []int{nearest}
}

// contains solves the barycentric system of one sector and accepts
// coefficients that are non-negative under the sector tolerance.
func (s *Space) contains(system *mat.Dense, rhs *mat.VecDense, n int) bool {
	var lambda mat.VecDense
	if err := lambda.SolveVec(system, rhs); err != nil {
		return false
	}
	for i := 0; i < n; i++ {
		if !s.sectorTolerance.Ge(lambda.AtVec(i), 0) {
			return false
		}
	}
	return true
}

func (g *geometry) nearestSector(point chord.Chord) int {
	pitches := point.Pitches()
	best, bestDistance := 0, math.Inf(1)
	for k, simplex := range g.simplices {
		distance := 0.0
		for _, vertex := range simplex {
			distance += common.EuclideanDistance(pitches, vertex.Pitches())
		}
		if distance < bestDistance {
			best, bestDistance = k, distance
		}
	}
	return best
}

// InSector reports whether c lies in the given sector.
func (s *Space) InSector(c chord.Chord, sector int) bool {
	return slices.Contains(s.Sectors(c), sectorIndex(sector, c.Voices()))
}
