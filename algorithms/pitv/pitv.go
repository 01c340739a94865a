package pitv

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/chordspace"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
	"github.com/RyanBlaney/sonido-chordspace/config"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

// Options shape a PITV index.
type Options struct {
	Voices int     `json:"voices"`
	Range  float64 `json:"range"` // Span of the voicing odometer in semitones
	G      float64 `json:"g"`     // Generator the pitch classes are quantized to
}

// DefaultOptions returns triads, a three-octave voicing range and a semitone
// generator.
func DefaultOptions() Options {
	return Options{
		Voices: 3,
		Range:  3 * common.Octave,
		G:      1.0,
	}
}

// OptionsFromConfig takes the PITV block and generator of an engine config.
func OptionsFromConfig(cfg config.EngineConfig) Options {
	return Options{
		Voices: cfg.PITV.Voices,
		Range:  cfg.PITV.Range,
		G:      cfg.Generator,
	}
}

// Index is a chord's coordinate in the PITV product space.
type Index struct {
	P int `json:"p"` // Prime form
	I int `json:"i"` // 0 for the prime form, 1 for its inversion
	T int `json:"t"` // Generator steps of transposition
	V int `json:"v"` // Octave revoicing
}

func (x Index) String() string {
	return fmt.Sprintf("P=%d I=%d T=%d V=%d", x.P, x.I, x.T, x.V)
}

// PITV is a bijection between chords of one voice count and Index tuples.
// It is immutable after New and safe for concurrent use.
type PITV struct {
	space     *chordspace.Space
	voices    int
	rangeSize float64
	g         float64

	primes  []chord.Chord
	indexOf map[string]int

	countP      int
	countI      int
	countT      int
	countV      int
	normalForms int
	octaves     int // per-voice digit base of the voicing odometer

	logger logging.Logger
}

// New enumerates every multiset of generator-quantized pitch classes and
// numbers the prime forms found in ascending order.
func New(space *chordspace.Space, opts Options) (*PITV, error) {
	if opts.Voices < common.MinVoices || opts.Voices > common.MaxVoices {
		return nil, fmt.Errorf("%w: %d (supported %d..%d)", ErrVoiceCount, opts.Voices, common.MinVoices, common.MaxVoices)
	}
	if !(opts.G > 0) {
		return nil, fmt.Errorf("%w: %v", ErrGenerator, opts.G)
	}
	steps := common.Octave / opts.G
	if !common.Eq(steps, math.Round(steps)) {
		return nil, fmt.Errorf("%w: %v does not divide the octave", ErrGenerator, opts.G)
	}
	octaves := opts.Range / common.Octave
	if opts.Range < 0 || !common.Eq(octaves, math.Round(octaves)) {
		return nil, fmt.Errorf("%w: %v", ErrRange, opts.Range)
	}

	p := &PITV{
		space:     space,
		voices:    opts.Voices,
		rangeSize: opts.Range,
		g:         opts.G,
		indexOf:   make(map[string]int),
		countI:    2,
		countT:    int(math.Round(steps)),
		octaves:   int(math.Round(octaves)) + 1,
		logger:    logging.Component("pitv"),
	}
	p.logger.SetLevel(space.Config().Level())
	p.countV = 1
	for i := 0; i < p.voices; i++ {
		p.countV *= p.octaves
	}

	p.enumerate()

	p.logger.Info("Built PITV index", logging.Fields{
		"voices":       p.voices,
		"count_p":      p.countP,
		"count_t":      p.countT,
		"count_v":      p.countV,
		"normal_forms": p.normalForms,
	})
	return p, nil
}

// enumerate walks the ascending multisets of lattice pitch classes.
func (p *PITV) enumerate() {
	normals := make(map[string]struct{})
	var primes []chord.Chord
	seen := make(map[string]struct{})

	classes := make([]int, p.voices)
	for {
		pitches := make([]float64, p.voices)
		for i, class := range classes {
			pitches[i] = float64(class) * p.g
		}
		c := chord.FromPitches(pitches...)

		normals[p.space.NormalForm(c).Key()] = struct{}{}
		prime := p.space.PrimeForm(c)
		if _, ok := seen[prime.Key()]; !ok {
			seen[prime.Key()] = struct{}{}
			primes = append(primes, prime)
		}

		if !nextMultiset(classes, p.countT) {
			break
		}
	}

	chord.Sort(primes)
	for i, prime := range primes {
		p.indexOf[prime.Key()] = i
	}
	p.primes = primes
	p.countP = len(primes)
	p.normalForms = len(normals)
}

// nextMultiset advances a non-decreasing sequence over [0, classes) and
// reports false after the last one.
func nextMultiset(sequence []int, classes int) bool {
	i := len(sequence) - 1
	for i >= 0 && sequence[i] == classes-1 {
		i--
	}
	if i < 0 {
		return false
	}
	sequence[i]++
	for j := i + 1; j < len(sequence); j++ {
		sequence[j] = sequence[i]
	}
	return true
}

// Voices returns the voice count of the index.
func (p *PITV) Voices() int { return p.voices }

// CountP returns the number of prime forms.
func (p *PITV) CountP() int { return p.countP }

// CountI returns 2: prime form and inversion.
func (p *PITV) CountI() int { return p.countI }

// CountT returns the number of generator steps in an octave.
func (p *PITV) CountT() int { return p.countT }

// CountV returns the number of octave revoicings within the range.
func (p *PITV) CountV() int { return p.countV }

// NormalForms returns the number of distinct normal forms enumerated.
func (p *PITV) NormalForms() int { return p.normalForms }

// Size returns the cardinality of the index space.
func (p *PITV) Size() int { return p.countP * p.countI * p.countT * p.countV }

// List returns the prime forms in index order.
func (p *PITV) List() []chord.Chord {
	return append([]chord.Chord(nil), p.primes...)
}

// PrimeForm returns prime form number index, reduced modulo CountP.
func (p *PITV) PrimeForm(index int) chord.Chord {
	return p.primes[modulo(index, p.countP)]
}

func modulo(index, count int) int {
	return ((index % count) + count) % count
}

// Revoicing returns voicing v of origin: each voice of origin raised by a
// whole number of octaves read from the digits of v, voice 0 first.
func (p *PITV) Revoicing(origin chord.Chord, v int) chord.Chord {
	v = modulo(v, p.countV)
	pitches := origin.Pitches()
	for i := range pitches {
		pitches[i] += float64(v%p.octaves) * common.Octave
		v /= p.octaves
	}
	return origin.WithPitches(pitches)
}

// Revoicings returns every voicing of origin in index order.
func (p *PITV) Revoicings(origin chord.Chord) []chord.Chord {
	revoicings := make([]chord.Chord, p.countV)
	for v := range revoicings {
		revoicings[v] = p.Revoicing(origin, v)
	}
	return revoicings
}

// FromChord returns the index of c. Chords that cannot be located exactly
// are logged and given a best-effort index.
func (p *PITV) FromChord(c chord.Chord) Index {
	var index Index

	prime := p.space.PrimeForm(c)
	if position, ok := p.lookup(prime); ok {
		index.P = position
	} else {
		p.logger.Warn("Prime form not in index", logging.Fields{
			"chord": c.String(),
			"prime": prime.String(),
		})
	}

	normal := p.space.NormalForm(c)
	if !chord.Equal(prime, normal) {
		index.I = 1
	}

	classes := c.EPPCs()
	found := false
	for t := 0; t < p.countT; t++ {
		if chord.Equal(normal.T(float64(t)*p.g).EPPCs(), classes) {
			index.T, found = t, true
			break
		}
	}
	if !found {
		p.logger.Warn("No transposition matches chord", logging.Fields{
			"chord":  c.String(),
			"normal": normal.String(),
		})
	}

	index.V = p.voicing(c)
	return index
}

func (p *PITV) lookup(prime chord.Chord) (int, bool) {
	if position, ok := p.indexOf[prime.Key()]; ok {
		return position, true
	}
	for position, candidate := range p.primes {
		if chord.Equal(candidate, prime) {
			return position, true
		}
	}
	return 0, false
}

// voicing finds the revoicing of the OP form that matches c voice for voice,
// falling back to a match of the sorted pitches.
func (p *PITV) voicing(c chord.Chord) int {
	origin := c.EOP()
	revoicings := p.Revoicings(origin)
	for v, revoicing := range revoicings {
		if chord.Equal(revoicing, c) {
			return v
		}
	}
	sorted := c.EP()
	for v, revoicing := range revoicings {
		if chord.Equal(revoicing.EP(), sorted) {
			return v
		}
	}
	p.logger.Warn("Chord is not a revoicing within range", logging.Fields{
		"chord":  c.String(),
		"origin": origin.String(),
		"range":  p.rangeSize,
	})
	return 0
}

// ToChord returns the chord at index, each coordinate reduced modulo its
// count.
func (p *PITV) ToChord(index Index) chord.Chord {
	steps := p.ToChordSteps(index)
	return steps.Chord
}

// Steps records the intermediate chords of ToChord.
type Steps struct {
	Prime      chord.Chord `json:"prime"`
	Inverted   chord.Chord `json:"inverted"`
	Transposed chord.Chord `json:"transposed"`
	OP         chord.Chord `json:"op"`
	Chord      chord.Chord `json:"chord"`
}

// ToChordSteps is ToChord keeping every intermediate chord.
func (p *PITV) ToChordSteps(index Index) Steps {
	var steps Steps
	steps.Prime = p.PrimeForm(index.P)
	steps.Inverted = steps.Prime
	if modulo(index.I, p.countI) == 1 {
		steps.Inverted = p.space.InversePrimeForm(steps.Prime)
	}
	steps.Transposed = steps.Inverted.T(float64(modulo(index.T, p.countT)) * p.g)
	steps.OP = steps.Transposed.EOP()
	steps.Chord = p.Revoicing(steps.OP, index.V)

	if !steps.OP.IsEOP() {
		p.logger.Warn("Transposed chord is not in OP form", logging.Fields{
			"index": index.String(),
			"chord": steps.OP.String(),
		})
	}
	return steps
}
