package chordspace

import (
	"fmt"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
)

// Relation identifies one equivalence relation on chords.
type Relation int

const (
	Rmod  Relation = iota // r: every voice reduced into [0, range)
	R                     // range equivalence with pitch sum in [0, range]
	P                     // permutation
	T                     // transposition to zero sum
	Tg                    // transposition onto the generator lattice
	I                     // inversion through the sector's inversion flat
	RP                    // R then P
	RT                    // R and T
	RPT                   // chord type within a sector
	RPTg                  // RPT on the generator lattice
	RPI                   // RP with inversion
	RTI                   // RT with inversion
	RTgI                  // RTg with inversion
	RPTI                  // set class within a sector
	RPTgI                 // RPTI on the generator lattice
)

var relationTags = [...]string{
	Rmod:  "r",
	R:     "R",
	P:     "P",
	T:     "T",
	Tg:    "Tg",
	I:     "I",
	RP:    "RP",
	RT:    "RT",
	RPT:   "RPT",
	RPTg:  "RPTg",
	RPI:   "RPI",
	RTI:   "RTI",
	RTgI:  "RTgI",
	RPTI:  "RPTI",
	RPTgI: "RPTgI",
}

// relationComponents lists the elementary relations whose predicates hold
// for every representative. RPI, RTI and RTgI choose between a chord and its
// normalized inverse without reference to the sector flat, so I is listed
// only for the sector compounds.
var relationComponents = [...][]Relation{
	Rmod:  {Rmod},
	R:     {R},
	P:     {P},
	T:     {T},
	Tg:    {Tg},
	I:     {I},
	RP:    {R, P},
	RT:    {R, T},
	RPT:   {R, P, T},
	RPTg:  {R, P, Tg},
	RPI:   {R, P},
	RTI:   {R, T},
	RTgI:  {R, Tg},
	RPTI:  {R, P, T, I},
	RPTgI: {R, P, Tg, I},
}

func (r Relation) String() string {
	if r.Valid() {
		return relationTags[r]
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// Valid reports whether r is one of the defined relations.
func (r Relation) Valid() bool {
	return r >= Rmod && r <= RPTgI
}

// Components returns the elementary relations r is built from. For the Tg
// compounds the R predicate holds when the voice count times the generator
// does not exceed the range, as with the 12-TET defaults.
func (r Relation) Components() []Relation {
	if !r.Valid() {
		return nil
	}
	return append([]Relation(nil), relationComponents[r]...)
}

// ParseRelation maps a tag such as "RPTI" to its Relation. Tags are case
// sensitive: "r" and "R" differ.
func ParseRelation(tag string) (Relation, error) {
	for r, t := range relationTags {
		if t == tag {
			return Relation(r), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRelation, tag)
}

// Relations returns every relation in tag order.
func Relations() []Relation {
	relations := make([]Relation, 0, len(relationTags))
	for r := range relationTags {
		relations = append(relations, Relation(r))
	}
	return relations
}

// Params carry the arguments shared by every relation.
type Params struct {
	Range  float64 `json:"range"`  // Octave-equivalence range in semitones
	G      float64 `json:"g"`      // Transposition generator
	Sector int     `json:"sector"` // Sector, taken modulo the voice count
}

// DefaultParams returns the octave range, a semitone generator and sector 0.
func DefaultParams() Params {
	return Params{
		Range:  common.Octave,
		G:      1.0,
		Sector: 0,
	}
}

type relationFuncs struct {
	predicate func(*Space, chord.Chord, Params) bool
	equate    func(*Space, chord.Chord, Params) chord.Chord
}

var relationTable = [...]relationFuncs{
	Rmod:  {(*Space).isRmod, (*Space).equateRmod},
	R:     {(*Space).isR, (*Space).equateR},
	P:     {(*Space).isP, (*Space).equateP},
	T:     {(*Space).isT, (*Space).equateT},
	Tg:    {(*Space).isTg, (*Space).equateTg},
	I:     {(*Space).isI, (*Space).equateI},
	RP:    {(*Space).isRP, (*Space).equateRP},
	RT:    {(*Space).isRT, (*Space).equateRT},
	RPT:   {(*Space).isRPT, (*Space).equateRPT},
	RPTg:  {(*Space).isRPTg, (*Space).equateRPTg},
	RPI:   {(*Space).isRPI, (*Space).equateRPI},
	RTI:   {(*Space).isRTI, (*Space).equateRTI},
	RTgI:  {(*Space).isRTgI, (*Space).equateRTgI},
	RPTI:  {(*Space).isRPTI, (*Space).equateRPTI},
	RPTgI: {(*Space).isRPTgI, (*Space).equateRPTgI},
}

// Predicate reports whether c already lies in the fundamental domain of rel.
// Invalid relations report false.
func (s *Space) Predicate(rel Relation, c chord.Chord, p Params) bool {
	if !rel.Valid() {
		return false
	}
	return relationTable[rel].predicate(s, c, p)
}

// Equate maps c to the representative of its rel class. Invalid relations
// return c unchanged.
func (s *Space) Equate(rel Relation, c chord.Chord, p Params) chord.Chord {
	if !rel.Valid() {
		return c
	}
	return relationTable[rel].equate(s, c, p)
}

// PredicateTag is Predicate with the relation given by its tag.
func (s *Space) PredicateTag(tag string, c chord.Chord, p Params) (bool, error) {
	rel, err := ParseRelation(tag)
	if err != nil {
		return false, err
	}
	return s.Predicate(rel, c, p), nil
}

// EquateTag is Equate with the relation given by its tag.
func (s *Space) EquateTag(tag string, c chord.Chord, p Params) (chord.Chord, error) {
	rel, err := ParseRelation(tag)
	if err != nil {
		return c, err
	}
	return s.Equate(rel, c, p), nil
}
