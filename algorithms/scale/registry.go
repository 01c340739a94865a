package scale

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/config"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

// Registry maps chord and scale names to values and back. Chords are
// matched up to octave and permutation; scales match exactly, so C major
// and A natural minor are distinct. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	chordsByName map[string]chord.Chord
	chordNames   map[string][]string

	scalesByName map[string]Scale
	scaleNames   map[string][]string
	scales       []Scale // one per distinct scale, in registration order

	modulationTypes []string
	logger          logging.Logger
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns a shared registry with the default modulation
// types.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(config.DefaultEngineConfig())
	})
	return defaultRegistry
}

// NewRegistry builds the vocabulary over all twelve pitch classes and takes
// its modulation types from cfg.
func NewRegistry(cfg config.EngineConfig) *Registry {
	r := &Registry{
		chordsByName:    make(map[string]chord.Chord),
		chordNames:      make(map[string][]string),
		scalesByName:    make(map[string]Scale),
		scaleNames:      make(map[string][]string),
		modulationTypes: slices.Clone(cfg.Scales.ModulationTypes),
		logger:          logging.Component("scale"),
	}

	for _, pc := range pitchClassNames {
		for _, ct := range chordTypes {
			r.AddChord(pc.name+ct.name, chord.FromPitches(transpose(pc.class, ct.intervals)...))
		}
	}
	for _, pc := range pitchClassNames {
		for _, st := range scaleTypes {
			// vocabulary pitches are never empty
			_, _ = r.AddScale(pc.name+st.name, transpose(pc.class, st.intervals)...)
		}
	}

	r.logger.Debug("Built name registry", logging.Fields{
		"chord_names":      len(r.chordsByName),
		"distinct_chords":  len(r.chordNames),
		"scale_names":      len(r.scalesByName),
		"distinct_scales":  len(r.scales),
		"modulation_types": strings.Join(r.modulationTypes, ","),
	})
	return r
}

func chordKey(c chord.Chord) string {
	return c.EOP().Key()
}

// AddChord registers c under name. A name already in use is rebound.
func (r *Registry) AddChord(name string, c chord.Chord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.chordsByName[name]; ok {
		key := chordKey(previous)
		r.chordNames[key] = slices.DeleteFunc(r.chordNames[key], func(n string) bool { return n == name })
	}
	r.chordsByName[name] = c
	key := chordKey(c)
	r.chordNames[key] = append(r.chordNames[key], name)
}

// ChordForName returns the chord registered under name.
func (r *Registry) ChordForName(name string) (chord.Chord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chordsByName[name]
	if !ok {
		return chord.Chord{}, fmt.Errorf("%w: chord %q", ErrUnknownName, name)
	}
	return c, nil
}

// NameForChord returns the display name of c, or "" if it has none.
func (r *Registry) NameForChord(c chord.Chord) string {
	names := r.NamesForChord(c)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// NamesForChord returns every name of c in registration order.
func (r *Registry) NamesForChord(c chord.Chord) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.chordNames[chordKey(c)])
}

// AddScale builds a scale from pitches and registers it under name. The
// first pitch is the tonic.
func (r *Registry) AddScale(name string, pitches ...float64) (Scale, error) {
	s, err := newScale(r, name, pitches)
	if err != nil {
		return Scale{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := s.Key()
	if previous, ok := r.scalesByName[name]; ok {
		old := previous.Key()
		r.scaleNames[old] = slices.DeleteFunc(r.scaleNames[old], func(n string) bool { return n == name })
	}
	r.scalesByName[name] = s
	if !slices.ContainsFunc(r.scales, func(known Scale) bool { return known.Key() == key }) {
		r.scales = append(r.scales, s)
	}
	r.scaleNames[key] = append(r.scaleNames[key], name)
	return s, nil
}

// ScaleForName returns the scale registered under name.
func (r *Registry) ScaleForName(name string) (Scale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scalesByName[name]
	if !ok {
		return Scale{}, fmt.Errorf("%w: scale %q", ErrUnknownName, name)
	}
	return s, nil
}

// NameForScale returns the display name of the scale with the pitches of s,
// or "" if none is registered.
func (r *Registry) NameForScale(s Scale) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.scaleNames[s.Key()]
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// Scales returns one scale per distinct pitch collection, in registration
// order.
func (r *Registry) Scales() []Scale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.scales)
}

// SetModulationTypes sets the scale types searched by modulations and
// tonicizations, named without the leading space ("major").
func (r *Registry) SetModulationTypes(types ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modulationTypes = slices.Clone(types)
}

// ModulationTypes returns the scale types searched by modulations.
func (r *Registry) ModulationTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.modulationTypes)
}

// modulationScales returns the distinct registered scales of the
// modulation types. A scale whose display name is of another type is still
// found through any of its names.
func (r *Registry) modulationScales() []Scale {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Scale
	for _, s := range r.scales {
		for _, name := range r.scaleNames[s.Key()] {
			candidate := r.scalesByName[name]
			if slices.Contains(r.modulationTypes, strings.TrimSpace(candidate.typeName)) {
				result = append(result, candidate)
				break
			}
		}
	}
	return result
}
