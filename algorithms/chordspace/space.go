package chordspace

import (
	"fmt"
	"sync"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/chord"
	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
	"github.com/RyanBlaney/sonido-chordspace/config"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

const (
	MinVoices = common.MinVoices
	MaxVoices = common.MaxVoices
)

// Space is the chord-space context: the sector geometry for every supported
// voice count, built once in New, plus the canonical-form caches. A Space is
// safe for concurrent use.
type Space struct {
	config          config.EngineConfig
	tolerance       common.Tolerance
	sectorTolerance common.Tolerance
	geometries      [MaxVoices + 1]*geometry

	normalForms       *memo
	primeForms        *memo
	inversePrimeForms *memo

	logger logging.Logger
}

// memo is an append-only chord cache keyed by the exact chord text.
type memo struct {
	mu     sync.RWMutex
	chords map[string]chord.Chord
}

func newMemo() *memo {
	return &memo{chords: make(map[string]chord.Chord)}
}

func (m *memo) get(key string) (chord.Chord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chords[key]
	return c, ok
}

func (m *memo) put(key string, c chord.Chord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chords[key]; !ok {
		m.chords[key] = c
	}
}

func (m *memo) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chords)
}

// New validates cfg and builds a Space.
func New(cfg config.EngineConfig) (*Space, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create chord space: %w", err)
	}

	s := &Space{
		config:            cfg,
		tolerance:         cfg.Tolerance,
		sectorTolerance:   cfg.SectorTolerance,
		normalForms:       newMemo(),
		primeForms:        newMemo(),
		inversePrimeForms: newMemo(),
		logger:            logging.Component("chordspace"),
	}
	s.logger.SetLevel(cfg.Level())

	for n := MinVoices; n <= MaxVoices; n++ {
		s.geometries[n] = newGeometry(n)
	}

	s.logger.Debug("Built sector geometry", logging.Fields{
		"min_voices": MinVoices,
		"max_voices": MaxVoices,
		"range":      cfg.Range,
		"generator":  cfg.Generator,
	})

	return s, nil
}

var (
	defaultSpace     *Space
	defaultSpaceOnce sync.Once
)

// Default returns a process-wide Space built from the default configuration.
func Default() *Space {
	defaultSpaceOnce.Do(func() {
		space, err := New(config.DefaultEngineConfig())
		if err != nil {
			panic(err)
		}
		defaultSpace = space
	})
	return defaultSpace
}

// Config returns the configuration the space was built from.
func (s *Space) Config() config.EngineConfig {
	return s.config
}

// DefaultParams returns the range, generator and sector from the space's
// configuration.
func (s *Space) DefaultParams() Params {
	return Params{
		Range:  s.config.Range,
		G:      s.config.Generator,
		Sector: s.config.Sector,
	}
}

// CacheSizes reports how many normal, prime and inverse prime forms are
// cached.
func (s *Space) CacheSizes() (normal, prime, inversePrime int) {
	return s.normalForms.len(), s.primeForms.len(), s.inversePrimeForms.len()
}

// equal compares representatives under the configured tolerance.
func (s *Space) equal(a, b chord.Chord) bool {
	return chord.EqualWithin(a, b, s.tolerance)
}

// sectorEqual compares representatives reached through sector geometry,
// where rounding accumulates over several transforms.
func (s *Space) sectorEqual(a, b chord.Chord) bool {
	return chord.EqualWithin(a, b, s.sectorTolerance)
}

// geometryFor returns the geometry for n voices. Voice counts outside
// MinVoices..MaxVoices are programmer errors and panic.
func (s *Space) geometryFor(n int) *geometry {
	if n < MinVoices || n > MaxVoices {
		panic(fmt.Errorf("%w: no sector geometry for %d voices (supported %d..%d)",
			ErrVoiceCount, n, MinVoices, MaxVoices))
	}
	return s.geometries[n]
}
