package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-chordspace/algorithms/common"
	"github.com/RyanBlaney/sonido-chordspace/logging"
)

// ErrInvalidConfig is returned (wrapped with the offending field) when a
// configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Tuning names a preset for the generator of the transposition group.
type Tuning string

const (
	Tuning12TET  Tuning = "12-tet" // semitone generator
	Tuning24TET  Tuning = "24-tet" // quarter-tone generator
	Tuning6TET   Tuning = "6-tet"  // whole-tone generator
	TuningCustom Tuning = "custom"
)

// EngineConfig configures a chord space and the components built on it.
type EngineConfig struct {
	// Equivalence parameters
	Range     float64 `json:"range" yaml:"range"`         // Octave-equivalence range in semitones
	Generator float64 `json:"generator" yaml:"generator"` // Transposition generator g
	Sector    int     `json:"sector" yaml:"sector"`       // Default sector for sector-bearing relations
	Tuning    Tuning  `json:"tuning" yaml:"tuning"`

	// Comparison tolerances
	Tolerance       common.Tolerance `json:"tolerance" yaml:"tolerance"`
	SectorTolerance common.Tolerance `json:"sector_tolerance" yaml:"sector_tolerance"`

	PITV         PITVConfig         `json:"pitv" yaml:"pitv"`
	VoiceLeading VoiceLeadingConfig `json:"voice_leading" yaml:"voice_leading"`
	Scales       ScalesConfig       `json:"scales" yaml:"scales"`

	LogLevel string `json:"log_level" yaml:"log_level"` // "debug", "info", "warn", "error"
}

// PITVConfig shapes the PITV index.
type PITVConfig struct {
	Voices int     `json:"voices" yaml:"voices"`
	Range  float64 `json:"range" yaml:"range"` // Span of the voicing odometer in semitones
}

// VoiceLeadingConfig configures closest-voice-leading search.
type VoiceLeadingConfig struct {
	Range          float64 `json:"range" yaml:"range"` // Register searched above the source
	AvoidParallels bool    `json:"avoid_parallels" yaml:"avoid_parallels"`
}

// ScalesConfig configures the scale registry.
type ScalesConfig struct {
	ModulationTypes []string `json:"modulation_types" yaml:"modulation_types"` // Scale types searched for modulations
}

// DefaultEngineConfig returns the 12-TET defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Range:           common.Octave,
		Generator:       1.0,
		Sector:          0,
		Tuning:          Tuning12TET,
		Tolerance:       common.DefaultTolerance,
		SectorTolerance: common.SectorTolerance,
		PITV: PITVConfig{
			Voices: 3,
			Range:  3 * common.Octave,
		},
		VoiceLeading: VoiceLeadingConfig{
			Range:          3 * common.Octave,
			AvoidParallels: false,
		},
		Scales: ScalesConfig{
			ModulationTypes: []string{"major", "harmonic minor"},
		},
		LogLevel: "info",
	}
}

// ConfigForTuning returns the defaults with the generator set for a tuning
// preset. Unknown presets keep the 12-TET generator.
func ConfigForTuning(tuning Tuning) EngineConfig {
	config := DefaultEngineConfig()
	config.Tuning = tuning

	switch tuning {
	case Tuning24TET:
		config.Generator = 0.5
	case Tuning6TET:
		config.Generator = 2.0
	case Tuning12TET:
		config.Generator = 1.0
	}

	return config
}

// Parse decodes YAML over the defaults of its tuning preset and validates
// the result. An explicit generator overrides the preset.
func Parse(data []byte) (EngineConfig, error) {
	var probe struct {
		Tuning Tuning `yaml:"tuning"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return DefaultEngineConfig(), fmt.Errorf("failed to decode config: %w", err)
	}
	config := DefaultEngineConfig()
	if probe.Tuning != "" {
		config = ConfigForTuning(probe.Tuning)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultEngineConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	config, err := Parse(data)
	if err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}
	logging.Component("config").Info("Loaded engine config", logging.Fields{
		"path":      path,
		"range":     config.Range,
		"generator": config.Generator,
		"voices":    config.PITV.Voices,
	})
	return config, nil
}

// Validate checks every field and returns ErrInvalidConfig wrapped with the
// first offending field.
func (c EngineConfig) Validate() error {
	if !(c.Range > 0) || math.IsInf(c.Range, 0) {
		return fmt.Errorf("%w: range must be positive, got %v", ErrInvalidConfig, c.Range)
	}
	if !(c.Generator > 0) || c.Generator > common.Octave {
		return fmt.Errorf("%w: generator must lie in (0, 12], got %v", ErrInvalidConfig, c.Generator)
	}
	steps := common.Octave / c.Generator
	if !common.Eq(steps, math.Round(steps)) {
		return fmt.Errorf("%w: generator %v does not divide the octave", ErrInvalidConfig, c.Generator)
	}
	if c.Sector < 0 {
		return fmt.Errorf("%w: sector must be non-negative, got %d", ErrInvalidConfig, c.Sector)
	}
	if c.Tolerance.Epsilons <= 0 || c.Tolerance.ULPs <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %+v", ErrInvalidConfig, c.Tolerance)
	}
	if c.SectorTolerance.Epsilons < c.Tolerance.Epsilons || c.SectorTolerance.ULPs < c.Tolerance.ULPs {
		return fmt.Errorf("%w: sector tolerance %+v is narrower than %+v", ErrInvalidConfig, c.SectorTolerance, c.Tolerance)
	}
	if c.PITV.Voices < common.MinVoices || c.PITV.Voices > common.MaxVoices {
		return fmt.Errorf("%w: pitv voices must lie in [%d, %d], got %d",
			ErrInvalidConfig, common.MinVoices, common.MaxVoices, c.PITV.Voices)
	}
	if c.PITV.Range < 0 || !common.Eq(math.Mod(c.PITV.Range, common.Octave), 0) {
		return fmt.Errorf("%w: pitv range must be a whole number of octaves, got %v", ErrInvalidConfig, c.PITV.Range)
	}
	if c.VoiceLeading.Range < common.Octave {
		return fmt.Errorf("%w: voice leading range must cover an octave, got %v", ErrInvalidConfig, c.VoiceLeading.Range)
	}
	if len(c.Scales.ModulationTypes) == 0 {
		return fmt.Errorf("%w: scales need at least one modulation type", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c EngineConfig) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
