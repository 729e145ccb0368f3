// Package config is for run settings that are unmarshalled
// from Viper (see: /cmd/pepcomb/cmd)
package config

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/pepcomb/pkg/core"
	"github.com/spf13/viper"
)

// Monomer is one alphabet entry in a config file
type Monomer struct {
	Symbol string  `mapstructure:"symbol"`
	Mass   float64 `mapstructure:"mass"`
}

// SequenceConfig holds the reference-sequence search settings
type SequenceConfig struct {
	// the reference sequence to validate substrings against
	Reference string `mapstructure:"reference"`

	// the upper mass bound for a combination
	Bound float64 `mapstructure:"bound"`

	// the residues taking part in the search; defaults to the
	// reference sequence spelled with the alphabet
	Items []Monomer `mapstructure:"items"`
}

// MassConfig holds the de novo search settings
type MassConfig struct {
	// the residue mass to account for
	Target float64 `mapstructure:"target"`

	// half width of the acceptance band around Target
	Tolerance float64 `mapstructure:"tolerance"`

	// an observed precursor m/z; when set with Charge it replaces Target
	PrecursorMZ float64 `mapstructure:"precursor-mz"`

	// precursor charge state
	Charge int `mapstructure:"charge"`
}

// Config is the root-level settings struct and is a mix
// of settings available in a config file, PEPCOMB_ env
// variables and those available from the command line
type Config struct {
	// ordered alphabet; empty means the standard residues
	Alphabet []Monomer `mapstructure:"alphabet"`

	// path to a symbol,mass CSV that replaces Alphabet
	AlphabetFile string `mapstructure:"alphabet-file"`

	Sequence SequenceConfig `mapstructure:"sequence"`
	Mass     MassConfig     `mapstructure:"mass"`

	// output path; the extension picks the format
	Out string `mapstructure:"out"`

	// skip writing an output file
	NoExport bool `mapstructure:"no-export"`

	// largest combination size (0 = no limit)
	MaxSize int `mapstructure:"max-size"`

	// number of size classes searched concurrently
	Workers int `mapstructure:"workers"`

	// logging
	Verbose bool `mapstructure:"verbose"`
	JSONLog bool `mapstructure:"json-log"`
}

// Defaults of the example run
const (
	DefaultReference = "AVFPSJVGRPR"
	DefaultBound     = 1179.68761
	DefaultTarget    = 850.4528
	DefaultTolerance = 0.01
)

// SetDefaults registers the default settings on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sequence.reference", DefaultReference)
	v.SetDefault("sequence.bound", DefaultBound)
	v.SetDefault("mass.target", DefaultTarget)
	v.SetDefault("mass.tolerance", DefaultTolerance)
	v.SetDefault("mass.charge", 1)
	v.SetDefault("workers", 1)
}

// New returns a Config populated by v
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, nil
}

// BuildAlphabet returns the configured alphabet: AlphabetFile if set, then
// Alphabet, then the standard residues.
func (c Config) BuildAlphabet() (*core.Alphabet, error) {
	var alpha *core.Alphabet

	switch {
	case c.AlphabetFile != "":
		f, err := os.Open(c.AlphabetFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open alphabet file: %w", err)
		}
		defer f.Close()

		alpha, err = core.LoadAlphabetCSV(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load alphabet %s: %w", c.AlphabetFile, err)
		}
	case len(c.Alphabet) > 0:
		alpha = core.NewAlphabet()
		for _, m := range c.Alphabet {
			alpha.Add(m.Symbol, m.Mass)
		}
	default:
		alpha = core.StandardAlphabet()
	}

	if err := alpha.Validate(); err != nil {
		return nil, err
	}
	return alpha, nil
}

// Items returns the residues of the sequence search. Without explicit
// items, each character of the reference is looked up in alpha.
func (c Config) Items(alpha *core.Alphabet) ([]core.Monomer, error) {
	if len(c.Sequence.Items) > 0 {
		items := make([]core.Monomer, len(c.Sequence.Items))
		for i, m := range c.Sequence.Items {
			items[i] = core.Monomer{Symbol: m.Symbol, Mass: m.Mass}
		}
		return items, nil
	}

	items := make([]core.Monomer, 0, len(c.Sequence.Reference))
	for i, r := range c.Sequence.Reference {
		mass, err := alpha.MassOf(string(r))
		if err != nil {
			return nil, fmt.Errorf("reference position %d: %w", i, err)
		}
		items = append(items, core.Monomer{Symbol: string(r), Mass: mass})
	}
	return items, nil
}

// Target returns the de novo target mass, derived from the precursor m/z
// when one is configured.
func (c Config) Target() float64 {
	if c.Mass.PrecursorMZ > 0 && c.Mass.Charge > 0 {
		return core.ResidueMassFromPrecursor(c.Mass.PrecursorMZ, c.Mass.Charge)
	}
	return c.Mass.Target
}

// ValidateSequence checks the settings of the sequence search.
func (c Config) ValidateSequence() error {
	if c.Sequence.Reference == "" {
		return &core.ConfigError{Field: "sequence.reference", Message: "reference sequence is required"}
	}
	if c.Sequence.Bound <= 0 {
		return &core.ConfigError{Field: "sequence.bound", Message: "mass bound must be positive"}
	}
	return c.validateCommon()
}

// ValidateMass checks the settings of the de novo search.
func (c Config) ValidateMass() error {
	if c.Mass.PrecursorMZ > 0 && c.Mass.Charge <= 0 {
		return &core.ConfigError{Field: "mass.charge", Message: "charge must be positive"}
	}
	if c.Target() <= 0 {
		return &core.ConfigError{Field: "mass.target", Message: "target mass must be positive"}
	}
	if c.Mass.Tolerance < 0 {
		return &core.ConfigError{Field: "mass.tolerance", Message: "tolerance must be non-negative"}
	}
	return c.validateCommon()
}

func (c Config) validateCommon() error {
	if c.MaxSize < 0 {
		return &core.ConfigError{Field: "max-size", Message: "max size must not be negative"}
	}
	if c.Workers < 1 {
		return &core.ConfigError{Field: "workers", Message: "at least one worker is required"}
	}
	return nil
}
