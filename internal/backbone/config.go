package backbone

import (
	"math"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Verbosity levels: -1=quiet, 0=default, 1..=verbose, math.MaxInt=logging.
const (
	VerbosityQuiet   = -1
	VerbosityDefault = 0
	VerbosityLogging = math.MaxInt
)

// Config collects the recognized engine options. It is decoded once from the
// command line and immutable afterwards.
type Config struct {
	Print bool `mapstructure:"print"` // emit 'b' lines to stdout
	Check bool `mapstructure:"check"` // verify every confirmation and refutation

	NoFilter       bool `mapstructure:"no_filter"`
	NoFixed        bool `mapstructure:"no_fixed"`
	NoFlip         bool `mapstructure:"no_flip"`
	NoInprocessing bool `mapstructure:"no_inprocessing"` // forwarded to the oracle
	OneByOne       bool `mapstructure:"one_by_one"`      // disable the constrain branch
	SetPhase       bool `mapstructure:"set_phase"`       // bias oracle phase toward the negated candidate

	Report     bool `mapstructure:"report"`     // let the oracle emit its own progress
	Statistics bool `mapstructure:"statistics"` // force the full statistics block
	Verbosity  int  `mapstructure:"verbosity"`
}

// ConfigFromOptions materializes a Config from a flat option map.
func ConfigFromOptions(options map[string]any) (Config, error) {
	config := Config{Print: true}
	if err := mapstructure.Decode(options, &config); err != nil {
		return Config{}, errors.Wrap(err, "invalid options")
	}
	return config, nil
}

// Plain disables every candidate-set optimization, leaving the bare
// one-assumption-per-variable algorithm, and oracle inprocessing.
func (c Config) Plain() Config {
	c.NoFilter = true
	c.NoFixed = true
	c.NoFlip = true
	c.NoInprocessing = true
	c.OneByOne = true
	return c
}
