// Package config loads the ambient options that control a compiler run
// (debug tracing, the display filename) from the environment, the way the
// rest of this codebase's host tool would be configured in production
// rather than by a CLI flag parser.
package config

import "github.com/caarlos0/env/v6"

// Options holds the environment-tunable knobs a caller sets up before
// constructing a compiler.Compiler.
type Options struct {
	// Debug traces the shadow stack depth after each compiled statement to
	// stderr.
	Debug bool `env:"PYCOPY_COMPILER_DEBUG" envDefault:"false"`

	// Filename is the display name stamped onto every emitted code object
	// when the caller has no better source path to offer.
	Filename string `env:"PYCOPY_COMPILER_FILENAME" envDefault:"<string>"`
}

// Load reads Options from the environment, applying the struct tag
// defaults for anything unset.
func Load() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, err
	}
	return o, nil
}
