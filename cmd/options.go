package cmd

import (
	"time"

	"github.com/spiffcs/linear-stats/config"
)

// Options holds the shared command-line options for the linear-stats CLI.
type Options struct {
	TeamID     string
	OutputPath string
	Schedule   string
	Format     string
	Timeout    time.Duration
	Verbosity  int
	TUI        *bool // nil = auto-detect, true = force TUI, false = disable TUI
	NoHistory  bool  // Skip recording the run in the history file
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}

// overrides returns the flag values that take precedence over env and files.
func (o *Options) overrides() config.Overrides {
	return config.Overrides{
		TeamID:     o.TeamID,
		OutputPath: o.OutputPath,
		Schedule:   o.Schedule,
		Format:     o.Format,
		Timeout:    o.Timeout,
	}
}
