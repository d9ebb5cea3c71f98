// Package config loads prover settings from a TOML file. Command-line
// flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rfielding/kripke-tableau/kripke"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"text", "yaml", "dot", "mermaid"}

// Config is the full prover configuration.
type Config struct {
	// Logic names a preset frame, see kripke.Logics.
	Logic  string         `toml:"logic"`
	Frame  FrameOverrides `toml:"frame"`
	Limits Limits         `toml:"limits"`
	Log    Log            `toml:"log"`
	Output Output         `toml:"output"`
}

// FrameOverrides switch single properties of the preset on or off. Unset
// fields keep the preset's value.
type FrameOverrides struct {
	Reflexive  *bool `toml:"reflexive"`
	Symmetric  *bool `toml:"symmetric"`
	Transitive *bool `toml:"transitive"`
	Extendable *bool `toml:"extendable"`
}

// Limits bound a proof run. Zero disables a bound.
type Limits struct {
	MaxSteps  int  `toml:"max_steps"`
	MaxWorlds int  `toml:"max_worlds"`
	LoopCheck bool `toml:"loop_check"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Output struct {
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logic: kripke.DefaultLogic,
		Limits: Limits{
			MaxSteps:  10000,
			MaxWorlds: 256,
			LoopCheck: true,
		},
		Log:    Log{Level: "info", Format: "text"},
		Output: Output{Format: "text"},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML content over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks names and bounds.
func (c *Config) Validate() error {
	if _, err := kripke.LogicFrame(c.Logic); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Limits.MaxSteps < 0 {
		return fmt.Errorf("%w: limits.max_steps must not be negative", ErrInvalid)
	}
	if c.Limits.MaxWorlds < 0 {
		return fmt.Errorf("%w: limits.max_worlds must not be negative", ErrInvalid)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q must be 'debug', 'info', 'warn', or 'error'", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q must be 'text' or 'json'", ErrInvalid, c.Log.Format)
	}
	if !slices.Contains(OutputFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: output.format %q must be one of %s", ErrInvalid, c.Output.Format, strings.Join(OutputFormats, ", "))
	}
	return nil
}

// ResolveFrame returns the preset frame of Logic with the overrides
// applied.
func (c *Config) ResolveFrame() (kripke.Frame, error) {
	f, err := kripke.LogicFrame(c.Logic)
	if err != nil {
		return kripke.Frame{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&f.Reflexive, c.Frame.Reflexive)
	set(&f.Symmetric, c.Frame.Symmetric)
	set(&f.Transitive, c.Frame.Transitive)
	set(&f.Extendable, c.Frame.Extendable)
	return f, nil
}
