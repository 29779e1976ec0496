// Package config loads optional run parameters from a YAML file via viper,
// in the style of the teacher's reinforcement.TrainingConfig/FromYaml: a
// thin, mapstructure-tagged struct with defaulting accessors, loaded once at
// startup rather than watched, since the core has no notion of a live
// config reload (spec.md's phases run to completion or abort).
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the knobs this module exposes beyond spec.md's core
// contract: all of them govern the ambient CLI/server surface, never the
// scan's semantics.
type Config struct {
	// Workers overrides the default worker count (runtime.NumCPU()) when > 0.
	Workers int `mapstructure:"workers"`
	// RegimeBoundaryOverride is read from the config file, but no other part
	// of this module consults it: the orchestrator always picks the regime by
	// the P >= ceil(N/2) rule, whatever this field holds.
	RegimeBoundaryOverride string `mapstructure:"regimeBoundaryOverride"`
	// ViewAddr, if non-empty, starts the live progress server (server/) at
	// this address (e.g. ":8080").
	ViewAddr string `mapstructure:"viewAddr"`
	// extra holds the raw config document, for DecodeExtra to pick
	// forward-compatible keys Config doesn't name directly out of.
	extra map[string]interface{}
}

// FromYAML reads a YAML config file at path. A missing file is not an
// error — every field simply keeps its zero value, meaning "use the
// default" — but a malformed one is.
func FromYAML(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")

	cfg := &Config{}
	if err := vp.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.extra = vp.AllSettings()
	return cfg, nil
}

// DecodeExtra re-serializes the config file's raw document and unmarshals
// it into out via yaml.v3, the teacher's pattern (reinforcement.FromYaml's
// OuterConfig/innerConfig marshal-then-unmarshal step) for letting an
// algorithm- or deployment-specific config section ride alongside the
// fields Config names directly, without Config needing to know its shape.
func (c *Config) DecodeExtra(out interface{}) error {
	if c == nil || c.extra == nil {
		return nil
	}
	raw, err := yaml.Marshal(c.extra)
	if err != nil {
		return fmt.Errorf("config: marshal extra: %w", err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("config: unmarshal extra: %w", err)
	}
	return nil
}

// WorkersOrDefault returns Workers if set, else def.
func (c *Config) WorkersOrDefault(def int) int {
	if c == nil || c.Workers <= 0 {
		return def
	}
	return c.Workers
}
