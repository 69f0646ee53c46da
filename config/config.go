package config

// Package config holds the benchmark selection surface: which
// (subject set, operation set, size set) to run and under which
// measurement policy. Values come from an optional YAML file, with
// command-line flags layered on top.

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seqbench/seqbench/bench"
	"github.com/seqbench/seqbench/workload"
)

// Config is the recognized option set. Empty subject and operation
// sets select everything registered.
type Config struct {
	Subjects            []string `yaml:"subjects"`
	Operations          []string `yaml:"operations"`
	Sizes               []int    `yaml:"sizes"`
	ElementKind         string   `yaml:"elementKind"`
	WarmupIterations    int      `yaml:"warmupIterations"`
	MeasuredIterations  int      `yaml:"measuredIterations"`
	Seed                int64    `yaml:"seed"`
	GCBetweenIterations bool     `yaml:"gcBetweenIterations"`
	// Timeout bounds the whole report; tuples not yet started when it
	// passes are skipped. Duration string, e.g. "10m".
	Timeout string `yaml:"timeout"`
	Profile bool   `yaml:"profile"`

	kind    workload.Kind
	ops     []bench.Op
	timeout time.Duration
}

// Default returns the configuration used when no file or flags narrow
// the run: the full matrix over a generous fixed measurement policy.
func Default() Config {
	return Config{
		Sizes:              []int{1000, 10000, 100000},
		ElementKind:        workload.KindPrimitive.String(),
		WarmupIterations:   200,
		MeasuredIterations: 100,
		Seed:               42,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the selection and resolves the parsed fields. It
// must be called before Kind, Ops or TimeoutDuration.
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("at least one size is required")
	}
	for _, s := range c.Sizes {
		if s <= 0 {
			return fmt.Errorf("sizes must be positive, got %d", s)
		}
	}
	if c.WarmupIterations <= 0 {
		return fmt.Errorf("warmupIterations must be positive, got %d", c.WarmupIterations)
	}
	if c.MeasuredIterations <= 0 {
		return fmt.Errorf("measuredIterations must be positive, got %d", c.MeasuredIterations)
	}

	kind, err := workload.ParseKind(c.ElementKind)
	if err != nil {
		return err
	}
	c.kind = kind

	c.ops = c.ops[:0]
	for _, name := range c.Operations {
		op, err := bench.ParseOp(name)
		if err != nil {
			return err
		}
		c.ops = append(c.ops, op)
	}

	c.timeout = 0
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		c.timeout = d
	}
	return nil
}

// Kind returns the parsed element kind.
func (c *Config) Kind() workload.Kind { return c.kind }

// Ops returns the parsed operation selection; empty means all.
func (c *Config) Ops() []bench.Op { return c.ops }

// TimeoutDuration returns the parsed whole-report timeout; zero means
// none.
func (c *Config) TimeoutDuration() time.Duration { return c.timeout }
