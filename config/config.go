// SPDX-License-Identifier: MIT

// Package config holds the settings of the matbench tool: worker count,
// logging, benchmark sizes and the optional metrics listener.
//
// Settings come from three layers, later layers winning:
//
//  1. Default()
//  2. a YAML file (Load)
//  3. THREADMUL_* environment variables (ApplyEnv)
//
// Validate is called by Load; callers that build a Config by hand should
// call it themselves.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "THREADMUL"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete tool configuration.
type Config struct {
	// Threads is the worker count for parallel runs; 0 means the available
	// parallelism of the process.
	Threads int       `yaml:"threads"`
	Log     LogConfig `yaml:"log"`
	Bench   Bench     `yaml:"bench"`
	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `yaml:"metrics_addr"`
}

// LogConfig selects the log level and whether output is colored.
type LogConfig struct {
	Level string `yaml:"level"`
	Color bool   `yaml:"color"`
}

// Bench controls the sweep and verify commands.
type Bench struct {
	Sizes  []int `yaml:"sizes"`  // square matrix sizes
	Seed   int64 `yaml:"seed"`   // random fill seed
	Repeat int   `yaml:"repeat"` // timed runs per size and worker count
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Threads: 0,
		Log:     LogConfig{Level: "info", Color: true},
		Bench: Bench{
			Sizes:  []int{100, 200, 500, 1000},
			Seed:   42,
			Repeat: 1,
		},
	}
}

// Load reads path over Default(), applies environment overrides and
// validates the result. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, fmt.Errorf("failed to apply env overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables looked up with
// lookup (os.LookupEnv in production):
//
//	THREADMUL_THREADS, THREADMUL_LOG_LEVEL, THREADMUL_LOG_COLOR,
//	THREADMUL_BENCH_SIZES (comma separated), THREADMUL_BENCH_SEED,
//	THREADMUL_BENCH_REPEAT, THREADMUL_METRICS_ADDR
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var err error
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + "_" + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("THREADS"); ok {
		if c.Threads, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("%s_THREADS: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_COLOR"); ok {
		if c.Log.Color, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("%s_LOG_COLOR: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("BENCH_SIZES"); ok {
		if c.Bench.Sizes, err = ParseSizes(v); err != nil {
			return fmt.Errorf("%s_BENCH_SIZES: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("BENCH_SEED"); ok {
		if c.Bench.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return fmt.Errorf("%s_BENCH_SEED: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("BENCH_REPEAT"); ok {
		if c.Bench.Repeat, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("%s_BENCH_REPEAT: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("METRICS_ADDR"); ok {
		c.MetricsAddr = v
	}

	return nil
}

// Validate reports the first invalid field, wrapped around ErrInvalid.
func (c Config) Validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("%w: threads %d (want >= 0, 0 = auto)", ErrInvalid, c.Threads)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if len(c.Bench.Sizes) == 0 {
		return fmt.Errorf("%w: bench.sizes is empty", ErrInvalid)
	}
	for _, n := range c.Bench.Sizes {
		if n <= 0 {
			return fmt.Errorf("%w: bench size %d (want > 0)", ErrInvalid, n)
		}
	}
	if c.Bench.Repeat < 1 {
		return fmt.Errorf("%w: bench.repeat %d (want >= 1)", ErrInvalid, c.Bench.Repeat)
	}

	return nil
}

// SlogLevel maps Level (debug, info, warn, error; case-insensitive) to a
// slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}

	return lvl, nil
}

// ParseSizes parses a comma separated list of sizes such as "100,200,500".
func ParseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", p, err)
		}
		out = append(out, n)
	}

	return out, nil
}
