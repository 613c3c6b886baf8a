// Package config resolves process settings for the nwarp tools.
//
// Sources merge in increasing precedence: built-in defaults, an optional
// YAML file, then NWARP_ environment variables. Scene documents may still
// override the solver knobs per scene on top of all of these.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/katalvlaran/nwarp/warp"
)

// envPrefix scopes the environment variables this package reads,
// e.g. NWARP_TOLERANCE or NWARP_LOG_LEVEL.
const envPrefix = "NWARP_"

// Settings is the process-level configuration.
type Settings struct {
	ScenePath     string  `koanf:"scene"`
	Tolerance     float64 `koanf:"tolerance"`
	MaxIterations int     `koanf:"max_iterations"`
	LogLevel      string  `koanf:"log_level"`
	LogJSON       bool    `koanf:"log_json"`
	Quiet         bool    `koanf:"quiet"`
}

// Load merges the optional YAML file at path with NWARP_ environment
// variables. A missing file is not an error; env vars and defaults still
// apply. Keys keep their single underscores, so NWARP_MAX_ITERATIONS
// maps onto max_iterations.
func Load(path string) (Settings, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Settings{}, err
		}
	}

	_ = k.Load(env.Provider(envPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)

	var cfg Settings
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, validate(cfg)
}

func applyDefaults(c *Settings) {
	if c.Tolerance == 0 {
		c.Tolerance = warp.DefaultTolerance
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = warp.DefaultMaxIterations
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func validate(c Settings) error {
	if c.Tolerance <= 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("config: tolerance %g out of range", c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("config: max_iterations %d out of range", c.MaxIterations)
	}
	return nil
}
