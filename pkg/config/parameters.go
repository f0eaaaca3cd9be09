// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable bound to a flag.
const EnvPrefix = "HARNESSCHECK"

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Harness is a struct that contains the target harness configuration.
	Harness harness
	// Suite is a struct that contains the suite selection.
	Suite suite
	// Stub is a struct that contains the fake harness configuration.
	Stub stub
)

type global struct {
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
	} `yaml:"logging,omitempty"`
	// NoColor disables colored result glyphs.
	NoColor bool `yaml:"noColor,omitempty"`
}

type harness struct {
	// BaseURL is prepended to every case path.
	BaseURL string `yaml:"baseURL,omitempty" default:"http://localhost:8080"`
	// Timeout bounds each request.
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type suite struct {
	// Path is a YAML suite file. Empty selects the built-in suite.
	Path string `yaml:"path,omitempty"`
}

type stub struct {
	Addr          string `yaml:"addr,omitempty" default:":8080"`
	MonsterGroups int    `yaml:"monsterGroups,omitempty" default:"3"`
	InCombat      bool   `yaml:"inCombat,omitempty"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Wrap(goerrors.Join(
		defaults.Set(&Global),
		defaults.Set(&Harness),
		defaults.Set(&Suite),
		defaults.Set(&Stub),
	), "failed to set configuration defaults")
}

// LoadFromFile loads the configuration from a file. A missing file is only an
// error when required is set.
func LoadFromFile(path string, required bool) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "configuration file %s", path)
	}
	if fstat.IsDir() {
		return errors.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return errors.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return errors.Wrapf(err, "failed to read configuration file %s", path)
	}
	type all struct {
		Global  global  `yaml:"global,omitempty"`
		Harness harness `yaml:"harness,omitempty"`
		Suite   suite   `yaml:"suite,omitempty"`
		Stub    stub    `yaml:"stub,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return errors.Wrapf(err, "failed to unmarshal configuration file %s", path)
	}
	Global = a.Global
	Harness = a.Harness
	Suite = a.Suite
	Stub = a.Stub

	return nil
}

// Reset zeroes every section and reapplies defaults.
func Reset() error {
	Global = global{}
	Harness = harness{}
	Suite = suite{}
	Stub = stub{}
	return SetDefaults()
}
