// This file is part of basic8 - https://github.com/retrobasic/basic8
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads basic8's CLI defaults from an optional TOML file,
// merged with flags passed on the command line.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the renderer/timing knobs of spec.md §6, each overridable by
// an equivalent CLI flag. Flag values passed on the command line always win
// over the file.
type Config struct {
	InputTimeout  int  `toml:"input_timeout"`  // seconds, spec default 30
	ExecTimeout   int  `toml:"exec_timeout"`   // seconds, 0 = none
	KeepOpen      bool `toml:"keep_open"`      // renderer window stays open after the run ends
	AutosnapEvery int  `toml:"autosnap_every"` // screenshot every N statements, 0 = off
	AutosnapOnEnd bool `toml:"autosnap_on_end"`
	Artifact      bool `toml:"artifact"`       // simulate NTSC composite artifact colors
	CompositeBlur bool `toml:"composite_blur"` // soften hi-res fringing
	Delay         int  `toml:"delay"`          // milliseconds between statements, 0 = none
	Scale         int  `toml:"scale"`          // renderer window pixel scale
}

// DefaultConfig returns the spec.md §6 defaults.
func DefaultConfig() *Config {
	return &Config{
		InputTimeout:  30,
		ExecTimeout:   0,
		KeepOpen:      true,
		AutosnapEvery: 0,
		AutosnapOnEnd: false,
		Artifact:      false,
		CompositeBlur: false,
		Delay:         0,
		Scale:         2,
	}
}

// InputTimeoutDuration and ExecTimeoutDuration convert the TOML's
// second-granularity fields into time.Duration for vm.Interpreter.
func (c *Config) InputTimeoutDuration() time.Duration {
	return time.Duration(c.InputTimeout) * time.Second
}

func (c *Config) ExecTimeoutDuration() time.Duration {
	if c.ExecTimeout <= 0 {
		return 0
	}
	return time.Duration(c.ExecTimeout) * time.Second
}

func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay) * time.Millisecond
}

// GetConfigDir returns the per-OS directory basic8 stores its config file
// under, creating it if necessary.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = filepath.Join(home, "AppData", "Roaming", "basic8")
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "basic8")
	default:
		dir = filepath.Join(home, ".config", "basic8")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating config directory")
	}
	return dir, nil
}

// GetConfigPath returns the default config file path, ~/.config/basic8/config.toml
// (or the platform equivalent).
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the default config file path, returning DefaultConfig if it
// does not exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a specific TOML file, returning DefaultConfig if it does
// not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "decoding config file %s", path)
	}
	return cfg, nil
}

// Save writes the config to the default config file path.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating config file %s", path)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrapf(err, "encoding config file %s", path)
	}
	return nil
}
