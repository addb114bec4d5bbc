// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// Config captures the settings which can be given in a configuration file,
// such as the following:
//
//	[simplify]
//	max_depth = 256
//
//	[log]
//	level = "debug"
type Config struct {
	Simplify SimplifyConfig `toml:"simplify"`
	Log      LogConfig      `toml:"log"`
}

// SimplifyConfig limits the amount of work done when simplifying a formula.
type SimplifyConfig struct {
	// Maximum nesting depth of subformulas visited.  Subformulas below this
	// depth are left unchanged.  Zero means unlimited.
	MaxDepth uint `toml:"max_depth"`
	// Maximum number of subformulas visited per formula.  Zero means
	// unlimited.
	MaxSteps uint `toml:"max_steps"`
}

// LogConfig determines what is logged.
type LogConfig struct {
	// Name of the logging level (e.g. "info" or "debug").
	Level string `toml:"level"`
}

var defaultConfig = Config{
	Simplify: SimplifyConfig{
		MaxDepth: 1024,
		MaxSteps: 0,
	},
	Log: LogConfig{
		Level: "info",
	},
}

// Default returns the configuration used when no configuration file is given.
func Default() Config {
	return defaultConfig
}

// LogLevel returns the logging level named in this configuration.
func (c Config) LogLevel() (log.Level, error) {
	return log.ParseLevel(c.Log.Level)
}

// Load reads a configuration file, and merges the settings it defines over the
// defaults.
func Load(filename string) (Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	//
	defer f.Close()
	//
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return cfg, nil
}

// Decode reads a configuration from a given reader, and merges the settings it
// defines over the defaults.  Unknown settings are reported as an error.
func Decode(r io.Reader) (Config, error) {
	var file Config
	//
	meta, err := toml.DecodeReader(r, &file)
	if err != nil {
		return Config{}, err
	} else if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		//
		return Config{}, fmt.Errorf("unknown setting(s) %s", strings.Join(keys, ", "))
	}
	//
	cfg := merge(defaultConfig, file, meta)
	// Sanity check the logging level
	if _, err := cfg.LogLevel(); err != nil {
		return Config{}, err
	}
	//
	return cfg, nil
}

func merge(cfg Config, file Config, meta toml.MetaData) Config {
	if meta.IsDefined("simplify", "max_depth") {
		cfg.Simplify.MaxDepth = file.Simplify.MaxDepth
	}
	//
	if meta.IsDefined("simplify", "max_steps") {
		cfg.Simplify.MaxSteps = file.Simplify.MaxSteps
	}
	//
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = file.Log.Level
	}
	//
	return cfg
}
