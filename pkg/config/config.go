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
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the composer and its command-line tool.
type Config struct {
	// LogLevel is any level understood by logrus (e.g. "info", "debug").
	LogLevel string `yaml:"log_level"`
	// MaxDepth bounds the number of nested theorem applications.
	MaxDepth uint `yaml:"max_depth"`
	// Inline contains settings for inlining theorems.
	Inline InlineConfig `yaml:"inline"`
	// Auto contains settings for automatic proof construction.
	Auto AutoConfig `yaml:"auto"`
	// Emit contains settings for writing databases out.
	Emit EmitConfig `yaml:"emit"`
}

// InlineConfig contains settings for inlining theorems.
type InlineConfig struct {
	// ValidateReference checks that a reference proof proves the theorem
	// being inlined.
	ValidateReference bool `yaml:"validate_reference"`
}

// AutoConfig contains settings for automatic proof construction.
type AutoConfig struct {
	// Typecode enables automatic proofs of category judgements.
	Typecode bool `yaml:"typecode"`
}

// EmitConfig contains settings for writing databases out.
type EmitConfig struct {
	// Segment restricts output to a single segment, when non-empty.
	Segment string `yaml:"segment"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		MaxDepth: 512,
		Inline:   InlineConfig{ValidateReference: true},
		Auto:     AutoConfig{Typecode: true},
	}
}

// Load reads the configuration with priority: environment > file > defaults.
// An empty path means no file is read.
func Load(path string) (Config, error) {
	config := DefaultConfig()
	//
	if path != "" {
		if err := config.loadFile(path); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}
	//
	if err := config.loadEnv(); err != nil {
		return config, fmt.Errorf("load config environment: %w", err)
	}
	//
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	//
	return config, nil
}

// Parse overlays the YAML settings in data onto this configuration.
func (c *Config) Parse(data []byte) error {
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	//
	return c.Parse(data)
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("MMCOMPOSE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	//
	if v := os.Getenv("MMCOMPOSE_MAX_DEPTH"); v != "" {
		i, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("MMCOMPOSE_MAX_DEPTH: %w", err)
		}
		//
		c.MaxDepth = uint(i)
	}
	//
	if v := os.Getenv("MMCOMPOSE_EMIT_SEGMENT"); v != "" {
		c.Emit.Segment = v
	}
	//
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	} else if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be >= 1")
	}
	//
	return nil
}

// Level returns the configured logging level, defaulting to info when the
// configuration has not been validated.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	//
	return level
}
