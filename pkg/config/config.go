// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// MinIndex and MaxIndex bound the missile numbers a copy may get.
	MinIndex = 1
	MaxIndex = 9999

	// DefaultWorkers is the number of copies written at once in async mode.
	DefaultWorkers = 4
)

// FileNames are the config files Discover looks for, in order.
var FileNames = []string{".whamdup.yaml", ".whamdup.yml", ".whamdup.hcl"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds the settings of a duplication run.
// Zero FirstIndex or NumCopies means "ask".
type Config struct {
	BlueprintFolder string `yaml:"blueprint_folder,omitempty" hcl:"blueprint_folder,optional"`
	Blueprint       string `yaml:"blueprint,omitempty" hcl:"blueprint,optional"`
	FirstIndex      int    `yaml:"first_index,omitempty" hcl:"first_index,optional"`
	NumCopies       int    `yaml:"num_copies,omitempty" hcl:"num_copies,optional"`
	Force           bool   `yaml:"force,omitempty" hcl:"force,optional"`
	Async           bool   `yaml:"async,omitempty" hcl:"async,optional"`
	Workers         int    `yaml:"workers,omitempty" hcl:"workers,optional"`

	location string
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{Workers: DefaultWorkers}
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Discover returns the first config file from FileNames present in dir, or "".
func Discover(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", errors.Errorf("checking for config file: %w", err)
		}
		if !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// 🔍 Validate checks if the configuration is valid and fills defaults
func (cfg *Config) Validate() error {
	if cfg.FirstIndex != 0 && (cfg.FirstIndex < MinIndex || cfg.FirstIndex > MaxIndex) {
		return errors.Errorf("first_index must be between %d and %d, got %d", MinIndex, MaxIndex, cfg.FirstIndex)
	}
	if cfg.NumCopies != 0 && (cfg.NumCopies < MinIndex || cfg.NumCopies > MaxIndex) {
		return errors.Errorf("num_copies must be between %d and %d, got %d", MinIndex, MaxIndex, cfg.NumCopies)
	}
	if cfg.Workers < 0 {
		return errors.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}

	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.BlueprintFolder != "" {
		cfg.BlueprintFolder = filepath.Clean(cfg.BlueprintFolder)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	folder := cfg.BlueprintFolder
	if folder == "" {
		folder = "<default>"
	}
	blueprint := cfg.Blueprint
	if blueprint == "" {
		blueprint = "<ask>"
	}
	return fmt.Sprintf("%s/%s from %s x%s", folder, blueprint, orAsk(cfg.FirstIndex), orAsk(cfg.NumCopies))
}

func orAsk(n int) string {
	if n == 0 {
		return "?"
	}
	return fmt.Sprint(n)
}
