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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/fastcopy/pkg/engine"
	"gitlab.com/tozd/go/errors"
)

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

// 📚 Config holds the defaults a fastcopy run starts from. Flags override
// anything set here; zero values mean "not configured".
type Config struct {
	// Parallel is the default number of concurrent top-level copies.
	Parallel int `yaml:"parallel,omitempty" hcl:"parallel,optional"`

	// ChunkSizeBytes overrides the per-copy chunk size.
	ChunkSizeBytes int64 `yaml:"chunk_size_bytes,omitempty" hcl:"chunk_size_bytes,optional"`

	// SyncEveryBytes overrides how many written bytes may accumulate
	// between durability flushes.
	SyncEveryBytes int64 `yaml:"sync_every_bytes,omitempty" hcl:"sync_every_bytes,optional"`

	// Exclude holds doublestar patterns applied to every tree copy.
	Exclude []string `yaml:"exclude,omitempty" hcl:"exclude,optional"`

	// Force skips interactive overwrite prompts by default.
	Force bool `yaml:"force,omitempty" hcl:"force,optional"`

	// Quiet suppresses the progress bar and per-entry console lines.
	Quiet bool `yaml:"quiet,omitempty" hcl:"quiet,optional"`
}

// 🗂️ discoveryNames are tried in order, in each directory, when looking for
// a config file.
var discoveryNames = []string{".fastcopy.yaml", ".fastcopy.yml", ".fastcopy.hcl"}

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

	if err := cfg.Validate(ctx); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔭 Discover walks from the working directory toward the root looking for
// a config file. Not finding one anywhere is not an error: it yields an
// empty Config, meaning built-in defaults.
func Discover(ctx context.Context) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	dir, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}

	for {
		for _, name := range discoveryNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				logger.Debug().Str("path", candidate).Msg("discovered config file")
				return Load(ctx, candidate)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	logger.Debug().Msg("no config file found, using defaults")
	return &Config{}, nil
}

// 🔍 Validate checks the configuration and normalizes values that are
// merely out of range: undersized chunk and flush settings are raised to
// workable minimums rather than rejected.
func (cfg *Config) Validate(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if cfg.Parallel < 0 {
		return errors.Errorf("parallel must not be negative, got %d", cfg.Parallel)
	}
	if cfg.ChunkSizeBytes < 0 {
		return errors.Errorf("chunk_size_bytes must not be negative, got %d", cfg.ChunkSizeBytes)
	}
	if cfg.SyncEveryBytes < 0 {
		return errors.Errorf("sync_every_bytes must not be negative, got %d", cfg.SyncEveryBytes)
	}

	if cfg.ChunkSizeBytes > 0 && cfg.ChunkSizeBytes < engine.MinChunkSize {
		logger.Warn().
			Int64("requested", cfg.ChunkSizeBytes).
			Int64("minimum", engine.MinChunkSize).
			Msg("chunk size raised to minimum")
		cfg.ChunkSizeBytes = engine.MinChunkSize
	}
	if cfg.SyncEveryBytes > 0 && cfg.SyncEveryBytes < cfg.ChunkSizeBytes {
		logger.Warn().
			Int64("requested", cfg.SyncEveryBytes).
			Int64("chunk", cfg.ChunkSizeBytes).
			Msg("flush threshold raised to chunk size")
		cfg.SyncEveryBytes = cfg.ChunkSizeBytes
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern: %q", pattern)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("parallel=%d chunk=%d sync_every=%d exclude=%d force=%t quiet=%t",
		cfg.Parallel, cfg.ChunkSizeBytes, cfg.SyncEveryBytes, len(cfg.Exclude), cfg.Force, cfg.Quiet)
}
