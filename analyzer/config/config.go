// Package config loads transcheck settings from a project file and the
// environment.
//
// Settings are layered, later sources winning: DefaultConfig, the nearest
// .transcheck.toml or .transcheck.yaml found walking up from the analyzed
// directory, then TRANSCHECK_* environment variables. Command-line flags are
// applied on top by the caller.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/abiiranathan/go-translate-lint/analyzer/ast"
	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

// File names searched for, in order of preference within one directory.
const (
	TOMLFile = ".transcheck.toml"
	YAMLFile = ".transcheck.yaml"
)

// ErrNoFunctions is returned when a configuration names no translation
// functions.
var ErrNoFunctions = errors.New("no translation functions configured")

// Config is the user-facing configuration.
type Config struct {
	// Functions lists the translation functions to check. See
	// ast.AnalysisConfig.Functions for the accepted forms.
	Functions []string `toml:"functions" yaml:"functions" env:"TRANSCHECK_FUNCTIONS,overwrite"`
	// StrictPrintability reports values whose type is unknown.
	StrictPrintability bool `toml:"strict" yaml:"strict" env:"TRANSCHECK_STRICT,overwrite"`
	// ReportUnusedKeys reports collection keys that no placeholder uses.
	ReportUnusedKeys bool `toml:"unused_keys" yaml:"unused_keys" env:"TRANSCHECK_UNUSED_KEYS,overwrite"`
	// ExcludePackages are package path patterns to skip.
	ExcludePackages []string `toml:"exclude" yaml:"exclude" env:"TRANSCHECK_EXCLUDE,overwrite"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Functions: slices.Clone(ast.DefaultConfig.Functions),
	}
}

// Load builds the configuration for analyzing dir. When file is non-empty
// it is read instead of searching for a project file.
func Load(ctx context.Context, dir, file string) (Config, error) {
	log := clog.FromContext(ctx)
	cfg := DefaultConfig()

	if file == "" {
		found, ok, err := Find(dir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			file = found
		}
	}

	if file != "" {
		if err := decodeFile(file, &cfg); err != nil {
			return Config{}, err
		}
		cfg.Path = file
		log.Debugf("loaded configuration from %s", file)
	}

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment: %w", err)
	}

	cfg.Functions = normalize(cfg.Functions)
	cfg.ExcludePackages = normalize(cfg.ExcludePackages)
	if len(cfg.Functions) == 0 {
		if cfg.Path != "" {
			return Config{}, fmt.Errorf("%s: %w", cfg.Path, ErrNoFunctions)
		}
		return Config{}, ErrNoFunctions
	}

	return cfg, nil
}

// Find walks up from startDir looking for a configuration file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{TOMLFile, YAMLFile} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// decodeFile overlays the settings present in path onto cfg. Keys missing
// from the file keep their current value.
func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
		return nil

	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
		return nil

	default:
		return fmt.Errorf("%s: unsupported config format %q", path, ext)
	}
}

// normalize trims entries and drops empty ones.
func normalize(list []string) []string {
	out := list[:0:0]
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// AnalysisConfig converts the configuration for the analyzer.
func (c Config) AnalysisConfig() ast.AnalysisConfig {
	return ast.AnalysisConfig{
		Functions: slices.Clone(c.Functions),
		Policy: validator.Policy{
			StrictPrintability: c.StrictPrintability,
			ReportUnusedKeys:   c.ReportUnusedKeys,
		},
		ExcludePackages: slices.Clone(c.ExcludePackages),
	}
}
