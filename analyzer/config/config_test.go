package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), t.TempDir(), "")
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, TOMLFile), `
functions = ["example.com/i18n.T", " Tr "]
strict = true
exclude = ["example.com/app/gen/..."]
`)
	nested := filepath.Join(root, "cmd", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(context.Background(), nested, "")
	require.NoError(t, err)

	want := Config{
		Functions:          []string{"example.com/i18n.T", "Tr"},
		StrictPrintability: true,
		ExcludePackages:    []string{"example.com/app/gen/..."},
		Path:               filepath.Join(root, TOMLFile),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, YAMLFile), `
functions:
  - Translate
unused_keys: true
`)

	cfg, err := Load(context.Background(), root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Translate"}, cfg.Functions)
	assert.True(t, cfg.ReportUnusedKeys)
	assert.False(t, cfg.StrictPrintability)
}

func TestLoadPrefersTOML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, TOMLFile), `functions = ["FromTOML"]`)
	writeFile(t, filepath.Join(root, YAMLFile), "functions: [FromYAML]\n")

	cfg, err := Load(context.Background(), root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"FromTOML"}, cfg.Functions)
}

func TestLoadExplicitFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "custom.yml")
	writeFile(t, file, "functions: [Custom]\nstrict: true\n")

	cfg, err := Load(context.Background(), t.TempDir(), file)
	require.NoError(t, err)
	assert.Equal(t, []string{"Custom"}, cfg.Functions)
	assert.Equal(t, file, cfg.Path)
}

func TestLoadEnvironment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, TOMLFile), `
functions = ["FromFile"]
strict = true
`)
	t.Setenv("TRANSCHECK_FUNCTIONS", "T,i18n.Tr")
	t.Setenv("TRANSCHECK_STRICT", "false")
	t.Setenv("TRANSCHECK_UNUSED_KEYS", "true")

	cfg, err := Load(context.Background(), root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"T", "i18n.Tr"}, cfg.Functions)
	assert.False(t, cfg.StrictPrintability)
	assert.True(t, cfg.ReportUnusedKeys)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		is      error
	}{
		{name: "bad toml", file: "bad.toml", content: "functions = ["},
		{name: "unknown toml key", file: "keys.toml", content: "funcs = [\"T\"]"},
		{name: "unknown yaml key", file: "keys.yaml", content: "funcs: [T]\n"},
		{name: "unsupported format", file: "conf.json", content: "{}"},
		{name: "empty functions", file: "empty.toml", content: "functions = []", is: ErrNoFunctions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), "", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), path)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(context.Background(), "", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	_, ok, err := Find(root)
	require.NoError(t, err)
	assert.False(t, ok)

	writeFile(t, filepath.Join(root, YAMLFile), "strict: true\n")
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	path, ok, err := Find(deep)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, YAMLFile), path)
}

func TestAnalysisConfig(t *testing.T) {
	cfg := Config{
		Functions:          []string{"T"},
		StrictPrintability: true,
		ExcludePackages:    []string{"example.com/x"},
	}
	ac := cfg.AnalysisConfig()

	assert.Equal(t, []string{"T"}, ac.Functions)
	assert.Equal(t, validator.Policy{StrictPrintability: true}, ac.Policy)
	assert.Equal(t, []string{"example.com/x"}, ac.ExcludePackages)

	// The result does not alias the configuration.
	ac.Functions[0] = "changed"
	assert.Equal(t, "T", cfg.Functions[0])
}
