package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/kebabify/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_JSONC verifies that comments and trailing commas are accepted.
func TestLoad_JSONC(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".kebabify.jsonc", `{
  // the app lives in app/, not src/
  "target": "app",
  "skip": ["**/*.stories.js", "Generated"],
  /* keep bare package names */
  "relativeOnly": true,
  "reportFormat": "json",
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.Target)
	assert.Equal(t, []string{"**/*.stories.js", "Generated"}, cfg.Skip)
	assert.True(t, cfg.RelativeOnly)
	assert.Equal(t, "json", cfg.ReportFormat)
	assert.False(t, cfg.NoGit)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".kebabify.yml", `
target: web/src
report: reports/kebab.yaml
reportFormat: yaml
noGit: true
kebabAncestors: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Target:         "web/src",
		Report:         "reports/kebab.yaml",
		ReportFormat:   "yaml",
		NoGit:          true,
		KebabAncestors: true,
	}, cfg)
}

func TestLoad_EmptyFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"empty.json", "empty.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, dir, name, "\n"))
			require.NoError(t, err)
			assert.Equal(t, &Config{}, cfg)
		})
	}
}

// TestLoad_Errors verifies every failure carries ExitConfigError.
func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.json")},
		{name: "invalid JSON", path: writeFile(t, dir, "bad.json", `{"target": `)},
		{name: "unknown JSON key", path: writeFile(t, dir, "typo.json", `{"taget": "src"}`)},
		{name: "invalid YAML", path: writeFile(t, dir, "bad.yaml", "skip: [a, b\n")},
		{name: "unknown YAML key", path: writeFile(t, dir, "typo.yaml", "noGti: true\n")},
		{name: "wrong type", path: writeFile(t, dir, "type.json", `{"skip": "Generated"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitConfigError, cliErr.Code)
		})
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Find(dir))

	// A directory with a config name is not a config file.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".kebabify.json"), 0o755))
	assert.Empty(t, Find(dir))

	yml := writeFile(t, dir, ".kebabify.yml", "target: src\n")
	assert.Equal(t, yml, Find(dir))

	// JSONC takes precedence over YAML.
	jsoncPath := writeFile(t, dir, ".kebabify.jsonc", "{}")
	assert.Equal(t, jsoncPath, Find(dir))
}

func TestResolve(t *testing.T) {
	t.Run("nothing to load", func(t *testing.T) {
		cfg, path, err := Resolve("", t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("discovered", func(t *testing.T) {
		dir := t.TempDir()
		want := writeFile(t, dir, ".kebabify.json", `{"target": "lib"}`)

		cfg, path, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, want, path)
		assert.Equal(t, "lib", cfg.Target)
	})

	t.Run("explicit wins over discovered", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".kebabify.json", `{"target": "lib"}`)
		explicit := writeFile(t, t.TempDir(), "custom.yaml", "target: app\n")

		cfg, path, err := Resolve(explicit, dir)
		require.NoError(t, err)
		assert.Equal(t, explicit, path)
		assert.Equal(t, "app", cfg.Target)
	})

	t.Run("explicit missing", func(t *testing.T) {
		_, _, err := Resolve(filepath.Join(t.TempDir(), "nope.json"), t.TempDir())
		assert.Error(t, err)
	})
}
