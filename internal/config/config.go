// Package config loads the optional kebab-ify configuration file.
//
// The file is either given explicitly with --config or discovered in the
// working directory under one of DefaultFileNames. JSON variants may carry
// comments and trailing commas (JSONC); github.com/tidwall/jsonc strips
// them before parsing with encoding/json. YAML files are parsed with
// gopkg.in/yaml.v3.
//
// Every key is optional:
//
//	{
//	  // directory to process
//	  "target": "src",
//	  "skip": ["**/*.stories.js", "Generated"],
//	  "report": "kebab-ify.log",
//	  "reportFormat": "text",
//	  "relativeOnly": false,
//	  "noGit": false,
//	  "kebabAncestors": false,
//	}
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/kebabify/internal/model"
)

// DefaultFileNames are searched in order when no explicit path is given.
var DefaultFileNames = []string{
	".kebabify.json",
	".kebabify.jsonc",
	".kebabify.yaml",
	".kebabify.yml",
}

// Config holds values read from a configuration file. Zero values mean
// "not set"; command-line flags take precedence over anything here.
type Config struct {
	// Target is the root directory to process.
	Target string `json:"target" yaml:"target"`

	// Skip lists extra doublestar globs excluded from both passes.
	Skip []string `json:"skip" yaml:"skip"`

	// Report is the path of the report file.
	Report string `json:"report" yaml:"report"`

	// ReportFormat is one of "text", "yaml" or "json".
	ReportFormat string `json:"reportFormat" yaml:"reportFormat"`

	// RelativeOnly restricts reference rewriting to relative paths.
	RelativeOnly bool `json:"relativeOnly" yaml:"relativeOnly"`

	// NoGit forces plain filesystem moves.
	NoGit bool `json:"noGit" yaml:"noGit"`

	// KebabAncestors kebab-cases ancestor directories instead of only
	// lowercasing them.
	KebabAncestors bool `json:"kebabAncestors" yaml:"kebabAncestors"`
}

// Load reads and parses the configuration file at path. The format is chosen
// by extension: .yaml and .yml are YAML, anything else is JSONC.
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults. All failures are returned as a CLIError with ExitConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("failed to read config file %s", path), err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		err = decodeJSONC(data, &cfg)
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("failed to parse config file %s", path), err)
	}

	return &cfg, nil
}

// Find returns the first of DefaultFileNames present in dir, or "" when
// there is none.
func Find(dir string) string {
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Resolve loads the explicit path when given, otherwise the discovered file
// in dir. It returns an empty Config and an empty path when no file exists.
func Resolve(explicit, dir string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = Find(dir)
	}
	if path == "" {
		return &Config{}, "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func decodeJSONC(data []byte, cfg *Config) error {
	clean := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(clean)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
