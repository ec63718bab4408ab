package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/kebabify/internal/model"
)

// DefaultPath is the report file written in the working directory when no
// other path is configured.
const DefaultPath = "kebab-ify.log"

// Format selects the report encoding.
type Format string

const (
	// FormatText is the human-readable layout shown in the package comment.
	FormatText Format = "text"

	// FormatYAML serializes the run result with yaml.v3.
	FormatYAML Format = "yaml"

	// FormatJSON serializes the run result with encoding/json.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown report format %q (expected text, yaml or json)", s)
	}
}

// document is the serialized shape of a report. It deliberately omits the
// operation list: the report records outcomes, not the steps taken.
type document struct {
	Root          string              `json:"root" yaml:"root"`
	VCS           model.VCSMode       `json:"vcs" yaml:"vcs"`
	DryRun        bool                `json:"dryRun" yaml:"dryRun"`
	Renames       []model.RenameEntry `json:"renames" yaml:"renames"`
	ModifiedFiles []string            `json:"modifiedFiles" yaml:"modifiedFiles"`
}

// Render encodes result in the given format.
func Render(format Format, result *model.RunResult) ([]byte, error) {
	switch format {
	case FormatText, "":
		return []byte(renderText(result)), nil
	case FormatYAML:
		data, err := yaml.Marshal(newDocument(result))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize report YAML: %w", err)
		}
		return append([]byte("# Kebab-ification report\n"), data...), nil
	case FormatJSON:
		data, err := json.MarshalIndent(newDocument(result), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize report JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Write renders result and writes it to path, creating parent directories
// as needed. An existing file is replaced.
func Write(path string, format Format, result *model.RunResult) error {
	data, err := Render(format, result)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}

func newDocument(result *model.RunResult) document {
	// Empty lists serialize as [] rather than null.
	doc := document{
		Root:          result.Root,
		VCS:           result.VCS,
		DryRun:        result.DryRun,
		Renames:       []model.RenameEntry{},
		ModifiedFiles: []string{},
	}
	doc.Renames = append(doc.Renames, result.Renames...)
	doc.ModifiedFiles = append(doc.ModifiedFiles, result.ModifiedFiles...)
	return doc
}

func renderText(result *model.RunResult) string {
	var b strings.Builder
	b.WriteString("Kebab-ification report\n")

	b.WriteString("File/folder renames:\n")
	if len(result.Renames) == 0 {
		b.WriteString("(None)\n")
	}
	for _, e := range result.Renames {
		fmt.Fprintf(&b, "  * %s => %s\n", e.Original, e.Renamed)
	}

	b.WriteString("Files modified:\n")
	if len(result.ModifiedFiles) == 0 {
		b.WriteString("(None)\n")
	}
	for _, f := range result.ModifiedFiles {
		fmt.Fprintf(&b, "  * %s\n", f)
	}

	return b.String()
}
