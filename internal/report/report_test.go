package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/kebabify/internal/model"
)

func widgetResult() *model.RunResult {
	return &model.RunResult{
		Root: "src",
		VCS:  model.VCSGit,
		Renames: []model.RenameEntry{
			{Original: "Components", Renamed: "components"},
			{Original: "Components/MyWidget", Renamed: "my-widget"},
		},
		Operations: []model.RenameOp{
			{Source: "Components", Destination: "components.temp-rename", IsDir: true},
		},
		ModifiedFiles: []string{"app.js", "components/my-widget/my-widget.js"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: "YAML", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: " json ", want: FormatJSON},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Text(t *testing.T) {
	data, err := Render(FormatText, widgetResult())
	require.NoError(t, err)

	want := strings.Join([]string{
		"Kebab-ification report",
		"File/folder renames:",
		"  * Components => components",
		"  * Components/MyWidget => my-widget",
		"Files modified:",
		"  * app.js",
		"  * components/my-widget/my-widget.js",
		"",
	}, "\n")
	assert.Equal(t, want, string(data))
}

func TestRender_TextEmpty(t *testing.T) {
	data, err := Render(FormatText, &model.RunResult{Root: "src"})
	require.NoError(t, err)
	assert.Equal(t, "Kebab-ification report\nFile/folder renames:\n(None)\nFiles modified:\n(None)\n", string(data))
}

func TestRender_YAML(t *testing.T) {
	data, err := Render(FormatYAML, widgetResult())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Kebab-ification report\n"))

	var doc document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "src", doc.Root)
	assert.Equal(t, model.VCSGit, doc.VCS)
	assert.Equal(t, widgetResult().Renames, doc.Renames)
	assert.Equal(t, widgetResult().ModifiedFiles, doc.ModifiedFiles)
}

func TestRender_JSON(t *testing.T) {
	data, err := Render(FormatJSON, &model.RunResult{Root: "src", VCS: model.VCSNone, DryRun: true})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "src", raw["root"])
	assert.Equal(t, "none", raw["vcs"])
	assert.Equal(t, true, raw["dryRun"])
	assert.Equal(t, []interface{}{}, raw["renames"], "empty lists are encoded as []")
	assert.Equal(t, []interface{}{}, raw["modifiedFiles"])
	assert.NotContains(t, raw, "operations")
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", DefaultPath)

	require.NoError(t, Write(path, FormatText, widgetResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "  * Components => components\n")

	// A second run replaces the file.
	require.NoError(t, Write(path, FormatText, &model.RunResult{}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Components")
}
