package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/framesmith/internal/style"
)

const minimal = `
name = "Test Frame"
version = "test"
width = 2010
height = 2814

[paths]
frame = "/img/frames/test/{color_code}.png"
mask = "/img/frames/test/{mask_name}.png"

[bounds.art]
x = 0.1
y = 0.1
width = 0.8
height = 0.45

[bounds.set_symbol]
x = 0.9
y = 0.57
width = 0.12
height = 0.04

[defaults.art]
zoom = 2.5

[defaults.set_symbol]
zoom = 0.3

[defaults.watermark]
source = "img/blank.png"
left = "#b79d58"
right = "none"
opacity = 0.4

[text.mana]
width = 0.9
height = 0.03
[text.title]
width = 0.8
height = 0.05
[text.type]
width = 0.8
height = 0.05
[text.rules]
width = 0.8
height = 0.28
[text.pt]
width = 0.13
height = 0.04
`

func writeStyle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func hasMessage(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestBuiltinStylesAreValid(t *testing.T) {
	for _, id := range style.BuiltinIDs() {
		t.Run(id, func(t *testing.T) {
			s, err := style.Builtin(id)
			require.NoError(t, err)
			results := CheckStyle(s)
			assert.Empty(t, results.Errors)
		})
	}
}

func TestValidateMinimal(t *testing.T) {
	results, err := NewValidator(writeStyle(t, minimal)).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.True(t, hasMessage(results.Warnings, "id not set"), results.Warnings)
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(string) string
		errMsg  string
		warnMsg string
	}{
		{
			name:   "unknown placeholder",
			edit:   func(s string) string { return strings.Replace(s, "{color_code}", "{colour}", 1) },
			errMsg: "unknown placeholder {colour}",
		},
		{
			name:   "missing frame template",
			edit:   func(s string) string { return strings.Replace(s, `frame = "/img/frames/test/{color_code}.png"`, "", 1) },
			errMsg: "paths.frame is required",
		},
		{
			name:   "crown without bounds",
			edit:   func(s string) string { return strings.Replace(s, "[paths]", "[paths]\ncrown = \"/img/crown/{color_code}.png\"", 1) },
			errMsg: "bounds.crown is missing",
		},
		{
			name:   "bad watermark color",
			edit:   func(s string) string { return strings.Replace(s, `"#b79d58"`, `"gold"`, 1) },
			errMsg: "not a hex color",
		},
		{
			name:   "art box outside the card",
			edit:   func(s string) string { return strings.Replace(s, "x = 0.1\n", "x = 1.5\n", 1) },
			errMsg: "bounds.art must be relative",
		},
		{
			name:   "zero zoom",
			edit:   func(s string) string { return strings.Replace(s, "zoom = 2.5", "zoom = 0.0", 1) },
			errMsg: "defaults.art.zoom",
		},
		{
			name:    "unknown key",
			edit:    func(s string) string { return "frobnicate = true\n" + s },
			warnMsg: "unknown key frobnicate",
		},
		{
			name:    "frame set never used",
			edit:    func(s string) string { return "uses_frame_set = true\n" + s },
			warnMsg: "no template uses {frame_set}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := NewValidator(writeStyle(t, tt.edit(minimal))).Validate()
			require.NoError(t, err)
			if tt.errMsg != "" {
				assert.True(t, hasMessage(results.Errors, tt.errMsg), "errors: %v", results.Errors)
			}
			if tt.warnMsg != "" {
				assert.True(t, hasMessage(results.Warnings, tt.warnMsg), "warnings: %v", results.Warnings)
			}
		})
	}
}

func TestValidateMaskTemplateOptionalWithSources(t *testing.T) {
	content := strings.Replace(minimal, `mask = "/img/frames/test/{mask_name}.png"`, `
[masks.sources]
pinline = "/m/p.png"
type = "/m/t.png"
title = "/m/ti.png"
rules = "/m/r.png"
frame = "/m/f.png"
border = "/m/b.png"
`, 1)
	results, err := NewValidator(writeStyle(t, content)).Validate()
	require.NoError(t, err)
	assert.False(t, hasMessage(results.Errors, "paths.mask"), results.Errors)
}

func TestValidateUnparseable(t *testing.T) {
	_, err := NewValidator(writeStyle(t, "name = ")).Validate()
	assert.Error(t, err)

	_, err = NewValidator(filepath.Join(t.TempDir(), "nope.toml")).Validate()
	assert.Error(t, err)
}
