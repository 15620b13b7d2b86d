package pathtmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/framesmith/internal/frameerr"
)

func TestResolve(t *testing.T) {
	params := Params{
		"frame":            "seventh",
		"frame_set":        "regular",
		"color_code":       "g",
		"color_code_upper": "G",
		"unused":           "ignored",
	}

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  error
	}{
		{"all placeholders", "/img/frames/{frame}/{frame_set}/{color_code}.png", "/img/frames/seventh/regular/g.png", nil},
		{"upper variant", "/img/frames/m15/crowns/m15Crown{color_code_upper}.png", "/img/frames/m15/crowns/m15CrownG.png", nil},
		{"no placeholders", "/img/black.png", "/img/black.png", nil},
		{"empty template", "", BrokenPath, frameerr.ErrMissingTemplate},
		{"unresolved", "/img/frames/{frame}/{mask_name}.svg", BrokenPath, frameerr.ErrUnresolvedPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.template, params)
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		got, err := Resolve("", nil)
		assert.Equal(t, BrokenPath, got)
		assert.ErrorIs(t, err, frameerr.ErrMissingTemplate)

		got, err = Resolve("{a}{b}", nil)
		assert.Equal(t, BrokenPath, got)
		assert.ErrorIs(t, err, frameerr.ErrUnresolvedPlaceholder)
	})
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"frame", "color_code"}, Placeholders("/img/{frame}/{color_code}.png"))
	assert.Nil(t, Placeholders("/img/black.png"))
}
