package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTypeLine(t *testing.T) {
	tests := []struct {
		line       string
		supertypes []string
		types      []string
		subtypes   []string
	}{
		{"Legendary Creature — Elf Druid", []string{"Legendary"}, []string{"Creature"}, []string{"Elf", "Druid"}},
		{"Basic Snow Land — Forest", []string{"Basic", "Snow"}, []string{"Land"}, []string{"Forest"}},
		{"Artifact - Vehicle", nil, []string{"Artifact"}, []string{"Vehicle"}},
		{"Instant", nil, []string{"Instant"}, nil},
		{"Creature — Human Werewolf // Creature — Werewolf", nil, []string{"Creature"}, []string{"Human", "Werewolf"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tl := ParseTypeLine(tt.line)
			assert.Equal(t, tt.supertypes, tl.Supertypes)
			assert.Equal(t, tt.types, tl.Types)
			assert.Equal(t, tt.subtypes, tl.Subtypes)
		})
	}
}

func TestApplyTypeLine(t *testing.T) {
	a := Attributes{TypeLine: "Legendary Artifact — Vehicle"}
	a.ApplyTypeLine()

	assert.True(t, a.IsArtifact)
	assert.True(t, a.IsVehicle)
	assert.True(t, a.IsLegendary)
	assert.False(t, a.IsLand)
}

func TestHasPowerToughness(t *testing.T) {
	star := "*"
	assert.False(t, Attributes{}.HasPowerToughness())
	assert.True(t, Attributes{Power: &star, Toughness: &star}.HasPowerToughness())
}
