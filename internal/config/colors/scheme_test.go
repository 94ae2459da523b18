package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPreset(t *testing.T) {
	for _, name := range Presets {
		assert.Equal(t, name, GetPreset(name).Preset)
	}
	assert.Equal(t, "default", GetPreset("solarized").Preset, "unknown presets fall back to default")
}

func TestApplyDefaults_KeepsCustomValues(t *testing.T) {
	c := ColorScheme{Preset: "latte", Accent: "#123456"}
	c.ApplyDefaults()

	assert.Equal(t, "#123456", c.Accent)
	assert.Equal(t, Latte().Error, c.Error)
	assert.Equal(t, Latte().Normal, c.Normal)
}

func TestMergeFrom(t *testing.T) {
	c := ColorScheme{Accent: "#111111"}
	c.MergeFrom(ColorScheme{Accent: "#222222", Error: "#333333"}, false)
	assert.Equal(t, "#111111", c.Accent)
	assert.Equal(t, "#333333", c.Error)

	c.MergeFrom(ColorScheme{Accent: "#222222"}, true)
	assert.Equal(t, "#222222", c.Accent)
}
