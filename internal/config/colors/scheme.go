// Package colors holds the colour presets used to style CLI output.
package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "latte")
	Preset string `yaml:"preset"`

	// Primary accent color (headings, IDs, table borders)
	Accent string `yaml:"accent"`
	Title  string `yaml:"title"`

	// Semantic colors
	Success string `yaml:"success"` // created/updated confirmations
	Warning string `yaml:"warning"` // low stock, pending orders
	Error   string `yaml:"error"`

	// Text colors
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`
}

// Presets lists the preset names accepted in the config file
var Presets = []string{"default", "latte", "monochrome"}

// GetPreset returns a preset color scheme by name; unknown names get the default
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "latte":
		return Latte()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	c.MergeFrom(*GetPreset(c.Preset), false)
	if c.Preset == "" {
		c.Preset = "default"
	}
}

// MergeFrom copies colors from other. Existing values are kept unless overwrite is set.
func (c *ColorScheme) MergeFrom(other ColorScheme, overwrite bool) {
	pairs := []struct {
		dst *string
		src string
	}{
		{&c.Accent, other.Accent},
		{&c.Title, other.Title},
		{&c.Success, other.Success},
		{&c.Warning, other.Warning},
		{&c.Error, other.Error},
		{&c.Subtle, other.Subtle},
		{&c.Normal, other.Normal},
	}
	for _, p := range pairs {
		if p.src == "" {
			continue
		}
		if *p.dst == "" || overwrite {
			*p.dst = p.src
		}
	}
}
