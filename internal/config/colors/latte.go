package colors

// Latte returns a light color scheme for terminals with a cream/paper background
func Latte() *ColorScheme {
	return &ColorScheme{
		Preset: "latte",

		Accent: "#8A4A2B",
		Title:  "#5D3A1A",

		Success: "#4E7A27",
		Warning: "#A66B00",
		Error:   "#B5333A",

		Subtle: "#8A8980",
		Normal: "#43436C",
	}
}
