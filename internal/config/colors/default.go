package colors

// Default returns the default color scheme (roasted browns on a dark terminal)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#D7875F",
		Title:  "#FFAF5F",

		// Semantic
		Success: "#5FD75F",
		Warning: "#FFD700",
		Error:   "#FF5F5F",

		// Text
		Subtle: "#585858",
		Normal: "#D0D0D0",
	}
}
