package theme

// NewRose creates the default rose theme.
func NewRose() *Theme {
	return &Theme{
		Name:   "rose",
		IsDark: true,

		// Semantic colors
		Primary:   "#f472b6", // Pink
		Secondary: "#fb7185", // Rose
		Tertiary:  "#fda4af", // Blush

		// Background hierarchy
		BgBase:    "#1f1418",
		BgSurface: "#2b1d23",
		BgCard:    "#3a2630",

		// Foreground hierarchy
		FgMuted:  "#8a6b78",
		FgSubtle: "#c9a3b3",
		FgBase:   "#fbe4ec",
		FgBright: "#fffbfb",

		// Status colors
		Success: "#86efac",
		Warning: "#fcd34d",
		Error:   "#f43f5e",

		HeartFrom: "#f9a8d4",
		HeartTo:   "#e11d48",
	}
}
