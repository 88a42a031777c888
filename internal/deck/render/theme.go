package render

// Theme is an orthogonal visual token set applied independent of layout.
type Theme struct {
	Name       string
	Background string
	Text       string
	Heading    string
	Accent     string
	FontFamily string
	MonoFamily string
}

var (
	ThemeCrystal = Theme{
		Name:       "crystal",
		Background: "linear-gradient(135deg,#0f0520,#1a0d3a,#0d1f3c)",
		Text:       "#e8e0ff",
		Heading:    "#c4b5fd",
		Accent:     "#22d3ee",
		FontFamily: "'Outfit',sans-serif",
		MonoFamily: "'JetBrains Mono',monospace",
	}
	ThemeDark = Theme{
		Name:       "dark",
		Background: "linear-gradient(135deg,#0f0c29,#302b63,#24243e)",
		Text:       "#f1f5f9",
		Heading:    "#ffffff",
		Accent:     "#a78bfa",
		FontFamily: "'Outfit',sans-serif",
		MonoFamily: "'JetBrains Mono',monospace",
	}
	ThemeLight = Theme{
		Name:       "light",
		Background: "linear-gradient(135deg,#ffffff,#f8fafc)",
		Text:       "#334155",
		Heading:    "#0f172a",
		Accent:     "#6366f1",
		FontFamily: "'Outfit',sans-serif",
		MonoFamily: "'JetBrains Mono',monospace",
	}
	ThemeGradient = Theme{
		Name:       "gradient",
		Background: "linear-gradient(135deg,#667eea,#764ba2)",
		Text:       "#ffffff",
		Heading:    "#ffffff",
		Accent:     "#fde68a",
		FontFamily: "'Outfit',sans-serif",
		MonoFamily: "'JetBrains Mono',monospace",
	}
	ThemeCorporate = Theme{
		Name:       "corporate",
		Background: "linear-gradient(135deg,#1a365d,#2563eb)",
		Text:       "#e2e8f0",
		Heading:    "#ffffff",
		Accent:     "#60a5fa",
		FontFamily: "'Outfit',sans-serif",
		MonoFamily: "'JetBrains Mono',monospace",
	}
	ThemeNeon = Theme{
		Name:       "neon",
		Background: "linear-gradient(135deg,#0a0a1f,#1a0a2e)",
		Text:       "#e0e0ff",
		Heading:    "#00ff88",
		Accent:     "#00ff88",
		FontFamily: "'Outfit',sans-serif",
		MonoFamily: "'JetBrains Mono',monospace",
	}
	// ThemePrint is the fixed theme used by the export pipeline.
	ThemePrint = Theme{
		Name:       "print",
		Background: "#ffffff",
		Text:       "#1f2937",
		Heading:    "#111827",
		Accent:     "#4f46e5",
		FontFamily: "'Outfit',sans-serif",
		MonoFamily: "'JetBrains Mono',monospace",
	}
)

// Themes lists the selectable viewer themes (print excluded).
func Themes() []Theme {
	return []Theme{ThemeCrystal, ThemeDark, ThemeLight, ThemeGradient, ThemeCorporate, ThemeNeon}
}

// ThemeByName resolves a theme by name, defaulting to crystal.
func ThemeByName(name string) Theme {
	for _, th := range Themes() {
		if th.Name == name {
			return th
		}
	}
	if name == ThemePrint.Name {
		return ThemePrint
	}
	return ThemeCrystal
}
