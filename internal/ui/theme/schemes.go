package theme

import "github.com/charmbracelet/lipgloss"

// Scheme is an accent color family layered over a mode
type Scheme string

const (
	SchemeCalm     Scheme = "calm"
	SchemeOcean    Scheme = "ocean"
	SchemeForest   Scheme = "forest"
	SchemeLavender Scheme = "lavender"
	SchemeSunset   Scheme = "sunset"
)

// Schemes lists every scheme in cycle order
var Schemes = []Scheme{SchemeCalm, SchemeOcean, SchemeForest, SchemeLavender, SchemeSunset}

// Preferences select a theme
type Preferences struct {
	Mode   Mode
	Scheme Scheme
}

// DefaultPreferences is dark calm
func DefaultPreferences() Preferences {
	return Preferences{Mode: ModeDark, Scheme: SchemeCalm}
}

// ParsePreferences reads mode and scheme names, keeping the default for
// any unknown value
func ParsePreferences(mode, scheme string) Preferences {
	d := DefaultPreferences()
	return Preferences{
		Mode:   parseMode(mode, d.Mode),
		Scheme: parseScheme(scheme, d.Scheme),
	}
}

func parseMode(s string, fallback Mode) Mode {
	for _, m := range Modes {
		if string(m) == s {
			return m
		}
	}
	return fallback
}

func parseScheme(s string, fallback Scheme) Scheme {
	for _, sc := range Schemes {
		if string(sc) == s {
			return sc
		}
	}
	return fallback
}

// Name is "scheme mode", e.g. "calm dark"
func (p Preferences) Name() string {
	return string(p.Scheme) + " " + string(p.Mode)
}

// ToggleMode flips between light and dark
func (p Preferences) ToggleMode() Preferences {
	if p.Mode == ModeLight {
		p.Mode = ModeDark
	} else {
		p.Mode = ModeLight
	}
	return p
}

// NextScheme advances to the following scheme, wrapping around
func (p Preferences) NextScheme() Preferences {
	for i, sc := range Schemes {
		if sc == p.Scheme {
			p.Scheme = Schemes[(i+1)%len(Schemes)]
			return p
		}
	}
	p.Scheme = Schemes[0]
	return p
}

type base struct {
	background, foreground, subtle, highlight, border lipgloss.Color
}

var bases = map[Mode]base{
	ModeDark: {
		background: "#1c1f24",
		foreground: "#e6e6e6",
		subtle:     "#7a808a",
		highlight:  "#2c313a",
		border:     "#3e4451",
	},
	ModeLight: {
		background: "#fafaf7",
		foreground: "#2b2b2b",
		subtle:     "#8c8c8c",
		highlight:  "#e8e8e0",
		border:     "#d0d0c8",
	},
}

// accent colors per scheme, dark then light
type accent struct {
	primary, secondary, leaf, flower [2]lipgloss.Color
}

var accents = map[Scheme]accent{
	SchemeCalm: {
		primary:   [2]lipgloss.Color{"#8fb8a8", "#4f7f6e"},
		secondary: [2]lipgloss.Color{"#b8a88f", "#7f6e4f"},
		leaf:      [2]lipgloss.Color{"#8fbf7f", "#4f8f3f"},
		flower:    [2]lipgloss.Color{"#e8a0b8", "#c0587a"},
	},
	SchemeOcean: {
		primary:   [2]lipgloss.Color{"#7fb4e0", "#2f6fa8"},
		secondary: [2]lipgloss.Color{"#7fd0d0", "#2f8f8f"},
		leaf:      [2]lipgloss.Color{"#7fcfa8", "#2f8f68"},
		flower:    [2]lipgloss.Color{"#f0c080", "#c08030"},
	},
	SchemeForest: {
		primary:   [2]lipgloss.Color{"#9ccc7a", "#4a7f2a"},
		secondary: [2]lipgloss.Color{"#c8b27a", "#7f6a2a"},
		leaf:      [2]lipgloss.Color{"#6fbf5f", "#3a7a2a"},
		flower:    [2]lipgloss.Color{"#f0d060", "#b09020"},
	},
	SchemeLavender: {
		primary:   [2]lipgloss.Color{"#b8a0e0", "#6a4fa0"},
		secondary: [2]lipgloss.Color{"#e0a0d0", "#a04f8f"},
		leaf:      [2]lipgloss.Color{"#a0c890", "#5a8a4a"},
		flower:    [2]lipgloss.Color{"#d090f0", "#8a40b0"},
	},
	SchemeSunset: {
		primary:   [2]lipgloss.Color{"#f0a070", "#b85a20"},
		secondary: [2]lipgloss.Color{"#f0c870", "#a88020"},
		leaf:      [2]lipgloss.Color{"#b0c870", "#6a8a2a"},
		flower:    [2]lipgloss.Color{"#f07090", "#c03050"},
	},
}

// Build assembles the theme for p. Unknown values fall back to the defaults.
func Build(p Preferences) Theme {
	d := DefaultPreferences()
	p.Mode = parseMode(string(p.Mode), d.Mode)
	p.Scheme = parseScheme(string(p.Scheme), d.Scheme)

	b := bases[p.Mode]
	a := accents[p.Scheme]
	i := 0
	if p.Mode == ModeLight {
		i = 1
	}

	t := Theme{
		Name:  p.Name(),
		Prefs: p,

		Background: b.background,
		Foreground: b.foreground,
		Subtle:     b.subtle,
		Highlight:  b.highlight,
		Border:     b.border,

		Primary:   a.primary[i],
		Secondary: a.secondary[i],
		Leaf:      a.leaf[i],
		Flower:    a.flower[i],
	}

	if p.Mode == ModeDark {
		t.Success, t.Warning, t.Error, t.Info = "#98c379", "#e5c07b", "#e06c75", "#61afef"
		t.PriorityMust, t.PriorityShould, t.PriorityNice = "#e06c75", "#e5c07b", "#98c379"
	} else {
		t.Success, t.Warning, t.Error, t.Info = "#3f8f3f", "#a87a10", "#b83a3a", "#2f6fa8"
		t.PriorityMust, t.PriorityShould, t.PriorityNice = "#b83a3a", "#a87a10", "#3f8f3f"
	}

	return t
}
