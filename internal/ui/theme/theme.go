package theme

import (
	"context"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the light or dark base of a theme
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Modes lists every mode in cycle order
var Modes = []Mode{ModeLight, ModeDark}

// Theme defines the color scheme for the UI
type Theme struct {
	Name  string
	Prefs Preferences

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Priority colors
	PriorityMust   lipgloss.Color
	PriorityShould lipgloss.Color
	PriorityNice   lipgloss.Color

	// Plant colors
	Leaf   lipgloss.Color
	Flower lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	// Task styles
	TaskNormal   lipgloss.Style
	TaskSelected lipgloss.Style
	TaskDone     lipgloss.Style
	TaskOverdue  lipgloss.Style

	// Component styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Tag      lipgloss.Style
	DueDate  lipgloss.Style
	Why      lipgloss.Style

	// Tab styles
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	Input lipgloss.Style
	Panel lipgloss.Style

	// Help styles
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		TaskSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Padding(0, 1),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Tag: lipgloss.NewStyle().
			Foreground(t.Info).
			MarginLeft(1),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Warning),

		Why: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true).
			PaddingLeft(4),

		Tab: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 2),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// PriorityColor returns the color for a priority name, or the subtle color
func (t Theme) PriorityColor(priority string) lipgloss.Color {
	switch priority {
	case "must":
		return t.PriorityMust
	case "should":
		return t.PriorityShould
	case "nice":
		return t.PriorityNice
	default:
		return t.Subtle
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Build(DefaultPreferences()),
	Styles: NewStyles(Build(DefaultPreferences())),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Apply builds and activates the theme for p
func Apply(p Preferences) Theme {
	t := Build(p)
	SetTheme(t)
	return t
}

// SettingsStore persists key-value settings
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Setting keys
const (
	keyMode   = "theme"
	keyScheme = "color-scheme"
)

// LoadPreferences reads stored preferences. Fields that were never stored
// keep the fallback value.
func LoadPreferences(ctx context.Context, store SettingsStore, fallback Preferences) (Preferences, error) {
	p := fallback

	mode, ok, err := store.GetSetting(ctx, keyMode)
	if err != nil {
		return fallback, err
	}
	if ok {
		p.Mode = parseMode(mode, fallback.Mode)
	}

	scheme, ok, err := store.GetSetting(ctx, keyScheme)
	if err != nil {
		return fallback, err
	}
	if ok {
		p.Scheme = parseScheme(scheme, fallback.Scheme)
	}

	return p, nil
}

// SavePreferences stores p
func SavePreferences(ctx context.Context, store SettingsStore, p Preferences) error {
	if err := store.SetSetting(ctx, keyMode, string(p.Mode)); err != nil {
		return err
	}
	return store.SetSetting(ctx, keyScheme, string(p.Scheme))
}
