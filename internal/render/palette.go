package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/diogo/geminichat/internal/models"
)

// Palette defines the color scheme for the TUI interface
type Palette struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Bubble colors
	UserBubble lipgloss.Color
	UserText   lipgloss.Color
	BotBubble  lipgloss.Color
	BotText    lipgloss.Color
}

var (
	// LightPalette is used in light appearance
	LightPalette = Palette{
		Name: "light",

		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#f3f4f6"),
		Border:     lipgloss.Color("#d1d5db"),

		Primary:   lipgloss.Color("#2563eb"),
		Secondary: lipgloss.Color("#16a34a"),
		Accent:    lipgloss.Color("#7c3aed"),
		Warning:   lipgloss.Color("#b45309"),
		Error:     lipgloss.Color("#dc2626"),

		Text:     lipgloss.Color("#111827"),
		TextDim:  lipgloss.Color("#6b7280"),
		TextMute: lipgloss.Color("#9ca3af"),

		UserBubble: lipgloss.Color("#3b82f6"),
		UserText:   lipgloss.Color("#ffffff"),
		BotBubble:  lipgloss.Color("#e5e7eb"),
		BotText:    lipgloss.Color("#111827"),
	}

	// DarkPalette is used in dark appearance (Tokyo Night colors)
	DarkPalette = Palette{
		Name: "dark",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		UserBubble: lipgloss.Color("#3d59a1"),
		UserText:   lipgloss.Color("#c0caf5"),
		BotBubble:  lipgloss.Color("#24283b"),
		BotText:    lipgloss.Color("#c0caf5"),
	}
)

// PaletteFor returns the palette for an appearance
func PaletteFor(a models.Appearance) Palette {
	if a == models.AppearanceDark {
		return DarkPalette
	}
	return LightPalette
}

// backgroundColor is swapped in tests
var backgroundColor = termenv.BackgroundColor

// DetectAppearance picks dark or light from the terminal background color.
// When the background cannot be read (no TTY) it stays light.
func DetectAppearance() models.Appearance {
	bg := backgroundColor()
	if bg == nil {
		return models.AppearanceLight
	}
	if _, unknown := bg.(termenv.NoColor); unknown {
		return models.AppearanceLight
	}

	_, _, lightness := termenv.ConvertToRGB(bg).Hsl()
	if lightness < 0.5 {
		return models.AppearanceDark
	}
	return models.AppearanceLight
}

// ResolveAppearance maps "light", "dark" or "auto" to an appearance.
// "auto" and the empty string follow the terminal background.
func ResolveAppearance(value string) (models.Appearance, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return DetectAppearance(), nil
	case "light", "dark":
		return models.ParseAppearance(value)
	default:
		return models.AppearanceLight, fmt.Errorf("invalid appearance %q (expected light, dark or auto)", value)
	}
}
