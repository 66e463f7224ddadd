package renderer

import "outpad/internal/renderer/core"

// Theme groups the colors and styles the view draws with.
type Theme struct {
	// Text is the base style for buffer content.
	Text core.Style
	// Whitespace styles the substituted glyphs for spaces, tabs, and
	// line breaks.
	Whitespace core.Style
	// Selection is the background behind selected text.
	Selection core.Color
	// StatusBar styles the bottom status line.
	StatusBar core.Style
	// Prompt styles the find/replace input line.
	Prompt core.Style
}

// Region returns the background tint for the active scope overlay: the
// selection color lightened so selected text inside the scope still
// stands out.
func (t Theme) Region() core.Color {
	return t.Selection.Lighten(1.6)
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	return Theme{
		Text: core.DefaultStyle(),
		Whitespace: core.Style{
			Foreground: core.ColorFromRGB(0x5c, 0x63, 0x70),
			Background: core.ColorDefault,
		},
		Selection: core.ColorFromRGB(0x26, 0x4f, 0x78),
		StatusBar: core.Style{
			Foreground: core.ColorFromRGB(0xd4, 0xd4, 0xd4),
			Background: core.ColorFromRGB(0x2d, 0x2d, 0x2d),
		},
		Prompt: core.Style{
			Foreground: core.ColorFromRGB(0xd4, 0xd4, 0xd4),
			Background: core.ColorFromRGB(0x1e, 0x1e, 0x1e),
		},
	}
}
