package renderer

import "testing"

func TestRegionTintLighterThanSelection(t *testing.T) {
	theme := DefaultTheme()
	tint := theme.Region()

	luma := func(r, g, b uint8) int { return int(r)*299 + int(g)*587 + int(b)*114 }
	if luma(tint.R, tint.G, tint.B) <= luma(theme.Selection.R, theme.Selection.G, theme.Selection.B) {
		t.Errorf("scope tint %v should be lighter than selection %v", tint, theme.Selection)
	}
}

func TestDefaultThemeUsesTerminalColors(t *testing.T) {
	theme := DefaultTheme()
	if !theme.Text.Foreground.IsDefault() || !theme.Text.Background.IsDefault() {
		t.Error("base text should use the terminal's default colors")
	}
}
