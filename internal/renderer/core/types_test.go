package core

import "testing"

func TestColorFromHex(t *testing.T) {
	c, err := ColorFromHex("#3a6ea5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.R != 0x3a || c.G != 0x6e || c.B != 0xa5 {
		t.Errorf("unexpected color %v", c)
	}

	if _, err := ColorFromHex("nope"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestColorString(t *testing.T) {
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("expected 'default', got %q", got)
	}
	if got := ColorFromRGB(255, 0, 128).String(); got != "#FF0080" {
		t.Errorf("unexpected string %q", got)
	}
}

func TestLighten(t *testing.T) {
	base := ColorFromRGB(40, 80, 160)
	light := base.Lighten(1.6)

	// Lightening must not darken any channel's overall impression; check
	// via a simple luma proxy.
	luma := func(c Color) int { return int(c.R)*299 + int(c.G)*587 + int(c.B)*114 }
	if luma(light) <= luma(base) {
		t.Errorf("expected lighter color, got %v from %v", light, base)
	}

	// Default color passes through untouched.
	if got := ColorDefault.Lighten(1.6); !got.IsDefault() {
		t.Errorf("default color should stay default, got %v", got)
	}

	// Large factors clamp instead of overflowing.
	white := ColorFromRGB(250, 250, 250).Lighten(10)
	if white.R < 250 || white.G < 250 || white.B < 250 {
		t.Errorf("expected clamp near white, got %v", white)
	}
}

func TestStyleHelpers(t *testing.T) {
	s := DefaultStyle().WithBackground(ColorGray).Dim()

	if !s.Background.Equals(ColorGray) {
		t.Errorf("unexpected background %v", s.Background)
	}
	if !s.Attributes.Has(AttrDim) {
		t.Error("expected dim attribute")
	}
	if s.Attributes.Has(AttrBold) {
		t.Error("bold should not be set")
	}
}

func TestAttributes(t *testing.T) {
	a := AttrNone.With(AttrBold).With(AttrReverse)

	if !a.Has(AttrBold) || !a.Has(AttrReverse) {
		t.Error("expected bold and reverse")
	}
	if a.Has(AttrUnderline) {
		t.Error("underline should not be set")
	}
}

func TestCells(t *testing.T) {
	c := NewCell('a', DefaultStyle())
	if c.Width != 1 {
		t.Errorf("expected width 1, got %d", c.Width)
	}

	wide := NewCell('界', DefaultStyle())
	if wide.Width != 2 {
		t.Errorf("expected width 2 for CJK rune, got %d", wide.Width)
	}

	if e := EmptyCell(); e.Rune != ' ' || e.Width != 1 {
		t.Errorf("unexpected empty cell %v", e)
	}
}
