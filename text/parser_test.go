package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

func TestXimageParsedFont(t *testing.T) {
	p, err := getParser("ximage").Parse(goregular.TTF, ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if p.Name() == "" || p.FullName() == "" {
		t.Errorf("Name() = %q, FullName() = %q", p.Name(), p.FullName())
	}
	if p.NumGlyphs() <= 0 {
		t.Error("expected positive number of glyphs")
	}
	if p.UnitsPerEm() != 2048 {
		t.Errorf("UnitsPerEm() = %d, want 2048", p.UnitsPerEm())
	}

	a := p.GlyphIndex('A')
	space := p.GlyphIndex(' ')
	if a == 0 || space == 0 {
		t.Fatalf("GlyphIndex('A') = %d, GlyphIndex(' ') = %d", a, space)
	}

	const size = 32
	if adv := p.GlyphAdvance(a, size); adv <= 0 || adv > size {
		t.Errorf("GlyphAdvance('A') = %v", adv)
	}

	b := p.GlyphBounds(a, size)
	if b.Empty() || b.MinY >= 0 || b.MaxY > 1 {
		t.Errorf("GlyphBounds('A') = %+v, want ink above the baseline", b)
	}
	if !p.GlyphBounds(space, size).Empty() {
		t.Error("space should have empty bounds")
	}

	if p.GlyphOutline(a, size).IsEmpty() {
		t.Error("'A' outline is empty")
	}
	if !p.GlyphOutline(space, size).IsEmpty() {
		t.Error("space outline is not empty")
	}

	m := p.Metrics(size)
	if m.Ascent <= 0 || m.Descent <= 0 || m.LineHeight() < m.Ascent+m.Descent {
		t.Errorf("Metrics() = %+v", m)
	}
}

func TestFixedConversion(t *testing.T) {
	tests := []struct {
		in   float64
		want fixed.Int26_6
	}{
		{0, 0},
		{1, 64},
		{1.5, 96},
		{-2.25, -144},
	}
	for _, tt := range tests {
		got := floatToFixed(tt.in)
		if got != tt.want {
			t.Errorf("floatToFixed(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if back := fixedToFloat(got); back != tt.in {
			t.Errorf("fixedToFloat(%v) = %v, want %v", got, back, tt.in)
		}
	}
}

func TestMapHinting(t *testing.T) {
	for _, h := range []Hinting{HintingNone, HintingVertical, HintingFull} {
		if _, err := getParser("ximage").Parse(goregular.TTF, ParseOptions{Hinting: h}); err != nil {
			t.Errorf("Parse(hinting %v) error: %v", h, err)
		}
	}
}
