package markup

import (
	"strings"
	"testing"

	"matrixsign/internal/fonts"
	"matrixsign/internal/palette"
)

func newTestParser() *Parser {
	return NewParser(fonts.DefaultTable())
}

func TestParseDirective(t *testing.T) {
	p := newTestParser()

	lines := p.Parse("{2}<3>HELLO")
	if len(lines) != 1 {
		t.Fatalf("got %d lines; want 1", len(lines))
	}
	got := lines[0]
	if got.Color != palette.Red || got.Slot != fonts.Large || got.Text != "HELLO" {
		t.Errorf("got %+v; want color=2 slot=3 text=HELLO", got)
	}
}

func TestParsePlainTextUsesDefaults(t *testing.T) {
	p := newTestParser()

	lines := p.Parse("just words")
	if len(lines) != 1 {
		t.Fatalf("got %d lines; want 1", len(lines))
	}
	got := lines[0]
	if got.Color != DefaultColor || got.Slot != DefaultSlot || got.Text != "just words" {
		t.Errorf("got %+v; want default style with original text", got)
	}
}

func TestParseMalformedDirectiveDegrades(t *testing.T) {
	p := newTestParser()
	tcs := []string{
		"{red}<3>bad color",
		"{2}<big>bad slot",
		"{2}no slot",
		"{}<3>empty color",
	}
	for _, raw := range tcs {
		lines := p.Parse(raw)
		if len(lines) != 1 {
			t.Fatalf("Parse(%q): got %d lines; want 1", raw, len(lines))
		}
		got := lines[0]
		if got.Color != DefaultColor || got.Slot != DefaultSlot || got.Text != raw {
			t.Errorf("Parse(%q)=%+v; want default style with raw text", raw, got)
		}
	}
}

func TestParseClampsOutOfRange(t *testing.T) {
	p := newTestParser()

	lines := p.Parse("{99}<42>clamped")
	if len(lines) != 1 {
		t.Fatalf("got %d lines; want 1", len(lines))
	}
	got := lines[0]
	if got.Color != MaxColor {
		t.Errorf("color=%d; want clamped to %d", got.Color, MaxColor)
	}
	if got.Slot != fonts.DefaultTable().Max() {
		t.Errorf("slot=%d; want clamped to %d", got.Slot, fonts.DefaultTable().Max())
	}
	if got.Text != "clamped" {
		t.Errorf("text=%q; want %q", got.Text, "clamped")
	}
}

func TestParseCapsAtThreeLines(t *testing.T) {
	p := newTestParser()

	lines := p.Parse("one\ntwo\nthree\nfour\nfive")
	if len(lines) != MaxLines {
		t.Fatalf("got %d lines; want %d", len(lines), MaxLines)
	}
	if lines[2].Text != "three" {
		t.Errorf("last line text=%q; want %q", lines[2].Text, "three")
	}
}

func TestParseSkipsBlankRows(t *testing.T) {
	p := newTestParser()

	lines := p.Parse("top\n\nbottom")
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2", len(lines))
	}
	if lines[0].Text != "top" || lines[1].Text != "bottom" {
		t.Errorf("got %q, %q; want top, bottom", lines[0].Text, lines[1].Text)
	}
}

func TestParseEmpty(t *testing.T) {
	p := newTestParser()
	if lines := p.Parse("   \n  "); lines != nil {
		t.Errorf("got %v; want nil", lines)
	}
}

func TestValidate(t *testing.T) {
	p := newTestParser()

	tcs := []struct {
		name string
		raw  string
		want string // substring of the first issue
	}{
		{"valid directive", "{2}<3>ok", "Valid format"},
		{"plain text", "anything goes", "Valid format"},
		{"empty", "", "Empty text"},
		{"color range", "{99}<3>x", "Color 99 out of range"},
		{"slot range", "{2}<42>x", "Font size 42 out of range"},
		{"too many lines", "a\nb\nc\nd", "Too many lines"},
	}
	for _, tc := range tcs {
		issues := p.Validate(tc.raw)
		if len(issues) == 0 {
			t.Fatalf("%s: no issues returned", tc.name)
		}
		if !strings.Contains(issues[0], tc.want) {
			t.Errorf("%s: got %q; want substring %q", tc.name, issues[0], tc.want)
		}
	}
}
