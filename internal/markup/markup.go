// Package markup parses the sign's wire format for text commands.
//
// One directive per line, at most three lines:
//
//	{colorIndex}<fontSlot>free text
//
// Lines without the directive render as plain text in the default style.
// Parsing never fails: malformed directives degrade to defaults and
// out-of-range indices are clamped, because a bad command must still put
// something on the panel.
package markup

import (
	"fmt"
	"strconv"
	"strings"

	"matrixsign/internal/fonts"
	"matrixsign/internal/palette"
)

// MaxLines is the display height cap: a 32px panel fits three rows.
const MaxLines = 3

// MaxColor is the highest valid palette index.
const MaxColor = palette.Size - 1

// Default style for plain or malformed lines.
const (
	DefaultColor = palette.White
	DefaultSlot  = fonts.Fallback
)

// Line is one parsed text line. Immutable once produced.
type Line struct {
	Color palette.Index
	Slot  fonts.Slot
	Text  string
}

// Parser turns raw command text into lines, clamping against its slot
// table.
type Parser struct {
	table fonts.Table
}

// NewParser returns a parser bound to the given font slot table.
func NewParser(table fonts.Table) *Parser {
	return &Parser{table: table}
}

// Parse converts raw text into at most MaxLines lines. Blank lines are
// skipped; everything else always yields a line.
func (p *Parser) Parse(raw string) []Line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	rows := strings.Split(trimmed, "\n")
	if len(rows) > MaxLines {
		rows = rows[:MaxLines]
	}

	var out []Line
	for _, row := range rows {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		out = append(out, p.parseLine(row))
	}
	return out
}

// parseLine handles one row. Any structural or numeric failure falls back
// to the default style with the whole row as text.
func (p *Parser) parseLine(row string) Line {
	colorStr, slotStr, text, ok := splitDirective(row)
	if !ok {
		return Line{Color: DefaultColor, Slot: DefaultSlot, Text: row}
	}

	colorIdx, err := strconv.Atoi(colorStr)
	if err != nil {
		return Line{Color: DefaultColor, Slot: DefaultSlot, Text: row}
	}
	slotNum, err := strconv.Atoi(slotStr)
	if err != nil {
		return Line{Color: DefaultColor, Slot: DefaultSlot, Text: row}
	}

	return Line{
		Color: clampColor(colorIdx),
		Slot:  p.table.Clamp(slotNum),
		Text:  text,
	}
}

// Validate reports human-readable format and range issues without
// clamping. It returns []string{"Valid format"} when nothing is wrong.
// Diagnostics only; rendering never blocks on it.
func (p *Parser) Validate(raw string) []string {
	var issues []string
	if raw == "" {
		return []string{"Empty text"}
	}

	rows := strings.Split(strings.TrimSpace(raw), "\n")
	if len(rows) > MaxLines {
		issues = append(issues, fmt.Sprintf("Too many lines (%d), max is %d", len(rows), MaxLines))
		rows = rows[:MaxLines]
	}

	maxSlot := int(p.table.Max())
	for i, row := range rows {
		colorStr, slotStr, _, ok := splitDirective(strings.TrimSpace(row))
		if !ok {
			continue // plain text is always valid
		}

		colorIdx, cErr := strconv.Atoi(colorStr)
		slotNum, sErr := strconv.Atoi(slotStr)
		if cErr != nil || sErr != nil {
			issues = append(issues, fmt.Sprintf("Line %d: Invalid format", i+1))
			continue
		}
		if colorIdx < 0 || colorIdx > MaxColor {
			issues = append(issues, fmt.Sprintf("Line %d: Color %d out of range (0-%d)", i+1, colorIdx, MaxColor))
		}
		if slotNum < 1 || slotNum > maxSlot {
			issues = append(issues, fmt.Sprintf("Line %d: Font size %d out of range (1-%d)", i+1, slotNum, maxSlot))
		}
	}

	if len(issues) == 0 {
		return []string{"Valid format"}
	}
	return issues
}

// splitDirective matches {color}<slot>text. ok is false when the row is
// not shaped like a directive at all.
func splitDirective(row string) (colorStr, slotStr, text string, ok bool) {
	if !strings.HasPrefix(row, "{") || !strings.Contains(row, "}<") || !strings.Contains(row, ">") {
		return "", "", "", false
	}

	colorEnd := strings.IndexByte(row, '}')
	if colorEnd <= 1 {
		return "", "", "", false
	}
	sizeStart := strings.IndexByte(row[colorEnd:], '<')
	if sizeStart < 0 {
		return "", "", "", false
	}
	sizeStart += colorEnd + 1
	sizeEnd := strings.IndexByte(row[sizeStart:], '>')
	if sizeEnd < 0 {
		return "", "", "", false
	}
	sizeEnd += sizeStart

	return row[1:colorEnd], row[sizeStart:sizeEnd], row[sizeEnd+1:], true
}

func clampColor(n int) palette.Index {
	if n < 0 {
		return 0
	}
	if n > MaxColor {
		return MaxColor
	}
	return palette.Index(n)
}
