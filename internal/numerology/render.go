package numerology

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"telegram-numerology-bot/internal/domain/model"
)

// Grid column order of the Pythagorean square.
var gridBands = [3][3]int{
	{1, 4, 7},
	{2, 5, 8},
	{3, 6, 9},
}

const (
	gridTop = "┌─────────┬─────────┬─────────┐"
	gridMid = "├─────────┼─────────┼─────────┤"
	gridBot = "└─────────┴─────────┴─────────┘"
	cellW   = 7
)

// RenderGrid lays the nine cells into the framed 3x3 display. Pure
// formatting over an already computed result; no recomputation, so repeated
// calls for the same result are byte-identical.
func RenderGrid(m *model.MatrixResult) string {
	var lines []string
	lines = append(lines, gridTop)
	for i, band := range gridBands {
		var labels, cells strings.Builder
		labels.WriteString("│")
		cells.WriteString("│")
		for _, d := range band {
			labels.WriteString(" " + center(strconv.Itoa(d), cellW) + " │")
			cells.WriteString(" " + center(cellText(m, d), cellW) + " │")
		}
		lines = append(lines, labels.String(), gridMid, cells.String())
		if i < len(gridBands)-1 {
			lines = append(lines, gridMid)
		}
	}
	lines = append(lines, gridBot)
	return strings.Join(lines, "\n")
}

// cellText renders one cell: the digit repeated count times, space
// separated, or an em dash placeholder for an empty cell.
func cellText(m *model.MatrixResult, d int) string {
	c := m.Count(d)
	if c == 0 {
		return "—"
	}
	digit := strconv.Itoa(d)
	parts := make([]string, c)
	for i := range parts {
		parts[i] = digit
	}
	return strings.Join(parts, " ")
}

// center pads s with spaces to width on both sides, counting runes. Strings
// wider than the cell are kept as-is.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
