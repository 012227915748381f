// Package cli provides command-line interface utilities.
package cli

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Table renders rows under fixed headers with dynamic column widths.
type Table struct {
	headers      []string
	rows         [][]string
	padding      int
	maxWidths    map[int]int // Maximum width per column index (0 = no limit)
	termColumn   int
	termMinWidth int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		rows:       make([][]string, 0),
		padding:    2, // 2 spaces between columns
		maxWidths:  make(map[int]int),
		termColumn: -1,
	}
}

// SetColumnMaxWidth sets a maximum width for a specific column.
// Text longer than this will be wrapped to multiple lines.
func (t *Table) SetColumnMaxWidth(colIndex, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// EnableTerminalAwareWidth caps the given column so the table fits the
// terminal width, keeping at least minWidth characters for it. The cap
// is resolved at render time and does nothing when stdout is not a
// terminal.
func (t *Table) EnableTerminalAwareWidth(colIndex, minWidth int) {
	t.termColumn = colIndex
	t.termMinWidth = minWidth
}

// AddRow adds a row to the table. Short rows are padded to the header
// count, long rows truncated.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	t.applyTerminalWidth()

	// Wrap cells that exceed max width.
	wrappedRows := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrappedRows[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if maxWidth, hasLimit := t.maxWidths[colIdx]; hasLimit && maxWidth > 0 {
				wrappedRows[rowIdx][colIdx] = wrapText(cell, maxWidth)
			} else {
				wrappedRows[rowIdx][colIdx] = []string{cell}
			}
		}
	}

	// Calculate column widths (respecting max widths).
	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = len(h)
	}

	for _, wrappedRow := range wrappedRows {
		for i, wrappedCell := range wrappedRow {
			if i >= len(colWidths) {
				continue
			}
			for _, line := range wrappedCell {
				if len(line) > colWidths[i] {
					colWidths[i] = len(line)
				}
			}
		}
	}

	var result strings.Builder

	// Format header.
	headerParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = padRight(h, colWidths[i])
	}
	result.WriteString(strings.Join(headerParts, strings.Repeat(" ", t.padding)))
	result.WriteString("\n")

	// Format separator.
	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(sepParts, strings.Repeat(" ", t.padding)))
	result.WriteString("\n")

	// Format data rows (with wrapping support).
	for _, wrappedRow := range wrappedRows {
		// Find max lines in this row.
		maxLines := 1
		for _, wrappedCell := range wrappedRow {
			if len(wrappedCell) > maxLines {
				maxLines = len(wrappedCell)
			}
		}

		// Print each line of the row.
		for lineIdx := 0; lineIdx < maxLines; lineIdx++ {
			rowParts := make([]string, len(t.headers))
			for colIdx := range t.headers {
				if colIdx < len(wrappedRow) && lineIdx < len(wrappedRow[colIdx]) {
					rowParts[colIdx] = padRight(wrappedRow[colIdx][lineIdx], colWidths[colIdx])
				} else {
					rowParts[colIdx] = padRight("", colWidths[colIdx])
				}
			}
			result.WriteString(strings.Join(rowParts, strings.Repeat(" ", t.padding)))
			result.WriteString("\n")
		}
	}

	return result.String()
}

// applyTerminalWidth resolves a terminal-aware cap for the flexible
// column, budgeting the natural width of every other column first.
func (t *Table) applyTerminalWidth() {
	if t.termMinWidth <= 0 || t.termColumn < 0 || t.termColumn >= len(t.headers) {
		return
	}

	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		return
	}

	used := 0
	for i, h := range t.headers {
		if i == t.termColumn {
			continue
		}
		colWidth := len(h)
		for _, row := range t.rows {
			if i < len(row) && len(row[i]) > colWidth {
				colWidth = len(row[i])
			}
		}
		used += colWidth
	}
	used += t.padding * (len(t.headers) - 1)

	available := termWidth - used
	if available < t.termMinWidth {
		available = t.termMinWidth
	}
	t.maxWidths[t.termColumn] = available
}

// padRight pads a string with spaces on the right to reach the desired width.
// If the string is already longer than or equal to the width, it is returned unchanged.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText wraps text to fit within the specified width, breaking at word boundaries.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := ""
	for _, word := range words {
		// If the word itself is longer than width, break it.
		if len(word) > width {
			if currentLine != "" {
				lines = append(lines, currentLine)
				currentLine = ""
			}
			// Split long word across multiple lines.
			for len(word) > width {
				lines = append(lines, word[:width])
				word = word[width:]
			}
			currentLine = word
			continue
		}

		// Try adding word to current line.
		testLine := currentLine
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		if len(testLine) <= width {
			currentLine = testLine
		} else {
			// Word doesn't fit, start new line.
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}

	// Add remaining text.
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
