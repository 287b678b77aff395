package cliui

import (
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Table renders rows under headers with rounded borders. Empty cells render
// as "-". The table is narrowed to the terminal width when it would overflow.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Wrap(true).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if c == "" {
				c = "-"
			}
			cells[i] = c
		}
		t.Row(cells...)
	}

	result := t.Render()
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && widest(result) > w {
		t.Width(w)
		result = t.Render()
	}

	return result
}

func widest(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if w := ansi.StringWidth(line); w > n {
			n = w
		}
	}
	return n
}
