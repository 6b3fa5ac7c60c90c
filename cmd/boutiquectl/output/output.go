// Package output renders boutiquectl messages and tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorSuccess = lipgloss.Color("#16A34A")
	colorWarning = lipgloss.Color("#D97706")
	colorError   = lipgloss.Color("#DC2626")
	colorMuted   = lipgloss.Color("#6B7280")
	colorAccent  = lipgloss.Color("#B45309")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Out is where every helper writes. Tests may swap it.
var Out io.Writer = os.Stdout

func Success(format string, args ...any) {
	fmt.Fprintln(Out, successStyle.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func Warning(format string, args ...any) {
	fmt.Fprintln(Out, warningStyle.Render("!")+" "+fmt.Sprintf(format, args...))
}

func Error(format string, args ...any) {
	fmt.Fprintln(Out, errorStyle.Render("✗")+" "+fmt.Sprintf(format, args...))
}

func Muted(format string, args ...any) {
	fmt.Fprintln(Out, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

func Title(title string) {
	fmt.Fprintln(Out, titleStyle.Render(title))
}

// Table prints rows under headers with a rounded border.
func Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(Out, t.Render())
}

// Progress renders one upload step as "[2/3] name 100%".
func Progress(index, percent, total int, name string) {
	bar := mutedStyle.Render(fmt.Sprintf("[%d/%d]", index+1, total))
	pct := warningStyle.Render(fmt.Sprintf("%3d%%", percent))
	if percent == 100 {
		pct = successStyle.Render(fmt.Sprintf("%3d%%", percent))
	}
	fmt.Fprintf(Out, "%s %s %s\n", bar, name, pct)
}

func JSON(v any) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
