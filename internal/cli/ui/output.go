package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a table writing to w with the first column in bold.
func NewTable(w io.Writer, headers ...any) table.Table {
	tbl := table.New(headers...)
	tbl.WithWriter(w)
	tbl.WithFirstColumnFormatter(func(format string, vals ...any) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithPadding(2)
	// lipgloss.Width ignores ANSI sequences when measuring cells.
	tbl.WithWidthFunc(lipgloss.Width)
	return tbl
}

// Success prints a green line.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints an orange line.
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a bold title with a dimmed count.
func Section(w io.Writer, title string, count int) {
	fmt.Fprintf(w, "\n%s %s\n", BoldStyle.Render(title), DimStyle.Render(fmt.Sprintf("(%d)", count)))
}
