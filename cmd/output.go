package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/admin"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

const maxCellWidth = 40

// printTable writes t with padded columns. Cells are truncated to keep
// rows on one line; color is applied after padding so widths stay right.
func printTable(w io.Writer, t admin.Table) {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range t.Rows {
		for i, c := range r {
			widths[i] = max(widths[i], min(utf8.RuneCountInString(c), maxCellWidth))
		}
	}

	cells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		cells[i] = bold(pad(h, widths[i]))
	}
	fmt.Fprintln(w, strings.Join(cells, "  "))

	total := len(widths)*2 - 2
	for _, wd := range widths {
		total += wd
	}
	fmt.Fprintln(w, strings.Repeat("─", max(total, 0)))

	for _, r := range t.Rows {
		for i, c := range r {
			cells[i] = colorCell(t.Headers[i], pad(truncate(c, maxCellWidth), widths[i]))
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
}

func colorCell(header, cell string) string {
	switch strings.TrimSpace(cell) {
	case "Flagged":
		return red(cell)
	case "Normal":
		return green(cell)
	case "Admin":
		return yellow(cell)
	}
	if header == "User Rating/Feedback" && strings.HasPrefix(cell, "★") {
		return yellow(cell)
	}
	return cell
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// field prints an aligned label/value line.
func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%-12s %v\n", label+":", value)
}

func cmdOut(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
