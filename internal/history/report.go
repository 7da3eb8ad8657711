package history

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "2006-01-02 15:04:05"

// Report renders press counts and entries as aligned tables. Styling is
// applied only when the writer is a color terminal.
type Report struct {
	w      io.Writer
	header lipgloss.Style
	cell   lipgloss.Style
	muted  lipgloss.Style
}

// NewReport creates a report writing to w.
func NewReport(w io.Writer) *Report {
	r := lipgloss.NewRenderer(w)
	return &Report{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#88c0d0")),
		cell:   r.NewStyle(),
		muted:  r.NewStyle().Faint(true),
	}
}

// Counts writes one row per button.
func (r *Report) Counts(counts []Count) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintln(r.w, r.muted.Render("no presses recorded"))
		return err
	}
	rows := make([][]string, 0, len(counts))
	total := 0
	for _, c := range counts {
		rows = append(rows, []string{
			c.Button,
			strconv.Itoa(c.Presses),
			strconv.Itoa(c.Repeats),
			c.Last.Format(timeLayout),
		})
		total += c.Presses
	}
	if err := r.table([]string{"BUTTON", "PRESSES", "REPEATS", "LAST"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.w, r.muted.Render(fmt.Sprintf("%d presses", total)))
	return err
}

// Entries writes one row per press.
func (r *Report) Entries(entries []Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(r.w, r.muted.Render("no presses recorded"))
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		repeat := ""
		if e.Repeat {
			repeat = "repeat"
		}
		mouse := "-"
		if e.Mouse > 0 {
			mouse = strconv.Itoa(e.Mouse)
		}
		rows = append(rows, []string{
			e.Time.Format(timeLayout),
			e.Button,
			e.Gesture,
			mouse,
			strconv.Itoa(e.Count),
			repeat,
		})
	}
	return r.table([]string{"TIME", "BUTTON", "GESTURE", "MOUSE", "COUNT", ""}, rows)
}

func (r *Report) table(header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(widths[i] + 2).Render(c)
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
	}

	if _, err := fmt.Fprintln(r.w, line(header, r.header)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(r.w, line(row, r.cell)); err != nil {
			return err
		}
	}
	return nil
}

// Since filters entries to those at or after t.
func Since(entries []Entry, t time.Time) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if !e.Time.Before(t) {
			out = append(out, e)
		}
	}
	return out
}
