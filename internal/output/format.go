// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/view"
)

const (
	// Separator frames the form block.
	Separator = "------------"
)

// FormatRow formats one list row.
// Format: "{N:>4}  {TITLE}  [{PRIORITY}]\n"
func FormatRow(w io.Writer, num int, row view.Row) {
	marker := ""
	if row.Editing {
		marker = "  *"
	}
	fmt.Fprintf(w, "%4d  %s  [%s]%s\n", num, normalizeTitle(row.Title), normalizePriority(row.Priority), marker)
}

// FormatRows formats every row, numbered from 1.
func FormatRows(w io.Writer, rows []view.Row) {
	for i, row := range rows {
		FormatRow(w, i+1, row)
	}
}

// FormatForm formats the task form and its submit mode.
func FormatForm(w io.Writer, form view.Form) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "mode:     %s\n", form.Mode.Action())
	fmt.Fprintf(w, "title:    %s\n", form.Title)
	fmt.Fprintf(w, "priority: %s\n", form.Priority)
	if form.Notice != "" {
		fmt.Fprintf(w, "notice:   %s\n", form.Notice)
	}
	fmt.Fprintln(w, Separator)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizePriority returns "-" for an empty priority.
func normalizePriority(priority string) string {
	if strings.TrimSpace(priority) == "" {
		return "-"
	}
	return priority
}
