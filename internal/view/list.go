package view

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tasklist/internal/service"
)

// Row is one rendered task. Key is the stored title; Title and Priority
// are display-formatted.
type Row struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Priority string `json:"priority"`

	// Editing marks the row whose update action started the current edit.
	Editing bool `json:"editing,omitempty"`
}

// NewRow builds the row for a stored task.
func NewRow(task service.Task) Row {
	return Row{
		Key:      task.Title,
		Title:    Display(task.Title),
		Priority: Display(task.Priority),
	}
}

// Display capitalizes the first letter of every word.
func Display(s string) string {
	// A Caser is stateful and must not be shared.
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// Fragment accumulates rows off-screen until it is committed to a List.
type Fragment struct {
	rows []Row
}

// Append adds a row to the fragment.
func (f *Fragment) Append(r Row) {
	f.rows = append(f.rows, r)
}

// Len returns the number of rows in the fragment.
func (f *Fragment) Len() int { return len(f.rows) }

// List is the visible task list.
type List struct {
	mu      sync.RWMutex
	rows    []Row
	commits uint64
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Commit replaces the whole content of the list with the fragment's rows.
// The fragment is emptied and may be reused.
func (l *List) Commit(f *Fragment) {
	rows := f.rows
	f.rows = nil

	l.mu.Lock()
	l.rows = rows
	l.commits++
	l.mu.Unlock()
}

// Rows returns a copy of the visible rows.
func (l *List) Rows() []Row {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Len returns the number of visible rows.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rows)
}

// Commits returns how many times the list content was replaced.
func (l *List) Commits() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.commits
}

// Find returns the visible row for key.
func (l *List) Find(key string) (Row, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.rows {
		if r.Key == key {
			return r, true
		}
	}
	return Row{}, false
}

// MarkEditing flags the row for key as the one in edit and clears the flag
// on every other row. An empty key clears all flags.
func (l *List) MarkEditing(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.rows {
		l.rows[i].Editing = key != "" && l.rows[i].Key == key
	}
}
