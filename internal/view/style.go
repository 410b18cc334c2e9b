package view

import (
	"fmt"
	"sort"
)

// DefaultStyle is the preset used when none is configured.
const DefaultStyle = "box"

// Style holds the CSS classes used when rendering the page.
type Style struct {
	Name string

	Row      string
	Title    string
	Priority string

	UpdateButton string
	DeleteButton string

	SubmitAdd    string
	SubmitUpdate string
}

// SubmitClass returns the submit control classes for mode m.
func (s Style) SubmitClass(m Mode) string {
	if m == ModeUpdate {
		return s.SubmitUpdate
	}
	return s.SubmitAdd
}

var styles = map[string]Style{
	"box": {
		Name:         "box",
		Row:          "box task-row",
		Title:        "task-title",
		Priority:     "task-priority task-priority--strong",
		UpdateButton: "btn btn-success icofont icofont-refresh",
		DeleteButton: "btn btn-danger icofont icofont-trash",
		SubmitAdd:    "btn btn-primary icofont icofont-plus",
		SubmitUpdate: "btn btn-primary icofont icofont-refresh",
	},
	"list": {
		Name:         "list",
		Row:          "list-group-item d-flex task-row",
		Title:        "task-title flex-grow-1",
		Priority:     "task-priority badge",
		UpdateButton: "btn btn-sm btn-outline-success icofont icofont-refresh",
		DeleteButton: "btn btn-sm btn-outline-danger icofont icofont-trash",
		SubmitAdd:    "btn btn-primary icofont icofont-plus",
		SubmitUpdate: "btn btn-warning icofont icofont-refresh",
	},
}

// LookupStyle returns the preset called name.
func LookupStyle(name string) (Style, error) {
	if name == "" {
		name = DefaultStyle
	}
	s, ok := styles[name]
	if !ok {
		return Style{}, fmt.Errorf("unknown style: %s", name)
	}
	return s, nil
}

// StyleNames returns the preset names, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
