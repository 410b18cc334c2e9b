package service

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Task represents a single task record. Title is the primary key.
type Task struct {
	Title    string `json:"taskTitle" yaml:"taskTitle"`
	Priority string `json:"taskPriority" yaml:"taskPriority"`
}

// NewTask builds a normalized task from raw form values.
func NewTask(title, priority string) Task {
	return Task{
		Title:    Normalize(title),
		Priority: Normalize(priority),
	}
}

// Normalize trims surrounding whitespace and lower-cases s.
// Stored titles and priorities are always normalized.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
