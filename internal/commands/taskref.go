package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tasklist/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num   int    // 1-based row number, 0 if Title is set
	Title string // normalized title
}

// IsNum reports whether the reference is a row number.
func (r TaskRef) IsNum() bool { return r.Num > 0 }

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. A single all-digit argument is a row number from the list output
// 2. Anything else is joined with spaces and taken as a title
// 3. A blank title is an error
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	if len(args) == 1 && isAllDigits(args[0]) {
		num, err := strconv.Atoi(args[0])
		if err != nil || num < 1 {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", args[0])
		}
		return TaskRef{Num: num}, nil
	}

	title := service.Normalize(strings.Join(args, " "))
	if title == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	return TaskRef{Title: title}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
