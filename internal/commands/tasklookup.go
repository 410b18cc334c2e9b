package commands

import (
	"fmt"

	"tasklist/internal/view"
)

// errOutOfRange is returned for row numbers past the end of the list.
type errOutOfRange int

func (e errOutOfRange) Error() string { return fmt.Sprintf("task number out of range: %d", int(e)) }

// resolveKey maps a reference to a task key using the rendered list.
// Titles pass through unchanged; numbers index the visible rows.
func resolveKey(list *view.List, ref TaskRef) (string, error) {
	if !ref.IsNum() {
		return ref.Title, nil
	}
	rows := list.Rows()
	if ref.Num > len(rows) {
		return "", errOutOfRange(ref.Num)
	}
	return rows[ref.Num-1].Key, nil
}
