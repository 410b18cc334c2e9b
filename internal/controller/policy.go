package controller

import "fmt"

// DuplicatePolicy decides what Create does with a title that is already
// stored.
type DuplicatePolicy string

const (
	// PolicyReject fails the create and keeps the form values.
	PolicyReject DuplicatePolicy = "reject"

	// PolicyUpsert replaces the stored priority, like Update.
	PolicyUpsert DuplicatePolicy = "upsert"

	// PolicyIgnore drops the submission silently and resets the form.
	PolicyIgnore DuplicatePolicy = "ignore"
)

// DefaultPolicy is used when none is configured.
const DefaultPolicy = PolicyReject

// ParsePolicy validates a configured policy name. Empty means DefaultPolicy.
func ParsePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case "":
		return DefaultPolicy, nil
	case PolicyReject, PolicyUpsert, PolicyIgnore:
		return p, nil
	}
	return "", fmt.Errorf("invalid duplicate policy: %s (want reject, upsert or ignore)", s)
}
