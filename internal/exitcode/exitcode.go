// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, duplicate title).
	UserError = 1

	// StoreError indicates the store could not be opened or the config is invalid.
	StoreError = 2

	// OperationError indicates a store operation failed on an open store.
	OperationError = 3
)
