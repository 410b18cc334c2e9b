// Package service defines the store-handle interface for task records.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record exists for a title.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned by Add when the title is already stored.
	ErrDuplicate = errors.New("duplicate title")

	// ErrClosed is returned by any operation on a closed store.
	ErrClosed = errors.New("store closed")
)

// Service is an open handle on the task collection.
// Commands and the controller never talk to a storage driver directly.
type Service interface {
	// Add inserts a task. Insert-only: returns ErrDuplicate if a task
	// with the same title exists and leaves the stored task untouched.
	Add(ctx context.Context, task Task) error

	// Get returns the task stored under title, or ErrNotFound.
	Get(ctx context.Context, title string) (Task, error)

	// Put writes a task with replace semantics. An existing priority is
	// overwritten; a missing title is created.
	Put(ctx context.Context, task Task) error

	// Delete removes the task stored under title.
	// Deleting a missing title is a no-op.
	Delete(ctx context.Context, title string) error

	// Each visits every task in ascending title order.
	// Iteration stops at the first error returned by fn. fn must not call
	// back into the store.
	Each(ctx context.Context, fn func(Task) error) error

	// Count returns the number of stored tasks.
	Count(ctx context.Context) (int, error)

	// Close releases the handle.
	Close() error
}
