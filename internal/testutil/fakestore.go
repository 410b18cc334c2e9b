// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tasklist/internal/service"
)

// FakeStore is an in-memory implementation of service.Service for testing.
type FakeStore struct {
	mu     sync.RWMutex
	tasks  map[string]string // title -> priority
	closed bool

	// Error injection for testing
	AddErr    error
	GetErr    error
	PutErr    error
	DeleteErr error
	EachErr   error
	CountErr  error
	CloseErr  error

	// EachErrAfter makes Each fail with EachErr after visiting that many
	// tasks. Zero fails before the first task.
	EachErrAfter int
}

var _ service.Service = (*FakeStore)(nil)

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{tasks: make(map[string]string)}
}

// Seed stores tasks directly, bypassing Add.
func (f *FakeStore) Seed(tasks ...service.Task) *FakeStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range tasks {
		f.tasks[t.Title] = t.Priority
	}
	return f
}

// Tasks returns the stored tasks in title order.
func (f *FakeStore) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sorted()
}

// Closed reports whether Close was called.
func (f *FakeStore) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Reopen clears the closed flag.
func (f *FakeStore) Reopen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = false
}

func (f *FakeStore) sorted() []service.Task {
	titles := make([]string, 0, len(f.tasks))
	for title := range f.tasks {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	out := make([]service.Task, len(titles))
	for i, title := range titles {
		out[i] = service.Task{Title: title, Priority: f.tasks[title]}
	}
	return out
}

// Add implements service.Service.
func (f *FakeStore) Add(ctx context.Context, task service.Task) error {
	if f.AddErr != nil {
		return f.AddErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return service.ErrClosed
	}
	if _, ok := f.tasks[task.Title]; ok {
		return fmt.Errorf("%w: %s", service.ErrDuplicate, task.Title)
	}
	f.tasks[task.Title] = task.Priority
	return nil
}

// Get implements service.Service.
func (f *FakeStore) Get(ctx context.Context, title string) (service.Task, error) {
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return service.Task{}, service.ErrClosed
	}
	p, ok := f.tasks[title]
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, title)
	}
	return service.Task{Title: title, Priority: p}, nil
}

// Put implements service.Service.
func (f *FakeStore) Put(ctx context.Context, task service.Task) error {
	if f.PutErr != nil {
		return f.PutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return service.ErrClosed
	}
	f.tasks[task.Title] = task.Priority
	return nil
}

// Delete implements service.Service.
func (f *FakeStore) Delete(ctx context.Context, title string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return service.ErrClosed
	}
	delete(f.tasks, title)
	return nil
}

// Each implements service.Service.
func (f *FakeStore) Each(ctx context.Context, fn func(service.Task) error) error {
	f.mu.RLock()
	if f.closed {
		f.mu.RUnlock()
		return service.ErrClosed
	}
	tasks := f.sorted()
	f.mu.RUnlock()

	for i, t := range tasks {
		if f.EachErr != nil && i == f.EachErrAfter {
			return f.EachErr
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	if f.EachErr != nil && f.EachErrAfter >= len(tasks) {
		return f.EachErr
	}
	return nil
}

// Count implements service.Service.
func (f *FakeStore) Count(ctx context.Context) (int, error) {
	if f.CountErr != nil {
		return 0, f.CountErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return 0, service.ErrClosed
	}
	return len(f.tasks), nil
}

// Close implements service.Service.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}

// Opener returns a function that hands out f, suitable for controller.Init.
func (f *FakeStore) Opener() func(context.Context) (service.Service, error) {
	return func(context.Context) (service.Service, error) { return f, nil }
}
