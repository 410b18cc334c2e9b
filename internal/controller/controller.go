// Package controller implements the task list controller: it owns the open
// store handle, the visible list and the task form, runs create, read,
// update and delete against the store and re-renders the whole list after
// every mutation.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tasklist/internal/logfields"
	"tasklist/internal/metrics"
	"tasklist/internal/service"
	"tasklist/internal/view"
)

// Opener opens the store. Init calls it exactly once.
type Opener func(ctx context.Context) (service.Service, error)

// Submission is a submitted task form: the raw field values and the value
// of the submit control.
type Submission struct {
	Title    string
	Priority string
	Action   string
}

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy sets the duplicate-title policy for Create.
func WithPolicy(p DuplicatePolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// Controller is the task list controller. All methods are safe for
// concurrent use; operations run one at a time.
type Controller struct {
	mu      sync.Mutex
	store   service.Service
	list    *view.List
	form    view.Form
	editing string

	policy   DuplicatePolicy
	logger   *slog.Logger
	recorder metrics.Recorder
}

// New returns a controller rendering into list. It is inert until Init.
func New(list *view.List, opts ...Option) *Controller {
	if list == nil {
		list = view.NewList()
	}
	c := &Controller{
		list:     list,
		policy:   DefaultPolicy,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init opens the store and renders the list once. A failure to open is
// returned as *InitError and leaves the controller inert. Calling Init on
// a ready controller does nothing.
func (c *Controller) Init(ctx context.Context, open Opener) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		return nil
	}

	svc, err := open(ctx)
	if err != nil {
		c.logger.Error("open store", logfields.Error(err))
		return &InitError{Err: err}
	}
	c.store = svc
	c.logger.Debug("store ready", logfields.Policy(string(c.policy)))

	return c.render(ctx)
}

// Ready reports whether Init succeeded.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store != nil
}

// Policy returns the duplicate-title policy.
func (c *Controller) Policy() DuplicatePolicy { return c.policy }

// List returns the visible list.
func (c *Controller) List() *view.List { return c.list }

// Form returns a copy of the form state.
func (c *Controller) Form() view.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Editing returns the key of the task in edit, or "".
func (c *Controller) Editing() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// Snapshot returns the form and the visible rows as one consistent view.
func (c *Controller) Snapshot() (view.Form, []view.Row) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form, c.list.Rows()
}

// SetRecorder replaces the metrics recorder. A nil recorder disables
// metrics.
func (c *Controller) SetRecorder(r metrics.Recorder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	c.recorder = r
}

// Close releases the store. The controller is inert afterwards.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

// Create inserts task and re-renders. A title that is already stored is
// handled by the duplicate policy.
func (c *Controller) Create(ctx context.Context, task service.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.create(ctx, task)
}

// BeginEdit loads the task stored under key into the form and switches the
// submit control to update mode. A missing key changes nothing.
func (c *Controller) BeginEdit(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginEdit(ctx, key)
}

// Update writes task with replace semantics, switches the submit control
// back to create mode and re-renders. A title that is not stored is created.
func (c *Controller) Update(ctx context.Context, task service.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.update(ctx, task)
}

// Delete removes the task stored under key and re-renders. A missing key
// is a no-op.
func (c *Controller) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delete(ctx, key)
}

// Render rebuilds the visible list from the store.
func (c *Controller) Render(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return &OpError{Op: "render", Err: ErrNotReady}
	}
	return c.render(ctx)
}

// Submit handles a submitted form. The action selects Create or Update.
// On success the form fields are cleared; on failure they keep the
// submitted values and the form carries a notice.
func (c *Controller) Submit(ctx context.Context, in Submission) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return &OpError{Op: "submit", Err: ErrNotReady}
	}

	task := service.NewTask(in.Title, in.Priority)

	mode, ok := view.ParseAction(in.Action)
	if !ok {
		return &OpError{Op: "submit", Key: task.Title, Err: fmt.Errorf("%w: %q", ErrUnknownAction, in.Action)}
	}

	var err error
	switch mode {
	case view.ModeCreate:
		err = c.create(ctx, task)
	case view.ModeUpdate:
		err = c.update(ctx, task)
	}
	if err != nil {
		c.form.Title = task.Title
		c.form.Priority = task.Priority
		c.form.Notice = notice(task, err)
		return err
	}

	c.form.Reset()
	return nil
}

// Action handles a list row action: "update" starts an edit, "delete"
// removes the row's task.
func (c *Controller) Action(ctx context.Context, typ, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch typ {
	case "update":
		return c.beginEdit(ctx, key)
	case "delete":
		return c.delete(ctx, key)
	}
	return &OpError{Op: "action", Key: key, Err: fmt.Errorf("%w: %q", ErrUnknownAction, typ)}
}

// Each calls fn for every stored task in ascending title order. fn must
// not call back into the controller.
func (c *Controller) Each(ctx context.Context, fn func(service.Task) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return &OpError{Op: "each", Err: ErrNotReady}
	}
	if err := c.store.Each(ctx, fn); err != nil {
		return &OpError{Op: "each", Err: err}
	}
	return nil
}

// Import writes every task with update semantics and renders once at the
// end. Tasks before a failing one stay written.
func (c *Controller) Import(ctx context.Context, tasks []service.Task) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "import"
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if c.store == nil {
		return &OpError{Op: op, Err: ErrNotReady}
	}

	for _, task := range tasks {
		if err := c.check(op, task); err != nil {
			return c.renderAfter(ctx, err)
		}
		if err := c.store.Put(ctx, task); err != nil {
			c.logger.Warn("import task", logfields.Title(task.Title), logfields.Error(err))
			return c.renderAfter(ctx, &OpError{Op: op, Key: task.Title, Err: err})
		}
	}

	c.logger.Info("tasks imported", logfields.Rows(len(tasks)))
	return c.render(ctx)
}

// renderAfter re-renders so records written before a failure show up, and
// returns cause.
func (c *Controller) renderAfter(ctx context.Context, cause error) error {
	if c.store == nil {
		return cause
	}
	if err := c.render(ctx); err != nil {
		c.logger.Debug("render after failed import", logfields.Error(err))
	}
	return cause
}

func (c *Controller) create(ctx context.Context, task service.Task) (err error) {
	const op = "create"
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if err := c.check(op, task); err != nil {
		return err
	}

	err = c.store.Add(ctx, task)
	if errors.Is(err, service.ErrDuplicate) {
		switch c.policy {
		case PolicyUpsert:
			err = c.store.Put(ctx, task)
		case PolicyIgnore:
			c.logger.Warn("duplicate task dropped", logfields.Title(task.Title), logfields.Policy(string(c.policy)))
			err = nil
		}
	}
	if err != nil {
		c.logger.Warn("create task", logfields.Title(task.Title), logfields.Error(err))
		return &OpError{Op: op, Key: task.Title, Err: err}
	}

	c.logger.Info("task created", logfields.Title(task.Title), logfields.Priority(task.Priority))
	return c.render(ctx)
}

func (c *Controller) beginEdit(ctx context.Context, key string) (err error) {
	const op = "edit"
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if c.store == nil {
		return &OpError{Op: op, Key: key, Err: ErrNotReady}
	}

	task, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.logger.Debug("edit of missing task ignored", logfields.Title(key))
		} else {
			c.logger.Warn("load task", logfields.Title(key), logfields.Error(err))
		}
		return &OpError{Op: op, Key: key, Err: err}
	}

	c.form = view.Form{
		Title:    task.Title,
		Priority: task.Priority,
		Mode:     view.ModeUpdate,
	}
	c.editing = task.Title
	c.list.MarkEditing(task.Title)

	c.logger.Debug("edit started", logfields.Title(task.Title), logfields.Mode(c.form.Mode.String()))
	return nil
}

func (c *Controller) update(ctx context.Context, task service.Task) (err error) {
	const op = "update"
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if err := c.check(op, task); err != nil {
		return err
	}

	if err := c.store.Put(ctx, task); err != nil {
		c.logger.Warn("update task", logfields.Title(task.Title), logfields.Error(err))
		return &OpError{Op: op, Key: task.Title, Err: err}
	}

	c.form.Mode = view.ModeCreate
	c.editing = ""

	c.logger.Info("task updated", logfields.Title(task.Title), logfields.Priority(task.Priority))
	return c.render(ctx)
}

func (c *Controller) delete(ctx context.Context, key string) (err error) {
	const op = "delete"
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if c.store == nil {
		return &OpError{Op: op, Key: key, Err: ErrNotReady}
	}

	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn("delete task", logfields.Title(key), logfields.Error(err))
		return &OpError{Op: op, Key: key, Err: err}
	}

	if key == c.editing {
		c.editing = ""
		c.form = view.Form{}
	}
	c.form.Notice = ""

	c.logger.Info("task deleted", logfields.Title(key))
	return c.render(ctx)
}

// render iterates the store into a fragment and commits it. On error the
// visible list keeps its previous content.
func (c *Controller) render(ctx context.Context) error {
	start := time.Now()

	var frag view.Fragment
	err := c.store.Each(ctx, func(task service.Task) error {
		row := view.NewRow(task)
		row.Editing = task.Title == c.editing
		frag.Append(row)
		return nil
	})
	if err != nil {
		c.logger.Error("render list", logfields.Error(err))
		return &OpError{Op: "render", Err: err}
	}

	n := frag.Len()
	c.list.Commit(&frag)

	d := time.Since(start)
	c.recorder.ObserveRender(n, d)
	c.logger.Debug("list rendered", logfields.Rows(n), logfields.DurationMS(float64(d.Microseconds())/1000))
	return nil
}

// check verifies the store is open and the task has both fields.
func (c *Controller) check(op string, task service.Task) error {
	if c.store == nil {
		return &OpError{Op: op, Key: task.Title, Err: ErrNotReady}
	}
	if task.Title == "" {
		return &OpError{Op: op, Err: ErrEmptyTitle}
	}
	if task.Priority == "" {
		return &OpError{Op: op, Key: task.Title, Err: ErrEmptyPriority}
	}
	return nil
}

func (c *Controller) observe(op string, start time.Time, err error) {
	c.recorder.ObserveOperation(op, resultOf(err), time.Since(start))
}

func resultOf(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, service.ErrDuplicate):
		return metrics.ResultDuplicate
	case errors.Is(err, service.ErrNotFound):
		return metrics.ResultNotFound
	case IsInvalid(err):
		return metrics.ResultInvalid
	}
	return metrics.ResultError
}

// IsInvalid reports whether err was caused by bad input rather than by the
// store.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrEmptyTitle) || errors.Is(err, ErrEmptyPriority) || errors.Is(err, ErrUnknownAction)
}

// notice is the text shown on the form after a failed submission.
func notice(task service.Task, err error) string {
	switch {
	case errors.Is(err, ErrEmptyTitle):
		return "Title required"
	case errors.Is(err, ErrEmptyPriority):
		return "Priority required"
	case errors.Is(err, service.ErrDuplicate):
		return fmt.Sprintf("Task %q already exists", view.Display(task.Title))
	}
	return "Could not save task"
}
