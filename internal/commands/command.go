// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command requires an open store.
	// Commands like help and version return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// ctrl is initialized if NeedsStore() returns true, inert otherwise.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int
}

// reportError prints err in the CLI error format and returns the exit code
// for it. Invalid input, duplicates and missing tasks are user errors;
// everything else came from the store.
func reportError(errOut io.Writer, err error) int {
	var opErr *controller.OpError
	key := ""
	if errors.As(err, &opErr) {
		key = opErr.Key
	}

	switch {
	case errors.Is(err, controller.ErrEmptyTitle):
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	case errors.Is(err, controller.ErrEmptyPriority):
		fmt.Fprintln(errOut, "error: priority required")
		return exitcode.UserError
	case errors.Is(err, service.ErrDuplicate):
		fmt.Fprintf(errOut, "error: task already exists: %s\n", key)
		return exitcode.UserError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: task not found: %s\n", key)
		return exitcode.UserError
	case errors.Is(err, controller.ErrUnknownAction):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, controller.ErrNotReady):
		fmt.Fprintln(errOut, "error: store unavailable")
		return exitcode.StoreError
	}
	fmt.Fprintf(errOut, "error: store error: %v\n", err)
	return exitcode.OperationError
}

// reportRefError prints a task reference parse or lookup error.
func reportRefError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

func ok(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
