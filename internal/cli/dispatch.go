// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	flag "github.com/spf13/pflag"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/logfields"
	"tasklist/internal/service"
	"tasklist/internal/view"
)

// StoreFactory opens the store for a config.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
	env      map[string]string
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// WithEnv sets the environment used for config overrides.
func (d *Dispatcher) WithEnv(env map[string]string) *Dispatcher {
	d.env = env
	return d
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var in config.LoadInput
	var quiet, debug bool

	fs.StringVar(&in.Dir, "config", "", "")
	fs.StringVar(&in.DBPath, "db", "", "")
	fs.StringVar(&in.Policy, "policy", "", "")
	fs.BoolVarP(&quiet, "quiet", "q", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	in.Env = d.env
	cfg, err := config.Load(in)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.SetLogLevel(slog.LevelWarn)

	logger := NewLogger(errOut, cfg.Level)
	slog.SetDefault(logger)

	ctrl := controller.New(view.NewList(),
		controller.WithPolicy(cfg.Policy),
		controller.WithLogger(logger),
	)

	if cmd.NeedsStore() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: store unavailable: no store configured")
			return exitcode.StoreError
		}

		err := ctrl.Init(ctx, func(ctx context.Context) (service.Service, error) {
			return d.factory(ctx, cfg)
		})
		if err != nil {
			var initErr *controller.InitError
			if errors.As(err, &initErr) {
				fmt.Fprintf(errOut, "error: %s\n", err)
				return exitcode.StoreError
			}
			_ = ctrl.Close()
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.OperationError
		}
		defer func() {
			if err := ctrl.Close(); err != nil {
				logger.Warn("close store", logfields.Error(err))
			}
		}()
	}

	return cmd.Run(ctx, cfg, ctrl, fs.Args(), out, errOut)
}

// NewLogger returns a text logger on w at the given level.
func NewLogger(w io.Writer, level *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
