package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	flag "github.com/spf13/pflag"

	"tasklist/internal/backend/sqlitestore"
	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/logfields"
	"tasklist/internal/metrics"
	"tasklist/internal/view"
	"tasklist/internal/watch"
	"tasklist/internal/web"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd serves the task page over HTTP until interrupted.
type ServeCmd struct {
	addr  string
	style string
	watch bool
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the task page over HTTP" }
func (c *ServeCmd) Usage() string {
	return "tasklist serve [--addr <host:port>] [--style <name>] [--watch]"
}
func (c *ServeCmd) NeedsStore() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
	fs.StringVar(&c.style, "style", "", "")
	fs.BoolVar(&c.watch, "watch", false, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	cfg.SetLogLevel(slog.LevelInfo)
	logger := slog.Default()

	addr := cfg.Addr
	if c.addr != "" {
		addr = c.addr
	}
	styleName := cfg.Style
	if c.style != "" {
		styleName = c.style
	}
	style, err := view.LookupStyle(styleName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	reg := metrics.NewRegistry()
	ctrl.SetRecorder(metrics.NewPrometheusRecorder(reg))

	if c.watch {
		if cfg.DBPath == sqlitestore.Memory {
			fmt.Fprintln(errOut, "error: cannot watch an in-memory store")
			return exitcode.UserError
		}
		w, err := watch.New(cfg.DBPath, ctrl, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.OperationError
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("watcher stopped", logfields.Error(err))
			}
		}()
	}

	srv := web.NewServer(ctrl, style,
		web.WithMetrics(metrics.HTTPHandler(reg)),
		web.WithLogger(logger),
	)
	if !cfg.Quiet {
		fmt.Fprintf(out, "serving on http://%s\n", addr)
	}
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.OperationError
	}
	return exitcode.Success
}
