package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/export"
)

func init() {
	Register(&ImportCmd{})
}

// ImportCmd reads a JSON or YAML export and writes every record with
// update semantics.
type ImportCmd struct {
	format string
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Import tasks from JSON or YAML" }
func (c *ImportCmd) Usage() string     { return "tasklist import [--format json|yaml] <file>" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVarP(&c.format, "format", "f", "", "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: file required")
		return exitcode.UserError
	}
	path := args[0]

	var (
		format export.Format
		err    error
	)
	if c.format != "" {
		format, err = export.ParseFormat(c.format)
	} else {
		format, err = export.FormatForPath(path)
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := export.Decode(format, data)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := ctrl.Import(ctx, tasks); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d tasks\n", len(tasks))
	}
	return exitcode.Success
}
