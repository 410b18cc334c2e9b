package commands

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/export"
	"tasklist/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd writes every task to stdout or a file.
type ExportCmd struct {
	format string
	output string
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as JSON, YAML or PDF" }
func (c *ExportCmd) Usage() string {
	return "tasklist export [--format json|yaml|pdf] [--output <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVarP(&c.format, "format", "f", "", "")
	fs.StringVarP(&c.output, "output", "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	format, err := c.resolveFormat()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var tasks []service.Task
	err = ctrl.Each(ctx, func(t service.Task) error {
		tasks = append(tasks, t)
		return nil
	})
	if err != nil {
		return reportError(errOut, err)
	}

	data, err := export.Encode(format, tasks)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.OperationError
	}

	if c.output == "" {
		if _, err := out.Write(data); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.OperationError
		}
		return exitcode.Success
	}

	if err := export.WriteFile(c.output, data); err != nil {
		fmt.Fprintf(errOut, "error: write %s: %v\n", c.output, err)
		return exitcode.OperationError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(tasks), c.output)
	}
	return exitcode.Success
}

// resolveFormat prefers --format, then the output file extension.
func (c *ExportCmd) resolveFormat() (export.Format, error) {
	if c.format == "" && c.output != "" {
		if f, err := export.FormatForPath(c.output); err == nil {
			return f, nil
		}
	}
	return export.ParseFormat(c.format)
}
