package commands

import (
	"context"
	"io"

	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd loads a task into the edit form and prints the form.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"edit"} }
func (c *ShowCmd) Synopsis() string  { return "Show a task in the edit form" }
func (c *ShowCmd) Usage() string     { return "tasklist show <ref>" }
func (c *ShowCmd) NeedsStore() bool  { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return reportRefError(errOut, err)
	}
	key, err := resolveKey(ctrl.List(), ref)
	if err != nil {
		return reportRefError(errOut, err)
	}

	if err := ctrl.BeginEdit(ctx, key); err != nil {
		return reportError(errOut, err)
	}

	output.FormatForm(out, ctrl.Form())
	return exitcode.Success
}
