package commands

import (
	"context"
	"io"

	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Removing a task that does not exist
// succeeds.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "tasklist rm <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return reportRefError(errOut, err)
	}
	key, err := resolveKey(ctrl.List(), ref)
	if err != nil {
		return reportRefError(errOut, err)
	}

	if err := ctrl.Delete(ctx, key); err != nil {
		return reportError(errOut, err)
	}
	return ok(cfg, out)
}
