package commands

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/view"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command. It replaces the priority of a
// task, creating the task if it does not exist.
type UpdateCmd struct {
	priority string
}

// SetPriority sets the priority (for testing).
func (c *UpdateCmd) SetPriority(p string) {
	c.priority = p
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return []string{"put"} }
func (c *UpdateCmd) Synopsis() string  { return "Set the priority of a task" }
func (c *UpdateCmd) Usage() string     { return "tasklist update --priority <p> <title...>" }
func (c *UpdateCmd) NeedsStore() bool  { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVarP(&c.priority, "priority", "p", "", "")
}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	if c.priority == "" {
		fmt.Fprintln(errOut, "error: priority required")
		return exitcode.UserError
	}
	return runSubmit(ctx, cfg, ctrl, view.ActionUpdate, c.priority, args, out, errOut)
}
