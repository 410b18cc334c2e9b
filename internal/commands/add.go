package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/view"
)

// DefaultPriority is used by add when --priority is not given.
const DefaultPriority = "low"

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority string
}

// SetPriority sets the priority (for testing).
func (c *AddCmd) SetPriority(p string) {
	c.priority = p
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "tasklist add [--priority <p>] <title...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVarP(&c.priority, "priority", "p", DefaultPriority, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	return runSubmit(ctx, cfg, ctrl, view.ActionAdd, c.priority, args, out, errOut)
}

// runSubmit is the shared implementation for add and update.
func runSubmit(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, action, priority string, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	err := ctrl.Submit(ctx, controller.Submission{
		Title:    title,
		Priority: priority,
		Action:   action,
	})
	if err != nil {
		return reportError(errOut, err)
	}
	return ok(cfg, out)
}
