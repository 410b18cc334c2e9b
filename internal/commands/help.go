package commands

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasklist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasklist                                           List all tasks
  tasklist list [common flags]
  tasklist add [common flags] [--priority <p>] <title...>
  tasklist create [common flags] [--priority <p>] <title...>
  tasklist update [common flags] --priority <p> <title...>
  tasklist show [common flags] <ref>
  tasklist rm [common flags] <ref>
  tasklist export [common flags] [--format json|yaml|pdf] [--output <file>]
  tasklist import [common flags] [--format json|yaml] <file>
  tasklist serve [common flags] [--addr <host:port>] [--style <name>] [--watch]
  tasklist shell [common flags]
  tasklist help
  tasklist version

A <ref> is a row number from the list output or a task title.

Common flags:
  --config <dir>      Override config directory
  --db <path>         Override the database file (":memory:" for a scratch store)
  --policy <p>        Duplicate title policy: reject, upsert or ignore
  --quiet, -q         Suppress informational output
  --debug             Print debug logs to stderr
`
