package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"tasklist/internal/config"
	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/view"
)

// HistoryFile is the shell history file name inside the config directory.
const HistoryFile = "history"

func init() {
	Register(&ShellCmd{})
}

// ShellCmd runs an interactive session against one open store. The form
// and edit state carry over between lines.
type ShellCmd struct{}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"repl"} }
func (c *ShellCmd) Synopsis() string  { return "Interactive session" }
func (c *ShellCmd) Usage() string     { return "tasklist shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, args []string, out, errOut io.Writer) int {
	cfg.SetLogLevel(slog.LevelInfo)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeShell)

	history := filepath.Join(cfg.Dir, HistoryFile)
	if f, err := os.Open(history); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	sess := NewShellSession(cfg, ctrl, out, errOut)
	if !cfg.Quiet {
		fmt.Fprintln(out, "Type 'help' for available commands.")
	}

	code := exitcode.Success
	for ctx.Err() == nil {
		input, err := line.Prompt("tasks> ")
		if err != nil {
			if err != liner.ErrPromptAborted && err != io.EOF {
				fmt.Fprintf(errOut, "error: %v\n", err)
				code = exitcode.OperationError
			}
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if sess.Exec(ctx, input) {
			break
		}
	}

	if err := os.MkdirAll(cfg.Dir, 0o700); err == nil {
		if f, err := os.Create(history); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}
	return code
}

var shellCommands = []string{"add", "update", "edit", "submit", "rm", "ls", "form", "help", "quit"}

func completeShell(line string) []string {
	var out []string
	lower := strings.ToLower(line)
	for _, cmd := range shellCommands {
		if strings.HasPrefix(cmd, lower) {
			out = append(out, cmd)
		}
	}
	return out
}

// ShellSession executes shell lines against a controller.
type ShellSession struct {
	cfg    *config.Config
	ctrl   *controller.Controller
	out    io.Writer
	errOut io.Writer
}

// NewShellSession creates a session writing to out and errOut.
func NewShellSession(cfg *config.Config, ctrl *controller.Controller, out, errOut io.Writer) *ShellSession {
	return &ShellSession{cfg: cfg, ctrl: ctrl, out: out, errOut: errOut}
}

// Exec runs one line. It returns true when the session should end.
// Errors are printed and the session continues.
func (s *ShellSession) Exec(ctx context.Context, input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(s.out, shellHelp)
	case "add":
		s.submit(ctx, view.ActionAdd, args)
	case "update", "put":
		s.submit(ctx, view.ActionUpdate, args)
	case "edit":
		s.edit(ctx, args)
	case "submit":
		s.submitForm(ctx, args)
	case "rm", "delete":
		s.remove(ctx, args)
	case "ls", "list":
		s.list()
	case "form":
		output.FormatForm(s.out, s.ctrl.Form())
	default:
		fmt.Fprintf(s.errOut, "error: unknown command: %s\n", cmd)
	}
	return false
}

// submit handles "add|update <priority> <title...>".
func (s *ShellSession) submit(ctx context.Context, action string, args []string) {
	if len(args) < 2 {
		fmt.Fprintf(s.errOut, "error: usage: %s <priority> <title...>\n", action)
		return
	}
	err := s.ctrl.Submit(ctx, controller.Submission{
		Title:    strings.Join(args[1:], " "),
		Priority: args[0],
		Action:   action,
	})
	if err != nil {
		reportError(s.errOut, err)
		return
	}
	s.list()
}

// submitForm sends the current form with a new priority, in the form's
// current mode.
func (s *ShellSession) submitForm(ctx context.Context, args []string) {
	form := s.ctrl.Form()
	if len(args) == 0 {
		fmt.Fprintln(s.errOut, "error: usage: submit <priority>")
		return
	}
	err := s.ctrl.Submit(ctx, controller.Submission{
		Title:    form.Title,
		Priority: strings.Join(args, " "),
		Action:   form.Mode.Action(),
	})
	if err != nil {
		reportError(s.errOut, err)
		return
	}
	s.list()
}

func (s *ShellSession) edit(ctx context.Context, args []string) {
	key, ok := s.resolve(args)
	if !ok {
		return
	}
	if err := s.ctrl.BeginEdit(ctx, key); err != nil {
		reportError(s.errOut, err)
		return
	}
	output.FormatForm(s.out, s.ctrl.Form())
}

func (s *ShellSession) remove(ctx context.Context, args []string) {
	key, ok := s.resolve(args)
	if !ok {
		return
	}
	if err := s.ctrl.Delete(ctx, key); err != nil {
		reportError(s.errOut, err)
		return
	}
	s.list()
}

func (s *ShellSession) resolve(args []string) (string, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		reportRefError(s.errOut, err)
		return "", false
	}
	key, err := resolveKey(s.ctrl.List(), ref)
	if err != nil {
		reportRefError(s.errOut, err)
		return "", false
	}
	return key, true
}

func (s *ShellSession) list() {
	rows := s.ctrl.List().Rows()
	if len(rows) == 0 {
		if !s.cfg.Quiet {
			fmt.Fprintln(s.out, "no tasks found")
		}
		return
	}
	output.FormatRows(s.out, rows)
}

const shellHelp = `Commands:
  add <priority> <title...>      Create a task
  update <priority> <title...>   Set the priority of a task
  edit <ref>                     Load a task into the form
  submit <priority>              Submit the form with a new priority
  rm <ref>                       Delete a task
  ls                             List tasks
  form                           Show the form
  help                           Show this help
  quit                           Exit
`
