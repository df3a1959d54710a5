package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"remind/internal/config"
	"remind/internal/exitcode"
	"remind/internal/ops"
	"remind/internal/store"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd implements the move command.
type MoveCmd struct {
	id        string
	due       string
	timeOfDay string
	body      optionalString
	bodyFile  string
	dryRun    bool
}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return nil }
func (c *MoveCmd) Synopsis() string  { return "Move a reminder to another list" }
func (c *MoveCmd) Usage() string {
	return "remind move [--id <id>] [--due <date>] [--time <hh:mm>] [--body <text>|--body-file <path>] [--dry-run] <source> <target> [title...]"
}
func (c *MoveCmd) NeedsAuth() bool { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.timeOfDay, "time", "", "")
	fs.Var(&c.body, "body", "")
	fs.StringVar(&c.bodyFile, "body-file", "", "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		return usageError(errOut, "source and target lists required")
	}

	sel, err := selectorFromArgs(c.id, args[2:])
	if err != nil {
		return fail(errOut, err)
	}

	req := ops.MoveRequest{
		Source: args[0],
		Target: args[1],
		Item:   sel,
	}

	due, tod, err := parseDue(cfg, c.due, c.timeOfDay)
	if err != nil {
		return fail(errOut, err)
	}
	req.Date = due
	req.Time = tod

	if c.body.set || c.bodyFile != "" {
		body, err := readBody(c.body.value, c.bodyFile)
		if err != nil {
			return fail(errOut, err)
		}
		req.Body = &body
	}

	sess := ops.NewSession(st)
	res, err := sess.Move(ctx, req, ops.Options{DryRun: c.dryRun})
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, res.Message)
	}
	return exitcode.Success
}
