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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Absent flags leave fields untouched;
// an explicitly empty --body clears the body.
type EditCmd struct {
	id        string
	newTitle  optionalString
	due       string
	timeOfDay string
	body      optionalString
	bodyFile  string
	dryRun    bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a reminder's title, due date, time or body" }
func (c *EditCmd) Usage() string {
	return "remind edit [--id <id>] [--title <new>] [--due <date>] [--time <hh:mm>] [--body <text>|--body-file <path>] [--dry-run] <list> [title...]"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
	fs.Var(&c.newTitle, "title", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.timeOfDay, "time", "", "")
	fs.Var(&c.body, "body", "")
	fs.StringVar(&c.bodyFile, "body-file", "", "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return usageError(errOut, "list name required")
	}
	listName := listOrDefault(cfg, args[0])

	sel, err := selectorFromArgs(c.id, args[1:])
	if err != nil {
		return fail(errOut, err)
	}

	req := ops.EditRequest{List: listName, Target: sel}
	if c.newTitle.set {
		title := c.newTitle.value
		req.NewTitle = &title
	}

	// The executor applies a bare --time to the item's existing due date,
	// so date and time stay separate here.
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
	res, err := sess.Edit(ctx, req, ops.Options{DryRun: c.dryRun})
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, res.Message)
	}
	return exitcode.Success
}
