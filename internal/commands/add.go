package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"remind/internal/config"
	"remind/internal/exitcode"
	"remind/internal/ops"
	"remind/internal/store"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due        string
	timeOfDay  string
	body       string
	bodyFile   string
	recurrence string
	interval   int
	force      bool
	dryRun     bool
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a reminder" }
func (c *AddCmd) Usage() string {
	return "remind add [--due <date>] [--time <hh:mm>] [--body <text>|--body-file <path>] [--recurrence <freq>] [--interval <n>] [--force] [--dry-run] <list> <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.timeOfDay, "time", "", "")
	fs.StringVar(&c.body, "body", "", "")
	fs.StringVar(&c.bodyFile, "body-file", "", "")
	fs.StringVar(&c.recurrence, "recurrence", "", "")
	fs.IntVar(&c.interval, "interval", 1, "")
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	listName, title, code := splitListAndTitle(cfg, args, errOut)
	if code != exitcode.Success {
		return code
	}

	due, tod, err := parseDue(cfg, c.due, c.timeOfDay)
	if err != nil {
		return fail(errOut, err)
	}
	if tod != nil {
		return usageError(errOut, "--time requires --due")
	}

	body, err := readBody(c.body, c.bodyFile)
	if err != nil {
		return fail(errOut, err)
	}

	var rule *store.Recurrence
	if c.recurrence != "" {
		freq, err := store.ParseFrequency(c.recurrence)
		if err != nil {
			return usageError(errOut, "%v", err)
		}
		rule = &store.Recurrence{Frequency: freq, Interval: c.interval}
	}

	sess := ops.NewSession(st)
	res, err := sess.Add(ctx, ops.AddRequest{
		List:       listName,
		Title:      title,
		Due:        due,
		Body:       body,
		Recurrence: rule,
		Force:      c.force,
	}, ops.Options{DryRun: c.dryRun})
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, res.Message)
	}
	return exitcode.Success
}

// splitListAndTitle peels the list name off the positionals. A single
// positional is the whole title when a default list is configured.
func splitListAndTitle(cfg *config.Config, args []string, errOut io.Writer) (string, string, int) {
	switch {
	case len(args) >= 2:
		return args[0], strings.Join(args[1:], " "), exitcode.Success
	case len(args) == 1 && cfg.Settings.DefaultList != "":
		return cfg.Settings.DefaultList, args[0], exitcode.Success
	default:
		return "", "", usageError(errOut, "list and title required")
	}
}
