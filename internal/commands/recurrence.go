package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"remind/internal/config"
	"remind/internal/exitcode"
	"remind/internal/ops"
	"remind/internal/store"
)

func init() {
	Register(&SetRecurrenceCmd{})
}

// SetRecurrenceCmd implements the set-recurrence command. An item that
// already has a recurrence rule is refused, never silently stacked.
type SetRecurrenceCmd struct {
	id     string
	dryRun bool
}

func (c *SetRecurrenceCmd) Name() string      { return "set-recurrence" }
func (c *SetRecurrenceCmd) Aliases() []string { return nil }
func (c *SetRecurrenceCmd) Synopsis() string  { return "Attach a recurrence rule to a reminder" }
func (c *SetRecurrenceCmd) Usage() string {
	return "remind set-recurrence [--id <id>] [--dry-run] <list> [title...] <frequency> <interval>"
}
func (c *SetRecurrenceCmd) NeedsAuth() bool { return true }

func (c *SetRecurrenceCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *SetRecurrenceCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	// Trailing positionals are always <frequency> <interval>; whatever
	// sits between the list name and those is the title.
	if len(args) < 3 {
		return usageError(errOut, "list, frequency and interval required")
	}
	listName := listOrDefault(cfg, args[0])
	freqArg := args[len(args)-2]
	intervalArg := args[len(args)-1]

	sel, err := selectorFromArgs(c.id, args[1:len(args)-2])
	if err != nil {
		return fail(errOut, err)
	}

	freq, err := store.ParseFrequency(freqArg)
	if err != nil {
		return usageError(errOut, "%v", err)
	}
	interval, err := strconv.Atoi(intervalArg)
	if err != nil {
		return usageError(errOut, "invalid interval: %s", intervalArg)
	}

	sess := ops.NewSession(st)
	res, err := sess.SetRecurrence(ctx, listName, sel, store.Recurrence{
		Frequency: freq,
		Interval:  interval,
	}, ops.Options{DryRun: c.dryRun})
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, res.Message)
	}
	return exitcode.Success
}
