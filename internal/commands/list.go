package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"remind/internal/config"
	"remind/internal/dates"
	"remind/internal/exitcode"
	"remind/internal/output"
	"remind/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `remind` (no args, all lists) and `remind list <list-name>`.
type ListCmd struct {
	json      bool
	completed bool
	dueBefore string
	dueAfter  string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List reminders" }
func (c *ListCmd) Usage() string {
	return "remind list [--json] [--completed] [--due-before <date>] [--due-after <date>] <list-name>"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.json, "json", false, "")
	fs.BoolVar(&c.completed, "completed", false, "")
	fs.StringVar(&c.dueBefore, "due-before", "", "")
	fs.StringVar(&c.dueAfter, "due-after", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	before, after, errCode := c.parseBounds(errOut)
	if errCode != exitcode.Success {
		return errCode
	}

	listName := listOrDefault(cfg, strings.TrimSpace(strings.Join(args, " ")))
	if listName == "" {
		return c.listAll(ctx, cfg, st, before, after, out, errOut)
	}

	list, err := st.FindList(ctx, listName)
	if err != nil {
		return fail(errOut, err)
	}

	snap, err := st.FetchItems(ctx, list)
	if err != nil {
		return fail(errOut, &store.FetchError{Err: err})
	}

	items := c.filter(snap, before, after)
	if c.json {
		if err := output.EncodeItems(out, items, c.completed); err != nil {
			return fail(errOut, err)
		}
		return exitcode.Success
	}

	output.FormatListHeader(out, list)
	for _, item := range items {
		output.FormatItem(out, item)
	}
	return exitcode.Success
}

// listAll renders every list in store order, skipping empty ones.
func (c *ListCmd) listAll(ctx context.Context, cfg *config.Config, st store.Store, before, after *time.Time, out, errOut io.Writer) int {
	lists, err := st.Lists(ctx)
	if err != nil {
		return fail(errOut, &store.FetchError{Err: err})
	}

	if c.json {
		var all []store.Item
		for _, list := range lists {
			snap, err := st.FetchItems(ctx, list)
			if err != nil {
				return fail(errOut, &store.FetchError{Err: err})
			}
			all = append(all, c.filter(snap, before, after)...)
		}
		if err := output.EncodeItems(out, all, c.completed); err != nil {
			return fail(errOut, err)
		}
		return exitcode.Success
	}

	any := false
	for _, list := range lists {
		snap, err := st.FetchItems(ctx, list)
		if err != nil {
			return fail(errOut, &store.FetchError{Err: err})
		}
		items := c.filter(snap, before, after)
		if len(items) == 0 {
			continue
		}
		output.FormatListHeader(out, list)
		for _, item := range items {
			output.FormatItem(out, item)
		}
		any = true
	}
	if !any && !cfg.Quiet {
		fmt.Fprintln(out, "no reminders found")
	}
	return exitcode.Success
}

// parseBounds materializes the --due-before/--due-after dates. The bounds
// are local-calendar instants; items without a due date never match a bound.
func (c *ListCmd) parseBounds(errOut io.Writer) (before, after *time.Time, code int) {
	if c.dueBefore != "" {
		d, err := dates.ParseDate(c.dueBefore)
		if err != nil {
			return nil, nil, usageError(errOut, "%v", err)
		}
		t := d.Time(time.Local)
		before = &t
	}
	if c.dueAfter != "" {
		d, err := dates.ParseDate(c.dueAfter)
		if err != nil {
			return nil, nil, usageError(errOut, "%v", err)
		}
		t := d.Time(time.Local)
		after = &t
	}
	return before, after, exitcode.Success
}

func (c *ListCmd) filter(snap store.Snapshot, before, after *time.Time) []store.Item {
	var items []store.Item
	for _, item := range snap {
		if item.Completed && !c.completed {
			continue
		}
		if before != nil || after != nil {
			if item.Due == nil {
				continue
			}
			due := item.Due.Time(time.Local)
			if before != nil && !due.Before(*before) {
				continue
			}
			if after != nil && !due.After(*after) {
				continue
			}
		}
		items = append(items, item)
	}
	return items
}
