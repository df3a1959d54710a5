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
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct {
	id     string
	dryRun bool
}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a reminder" }
func (c *DeleteCmd) Usage() string {
	return "remind delete [--id <id>] [--dry-run] <list> [title...]"
}
func (c *DeleteCmd) NeedsAuth() bool { return true }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return usageError(errOut, "list name required")
	}
	listName := listOrDefault(cfg, args[0])

	sel, err := selectorFromArgs(c.id, args[1:])
	if err != nil {
		return fail(errOut, err)
	}

	sess := ops.NewSession(st)
	res, err := sess.Delete(ctx, listName, sel, ops.Options{DryRun: c.dryRun})
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, res.Message)
	}
	return exitcode.Success
}
