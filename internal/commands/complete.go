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
	Register(&CompleteCmd{})
}

// CompleteCmd implements the complete command.
type CompleteCmd struct {
	id     string
	dryRun bool
}

func (c *CompleteCmd) Name() string      { return "complete" }
func (c *CompleteCmd) Aliases() []string { return []string{"done"} }
func (c *CompleteCmd) Synopsis() string  { return "Mark a reminder complete" }
func (c *CompleteCmd) Usage() string {
	return "remind complete [--id <id>] [--dry-run] <list> [title...]"
}
func (c *CompleteCmd) NeedsAuth() bool { return true }

func (c *CompleteCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *CompleteCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return usageError(errOut, "list name required")
	}
	listName := listOrDefault(cfg, args[0])

	sel, err := selectorFromArgs(c.id, args[1:])
	if err != nil {
		return fail(errOut, err)
	}

	sess := ops.NewSession(st)
	res, err := sess.Complete(ctx, listName, sel, ops.Options{DryRun: c.dryRun})
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, res.Message)
	}
	return exitcode.Success
}
