package commands

import (
	"context"
	"flag"
	"io"
	"os"

	"remind/internal/batch"
	"remind/internal/config"
	"remind/internal/exitcode"
	"remind/internal/ops"
	"remind/internal/store"
)

func init() {
	Register(&BatchCmd{})
}

// BatchCmd implements the batch command: a JSON array of operations executed
// strictly in order, best-effort. Structural failures (bad JSON, unreadable
// file, empty array) are usage errors; individual operation failures are
// per-index results and make the whole run exit 7.
type BatchCmd struct {
	file       string
	skipVerify bool
	dryRun     bool

	// Stdin is the operations source when no --file is given. Overridden
	// in tests.
	Stdin io.Reader
}

func (c *BatchCmd) Name() string      { return "batch" }
func (c *BatchCmd) Aliases() []string { return nil }
func (c *BatchCmd) Synopsis() string  { return "Run a JSON array of operations in order" }
func (c *BatchCmd) Usage() string {
	return "remind batch [--file <path>] [--skip-verify] [--dry-run]"
}
func (c *BatchCmd) NeedsAuth() bool { return true }

func (c *BatchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "file", "", "")
	fs.BoolVar(&c.skipVerify, "skip-verify", false, "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *BatchCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	var in io.Reader = c.Stdin
	if in == nil {
		in = os.Stdin
	}
	if c.file != "" {
		f, err := os.Open(c.file)
		if err != nil {
			return usageError(errOut, "cannot read batch file: %v", err)
		}
		defer f.Close()
		in = f
	}

	reqs, err := batch.Decode(in)
	if err != nil {
		return usageError(errOut, "%v", err)
	}

	sess := ops.NewSession(st)
	d := batch.NewDispatcher(sess, ops.Options{DryRun: c.dryRun, SkipVerify: c.skipVerify})
	results := d.Run(ctx, reqs)

	if err := batch.Encode(out, results); err != nil {
		return fail(errOut, err)
	}
	if !batch.AllOK(results) {
		return exitcode.SaveFailed
	}
	return exitcode.Success
}
