package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"remind/internal/config"
	"remind/internal/exitcode"
	"remind/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "remind help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  remind                                             List all reminders
  remind list [flags] <list-name>                    List reminders in one list
      --json --completed --due-before <date> --due-after <date>
  remind add [flags] <list> <title...>               Create a reminder
      --due <date> --time <hh:mm> --body <text> --body-file <path>
      --recurrence <freq> --interval <n> --force --dry-run
  remind complete [flags] <list> [title...]          Mark a reminder complete
      --id <id> --dry-run
  remind edit [flags] <list> [title...]              Change a reminder
      --id <id> --title <new> --due <date> --time <hh:mm>
      --body <text> --body-file <path> --dry-run
  remind move [flags] <source> <target> [title...]   Move a reminder
      --id <id> --due <date> --time <hh:mm> --body <text> --dry-run
  remind set-recurrence [flags] <list> [title...] <frequency> <interval>
      --id <id> --dry-run
  remind delete [flags] <list> [title...]            Delete a reminder
      --id <id> --dry-run
  remind batch [flags]                               Run operations from JSON
      --file <path> --skip-verify --dry-run
  remind lists                                       Print all list names
  remind login                                       Authorize store access
  remind logout                                      Remove stored credentials
  remind help
  remind version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
