package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"remind/internal/config"
	"remind/internal/dates"
	"remind/internal/exitcode"
	"remind/internal/ops"
	"remind/internal/resolve"
	"remind/internal/store"
)

// fail prints the error and maps it to an exit code. All commands report
// failures through this one path so the exit code mapping stays uniform.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.FromError(err)
}

func usageError(errOut io.Writer, format string, args ...any) int {
	fmt.Fprintf(errOut, "error: "+format+"\n", args...)
	return exitcode.UsageError
}

// listOrDefault substitutes the configured default list when the argument
// was omitted.
func listOrDefault(cfg *config.Config, name string) string {
	if name == "" {
		return cfg.Settings.DefaultList
	}
	return name
}

// optionalString is a flag value that remembers whether it was set, so
// commands can distinguish an explicit empty value from an absent flag.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string     { return o.value }
func (o *optionalString) Set(s string) error { o.value = s; o.set = true; return nil }

// parseDue turns the --due and --time flag values into a due date. A time
// without a date is rejected here; the configured default time fills in when
// a date is given bare.
func parseDue(cfg *config.Config, dueFlag, timeFlag string) (*store.DueDate, *ops.TimeOfDay, error) {
	var due *store.DueDate
	if dueFlag != "" {
		d, err := dates.ParseDate(dueFlag)
		if err != nil {
			return nil, nil, &ops.ArgumentError{Msg: err.Error()}
		}
		due = &d
	}

	var tod *ops.TimeOfDay
	if timeFlag != "" {
		h, m, err := dates.ParseTime(timeFlag)
		if err != nil {
			return nil, nil, &ops.ArgumentError{Msg: err.Error()}
		}
		tod = &ops.TimeOfDay{Hour: h, Minute: m}
	} else if due != nil && cfg.Settings.DefaultTime != "" {
		if h, m, err := dates.ParseTime(cfg.Settings.DefaultTime); err == nil {
			tod = &ops.TimeOfDay{Hour: h, Minute: m}
		}
	}

	if due != nil && tod != nil {
		due.Hour, due.Minute, due.HasTime = tod.Hour, tod.Minute, true
		tod = nil
	}
	return due, tod, nil
}

// readBody resolves the --body/--body-file pair. The file wins when both
// are given.
func readBody(body, bodyFile string) (string, error) {
	if bodyFile == "" {
		return body, nil
	}
	data, err := os.ReadFile(bodyFile)
	if err != nil {
		return "", &ops.ArgumentError{Msg: fmt.Sprintf("cannot read body file: %v", err)}
	}
	return string(data), nil
}

// selectorFromArgs builds the item selector from the --id flag or the
// remaining positional words joined as a title.
func selectorFromArgs(id string, args []string) (resolve.Selector, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if id == "" && title == "" {
		return resolve.Selector{}, &ops.ArgumentError{Msg: "item title or --id required"}
	}
	return resolve.Selector{ID: id, Title: title}, nil
}
