package batch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"remind/internal/dates"
	"remind/internal/ops"
	"remind/internal/resolve"
	"remind/internal/store"
)

// Dispatcher routes decoded requests to the operation executors through one
// shared session. Operations run strictly in input order: a later operation
// may depend on an earlier one's effect, and the session's invalidation
// contract is only correct under sequential execution.
type Dispatcher struct {
	sess *ops.Session
	opts ops.Options
}

// NewDispatcher creates a Dispatcher over an authorized session.
func NewDispatcher(sess *ops.Session, opts ops.Options) *Dispatcher {
	return &Dispatcher{sess: sess, opts: opts}
}

// Run executes the requests best-effort: one operation's failure never
// aborts the rest. The returned slice has exactly one result per request,
// in input order.
func (d *Dispatcher) Run(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, 0, len(reqs))
	for i, req := range reqs {
		res := Result{Index: i, Command: req.Command, Title: req.Title}
		opRes, err := d.dispatch(ctx, req)
		if err != nil {
			res.Status = "error"
			res.Message = err.Error()
		} else {
			res.Status = "ok"
			res.Message = opRes.Message
		}
		results = append(results, res)
	}
	return results
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request) (ops.Result, error) {
	switch strings.ToLower(strings.TrimSpace(req.Command)) {
	case "add":
		return d.add(ctx, req)
	case "complete":
		return d.complete(ctx, req)
	case "edit", "update":
		return d.edit(ctx, req)
	case "move":
		return d.move(ctx, req)
	case "set-recurrence":
		return d.setRecurrence(ctx, req)
	case "delete":
		return d.delete(ctx, req)
	case "":
		return ops.Result{}, &ops.ArgumentError{Msg: "missing command"}
	default:
		return ops.Result{}, &ops.ArgumentError{Msg: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}

func (d *Dispatcher) add(ctx context.Context, req Request) (ops.Result, error) {
	if req.List == "" || req.Title == "" {
		return ops.Result{}, &ops.ArgumentError{Msg: "add requires list and title"}
	}
	due, _, err := dueFrom(req)
	if err != nil {
		return ops.Result{}, err
	}
	body, err := bodyFrom(req)
	if err != nil {
		return ops.Result{}, err
	}
	var rec *store.Recurrence
	if req.Recurrence != "" {
		freq, err := store.ParseFrequency(req.Recurrence)
		if err != nil {
			return ops.Result{}, &ops.ArgumentError{Msg: err.Error()}
		}
		interval := req.Interval
		if interval == 0 {
			interval = 1
		}
		rec = &store.Recurrence{Frequency: freq, Interval: interval}
	}
	return d.sess.Add(ctx, ops.AddRequest{
		List:       req.List,
		Title:      req.Title,
		Due:        due,
		Body:       body,
		Recurrence: rec,
		Force:      req.Force,
	}, d.opts)
}

func (d *Dispatcher) complete(ctx context.Context, req Request) (ops.Result, error) {
	sel, err := selectorFrom(req)
	if err != nil {
		return ops.Result{}, err
	}
	if req.List == "" {
		return ops.Result{}, &ops.ArgumentError{Msg: "complete requires list"}
	}
	return d.sess.Complete(ctx, req.List, sel, d.opts)
}

func (d *Dispatcher) edit(ctx context.Context, req Request) (ops.Result, error) {
	sel, err := selectorFrom(req)
	if err != nil {
		return ops.Result{}, err
	}
	if req.List == "" {
		return ops.Result{}, &ops.ArgumentError{Msg: "edit requires list"}
	}
	edit := ops.EditRequest{List: req.List, Target: sel}
	if req.NewTitle != "" {
		edit.NewTitle = &req.NewTitle
	}
	if req.Due != "" {
		due, err := dates.ParseDate(req.Due)
		if err != nil {
			return ops.Result{}, &ops.ArgumentError{Msg: err.Error()}
		}
		edit.Date = &due
	}
	if req.Time != "" {
		h, m, err := dates.ParseTime(req.Time)
		if err != nil {
			return ops.Result{}, &ops.ArgumentError{Msg: err.Error()}
		}
		edit.Time = &ops.TimeOfDay{Hour: h, Minute: m}
	}
	if req.Body != "" || req.BodyFile != "" {
		body, err := bodyFrom(req)
		if err != nil {
			return ops.Result{}, err
		}
		edit.Body = &body
	}
	return d.sess.Edit(ctx, edit, d.opts)
}

func (d *Dispatcher) move(ctx context.Context, req Request) (ops.Result, error) {
	sel, err := selectorFrom(req)
	if err != nil {
		return ops.Result{}, err
	}
	if req.Source == "" || req.Target == "" {
		return ops.Result{}, &ops.ArgumentError{Msg: "move requires source and target"}
	}
	move := ops.MoveRequest{Source: req.Source, Target: req.Target, Item: sel}
	if req.Due != "" {
		due, err := dates.ParseDate(req.Due)
		if err != nil {
			return ops.Result{}, &ops.ArgumentError{Msg: err.Error()}
		}
		move.Date = &due
	}
	if req.Time != "" {
		h, m, err := dates.ParseTime(req.Time)
		if err != nil {
			return ops.Result{}, &ops.ArgumentError{Msg: err.Error()}
		}
		move.Time = &ops.TimeOfDay{Hour: h, Minute: m}
	}
	if req.Body != "" || req.BodyFile != "" {
		body, err := bodyFrom(req)
		if err != nil {
			return ops.Result{}, err
		}
		move.Body = &body
	}
	return d.sess.Move(ctx, move, d.opts)
}

func (d *Dispatcher) setRecurrence(ctx context.Context, req Request) (ops.Result, error) {
	sel, err := selectorFrom(req)
	if err != nil {
		return ops.Result{}, err
	}
	if req.List == "" {
		return ops.Result{}, &ops.ArgumentError{Msg: "set-recurrence requires list"}
	}
	if req.Frequency == "" {
		return ops.Result{}, &ops.ArgumentError{Msg: "set-recurrence requires frequency"}
	}
	freq, err := store.ParseFrequency(req.Frequency)
	if err != nil {
		return ops.Result{}, &ops.ArgumentError{Msg: err.Error()}
	}
	return d.sess.SetRecurrence(ctx, req.List, sel,
		store.Recurrence{Frequency: freq, Interval: req.Interval}, d.opts)
}

func (d *Dispatcher) delete(ctx context.Context, req Request) (ops.Result, error) {
	sel, err := selectorFrom(req)
	if err != nil {
		return ops.Result{}, err
	}
	if req.List == "" {
		return ops.Result{}, &ops.ArgumentError{Msg: "delete requires list"}
	}
	return d.sess.Delete(ctx, req.List, sel, d.opts)
}

func selectorFrom(req Request) (resolve.Selector, error) {
	if req.ID != "" {
		return resolve.Selector{ID: req.ID}, nil
	}
	if req.Title != "" {
		return resolve.Selector{Title: req.Title}, nil
	}
	return resolve.Selector{}, &ops.ArgumentError{Msg: fmt.Sprintf("%s requires title or id", req.Command)}
}

func dueFrom(req Request) (*store.DueDate, *ops.TimeOfDay, error) {
	if req.Due == "" {
		if req.Time != "" {
			return nil, nil, &ops.ArgumentError{Msg: "time requires a due date"}
		}
		return nil, nil, nil
	}
	due, err := dates.ParseDate(req.Due)
	if err != nil {
		return nil, nil, &ops.ArgumentError{Msg: err.Error()}
	}
	if req.Time != "" {
		h, m, err := dates.ParseTime(req.Time)
		if err != nil {
			return nil, nil, &ops.ArgumentError{Msg: err.Error()}
		}
		due.Hour, due.Minute = h, m
		due.HasTime = true
		return &due, &ops.TimeOfDay{Hour: h, Minute: m}, nil
	}
	return &due, nil, nil
}

func bodyFrom(req Request) (string, error) {
	// File content takes precedence over a literal body.
	if req.BodyFile != "" {
		data, err := os.ReadFile(req.BodyFile)
		if err != nil {
			return "", &ops.ArgumentError{Msg: fmt.Sprintf("cannot read body file: %v", err)}
		}
		return string(data), nil
	}
	return req.Body, nil
}
