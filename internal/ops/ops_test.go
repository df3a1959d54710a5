package ops_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"remind/internal/ops"
	"remind/internal/resolve"
	"remind/internal/store"
	"remind/internal/testutil"
)

func newSession(fs *testutil.FakeStore) *ops.Session {
	return ops.NewSession(fs)
}

func TestAdd_Idempotent(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	sess := newSession(fs)
	ctx := context.Background()

	req := ops.AddRequest{List: "Groceries", Title: "Buy milk"}

	res, err := sess.Add(ctx, req, ops.Options{})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !res.Success {
		t.Fatalf("first add not successful: %+v", res)
	}

	res, err = sess.Add(ctx, req, ops.Options{})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if !res.Success {
		t.Fatalf("second add should be a skip, not a failure: %+v", res)
	}
	if !strings.HasPrefix(res.Message, "skipped") {
		t.Errorf("second add should report a skip, got %q", res.Message)
	}

	if n := len(fs.ItemsIn("Groceries")); n != 1 {
		t.Errorf("expected exactly one item after two adds, got %d", n)
	}
}

func TestAdd_ForceCreatesDuplicate(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	sess := newSession(fs)
	ctx := context.Background()

	if _, err := sess.Add(ctx, ops.AddRequest{List: "Groceries", Title: "Buy milk"}, ops.Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Add(ctx, ops.AddRequest{List: "Groceries", Title: "Buy milk", Force: true}, ops.Options{}); err != nil {
		t.Fatal(err)
	}
	if n := len(fs.ItemsIn("Groceries")); n != 2 {
		t.Errorf("expected two items with --force, got %d", n)
	}
}

func TestAdd_DedupIgnoresCompletedItems(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk", Completed: true})
	sess := newSession(fs)

	res, err := sess.Add(context.Background(), ops.AddRequest{List: "Groceries", Title: "Buy milk"}, ops.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || strings.HasPrefix(res.Message, "skipped") {
		t.Errorf("a completed duplicate must not trigger the dedup guard: %+v", res)
	}
	if n := len(fs.ItemsIn("Groceries")); n != 2 {
		t.Errorf("expected a new incomplete item alongside the completed one, got %d items", n)
	}
}

func TestAdd_ListNotFound(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	sess := newSession(fs)

	_, err := sess.Add(context.Background(), ops.AddRequest{List: "Nope", Title: "x"}, ops.Options{})
	var lnf *store.ListNotFoundError
	if !errors.As(err, &lnf) {
		t.Fatalf("expected ListNotFoundError, got %v", err)
	}
	if !reflect.DeepEqual(lnf.Available, []string{"Groceries"}) {
		t.Errorf("expected available names, got %v", lnf.Available)
	}
}

func TestAdd_VerificationDistrust(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.LieOnSave = true
	sess := newSession(fs)

	_, err := sess.Add(context.Background(), ops.AddRequest{List: "Groceries", Title: "Buy milk"}, ops.Options{})
	var ve *ops.VerifyError
	if !errors.As(err, &ve) {
		t.Fatalf("a lying save must surface as VerifyError, got %v", err)
	}
}

func TestAdd_SkipVerifyTrustsLyingSave(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.LieOnSave = true
	sess := newSession(fs)

	res, err := sess.Add(context.Background(), ops.AddRequest{List: "Groceries", Title: "Buy milk"}, ops.Options{SkipVerify: true})
	if err != nil || !res.Success {
		t.Fatalf("skip-verify should trust the acknowledgment: %+v, %v", res, err)
	}
}

func TestComplete(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	sess := newSession(fs)

	res, err := sess.Complete(context.Background(), "Groceries", resolve.Selector{Title: "Buy milk"}, ops.Options{})
	if err != nil || !res.Success {
		t.Fatalf("complete: %+v, %v", res, err)
	}

	items := fs.ItemsIn("Groceries")
	if len(items) != 1 || !items[0].Completed || items[0].CompletionDate == nil {
		t.Errorf("item not completed with timestamp: %+v", items)
	}
}

func TestComplete_ById(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	seeded := fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	sess := newSession(fs)

	res, err := sess.Complete(context.Background(), "Groceries", resolve.Selector{ID: seeded.ID}, ops.Options{})
	if err != nil || !res.Success {
		t.Fatalf("complete by id: %+v, %v", res, err)
	}
}

func TestEdit_RequiresAtLeastOneChange(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	sess := newSession(fs)

	_, err := sess.Edit(context.Background(), ops.EditRequest{
		List:   "Groceries",
		Target: resolve.Selector{Title: "Buy milk"},
	}, ops.Options{})
	var ae *ops.ArgumentError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ArgumentError, got %v", err)
	}
}

func TestEdit_TimeOnlyRequiresDueDate(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	sess := newSession(fs)

	_, err := sess.Edit(context.Background(), ops.EditRequest{
		List:   "Groceries",
		Target: resolve.Selector{Title: "Buy milk"},
		Time:   &ops.TimeOfDay{Hour: 10, Minute: 30},
	}, ops.Options{})
	var ae *ops.ArgumentError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ArgumentError for time without due date, got %v", err)
	}
}

func TestEdit_RenameVerifiesNewTitle(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	sess := newSession(fs)

	newTitle := "Buy oat milk"
	res, err := sess.Edit(context.Background(), ops.EditRequest{
		List:     "Groceries",
		Target:   resolve.Selector{Title: "Buy milk"},
		NewTitle: &newTitle,
	}, ops.Options{})
	if err != nil || !res.Success {
		t.Fatalf("edit: %+v, %v", res, err)
	}

	items := fs.ItemsIn("Groceries")
	if len(items) != 1 || items[0].Title != "Buy oat milk" {
		t.Errorf("rename not applied: %+v", items)
	}
}

func TestEdit_TimeOnAlreadyDatedItem(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{
		Title: "Buy milk",
		Due:   &store.DueDate{Year: 2026, Month: 3, Day: 7},
	})
	sess := newSession(fs)

	res, err := sess.Edit(context.Background(), ops.EditRequest{
		List:   "Groceries",
		Target: resolve.Selector{Title: "Buy milk"},
		Time:   &ops.TimeOfDay{Hour: 14, Minute: 30},
	}, ops.Options{})
	if err != nil || !res.Success {
		t.Fatalf("edit: %+v, %v", res, err)
	}

	due := fs.ItemsIn("Groceries")[0].Due
	if due == nil || !due.HasTime || due.Hour != 14 || due.Minute != 30 {
		t.Errorf("time not applied to existing due date: %+v", due)
	}
	if due.Year != 2026 || due.Day != 7 {
		t.Errorf("date must survive a time-only edit: %+v", due)
	}
}

func TestMove_CopyAndComplete(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Inbox")
	fs.AddList("Errands")
	fs.Seed("Inbox", store.Item{Title: "Return package", Notes: "UPS label in email"})
	sess := newSession(fs)

	res, err := sess.Move(context.Background(), ops.MoveRequest{
		Source: "Inbox",
		Target: "Errands",
		Item:   resolve.Selector{Title: "Return package"},
	}, ops.Options{})
	if err != nil || !res.Success {
		t.Fatalf("move: %+v, %v", res, err)
	}

	inbox := fs.ItemsIn("Inbox")
	if len(inbox) != 1 || !inbox[0].Completed {
		t.Errorf("source item should be completed: %+v", inbox)
	}
	errands := fs.ItemsIn("Errands")
	if len(errands) != 1 || errands[0].Completed || errands[0].Notes != "UPS label in email" {
		t.Errorf("target item wrong: %+v", errands)
	}
	if errands[0].ID == inbox[0].ID {
		t.Error("moved item must be a fresh item with its own id")
	}
}

func TestMove_TargetDedupHardFails(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Inbox")
	fs.AddList("Errands")
	fs.Seed("Inbox", store.Item{Title: "Return package"})
	fs.Seed("Errands", store.Item{Title: "Return package"})
	sess := newSession(fs)

	_, err := sess.Move(context.Background(), ops.MoveRequest{
		Source: "Inbox",
		Target: "Errands",
		Item:   resolve.Selector{Title: "Return package"},
	}, ops.Options{})
	var ae *ops.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
	// Nothing changed on either side.
	if len(fs.ItemsIn("Inbox")) != 1 || fs.ItemsIn("Inbox")[0].Completed {
		t.Error("source must be untouched after dedup refusal")
	}
	if len(fs.ItemsIn("Errands")) != 1 {
		t.Error("target must be untouched after dedup refusal")
	}
}

func TestMove_PartialFailureIsActionable(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Inbox")
	fs.AddList("Errands")
	seeded := fs.Seed("Inbox", store.Item{Title: "Return package"})
	sess := newSession(fs)

	// First save (create in target) succeeds, second save (complete in
	// source) fails.
	calls := 0
	fs.SaveHook = func(item *store.Item) error {
		calls++
		if item.ID == seeded.ID {
			return errors.New("sync conflict")
		}
		return nil
	}

	_, err := sess.Move(context.Background(), ops.MoveRequest{
		Source: "Inbox",
		Target: "Errands",
		Item:   resolve.Selector{Title: "Return package"},
	}, ops.Options{})
	var mi *ops.MoveIncompleteError
	if !errors.As(err, &mi) {
		t.Fatalf("expected MoveIncompleteError, got %v", err)
	}
	if len(fs.ItemsIn("Errands")) != 1 {
		t.Error("the created copy must remain in target")
	}
	if fs.ItemsIn("Inbox")[0].Completed {
		t.Error("source item must still be incomplete")
	}
}

func TestSetRecurrence_DoubleRecurrenceGuard(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Chores")
	fs.Seed("Chores", store.Item{Title: "Take out trash"})
	sess := newSession(fs)
	ctx := context.Background()

	res, err := sess.SetRecurrence(ctx, "Chores", resolve.Selector{Title: "Take out trash"},
		store.Recurrence{Frequency: store.Weekly, Interval: 1}, ops.Options{})
	if err != nil || !res.Success {
		t.Fatalf("first set-recurrence: %+v, %v", res, err)
	}

	_, err = sess.SetRecurrence(ctx, "Chores", resolve.Selector{Title: "Take out trash"},
		store.Recurrence{Frequency: store.Daily, Interval: 1}, ops.Options{})
	var dre *ops.DoubleRecurrenceError
	if !errors.As(err, &dre) {
		t.Fatalf("expected DoubleRecurrenceError, got %v", err)
	}

	// The rule set is unchanged: still exactly the original weekly rule.
	rules := fs.ItemsIn("Chores")[0].Recurrences
	if len(rules) != 1 || rules[0].Frequency != store.Weekly {
		t.Errorf("rule set must be unchanged, got %+v", rules)
	}
}

func TestSetRecurrence_InvalidInterval(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Chores")
	fs.Seed("Chores", store.Item{Title: "Take out trash"})
	sess := newSession(fs)

	_, err := sess.SetRecurrence(context.Background(), "Chores", resolve.Selector{Title: "Take out trash"},
		store.Recurrence{Frequency: store.Weekly, Interval: 0}, ops.Options{})
	var ae *ops.ArgumentError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ArgumentError, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	sess := newSession(fs)

	res, err := sess.Delete(context.Background(), "Groceries", resolve.Selector{Title: "Buy milk"}, ops.Options{})
	if err != nil || !res.Success {
		t.Fatalf("delete: %+v, %v", res, err)
	}
	if n := len(fs.ItemsIn("Groceries")); n != 0 {
		t.Errorf("expected empty list, got %d items", n)
	}
}

func TestDelete_LyingRemoveFailsVerification(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	fs.LieOnRemove = true
	sess := newSession(fs)

	_, err := sess.Delete(context.Background(), "Groceries", resolve.Selector{Title: "Buy milk"}, ops.Options{})
	var ve *ops.VerifyError
	if !errors.As(err, &ve) {
		t.Fatalf("expected VerifyError, got %v", err)
	}
}

// Dry-run must leave the store byte-for-byte identical for every mutating
// operation while still returning a success-shaped preview.
func TestDryRun_IsANoOpForEveryOperation(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.AddList("Inbox")
	fs.AddList("Errands")
	fs.Seed("Inbox", store.Item{
		Title: "Return package",
		Due:   &store.DueDate{Year: 2026, Month: 3, Day: 7},
	})
	sess := newSession(fs)
	ctx := context.Background()
	dry := ops.Options{DryRun: true}

	before := map[string][]store.Item{
		"Inbox":   fs.ItemsIn("Inbox"),
		"Errands": fs.ItemsIn("Errands"),
	}

	newTitle := "Return the package"
	runs := []struct {
		name string
		run  func() (ops.Result, error)
	}{
		{"add", func() (ops.Result, error) {
			return sess.Add(ctx, ops.AddRequest{List: "Inbox", Title: "Brand new"}, dry)
		}},
		{"complete", func() (ops.Result, error) {
			return sess.Complete(ctx, "Inbox", resolve.Selector{Title: "Return package"}, dry)
		}},
		{"edit", func() (ops.Result, error) {
			return sess.Edit(ctx, ops.EditRequest{List: "Inbox", Target: resolve.Selector{Title: "Return package"}, NewTitle: &newTitle}, dry)
		}},
		{"move", func() (ops.Result, error) {
			return sess.Move(ctx, ops.MoveRequest{Source: "Inbox", Target: "Errands", Item: resolve.Selector{Title: "Return package"}}, dry)
		}},
		{"set-recurrence", func() (ops.Result, error) {
			return sess.SetRecurrence(ctx, "Inbox", resolve.Selector{Title: "Return package"},
				store.Recurrence{Frequency: store.Daily, Interval: 1}, dry)
		}},
		{"delete", func() (ops.Result, error) {
			return sess.Delete(ctx, "Inbox", resolve.Selector{Title: "Return package"}, dry)
		}},
	}

	for _, tc := range runs {
		res, err := tc.run()
		if err != nil {
			t.Fatalf("%s dry-run: %v", tc.name, err)
		}
		if !res.Success || res.Message == "" {
			t.Errorf("%s dry-run should return a success-shaped preview, got %+v", tc.name, res)
		}
	}

	after := map[string][]store.Item{
		"Inbox":   fs.ItemsIn("Inbox"),
		"Errands": fs.ItemsIn("Errands"),
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("dry-run mutated the store:\nbefore: %+v\nafter: %+v", before, after)
	}
}
