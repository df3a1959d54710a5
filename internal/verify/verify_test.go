package verify_test

import (
	"context"
	"testing"
	"time"

	"remind/internal/store"
	"remind/internal/testutil"
	"remind/internal/verify"
)

func TestExists(t *testing.T) {
	fs := testutil.NewFakeStore()
	list := fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	now := time.Now()
	fs.Seed("Groceries", store.Item{Title: "Buy eggs", Completed: true, CompletionDate: &now})

	v := verify.New(fs)
	ctx := context.Background()

	if ok, err := v.Exists(ctx, list, "Buy milk"); err != nil || !ok {
		t.Errorf("Exists(Buy milk) = %v, %v", ok, err)
	}
	// A completed item does not count as existing.
	if ok, _ := v.Exists(ctx, list, "Buy eggs"); ok {
		t.Error("Exists should ignore completed items")
	}
	if ok, _ := v.Exists(ctx, list, "Buy bread"); ok {
		t.Error("Exists should be false for absent title")
	}
}

func TestCompleted(t *testing.T) {
	fs := testutil.NewFakeStore()
	list := fs.AddList("Groceries")
	fs.Seed("Groceries", store.Item{Title: "Buy milk"})
	now := time.Now()
	fs.Seed("Groceries", store.Item{Title: "Buy eggs", Completed: true, CompletionDate: &now})

	v := verify.New(fs)
	ctx := context.Background()

	if ok, err := v.Completed(ctx, list, "Buy eggs"); err != nil || !ok {
		t.Errorf("Completed(Buy eggs) = %v, %v", ok, err)
	}
	if ok, _ := v.Completed(ctx, list, "Buy milk"); ok {
		t.Error("Completed should be false for incomplete item")
	}
}

func TestGone_ScansCompletedItemsToo(t *testing.T) {
	fs := testutil.NewFakeStore()
	list := fs.AddList("Groceries")
	now := time.Now()
	fs.Seed("Groceries", store.Item{Title: "Buy eggs", Completed: true, CompletionDate: &now})

	v := verify.New(fs)
	ctx := context.Background()

	// Present but completed: still not gone.
	if ok, _ := v.Gone(ctx, list, "Buy eggs"); ok {
		t.Error("Gone must scan completed items")
	}
	if ok, err := v.Gone(ctx, list, "Buy milk"); err != nil || !ok {
		t.Errorf("Gone(absent) = %v, %v", ok, err)
	}
}

func TestRecurring(t *testing.T) {
	fs := testutil.NewFakeStore()
	list := fs.AddList("Chores")
	plain := fs.Seed("Chores", store.Item{Title: "Water plants"})
	recurring := fs.Seed("Chores", store.Item{
		Title:       "Take out trash",
		Recurrences: []store.Recurrence{{Frequency: store.Weekly, Interval: 1}},
	})

	v := verify.New(fs)
	ctx := context.Background()

	if ok, err := v.Recurring(ctx, list, recurring.ID); err != nil || !ok {
		t.Errorf("Recurring(recurring) = %v, %v", ok, err)
	}
	if ok, _ := v.Recurring(ctx, list, plain.ID); ok {
		t.Error("Recurring should be false for item without rules")
	}
}

func TestVerifierAlwaysRefetches(t *testing.T) {
	fs := testutil.NewFakeStore()
	list := fs.AddList("Groceries")
	v := verify.New(fs)
	ctx := context.Background()

	before := fs.FetchCalls
	_, _ = v.Exists(ctx, list, "x")
	_, _ = v.Gone(ctx, list, "x")
	if fs.FetchCalls != before+2 {
		t.Errorf("expected 2 fetches, got %d", fs.FetchCalls-before)
	}
}
