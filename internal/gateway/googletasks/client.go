// Package googletasks implements the store.Store interface over the Google
// Tasks API.
package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"remind/internal/config"
	"remind/internal/credentials"
	"remind/internal/store"
)

const (
	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// Origin tags lists and items coming from this backend.
	Origin = "google"

	// OAuth scope for Google Tasks
	tasksScope = "https://www.googleapis.com/auth/tasks"
)

// Client implements store.Store using the Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a Google Tasks client. It requires oauth_client.json and a
// stored token from a prior login; failures of either are authorization
// failures.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("%w: missing oauth_client.json (see: remind help)", store.ErrAccessDenied)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, tasksScope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid oauth_client.json", store.ErrAccessDenied)
	}

	token, err := credentials.LoadToken(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v (run: remind login)", store.ErrAccessDenied, err)
	}

	// Token source auto-refreshes with the stored refresh token.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// Lists returns all task lists in API order.
func (c *Client) Lists(ctx context.Context) ([]store.List, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []store.List
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			result = append(result, store.List{
				ID:     list.Id,
				Name:   list.Title,
				Origin: Origin,
			})
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// FindList finds a list by display name (case-insensitive, trimmed). Display
// names are treated as unique; the first match wins.
func (c *Client) FindList(ctx context.Context, name string) (store.List, error) {
	want := strings.ToLower(strings.TrimSpace(name))

	lists, err := c.Lists(ctx)
	if err != nil {
		return store.List{}, err
	}

	var available []string
	for _, list := range lists {
		if strings.ToLower(strings.TrimSpace(list.Name)) == want {
			return list, nil
		}
		available = append(available, list.Name)
	}
	return store.List{}, &store.ListNotFoundError{Name: strings.TrimSpace(name), Available: available}
}

// FetchItems returns a fresh snapshot of every item, complete and
// incomplete, in the given lists. Nothing is cached here.
func (c *Client) FetchItems(ctx context.Context, lists ...store.List) (store.Snapshot, error) {
	var snap store.Snapshot
	for _, list := range lists {
		items, err := c.fetchList(ctx, list)
		if err != nil {
			return nil, err
		}
		snap = append(snap, items...)
	}
	return snap, nil
}

func (c *Client) fetchList(ctx context.Context, list store.List) ([]store.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []store.Item
	err := c.svc.Tasks.List(list.ID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, task := range resp.Items {
				result = append(result, decodeTask(task, list))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// Save persists an item. An empty ID inserts and fills in the assigned ID;
// otherwise the stored task is replaced wholesale.
func (c *Client) Save(ctx context.Context, item *store.Item) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	task := encodeTask(item)
	if item.ID == "" {
		created, err := c.svc.Tasks.Insert(item.ListID, task).Context(ctx).Do()
		if err != nil {
			return wrapError(err)
		}
		item.ID = created.Id
		return nil
	}

	task.Id = item.ID
	if _, err := c.svc.Tasks.Update(item.ListID, item.ID, task).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// Remove deletes an item.
func (c *Client) Remove(ctx context.Context, item *store.Item) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(item.ListID, item.ID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// encodeTask maps an item onto the wire representation. The API keeps only
// the calendar date of Due; time of day, priority and recurrence ride in the
// notes trailer.
func encodeTask(item *store.Item) *tasks.Task {
	meta := itemMeta{
		Priority:    item.Priority,
		Recurrences: item.Recurrences,
	}
	task := &tasks.Task{
		Title: item.Title,
	}
	if item.Due != nil {
		task.Due = time.Date(item.Due.Year, item.Due.Month, item.Due.Day, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
		if item.Due.HasTime {
			meta.Hour, meta.Minute, meta.HasTime = item.Due.Hour, item.Due.Minute, true
		}
	}
	task.Notes = encodeNotes(item.Notes, meta)
	if item.Completed {
		task.Status = "completed"
		if item.CompletionDate != nil {
			task.Completed = ptr(item.CompletionDate.UTC().Format(time.RFC3339))
		}
	} else {
		task.Status = "needsAction"
	}
	return task
}

func decodeTask(task *tasks.Task, list store.List) store.Item {
	body, meta := decodeNotes(task.Notes)
	item := store.Item{
		ID:          task.Id,
		Title:       task.Title,
		Notes:       body,
		Completed:   task.Status == "completed",
		Priority:    meta.Priority,
		Recurrences: meta.Recurrences,
		ListID:      list.ID,
		ListName:    list.Name,
	}
	if item.Priority == "" {
		item.Priority = store.PriorityNone
	}
	if task.Due != "" {
		if t, err := time.Parse(time.RFC3339, task.Due); err == nil {
			due := &store.DueDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
			if meta.HasTime {
				due.Hour, due.Minute, due.HasTime = meta.Hour, meta.Minute, true
			}
			item.Due = due
		}
	}
	if task.Completed != nil {
		if t, err := time.Parse(time.RFC3339, *task.Completed); err == nil {
			item.CompletionDate = &t
		}
	}
	return item
}

func ptr(s string) *string { return &s }

// wrapError maps API errors onto the store error vocabulary.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("%w: token expired or revoked (run: remind login)", store.ErrAccessDenied)
	}

	return err
}
