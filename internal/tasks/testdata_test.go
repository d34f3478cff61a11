package tasks

import (
	"context"
	"errors"
	"sync"
	"time"

	"pet-care-tasks/internal/ports/remote"
)

// -------------------------
// Helpers compartidos
// -------------------------

var testNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func ts(s string) *remote.Timestamp {
	v := remote.Timestamp(s)
	return &v
}

func strPtr(s string) *string { return &s }

func rem(id string, status remote.Status, scheduledAt string) remote.Reminder {
	r := remote.Reminder{ID: id, Title: "task " + id, Status: status}
	if scheduledAt != "" {
		r.ScheduledAt = ts(scheduledAt)
	}
	return r
}

func ids(views []TaskView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// -------------------------
// Gateway fake (in-memory)
// -------------------------

var errFakeNotFound = errors.New("fake: not found")

type fakeGateway struct {
	mu    sync.Mutex
	items []remote.Reminder

	fetchErr    error
	completeErr error
	updateErr   error

	// onRemote corre dentro de Complete/UpdateStatus, antes de responder.
	onRemote func(id string)

	fetches int
	calls   []string
}

func newFakeGateway(items ...remote.Reminder) *fakeGateway {
	return &fakeGateway{items: append([]remote.Reminder(nil), items...)}
}

func (g *fakeGateway) FetchToday(ctx context.Context) ([]remote.Reminder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetches++
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return append([]remote.Reminder(nil), g.items...), nil
}

func (g *fakeGateway) Complete(ctx context.Context, id string) (remote.Reminder, error) {
	return g.setStatus("complete", id, remote.StatusCompleted, g.completeErr)
}

func (g *fakeGateway) UpdateStatus(ctx context.Context, id string, status remote.Status) (remote.Reminder, error) {
	return g.setStatus("update", id, status, g.updateErr)
}

func (g *fakeGateway) setStatus(op, id string, status remote.Status, failWith error) (remote.Reminder, error) {
	if g.onRemote != nil {
		g.onRemote(id)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, op+":"+id)
	if failWith != nil {
		return remote.Reminder{}, failWith
	}
	for i := range g.items {
		if g.items[i].ID == id {
			g.items[i].Status = status
			return g.items[i], nil
		}
	}
	return remote.Reminder{}, errFakeNotFound
}

func (g *fakeGateway) Create(ctx context.Context, petID string, in remote.CreateReminderInput) (remote.Reminder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "create:"+petID)
	r := remote.Reminder{
		ID:          "new-" + in.Title,
		Title:       in.Title,
		PetID:       strPtr(petID),
		Status:      remote.StatusPending,
		ScheduledAt: in.ScheduledAt,
		Priority:    in.Priority,
		Tags:        in.Tags,
	}
	g.items = append(g.items, r)
	return r, nil
}

func (g *fakeGateway) setFetchErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchErr = err
}

func (g *fakeGateway) remoteCalls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}
