package kanban

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/templui/goalflow/internal/model"
)

type fakeUpdater struct {
	mu      sync.Mutex
	fail    map[string]bool
	patches map[string]model.GoalPatch
}

func newFakeUpdater(failing ...string) *fakeUpdater {
	f := &fakeUpdater{fail: map[string]bool{}, patches: map[string]model.GoalPatch{}}
	for _, id := range failing {
		f.fail[id] = true
	}
	return f
}

func (f *fakeUpdater) UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[id] {
		return errors.New("connection reset")
	}
	f.patches[id] = patch
	return nil
}

func TestCommitPersistsStatusAndOrder(t *testing.T) {
	b := newTestBoard(t,
		model.Goal{ID: "x", Status: model.GoalStatusTodo, Order: 1000},
		model.Goal{ID: "y", Status: model.GoalStatusTodo, Order: 2000},
	)
	updater := newFakeUpdater()

	if err := b.Start("y", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := NewSyncer(updater).Commit(context.Background(), b, OverGoal("x")); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if len(updater.patches) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updater.patches))
	}
	y := updater.patches["y"]
	if y.Order == nil || *y.Order != 1000 || y.Status == nil || *y.Status != model.GoalStatusTodo {
		t.Fatalf("unexpected patch for y: %+v", y)
	}
	if y.Title != nil || y.Description != nil || y.DueDate != nil || y.ClearDueDate {
		t.Fatalf("expected only status and order in patch, got %+v", y)
	}
	if b.State() != StateIdle {
		t.Fatalf("expected idle, got %s", b.State())
	}
	if b.Confirmed()[0].ID != "y" {
		t.Fatalf("expected confirmed state to start with y")
	}
}

func TestCommitFailureRollsBackWholeSet(t *testing.T) {
	b := newTestBoard(t,
		model.Goal{ID: "x", Status: model.GoalStatusTodo, Order: 1000},
		model.Goal{ID: "y", Status: model.GoalStatusTodo, Order: 2000},
	)
	updater := newFakeUpdater("x")

	if err := b.Start("y", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	err := NewSyncer(updater).Commit(context.Background(), b, OverGoal("x"))

	var commitErr *CommitError
	if !errors.As(err, &commitErr) {
		t.Fatalf("expected CommitError, got %v", err)
	}
	if len(commitErr.Failed) != 1 || commitErr.Failed[0] != "x" {
		t.Fatalf("expected x reported as failed, got %v", commitErr.Failed)
	}
	if commitErr.Total != 2 {
		t.Fatalf("expected total 2, got %d", commitErr.Total)
	}

	if b.State() != StateIdle {
		t.Fatalf("expected idle, got %s", b.State())
	}
	todo := b.Column(model.GoalStatusTodo)
	if todo[0].ID != "x" || todo[0].Order != 1000 || todo[1].ID != "y" || todo[1].Order != 2000 {
		t.Fatalf("expected pre-drag order x, y; got %v", ids(todo))
	}
}
