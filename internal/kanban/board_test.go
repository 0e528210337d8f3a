package kanban

import (
	"errors"
	"testing"
	"time"

	"github.com/templui/goalflow/internal/model"
)

const testWeek = "2025-W35"

var testNow = time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC)

func newTestBoard(t *testing.T, goals ...model.Goal) *Board {
	t.Helper()
	for i := range goals {
		if goals[i].WeekKey == "" {
			goals[i].WeekKey = testWeek
		}
	}
	return New(testWeek, goals, WithClock(func() time.Time { return testNow }))
}

func ids(goals []model.Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = g.ID
	}
	return out
}

func assertColumn(t *testing.T, b *Board, status model.GoalStatus, want ...string) {
	t.Helper()
	got := b.Column(status)
	if len(got) != len(want) {
		t.Fatalf("%s: expected %v, got %v", status, want, ids(got))
	}
	for i, g := range got {
		if g.ID != want[i] {
			t.Fatalf("%s: expected %v, got %v", status, want, ids(got))
		}
		if g.Order != (i+1)*OrderStep {
			t.Fatalf("%s: expected %s at order %d, got %d", status, g.ID, (i+1)*OrderStep, g.Order)
		}
	}
}

func TestReorderWithinColumn(t *testing.T) {
	b := newTestBoard(t,
		model.Goal{ID: "x", Status: model.GoalStatusTodo, Order: 1000},
		model.Goal{ID: "y", Status: model.GoalStatusTodo, Order: 2000},
	)

	if err := b.Start("y", SizeHint{Width: 280, Height: 64}); err != nil {
		t.Fatalf("start: %v", err)
	}
	changed, err := b.Drop(OverGoal("x"))
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if len(changed) != 2 {
		t.Fatalf("expected 2 changed goals, got %d", len(changed))
	}
	if b.State() != StateCommitting {
		t.Fatalf("expected committing, got %s", b.State())
	}

	assertColumn(t, b, model.GoalStatusTodo, "y", "x")
	for _, g := range b.Goals() {
		if g.Status != model.GoalStatusTodo {
			t.Fatalf("expected %s to stay in todo, got %s", g.ID, g.Status)
		}
	}

	if err := b.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	confirmed := b.Confirmed()
	if confirmed[0].ID != "y" || confirmed[0].Order != 1000 {
		t.Fatalf("expected y confirmed at 1000, got %s at %d", confirmed[0].ID, confirmed[0].Order)
	}
}

func TestMoveIntoEmptyDoneColumn(t *testing.T) {
	b := newTestBoard(t, model.Goal{ID: "x", Status: model.GoalStatusTodo, Order: 1000})

	if err := b.Start("x", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	changed, err := b.Drop(OverColumn(model.GoalStatusDone))
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if len(changed) != 1 || changed[0].ID != "x" {
		t.Fatalf("expected only x changed, got %v", ids(changed))
	}

	assertColumn(t, b, model.GoalStatusTodo)
	assertColumn(t, b, model.GoalStatusDone, "x")

	x, _ := b.Goal("x")
	if x.CompletedAt == nil || !x.CompletedAt.Equal(testNow) {
		t.Fatalf("expected completedAt %v, got %v", testNow, x.CompletedAt)
	}
}

func TestLeavingDoneClearsCompletedAt(t *testing.T) {
	completed := testNow.Add(-48 * time.Hour)
	b := newTestBoard(t,
		model.Goal{ID: "a", Status: model.GoalStatusDone, Order: 1000, CompletedAt: &completed},
		model.Goal{ID: "b", Status: model.GoalStatusInProgress, Order: 1000},
	)

	if err := b.Start("a", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := b.Drop(OverGoal("b")); err != nil {
		t.Fatalf("drop: %v", err)
	}

	a, _ := b.Goal("a")
	if a.Status != model.GoalStatusInProgress {
		t.Fatalf("expected in-progress, got %s", a.Status)
	}
	if a.CompletedAt != nil {
		t.Fatalf("expected completedAt cleared, got %v", a.CompletedAt)
	}
	assertColumn(t, b, model.GoalStatusInProgress, "a", "b")
}

func TestReorderInsideDoneKeepsCompletedAt(t *testing.T) {
	completed := testNow.Add(-time.Hour)
	b := newTestBoard(t,
		model.Goal{ID: "a", Status: model.GoalStatusDone, Order: 1000, CompletedAt: &completed},
		model.Goal{ID: "b", Status: model.GoalStatusDone, Order: 2000, CompletedAt: &completed},
	)

	if err := b.Start("b", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := b.Drop(OverGoal("a")); err != nil {
		t.Fatalf("drop: %v", err)
	}

	moved, _ := b.Goal("b")
	if moved.CompletedAt == nil || !moved.CompletedAt.Equal(completed) {
		t.Fatalf("expected completedAt %v kept, got %v", completed, moved.CompletedAt)
	}
}

func TestHoverIsIdempotent(t *testing.T) {
	b := newTestBoard(t,
		model.Goal{ID: "a", Status: model.GoalStatusTodo, Order: 1000},
		model.Goal{ID: "b", Status: model.GoalStatusTodo, Order: 2000},
		model.Goal{ID: "c", Status: model.GoalStatusInProgress, Order: 1000},
	)

	if err := b.Start("a", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	for range 3 {
		if err := b.Hover(OverGoal("c")); err != nil {
			t.Fatalf("hover: %v", err)
		}
	}

	assertColumn(t, b, model.GoalStatusTodo, "b")
	assertColumn(t, b, model.GoalStatusInProgress, "a", "c")

	session, ok := b.Session()
	if !ok {
		t.Fatalf("expected an active session")
	}
	if session.Over.GoalID != "c" || session.Origin != model.GoalStatusTodo {
		t.Fatalf("unexpected session %+v", session)
	}

	t.Run("unresolvable target leaves preview", func(t *testing.T) {
		if err := b.Hover(OverGoal("missing")); err != nil {
			t.Fatalf("hover: %v", err)
		}
		assertColumn(t, b, model.GoalStatusInProgress, "a", "c")
	})

	t.Run("hover over self", func(t *testing.T) {
		if err := b.Hover(OverGoal("a")); err != nil {
			t.Fatalf("hover: %v", err)
		}
		assertColumn(t, b, model.GoalStatusTodo, "a", "b")
		assertColumn(t, b, model.GoalStatusInProgress, "c")
	})
}

func TestCancelRestoresSnapshot(t *testing.T) {
	b := newTestBoard(t,
		model.Goal{ID: "a", Status: model.GoalStatusTodo, Order: 1000},
		model.Goal{ID: "b", Status: model.GoalStatusTodo, Order: 2000},
	)

	if err := b.Start("b", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := b.Hover(OverColumn(model.GoalStatusDone)); err != nil {
		t.Fatalf("hover: %v", err)
	}
	assertColumn(t, b, model.GoalStatusDone, "b")

	if err := b.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if b.State() != StateIdle {
		t.Fatalf("expected idle, got %s", b.State())
	}
	assertColumn(t, b, model.GoalStatusTodo, "a", "b")
	assertColumn(t, b, model.GoalStatusDone)
}

func TestDropWithoutTargetCancels(t *testing.T) {
	b := newTestBoard(t, model.Goal{ID: "a", Status: model.GoalStatusTodo, Order: 1000})

	if err := b.Start("a", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err := b.Drop(Target{})
	if !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	if b.State() != StateIdle {
		t.Fatalf("expected idle, got %s", b.State())
	}
	assertColumn(t, b, model.GoalStatusTodo, "a")
}

func TestDropInPlaceHasNothingToPersist(t *testing.T) {
	b := newTestBoard(t,
		model.Goal{ID: "a", Status: model.GoalStatusTodo, Order: 1000},
		model.Goal{ID: "b", Status: model.GoalStatusTodo, Order: 2000},
	)

	if err := b.Start("b", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	changed, err := b.Drop(OverColumn(model.GoalStatusTodo))
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if len(changed) != 0 {
		t.Fatalf("expected no changes, got %v", ids(changed))
	}
	if b.State() != StateIdle {
		t.Fatalf("expected idle, got %s", b.State())
	}
}

func TestSessionTransitions(t *testing.T) {
	b := newTestBoard(t, model.Goal{ID: "a", Status: model.GoalStatusTodo, Order: 1000})

	if err := b.Hover(OverColumn(model.GoalStatusDone)); !errors.Is(err, ErrNoSession) {
		t.Fatalf("hover without session: expected ErrNoSession, got %v", err)
	}
	if err := b.Start("missing", SizeHint{}); !errors.Is(err, ErrUnknownGoal) {
		t.Fatalf("start unknown goal: expected ErrUnknownGoal, got %v", err)
	}
	if err := b.Start("a", SizeHint{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := b.Start("a", SizeHint{}); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("second start: expected ErrSessionActive, got %v", err)
	}
	if _, err := b.Drop(OverColumn(model.GoalStatusDone)); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := b.Load(nil); !errors.Is(err, ErrCommitPending) {
		t.Fatalf("load while committing: expected ErrCommitPending, got %v", err)
	}
	if err := b.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if err := b.Confirm(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("confirm after rollback: expected ErrNoSession, got %v", err)
	}
}

func TestNewDropsOtherWeeks(t *testing.T) {
	b := newTestBoard(t,
		model.Goal{ID: "a", Status: model.GoalStatusTodo, Order: 1000},
		model.Goal{ID: "b", Status: model.GoalStatusTodo, Order: 2000, WeekKey: "2025-W34"},
	)
	assertColumn(t, b, model.GoalStatusTodo, "a")
}
