package kanban

import (
	"testing"
	"time"

	"github.com/templui/goalflow/internal/model"
)

func TestNormalize(t *testing.T) {
	in := []model.Goal{
		{ID: "a", Order: 7},
		{ID: "b", Order: 7},
		{ID: "c", Order: 3500},
	}

	out := Normalize(in)
	for i, g := range out {
		want := (i + 1) * OrderStep
		if g.Order != want {
			t.Fatalf("goal %s: expected order %d, got %d", g.ID, want, g.Order)
		}
	}
	if out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Fatalf("expected input sequence preserved, got %s %s %s", out[0].ID, out[1].ID, out[2].ID)
	}
	if in[0].Order != 7 {
		t.Fatalf("expected input untouched, got order %d", in[0].Order)
	}

	t.Run("empty", func(t *testing.T) {
		if got := Normalize(nil); len(got) != 0 {
			t.Fatalf("expected empty result, got %d goals", len(got))
		}
	})
}

func TestAppendOrder(t *testing.T) {
	if got := AppendOrder(nil); got != OrderStep {
		t.Fatalf("expected %d for empty partition, got %d", OrderStep, got)
	}

	partition := []model.Goal{{Order: 3000}, {Order: 1000}, {Order: 2500}}
	if got := AppendOrder(partition); got != 4000 {
		t.Fatalf("expected 4000, got %d", got)
	}
}

func TestPartitionSortsNewestFirstOnTies(t *testing.T) {
	base := time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC)
	goals := []model.Goal{
		{ID: "old", Status: model.GoalStatusTodo, Order: 1000, CreatedAt: base},
		{ID: "done", Status: model.GoalStatusDone, Order: 500, CreatedAt: base},
		{ID: "new", Status: model.GoalStatusTodo, Order: 1000, CreatedAt: base.Add(time.Hour)},
		{ID: "first", Status: model.GoalStatusTodo, Order: 10, CreatedAt: base},
	}

	todo := Partition(goals, model.GoalStatusTodo)
	want := []string{"first", "new", "old"}
	if len(todo) != len(want) {
		t.Fatalf("expected %d goals, got %d", len(want), len(todo))
	}
	for i, id := range want {
		if todo[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, todo[i].ID)
		}
	}
}
