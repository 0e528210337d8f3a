package service

import (
	"context"
	"testing"
	"time"

	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/repository"
)

func TestSummary(t *testing.T) {
	goals, conn := newTestGoalService(t)
	createUser(t, conn, "u1")
	ctx := context.Background()

	reports := NewReportService(repository.NewReportRepository(conn))
	reports.now = func() time.Time { return testNow.Add(72 * time.Hour) }

	a := mustCreate(t, goals, "u1", "A")
	b := mustCreate(t, goals, "u1", "B")
	mustCreate(t, goals, "u1", "C")

	due := testNow.Add(24 * time.Hour)
	if _, err := goals.Update(ctx, "u1", b.ID, model.GoalPatch{DueDate: &due}); err != nil {
		t.Fatalf("set due date: %v", err)
	}

	// complete A 36 hours after creation
	goals.now = func() time.Time { return testNow.Add(36 * time.Hour) }
	done := model.GoalStatusDone
	if _, err := goals.Update(ctx, "u1", a.ID, model.GoalPatch{Status: &done}); err != nil {
		t.Fatalf("complete goal: %v", err)
	}

	summary, err := reports.Summary(ctx, "u1", model.DateRange{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	totals := summary.Totals
	if totals.Created != 3 || totals.Completed != 1 || totals.Overdue != 1 {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if totals.CompletionRate != 33 {
		t.Fatalf("expected completion rate 33, got %d", totals.CompletionRate)
	}
	if totals.AvgCycleDays == nil || *totals.AvgCycleDays != 1.5 {
		t.Fatalf("expected avg cycle 1.5 days, got %v", totals.AvgCycleDays)
	}

	counts := map[model.GoalStatus]int{}
	for _, c := range summary.ByStatus {
		counts[c.Status] = c.Count
	}
	if counts[model.GoalStatusTodo] != 2 || counts[model.GoalStatusDone] != 1 {
		t.Fatalf("unexpected status counts %v", counts)
	}

	if len(summary.Trend) != 1 {
		t.Fatalf("expected one trend bucket, got %+v", summary.Trend)
	}
	if summary.Trend[0].WeekKey != testWeek || summary.Trend[0].Created != 3 || summary.Trend[0].Completed != 1 {
		t.Fatalf("unexpected trend %+v", summary.Trend[0])
	}

	t.Run("range excludes older goals", func(t *testing.T) {
		r, err := ParseRange("2025-08-28", "")
		if err != nil {
			t.Fatalf("parse range: %v", err)
		}
		summary, err := reports.Summary(ctx, "u1", r)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if summary.Totals.Created != 0 || summary.Totals.Completed != 1 {
			t.Fatalf("unexpected totals %+v", summary.Totals)
		}
		if summary.Totals.CompletionRate != 0 {
			t.Fatalf("expected 0 completion rate with nothing created, got %d", summary.Totals.CompletionRate)
		}
	})
}

func TestParseRange(t *testing.T) {
	if _, err := ParseRange("yesterday", ""); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ParseRange("2025-09-01", "2025-08-01"); !IsValidation(err) {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
	r, err := ParseRange("", "2025-09-01")
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	if r.From != nil || r.To == nil {
		t.Fatalf("expected open start, got %+v", r)
	}
}
