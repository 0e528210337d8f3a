package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/repository"
	"github.com/templui/goalflow/internal/week"
)

type ReportService struct {
	repo repository.ReportRepository
	now  func() time.Time
}

func NewReportService(repo repository.ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// ParseRange reads optional from/to query values.
func ParseRange(from, to string) (model.DateRange, error) {
	var r model.DateRange
	if from != "" {
		t, err := week.ParseDate(from)
		if err != nil {
			return r, invalid("invalid from date")
		}
		r.From = &t
	}
	if to != "" {
		t, err := week.ParseDate(to)
		if err != nil {
			return r, invalid("invalid to date")
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return r, invalid("from must be before to")
	}
	return r, nil
}

// Summary aggregates a user's goals. Created and completed counts honor the
// range; overdue and by-status counts describe the board as it is now.
func (s *ReportService) Summary(ctx context.Context, userID string, r model.DateRange) (*model.Summary, error) {
	var (
		created   []model.Goal
		completed []model.Goal
		overdue   int
		byStatus  []model.StatusCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		created, err = s.repo.CreatedIn(gctx, userID, r)
		return err
	})
	g.Go(func() (err error) {
		completed, err = s.repo.CompletedIn(gctx, userID, r)
		return err
	})
	g.Go(func() (err error) {
		overdue, err = s.repo.CountOverdue(gctx, userID, s.now())
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.repo.StatusCounts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate report: %w", err)
	}

	totals := model.ReportTotals{
		Created:   len(created),
		Completed: len(completed),
		Overdue:   overdue,
	}
	if totals.Created > 0 {
		totals.CompletionRate = int(math.Round(float64(totals.Completed) / float64(totals.Created) * 100))
	}
	totals.AvgCycleDays = avgCycleDays(completed)

	return &model.Summary{
		Totals:   totals,
		ByStatus: byStatus,
		Trend:    trend(created, completed),
	}, nil
}

func avgCycleDays(completed []model.Goal) *float64 {
	var total float64
	var n int
	for _, g := range completed {
		if g.CompletedAt == nil {
			continue
		}
		total += g.CompletedAt.Sub(g.CreatedAt).Hours() / 24
		n++
	}
	if n == 0 {
		return nil
	}
	avg := math.Round(total/float64(n)*10) / 10
	return &avg
}

// trend buckets created goals by their week key and completed goals by the
// ISO week of their completion, sorted chronologically.
func trend(created, completed []model.Goal) []model.WeekTrend {
	byWeek := map[string]*model.WeekTrend{}
	bucket := func(key string) *model.WeekTrend {
		t, ok := byWeek[key]
		if !ok {
			t = &model.WeekTrend{WeekKey: key}
			byWeek[key] = t
		}
		return t
	}

	for _, g := range created {
		bucket(g.WeekKey).Created++
	}
	for _, g := range completed {
		if g.CompletedAt != nil {
			bucket(week.Key(g.CompletedAt.UTC())).Completed++
		}
	}

	out := make([]model.WeekTrend, 0, len(byWeek))
	for _, t := range byWeek {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b model.WeekTrend) int {
		switch {
		case week.Less(a.WeekKey, b.WeekKey):
			return -1
		case week.Less(b.WeekKey, a.WeekKey):
			return 1
		}
		return 0
	})
	return out
}
