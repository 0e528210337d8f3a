package kanban

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/templui/goalflow/internal/model"
)

// Updater applies a partial update to one goal in the store.
type Updater interface {
	UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) error
}

// CommitError reports which goals failed to persist during a commit.
type CommitError struct {
	Failed []string
	Total  int
	Err    error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("persist %d of %d goals: %v", len(e.Failed), e.Total, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// Syncer pushes the changed set of a drop to the store.
type Syncer struct {
	updater Updater
	limit   int
}

func NewSyncer(updater Updater) *Syncer {
	return &Syncer{updater: updater, limit: 8}
}

// Persist sends one status+order update per goal, concurrently. Every
// request runs to completion; any failure is reported as a *CommitError.
func (s *Syncer) Persist(ctx context.Context, changed []model.Goal) error {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed []string
		errs   []error
	)
	g.SetLimit(s.limit)

	for _, goal := range changed {
		status := goal.Status
		order := goal.Order
		patch := model.GoalPatch{Status: &status, Order: &order}
		g.Go(func() error {
			if err := s.updater.UpdateGoal(ctx, goal.ID, patch); err != nil {
				mu.Lock()
				failed = append(failed, goal.ID)
				errs = append(errs, fmt.Errorf("goal %s: %w", goal.ID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) > 0 {
		slog.Warn("reorder persist failed", "failed", len(failed), "total", len(changed))
		return &CommitError{Failed: failed, Total: len(changed), Err: errors.Join(errs...)}
	}
	return nil
}

// Commit drops the dragged goal on target and persists the result, rolling
// the board back if any update fails.
func (s *Syncer) Commit(ctx context.Context, board *Board, target Target) error {
	changed, err := board.Drop(target)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}

	if err := s.Persist(ctx, changed); err != nil {
		if rbErr := board.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return board.Confirm()
}
