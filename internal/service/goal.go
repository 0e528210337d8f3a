package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/goalflow/internal/kanban"
	"github.com/templui/goalflow/internal/markdown"
	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/repository"
	"github.com/templui/goalflow/internal/validation"
	"github.com/templui/goalflow/internal/week"
)

const (
	msgInvalidID       = "Invalid id"
	msgNothingToUpdate = "Nothing to update"
	msgCreateRequired  = "title and weekKey are required"
)

type GoalService struct {
	repo     repository.GoalRepository
	markdown *markdown.Parser
	now      func() time.Time
}

func NewGoalService(repo repository.GoalRepository, md *markdown.Parser) *GoalService {
	return &GoalService{
		repo:     repo,
		markdown: md,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new goal at the bottom of the week's todo column.
func (s *GoalService) Create(ctx context.Context, userID string, draft model.GoalDraft) (*model.Goal, error) {
	title := strings.TrimSpace(draft.Title)
	weekKey := strings.TrimSpace(draft.WeekKey)
	if title == "" || weekKey == "" {
		return nil, invalid(msgCreateRequired)
	}
	if err := validation.ValidateTitle(title); err != nil {
		return nil, invalid(err.Error())
	}

	partition, err := s.repo.Partition(ctx, userID, weekKey, model.GoalStatusTodo)
	if err != nil {
		return nil, fmt.Errorf("failed to load todo column: %w", err)
	}

	now := s.now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(draft.Description),
		Status:      model.GoalStatusTodo,
		WeekKey:     weekKey,
		Order:       kanban.AppendOrder(partition),
		DueDate:     draft.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.render(goal)
	slog.Info("goal created", "goal_id", goal.ID, "user_id", userID, "week_key", weekKey, "order", goal.Order)
	return goal, nil
}

func (s *GoalService) Goals(ctx context.Context, userID, weekKey string) ([]model.Goal, error) {
	weekKey = strings.TrimSpace(weekKey)
	goals, err := s.repo.Goals(ctx, userID, weekKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	// Week keys are not zero-padded, so newest-first is decided here.
	if weekKey == "" {
		slices.SortStableFunc(goals, func(a, b model.Goal) int {
			switch {
			case week.Less(b.WeekKey, a.WeekKey):
				return -1
			case week.Less(a.WeekKey, b.WeekKey):
				return 1
			}
			return 0
		})
	}
	for i := range goals {
		s.render(&goals[i])
	}
	return goals, nil
}

func (s *GoalService) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	if err := validation.ValidateGoalID(goalID); err != nil {
		return nil, invalid(msgInvalidID)
	}

	goal, err := s.repo.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	s.render(goal)
	return goal, nil
}

// Update applies a partial update. Input is validated before the store is read.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, patch model.GoalPatch) (*model.Goal, error) {
	if err := validation.ValidateGoalID(goalID); err != nil {
		return nil, invalid(msgInvalidID)
	}
	if patch.IsEmpty() {
		return nil, invalid(msgNothingToUpdate)
	}
	if patch.Title != nil {
		if err := validation.ValidateTitle(*patch.Title); err != nil {
			return nil, invalid(err.Error())
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, invalid(fmt.Sprintf("unknown status %q", *patch.Status))
	}
	if patch.Order != nil && *patch.Order < 0 {
		return nil, invalid("order must not be negative")
	}

	goal, err := s.repo.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if patch.Title != nil {
		goal.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		goal.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Order != nil {
		goal.Order = *patch.Order
	}
	if patch.Status != nil {
		switch {
		case *patch.Status != model.GoalStatusDone:
			goal.CompletedAt = nil
		case !goal.IsDone() || goal.CompletedAt == nil:
			goal.CompletedAt = &now
		}
		goal.Status = *patch.Status
	}
	switch {
	case patch.ClearDueDate:
		goal.DueDate = nil
	case patch.DueDate != nil:
		goal.DueDate = patch.DueDate
	}
	goal.UpdatedAt = now

	err = s.repo.Update(ctx, goal)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.render(goal)
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	if err := validation.ValidateGoalID(goalID); err != nil {
		return invalid(msgInvalidID)
	}

	err := s.repo.Delete(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	slog.Info("goal deleted", "goal_id", goalID, "user_id", userID)
	return nil
}

// Move drops a goal on target and persists every renumbered goal of the
// touched columns in one transaction. It returns the goal's week in board order.
func (s *GoalService) Move(ctx context.Context, userID, goalID string, target kanban.Target) ([]model.Goal, error) {
	if err := validation.ValidateGoalID(goalID); err != nil {
		return nil, invalid(msgInvalidID)
	}
	if target.IsZero() {
		return nil, invalid("overId or status is required")
	}
	if target.GoalID != "" {
		if err := validation.ValidateGoalID(target.GoalID); err != nil {
			return nil, invalid("Invalid overId")
		}
	}
	if target.Status != "" && !target.Status.Valid() {
		return nil, invalid(fmt.Sprintf("unknown status %q", target.Status))
	}

	goal, err := s.repo.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.Goals(ctx, userID, goal.WeekKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load week: %w", err)
	}

	board := kanban.New(goal.WeekKey, goals, kanban.WithClock(s.now))
	if err := board.Start(goal.ID, kanban.SizeHint{}); err != nil {
		return nil, fmt.Errorf("failed to start move: %w", err)
	}

	changed, err := board.Drop(target)
	if errors.Is(err, kanban.ErrNoTarget) {
		return nil, invalid("drop target not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to place goal: %w", err)
	}

	if len(changed) > 0 {
		placements := make([]model.Placement, len(changed))
		for i, g := range changed {
			placements[i] = model.Placement{
				GoalID:      g.ID,
				Status:      g.Status,
				Order:       g.Order,
				CompletedAt: g.CompletedAt,
			}
		}

		if err := s.repo.UpdatePlacements(ctx, userID, placements); err != nil {
			_ = board.Rollback()
			if errors.Is(err, repository.ErrGoalNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to move goal: %w", err)
		}
		if err := board.Confirm(); err != nil {
			return nil, err
		}
		slog.Info("goal moved", "goal_id", goalID, "user_id", userID, "changed", len(changed))
	}

	goals = board.Goals()
	for i := range goals {
		s.render(&goals[i])
	}
	return goals, nil
}

func (s *GoalService) render(goal *model.Goal) {
	if s.markdown == nil || goal.Description == "" {
		return
	}
	html, err := s.markdown.Render(goal.Description)
	if err != nil {
		slog.Warn("failed to render goal description", "error", err, "goal_id", goal.ID)
		return
	}
	goal.DescriptionHTML = html
}
