package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalflow/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	Goals(ctx context.Context, userID, weekKey string) ([]model.Goal, error)
	Partition(ctx context.Context, userID, weekKey string, status model.GoalStatus) ([]model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	UpdatePlacements(ctx context.Context, userID string, placements []model.Placement) error
	Delete(ctx context.Context, userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, status, week_key, sort_order, due_date, completed_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Status,
		goal.WeekKey,
		goal.Order,
		goal.DueDate,
		goal.CompletedAt,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Goals lists a user's goals in board order. An empty weekKey lists every
// week; callers order the weeks.
func (r *goalRepository) Goals(ctx context.Context, userID, weekKey string) ([]model.Goal, error) {
	goals := []model.Goal{}

	query := `SELECT * FROM goals WHERE user_id = $1`
	args := []any{userID}
	if weekKey != "" {
		query += ` AND week_key = $2`
		args = append(args, weekKey)
	}
	query += ` ORDER BY CASE status WHEN 'todo' THEN 0 WHEN 'in-progress' THEN 1 ELSE 2 END,
	          sort_order ASC, created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Partition(ctx context.Context, userID, weekKey string, status model.GoalStatus) ([]model.Goal, error) {
	goals := []model.Goal{}
	query := `SELECT * FROM goals WHERE user_id = $1 AND week_key = $2 AND status = $3
	          ORDER BY sort_order ASC, created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, userID, weekKey, status)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, status = $3, sort_order = $4, due_date = $5, completed_at = $6, updated_at = $7
	          WHERE id = $8 AND user_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		goal.Title,
		goal.Description,
		goal.Status,
		goal.Order,
		goal.DueDate,
		goal.CompletedAt,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// UpdatePlacements writes the status and order of several goals in one
// transaction. A goal that no longer exists aborts the whole batch.
func (r *goalRepository) UpdatePlacements(ctx context.Context, userID string, placements []model.Placement) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE goals SET status = $1, sort_order = $2, completed_at = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`
	now := time.Now().UTC()

	for _, p := range placements {
		result, err := tx.ExecContext(ctx, query, p.Status, p.Order, p.CompletedAt, now, p.GoalID, userID)
		if err != nil {
			return fmt.Errorf("failed to update placement of %s: %w", p.GoalID, err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return ErrGoalNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}

	return nil
}

func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
