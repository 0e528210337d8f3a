package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalflow/internal/model"
)

type ReportRepository interface {
	CreatedIn(ctx context.Context, userID string, r model.DateRange) ([]model.Goal, error)
	CompletedIn(ctx context.Context, userID string, r model.DateRange) ([]model.Goal, error)
	CountOverdue(ctx context.Context, userID string, now time.Time) (int, error)
	StatusCounts(ctx context.Context, userID string) ([]model.StatusCount, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

// rangeClause appends bounds on column to a query whose first argument is the user id.
func rangeClause(column string, r model.DateRange, args []any) (string, []any) {
	var clause string
	if r.From != nil {
		args = append(args, r.From.UTC())
		clause += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if r.To != nil {
		args = append(args, r.To.UTC())
		clause += fmt.Sprintf(" AND %s < $%d", column, len(args))
	}
	return clause, args
}

func (r *reportRepository) CreatedIn(ctx context.Context, userID string, dr model.DateRange) ([]model.Goal, error) {
	goals := []model.Goal{}
	clause, args := rangeClause("created_at", dr, []any{userID})
	query := `SELECT * FROM goals WHERE user_id = $1` + clause

	if err := r.db.SelectContext(ctx, &goals, query, args...); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *reportRepository) CompletedIn(ctx context.Context, userID string, dr model.DateRange) ([]model.Goal, error) {
	goals := []model.Goal{}
	clause, args := rangeClause("completed_at", dr, []any{userID})
	query := `SELECT * FROM goals WHERE user_id = $1 AND completed_at IS NOT NULL` + clause

	if err := r.db.SelectContext(ctx, &goals, query, args...); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *reportRepository) CountOverdue(ctx context.Context, userID string, now time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND due_date IS NOT NULL AND due_date < $2 AND status <> $3`
	err := r.db.GetContext(ctx, &count, query, userID, now.UTC(), model.GoalStatusDone)
	return count, err
}

func (r *reportRepository) StatusCounts(ctx context.Context, userID string) ([]model.StatusCount, error) {
	counts := []model.StatusCount{}
	query := `SELECT status, COUNT(*) AS count FROM goals WHERE user_id = $1 GROUP BY status ORDER BY status`

	if err := r.db.SelectContext(ctx, &counts, query, userID); err != nil {
		return nil, err
	}
	return counts, nil
}
