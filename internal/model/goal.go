package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type GoalStatus string

const (
	GoalStatusTodo       GoalStatus = "todo"
	GoalStatusInProgress GoalStatus = "in-progress"
	GoalStatusDone       GoalStatus = "done"
)

// GoalStatuses lists the board columns in display order.
var GoalStatuses = []GoalStatus{GoalStatusTodo, GoalStatusInProgress, GoalStatusDone}

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusTodo, GoalStatusInProgress, GoalStatusDone:
		return true
	}
	return false
}

// Label returns the column heading, e.g. "In Progress".
func (s GoalStatus) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "-", " "))
}

type Goal struct {
	ID          string     `db:"id" json:"_id"`
	UserID      string     `db:"user_id" json:"-"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Status      GoalStatus `db:"status" json:"status"`
	WeekKey     string     `db:"week_key" json:"weekKey"`
	Order       int        `db:"sort_order" json:"order"`
	DueDate     *time.Time `db:"due_date" json:"dueDate,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`

	// Computed fields (not in database)
	DescriptionHTML string `db:"-" json:"descriptionHtml,omitempty"`
}

func (g *Goal) IsDone() bool {
	return g.Status == GoalStatusDone
}

// IsOverdue reports whether the goal has a due date in the past and is not done.
func (g *Goal) IsOverdue(now time.Time) bool {
	return g.DueDate != nil && g.DueDate.Before(now) && !g.IsDone()
}

// GoalDraft holds the fields accepted when creating a goal.
type GoalDraft struct {
	Title       string
	Description string
	WeekKey     string
	DueDate     *time.Time
}

// GoalPatch is a sparse update. Nil pointers are left untouched.
// ClearDueDate removes the stored due date and wins over DueDate.
type GoalPatch struct {
	Title        *string
	Description  *string
	Status       *GoalStatus
	Order        *int
	DueDate      *time.Time
	ClearDueDate bool
}

func (p GoalPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Status == nil &&
		p.Order == nil &&
		p.DueDate == nil &&
		!p.ClearDueDate
}

// Placement is the status/order pair written when a card moves on the board.
type Placement struct {
	GoalID      string
	Status      GoalStatus
	Order       int
	CompletedAt *time.Time
}
