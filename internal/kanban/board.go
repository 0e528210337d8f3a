package kanban

import (
	"errors"
	"slices"
	"time"

	"github.com/templui/goalflow/internal/model"
)

var (
	ErrNoSession     = errors.New("no drag in progress")
	ErrSessionActive = errors.New("a drag is already in progress")
	ErrUnknownGoal   = errors.New("goal is not on this board")
	ErrCommitPending = errors.New("a commit is pending")
	ErrNoTarget      = errors.New("drop target does not resolve to a column")
)

type State int

const (
	StateIdle State = iota
	StateDragging
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

type Option func(*Board)

// WithClock sets the clock used to stamp completedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// Board holds one week of goals and runs drag sessions against it.
//
// confirmed is the last state known to match the store. proposed is what
// should be displayed. They differ only while a session is dragging or
// committing. A Board is not safe for concurrent use.
type Board struct {
	weekKey   string
	confirmed []model.Goal
	proposed  []model.Goal
	snapshot  []model.Goal
	session   *Session
	state     State
	now       func() time.Time
}

// New builds a board from a fetched goal set. Goals of other weeks are dropped.
func New(weekKey string, goals []model.Goal, opts ...Option) *Board {
	b := &Board{
		weekKey: weekKey,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.load(goals)
	return b
}

func (b *Board) load(goals []model.Goal) {
	var week []model.Goal
	for _, g := range goals {
		if g.WeekKey == b.weekKey {
			week = append(week, g)
		}
	}

	sorted := make([]model.Goal, 0, len(week))
	for _, status := range model.GoalStatuses {
		sorted = append(sorted, Partition(week, status)...)
	}
	b.confirmed = sorted
	b.proposed = slices.Clone(sorted)
}

// Load replaces the board contents after a refetch.
func (b *Board) Load(goals []model.Goal) error {
	if err := b.requireIdle(); err != nil {
		return err
	}
	b.load(goals)
	return nil
}

func (b *Board) WeekKey() string {
	return b.weekKey
}

func (b *Board) State() State {
	return b.state
}

// Session returns the active drag session, if any.
func (b *Board) Session() (Session, bool) {
	if b.session == nil {
		return Session{}, false
	}
	return *b.session, true
}

// Goals returns the displayed goals grouped by column.
func (b *Board) Goals() []model.Goal {
	return slices.Clone(b.proposed)
}

// Confirmed returns the last state known to match the store.
func (b *Board) Confirmed() []model.Goal {
	return slices.Clone(b.confirmed)
}

// Column returns the displayed goals of one column.
func (b *Board) Column(status model.GoalStatus) []model.Goal {
	return Partition(b.proposed, status)
}

// Goal looks up a displayed goal by id.
func (b *Board) Goal(id string) (model.Goal, bool) {
	i := slices.IndexFunc(b.proposed, func(g model.Goal) bool { return g.ID == id })
	if i < 0 {
		return model.Goal{}, false
	}
	return b.proposed[i], true
}

func (b *Board) requireIdle() error {
	switch b.state {
	case StateDragging:
		return ErrSessionActive
	case StateCommitting:
		return ErrCommitPending
	}
	return nil
}

// Start begins dragging goalID.
func (b *Board) Start(goalID string, size SizeHint) error {
	if err := b.requireIdle(); err != nil {
		return err
	}

	goal, ok := b.Goal(goalID)
	if !ok {
		return ErrUnknownGoal
	}

	b.snapshot = slices.Clone(b.proposed)
	b.session = &Session{
		GoalID:      goal.ID,
		Origin:      goal.Status,
		OriginOrder: goal.Order,
		Size:        size,
	}
	b.state = StateDragging
	return nil
}

// Hover previews dropping the dragged goal on target. Every call is computed
// from the pre-drag snapshot, so repeating the same target has no further
// effect. A target that resolves to nothing leaves the preview unchanged.
func (b *Board) Hover(target Target) error {
	if b.state != StateDragging {
		return ErrNoSession
	}

	next, _, ok := place(b.snapshot, b.session.GoalID, target, b.now())
	if !ok {
		return nil
	}
	b.proposed = next
	b.session.Over = target
	return nil
}

// Drop finalizes the drag on target and returns the goals that must be
// persisted. When nothing changed the board returns to Idle and the result
// is empty; otherwise the board enters Committing and the caller must call
// Confirm or Rollback. A target that resolves to nothing cancels the drag
// and returns ErrNoTarget.
func (b *Board) Drop(target Target) ([]model.Goal, error) {
	if b.state != StateDragging {
		return nil, ErrNoSession
	}

	next, touched, ok := place(b.snapshot, b.session.GoalID, target, b.now())
	if !ok {
		b.restore()
		return nil, ErrNoTarget
	}

	b.proposed = next
	b.session.Over = target

	changed := diff(next, b.confirmed, touched)
	if len(changed) == 0 {
		b.finish()
		return nil, nil
	}
	b.state = StateCommitting
	return changed, nil
}

// Cancel abandons the drag and restores the pre-drag snapshot.
func (b *Board) Cancel() error {
	if b.state != StateDragging {
		return ErrNoSession
	}
	b.restore()
	return nil
}

// Confirm records a successful commit.
func (b *Board) Confirm() error {
	if b.state != StateCommitting {
		return ErrNoSession
	}
	b.finish()
	return nil
}

// Rollback reverts a failed commit to the pre-drag snapshot.
func (b *Board) Rollback() error {
	if b.state != StateCommitting {
		return ErrNoSession
	}
	b.restore()
	return nil
}

func (b *Board) restore() {
	b.proposed = b.snapshot
	b.snapshot = nil
	b.session = nil
	b.state = StateIdle
}

func (b *Board) finish() {
	b.confirmed = slices.Clone(b.proposed)
	b.snapshot = nil
	b.session = nil
	b.state = StateIdle
}
