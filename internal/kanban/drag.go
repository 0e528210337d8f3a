package kanban

import (
	"slices"
	"time"

	"github.com/templui/goalflow/internal/model"
)

// Target is what the pointer is over: a specific card, or an empty area
// of a column. GoalID takes precedence when both are set.
type Target struct {
	GoalID string
	Status model.GoalStatus
}

func OverGoal(id string) Target {
	return Target{GoalID: id}
}

func OverColumn(status model.GoalStatus) Target {
	return Target{Status: status}
}

func (t Target) IsZero() bool {
	return t.GoalID == "" && t.Status == ""
}

// SizeHint is the measured size of the card being dragged, used to draw
// the floating preview.
type SizeHint struct {
	Width  int
	Height int
}

// Session is the state of one drag gesture.
type Session struct {
	GoalID      string
	Origin      model.GoalStatus
	OriginOrder int
	Over        Target
	Size        SizeHint
}

// place moves dragID onto target within goals and returns the full board
// with every touched column renumbered. ok is false when the target does
// not resolve to a column.
func place(goals []model.Goal, dragID string, target Target, now time.Time) (next []model.Goal, touched []model.GoalStatus, ok bool) {
	dragIdx := slices.IndexFunc(goals, func(g model.Goal) bool { return g.ID == dragID })
	if dragIdx < 0 {
		return nil, nil, false
	}
	dragged := goals[dragIdx]

	targetStatus, ok := resolveStatus(goals, target)
	if !ok {
		return nil, nil, false
	}
	if target.GoalID == dragID {
		return slices.Clone(goals), nil, true
	}

	sourceStatus := dragged.Status

	columns := make(map[model.GoalStatus][]model.Goal, len(model.GoalStatuses))
	for _, status := range model.GoalStatuses {
		columns[status] = Partition(goals, status)
	}

	src := columns[sourceStatus]
	src = slices.DeleteFunc(src, func(g model.Goal) bool { return g.ID == dragID })
	columns[sourceStatus] = src

	tgt := columns[targetStatus]
	insertAt := len(tgt)
	if target.GoalID != "" {
		if i := slices.IndexFunc(tgt, func(g model.Goal) bool { return g.ID == target.GoalID }); i >= 0 {
			insertAt = i
		}
	}

	dragged.Status = targetStatus
	switch {
	case targetStatus != model.GoalStatusDone:
		dragged.CompletedAt = nil
	case sourceStatus != model.GoalStatusDone:
		completedAt := now
		dragged.CompletedAt = &completedAt
	}
	columns[targetStatus] = slices.Insert(tgt, insertAt, dragged)

	touched = []model.GoalStatus{sourceStatus}
	if targetStatus != sourceStatus {
		touched = append(touched, targetStatus)
	}
	for _, status := range touched {
		columns[status] = Normalize(columns[status])
	}

	next = make([]model.Goal, 0, len(goals))
	for _, status := range model.GoalStatuses {
		next = append(next, columns[status]...)
	}
	return next, touched, true
}

func resolveStatus(goals []model.Goal, target Target) (model.GoalStatus, bool) {
	if target.GoalID != "" {
		if i := slices.IndexFunc(goals, func(g model.Goal) bool { return g.ID == target.GoalID }); i >= 0 {
			return goals[i].Status, true
		}
	}
	if target.Status.Valid() {
		return target.Status, true
	}
	return "", false
}

// diff returns the goals of the touched columns whose status or order
// differs from the confirmed state.
func diff(next, confirmed []model.Goal, touched []model.GoalStatus) []model.Goal {
	before := make(map[string]model.Goal, len(confirmed))
	for _, g := range confirmed {
		before[g.ID] = g
	}

	var changed []model.Goal
	for _, g := range next {
		if !slices.Contains(touched, g.Status) {
			continue
		}
		prev, ok := before[g.ID]
		if !ok || prev.Status != g.Status || prev.Order != g.Order {
			changed = append(changed, g)
		}
	}
	return changed
}
