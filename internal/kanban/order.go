package kanban

import (
	"cmp"
	"slices"

	"github.com/templui/goalflow/internal/model"
)

// OrderStep is the gap between consecutive order values after normalization.
const OrderStep = 1000

// Normalize renumbers seq as 1000, 2000, ... in its current sequence.
// The input slice is not modified.
func Normalize(seq []model.Goal) []model.Goal {
	out := make([]model.Goal, len(seq))
	for i, g := range seq {
		g.Order = (i + 1) * OrderStep
		out[i] = g
	}
	return out
}

// AppendOrder returns the order for a goal placed after every goal in partition.
func AppendOrder(partition []model.Goal) int {
	if len(partition) == 0 {
		return OrderStep
	}

	highest := partition[0].Order
	for _, g := range partition[1:] {
		if g.Order > highest {
			highest = g.Order
		}
	}
	return highest + OrderStep
}

// SortPartition sorts by order ascending; equal orders put the newest goal first.
func SortPartition(goals []model.Goal) {
	slices.SortStableFunc(goals, func(a, b model.Goal) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Partition returns a sorted copy of the goals with the given status.
func Partition(goals []model.Goal, status model.GoalStatus) []model.Goal {
	var out []model.Goal
	for _, g := range goals {
		if g.Status == status {
			out = append(out, g)
		}
	}
	SortPartition(out)
	return out
}
