package model

import "time"

type ReportTotals struct {
	Created        int      `json:"created"`
	Completed      int      `json:"completed"`
	Overdue        int      `json:"overdue"`
	CompletionRate int      `json:"completionRate"`
	AvgCycleDays   *float64 `json:"avgCycleDays"`
}

type StatusCount struct {
	Status GoalStatus `db:"status" json:"status"`
	Count  int        `db:"count" json:"count"`
}

type WeekTrend struct {
	WeekKey   string `json:"weekKey"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

type Summary struct {
	Totals   ReportTotals  `json:"totals"`
	ByStatus []StatusCount `json:"byStatus"`
	Trend    []WeekTrend   `json:"trend"`
}

// DateRange is a half-open interval [From, To). A nil bound is unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
