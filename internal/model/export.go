package model

import "time"

// WeekExport is one week of goals grouped by board column.
type WeekExport struct {
	WeekKey    string         `json:"weekKey"`
	ExportedAt time.Time      `json:"exportedAt"`
	Columns    []ExportColumn `json:"columns"`
}

type ExportColumn struct {
	Status GoalStatus `json:"status"`
	Label  string     `json:"label"`
	Goals  []Goal     `json:"goals"`
}
