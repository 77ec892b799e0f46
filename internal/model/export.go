package model

import "time"

// DispatchRun is one recorded dispatch run.
type DispatchRun struct {
	ID         int64     `json:"id"`
	Course     string    `json:"course"`
	GradesPath string    `json:"grades_path"`
	MeanScore  float64   `json:"mean_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunExport pairs a run with its per-recipient records.
type RunExport struct {
	Run     DispatchRun      `json:"run"`
	Records []DispatchRecord `json:"records"`
}

// HistoryExport is the top-level JSON structure for dispatch history export.
type HistoryExport struct {
	Runs []RunExport `json:"runs"`
}
