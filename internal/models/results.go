package models

import "time"

// Result is the terminal outcome of one task. Immutable after emission.
type Result struct {
	URL        string `json:"url"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	OutputPath string `json:"output_path,omitempty"`
	Mode       string `json:"mode"`
}

// RunSummary aggregates one queue run.
type RunSummary struct {
	RunID     string   `json:"run_id"`
	Successes int      `json:"successes"`
	Failures  int      `json:"failures"`
	Stopped   bool     `json:"stopped"`
	Results   []Result `json:"results"`
}

// HistoryEntry is one persisted download record.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	URL        string    `json:"url"`
	Mode       string    `json:"mode"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	OutputPath string    `json:"output_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
