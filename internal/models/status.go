package models

// EventType names the queue lifecycle notifications.
type EventType string

const (
	EventStarted  EventType = "started"
	EventRetry    EventType = "retry"
	EventProgress EventType = "progress"
	EventFinished EventType = "finished"
	EventAllDone  EventType = "all_done"
)

// Event models one queue notification. Index is zero-based task position,
// Total the batch size. Finished events carry Success, OutputPath and Message;
// AllDone carries the aggregate counts instead.
type Event struct {
	Type       EventType `json:"type"`
	RunID      string    `json:"run_id"`
	Index      int       `json:"index"`
	Total      int       `json:"total"`
	URL        string    `json:"url,omitempty"`
	Attempt    int       `json:"attempt,omitempty"`
	MaxRetries int       `json:"max_retries,omitempty"`
	Percent    float64   `json:"percent,omitempty"`
	Message    string    `json:"message,omitempty"`
	Success    bool      `json:"success,omitempty"`
	OutputPath string    `json:"output_path,omitempty"`
	Successes  int       `json:"successes,omitempty"`
	Failures   int       `json:"failures,omitempty"`
}

// ProgressUpdate is the backend's transient transfer status.
type ProgressUpdate struct {
	Percent float64
	Message string
}
