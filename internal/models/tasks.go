package models

import "github.com/Tangesion/MediaPorter/internal/domain/consts"

// Task represents one user-requested download unit. URL is normalized and
// supported; Filename, when set, is the custom output name without extension.
type Task struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// Constraints holds the per-run selection inputs. QualityCap of 0 means no
// height cap. Immutable for the life of a run.
type Constraints struct {
	Mode         consts.Mode
	QualityCap   int
	MergeCapable bool
}
