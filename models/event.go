package models

import "time"

// AreaState tracks where an area sits in the scan lifecycle.
type AreaState string

const (
	StatePending     AreaState = "pending"
	StateDownloading AreaState = "downloading"
	StateDetecting   AreaState = "detecting"
	StateExporting   AreaState = "exporting"
	StateDone        AreaState = "done"
	StateFailed      AreaState = "failed"
)

// AreaEvent is published after each area finishes, whether it succeeded
// or not. Failed areas carry the error string and no outputs.
type AreaEvent struct {
	RunID      string    `json:"run_id"`
	Area       string    `json:"area"`
	State      AreaState `json:"state"`
	Detections int       `json:"detections"`
	Outputs    []string  `json:"outputs,omitempty"`
	Bucket     string    `json:"bucket,omitempty"`
	ObjectKey  string    `json:"object_key,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
