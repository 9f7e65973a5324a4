package runner

import (
	"path/filepath"
	"strings"
	"time"

	"debris/internal/catalog"
	"debris/internal/imagery"
	"debris/internal/keys"
	"debris/models"
)

// Task tracks one area through the scan lifecycle: pending, then
// downloading, detecting and exporting, ending in done or failed.
type Task struct {
	Area       catalog.Area
	State      models.AreaState
	Raster     *imagery.Raster
	Detections []models.Detection
	Outputs    []string
	Err        error
}

func NewTask(area catalog.Area) *Task {
	return &Task{Area: area, State: models.StatePending}
}

// Fail records a fatal stage error and moves the task to its terminal state.
func (t *Task) Fail(err error) {
	t.State = models.StateFailed
	t.Err = err
}

// Event renders the task for publication. Successful tasks reference their
// primary export in the results bucket when one is configured.
func (t *Task) Event(runID, bucket string) models.AreaEvent {
	e := models.AreaEvent{
		RunID:      runID,
		Area:       t.Area.Name,
		State:      t.State,
		Detections: len(t.Detections),
		Outputs:    t.Outputs,
		Timestamp:  time.Now().UTC(),
	}
	if t.Err != nil {
		e.Error = t.Err.Error()
	}
	if bucket != "" && t.State == models.StateDone {
		e.Bucket = bucket
		for _, out := range t.Outputs {
			if strings.HasSuffix(out, ".geojson") {
				e.ObjectKey = keys.ExportObject(runID, t.Area.Slug(), filepath.Base(out))
				break
			}
		}
	}
	return e
}
