package runner

import "errors"

// Sentinel errors for the stages of an area scan. Stage errors wrap these so
// callers can tell where a failed area went wrong.
var (
	ErrImageryFetch = errors.New("imagery fetch failed")
	ErrModelLoad    = errors.New("model load failed")
	ErrDetection    = errors.New("detection failed")
	ErrExport       = errors.New("export failed")
)
