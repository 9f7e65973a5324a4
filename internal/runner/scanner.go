package runner

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"debris/geo"
	"debris/internal/catalog"
	"debris/internal/config"
	"debris/internal/imagery"
	"debris/models"
)

// Downloader produces an area-sized raster on local disk.
type Downloader interface {
	Download(ctx context.Context, bbox geo.BBox, zoom int, path string) (*imagery.Raster, error)
}

// Detector finds debris piles in a raster.
type Detector interface {
	Detect(ctx context.Context, r *imagery.Raster, prompts []string, boxThreshold, textThreshold float64) ([]models.Detection, error)
}

// Exporter writes a detection set to disk and returns the paths written.
type Exporter interface {
	Write(name string, detections []models.Detection, formats []string) ([]string, error)
}

// Deps wires the scanner's collaborators. Downloader, Detector and Exporter
// are required. HealthCheck, when set, gates the whole run on the
// segmentation model being loaded. Notifiers and ResultsBucket are optional.
type Deps struct {
	Downloader    Downloader
	Detector      Detector
	Exporter      Exporter
	HealthCheck   func(ctx context.Context) error
	Notifiers     []Notifier
	ResultsBucket string
}

// Summary reports how a run went, one event per area that was reached.
type Summary struct {
	RunID   string
	Done    int
	Failed  int
	Skipped int
	Events  []models.AreaEvent
}

// Scanner walks areas through download, detection and export. Areas are
// processed sequentially; each one saturates the tile service and the
// segmentation model on its own. A failed area is reported and skipped,
// never aborting the rest of the run.
type Scanner struct {
	cfg   config.Config
	deps  Deps
	runID string
}

func NewScanner(cfg config.Config, deps Deps) *Scanner {
	return &Scanner{cfg: cfg, deps: deps}
}

// Run scans every configured area (the full catalog when none are named)
// and publishes an event per finished area. It returns an error only for
// run-level failures: unknown areas, a model that will not load, or
// cancellation; per-area failures land in the summary.
func (s *Scanner) Run(ctx context.Context) (Summary, error) {
	areas, err := s.resolveAreas()
	if err != nil {
		return Summary{}, err
	}

	if s.deps.HealthCheck != nil {
		if err := s.deps.HealthCheck(ctx); err != nil {
			return Summary{}, fmt.Errorf("%w: %v", ErrModelLoad, err)
		}
	}

	s.runID = time.Now().UTC().Format("20060102T150405Z")
	log.Printf("Starting run %s over %d areas", s.runID, len(areas))
	s.recordManifest()

	pipeline := NewPipeline(
		NewStage(s.download),
		NewStage(s.detect),
		NewStage(s.export),
	)

	in := make(chan *Task)
	go func() {
		defer close(in)
		for _, area := range areas {
			select {
			case in <- NewTask(area):
			case <-ctx.Done():
				return
			}
		}
	}()

	summary := Summary{RunID: s.runID}
	for task := range pipeline.Process(ctx, in) {
		if task.State == models.StatePending {
			summary.Skipped++
			continue
		}

		event := task.Event(s.runID, s.deps.ResultsBucket)
		s.notify(ctx, event)
		summary.Events = append(summary.Events, event)

		switch task.State {
		case models.StateDone:
			summary.Done++
			log.Printf("Area %s done: %d detections", task.Area.Name, len(task.Detections))
		case models.StateFailed:
			summary.Failed++
			log.Printf("Area %s failed: %v", task.Area.Name, task.Err)
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// recordManifest writes the effective configuration next to the run's
// outputs. Provenance only, so failures are warnings.
func (s *Scanner) recordManifest() {
	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		log.Printf("Recording run manifest: %v", err)
		return
	}
	path := filepath.Join(s.cfg.OutputDir, "run_manifest.yaml")
	if err := config.WriteManifest(s.cfg.Manifest(), path); err != nil {
		log.Printf("Recording run manifest: %v", err)
	}
}

func (s *Scanner) resolveAreas() ([]catalog.Area, error) {
	if len(s.cfg.Areas) == 0 {
		return catalog.Areas(), nil
	}
	areas := make([]catalog.Area, 0, len(s.cfg.Areas))
	for _, name := range s.cfg.Areas {
		a, err := catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, nil
}

func (s *Scanner) download(ctx context.Context, t *Task) error {
	t.State = models.StateDownloading
	slug := t.Area.Slug()
	path := filepath.Join(s.cfg.OutputDir, slug, slug+"_imagery.tif")

	r, err := s.deps.Downloader.Download(ctx, t.Area.BBox, s.cfg.Zoom, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageryFetch, err)
	}
	t.Raster = r
	return nil
}

func (s *Scanner) detect(ctx context.Context, t *Task) error {
	t.State = models.StateDetecting
	detections, err := s.deps.Detector.Detect(ctx, t.Raster, s.cfg.Prompts, s.cfg.BoxThreshold, s.cfg.TextThreshold)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDetection, err)
	}
	t.Detections = detections
	return nil
}

func (s *Scanner) export(_ context.Context, t *Task) error {
	t.State = models.StateExporting
	outputs, err := s.deps.Exporter.Write(t.Area.Slug()+"_debris", t.Detections, s.cfg.Formats)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	t.Outputs = outputs
	t.State = models.StateDone
	return nil
}

// notify fans the event out to every notifier in parallel. Failures are
// logged and swallowed; losing a notification must not fail the area.
func (s *Scanner) notify(ctx context.Context, event models.AreaEvent) {
	var wg sync.WaitGroup
	for _, n := range s.deps.Notifiers {
		wg.Add(1)
		go func(n Notifier) {
			defer wg.Done()
			if err := n.Notify(ctx, event); err != nil {
				log.Printf("Notifier failed for %s: %v", event.Area, err)
			}
		}(n)
	}
	wg.Wait()
}
