package detect

import (
	"context"
	"fmt"
	"log"

	"debris/geo"
	"debris/internal/imagery"
	"debris/models"
)

// Model runs one text prompt against a raster on local disk and returns
// pixel-space masks.
type Model interface {
	Predict(ctx context.Context, imagePath, prompt string, boxThreshold, textThreshold float64) ([]Mask, error)
}

// Service turns raw model masks into georeferenced detections.
type Service struct {
	model Model
}

func NewService(model Model) *Service {
	return &Service{model: model}
}

// Detect runs every prompt against the raster in order and collects the
// georeferenced results. A prompt that fails is logged and skipped; Detect
// itself fails only when every prompt fails. Detections are numbered from 1
// in model output order.
func (s *Service) Detect(ctx context.Context, r *imagery.Raster, prompts []string, boxThreshold, textThreshold float64) ([]models.Detection, error) {
	if len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts given")
	}

	detections := []models.Detection{}
	failures := 0
	for _, prompt := range prompts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Printf("Searching for %q", prompt)
		masks, err := s.model.Predict(ctx, r.Path, prompt, boxThreshold, textThreshold)
		if err != nil {
			log.Printf("Warning: no matches for %q: %v", prompt, err)
			failures++
			continue
		}

		for _, mask := range masks {
			d, ok := georeference(mask, r)
			if !ok {
				continue
			}
			d.ID = len(detections) + 1
			d.Prompt = prompt
			detections = append(detections, d)
		}
	}

	if failures == len(prompts) {
		return nil, fmt.Errorf("all %d prompts failed", len(prompts))
	}
	return detections, nil
}

// georeference converts a pixel-space mask to WGS84 and normalizes ring
// winding: exterior counterclockwise, holes clockwise. Masks without a
// usable exterior ring are dropped.
func georeference(m Mask, r *imagery.Raster) (models.Detection, bool) {
	var rings []geo.Ring
	for i, raw := range m.Polygon {
		ring := make(geo.Ring, 0, len(raw))
		for _, v := range raw {
			if len(v) < 2 {
				continue
			}
			ring = append(ring, r.LonLat(v[0], v[1]))
		}
		if len(ring) < 3 {
			if i == 0 {
				return models.Detection{}, false
			}
			continue
		}
		exterior := i == 0
		if ring.IsCCW() != exterior {
			ring = ring.Reversed()
		}
		rings = append(rings, ring)
	}
	if len(rings) == 0 {
		return models.Detection{}, false
	}

	ext := rings[0]
	return models.Detection{
		Rings:    rings,
		Centroid: ext.Centroid(),
		AreaSqm:  ext.AreaSqm(),
		Score:    m.Score,
	}, true
}
