package imagery

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"debris/geo"
)

// Downloader fetches and stitches XYZ tiles into an area-sized raster.
type Downloader struct {
	source  Source
	client  *http.Client
	workers int
}

func NewDownloader(source Source) *Downloader {
	return &Downloader{
		source:  source,
		client:  &http.Client{Timeout: 30 * time.Second},
		workers: 8,
	}
}

// Download fetches every tile covering bbox at the given zoom, stitches
// them, crops the result to the exact bounding box and writes it to path,
// overwriting any previous file. A world file is written next to the image.
// Any tile failure aborts the whole download.
func (d *Downloader) Download(ctx context.Context, bbox geo.BBox, zoom int, path string) (*Raster, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	if zoom < 1 {
		return nil, fmt.Errorf("zoom must be positive, got %d", zoom)
	}

	// Pixel rect of the box on the global tile grid.
	left, top := geo.GlobalPixel(geo.Point{Lon: bbox.West, Lat: bbox.North}, zoom)
	right, bottom := geo.GlobalPixel(geo.Point{Lon: bbox.East, Lat: bbox.South}, zoom)

	x0 := int(math.Floor(left)) / geo.TileSize
	y0 := int(math.Floor(top)) / geo.TileSize
	x1 := int(math.Ceil(right)-1) / geo.TileSize
	y1 := int(math.Ceil(bottom)-1) / geo.TileSize
	cols := x1 - x0 + 1
	rows := y1 - y0 + 1

	log.Printf("Downloading %d tiles (%dx%d) from %s at zoom %d", cols*rows, cols, rows, d.source.Name(), zoom)

	tiles := make([]image.Image, cols*rows)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			idx := (ty-y0)*cols + (tx - x0)
			g.Go(func() error {
				img, err := d.fetchTile(gctx, zoom, tx, ty)
				if err != nil {
					return fmt.Errorf("tile %d/%d/%d: %w", zoom, tx, ty, err)
				}
				tiles[idx] = img
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvas := imaging.New(cols*geo.TileSize, rows*geo.TileSize, color.NRGBA{0, 0, 0, 255})
	for i, tile := range tiles {
		px := (i % cols) * geo.TileSize
		py := (i / cols) * geo.TileSize
		draw.Draw(canvas, image.Rect(px, py, px+geo.TileSize, py+geo.TileSize), tile, tile.Bounds().Min, draw.Src)
	}

	// Trim the stitched canvas down to the exact bounding box.
	offX := int(math.Floor(left)) - x0*geo.TileSize
	offY := int(math.Floor(top)) - y0*geo.TileSize
	width := int(math.Ceil(right)) - int(math.Floor(left))
	height := int(math.Ceil(bottom)) - int(math.Floor(top))
	cropped := imaging.Crop(canvas, image.Rect(offX, offY, offX+width, offY+height))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	if err := imaging.Save(cropped, path); err != nil {
		return nil, fmt.Errorf("saving raster: %w", err)
	}

	r := &Raster{
		Path:    path,
		Zoom:    zoom,
		OriginX: math.Floor(left),
		OriginY: math.Floor(top),
		Width:   width,
		Height:  height,
		Bounds:  bbox,
	}
	if _, err := WriteWorldFile(r); err != nil {
		return nil, fmt.Errorf("writing world file: %w", err)
	}
	return r, nil
}

func (d *Downloader) fetchTile(ctx context.Context, zoom, x, y int) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.source.TileURL(zoom, x, y), nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding tile: %w", err)
	}
	return img, nil
}
