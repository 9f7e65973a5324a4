package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"debris/internal/config"
	"debris/models"
	"debris/pkg/geojson"
)

// wgs84 is the WKT written to .prj sidecars so GIS tools pick up the datum.
const wgs84 = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

// csvHeader is fixed; downstream tooling matches on these column names.
var csvHeader = []string{"id", "centroid_lat", "centroid_lon", "area_sqm", "score"}

// Exporter writes detection sets to disk in GIS-consumable formats.
type Exporter struct {
	dir string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Write writes the detection set under the given base name in every
// requested format and returns all file paths written, sidecars included.
// An empty detection set still produces valid, loadable files.
func (e *Exporter) Write(name string, detections []models.Detection, formats []string) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	var written []string
	for _, format := range formats {
		var (
			paths []string
			err   error
		)
		switch format {
		case config.FormatGeoJSON:
			paths, err = e.writeGeoJSON(filepath.Join(e.dir, name+".geojson"), detections)
		case config.FormatShapefile:
			paths, err = e.writeShapefile(filepath.Join(e.dir, name+".shp"), detections)
		case config.FormatCSV:
			paths, err = e.writeCSV(filepath.Join(e.dir, name+".csv"), detections)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", format, err)
		}
		written = append(written, paths...)
	}
	return written, nil
}

func (e *Exporter) writeGeoJSON(path string, detections []models.Detection) ([]string, error) {
	fc := geojson.NewFeatureCollection()
	for _, d := range detections {
		fc.Append(geojson.NewPolygonFeature(d.Rings, map[string]interface{}{
			"id":           d.ID,
			"centroid_lat": d.Centroid.Lat,
			"centroid_lon": d.Centroid.Lon,
			"area_sqm":     d.AreaSqm,
			"score":        d.Score,
			"prompt":       d.Prompt,
		}))
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (e *Exporter) writeShapefile(path string, detections []models.Detection) ([]string, error) {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	// DBF caps field names at ten characters, hence the shortened
	// centroid columns.
	err = w.SetFields([]shp.Field{
		shp.NumberField("id", 10),
		shp.FloatField("centr_lat", 13, 8),
		shp.FloatField("centr_lon", 13, 8),
		shp.FloatField("area_sqm", 13, 2),
		shp.FloatField("score", 6, 4),
	})
	if err != nil {
		return nil, err
	}

	for i, d := range detections {
		parts := make([][]shp.Point, 0, len(d.Rings))
		for j, ring := range d.Rings {
			// Shapefiles wind the exterior clockwise and holes
			// counterclockwise, the reverse of GeoJSON.
			r := ring
			if r.IsCCW() == (j == 0) {
				r = r.Reversed()
			}
			pts := make([]shp.Point, 0, len(r)+1)
			for _, p := range r {
				pts = append(pts, shp.Point{X: p.Lon, Y: p.Lat})
			}
			if len(r) > 0 {
				pts = append(pts, shp.Point{X: r[0].Lon, Y: r[0].Lat})
			}
			parts = append(parts, pts)
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		w.Write(&poly)

		if err := w.WriteAttribute(i, 0, d.ID); err != nil {
			return nil, err
		}
		if err := w.WriteAttribute(i, 1, d.Centroid.Lat); err != nil {
			return nil, err
		}
		if err := w.WriteAttribute(i, 2, d.Centroid.Lon); err != nil {
			return nil, err
		}
		if err := w.WriteAttribute(i, 3, d.AreaSqm); err != nil {
			return nil, err
		}
		if err := w.WriteAttribute(i, 4, d.Score); err != nil {
			return nil, err
		}
	}

	base := strings.TrimSuffix(path, ".shp")
	prj := base + ".prj"
	if err := os.WriteFile(prj, []byte(wgs84), 0644); err != nil {
		return nil, err
	}
	return []string{path, base + ".shx", base + ".dbf", prj}, nil
}

func (e *Exporter) writeCSV(path string, detections []models.Detection) ([]string, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, d := range detections {
		row := []string{
			strconv.Itoa(d.ID),
			formatFloat(d.Centroid.Lat),
			formatFloat(d.Centroid.Lon),
			formatFloat(d.AreaSqm),
			formatFloat(d.Score),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
