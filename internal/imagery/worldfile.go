package imagery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"debris/geo"
)

// WriteWorldFile writes an ESRI world file next to the raster, georeferencing
// it in EPSG:3857. Returns the world file path.
func WriteWorldFile(r *Raster) (string, error) {
	res := geo.MercatorResolution(r.Zoom)

	// World files reference the center of the top-left pixel.
	center := geo.PixelLonLat(r.OriginX+0.5, r.OriginY+0.5, r.Zoom)
	x, y := geo.MercatorMeters(center)

	path := worldFilePath(r.Path)
	content := fmt.Sprintf("%.10f\n0.0\n0.0\n-%.10f\n%.10f\n%.10f\n", res, res, x, y)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func worldFilePath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	switch strings.ToLower(ext) {
	case ".tif", ".tiff":
		return strings.TrimSuffix(imagePath, ext) + ".tfw"
	case ".png":
		return strings.TrimSuffix(imagePath, ext) + ".pgw"
	case ".jpg", ".jpeg":
		return strings.TrimSuffix(imagePath, ext) + ".jgw"
	default:
		return imagePath + "w"
	}
}
