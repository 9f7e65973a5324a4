package imagery

import (
	"log"
	"strconv"
	"strings"
)

const (
	SourceMilton = "milton"
	SourceHelene = "helene"
	SourceEsri   = "esri"
)

// Post-storm tile services published after the 2024 hurricanes, plus ESRI
// world imagery as the always-available fallback.
var templates = map[string]string{
	SourceMilton: "https://tiles.arcgis.com/tiles/C8EMgrsFcRFL6LrL/arcgis/rest/services/Milton_Imagery/MapServer/tile/{z}/{y}/{x}",
	SourceHelene: "https://tiles.arcgis.com/tiles/C8EMgrsFcRFL6LrL/arcgis/rest/services/Helene_Imagery/MapServer/tile/{z}/{y}/{x}",
	SourceEsri:   "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
}

// Source resolves XYZ tile URLs for a single imagery provider.
type Source struct {
	name     string
	template string
}

// Resolve returns the named built-in tile source. Unknown names fall back
// to ESRI world imagery.
func Resolve(name string) Source {
	if tmpl, ok := templates[strings.ToLower(name)]; ok {
		return Source{name: strings.ToLower(name), template: tmpl}
	}
	log.Printf("Unknown tile source %q, falling back to %s", name, SourceEsri)
	return Source{name: SourceEsri, template: templates[SourceEsri]}
}

// NewSource builds a source from a raw URL template with {z}, {x} and {y}
// placeholders.
func NewSource(name, template string) Source {
	return Source{name: name, template: template}
}

func (s Source) Name() string {
	return s.name
}

// TileURL expands the template for one tile address.
func (s Source) TileURL(zoom, x, y int) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(zoom),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	)
	return r.Replace(s.template)
}
