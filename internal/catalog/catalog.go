package catalog

import (
	"fmt"
	"sort"
	"strings"

	"debris/geo"
)

// Area is a named scan target. The built-in catalog covers the Pinellas
// County barrier-island communities hit hardest by the 2024 hurricanes.
type Area struct {
	Name string
	BBox geo.BBox
}

// Slug returns the area name as a filesystem- and key-safe token:
// lowercased, punctuation stripped, spaces mapped to underscores.
func (a Area) Slug() string {
	var b strings.Builder
	for _, r := range strings.ToLower(a.Name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

var areas = map[string]Area{
	"clearwater_beach":   {Name: "Clearwater Beach", BBox: geo.BBox{West: -82.835, South: 27.965, East: -82.815, North: 27.985}},
	"st_pete_beach":      {Name: "St. Pete Beach", BBox: geo.BBox{West: -82.745, South: 27.715, East: -82.725, North: 27.735}},
	"treasure_island":    {Name: "Treasure Island", BBox: geo.BBox{West: -82.780, South: 27.760, East: -82.760, North: 27.780}},
	"indian_rocks_beach": {Name: "Indian Rocks Beach", BBox: geo.BBox{West: -82.860, South: 27.880, East: -82.840, North: 27.900}},
	"dunedin":            {Name: "Dunedin", BBox: geo.BBox{West: -82.795, South: 28.010, East: -82.775, North: 28.030}},
	"gulfport":           {Name: "Gulfport", BBox: geo.BBox{West: -82.715, South: 27.740, East: -82.695, North: 27.760}},
}

// Areas returns every catalog entry, sorted by slug so scan order is stable
// across runs.
func Areas() []Area {
	slugs := make([]string, 0, len(areas))
	for slug := range areas {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	out := make([]Area, 0, len(slugs))
	for _, slug := range slugs {
		out = append(out, areas[slug])
	}
	return out
}

// Lookup resolves an area by slug or display name, case-insensitively.
func Lookup(name string) (Area, error) {
	if a, ok := areas[strings.ToLower(name)]; ok {
		return a, nil
	}
	probe := Area{Name: name}
	if a, ok := areas[probe.Slug()]; ok {
		return a, nil
	}
	return Area{}, fmt.Errorf("unknown area %q", name)
}
