package keys

import (
	"fmt"
	"strings"
)

// sanitizeKey replaces spaces with hyphens and lowercases the string.
// You could expand this to strip other characters if needed.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// ExportObject returns the canonical S3 key for one run output file,
// grouped by run and area.
func ExportObject(runID, areaSlug, filename string) string {
	return fmt.Sprintf("runs/%s/%s/%s",
		sanitizeKey(runID),
		sanitizeKey(areaSlug),
		filename,
	)
}
