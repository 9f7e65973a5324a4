package detect

// Mask is one segmented region in image pixel space, as returned by the
// segmentation service. Polygon holds one or more rings; the first is the
// exterior. Each vertex is an [x, y] pixel pair.
type Mask struct {
	Polygon [][][]float64 `json:"polygon"`
	Score   float64       `json:"score"`
}

type segmentResponse struct {
	Masks []Mask `json:"masks"`
}
