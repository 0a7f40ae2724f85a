package render

const (
	// GridLineColor is the colour of the thin cell separators.
	GridLineColor = "rgba(203,255,241,0.7)"
	// FrameColor is the colour of the bold outer frame.
	FrameColor = "rgba(0,0,0,0.5)"
	// BlockOutline is the faint outline drawn around every fill polygon.
	BlockOutline = "rgba(0,0,0,0.1)"
)

// GridLines is the background of a drawing: one thin line per cell column
// and row, plus a bold frame around the whole grid.
type GridLines struct {
	Lines      []Segment
	Frame      []Segment
	LineWidth  float64
	FrameWidth float64
}

// BuildGridLines lays out the background for a width×height grid of
// size-pixel cells. Separators start at the top-left edge; the right and
// bottom edges are covered by the frame.
func BuildGridLines(width, height int, size float64) GridLines {
	var (
		right  = float64(width) * size
		bottom = float64(height) * size
	)
	g := GridLines{
		Lines:      make([]Segment, 0, width+height),
		LineWidth:  size / 40,
		FrameWidth: size / 10,
	}
	for x := range width {
		pos := float64(x) * size
		g.Lines = append(g.Lines, Segment{Point{pos, bottom}, Point{pos, 0}})
	}
	for y := range height {
		pos := float64(y) * size
		g.Lines = append(g.Lines, Segment{Point{0, pos}, Point{right, pos}})
	}

	tl, tr := Point{0, 0}, Point{right, 0}
	br, bl := Point{right, bottom}, Point{0, bottom}
	g.Frame = []Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
	return g
}
