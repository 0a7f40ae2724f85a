package styles

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/snaker/pkg/grid"
	"github.com/matzehuels/snaker/pkg/render"
)

// HachureGap is the distance between hachure strokes, in pixels.
const HachureGap = 4.0

// Style defines the visual appearance of a drawing.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, hachure patterns).
	RenderDefs(buf *bytes.Buffer, fills []Fill)
	// RenderGrid writes the background grid and frame.
	RenderGrid(buf *bytes.Buffer, g render.GridLines)
	// RenderBlock writes the SVG for a single cell.
	RenderBlock(buf *bytes.Buffer, b Block)
}

// Fill is a hachure fill: a colour laid down at an angle.
type Fill struct {
	Color string
	Angle grid.HachureAngle
}

// ID returns the SVG id of the fill's pattern.
func (f Fill) ID() string {
	c := strings.ToLower(strings.TrimPrefix(f.Color, "#"))
	if f.Angle < 0 {
		return fmt.Sprintf("hatch-%s-m%d", c, -int(f.Angle))
	}
	return fmt.Sprintf("hatch-%s-%d", c, int(f.Angle))
}

// Block contains all data needed to render a single cell.
type Block struct {
	ID string // unique within the drawing
	render.Block
	Fill        Fill
	Stroke      string  // border line colour
	StrokeWidth float64 // border line width
}

// BlockFor builds the style input for one painted step.
func BlockFor(s render.SceneStep, cellSize float64) Block {
	x, y := s.Origin(cellSize)
	return Block{
		ID:          fmt.Sprintf("%d-%d", s.Cell.X, s.Cell.Y),
		Block:       render.BlockGeometry(x, y, cellSize, s.Edges),
		Fill:        Fill{Color: s.Color, Angle: s.Hachure},
		Stroke:      s.Stroke,
		StrokeWidth: cellSize * render.LineWidthRatio,
	}
}
