package render

import (
	"github.com/matzehuels/snaker/pkg/grid"
	"github.com/matzehuels/snaker/pkg/palette"
)

// SceneStep is a path step with its paint applied.
type SceneStep struct {
	grid.PathStep
	Path   int    // index of the path this step belongs to
	Index  int    // position of the step in drawing order
	Color  string // fill colour, "#rrggbb"
	Stroke string // border colour, "#rrggbbaa"
}

// Origin returns the top-left pixel corner of the step's cell.
func (s SceneStep) Origin(cellSize float64) (x, y float64) {
	return float64(s.Cell.X) * cellSize, float64(s.Cell.Y) * cellSize
}

// Scene is a painted grid, ready for a sink.
type Scene struct {
	Width    int     // grid width in cells
	Height   int     // grid height in cells
	CellSize float64 // cell edge in pixels
	Seed     uint64
	Paths    int
	Steps    []SceneStep
}

// PixelWidth returns the drawing width in pixels.
func (s Scene) PixelWidth() float64 { return float64(s.Width) * s.CellSize }

// PixelHeight returns the drawing height in pixels.
func (s Scene) PixelHeight() float64 { return float64(s.Height) * s.CellSize }

// UpTo returns a copy of s holding only the first n steps.
func (s Scene) UpTo(n int) Scene {
	n = max(0, min(n, len(s.Steps)))
	s.Steps = s.Steps[:n]
	if n == 0 {
		s.Paths = 0
	} else {
		s.Paths = s.Steps[n-1].Path + 1
	}
	return s
}

// Painter colours paths as they are generated. Every step takes the next
// colour of the cycle, and one colour is skipped between paths so that
// neighbouring snakes are told apart even when they touch end to end.
type Painter struct {
	cycle *palette.Cycle
	paths int
	steps int
}

// NewPainter returns a painter drawing colours from cycle.
func NewPainter(cycle *palette.Cycle) *Painter {
	return &Painter{cycle: cycle}
}

// Paint colours the next path.
func (p *Painter) Paint(path grid.Path) []SceneStep {
	if p.paths > 0 {
		p.cycle.Next()
	}
	out := make([]SceneStep, len(path))
	for i, step := range path {
		color := p.cycle.Next()
		out[i] = SceneStep{
			PathStep: step,
			Path:     p.paths,
			Index:    p.steps,
			Color:    color,
			Stroke:   palette.Stroke(color),
		}
		p.steps++
	}
	p.paths++
	return out
}

// Paths returns the number of paths painted so far.
func (p *Painter) Paths() int { return p.paths }

// BuildScene paints paths in order onto a width×height grid.
func BuildScene(width, height int, cellSize float64, seed uint64, paths []grid.Path, cycle *palette.Cycle) Scene {
	scene := Scene{Width: width, Height: height, CellSize: cellSize, Seed: seed}
	painter := NewPainter(cycle)
	for _, p := range paths {
		scene.Steps = append(scene.Steps, painter.Paint(p)...)
	}
	scene.Paths = painter.Paths()
	return scene
}
