package sink

import (
	"encoding/json"
	"fmt"

	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/grid"
	"github.com/matzehuels/snaker/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style    string
	spectrum string
}

// WithJSONStyle records the style name (e.g., "simple", "handdrawn") in the
// JSON output for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONSpectrum records the spectrum the colours were drawn from.
func WithJSONSpectrum(s string) JSONOption { return func(r *jsonRenderer) { r.spectrum = s } }

type jsonOutput struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	CellSize float64      `json:"cell_size"`
	Seed     uint64       `json:"seed,omitempty"`
	Style    string       `json:"style,omitempty"`
	Spectrum string       `json:"spectrum,omitempty"`
	Paths    [][]jsonStep `json:"paths"`
}

type jsonStep struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Prev    string `json:"prev,omitempty"`
	Next    string `json:"next,omitempty"`
	Edges   uint8  `json:"edges"`
	Hachure int    `json:"hachure"`
	Color   string `json:"color"`
	Stroke  string `json:"stroke,omitempty"`
}

// Document is the parsed form of a JSON export.
type Document struct {
	Scene    render.Scene
	Style    string
	Spectrum string
}

// RenderJSON exports the scene as a pretty-printed JSON document, one array
// of steps per path.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify scene and is safe to call concurrently.
func RenderJSON(scene render.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    scene.Width,
		Height:   scene.Height,
		CellSize: scene.CellSize,
		Seed:     scene.Seed,
		Style:    r.style,
		Spectrum: r.spectrum,
		Paths:    make([][]jsonStep, 0, scene.Paths),
	}
	for _, s := range scene.Steps {
		for len(out.Paths) <= s.Path {
			out.Paths = append(out.Paths, nil)
		}
		out.Paths[s.Path] = append(out.Paths[s.Path], jsonStep{
			X:       s.Cell.X,
			Y:       s.Cell.Y,
			Prev:    optString(s.Prev),
			Next:    optString(s.Next),
			Edges:   uint8(s.Edges),
			Hachure: int(s.Hachure),
			Color:   s.Color,
			Stroke:  s.Stroke,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func optString(o grid.OptDirection) string {
	if d, ok := o.Get(); ok {
		return d.String()
	}
	return ""
}

// ReadJSON parses a document written by [RenderJSON]. Every step must lie
// inside the grid and carry the edge mask and hachure angle its directions
// imply.
func ReadJSON(data []byte) (Document, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid drawing JSON")
	}
	if err := errs.ValidateDimensions(in.Width, in.Height); err != nil {
		return Document{}, err
	}
	if err := errs.ValidateCellSize(in.CellSize); err != nil {
		return Document{}, err
	}

	scene := render.Scene{
		Width:    in.Width,
		Height:   in.Height,
		CellSize: in.CellSize,
		Seed:     in.Seed,
		Paths:    len(in.Paths),
	}
	for pi, path := range in.Paths {
		for si, js := range path {
			step, err := parseStep(js, in.Width, in.Height)
			if err != nil {
				return Document{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "path %d step %d", pi, si)
			}
			scene.Steps = append(scene.Steps, render.SceneStep{
				PathStep: step,
				Path:     pi,
				Index:    len(scene.Steps),
				Color:    js.Color,
				Stroke:   js.Stroke,
			})
		}
	}
	return Document{Scene: scene, Style: in.Style, Spectrum: in.Spectrum}, nil
}

func parseStep(js jsonStep, width, height int) (grid.PathStep, error) {
	if js.X < 0 || js.Y < 0 || js.X >= width || js.Y >= height {
		return grid.PathStep{}, fmt.Errorf("cell (%d,%d) outside %dx%d grid", js.X, js.Y, width, height)
	}
	prev, err := parseOpt(js.Prev)
	if err != nil {
		return grid.PathStep{}, err
	}
	next, err := parseOpt(js.Next)
	if err != nil {
		return grid.PathStep{}, err
	}
	step := grid.NewPathStep(grid.Coord{X: js.X, Y: js.Y}, prev, next)
	if uint8(step.Edges) != js.Edges || int(step.Hachure) != js.Hachure {
		return grid.PathStep{}, fmt.Errorf("edges %d / hachure %d do not match directions %s -> %s",
			js.Edges, js.Hachure, prev, next)
	}
	return step, nil
}

func parseOpt(s string) (grid.OptDirection, error) {
	if s == "" {
		return grid.OptDirection{}, nil
	}
	d, err := grid.ParseDirection(s)
	if err != nil {
		return grid.OptDirection{}, err
	}
	return grid.Some(d), nil
}
