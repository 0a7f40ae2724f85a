// Package render turns filled grids into drawable scenes.
//
// # Overview
//
// The [grid] package produces paths of cells with edge masks and hachure
// angles. This package adds everything a renderer needs on top:
//
//   - Colours: [Painter] assigns each step a fill and border colour from a
//     [palette.Cycle]
//   - Geometry: [BlockGeometry] computes the fill polygon and border
//     segments of a cell from its edge mask
//   - Background: [BuildGridLines] computes the grid and its frame
//   - Format conversion: [ToPDF] and [ToPNG] convert SVG via rsvg-convert
//
// # Scenes
//
// A [Scene] is the complete, ordered list of painted steps for a grid.
// Scenes are plain data so they can be cached, serialized, and rendered by
// any sink:
//
//	paths := ... // from grid.Session.FillAll
//	scene := render.BuildScene(w, h, 30, seed, paths, palette.NewCycle(colors))
//	svg := sink.RenderSVG(scene, sink.WithStyle(handdrawn.New(seed)))
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// Sinks live in [sink], visual styles in [styles].
//
// [grid]: github.com/matzehuels/snaker/pkg/grid
// [sink]: github.com/matzehuels/snaker/pkg/render/sink
// [styles]: github.com/matzehuels/snaker/pkg/render/styles
package render
