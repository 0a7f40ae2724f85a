// Package pkg provides the core libraries for snaker grid drawings.
//
// # Overview
//
// Snaker covers a rectangular grid with random walks ("snakes") that never
// cross one another, then draws every walk as a chain of coloured blocks.
// The pkg directory is organized into three areas:
//
//  1. Domain logic: [grid] walks, [palette] colours, [render] scenes
//  2. Orchestration: [pipeline] (generate → render) and [animate]
//  3. Infrastructure: [cache], [storage], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	grid.Session (fill the grid with walks)
//	         ↓
//	render.BuildScene (paint each step from a palette cycle)
//	         ↓
//	render/sink (SVG, PNG, PDF, JSON, Graphviz DOT)
//
// # Quick Start
//
// Fill a grid and render it by hand:
//
//	session, _ := grid.NewSession(40, 30, grid.NewRand(7))
//	var paths []grid.Path
//	for p, err := range session.FillAll() {
//	    if err != nil {
//	        return err
//	    }
//	    paths = append(paths, p)
//	}
//	spectrum, _ := palette.New(palette.Dusk, nil)
//	cycle := palette.NewCycle(spectrum.Colors(palette.DefaultSteps))
//	scene := render.BuildScene(40, 30, 20, 7, paths, cycle)
//	svg := sink.RenderSVG(scene, sink.WithStyle(handdrawn.New(7)))
//
// Or let the pipeline do it, with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache("example"), nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Width: 40, Height: 30, Seed: 7})
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// [grid] - Visited-cell tracking, walk generation, and the per-step edge
// masks and hachure angles a renderer needs.
//
// [palette] - Spectrum presets, Lab interpolation into a colour cycle, and
// stroke colours derived from fills.
//
// [render] - Scenes, block geometry and grid lines. Subpackages hold output
// sinks ([render/sink]) and visual styles ([render/styles]).
//
// [pipeline] - Generate → render orchestration shared by the CLI and the
// HTTP server. Deterministic in its options, so results are cacheable.
//
// [animate] - Step queue drained at a fixed interval, for paced replays.
//
// [cache] - File, Redis and null caches for scenes and artifacts.
//
// [storage] - Drawing records in memory or MongoDB.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/grid
// [palette]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/palette
// [render]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/render/styles
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/pipeline
// [animate]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/animate
// [cache]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/storage
// [observability]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/snaker/pkg/errors
package pkg
