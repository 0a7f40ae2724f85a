// Package styles defines how a scene is drawn as SVG.
//
// A [Style] receives ready-made geometry (fill polygons, border segments,
// grid lines) and decides only how it looks. Two styles ship with snaker:
//
//   - [Simple]: flat polygons, straight lines, pattern hachure
//   - [handdrawn]: seeded wobble, doubled strokes, zig-zag hachure
//
// Hachure fills are shared: the sink collects the distinct [Fill] values of
// a scene and passes them to [Style.RenderDefs] once, and blocks reference
// them by [Fill.ID].
//
// [handdrawn]: github.com/matzehuels/snaker/pkg/render/styles/handdrawn
package styles
