// Package sink provides output format renderers for scenes.
//
// # Overview
//
// A "sink" transforms a painted [render.Scene] into a final output format:
//
//   - SVG: the drawing itself, in any [styles.Style]
//   - JSON: the scene as data, readable again with [ReadJSON]
//   - DOT: the walks as a node-link graph, laid out by Graphviz
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithStyle(handdrawn.New(seed)),
//	    sink.WithGridLines(),
//	)
//
// [WithUpTo] renders only the first n steps, which is how animations and
// streamed previews draw partial scenes.
//
// # JSON Output
//
// [RenderJSON] groups steps by path and records every step's directions,
// edge mask, hachure angle and colours. [ReadJSON] parses the document back
// into a scene and rejects steps whose metadata does not match their
// directions.
//
// # DOT Output
//
// [ToDOT] pins every cell at its grid position and links consecutive steps
// of a path; [RenderDOTSVG] lays it out with the neato engine.
package sink
