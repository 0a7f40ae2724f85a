package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/snaker/pkg/render"
)

// dotCellInches is the distance between neighbouring cells in the graph.
const dotCellInches = 0.5

// DOTOptions configures node-link rendering.
type DOTOptions struct {
	// Detailed labels each node with its cell, edge mask and hachure angle.
	// When false, nodes are unlabeled colour swatches.
	Detailed bool
}

// ToDOT converts a scene to Graphviz DOT: one node per step, pinned at its
// cell position, and one edge per move of a walk.
func ToDOT(scene render.Scene, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fixedsize=true, width=0.35, height=0.35, fontsize=8, penwidth=2];\n")
	buf.WriteString("  edge [arrowsize=0.4, penwidth=2];\n")
	buf.WriteString("\n")

	for _, s := range scene.Steps {
		label := ""
		if opts.Detailed {
			label = fmt.Sprintf("%d,%d\n%s\n%s", s.Cell.X, s.Cell.Y, s.Edges, s.Hachure)
		}
		// neato's y axis points up
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.2f,%.2f!\", fillcolor=%q, color=%q];\n",
			nodeID(s), label,
			float64(s.Cell.X)*dotCellInches, float64(-s.Cell.Y)*dotCellInches,
			s.Color, s.Stroke)
	}

	buf.WriteString("\n")
	for i := 1; i < len(scene.Steps); i++ {
		prev, cur := scene.Steps[i-1], scene.Steps[i]
		if prev.Path != cur.Path {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", nodeID(prev), nodeID(cur), prev.Stroke)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(s render.SceneStep) string {
	return fmt.Sprintf("%d,%d", s.Cell.X, s.Cell.Y)
}

// RenderDOTSVG lays out a DOT graph with neato, honouring pinned
// positions, and renders it to SVG.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's <svg> header, which carries pt
// units and a transform-dependent size, with a plain pixel viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
