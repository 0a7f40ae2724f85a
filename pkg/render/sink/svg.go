package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/snaker/pkg/render"
	"github.com/matzehuels/snaker/pkg/render/styles"
)

// framePadding leaves room, in cells, for the frame and for line overhang.
const framePadding = 0.15

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	gridLines  bool
	upTo       int
	background string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithGridLines() SVGOption           { return func(r *svgRenderer) { r.gridLines = true } }

// WithUpTo renders only the first n steps. Negative n renders all.
func WithUpTo(n int) SVGOption { return func(r *svgRenderer) { r.upTo = n } }

// WithBackground fills the canvas with color before drawing.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG draws scene as a standalone SVG document.
func RenderSVG(scene render.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	if r.upTo >= 0 {
		scene = scene.UpTo(r.upTo)
	}

	blocks := buildBlocks(scene)
	pad := scene.CellSize * framePadding
	w, h := scene.PixelWidth(), scene.PixelHeight()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		-pad, -pad, w+2*pad, h+2*pad, w+2*pad, h+2*pad)

	r.style.RenderDefs(&buf, collectFills(blocks))
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			-pad, -pad, w+2*pad, h+2*pad, styles.EscapeXML(r.background))
	}
	if r.gridLines {
		r.style.RenderGrid(&buf, render.BuildGridLines(scene.Width, scene.Height, scene.CellSize))
	}
	for _, b := range blocks {
		r.style.RenderBlock(&buf, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, upTo: -1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func buildBlocks(scene render.Scene) []styles.Block {
	blocks := make([]styles.Block, len(scene.Steps))
	for i, s := range scene.Steps {
		blocks[i] = styles.BlockFor(s, scene.CellSize)
	}
	return blocks
}

// collectFills returns the distinct fills of blocks in order of first use.
func collectFills(blocks []styles.Block) []styles.Fill {
	seen := make(map[styles.Fill]bool)
	var fills []styles.Fill
	for _, b := range blocks {
		if !seen[b.Fill] {
			seen[b.Fill] = true
			fills = append(fills, b.Fill)
		}
	}
	return fills
}
