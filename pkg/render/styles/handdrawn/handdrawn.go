package handdrawn

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/snaker/pkg/render"
	"github.com/matzehuels/snaker/pkg/render/styles"
)

const (
	// DefaultRoughness matches the jitter of a quick pen sketch.
	DefaultRoughness = 1.8

	tileRuns   = 4 // zig-zag runs per pattern tile; even, so tiles join up
	strokeGap  = 0.6
	fillFilter = "paper"
)

// HandDrawn is a [styles.Style] with seeded, reproducible wobble.
type HandDrawn struct {
	seed      uint64
	roughness float64
}

// Option configures a [HandDrawn] style.
type Option func(*HandDrawn)

// WithRoughness sets the jitter amplitude in pixels. Zero draws straight
// lines.
func WithRoughness(r float64) Option {
	return func(h *HandDrawn) { h.roughness = max(0, r) }
}

// New creates a hand-drawn style. The same seed always produces the same
// drawing.
func New(seed uint64, opts ...Option) *HandDrawn {
	h := &HandDrawn{seed: seed, roughness: DefaultRoughness}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HandDrawn) RenderDefs(buf *bytes.Buffer, fills []styles.Fill) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <filter id="%s" x="-5%%" y="-5%%" width="110%%" height="110%%">`+"\n", fillFilter)
	fmt.Fprintf(buf, `      <feTurbulence type="fractalNoise" baseFrequency="0.04" numOctaves="2" seed="%d" result="noise"/>`+"\n", h.seed%10000)
	fmt.Fprintf(buf, `      <feDisplacementMap in="SourceGraphic" in2="noise" scale="%.2f" xChannelSelector="R" yChannelSelector="G"/>`+"\n", h.roughness)
	buf.WriteString("    </filter>\n")

	tile := styles.HachureGap * tileRuns
	path := zigzag(tile, styles.HachureGap)
	for _, f := range fills {
		fmt.Fprintf(buf, `    <pattern id="%s" patternUnits="userSpaceOnUse" width="%.0f" height="%.0f" patternTransform="rotate(%d)">`+"\n",
			f.ID(), tile, tile, int(f.Angle))
		fmt.Fprintf(buf, `      <path d="%s" fill="none" stroke="%s" stroke-width="1.2" stroke-linejoin="round"/>`+"\n",
			path, styles.EscapeXML(f.Color))
		buf.WriteString("    </pattern>\n")
	}
	buf.WriteString("  </defs>\n")
}

func (h *HandDrawn) RenderGrid(buf *bytes.Buffer, g render.GridLines) {
	buf.WriteString(`  <g class="grid" fill="none" stroke-linecap="round">` + "\n")
	for i, l := range g.Lines {
		fmt.Fprintf(buf, `    <path d="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
			wobbledLine(l.A, l.B, h.roughness/3, h.seed, fmt.Sprintf("grid-%d", i)),
			render.GridLineColor, g.LineWidth)
	}
	for i, l := range g.Frame {
		fmt.Fprintf(buf, `    <path d="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
			wobbledLine(l.A, l.B, h.roughness, h.seed, fmt.Sprintf("frame-%d", i)),
			render.FrameColor, g.FrameWidth)
	}
	buf.WriteString("  </g>\n")
}

func (h *HandDrawn) RenderBlock(buf *bytes.Buffer, b styles.Block) {
	id := styles.EscapeXML(b.ID)
	fmt.Fprintf(buf, `  <g id="block-%s" class="block">`+"\n", id)
	fmt.Fprintf(buf, `    <path d="%s" fill="url(#%s)" stroke="%s" stroke-width="1" filter="url(#%s)"/>`+"\n",
		wobbledPolygon(b.Polygon, h.roughness, h.seed, b.ID), b.Fill.ID(), render.BlockOutline, fillFilter)

	stroke := styles.EscapeXML(b.Stroke)
	for i, l := range b.Lines {
		// a second, thinner pass offsets the pen like a retraced line
		for pass, width := range []float64{b.StrokeWidth, b.StrokeWidth * strokeGap} {
			key := fmt.Sprintf("%s/%d/%d", b.ID, i, pass)
			fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round"/>`+"\n",
				wobbledLine(l.A, l.B, h.roughness, h.seed, key), stroke, width)
		}
	}
	buf.WriteString("  </g>\n")
}
