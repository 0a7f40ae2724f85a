package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/snaker/pkg/render"
)

// Simple draws flat shapes with straight lines.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer, fills []Fill) {
	if len(fills) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, f := range fills {
		fmt.Fprintf(buf, `    <pattern id="%s" patternUnits="userSpaceOnUse" width="%.0f" height="%.0f" patternTransform="rotate(%d)">`+"\n",
			f.ID(), HachureGap, HachureGap, int(f.Angle))
		fmt.Fprintf(buf, `      <rect width="%.0f" height="%.0f" fill="%s" fill-opacity="0.45"/>`+"\n",
			HachureGap, HachureGap, EscapeXML(f.Color))
		fmt.Fprintf(buf, `      <line x1="%.0f" y1="0" x2="%.0f" y2="%.0f" stroke="%s" stroke-width="1.5"/>`+"\n",
			HachureGap/2, HachureGap/2, HachureGap, EscapeXML(f.Color))
		buf.WriteString("    </pattern>\n")
	}
	buf.WriteString("  </defs>\n")
}

func (Simple) RenderGrid(buf *bytes.Buffer, g render.GridLines) {
	buf.WriteString(`  <g class="grid">` + "\n")
	for _, l := range g.Lines {
		Line(buf, l, render.GridLineColor, g.LineWidth)
	}
	for _, l := range g.Frame {
		Line(buf, l, render.FrameColor, g.FrameWidth)
	}
	buf.WriteString("  </g>\n")
}

func (Simple) RenderBlock(buf *bytes.Buffer, b Block) {
	fmt.Fprintf(buf, `  <g id="block-%s" class="block">`+"\n", EscapeXML(b.ID))
	fmt.Fprintf(buf, `    <polygon points="%s" fill="url(#%s)" stroke="%s" stroke-width="1"/>`+"\n",
		Points(b.Polygon), b.Fill.ID(), render.BlockOutline)
	for _, l := range b.Lines {
		Line(buf, l, b.Stroke, b.StrokeWidth)
	}
	buf.WriteString("  </g>\n")
}
