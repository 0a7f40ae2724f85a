package handdrawn

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/snaker/pkg/render"
)

// wobbledLine draws a→b as a single quadratic curve. Endpoints move by up
// to roughness/2 and the control point bows sideways in proportion to the
// line length.
func wobbledLine(a, b render.Point, roughness float64, seed uint64, id string) string {
	r := newRNG(hash(id, seed))
	x1, y1 := a.X+r.jitter(roughness/2), a.Y+r.jitter(roughness/2)
	x2, y2 := b.X+r.jitter(roughness/2), b.Y+r.jitter(roughness/2)
	cx, cy := bow(x1, y1, x2, y2, roughness, r)
	return fmt.Sprintf("M%.2f,%.2f Q%.2f,%.2f %.2f,%.2f", x1, y1, cx, cy, x2, y2)
}

// wobbledPolygon closes pts with bowed edges. Each vertex is jittered once
// so that adjacent edges still meet.
func wobbledPolygon(pts []render.Point, roughness float64, seed uint64, id string) string {
	if len(pts) == 0 {
		return ""
	}
	r := newRNG(hash(id, seed))
	moved := make([]render.Point, len(pts))
	for i, p := range pts {
		moved[i] = render.Point{X: p.X + r.jitter(roughness/3), Y: p.Y + r.jitter(roughness/3)}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "M%.2f,%.2f", moved[0].X, moved[0].Y)
	for i := range moved {
		a, b := moved[i], moved[(i+1)%len(moved)]
		cx, cy := bow(a.X, a.Y, b.X, b.Y, roughness/2, r)
		fmt.Fprintf(&sb, " Q%.2f,%.2f %.2f,%.2f", cx, cy, b.X, b.Y)
	}
	sb.WriteString(" Z")
	return sb.String()
}

// bow returns a control point near the middle of a segment, pushed along
// its normal.
func bow(x1, y1, x2, y2, roughness float64, r *rng) (float64, float64) {
	mx, my := (x1+x2)/2, (y1+y2)/2
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return mx, my
	}
	amount := r.jitter(min(roughness, length*0.05+roughness/4))
	return mx - dy/length*amount, my + dx/length*amount
}

// zigzag returns one continuous stroke that sweeps a size×size tile in
// vertical runs gap apart, alternating down and up. Rotated by the hachure
// angle it becomes the hachure of a fill.
func zigzag(size, gap float64) string {
	var sb strings.Builder
	sb.WriteString("M0,0")
	down := true
	for x := 0.0; x < size; x += gap {
		y := 0.0
		if down {
			y = size
		}
		fmt.Fprintf(&sb, " L%.2f,%.2f", x+gap/2, y)
		fmt.Fprintf(&sb, " L%.2f,%.2f", x+gap, y)
		down = !down
	}
	return sb.String()
}
