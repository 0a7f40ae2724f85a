package render

import (
	"testing"

	"github.com/matzehuels/snaker/pkg/grid"
)

// walkMasks lists every edge mask a walk can produce.
func walkMasks() []grid.EdgeMask {
	seen := make(map[grid.EdgeMask]bool)
	var out []grid.EdgeMask
	add := func(m grid.EdgeMask) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	add(grid.ResolveEdges(grid.OptDirection{}, grid.OptDirection{}))
	for _, d := range grid.Directions {
		add(grid.ResolveEdges(grid.OptDirection{}, grid.Some(d)))
		add(grid.ResolveEdges(grid.Some(d), grid.OptDirection{}))
		for _, next := range grid.Directions {
			if next != d.Opposite() {
				add(grid.ResolveEdges(grid.Some(d), grid.Some(next)))
			}
		}
	}
	return out
}

func TestBlockGeometry_WalkMasks(t *testing.T) {
	masks := walkMasks()
	if len(masks) != 11 {
		t.Fatalf("walks produce %d masks, want 11", len(masks))
	}
	for _, m := range masks {
		t.Run(m.String(), func(t *testing.T) {
			b := BlockGeometry(0, 0, 10, m)
			if b.Normal {
				t.Errorf("mask %v fell back to a normal block", m)
			}
			if len(b.Lines) != m.Count() && m.Count() != 2 {
				t.Errorf("mask %v: %d lines", m, len(b.Lines))
			}
			for _, p := range b.Polygon {
				if p.X < 0 || p.X > 10 || p.Y < 0 || p.Y > 10 {
					t.Errorf("mask %v: point %v outside the cell", m, p)
				}
			}
		})
	}
}

func TestBlockGeometry_Literal(t *testing.T) {
	tests := []struct {
		name    string
		mask    grid.EdgeMask
		polygon []Point
		lines   int
	}{
		{"isolated", grid.AllEdges, []Point{{1, 1}, {9, 1}, {9, 9}, {1, 9}}, 4},
		{"vertical run", grid.EdgeLeft | grid.EdgeRight, []Point{{1, 0}, {9, 0}, {9, 10}, {1, 10}}, 2},
		{"horizontal run", grid.EdgeTop | grid.EdgeBottom, []Point{{0, 1}, {10, 1}, {10, 9}, {0, 9}}, 2},
		{"open top", grid.AllEdges &^ grid.EdgeTop, []Point{{1, 0}, {9, 0}, {9, 9}, {1, 9}}, 3},
		{"corner left-top", grid.EdgeLeft | grid.EdgeTop, []Point{{1, 1}, {10, 1}, {10, 9}, {9, 9}, {9, 10}, {1, 10}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BlockGeometry(0, 0, 10, tt.mask)
			if len(b.Polygon) != len(tt.polygon) {
				t.Fatalf("polygon = %v, want %v", b.Polygon, tt.polygon)
			}
			for i := range tt.polygon {
				if !near(b.Polygon[i], tt.polygon[i]) {
					t.Errorf("polygon[%d] = %v, want %v", i, b.Polygon[i], tt.polygon[i])
				}
			}
			if len(b.Lines) != tt.lines {
				t.Errorf("lines = %d, want %d", len(b.Lines), tt.lines)
			}
		})
	}
}

func TestBlockGeometry_Offset(t *testing.T) {
	a := BlockGeometry(0, 0, 30, grid.AllEdges)
	b := BlockGeometry(60, 90, 30, grid.AllEdges)
	for i := range a.Polygon {
		want := Point{a.Polygon[i].X + 60, a.Polygon[i].Y + 90}
		if !near(b.Polygon[i], want) {
			t.Errorf("polygon[%d] = %v, want %v", i, b.Polygon[i], want)
		}
	}
}

func TestNormalBlock(t *testing.T) {
	b := BlockGeometry(0, 0, 100, grid.EdgeTop)
	if !b.Normal {
		t.Fatal("single-edge mask should fall back to a normal block")
	}
	if len(b.Polygon) != 4 || len(b.Lines) != 1 {
		t.Fatalf("normal block: %d points, %d lines", len(b.Polygon), len(b.Lines))
	}
	want := Segment{Point{-12, 0}, Point{112, 0}}
	if !near(b.Lines[0].A, want.A) || !near(b.Lines[0].B, want.B) {
		t.Errorf("top line = %v, want %v", b.Lines[0], want)
	}

	if got := NormalBlock(0, 0, 10, 0); len(got.Lines) != 0 {
		t.Errorf("empty mask drew %d lines", len(got.Lines))
	}
}

func TestBuildGridLines(t *testing.T) {
	g := BuildGridLines(4, 3, 20)
	if len(g.Lines) != 7 {
		t.Errorf("lines = %d, want 7", len(g.Lines))
	}
	if len(g.Frame) != 4 {
		t.Errorf("frame = %d, want 4", len(g.Frame))
	}
	if g.LineWidth != 0.5 || g.FrameWidth != 2 {
		t.Errorf("widths = %v, %v; want 0.5, 2", g.LineWidth, g.FrameWidth)
	}
	if g.Frame[1].B != (Point{80, 60}) {
		t.Errorf("frame corner = %v, want (80,60)", g.Frame[1].B)
	}
}

func near(a, b Point) bool {
	const eps = 1e-9
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx < eps && dx > -eps && dy < eps && dy > -eps
}
