package render

import "github.com/matzehuels/snaker/pkg/grid"

const (
	// BlockMargin is the inset, as a fraction of the cell size, that keeps a
	// block's open sides away from the closed ones.
	BlockMargin = 0.1
	// NormalLineOverhang is how far, as a fraction of the cell size, the
	// border lines of a plain rectangular block extend past its corners.
	NormalLineOverhang = 0.12
	// LineWidthRatio sets border line width relative to the cell size.
	LineWidthRatio = 0.06
)

// Point is a pixel position.
type Point struct {
	X, Y float64
}

// Segment is a straight border line.
type Segment struct {
	A, B Point
}

// Block is the drawable shape of one cell: a fill polygon plus the border
// lines on its closed sides.
type Block struct {
	Polygon []Point
	Lines   []Segment
	Normal  bool // plain rectangle with overhanging lines
}

// BlockGeometry returns the shape of the size×size cell whose top-left
// corner is (x, y), for a cell whose closed sides are mask.
//
// Named points around the cell, with m the margin:
//
//	. b . . c .
//	e f . . g h
//	. . . . . .
//	i j . . k l
//	. n . . o .
//
// Open sides run to the cell edge so consecutive blocks of a path join up;
// closed sides sit one margin inside it. Masks a walk cannot produce fall
// back to the plain rectangle.
func BlockGeometry(x, y, size float64, mask grid.EdgeMask) Block {
	var (
		m      = size * BlockMargin
		left   = x
		right  = x + size
		top    = y
		bottom = y + size
	)
	var (
		b = Point{left + m, top}
		c = Point{right - m, top}
		e = Point{left, top + m}
		f = Point{left + m, top + m}
		g = Point{right - m, top + m}
		h = Point{right, top + m}
		i = Point{left, bottom - m}
		j = Point{left + m, bottom - m}
		k = Point{right - m, bottom - m}
		l = Point{right, bottom - m}
		n = Point{left + m, bottom}
		o = Point{right - m, bottom}
	)
	seg := func(a, b Point) Segment { return Segment{a, b} }

	switch mask {
	case grid.AllEdges:
		return Block{
			Polygon: []Point{f, g, k, j},
			Lines:   []Segment{seg(f, g), seg(g, k), seg(k, j), seg(j, f)},
		}
	case grid.EdgeTop | grid.EdgeBottom:
		return Block{
			Polygon: []Point{e, h, l, i},
			Lines:   []Segment{seg(e, h), seg(l, i)},
		}
	case grid.EdgeLeft | grid.EdgeRight:
		return Block{
			Polygon: []Point{b, c, o, n},
			Lines:   []Segment{seg(b, n), seg(c, o)},
		}
	case grid.AllEdges &^ grid.EdgeTop:
		return Block{
			Polygon: []Point{b, c, k, j},
			Lines:   []Segment{seg(c, k), seg(k, j), seg(j, b)},
		}
	case grid.AllEdges &^ grid.EdgeRight:
		return Block{
			Polygon: []Point{f, h, l, j},
			Lines:   []Segment{seg(f, h), seg(l, j), seg(j, f)},
		}
	case grid.AllEdges &^ grid.EdgeBottom:
		return Block{
			Polygon: []Point{f, g, o, n},
			Lines:   []Segment{seg(f, g), seg(g, o), seg(n, f)},
		}
	case grid.AllEdges &^ grid.EdgeLeft:
		return Block{
			Polygon: []Point{e, g, k, i},
			Lines:   []Segment{seg(e, g), seg(g, k), seg(k, i)},
		}
	case grid.EdgeLeft | grid.EdgeBottom:
		return Block{
			Polygon: []Point{j, b, c, g, h, l},
			Lines:   []Segment{seg(c, g), seg(g, h), seg(l, j), seg(j, b)},
		}
	case grid.EdgeLeft | grid.EdgeTop:
		return Block{
			Polygon: []Point{f, h, l, k, o, n},
			Lines:   []Segment{seg(f, h), seg(l, k), seg(k, o), seg(n, f)},
		}
	case grid.EdgeRight | grid.EdgeBottom:
		return Block{
			Polygon: []Point{e, f, b, c, k, i},
			Lines:   []Segment{seg(e, f), seg(f, b), seg(c, k), seg(k, i)},
		}
	case grid.EdgeRight | grid.EdgeTop:
		return Block{
			Polygon: []Point{e, g, o, n, j, i},
			Lines:   []Segment{seg(e, g), seg(g, o), seg(n, j), seg(j, i)},
		}
	}
	return NormalBlock(x, y, size, mask)
}

// NormalBlock returns the full cell rectangle with a border line for each
// side in mask, each line overhanging the corners.
func NormalBlock(x, y, size float64, mask grid.EdgeMask) Block {
	var (
		off    = size * NormalLineOverhang
		left   = x
		right  = x + size
		top    = y
		bottom = y + size
	)
	blk := Block{
		Polygon: []Point{{left, top}, {right, top}, {right, bottom}, {left, bottom}},
		Normal:  true,
	}
	if mask.Has(grid.EdgeTop) {
		blk.Lines = append(blk.Lines, Segment{Point{left - off, top}, Point{right + off, top}})
	}
	if mask.Has(grid.EdgeRight) {
		blk.Lines = append(blk.Lines, Segment{Point{right, top - off}, Point{right, bottom + off}})
	}
	if mask.Has(grid.EdgeBottom) {
		blk.Lines = append(blk.Lines, Segment{Point{left - off, bottom}, Point{right + off, bottom}})
	}
	if mask.Has(grid.EdgeLeft) {
		blk.Lines = append(blk.Lines, Segment{Point{left, top - off}, Point{left, bottom + off}})
	}
	return blk
}
