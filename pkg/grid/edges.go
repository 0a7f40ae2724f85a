package grid

import (
	"math/bits"
	"strconv"
	"strings"
)

// EdgeMask is a set of cell borders. A set bit means the border is drawn.
type EdgeMask uint8

const (
	EdgeTop EdgeMask = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft

	AllEdges = EdgeTop | EdgeRight | EdgeBottom | EdgeLeft
)

// Has reports whether every edge in e is set in m.
func (m EdgeMask) Has(e EdgeMask) bool {
	return m&e == e
}

// Count returns the number of drawn borders.
func (m EdgeMask) Count() int {
	return bits.OnesCount8(uint8(m & AllEdges))
}

func (m EdgeMask) String() string {
	if m&AllEdges == 0 {
		return "none"
	}
	var parts []string
	for _, e := range []struct {
		bit  EdgeMask
		name string
	}{{EdgeTop, "top"}, {EdgeRight, "right"}, {EdgeBottom, "bottom"}, {EdgeLeft, "left"}} {
		if m.Has(e.bit) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// HachureAngle is the fill-texture orientation of a cell in degrees.
type HachureAngle int

const (
	HachureVertical   HachureAngle = 0
	HachureRising     HachureAngle = 45
	HachureFalling    HachureAngle = -45
	HachureHorizontal HachureAngle = 90
)

func (a HachureAngle) String() string {
	return strconv.Itoa(int(a)) + "°"
}

// ResolveEdges computes the borders drawn around a cell the walk entered
// moving prev and left moving next.
//
// Leaving in next keeps the three borders not facing next. Entering by
// prev additionally opens the border the walk came through. The result has
// four edges for an isolated cell, three for either end of a path, and two
// for any cell in between: an opposite pair on a straight run, an adjacent
// pair on a turn.
func ResolveEdges(prev, next OptDirection) EdgeMask {
	m := AllEdges
	if d, ok := next.Get(); ok {
		m &^= d.Side()
	}
	if d, ok := prev.Get(); ok {
		m &^= d.Opposite().Side()
	}
	return m
}

// ResolveHachure computes the fill angle for a cell entered moving prev and
// left moving next.
//
// Flow along one axis gives that axis' angle: 0° vertical, 90° horizontal,
// and an isolated cell is 0°. A turn gives −45° when it pairs Down with
// Right or Up with Left, and 45° when it pairs Up with Right or Down with
// Left, regardless of which of the two came first.
func ResolveHachure(prev, next OptDirection) HachureAngle {
	p, hasPrev := prev.Get()
	n, hasNext := next.Get()
	switch {
	case !hasPrev && !hasNext:
		return HachureVertical
	case !hasPrev:
		return axisAngle(n)
	case !hasNext:
		return axisAngle(p)
	case p.Vertical() == n.Vertical():
		return axisAngle(p)
	}

	v, h := p, n
	if !v.Vertical() {
		v, h = n, p
	}
	if (v == Down) == (h == Right) {
		return HachureFalling
	}
	return HachureRising
}

func axisAngle(d Direction) HachureAngle {
	if d.Vertical() {
		return HachureVertical
	}
	return HachureHorizontal
}
