package grid

// VisitChecker answers whether a cell is unavailable to a walk.
type VisitChecker interface {
	IsVisited(c Coord) bool
}

// ChooseNext picks the next step of a walk standing on from. It tries the
// four directions in uniformly shuffled order and returns the first one
// leading to an unvisited cell. ok is false when every neighbour is visited
// or off-grid, which ends the walk.
func ChooseNext(rng Rand, v VisitChecker, from Coord) (dir Direction, next Coord, ok bool) {
	dirs := Directions
	Shuffle(rng, dirs[:])
	for _, d := range dirs {
		if c := from.Step(d); !v.IsVisited(c) {
			return d, c, true
		}
	}
	return 0, Coord{}, false
}
