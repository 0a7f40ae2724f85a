package grid

// PathStep is one visited cell together with the metadata a renderer needs.
type PathStep struct {
	Cell    Coord
	Prev    OptDirection // direction the walk moved to enter Cell
	Next    OptDirection // direction the walk moved to leave Cell
	Edges   EdgeMask
	Hachure HachureAngle
}

// NewPathStep builds a step for c from its entry and exit directions.
func NewPathStep(c Coord, prev, next OptDirection) PathStep {
	return PathStep{
		Cell:    c,
		Prev:    prev,
		Next:    next,
		Edges:   ResolveEdges(prev, next),
		Hachure: ResolveHachure(prev, next),
	}
}

// Path is one unbroken walk. It always holds at least one step.
type Path []PathStep

// Cells returns the coordinates of p in walk order.
func (p Path) Cells() []Coord {
	cells := make([]Coord, len(p))
	for i, s := range p {
		cells[i] = s.Cell
	}
	return cells
}

// GeneratePath walks from a random unvisited cell until it reaches a dead
// end, marking every cell it passes as visited. It fails with
// GRID_EXHAUSTED when no unvisited cell is left to start from.
//
// The walk is a loop over (current cell, previous direction) and always
// terminates: every iteration consumes one unvisited cell of a finite grid.
func GeneratePath(t *Tracker, rng Rand) (Path, error) {
	cur, err := t.TakeUnvisited()
	if err != nil {
		return nil, err
	}

	var (
		path Path
		prev OptDirection
	)
	for {
		t.MarkVisited(cur)
		dir, next, ok := ChooseNext(rng, t, cur)
		if !ok {
			path = append(path, NewPathStep(cur, prev, OptDirection{}))
			return path, nil
		}
		path = append(path, NewPathStep(cur, prev, Some(dir)))
		cur, prev = next, Some(dir)
	}
}
