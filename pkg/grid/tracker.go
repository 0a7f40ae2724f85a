package grid

import (
	errs "github.com/matzehuels/snaker/pkg/errors"
)

// Tracker records which cells of a width×height grid have been visited and
// keeps a shuffled pool of candidate start cells.
//
// The pool is shuffled once per Initialize and consumed from the end. A
// popped cell that has been visited in the meantime (by a walk passing
// through it) is discarded, so every pop is O(1) amortized and the pool is
// drained at most once per session.
type Tracker struct {
	width, height int
	visited       []bool
	count         int
	pool          []Coord
	rng           Rand
}

// NewTracker creates a tracker for a width×height grid.
// It fails with INVALID_DIMENSIONS when either side is not positive.
func NewTracker(width, height int, rng Rand) (*Tracker, error) {
	t := &Tracker{rng: rng}
	if err := t.Initialize(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Initialize replaces all state with a fresh width×height grid: every cell
// unvisited, pool holding every cell in uniformly random order.
// On error the previous state is left untouched.
func (t *Tracker) Initialize(width, height int) error {
	if err := errs.ValidateDimensions(width, height); err != nil {
		return err
	}
	t.width, t.height = width, height
	t.visited = make([]bool, width*height)
	t.count = 0
	t.seed()
	return nil
}

// seed refills the pool with every coordinate and shuffles it.
func (t *Tracker) seed() {
	n := t.width * t.height
	if cap(t.pool) < n {
		t.pool = make([]Coord, 0, n)
	}
	t.pool = t.pool[:0]
	for x := range t.width {
		for y := range t.height {
			t.pool = append(t.pool, Coord{X: x, Y: y})
		}
	}
	Shuffle(t.rng, t.pool)
}

// Width returns the grid width in cells.
func (t *Tracker) Width() int { return t.width }

// Height returns the grid height in cells.
func (t *Tracker) Height() int { return t.height }

// Size returns width×height.
func (t *Tracker) Size() int { return len(t.visited) }

// Visited returns the number of visited cells.
func (t *Tracker) Visited() int { return t.count }

// InBounds reports whether c lies inside the grid.
func (t *Tracker) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < t.width && c.Y >= 0 && c.Y < t.height
}

// IsVisited reports whether c has been visited. Cells outside the grid
// count as visited so a walk never steps off it.
func (t *Tracker) IsVisited(c Coord) bool {
	if !t.InBounds(c) {
		return true
	}
	return t.visited[t.index(c)]
}

// MarkVisited records c as visited. Marking twice, or marking a cell
// outside the grid, has no effect.
func (t *Tracker) MarkVisited(c Coord) {
	if !t.InBounds(c) {
		return
	}
	i := t.index(c)
	if t.visited[i] {
		return
	}
	t.visited[i] = true
	t.count++
}

// TakeUnvisited pops cells from the pool until it finds one that has not
// been visited. If the pool runs dry while unvisited cells remain it is
// re-seeded. Fails with GRID_EXHAUSTED once every cell is visited.
func (t *Tracker) TakeUnvisited() (Coord, error) {
	if t.count >= len(t.visited) {
		return Coord{}, errs.New(errs.ErrCodeGridExhausted, "all %d cells visited", len(t.visited))
	}
	for {
		if len(t.pool) == 0 {
			t.seed()
		}
		last := len(t.pool) - 1
		c := t.pool[last]
		t.pool = t.pool[:last]
		if !t.IsVisited(c) {
			return c, nil
		}
	}
}

func (t *Tracker) index(c Coord) int {
	return c.Y*t.width + c.X
}
