package grid

import "fmt"

// Direction is one of the four cardinal moves on the grid.
// Y grows downwards, so Up decrements Y.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in clockwise order starting at Up.
var Directions = [4]Direction{Up, Right, Down, Left}

var directionNames = [4]string{"up", "right", "down", "left"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Delta returns the coordinate offset of one step in d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Vertical reports whether d is Up or Down.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// Side returns the cell border that faces d.
func (d Direction) Side() EdgeMask {
	switch d {
	case Up:
		return EdgeTop
	case Right:
		return EdgeRight
	case Down:
		return EdgeBottom
	case Left:
		return EdgeLeft
	}
	return 0
}

// ParseDirection parses the lowercase name produced by String.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// OptDirection is a Direction that may be absent. The zero value is absent.
// The first step of a path has no previous direction and the last step has
// no next one.
type OptDirection struct {
	Direction Direction
	Valid     bool
}

// Some wraps d as a present OptDirection.
func Some(d Direction) OptDirection {
	return OptDirection{Direction: d, Valid: true}
}

// Get returns the direction and whether it is present.
func (o OptDirection) Get() (Direction, bool) {
	return o.Direction, o.Valid
}

func (o OptDirection) String() string {
	if !o.Valid {
		return "none"
	}
	return o.Direction.String()
}

// Coord is a cell position. X grows to the right, Y grows downwards.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the neighbouring coordinate in direction d.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Adjacent reports whether o is one of the four orthogonal neighbours of c.
func (c Coord) Adjacent(o Coord) bool {
	dx, dy := abs(c.X-o.X), abs(c.Y-o.Y)
	return dx+dy == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
