package maze

// Direction is one of the four grid-neighbour sides of a node.
type Direction uint8

const (
	Up    Direction = iota // y - 1
	Down                   // y + 1
	Left                   // x - 1
	Right                  // x + 1
)

// Directions lists every direction in a fixed order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Delta returns the grid index offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	panic("maze: invalid direction")
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Horizontal reports whether the direction moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "invalid"
}
