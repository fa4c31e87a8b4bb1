package maze

import "fmt"

// Cell is a grid coordinate, X is the column and Y the row
type Cell struct {
	X int `json:"x" toml:"x" yaml:"x"`
	Y int `json:"y" toml:"y" yaml:"y"`
}

// Add returns the cell offset by (dx, dy)
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns |a.X-b.X| + |a.Y-b.Y|
func Manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Move is one of the four orthogonal steps
type Move uint8

const (
	Up Move = iota
	Down
	Left
	Right
)

// Moves is the closed move vocabulary in declaration order
var Moves = [...]Move{Up, Down, Left, Right}

var moveDeltas = [...][2]int{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

var moveNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// Delta returns the coordinate offset of the move
func (m Move) Delta() (dx, dy int) {
	d := moveDeltas[m&3]
	return d[0], d[1]
}

func (m Move) String() string {
	if int(m) >= len(moveNames) {
		return fmt.Sprintf("move(%d)", m)
	}
	return moveNames[m]
}

// ParseMove is the inverse of Move.String
func ParseMove(s string) (Move, error) {
	for _, m := range Moves {
		if moveNames[m] == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("maze: unknown move %q", s)
}

// MarshalText encodes the move by name
func (m Move) MarshalText() ([]byte, error) {
	if int(m) >= len(moveNames) {
		return nil, fmt.Errorf("maze: invalid move %d", m)
	}
	return []byte(moveNames[m]), nil
}

// UnmarshalText decodes a move name
func (m *Move) UnmarshalText(text []byte) error {
	v, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
