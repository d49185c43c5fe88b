package labyrinth

import "strings"

// Labyrinth is a rectangular grid of cells with a single player position.
// The zero value is not ready for use; call New.
type Labyrinth struct {
	width  int
	height int
	cells  []CellType // row-major: row*width + col
	player Coordinate
}

// New returns an unsized labyrinth. Width and Height report -1 until SetSize
// or a successful load.
func New() *Labyrinth {
	return &Labyrinth{
		width:  -1,
		height: -1,
	}
}

// SetSize allocates a width x height grid of empty cells. If either argument
// is negative the call does nothing. The player position is not reset.
func (l *Labyrinth) SetSize(width, height int) {
	if width < 0 || height < 0 {
		return
	}
	l.width = width
	l.height = height
	l.cells = make([]CellType, width*height)
}

// Width returns the number of columns, or -1 if the grid was never sized.
func (l *Labyrinth) Width() int {
	return l.width
}

// Height returns the number of rows, or -1 if the grid was never sized.
func (l *Labyrinth) Height() int {
	return l.height
}

// InBounds reports whether c lies within [0,width) x [0,height).
func (l *Labyrinth) InBounds(c Coordinate) bool {
	return c.Col >= 0 && c.Col < l.width && c.Row >= 0 && c.Row < l.height
}

// index is the only place cells are addressed.
func (l *Labyrinth) index(c Coordinate) (int, error) {
	if !l.InBounds(c) {
		return 0, &CellError{Coord: c}
	}
	return c.Row*l.width + c.Col, nil
}

// Cell returns the type of the cell at c.
func (l *Labyrinth) Cell(c Coordinate) (CellType, error) {
	i, err := l.index(c)
	if err != nil {
		return Empty, err
	}
	return l.cells[i], nil
}

// SetCell sets the cell at c. Setting a Start cell also moves the player there;
// any number of cells may be Start, the last one set wins.
func (l *Labyrinth) SetCell(c Coordinate, t CellType) error {
	i, err := l.index(c)
	if err != nil {
		return err
	}
	l.cells[i] = t
	if t == Start {
		l.player = c
	}
	return nil
}

// PlayerPosition returns the player's coordinate as last set.
func (l *Labyrinth) PlayerPosition() Coordinate {
	return l.player
}

// Place puts the player on c without touching the cell. Used when restoring
// a saved game.
func (l *Labyrinth) Place(c Coordinate) error {
	if _, err := l.index(c); err != nil {
		return err
	}
	l.player = c
	return nil
}

// HasPlayerFinished reports whether the player stands on an End cell.
func (l *Labyrinth) HasPlayerFinished() bool {
	t, err := l.Cell(l.player)
	return err == nil && t == End
}

// passable reports whether c is inside the grid and not a wall.
func (l *Labyrinth) passable(c Coordinate) bool {
	t, err := l.Cell(c)
	return err == nil && t != Wall
}

// PossibleMoves returns the directions the player can move in, ordered
// West, East, North, South. Neighbours outside the grid are never offered.
func (l *Labyrinth) PossibleMoves() []Direction {
	possible := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if l.passable(l.player.Step(d)) {
			possible = append(possible, d)
		}
	}
	return possible
}

// CanMove reports whether MovePlayer(d) would succeed.
func (l *Labyrinth) CanMove(d Direction) bool {
	if _, ok := directionNames[d]; !ok {
		return false
	}
	return l.passable(l.player.Step(d))
}

// MovePlayer moves the player one cell in direction d. It returns ErrInvalidMove
// and leaves the position unchanged if the target is off the grid or a wall.
func (l *Labyrinth) MovePlayer(d Direction) error {
	if !l.CanMove(d) {
		return ErrInvalidMove
	}
	l.player = l.player.Step(d)
	return nil
}

// Count returns the number of cells of type t.
func (l *Labyrinth) Count(t CellType) int {
	n := 0
	for _, cell := range l.cells {
		if cell == t {
			n++
		}
	}
	return n
}

// Find returns the coordinates of every cell of type t in row order.
func (l *Labyrinth) Find(t CellType) []Coordinate {
	var found []Coordinate
	for i, cell := range l.cells {
		if cell == t {
			found = append(found, Coordinate{Col: i % l.width, Row: i / l.width})
		}
	}
	return found
}

// Rows renders the grid as one string per row using the map characters.
func (l *Labyrinth) Rows() []string {
	if l.width < 0 || l.height < 0 {
		return nil
	}
	rows := make([]string, l.height)
	for r := 0; r < l.height; r++ {
		row := make([]byte, l.width)
		for c := 0; c < l.width; c++ {
			row[c] = l.cells[r*l.width+c].Char()
		}
		rows[r] = string(row)
	}
	return rows
}

func (l *Labyrinth) String() string {
	return strings.Join(l.Rows(), "\n")
}
