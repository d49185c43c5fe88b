package labyrinth

import (
	"fmt"
	"strings"
)

// CellType tags a single grid cell
type CellType int

const (
	Empty CellType = iota
	Wall
	Start
	End
)

// Map characters used by the text format
const (
	WallChar  = 'W'
	StartChar = 'S'
	EndChar   = 'E'
	EmptyChar = '.'
)

var cellTypeNames = map[CellType]string{
	Empty: "empty",
	Wall:  "wall",
	Start: "start",
	End:   "end",
}

func (t CellType) String() string {
	if name, ok := cellTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CellType(%d)", int(t))
}

// Char returns the map character for the cell type
func (t CellType) Char() byte {
	switch t {
	case Wall:
		return WallChar
	case Start:
		return StartChar
	case End:
		return EndChar
	default:
		return EmptyChar
	}
}

// MarshalText implements encoding.TextMarshaler
func (t CellType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *CellType) UnmarshalText(text []byte) error {
	parsed, err := ParseCellType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseCellType accepts either a cell type name ("wall") or its map character ("W").
func ParseCellType(s string) (CellType, error) {
	s = strings.TrimSpace(s)
	for t, name := range cellTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	if len(s) == 1 {
		return cellTypeFromChar(s[0]), nil
	}
	return Empty, fmt.Errorf("labyrinth: unknown cell type %q", s)
}

// cellTypeFromChar maps a map character to its cell type; unknown characters are empty.
func cellTypeFromChar(c byte) CellType {
	switch c {
	case WallChar:
		return Wall
	case EndChar:
		return End
	case StartChar:
		return Start
	default:
		return Empty
	}
}

// Coordinate identifies a cell by column and row
type Coordinate struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// NewCoordinate returns the coordinate (col, row)
func NewCoordinate(col, row int) Coordinate {
	return Coordinate{Col: col, Row: row}
}

// Step returns the neighbouring coordinate in direction d.
func (c Coordinate) Step(d Direction) Coordinate {
	dc, dr := d.Delta()
	return Coordinate{Col: c.Col + dc, Row: c.Row + dr}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Direction is a unit move request
type Direction int

const (
	West Direction = iota
	East
	North
	South
)

// Directions lists every direction in the order possible moves are reported.
var Directions = []Direction{West, East, North, South}

var directionNames = map[Direction]string{
	West:  "west",
	East:  "east",
	North: "north",
	South: "south",
}

var directionAliases = map[string]Direction{
	"west":  West,
	"east":  East,
	"north": North,
	"south": South,
	"left":  West,
	"right": East,
	"up":    North,
	"down":  South,
	"w":     West,
	"e":     East,
	"n":     North,
	"s":     South,
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Delta returns the column and row offsets of a single step.
func (d Direction) Delta() (dCol, dRow int) {
	switch d {
	case West:
		return -1, 0
	case East:
		return 1, 0
	case North:
		return 0, -1
	case South:
		return 0, 1
	}
	return 0, 0
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses compass names and the up/down/left/right aliases, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	if d, ok := directionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return West, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}
