package labyrinth

import (
	"errors"
	"fmt"
)

// Sentinel errors for labyrinth operations.
var (
	// ErrOutOfBounds indicates a coordinate outside the current grid.
	ErrOutOfBounds = errors.New("labyrinth: there are no cells in the labyrinth with the given coordinates")
	// ErrInvalidMove indicates a move into a wall or off the grid.
	ErrInvalidMove = errors.New("labyrinth: invalid move")
	// ErrUnknownDirection indicates a direction name that could not be parsed.
	ErrUnknownDirection = errors.New("labyrinth: unknown direction")

	// ErrNotFound indicates the map file does not exist.
	ErrNotFound = errors.New("labyrinth: map file not found")
	// ErrParse indicates a width or height line that is not a non-negative integer.
	ErrParse = errors.New("labyrinth: malformed dimension")
	// ErrMalformedRow indicates a missing row or a row shorter than the width.
	ErrMalformedRow = errors.New("labyrinth: malformed row")
)

// CellError reports an access to a coordinate outside the grid.
type CellError struct {
	Coord Coordinate
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOutOfBounds.Error(), e.Coord)
}

// Is makes errors.Is(err, ErrOutOfBounds) match.
func (e *CellError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// LoadErrorKind classifies a load failure
type LoadErrorKind int

const (
	NotFound LoadErrorKind = iota
	ParseError
	MalformedRow
)

func (k LoadErrorKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case ParseError:
		return "parse_error"
	case MalformedRow:
		return "malformed_row"
	}
	return "unknown"
}

func (k LoadErrorKind) sentinel() error {
	switch k {
	case NotFound:
		return ErrNotFound
	case ParseError:
		return ErrParse
	default:
		return ErrMalformedRow
	}
}

// LoadError is returned by Load and LoadFile.
// Line is 1-based and zero when the failure is not tied to a line.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *LoadError) Is(target error) bool {
	return target == e.Kind.sentinel()
}
