package labyrinth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleMap = "3\n2\nSWE\n...\n"

func loadExample(t *testing.T) *Labyrinth {
	t.Helper()
	lab, err := Parse(strings.NewReader(exampleMap))
	require.NoError(t, err)
	return lab
}

func writeMap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNew_Defaults(t *testing.T) {
	lab := New()

	assert.Equal(t, -1, lab.Width())
	assert.Equal(t, -1, lab.Height())
	assert.Equal(t, Coordinate{0, 0}, lab.PlayerPosition())
	assert.False(t, lab.HasPlayerFinished())
	assert.Empty(t, lab.PossibleMoves())
}

func TestSetSize(t *testing.T) {
	lab := New()
	lab.SetSize(4, 3)

	assert.Equal(t, 4, lab.Width())
	assert.Equal(t, 3, lab.Height())
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			cell, err := lab.Cell(NewCoordinate(col, row))
			require.NoError(t, err)
			assert.Equal(t, Empty, cell)
		}
	}
}

func TestSetSize_ResetsCells(t *testing.T) {
	lab := loadExample(t)
	lab.SetSize(3, 2)

	assert.Equal(t, 0, lab.Count(Wall))
	assert.Equal(t, 0, lab.Count(End))
	// player coordinate survives a resize
	assert.Equal(t, Coordinate{0, 0}, lab.PlayerPosition())
}

func TestSetSize_NegativeIsNoOp(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"negative width", -1, 5},
		{"negative height", 5, -1},
		{"both negative", -3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lab := loadExample(t)
			before := lab.Rows()

			lab.SetSize(tt.width, tt.height)

			assert.Equal(t, 3, lab.Width())
			assert.Equal(t, 2, lab.Height())
			assert.Equal(t, before, lab.Rows())
		})
	}
}

func TestCell_RoundTrip(t *testing.T) {
	lab := New()
	lab.SetSize(3, 3)

	for _, ct := range []CellType{Wall, End, Empty, Start} {
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				c := NewCoordinate(col, row)
				require.NoError(t, lab.SetCell(c, ct))
				got, err := lab.Cell(c)
				require.NoError(t, err)
				assert.Equal(t, ct, got, "cell %s", c)
			}
		}
	}
}

func TestCell_OutOfBounds(t *testing.T) {
	lab := loadExample(t)

	coords := []Coordinate{
		{Col: -1, Row: 0},
		{Col: 0, Row: -1},
		{Col: 3, Row: 0},
		{Col: 0, Row: 2},
		{Col: 3, Row: 2},
		{Col: 100, Row: -100},
	}

	for _, c := range coords {
		t.Run(c.String(), func(t *testing.T) {
			_, err := lab.Cell(c)
			assert.ErrorIs(t, err, ErrOutOfBounds)

			var cellErr *CellError
			require.True(t, errors.As(err, &cellErr))
			assert.Equal(t, c, cellErr.Coord)

			err = lab.SetCell(c, Wall)
			assert.ErrorIs(t, err, ErrOutOfBounds)
		})
	}
}

func TestCell_UnsizedGrid(t *testing.T) {
	lab := New()

	_, err := lab.Cell(NewCoordinate(0, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSetCell_StartMovesPlayer(t *testing.T) {
	lab := New()
	lab.SetSize(3, 3)

	require.NoError(t, lab.SetCell(NewCoordinate(1, 1), Start))
	assert.Equal(t, NewCoordinate(1, 1), lab.PlayerPosition())

	// a second start overwrites the first
	require.NoError(t, lab.SetCell(NewCoordinate(2, 0), Start))
	assert.Equal(t, NewCoordinate(2, 0), lab.PlayerPosition())
	assert.Equal(t, 2, lab.Count(Start))

	// non-start cells leave the player alone
	require.NoError(t, lab.SetCell(NewCoordinate(0, 0), End))
	assert.Equal(t, NewCoordinate(2, 0), lab.PlayerPosition())
}

func TestLoad_Example(t *testing.T) {
	lab := New()
	require.NoError(t, lab.LoadFile(writeMap(t, exampleMap)))

	assert.Equal(t, 3, lab.Width())
	assert.Equal(t, 2, lab.Height())
	assert.Equal(t, NewCoordinate(0, 0), lab.PlayerPosition())

	cell, err := lab.Cell(NewCoordinate(1, 0))
	require.NoError(t, err)
	assert.Equal(t, Wall, cell)

	cell, err = lab.Cell(NewCoordinate(2, 0))
	require.NoError(t, err)
	assert.Equal(t, End, cell)

	cell, err = lab.Cell(NewCoordinate(0, 0))
	require.NoError(t, err)
	assert.Equal(t, Start, cell)

	assert.False(t, lab.HasPlayerFinished())
	assert.Equal(t, []string{"SWE", "..."}, lab.Rows())
}

func TestLoad_ColumnMajorMapping(t *testing.T) {
	lab, err := Parse(strings.NewReader("4\n3\n....\n..W.\n.S.E\n"))
	require.NoError(t, err)

	cell, err := lab.Cell(NewCoordinate(2, 1))
	require.NoError(t, err)
	assert.Equal(t, Wall, cell)

	cell, err = lab.Cell(NewCoordinate(3, 2))
	require.NoError(t, err)
	assert.Equal(t, End, cell)

	assert.Equal(t, NewCoordinate(1, 2), lab.PlayerPosition())
}

func TestLoad_LastStartWins(t *testing.T) {
	lab, err := Parse(strings.NewReader("3\n3\nS..\n...\n..S\n"))
	require.NoError(t, err)

	assert.Equal(t, NewCoordinate(2, 2), lab.PlayerPosition())
	assert.Equal(t, 2, lab.Count(Start))
}

func TestLoad_OtherCharactersAreEmpty(t *testing.T) {
	lab, err := Parse(strings.NewReader("5\n1\n #xw1\n"))
	require.NoError(t, err)

	assert.Equal(t, 5, lab.Count(Empty))
}

func TestLoad_LongRowsAndCRLF(t *testing.T) {
	lab, err := Parse(strings.NewReader("2\r\n2\r\nSEWWW\r\n..\r\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"SE", ".."}, lab.Rows())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    LoadErrorKind
		target  error
		line    int
	}{
		{"non-integer width", "abc\n2\nSWE\n...\n", ParseError, ErrParse, 1},
		{"non-integer height", "3\nx\nSWE\n...\n", ParseError, ErrParse, 2},
		{"negative width", "-3\n2\n", ParseError, ErrParse, 1},
		{"missing height", "3\n", ParseError, ErrParse, 2},
		{"empty file", "", ParseError, ErrParse, 1},
		{"short row", "3\n2\nSW\n...\n", MalformedRow, ErrMalformedRow, 3},
		{"missing row", "3\n2\nSWE\n", MalformedRow, ErrMalformedRow, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.kind, loadErr.Kind)
			assert.Equal(t, tt.line, loadErr.Line)
		})
	}
}

func TestLoad_HugeHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"product overflows int", "3037000500\n3037000500\nS\n", ErrParse},
		{"large grid without rows", "100000\n100000\nS\n", ErrMalformedRow},
		{"wide single row", "1000000000\n1\nSE\n", ErrMalformedRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lab := New()
			require.NotPanics(t, func() {
				err := lab.Load(strings.NewReader(tt.content))
				assert.ErrorIs(t, err, tt.target)
			})
			assert.Equal(t, -1, lab.Width())
		})
	}
}

func TestParseBounded(t *testing.T) {
	_, err := ParseBounded(strings.NewReader("5\n2\nS...E\n.....\n"), 4)
	assert.ErrorIs(t, err, ErrParse)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, 1, loadErr.Line)

	lab, err := ParseBounded(strings.NewReader("4\n2\nS..E\n....\n"), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, lab.Width())
}

func TestLoad_ReadError(t *testing.T) {
	diskErr := errors.New("disk unplugged")

	lab := New()
	err := lab.Load(iotest.ErrReader(diskErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, diskErr)
	assert.NotErrorIs(t, err, ErrParse)

	var loadErr *LoadError
	assert.False(t, errors.As(err, &loadErr))
}

func TestLoadFile_Directory(t *testing.T) {
	lab := New()
	err := lab.LoadFile(t.TempDir())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, -1, lab.Width())
}

func TestLoadFile_NotFound(t *testing.T) {
	lab := New()
	path := filepath.Join(t.TempDir(), "missing.txt")

	err := lab.LoadFile(path)
	assert.ErrorIs(t, err, ErrNotFound)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, NotFound, loadErr.Kind)
	assert.Equal(t, path, loadErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoadFile_ErrorCarriesPath(t *testing.T) {
	path := writeMap(t, "3\nnope\n")

	err := New().LoadFile(path)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
}

func TestLoad_FailureKeepsPreviousState(t *testing.T) {
	lab := loadExample(t)
	require.NoError(t, lab.MovePlayer(South))

	err := lab.Load(strings.NewReader("4\n4\nS...\n"))
	require.Error(t, err)

	assert.Equal(t, 3, lab.Width())
	assert.Equal(t, 2, lab.Height())
	assert.Equal(t, []string{"SWE", "..."}, lab.Rows())
	assert.Equal(t, NewCoordinate(0, 1), lab.PlayerPosition())
}

func TestMovePlayer_IntoWall(t *testing.T) {
	lab := loadExample(t)

	err := lab.MovePlayer(East)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, NewCoordinate(0, 0), lab.PlayerPosition())
}

func TestMovePlayer_OffGrid(t *testing.T) {
	lab := loadExample(t)

	for _, d := range []Direction{West, North} {
		err := lab.MovePlayer(d)
		assert.ErrorIs(t, err, ErrInvalidMove, "direction %s", d)
		assert.Equal(t, NewCoordinate(0, 0), lab.PlayerPosition())
	}
}

func TestMovePlayer_South(t *testing.T) {
	lab := loadExample(t)

	require.NoError(t, lab.MovePlayer(South))
	assert.Equal(t, NewCoordinate(0, 1), lab.PlayerPosition())

	err := lab.MovePlayer(South)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, NewCoordinate(0, 1), lab.PlayerPosition())
}

func TestMovePlayer_ReachEnd(t *testing.T) {
	lab := loadExample(t)

	for _, d := range []Direction{South, East, East, North} {
		require.NoError(t, lab.MovePlayer(d), "move %s", d)
	}

	assert.Equal(t, NewCoordinate(2, 0), lab.PlayerPosition())
	assert.True(t, lab.HasPlayerFinished())

	// play is not stopped by finishing
	require.NoError(t, lab.MovePlayer(South))
	assert.False(t, lab.HasPlayerFinished())
}

func TestMovePlayer_UnknownDirection(t *testing.T) {
	lab := loadExample(t)

	err := lab.MovePlayer(Direction(42))
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, NewCoordinate(0, 0), lab.PlayerPosition())
}

func TestPossibleMoves(t *testing.T) {
	lab, err := Parse(strings.NewReader("3\n3\n.W.\n.S.\n.W.\n"))
	require.NoError(t, err)

	assert.Equal(t, []Direction{West, East}, lab.PossibleMoves())

	require.NoError(t, lab.SetCell(NewCoordinate(0, 1), Wall))
	assert.Equal(t, []Direction{East}, lab.PossibleMoves())

	require.NoError(t, lab.SetCell(NewCoordinate(1, 0), Empty))
	assert.Equal(t, []Direction{East, North}, lab.PossibleMoves())
}

func TestPossibleMoves_NeverOffersWallsOrNegative(t *testing.T) {
	lab := loadExample(t)

	moves := lab.PossibleMoves()
	assert.Equal(t, []Direction{South}, moves)
	for _, d := range moves {
		next := lab.PlayerPosition().Step(d)
		cell, err := lab.Cell(next)
		require.NoError(t, err)
		assert.NotEqual(t, Wall, cell)
	}
}

// The right and bottom edges are bounds-checked like the left and top ones:
// a player on the last column or row is never offered a step off the grid.
func TestPossibleMoves_RightAndBottomEdges(t *testing.T) {
	lab := New()
	lab.SetSize(3, 3)
	require.NoError(t, lab.SetCell(NewCoordinate(2, 1), Start))

	moves := lab.PossibleMoves()
	assert.NotContains(t, moves, East)
	assert.Equal(t, []Direction{West, North, South}, moves)

	require.NoError(t, lab.SetCell(NewCoordinate(2, 2), Start))
	moves = lab.PossibleMoves()
	assert.NotContains(t, moves, East)
	assert.NotContains(t, moves, South)
	assert.Equal(t, []Direction{West, North}, moves)

	for _, d := range moves {
		assert.True(t, lab.CanMove(d))
	}
}

func TestPossibleMoves_MatchesMovePlayer(t *testing.T) {
	const layout = "4\n4\nS..W\n.W..\n..WE\nW...\n"
	lab, err := Parse(strings.NewReader(layout))
	require.NoError(t, err)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			c := NewCoordinate(col, row)
			if cell, _ := lab.Cell(c); cell == Wall {
				continue
			}
			require.NoError(t, lab.Place(c))
			possible := lab.PossibleMoves()
			for _, d := range Directions {
				probe, _ := Parse(strings.NewReader(layout))
				require.NoError(t, probe.Place(c))
				moveErr := probe.MovePlayer(d)
				if containsDirection(possible, d) {
					assert.NoError(t, moveErr, "from %s moving %s", c, d)
				} else {
					assert.ErrorIs(t, moveErr, ErrInvalidMove, "from %s moving %s", c, d)
				}
			}
		}
	}
}

func TestPlace(t *testing.T) {
	lab := loadExample(t)

	require.NoError(t, lab.Place(NewCoordinate(2, 1)))
	assert.Equal(t, NewCoordinate(2, 1), lab.PlayerPosition())

	err := lab.Place(NewCoordinate(3, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, NewCoordinate(2, 1), lab.PlayerPosition())
}

func TestFind(t *testing.T) {
	lab, err := Parse(strings.NewReader("3\n2\nESW\nW.E\n"))
	require.NoError(t, err)

	assert.Equal(t, []Coordinate{{0, 0}, {2, 1}}, lab.Find(End))
	assert.Equal(t, []Coordinate{{2, 0}, {0, 1}}, lab.Find(Wall))
	assert.Equal(t, []Coordinate{{1, 0}}, lab.Find(Start))
}

func TestFromRows(t *testing.T) {
	lab, err := FromRows([]string{"S.", "WE"})
	require.NoError(t, err)

	assert.Equal(t, 2, lab.Width())
	assert.Equal(t, 2, lab.Height())
	assert.Equal(t, "S.\nWE", lab.String())

	_, err = FromRows([]string{"S..", "W"})
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestCoordinate_Step(t *testing.T) {
	c := NewCoordinate(5, 5)

	assert.Equal(t, NewCoordinate(4, 5), c.Step(West))
	assert.Equal(t, NewCoordinate(6, 5), c.Step(East))
	assert.Equal(t, NewCoordinate(5, 4), c.Step(North))
	assert.Equal(t, NewCoordinate(5, 6), c.Step(South))
	assert.Equal(t, NewCoordinate(5, 5), c, "Step must not mutate the receiver")
}

func containsDirection(ds []Direction, d Direction) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
