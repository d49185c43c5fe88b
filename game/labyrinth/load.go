package labyrinth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadFile reads a map file and replaces the grid with its contents.
func (l *Labyrinth) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadError{Kind: NotFound, Path: path, Err: err}
		}
		return fmt.Errorf("failed to open map file: %w", err)
	}
	defer f.Close()

	if err := l.Load(f); err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return err
	}
	return nil
}

// Load parses a map from r. The labyrinth is only modified when the whole
// map parses; on error the previous grid and player position are kept.
func (l *Labyrinth) Load(r io.Reader) error {
	return l.load(r, 0)
}

func (l *Labyrinth) load(r io.Reader, maxSize int) error {
	parsed, err := parse(r, maxSize)
	if err != nil {
		return err
	}
	l.width = parsed.width
	l.height = parsed.height
	l.cells = parsed.cells
	if parsed.hasStart {
		l.player = parsed.player
	}
	return nil
}

// Parse builds a new labyrinth from a map.
func Parse(r io.Reader) (*Labyrinth, error) {
	l := New()
	if err := l.Load(r); err != nil {
		return nil, err
	}
	return l, nil
}

// ParseBounded is Parse with both declared dimensions capped at maxSize. A
// larger header is a ParseError reported before any row is read.
func ParseBounded(r io.Reader, maxSize int) (*Labyrinth, error) {
	l := New()
	if err := l.load(r, maxSize); err != nil {
		return nil, err
	}
	return l, nil
}

// FromRows builds a labyrinth from already split rows; every row must have
// exactly width characters of the map alphabet.
func FromRows(rows []string) (*Labyrinth, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%d\n", width, height)
	for _, row := range rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return Parse(strings.NewReader(b.String()))
}

type parsedMap struct {
	width, height int
	cells         []CellType
	player        Coordinate
	hasStart      bool
}

// lineReader hands out map lines and counts them
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

// next returns the following line, io.EOF at the end of input, or the read
// error that stopped the scanner.
func (lr *lineReader) next() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", fmt.Errorf("failed to read map: %w", err)
		}
		return "", io.EOF
	}
	lr.line++
	return strings.TrimRight(lr.sc.Text(), "\r"), nil
}

func parse(r io.Reader, maxSize int) (*parsedMap, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}

	width, err := parseDimension(lr, "width", maxSize)
	if err != nil {
		return nil, err
	}
	height, err := parseDimension(lr, "height", maxSize)
	if err != nil {
		return nil, err
	}
	if height != 0 && width > math.MaxInt/height {
		return nil, &LoadError{Kind: ParseError, Line: 2,
			Err: fmt.Errorf("grid of %d x %d cells is too large", width, height)}
	}

	// cells grow as rows arrive, so memory follows the input and not the header
	p := &parsedMap{width: width, height: height}
	for row := 0; row < height; row++ {
		text, err := lr.next()
		if err == io.EOF {
			return nil, &LoadError{Kind: MalformedRow, Line: lr.line + 1,
				Err: fmt.Errorf("expected %d rows, got %d", height, row)}
		}
		if err != nil {
			return nil, err
		}
		if len(text) < width {
			return nil, &LoadError{Kind: MalformedRow, Line: lr.line,
				Err: fmt.Errorf("row %d has %d characters, need %d", row, len(text), width)}
		}
		for col := 0; col < width; col++ {
			t := cellTypeFromChar(text[col])
			p.cells = append(p.cells, t)
			if t == Start {
				p.player = Coordinate{Col: col, Row: row}
				p.hasStart = true
			}
		}
	}
	if p.cells == nil {
		p.cells = []CellType{}
	}
	return p, nil
}

// parseDimension reads one header line. A positive maxSize caps the value.
func parseDimension(lr *lineReader, name string, maxSize int) (int, error) {
	text, err := lr.next()
	if err == io.EOF {
		return 0, &LoadError{Kind: ParseError, Line: lr.line + 1, Err: fmt.Errorf("missing %s", name)}
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &LoadError{Kind: ParseError, Line: lr.line, Err: fmt.Errorf("%s: %w", name, err)}
	}
	if n < 0 {
		return 0, &LoadError{Kind: ParseError, Line: lr.line, Err: fmt.Errorf("%s must not be negative, got %d", name, n)}
	}
	if maxSize > 0 && n > maxSize {
		return 0, &LoadError{Kind: ParseError, Line: lr.line, Err: fmt.Errorf("%s %d exceeds the limit of %d", name, n, maxSize)}
	}
	return n, nil
}
