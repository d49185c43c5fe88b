package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/labyrinth/game/labyrinth"
)

// ValidateLevel checks that a level has a usable id, sane dimensions and a
// layout that matches them exactly.
func ValidateLevel(level *Level) error {
	if level == nil {
		return fmt.Errorf("level validation: level is nil")
	}
	if level.ID == "" {
		return fmt.Errorf("level validation: id is required")
	}
	if strings.ContainsAny(level.ID, `/\`) || level.ID == "." || level.ID == ".." {
		return fmt.Errorf("level validation: id %q must not contain path separators", level.ID)
	}
	if level.Width < MinLevelSize || level.Width > MaxLevelSize {
		return fmt.Errorf("level validation: width must be between %d and %d, got %d", MinLevelSize, MaxLevelSize, level.Width)
	}
	if level.Height < MinLevelSize || level.Height > MaxLevelSize {
		return fmt.Errorf("level validation: height must be between %d and %d, got %d", MinLevelSize, MaxLevelSize, level.Height)
	}
	if len(level.Layout) != level.Height {
		return fmt.Errorf("level validation: layout must have %d rows to match height, got %d",
			level.Height, len(level.Layout))
	}
	for i, row := range level.Layout {
		if len(row) != level.Width {
			return fmt.Errorf("level validation: row %d must have %d characters to match width, got %d",
				i+1, level.Width, len(row))
		}
	}
	return nil
}

// ParseLevel reads a level in the labyrinth map format. The layout is
// normalized: rows are cut to the declared width and unknown characters
// become empty cells. Headers above MaxLevelSize are rejected before any row
// is read.
func ParseLevel(id string, r io.Reader) (*Level, error) {
	lab, err := labyrinth.ParseBounded(r, MaxLevelSize)
	if err != nil {
		return nil, err
	}

	level := &Level{
		ID:     id,
		Name:   id,
		Width:  lab.Width(),
		Height: lab.Height(),
		Layout: lab.Rows(),
	}
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}
	return level, nil
}

// LoadLevelFile loads a level from a map file. The level id is the file name
// without its extension.
func LoadLevelFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &labyrinth.LoadError{Kind: labyrinth.NotFound, Path: path, Err: err}
		}
		return nil, err
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	level, err := ParseLevel(id, f)
	if err != nil {
		var loadErr *labyrinth.LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return level, nil
}

// Build creates a fresh labyrinth from the level layout.
func (l *Level) Build() (*labyrinth.Labyrinth, error) {
	if err := ValidateLevel(l); err != nil {
		return nil, err
	}
	return labyrinth.FromRows(l.Layout)
}

// Text serializes the level in the labyrinth map format.
func (l *Level) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%d\n", l.Width, l.Height)
	for _, row := range l.Layout {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// Start returns the coordinate the player starts on.
func (l *Level) Start() (labyrinth.Coordinate, error) {
	lab, err := l.Build()
	if err != nil {
		return labyrinth.Coordinate{}, err
	}
	return lab.PlayerPosition(), nil
}

// CountCellType counts the cells of a type in the level layout
func (l *Level) CountCellType(t labyrinth.CellType) int {
	lab, err := l.Build()
	if err != nil {
		return 0
	}
	return lab.Count(t)
}
