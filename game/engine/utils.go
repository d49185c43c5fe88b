package engine

import "github.com/wricardo/mcp-training/labyrinth/game/labyrinth"

// GetLocalView renders the 3x3 neighbourhood of the player, north row first.
// The player is '@' and cells outside the grid are '#'.
func (e *GameEngine) GetLocalView() []string {
	return LocalView(e.lab)
}

// LocalView renders the 3x3 neighbourhood of the player on lab.
func LocalView(lab *labyrinth.Labyrinth) []string {
	p := lab.PlayerPosition()
	lines := make([]string, 0, 3)
	for dr := -1; dr <= 1; dr++ {
		row := make([]byte, 0, 3)
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				row = append(row, PlayerViewChar)
				continue
			}
			t, err := lab.Cell(labyrinth.NewCoordinate(p.Col+dc, p.Row+dr))
			if err != nil {
				row = append(row, BoundaryViewChar)
				continue
			}
			row = append(row, t.Char())
		}
		lines = append(lines, string(row))
	}
	return lines
}

// DescribeCell returns details about a single cell
func (e *GameEngine) DescribeCell(c labyrinth.Coordinate) (*CellInfo, error) {
	t, err := e.lab.Cell(c)
	if err != nil {
		return nil, err
	}
	return &CellInfo{
		Col:      c.Col,
		Row:      c.Row,
		Type:     t,
		Char:     string(t.Char()),
		Passable: t != labyrinth.Wall,
		IsPlayer: c == e.lab.PlayerPosition(),
	}, nil
}

// ManhattanDistance calculates the Manhattan distance between two coordinates
func ManhattanDistance(from, to labyrinth.Coordinate) int {
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	return dc + dr
}
