// Package labyrinth implements the cell-grid model of the Labyrinth Game.
//
// A Labyrinth is a rectangular grid of cells, each tagged with a CellType
// (Empty, Wall, Start or End), plus the current player Coordinate. It
// supports:
//   - Loading a layout from the plain-text map format
//   - Bounds-checked cell reads and writes
//   - Move validation and the set of currently possible directions
//   - Reporting whether the player stands on an End cell
//
// Map Format:
//
// The first line holds the width, the second the height, followed by
// height rows of at least width characters:
//
//	3
//	2
//	SWE
//	...
//
// 'W' is a wall, 'E' the exit, 'S' the start (and the player's initial
// position); any other character is an empty cell.
//
// Usage:
//
//	lab := labyrinth.New()
//	if err := lab.LoadFile("levels/classic.txt"); err != nil {
//		log.Fatal(err)
//	}
//
//	for _, d := range lab.PossibleMoves() {
//		fmt.Println(d)
//	}
//
//	if err := lab.MovePlayer(labyrinth.East); errors.Is(err, labyrinth.ErrInvalidMove) {
//		// blocked by a wall or the edge of the grid
//	}
//
// Concurrency:
//
// A Labyrinth has no internal locking. It is meant to be owned by a single
// caller (one game session); callers sharing it must serialize access.
package labyrinth
