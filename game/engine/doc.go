// Package engine provides the game logic layered on top of a labyrinth grid.
//
// The engine package implements:
//   - Level definitions parsed from the labyrinth map format
//   - A GameEngine that owns exactly one labyrinth per game
//   - Move history (cumulative and since the last reset)
//   - Snapshots of the game state for clients and persistence
//
// Core Types:
//
// Level is an immutable map definition. GameEngine wraps a *labyrinth.Labyrinth
// built from a Level and records every move attempt. GameState is a
// JSON-friendly snapshot returned by GetState and accepted by SetState.
//
// Usage:
//
//	level, err := engine.LoadLevelFile("levels/classic.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(level)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := gameEngine.Move("east"); errors.Is(err, labyrinth.ErrInvalidMove) {
//		fmt.Println(gameEngine.GetState().Message)
//	}
//
// Game Rules:
//
// The player starts on the Start cell and moves one cell at a time in one of
// four compass directions. Walls and the edge of the grid block movement. The
// game is won when the player stands on an End cell; the engine reports this
// through IsFinished but does not stop further moves.
package engine
