package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/labyrinth/game/labyrinth"
)

// Move attempts to move the player in the specified direction. Every attempt
// is recorded in the history. It returns labyrinth.ErrUnknownDirection or
// labyrinth.ErrInvalidMove when the move is rejected.
func (e *GameEngine) Move(direction string) error {
	from := e.lab.PlayerPosition()

	d, err := labyrinth.ParseDirection(direction)
	if err != nil {
		e.message = fmt.Sprintf("Unknown direction %q", direction)
		e.addMoveToHistory(direction, from, from, false)
		return err
	}

	if err := e.lab.MovePlayer(d); err != nil {
		target := from.Step(d)
		e.message = fmt.Sprintf("Can't move %s: %s at %s", d, obstacleName(e.lab, target), target)
		e.addMoveToHistory(d.String(), from, from, false)
		return fmt.Errorf("%w: %s from %s", err, d, from)
	}

	to := e.lab.PlayerPosition()
	if e.lab.HasPlayerFinished() {
		e.message = fmt.Sprintf("You found the exit at %s!", to)
	} else {
		e.message = fmt.Sprintf("Moved %s to %s", d, to)
	}
	e.addMoveToHistory(d.String(), from, to, true)
	return nil
}

// BulkMove executes moves in sequence. It stops at the first rejected move or
// as soon as the player reaches the exit, and returns the number of moves
// executed together with the error that stopped it, if any.
func (e *GameEngine) BulkMove(moves []string) (int, error) {
	if len(moves) > MaxBulkMoves {
		moves = moves[:MaxBulkMoves]
	}

	executed := 0
	for _, direction := range moves {
		if e.IsFinished() {
			break
		}
		if err := e.Move(direction); err != nil {
			return executed, err
		}
		executed++
	}
	return executed, nil
}

// CanMove checks if the player can move in the specified direction
func (e *GameEngine) CanMove(direction string) bool {
	d, err := labyrinth.ParseDirection(direction)
	if err != nil {
		return false
	}
	return e.lab.CanMove(d)
}

// GetPossibleMoves returns all valid directions the player can move
func (e *GameEngine) GetPossibleMoves() []string {
	moves := e.lab.PossibleMoves()
	possible := make([]string, 0, len(moves))
	for _, d := range moves {
		possible = append(possible, d.String())
	}
	return possible
}

// IsBlocked reports whether err is a rejected move rather than a failure.
func IsBlocked(err error) bool {
	return errors.Is(err, labyrinth.ErrInvalidMove) || errors.Is(err, labyrinth.ErrUnknownDirection)
}

// obstacleName names what stops a move onto c
func obstacleName(lab *labyrinth.Labyrinth, c labyrinth.Coordinate) string {
	t, err := lab.Cell(c)
	if err != nil {
		return "boundary"
	}
	return t.String()
}

// addMoveToHistory adds a move to the game's move history
func (e *GameEngine) addMoveToHistory(action string, from, to labyrinth.Coordinate, success bool) {
	entry := MoveHistoryEntry{
		Action:       action,
		FromPosition: from,
		ToPosition:   to,
		Timestamp:    time.Now().Unix(),
		Success:      success,
		MoveNumber:   e.totalMoves + 1,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	e.moveHistory = append(e.moveHistory, entry)
	e.totalMoves++

	e.currentMoves = append(e.currentMoves, entry)
}
