package engine

import (
	"fmt"
	"log"

	"github.com/wricardo/mcp-training/labyrinth/game/labyrinth"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsFinished() bool
	GetPlayerPosition() labyrinth.Coordinate

	// Movement operations
	Move(direction string) error
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Grid access
	Cell(c labyrinth.Coordinate) (labyrinth.CellType, error)
	SetCell(c labyrinth.Coordinate, t labyrinth.CellType) error
	DescribeCell(c labyrinth.Coordinate) (*CellInfo, error)

	// Level
	GetLevel() *Level

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface. It owns one labyrinth and is
// not safe for concurrent use.
type GameEngine struct {
	level *Level
	lab   *labyrinth.Labyrinth

	message      string
	moveHistory  []MoveHistoryEntry
	totalMoves   int
	currentMoves []MoveHistoryEntry
}

// NewEngine creates a new game engine for the provided level
func NewEngine(level *Level) (*GameEngine, error) {
	lab, err := level.Build()
	if err != nil {
		return nil, err
	}

	return &GameEngine{
		level:        level,
		lab:          lab,
		message:      welcomeMessage(level),
		moveHistory:  []MoveHistoryEntry{},
		currentMoves: []MoveHistoryEntry{},
	}, nil
}

func welcomeMessage(level *Level) string {
	name := level.Name
	if name == "" {
		name = level.ID
	}
	return fmt.Sprintf("Welcome to %s! Find the exit (E).", name)
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	state := &GameState{
		LevelID:           e.level.ID,
		Width:             e.lab.Width(),
		Height:            e.lab.Height(),
		Grid:              e.lab.Rows(),
		PlayerPos:         e.lab.PlayerPosition(),
		Finished:          e.lab.HasPlayerFinished(),
		Message:           e.message,
		MoveHistory:       append([]MoveHistoryEntry{}, e.moveHistory...),
		TotalMoves:        e.totalMoves,
		CurrentMoves:      append([]MoveHistoryEntry{}, e.currentMoves...),
		CurrentMovesCount: len(e.currentMoves),
		PossibleMoves:     e.GetPossibleMoves(),
		LocalView3x3:      e.GetLocalView(),
	}
	return state
}

// SetState restores a snapshot (used for persistence loading). The grid in the
// snapshot replaces the level layout, so cell edits survive a restore.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if len(state.Grid) != state.Height {
		return fmt.Errorf("state grid has %d rows, expected %d", len(state.Grid), state.Height)
	}

	lab, err := labyrinth.FromRows(state.Grid)
	if err != nil {
		return fmt.Errorf("invalid state grid: %w", err)
	}
	if lab.Width() != state.Width {
		return fmt.Errorf("state grid has width %d, expected %d", lab.Width(), state.Width)
	}
	if err := lab.Place(state.PlayerPos); err != nil {
		return fmt.Errorf("invalid player position: %w", err)
	}

	e.lab = lab
	e.message = state.Message
	e.moveHistory = append([]MoveHistoryEntry{}, state.MoveHistory...)
	e.totalMoves = state.TotalMoves
	e.currentMoves = append([]MoveHistoryEntry{}, state.CurrentMoves...)
	return nil
}

// Reset rebuilds the labyrinth from the level. If the level no longer builds
// the game is left as it was and the message says so.
func (e *GameEngine) Reset() *GameState {
	lab, err := e.level.Build()
	if err != nil {
		log.Printf("Warning: Failed to reset level %s: %v", e.level.ID, err)
		e.message = fmt.Sprintf("Reset failed: %v", err)
		return e.GetState()
	}
	e.lab = lab

	// Preserve cumulative history and totals; clear only the current segment
	e.currentMoves = []MoveHistoryEntry{}
	e.message = "Game reset to the start"

	return e.GetState()
}

// IsFinished returns whether the player stands on the exit
func (e *GameEngine) IsFinished() bool {
	return e.lab.HasPlayerFinished()
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() labyrinth.Coordinate {
	return e.lab.PlayerPosition()
}

// GetLevel returns the level the game was built from
func (e *GameEngine) GetLevel() *Level {
	return e.level
}

// Width returns the grid width
func (e *GameEngine) Width() int {
	return e.lab.Width()
}

// Height returns the grid height
func (e *GameEngine) Height() int {
	return e.lab.Height()
}

// Cell returns the type of the cell at c
func (e *GameEngine) Cell(c labyrinth.Coordinate) (labyrinth.CellType, error) {
	return e.lab.Cell(c)
}

// SetCell changes the cell at c. A Start cell also moves the player.
func (e *GameEngine) SetCell(c labyrinth.Coordinate, t labyrinth.CellType) error {
	if err := e.lab.SetCell(c, t); err != nil {
		return err
	}
	e.message = fmt.Sprintf("Cell %s set to %s", c, t)
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.moveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.moveHistory) == 0 {
		return nil
	}
	return &e.moveHistory[len(e.moveHistory)-1]
}
