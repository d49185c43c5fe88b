package service

import (
	"time"

	"github.com/wricardo/mcp-training/labyrinth/game/engine"
	"github.com/wricardo/mcp-training/labyrinth/game/labyrinth"
)

// Stop reason codes reported by BulkMove
const (
	StopBlockedWall      = "blocked_wall"
	StopBlockedBoundary  = "blocked_boundary"
	StopUnknownDirection = "unknown_direction"
	StopFinished         = "finished"
)

// Event types reported in move results
const (
	EventMove     = "move"
	EventBlocked  = "blocked"
	EventFinished = "finished"
	EventReset    = "reset"
	EventCellSet  = "cell_set"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	LevelID        string            `json:"level_id"`
	LevelName      string            `json:"level_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool              `json:"success"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // blocked_wall|blocked_boundary|unknown_direction|finished
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos labyrinth.Coordinate `json:"start_pos"`
	EndPos   labyrinth.Coordinate `json:"end_pos"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	Finished      bool     `json:"finished"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
	LocalView3x3  []string `json:"local_view_3x3,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx      int                  `json:"idx"`
	Dir      string               `json:"dir"`
	From     labyrinth.Coordinate `json:"from"`
	To       labyrinth.Coordinate `json:"to"`
	CellChar string               `json:"cell_char"`
	CellType string               `json:"cell_type"`
	Success  bool                 `json:"success"`
	Finished bool                 `json:"finished,omitempty"`
}

// AttemptInfo details the target cell of a rejected move
type AttemptInfo struct {
	Col      int    `json:"col"`
	Row      int    `json:"row"`
	CellChar string `json:"cell_char"`
	CellType string `json:"cell_type"` // "boundary" when outside the grid
	Passable bool   `json:"passable"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string                `json:"type"` // "move", "blocked", "finished", "reset", "cell_set"
	Message   string                `json:"message"`
	Timestamp time.Time             `json:"timestamp"`
	Position  *labyrinth.Coordinate `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// LevelInfo provides information about a level
type LevelInfo struct {
	Filename    string `json:"filename"`
	LevelID     string `json:"level_id"` // The identifier to use for session creation
	Name        string `json:"name"`     // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Walls       int    `json:"walls"`
	Exits       int    `json:"exits"`
}

// NewLevelInfo summarizes a level
func NewLevelInfo(filename string, level *engine.Level) *LevelInfo {
	return &LevelInfo{
		Filename:    filename,
		LevelID:     level.ID,
		Name:        level.Name,
		Description: level.Description,
		Width:       level.Width,
		Height:      level.Height,
		Walls:       level.CountCellType(labyrinth.Wall),
		Exits:       level.CountCellType(labyrinth.End),
	}
}
