package engine

import "github.com/wricardo/mcp-training/labyrinth/game/labyrinth"

const (
	// Validation constants
	MinLevelSize = 1
	MaxLevelSize = 200
	MaxBulkMoves = 50

	// Characters used by the 3x3 local view
	PlayerViewChar   = '@'
	BoundaryViewChar = '#'
)

// Level is a map definition loaded from a level file
type Level struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Layout      []string `json:"layout"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action       string               `json:"action"`
	FromPosition labyrinth.Coordinate `json:"from_position"`
	ToPosition   labyrinth.Coordinate `json:"to_position"`
	Timestamp    int64                `json:"timestamp"`
	Success      bool                 `json:"success"`
	MoveNumber   int                  `json:"move_number"`
}

// CellInfo describes a single cell relative to the player
type CellInfo struct {
	Col      int                `json:"col"`
	Row      int                `json:"row"`
	Type     labyrinth.CellType `json:"type"`
	Char     string             `json:"char"`
	Passable bool               `json:"passable"`
	IsPlayer bool               `json:"is_player"`
}

// GameState is a snapshot of a game
type GameState struct {
	LevelID   string               `json:"level_id"`
	Width     int                  `json:"width"`
	Height    int                  `json:"height"`
	Grid      []string             `json:"grid"`
	PlayerPos labyrinth.Coordinate `json:"player_pos"`
	Finished  bool                 `json:"finished"`
	Message   string               `json:"message"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Computed helper views
	PossibleMoves []string `json:"possible_moves"`
	LocalView3x3  []string `json:"local_view_3x3,omitempty"`
}
