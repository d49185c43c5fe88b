package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/labyrinth/game/engine"
	"github.com/wricardo/mcp-training/labyrinth/game/labyrinth"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	levels   LevelManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, levels LevelManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		levels:   levels,
	}
}

// CreateSession creates a new game session on the given level, or the default
// level when levelID is empty
func (s *gameServiceImpl) CreateSession(ctx context.Context, levelID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var level *engine.Level
	var err error
	if levelID != "" {
		level, err = s.levels.LoadLevel(levelID)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrLevelNotFound) {
				available, listErr := s.levels.ListLevels()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, info := range available {
						ids = append(ids, info.LevelID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available levels: %v", ErrLevelNotFound, levelID, ids)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/levels to list available levels", ErrLevelNotFound, levelID)
			}
			return nil, fmt.Errorf("failed to load level %s: %w", levelID, err)
		}
	} else {
		level = s.levels.GetDefault()
	}

	// Let the session manager generate the ID
	session, err := s.sessions.Create("", level)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return newSessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return newSessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, newSessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// Move executes a single move for a session. A rejected move is not an error:
// it is reported through MoveResult.Success and AttemptedTo.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}

	if reset {
		sess.Engine.Reset()
		events = append(events, newEvent(EventReset, "Game reset to the start", nil))
	}

	prevPos := sess.Engine.GetPlayerPosition()
	moveErr := sess.Engine.Move(direction)
	if moveErr != nil && !engine.IsBlocked(moveErr) {
		return nil, moveErr
	}
	newPos := sess.Engine.GetPlayerPosition()
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:   moveErr == nil,
		GameState: state,
		Message:   state.Message,
	}

	if result.Success {
		step := s.buildStep(sess, 1, sess.Engine.GetLastMove())
		result.Step = &step
		events = append(events, newEvent(EventMove, state.Message, &newPos))
		if state.Finished {
			events = append(events, newEvent(EventFinished, "The player reached the exit", &newPos))
		}
	} else {
		events = append(events, newEvent(EventBlocked, state.Message, &prevPos))
		if d, err := labyrinth.ParseDirection(direction); err == nil {
			result.AttemptedTo = describeAttempt(sess.Engine, prevPos.Step(d))
		}
	}
	result.Events = events

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after move: %v\n", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence, stopping at the first rejected
// move or when the player reaches the exit
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, newEvent(EventReset, "Game reset to the start", nil))
	}

	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
	}

	result.StartPos = sess.Engine.GetPlayerPosition()
	historyBefore := len(sess.Engine.GetMoveHistory())

	executed, moveErr := sess.Engine.BulkMove(moves)
	if moveErr != nil && !engine.IsBlocked(moveErr) {
		return nil, moveErr
	}
	result.MovesExecuted = executed

	// The engine records every attempt; rebuild the trace from the new entries
	history := sess.Engine.GetMoveHistory()
	for i := historyBefore; i < len(history); i++ {
		entry := history[i]
		if !entry.Success {
			continue
		}
		step := s.buildStep(sess, i-historyBefore+1, &entry)
		result.Steps = append(result.Steps, step)
		pos := entry.ToPosition
		result.Events = append(result.Events, newEvent(EventMove, fmt.Sprintf("Moved %s to %s", entry.Action, pos), &pos))
	}

	state := sess.Engine.GetState()
	result.GameState = state
	result.EndPos = state.PlayerPos
	result.Finished = state.Finished
	result.Message = state.Message
	result.PossibleMoves = state.PossibleMoves
	result.LocalView3x3 = state.LocalView3x3

	switch {
	case moveErr != nil:
		result.Success = false
		result.StoppedOnMove = executed + 1
		failed := moves[executed]
		result.StoppedReason = fmt.Sprintf("move %d blocked: %s", executed+1, failed)
		result.Events = append(result.Events, newEvent(EventBlocked, state.Message, &result.EndPos))

		d, err := labyrinth.ParseDirection(failed)
		if err != nil {
			result.StopReasonCode = StopUnknownDirection
			result.StoppedReason = fmt.Sprintf("move %d has unknown direction: %s", executed+1, failed)
			break
		}
		result.AttemptedTo = describeAttempt(sess.Engine, result.EndPos.Step(d))
		if result.AttemptedTo.CellType == boundaryType {
			result.StopReasonCode = StopBlockedBoundary
		} else {
			result.StopReasonCode = StopBlockedWall
		}
	case state.Finished:
		result.StopReasonCode = StopFinished
		result.Events = append(result.Events, newEvent(EventFinished, "The player reached the exit", &result.EndPos))
		if executed < len(moves) && executed < engine.MaxBulkMoves {
			result.StoppedOnMove = executed + 1
			result.StoppedReason = "the player reached the exit"
		}
	}

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after bulk moves: %v\n", sessionID, err)
	}

	return result, nil
}

// Reset resets a game session to its starting position
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// DescribeCell returns details about one cell of the session's grid
func (s *gameServiceImpl) DescribeCell(ctx context.Context, sessionID string, c labyrinth.Coordinate) (*engine.CellInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sess.Engine.DescribeCell(c)
}

// SetCell changes one cell of the session's grid
func (s *gameServiceImpl) SetCell(ctx context.Context, sessionID string, c labyrinth.Coordinate, t labyrinth.CellType) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Engine.SetCell(c, t); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after cell update: %v\n", sessionID, err)
	}

	return sess.Engine.GetState(), nil
}

// ListLevels returns available levels
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	return s.levels.ListLevels()
}

// LoadLevel loads a specific level
func (s *gameServiceImpl) LoadLevel(ctx context.Context, levelID string) (*engine.Level, error) {
	return s.levels.LoadLevel(levelID)
}

// SaveLevel saves a level to the level store
func (s *gameServiceImpl) SaveLevel(ctx context.Context, levelID string, level *engine.Level) error {
	return s.levels.SaveLevel(levelID, level)
}

// getSession looks up a session and marks it as accessed. The access time is
// written, so callers hold s.mu for writing.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// buildStep turns a successful history entry into a StepInfo
func (s *gameServiceImpl) buildStep(sess *Session, idx int, entry *engine.MoveHistoryEntry) StepInfo {
	step := StepInfo{Idx: idx, Success: true}
	if entry == nil {
		return step
	}
	step.Dir = entry.Action
	step.From = entry.FromPosition
	step.To = entry.ToPosition
	if t, err := sess.Engine.Cell(entry.ToPosition); err == nil {
		step.CellChar = string(t.Char())
		step.CellType = t.String()
		step.Finished = t == labyrinth.End
	}
	return step
}

const boundaryType = "boundary"

// describeAttempt reports the cell a rejected move tried to enter
func describeAttempt(eng *engine.GameEngine, target labyrinth.Coordinate) *AttemptInfo {
	attempt := &AttemptInfo{Col: target.Col, Row: target.Row}
	t, err := eng.Cell(target)
	if err != nil {
		attempt.CellChar = string(engine.BoundaryViewChar)
		attempt.CellType = boundaryType
		return attempt
	}
	attempt.CellChar = string(t.Char())
	attempt.CellType = t.String()
	attempt.Passable = t != labyrinth.Wall
	return attempt
}

func newEvent(eventType, message string, pos *labyrinth.Coordinate) GameEvent {
	return GameEvent{
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
		Position:  pos,
	}
}

func newSessionInfo(sess *Session) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
	}
	if sess.Level != nil {
		info.LevelID = sess.Level.ID
		info.LevelName = sess.Level.Name
	}
	return info
}

// NormalizeDirection returns the canonical direction name, or "" if unknown
func NormalizeDirection(direction string) string {
	d, err := labyrinth.ParseDirection(strings.TrimSpace(direction))
	if err != nil {
		return ""
	}
	return d.String()
}
