// Package service provides the business logic layer for the labyrinth game.
//
// The service package implements:
//   - Multi-session game management
//   - Move processing with per-step traces
//   - Grid inspection and editing per session
//   - Level listing, loading and saving
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// LevelManager loads and stores level definitions.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine and labyrinth. The service
// serializes mutations with a single lock and persists the session after every
// change.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	levelMgr, _ := config.NewManager("levels")
//	gameService := service.NewGameService(sessionMgr, levelMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute moves
//	result, err := gameService.BulkMove(ctx, sessionInfo.ID, []string{"east", "south"}, false)
//	fmt.Println(result.StopReasonCode)
//
// Errors:
//
// Lookups of unknown sessions or levels wrap ErrSessionNotFound and
// ErrLevelNotFound. Rejected moves are not errors: they are reported through
// MoveResult.Success and BulkMoveResult.StopReasonCode.
package service
