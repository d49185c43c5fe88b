// Package session provides session management for the labyrinth game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Session ID generation from random UUIDs
//   - Optional persistence to files or Redis
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// SessionPersistence is the storage interface; FilePersistence keeps one JSON
// file per session and RedisPersistence keeps one JSON value per key under
// "labyrinth:session:". A Manager without persistence keeps sessions in memory
// only.
//
// Session Identifiers:
//
// Generated IDs are the first six hex characters of a random UUID. Lookups are
// case-insensitive.
//
// Concurrency:
//
// The session manager is thread-safe. The engine inside a session is not; the
// service layer serializes access to it.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", levelManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
//	sess, err := manager.Create("", level)
//
// Persisted sessions store the level ID and a full game state snapshot,
// including the grid, so edits made with SetCell survive a restart. If the
// level has since been removed the saved grid stands in for it.
package session
