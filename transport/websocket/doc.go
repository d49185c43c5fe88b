// Package websocket pushes live labyrinth state to browser clients.
//
// A single Hub tracks which connections watch which session. The HTTP layer
// calls BroadcastToSession after every move, reset or cell edit, and each
// watcher of that session receives the new GameState as JSON:
//
//	{"session_id":"a1b2c3","event":"state_update","game_state":{...}}
//
// Clients connect with the session id as a query parameter (/ws?session=a1b2c3).
// Messages sent by clients are read and discarded; the connection is
// push-only.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.ServeWS(w, r, sessionID)
//	hub.BroadcastToSession(sessionID, state)
//
// Client registration, removal and fan-out all run on the Run goroutine.
// A client whose send buffer is full is dropped.
package websocket
