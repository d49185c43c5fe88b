// Package mcp exposes the labyrinth game to AI agents over the Model Context
// Protocol.
//
// Client is a thin proxy: every tool call becomes a request against the REST
// API, and the JSON reply is rendered as plain text that an agent can read.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - game_state, move, bulk_move, reset_game, move_history
//   - list_levels, describe_cell, set_cell
//   - game_instructions
//
// The move and bulk_move tools take an optional "intent" argument. It is not
// sent to the server; asking for it makes agents state their plan.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	http.Handle("/mcp", server.NewStreamableHTTPServer(client.GetMCPServer()))
//
// Errors returned by the API are reported as tool results with IsError set,
// never as Go errors, so the agent sees the message.
package mcp
