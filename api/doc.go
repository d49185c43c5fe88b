// Package api provides the HTTP REST API for the labyrinth game.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({"level_id": "classic"}, optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Sessions for the multi-session view (?sessionIds=a,b or ?levelId=x)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - {"direction": "north", "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["east", "south"], "reset": false}
//   - POST /api/sessions/{id}/reset - Put the player back on the start cell
//   - GET /api/sessions/{id}/history - Paginated history (?page=1&limit=20&order=desc)
//
// Grid:
//   - GET /api/sessions/{id}/cells/{col}/{row} - Describe a cell
//   - PUT /api/sessions/{id}/cells/{col}/{row} - {"type": "wall"} or {"type": "W"}
//
// Levels:
//   - GET /api/levels - List levels
//   - GET /api/levels/{id} - Get a level
//   - POST /api/levels - Save a level, given either "layout" rows or a "map" text
//
// Other:
//   - GET /health
//   - GET /ws?session={id} - WebSocket state stream
//
// Directions accept north/south/east/west and the up/down/left/right aliases.
// A move into a wall or off the grid is not an HTTP error: the response has
// "success": false and "attempted_to" describes the target cell. Bulk moves
// report why they stopped in "stop_reason_code":
//
//	blocked_wall | blocked_boundary | unknown_direction | finished
//
// Errors are returned as JSON:
//
//	{"error": "failed to get session abc123: session not found"}
//
// Unknown sessions and levels give 404. Out-of-bounds cells, malformed levels
// and bad input give 400.
package api
