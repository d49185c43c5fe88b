package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/labyrinth/game/engine"
	"github.com/wricardo/mcp-training/labyrinth/game/labyrinth"
	"github.com/wricardo/mcp-training/labyrinth/game/service"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func testState() *engine.GameState {
	return &engine.GameState{
		LevelID:       "classic",
		Width:         3,
		Height:        2,
		Grid:          []string{"S.W", "..E"},
		PlayerPos:     labyrinth.NewCoordinate(1, 0),
		PossibleMoves: []string{"west", "south"},
		LocalView3x3:  []string{"###", "S@W", "..E"},
		TotalMoves:    1,
		Message:       "Moved east to (1,0)",
	}
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080/"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "test-session"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall(context.Background(), "GET", "/api/sessions/x", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != "test-session" {
		t.Errorf("Expected id test-session, got %v", response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"Plain text error", http.StatusInternalServerError, "Internal Server Error", "API error: 500"},
		{"JSON error", http.StatusNotFound, `{"error":"failed to get session abc: session not found"}`, "session not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected %q in error, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestClient_createSession(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:        "abc123",
			LevelID:   "spiral",
			LevelName: "Spiral",
			GameState: testState(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{"level_id": "spiral"}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "abc123") || !strings.Contains(text, "spiral") {
		t.Errorf("Expected session and level in result, got: %s", text)
	}
	if gotBody["level_id"] != "spiral" {
		t.Errorf("Expected level_id spiral in body, got %v", gotBody)
	}
}

func TestClient_handleMove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/abc123/move" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["direction"] != "east" {
			t.Errorf("Expected direction east, got %v", body["direction"])
		}
		json.NewEncoder(w).Encode(service.MoveResult{
			Success:   true,
			GameState: testState(),
			Step: &service.StepInfo{
				Idx: 1, Dir: "east",
				From: labyrinth.NewCoordinate(0, 0), To: labyrinth.NewCoordinate(1, 0),
				CellChar: ".", CellType: "empty", Success: true,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleMove(context.Background(), callRequest("move", map[string]interface{}{
		"session_id": "abc123",
		"direction":  "east",
		"intent":     "head for the exit",
	}))
	if err != nil {
		t.Fatalf("handleMove failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"✓ Move successful", "Step: east (0,0)→(1,0)", "S@W"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_handleMove_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": `Invalid direction "sideways"`})
	}))
	defer server.Close()

	result, err := NewClient(server.URL).handleMove(context.Background(), callRequest("move", map[string]interface{}{
		"session_id": "abc123",
		"direction":  "sideways",
	}))
	if err != nil {
		t.Fatalf("Tool errors should be reported in the result, got %v", err)
	}
	if !result.IsError {
		t.Error("Expected an error result")
	}
}

func TestClient_handleBulkMove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Moves []string `json:"moves"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Moves) != 2 {
			t.Errorf("Expected 2 moves, got %v", body.Moves)
		}
		json.NewEncoder(w).Encode(service.BulkMoveResult{
			MovesExecuted:  1,
			RequestedMoves: 2,
			StoppedReason:  "move 2 blocked: east",
			StopReasonCode: service.StopBlockedWall,
			StoppedOnMove:  2,
			GameState:      testState(),
			AttemptedTo:    &service.AttemptInfo{Col: 2, Row: 0, CellChar: "W", CellType: "wall"},
		})
	}))
	defer server.Close()

	result, err := NewClient(server.URL).handleBulkMove(context.Background(), callRequest("bulk_move", map[string]interface{}{
		"session_id": "abc123",
		"moves":      []interface{}{"east", "east"},
	}))
	if err != nil {
		t.Fatalf("handleBulkMove failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Executed 1/2 moves", "blocked_wall", "Blocked on move 2: attempted (2,0) cell=W wall"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_handleDescribeCell(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/abc123/cells/2/0" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(engine.CellInfo{Col: 2, Row: 0, Type: labyrinth.Wall, Char: "W"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleDescribeCell(context.Background(), callRequest("describe_cell", map[string]interface{}{
		"session_id": "abc123",
		"col":        float64(2),
		"row":        float64(0),
	}))
	if err != nil {
		t.Fatalf("handleDescribeCell failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Type: wall") || !strings.Contains(text, "impassable") {
		t.Errorf("Unexpected description: %s", text)
	}

	result, _ = client.handleDescribeCell(context.Background(), callRequest("describe_cell", map[string]interface{}{
		"session_id": "abc123",
	}))
	if !result.IsError {
		t.Error("Expected an error result when col and row are missing")
	}
}

func TestClient_handleListLevels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]service.LevelInfo{
			{LevelID: "classic", Name: "Classic", Description: "A small maze", Width: 5, Height: 5, Walls: 7, Exits: 1},
		})
	}))
	defer server.Close()

	result, err := NewClient(server.URL).handleListLevels(context.Background(), callRequest("list_levels", nil))
	if err != nil {
		t.Fatalf("handleListLevels failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "classic (Classic)") || !strings.Contains(text, "Grid: 5x5, Walls: 7, Exits: 1") {
		t.Errorf("Unexpected level listing: %s", text)
	}
}

func TestFormatGameState(t *testing.T) {
	result := formatGameState(testState())

	expectedFields := []string{
		"Level: classic",
		"Position: (1,0)",
		"Possible moves: west,south",
		"S@W\n..E\n",
		"Message: Moved east to (1,0)",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_Finished(t *testing.T) {
	state := testState()
	state.PlayerPos = labyrinth.NewCoordinate(2, 1)
	state.Finished = true

	result := formatGameState(state)

	if !strings.Contains(result, "🎉 EXIT REACHED!") {
		t.Errorf("Expected exit banner in result, got: %s", result)
	}
	if !strings.Contains(result, "S.W\n..@\n") {
		t.Errorf("Expected player drawn on the exit, got: %s", result)
	}
}

func TestFormatGameState_Nil(t *testing.T) {
	if got := formatGameState(nil); got != "No game state available" {
		t.Errorf("Unexpected output for nil state: %s", got)
	}
}

func TestFormatMoveResult_Failed(t *testing.T) {
	moveResult := &service.MoveResult{
		Success:     false,
		GameState:   testState(),
		AttemptedTo: &service.AttemptInfo{Col: 1, Row: -1, CellChar: "#", CellType: "boundary"},
	}

	result := formatMoveResult(moveResult)

	if !strings.Contains(result, "✗ Move failed") {
		t.Errorf("Expected '✗ Move failed' in result, got: %s", result)
	}
	if !strings.Contains(result, "attempted (1,-1) cell=# boundary") {
		t.Errorf("Expected boundary attempt in result, got: %s", result)
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Moves: []engine.MoveHistoryEntry{
			{Action: "east", FromPosition: labyrinth.NewCoordinate(0, 0), ToPosition: labyrinth.NewCoordinate(1, 0), Success: true},
			{Action: "east", FromPosition: labyrinth.NewCoordinate(1, 0), ToPosition: labyrinth.NewCoordinate(1, 0), Success: false},
		},
		TotalMoves: 12,
		Page:       2,
		PageSize:   2,
		TotalPages: 6,
	}

	result := formatHistory(history)

	for _, want := range []string{"Page 2/6", "3. east (0,0)→(1,0) ✓", "4. east (1,0)→(1,0) ✗"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in history, got: %s", want, result)
		}
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), callRequest("game_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	expectedContent := []string{
		"GAME OBJECTIVE:",
		"GRID LEGEND:",
		"COORDINATES:",
		"north = row-1",
		"MOVEMENT COMMANDS:",
		"Up to 50 steps",
	}

	for _, content := range expectedContent {
		if !strings.Contains(text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, text)
		}
	}
}
