package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/isolation-game/game/engine"
	"github.com/wricardo/isolation-game/game/service"
)

func newTestState(t *testing.T) *engine.GameState {
	t.Helper()
	game, err := engine.NewEngine(engine.DefaultGameConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return game.GetState()
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
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
		t.Fatal("Expected result to be returned")
	}
	if len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL + "/")

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
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
		switch r.URL.Path {
		case "/ok":
			if r.Method == "POST" && r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("Expected JSON content type, got %q", r.Header.Get("Content-Type"))
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "abc12345"})
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{"error": "session not found", "code": 404})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var result map[string]interface{}
		if err := client.apiCall(ctx, "POST", "/ok", map[string]int{"row": 1}, &result); err != nil {
			t.Fatalf("apiCall failed: %v", err)
		}
		if result["id"] != "abc12345" {
			t.Errorf("Expected id abc12345, got %v", result["id"])
		}
	})

	t.Run("error body", func(t *testing.T) {
		err := client.apiCall(ctx, "GET", "/missing", nil, nil)
		if err == nil || err.Error() != "session not found" {
			t.Errorf("Expected 'session not found', got %v", err)
		}
	})

	t.Run("bare status", func(t *testing.T) {
		err := client.apiCall(ctx, "GET", "/broken", nil, nil)
		if err == nil || !strings.Contains(err.Error(), "API error: 500") {
			t.Errorf("Expected API error 500, got %v", err)
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		bad := NewClient("http://invalid-url-that-does-not-exist.local")
		bad.httpClient.Timeout = time.Second
		if err := bad.apiCall(ctx, "GET", "/test", nil, nil); err == nil {
			t.Error("Expected error for invalid URL")
		}
	})
}

func TestClient_createSession(t *testing.T) {
	state := newTestState(t)
	var mu sync.Mutex
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions" || r.Method != "POST" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		mu.Lock()
		json.NewDecoder(r.Body).Decode(&gotBody)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:         "abc12345",
			ConfigName: "classic",
			CreatedAt:  time.Now(),
			GameState:  state,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(), callTool("create_session", map[string]interface{}{
		"config_id":  "classic",
		"board_size": float64(9),
		"game_mode":  "pvp",
	}))
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Created session: abc12345") {
		t.Errorf("Expected session id in result, got:\n%s", text)
	}
	mu.Lock()
	defer mu.Unlock()
	if gotBody["config_id"] != "classic" || gotBody["board_size"] != float64(9) || gotBody["game_mode"] != "pvp" {
		t.Errorf("Unexpected request body: %v", gotBody)
	}
	if _, ok := gotBody["ai_difficulty"]; ok {
		t.Error("Expected unset ai_difficulty to be omitted")
	}
}

func TestClient_selectCell(t *testing.T) {
	state := newTestState(t)
	var mu sync.Mutex
	var gotPath string
	var gotBody map[string]int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		mu.Unlock()
		json.NewEncoder(w).Encode(service.CommandResult{
			Accepted:  false,
			Rejection: &service.Rejection{Code: "not_adjacent", Message: "destination is not adjacent"},
			GameState: state,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleSelectCell(context.Background(), callTool("select_cell", map[string]interface{}{
		"session_id": "abc12345",
		"row":        float64(4),
		"col":        float64(3),
		"intent":     "head for the center",
	}))
	if err != nil {
		t.Fatalf("handleSelectCell failed: %v", err)
	}

	if result.IsError {
		t.Error("Expected a rejection to be a normal result")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Rejected (not_adjacent)") {
		t.Errorf("Expected rejection in result, got:\n%s", text)
	}
	mu.Lock()
	defer mu.Unlock()
	if gotPath != "/api/sessions/abc12345/select" {
		t.Errorf("Expected select endpoint, got %s", gotPath)
	}
	if gotBody["row"] != 4 || gotBody["col"] != 3 {
		t.Errorf("Expected row 4 col 3, got %v", gotBody)
	}
}

func TestClient_selectCellRequiresArguments(t *testing.T) {
	client := NewClient("http://localhost:0")

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"no session", map[string]interface{}{"row": 1, "col": 1}},
		{"no row", map[string]interface{}{"session_id": "abc", "col": 1}},
		{"no col", map[string]interface{}{"session_id": "abc", "row": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.handleSelectCell(context.Background(), callTool("select_cell", tt.args))
			if err != nil {
				t.Fatalf("Expected error result, got error %v", err)
			}
			if !result.IsError {
				t.Error("Expected IsError to be set")
			}
		})
	}
}

func TestClient_resetAndSettings(t *testing.T) {
	state := newTestState(t)
	var mu sync.Mutex
	requests := map[string]string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		data, _ := json.Marshal(body)
		mu.Lock()
		requests[r.URL.Path] = string(data)
		mu.Unlock()
		json.NewEncoder(w).Encode(service.CommandResult{Accepted: true, GameState: state})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	calls := []struct {
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
		path    string
		body    string
	}{
		{client.handleReset, map[string]interface{}{"session_id": "s1"}, "/api/sessions/s1/reset", "null"},
		{client.handleReset, map[string]interface{}{"session_id": "s2", "board_size": 5}, "/api/sessions/s2/reset", `{"board_size":5}`},
		{client.handleSetBoardSize, map[string]interface{}{"session_id": "s1", "board_size": 11}, "/api/sessions/s1/board-size", `{"board_size":11}`},
		{client.handleSetGameMode, map[string]interface{}{"session_id": "s1", "game_mode": "ai"}, "/api/sessions/s1/game-mode", `{"game_mode":"ai"}`},
		{client.handleSetAIDifficulty, map[string]interface{}{"session_id": "s1", "ai_difficulty": "hard"}, "/api/sessions/s1/ai-difficulty", `{"ai_difficulty":"hard"}`},
		{client.handleSetPlayerColor, map[string]interface{}{"session_id": "s1", "player": 2, "color": "orange"}, "/api/sessions/s1/color", `{"color":"orange","player":2}`},
		{client.handleUndo, map[string]interface{}{"session_id": "s1"}, "/api/sessions/s1/undo", "null"},
	}

	for _, c := range calls {
		result, err := c.handler(ctx, callTool("", c.args))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c.path, err)
		}
		if !strings.Contains(resultText(t, result), "accepted") {
			t.Errorf("%s: expected accepted result", c.path)
		}
		mu.Lock()
		got := requests[c.path]
		mu.Unlock()
		if got != c.body {
			t.Errorf("%s: expected body %s, got %s", c.path, c.body, got)
		}
	}
}

func TestClient_errorsBecomeToolErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "session not found: nope", "code": 404})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleGameState(context.Background(), callTool("game_state", map[string]interface{}{"session_id": "nope"}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected IsError to be set")
	}
	if text := resultText(t, result); !strings.Contains(text, "session not found") {
		t.Errorf("Expected error message, got %s", text)
	}
}

func TestFormatGameState(t *testing.T) {
	state := newTestState(t)
	text := formatGameState(state)

	for _, want := range []string{"Board: 7x7", "Phase: awaiting_move", "Player 1", "Player 2", "Legal moves for player 1"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in:\n%s", want, text)
		}
	}

	if got := formatGameState(nil); got != "No game state available" {
		t.Errorf("Unexpected nil rendering: %s", got)
	}
}

func TestFormatBoard(t *testing.T) {
	state := newTestState(t)
	state.Board[3][3].State = engine.Removed
	lines := strings.Split(strings.TrimRight(formatBoard(state), "\n"), "\n")

	if len(lines) != 8 {
		t.Fatalf("Expected header plus 7 rows, got %d lines", len(lines))
	}

	// Row 0 has player 1 in the middle column
	if !strings.HasSuffix(lines[1], ". . . 1 . . .") {
		t.Errorf("Unexpected top row: %q", lines[1])
	}
	if !strings.HasSuffix(lines[4], ". . . # . . .") {
		t.Errorf("Unexpected middle row: %q", lines[4])
	}
	if !strings.HasSuffix(lines[7], ". . . 2 . . .") {
		t.Errorf("Unexpected bottom row: %q", lines[7])
	}
}

func TestFormatHistory(t *testing.T) {
	removed := engine.Position{Row: 2, Col: 2}
	history := &service.HistoryResponse{
		Moves: []engine.Move{
			{Player: engine.PlayerOne, From: engine.Position{Row: 0, Col: 3}, To: engine.Position{Row: 1, Col: 3}, Removed: &removed},
			{Player: engine.PlayerTwo, From: engine.Position{Row: 6, Col: 3}, To: engine.Position{Row: 5, Col: 3}},
		},
		Count:    2,
		Capacity: engine.HistoryCapacity,
	}

	text := formatHistory(history)
	if !strings.Contains(text, "1. Player 1 (0,3) -> (1,3), removed (2,2)") {
		t.Errorf("Unexpected first entry:\n%s", text)
	}
	if !strings.Contains(text, "2. Player 2 (6,3) -> (5,3), removed nothing") {
		t.Errorf("Unexpected second entry:\n%s", text)
	}

	empty := formatHistory(&service.HistoryResponse{Capacity: engine.HistoryCapacity})
	if !strings.Contains(empty, "no moves yet") {
		t.Errorf("Expected empty marker, got:\n%s", empty)
	}
}

func TestGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:0")
	result, err := client.handleGameInstructions(context.Background(), callTool("game_instructions", nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"GAME OBJECTIVE", "TURN STRUCTURE", "starting square", "select_cell"} {
		if !strings.Contains(strings.ToLower(text), strings.ToLower(want)) {
			t.Errorf("Expected instructions to mention %q", want)
		}
	}
}
