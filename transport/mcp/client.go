package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/isolation-game/game/engine"
	"github.com/wricardo/isolation-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Isolation Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Isolation Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Leave your opponent without a legal move. Each turn you move your piece one
step in any of 8 directions, then remove one square from the board for good.

AVAILABLE TOOLS:
- create_session: Create new game session (optionally pick preset, board size, mode, AI level)
- list_sessions / get_session: Inspect sessions
- game_state: Board, players, phase and legal squares
- select_cell: Move (while awaiting a move) or remove a square (while awaiting a removal)
- undo: Take back the last move
- reset_game: Start a new round, optionally at a new board size
- set_board_size, set_game_mode, set_ai_difficulty, set_player_color: Session settings
- move_history: Undoable moves
- list_configs: Available presets
- game_instructions: Full rules and strategy tips

Against the AI you are player 1. After your removal the AI plays on its own;
check game_state until ai_thinking is false before your next select_cell.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session from a preset, with optional overrides",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to start from (optional, see list_configs)",
				},
				"board_size": map[string]interface{}{
					"type":        "integer",
					"enum":        []int{5, 7, 9, 11},
					"description": "Board side length (optional)",
				},
				"game_mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"pvp", "ai"},
					"description": "pvp for hot-seat, ai to play against the computer (optional)",
				},
				"ai_difficulty": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"easy", "medium", "hard"},
					"description": "AI strength (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game queries
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, players, phase and legal squares",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "List the undoable moves of a session, oldest first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleMoveHistory)

	// Game commands
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_cell",
		Description: "Select a square: the move destination while awaiting a move, the square to remove while awaiting a removal",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row, 0 at the top",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column, 0 at the left",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you pick this square (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleSelectCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Take back the last move. Against the AI this also takes back the AI's reply.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Start a new round. Scores, colors, mode and AI level are kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"board_size": map[string]interface{}{
					"type":        "integer",
					"enum":        []int{5, 7, 9, 11},
					"description": "New board size (optional)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_board_size",
		Description: "Change the board size. This discards the current round.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"board_size": map[string]interface{}{
					"type": "integer",
					"enum": []int{5, 7, 9, 11},
				},
			},
			Required: []string{"session_id", "board_size"},
		},
	}, c.handleSetBoardSize)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_game_mode",
		Description: "Switch between hot-seat (pvp) and playing against the AI (ai)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"game_mode": map[string]interface{}{
					"type": "string",
					"enum": []string{"pvp", "ai"},
				},
			},
			Required: []string{"session_id", "game_mode"},
		},
	}, c.handleSetGameMode)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_ai_difficulty",
		Description: "Change the AI strength",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"ai_difficulty": map[string]interface{}{
					"type": "string",
					"enum": []string{"easy", "medium", "hard"},
				},
			},
			Required: []string{"session_id", "ai_difficulty"},
		},
	}, c.handleSetAIDifficulty)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_player_color",
		Description: "Change a player's color. Both players can never share a color.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"player": map[string]interface{}{
					"type": "integer",
					"enum": []int{1, 2},
				},
				"color": map[string]interface{}{
					"type": "string",
					"enum": []string{"red", "blue", "green", "yellow", "purple", "orange"},
				},
			},
			Required: []string{"session_id", "player", "color"},
		},
	}, c.handleSetPlayerColor)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules and strategy tips",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// ServeStdio serves the tools over stdin/stdout until the client disconnects
func (c *Client) ServeStdio() error {
	return server.ServeStdio(c.mcpServer)
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// command posts body to a session command endpoint and formats the outcome
func (c *Client) command(ctx context.Context, sessionID, endpoint string, body interface{}) (*mcp.CallToolResult, error) {
	var result service.CommandResult
	path := fmt.Sprintf("/api/sessions/%s/%s", sessionID, endpoint)
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{}
	if configID := request.GetString("config_id", ""); configID != "" {
		body["config_id"] = configID
	}
	if size := request.GetInt("board_size", 0); size != 0 {
		body["board_size"] = size
	}
	if mode := request.GetString("game_mode", ""); mode != "" {
		body["game_mode"] = mode
	}
	if level := request.GetString("ai_difficulty", ""); level != "" {
		body["ai_difficulty"] = level
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := ""
		if s.GameState != nil {
			status = fmt.Sprintf(", %dx%d %s, %s", s.GameState.BoardSize, s.GameState.BoardSize, s.GameState.GameMode, s.GameState.Message)
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s%s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(session.GameState)
	if session.AIThinking {
		result += "\n\nThe AI is taking its turn. Check again shortly."
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSelectCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, err := request.RequireInt("row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := request.RequireInt("col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// intent is only there to make the caller explain itself

	return c.command(ctx, sessionID, "select", map[string]int{"row": row, "col": col})
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return c.command(ctx, sessionID, "undo", nil)
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var body interface{}
	if size := request.GetInt("board_size", 0); size != 0 {
		body = map[string]int{"board_size": size}
	}
	return c.command(ctx, sessionID, "reset", body)
}

func (c *Client) handleSetBoardSize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	size, err := request.RequireInt("board_size")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return c.command(ctx, sessionID, "board-size", map[string]int{"board_size": size})
}

func (c *Client) handleSetGameMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := request.RequireString("game_mode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return c.command(ctx, sessionID, "game-mode", map[string]string{"game_mode": mode})
}

func (c *Client) handleSetAIDifficulty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	level, err := request.RequireString("ai_difficulty")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return c.command(ctx, sessionID, "ai-difficulty", map[string]string{"ai_difficulty": level})
}

func (c *Client) handleSetPlayerColor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	player, err := request.RequireInt("player")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	color, err := request.RequireString("color")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return c.command(ctx, sessionID, "color", map[string]interface{}{"player": player, "color": color})
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/history", sessionID), nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Board: %dx%d, Mode: %s, AI: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.BoardSize, config.BoardSize, config.GameMode, config.AIDifficulty)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

const gameInstructions = `Isolation - Complete Instructions

GAME OBJECTIVE:
Trap your opponent. A player who has no legal move at the start of their turn loses.

THE BOARD:
A square board of 5x5, 7x7, 9x9 or 11x11. Player 1 starts at the middle of the
top row, player 2 at the middle of the bottom row. Those two starting squares
can never be removed.

TURN STRUCTURE:
Every turn has two steps, always in this order:
1. MOVE: step one square in any of the 8 directions (like a chess king).
   You cannot move onto a removed square or onto your opponent.
2. REMOVE: pick any square that is still on the board and remove it for good.
   You cannot remove a starting square or a square with a player on it.
   The square you just left is fair game.

Use select_cell for both steps: the same tool moves while the game awaits a
move and removes while it awaits a removal. game_state lists the legal squares
for the current step.

WINNING:
After each removal the game checks whether the next player can still move.
If not, the player who just removed wins and their score goes up by one.
Scores survive reset_game.

UNDO:
undo takes back the last complete turn (move and removal). Up to 20 turns can
be undone. Against the AI, undo also takes back the AI's reply so it is your
turn again. A move cannot be undone halfway, finish its removal first.

PLAYING THE AI:
In ai mode you are player 1 and the AI is player 2. After your removal the AI
pauses, moves, pauses again and removes. While it thinks, select_cell and undo
are refused with the code ai_thinking.
- easy: noisy and sometimes random
- medium: prefers open central squares, removes next to you
- hard: plans removals that leave you the fewest moves

STRATEGY TIPS:
- Mobility is everything: count the open neighbours of a square before moving there.
- The center keeps options open; edges and corners are traps.
- Remove squares next to your opponent, especially their best escape.
- Squares you will never need again are safe to remove; squares you might need are not.

BOARD LEGEND (game_state):
  1  player 1        2  player 2
  .  open square     #  removed square
  s  empty starting square

REJECTION CODES:
out_of_bounds, square_removed, occupied_by_opponent, not_adjacent,
already_removed, protected_starting_square, occupied_position, wrong_phase,
history_empty, color_taken, ai_thinking

Good luck!`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nAI thinking: %t\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.AIThinking,
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Board: %dx%d | Mode: %s | AI: %s | Phase: %s\n",
		state.BoardSize, state.BoardSize, state.GameMode, state.AIDifficulty, state.TurnPhase)
	for _, p := range state.Players {
		fmt.Fprintf(&b, "Player %d (%s) at (%d,%d), score %d\n",
			p.ID, p.Color, p.Position.Row, p.Position.Col, p.Score)
	}
	b.WriteString("\n")
	b.WriteString(formatBoard(state))

	switch {
	case state.IsGameOver:
		b.WriteString("\nGAME OVER")
	case state.TurnPhase == engine.AwaitingMove:
		fmt.Fprintf(&b, "\nLegal moves for player %d: %s", state.CurrentPlayer, formatPositions(state.LegalMoves))
	case state.TurnPhase == engine.AwaitingRemoval:
		fmt.Fprintf(&b, "\nRemovable squares: %d", len(state.LegalRemovals))
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

// formatBoard renders the board with row and column indexes
func formatBoard(state *engine.GameState) string {
	occupant := make(map[engine.Position]engine.PlayerID, len(state.Players))
	for _, p := range state.Players {
		occupant[p.Position] = p.ID
	}

	var b strings.Builder
	b.WriteString("   ")
	for col := range state.Board {
		fmt.Fprintf(&b, "%2d", col)
	}
	b.WriteString("\n")

	for row, cells := range state.Board {
		fmt.Fprintf(&b, "%2d ", row)
		for col, cell := range cells {
			b.WriteString(" ")
			if id, ok := occupant[engine.Position{Row: row, Col: col}]; ok {
				fmt.Fprintf(&b, "%d", id)
				continue
			}
			switch {
			case cell.State == engine.Removed:
				b.WriteString("#")
			case cell.Start:
				b.WriteString("s")
			default:
				b.WriteString(".")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatPositions(positions []engine.Position) string {
	if len(positions) == 0 {
		return "none"
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func formatCommandResult(result *service.CommandResult) string {
	var b strings.Builder
	if result.Accepted {
		action := string(result.Action)
		if action == "" || result.Action == engine.ActionNone {
			action = "command"
		}
		fmt.Fprintf(&b, "✓ %s accepted\n", action)
	} else if result.Rejection != nil {
		fmt.Fprintf(&b, "✗ Rejected (%s): %s\n", result.Rejection.Code, result.Rejection.Message)
	}
	if result.AIThinking {
		b.WriteString("The AI is taking its turn.\n")
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (%d/%d undoable):\n\n", history.Count, history.Capacity)

	for i, move := range history.Moves {
		removed := "nothing"
		if move.Removed != nil {
			removed = move.Removed.String()
		}
		fmt.Fprintf(&b, "%d. Player %d %s -> %s, removed %s\n",
			i+1, move.Player, move.From, move.To, removed)
	}
	if len(history.Moves) == 0 {
		b.WriteString("(no moves yet)\n")
	}

	return b.String()
}
