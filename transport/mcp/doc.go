// Package mcp provides a Model Context Protocol server for the Isolation game.
//
// The server is a thin client: every tool call is forwarded to the REST API
// of a running game server, and the JSON answer is rendered as text an agent
// can read, including an ASCII board.
//
// MCP Tools:
//   - create_session: Create a session from a preset, with optional overrides
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - game_state: Board, players, phase and legal squares
//   - select_cell: Move or remove a square, depending on the phase
//   - undo: Take back the last move
//   - reset_game: Start a new round, optionally at another board size
//   - set_board_size, set_game_mode, set_ai_difficulty, set_player_color
//   - move_history: Undoable moves, oldest first
//   - list_configs: List available presets
//   - game_instructions: Rules and strategy tips
//
// Rejections are not tool errors. A refused select_cell returns a normal
// result starting with "✗ Rejected (code)" followed by the unchanged board.
// Transport failures and unknown sessions return error results.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := client.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
