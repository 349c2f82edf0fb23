// Package api provides HTTP REST API handlers for the Isolation game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session {config_id?, board_size?, game_mode?, ai_difficulty?}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Queries:
//   - GET /api/sessions/{id}/state - Current snapshot
//   - GET /api/sessions/{id}/history - Undoable moves, oldest first
//
// Game Commands:
//   - POST /api/sessions/{id}/select {row, col} - Move or remove, depending on the phase
//   - POST /api/sessions/{id}/undo
//   - POST /api/sessions/{id}/reset {board_size?}
//   - POST /api/sessions/{id}/board-size {board_size}
//   - POST /api/sessions/{id}/game-mode {game_mode}
//   - POST /api/sessions/{id}/ai-difficulty {ai_difficulty}
//   - POST /api/sessions/{id}/color {player, color}
//
// Configuration:
//   - GET /api/configs - List presets
//   - GET /api/configs/{name} - Get a preset
//   - POST /api/configs - Save a preset
//
// Other:
//   - GET /health
//   - GET /ws?session={id} - WebSocket state feed
//
// Command Results:
//
// A command the rules refuse is not an HTTP error. Command endpoints answer
// 200 with the outcome:
//
//	{
//	  "accepted": false,
//	  "rejection": {"code": "not_adjacent", "message": "destination is not adjacent"},
//	  "ai_thinking": false,
//	  "game_state": {...}
//	}
//
// Error Handling:
//
// Transport and request errors are returned as JSON:
//
//	{
//	  "error": "error message",
//	  "code": 404
//	}
//
// Unknown sessions and presets answer 404, malformed bodies and invalid
// settings answer 400.
package api
