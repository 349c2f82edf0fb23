// Package websocket pushes Isolation game state to browser clients.
//
// A central Hub owns every connection. Clients subscribe to one session with
// the ?session=<id> query parameter and only listen; commands go through the
// REST API. The Hub implements service.StateNotifier, so every state change
// the service makes (human commands and each AI step) reaches the session's
// clients as one JSON message per frame:
//
//	{"session_id": "ab12cd34", "event": "ai_move", "position": {"row": 5, "col": 3},
//	 "game_state": {...}, "timestamp": "..."}
//
// Events are state_update, ai_thinking, ai_move and ai_removal.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	svc := service.NewGameService(sessions, configs, service.WithNotifier(hub))
//
// Register, unregister and broadcast requests are serialized through the
// Run loop. A client whose buffer is full is disconnected rather than
// stalling the others.
package websocket
