// Package service provides the business logic layer for the Isolation game.
//
// The service package implements:
//   - Multi-session game management
//   - Preset lookup with per-session overrides
//   - Command processing with rule rejections reported as results
//   - The AI driver that plays player 2 against a human
//   - Move history queries
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages preset loading and validation.
// StateNotifier receives every state change, typically a WebSocket hub.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns one engine, guarded by the session's own
// mutex. Commands never block on the AI: when a command hands the turn to the
// AI, a goroutine plays the AI move and removal after the configured pauses,
// through the same engine commands a human uses. Reset, undo, board size and
// mode changes supersede a pending AI turn.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	gameService := service.NewGameService(sessionMgr, configMgr,
//		service.WithNotifier(hub))
//	defer gameService.Close()
//
//	info, err := gameService.CreateSession(ctx, service.CreateOptions{ConfigName: "classic"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.SelectCell(ctx, info.ID, 1, 3)
//	if err == nil && !result.Accepted {
//		log.Println(result.Rejection.Code)
//	}
package service
