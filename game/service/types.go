package service

import (
	"time"

	"github.com/wricardo/isolation-game/game/engine"
)

// CreateOptions selects a preset and optionally overrides parts of it
type CreateOptions struct {
	ConfigName   string            `json:"config_id,omitempty"`
	BoardSize    int               `json:"board_size,omitempty"`
	GameMode     engine.GameMode   `json:"game_mode,omitempty"`
	AIDifficulty engine.Difficulty `json:"ai_difficulty,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	AIThinking     bool               `json:"ai_thinking"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// Rejection explains why the engine refused a command
type Rejection struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CommandResult is the outcome of a game command. A rule violation is reported
// here with Accepted=false, not as an error.
type CommandResult struct {
	Accepted   bool              `json:"accepted"`
	Action     engine.Action     `json:"action,omitempty"`
	Rejection  *Rejection        `json:"rejection,omitempty"`
	AIThinking bool              `json:"ai_thinking"`
	GameState  *engine.GameState `json:"game_state"`
}

// HistoryResponse lists the undoable moves of a session, oldest first
type HistoryResponse struct {
	Moves    []engine.Move `json:"moves"`
	Count    int           `json:"count"`
	Capacity int           `json:"capacity"`
	LastMove *engine.Move  `json:"last_move,omitempty"`
}

// ConfigInfo provides information about a game preset
type ConfigInfo struct {
	Filename     string            `json:"filename"`
	ConfigID     string            `json:"config_id"` // The identifier to use for session creation
	Name         string            `json:"name"`      // Display name
	Description  string            `json:"description"`
	BoardSize    int               `json:"board_size"`
	GameMode     engine.GameMode   `json:"game_mode"`
	AIDifficulty engine.Difficulty `json:"ai_difficulty"`
}

// Event names pushed to StateNotifier
const (
	EventStateUpdate = "state_update"
	EventAIThinking  = "ai_thinking"
	EventAIMove      = "ai_move"
	EventAIRemoval   = "ai_removal"
)

// StateEvent is one state change of one session. Seq increases by one per
// event of the same session.
type StateEvent struct {
	SessionID string            `json:"session_id"`
	Seq       uint64            `json:"seq"`
	Event     string            `json:"event"`
	Position  *engine.Position  `json:"position,omitempty"`
	GameState *engine.GameState `json:"game_state"`
	Timestamp time.Time         `json:"timestamp"`
}
