package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/isolation-game/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Commands
	SelectCell(ctx context.Context, sessionID string, row, col int) (*CommandResult, error)
	Undo(ctx context.Context, sessionID string) (*CommandResult, error)
	Reset(ctx context.Context, sessionID string, boardSize int) (*CommandResult, error)
	SetBoardSize(ctx context.Context, sessionID string, size int) (*CommandResult, error)
	SetGameMode(ctx context.Context, sessionID string, mode engine.GameMode) (*CommandResult, error)
	SetAIDifficulty(ctx context.Context, sessionID string, level engine.Difficulty) (*CommandResult, error)
	SetPlayerColor(ctx context.Context, sessionID string, player engine.PlayerID, color engine.Color) (*CommandResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error

	// Close cancels every pending AI turn
	Close()
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// StateNotifier receives every state change of every session. Notify runs with
// the session locked; it must not block or call back into the service.
type StateNotifier interface {
	Notify(event StateEvent)
}

// Session represents an active game session. Engine is not safe for concurrent
// use; the service serializes access with the session lock.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu         sync.Mutex
	generation uint64
	cancelAI   context.CancelFunc
	aiThinking bool
	seq        uint64 // last event sequence number
}

// StopAI abandons any pending AI turn. Session stores call it before dropping
// a session so its AI goroutine exits without touching the engine again.
func (s *Session) StopAI() {
	s.mu.Lock()
	s.stopAILocked()
	s.mu.Unlock()
}

// AIThinking reports whether an AI turn is in progress
func (s *Session) AIThinking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aiThinking
}

func (s *Session) stopAILocked() {
	s.generation++
	if s.cancelAI != nil {
		s.cancelAI()
		s.cancelAI = nil
	}
	s.aiThinking = false
}

// Touch records an access at now
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.LastAccessedAt = now
	s.mu.Unlock()
}

// LastAccessed returns the time of the most recent access
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastAccessedAt
}
