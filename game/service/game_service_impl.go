package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/isolation-game/game/engine"
	"github.com/wricardo/isolation-game/obslog"
)

var (
	// ErrAIThinking rejects human commands while the AI takes its turn
	ErrAIThinking = errors.New("the AI is taking its turn")
	// ErrInvalidRequest marks bad session options or preset names
	ErrInvalidRequest = errors.New("invalid request")
)

// Option configures a game service
type Option func(*gameServiceImpl)

// WithNotifier pushes every state change to n
func WithNotifier(n StateNotifier) Option {
	return func(s *gameServiceImpl) { s.notifier = n }
}

// WithAIPlayer replaces the clock-seeded AI, typically with a seeded one
func WithAIPlayer(ai *engine.AIPlayer) Option {
	return func(s *gameServiceImpl) { s.ai = ai }
}

// WithAIDelays overrides the per-preset AI pacing for every session
func WithAIDelays(move, removal time.Duration) Option {
	return func(s *gameServiceImpl) {
		s.moveDelay = &move
		s.removalDelay = &removal
	}
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	notifier StateNotifier
	ai       *engine.AIPlayer

	moveDelay    *time.Duration
	removalDelay *time.Duration

	baseCtx context.Context
	stop    context.CancelFunc
	aiWG    sync.WaitGroup
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	ctx, stop := context.WithCancel(context.Background())
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		baseCtx:  ctx,
		stop:     stop,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ai == nil {
		s.ai = engine.NewAIPlayer(nil)
	}
	return s
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session from a preset plus overrides
func (s *gameServiceImpl) CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error) {
	base, err := s.resolveConfig(opts.ConfigName)
	if err != nil {
		return nil, err
	}

	config := *base
	if opts.BoardSize != 0 {
		config.BoardSize = opts.BoardSize
	}
	if opts.GameMode != "" {
		config.GameMode = opts.GameMode
	}
	if opts.AIDifficulty != "" {
		config.AIDifficulty = opts.AIDifficulty
	}
	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	session, err := s.sessions.Create("", &config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := opts.ConfigName
	if configID == "" {
		configID = s.getConfigID(base.Name)
	}

	session.mu.Lock()
	info := s.sessionInfoLocked(session, configID)
	s.notifyLocked(session, EventStateUpdate, nil)
	session.mu.Unlock()

	obslog.L().Info("session created",
		zap.String("session", session.ID),
		zap.String("config", configID),
		zap.Int("board_size", config.BoardSize),
		zap.String("mode", string(config.GameMode)))

	return info, nil
}

func (s *gameServiceImpl) resolveConfig(name string) (*engine.GameConfig, error) {
	if name == "" {
		return s.configs.GetDefault(), nil
	}

	config, err := s.configs.LoadConfig(name)
	if err == nil {
		return config, nil
	}
	if strings.Contains(err.Error(), "configuration not found") {
		availableConfigs, listErr := s.configs.ListConfigs()
		if listErr == nil && len(availableConfigs) > 0 {
			var configIDs []string
			for _, cfg := range availableConfigs {
				configIDs = append(configIDs, cfg.ConfigID)
			}
			return nil, fmt.Errorf("%w: config '%s' not found. Available configs: %v", ErrInvalidRequest, name, configIDs)
		}
		return nil, fmt.Errorf("%w: config '%s' not found. Use /api/configs to list available configurations", ErrInvalidRequest, name)
	}
	return nil, fmt.Errorf("%w: failed to load config %s: %v", ErrInvalidRequest, name, err)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return s.sessionInfoLocked(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		sess.mu.Lock()
		result = append(result, s.sessionInfoLocked(sess, s.getConfigID(sess.Config.Name)))
		sess.mu.Unlock()
	}

	return result, nil
}

// DeleteSession cancels any pending AI turn and removes the session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	session.mu.Lock()
	s.cancelAILocked(session)
	session.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	obslog.L().Info("session deleted", zap.String("session", session.ID))
	return nil
}

// commandOptions describes how a command interacts with the AI driver
type commandOptions struct {
	human    bool // rejected while the AI owns the turn
	cancelAI bool // supersedes a pending AI turn
}

// runCommand applies fn to the session's engine under the session lock and turns
// engine rejections into a CommandResult
func (s *gameServiceImpl) runCommand(sessionID, name string, opts commandOptions, fn func(sess *Session) (engine.Action, error)) (*CommandResult, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()

	var (
		action engine.Action
		cmdErr error
	)
	if opts.human && session.aiThinking {
		cmdErr = ErrAIThinking
	} else {
		if opts.cancelAI {
			s.cancelAILocked(session)
		}
		action, cmdErr = fn(session)
	}

	s.maybeStartAILocked(session)

	if isInvalidSetting(cmdErr) {
		session.mu.Unlock()
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRequest, name, cmdErr)
	}
	if cmdErr != nil && !isRejection(cmdErr) {
		session.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", name, cmdErr)
	}

	result := &CommandResult{
		Accepted:   cmdErr == nil,
		Action:     action,
		AIThinking: session.aiThinking,
		GameState:  session.Engine.GetState(),
	}
	if cmdErr == nil {
		s.notifyStateLocked(session, EventStateUpdate, nil, result.GameState)
	}
	session.mu.Unlock()

	if cmdErr != nil {
		result.Rejection = &Rejection{
			Code:    rejectionCode(cmdErr),
			Message: cmdErr.Error(),
		}
		obslog.L().Debug("command rejected",
			zap.String("session", session.ID),
			zap.String("command", name),
			zap.String("code", result.Rejection.Code))
		return result, nil
	}

	obslog.L().Debug("command applied",
		zap.String("session", session.ID),
		zap.String("command", name),
		zap.String("action", string(action)))
	return result, nil
}

// SelectCell applies a click on (row, col) for the current human player
func (s *gameServiceImpl) SelectCell(ctx context.Context, sessionID string, row, col int) (*CommandResult, error) {
	return s.runCommand(sessionID, "select_cell", commandOptions{human: true}, func(sess *Session) (engine.Action, error) {
		return sess.Engine.SelectCell(row, col)
	})
}

// Undo reverts the last move. Against the AI it keeps undoing until a human is to move.
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*CommandResult, error) {
	return s.runCommand(sessionID, "undo", commandOptions{human: true, cancelAI: true}, func(sess *Session) (engine.Action, error) {
		if err := sess.Engine.Undo(); err != nil {
			return engine.ActionNone, err
		}
		if sess.Engine.IsAITurn() && sess.Engine.HistoryLen() > 0 {
			if err := sess.Engine.Undo(); err != nil {
				return engine.ActionNone, err
			}
		}
		return engine.ActionNone, nil
	})
}

// Reset starts a new round, optionally at a new board size
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string, boardSize int) (*CommandResult, error) {
	return s.runCommand(sessionID, "reset", commandOptions{cancelAI: true}, func(sess *Session) (engine.Action, error) {
		if boardSize != 0 {
			return engine.ActionNone, sess.Engine.SetBoardSize(boardSize)
		}
		sess.Engine.Reset()
		return engine.ActionNone, nil
	})
}

// SetBoardSize discards the round and starts over at size
func (s *gameServiceImpl) SetBoardSize(ctx context.Context, sessionID string, size int) (*CommandResult, error) {
	return s.runCommand(sessionID, "set_board_size", commandOptions{cancelAI: true}, func(sess *Session) (engine.Action, error) {
		return engine.ActionNone, sess.Engine.SetBoardSize(size)
	})
}

// SetGameMode switches between pvp and ai; switching to ai on player 2's turn starts the AI
func (s *gameServiceImpl) SetGameMode(ctx context.Context, sessionID string, mode engine.GameMode) (*CommandResult, error) {
	return s.runCommand(sessionID, "set_game_mode", commandOptions{cancelAI: true}, func(sess *Session) (engine.Action, error) {
		return engine.ActionNone, sess.Engine.SetGameMode(mode)
	})
}

// SetAIDifficulty changes the AI tier; a turn already in progress keeps going
func (s *gameServiceImpl) SetAIDifficulty(ctx context.Context, sessionID string, level engine.Difficulty) (*CommandResult, error) {
	return s.runCommand(sessionID, "set_ai_difficulty", commandOptions{}, func(sess *Session) (engine.Action, error) {
		return engine.ActionNone, sess.Engine.SetAIDifficulty(level)
	})
}

// SetPlayerColor changes one player's color
func (s *gameServiceImpl) SetPlayerColor(ctx context.Context, sessionID string, player engine.PlayerID, color engine.Color) (*CommandResult, error) {
	return s.runCommand(sessionID, "set_player_color", commandOptions{}, func(sess *Session) (engine.Action, error) {
		return engine.ActionNone, sess.Engine.SetPlayerColor(player, color)
	})
}

// GetGameState returns the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.Engine.GetState(), nil
}

// GetMoveHistory returns the undoable moves of a session
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string) (*HistoryResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	moves := session.Engine.History()
	return &HistoryResponse{
		Moves:    moves,
		Count:    len(moves),
		Capacity: engine.HistoryCapacity,
		LastMove: session.Engine.LastMove(),
	}, nil
}

// ListConfigs returns available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// Close cancels every pending AI turn and waits for the AI goroutines to exit
func (s *gameServiceImpl) Close() {
	s.stop()
	s.aiWG.Wait()
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return session, nil
}

func (s *gameServiceImpl) sessionInfoLocked(session *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		AIThinking:     session.aiThinking,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}
}

// notifyLocked publishes the session's current state. Callers hold session.mu,
// so events of one session reach the notifier in the order they happened.
func (s *gameServiceImpl) notifyLocked(session *Session, event string, pos *engine.Position) {
	if s.notifier == nil {
		return
	}
	s.notifyStateLocked(session, event, pos, session.Engine.GetState())
}

func (s *gameServiceImpl) notifyStateLocked(session *Session, event string, pos *engine.Position, state *engine.GameState) {
	if s.notifier == nil {
		return
	}
	session.seq++
	s.notifier.Notify(StateEvent{
		SessionID: session.ID,
		Seq:       session.seq,
		Event:     event,
		Position:  pos,
		GameState: state,
		Timestamp: time.Now(),
	})
}

// isInvalidSetting reports configuration errors, which are bad requests rather than game rejections
func isInvalidSetting(err error) bool {
	for _, target := range []error{
		engine.ErrInvalidBoardSize,
		engine.ErrInvalidGameMode,
		engine.ErrInvalidDifficulty,
		engine.ErrInvalidColor,
		engine.ErrInvalidPlayer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isRejection(err error) bool {
	return errors.Is(err, ErrAIThinking) || engine.IsRejection(err)
}

func rejectionCode(err error) string {
	if errors.Is(err, ErrAIThinking) {
		return "ai_thinking"
	}
	return engine.RejectionCode(err)
}
