// Command bruteforcer plays Isolation against a running game server through
// its REST API, game after game, until it beats the server's AI. In pvp
// sessions it plays both sides.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/isolation-game/game/engine"
	"github.com/wricardo/isolation-game/game/service"
	"github.com/wricardo/isolation-game/obslog"
)

// sessionFile remembers the last session between runs
const sessionFile = ".session"

// errAIStalled is returned when the server AI does not finish its turn in time
var errAIStalled = errors.New("AI did not finish its turn")

// Client talks to the game server's REST API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s %s failed: %s", method, path, errResp.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// CreateSession starts a session from a preset and remembers its ID
func (c *Client) CreateSession(ctx context.Context, opts service.CreateOptions) (*service.SessionInfo, error) {
	var session service.SessionInfo
	if err := c.do(ctx, "POST", "/api/sessions", opts, &session); err != nil {
		return nil, err
	}
	c.sessionID = session.ID
	return &session, nil
}

// GetSession fetches the current session
func (c *Client) GetSession(ctx context.Context) (*service.SessionInfo, error) {
	var session service.SessionInfo
	if err := c.do(ctx, "GET", "/api/sessions/"+c.sessionID, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Select moves or removes at (row, col), depending on the phase
func (c *Client) Select(ctx context.Context, p engine.Position) (*service.CommandResult, error) {
	var result service.CommandResult
	err := c.do(ctx, "POST", "/api/sessions/"+c.sessionID+"/select", p, &result)
	return &result, err
}

// Reset starts a new round in the session
func (c *Client) Reset(ctx context.Context) (*service.CommandResult, error) {
	var result service.CommandResult
	err := c.do(ctx, "POST", "/api/sessions/"+c.sessionID+"/reset", nil, &result)
	return &result, err
}

// WaitForTurn polls until the session expects a command from the bot
func (c *Client) WaitForTurn(ctx context.Context, poll, timeout time.Duration) (*service.SessionInfo, error) {
	deadline := time.Now().Add(timeout)
	for {
		session, err := c.GetSession(ctx)
		if err != nil {
			return nil, err
		}
		if botsTurn(session) {
			return session, nil
		}
		if time.Now().After(deadline) {
			return nil, errAIStalled
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(poll):
		}
	}
}

// botsTurn reports whether the server waits for the bot
func botsTurn(session *service.SessionInfo) bool {
	state := session.GameState
	if state == nil || session.AIThinking {
		return false
	}
	if state.IsGameOver {
		return true
	}
	return state.GameMode != engine.PlayerVsAI || state.CurrentPlayer != engine.AIPlayerID
}

// PlayOptions tunes a single game
type PlayOptions struct {
	Poll      time.Duration
	AITimeout time.Duration
	Delay     time.Duration
	Verbose   bool
}

// GameOutcome summarizes a finished game
type GameOutcome struct {
	Winner   engine.PlayerID
	Commands int // accepted commands sent by the bot
	Scores   map[engine.PlayerID]int
}

// playGame plays the current round of the client's session to the end
func playGame(ctx context.Context, client *Client, strategy *Strategy, opts PlayOptions) (*GameOutcome, error) {
	logger := obslog.L()
	commands := 0

	for {
		session, err := client.WaitForTurn(ctx, opts.Poll, opts.AITimeout)
		if err != nil {
			return nil, err
		}
		state := session.GameState

		if state.IsGameOver {
			outcome := &GameOutcome{Commands: commands, Scores: make(map[engine.PlayerID]int)}
			if state.Winner != nil {
				outcome.Winner = *state.Winner
			}
			for _, p := range state.Players {
				outcome.Scores[p.ID] = p.Score
			}
			return outcome, nil
		}

		// each square is removed at most once, so a game needs at most two
		// commands per square
		if limit := 2 * int(state.BoardSize) * int(state.BoardSize); commands > limit {
			return nil, fmt.Errorf("game did not finish after %d commands", commands)
		}

		var target engine.Position
		switch state.TurnPhase {
		case engine.AwaitingMove:
			target, err = strategy.NextMove(state)
		case engine.AwaitingRemoval:
			target, err = strategy.NextRemoval(state)
		default:
			err = fmt.Errorf("unexpected phase %s", state.TurnPhase)
		}
		if err != nil {
			return nil, err
		}

		result, err := client.Select(ctx, target)
		if err != nil {
			return nil, err
		}
		if !result.Accepted {
			code := "unknown"
			if result.Rejection != nil {
				code = result.Rejection.Code
			}
			return nil, fmt.Errorf("server rejected %s in phase %s: %s", target, state.TurnPhase, code)
		}
		commands++

		if opts.Verbose {
			logger.Debug("command accepted",
				zap.Int("player", int(state.CurrentPlayer)),
				zap.String("action", string(result.Action)),
				zap.Int("row", target.Row),
				zap.Int("col", target.Col))
		}

		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
	}
}

// resumeOrCreate resumes the saved or requested session, or creates a new one
func resumeOrCreate(ctx context.Context, client *Client, sessionID string, opts service.CreateOptions) error {
	logger := obslog.L()

	if sessionID == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			sessionID = string(bytes.TrimSpace(data))
		}
	}

	if sessionID != "" {
		client.sessionID = sessionID
		session, err := client.GetSession(ctx)
		if err == nil {
			logger.Info("session resumed",
				zap.String("session", session.ID),
				zap.Int("board_size", int(session.GameState.BoardSize)),
				zap.String("mode", string(session.GameState.GameMode)))
			return nil
		}
		logger.Warn("failed to resume session, creating a new one", zap.String("session", sessionID), zap.Error(err))
	}

	session, err := client.CreateSession(ctx, opts)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	logger.Info("session created",
		zap.String("session", session.ID),
		zap.String("config", session.ConfigName),
		zap.Int("board_size", int(session.GameState.BoardSize)))

	if err := os.WriteFile(sessionFile, []byte(session.ID), 0644); err != nil {
		logger.Warn("failed to save session ID", zap.Error(err))
	}
	return nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := obslog.L()

	level := engine.Difficulty(cmd.String("strength"))
	if !level.Valid() {
		return fmt.Errorf("%w: %s", engine.ErrInvalidDifficulty, level)
	}

	client := NewClient(cmd.String("url"))
	logger.Info("connecting to game server", zap.String("url", client.baseURL))

	createOpts := service.CreateOptions{
		ConfigName:   cmd.String("config"),
		BoardSize:    cmd.Int("board-size"),
		AIDifficulty: engine.Difficulty(cmd.String("ai")),
	}
	if err := resumeOrCreate(ctx, client, cmd.String("continue"), createOpts); err != nil {
		return err
	}

	strategy := NewStrategy(int64(cmd.Int("seed")), level)
	playOpts := PlayOptions{
		Poll:      cmd.Duration("poll"),
		AITimeout: cmd.Duration("ai-timeout"),
		Delay:     cmd.Duration("delay"),
		Verbose:   cmd.Bool("v"),
	}

	maxAttempts := cmd.Int("max-attempts")
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if _, err := client.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}

		outcome, err := playGame(ctx, client, strategy, playOpts)
		if err != nil {
			return fmt.Errorf("attempt %d: %w", attempt, err)
		}

		logger.Info("game finished",
			zap.Int("attempt", attempt),
			zap.Int("winner", int(outcome.Winner)),
			zap.Int("commands", outcome.Commands),
			zap.Int("score_p1", outcome.Scores[engine.PlayerOne]),
			zap.Int("score_p2", outcome.Scores[engine.PlayerTwo]))

		if outcome.Winner == engine.PlayerOne {
			logger.Info("victory", zap.Int("attempt", attempt), zap.String("session", client.sessionID))
			return nil
		}
	}

	return fmt.Errorf("failed to win after %d attempts (session %s)", maxAttempts, client.sessionID)
}

func main() {
	cmd := &cli.Command{
		Name:  "bruteforcer",
		Usage: "Play Isolation against a game server until the bot wins",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "config", Usage: "Preset for a new session (default: the server's default)"},
			&cli.IntFlag{Name: "board-size", Usage: "Board size override for a new session"},
			&cli.StringFlag{Name: "ai", Usage: "Server AI difficulty override for a new session"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.StringFlag{Name: "strength", Value: string(engine.Hard), Usage: "AI tier the bot plays with"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "Seed for the bot's choices"},
			&cli.IntFlag{Name: "max-attempts", Value: 100, Usage: "Maximum games before giving up"},
			&cli.DurationFlag{Name: "poll", Value: 100 * time.Millisecond, Usage: "Poll interval while the server AI plays"},
			&cli.DurationFlag{Name: "ai-timeout", Value: 30 * time.Second, Usage: "Give up when the server AI takes longer than this"},
			&cli.DurationFlag{Name: "delay", Usage: "Delay between commands"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("v") {
				os.Setenv("LOG_LEVEL", "debug")
			}
			return ctx, obslog.InitFromEnv()
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		obslog.L().Error("bruteforcer failed", zap.Error(err))
		os.Exit(1)
	}
}
