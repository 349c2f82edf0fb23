package engine

import (
	"fmt"
	"time"
)

// GameConfig is a named game preset. Presets are loaded from JSON or YAML files.
type GameConfig struct {
	Name             string     `json:"name" yaml:"name"`
	Description      string     `json:"description" yaml:"description"`
	BoardSize        int        `json:"board_size" yaml:"board_size"`
	GameMode         GameMode   `json:"game_mode" yaml:"game_mode"`
	AIDifficulty     Difficulty `json:"ai_difficulty" yaml:"ai_difficulty"`
	Player1Color     Color      `json:"player1_color,omitempty" yaml:"player1_color,omitempty"`
	Player2Color     Color      `json:"player2_color,omitempty" yaml:"player2_color,omitempty"`
	AIMoveDelayMs    int        `json:"ai_move_delay_ms,omitempty" yaml:"ai_move_delay_ms,omitempty"`
	AIRemovalDelayMs int        `json:"ai_removal_delay_ms,omitempty" yaml:"ai_removal_delay_ms,omitempty"`
}

// DefaultGameConfig returns the classic 7x7 game against a medium AI
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:             "classic",
		Description:      "Classic 7x7 Isolation against a medium AI",
		BoardSize:        int(DefaultBoardSize),
		GameMode:         PlayerVsAI,
		AIDifficulty:     Medium,
		Player1Color:     Blue,
		Player2Color:     Green,
		AIMoveDelayMs:    DefaultAIMoveDelayMs,
		AIRemovalDelayMs: DefaultAIRemovalDelayMs,
	}
}

// ApplyDefaults fills zero-valued optional fields
func (c *GameConfig) ApplyDefaults() {
	if c.BoardSize == 0 {
		c.BoardSize = int(DefaultBoardSize)
	}
	if c.GameMode == "" {
		c.GameMode = PlayerVsAI
	}
	if c.AIDifficulty == "" {
		c.AIDifficulty = Medium
	}
	if c.Player1Color == "" {
		c.Player1Color = Blue
	}
	if c.Player2Color == "" {
		c.Player2Color = Green
	}
	if c.AIMoveDelayMs == 0 {
		c.AIMoveDelayMs = DefaultAIMoveDelayMs
	}
	if c.AIRemovalDelayMs == 0 {
		c.AIRemovalDelayMs = DefaultAIRemovalDelayMs
	}
}

// AIMoveDelay is the pause before the AI picks its move
func (c *GameConfig) AIMoveDelay() time.Duration {
	return time.Duration(c.AIMoveDelayMs) * time.Millisecond
}

// AIRemovalDelay is the "thinking" pause between the AI's move and its removal
func (c *GameConfig) AIRemovalDelay() time.Duration {
	return time.Duration(c.AIRemovalDelayMs) * time.Millisecond
}

// ValidateGameConfig validates a preset. An invalid board size is a fatal
// configuration error, never a runtime rejection.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if _, err := ParseBoardSize(config.BoardSize); err != nil {
		return fmt.Errorf("config validation: board_size: %w", err)
	}
	if !config.GameMode.Valid() {
		return fmt.Errorf("config validation: game_mode %q: %w", config.GameMode, ErrInvalidGameMode)
	}
	if !config.AIDifficulty.Valid() {
		return fmt.Errorf("config validation: ai_difficulty %q: %w", config.AIDifficulty, ErrInvalidDifficulty)
	}

	if config.Player1Color != "" && !config.Player1Color.Valid() {
		return fmt.Errorf("config validation: player1_color %q: %w", config.Player1Color, ErrInvalidColor)
	}
	if config.Player2Color != "" && !config.Player2Color.Valid() {
		return fmt.Errorf("config validation: player2_color %q: %w", config.Player2Color, ErrInvalidColor)
	}
	if config.Player1Color != "" && config.Player1Color == config.Player2Color {
		return fmt.Errorf("config validation: players share color %q: %w", config.Player1Color, ErrColorTaken)
	}

	if config.AIMoveDelayMs < 0 || config.AIMoveDelayMs > MaxAIDelayMs {
		return fmt.Errorf("config validation: ai_move_delay_ms must be between 0 and %d, got %d", MaxAIDelayMs, config.AIMoveDelayMs)
	}
	if config.AIRemovalDelayMs < 0 || config.AIRemovalDelayMs > MaxAIDelayMs {
		return fmt.Errorf("config validation: ai_removal_delay_ms must be between 0 and %d, got %d", MaxAIDelayMs, config.AIRemovalDelayMs)
	}

	return nil
}
