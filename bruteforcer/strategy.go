package main

import (
	"fmt"

	"github.com/wricardo/isolation-game/game/engine"
)

// Strategy picks the bot's squares from a REST snapshot. It rebuilds the board
// locally and asks an engine AI player, then checks the answer against the
// legal squares the server advertised.
type Strategy struct {
	ai    *engine.AIPlayer
	level engine.Difficulty
}

// NewStrategy creates a strategy playing at the given AI tier
func NewStrategy(seed int64, level engine.Difficulty) *Strategy {
	return &Strategy{ai: engine.NewSeededAIPlayer(seed), level: level}
}

// boardFromState rebuilds the board of a snapshot
func boardFromState(state *engine.GameState) (*engine.Board, error) {
	board, err := engine.NewBoard(state.BoardSize)
	if err != nil {
		return nil, err
	}
	for row, cells := range state.Board {
		for col, cell := range cells {
			if cell.State != engine.Removed {
				continue
			}
			if err := board.Remove(engine.Position{Row: row, Col: col}); err != nil {
				return nil, fmt.Errorf("rebuild board: %w", err)
			}
		}
	}
	return board, nil
}

// positions returns the current player's square and the opponent's
func positions(state *engine.GameState) (engine.Position, engine.Position, error) {
	self := state.Player(state.CurrentPlayer)
	opp := state.Player(state.CurrentPlayer.Other())
	if self == nil || opp == nil {
		return engine.Position{}, engine.Position{}, fmt.Errorf("snapshot is missing a player")
	}
	return self.Position, opp.Position, nil
}

// NextMove returns the destination for the current player
func (s *Strategy) NextMove(state *engine.GameState) (engine.Position, error) {
	if len(state.LegalMoves) == 0 {
		return engine.Position{}, fmt.Errorf("no legal moves")
	}
	board, err := boardFromState(state)
	if err != nil {
		return engine.Position{}, err
	}
	self, opp, err := positions(state)
	if err != nil {
		return engine.Position{}, err
	}

	to := s.ai.ChooseMove(board, self, opp, s.level)
	return pickLegal(to, state.LegalMoves), nil
}

// NextRemoval returns the square to remove after the current player's move
func (s *Strategy) NextRemoval(state *engine.GameState) (engine.Position, error) {
	if len(state.LegalRemovals) == 0 {
		return engine.Position{}, fmt.Errorf("no legal removals")
	}
	board, err := boardFromState(state)
	if err != nil {
		return engine.Position{}, err
	}
	self, opp, err := positions(state)
	if err != nil {
		return engine.Position{}, err
	}

	p := s.ai.ChooseRemoval(board, self, opp, s.level)
	return pickLegal(p, state.LegalRemovals), nil
}

// pickLegal returns want when the server lists it, else the first legal square
func pickLegal(want engine.Position, legal []engine.Position) engine.Position {
	for _, p := range legal {
		if p == want {
			return want
		}
	}
	return legal[0]
}
