package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/isolation-game/game/engine"
	"github.com/wricardo/isolation-game/obslog"
)

// maybeStartAILocked launches the AI turn when the engine hands the turn to the AI.
// Callers hold session.mu.
func (s *gameServiceImpl) maybeStartAILocked(session *Session) {
	if session.aiThinking || !session.Engine.IsAITurn() {
		return
	}

	ctx, cancel := context.WithCancel(s.baseCtx)
	session.cancelAI = cancel
	session.aiThinking = true
	gen := session.generation

	s.aiWG.Add(1)
	go s.runAITurn(ctx, session, gen)
}

// cancelAILocked invalidates any pending AI step. Callers hold session.mu.
func (s *gameServiceImpl) cancelAILocked(session *Session) {
	session.stopAILocked()
}

// runAITurn plays one AI move and its removal through the engine's normal
// commands, pausing before each so clients can follow along. A turn picked up
// after player 2 already moved (a switch to ai mode mid-turn) only removes.
func (s *gameServiceImpl) runAITurn(ctx context.Context, session *Session, gen uint64) {
	defer s.aiWG.Done()
	defer s.finishAITurn(session, gen)

	phase, ok := s.announceAITurn(ctx, session, gen)
	if !ok {
		return
	}

	moveDelay, removalDelay := s.aiDelays(session.Config)

	if phase == engine.AwaitingMove {
		if !sleepCtx(ctx, moveDelay) {
			return
		}
		if !s.aiStep(ctx, session, gen, EventAIMove, s.ai.PlayMove) {
			return
		}
	}

	if !sleepCtx(ctx, removalDelay) {
		return
	}
	s.aiStep(ctx, session, gen, EventAIRemoval, s.ai.PlayRemoval)
}

// aiStep applies one AI command if the turn it belongs to is still current
func (s *gameServiceImpl) aiStep(ctx context.Context, session *Session, gen uint64, event string, play func(*engine.GameEngine) (engine.Position, error)) bool {
	session.mu.Lock()
	if ctx.Err() != nil || session.generation != gen {
		session.mu.Unlock()
		return false
	}
	if event == EventAIRemoval && session.Engine.Phase() != engine.AwaitingRemoval {
		// the move was finalized on its own, nothing left to remove
		session.mu.Unlock()
		return false
	}

	pos, err := play(session.Engine)
	if err != nil {
		session.mu.Unlock()
		obslog.L().Error("AI command rejected",
			zap.String("session", session.ID),
			zap.String("event", event),
			zap.Stringer("position", pos),
			zap.Error(err))
		return false
	}
	s.notifyLocked(session, event, &pos)
	session.mu.Unlock()

	obslog.L().Debug("AI played",
		zap.String("session", session.ID),
		zap.String("event", event),
		zap.Int("row", pos.Row),
		zap.Int("col", pos.Col))
	return true
}

// finishAITurn clears the thinking flag unless a newer command already did
func (s *gameServiceImpl) finishAITurn(session *Session, gen uint64) {
	session.mu.Lock()
	if session.generation != gen {
		session.mu.Unlock()
		return
	}
	if session.cancelAI != nil {
		session.cancelAI()
		session.cancelAI = nil
	}
	session.aiThinking = false
	s.notifyLocked(session, EventStateUpdate, nil)
	session.mu.Unlock()
}

// announceAITurn publishes ai_thinking and returns the phase the AI starts from
func (s *gameServiceImpl) announceAITurn(ctx context.Context, session *Session, gen uint64) (engine.TurnPhase, bool) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if ctx.Err() != nil || session.generation != gen {
		return "", false
	}
	s.notifyLocked(session, EventAIThinking, nil)
	return session.Engine.Phase(), true
}

func (s *gameServiceImpl) aiDelays(config *engine.GameConfig) (time.Duration, time.Duration) {
	move := config.AIMoveDelay()
	removal := config.AIRemovalDelay()
	if s.moveDelay != nil {
		move = *s.moveDelay
	}
	if s.removalDelay != nil {
		removal = *s.removalDelay
	}
	return move, removal
}

// sleepCtx waits for d and reports whether ctx is still live
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
