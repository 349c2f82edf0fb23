package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Randomness per difficulty tier
const (
	easyNoise          = 2.0
	easyRandomMoveProb = 0.3
	easyRandomRemoval  = 0.4
	mediumNoise        = 0.5
)

// AIPlayer picks moves and removals with a single-ply heuristic. All randomness
// goes through rng so a seeded player is fully reproducible.
type AIPlayer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAIPlayer creates an AI that draws from rng. A nil rng is seeded from the clock.
func NewAIPlayer(rng *rand.Rand) *AIPlayer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AIPlayer{rng: rng}
}

// NewSeededAIPlayer creates a deterministic AI
func NewSeededAIPlayer(seed int64) *AIPlayer {
	return NewAIPlayer(rand.New(rand.NewSource(seed)))
}

// ChooseMove returns the destination the AI standing on aiPos wants to move to.
// With no legal move it returns aiPos.
func (ai *AIPlayer) ChooseMove(b *Board, aiPos, oppPos Position, difficulty Difficulty) Position {
	ai.mu.Lock()
	defer ai.mu.Unlock()

	candidates := LegalMoves(b, aiPos, oppPos)
	if len(candidates) == 0 {
		return aiPos
	}

	best := candidates[0]
	bestScore := ai.scoreMove(b, best, oppPos, difficulty)
	for _, c := range candidates[1:] {
		if score := ai.scoreMove(b, c, oppPos, difficulty); score > bestScore {
			best, bestScore = c, score
		}
	}

	if difficulty == Easy && ai.rng.Float64() < easyRandomMoveProb {
		return candidates[ai.rng.Intn(len(candidates))]
	}
	return best
}

func (ai *AIPlayer) scoreMove(b *Board, c, oppPos Position, difficulty Difficulty) float64 {
	mobility := float64(Mobility(b, c))
	toCenter := float64(DistanceToCenter(b, c))
	toOpp := float64(ManhattanDistance(c, oppPos))

	score := 2*mobility - toCenter + 0.5*toOpp

	switch difficulty {
	case Easy:
		score += ai.noise(easyNoise)
		score -= 0.5 * mobility
	case Medium:
		score += ai.noise(mediumNoise)
	case Hard:
		score += 0.5 * mobility
		score += 0.3 * toOpp
		if b.Size() > Size7 {
			score -= 0.5 * toCenter
		}
	}
	return score
}

// noise is uniform in [-amplitude, amplitude]
func (ai *AIPlayer) noise(amplitude float64) float64 {
	return (ai.rng.Float64()*2 - 1) * amplitude
}

// ChooseRemoval returns the square the AI wants to remove after moving to aiPos.
// With no candidate it returns the zero Position.
func (ai *AIPlayer) ChooseRemoval(b *Board, aiPos, oppPos Position, difficulty Difficulty) Position {
	ai.mu.Lock()
	defer ai.mu.Unlock()

	candidates := LegalRemovals(b, aiPos, oppPos)
	if len(candidates) == 0 {
		return Position{}
	}

	switch difficulty {
	case Hard:
		return mostRestrictiveRemoval(b, candidates, aiPos, oppPos)
	case Easy:
		if ai.rng.Float64() < easyRandomRemoval {
			return candidates[ai.rng.Intn(len(candidates))]
		}
	}
	return adjacentRemoval(candidates, oppPos)
}

// adjacentRemoval prefers a square next to the opponent, else the first candidate
func adjacentRemoval(candidates []Position, oppPos Position) Position {
	for _, dir := range Directions {
		if p := oppPos.Add(dir); contains(candidates, p) {
			return p
		}
	}
	return candidates[0]
}

// mostRestrictiveRemoval picks the candidate leaving the opponent the fewest moves
func mostRestrictiveRemoval(b *Board, candidates []Position, aiPos, oppPos Position) Position {
	best := candidates[0]
	bestCount := len(Directions) + 1
	for _, c := range candidates {
		trial := b.Clone()
		if err := trial.Remove(c); err != nil {
			continue
		}
		if count := len(LegalMoves(trial, oppPos, aiPos)); count < bestCount {
			best, bestCount = c, count
		}
	}
	return best
}

// PlayMove asks the AI for a move and submits it through the same entry point a human uses
func (ai *AIPlayer) PlayMove(e *GameEngine) (Position, error) {
	self := e.PlayerState(e.CurrentPlayer())
	opp := e.PlayerState(e.CurrentPlayer().Other())
	to := ai.ChooseMove(e.Board(), self.Position, opp.Position, e.Difficulty())
	return to, e.SubmitMove(to)
}

// PlayRemoval asks the AI for a removal and submits it
func (ai *AIPlayer) PlayRemoval(e *GameEngine) (Position, error) {
	self := e.PlayerState(e.CurrentPlayer())
	opp := e.PlayerState(e.CurrentPlayer().Other())
	p := ai.ChooseRemoval(e.Board(), self.Position, opp.Position, e.Difficulty())
	return p, e.SubmitRemoval(p)
}
