package engine

import (
	"errors"
	"testing"
)

func createTestConfig() *GameConfig {
	return &GameConfig{
		Name:         "Engine Test Config",
		Description:  "Configuration for engine integration tests",
		BoardSize:    7,
		GameMode:     PlayerVsPlayer,
		AIDifficulty: Medium,
		Player1Color: Blue,
		Player2Color: Green,
	}
}

func newTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}
	return engine
}

// playTurn moves the current player to `to` and removes `removed`
func playTurn(t *testing.T, e *GameEngine, to, removed Position) {
	t.Helper()
	if err := e.SubmitMove(to); err != nil {
		t.Fatalf("SubmitMove(%s) failed: %v", to, err)
	}
	if err := e.SubmitRemoval(removed); err != nil {
		t.Fatalf("SubmitRemoval(%s) failed: %v", removed, err)
	}
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)

	state := engine.GetState()
	if state.BoardSize != Size7 {
		t.Errorf("Expected board size 7, got %d", state.BoardSize)
	}
	if state.CurrentPlayer != PlayerOne {
		t.Errorf("Expected player 1 to start, got %d", state.CurrentPlayer)
	}
	if state.TurnPhase != AwaitingMove {
		t.Errorf("Expected phase %s, got %s", AwaitingMove, state.TurnPhase)
	}
	if state.IsGameOver || state.Winner != nil {
		t.Error("Expected game not to be over initially")
	}
	if state.HistoryLength != 0 {
		t.Errorf("Expected empty history, got %d", state.HistoryLength)
	}
	if got := state.Player(PlayerOne).Position; got != (Position{0, 3}) {
		t.Errorf("Expected player 1 at (0,3), got %s", got)
	}
	if got := state.Player(PlayerTwo).Position; got != (Position{6, 3}) {
		t.Errorf("Expected player 2 at (6,3), got %s", got)
	}
	if state.Message != "Player 1's Turn" {
		t.Errorf("Expected turn message, got %q", state.Message)
	}
	if len(state.LegalRemovals) != 0 {
		t.Errorf("Expected no legal removals while awaiting a move, got %d", len(state.LegalRemovals))
	}
}

func TestNewEngineInvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.BoardSize = 6

	_, err := NewEngine(config)
	if !errors.Is(err, ErrInvalidBoardSize) {
		t.Errorf("Expected ErrInvalidBoardSize, got %v", err)
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	if engine.GameMode() != PlayerVsAI {
		t.Errorf("Expected default mode ai, got %s", engine.GameMode())
	}
	if engine.Difficulty() != Medium {
		t.Errorf("Expected default difficulty medium, got %s", engine.Difficulty())
	}
}

func TestScenarioFirstTurn(t *testing.T) {
	engine := newTestEngine(t)

	action, err := engine.SelectCell(1, 3)
	if err != nil {
		t.Fatalf("Expected move to (1,3) to succeed, got %v", err)
	}
	if action != ActionMove {
		t.Errorf("Expected action move, got %s", action)
	}
	if engine.Phase() != AwaitingRemoval {
		t.Errorf("Expected phase %s, got %s", AwaitingRemoval, engine.Phase())
	}

	state := engine.GetState()
	if state.PendingMove == nil || state.PendingMove.To != (Position{1, 3}) {
		t.Errorf("Expected pending move to (1,3), got %+v", state.PendingMove)
	}
	if got := state.Player(PlayerOne).Position; got != (Position{1, 3}) {
		t.Errorf("Expected player 1 rendered at (1,3), got %s", got)
	}

	if _, err := engine.SelectCell(0, 3); !errors.Is(err, ErrProtectedStartingSquare) {
		t.Errorf("Expected ErrProtectedStartingSquare, got %v", err)
	}
	if engine.Phase() != AwaitingRemoval {
		t.Error("Expected rejected removal to leave the phase unchanged")
	}

	action, err = engine.SelectCell(2, 3)
	if err != nil {
		t.Fatalf("Expected removal of (2,3) to succeed, got %v", err)
	}
	if action != ActionRemove {
		t.Errorf("Expected action remove, got %s", action)
	}
	if engine.Board().IsPresent(Position{2, 3}) {
		t.Error("Expected (2,3) to be removed")
	}
	if engine.CurrentPlayer() != PlayerTwo {
		t.Errorf("Expected player 2 to move next, got %d", engine.CurrentPlayer())
	}
	if engine.HistoryLen() != 1 {
		t.Errorf("Expected history length 1, got %d", engine.HistoryLen())
	}

	last := engine.LastMove()
	if last == nil || last.Removed == nil || *last.Removed != (Position{2, 3}) {
		t.Errorf("Expected last move to record removal of (2,3), got %+v", last)
	}
}

func TestSubmitMoveRejections(t *testing.T) {
	tests := []struct {
		name string
		to   Position
		want error
	}{
		{"out of bounds", Position{-1, 3}, ErrOutOfBounds},
		{"not adjacent", Position{2, 3}, ErrNotAdjacent},
		{"removed square", Position{1, 2}, ErrSquareRemoved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t)
			if err := engine.board.Remove(Position{1, 2}); err != nil {
				t.Fatal(err)
			}
			before := engine.GetState()

			err := engine.SubmitMove(tt.to)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}

			after := engine.GetState()
			if after.TurnPhase != before.TurnPhase || after.Player(PlayerOne).Position != before.Player(PlayerOne).Position {
				t.Error("Expected rejected move to leave state unchanged")
			}
		})
	}
}

func TestMoveOntoOpponentRejected(t *testing.T) {
	engine := newTestEngine(t)
	engine.players[1].Position = Position{1, 3}

	if err := engine.SubmitMove(Position{1, 3}); !errors.Is(err, ErrOccupiedByOpponent) {
		t.Errorf("Expected ErrOccupiedByOpponent, got %v", err)
	}
}

func TestSubmitRemovalRejections(t *testing.T) {
	tests := []struct {
		name string
		p    Position
		want error
	}{
		{"mover square", Position{1, 3}, ErrOccupiedPosition},
		{"opponent start", Position{6, 3}, ErrProtectedStartingSquare},
		{"out of bounds", Position{7, 0}, ErrOutOfBounds},
		{"already removed", Position{4, 4}, ErrAlreadyRemoved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t)
			if err := engine.board.Remove(Position{4, 4}); err != nil {
				t.Fatal(err)
			}
			if err := engine.SubmitMove(Position{1, 3}); err != nil {
				t.Fatal(err)
			}

			if err := engine.SubmitRemoval(tt.p); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if engine.Phase() != AwaitingRemoval {
				t.Error("Expected phase to stay awaiting_removal")
			}
		})
	}
}

func TestVacatedOriginIsRemovable(t *testing.T) {
	engine := newTestEngine(t)
	playTurn(t, engine, Position{1, 3}, Position{2, 2})
	playTurn(t, engine, Position{5, 3}, Position{4, 0})

	// (1,3) is not a starting square, so it can go as soon as player 1 leaves it
	if err := engine.SubmitMove(Position{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := engine.SubmitRemoval(Position{1, 3}); err != nil {
		t.Errorf("Expected vacated origin to be removable, got %v", err)
	}
}

func TestPhaseGuards(t *testing.T) {
	engine := newTestEngine(t)

	if err := engine.SubmitRemoval(Position{3, 3}); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase for removal while awaiting move, got %v", err)
	}

	if err := engine.SubmitMove(Position{1, 3}); err != nil {
		t.Fatal(err)
	}
	if err := engine.SubmitMove(Position{2, 3}); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase for second move, got %v", err)
	}
	if err := engine.Undo(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase for undo mid-turn, got %v", err)
	}
}

func TestSelectOwnSquareIsNoop(t *testing.T) {
	engine := newTestEngine(t)

	action, err := engine.SelectCell(0, 3)
	if err != nil {
		t.Errorf("Expected no error selecting own square, got %v", err)
	}
	if action != ActionNone {
		t.Errorf("Expected action none, got %s", action)
	}
	if engine.Phase() != AwaitingMove {
		t.Errorf("Expected phase unchanged, got %s", engine.Phase())
	}
}

// trapPlayerTwo removes the squares around (6,3) except (5,4) and leaves the
// final removal to player 1
func trapPlayerTwo(t *testing.T, e *GameEngine) {
	t.Helper()
	for _, p := range []Position{{5, 2}, {5, 3}, {6, 2}, {6, 4}} {
		if err := e.board.Remove(p); err != nil {
			t.Fatal(err)
		}
	}
	playTurn(t, e, Position{1, 3}, Position{5, 4})
}

func TestScenarioTrappedPlayerLoses(t *testing.T) {
	engine := newTestEngine(t)
	trapPlayerTwo(t, engine)

	if !engine.IsGameOver() {
		t.Fatal("Expected game over once player 2 has no legal move")
	}
	winner, ok := engine.Winner()
	if !ok || winner != PlayerOne {
		t.Errorf("Expected player 1 to win, got %d (%v)", winner, ok)
	}

	state := engine.GetState()
	if state.Player(PlayerOne).Score != 1 {
		t.Errorf("Expected player 1 score 1, got %d", state.Player(PlayerOne).Score)
	}
	if state.Player(PlayerTwo).Score != 0 {
		t.Errorf("Expected player 2 score 0, got %d", state.Player(PlayerTwo).Score)
	}
	if state.Message != "Game Over! Player 1 Wins!" {
		t.Errorf("Expected game over message, got %q", state.Message)
	}
	if len(state.LegalMoves) != 0 {
		t.Errorf("Expected no legal moves after game over, got %v", state.LegalMoves)
	}

	if _, err := engine.SelectCell(3, 3); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase after game over, got %v", err)
	}
}

func TestWinDetectionCountsOpponentSquare(t *testing.T) {
	config := createTestConfig()
	config.BoardSize = 5
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatal(err)
	}

	engine.players[0].Position = Position{2, 1}
	engine.players[1].Position = Position{4, 0}
	for _, p := range []Position{{3, 0}, {4, 1}} {
		if err := engine.board.Remove(p); err != nil {
			t.Fatal(err)
		}
	}

	// (3,1) is still present but player 1 stands on it
	playTurn(t, engine, Position{3, 1}, Position{0, 0})

	if !engine.IsGameOver() {
		t.Error("Expected game over when the only present neighbor is occupied")
	}
}

func TestScenarioUndo(t *testing.T) {
	engine := newTestEngine(t)
	playTurn(t, engine, Position{1, 3}, Position{2, 3})

	if err := engine.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if !engine.Board().IsPresent(Position{2, 3}) {
		t.Error("Expected removed square to be restored")
	}
	if got := engine.PlayerState(PlayerOne).Position; got != (Position{0, 3}) {
		t.Errorf("Expected player 1 back at (0,3), got %s", got)
	}
	if engine.CurrentPlayer() != PlayerOne {
		t.Errorf("Expected player 1 to move again, got %d", engine.CurrentPlayer())
	}
	if engine.HistoryLen() != 0 {
		t.Errorf("Expected history length 0, got %d", engine.HistoryLen())
	}

	if err := engine.Undo(); !errors.Is(err, ErrHistoryEmpty) {
		t.Errorf("Expected ErrHistoryEmpty, got %v", err)
	}
}

func TestUndoAfterGameOver(t *testing.T) {
	engine := newTestEngine(t)
	trapPlayerTwo(t, engine)

	if err := engine.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if engine.IsGameOver() {
		t.Error("Expected undo to clear game over")
	}
	if _, ok := engine.Winner(); ok {
		t.Error("Expected no winner after undo")
	}
	if score := engine.PlayerState(PlayerOne).Score; score != 0 {
		t.Errorf("Expected winning point to be taken back, got score %d", score)
	}
	if !engine.Board().IsPresent(Position{5, 4}) {
		t.Error("Expected (5,4) to be restored")
	}
}

func TestMoveWithoutRemovableSquare(t *testing.T) {
	config := createTestConfig()
	config.BoardSize = 5
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatal(err)
	}
	// strip the board down to the starting squares and (1,2)
	for _, p := range LegalRemovals(engine.board) {
		if p == (Position{1, 2}) {
			continue
		}
		if err := engine.board.Remove(p); err != nil {
			t.Fatal(err)
		}
	}

	if err := engine.SubmitMove(Position{1, 2}); err != nil {
		t.Fatalf("SubmitMove failed: %v", err)
	}
	if engine.Phase() != GameOver {
		t.Fatalf("Expected the move to finalize and end the game, got %s", engine.Phase())
	}
	if winner, ok := engine.Winner(); !ok || winner != PlayerOne {
		t.Errorf("Expected player 1 to win, got %v (%v)", winner, ok)
	}
	last := engine.LastMove()
	if last == nil || last.To != (Position{1, 2}) || last.Removed != nil {
		t.Fatalf("Expected a finalized move with nothing removed, got %+v", last)
	}
	if engine.HistoryLen() != 1 {
		t.Errorf("Expected 1 history entry, got %d", engine.HistoryLen())
	}

	if err := engine.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if engine.Phase() != AwaitingMove || engine.CurrentPlayer() != PlayerOne {
		t.Errorf("Expected player 1 awaiting a move, got %s for %s", engine.Phase(), engine.CurrentPlayer())
	}
	if pos := engine.PlayerState(PlayerOne).Position; pos != (Position{0, 2}) {
		t.Errorf("Expected player 1 back on (0,2), got %s", pos)
	}
	if score := engine.PlayerState(PlayerOne).Score; score != 0 {
		t.Errorf("Expected the point taken back, got %d", score)
	}
	if engine.Board().PresentCount() != 3 {
		t.Errorf("Expected 3 present squares, got %d", engine.Board().PresentCount())
	}
}

func TestHistoryCapacity(t *testing.T) {
	config := createTestConfig()
	config.BoardSize = 11
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatal(err)
	}

	// players shuffle between their start and the square in front of it
	targets := map[PlayerID][2]Position{
		PlayerOne: {{1, 5}, {0, 5}},
		PlayerTwo: {{9, 5}, {10, 5}},
	}
	turns := HistoryCapacity + 5
	for i := 0; i < turns; i++ {
		current := engine.CurrentPlayer()
		to := targets[current][(i/2)%2]
		removed := Position{Row: 3 + i/11, Col: i % 11}
		playTurn(t, engine, to, removed)
	}

	if engine.HistoryLen() != HistoryCapacity {
		t.Errorf("Expected history capped at %d, got %d", HistoryCapacity, engine.HistoryLen())
	}

	for i := 0; i < HistoryCapacity; i++ {
		if err := engine.Undo(); err != nil {
			t.Fatalf("Undo %d failed: %v", i, err)
		}
	}
	if err := engine.Undo(); !errors.Is(err, ErrHistoryEmpty) {
		t.Errorf("Expected ErrHistoryEmpty after %d undos, got %v", HistoryCapacity, err)
	}

	// the first 5 removals were evicted and can no longer be undone
	if engine.Board().IsPresent(Position{3, 0}) {
		t.Error("Expected evicted removal to stay removed")
	}
	if !engine.Board().IsPresent(Position{3, 5}) {
		t.Error("Expected undone removal to be restored")
	}
}

func TestScenarioSetBoardSize(t *testing.T) {
	engine := newTestEngine(t)
	playTurn(t, engine, Position{1, 3}, Position{2, 3})

	if err := engine.SetBoardSize(11); err != nil {
		t.Fatalf("SetBoardSize failed: %v", err)
	}

	state := engine.GetState()
	if state.BoardSize != Size11 {
		t.Errorf("Expected board size 11, got %d", state.BoardSize)
	}
	if got := state.Player(PlayerOne).Position; got != (Position{0, 5}) {
		t.Errorf("Expected player 1 at (0,5), got %s", got)
	}
	if got := state.Player(PlayerTwo).Position; got != (Position{10, 5}) {
		t.Errorf("Expected player 2 at (10,5), got %s", got)
	}
	if state.HistoryLength != 0 {
		t.Errorf("Expected history cleared, got %d", state.HistoryLength)
	}

	starts := 0
	for row := range state.Board {
		for col, cell := range state.Board[row] {
			if cell.State != Present {
				t.Errorf("Expected (%d,%d) present, got %s", row, col, cell.State)
			}
			if cell.Start {
				starts++
			}
		}
	}
	if starts != 2 {
		t.Errorf("Expected 2 starting squares, got %d", starts)
	}
	if !state.Board[0][5].Start || !state.Board[10][5].Start {
		t.Error("Expected (0,5) and (10,5) flagged as starting squares")
	}
}

func TestSetBoardSizeInvalid(t *testing.T) {
	engine := newTestEngine(t)
	playTurn(t, engine, Position{1, 3}, Position{2, 3})

	if err := engine.SetBoardSize(8); !errors.Is(err, ErrInvalidBoardSize) {
		t.Errorf("Expected ErrInvalidBoardSize, got %v", err)
	}
	if engine.HistoryLen() != 1 {
		t.Error("Expected rejected resize to keep the game")
	}
}

func TestResetKeepsSessionSettings(t *testing.T) {
	engine := newTestEngine(t)
	if err := engine.SetPlayerColor(PlayerOne, Red); err != nil {
		t.Fatal(err)
	}
	if err := engine.SetAIDifficulty(Hard); err != nil {
		t.Fatal(err)
	}
	trapPlayerTwo(t, engine)

	state := engine.Reset()

	if state.IsGameOver {
		t.Error("Expected reset to clear game over")
	}
	if state.Player(PlayerOne).Score != 1 {
		t.Errorf("Expected score to survive reset, got %d", state.Player(PlayerOne).Score)
	}
	if state.Player(PlayerOne).Color != Red {
		t.Errorf("Expected color to survive reset, got %s", state.Player(PlayerOne).Color)
	}
	if state.AIDifficulty != Hard {
		t.Errorf("Expected difficulty to survive reset, got %s", state.AIDifficulty)
	}
	if state.BoardSize != Size7 {
		t.Errorf("Expected board size to survive reset, got %d", state.BoardSize)
	}
	if engine.Board().PresentCount() != 49 {
		t.Errorf("Expected a full board, got %d present", engine.Board().PresentCount())
	}
}

func TestSetPlayerColor(t *testing.T) {
	engine := newTestEngine(t)

	if err := engine.SetPlayerColor(PlayerTwo, Blue); !errors.Is(err, ErrColorTaken) {
		t.Errorf("Expected ErrColorTaken, got %v", err)
	}
	if err := engine.SetPlayerColor(PlayerTwo, Color("pink")); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("Expected ErrInvalidColor, got %v", err)
	}
	if err := engine.SetPlayerColor(PlayerID(3), Red); !errors.Is(err, ErrInvalidPlayer) {
		t.Errorf("Expected ErrInvalidPlayer, got %v", err)
	}
	if err := engine.SetPlayerColor(PlayerTwo, Orange); err != nil {
		t.Errorf("Expected color change to succeed, got %v", err)
	}
	if engine.PlayerState(PlayerTwo).Color != Orange {
		t.Errorf("Expected orange, got %s", engine.PlayerState(PlayerTwo).Color)
	}
}

func TestSetGameModeAndDifficulty(t *testing.T) {
	engine := newTestEngine(t)

	if err := engine.SetGameMode(GameMode("online")); !errors.Is(err, ErrInvalidGameMode) {
		t.Errorf("Expected ErrInvalidGameMode, got %v", err)
	}
	if err := engine.SetAIDifficulty(Difficulty("insane")); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("Expected ErrInvalidDifficulty, got %v", err)
	}

	if engine.IsAITurn() {
		t.Error("Expected no AI turn in pvp mode")
	}
	if err := engine.SetGameMode(PlayerVsAI); err != nil {
		t.Fatal(err)
	}
	playTurn(t, engine, Position{1, 3}, Position{2, 3})
	if !engine.IsAITurn() {
		t.Error("Expected AI turn for player 2 in ai mode")
	}
}

func TestLegalQueriesFollowPhase(t *testing.T) {
	engine := newTestEngine(t)

	moves := engine.LegalMoves()
	want := []Position{{0, 2}, {0, 4}, {1, 2}, {1, 3}, {1, 4}}
	if len(moves) != len(want) {
		t.Fatalf("Expected %d legal moves, got %v", len(want), moves)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("Expected move %d to be %s, got %s", i, want[i], moves[i])
		}
	}

	if err := engine.SubmitMove(Position{1, 3}); err != nil {
		t.Fatal(err)
	}
	if len(engine.LegalMoves()) != 0 {
		t.Error("Expected no legal moves while awaiting removal")
	}
	// 49 squares minus 2 starting squares minus the mover's square
	if got := len(engine.LegalRemovals()); got != 46 {
		t.Errorf("Expected 46 legal removals, got %d", got)
	}
}
