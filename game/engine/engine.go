package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Commands
	SelectCell(row, col int) (Action, error)
	SubmitMove(to Position) error
	SubmitRemoval(p Position) error
	Undo() error
	Reset() *GameState
	SetBoardSize(size int) error
	SetGameMode(mode GameMode) error
	SetAIDifficulty(level Difficulty) error
	SetPlayerColor(id PlayerID, color Color) error

	// Game state
	GetState() *GameState
	CurrentPlayer() PlayerID
	Phase() TurnPhase
	IsGameOver() bool
	Winner() (PlayerID, bool)
	IsAITurn() bool

	// Queries for highlighting
	LegalMoves() []Position
	LegalRemovals() []Position

	// History
	History() []Move
	HistoryLen() int
	LastMove() *Move
}

// GameEngine is the authoritative turn state machine for one playthrough.
// It is not safe for concurrent use; callers serialize commands.
type GameEngine struct {
	size       BoardSize
	board      *Board
	players    [2]Player
	current    PlayerID
	phase      TurnPhase
	history    *HistoryLog
	pending    *Move
	winner     PlayerID
	mode       GameMode
	difficulty Difficulty
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	p1, p2 := config.Player1Color, config.Player2Color
	if p1 == "" {
		p1 = Blue
	}
	if p2 == "" {
		p2 = Green
	}

	engine := &GameEngine{
		size:       BoardSize(config.BoardSize),
		mode:       config.GameMode,
		difficulty: config.AIDifficulty,
		players: [2]Player{
			{ID: PlayerOne, Color: p1},
			{ID: PlayerTwo, Color: p2},
		},
	}
	engine.initRound()

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the default configuration
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultGameConfig())
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return engine
}

// initRound rebuilds board, positions, history and phase at the current size.
// Colors, scores, mode and difficulty belong to the session and are kept.
func (e *GameEngine) initRound() {
	board, err := NewBoard(e.size)
	if err != nil {
		// size is validated before it is ever stored
		panic(err)
	}
	e.board = board
	e.players[0].Position = e.size.StartingSquare(PlayerOne)
	e.players[1].Position = e.size.StartingSquare(PlayerTwo)
	e.current = PlayerOne
	e.phase = AwaitingMove
	e.history = NewHistoryLog(HistoryCapacity)
	e.pending = nil
	e.winner = 0
}

func (e *GameEngine) player(id PlayerID) *Player {
	return &e.players[id-1]
}

// SelectCell interprets a click contextually: a move destination while awaiting a
// move, a removal target while awaiting a removal. Selecting the current player's
// own square is a no-op.
func (e *GameEngine) SelectCell(row, col int) (Action, error) {
	p := Position{Row: row, Col: col}

	switch e.phase {
	case AwaitingMove:
		if p == e.player(e.current).Position {
			return ActionNone, nil
		}
		if err := e.SubmitMove(p); err != nil {
			return ActionNone, err
		}
		return ActionMove, nil
	case AwaitingRemoval:
		if err := e.SubmitRemoval(p); err != nil {
			return ActionNone, err
		}
		return ActionRemove, nil
	default:
		return ActionNone, fmt.Errorf("select %s: %w", p, ErrWrongPhase)
	}
}

// SubmitMove moves the current player to `to` and waits for a removal
func (e *GameEngine) SubmitMove(to Position) error {
	if e.phase != AwaitingMove {
		return fmt.Errorf("move to %s during %s: %w", to, e.phase, ErrWrongPhase)
	}

	mover := e.player(e.current)
	opponent := e.player(e.current.Other())
	if err := CheckMove(e.board, mover.Position, to, opponent.Position); err != nil {
		return fmt.Errorf("move %s -> %s: %w", mover.Position, to, err)
	}

	e.pending = &Move{
		Player: e.current,
		From:   mover.Position,
		To:     to,
	}
	mover.Position = to
	e.phase = AwaitingRemoval

	// Only possible when the mover left a starting square on an otherwise bare board
	if len(LegalRemovals(e.board, mover.Position, opponent.Position)) == 0 {
		e.finalize(nil)
	}
	return nil
}

// SubmitRemoval removes p, finalizes the pending move, hands the turn over and
// checks whether the next player is isolated
func (e *GameEngine) SubmitRemoval(p Position) error {
	if e.phase != AwaitingRemoval || e.pending == nil {
		return fmt.Errorf("remove %s during %s: %w", p, e.phase, ErrWrongPhase)
	}

	mover := e.player(e.current)
	opponent := e.player(e.current.Other())
	if err := CheckRemoval(e.board, p, mover.Position, opponent.Position); err != nil {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	if err := e.board.Remove(p); err != nil {
		return err
	}

	removed := p
	e.finalize(&removed)
	return nil
}

// finalize records the pending move, passes the turn and runs win detection
// for the player about to move
func (e *GameEngine) finalize(removed *Position) {
	move := *e.pending
	move.Removed = removed
	e.history.Push(move)
	e.pending = nil

	mover := e.player(e.current)
	e.current = e.current.Other()
	e.phase = AwaitingMove

	next := e.player(e.current)
	if !HasLegalMove(e.board, next.Position, mover.Position) {
		e.phase = GameOver
		e.winner = mover.ID
		mover.Score++
	}
}

// Undo reverts the most recent finalized move
func (e *GameEngine) Undo() error {
	if e.phase == AwaitingRemoval {
		return fmt.Errorf("undo: %w", ErrWrongPhase)
	}

	move, ok := e.history.Pop()
	if !ok {
		return ErrHistoryEmpty
	}

	if e.phase == GameOver && e.winner.Valid() {
		winner := e.player(e.winner)
		if winner.Score > 0 {
			winner.Score--
		}
	}

	if move.Removed != nil {
		e.board.restore(*move.Removed)
	}
	e.player(move.Player).Position = move.From
	e.current = move.Player
	e.phase = AwaitingMove
	e.winner = 0

	return nil
}

// Reset starts a new round at the current board size
func (e *GameEngine) Reset() *GameState {
	e.initRound()
	return e.GetState()
}

// SetBoardSize discards the round and starts over at the given size
func (e *GameEngine) SetBoardSize(size int) error {
	parsed, err := ParseBoardSize(size)
	if err != nil {
		return err
	}
	e.size = parsed
	e.initRound()
	return nil
}

// SetGameMode switches between hot-seat and AI play
func (e *GameEngine) SetGameMode(mode GameMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidGameMode, mode)
	}
	e.mode = mode
	return nil
}

// SetAIDifficulty changes the AI tier for subsequent AI turns
func (e *GameEngine) SetAIDifficulty(level Difficulty) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, level)
	}
	e.difficulty = level
	return nil
}

// SetPlayerColor changes a player's color; both players can never share one
func (e *GameEngine) SetPlayerColor(id PlayerID, color Color) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, int(id))
	}
	if !color.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	if e.player(id.Other()).Color == color {
		return fmt.Errorf("%s: %w", color, ErrColorTaken)
	}
	e.player(id).Color = color
	return nil
}

// GetState returns a snapshot of the game for rendering
func (e *GameEngine) GetState() *GameState {
	state := &GameState{
		BoardSize:     e.size,
		Board:         e.board.Cells(),
		Players:       []Player{e.players[0], e.players[1]},
		CurrentPlayer: e.current,
		TurnPhase:     e.phase,
		IsGameOver:    e.phase == GameOver,
		GameMode:      e.mode,
		AIDifficulty:  e.difficulty,
		LegalMoves:    e.LegalMoves(),
		LegalRemovals: e.LegalRemovals(),
		HistoryLength: e.history.Len(),
		PendingMove:   e.pendingCopy(),
		LastMove:      e.LastMove(),
		Message:       e.statusMessage(),
	}
	if winner, ok := e.Winner(); ok {
		state.Winner = &winner
	}
	return state
}

func (e *GameEngine) pendingCopy() *Move {
	if e.pending == nil {
		return nil
	}
	m := *e.pending
	return &m
}

func (e *GameEngine) statusMessage() string {
	switch e.phase {
	case GameOver:
		return fmt.Sprintf("Game Over! %s Wins!", e.winner)
	case AwaitingRemoval:
		return fmt.Sprintf("%s: choose a square to remove", e.current)
	default:
		return fmt.Sprintf("%s's Turn", e.current)
	}
}

// Board exposes the board for read-only use by the AI and tools
func (e *GameEngine) Board() *Board {
	return e.board
}

// BoardSize returns the current board size
func (e *GameEngine) BoardSize() BoardSize {
	return e.size
}

// PlayerState returns a copy of the given player
func (e *GameEngine) PlayerState(id PlayerID) Player {
	return *e.player(id)
}

// CurrentPlayer returns whose turn it is
func (e *GameEngine) CurrentPlayer() PlayerID {
	return e.current
}

// Phase returns the turn phase
func (e *GameEngine) Phase() TurnPhase {
	return e.phase
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.phase == GameOver
}

// Winner returns the winning player once the game is over
func (e *GameEngine) Winner() (PlayerID, bool) {
	if e.phase != GameOver {
		return 0, false
	}
	return e.winner, true
}

// GameMode returns the current game mode
func (e *GameEngine) GameMode() GameMode {
	return e.mode
}

// Difficulty returns the AI difficulty
func (e *GameEngine) Difficulty() Difficulty {
	return e.difficulty
}

// IsAITurn reports whether the AI should act next
func (e *GameEngine) IsAITurn() bool {
	return e.mode == PlayerVsAI && e.current == AIPlayerID && e.phase != GameOver
}

// LegalMoves returns the current player's legal destinations. Empty unless a move is expected.
func (e *GameEngine) LegalMoves() []Position {
	if e.phase != AwaitingMove {
		return []Position{}
	}
	return LegalMoves(e.board, e.player(e.current).Position, e.player(e.current.Other()).Position)
}

// LegalRemovals returns the removable squares. Empty unless a removal is expected.
func (e *GameEngine) LegalRemovals() []Position {
	if e.phase != AwaitingRemoval {
		return []Position{}
	}
	return LegalRemovals(e.board, e.players[0].Position, e.players[1].Position)
}

// History returns the finalized moves, oldest first
func (e *GameEngine) History() []Move {
	return e.history.Entries()
}

// HistoryLen returns the number of undoable moves
func (e *GameEngine) HistoryLen() int {
	return e.history.Len()
}

// LastMove returns the most recent finalized move, or nil if no moves
func (e *GameEngine) LastMove() *Move {
	last, ok := e.history.Last()
	if !ok {
		return nil
	}
	return &last
}
