package engine

import "errors"

// Move rejections
var (
	ErrOutOfBounds        = errors.New("square is out of bounds")
	ErrSquareRemoved      = errors.New("square has been removed")
	ErrOccupiedByOpponent = errors.New("square is occupied by the opponent")
	ErrNotAdjacent        = errors.New("destination is not adjacent")
)

// Removal rejections
var (
	ErrAlreadyRemoved          = errors.New("square is already removed")
	ErrProtectedStartingSquare = errors.New("starting squares cannot be removed")
	ErrOccupiedPosition        = errors.New("square is occupied by a player")
)

// Command and configuration rejections
var (
	ErrWrongPhase        = errors.New("command not accepted in the current phase")
	ErrHistoryEmpty      = errors.New("no moves to undo")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrInvalidGameMode   = errors.New("invalid game mode")
	ErrInvalidDifficulty = errors.New("invalid AI difficulty")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrInvalidColor      = errors.New("invalid color")
	ErrColorTaken        = errors.New("color is used by the other player")
)

var rejectionCodes = []struct {
	err  error
	code string
}{
	{ErrOutOfBounds, "out_of_bounds"},
	{ErrSquareRemoved, "square_removed"},
	{ErrOccupiedByOpponent, "occupied_by_opponent"},
	{ErrNotAdjacent, "not_adjacent"},
	{ErrAlreadyRemoved, "already_removed"},
	{ErrProtectedStartingSquare, "protected_starting_square"},
	{ErrOccupiedPosition, "occupied_position"},
	{ErrWrongPhase, "wrong_phase"},
	{ErrHistoryEmpty, "history_empty"},
	{ErrInvalidBoardSize, "invalid_board_size"},
	{ErrInvalidGameMode, "invalid_game_mode"},
	{ErrInvalidDifficulty, "invalid_difficulty"},
	{ErrInvalidPlayer, "invalid_player"},
	{ErrInvalidColor, "invalid_color"},
	{ErrColorTaken, "color_taken"},
}

// RejectionCode maps an engine error to a stable machine-friendly code.
// Errors that are not engine rejections map to "internal".
func RejectionCode(err error) string {
	for _, rc := range rejectionCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return "internal"
}

// IsRejection reports whether err is one of the engine's rule or command rejections
func IsRejection(err error) bool {
	return err != nil && RejectionCode(err) != "internal"
}
