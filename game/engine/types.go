package engine

import "fmt"

// BoardSize is the side length of the square board
type BoardSize int

const (
	Size5  BoardSize = 5
	Size7  BoardSize = 7
	Size9  BoardSize = 9
	Size11 BoardSize = 11

	DefaultBoardSize = Size7

	// Validation constants
	HistoryCapacity         = 20
	DefaultAIMoveDelayMs    = 800
	DefaultAIRemovalDelayMs = 400
	MaxAIDelayMs            = 10000
)

// SupportedBoardSizes lists every playable board size in ascending order
var SupportedBoardSizes = []BoardSize{Size5, Size7, Size9, Size11}

// Valid reports whether the size is one of the supported board sizes
func (s BoardSize) Valid() bool {
	for _, supported := range SupportedBoardSizes {
		if s == supported {
			return true
		}
	}
	return false
}

// ParseBoardSize converts a raw integer into a BoardSize
func ParseBoardSize(n int) (BoardSize, error) {
	size := BoardSize(n)
	if !size.Valid() {
		return 0, fmt.Errorf("%w: %d (supported: 5, 7, 9, 11)", ErrInvalidBoardSize, n)
	}
	return size, nil
}

// StartingSquare returns the protected starting square for the given player
func (s BoardSize) StartingSquare(id PlayerID) Position {
	if id == PlayerTwo {
		return Position{Row: int(s) - 1, Col: int(s) / 2}
	}
	return Position{Row: 0, Col: int(s) / 2}
}

// Center returns the center cell of the board
func (s BoardSize) Center() Position {
	return Position{Row: int(s) / 2, Col: int(s) / 2}
}

// Position represents row,col coordinates on the board
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the position offset by the given direction
func (p Position) Add(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is a single king-step offset
type Direction struct {
	Name string
	DRow int
	DCol int
}

// Directions holds the 8 king directions in canonical order: NW, N, NE, W, E, SW, S, SE.
// Both move enumeration and AI tie-breaking depend on this order.
var Directions = []Direction{
	{"NW", -1, -1},
	{"N", -1, 0},
	{"NE", -1, 1},
	{"W", 0, -1},
	{"E", 0, 1},
	{"SW", 1, -1},
	{"S", 1, 0},
	{"SE", 1, 1},
}

// CellState represents whether a square is still on the board
type CellState string

const (
	Present CellState = "present"
	Removed CellState = "removed"
)

// Cell is the read-only view of a single board square
type Cell struct {
	State CellState `json:"state"`
	Start bool      `json:"start,omitempty"` // starting squares are never removed
}

// PlayerID identifies one of the two players
type PlayerID int

const (
	PlayerOne PlayerID = 1
	PlayerTwo PlayerID = 2

	// AIPlayerID is the side controlled by the AI in PlayerVsAI mode
	AIPlayerID = PlayerTwo
)

// Other returns the opposing player
func (id PlayerID) Other() PlayerID {
	if id == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Valid reports whether id is PlayerOne or PlayerTwo
func (id PlayerID) Valid() bool {
	return id == PlayerOne || id == PlayerTwo
}

func (id PlayerID) String() string {
	return fmt.Sprintf("Player %d", int(id))
}

// Color is a cosmetic player color
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Purple Color = "purple"
	Orange Color = "orange"
)

// Colors lists the selectable player colors
var Colors = []Color{Red, Blue, Green, Yellow, Purple, Orange}

// Valid reports whether c is a selectable color
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// Player holds a player's identity, cosmetics, position and score
type Player struct {
	ID       PlayerID `json:"id"`
	Color    Color    `json:"color"`
	Position Position `json:"position"`
	Score    int      `json:"score"`
}

// GameMode selects between hot-seat play and playing against the AI
type GameMode string

const (
	PlayerVsPlayer GameMode = "pvp"
	PlayerVsAI     GameMode = "ai"
)

// Valid reports whether m is a known game mode
func (m GameMode) Valid() bool {
	return m == PlayerVsPlayer || m == PlayerVsAI
}

// Difficulty is the AI strength tier
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// TurnPhase is the state of the turn state machine
type TurnPhase string

const (
	AwaitingMove    TurnPhase = "awaiting_move"
	AwaitingRemoval TurnPhase = "awaiting_removal"
	GameOver        TurnPhase = "game_over"
)

// Move records one turn. Removed is nil while the move is pending, or when the
// board had no removable square left after the move.
type Move struct {
	Player  PlayerID  `json:"player"`
	From    Position  `json:"from"`
	To      Position  `json:"to"`
	Removed *Position `json:"removed,omitempty"`
}

// Action describes what a SelectCell command did
type Action string

const (
	ActionNone   Action = "none"
	ActionMove   Action = "move"
	ActionRemove Action = "remove"
)

// GameState is the read-only snapshot exposed to collaborators
type GameState struct {
	BoardSize     BoardSize  `json:"board_size"`
	Board         [][]Cell   `json:"board"`
	Players       []Player   `json:"players"`
	CurrentPlayer PlayerID   `json:"current_player"`
	TurnPhase     TurnPhase  `json:"turn_phase"`
	IsGameOver    bool       `json:"is_game_over"`
	Winner        *PlayerID  `json:"winner,omitempty"`
	GameMode      GameMode   `json:"game_mode"`
	AIDifficulty  Difficulty `json:"ai_difficulty"`
	LegalMoves    []Position `json:"legal_moves"`
	LegalRemovals []Position `json:"legal_removals"`
	HistoryLength int        `json:"history_length"`
	PendingMove   *Move      `json:"pending_move,omitempty"`
	LastMove      *Move      `json:"last_move,omitempty"`
	Message       string     `json:"message"`
}

// Player returns the snapshot entry for id, or nil if absent
func (gs *GameState) Player(id PlayerID) *Player {
	for i := range gs.Players {
		if gs.Players[i].ID == id {
			return &gs.Players[i]
		}
	}
	return nil
}
