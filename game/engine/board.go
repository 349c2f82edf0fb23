package engine

import "fmt"

// Board owns the cell states of an N×N grid
type Board struct {
	size  BoardSize
	cells [][]CellState
}

// NewBoard creates a board of the given size with every square present
func NewBoard(size BoardSize) (*Board, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, int(size))
	}

	n := int(size)
	cells := make([][]CellState, n)
	for row := range cells {
		cells[row] = make([]CellState, n)
		for col := range cells[row] {
			cells[row][col] = Present
		}
	}

	return &Board{size: size, cells: cells}, nil
}

// Size returns the board size
func (b *Board) Size() BoardSize {
	return b.size
}

// InBounds reports whether 0 <= row,col < N
func (b *Board) InBounds(p Position) bool {
	n := int(b.size)
	return p.Row >= 0 && p.Row < n && p.Col >= 0 && p.Col < n
}

// IsPresent reports whether the square is in bounds and not removed
func (b *Board) IsPresent(p Position) bool {
	if !b.InBounds(p) {
		return false
	}
	return b.cells[p.Row][p.Col] == Present
}

// IsStartingSquare reports whether p is one of the two protected starting squares
func (b *Board) IsStartingSquare(p Position) bool {
	return p == b.size.StartingSquare(PlayerOne) || p == b.size.StartingSquare(PlayerTwo)
}

// Remove transitions a present, non-starting square to removed
func (b *Board) Remove(p Position) error {
	if !b.InBounds(p) {
		return fmt.Errorf("remove %s: %w", p, ErrOutOfBounds)
	}
	if b.IsStartingSquare(p) {
		return fmt.Errorf("remove %s: %w", p, ErrProtectedStartingSquare)
	}
	if b.cells[p.Row][p.Col] == Removed {
		return fmt.Errorf("remove %s: %w", p, ErrAlreadyRemoved)
	}
	b.cells[p.Row][p.Col] = Removed
	return nil
}

// restore puts a removed square back. Only Undo calls it.
func (b *Board) restore(p Position) {
	if b.InBounds(p) {
		b.cells[p.Row][p.Col] = Present
	}
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]CellState, len(b.cells))
	for row := range b.cells {
		cells[row] = append([]CellState(nil), b.cells[row]...)
	}
	return &Board{size: b.size, cells: cells}
}

// Cells returns a snapshot of every square including its starting-square flag
func (b *Board) Cells() [][]Cell {
	grid := make([][]Cell, len(b.cells))
	for row := range b.cells {
		grid[row] = make([]Cell, len(b.cells[row]))
		for col, state := range b.cells[row] {
			grid[row][col] = Cell{
				State: state,
				Start: b.IsStartingSquare(Position{Row: row, Col: col}),
			}
		}
	}
	return grid
}

// PresentCount counts the squares still on the board
func (b *Board) PresentCount() int {
	count := 0
	for _, row := range b.cells {
		for _, state := range row {
			if state == Present {
				count++
			}
		}
	}
	return count
}
