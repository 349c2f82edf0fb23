package engine

import (
	"errors"
	"testing"
)

func TestNewBoard(t *testing.T) {
	for _, size := range SupportedBoardSizes {
		board, err := NewBoard(size)
		if err != nil {
			t.Fatalf("NewBoard(%d) failed: %v", size, err)
		}
		n := int(size)
		if board.PresentCount() != n*n {
			t.Errorf("size %d: expected %d present squares, got %d", n, n*n, board.PresentCount())
		}
		if !board.IsStartingSquare(Position{0, n / 2}) || !board.IsStartingSquare(Position{n - 1, n / 2}) {
			t.Errorf("size %d: expected starting squares at top and bottom center", n)
		}
	}

	if _, err := NewBoard(BoardSize(4)); !errors.Is(err, ErrInvalidBoardSize) {
		t.Errorf("Expected ErrInvalidBoardSize, got %v", err)
	}
}

func TestParseBoardSize(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{5, false},
		{7, false},
		{9, false},
		{11, false},
		{0, true},
		{3, true},
		{6, true},
		{13, true},
	}

	for _, tt := range tests {
		_, err := ParseBoardSize(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBoardSize(%d): expected error %v, got %v", tt.n, tt.wantErr, err)
		}
	}
}

func TestBoardRemove(t *testing.T) {
	board, _ := NewBoard(Size5)

	if err := board.Remove(Position{2, 2}); err != nil {
		t.Fatalf("Expected removal to succeed, got %v", err)
	}
	if board.IsPresent(Position{2, 2}) {
		t.Error("Expected (2,2) to be removed")
	}
	if err := board.Remove(Position{2, 2}); !errors.Is(err, ErrAlreadyRemoved) {
		t.Errorf("Expected ErrAlreadyRemoved, got %v", err)
	}
	if err := board.Remove(Position{0, 2}); !errors.Is(err, ErrProtectedStartingSquare) {
		t.Errorf("Expected ErrProtectedStartingSquare, got %v", err)
	}
	if err := board.Remove(Position{5, 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}

	board.restore(Position{2, 2})
	if !board.IsPresent(Position{2, 2}) {
		t.Error("Expected restore to bring (2,2) back")
	}
}

func TestBoardIsPresentOutOfBounds(t *testing.T) {
	board, _ := NewBoard(Size5)
	for _, p := range []Position{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if board.IsPresent(p) {
			t.Errorf("Expected %s not to be present", p)
		}
	}
}

func TestBoardClone(t *testing.T) {
	board, _ := NewBoard(Size7)
	clone := board.Clone()

	if err := clone.Remove(Position{3, 3}); err != nil {
		t.Fatal(err)
	}
	if !board.IsPresent(Position{3, 3}) {
		t.Error("Expected clone removal not to affect the original")
	}
}

func TestBoardCells(t *testing.T) {
	board, _ := NewBoard(Size5)
	if err := board.Remove(Position{1, 1}); err != nil {
		t.Fatal(err)
	}

	cells := board.Cells()
	if len(cells) != 5 || len(cells[0]) != 5 {
		t.Fatalf("Expected 5x5 snapshot, got %dx%d", len(cells), len(cells[0]))
	}
	if cells[1][1].State != Removed {
		t.Errorf("Expected (1,1) removed, got %s", cells[1][1].State)
	}
	if !cells[4][2].Start || cells[2][2].Start {
		t.Error("Expected only starting squares to carry the start flag")
	}
}
