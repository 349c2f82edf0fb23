package engine

// The functions in this file are the single source of truth for move and removal
// legality. The turn engine and the AI both go through them.

// CheckMove returns nil if moving from -> to is legal, otherwise the first rule broken
func CheckMove(b *Board, from, to, other Position) error {
	if !b.InBounds(to) {
		return ErrOutOfBounds
	}
	if !b.IsPresent(to) {
		return ErrSquareRemoved
	}
	if to == other {
		return ErrOccupiedByOpponent
	}
	if ChebyshevDistance(from, to) != 1 {
		return ErrNotAdjacent
	}
	return nil
}

// IsLegalMove reports whether moving from -> to obeys every move rule
func IsLegalMove(b *Board, from, to, other Position) bool {
	return CheckMove(b, from, to, other) == nil
}

// CheckRemoval returns nil if p may be removed while the mover stands on current
// and the opponent on other, otherwise the first rule broken
func CheckRemoval(b *Board, p, current, other Position) error {
	if !b.InBounds(p) {
		return ErrOutOfBounds
	}
	if !b.IsPresent(p) {
		return ErrAlreadyRemoved
	}
	if b.IsStartingSquare(p) {
		return ErrProtectedStartingSquare
	}
	if p == current || p == other {
		return ErrOccupiedPosition
	}
	return nil
}

// IsLegalRemoval reports whether p may be removed
func IsLegalRemoval(b *Board, p, current, other Position) bool {
	return CheckRemoval(b, p, current, other) == nil
}

// LegalMoves returns the 0-8 legal destinations from `from`, in canonical direction order
func LegalMoves(b *Board, from, other Position) []Position {
	moves := make([]Position, 0, len(Directions))
	for _, dir := range Directions {
		to := from.Add(dir)
		if IsLegalMove(b, from, to, other) {
			moves = append(moves, to)
		}
	}
	return moves
}

// LegalRemovals returns every present, non-starting square not in exclude, in row-major order
func LegalRemovals(b *Board, exclude ...Position) []Position {
	n := int(b.Size())
	removals := make([]Position, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			p := Position{Row: row, Col: col}
			if !b.IsPresent(p) || b.IsStartingSquare(p) || contains(exclude, p) {
				continue
			}
			removals = append(removals, p)
		}
	}
	return removals
}

// HasLegalMove reports whether a player standing on pos can move at all
func HasLegalMove(b *Board, pos, other Position) bool {
	for _, dir := range Directions {
		if IsLegalMove(b, pos, pos.Add(dir), other) {
			return true
		}
	}
	return false
}

func contains(positions []Position, p Position) bool {
	for _, candidate := range positions {
		if candidate == p {
			return true
		}
	}
	return false
}
