package engine

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// ChebyshevDistance calculates max(|Δrow|, |Δcol|); 1 for every king step
func ChebyshevDistance(from, to Position) int {
	dr := abs(from.Row - to.Row)
	dc := abs(from.Col - to.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// Mobility counts the present squares around p (8-neighborhood, occupancy ignored)
func Mobility(b *Board, p Position) int {
	count := 0
	for _, dir := range Directions {
		if b.IsPresent(p.Add(dir)) {
			count++
		}
	}
	return count
}

// DistanceToCenter is the Manhattan distance from p to the board's center cell
func DistanceToCenter(b *Board, p Position) int {
	return ManhattanDistance(p, b.Size().Center())
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
