package engine

// HistoryLog is a bounded stack of finalized moves. Pushing past capacity evicts
// the oldest entry.
type HistoryLog struct {
	entries  []Move
	capacity int
}

// NewHistoryLog creates an empty log holding at most capacity moves
func NewHistoryLog(capacity int) *HistoryLog {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &HistoryLog{
		entries:  make([]Move, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a move at the tail
func (h *HistoryLog) Push(move Move) {
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, move)
}

// Pop removes and returns the most recent move
func (h *HistoryLog) Pop() (Move, bool) {
	if len(h.entries) == 0 {
		return Move{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Last returns the most recent move without removing it
func (h *HistoryLog) Last() (Move, bool) {
	if len(h.entries) == 0 {
		return Move{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *HistoryLog) Len() int {
	return len(h.entries)
}

func (h *HistoryLog) Capacity() int {
	return h.capacity
}

// Entries returns a copy of the log, oldest first
func (h *HistoryLog) Entries() []Move {
	return append([]Move(nil), h.entries...)
}

// Clear drops every entry
func (h *HistoryLog) Clear() {
	h.entries = h.entries[:0]
}
