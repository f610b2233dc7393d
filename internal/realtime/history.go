package realtime

import "sync"

// DefaultHistorySize matches the 100-message window kept for late joiners.
const DefaultHistorySize = 100

// History is a bounded log of the most recent serialized broadcast frames.
// Append-and-trim only; populated by the hub's publish path, replayed to
// connections that join after the fact.
type History struct {
	mu     sync.Mutex
	limit  int
	frames [][]byte // oldest first
}

// NewHistory creates a buffer capped at limit frames. A non-positive limit
// falls back to DefaultHistorySize.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &History{limit: limit}
}

// Append records a frame, dropping the oldest entries beyond the cap.
func (h *History) Append(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = append(h.frames, frame)
	if excess := len(h.frames) - h.limit; excess > 0 {
		h.frames = append([][]byte(nil), h.frames[excess:]...)
	}
}

// Snapshot returns a copy of the buffered frames in chronological order.
func (h *History) Snapshot() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([][]byte, len(h.frames))
	copy(out, h.frames)
	return out
}

// Len returns the number of buffered frames.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.frames)
}
