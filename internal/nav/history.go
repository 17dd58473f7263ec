// Package nav tracks viewer navigation: which way the user moved, and the
// lifecycle of the views that move with them.
package nav

// Direction is the inferred navigation direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns the CSS modifier for the direction.
func (d Direction) String() string {
	if d == Backward {
		return "back"
	}
	return "fwd"
}

// History infers direction from successive location hashes. It only
// compares hashes; it never consults the browser's own history.
type History struct {
	stack []string
	dir   Direction
}

func NewHistory() *History {
	return &History{dir: Forward}
}

// Observe records a hash change and returns the resulting direction.
//
// The first hash is pushed as Forward. Afterwards, a hash equal to the
// entry below the top pops the stack (Backward); a hash different from the
// top is pushed (Forward); the same hash again changes nothing and keeps
// the previous direction.
func (h *History) Observe(hash string) Direction {
	n := len(h.stack)
	switch {
	case n == 0:
		h.stack = append(h.stack, hash)
		h.dir = Forward
	case n >= 2 && hash == h.stack[n-2]:
		h.stack = h.stack[:n-1]
		h.dir = Backward
	case hash != h.stack[n-1]:
		h.stack = append(h.stack, hash)
		h.dir = Forward
	}
	return h.dir
}

// Direction returns the last inferred direction.
func (h *History) Direction() Direction { return h.dir }

// Depth is the number of hashes on the stack.
func (h *History) Depth() int { return len(h.stack) }

// Top returns the current hash, or "" before the first Observe.
func (h *History) Top() string {
	if len(h.stack) == 0 {
		return ""
	}
	return h.stack[len(h.stack)-1]
}
