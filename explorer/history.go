package explorer

import "github.com/katalvlaran/radarmaze/occupancy"

// ring is a fixed-capacity FIFO of recent positions. Pushing onto a full
// ring overwrites the oldest entry.
type ring struct {
	buf  []occupancy.Position
	head int // index of the oldest entry
	size int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]occupancy.Position, capacity)}
}

func (r *ring) Len() int { return r.size }

func (r *ring) Cap() int { return len(r.buf) }

// Push appends p, evicting the oldest entry when full.
func (r *ring) Push(p occupancy.Position) {
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = p
		r.size++
		return
	}
	r.buf[r.head] = p
	r.head = (r.head + 1) % len(r.buf)
}

// at returns the i-th entry, 0 being the oldest.
func (r *ring) at(i int) occupancy.Position {
	return r.buf[(r.head+i)%len(r.buf)]
}

// RecentContains reports whether p is among the newest n entries.
func (r *ring) RecentContains(p occupancy.Position, n int) bool {
	for i := max(r.size-n, 0); i < r.size; i++ {
		if r.at(i) == p {
			return true
		}
	}
	return false
}

// Slice returns the entries oldest first.
func (r *ring) Slice() []occupancy.Position {
	out := make([]occupancy.Position, r.size)
	for i := range out {
		out[i] = r.at(i)
	}
	return out
}

func (r *ring) Reset() {
	r.head, r.size = 0, 0
}
