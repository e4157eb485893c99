package model

// Ring is a fixed-capacity buffer of lines that overwrites the oldest line
// when full. It is owned by a single goroutine and does no locking.
type Ring struct {
	buf     []string
	cap     int
	start   int
	size    int
	total   uint64 // total ingested
	dropped uint64
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{cap: capacity, buf: make([]string, capacity)}
}

// Push appends s and reports whether the oldest line was evicted to make room.
func (r *Ring) Push(s string) bool {
	r.total++
	if r.size < r.cap {
		r.buf[(r.start+r.size)%r.cap] = s
		r.size++
		return false
	}
	// overwrite oldest
	r.buf[r.start] = s
	r.start = (r.start + 1) % r.cap
	r.dropped++
	return true
}

// At returns the line at logical index i, where 0 is the oldest line held.
func (r *Ring) At(i int) string {
	if i < 0 || i >= r.size {
		return ""
	}
	return r.buf[(r.start+i)%r.cap]
}

func (r *Ring) Len() int { return r.size }
func (r *Ring) Cap() int { return r.cap }

func (r *Ring) Full() bool { return r.size == r.cap }

// Counters returns how many lines were ever pushed and how many were evicted.
func (r *Ring) Counters() (total, dropped uint64) { return r.total, r.dropped }

func (r *Ring) Snapshot() []string {
	out := make([]string, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%r.cap]
	}
	return out
}
