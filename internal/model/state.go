package model

import (
	"slices"
	"sort"
	"strings"

	"scry/internal/filter"
)

// DefaultCapacity is the number of lines kept when no capacity is configured.
const DefaultCapacity = 2000

// Entry is one row of the display sequence: a buffer index and its line.
type Entry struct {
	Index int
	Line  string
}

// State holds the lines of a session together with the selection, the filter
// derived from the selection and the scroll offset into the display sequence.
//
// Indices are logical positions in the buffer; evicting the oldest line
// renumbers every stored index. State is not safe for concurrent use.
type State struct {
	ring     *Ring
	selected int // -1 when nothing is selected
	token    string
	matches  []int // strictly increasing
	offset   int
}

func NewState(capacity int) *State {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &State{ring: NewRing(capacity), selected: -1}
}

// Append adds a line, evicting the oldest one when the buffer is full.
func (s *State) Append(line string) {
	if s.ring.Push(line) {
		s.shiftDown()
	}
	if s.token != "" && strings.Contains(line, s.token) {
		s.matches = append(s.matches, s.ring.Len()-1)
	}
	s.clamp()
}

// shiftDown renumbers state after index 0 was evicted.
func (s *State) shiftDown() {
	kept := s.matches[:0]
	for _, i := range s.matches {
		if i > 0 {
			kept = append(kept, i-1)
		}
	}
	s.matches = kept
	switch {
	case s.selected == 0:
		s.selected = -1
	case s.selected > 0:
		s.selected--
	}
	if s.offset > 0 {
		s.offset--
	}
}

// Select marks the line at index, derives a filter token from it and
// recomputes the matching set. The scroll offset is reset. Out of range
// indices are ignored.
func (s *State) Select(index int) {
	if index < 0 || index >= s.ring.Len() {
		return
	}
	s.selected = index
	s.offset = 0
	tok, ok := filter.Token(s.ring.At(index))
	if !ok {
		s.token, s.matches = "", nil
		return
	}
	s.token = tok
	s.matches = s.matches[:0]
	for i := 0; i < s.ring.Len(); i++ {
		if strings.Contains(s.ring.At(i), tok) {
			s.matches = append(s.matches, i)
		}
	}
	// The selection is always part of its own display sequence.
	if pos := sort.SearchInts(s.matches, index); pos == len(s.matches) || s.matches[pos] != index {
		s.matches = slices.Insert(s.matches, pos, index)
	}
}

// ClearSelection drops the selection and the filter. The offset is kept
// unless it no longer fits.
func (s *State) ClearSelection() {
	s.selected = -1
	s.token = ""
	s.matches = nil
	s.clamp()
}

func (s *State) ScrollUp(n int) {
	if n < 0 {
		return
	}
	s.offset -= n
	s.clamp()
}

func (s *State) ScrollDown(n int) {
	if n < 0 {
		return
	}
	if s.offset > s.DisplayCount()-1-n {
		s.offset = s.DisplayCount() - 1
	} else {
		s.offset += n
	}
	s.clamp()
}

// ScrollTo moves the offset to pos, clamped to the display sequence.
func (s *State) ScrollTo(pos int) {
	s.offset = pos
	s.clamp()
}

func (s *State) clamp() {
	n := s.DisplayCount()
	if s.offset >= n {
		s.offset = n - 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// Filtering reports whether a filter token is active.
func (s *State) Filtering() bool { return s.token != "" }

// DisplayCount is the length of the display sequence: the matching lines
// while filtering, every line otherwise.
func (s *State) DisplayCount() int {
	if s.Filtering() {
		return len(s.matches)
	}
	return s.ring.Len()
}

// indexAt maps a display position to a buffer index.
func (s *State) indexAt(pos int) int {
	if s.Filtering() {
		return s.matches[pos]
	}
	return pos
}

// Display returns the whole display sequence in order.
func (s *State) Display() []Entry {
	n := s.DisplayCount()
	out := make([]Entry, n)
	for pos := 0; pos < n; pos++ {
		i := s.indexAt(pos)
		out[pos] = Entry{Index: i, Line: s.ring.At(i)}
	}
	return out
}

// Window returns at most height rows of the display sequence that include
// the row at the scroll offset, plus that row's position within the result.
func (s *State) Window(height int) ([]Entry, int) {
	n := s.DisplayCount()
	if height < 1 || n == 0 {
		return nil, 0
	}
	start := 0
	if s.offset >= height {
		start = s.offset - height + 1
	}
	end := start + height
	if end > n {
		end = n
	}
	out := make([]Entry, 0, end-start)
	for pos := start; pos < end; pos++ {
		i := s.indexAt(pos)
		out = append(out, Entry{Index: i, Line: s.ring.At(i)})
	}
	return out, s.offset - start
}

// PositionOf returns the display position of buffer index i.
func (s *State) PositionOf(i int) (int, bool) {
	if i < 0 || i >= s.ring.Len() {
		return 0, false
	}
	if !s.Filtering() {
		return i, true
	}
	for pos, m := range s.matches {
		if m == i {
			return pos, true
		}
		if m > i {
			break
		}
	}
	return 0, false
}

// IndexAtOffset returns the buffer index of the row under the scroll offset.
func (s *State) IndexAtOffset() (int, bool) {
	if s.DisplayCount() == 0 {
		return 0, false
	}
	return s.indexAt(s.offset), true
}

// Selected returns the selected buffer index.
func (s *State) Selected() (int, bool) { return s.selected, s.selected >= 0 }

func (s *State) Token() string { return s.token }

// Matches returns a copy of the matching buffer indices.
func (s *State) Matches() []int {
	out := make([]int, len(s.matches))
	copy(out, s.matches)
	return out
}

func (s *State) IsMatch(i int) bool {
	_, ok := s.PositionOf(i)
	return ok && s.Filtering()
}

func (s *State) Offset() int { return s.offset }
func (s *State) Len() int    { return s.ring.Len() }
func (s *State) Cap() int    { return s.ring.Cap() }
func (s *State) At(i int) string {
	return s.ring.At(i)
}

// Lines returns every buffered line, oldest first.
func (s *State) Lines() []string { return s.ring.Snapshot() }

// Counters returns how many lines were ingested and how many were evicted.
func (s *State) Counters() (total, dropped uint64) { return s.ring.Counters() }
