package nav

// History is the navigation stack: the entries visited plus a cursor into
// them. It always holds at least one entry and the cursor always points at
// a valid one. Pushing after going back discards the forward tail, the way
// a browser history does.
type History struct {
	entries []Entry
	current int
}

// NewHistory returns a stack containing only root.
func NewHistory(root Entry) *History {
	return &History{entries: []Entry{root}}
}

// Push drops everything after the cursor, appends e, and moves the cursor
// onto it.
func (h *History) Push(e Entry) {
	h.entries = append(h.entries[:h.current+1], e)
	h.current = len(h.entries) - 1
}

// ReplaceTop overwrites the current entry without growing the stack.
func (h *History) ReplaceTop(e Entry) {
	h.entries[h.current] = e
}

// Back moves the cursor one entry toward the root and returns the entry it
// lands on. At the root it returns ErrAtRoot and changes nothing.
func (h *History) Back() (Entry, error) {
	if h.current == 0 {
		return Entry{}, ErrAtRoot
	}
	h.current--
	return h.entries[h.current], nil
}

// PeekBack returns the entry Back would land on, without moving.
func (h *History) PeekBack() (Entry, bool) {
	if h.current == 0 {
		return Entry{}, false
	}
	return h.entries[h.current-1], true
}

// Reset collapses the stack to a single entry.
func (h *History) Reset(e Entry) {
	h.entries = []Entry{e}
	h.current = 0
}

// Current returns the entry under the cursor.
func (h *History) Current() Entry {
	return h.entries[h.current]
}

// CanGoBack reports whether Back would succeed.
func (h *History) CanGoBack() bool {
	return h.current > 0
}

// Len returns the number of stacked entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the cursor position.
func (h *History) Index() int {
	return h.current
}

// Entries returns a copy of the stack for inspection.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}
