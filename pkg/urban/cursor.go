package urban

// Cursor points at one result for a term, for paging through definitions one at a time.
type Cursor struct {
	Term  string
	Index int
}

// NewCursor starts at the top definition for term.
func NewCursor(term string) Cursor { return Cursor{Term: term} }

// Next moves to the following result.
func (c Cursor) Next() Cursor {
	return Cursor{Term: c.Term, Index: c.Index + 1}
}

// Previous moves back one result. It returns false at the first result.
func (c Cursor) Previous() (Cursor, bool) {
	if c.Index <= 0 {
		return Cursor{Term: c.Term}, false
	}
	return Cursor{Term: c.Term, Index: c.Index - 1}, true
}

// HasPrevious reports whether Previous would move.
func (c Cursor) HasPrevious() bool { return c.Index > 0 }

// Position is the 1-based result number shown to users.
func (c Cursor) Position() int { return c.Index + 1 }
