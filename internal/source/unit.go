package source

import "sort"

// Unit is one source unit under analysis: an identifier, the raw text,
// and the dialect the caller declared for it. Units are constructed once
// per analysis call and never mutated afterwards.
type Unit struct {
	id      string
	text    string
	dialect Dialect

	// lineStarts[i] is the byte offset of the first character of line i+1.
	lineStarts []int
}

// NewUnit constructs a read-only unit. The line table is computed eagerly
// so position lookups are cheap during extraction and reporting.
func NewUnit(id, text string, dialect Dialect) *Unit {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Unit{
		id:         id,
		text:       text,
		dialect:    dialect,
		lineStarts: starts,
	}
}

// ID returns the unit identifier.
func (u *Unit) ID() string { return u.id }

// Text returns the raw source text.
func (u *Unit) Text() string { return u.text }

// Dialect returns the declared dialect.
func (u *Unit) Dialect() Dialect { return u.dialect }

// Len returns the text length in bytes.
func (u *Unit) Len() int { return len(u.text) }

// PosAt converts a byte offset into a 1-based line/column position.
// Offsets out of range are clamped to the text bounds.
func (u *Unit) PosAt(offset int) Pos {
	if offset < 0 {
		offset = 0
	}

	if offset > len(u.text) {
		offset = len(u.text)
	}

	line := sort.Search(len(u.lineStarts), func(i int) bool {
		return u.lineStarts[i] > offset
	})

	start := u.lineStarts[line-1]

	return Pos{Line: line, Col: offset - start + 1}
}

// LineAt returns the full text of the line containing offset, without
// the trailing newline.
func (u *Unit) LineAt(offset int) string {
	pos := u.PosAt(offset)
	start := u.lineStarts[pos.Line-1]

	end := len(u.text)
	if pos.Line < len(u.lineStarts) {
		end = u.lineStarts[pos.Line] - 1
	}

	return u.text[start:end]
}
