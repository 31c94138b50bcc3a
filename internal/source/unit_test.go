package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitPositions(t *testing.T) {
	u := NewUnit("u1", "int main() {\n  return 0;\n}\n", DialectC)

	assert.Equal(t, "u1", u.ID())
	assert.Equal(t, DialectC, u.Dialect())
	assert.Equal(t, 27, u.Len())

	assert.Equal(t, Pos{Line: 1, Col: 1}, u.PosAt(0))
	assert.Equal(t, Pos{Line: 1, Col: 5}, u.PosAt(4))

	// First character after the first newline.
	assert.Equal(t, Pos{Line: 2, Col: 1}, u.PosAt(13))

	// Out-of-range offsets clamp to the text bounds.
	assert.Equal(t, Pos{Line: 1, Col: 1}, u.PosAt(-3))
	assert.Equal(t, Pos{Line: 4, Col: 1}, u.PosAt(999))
}

func TestUnitLineAt(t *testing.T) {
	u := NewUnit("u2", "alpha\nbravo\ncharlie", DialectUnknown)

	assert.Equal(t, "alpha", u.LineAt(0))
	assert.Equal(t, "bravo", u.LineAt(7))

	// Last line has no trailing newline.
	assert.Equal(t, "charlie", u.LineAt(14))
}
