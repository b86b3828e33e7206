package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := NewTable("MODULE", "ROLE", "FROM", "TO").
		Row("org.example:core", "own version", "1.0-SNAPSHOT", "1.0").
		Row("org.example:core", "parent", "1.0-SNAPSHOT", "1.0")

	assert.Equal(t, 2, tbl.Len())

	rendered := stripAnsi(tbl.String())
	for _, want := range []string{"MODULE", "ROLE", "org.example:core", "own version", "1.0-SNAPSHOT"} {
		assert.Contains(t, rendered, want)
	}
}

func TestTable_Empty(t *testing.T) {
	tbl := NewTable("A", "B")
	assert.Equal(t, 0, tbl.Len())
	assert.Contains(t, stripAnsi(tbl.String()), "A")
}
