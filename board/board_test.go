package board

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestMaskBasics(t *testing.T) {
	is := is.New(t)
	var m Mask
	is.Equal(m.Count(), 0)
	is.Equal(m.FirstEmpty(), 0)

	m |= Bit(0) | Bit(3)
	is.True(m.Covers(0))
	is.True(!m.Covers(1))
	is.Equal(m.Count(), 2)
	is.Equal(m.FirstEmpty(), 1)

	is.True(m.Intersects(Bit(3)))
	is.True(!m.Intersects(Bit(4)))
}

func TestMaskFull(t *testing.T) {
	is := is.New(t)
	is.Equal(Full.Count(), NumCells)
	is.Equal(Full.FirstEmpty(), NumCells)

	// All cells but the last one.
	m := Full &^ Bit(NumCells - 1)
	is.Equal(m.FirstEmpty(), NumCells-1)
}

func TestCellIndex(t *testing.T) {
	is := is.New(t)
	is.Equal(CellIndex(0, 0), 0)
	is.Equal(CellIndex(10, 0), 10)
	is.Equal(CellIndex(0, 1), 11)
	is.Equal(CellIndex(10, 4), NumCells-1)
}

func TestGrid(t *testing.T) {
	is := is.New(t)
	g := NewGrid()
	for i := 0; i < NumCells; i++ {
		is.Equal(g[i], EmptySquare)
	}
	g[0] = 'A'
	snap := g.Snapshot()
	is.Equal(len(snap), NumCells)
	is.Equal(snap[0], byte('A'))

	// Snapshot is a copy, not an alias.
	g[0] = 'B'
	is.Equal(snap[0], byte('A'))
}

func TestRender(t *testing.T) {
	is := is.New(t)
	snapshot := strings.Repeat("ABCDEFGHIJK", Height)
	rendered := Render(snapshot)
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	is.Equal(len(lines), Height)
	for _, line := range lines {
		is.Equal(line, "ABCDEFGHIJK")
	}
}
