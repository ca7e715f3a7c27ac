// Package board holds the fixed 11×5 playing field: a single-word
// occupancy mask, and the character grid a solution is materialized
// into.
package board

import (
	"math/bits"
	"strings"
)

const (
	Width    = 11
	Height   = 5
	NumCells = Width * Height
)

// EmptySquare marks an unassigned cell in a Grid.
const EmptySquare = byte('.')

// Mask is a bitset over the board cells; bit i set means cell i is
// covered. The top 9 bits of the word are never set.
type Mask uint64

// Full has every board cell covered.
const Full Mask = (1 << NumCells) - 1

// Bit returns the mask with only the given cell covered.
func Bit(cell int) Mask {
	return 1 << uint(cell)
}

func (m Mask) Covers(cell int) bool {
	return m&Bit(cell) != 0
}

func (m Mask) Intersects(o Mask) bool {
	return m&o != 0
}

func (m Mask) Count() int {
	return bits.OnesCount64(uint64(m))
}

// FirstEmpty returns the lowest-indexed uncovered cell, or NumCells if
// the board is full.
func (m Mask) FirstEmpty() int {
	free := ^uint64(m) & uint64(Full)
	if free == 0 {
		return NumCells
	}
	return bits.TrailingZeros64(free)
}

// CellIndex maps board coordinates to the flat cell index.
func CellIndex(x, y int) int {
	return y*Width + x
}

// Grid is the mutable cell-to-letter buffer for one board.
type Grid [NumCells]byte

// NewGrid returns a grid with every cell set to the empty sentinel.
func NewGrid() Grid {
	var g Grid
	for i := range g {
		g[i] = EmptySquare
	}
	return g
}

// Snapshot copies the grid into an immutable solution record.
func (g *Grid) Snapshot() string {
	return string(g[:])
}

// Render formats a 55-character board snapshot as five 11-character
// rows, top to bottom. This is the layout of one record in the output
// artifact.
func Render(snapshot string) string {
	var sb strings.Builder
	sb.Grow(NumCells + Height)
	for row := 0; row < Height; row++ {
		sb.WriteString(snapshot[row*Width : (row+1)*Width])
		sb.WriteByte('\n')
	}
	return sb.String()
}
