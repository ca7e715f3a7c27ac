// Package catalog compiles the fixed piece set into every placement it
// can occupy on the board, indexed for the forced-cell search.
package catalog

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/iqfit/board"
	"github.com/domino14/iqfit/shape"
)

// A Placement is one orientation of one piece at one board offset.
type Placement struct {
	// Mask has a bit set for every covered cell.
	Mask board.Mask
	// Cells lists the covered cell indices in the orientation's
	// canonical coordinate order.
	Cells []int
}

// Catalog is the placement table for the fixed piece set. Build it once
// with New and share it freely: nothing mutates it after construction,
// so concurrent readers need no synchronization.
type Catalog struct {
	placements [NumPieces][]Placement
	byCell     [NumPieces][board.NumCells][]int
}

// New parses the piece table, expands every orientation, and sweeps
// each orientation across all in-bounds board offsets. Placement ids
// are per piece, assigned in generation order (orientations in their
// canonical order, offsets row-major), so they are stable across runs
// and across processes.
func New() (*Catalog, error) {
	c := &Catalog{}
	for p := 0; p < NumPieces; p++ {
		base, err := shape.Parse(pieceShapes[p])
		if err != nil {
			return nil, fmt.Errorf("catalog: piece %d: %w", p, err)
		}
		for _, orient := range shape.Orientations(base) {
			w, h := shape.Bounds(orient)
			for oy := 0; oy <= board.Height-h; oy++ {
				for ox := 0; ox <= board.Width-w; ox++ {
					var mask board.Mask
					cells := make([]int, 0, len(orient))
					for _, sc := range orient {
						idx := board.CellIndex(ox+sc.X, oy+sc.Y)
						if idx < 0 || idx >= board.NumCells {
							return nil, fmt.Errorf(
								"catalog: piece %d escapes the board at (%d,%d)",
								p, ox+sc.X, oy+sc.Y)
						}
						mask |= board.Bit(idx)
						cells = append(cells, idx)
					}
					if mask.Count() != len(orient) {
						return nil, fmt.Errorf("catalog: piece %d placement covers duplicate cells", p)
					}
					id := len(c.placements[p])
					c.placements[p] = append(c.placements[p], Placement{Mask: mask, Cells: cells})
					for _, idx := range cells {
						c.byCell[p][idx] = append(c.byCell[p][idx], id)
					}
				}
			}
		}
	}
	total := 0
	for p := range c.placements {
		total += len(c.placements[p])
	}
	log.Debug().Int("total-placements", total).
		Int("piece0-placements", len(c.placements[0])).
		Msg("compiled placement catalog")
	return c, nil
}

// Placements returns every placement of piece p, indexed by placement
// id.
func (c *Catalog) Placements(p int) []Placement {
	return c.placements[p]
}

// NumPlacements returns the number of placements of piece p.
func (c *Catalog) NumPlacements(p int) int {
	return len(c.placements[p])
}

// PlacementsAt returns the ids of piece p's placements that cover the
// given cell. The search branches only on these when the cell is the
// lowest empty one.
func (c *Catalog) PlacementsAt(p, cell int) []int {
	return c.byCell[p][cell]
}
