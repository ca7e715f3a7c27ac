// Package solver implements the exact-cover backtracking search. A
// Solver owns one mutable board state and is not safe for concurrent
// use; each worker constructs its own.
package solver

import (
	"github.com/domino14/iqfit/board"
	"github.com/domino14/iqfit/catalog"
)

// FirstPiece is the piece whose placements partition the search space.
const FirstPiece = 0

type Solver struct {
	cat       *catalog.Catalog
	mask      board.Mask
	used      [catalog.NumPieces]bool
	grid      board.Grid
	solutions []string
}

func New(cat *catalog.Catalog) *Solver {
	return &Solver{cat: cat, grid: board.NewGrid()}
}

// Solve runs the full search once per assigned placement id of the
// first piece and returns every solution found, in discovery order.
// The board state is reinitialized per assignment, so assignments are
// independent of each other and of their order of arrival.
func (s *Solver) Solve(assigned []int) []string {
	s.solutions = s.solutions[:0]
	for _, id := range assigned {
		s.reset()
		s.commit(FirstPiece, &s.cat.Placements(FirstPiece)[id])
		s.search()
	}
	out := make([]string, len(s.solutions))
	copy(out, s.solutions)
	return out
}

func (s *Solver) reset() {
	s.mask = 0
	s.grid = board.NewGrid()
	for i := range s.used {
		s.used[i] = false
	}
}

func (s *Solver) commit(p int, pl *catalog.Placement) {
	s.used[p] = true
	s.mask |= pl.Mask
	for _, cell := range pl.Cells {
		s.grid[cell] = catalog.Letter(p)
	}
}

func (s *Solver) uncommit(p int, pl *catalog.Placement) {
	s.used[p] = false
	s.mask &^= pl.Mask
	for _, cell := range pl.Cells {
		s.grid[cell] = board.EmptySquare
	}
}

// search tries every unused piece against the lowest empty cell; every
// mutation it makes is undone before it returns, whatever the recursion
// below it did.
func (s *Solver) search() {
	done := true
	for i := range s.used {
		if !s.used[i] {
			done = false
			break
		}
	}
	if done {
		s.solutions = append(s.solutions, s.grid.Snapshot())
		return
	}

	c := s.mask.FirstEmpty()
	if c >= board.NumCells {
		// Full board with pieces left over. Cannot happen with a
		// correctly compiled catalog; treated as a dead branch.
		return
	}

	for p := 0; p < catalog.NumPieces; p++ {
		if s.used[p] {
			continue
		}
		placements := s.cat.Placements(p)
		for _, id := range s.cat.PlacementsAt(p, c) {
			pl := &placements[id]
			if s.mask.Intersects(pl.Mask) {
				continue
			}
			s.commit(p, pl)
			s.search()
			s.uncommit(p, pl)
		}
	}
}
