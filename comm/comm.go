// Package comm provides the collective primitives a solver run needs:
// a fixed-size group of workers, an ordered gather of per-worker
// counts, and an ordered gather of variable-length payloads. This is
// an in-process rendezvous: every participant blocks until the whole
// group has contributed, and only rank 0 receives the merged data.
package comm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
)

// Group coordinates collective operations among a fixed number of
// workers.
type Group struct {
	size int

	mu      sync.Mutex
	cond    *sync.Cond
	round   int
	arrived int
	slots   [][]byte
	filled  []bool
	// collected holds the rank-ordered contributions of the round that
	// just completed, for rank 0 to pick up.
	collected [][]byte
	claimed   []bool
}

func NewGroup(size int) (*Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("comm: group size must be positive, got %d", size)
	}
	g := &Group{
		size:    size,
		slots:   make([][]byte, size),
		filled:  make([]bool, size),
		claimed: make([]bool, size),
	}
	g.cond = sync.NewCond(&g.mu)
	return g, nil
}

func (g *Group) Size() int {
	return g.size
}

// Worker hands out the member with the given rank. Each rank can be
// claimed exactly once.
func (g *Group) Worker(rank int) (*Worker, error) {
	if rank < 0 || rank >= g.size {
		return nil, fmt.Errorf("comm: rank %d out of range [0,%d)", rank, g.size)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.claimed[rank] {
		return nil, fmt.Errorf("comm: rank %d already claimed", rank)
	}
	g.claimed[rank] = true
	return &Worker{group: g, rank: rank}, nil
}

// Worker is one member of a Group. Rank 0 is the coordinator: it alone
// receives gathered data.
type Worker struct {
	group *Group
	rank  int
}

func (w *Worker) Rank() int {
	return w.rank
}

func (w *Worker) Size() int {
	return w.group.size
}

var errDoubleContribution = errors.New("comm: rank contributed twice in one round")

// gather blocks until every member has contributed to the current
// round, then returns the rank-ordered contributions to rank 0 and nil
// to everyone else.
func (w *Worker) gather(payload []byte) ([][]byte, error) {
	g := w.group
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.filled[w.rank] {
		return nil, errDoubleContribution
	}
	round := g.round
	g.filled[w.rank] = true
	g.slots[w.rank] = payload
	g.arrived++

	if g.arrived == g.size {
		// Last arrival closes the round and releases everyone.
		g.collected = g.slots
		g.slots = make([][]byte, g.size)
		g.filled = make([]bool, g.size)
		g.arrived = 0
		g.round++
		g.cond.Broadcast()
	} else {
		for g.round == round {
			g.cond.Wait()
		}
	}
	// The next round cannot complete (and overwrite collected) before
	// rank 0 contributes to it, which it cannot do before returning
	// from here.
	if w.rank == 0 {
		return g.collected, nil
	}
	return nil, nil
}

// GatherCount contributes this worker's local count; rank 0 receives
// every worker's count in rank order, all other ranks receive nil.
func (w *Worker) GatherCount(count int) ([]int, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(count))
	parts, err := w.gather(buf)
	if err != nil || parts == nil {
		return nil, err
	}
	counts := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 8 {
			return nil, fmt.Errorf("comm: malformed count contribution from rank %d", i)
		}
		counts[i] = int(binary.BigEndian.Uint64(p))
	}
	return counts, nil
}

// GatherBytes contributes this worker's payload; rank 0 receives the
// concatenation of all payloads in rank order along with each worker's
// byte offset into it, all other ranks receive nil.
func (w *Worker) GatherBytes(payload []byte) ([]byte, []int, error) {
	parts, err := w.gather(payload)
	if err != nil || parts == nil {
		return nil, nil, err
	}
	displs := make([]int, len(parts))
	total := 0
	for i, p := range parts {
		displs[i] = total
		total += len(p)
	}
	combined := make([]byte, 0, total)
	for _, p := range parts {
		combined = append(combined, p...)
	}
	return combined, displs, nil
}
