// Package runner partitions the search space across independent
// workers and merges their results at the coordinator.
//
// Worker i of N owns exactly the placements of the first piece whose
// id satisfies id mod N == i: a striped partition, so every placement
// belongs to exactly one worker. Workers share only the immutable
// placement catalog; each has a private solver, board state, and
// solution list. The two collective gathers at the end are the only
// synchronization points.
package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/iqfit/board"
	"github.com/domino14/iqfit/catalog"
	"github.com/domino14/iqfit/comm"
	"github.com/domino14/iqfit/solver"
	"github.com/domino14/iqfit/stats"
)

// Collective is the narrow transport surface a worker needs: its
// identity and the two all-to-one gathers. comm.Worker implements it
// in process.
type Collective interface {
	Rank() int
	Size() int
	GatherCount(count int) ([]int, error)
	GatherBytes(payload []byte) ([]byte, []int, error)
}

// Stripe returns the placement ids of the designated first piece that
// belong to the given rank: every id with id mod size == rank, in
// ascending order.
func Stripe(total, rank, size int) []int {
	ids := make([]int, 0, (total+size-1)/size)
	for id := rank; id < total; id += size {
		ids = append(ids, id)
	}
	return ids
}

// WorkerLog is one worker's record in the optional YAML log stream.
type WorkerLog struct {
	Rank      int   `yaml:"rank"`
	Assigned  int   `yaml:"assigned"`
	Solutions int   `yaml:"solutions"`
	Millis    int64 `yaml:"ms"`
}

// Report is the coordinator's merged view of a completed run. The
// solution order is a pure function of (worker rank, local discovery
// order), never of scheduling.
type Report struct {
	TotalSolutions int
	PerWorker      []int
	Solutions      []string
	Digest         uint64
}

type Runner struct {
	cat       *catalog.Catalog
	workers   int
	logStream io.Writer
}

func New(cat *catalog.Catalog, workers int) (*Runner, error) {
	if workers < 1 {
		return nil, fmt.Errorf("runner: worker count must be positive, got %d", workers)
	}
	return &Runner{cat: cat, workers: workers}, nil
}

// SetLogStream directs per-worker YAML log records to w. Must be set
// before Run.
func (r *Runner) SetLogStream(w io.Writer) {
	r.logStream = w
}

// Run solves the whole instance with the configured number of workers
// and returns the coordinator's merged report. Any worker error fails
// the entire run; there is no partial result.
func (r *Runner) Run() (*Report, error) {
	group, err := comm.NewGroup(r.workers)
	if err != nil {
		return nil, err
	}

	logChan := make(chan []byte)
	done := make(chan bool)
	writer := errgroup.Group{}
	if r.logStream != nil {
		writer.Go(func() error {
			for {
				select {
				case rec := <-logChan:
					if _, err := r.logStream.Write(rec); err != nil {
						log.Err(err).Msg("worker-log write failed")
					}
				case <-done:
					return nil
				}
			}
		})
	}

	log.Debug().Int("workers", r.workers).Msg("starting solve")
	var report *Report
	g := errgroup.Group{}
	for rank := 0; rank < r.workers; rank++ {
		w, err := group.Worker(rank)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			rep, err := r.runWorker(w, logChan)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w.Rank(), err)
			}
			if rep != nil {
				report = rep
			}
			return nil
		})
	}
	err = g.Wait()
	if r.logStream != nil {
		close(done)
		writer.Wait()
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// runWorker is one worker's whole life: solve the assigned stripe,
// contribute to the two gathers, and (rank 0 only) merge.
func (r *Runner) runWorker(w Collective, logChan chan []byte) (*Report, error) {
	start := time.Now()
	assigned := Stripe(r.cat.NumPlacements(solver.FirstPiece), w.Rank(), w.Size())
	sols := solver.New(r.cat).Solve(assigned)

	if r.logStream != nil {
		rec, err := yaml.Marshal([]WorkerLog{{
			Rank:      w.Rank(),
			Assigned:  len(assigned),
			Solutions: len(sols),
			Millis:    time.Since(start).Milliseconds(),
		}})
		if err != nil {
			log.Err(err).Msg("could not marshal worker log record")
		} else {
			logChan <- rec
		}
	}

	counts, err := w.GatherCount(len(sols))
	if err != nil {
		return nil, err
	}

	// Fixed-width records, no delimiters; offsets are computable from
	// the counts alone.
	payload := make([]byte, 0, len(sols)*board.NumCells)
	for _, sol := range sols {
		payload = append(payload, sol...)
	}
	combined, displs, err := w.GatherBytes(payload)
	if err != nil {
		return nil, err
	}
	if w.Rank() != 0 {
		return nil, nil
	}
	return merge(counts, combined, displs)
}

// merge walks the combined buffer in rank order and, within each
// worker's region, in local discovery order.
func merge(counts []int, combined []byte, displs []int) (*Report, error) {
	total := lo.Sum(counts)
	if len(combined) != total*board.NumCells {
		return nil, fmt.Errorf("runner: combined payload is %d bytes, want %d",
			len(combined), total*board.NumCells)
	}

	solutions := make([]string, 0, total)
	for rank, count := range counts {
		base := displs[rank]
		for i := 0; i < count; i++ {
			rec := combined[base+i*board.NumCells : base+(i+1)*board.NumCells]
			solutions = append(solutions, string(rec))
		}
	}
	digest := xxhash.Sum64(combined)

	skew := &stats.Statistic{}
	for _, c := range counts {
		skew.Push(float64(c))
	}
	log.Info().
		Int("workers", len(counts)).
		Ints("per-worker", counts).
		Float64("count-mean", skew.Mean()).
		Float64("count-stdev", skew.Stdev()).
		Float64("count-min", skew.Min()).
		Float64("count-max", skew.Max()).
		Str("digest", fmt.Sprintf("%016x", digest)).
		Msg("merged worker results")

	return &Report{
		TotalSolutions: total,
		PerWorker:      counts,
		Solutions:      solutions,
		Digest:         digest,
	}, nil
}
