package comm

import (
	"bytes"
	"sync"
	"testing"

	"github.com/matryer/is"
)

func TestGroupValidation(t *testing.T) {
	is := is.New(t)
	_, err := NewGroup(0)
	is.True(err != nil)

	g, err := NewGroup(2)
	is.NoErr(err)
	_, err = g.Worker(-1)
	is.True(err != nil)
	_, err = g.Worker(2)
	is.True(err != nil)

	w, err := g.Worker(1)
	is.NoErr(err)
	is.Equal(w.Rank(), 1)
	is.Equal(w.Size(), 2)

	_, err = g.Worker(1)
	is.True(err != nil) // rank already claimed
}

func TestGatherCountOrdered(t *testing.T) {
	is := is.New(t)
	const size = 4
	g, err := NewGroup(size)
	is.NoErr(err)

	results := make([][]int, size)
	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		w, err := g.Worker(rank)
		is.NoErr(err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			counts, err := w.GatherCount(w.Rank()*10 + 1)
			if err != nil {
				t.Error(err)
				return
			}
			results[w.Rank()] = counts
		}()
	}
	wg.Wait()

	is.Equal(results[0], []int{1, 11, 21, 31})
	for rank := 1; rank < size; rank++ {
		is.True(results[rank] == nil)
	}
}

func TestGatherBytesOffsets(t *testing.T) {
	is := is.New(t)
	const size = 3
	g, err := NewGroup(size)
	is.NoErr(err)

	payloads := [][]byte{
		[]byte("aaaa"),
		nil, // a worker with no solutions contributes an empty buffer
		[]byte("cc"),
	}
	var combined []byte
	var displs []int
	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		w, err := g.Worker(rank)
		is.NoErr(err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf, offs, err := w.GatherBytes(payloads[w.Rank()])
			if err != nil {
				t.Error(err)
				return
			}
			if w.Rank() == 0 {
				combined = buf
				displs = offs
			}
		}()
	}
	wg.Wait()

	is.True(bytes.Equal(combined, []byte("aaaacc")))
	is.Equal(displs, []int{0, 4, 4})
}

// The two collectives of a real run happen back to back on the same
// group; rounds must not bleed into each other.
func TestSequentialRounds(t *testing.T) {
	is := is.New(t)
	const size = 3
	g, err := NewGroup(size)
	is.NoErr(err)

	var counts []int
	var combined []byte
	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		w, err := g.Worker(rank)
		is.NoErr(err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := w.GatherCount(w.Rank())
			if err != nil {
				t.Error(err)
				return
			}
			buf, _, err := w.GatherBytes([]byte{byte('a' + w.Rank())})
			if err != nil {
				t.Error(err)
				return
			}
			if w.Rank() == 0 {
				counts = c
				combined = buf
			}
		}()
	}
	wg.Wait()

	is.Equal(counts, []int{0, 1, 2})
	is.True(bytes.Equal(combined, []byte("abc")))
}

func TestSingleWorkerGroup(t *testing.T) {
	is := is.New(t)
	g, err := NewGroup(1)
	is.NoErr(err)
	w, err := g.Worker(0)
	is.NoErr(err)

	counts, err := w.GatherCount(5)
	is.NoErr(err)
	is.Equal(counts, []int{5})

	buf, displs, err := w.GatherBytes([]byte("xy"))
	is.NoErr(err)
	is.True(bytes.Equal(buf, []byte("xy")))
	is.Equal(displs, []int{0})
}
