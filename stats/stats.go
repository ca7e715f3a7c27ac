// Package stats implements a small online statistic, used to report
// how evenly the striped partition spread solutions across workers.
package stats

import "math"

// Statistic accumulates values with Welford's online algorithm and
// tracks the range of what it has seen.
type Statistic struct {
	n    int
	oldM float64
	newM float64
	oldS float64
	newS float64
	min  float64
	max  float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	if s.n == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
		return
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.n)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
	if val < s.min {
		s.min = val
	}
	if val > s.max {
		s.max = val
	}
}

func (s *Statistic) Count() int {
	return s.n
}

func (s *Statistic) Mean() float64 {
	if s.n > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.newS / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Min() float64 {
	return s.min
}

func (s *Statistic) Max() float64 {
	return s.max
}
