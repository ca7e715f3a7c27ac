// Package shape parses piece definitions and expands them into their
// geometrically distinct orientations under rotation and reflection.
package shape

import (
	"fmt"
	"sort"
	"strings"
)

// Coord is one cell offset of a piece shape.
type Coord struct {
	X, Y int
}

// Parse converts a whitespace-separated list of two-digit tokens
// (for example "01 10 11") into coordinate pairs; the first digit is x,
// the second y. Tokens of any other length are rejected.
func Parse(s string) ([]Coord, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("shape: empty definition %q", s)
	}
	coords := make([]Coord, 0, len(fields))
	for _, f := range fields {
		if len(f) != 2 || !isDigit(f[0]) || !isDigit(f[1]) {
			return nil, fmt.Errorf("shape: bad token %q in %q", f, s)
		}
		coords = append(coords, Coord{X: int(f[0] - '0'), Y: int(f[1] - '0')})
	}
	return coords, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Orientations returns the distinct normalized forms of base under the
// eight dihedral transforms {0°, 90°, 180°, 270°} × {identity,
// x-reflection}. The list is sorted by canonical form, so the order is
// a pure function of the shape; downstream placement ids depend on
// that stability.
func Orientations(base []Coord) [][]Coord {
	seen := make(map[string][]Coord)
	for reflect := 0; reflect < 2; reflect++ {
		for rot := 0; rot < 4; rot++ {
			t := make([]Coord, len(base))
			for i, c := range base {
				x, y := c.X, c.Y
				if reflect == 1 {
					x = -x
				}
				for r := 0; r < rot; r++ {
					x, y = y, -x
				}
				t[i] = Coord{X: x, Y: y}
			}
			Normalize(t)
			seen[key(t)] = t
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]Coord, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// Normalize shifts the shape so its minimum x and y become zero, then
// sorts the coordinates lexicographically on (x, y). Two shapes are
// the same orientation iff their normalized forms are equal.
func Normalize(coords []Coord) {
	minX, minY := coords[0].X, coords[0].Y
	for _, c := range coords[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}
	for i := range coords {
		coords[i].X -= minX
		coords[i].Y -= minY
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].X != coords[j].X {
			return coords[i].X < coords[j].X
		}
		return coords[i].Y < coords[j].Y
	})
}

// Bounds returns the width and height of a normalized shape.
func Bounds(coords []Coord) (w, h int) {
	for _, c := range coords {
		if c.X+1 > w {
			w = c.X + 1
		}
		if c.Y+1 > h {
			h = c.Y + 1
		}
	}
	return w, h
}

// key encodes a normalized shape; byte-wise comparison of keys matches
// lexicographic comparison of the coordinate lists.
func key(coords []Coord) string {
	b := make([]byte, 0, len(coords)*2)
	for _, c := range coords {
		b = append(b, byte(c.X), byte(c.Y))
	}
	return string(b)
}
