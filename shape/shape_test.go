package shape

import (
	"testing"

	"github.com/matryer/is"
)

func TestParse(t *testing.T) {
	is := is.New(t)
	coords, err := Parse("01 10 11")
	is.NoErr(err)
	is.Equal(coords, []Coord{{0, 1}, {1, 0}, {1, 1}})
}

func TestParseRejectsBadTokens(t *testing.T) {
	for _, bad := range []string{"011", "0", "a1", "0 1", "01 123", ""} {
		_, err := Parse(bad)
		if err == nil {
			t.Errorf("Parse(%q) should have failed", bad)
		}
	}
}

func TestOrientationCounts(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		def  string
		want int
	}{
		{"00 01 10 11", 1}, // square
		{"00 01 02", 2},    // straight tromino
		{"00 10 20 11", 4}, // T tetromino, achiral
		{"00 01 11 12", 4}, // S tetromino, chiral but 180°-symmetric
		{"00 01 02 10", 8}, // L tetromino, fully asymmetric
	}
	for _, tc := range cases {
		base, err := Parse(tc.def)
		is.NoErr(err)
		got := Orientations(base)
		if len(got) != tc.want {
			t.Errorf("Orientations(%q): got %d, want %d", tc.def, len(got), tc.want)
		}
	}
}

// Reapplying any dihedral transform to any member of an orientation set
// must land back inside the set: expanding from any member reproduces
// the same set.
func TestOrientationClosure(t *testing.T) {
	is := is.New(t)
	base, err := Parse("00 01 02 10")
	is.NoErr(err)
	want := Orientations(base)
	for _, member := range want {
		is.Equal(Orientations(member), want)
	}
}

func TestNormalize(t *testing.T) {
	is := is.New(t)
	coords := []Coord{{3, 2}, {2, 2}, {2, 3}}
	Normalize(coords)
	is.Equal(coords, []Coord{{0, 0}, {0, 1}, {1, 0}})
}

func TestBounds(t *testing.T) {
	is := is.New(t)
	base, err := Parse("01 10 11 21 31")
	is.NoErr(err)
	w, h := Bounds(base)
	is.Equal(w, 4)
	is.Equal(h, 2)
}
