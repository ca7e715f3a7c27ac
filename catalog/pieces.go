package catalog

// NumPieces is the number of distinct pieces. The twelve of them cover
// the board exactly: their cell counts sum to board.NumCells.
const NumPieces = 12

// pieceShapes defines each piece as a list of two-digit xy tokens,
// parsed by shape.Parse. These are the canonical forms the orientation
// generator expands; the solver never sees them directly.
var pieceShapes = [NumPieces]string{
	"01 10 11 21 31",
	"01 10 11 21 22",
	"10 11 12 13 03",
	"01 11 10 02",
	"00 01 02 12 13",
	"02 12 11 21 20",
	"02 12 11 10",
	"02 12 22 21 20",
	"01 11 10",
	"01 02 11 12 10",
	"01 11 10 21",
	"00 01 11 21 20",
}

// Letter returns the output character identifying piece p ('A'–'L').
func Letter(p int) byte {
	return 'A' + byte(p)
}
