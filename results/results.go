// Package results renders solved boards to the output artifact and,
// optionally, archives runs in a sqlite database.
package results

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/domino14/iqfit/board"
)

// Write renders each solution as five 11-character rows followed by a
// blank separator line, in the order given.
func Write(w io.Writer, solutions []string) error {
	for i, sol := range solutions {
		if len(sol) != board.NumCells {
			return fmt.Errorf("results: solution %d is %d bytes, want %d",
				i, len(sol), board.NumCells)
		}
		if _, err := io.WriteString(w, board.Render(sol)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the artifact to path. Failure to create or write
// the file is returned to the caller, not swallowed.
func WriteFile(path string, solutions []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("results: open %s: %w", path, err)
	}
	if err := Write(f, solutions); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("results: close %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("solutions", len(solutions)).Msg("wrote solutions file")
	return nil
}
