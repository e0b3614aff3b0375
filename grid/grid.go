// Package grid contains the cell layout for a crossword puzzle. A grid
// is derived once from its textual description and never mutated after
// that; everything downstream (slot derivation, solving, rendering)
// treats it as read-only.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// OpenCell marks a cell that must receive a letter.
	OpenCell = '_'
	// BlockedCell marks a cell that can never hold a letter.
	BlockedCell = '#'
)

// ErrMalformedGrid is returned when a grid description is not
// rectangular or contains characters outside the open/blocked alphabet.
var ErrMalformedGrid = errors.New("malformed grid")

// A Grid is an immutable rectangular layout of open and blocked cells.
type Grid struct {
	open   [][]bool
	width  int
	height int
}

// New builds a Grid from a row-per-string description. Every row must
// have the same width and every cell must be OpenCell or BlockedCell.
func New(rows []string) (*Grid, error) {
	g := &Grid{height: len(rows)}
	if len(rows) > 0 {
		g.width = len(rows[0])
	}
	g.open = make([][]bool, len(rows))
	for i, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d",
				ErrMalformedGrid, i, len(row), g.width)
		}
		g.open[i] = make([]bool, g.width)
		for j, c := range []byte(row) {
			switch c {
			case OpenCell:
				g.open[i][j] = true
			case BlockedCell:
				// stays false
			default:
				return nil, fmt.Errorf("%w: unrecognized cell %q at row %d col %d",
					ErrMalformedGrid, string(c), i, j)
			}
		}
	}
	return g, nil
}

// Height is the number of rows in the grid.
func (g *Grid) Height() int {
	return g.height
}

// Width is the number of columns in the grid.
func (g *Grid) Width() int {
	return g.width
}

// Open returns whether the cell at row, col can hold a letter.
func (g *Grid) Open(row, col int) bool {
	return g.open[row][col]
}

func (g *Grid) String() string {
	var sb strings.Builder
	for i := 0; i < g.height; i++ {
		for j := 0; j < g.width; j++ {
			if g.open[i][j] {
				sb.WriteByte(OpenCell)
			} else {
				sb.WriteByte(BlockedCell)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
