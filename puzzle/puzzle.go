// Package puzzle derives the structural model of a crossword from its
// grid: the slots (variables) to be filled and the overlap relation
// between them. The model is pure metadata; it is computed once and
// never mutated by the solver.
package puzzle

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cruzado/cruzado/grid"
)

// Direction is the orientation of a slot.
type Direction uint8

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Across {
		return "across"
	}
	return "down"
}

// A Variable is one slot in the puzzle: a maximal run of open cells of
// length at least 2 in one direction. It is a small value type,
// comparable and usable as a map key.
type Variable struct {
	Row       int
	Col       int
	Direction Direction
	Length    int
}

func (v Variable) String() string {
	return fmt.Sprintf("%d,%d %s (%d)", v.Row, v.Col, v.Direction, v.Length)
}

// Cell returns the grid coordinates of the k-th letter of the slot.
func (v Variable) Cell(k int) (row, col int) {
	if v.Direction == Down {
		return v.Row + k, v.Col
	}
	return v.Row, v.Col + k
}

// An Overlap records the letter indices at which two slots share a
// cell: index I within the first slot, index J within the second.
type Overlap struct {
	I int
	J int
}

// A Crossword is the full structural model: the grid, its slots in a
// stable enumeration order, and the cached overlap relation.
type Crossword struct {
	g         *grid.Grid
	variables []Variable
	overlaps  map[[2]Variable]Overlap
	neighbors map[Variable][]Variable
}

// New derives the crossword model from a grid. Across slots are
// enumerated row-major first, then down slots column-major, so the
// ordering is deterministic for a given grid.
func New(g *grid.Grid) *Crossword {
	cw := &Crossword{
		g:         g,
		overlaps:  make(map[[2]Variable]Overlap),
		neighbors: make(map[Variable][]Variable),
	}
	cw.deriveVariables()
	cw.computeOverlaps()
	log.Debug().Int("variables", len(cw.variables)).
		Int("overlapping-pairs", len(cw.overlaps)/2).
		Msg("derived crossword model")
	return cw
}

func (cw *Crossword) deriveVariables() {
	g := cw.g
	for row := 0; row < g.Height(); row++ {
		start := -1
		for col := 0; col <= g.Width(); col++ {
			open := col < g.Width() && g.Open(row, col)
			if open && start < 0 {
				start = col
			}
			if !open && start >= 0 {
				if length := col - start; length >= 2 {
					cw.variables = append(cw.variables, Variable{
						Row: row, Col: start, Direction: Across, Length: length,
					})
				}
				start = -1
			}
		}
	}
	for col := 0; col < g.Width(); col++ {
		start := -1
		for row := 0; row <= g.Height(); row++ {
			open := row < g.Height() && g.Open(row, col)
			if open && start < 0 {
				start = row
			}
			if !open && start >= 0 {
				if length := row - start; length >= 2 {
					cw.variables = append(cw.variables, Variable{
						Row: start, Col: col, Direction: Down, Length: length,
					})
				}
				start = -1
			}
		}
	}
}

// computeOverlaps finds, for every ordered pair of distinct slots, the
// cell they share, if any. It scans cell coordinates rather than
// assuming anything about slot directions, so it stays correct even if
// the derivation ever produced parallel runs touching the same cell.
func (cw *Crossword) computeOverlaps() {
	for a := 0; a < len(cw.variables); a++ {
		v1 := cw.variables[a]
		cells := make(map[[2]int]int, v1.Length)
		for k := 0; k < v1.Length; k++ {
			r, c := v1.Cell(k)
			cells[[2]int{r, c}] = k
		}
		for b := a + 1; b < len(cw.variables); b++ {
			v2 := cw.variables[b]
			for k := 0; k < v2.Length; k++ {
				r, c := v2.Cell(k)
				if i, ok := cells[[2]int{r, c}]; ok {
					cw.overlaps[[2]Variable{v1, v2}] = Overlap{I: i, J: k}
					cw.overlaps[[2]Variable{v2, v1}] = Overlap{I: k, J: i}
					cw.neighbors[v1] = append(cw.neighbors[v1], v2)
					cw.neighbors[v2] = append(cw.neighbors[v2], v1)
					break
				}
			}
		}
	}
}

// Grid returns the underlying cell layout.
func (cw *Crossword) Grid() *grid.Grid {
	return cw.g
}

// Variables returns the slots in their stable enumeration order. The
// returned slice must not be modified.
func (cw *Crossword) Variables() []Variable {
	return cw.variables
}

// Overlap returns the shared-cell indices for the pair (v1, v2), and
// whether the two slots overlap at all.
func (cw *Crossword) Overlap(v1, v2 Variable) (Overlap, bool) {
	ov, ok := cw.overlaps[[2]Variable{v1, v2}]
	return ov, ok
}

// Neighbors returns every slot overlapping v, in enumeration order.
// The returned slice must not be modified.
func (cw *Crossword) Neighbors(v Variable) []Variable {
	return cw.neighbors[v]
}

// LetterGrid lays a (possibly partial) assignment out on the grid.
// Cells with no letter yet are zero runes.
func (cw *Crossword) LetterGrid(assignment map[Variable]string) [][]rune {
	letters := make([][]rune, cw.g.Height())
	for i := range letters {
		letters[i] = make([]rune, cw.g.Width())
	}
	for v, word := range assignment {
		for k, r := range []rune(word) {
			row, col := v.Cell(k)
			letters[row][col] = r
		}
	}
	return letters
}

// Render draws the assignment as text, one grid row per line. Blocked
// cells print as a full block, unfilled open cells as a space.
func (cw *Crossword) Render(assignment map[Variable]string) string {
	letters := cw.LetterGrid(assignment)
	var sb strings.Builder
	for i := 0; i < cw.g.Height(); i++ {
		for j := 0; j < cw.g.Width(); j++ {
			switch {
			case !cw.g.Open(i, j):
				sb.WriteRune('█')
			case letters[i][j] == 0:
				sb.WriteByte(' ')
			default:
				sb.WriteRune(letters[i][j])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
