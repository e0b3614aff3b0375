package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/cruzado/cruzado/grid"
	"github.com/cruzado/cruzado/lexicon"
	"github.com/cruzado/cruzado/puzzle"
)

// teeGrid has one across slot (row 0) and one down slot (col 1),
// meeting at across index 1 / down index 0.
var teeGrid = []string{
	`___`,
	`#_#`,
	`#_#`,
}

func newSolver(t *testing.T, rows []string, words []string, opts ...Option) (*Solver, *puzzle.Crossword) {
	t.Helper()
	g, err := grid.New(rows)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	cw := puzzle.New(g)
	return New(cw, lexicon.NewPool(words), opts...), cw
}

func TestSolveTee(t *testing.T) {
	is := is.New(t)
	s, cw := newSolver(t, teeGrid, []string{"CAT", "DOG", "ACE"})

	asgn, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(s.Complete(asgn))
	is.True(s.Consistent(asgn))

	// The shared cell really holds one letter.
	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}
	down := puzzle.Variable{Row: 0, Col: 1, Direction: puzzle.Down, Length: 3}
	ov, ok := cw.Overlap(across, down)
	is.True(ok)
	is.Equal(asgn[across][ov.I], asgn[down][ov.J])
}

func TestSolveSymmetricCross(t *testing.T) {
	is := is.New(t)
	// Across and down meet at both words' middle letters.
	s, cw := newSolver(t, []string{
		`#_#`,
		`___`,
		`#_#`,
	}, []string{"CAR", "CAT", "DOG"})

	asgn, err := s.Solve(context.Background())
	is.NoErr(err)

	across := puzzle.Variable{Row: 1, Col: 0, Direction: puzzle.Across, Length: 3}
	down := puzzle.Variable{Row: 0, Col: 1, Direction: puzzle.Down, Length: 3}
	ov, ok := cw.Overlap(across, down)
	is.True(ok)
	is.Equal(ov, puzzle.Overlap{I: 1, J: 1})
	is.Equal(asgn[across][1], asgn[down][1])
	is.True(asgn[across] != asgn[down])
}

func TestSolveSolutionInvariants(t *testing.T) {
	is := is.New(t)
	s, cw := newSolver(t, []string{
		`____`,
		`_##_`,
		`_##_`,
		`____`,
	}, []string{"STAR", "SOAP", "PEAR", "REAR", "DOGS", "CATS"})

	asgn, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(len(asgn), len(cw.Variables()))

	seen := make(map[string]bool)
	for v, w := range asgn {
		is.Equal(len(w), v.Length) // unary invariant
		is.True(!seen[w])          // all words distinct
		seen[w] = true
		for _, n := range cw.Neighbors(v) {
			ov, ok := cw.Overlap(v, n)
			is.True(ok)
			is.Equal(w[ov.I], asgn[n][ov.J]) // overlap letters agree
		}
	}
}

func TestSolveNoSolutionDuplicateNeeded(t *testing.T) {
	is := is.New(t)
	// Two disjoint slots, one candidate word: distinctness forces failure.
	s, _ := newSolver(t, []string{
		`____`,
		`####`,
		`____`,
	}, []string{"WORD"})

	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))
}

func TestSolveNoWordOfLength(t *testing.T) {
	is := is.New(t)
	// One slot of length 5 with no 5-letter candidates: node
	// consistency empties the domain, search never starts.
	s, _ := newSolver(t, []string{`_____`}, []string{"CAT", "DOG"})

	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))
	is.Equal(s.Nodes(), 0)
}

func TestSolveFullyBlockedGrid(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t, []string{
		`###`,
		`###`,
	}, []string{"CAT"})

	asgn, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(len(asgn), 0) // vacuously complete
}

func TestEnforceNodeConsistency(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t, teeGrid, []string{"CAT", "HOUSE", "ACE", "AT"})

	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}
	s.EnforceNodeConsistency()
	is.Equal(s.Domain(across), []string{"ACE", "CAT"})

	// Idempotent: a second pass removes nothing further.
	s.EnforceNodeConsistency()
	is.Equal(s.Domain(across), []string{"ACE", "CAT"})
}

func TestRevise(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t, teeGrid, []string{"CAT", "DOG", "ACE"})
	s.EnforceNodeConsistency()

	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}
	down := puzzle.Variable{Row: 0, Col: 1, Direction: puzzle.Down, Length: 3}

	// DOG has no partner in the down domain starting with O.
	is.True(s.Revise(across, down))
	is.Equal(s.Domain(across), []string{"ACE", "CAT"})

	// Already consistent now.
	is.True(!s.Revise(across, down))
}

func TestReviseNoOverlap(t *testing.T) {
	is := is.New(t)
	s, cw := newSolver(t, []string{
		`____`,
		`####`,
		`____`,
	}, []string{"WORD", "CORD"})
	s.EnforceNodeConsistency()
	vars := cw.Variables()
	is.True(!s.Revise(vars[0], vars[1]))
}

func TestAC3FixedPoint(t *testing.T) {
	is := is.New(t)
	s, cw := newSolver(t, teeGrid, []string{"CAT", "DOG", "ACE"})
	s.EnforceNodeConsistency()
	is.True(s.AC3(nil))

	before := make(map[puzzle.Variable][]string)
	for _, v := range cw.Variables() {
		before[v] = s.Domain(v)
	}
	// Rerunning AC-3 on its own output changes no domain.
	is.True(s.AC3(nil))
	for _, v := range cw.Variables() {
		is.Equal(s.Domain(v), before[v])
	}
}

func TestAC3EmptiesDomain(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t, teeGrid, []string{"DOG"})
	s.EnforceNodeConsistency()
	is.True(!s.AC3(nil))
}

func TestSolveDeterminism(t *testing.T) {
	words := []string{"STAR", "SOAP", "PEAR", "REAR", "DOGS", "CATS", "TOAD", "RAPT"}
	rows := []string{
		`____`,
		`_##_`,
		`_##_`,
		`____`,
	}
	s1, _ := newSolver(t, rows, words)
	a1, err := s1.Solve(context.Background())
	assert.NoError(t, err)

	s2, _ := newSolver(t, rows, words)
	a2, err := s2.Solve(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, a1, a2)
}

func TestSolveWithoutMaintainedArcConsistency(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t, teeGrid, []string{"CAT", "DOG", "ACE"},
		WithMaintainArcConsistency(false))
	asgn, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(s.Consistent(asgn))
}

func TestSolveWithShuffle(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t, teeGrid, []string{"CAT", "DOG", "ACE"},
		WithShuffle(frand.Shuffle))
	asgn, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(s.Complete(asgn))
	is.True(s.Consistent(asgn))
}

func TestSolveNodeLimit(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t, teeGrid, []string{"CAT", "DOG", "ACE"},
		WithNodeLimit(1))
	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrNodeLimit))
}

func TestSolveCancelledContext(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t, teeGrid, []string{"CAT", "DOG", "ACE"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Solve(ctx)
	is.True(errors.Is(err, context.Canceled))
}

func BenchmarkSolve(b *testing.B) {
	words := []string{"STAR", "SOAP", "PEAR", "REAR", "DOGS", "CATS", "TOAD", "RAPT", "SPIT", "TRAP"}
	g, err := grid.New([]string{
		`____`,
		`_##_`,
		`_##_`,
		`____`,
	})
	if err != nil {
		b.Fatal(err)
	}
	cw := puzzle.New(g)
	pool := lexicon.NewPool(words)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New(cw, pool).Solve(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}

func TestReturnedAssignmentIsDetached(t *testing.T) {
	is := is.New(t)
	s, cw := newSolver(t, teeGrid, []string{"CAT", "DOG", "ACE"})
	asgn, err := s.Solve(context.Background())
	is.NoErr(err)

	// Mutating the returned assignment must not affect solver state.
	for _, v := range cw.Variables() {
		delete(asgn, v)
	}
	again, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(len(again), len(cw.Variables()))
}
