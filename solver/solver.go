// Package solver fills a crossword by treating it as a constraint
// satisfaction problem. Slots are the variables, the word pool is the
// domain, and the constraints are word length, letter agreement at
// overlaps, and all words being distinct. It enforces node and arc
// consistency and then runs a backtracking search with the usual
// variable and value ordering heuristics (MRV, degree, LCV).
package solver

import (
	"errors"
	"sort"

	"github.com/cruzado/cruzado/lexicon"
	"github.com/cruzado/cruzado/puzzle"
)

var (
	// ErrNoSolution is the normal negative outcome: the word pool
	// cannot fill this grid. It is not a malfunction.
	ErrNoSolution = errors.New("no crossword solution found")
	// ErrNodeLimit is returned when the search exceeds the configured
	// node budget before finding a solution.
	ErrNodeLimit = errors.New("search node limit exceeded")
)

// An Assignment maps slots to their chosen words. It may be partial
// during search; a returned solution is always complete.
type Assignment map[puzzle.Variable]string

type domain map[string]struct{}

// A Solver holds the mutable CSP state: the per-slot candidate
// domains and the search configuration. It is not safe for concurrent
// use; create one solver per puzzle.
type Solver struct {
	cw      *puzzle.Crossword
	domains map[puzzle.Variable]domain

	maintainArc bool
	nodeLimit   int
	shuffle     func(n int, swap func(i, j int))

	nodes int
}

// An Option configures a Solver.
type Option func(*Solver)

// WithNodeLimit bounds the number of tentative assignments the search
// may try before giving up with ErrNodeLimit. Zero means no limit.
func WithNodeLimit(n int) Option {
	return func(s *Solver) { s.nodeLimit = n }
}

// WithMaintainArcConsistency controls whether AC-3 is re-run after
// every tentative assignment during search. On by default; turning it
// off trades pruning for cheaper nodes.
func WithMaintainArcConsistency(on bool) Option {
	return func(s *Solver) { s.maintainArc = on }
}

// WithShuffle randomizes the order of equally ranked candidate words,
// using the given shuffler (e.g. frand.Shuffle). With no shuffler the
// solve is fully deterministic.
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(s *Solver) { s.shuffle = shuffle }
}

// New creates a solver for the crossword, with every slot's domain
// initialized to the full word pool.
func New(cw *puzzle.Crossword, pool *lexicon.Pool, opts ...Option) *Solver {
	s := &Solver{
		cw:          cw,
		domains:     make(map[puzzle.Variable]domain, len(cw.Variables())),
		maintainArc: true,
	}
	for _, v := range cw.Variables() {
		d := make(domain, pool.Len())
		for _, w := range pool.Words() {
			d[w] = struct{}{}
		}
		s.domains[v] = d
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Domain returns the current candidates for a slot, sorted.
func (s *Solver) Domain(v puzzle.Variable) []string {
	words := make([]string, 0, len(s.domains[v]))
	for w := range s.domains[v] {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Nodes returns how many tentative assignments the last search tried.
func (s *Solver) Nodes() int {
	return s.nodes
}

// EnforceNodeConsistency removes from every slot's domain the words
// whose length does not match the slot. It must run before any arc
// consistency or search, and is idempotent.
func (s *Solver) EnforceNodeConsistency() {
	for v, d := range s.domains {
		for w := range d {
			if len(w) != v.Length {
				delete(d, w)
			}
		}
	}
}

// Revise makes x arc-consistent with y: it removes from x's domain
// every word with no letter-compatible partner left in y's domain.
// It reports whether x's domain changed. Slots that do not overlap
// need no revision.
func (s *Solver) Revise(x, y puzzle.Variable) bool {
	ov, ok := s.cw.Overlap(x, y)
	if !ok {
		return false
	}
	revised := false
	for w := range s.domains[x] {
		if !s.hasSupport(w, ov, y) {
			delete(s.domains[x], w)
			revised = true
		}
	}
	return revised
}

func (s *Solver) hasSupport(w string, ov puzzle.Overlap, y puzzle.Variable) bool {
	if ov.I >= len(w) {
		return false
	}
	for other := range s.domains[y] {
		if ov.J < len(other) && w[ov.I] == other[ov.J] {
			return true
		}
	}
	return false
}

// AC3 enforces arc consistency over the given directed arcs, or over
// every overlapping pair if arcs is nil. It reports false as soon as
// any domain empties, meaning the puzzle has no solution from the
// current state.
func (s *Solver) AC3(arcs [][2]puzzle.Variable) bool {
	queue := arcs
	if queue == nil {
		for _, x := range s.cw.Variables() {
			for _, y := range s.cw.Neighbors(x) {
				queue = append(queue, [2]puzzle.Variable{x, y})
			}
		}
	}
	for len(queue) > 0 {
		arc := queue[0]
		queue = queue[1:]
		x, y := arc[0], arc[1]
		if s.Revise(x, y) {
			if len(s.domains[x]) == 0 {
				return false
			}
			for _, k := range s.cw.Neighbors(x) {
				if k != y {
					queue = append(queue, [2]puzzle.Variable{k, x})
				}
			}
		}
	}
	return true
}

// Complete reports whether every slot has an assigned word.
func (s *Solver) Complete(a Assignment) bool {
	return len(a) == len(s.cw.Variables())
}

// Consistent reports whether the assigned subset satisfies all
// constraints: correct lengths, pairwise-distinct words, and agreeing
// letters at every overlap between assigned slots.
func (s *Solver) Consistent(a Assignment) bool {
	used := make(map[string]bool, len(a))
	for v, w := range a {
		if len(w) != v.Length {
			return false
		}
		if used[w] {
			return false
		}
		used[w] = true
		for _, n := range s.cw.Neighbors(v) {
			other, assigned := a[n]
			if !assigned {
				continue
			}
			ov, ok := s.cw.Overlap(v, n)
			if !ok {
				continue
			}
			if ov.J >= len(other) || w[ov.I] != other[ov.J] {
				return false
			}
		}
	}
	return true
}

func (s *Solver) snapshotDomains() map[puzzle.Variable]domain {
	snap := make(map[puzzle.Variable]domain, len(s.domains))
	for v, d := range s.domains {
		cp := make(domain, len(d))
		for w := range d {
			cp[w] = struct{}{}
		}
		snap[v] = cp
	}
	return snap
}
