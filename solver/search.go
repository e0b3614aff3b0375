package solver

import (
	"context"
	"maps"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/cruzado/cruzado/puzzle"
)

// Solve enforces node consistency, prunes with a full AC-3 pass, and
// then runs backtracking search. It returns the complete assignment,
// or ErrNoSolution when the grid cannot be filled from the word pool.
// Context cancellation and the node limit surface as their own errors.
func (s *Solver) Solve(ctx context.Context) (Assignment, error) {
	s.nodes = 0
	s.EnforceNodeConsistency()
	if !s.AC3(nil) {
		log.Debug().Msg("a domain emptied during pre-search propagation")
		return nil, ErrNoSolution
	}
	// A slot with no overlaps can still have emptied out during node
	// consistency; there is no point entering search in that case.
	for v, d := range s.domains {
		if len(d) == 0 {
			log.Debug().Stringer("variable", v).Msg("empty domain before search")
			return nil, ErrNoSolution
		}
	}
	result, err := s.backtrack(ctx, make(Assignment))
	if err != nil {
		return nil, err
	}
	if result == nil {
		log.Debug().Int("nodes", s.nodes).Msg("search space exhausted")
		return nil, ErrNoSolution
	}
	log.Debug().Int("nodes", s.nodes).Msg("solution found")
	return result, nil
}

// backtrack is plain depth-first search over the remaining slots.
// Returning (nil, nil) means this branch is exhausted; real failures
// (cancellation, node budget) come back as errors after all state has
// been rolled back.
func (s *Solver) backtrack(ctx context.Context, a Assignment) (Assignment, error) {
	if s.Complete(a) {
		return maps.Clone(a), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := s.selectUnassignedVariable(a)
	for _, word := range s.orderDomainValues(v, a) {
		s.nodes++
		if s.nodeLimit > 0 && s.nodes > s.nodeLimit {
			return nil, ErrNodeLimit
		}
		a[v] = word
		if s.Consistent(a) {
			var snap map[puzzle.Variable]domain
			pruned := false
			if s.maintainArc {
				snap = s.snapshotDomains()
				s.domains[v] = domain{word: {}}
				var arcs [][2]puzzle.Variable
				for _, n := range s.cw.Neighbors(v) {
					if _, assigned := a[n]; !assigned {
						arcs = append(arcs, [2]puzzle.Variable{n, v})
					}
				}
				if len(arcs) > 0 {
					pruned = !s.AC3(arcs)
				}
			}
			if !pruned {
				result, err := s.backtrack(ctx, a)
				if err != nil {
					if snap != nil {
						s.domains = snap
					}
					delete(a, v)
					return nil, err
				}
				if result != nil {
					return result, nil
				}
			}
			if snap != nil {
				s.domains = snap
			}
		}
		delete(a, v)
	}
	return nil, nil
}

// selectUnassignedVariable picks the next slot to fill: fewest
// remaining candidates first (MRV), ties broken by most overlapping
// neighbors (degree), then by enumeration order for determinism.
func (s *Solver) selectUnassignedVariable(a Assignment) puzzle.Variable {
	unassigned := lo.Filter(s.cw.Variables(), func(v puzzle.Variable, _ int) bool {
		_, assigned := a[v]
		return !assigned
	})
	sort.SliceStable(unassigned, func(i, j int) bool {
		di, dj := len(s.domains[unassigned[i]]), len(s.domains[unassigned[j]])
		if di != dj {
			return di < dj
		}
		return len(s.cw.Neighbors(unassigned[i])) > len(s.cw.Neighbors(unassigned[j]))
	})
	return unassigned[0]
}

// orderDomainValues sorts v's candidates least-constraining first: by
// how many options each rules out across unassigned neighbors. Ties
// keep lexicographic order unless a shuffler was configured.
func (s *Solver) orderDomainValues(v puzzle.Variable, a Assignment) []string {
	candidates := make([]string, 0, len(s.domains[v]))
	for w := range s.domains[v] {
		candidates = append(candidates, w)
	}
	sort.Strings(candidates)
	if s.shuffle != nil {
		s.shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	conflicts := make(map[string]int, len(candidates))
	for _, w := range candidates {
		count := 0
		for _, n := range s.cw.Neighbors(v) {
			if _, assigned := a[n]; assigned {
				continue
			}
			ov, ok := s.cw.Overlap(v, n)
			if !ok {
				continue
			}
			for other := range s.domains[n] {
				if w[ov.I] != other[ov.J] {
					count++
				}
			}
		}
		conflicts[w] = count
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return conflicts[candidates[i]] < conflicts[candidates[j]]
	})
	return candidates
}
