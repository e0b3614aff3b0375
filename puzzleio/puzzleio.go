// Package puzzleio implements parsers for the puzzle input formats: a
// plain structure file describing the grid, and a YAML bundle tying a
// grid to its word sources and solver options. It might also implement
// other io methods.
package puzzleio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/cruzado/cruzado/grid"
	"github.com/cruzado/cruzado/lexicon"
	"github.com/cruzado/cruzado/puzzle"
	"github.com/cruzado/cruzado/solver"
)

// LoadStructure reads a grid from a structure file: '_' is an open
// cell, any other non-newline character blocks. The layout must be
// rectangular.
func LoadStructure(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadStructure(f)
}

// ReadStructure is LoadStructure for an arbitrary reader.
func ReadStructure(r io.Reader) (*grid.Grid, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		var sb strings.Builder
		for _, c := range line {
			if c == grid.OpenCell {
				sb.WriteByte(grid.OpenCell)
			} else {
				sb.WriteByte(grid.BlockedCell)
			}
		}
		rows = append(rows, sb.String())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return grid.New(rows)
}

// A PuzzleFile is the YAML bundle format: the grid rows plus any mix
// of inline words, a word-list file, and a word database.
type PuzzleFile struct {
	Grid     []string `yaml:"grid"`
	Words    []string `yaml:"words,omitempty"`
	WordFile string   `yaml:"word_file,omitempty"`
	WordDB   struct {
		DSN   string `yaml:"dsn"`
		Table string `yaml:"table"`
	} `yaml:"word_db,omitempty"`
	Options struct {
		NodeLimit              int   `yaml:"node_limit,omitempty"`
		Randomize              bool  `yaml:"randomize,omitempty"`
		MaintainArcConsistency *bool `yaml:"maintain_arc_consistency,omitempty"`
	} `yaml:"options,omitempty"`
}

// A Puzzle is a fully loaded bundle, ready to solve.
type Puzzle struct {
	Crossword *puzzle.Crossword
	Pool      *lexicon.Pool
	Options   []solver.Option
}

// LoadPuzzle reads and assembles a YAML puzzle bundle. Relative
// word-file paths are resolved against the bundle's directory.
func LoadPuzzle(ctx context.Context, path string) (*Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf PuzzleFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	g, err := grid.New(pf.Grid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	words := pf.Words
	if pf.WordFile != "" {
		wf := pf.WordFile
		if !filepath.IsAbs(wf) {
			wf = filepath.Join(filepath.Dir(path), wf)
		}
		pool, err := lexicon.Load(wf)
		if err != nil {
			return nil, err
		}
		words = append(words, pool.Words()...)
	}
	if pf.WordDB.DSN != "" {
		pool, err := lexicon.LoadSQLite(ctx, pf.WordDB.DSN, pf.WordDB.Table)
		if err != nil {
			return nil, err
		}
		words = append(words, pool.Words()...)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: no word source given", path)
	}

	var opts []solver.Option
	if pf.Options.NodeLimit > 0 {
		opts = append(opts, solver.WithNodeLimit(pf.Options.NodeLimit))
	}
	if pf.Options.Randomize {
		opts = append(opts, solver.WithShuffle(frand.Shuffle))
	}
	if pf.Options.MaintainArcConsistency != nil {
		opts = append(opts, solver.WithMaintainArcConsistency(*pf.Options.MaintainArcConsistency))
	}

	p := &Puzzle{
		Crossword: puzzle.New(g),
		Pool:      lexicon.NewPool(words),
		Options:   opts,
	}
	log.Debug().Str("path", path).Int("variables", len(p.Crossword.Variables())).
		Int("words", p.Pool.Len()).Msg("loaded puzzle bundle")
	return p, nil
}

// WriteSolution renders a solved assignment as text.
func WriteSolution(w io.Writer, cw *puzzle.Crossword, asgn solver.Assignment) error {
	_, err := io.WriteString(w, cw.Render(asgn))
	return err
}
