package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/cruzado/cruzado/config"
	"github.com/cruzado/cruzado/lexicon"
	"github.com/cruzado/cruzado/puzzle"
	"github.com/cruzado/cruzado/puzzleio"
	"github.com/cruzado/cruzado/shell"
	"github.com/cruzado/cruzado/solver"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	args := os.Args[1:]
	if err := cfg.Load(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case cfg.GetBool("shell"):
		sc := shell.NewShellController(cfg)
		sc.Loop(ctx)
	case cfg.GetBool("batch"):
		err = solveBatch(ctx, cfg)
	default:
		err = solveOnce(ctx, cfg)
	}
	if err != nil {
		if errors.Is(err, solver.ErrNoSolution) {
			fmt.Println("No solution.")
			os.Exit(1)
		}
		log.Err(err).Msg("solve failed")
		os.Exit(1)
	}
}

func solverOptions(cfg *config.Config) []solver.Option {
	opts := []solver.Option{
		solver.WithNodeLimit(cfg.GetInt("node-limit")),
	}
	if cfg.GetBool("randomize") {
		opts = append(opts, solver.WithShuffle(frand.Shuffle))
	}
	return opts
}

// solveOnce handles the classic invocation: a structure file plus a
// word source, solution to stdout or -output.
func solveOnce(ctx context.Context, cfg *config.Config) error {
	args := cfg.Args()
	if len(args) < 1 {
		return errors.New("usage: cruzado structure-file [word-file]")
	}
	g, err := puzzleio.LoadStructure(args[0])
	if err != nil {
		return err
	}
	cw := puzzle.New(g)

	var pool *lexicon.Pool
	switch {
	case len(args) > 1:
		pool, err = lexicon.Load(args[1])
	case cfg.GetString("wordfile") != "":
		pool, err = lexicon.Load(cfg.GetString("wordfile"))
	case cfg.GetString("worddb") != "":
		pool, err = lexicon.LoadSQLite(ctx, cfg.GetString("worddb"),
			cfg.GetString("worddb-table"))
	default:
		return errors.New("no word source: pass a word file or set -wordfile/-worddb")
	}
	if err != nil {
		return err
	}

	s := solver.New(cw, pool, solverOptions(cfg)...)
	asgn, err := s.Solve(ctx)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path := cfg.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return puzzleio.WriteSolution(out, cw, asgn)
}

// solveBatch solves every puzzle bundle named on the command line.
// Each puzzle gets its own solver; the solvers themselves stay
// single-threaded.
func solveBatch(ctx context.Context, cfg *config.Config) error {
	paths := cfg.Args()
	if len(paths) == 0 {
		return errors.New("usage: cruzado -batch puzzle.yaml [puzzle.yaml ...]")
	}
	results := make([]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			p, err := puzzleio.LoadPuzzle(ctx, path)
			if err != nil {
				return err
			}
			asgn, err := solver.New(p.Crossword, p.Pool, p.Options...).Solve(ctx)
			if errors.Is(err, solver.ErrNoSolution) {
				results[i] = fmt.Sprintf("== %s\nNo solution.\n", path)
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = fmt.Sprintf("== %s\n%s", path, p.Crossword.Render(asgn))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		fmt.Print(r)
	}
	return nil
}
