// Package shell implements the interactive cruzado prompt: load a
// structure and a word list, solve, and inspect the result without
// leaving the process.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/cruzado/cruzado/config"
	"github.com/cruzado/cruzado/lexicon"
	"github.com/cruzado/cruzado/puzzle"
	"github.com/cruzado/cruzado/puzzleio"
	"github.com/cruzado/cruzado/solver"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong option syntax")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func extractFields(line string) (*shellcmd, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	// handle options
	lastWasOption := false
	lastOption := ""
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "-") {
			lastWasOption = true
			lastOption = f[1:]
			continue
		}
		if lastWasOption {
			options[lastOption] = f
			lastWasOption = false
		} else {
			args = append(args, f)
		}
	}
	if lastWasOption {
		// all options need a value
		return nil, errWrongOptionSyntax
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// ShellController owns the readline loop and the currently loaded
// puzzle state.
type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	cw           *puzzle.Crossword
	pool         *lexicon.Pool
	lastSolution solver.Assignment
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcruzado>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg}
}

func (sc *ShellController) loadStructure(path string) error {
	g, err := puzzleio.LoadStructure(path)
	if err != nil {
		return err
	}
	sc.cw = puzzle.New(g)
	sc.lastSolution = nil
	showMessage(fmt.Sprintf("loaded grid with %d slots", len(sc.cw.Variables())),
		sc.l.Stderr())
	return nil
}

func (sc *ShellController) loadWords(path string) error {
	pool, err := lexicon.Load(path)
	if err != nil {
		return err
	}
	sc.pool = pool
	showMessage(fmt.Sprintf("loaded %d words", pool.Len()), sc.l.Stderr())
	return nil
}

func (sc *ShellController) loadWordDB(ctx context.Context, dsn, table string) error {
	pool, err := lexicon.LoadSQLite(ctx, dsn, table)
	if err != nil {
		return err
	}
	sc.pool = pool
	showMessage(fmt.Sprintf("loaded %d words", pool.Len()), sc.l.Stderr())
	return nil
}

func (sc *ShellController) solve(ctx context.Context) error {
	if sc.cw == nil {
		return errors.New("load a structure first")
	}
	if sc.pool == nil {
		return errors.New("load a word list first")
	}
	opts := []solver.Option{
		solver.WithNodeLimit(sc.cfg.GetInt("node-limit")),
	}
	if sc.cfg.GetBool("randomize") {
		opts = append(opts, solver.WithShuffle(frand.Shuffle))
	}
	s := solver.New(sc.cw, sc.pool, opts...)
	asgn, err := s.Solve(ctx)
	if err != nil {
		return err
	}
	sc.lastSolution = asgn
	showMessage(sc.cw.Render(asgn), sc.l.Stderr())
	return nil
}

func (sc *ShellController) show() error {
	if sc.cw == nil {
		return errors.New("no structure loaded")
	}
	if sc.lastSolution == nil {
		showMessage(sc.cw.Grid().String(), sc.l.Stderr())
		return nil
	}
	showMessage(sc.cw.Render(sc.lastSolution), sc.l.Stderr())
	return nil
}

func (sc *ShellController) set(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <key> <value>")
	}
	key, val := args[0], args[1]
	switch key {
	case "node-limit":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		sc.cfg.Set(key, n)
	case "randomize", "debug":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		sc.cfg.Set(key, b)
	default:
		sc.cfg.Set(key, val)
	}
	showMessage(fmt.Sprintf("%s = %s", key, val), sc.l.Stderr())
	return nil
}

func usage(w io.Writer) {
	showMessage(`Commands:
  load <structure-file>        load a grid
  words <word-file>            load a word list
  worddb <dsn> [-table name]   load words from a sqlite database
  solve                        fill the loaded grid
  show                         print the grid or the last solution
  set <key> <value>            change a setting (node-limit, randomize)
  help                         this message
  exit                         leave the shell`, w)
}

func (sc *ShellController) execute(ctx context.Context, line string) error {
	cmd, err := extractFields(line)
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil
		}
		return err
	}
	switch cmd.cmd {
	case "load":
		if len(cmd.args) != 1 {
			return errors.New("usage: load <structure-file>")
		}
		return sc.loadStructure(cmd.args[0])
	case "words":
		if len(cmd.args) != 1 {
			return errors.New("usage: words <word-file>")
		}
		return sc.loadWords(cmd.args[0])
	case "worddb":
		if len(cmd.args) != 1 {
			return errors.New("usage: worddb <dsn> [-table name]")
		}
		table := cmd.options["table"]
		if table == "" {
			table = sc.cfg.GetString("worddb-table")
		}
		return sc.loadWordDB(ctx, cmd.args[0], table)
	case "solve":
		return sc.solve(ctx)
	case "show":
		return sc.show()
	case "set":
		return sc.set(cmd.args)
	case "help":
		usage(sc.l.Stderr())
		return nil
	default:
		return fmt.Errorf("unknown command %q; type help", cmd.cmd)
	}
}

// Loop runs the readline loop until exit or EOF.
func (sc *ShellController) Loop(ctx context.Context) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			break
		}
		if err := sc.execute(ctx, line); err != nil {
			if errors.Is(err, solver.ErrNoSolution) {
				showMessage("No solution.", sc.l.Stderr())
				continue
			}
			log.Err(err).Msg("command failed")
			showMessage("error: "+err.Error(), sc.l.Stderr())
		}
	}
	log.Debug().Msg("leaving shell loop")
}
