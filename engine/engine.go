// Package engine is the core's external-facing facade, wrapping
// position/search/tt/config/history behind the small verb set spec §6
// names: new_position, play_move, search, set_hash_size, set_threads,
// set_option, stop, clear_hash, new_game. This is the seam a UCI loop
// (or any other driver) sits on top of; the package itself speaks no
// protocol.
//
// Grounded on treepeck-chego/game/game.go's Game wrapper for the overall
// "one struct owns the position plus its mutation verbs" shape, adapted
// to also own the search-side state (table, tunables, active stop flag)
// the teacher's Game never needed since chego shipped no search. Logging
// follows the op/go-logging idiom other_examples/a222fc5b_frankkopp-
// FrankyGo__internal-movegen-movegen.go uses: a package-level
// *logging.Logger obtained once via MustGetLogger.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/op/go-logging"

	"github.com/arbiterchess/core/config"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
	"github.com/arbiterchess/core/position"
	"github.com/arbiterchess/core/search"
	"github.com/arbiterchess/core/tt"
)

var log = logging.MustGetLogger("engine")

// defaultHashMB is the hash table size a freshly constructed Engine
// starts with, before any `set_hash_size` call.
const defaultHashMB = 16

// Engine owns the live position, the shared transposition table, the
// tunable parameter set, and the in-flight search's stop flag.
type Engine struct {
	mu sync.Mutex

	pos     *position.Position
	table   *tt.Table
	cfg     *config.Tunables
	threads int

	stop *atomic.Bool
}

// New builds an Engine with default tunables, a 16 MiB hash table, and
// the standard starting position.
func New() *Engine {
	pos, err := position.New("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		panic("engine: starting FEN must always parse: " + err.Error())
	}
	return &Engine{
		pos:     pos,
		table:   tt.New(defaultHashMB),
		cfg:     config.Defaults(),
		threads: 1,
	}
}

// NewPosition replaces the live position with the one fenStr describes.
// An invalid FEN leaves the previous position untouched (spec §7).
func (e *Engine) NewPosition(fenStr string) error {
	p, err := position.New(fenStr)
	if err != nil {
		log.Warningf("engine: rejected FEN %q: %v", fenStr, err)
		return fmt.Errorf("engine: invalid FEN: %w", err)
	}
	e.mu.Lock()
	e.pos = p
	e.mu.Unlock()
	return nil
}

// PlayMove applies the move uciStr names (long algebraic, e.g. "e2e4",
// "e7e8q") to the live position. An illegal or malformed move leaves the
// position untouched and is reported to the caller (spec §7).
func (e *Engine) PlayMove(uciStr string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	from, to, promo, err := parseUCIMove(uciStr)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	list := e.pos.LegalMoves(movegen.All)
	m, ok := list.Contains(from, to, promo)
	if !ok {
		return fmt.Errorf("engine: illegal move %q", uciStr)
	}
	e.pos.MakeMove(m)
	return nil
}

// parseUCIMove decodes long algebraic notation into its from/to/promotion
// fields, per spec §6's Move I/O section.
func parseUCIMove(s string) (from, to piece.Square, promo piece.Type, err error) {
	if len(s) < 4 || len(s) > 5 {
		return 0, 0, 0, fmt.Errorf("malformed move %q", s)
	}
	from = piece.SquareFromString(s[0:2])
	to = piece.SquareFromString(s[2:4])
	if from == piece.NoSquare || to == piece.NoSquare {
		return 0, 0, 0, fmt.Errorf("malformed move %q", s)
	}
	promo = piece.Queen
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = piece.Knight
		case 'b':
			promo = piece.Bishop
		case 'r':
			promo = piece.Rook
		case 'q':
			promo = piece.Queen
		default:
			return 0, 0, 0, fmt.Errorf("unknown promotion piece %q in %q", s[4], s)
		}
	}
	return from, to, promo, nil
}

// Search runs the search driver on the live position and returns the
// best move found, along with a BestMoveReport-equivalent summary of
// the final iteration. report, if non-nil, is invoked once per
// completed iterative-deepening depth.
func (e *Engine) Search(limits search.Limits, report search.ReportFunc) (move.Move, search.Report) {
	e.mu.Lock()
	pos := e.pos
	table := e.table
	cfg := e.cfg
	threads := e.threads
	stop := &atomic.Bool{}
	e.stop = stop
	e.mu.Unlock()

	pool := search.NewPool(table, cfg)
	var final search.Report
	wrapped := func(r search.Report) {
		final = r
		if report != nil {
			report(r)
		}
	}
	bestMove, score := pool.Search(pos, threads, limits, stop, wrapped)
	cp, matePlies, isMate := mateEncode(score)
	if final.Depth == 0 {
		final = search.Report{ScoreCP: cp, Mate: matePlies, IsMate: isMate}
	}
	return bestMove, final
}

// mateEncode applies spec §6's `mate ±ceil(distance/2)` external score
// encoding.
func mateEncode(raw int) (cp int, mate int, isMate bool) {
	const mateScore = 32000
	const mateMaxPly = 1024
	switch {
	case raw >= mateScore-mateMaxPly:
		dist := mateScore - raw
		return 0, (dist + 1) / 2, true
	case raw <= -(mateScore - mateMaxPly):
		dist := mateScore + raw
		return 0, -(dist + 1) / 2, true
	default:
		return raw, 0, false
	}
}

// Stop aborts any in-progress Search as soon as the next time/node
// check notices the flag.
func (e *Engine) Stop() {
	e.mu.Lock()
	stop := e.stop
	e.mu.Unlock()
	if stop != nil {
		stop.Store(true)
	}
}

// SetHashSize resizes the transposition table, discarding its contents
// (spec §6; never called mid-search by a well-behaved driver).
func (e *Engine) SetHashSize(mb int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.table.Resize(mb)
}

// SetThreads sets the number of parallel Lazy-SMP search workers.
func (e *Engine) SetThreads(n int) {
	if n < 1 {
		n = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.threads = n
}

// SetOption sets a single named tunable to value exactly as given; no
// range check or clamping is applied. Unknown names are reported but
// otherwise ignored.
func (e *Engine) SetOption(name string, value int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ok := e.cfg.SetByName(name, value)
	if !ok {
		log.Warningf("engine: unknown option %q", name)
		return fmt.Errorf("engine: unknown option %q", name)
	}
	return nil
}

// ClearHash wipes the transposition table without reallocating it.
func (e *Engine) ClearHash() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.table.Clear()
}

// NewGame resets per-game state: clears the hash table, matching spec
// §6's `new_game` ("ages TT, clears history"). Per-search history
// tables live on each search.Worker, not the Engine, so there is
// nothing further to clear here.
func (e *Engine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.table.Clear()
}

// Position returns the live position's FEN-equivalent board pointer for
// read-only inspection by a driver (e.g. to print the board).
func (e *Engine) Position() *position.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}
