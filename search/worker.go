package search

import (
	"sync/atomic"
	"time"

	"github.com/arbiterchess/core/config"
	"github.com/arbiterchess/core/history"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/position"
	"github.com/arbiterchess/core/tt"
)

// Worker runs one search thread. Its Position and History are private
// to the worker (per-thread move ordering, per Lazy-SMP convention);
// only the transposition table is shared across every worker searching
// the same root, through atomic.Uint64 pairs rather than a mutex.
type Worker struct {
	ID       int
	Position *position.Position
	TT       *tt.Table
	History  *history.Tables
	Cfg      *config.Tunables

	stop  *atomic.Bool
	nodes atomic.Uint64

	pv       triangularPV
	selDepth int

	moveAt  [maxPly]move.Move
	pieceAt [maxPly]history.MoveContext
	evalAt  [maxPly]int

	start    time.Time
	softDL   time.Duration
	hardDL   time.Duration
	hasDL    bool
	nodeLim  uint64
	depthLim int
}

// NewWorker builds a worker sharing tt and a fresh private history table.
func NewWorker(id int, pos *position.Position, table *tt.Table, cfg *config.Tunables, stop *atomic.Bool) *Worker {
	return &Worker{
		ID:       id,
		Position: pos,
		TT:       table,
		History:  history.New(),
		Cfg:      cfg,
		stop:     stop,
	}
}

// Nodes returns the worker's node count so far.
func (w *Worker) Nodes() uint64 { return w.nodes.Load() }

// timeUp reports whether the hard deadline has passed or the stop flag
// was raised by another goroutine (e.g. a UCI `stop` command).
func (w *Worker) timeUp() bool {
	if w.stop.Load() {
		return true
	}
	if w.nodeLim > 0 && w.nodes.Load() >= w.nodeLim {
		return true
	}
	if w.hasDL && time.Since(w.start) >= w.hardDL {
		return true
	}
	return false
}

// checkTime is polled periodically from inside the recursive search so
// a stuck line aborts promptly instead of only at iteration boundaries.
func (w *Worker) checkTime() bool {
	interval := uint64(w.Cfg.TimeCheckInterval)
	if interval == 0 {
		interval = 2048
	}
	if w.nodes.Load()%interval != 0 {
		return false
	}
	return w.timeUp()
}

// Search runs iterative deepening with aspiration windows (spec
// §4.6.1/§4.6.2) until a limit or the stop flag fires, calling report
// after every completed iteration.
//
// Grounded on other_examples/d8413515_algerbrex-Blunder---Pre-
// Release__core-search.go's Search method for the overall "loop
// deepening, bail on time, keep the last fully-searched best move"
// shape, widened with aspiration windows and a shared-TT Lazy-SMP root
// per original_source/engine/src/search.rs's `iterative_deepening`.
func (w *Worker) Search(limits Limits, report ReportFunc) (move.Move, int) {
	w.start = time.Now()
	w.depthLim = limits.Depth
	w.nodeLim = limits.Nodes

	us := int(w.Position.Board.Side)
	soft, hard, ok := limits.deadline(us, w.Cfg.SoftTimeFraction, w.Cfg.HardTimeFraction, w.Cfg.IncrementFraction)
	w.softDL, w.hardDL, w.hasDL = soft, hard, ok

	w.History.AgeOnNewSearch()
	w.TT.NewSearch()

	maxDepth := w.depthLim
	if maxDepth <= 0 || maxDepth > maxPly-1 {
		maxDepth = maxPly - 1
	}

	var bestMove move.Move
	bestScore := 0
	score := 0

	for depth := 1; depth <= maxDepth; depth++ {
		w.selDepth = 0
		w.pv.clear(0)

		var alpha, beta int
		window := w.Cfg.AspirationBaseWindow
		if window <= 0 {
			window = 12
		}
		if depth < w.Cfg.AspirationMinDepth || depth < 4 {
			alpha, beta = -tt.MateScore, tt.MateScore
		} else {
			alpha, beta = score-window, score+window
		}

		searchDepth := depth

		for {
			score = w.negamax(alpha, beta, searchDepth, 0, false)
			if w.timeUp() && depth > 1 {
				break
			}
			if window > w.Cfg.AspirationMaxWindow && w.Cfg.AspirationMaxWindow > 0 {
				alpha, beta = -tt.MateScore, tt.MateScore
				searchDepth = depth
				score = w.negamax(alpha, beta, searchDepth, 0, false)
				break
			}
			if score <= alpha {
				alpha -= window
				if alpha < -tt.MateScore {
					alpha = -tt.MateScore
				}
				// Widening alone isn't enough to stabilise a fail-low:
				// also drop back a ply for the re-search.
				searchDepth--
				if searchDepth < 1 {
					searchDepth = 1
				}
				window *= 2
				continue
			}
			if score >= beta {
				beta += window
				if beta > tt.MateScore {
					beta = tt.MateScore
				}
				window *= 2
				continue
			}
			break
		}

		if w.timeUp() && depth > 1 {
			break
		}

		if w.pv.len[0] > 0 {
			bestMove = w.pv.line[0][0]
			bestScore = score
		}

		if report != nil {
			elapsed := time.Since(w.start)
			nodes := w.nodes.Load()
			nps := uint64(0)
			if elapsed > 0 {
				nps = uint64(float64(nodes) / elapsed.Seconds())
			}
			cp, mate, isMate := scoreToReport(bestScore)
			report(Report{
				Depth: depth, SelDepth: w.selDepth, Nodes: nodes, Time: elapsed,
				ScoreCP: cp, Mate: mate, IsMate: isMate, NPS: nps,
				HashFull: w.TT.Hashfull(), PV: append([]move.Move(nil), w.pv.Moves()...),
			})
		}

		if w.hasDL && time.Since(w.start) >= w.softDL {
			break
		}
		if w.timeUp() {
			break
		}
	}

	return bestMove, bestScore
}
