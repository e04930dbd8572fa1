package search

import (
	"github.com/arbiterchess/core/eval"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
	"github.com/arbiterchess/core/position"
	"github.com/arbiterchess/core/tt"
)

// qsearch is the quiescence search (spec §4.6.4): once the main search
// bottoms out, keep resolving captures/promotions (and, while in check,
// every evasion) until the position is "quiet", so the static
// evaluator is never trusted mid-exchange.
//
// Grounded on other_examples/d8413515_algerbrex-Blunder---Pre-
// Release__core-search.go's quiescence function for the stand-pat +
// delta-pruning + capture-only generation shape.
func (w *Worker) qsearch(alpha, beta, ply int) int {
	pos := w.Position
	w.nodes.Add(1)
	if ply > w.selDepth {
		w.selDepth = ply
	}
	if w.checkTime() {
		return alpha
	}
	if pos.IsDraw() {
		return 0
	}
	if ply >= maxPly-1 {
		return pos.Evaluate()
	}

	inCheck := pos.InCheck()
	pvNode := beta-alpha > 1
	alphaOrig := alpha

	var ttMove move.Move
	hash := pos.Hash
	if e, ok := w.TT.Probe(hash); ok {
		ttMove = e.Move
		if !pvNode {
			score := tt.AdjustProbe(e.Score, ply)
			switch e.Bound {
			case tt.BoundExact:
				return score
			case tt.BoundLower:
				if score >= beta {
					return score
				}
			case tt.BoundUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	standPat := 0
	if !inCheck {
		standPat = pos.Evaluate()
		if standPat >= beta {
			w.TT.Store(tt.Entry{
				Hash: hash, Move: ttMove, Score: tt.AdjustStore(standPat, ply),
				Eval: int16(standPat), Depth: 0, Bound: tt.BoundLower,
			})
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	filter := movegen.TacticalOnly
	if inCheck {
		filter = movegen.All
	}
	var list move.List
	movegen.Generate(pos.Board, &list, filter)

	bestScore := standPat
	bestMove := move.Null
	if inCheck {
		bestScore = -tt.MateScore + ply
	}

	moved := 0
	for _, m := range orderQSearchMoves(list, ttMove) {
		if !inCheck {
			see := movegen.SEE(pos.Board, m)
			if see < 0 {
				continue
			}
			// Delta pruning: even winning the captured piece outright
			// couldn't plausibly close the gap to alpha.
			if victimValue(pos, m)+standPat+w.Cfg.QSDeltaMargin < alpha && see < 200 {
				continue
			}
		}

		undo := pos.MakeMove(m)
		moved++
		score := -w.qsearch(-beta, -alpha, ply+1)
		pos.UnmakeMove(m, undo)

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				if score >= beta {
					break
				}
			}
		}
	}

	if inCheck && moved == 0 {
		bestScore = -tt.MateScore + ply
		w.TT.Store(tt.Entry{
			Hash: hash, Move: move.Null, Score: tt.AdjustStore(bestScore, ply),
			Eval: int16(standPat), Depth: 0, Bound: tt.BoundExact,
		})
		return bestScore
	}

	bound := tt.BoundUpper
	if bestScore >= beta {
		bound = tt.BoundLower
	} else if bestScore > alphaOrig {
		bound = tt.BoundExact
	}
	w.TT.Store(tt.Entry{
		Hash: hash, Move: bestMove, Score: tt.AdjustStore(bestScore, ply),
		Eval: int16(standPat), Depth: 0, Bound: bound,
	})

	return bestScore
}

// orderQSearchMoves puts the TT move first and otherwise leaves
// MVV-ish generation order alone — quiescence nodes are numerous enough
// that a full history-based sort would cost more than it saves.
func orderQSearchMoves(list move.List, ttMove move.Move) []move.Move {
	s := list.Slice()
	if ttMove.IsNull() {
		return s
	}
	for i, m := range s {
		if m == ttMove {
			s[0], s[i] = s[i], s[0]
			break
		}
	}
	return s
}

// victimValue returns the material value of the piece m captures, or 0
// for a non-capture (a promotion with no capture).
func victimValue(pos *position.Position, m move.Move) int {
	side := pos.Board.Side
	victim := pos.Board.Squares[m.CaptureSquare(side)]
	if victim == piece.None {
		return 0
	}
	return int(eval.PieceValue[victim.Type()].EG())
}
