package search

import (
	"github.com/arbiterchess/core/history"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
	"github.com/arbiterchess/core/tt"
)

// hasNonPawnMaterial reports whether the side to move has any piece
// other than pawns and king, the standard null-move-pruning zugzwang
// guard (original_source/engine/src/search.rs refuses NMP in pure
// king-and-pawn endings, where null moves are unsound).
func (w *Worker) hasNonPawnMaterial() bool {
	b := w.Position.Board
	c := b.Side
	return b.Occupancy[c]&^(b.Pieces[piece.New(piece.Pawn, c)]|b.Pieces[piece.New(piece.King, c)]) != 0
}

// correction blends every correction-history signal relevant to the
// current position. The fifth signal is keyed on the previous move's
// piece/to rather than a structural hash, so it needs ply to look that
// move up; it contributes nothing at the root, where there is no
// previous move in this search line.
func (w *Worker) correction(ply int) int32 {
	p := w.Position
	us := p.Board.Side
	c := w.History.Pawn.Correction(p.PawnHash) +
		w.History.NonPawn[us].Correction(p.NonPawnHash[us]) +
		w.History.Minor.Correction(p.MinorHash) +
		w.History.Material.Correction(p.MaterialHash)
	if ply >= 1 {
		prev := w.pieceAt[ply-1]
		c += w.History.PrevMove.Correction(prev.Piece, prev.To)
	}
	return c
}

// negamax is the recursive NegaMax/PVS core implementing spec §4.6.3's
// pruning and extension suite. ply counts plies from the search root;
// depth is the remaining search horizon; cutNode marks a node expected
// to fail high, which several reductions key on.
//
// Grounded on other_examples/2c6d8292_RenWild-combusken__engine-
// search.go's negamax/search split and other_examples/d8413515_
// algerbrex-Blunder---Pre-Release__core-search.go's alpha-beta loop
// shape; the individual technique formulas (RFP/NMP/LMP/FP/SEE
// pruning/history pruning/singular extension/IIR/LMR) follow
// original_source/engine/src/search.rs's corresponding functions,
// parameterized through config.Tunables since spec.md names the
// techniques without fixing their constants.
func (w *Worker) negamax(alpha, beta, depth, ply int, cutNode bool) int {
	w.pv.clear(ply)

	pos := w.Position
	pvNode := beta-alpha > 1
	rootNode := ply == 0

	if !rootNode {
		if pos.IsDraw() {
			return 0
		}
		alpha = max(alpha, -tt.MateScore+ply)
		beta = min(beta, tt.MateScore-ply-1)
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return w.qsearch(alpha, beta, ply)
	}

	w.nodes.Add(1)
	if ply > w.selDepth {
		w.selDepth = ply
	}
	if ply >= maxPly-1 {
		return pos.Evaluate()
	}
	if w.checkTime() {
		return alpha
	}

	inCheck := pos.InCheck()
	cfg := w.Cfg

	hash := pos.Hash
	var ttMove move.Move
	ttHit := false
	var ttEntry tt.Entry
	if e, ok := w.TT.Probe(hash); ok {
		ttHit = true
		ttEntry = e
		ttMove = e.Move
		if !pvNode && int(e.Depth) >= depth {
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

	staticEval := 0
	if !inCheck {
		raw := pos.Evaluate()
		staticEval = history.ApplyCorrection(raw, w.correction(ply))
		if ttHit && (ttEntry.Bound == tt.BoundExact ||
			(ttEntry.Bound == tt.BoundLower && int(ttEntry.Score) > staticEval) ||
			(ttEntry.Bound == tt.BoundUpper && int(ttEntry.Score) < staticEval)) {
			staticEval = int(ttEntry.Score)
		}
	}
	w.evalAt[ply] = staticEval
	improving := !inCheck && ply >= 2 && staticEval > w.evalAt[ply-2]

	// Internal iterative reduction: no TT move at a node we'd otherwise
	// trust deeply means the position is unexplored; shrink its depth a
	// touch rather than spending a full search feeling it out blind.
	if !ttHit && depth >= cfg.IIRThreshold && !inCheck {
		depth -= cfg.IIRReduction
		if depth <= 0 {
			return w.qsearch(alpha, beta, ply)
		}
	}

	if !pvNode && !inCheck {
		// Reverse futility pruning: if we're already comfortably above
		// beta by a depth-scaled margin, trust the static eval.
		if depth <= cfg.RFPMaxDepth && staticEval-cfg.RFPMargin*depth >= beta && staticEval < tt.MateThreshold {
			return staticEval
		}

		// Null-move pruning, with high-depth verification to avoid
		// zugzwang blunders in reduced material.
		if depth >= 3 && staticEval >= beta && w.hasNonPawnMaterial() {
			r := cfg.NMPBase + depth/max(cfg.NMPFactor, 1)
			bonus := min((staticEval-beta)/200, cfg.NMPMaxReductionBonus)
			r += max(bonus, 0)
			if r > depth-1 {
				r = depth - 1
			}
			if r >= 1 {
				prevEP := pos.MakeNullMove()
				score := -w.negamax(-beta, -beta+1, depth-1-r, ply+1, !cutNode)
				pos.UnmakeNullMove(prevEP)
				if score >= beta {
					if depth >= cfg.NMPVerificationDepth {
						verify := w.negamax(beta-1, beta, depth-1-r, ply, false)
						if verify >= beta {
							return score
						}
					} else {
						if score > tt.MateThreshold {
							score = beta
						}
						return score
					}
				}
			}
		}
	}

	var prev1, prev2, prev4 *history.MoveContext
	if ply >= 1 {
		prev1 = &w.pieceAt[ply-1]
	}
	if ply >= 2 {
		prev2 = &w.pieceAt[ply-2]
	}
	if ply >= 4 {
		prev4 = &w.pieceAt[ply-4]
	}

	picker := NewPicker(BuildPicker(pos.Board, ttMove, w.History, cfg, ply, prev1, prev2, prev4))

	bestScore := -tt.MateScore - 1
	bestMove := move.Null
	bound := tt.BoundUpper
	movesSearched := 0
	var quietsTried []move.Move

	for {
		m, isQuiet, quietIdx, ok := picker.Next()
		if !ok {
			break
		}
		if m.IsNull() {
			continue
		}

		isCapture := m.IsCapture()

		// Late move pruning: once many quiets have been tried at a
		// shallow depth with no improvement, stop generating more.
		if !pvNode && !inCheck && isQuiet && quietIdx >= 0 {
			lmpLimit := cfg.LMPBase + cfg.LMPFactor*depth*depth
			if depth <= 8 && quietIdx >= lmpLimit {
				picker.SkipQuiets()
				continue
			}
			// Futility pruning: a quiet move can't plausibly recover
			// the gap to alpha at shallow depth.
			if depth <= cfg.FPMaxDepth && staticEval+cfg.FPBase+cfg.FPMargin*depth <= alpha {
				continue
			}
			// History pruning: consistently bad-performing quiets are
			// skipped outright at shallow depth.
			if depth <= cfg.HistoryPruningMaxDepth {
				hs := w.History.QuietScore(pos.Board.Squares[m.From()], m.To(), threatFlags(pos.Board, m.From(), m.To()), prev1, prev2, prev4)
				if int(hs) < cfg.HistoryPruningMargin {
					continue
				}
			}
		}

		// SEE pruning: skip moves that lose too much material outright.
		if !pvNode && depth <= cfg.SEEMaxDepth && !inCheck {
			margin := cfg.SEETacticalMargin
			if isQuiet {
				margin = cfg.SEEQuietMargin
			}
			if see := movegen.SEE(pos.Board, m); see < margin*depth {
				continue
			}
		}

		moved := pos.Board.Squares[m.From()]
		thr := threatFlags(pos.Board, m.From(), m.To())
		w.pieceAt[ply] = history.MoveContext{Piece: moved, To: m.To()}
		w.moveAt[ply] = m

		undo := pos.MakeMove(m)
		movesSearched++

		newDepth := depth - 1

		// Singular extension: if the TT move is dramatically better than
		// every alternative, it's forced — search one ply deeper.
		extension := 0
		if m == ttMove && !rootNode && depth >= cfg.SingularMinDepth && ttHit &&
			int(ttEntry.Depth) >= depth-cfg.SingularTTDepthGap && ttEntry.Bound != tt.BoundUpper {
			singularBeta := int(ttEntry.Score) - cfg.SingularMargin*depth/16
			pos.UnmakeMove(m, undo)
			singularScore := w.negamaxExcluding(singularBeta-1, singularBeta, (depth-1)/2, ply, m)
			undo = pos.MakeMove(m)
			if singularScore < singularBeta {
				extension = 1
				if !pvNode && singularScore < singularBeta-cfg.DoubleExtMargin {
					extension = 2
				}
			} else if singularBeta >= beta {
				pos.UnmakeMove(m, undo)
				return singularBeta
			}
		}
		newDepth += extension

		var score int
		if movesSearched == 1 {
			score = -w.negamax(-beta, -alpha, newDepth, ply+1, false)
		} else {
			reduction := 0
			if depth >= cfg.LMRMinDepth && movesSearched >= cfg.LMRMinMoveCount && isQuiet && !inCheck {
				reduction = lmrTable(depth, movesSearched)
				hs := w.History.QuietScore(moved, m.To(), thr, prev1, prev2, prev4)
				reduction -= int(hs) / max(cfg.HistLMRDivisor, 1)
				if !improving {
					reduction++
				}
				if pvNode {
					reduction--
				}
				if reduction < 0 {
					reduction = 0
				}
				if reduction > newDepth-1 {
					reduction = newDepth - 1
				}
			}
			score = -w.negamax(-alpha-1, -alpha, newDepth-reduction, ply+1, true)
			if score > alpha && reduction > 0 {
				score = -w.negamax(-alpha-1, -alpha, newDepth, ply+1, !cutNode)
			}
			if score > alpha && pvNode {
				score = -w.negamax(-beta, -alpha, newDepth, ply+1, false)
			}
		}

		pos.UnmakeMove(m, undo)

		if isQuiet {
			quietsTried = append(quietsTried, m)
		}

		if w.timeUp() && !rootNode {
			return alpha
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				bound = tt.BoundExact
				w.pv.update(ply, m, &w.pv)
				if score >= beta {
					bound = tt.BoundLower
					if isQuiet {
						bonus := history.Bonus(depth)
						w.History.UpdateQuiet(moved, m.To(), thr, bonus, prev1, prev2, prev4)
						for _, q := range quietsTried[:len(quietsTried)-1] {
							qm := pos.Board.Squares[q.From()]
							qThr := threatFlags(pos.Board, q.From(), q.To())
							w.History.UpdateQuiet(qm, q.To(), qThr, -bonus, prev1, prev2, prev4)
						}
						w.History.RecordKiller(ply, m)
						if prev1 != nil {
							w.History.RecordCountermove(prev1.Piece, prev1.To, m)
						}
					} else if isCapture {
						victim := pos.Board.Squares[m.CaptureSquare(pos.Board.Side)]
						if victim != piece.None {
							w.History.UpdateTactical(victim.Type(), moved, m.To(), history.Bonus(depth))
						}
					}
					break
				}
			}
		}
	}

	if movesSearched == 0 {
		if inCheck {
			return -tt.MateScore + ply
		}
		return 0
	}

	if !inCheck && !ttHit {
		w.History.Pawn.Update(pos.PawnHash, bestScore, staticEval, depth)
		us := pos.Board.Side
		w.History.NonPawn[us].Update(pos.NonPawnHash[us], bestScore, staticEval, depth)
		w.History.Minor.Update(pos.MinorHash, bestScore, staticEval, depth)
		w.History.Material.Update(pos.MaterialHash, bestScore, staticEval, depth)
		if ply >= 1 {
			prev := w.pieceAt[ply-1]
			w.History.PrevMove.Update(prev.Piece, prev.To, bestScore, staticEval, depth)
		}
	}

	w.TT.Store(tt.Entry{
		Hash: hash, Move: bestMove, Score: tt.AdjustStore(bestScore, ply),
		Eval: int16(staticEval), Depth: uint8(depth), Bound: bound, PV: pvNode,
	})

	return bestScore
}

// negamaxExcluding runs a reduced-window search that skips excluded at
// the root move of this call, for singular-extension verification.
func (w *Worker) negamaxExcluding(alpha, beta, depth, ply int, excluded move.Move) int {
	pos := w.Position
	var list []move.Move
	picker := NewPicker(BuildPicker(pos.Board, move.Null, w.History, w.Cfg, ply, nil, nil, nil))
	for {
		m, _, _, ok := picker.Next()
		if !ok {
			break
		}
		if m == excluded {
			continue
		}
		list = append(list, m)
	}

	best := -tt.MateScore - 1
	for _, m := range list {
		undo := pos.MakeMove(m)
		score := -w.negamax(-beta, -alpha, depth, ply+1, false)
		pos.UnmakeMove(m, undo)
		if score > best {
			best = score
		}
		if best >= beta {
			break
		}
	}
	if len(list) == 0 {
		return alpha
	}
	return best
}

// lmrTable computes a late-move-reduction amount from depth and move
// index via the common logarithmic formula (reduction grows with the
// log of both depth and move count), matching the shape of
// original_source/engine/src/search.rs's precomputed LMR table without
// needing Go to precompute a 2D array at init time.
func lmrTable(depth, moveIndex int) int {
	if depth < 1 || moveIndex < 1 {
		return 0
	}
	r := 0.0
	d, m := float64(depth), float64(moveIndex)
	for d > 1 {
		d /= 2
		r += 0.5
	}
	for m > 1 {
		m /= 2
		r += 0.3
	}
	return int(r)
}

