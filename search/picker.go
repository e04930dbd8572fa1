// Package search implements the staged move picker, NegaMax/PVS driver
// with its pruning and extension suite, quiescence search, iterative
// deepening with aspiration windows, and UCI-style time control.
//
// Grounded on other_examples/2c6d8292_RenWild-combusken__engine-
// search.go and other_examples/d8413515_algerbrex-Blunder---Pre-
// Release__core-search.go for the overall NegaMax/PVS control-flow
// shape and the Searcher-struct-holds-everything idiom; the individual
// pruning/extension formulas and constants come from
// original_source/engine/src/search.rs and search/params.rs, since
// spec.md names the techniques by name but not their tuned constants.
package search

import (
	"sort"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/config"
	"github.com/arbiterchess/core/history"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
)

// scoredMove pairs a candidate move with its ordering key, computed
// once up front so the picker is a stable sort rather than a series of
// comparisons during iteration.
type scoredMove struct {
	m     move.Move
	score int32
}

// stageLists holds a position's legal moves already bucketed into the
// stages spec §4.5 describes: the TT move first, then good tacticals
// (SEE >= -caphist/32), then killers, the countermove, ordinary quiets
// by history, and finally bad tacticals (SEE below that) — captures that lose
// material are still searched, just last, since they can still be
// correct in some tactical lines.
type stageLists struct {
	ttMove       move.Move
	goodTactical []scoredMove
	killers      []move.Move
	countermove  move.Move
	quiets       []scoredMove
	badTactical  []scoredMove
}

// BuildPicker generates every legal move for b (respecting inCheck,
// which the caller already knows from b.Checkers) and buckets it into
// stages ready for Next to hand out one at a time.
func BuildPicker(b *board.Board, ttMove move.Move, ht *history.Tables, cfg *config.Tunables, ply int, prev1, prev2, prev4 *history.MoveContext) *stageLists {
	var list move.List
	movegen.Generate(b, &list, movegen.All)

	s := &stageLists{ttMove: ttMove}
	cm := move.Null
	if prev1 != nil {
		cm = ht.CountermoveFor(prev1.Piece, prev1.To)
	}

	for _, m := range list.Slice() {
		if m == ttMove {
			continue
		}
		if m.IsTactical() {
			see := movegen.SEE(b, m)
			victim := piece.Pawn
			if cap := b.Squares[m.CaptureSquare(b.Side)]; cap != piece.None {
				victim = cap.Type()
			}
			tacticalScore := ht.TacticalScore(victim, b.Squares[m.From()], m.To())
			score := int32(see)*int32(cfg.CapHistVictimMultiplier) + tacticalScore
			if m.IsPromotion() && m.PromotionPiece() == piece.Queen {
				score += int32(cfg.QueenPromoBonus)
			}
			// A capture whose history is unusually good can still count
			// as "good" with a mildly negative SEE, and vice versa: the
			// cutoff floats with -caphist/32 instead of sitting fixed at
			// zero.
			threshold := -tacticalScore / 32
			if int32(see) >= threshold {
				s.goodTactical = append(s.goodTactical, scoredMove{m, score})
			} else {
				s.badTactical = append(s.badTactical, scoredMove{m, score})
			}
			continue
		}
		if ht.IsKiller(ply, m) {
			s.killers = append(s.killers, m)
			continue
		}
		if m == cm {
			s.countermove = cm
			continue // surfaced separately as the countermove stage
		}
		score := ht.QuietScore(b.Squares[m.From()], m.To(), threatFlags(b, m.From(), m.To()), prev1, prev2, prev4)
		s.quiets = append(s.quiets, scoredMove{m, score})
	}

	sortDesc(s.goodTactical)
	sortDesc(s.badTactical)
	sortDesc(s.quiets)
	return s
}

// threatFlags reports whether a quiet move's source and/or destination
// square sit under enemy attack, the 2-bit key the main quiet history
// table buckets on (bit 0: source attacked, bit 1: target attacked).
func threatFlags(b *board.Board, from, to piece.Square) int {
	flags := 0
	if b.Threats&from.Bitboard() != 0 {
		flags |= 1
	}
	if b.Threats&to.Bitboard() != 0 {
		flags |= 2
	}
	return flags
}

func sortDesc(ms []scoredMove) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].score > ms[j].score })
}

// Picker walks a stageLists one move at a time, in spec §4.5's order.
type Picker struct {
	s        *stageLists
	stage    int
	idx      int
	quietsSeen int
}

func NewPicker(s *stageLists) *Picker { return &Picker{s: s} }

// SkipQuiets abandons whatever is left of the killer, countermove, and
// quiet stages and jumps straight to the bad-tactical stage. Late move
// pruning calls this once its depth-scaled quiet budget is spent and
// trying the remaining quiets is no longer worth the nodes.
func (p *Picker) SkipQuiets() {
	if p.stage < 5 {
		p.stage = 5
		p.idx = 0
	}
}

// Next returns the following move and whether it is a "late quiet" (for
// late-move-pruning/reduction decisions), or ok=false when exhausted.
func (p *Picker) Next() (m move.Move, isQuiet bool, quietIndex int, ok bool) {
	for {
		switch p.stage {
		case 0:
			p.stage++
			if !p.s.ttMove.IsNull() {
				return p.s.ttMove, false, 0, true
			}
		case 1:
			if p.idx < len(p.s.goodTactical) {
				m := p.s.goodTactical[p.idx].m
				p.idx++
				return m, false, 0, true
			}
			p.stage++
			p.idx = 0
		case 2:
			if p.idx < len(p.s.killers) {
				m := p.s.killers[p.idx]
				p.idx++
				return m, true, -1, true
			}
			p.stage++
			p.idx = 0
		case 3:
			p.stage++
			if !p.s.countermove.IsNull() {
				return p.s.countermove, true, -1, true
			}
		case 4:
			if p.idx < len(p.s.quiets) {
				m := p.s.quiets[p.idx].m
				p.idx++
				p.quietsSeen++
				return m, true, p.quietsSeen - 1, true
			}
			p.stage++
			p.idx = 0
		case 5:
			if p.idx < len(p.s.badTactical) {
				m := p.s.badTactical[p.idx].m
				p.idx++
				return m, false, 0, true
			}
			p.stage++
		default:
			return move.Null, false, 0, false
		}
	}
}
