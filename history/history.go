// Package history implements the search's move-ordering statistics:
// quiet/continuation/tactical history, killer moves, the countermove
// table, and correction history.
//
// Grounded on original_source/engine/src/history_tables/{history.rs,
// mod.rs,corrhist.rs} for the table shapes and the saturating tapered
// update formula (`bonus - current*|bonus|/MAX_HIST_SCORE`), which is
// the one subsystem with no real Go precedent in the retrieved pack
// beyond a flat killer-move array in other_examples/2c6d8292_RenWild-
// combusken__engine-search.go (used only as the secondary reference for
// keeping killers a small fixed-size per-ply array rather than a map).
package history

import (
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/piece"
)

// MaxScore is the ceiling every history entry saturates towards,
// matching history.rs's i16::MAX/2 bound.
const MaxScore int32 = 1 << 14

// Bonus computes the depth-scaled history bonus/malus applied on a beta
// cutoff or a failed quiet move, following history.rs's quadratic-with-
// linear-term-then-constant-cutoff formula.
func Bonus(depth int) int32 {
	const (
		quadratic  = 4
		linear     = 64
		constant   = 1200
		cutoffDepth = 13
	)
	if depth > cutoffDepth {
		return constant
	}
	d := int32(depth)
	lin := d - 1
	if lin < 0 {
		lin = 0
	}
	return quadratic*d*d + linear*lin
}

// update applies a tapered, saturating add: the closer *score already
// is to MaxScore in the bonus's direction, the smaller the actual
// change, so no entry can run away past the bound.
func update(score *int32, bonus int32) {
	abs := bonus
	if abs < 0 {
		abs = -abs
	}
	tapered := bonus - int32(int64(*score)*int64(abs)/int64(MaxScore))
	*score += tapered
}

// Butterfly is a [piece][to-square]-indexed quiet-move table, the
// layout history.rs documents as minimizing footprint versus a full
// from/to index, additionally split into four threat buckets (2 bits:
// source square attacked, target square attacked) so a quiet move into
// or out of an attacked square is scored independently of the same
// move played somewhere quiet.
type Butterfly [piece.Count][64][4]int32

// Get/Update are the threat-agnostic accessors the continuation and
// tactical tables use, always reading/writing threat bucket 0.
func (b *Butterfly) Get(pc piece.Piece, to piece.Square) int32 { return b.GetThreat(pc, to, 0) }
func (b *Butterfly) Update(pc piece.Piece, to piece.Square, bonus int32) {
	b.UpdateThreat(pc, to, 0, bonus)
}

// GetThreat/UpdateThreat are the full four-bucket accessors the main
// quiet table uses, keyed additionally by a 2-bit threat flag
// (bit 0: source square attacked, bit 1: target square attacked).
func (b *Butterfly) GetThreat(pc piece.Piece, to piece.Square, threat int) int32 {
	return b[pc][to][threat&3]
}
func (b *Butterfly) UpdateThreat(pc piece.Piece, to piece.Square, threat int, bonus int32) {
	update(&b[pc][to][threat&3], bonus)
}

// Tables bundles every move-ordering statistic the search driver
// consults, per position.
type Tables struct {
	Quiet        Butterfly
	Continuation [piece.Count][64]Butterfly // indexed by the previous ply's [piece][to]
	Tactical     [piece.TypeCount]Butterfly // indexed by captured piece type
	Countermove  [piece.Count][64]move.Move
	Killers      [maxPly][2]move.Move
	Pawn         CorrHist
	NonPawn      [2]CorrHist // indexed by color, the side whose non-pawn material moved
	Minor        CorrHist
	Material     CorrHist
	PrevMove     MoveCorrHist // keyed by the previous move's piece/to, not a structural hash
}

const maxPly = 128

// New returns a zero-valued table set, ready to use.
func New() *Tables { return &Tables{} }

// Clear resets every table to zero.
func (t *Tables) Clear() { *t = Tables{} }

// AgeOnNewSearch halves every quiet/continuation/tactical score rather
// than zeroing it, so move ordering from the previous search still
// informs the next one but decays over time — the common alternative to
// a full clear that original_source's History::boxed (full zero) does
// not itself implement, adopted here because spec §4.6 describes search
// as persistent across a game, not reset every move.
func (t *Tables) AgeOnNewSearch() {
	halve := func(b *Butterfly) {
		for i := range b {
			for j := range b[i] {
				for k := range b[i][j] {
					b[i][j][k] /= 2
				}
			}
		}
	}
	halve(&t.Quiet)
	for i := range t.Continuation {
		for j := range t.Continuation[i] {
			halve(&t.Continuation[i][j])
		}
	}
	for i := range t.Tactical {
		halve(&t.Tactical[i])
	}
}

// RecordKiller installs m as the newest killer at ply, shifting the
// previous first killer down, unless m is already the first killer.
func (t *Tables) RecordKiller(ply int, m move.Move) {
	if ply < 0 || ply >= maxPly {
		return
	}
	if t.Killers[ply][0] == m {
		return
	}
	t.Killers[ply][1] = t.Killers[ply][0]
	t.Killers[ply][0] = m
}

// IsKiller reports whether m is one of ply's two killer moves.
func (t *Tables) IsKiller(ply int, m move.Move) bool {
	if ply < 0 || ply >= maxPly {
		return false
	}
	return t.Killers[ply][0] == m || t.Killers[ply][1] == m
}

// RecordCountermove remembers m as the reply to the piece/to-square of
// the move played immediately before it.
func (t *Tables) RecordCountermove(prevPiece piece.Piece, prevTo piece.Square, reply move.Move) {
	t.Countermove[prevPiece][prevTo] = reply
}

// CountermoveFor looks up the stored reply to the previous move.
func (t *Tables) CountermoveFor(prevPiece piece.Piece, prevTo piece.Square) move.Move {
	return t.Countermove[prevPiece][prevTo]
}

// UpdateQuiet adds bonus to one quiet move's scores (the search passes a
// positive bonus for the move that caused the cutoff and calls it again
// with the negated bonus for every quiet tried before it), across the
// plain quiet table (keyed additionally by threat, a 2-bit
// source/target-attacked flag) and the continuation tables for the
// previous one, two, and four plies, per mod.rs's add_hist_bonus.
func (t *Tables) UpdateQuiet(pc piece.Piece, to piece.Square, threat int, bonus int32, prev1, prev2, prev4 *MoveContext) {
	t.Quiet.UpdateThreat(pc, to, threat, bonus)
	if prev1 != nil {
		t.Continuation[prev1.Piece][prev1.To].Update(pc, to, bonus)
	}
	if prev2 != nil {
		t.Continuation[prev2.Piece][prev2.To].Update(pc, to, bonus)
	}
	if prev4 != nil {
		t.Continuation[prev4.Piece][prev4.To].Update(pc, to, bonus)
	}
}

// UpdateTactical applies a bonus/malus to a capture, indexed by the
// captured piece type (tact_hist in mod.rs).
func (t *Tables) UpdateTactical(victim piece.Type, pc piece.Piece, to piece.Square, bonus int32) {
	t.Tactical[victim].Update(pc, to, bonus)
}

// QuietScore combines the plain and continuation history contributions
// for a quiet move, the move picker's ordering key. threat is the 2-bit
// source/target-attacked flag the plain quiet table is bucketed by.
// prev1/prev2/prev4 are the piece/to-square of the moves played one,
// two, and four plies earlier in this search line; any of them may be
// nil near the root.
func (t *Tables) QuietScore(pc piece.Piece, to piece.Square, threat int, prev1, prev2, prev4 *MoveContext) int32 {
	score := t.Quiet.GetThreat(pc, to, threat)
	if prev1 != nil {
		score += t.Continuation[prev1.Piece][prev1.To].Get(pc, to)
	}
	if prev2 != nil {
		score += t.Continuation[prev2.Piece][prev2.To].Get(pc, to)
	}
	if prev4 != nil {
		score += t.Continuation[prev4.Piece][prev4.To].Get(pc, to)
	}
	return score
}

// TacticalScore returns the capture-history ordering key.
func (t *Tables) TacticalScore(victim piece.Type, pc piece.Piece, to piece.Square) int32 {
	return t.Tactical[victim].Get(pc, to)
}

// MoveContext identifies the piece and destination of a move played
// earlier in the search line, used to index continuation history.
type MoveContext struct {
	Piece piece.Piece
	To    piece.Square
}
