package movegen

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/piece"
)

// seeValue is the classic rough material scale SEE itself uses (not the
// tapered eval.PieceValue table — SEE only needs a total ordering of
// piece worth, not a tapered one).
var seeValue = [piece.TypeCount]int{
	piece.Pawn: 100, piece.Knight: 320, piece.Bishop: 330,
	piece.Rook: 500, piece.Queen: 900, piece.King: 20000,
}

// SEE runs static exchange evaluation for m on b, returning the
// material swing (in seeValue units) if both sides capture on m's
// target square with their least valuable attacker first.
//
// Grounded on other_examples/2b14c265_frankkopp-FrankyGo__internal-
// search-see.go's gain-array algorithm (attackersTo + revealed x-ray
// attacks after each removal + least-valuable-attacker selection),
// cross-checked against original_source/chess/src/see.rs for the
// promotion-gain special case.
func SEE(b *board.Board, m move.Move) int {
	if m.IsEnPassant() {
		return seeValue[piece.Pawn]
	}

	to, from := m.To(), m.From()
	moved := b.Squares[from]
	side := b.Side

	var gain [32]int
	ply := 0

	captured := b.Squares[to]
	gain[0] = 0
	if captured != piece.None {
		gain[0] = seeValue[captured.Type()]
	}

	occ := b.All
	attackersAll := allAttackersTo(b, to, occ)

	cur := moved
	curFrom := from
	nextSide := side.Opposite()

	for {
		ply++
		if m.IsPromotion() && ply == 1 {
			gain[ply] = seeValue[m.PromotionPiece()] - seeValue[piece.Pawn] - gain[ply-1]
		} else {
			gain[ply] = seeValue[cur.Type()] - gain[ply-1]
		}

		if max(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		occ &^= curFrom.Bitboard()
		attackersAll &^= curFrom.Bitboard()
		attackersAll = recomputeAfterRemoval(b, to, occ, attackersAll)

		nextFrom, nextPiece, ok := leastValuableAttacker(b, attackersAll, nextSide)
		if !ok {
			break
		}
		curFrom = nextFrom
		cur = nextPiece
		nextSide = nextSide.Opposite()
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -max(-gain[ply-1], gain[ply])
		ply--
	}
	return gain[0]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// allAttackersTo returns every square occupied by a piece (of either
// color) that attacks `sq` given `occ`, used as SEE's starting set.
func allAttackersTo(b *board.Board, sq piece.Square, occ uint64) uint64 {
	var bb uint64
	bb |= attacks.Pawn[piece.Black][sq] & b.Pieces[piece.WhitePawn]
	bb |= attacks.Pawn[piece.White][sq] & b.Pieces[piece.BlackPawn]
	bb |= attacks.Knight[sq] & (b.Pieces[piece.WhiteKnight] | b.Pieces[piece.BlackKnight])
	bb |= attacks.King[sq] & (b.Pieces[piece.WhiteKing] | b.Pieces[piece.BlackKing])
	bishopAtt := attacks.BishopAttacks(int(sq), occ)
	rookAtt := attacks.RookAttacks(int(sq), occ)
	bb |= bishopAtt & (b.Pieces[piece.WhiteBishop] | b.Pieces[piece.BlackBishop] |
		b.Pieces[piece.WhiteQueen] | b.Pieces[piece.BlackQueen])
	bb |= rookAtt & (b.Pieces[piece.WhiteRook] | b.Pieces[piece.BlackRook] |
		b.Pieces[piece.WhiteQueen] | b.Pieces[piece.BlackQueen])
	return bb & occ
}

// recomputeAfterRemoval re-adds any slider attacker whose line to sq was
// blocked by the piece just removed from occ (an x-ray reveal); only
// sliders can have attacks revealed this way, so leapers need no
// recomputation.
func recomputeAfterRemoval(b *board.Board, sq piece.Square, occ uint64, attackersAll uint64) uint64 {
	bishopAtt := attacks.BishopAttacks(int(sq), occ)
	rookAtt := attacks.RookAttacks(int(sq), occ)
	sliders := bishopAtt&(b.Pieces[piece.WhiteBishop]|b.Pieces[piece.BlackBishop]|
		b.Pieces[piece.WhiteQueen]|b.Pieces[piece.BlackQueen]) |
		rookAtt&(b.Pieces[piece.WhiteRook]|b.Pieces[piece.BlackRook]|
			b.Pieces[piece.WhiteQueen]|b.Pieces[piece.BlackQueen])
	return (attackersAll | sliders) & occ
}

// leastValuableAttacker scans attackersAll for the cheapest piece
// belonging to side, in ascending value order, and returns its square.
func leastValuableAttacker(b *board.Board, attackersAll uint64, side piece.Color) (piece.Square, piece.Piece, bool) {
	for _, t := range [6]piece.Type{piece.Pawn, piece.Knight, piece.Bishop, piece.Rook, piece.Queen, piece.King} {
		pc := piece.New(t, side)
		bb := attackersAll & b.Pieces[pc]
		if bb != 0 {
			return piece.Square(bbits.LSB(bb)), pc, true
		}
	}
	return piece.NoSquare, piece.None, false
}
