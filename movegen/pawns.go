package movegen

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/piece"
)

// genPawnMoves emits pushes, double pushes, captures, promotions and
// en-passant, per spec §4.2 rules 2, 4 and 6.
func genPawnMoves(b *board.Board, list *move.List, us, them piece.Color, targetMask uint64, inCheck bool, kingSq piece.Square, filter Filter) {
	forward := 8
	startRank, promoRank := 1, 7
	if us == piece.Black {
		forward = -8
		startRank, promoRank = 6, 0
	}

	pawns := b.Pieces[piece.New(piece.Pawn, us)]
	for pawns != 0 {
		from := piece.Square(bbits.PopLSB(&pawns))
		allowed := pinAllowed(b, from, kingSq)

		genPawnPushes(b, list, from, forward, startRank, promoRank, targetMask, allowed, filter)
		genPawnCaptures(b, list, from, us, them, promoRank, targetMask, allowed, filter)
	}

	if b.EPSquare != piece.NoSquare {
		genEnPassant(b, list, us, them, kingSq, inCheck)
	}
}

func genPawnPushes(b *board.Board, list *move.List, from piece.Square, forward, startRank, promoRank int, targetMask, allowed uint64, filter Filter) {
	one := piece.Square(int(from) + forward)
	if b.Squares[one] != piece.None {
		return
	}
	if one.Bitboard()&allowed&targetMask != 0 {
		if one.Rank() == promoRank {
			pushPromotions(list, from, one, false, filter)
		} else {
			emit(list, move.New(from, one, move.Quiet), filter, false)
		}
	}

	if from.Rank() != startRank {
		return
	}
	two := piece.Square(int(from) + 2*forward)
	if b.Squares[two] == piece.None && two.Bitboard()&allowed != 0 && two.Bitboard()&targetMask != 0 {
		emit(list, move.New(from, two, move.DoublePush), filter, false)
	}
}

func genPawnCaptures(b *board.Board, list *move.List, from piece.Square, us, them piece.Color, promoRank int, targetMask, allowed uint64, filter Filter) {
	targets := attacks.Pawn[us][from] & b.Occupancy[them] & allowed & targetMask
	for targets != 0 {
		to := piece.Square(bbits.PopLSB(&targets))
		if to.Rank() == promoRank {
			pushPromotions(list, from, to, true, filter)
		} else {
			emit(list, move.New(from, to, move.Capture), filter, true)
		}
	}
}

func pushPromotions(list *move.List, from, to piece.Square, isCapture bool, filter Filter) {
	for _, promo := range [...]piece.PromotionType{piece.PromoQueen, piece.PromoRook, piece.PromoBishop, piece.PromoKnight} {
		emit(list, move.NewPromotion(from, to, promo, isCapture), filter, isCapture)
	}
}

// genEnPassant handles the en-passant special case: it is legal if it
// respects the normal check/pin rules OR captures the checking pawn
// (spec §4.2 rule 2), and is additionally vetoed by a discovered check
// along the capture rank (rule 4).
func genEnPassant(b *board.Board, list *move.List, us, them piece.Color, kingSq piece.Square, inCheck bool) {
	epSq := b.EPSquare
	capturedSq := epSq - 8
	if us == piece.Black {
		capturedSq = epSq + 8
	}

	attackers := attacks.Pawn[them][epSq] & b.Pieces[piece.New(piece.Pawn, us)]
	for attackers != 0 {
		from := piece.Square(bbits.PopLSB(&attackers))

		if inCheck && b.Checkers&capturedSq.Bitboard() == 0 &&
			attacks.Between[kingSq][piece.Square(bbits.LSB(b.Checkers))]&epSq.Bitboard() == 0 {
			continue // neither captures the checking pawn nor blocks the check
		}
		if b.PinRays&from.Bitboard() != 0 && attacks.Line[kingSq][from]&epSq.Bitboard() == 0 {
			continue // pinned along a ray that doesn't include the ep square
		}
		if discoversCheck(b, from, capturedSq, kingSq, them) {
			continue
		}
		list.Push(move.New(from, epSq, move.EnPassant))
	}
}

// discoversCheck simulates removing both the capturing and captured
// pawns from the board (and placing the capturing pawn on the en-passant
// square) and checks whether an enemy rook/queen now attacks the king
// along the vacated rank — the classic en-passant pin.
func discoversCheck(b *board.Board, from, capturedSq, kingSq piece.Square, them piece.Color) bool {
	occ := b.All&^from.Bitboard()&^capturedSq.Bitboard() | b.EPSquare.Bitboard()
	rooks := b.Pieces[piece.New(piece.Rook, them)] | b.Pieces[piece.New(piece.Queen, them)]
	return attacks.RookAttacks(int(kingSq), occ)&rooks != 0
}
