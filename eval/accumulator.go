package eval

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/piece"
)

// Accumulator incrementally tracks the cheap, purely-positional part of
// the evaluation — material plus piece-square tables, and the game
// phase counter — across Board.MakeMove/UnmakeMove so Evaluate never
// has to rescan all 64 squares for these terms. Everything else
// (mobility, king safety, threats, pawn structure) is recomputed per
// call from the board's bitboards, matching SPEC_FULL.md's split
// between "cached" and "volatile" evaluation terms.
type Accumulator struct {
	Score Score
	Phase int
}

// NewAccumulator builds an accumulator from scratch by scanning the
// board once; call this only at position setup, not per move.
func NewAccumulator(b *board.Board) Accumulator {
	var a Accumulator
	for sq := piece.Square(0); sq < 64; sq++ {
		pc := b.Squares[sq]
		if pc == piece.None {
			continue
		}
		a.add(pc, sq)
	}
	return a
}

func (a *Accumulator) add(pc piece.Piece, sq piece.Square) {
	a.Score = a.Score.Add(Material(pc)).Add(PSQT(pc, sq))
	a.Phase += PhaseWeight[pc.Type()]
}

func (a *Accumulator) remove(pc piece.Piece, sq piece.Square) {
	a.Score = a.Score.Sub(Material(pc)).Sub(PSQT(pc, sq))
	a.Phase -= PhaseWeight[pc.Type()]
}

// Apply updates the accumulator for a move that has already been played
// on b (i.e. call this after board.Board.MakeMove, using the returned
// Undo for the capture info), following exactly the sequence of
// place/remove the board itself performed: remove the moving piece from
// its source, remove any captured piece, place the result (promoted
// piece or original) at the destination, and move the rook too for
// castling.
func (a *Accumulator) Apply(b *board.Board, from, to piece.Square, moved piece.Piece, result piece.Piece, captured piece.Piece, captureSquare piece.Square, isCastle bool, rookFrom, rookTo piece.Square, rook piece.Piece) {
	a.remove(moved, from)
	if captured != piece.None {
		a.remove(captured, captureSquare)
	}
	a.add(result, to)
	if isCastle {
		a.remove(rook, rookFrom)
		a.add(rook, rookTo)
	}
}

// Unapply reverses Apply with the same arguments, restoring the
// accumulator to its pre-move state.
func (a *Accumulator) Unapply(b *board.Board, from, to piece.Square, moved piece.Piece, result piece.Piece, captured piece.Piece, captureSquare piece.Square, isCastle bool, rookFrom, rookTo piece.Square, rook piece.Piece) {
	a.remove(result, to)
	if captured != piece.None {
		a.add(captured, captureSquare)
	}
	a.add(moved, from)
	if isCastle {
		a.remove(rook, rookTo)
		a.add(rook, rookFrom)
	}
}
