// Package board implements chess board state: piece placement, castling
// rights, en-passant target, move counters, and the incremental
// make/unmake of moves.
//
// Checkers/PinRays/Threats are not computed here — they depend on attack
// generation, which is package movegen's job, to avoid a board <-> movegen
// import cycle. Callers recompute them via movegen.UpdateDerived after
// every Board mutation.
//
// Grounded on treepeck-chego/types/types.go's MakeMove (the switch over
// move types and the castling-rights bookkeeping follow its structure),
// generalized to support Unmake (the teacher relies on copy-by-value
// Position structs instead; since Board is larger here — it also carries
// a square-indexed piece map for O(1) lookup, which chego's
// GetPieceFromSquare scans for — explicit unmake is cheaper than a full
// struct copy per node on the search hot path).
package board

import (
	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/piece"
)

// Board is the mutable chess position state.
type Board struct {
	Pieces    [piece.Count]uint64 // bitboard per Piece
	Occupancy [2]uint64           // bitboard per Color
	All       uint64              // Occupancy[White] | Occupancy[Black]
	Squares   [64]piece.Piece     // square -> piece, piece.None if empty

	Side     piece.Color
	Castling piece.CastlingRights
	EPSquare piece.Square
	Halfmove int
	Fullmove int

	// Derived invariants, recomputed by movegen.UpdateDerived after every
	// move so movegen and eval can read them in O(1) (spec §3).
	Checkers uint64
	PinRays  uint64
	Threats  uint64
}

// New returns an empty board (no pieces, white to move, no castling).
func New() *Board {
	b := &Board{EPSquare: piece.NoSquare}
	for i := range b.Squares {
		b.Squares[i] = piece.None
	}
	return b
}

// PieceAt returns the piece occupying sq, or piece.None.
func (b *Board) PieceAt(sq piece.Square) piece.Piece { return b.Squares[sq] }

// King returns the square of the king of the given color.
func (b *Board) King(c piece.Color) piece.Square {
	bb := b.Pieces[piece.New(piece.King, c)]
	if bb == 0 {
		return piece.NoSquare
	}
	return piece.Square(bbits.LSB(bb))
}

// place/remove maintain Pieces/Occupancy/All/Squares together; every
// mutation of the board goes through them so the derived bitboards never
// drift from the square map.
func (b *Board) place(p piece.Piece, sq piece.Square) {
	bb := sq.Bitboard()
	b.Pieces[p] |= bb
	b.Occupancy[p.Color()] |= bb
	b.All |= bb
	b.Squares[sq] = p
}

func (b *Board) remove(p piece.Piece, sq piece.Square) {
	bb := sq.Bitboard()
	b.Pieces[p] &^= bb
	b.Occupancy[p.Color()] &^= bb
	b.All &^= bb
	b.Squares[sq] = piece.None
}

func (b *Board) move(p piece.Piece, from, to piece.Square) {
	b.remove(p, from)
	b.place(p, to)
}

// Undo captures everything Board.MakeMove destroys, so UnmakeMove can
// restore the exact prior state.
type Undo struct {
	Captured      piece.Piece
	CaptureSquare piece.Square
	Castling      piece.CastlingRights
	EPSquare      piece.Square
	Halfmove      int
}

// MakeMove applies m (assumed legal) to the board and returns an Undo
// token that reverses it. It does not recompute Checkers/PinRays/Threats
// — call movegen.UpdateDerived afterwards.
func (b *Board) MakeMove(m move.Move) Undo {
	from, to := m.From(), m.To()
	moved := b.Squares[from]
	side := b.Side

	undo := Undo{
		Captured:      piece.None,
		CaptureSquare: to,
		Castling:      b.Castling,
		EPSquare:      b.EPSquare,
		Halfmove:      b.Halfmove,
	}

	b.Halfmove++

	switch {
	case m.IsCastle():
		b.move(moved, from, to)
		rookFrom, rookTo := CastleRookSquares(to)
		rook := piece.New(piece.Rook, side)
		b.move(rook, rookFrom, rookTo)

	case m.IsEnPassant():
		capSq := to
		if side == piece.White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		captured := b.Squares[capSq]
		b.remove(captured, capSq)
		b.move(moved, from, to)
		undo.Captured = captured
		undo.CaptureSquare = capSq
		b.Halfmove = 0

	case m.IsPromotion():
		if captured := b.Squares[to]; captured != piece.None {
			b.remove(captured, to)
			undo.Captured = captured
			b.Halfmove = 0
		}
		b.remove(moved, from)
		b.place(piece.New(m.PromotionPiece(), side), to)

	default: // quiet or normal capture
		if captured := b.Squares[to]; captured != piece.None {
			b.remove(captured, to)
			undo.Captured = captured
			b.Halfmove = 0
		}
		b.move(moved, from, to)
	}

	b.EPSquare = piece.NoSquare
	if moved.Type() == piece.Pawn {
		b.Halfmove = 0
		diff := int(to) - int(from)
		if diff == 16 {
			b.EPSquare = from + 8
		} else if diff == -16 {
			b.EPSquare = from - 8
		}
	}

	b.updateCastlingRights(moved, from, to, undo.Captured, undo.CaptureSquare)

	if side == piece.Black {
		b.Fullmove++
	}
	b.Side = side.Opposite()

	return undo
}

// UnmakeMove reverses the effect of MakeMove(m) given its Undo token.
func (b *Board) UnmakeMove(m move.Move, u Undo) {
	side := b.Side.Opposite()
	b.Side = side
	if side == piece.Black {
		b.Fullmove--
	}

	from, to := m.From(), m.To()

	switch {
	case m.IsCastle():
		moved := b.Squares[to]
		b.move(moved, to, from)
		rookFrom, rookTo := CastleRookSquares(to)
		rook := piece.New(piece.Rook, side)
		b.move(rook, rookTo, rookFrom)

	case m.IsEnPassant():
		moved := b.Squares[to]
		b.move(moved, to, from)
		b.place(u.Captured, u.CaptureSquare)

	case m.IsPromotion():
		b.remove(b.Squares[to], to)
		b.place(piece.New(piece.Pawn, side), from)
		if u.Captured != piece.None {
			b.place(u.Captured, u.CaptureSquare)
		}

	default:
		moved := b.Squares[to]
		b.move(moved, to, from)
		if u.Captured != piece.None {
			b.place(u.Captured, u.CaptureSquare)
		}
	}

	b.Castling = u.Castling
	b.EPSquare = u.EPSquare
	b.Halfmove = u.Halfmove
}

// CastleRookSquares returns the rook's (from, to) squares for a castle
// move, given the king's destination square.
func CastleRookSquares(kingTo piece.Square) (from, to piece.Square) {
	switch kingTo {
	case piece.G1:
		return piece.H1, piece.F1
	case piece.C1:
		return piece.A1, piece.D1
	case piece.G8:
		return piece.H8, piece.F8
	default: // piece.C8
		return piece.A8, piece.D8
	}
}

// updateCastlingRights clears rights the instant the relevant king/rook
// moves away from, or a rook is captured on, its home square — the
// invariant spec §3 describes for CastlingRights.
func (b *Board) updateCastlingRights(moved piece.Piece, from, to piece.Square, captured piece.Piece, capSq piece.Square) {
	switch moved.Type() {
	case piece.King:
		if moved.Color() == piece.White {
			b.Castling &^= piece.WhiteKingside | piece.WhiteQueenside
		} else {
			b.Castling &^= piece.BlackKingside | piece.BlackQueenside
		}
	case piece.Rook:
		b.clearRookRight(from)
	}
	if captured != piece.None && captured.Type() == piece.Rook {
		b.clearRookRight(capSq)
	}
}

func (b *Board) clearRookRight(sq piece.Square) {
	switch sq {
	case piece.A1:
		b.Castling &^= piece.WhiteQueenside
	case piece.H1:
		b.Castling &^= piece.WhiteKingside
	case piece.A8:
		b.Castling &^= piece.BlackQueenside
	case piece.H8:
		b.Castling &^= piece.BlackKingside
	}
}
