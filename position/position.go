// Package position wraps a board.Board with its incrementally maintained
// zobrist hashes and repetition history, and classifies terminal game
// results.
//
// Grounded on treepeck-chego/game/game.go (the Game wrapper's
// push/pop-move and IsThreefoldRepetition/IsInsufficientMaterial/
// IsCheckmate idiom, here folded into one combined IsDraw/Result per
// SPEC_FULL.md's supplemented "fifty-move rule" feature) and on
// original_source/chess/src/position.rs for the exact fifty-move/
// repetition interaction (the halfmove clock resets on every pawn move
// or capture, and only positions since the last reset are eligible for
// repetition comparison).
package position

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/eval"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
)

// Position is a board plus the incremental hashes the search and
// evaluator key their caches on, the repetition history needed for draw
// detection, and the eval package's incremental accumulator.
type Position struct {
	Board *board.Board
	Acc   eval.Accumulator

	Hash         uint64
	PawnHash     uint64
	NonPawnHash  [2]uint64
	MaterialHash uint64
	MinorHash    uint64

	// history holds one hash per ply since the position was constructed;
	// only the suffix since the last irreversible move (pawn push,
	// capture, castling-rights change) is relevant to repetition.
	history []uint64
}

// New builds a Position from a FEN string and computes its hashes and
// derived check/pin state from scratch.
func New(fenStr string) (*Position, error) {
	b, err := board.ParseFEN(fenStr)
	if err != nil {
		return nil, err
	}
	movegen.UpdateDerived(b)
	p := &Position{
		Board:        b,
		Acc:          eval.NewAccumulator(b),
		Hash:         board.Hash(b),
		PawnHash:     board.PawnHash(b),
		MaterialHash: board.MaterialHash(b),
		MinorHash:    board.MinorHash(b),
		history:      make([]uint64, 0, 64),
	}
	p.NonPawnHash[piece.White] = board.NonPawnHash(b, piece.White)
	p.NonPawnHash[piece.Black] = board.NonPawnHash(b, piece.Black)
	p.history = append(p.history, p.Hash)
	return p, nil
}

// Clone deep-copies the position, including its board and repetition
// history, so a caller (the search's parallel worker pool) can mutate
// the copy with MakeMove/UnmakeMove without racing the original.
func (p *Position) Clone() *Position {
	boardCopy := *p.Board
	return &Position{
		Board:        &boardCopy,
		Acc:          p.Acc,
		Hash:         p.Hash,
		PawnHash:     p.PawnHash,
		NonPawnHash:  p.NonPawnHash,
		MaterialHash: p.MaterialHash,
		MinorHash:    p.MinorHash,
		history:      append([]uint64(nil), p.history...),
	}
}

// togglePiece XORs pc@sq into every hash it is relevant to. Called twice
// with the same arguments is a no-op, which is what lets the same call
// sequence serve both MakeMove and UnmakeMove.
func (p *Position) togglePiece(pc piece.Piece, sq piece.Square) {
	key := board.PieceKey(pc, sq)
	p.Hash ^= key
	if pc.Type() == piece.Pawn {
		p.PawnHash ^= key
	} else {
		p.NonPawnHash[pc.Color()] ^= key
	}
	if pc.Type() == piece.Knight || pc.Type() == piece.Bishop {
		p.MinorHash ^= key
	}
}

// MakeMove applies m and incrementally updates every hash.
func (p *Position) MakeMove(m move.Move) board.Undo {
	b := p.Board
	from, to := m.From(), m.To()
	moved := b.Squares[from]
	side := b.Side
	materialChanges := m.IsCapture() || m.IsPromotion()

	p.Hash ^= board.EPKey(b.EPSquare)
	p.Hash ^= board.CastleKey(b.Castling)

	undo := b.MakeMove(m)

	p.togglePiece(moved, from)
	if undo.Captured != piece.None {
		p.togglePiece(undo.Captured, undo.CaptureSquare)
	}
	if m.IsCastle() {
		rookFrom, rookTo := board.CastleRookSquares(to)
		rook := piece.New(piece.Rook, side)
		p.togglePiece(rook, rookFrom)
		p.togglePiece(rook, rookTo)
	}
	result := moved
	if m.IsPromotion() {
		result = piece.New(m.PromotionPiece(), side)
	}
	p.togglePiece(result, to)

	p.Hash ^= board.EPKey(b.EPSquare)
	p.Hash ^= board.CastleKey(b.Castling)
	p.Hash ^= board.SideKey()

	if materialChanges {
		p.MaterialHash = board.MaterialHash(b)
	}

	isCastle := m.IsCastle()
	var rookFrom, rookTo piece.Square
	var rook piece.Piece
	if isCastle {
		rookFrom, rookTo = board.CastleRookSquares(to)
		rook = piece.New(piece.Rook, side)
	}
	p.Acc.Apply(b, from, to, moved, result, undo.Captured, undo.CaptureSquare, isCastle, rookFrom, rookTo, rook)

	movegen.UpdateDerived(b)

	if b.Halfmove == 0 {
		p.history = p.history[:0] // irreversible move: nothing before this can repeat
	}
	p.history = append(p.history, p.Hash)

	return undo
}

// UnmakeMove reverses MakeMove(m), given its Undo token and the
// repetition-history length captured by the caller before the matching
// MakeMove (HistoryLen / TruncateHistory).
func (p *Position) UnmakeMove(m move.Move, u board.Undo) {
	b := p.Board
	to := m.To()
	side := b.Side.Opposite()

	result := b.Squares[to]
	moved := result
	if m.IsPromotion() {
		moved = piece.New(piece.Pawn, side)
	}

	p.Hash ^= board.EPKey(b.EPSquare)
	p.Hash ^= board.CastleKey(b.Castling)

	p.togglePiece(result, to)
	if u.Captured != piece.None {
		p.togglePiece(u.Captured, u.CaptureSquare)
	}
	if m.IsCastle() {
		rookFrom, rookTo := board.CastleRookSquares(to)
		rook := piece.New(piece.Rook, side)
		p.togglePiece(rook, rookTo)
		p.togglePiece(rook, rookFrom)
	}
	p.togglePiece(moved, m.From())

	isCastle := m.IsCastle()
	var rookFrom, rookTo piece.Square
	var rook piece.Piece
	if isCastle {
		rookFrom, rookTo = board.CastleRookSquares(to)
		rook = piece.New(piece.Rook, side)
	}
	p.Acc.Unapply(b, m.From(), to, moved, result, u.Captured, u.CaptureSquare, isCastle, rookFrom, rookTo, rook)

	b.UnmakeMove(m, u)

	p.Hash ^= board.EPKey(b.EPSquare)
	p.Hash ^= board.CastleKey(b.Castling)
	p.Hash ^= board.SideKey()

	if m.IsCapture() || m.IsPromotion() {
		p.MaterialHash = board.MaterialHash(b)
	}

	movegen.UpdateDerived(b)

	if len(p.history) > 0 {
		p.history = p.history[:len(p.history)-1]
	}
}

// HistoryLen reports the current repetition-history depth.
func (p *Position) HistoryLen() int { return len(p.history) }

// TruncateHistory resets the repetition history to length n.
func (p *Position) TruncateHistory(n int) { p.history = p.history[:n] }

// PushNullHistory appends the current hash XORed with the side key,
// matching what a null move does to the zobrist hash without touching
// the board, for search code that makes/unmakes null moves directly.
func (p *Position) PushNullHistory() {
	p.Hash ^= board.SideKey()
	p.history = append(p.history, p.Hash)
}

// PopNullHistory undoes PushNullHistory.
func (p *Position) PopNullHistory() {
	p.Hash ^= board.SideKey()
	if len(p.history) > 0 {
		p.history = p.history[:len(p.history)-1]
	}
}

// MakeNullMove plays a null move for null-move pruning: no piece moves,
// only the side to move and the en-passant square change. Returns the
// prior en-passant square so UnmakeNullMove can restore it.
func (p *Position) MakeNullMove() piece.Square {
	prevEP := p.Board.EPSquare
	p.Hash ^= board.EPKey(prevEP)
	p.Board.EPSquare = piece.NoSquare
	p.PushNullHistory()
	p.Board.Side = p.Board.Side.Opposite()
	movegen.UpdateDerived(p.Board)
	return prevEP
}

// UnmakeNullMove reverses MakeNullMove given the en-passant square it returned.
func (p *Position) UnmakeNullMove(prevEP piece.Square) {
	p.Board.Side = p.Board.Side.Opposite()
	p.PopNullHistory()
	p.Board.EPSquare = prevEP
	p.Hash ^= board.EPKey(prevEP)
	movegen.UpdateDerived(p.Board)
}

// IsRepetition reports whether the current position has occurred at
// least once before in the game's history (a
// single prior repeat is enough to claim a draw search-side, matching
// how every alpha-beta search in the pack treats a 2-fold repeat as a
// terminal draw to avoid needing to see the 3rd occurrence OTB).
func (p *Position) IsRepetition() bool {
	if len(p.history) < 5 {
		return false
	}
	last := p.history[len(p.history)-1]
	for i := len(p.history) - 3; i >= 0; i -= 2 {
		if p.history[i] == last {
			return true
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether the halfmove clock has reached 100
// (fifty full moves without a pawn move or capture).
func (p *Position) IsFiftyMoveDraw() bool { return p.Board.Halfmove >= 100 }

// IsInsufficientMaterial reports whether neither side has enough force
// to deliver checkmate, per treepeck-chego/game/game.go's rule set.
func (p *Position) IsInsufficientMaterial() bool {
	b := p.Board
	if b.Pieces[piece.WhitePawn] != 0 || b.Pieces[piece.BlackPawn] != 0 {
		return false
	}
	if b.Pieces[piece.WhiteRook] != 0 || b.Pieces[piece.BlackRook] != 0 ||
		b.Pieces[piece.WhiteQueen] != 0 || b.Pieces[piece.BlackQueen] != 0 {
		return false
	}

	whiteMinors := popcount(b.Pieces[piece.WhiteKnight]) + popcount(b.Pieces[piece.WhiteBishop])
	blackMinors := popcount(b.Pieces[piece.BlackKnight]) + popcount(b.Pieces[piece.BlackBishop])

	if whiteMinors == 0 && blackMinors == 0 {
		return true // bare king vs. bare king
	}
	if whiteMinors+blackMinors == 1 {
		return true // lone minor vs. bare king
	}
	if whiteMinors == 1 && blackMinors == 1 &&
		b.Pieces[piece.WhiteKnight] == 0 && b.Pieces[piece.BlackKnight] == 0 {
		const darkSquares uint64 = 0xAA55AA55AA55AA55
		whiteDark := b.Pieces[piece.WhiteBishop]&darkSquares != 0
		blackDark := b.Pieces[piece.BlackBishop]&darkSquares != 0
		return whiteDark == blackDark // same-colored bishops
	}
	return false
}

func popcount(bb uint64) int {
	n := 0
	for bb != 0 {
		bb &= bb - 1
		n++
	}
	return n
}

// IsDraw reports any of the automatic draw conditions: fifty-move rule,
// repetition, or insufficient material.
func (p *Position) IsDraw() bool {
	return p.IsFiftyMoveDraw() || p.IsRepetition() || p.IsInsufficientMaterial()
}

// InCheck reports whether the side to move is currently in check.
func (p *Position) InCheck() bool { return p.Board.Checkers != 0 }

// LegalMoves generates every legal move for the side to move.
func (p *Position) LegalMoves(filter movegen.Filter) move.List {
	var list move.List
	movegen.Generate(p.Board, &list, filter)
	return list
}

// Evaluate returns the static evaluation of the current position, from
// the side-to-move's perspective, combining the incremental accumulator
// with the volatile terms eval.Evaluate recomputes per call.
func (p *Position) Evaluate() int { return eval.Evaluate(p.Board, p.Acc) }

// IsCheckmate reports whether the side to move has no legal moves and
// is in check.
func (p *Position) IsCheckmate() bool {
	if !p.InCheck() {
		return false
	}
	list := p.LegalMoves(movegen.All)
	return list.N == 0
}

// IsStalemate reports whether the side to move has no legal moves and
// is not in check.
func (p *Position) IsStalemate() bool {
	if p.InCheck() {
		return false
	}
	list := p.LegalMoves(movegen.All)
	return list.N == 0
}

// Result classifies the position's terminal status, or
// piece.ResultUnscored if the game is still in progress.
func (p *Position) Result() piece.Result {
	switch {
	case p.IsCheckmate():
		return piece.ResultCheckmate
	case p.IsStalemate():
		return piece.ResultStalemate
	case p.IsFiftyMoveDraw():
		return piece.ResultFiftyMove
	case p.IsRepetition():
		return piece.ResultThreefoldRepetition
	case p.IsInsufficientMaterial():
		return piece.ResultInsufficientMaterial
	default:
		return piece.ResultUnscored
	}
}
