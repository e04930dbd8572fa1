// Package move implements the packed 16-bit move representation and a
// preallocated move list, grounded on treepeck-chego/types/types.go.
package move

import "github.com/arbiterchess/core/piece"

// Move packs a chess move into 16 bits:
//
//	0-5:   To (destination) square
//	6-11:  From (origin) square
//	12-13: Promotion piece (see piece.PromotionType)
//	14-15: Move type (see Type)
type Move uint16

// Type enumerates the move kinds. Quiet and Capture cover "normal" moves;
// the rest are the spec's special cases.
type Type uint8

const (
	Quiet Type = iota
	DoublePush
	KingCastle
	QueenCastle
	Capture
	EnPassant
	KnightPromo
	BishopPromo
	RookPromo
	QueenPromo
	KnightPromoCapture
	BishopPromoCapture
	RookPromoCapture
	QueenPromoCapture
)

// Null is a reserved move value distinguishable from any legal move: a
// legal move never has identical from/to squares, which Null does.
const Null Move = 0

// New builds a move from its constituent fields.
func New(from, to piece.Square, t Type) Move {
	return Move(to) | Move(from)<<6 | Move(t)<<12
}

// NewPromotion builds a promotion move (capture or not) for the given
// promotion piece type.
func NewPromotion(from, to piece.Square, promo piece.PromotionType, isCapture bool) Move {
	t := KnightPromo + Type(promo)
	if isCapture {
		t = KnightPromoCapture + Type(promo)
	}
	return New(from, to, t)
}

func (m Move) To() piece.Square   { return piece.Square(m & 0x3F) }
func (m Move) From() piece.Square { return piece.Square((m >> 6) & 0x3F) }
func (m Move) Type() Type         { return Type((m >> 12) & 0xF) }

// IsNull reports whether the move is the reserved null move.
func (m Move) IsNull() bool { return m == Null }

// IsCapture reports whether the move removes an enemy piece from the board.
func (m Move) IsCapture() bool {
	switch m.Type() {
	case Capture, EnPassant, KnightPromoCapture, BishopPromoCapture,
		RookPromoCapture, QueenPromoCapture:
		return true
	}
	return false
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Type() >= KnightPromo && m.Type() <= QueenPromoCapture
}

// IsTactical reports whether the move is a capture or a promotion — the
// two move kinds the quiescence search and the move picker's "tactical"
// stage consider.
func (m Move) IsTactical() bool { return m.IsCapture() || m.IsPromotion() }

// IsQuiet is the complement of IsTactical.
func (m Move) IsQuiet() bool { return !m.IsTactical() }

// PromotionPiece returns the piece type a promotion move produces. Only
// meaningful when IsPromotion() is true.
func (m Move) PromotionPiece() piece.Type {
	switch m.Type() {
	case KnightPromo, KnightPromoCapture:
		return piece.Knight
	case BishopPromo, BishopPromoCapture:
		return piece.Bishop
	case RookPromo, RookPromoCapture:
		return piece.Rook
	default:
		return piece.Queen
	}
}

// CaptureSquare returns the square of the piece being removed by this
// move. Equal to To() except for en-passant, where the captured pawn sits
// behind the target square.
func (m Move) CaptureSquare(side piece.Color) piece.Square {
	if m.Type() != EnPassant {
		return m.To()
	}
	if side == piece.White {
		return m.To() - 8
	}
	return m.To() + 8
}

// IsCastle reports whether the move is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	return m.Type() == KingCastle || m.Type() == QueenCastle
}

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Type() == EnPassant }

// String renders the move in long algebraic notation, e.g. "e2e4",
// "e7e8q" for promotion. Castling is rendered as the king's two-square
// move, per spec §6.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.PromotionPiece()-piece.Knight])
	}
	return s
}

// MaxMoves is the maximum number of legal moves in any reachable chess
// position (see https://www.talkchess.com/forum/viewtopic.php?t=61792).
const MaxMoves = 218

// List is a preallocated move buffer, avoiding per-node heap allocation
// in the hot move-generation path.
type List struct {
	Moves [MaxMoves]Move
	N     int
}

// Push appends a move to the list.
func (l *List) Push(m Move) {
	l.Moves[l.N] = m
	l.N++
}

// Reset empties the list for reuse.
func (l *List) Reset() { l.N = 0 }

// Slice returns the populated prefix of the backing array.
func (l *List) Slice() []Move { return l.Moves[:l.N] }

// Contains reports whether a move with the same from/to/promotion fields
// is present, used by the engine facade to validate a UCI move string
// against the legal move list.
func (l *List) Contains(from, to piece.Square, promo piece.Type) (Move, bool) {
	for i := 0; i < l.N; i++ {
		m := l.Moves[i]
		if m.From() == from && m.To() == to {
			if !m.IsPromotion() || m.PromotionPiece() == promo {
				return m, true
			}
		}
	}
	return Null, false
}
