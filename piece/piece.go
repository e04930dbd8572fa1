// Package piece declares the primitive chess data types shared across the
// engine: squares, colors, piece types, pieces and castling rights.
//
// It merges what the teacher project used to keep split between a `types`
// and an `enum` package (a migration-in-progress duplicate of the same
// constants) into a single source of truth.
package piece

// Square identifies one of the 64 board squares, A1=0 ... H8=63.
type Square int

// NoSquare marks the absence of a square (e.g. no en-passant target).
const NoSquare Square = -1

// File returns the file (0=a ... 7=h) of the square.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the rank (0=rank1 ... 7=rank8) of the square.
func (s Square) Rank() int { return int(s) / 8 }

// Bitboard returns the single-bit mask for the square.
func (s Square) Bitboard() uint64 { return 1 << uint(s) }

// String renders the square in algebraic notation, e.g. "e4".
func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return string([]byte{"abcdefgh"[s.File()], "12345678"[s.Rank()]})
}

// SquareFromString parses algebraic notation ("e4") into a Square.
// Returns NoSquare for "-".
func SquareFromString(str string) Square {
	if str == "-" || len(str) < 2 {
		return NoSquare
	}
	file := int(str[0] - 'a')
	rank := int(str[1] - '1')
	return Square(rank*8 + file)
}

// Named squares, used throughout tests and castling logic.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Color is the side to move or the owner of a piece.
type Color int

const (
	White Color = iota
	Black
)

// Opposite returns the other color. !White = Black and vice versa.
func (c Color) Opposite() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Type is a piece type without color.
type Type int

const (
	Pawn Type = iota
	Knight
	Bishop
	Rook
	Queen
	King
	TypeCount
)

// Piece packs a Type and a Color into a single small integer, 0..12, so it
// can index bitboard arrays directly. PieceNone is used for empty squares.
type Piece int

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	Count
	None Piece = -1
)

// New builds a Piece from a Type and a Color.
func New(t Type, c Color) Piece {
	if c == White {
		return Piece(t)
	}
	return Piece(t) + 6
}

// Type returns the piece type, ignoring color.
func (p Piece) Type() Type { return Type(p % 6) }

// Color returns the owning side of the piece.
func (p Piece) Color() Color {
	if p < 6 {
		return White
	}
	return Black
}

// symbols is indexed by Piece and used for FEN/UCI text rendering.
var symbols = [...]byte{'P', 'N', 'B', 'R', 'Q', 'K', 'p', 'n', 'b', 'r', 'q', 'k'}

// Symbol returns the FEN character for the piece.
func (p Piece) Symbol() byte {
	if p == None {
		return '.'
	}
	return symbols[p]
}

// FromSymbol parses a FEN piece letter. Returns (None, false) if unknown.
func FromSymbol(c byte) (Piece, bool) {
	for i, s := range symbols {
		if s == c {
			return Piece(i), true
		}
	}
	return None, false
}

// PromotionType maps the 2-bit move encoding to a piece type.
type PromotionType int

const (
	PromoKnight PromotionType = iota
	PromoBishop
	PromoRook
	PromoQueen
)

// Type converts a PromotionType into the corresponding piece Type.
func (pt PromotionType) Type() Type { return Type(int(pt) + 1) }

// CastlingRights packs the four castling permissions into 4 bits.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling CastlingRights = 0
	AllCastling CastlingRights = WhiteKingside | WhiteQueenside |
		BlackKingside | BlackQueenside
)

// Has reports whether the given right is set.
func (c CastlingRights) Has(r CastlingRights) bool { return c&r != 0 }

// String renders castling rights in FEN form (e.g. "KQkq" or "-").
func (c CastlingRights) String() string {
	if c == NoCastling {
		return "-"
	}
	var b [4]byte
	n := 0
	if c.Has(WhiteKingside) {
		b[n] = 'K'
		n++
	}
	if c.Has(WhiteQueenside) {
		b[n] = 'Q'
		n++
	}
	if c.Has(BlackKingside) {
		b[n] = 'k'
		n++
	}
	if c.Has(BlackQueenside) {
		b[n] = 'q'
		n++
	}
	return string(b[:n])
}

// Result enumerates the terminal outcomes of a game, used by the engine
// facade rather than by the search (which only ever needs win/draw/loss
// scores, not the reason behind them).
type Result int

const (
	ResultUnscored Result = iota
	ResultCheckmate
	ResultStalemate
	ResultInsufficientMaterial
	ResultFiftyMove
	ResultThreefoldRepetition
)
