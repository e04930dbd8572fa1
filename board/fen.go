package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arbiterchess/core/piece"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a Board from a Forsyth-Edwards Notation string. Unlike
// treepeck-chego/fen/fen.go, which panics on a malformed string (it only
// ever saw FENs it generated itself), this returns an error: a FEN can
// arrive here straight from an external UCI "position fen ..." command,
// an engine boundary spec §6 does not control.
func ParseFEN(fenStr string) (*Board, error) {
	fields := strings.Fields(fenStr)
	if len(fields) != 6 {
		return nil, fmt.Errorf("board: fen %q: want 6 fields, got %d", fenStr, len(fields))
	}

	b := New()
	if err := b.placePieces(fields[0]); err != nil {
		return nil, fmt.Errorf("board: fen %q: %w", fenStr, err)
	}

	switch fields[1] {
	case "w":
		b.Side = piece.White
	case "b":
		b.Side = piece.Black
	default:
		return nil, fmt.Errorf("board: fen %q: bad active color %q", fenStr, fields[1])
	}

	for _, c := range fields[2] {
		switch c {
		case 'K':
			b.Castling |= piece.WhiteKingside
		case 'Q':
			b.Castling |= piece.WhiteQueenside
		case 'k':
			b.Castling |= piece.BlackKingside
		case 'q':
			b.Castling |= piece.BlackQueenside
		case '-':
		default:
			return nil, fmt.Errorf("board: fen %q: bad castling field %q", fenStr, fields[2])
		}
	}

	b.EPSquare = piece.SquareFromString(fields[3])

	half, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("board: fen %q: bad halfmove field: %w", fenStr, err)
	}
	b.Halfmove = half

	full, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("board: fen %q: bad fullmove field: %w", fenStr, err)
	}
	b.Fullmove = full

	return b, nil
}

// placePieces parses the first FEN field (piece placement, rank 8 to
// rank 1) into the board's bitboards and square map.
func (b *Board) placePieces(field string) error {
	sq := 56 // a8
	for i := 0; i < len(field); i++ {
		c := field[i]
		switch {
		case c == '/':
			sq -= 16
		case c >= '1' && c <= '8':
			sq += int(c - '0')
		default:
			p, ok := piece.FromSymbol(c)
			if !ok {
				return fmt.Errorf("bad piece placement character %q", c)
			}
			if sq < 0 || sq > 63 {
				return fmt.Errorf("piece placement overruns the board")
			}
			b.place(p, piece.Square(sq))
			sq++
		}
	}
	return nil
}

// String serializes the board into a FEN string.
func (b *Board) String() string {
	var s strings.Builder
	s.Grow(64)

	s.WriteString(b.piecePlacementFEN())
	s.WriteByte(' ')
	s.WriteString(b.Side.String())
	s.WriteByte(' ')
	s.WriteString(b.Castling.String())
	s.WriteByte(' ')
	s.WriteString(b.EPSquare.String())
	s.WriteByte(' ')
	s.WriteString(strconv.Itoa(b.Halfmove))
	s.WriteByte(' ')
	s.WriteString(strconv.Itoa(b.Fullmove))
	return s.String()
}

func (b *Board) piecePlacementFEN() string {
	var out strings.Builder
	out.Grow(20)

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := piece.Square(rank*8 + file)
			p := b.Squares[sq]
			if p == piece.None {
				empty++
				continue
			}
			if empty > 0 {
				out.WriteByte('0' + byte(empty))
				empty = 0
			}
			out.WriteByte(p.Symbol())
		}
		if empty > 0 {
			out.WriteByte('0' + byte(empty))
		}
		if rank != 0 {
			out.WriteByte('/')
		}
	}
	return out.String()
}
