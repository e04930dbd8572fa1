package board

import (
	"math/rand/v2"

	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/piece"
)

// Zobrist key tables. Grounded on treepeck-chego/zobrist.go's
// pieceKeys/epKeys/castlingKeys/colorKey scheme, seeded deterministically
// (treepeck-chego reseeds every process run, which is fine for its own
// repetition check but makes hash values unreproducible across runs —
// a fixed seed costs nothing and lets tests assert exact incremental vs.
// from-scratch hash equality).
var (
	pieceKey    [piece.Count][64]uint64
	epKey       [64]uint64
	castleKey   [16]uint64
	sideKey     uint64
	materialKey [piece.Count][11]uint64 // indexed by piece, piece count 0..10
)

func init() {
	rng := rand.New(rand.NewPCG(0x9E3779B97F4A7C15, 0xBF58476D1CE4E5B9))
	for p := piece.Piece(0); p < piece.Count; p++ {
		for sq := 0; sq < 64; sq++ {
			pieceKey[p][sq] = rng.Uint64()
		}
		for n := range materialKey[p] {
			materialKey[p][n] = rng.Uint64()
		}
	}
	for sq := 0; sq < 64; sq++ {
		epKey[sq] = rng.Uint64()
	}
	for i := range castleKey {
		castleKey[i] = rng.Uint64()
	}
	sideKey = rng.Uint64()
}

// Hash computes the full zobrist hash of b from scratch. Used when
// loading a FEN and to cross-check incremental updates in tests.
func Hash(b *Board) uint64 {
	var key uint64
	for p := piece.Piece(0); p < piece.Count; p++ {
		bb := b.Pieces[p]
		for bb != 0 {
			sq := bbits.PopLSB(&bb)
			key ^= pieceKey[p][sq]
		}
	}
	if b.EPSquare != piece.NoSquare {
		key ^= epKey[b.EPSquare]
	}
	key ^= castleKey[b.Castling]
	if b.Side == piece.Black {
		key ^= sideKey
	}
	return key
}

// PawnHash hashes only pawn placement (both colors), used by the
// evaluator's pawn structure cache.
func PawnHash(b *Board) uint64 {
	var key uint64
	for _, p := range [...]piece.Piece{piece.WhitePawn, piece.BlackPawn} {
		bb := b.Pieces[p]
		for bb != 0 {
			sq := bbits.PopLSB(&bb)
			key ^= pieceKey[p][sq]
		}
	}
	return key
}

// NonPawnHash hashes every piece of color c except pawns, used to key a
// per-side non-pawn material/placement cache.
func NonPawnHash(b *Board, c piece.Color) uint64 {
	var key uint64
	for t := piece.Knight; t <= piece.King; t++ {
		p := piece.New(t, c)
		bb := b.Pieces[p]
		for bb != 0 {
			sq := bbits.PopLSB(&bb)
			key ^= pieceKey[p][sq]
		}
	}
	return key
}

// MinorHash hashes knight and bishop placement (both colors), used by
// outpost/minor-piece correction history.
func MinorHash(b *Board) uint64 {
	var key uint64
	for _, t := range [...]piece.Type{piece.Knight, piece.Bishop} {
		for _, c := range [...]piece.Color{piece.White, piece.Black} {
			p := piece.New(t, c)
			bb := b.Pieces[p]
			for bb != 0 {
				sq := bbits.PopLSB(&bb)
				key ^= pieceKey[p][sq]
			}
		}
	}
	return key
}

// PieceKey returns the zobrist key for piece p standing on sq, exposed
// so package position can fold incremental hash updates into its
// MakeMove without duplicating the key tables.
func PieceKey(p piece.Piece, sq piece.Square) uint64 { return pieceKey[p][sq] }

// EPKey returns the zobrist key toggled in while sq is the en-passant
// target square.
func EPKey(sq piece.Square) uint64 {
	if sq == piece.NoSquare {
		return 0
	}
	return epKey[sq]
}

// CastleKey returns the zobrist key for a given castling-rights bitmask.
func CastleKey(c piece.CastlingRights) uint64 { return castleKey[c] }

// SideKey returns the zobrist key toggled in while black is to move.
func SideKey() uint64 { return sideKey }

// MaterialHash hashes the piece-count signature of the position
// (square-independent), used to key a material-only evaluation cache.
func MaterialHash(b *Board) uint64 {
	var key uint64
	for p := piece.Piece(0); p < piece.Count; p++ {
		n := bbits.Count(b.Pieces[p])
		if n > 10 {
			n = 10
		}
		key ^= materialKey[p][n]
	}
	return key
}
