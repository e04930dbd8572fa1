package eval

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/piece"
)

// mobilityWeight is the per-reachable-square bonus for each piece type,
// following original_source's convention of valuing minor mobility
// higher per-square than major mobility (a knight has at most 8 squares,
// a queen up to 27, so the per-square weight is scaled accordingly).
var mobilityWeight = [piece.TypeCount]Score{
	piece.Knight: S(4, 4),
	piece.Bishop: S(5, 5),
	piece.Rook:   S(3, 4),
	piece.Queen:  S(2, 3),
}

// pawnAttacksBB returns every square attacked by any pawn of color c.
func pawnAttacksBB(pawns uint64, c piece.Color) uint64 {
	if c == piece.White {
		return ((pawns &^ bbits.FileA) << 7) | ((pawns &^ bbits.FileH) << 9)
	}
	return ((pawns &^ bbits.FileA) >> 9) | ((pawns &^ bbits.FileH) >> 7)
}

// mobilityTerms evaluates piece mobility and the virtual-queen-mobility
// king-safety proxy in one board scan, returning the combined tapered
// score (white minus black) plus the per-color king-zone attacker
// weight used by kingSafety.
func mobilityTerms(b *board.Board) (score Score, kingAttackUnits [2]int, kingAttackers [2]int) {
	enemyPawnAttacks := [2]uint64{
		pawnAttacksBB(b.Pieces[piece.BlackPawn], piece.Black),
		pawnAttacksBB(b.Pieces[piece.WhitePawn], piece.White),
	}

	for c := piece.White; c <= piece.Black; c++ {
		us := c
		ownOcc := b.Occupancy[us]
		mobilityArea := ^ownOcc &^ enemyPawnAttacks[us]
		kingSq := b.King(us.Opposite())
		kingZone := attacks.King[kingSq] | kingSq.Bitboard()

		for _, t := range [4]piece.Type{piece.Knight, piece.Bishop, piece.Rook, piece.Queen} {
			bb := b.Pieces[piece.New(t, us)]
			for bb != 0 {
				sq := piece.Square(bbits.PopLSB(&bb))
				var att uint64
				switch t {
				case piece.Knight:
					att = attacks.Knight[sq]
				case piece.Bishop:
					att = attacks.BishopAttacks(int(sq), b.All)
				case piece.Rook:
					att = attacks.RookAttacks(int(sq), b.All)
				case piece.Queen:
					att = attacks.QueenAttacks(int(sq), b.All)
				}
				count := bbits.Count(att & mobilityArea)
				term := mobilityWeight[t].MulInt(count)
				score = addFor(score, us, term)

				if att&kingZone != 0 {
					kingAttackers[us]++
					kingAttackUnits[us] += bbits.Count(att & kingZone)
				}
			}
		}

		// Virtual queen mobility from the enemy king's own square: how
		// many squares a queen standing there could reach through the
		// current occupancy approximates how exposed the king is.
		vqm := bbits.Count(attacks.QueenAttacks(int(kingSq), b.All) &^ b.Occupancy[us.Opposite()])
		score = addFor(score, us.Opposite(), S(-1, 0).MulInt(vqm))
	}

	return score, kingAttackUnits, kingAttackers
}
