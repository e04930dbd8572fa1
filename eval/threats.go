package eval

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/piece"
)

// threatBonus[attacker][victim] bonuses a piece for attacking an enemy
// piece of a different, typically more valuable, type — the "threats"
// term. threatsAndChecks reads it for pawn, knight, bishop, rook and
// queen attackers against knight, bishop, rook, queen and king victims;
// pairs not set below score zero, and the king row is not read.
var threatBonus = func() [6][6]Score {
	var t [6][6]Score
	t[piece.Pawn][piece.Knight] = S(45, 35)
	t[piece.Pawn][piece.Bishop] = S(45, 40)
	t[piece.Pawn][piece.Rook] = S(65, 45)
	t[piece.Pawn][piece.Queen] = S(70, 55)
	t[piece.Knight][piece.Bishop] = S(10, 15)
	t[piece.Knight][piece.Rook] = S(30, 20)
	t[piece.Knight][piece.Queen] = S(40, 35)
	t[piece.Bishop][piece.Knight] = S(10, 15)
	t[piece.Bishop][piece.Rook] = S(30, 20)
	t[piece.Bishop][piece.Queen] = S(40, 35)
	t[piece.Rook][piece.Knight] = S(15, 10)
	t[piece.Rook][piece.Bishop] = S(15, 10)
	t[piece.Rook][piece.Queen] = S(25, 20)
	t[piece.Queen][piece.Rook] = S(8, 12)
	t[piece.King][piece.Knight] = S(10, 20)
	t[piece.King][piece.Bishop] = S(10, 20)
	t[piece.King][piece.Rook] = S(10, 20)
	t[piece.King][piece.Queen] = S(10, 20)
	return t
}()

var safeCheckBonus = [6]Score{
	piece.Knight: S(60, 30),
	piece.Bishop: S(40, 20),
	piece.Rook:   S(70, 40),
	piece.Queen:  S(80, 60),
}
var unsafeCheckBonus = [6]Score{
	piece.Knight: S(10, 5),
	piece.Bishop: S(6, 3),
	piece.Rook:   S(12, 6),
	piece.Queen:  S(14, 8),
}

// threatsAndChecks returns the combined threat-table and safe/unsafe
// check bonus, white minus black.
func threatsAndChecks(b *board.Board) Score {
	var score Score
	for c := piece.White; c <= piece.Black; c++ {
		them := c.Opposite()
		enemyOcc := b.Occupancy[them]
		kingSq := b.King(them)
		defended := attackedBy(b, them)

		for _, at := range [5]piece.Type{piece.Pawn, piece.Knight, piece.Bishop, piece.Rook, piece.Queen} {
			bb := b.Pieces[piece.New(at, c)]
			for bb != 0 {
				sq := piece.Square(bbits.PopLSB(&bb))
				var att uint64
				switch at {
				case piece.Pawn:
					att = pawnAttackSquares(sq, c)
				case piece.Knight:
					att = attacks.Knight[sq]
				case piece.Bishop:
					att = attacks.BishopAttacks(int(sq), b.All)
				case piece.Rook:
					att = attacks.RookAttacks(int(sq), b.All)
				case piece.Queen:
					att = attacks.QueenAttacks(int(sq), b.All)
				}
				for _, vt := range [5]piece.Type{piece.Knight, piece.Bishop, piece.Rook, piece.Queen, piece.King} {
					victims := att & enemyOcc & b.Pieces[piece.New(vt, them)]
					if victims != 0 {
						score = addFor(score, c, threatBonus[at][vt].MulInt(bbits.Count(victims)))
					}
				}
			}
		}

		// Safe/unsafe checking squares: squares from which a piece of
		// type t would check the enemy king, split by whether the enemy
		// defends that square.
		occWithoutKing := b.All &^ kingSq.Bitboard()
		for _, t := range [4]piece.Type{piece.Knight, piece.Bishop, piece.Rook, piece.Queen} {
			var checkSquares uint64
			switch t {
			case piece.Knight:
				checkSquares = attacks.Knight[kingSq]
			case piece.Bishop:
				checkSquares = attacks.BishopAttacks(int(kingSq), occWithoutKing)
			case piece.Rook:
				checkSquares = attacks.RookAttacks(int(kingSq), occWithoutKing)
			case piece.Queen:
				checkSquares = attacks.QueenAttacks(int(kingSq), occWithoutKing)
			}
			bb := b.Pieces[piece.New(t, c)]
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
				reach := att & checkSquares &^ b.Occupancy[c]
				if reach == 0 {
					continue
				}
				if reach&^defended != 0 {
					score = addFor(score, c, safeCheckBonus[t])
				} else {
					score = addFor(score, c, unsafeCheckBonus[t])
				}
			}
		}
	}
	return score
}

// attackedBy returns every square attacked by any piece of color c,
// king included, used to classify checking squares as safe or unsafe.
func attackedBy(b *board.Board, c piece.Color) uint64 {
	var bb uint64
	bb |= pawnAttacksBB(b.Pieces[piece.New(piece.Pawn, c)], c)
	for sq := piece.Square(0); sq < 64; sq++ {
		pc := b.Squares[sq]
		if pc == piece.None || pc.Color() != c {
			continue
		}
		switch pc.Type() {
		case piece.Knight:
			bb |= attacks.Knight[sq]
		case piece.Bishop:
			bb |= attacks.BishopAttacks(int(sq), b.All)
		case piece.Rook:
			bb |= attacks.RookAttacks(int(sq), b.All)
		case piece.Queen:
			bb |= attacks.QueenAttacks(int(sq), b.All)
		case piece.King:
			bb |= attacks.King[sq]
		}
	}
	return bb
}
