package eval

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/piece"
)

var (
	bishopPairBonus    = S(25, 45)
	openFileRookBonus  = S(25, 10)
	semiOpenRookBonus  = S(12, 6)
	openFileQueenBonus = S(8, 5)
	connectedRookBonus = S(8, 0)
	seventhRankBonus   = S(15, 25)
	outpostKnightBonus = S(18, 8)
	outpostBishopBonus = S(10, 5)
	badBishopPenalty   = S(-4, -8)
	longDiagBishopBonus = S(12, 4)

	longDiagonals = (mainDiagA1H8() | mainDiagA8H1())
)

func mainDiagA1H8() uint64 {
	var bb uint64
	for i := 0; i < 8; i++ {
		bb |= piece.Square(i*9).Bitboard()
	}
	return bb
}

func mainDiagA8H1() uint64 {
	var bb uint64
	for i := 0; i < 8; i++ {
		bb |= piece.Square(i*8 + (7 - i)).Bitboard()
	}
	return bb
}

const darkSquares uint64 = 0xAA55AA55AA55AA55

// structuralTerms computes the remaining "cheap structural" terms that
// aren't pawn-specific or mobility-specific: bishop pair, rook/queen
// file bonuses, connected rooks, rooks/queens on the 7th, knight/bishop
// outposts, bad bishops and long-diagonal bishops.
func structuralTerms(b *board.Board, pt pawnTerms) Score {
	var score Score

	for c := piece.White; c <= piece.Black; c++ {
		if bbits.Count(b.Pieces[piece.New(piece.Bishop, c)]) >= 2 {
			score = addFor(score, c, bishopPairBonus)
		}

		seventh := bbits.Rank7
		if c == piece.Black {
			seventh = bbits.Rank2
		}
		rooks := b.Pieces[piece.New(piece.Rook, c)]
		rookSquares := rooks
		for rookSquares != 0 {
			sq := piece.Square(bbits.PopLSB(&rookSquares))
			file := sq.File()
			if fileMask[file]&(b.Pieces[piece.WhitePawn]|b.Pieces[piece.BlackPawn]) == 0 {
				score = addFor(score, c, openFileRookBonus)
			} else if fileMask[file]&b.Pieces[piece.New(piece.Pawn, c)] == 0 {
				score = addFor(score, c, semiOpenRookBonus)
			}
			if sq.Bitboard()&seventh != 0 {
				score = addFor(score, c, seventhRankBonus)
			}
		}
		if bbits.Count(rooks) == 2 {
			r1 := piece.Square(bbits.LSB(rooks))
			if attacks.RookAttacks(int(r1), b.All)&rooks != 0 {
				score = addFor(score, c, connectedRookBonus)
			}
		}

		queens := b.Pieces[piece.New(piece.Queen, c)]
		qbb := queens
		for qbb != 0 {
			sq := piece.Square(bbits.PopLSB(&qbb))
			file := sq.File()
			if fileMask[file]&(b.Pieces[piece.WhitePawn]|b.Pieces[piece.BlackPawn]) == 0 {
				score = addFor(score, c, openFileQueenBonus)
			}
			if sq.Bitboard()&seventh != 0 {
				score = addFor(score, c, seventhRankBonus)
			}
		}

		// Outposts: a minor on a square the enemy can never attack with
		// a pawn again, defended by one of our own pawns.
		enemyPawnReach := reachableBy(b.Pieces[piece.New(piece.Pawn, c.Opposite())], c.Opposite())
		ourPawnAttacks := pawnAttacksBB(b.Pieces[piece.New(piece.Pawn, c)], c)
		outpostZone := ^enemyPawnReach & ourPawnAttacks

		knights := b.Pieces[piece.New(piece.Knight, c)] & outpostZone
		score = addFor(score, c, outpostKnightBonus.MulInt(bbits.Count(knights)))
		bishopsOnOutpost := b.Pieces[piece.New(piece.Bishop, c)] & outpostZone
		score = addFor(score, c, outpostBishopBonus.MulInt(bbits.Count(bishopsOnOutpost)))

		// Bad bishop: a bishop on a color with many of the player's own
		// pawns fixed on that same color.
		bishops := b.Pieces[piece.New(piece.Bishop, c)]
		bb2 := bishops
		for bb2 != 0 {
			sq := piece.Square(bbits.PopLSB(&bb2))
			var sameColor uint64
			if sq.Bitboard()&darkSquares != 0 {
				sameColor = darkSquares
			} else {
				sameColor = ^darkSquares
			}
			fixedOwnPawns := bbits.Count(b.Pieces[piece.New(piece.Pawn, c)] & sameColor)
			if fixedOwnPawns >= 4 {
				score = addFor(score, c, badBishopPenalty.MulInt(fixedOwnPawns-3))
			}
			if sq.Bitboard()&longDiagonals != 0 {
				centerOcc := bbits.Count(attacks.BishopAttacks(int(sq), b.All) & centerFour)
				if centerOcc >= 1 {
					score = addFor(score, c, longDiagBishopBonus)
				}
			}
		}
	}

	return score
}

var centerFour = piece.D4.Bitboard() | piece.D5.Bitboard() | piece.E4.Bitboard() | piece.E5.Bitboard()

// reachableBy returns every square a pawn of color c could ever attack
// as it advances (its whole forward attack "cone"), used to test
// whether an enemy pawn could ever contest an outpost square.
func reachableBy(pawns uint64, c piece.Color) uint64 {
	var bb uint64
	p := pawns
	for p != 0 {
		sq := piece.Square(bbits.PopLSB(&p))
		bb |= passedMask[c][sq] &^ fileMask[sq.File()]
	}
	return bb
}
