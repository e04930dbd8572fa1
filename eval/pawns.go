package eval

import (
	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/piece"
)

var fileMask [8]uint64
var adjacentFiles [8]uint64
var passedMask [2][64]uint64
var isolatedMask [8]uint64

func init() {
	for f := 0; f < 8; f++ {
		fileMask[f] = bbits.FileA << uint(f)
	}
	for f := 0; f < 8; f++ {
		var m uint64
		if f > 0 {
			m |= fileMask[f-1]
		}
		if f < 7 {
			m |= fileMask[f+1]
		}
		adjacentFiles[f] = m
		isolatedMask[f] = m
	}
	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8
		front := adjacentFiles[file] | fileMask[file]
		var wmask, bmask uint64
		for r := rank + 1; r < 8; r++ {
			wmask |= front & (bbits.Rank1 << uint(8*r))
		}
		for r := rank - 1; r >= 0; r-- {
			bmask |= front & (bbits.Rank1 << uint(8*r))
		}
		passedMask[piece.White][sq] = wmask
		passedMask[piece.Black][sq] = bmask
	}
}

// pawnTerms holds the scores computePawnTerms computes once per side,
// keyed conceptually on the pawn hash (SPEC_FULL.md's "cached" bucket —
// the caller is responsible for the actual cache; this function is the
// pure computation it would cache).
type pawnTerms struct {
	score      Score
	passedBB   [2]uint64 // passed-pawn squares, used later for king-distance terms
	semiOpen   [2]uint64 // files with no pawn of that color (structuralTerms tests files directly and does not read this)
}

var (
	doubledPenalty   = S(-5, -15)
	isolatedPenalty  = S(-10, -15)
	phalanxBonus     = S(5, 8)
	protectedBonus   = S(6, 10)
	passedByRank     = [8]Score{
		S(0, 0), S(0, 5), S(5, 10), S(10, 25), S(20, 45), S(35, 75), S(60, 120), S(0, 0),
	}
)

func computePawnTerms(pawns [2]uint64, occAll uint64) pawnTerms {
	var t pawnTerms
	for c := piece.White; c <= piece.Black; c++ {
		us, them := pawns[c], pawns[c.Opposite()]
		bb := us
		for bb != 0 {
			sq := piece.Square(bbits.PopLSB(&bb))
			file := sq.File()

			if bbits.Count(fileMask[file]&us) > 1 {
				t.score = addFor(t.score, c, doubledPenalty)
			}
			if isolatedMask[file]&us == 0 {
				t.score = addFor(t.score, c, isolatedPenalty)
			}

			rank := sq.Rank()
			relRank := rank
			if c == piece.Black {
				relRank = 7 - rank
			}
			var attacksFrom uint64
			if c == piece.White {
				attacksFrom = pawnAttackSquares(sq, piece.White)
			} else {
				attacksFrom = pawnAttackSquares(sq, piece.Black)
			}
			if attacksFrom&us != 0 {
				t.score = addFor(t.score, c, protectedBonus)
			}
			if phalanxMate(sq, us) {
				t.score = addFor(t.score, c, phalanxBonus)
			}
			if passedMask[c][sq]&them == 0 {
				t.score = addFor(t.score, c, passedByRank[relRank])
				t.passedBB[c] |= sq.Bitboard()
			}
		}
		for f := 0; f < 8; f++ {
			if fileMask[f]&us == 0 {
				t.semiOpen[c] |= fileMask[f]
			}
		}
	}
	return t
}

func addFor(s Score, c piece.Color, term Score) Score {
	if c == piece.Black {
		return s.Sub(term)
	}
	return s.Add(term)
}

func pawnAttackSquares(sq piece.Square, c piece.Color) uint64 {
	bb := sq.Bitboard()
	if c == piece.White {
		return ((bb &^ bbits.FileA) << 7) | ((bb &^ bbits.FileH) << 9)
	}
	return ((bb &^ bbits.FileA) >> 9) | ((bb &^ bbits.FileH) >> 7)
}

// phalanxMate reports whether sq has a same-color pawn directly beside
// it on the same rank, CPW's "phalanx" formation.
func phalanxMate(sq piece.Square, us uint64) bool {
	file := sq.File()
	left, right := uint64(0), uint64(0)
	if file > 0 {
		left = (sq - 1).Bitboard()
	}
	if file < 7 {
		right = (sq + 1).Bitboard()
	}
	return us&(left|right) != 0
}
