package eval

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/bbits"
	"github.com/arbiterchess/core/piece"
)

// tempoBonus rewards the side to move for having the move, tapered the
// same as every other term. Weight ported from original_source/
// simbelmyne/src/evaluate/params.rs's TEMPO_BONUS (s!(24,22)).
var tempoBonus = S(24, 22)

// Evaluate returns a static score for b from the side-to-move's point
// of view, in centipawn-ish units, combining the accumulator's cached
// material+PSQT lane with freshly computed pawn-structure, mobility,
// king-safety, threat and structural terms, tapered by game phase and
// scaled down when the material left on the board is known to be
// drawish.
//
// Grounded on original_source/engine/src/evaluate/mod.rs's top-level
// `Eval::eval` (sum every term, then taper and scale) and on
// other_examples/ef4c48ef_easychessanimations-zurichess__engine-
// material.go's `y = W_m*x*(1-p) + W_e*x*p` tapering formula, which
// Score.Lerp implements directly.
func Evaluate(b *board.Board, acc Accumulator) int {
	score := acc.Score

	pawns := [2]uint64{b.Pieces[piece.WhitePawn], b.Pieces[piece.BlackPawn]}
	pt := computePawnTerms(pawns, b.All)
	score = score.Add(pt.score)

	mob, units, attackers := mobilityTerms(b)
	score = score.Add(mob)
	score = score.Add(kingSafety(units, attackers))
	score = score.Add(threatsAndChecks(b))
	score = score.Add(structuralTerms(b, pt))
	score = score.Add(passedPawnKingDistance(b, pt))
	score = addFor(score, b.Side, tempoBonus)

	phase := acc.Phase
	if phase > MaxPhase {
		phase = MaxPhase
	}
	if phase < 0 {
		phase = 0
	}

	raw := score.Lerp(phase, MaxPhase)
	raw = raw * drawishnessScale(b) / 128

	if b.Side == piece.Black {
		return -raw
	}
	return raw
}

// passedPawnKingDistance rewards a passed pawn's owner for having their
// king close to it (it can be escorted) and the defender for having
// theirs close (it can be blockaded), plus a bonus for a free passer
// (its push square is empty) and a protected passer
// (defended by another pawn).
func passedPawnKingDistance(b *board.Board, pt pawnTerms) Score {
	var score Score
	for c := piece.White; c <= piece.Black; c++ {
		ownKing, enemyKing := b.King(c), b.King(c.Opposite())
		bb := pt.passedBB[c]
		for bb != 0 {
			sq := piece.Square(bbits.PopLSB(&bb))
			ownDist := chebyshev(sq, ownKing)
			enemyDist := chebyshev(sq, enemyKing)
			score = addFor(score, c, S(0, 5).MulInt(enemyDist))
			score = addFor(score, c, S(0, -3).MulInt(ownDist))

			pushSq := sq + 8
			if c == piece.Black {
				pushSq = sq - 8
			}
			if pushSq >= 0 && pushSq < 64 && b.All&pushSq.Bitboard() == 0 {
				score = addFor(score, c, S(4, 10))
			}
			if pawnAttacksBB(b.Pieces[piece.New(piece.Pawn, c)], c)&sq.Bitboard() != 0 {
				score = addFor(score, c, S(6, 15))
			}
		}
	}
	return score
}

func chebyshev(a, b piece.Square) int {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// drawishnessScale returns a 0..128 scaling factor that Evaluate applies
// to the whole tapered score, per the "keep 128 divisions" decision
// (DESIGN.md's Open Question record): opposite-colored bishop
// endings with no other material are the canonical drawish case, scaled
// hard down even when one side is materially "up".
func drawishnessScale(b *board.Board) int {
	wBishops := b.Pieces[piece.WhiteBishop]
	bBishops := b.Pieces[piece.BlackBishop]
	if bbits.Count(wBishops) == 1 && bbits.Count(bBishops) == 1 &&
		b.Pieces[piece.WhiteKnight] == 0 && b.Pieces[piece.BlackKnight] == 0 &&
		b.Pieces[piece.WhiteRook] == 0 && b.Pieces[piece.BlackRook] == 0 &&
		b.Pieces[piece.WhiteQueen] == 0 && b.Pieces[piece.BlackQueen] == 0 {
		wDark := wBishops&darkSquares != 0
		bDark := bBishops&darkSquares != 0
		if wDark != bDark {
			return 64 // opposite-colored bishops: halve the score
		}
	}
	totalPawns := bbits.Count(b.Pieces[piece.WhitePawn]) + bbits.Count(b.Pieces[piece.BlackPawn])
	if totalPawns == 0 {
		return 96 // pawnless endings are generally more drawish
	}
	return 128
}
