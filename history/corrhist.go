package history

import "github.com/arbiterchess/core/piece"

// CorrHistSize is the number of buckets a correction-history table is
// hashed into, matching original_source/engine/src/history_tables/
// corrhist.rs's CORRHIST_SIZE.
const CorrHistSize = 1 << 16

const (
	corrGrain    = 256
	corrMaxWeight = 256
	corrMaxValue = 32 * corrGrain
	corrMaxUpdate = corrMaxValue / 4
)

// CorrHist is a hash-indexed table of running-average eval-correction
// values, one instance per correction signal (pawn structure, non-pawn
// material per side, minor pieces, material count).
type CorrHist [CorrHistSize]int32

// index reduces a 64-bit structural hash (e.g. the position's pawn
// hash) to a table bucket via modulo, exactly as corrhist.rs's
// `Hash<T, SIZE>` index operator does.
func index(hash uint64) uint64 { return hash % CorrHistSize }

// Correction returns the current correction term for hash, already
// divided back out of its internal grain scaling.
func (c *CorrHist) Correction(hash uint64) int32 {
	return c[index(hash)] / corrGrain
}

// Update blends a new (bestScore - staticEval) sample into hash's
// entry, weighting the new sample by search depth (deeper searches are
// trusted more), clamped both per-update and overall.
func (c *CorrHist) Update(hash uint64, bestScore, staticEval int, depth int) {
	entry := &c[index(hash)]
	scaledDiff := int32(bestScore-staticEval) * corrGrain

	newWeight := int32(depth + 1)
	if newWeight > 16 {
		newWeight = 16
	}
	oldWeight := corrMaxWeight - newWeight

	updated := (*entry*oldWeight + scaledDiff*newWeight) / corrMaxWeight

	if updated > *entry+corrMaxUpdate {
		updated = *entry + corrMaxUpdate
	}
	if updated < *entry-corrMaxUpdate {
		updated = *entry - corrMaxUpdate
	}
	if updated > corrMaxValue {
		updated = corrMaxValue
	}
	if updated < -corrMaxValue {
		updated = -corrMaxValue
	}
	*entry = updated
}

// MoveCorrHist is a correction-history table indexed directly by the
// previous move's piece and destination square, rather than by a
// structural zobrist hash — the continuation-style correction signal
// corrhist.rs keys on "the previous move index" instead of board
// structure.
type MoveCorrHist [piece.Count][64]int32

// Correction returns the current correction term for the move
// identified by pc/to, already divided back out of its grain scaling.
func (c *MoveCorrHist) Correction(pc piece.Piece, to piece.Square) int32 {
	return c[pc][to] / corrGrain
}

// Update blends a new (bestScore - staticEval) sample into pc/to's
// entry, with the same depth-weighted, doubly-clamped formula
// CorrHist.Update uses.
func (c *MoveCorrHist) Update(pc piece.Piece, to piece.Square, bestScore, staticEval int, depth int) {
	entry := &c[pc][to]
	scaledDiff := int32(bestScore-staticEval) * corrGrain

	newWeight := int32(depth + 1)
	if newWeight > 16 {
		newWeight = 16
	}
	oldWeight := corrMaxWeight - newWeight

	updated := (*entry*oldWeight + scaledDiff*newWeight) / corrMaxWeight

	if updated > *entry+corrMaxUpdate {
		updated = *entry + corrMaxUpdate
	}
	if updated < *entry-corrMaxUpdate {
		updated = *entry - corrMaxUpdate
	}
	if updated > corrMaxValue {
		updated = corrMaxValue
	}
	if updated < -corrMaxValue {
		updated = -corrMaxValue
	}
	*entry = updated
}

// ApplyCorrection nudges a static eval by the blended correction terms
// from every signal the search tracks, clamping the result away from
// mate-score territory so a correction never manufactures a false mate.
func ApplyCorrection(staticEval int, corrections ...int32) int {
	total := staticEval
	for _, c := range corrections {
		total += int(c)
	}
	const evalCap = 31000
	if total > evalCap {
		total = evalCap
	}
	if total < -evalCap {
		total = -evalCap
	}
	return total
}
