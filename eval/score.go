// Package eval implements static position evaluation: material and
// piece-square tables, pawn structure, king safety, mobility, threats,
// and an incrementally maintained accumulator, combined via a tapered
// middlegame/endgame blend.
//
// Grounded on original_source/engine/src/evaluate/terms.rs and params.rs
// for the feature list and the `S(mg,eg)` tapered-score idiom, and on
// other_examples/ef4c48ef_easychessanimations-zurichess__engine-
// material.go for packing a score as a pair of lanes that add/subtract
// together in one arithmetic op. zurichess keeps mg/eg as two struct
// fields (`Score{M, E int32}`); here they are packed into the two
// halves of a single int32 instead (see DESIGN.md's packed-Score
// decision), so Score addition/negation stays one machine op per node
// instead of two, which matters on the accumulator's per-move hot path.
package eval

// Score packs a middlegame score in the high 16 bits and an endgame
// score in the low 16 bits of an int32, stored as mg*65536 + eg with a
// signed eg, so Score addition, subtraction and negation work as single
// int32 operations on both lanes at once as long as no lane leaves the
// int16 range (every term in this package stays well under that).
type Score int32

// S builds a Score from separate middlegame/endgame values.
func S(mg, eg int16) Score {
	return Score(int32(mg)<<16 + int32(eg))
}

// MG extracts the middlegame lane. A negative endgame lane borrows one
// from the high half, so, as in Stockfish's make_score/mg_value trick,
// 0x8000 is added before the arithmetic shift to recover the exact value.
func (s Score) MG() int16 {
	return int16((int32(s) + 0x8000) >> 16)
}

// EG extracts the endgame lane.
func (s Score) EG() int16 {
	return int16(int32(s))
}

// Add combines two scores lane-wise.
func (s Score) Add(o Score) Score { return s + o }

// Sub subtracts lane-wise.
func (s Score) Sub(o Score) Score { return s - o }

// Neg negates both lanes.
func (s Score) Neg() Score { return S(-s.MG(), -s.EG()) }

// MulInt scales both lanes by a plain integer count, used for "N of
// these" terms (mobility count, pawn count, etc).
func (s Score) MulInt(n int) Score {
	return S(s.MG()*int16(n), s.EG()*int16(n))
}

// Lerp blends the two lanes by phase, phase 0 = pure endgame, MaxPhase =
// pure middlegame, matching original_source's tapering formula.
func (s Score) Lerp(phase, maxPhase int) int {
	mg, eg := int(s.MG()), int(s.EG())
	return (mg*phase + eg*(maxPhase-phase)) / maxPhase
}
