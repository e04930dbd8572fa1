package search

import "github.com/arbiterchess/core/move"

// maxPly bounds every per-ply array the search keeps, matching
// history.maxPly so ply-indexed lookups never need a second bound check.
const maxPly = 128

// triangularPV is the classic triangular principal-variation table: row
// ply holds the PV from that ply onward, length pvLen[ply].
type triangularPV struct {
	line [maxPly][maxPly]move.Move
	len  [maxPly]int
}

func (t *triangularPV) update(ply int, m move.Move, child *triangularPV) {
	t.line[ply][0] = m
	n := child.len[ply+1]
	copy(t.line[ply][1:1+n], child.line[ply+1][:n])
	t.len[ply] = n + 1
}

func (t *triangularPV) clear(ply int) { t.len[ply] = 0 }

// Moves returns the principal variation found at the root.
func (t *triangularPV) Moves() []move.Move {
	return t.line[0][:t.len[0]]
}
