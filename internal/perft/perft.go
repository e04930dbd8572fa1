// Package perft walks the legal move tree to a fixed depth and counts
// leaf nodes, the standard move-generator correctness check. Grounded on
// treepeck-chego/internal/perft/perft.go's recursive shape, rebuilt on
// top of the board/movegen packages (the teacher's copy referenced a
// stale pre-package-split API and its verbose-result struct was a known
// broken TODO, not carried forward).
package perft

import (
	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
)

// Count returns the number of leaf nodes reachable from b in exactly
// depth plies of strictly legal moves.
func Count(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	movegen.UpdateDerived(b)
	var list move.List
	movegen.Generate(b, &list, movegen.All)

	if depth == 1 {
		return uint64(list.N)
	}

	var nodes uint64
	for _, m := range list.Slice() {
		undo := b.MakeMove(m)
		nodes += Count(b, depth-1)
		b.UnmakeMove(m, undo)
	}
	return nodes
}

// Divide returns, for every legal move at the root, the perft count of
// the subtree it heads — the standard tool for isolating a move
// generation bug to a specific root move.
func Divide(b *board.Board, depth int) map[string]uint64 {
	movegen.UpdateDerived(b)
	var list move.List
	movegen.Generate(b, &list, movegen.All)

	out := make(map[string]uint64, list.N)
	for _, m := range list.Slice() {
		undo := b.MakeMove(m)
		out[m.String()] = Count(b, depth-1)
		b.UnmakeMove(m, undo)
	}
	return out
}
