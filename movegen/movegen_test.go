package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
)

func TestStartPositionHasTwentyMoves(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)
	movegen.UpdateDerived(b)

	var list move.List
	movegen.Generate(b, &list, movegen.All)
	require.Equal(t, 20, list.N)
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// White king on e1 is attacked by both a rook on e8 and a knight on
	// d3: the only legal moves are king moves.
	b, err := board.ParseFEN("4r3/8/8/8/8/3n4/8/4K3 w - - 0 1")
	require.NoError(t, err)
	movegen.UpdateDerived(b)
	require.Equal(t, 2, popcountBits(b.Checkers))

	var list move.List
	movegen.Generate(b, &list, movegen.All)
	for _, m := range list.Slice() {
		require.Equal(t, piece.E1, m.From())
	}
}

func TestPinnedPieceCannotLeaveRay(t *testing.T) {
	// White rook on d2 is pinned to the king on d1 by a black rook on d8;
	// it may only move along the d-file.
	b, err := board.ParseFEN("3r4/8/8/8/8/8/3R4/3K4 w - - 0 1")
	require.NoError(t, err)
	movegen.UpdateDerived(b)

	var list move.List
	movegen.Generate(b, &list, movegen.All)
	for _, m := range list.Slice() {
		if m.From() == piece.D2 {
			require.Equal(t, 3, m.To().File())
		}
	}
}

func TestTacticalOnlyFilterExcludesQuiets(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	movegen.UpdateDerived(b)

	var list move.List
	movegen.Generate(b, &list, movegen.TacticalOnly)
	for _, m := range list.Slice() {
		require.True(t, m.IsTactical())
	}
	require.Greater(t, list.N, 0)
}

func TestCastlingRequiresClearSquaresAndSafety(t *testing.T) {
	b, err := board.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	movegen.UpdateDerived(b)

	var list move.List
	movegen.Generate(b, &list, movegen.All)
	found := 0
	for _, m := range list.Slice() {
		if m.IsCastle() {
			found++
		}
	}
	require.Equal(t, 2, found)
}

func popcountBits(bb uint64) int {
	n := 0
	for bb != 0 {
		bb &= bb - 1
		n++
	}
	return n
}
