package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/piece"
)

func TestHashChangesWithSideToMove(t *testing.T) {
	white, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	black, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)

	require.NotEqual(t, board.Hash(white), board.Hash(black))
	// Side to move does not affect any of the piece-placement hashes.
	require.Equal(t, board.PawnHash(white), board.PawnHash(black))
	require.Equal(t, board.MaterialHash(white), board.MaterialHash(black))
}

func TestPawnHashIgnoresNonPawns(t *testing.T) {
	a, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	b, err := board.ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	require.Equal(t, board.PawnHash(a), board.PawnHash(b))
	require.NotEqual(t, board.MaterialHash(a), board.MaterialHash(b))
}

func TestNonPawnHashPerSide(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	white := board.NonPawnHash(b, piece.White)
	black := board.NonPawnHash(b, piece.Black)
	require.NotEqual(t, white, black)
}
