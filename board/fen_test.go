package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
)

func TestParseFENRoundTrip(t *testing.T) {
	testcases := []string{
		board.StartFEN,
		"8/4p3/1PR5/8/4R3/8/4p3/8 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, fenStr := range testcases {
		t.Run(fenStr, func(t *testing.T) {
			b, err := board.ParseFEN(fenStr)
			require.NoError(t, err)
			require.Equal(t, fenStr, b.String())
		})
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	testcases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XYZx - 0 1",
	}

	for _, fenStr := range testcases {
		t.Run(fenStr, func(t *testing.T) {
			_, err := board.ParseFEN(fenStr)
			require.Error(t, err)
		})
	}
}

func TestParseFENPiecePlacement(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	require.Equal(t, uint64(0xFF00), b.Pieces[0 /* WhitePawn */])
	require.Equal(t, uint64(0xFF000000000000), b.Pieces[6 /* BlackPawn */])
	require.Equal(t, uint64(0xFFFF), b.Occupancy[0])
	require.Equal(t, uint64(0xFFFF000000000000), b.Occupancy[1])
	require.Equal(t, b.Occupancy[0]|b.Occupancy[1], b.All)
}
