package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/piece"
)

func TestMakeMove(t *testing.T) {
	testcases := []struct {
		name     string
		fenStr   string
		expected string
		move     move.Move
	}{
		{
			"double push sets ep square",
			board.StartFEN,
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			move.New(piece.E2, piece.E4, move.DoublePush),
		},
		{
			"pawn capture",
			"rnbqkbnr/ppp1pppp/8/3p4/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1",
			"rnbqkbnr/ppp1pppp/8/3P4/2B5/5N2/PPPP1PPP/RNBQK2R b KQkq - 0 1",
			move.New(piece.E4, piece.D5, move.Capture),
		},
		{
			"black en passant",
			"rnbqkbnr/ppp1pppp/8/8/1Pp5/5N2/P1PP1PPP/RNBQK2R b KQkq b3 0 1",
			"rnbqkbnr/ppp1pppp/8/8/8/1p3N2/P1PP1PPP/RNBQK2R w KQkq - 0 2",
			move.New(piece.C4, piece.B3, move.EnPassant),
		},
		{
			"capture promotion",
			"rnbqkbnr/ppP1pppp/8/8/8/5N2/P1PP1PPP/RNBQK2R w KQkq - 0 1",
			"rRbqkbnr/pp2pppp/8/8/8/5N2/P1PP1PPP/RNBQK2R b KQkq - 0 1",
			move.NewPromotion(piece.C7, piece.B8, piece.PromoRook, true),
		},
		{
			"white kingside castle",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
			move.New(piece.E1, piece.G1, move.KingCastle),
		},
		{
			"black queenside castle",
			"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			"2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
			move.New(piece.E8, piece.C8, move.QueenCastle),
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := board.ParseFEN(tc.fenStr)
			require.NoError(t, err)

			b.MakeMove(tc.move)

			require.Equal(t, tc.expected, b.String())
		})
	}
}

func TestMakeUnmakeMoveRestoresState(t *testing.T) {
	testcases := []struct {
		name   string
		fenStr string
		move   move.Move
	}{
		{"double push", board.StartFEN, move.New(piece.D2, piece.D4, move.DoublePush)},
		{"quiet knight move", board.StartFEN, move.New(piece.G1, piece.F3, move.Quiet)},
		{
			"pawn capture",
			"rnbqkbnr/ppp1pppp/8/3p4/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1",
			move.New(piece.E4, piece.D5, move.Capture),
		},
		{
			"en passant",
			"rnbqkbnr/ppp1pppp/8/8/1Pp5/5N2/P1PP1PPP/RNBQK2R b KQkq b3 0 1",
			move.New(piece.C4, piece.B3, move.EnPassant),
		},
		{
			"capture promotion",
			"rnbqkbnr/ppP1pppp/8/8/8/5N2/P1PP1PPP/RNBQK2R w KQkq - 0 1",
			move.NewPromotion(piece.C7, piece.B8, piece.PromoRook, true),
		},
		{
			"kingside castle",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move.New(piece.E1, piece.G1, move.KingCastle),
		},
		{
			"rook move clears castling right",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move.New(piece.A1, piece.B1, move.Quiet),
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := board.ParseFEN(tc.fenStr)
			require.NoError(t, err)

			before := b.String()
			beforeHash := board.Hash(b)

			undo := b.MakeMove(tc.move)
			require.NotEqual(t, before, b.String())

			b.UnmakeMove(tc.move, undo)
			require.Equal(t, before, b.String())
			require.Equal(t, beforeHash, board.Hash(b))
		})
	}
}

func TestUpdateCastlingRightsOnRookCapture(t *testing.T) {
	b, err := board.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	require.True(t, b.Castling.Has(piece.BlackQueenside))
	require.True(t, b.Castling.Has(piece.WhiteQueenside))

	b.MakeMove(move.New(piece.A1, piece.A8, move.Capture))

	require.False(t, b.Castling.Has(piece.BlackQueenside), "capturing the a8 rook must clear black's queenside right")
	require.False(t, b.Castling.Has(piece.WhiteQueenside), "the a1 rook moving away must clear white's own queenside right")
	require.True(t, b.Castling.Has(piece.BlackKingside))
}

func TestKingSquare(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	require.Equal(t, piece.E1, b.King(piece.White))
	require.Equal(t, piece.E8, b.King(piece.Black))
}
