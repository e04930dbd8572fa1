package position_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
	"github.com/arbiterchess/core/position"
)

func TestMain(m *testing.M) {
	attacks.Init()
	m.Run()
}

// fromScratch asserts every incremental hash matches a fresh computation
// off the underlying board — spec's "zobrist consistency" property.
func fromScratch(t *testing.T, p *position.Position) {
	t.Helper()
	b := p.Board
	require.Equal(t, board.Hash(b), p.Hash)
	require.Equal(t, board.PawnHash(b), p.PawnHash)
	require.Equal(t, board.MaterialHash(b), p.MaterialHash)
	require.Equal(t, board.MinorHash(b), p.MinorHash)
	require.Equal(t, board.NonPawnHash(b, piece.White), p.NonPawnHash[piece.White])
	require.Equal(t, board.NonPawnHash(b, piece.Black), p.NonPawnHash[piece.Black])
}

// TestHashConsistencyThroughPlayAndUnmake plays every legal move two
// plies deep from a tactically rich position, checking full hash
// consistency after every make and restoring it exactly after every
// unmake.
func TestHashConsistencyThroughPlayAndUnmake(t *testing.T) {
	p, err := position.New("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	fromScratch(t, p)

	var walk func(depth int)
	walk = func(depth int) {
		if depth == 0 {
			return
		}
		list := p.LegalMoves(movegen.All)
		for _, m := range list.Slice() {
			beforeHash, beforePawn, beforeMat, beforeMinor := p.Hash, p.PawnHash, p.MaterialHash, p.MinorHash
			beforeNP := p.NonPawnHash

			undo := p.MakeMove(m)
			fromScratch(t, p)
			walk(depth - 1)
			p.UnmakeMove(m, undo)

			require.Equal(t, beforeHash, p.Hash)
			require.Equal(t, beforePawn, p.PawnHash)
			require.Equal(t, beforeMat, p.MaterialHash)
			require.Equal(t, beforeMinor, p.MinorHash)
			require.Equal(t, beforeNP, p.NonPawnHash)
		}
	}
	walk(2)
}

func TestInsufficientMaterial(t *testing.T) {
	testcases := []struct {
		fenStr string
		want   bool
	}{
		{"4k3/8/4K3/8/8/8/8/8 w - - 0 1", true},
		{"8/8/8/4k3/8/4K3/8/7B w - - 0 1", true},
		{"8/8/8/4k3/8/4K3/8/7N w - - 0 1", true},
		{"4k3/8/4K3/5B2/8/8/5n2/8 w - - 0 1", false},
		{"4k3/8/4K3/5B2/8/8/4b3/8 w - - 0 1", true},  // same-colored bishops
		{"4k3/8/4K3/5B2/8/8/5b2/8 w - - 0 1", false}, // opposite-colored bishops
		{"4k3/8/4K3/5P2/8/8/8/8 w - - 0 1", false},
	}

	for _, tc := range testcases {
		t.Run(tc.fenStr, func(t *testing.T) {
			p, err := position.New(tc.fenStr)
			require.NoError(t, err)
			require.Equal(t, tc.want, p.IsInsufficientMaterial())
		})
	}
}

func TestFiftyMoveDraw(t *testing.T) {
	p, err := position.New("4k3/8/4K3/8/8/8/8/8 w - - 99 50")
	require.NoError(t, err)
	require.False(t, p.IsFiftyMoveDraw())

	p2, err := position.New("4k3/8/4K3/8/8/8/8/8 w - - 100 50")
	require.NoError(t, err)
	require.True(t, p2.IsFiftyMoveDraw())
	require.True(t, p2.IsDraw())
}

func TestCheckmateMateInOne(t *testing.T) {
	// Fool's mate final position: black has just delivered mate.
	p, err := position.New("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	require.True(t, p.InCheck())
	require.True(t, p.IsCheckmate())
	require.Equal(t, piece.ResultCheckmate, p.Result())
}

func TestStalemate(t *testing.T) {
	// Classic stalemate: black king on a8 has no legal moves and is not
	// in check.
	p, err := position.New("k7/8/1Q6/8/8/8/8/1K6 b - - 0 1")
	require.NoError(t, err)
	require.False(t, p.InCheck())
	require.True(t, p.IsStalemate())
	require.Equal(t, piece.ResultStalemate, p.Result())
}
