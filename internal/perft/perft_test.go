package perft_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/internal/perft"
)

func TestMain(m *testing.M) {
	attacks.Init()
	m.Run()
}

func TestPerftStartPosition(t *testing.T) {
	expected := []uint64{1, 20, 400, 8902, 197281}
	b, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	for depth, want := range expected {
		got := perft.Count(b, depth)
		require.Equalf(t, want, got, "depth %d", depth)
	}
}

// TestPerftStartPositionDeep reproduces spec's depth-6 startpos figure.
// It walks ~120M nodes and is skipped under `go test -short`.
func TestPerftStartPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	b, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)
	require.Equal(t, uint64(119060324), perft.Count(b, 6))
}

func TestPerftKiwipete(t *testing.T) {
	b, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	// Depths 1-3 are cheap and catch the vast majority of bugs; depth 4+
	// is the full confirmation and is skipped under -short.
	require.Equal(t, uint64(48), perft.Count(b, 1))
	require.Equal(t, uint64(2039), perft.Count(b, 2))
	require.Equal(t, uint64(97862), perft.Count(b, 3))

	if testing.Short() {
		t.Skip("skipping deep Kiwipete perft in short mode")
	}
	require.Equal(t, uint64(4085603), perft.Count(b, 4))
	require.Equal(t, uint64(193690690), perft.Count(b, 5))
}
