package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/eval"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
)

func TestMain(m *testing.M) {
	attacks.Init()
	m.Run()
}

func evalFEN(t *testing.T, fenStr string) int {
	t.Helper()
	b, err := board.ParseFEN(fenStr)
	require.NoError(t, err)
	movegen.UpdateDerived(b)
	acc := eval.NewAccumulator(b)
	return eval.Evaluate(b, acc)
}

// TestMirrorSymmetry asserts eval(P) == eval(mirror(P)): the same
// material/structure reflected across the color line and viewed from
// the other side's perspective scores identically.
func TestMirrorSymmetry(t *testing.T) {
	cases := []struct{ a, b string }{
		{
			"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
			"rnbqkb1r/pppp1ppp/5n2/4p3/4P3/2N5/PPPP1PPP/R1BQKBNR b KQkq - 2 3",
		},
		{
			"4k3/8/8/4P3/8/8/8/4K3 w - - 0 1",
			"4k3/8/8/8/4p3/8/8/4K3 b - - 0 1",
		},
		{
			board.StartFEN,
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1",
		},
	}
	for _, tc := range cases {
		require.Equal(t, evalFEN(t, tc.a), evalFEN(t, tc.b))
	}
}

// TestMaterialDominatesOnImbalance sanity-checks sign: a side up a full
// queen should evaluate clearly positive from its own perspective.
func TestMaterialDominatesOnImbalance(t *testing.T) {
	score := evalFEN(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.Positive(t, score)

	score2 := evalFEN(t, "3qk3/8/8/8/8/8/8/4K3 b - - 0 1")
	require.Positive(t, score2)
}

// TestAccumulatorMatchesFromScratch checks that applying Accumulator.Apply
// across a move produces the same score a from-scratch rebuild would.
func TestAccumulatorMatchesFromScratch(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)
	acc := eval.NewAccumulator(b)

	from, to := piece.E2, piece.E4
	moved := b.Squares[from]
	b.MakeMove(move.New(from, to, move.DoublePush))
	acc.Apply(b, from, to, moved, moved, piece.None, to, false, 0, 0, 0)

	fresh := eval.NewAccumulator(b)
	require.Equal(t, fresh.Score, acc.Score)
	require.Equal(t, fresh.Phase, acc.Phase)
}
