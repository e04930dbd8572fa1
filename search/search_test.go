package search_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/config"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/position"
	"github.com/arbiterchess/core/search"
	"github.com/arbiterchess/core/tt"
)

func TestMain(m *testing.M) {
	attacks.Init()
	m.Run()
}

func TestShallowSearchReturnsLegalMove(t *testing.T) {
	pos, err := position.New(board.StartFEN)
	require.NoError(t, err)

	table := tt.New(1)
	w := search.NewWorker(0, pos, table, config.Defaults(), &atomic.Bool{})
	m, _ := w.Search(search.Limits{Depth: 3}, nil)
	require.False(t, m.IsNull())

	legal := pos.LegalMoves(movegen.All)
	found := false
	for _, lm := range legal.Slice() {
		if lm == m {
			found = true
		}
	}
	require.True(t, found)
}

func TestMateInOneIsFound(t *testing.T) {
	// Classic back-rank mate: the king on g8 is boxed in by its own
	// pawns, and the rook on a1 delivers mate by moving to a8.
	pos, err := position.New("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	table := tt.New(1)
	w := search.NewWorker(0, pos, table, config.Defaults(), &atomic.Bool{})
	_, score := w.Search(search.Limits{Depth: 2}, nil)
	require.Greater(t, score, 30000)
}

func TestReportedDepthIncreasesMonotonically(t *testing.T) {
	pos, err := position.New(board.StartFEN)
	require.NoError(t, err)

	table := tt.New(1)
	w := search.NewWorker(0, pos, table, config.Defaults(), &atomic.Bool{})
	last := 0
	_, _ = w.Search(search.Limits{Depth: 3}, func(r search.Report) {
		require.Greater(t, r.Depth, last)
		last = r.Depth
	})
	require.Equal(t, 3, last)
}

func TestPoolSingleThreadMatchesWorker(t *testing.T) {
	pos, err := position.New(board.StartFEN)
	require.NoError(t, err)

	table := tt.New(1)
	pool := search.NewPool(table, config.Defaults())
	m, _ := pool.Search(pos, 1, search.Limits{Depth: 2}, nil, nil)
	require.False(t, m.IsNull())
}

func TestStopFlagHaltsSearchPromptly(t *testing.T) {
	pos, err := position.New(board.StartFEN)
	require.NoError(t, err)

	table := tt.New(1)
	stop := &atomic.Bool{}
	w := search.NewWorker(0, pos, table, config.Defaults(), stop)

	done := make(chan struct{})
	go func() {
		w.Search(search.Limits{Infinite: true}, nil)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	stop.Store(true)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop within 2s of the stop flag being set")
	}
}
