package tt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/piece"
	"github.com/arbiterchess/core/tt"
)

func TestStoreProbeRoundTrip(t *testing.T) {
	table := tt.New(1)
	m := move.New(piece.E2, piece.E4, move.DoublePush)
	table.Store(tt.Entry{
		Hash:  0xDEADBEEF12345678,
		Move:  m,
		Score: 57,
		Eval:  40,
		Depth: 10,
		Bound: tt.BoundExact,
		PV:    true,
	})

	e, ok := table.Probe(0xDEADBEEF12345678)
	require.True(t, ok)
	require.Equal(t, m, e.Move)
	require.Equal(t, int16(57), e.Score)
	require.Equal(t, int16(40), e.Eval)
	require.Equal(t, uint8(10), e.Depth)
	require.Equal(t, tt.BoundExact, e.Bound)
	require.True(t, e.PV)
}

func TestProbeMissOnDifferentHash(t *testing.T) {
	table := tt.New(1)
	table.Store(tt.Entry{Hash: 111, Move: move.New(piece.A2, piece.A4, move.DoublePush), Depth: 3})
	_, ok := table.Probe(222)
	require.False(t, ok)
}

func TestShallowerEntryDoesNotReplaceDeeper(t *testing.T) {
	table := tt.New(1)
	m1 := move.New(piece.E2, piece.E4, move.DoublePush)
	m2 := move.New(piece.D2, piece.D4, move.DoublePush)

	table.Store(tt.Entry{Hash: 999, Move: m1, Depth: 10, Bound: tt.BoundExact})
	table.Store(tt.Entry{Hash: 999, Move: m2, Depth: 2, Bound: tt.BoundExact})

	e, ok := table.Probe(999)
	require.True(t, ok)
	require.Equal(t, m1, e.Move)
	require.Equal(t, uint8(10), e.Depth)
}

func TestNewSearchAgeAllowsReplacement(t *testing.T) {
	table := tt.New(1)
	m1 := move.New(piece.E2, piece.E4, move.DoublePush)
	m2 := move.New(piece.D2, piece.D4, move.DoublePush)

	table.Store(tt.Entry{Hash: 555, Move: m1, Depth: 10, Bound: tt.BoundExact})
	table.NewSearch()
	table.Store(tt.Entry{Hash: 555, Move: m2, Depth: 1, Bound: tt.BoundExact})

	e, ok := table.Probe(555)
	require.True(t, ok)
	require.Equal(t, m2, e.Move)
}

func TestClearEmptiesTable(t *testing.T) {
	table := tt.New(1)
	table.Store(tt.Entry{Hash: 42, Move: move.New(piece.A2, piece.A4, move.DoublePush), Depth: 5})
	table.Clear()
	_, ok := table.Probe(42)
	require.False(t, ok)
	require.Equal(t, 0, table.Hashfull())
}

func TestHashfullReflectsOccupancy(t *testing.T) {
	table := tt.New(1)
	for i := 0; i < 500; i++ {
		table.Store(tt.Entry{Hash: uint64(i + 1), Move: move.New(piece.A2, piece.A4, move.DoublePush), Depth: 1})
	}
	full := table.Hashfull()
	require.Greater(t, full, 0)
	require.LessOrEqual(t, full, 1000)
}

func TestMateScoreAdjustRoundTrips(t *testing.T) {
	stored := tt.AdjustStore(tt.MateScore-5, 3)
	require.Equal(t, tt.MateScore-5+3, int(stored))

	back := tt.AdjustProbe(stored, 3)
	require.Equal(t, tt.MateScore-5, back)
}

func TestNonMateScoreUnaffectedByPly(t *testing.T) {
	stored := tt.AdjustStore(120, 7)
	require.Equal(t, int16(120), stored)
	require.Equal(t, 120, tt.AdjustProbe(stored, 7))
}
