package history_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/history"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/piece"
)

func TestQuietHistorySaturates(t *testing.T) {
	tbl := history.New()
	for i := 0; i < 10000; i++ {
		tbl.UpdateQuiet(piece.WhiteKnight, piece.E4, 0, history.Bonus(20), nil, nil, nil)
	}
	score := tbl.QuietScore(piece.WhiteKnight, piece.E4, 0, nil, nil, nil)
	require.LessOrEqual(t, score, history.MaxScore)
	require.Greater(t, score, int32(0))
}

func TestNegativeBonusReducesScore(t *testing.T) {
	tbl := history.New()
	tbl.UpdateQuiet(piece.WhiteKnight, piece.E4, 0, 1000, nil, nil, nil)
	before := tbl.QuietScore(piece.WhiteKnight, piece.E4, 0, nil, nil, nil)
	tbl.UpdateQuiet(piece.WhiteKnight, piece.E4, 0, -1000, nil, nil, nil)
	after := tbl.QuietScore(piece.WhiteKnight, piece.E4, 0, nil, nil, nil)
	require.Less(t, after, before)
}

func TestContinuationHistoryContributes(t *testing.T) {
	tbl := history.New()
	prev := &history.MoveContext{Piece: piece.WhiteBishop, To: piece.C4}
	tbl.UpdateQuiet(piece.WhiteKnight, piece.F3, 0, 500, prev, nil, nil)

	withPrev := tbl.QuietScore(piece.WhiteKnight, piece.F3, 0, prev, nil, nil)
	withoutPrev := tbl.QuietScore(piece.WhiteKnight, piece.F3, 0, nil, nil, nil)
	require.Greater(t, withPrev, withoutPrev)
}

func TestPly4ContinuationHistoryContributes(t *testing.T) {
	tbl := history.New()
	prev4 := &history.MoveContext{Piece: piece.BlackRook, To: piece.D6}
	tbl.UpdateQuiet(piece.WhiteKnight, piece.F3, 0, 500, nil, nil, prev4)

	withPrev4 := tbl.QuietScore(piece.WhiteKnight, piece.F3, 0, nil, nil, prev4)
	withoutPrev4 := tbl.QuietScore(piece.WhiteKnight, piece.F3, 0, nil, nil, nil)
	require.Greater(t, withPrev4, withoutPrev4)
}

func TestThreatFlagBucketsIndependently(t *testing.T) {
	tbl := history.New()
	tbl.UpdateQuiet(piece.WhiteKnight, piece.E4, 3, 1000, nil, nil, nil)
	threatened := tbl.QuietScore(piece.WhiteKnight, piece.E4, 3, nil, nil, nil)
	quiet := tbl.QuietScore(piece.WhiteKnight, piece.E4, 0, nil, nil, nil)
	require.Greater(t, threatened, int32(0))
	require.Equal(t, int32(0), quiet)
}

func TestKillersTrackTwoMostRecent(t *testing.T) {
	tbl := history.New()
	m1 := move.New(piece.E2, piece.E4, move.DoublePush)
	m2 := move.New(piece.D2, piece.D4, move.DoublePush)
	m3 := move.New(piece.G1, piece.F3, move.Quiet)

	tbl.RecordKiller(5, m1)
	tbl.RecordKiller(5, m2)
	require.True(t, tbl.IsKiller(5, m1))
	require.True(t, tbl.IsKiller(5, m2))

	tbl.RecordKiller(5, m3)
	require.True(t, tbl.IsKiller(5, m3))
	require.True(t, tbl.IsKiller(5, m2))
	require.False(t, tbl.IsKiller(5, m1))
}

func TestCountermoveRoundTrip(t *testing.T) {
	tbl := history.New()
	reply := move.New(piece.G8, piece.F6, move.Quiet)
	tbl.RecordCountermove(piece.WhiteKnight, piece.F3, reply)
	require.Equal(t, reply, tbl.CountermoveFor(piece.WhiteKnight, piece.F3))
}

func TestBonusGrowsWithDepthThenCaps(t *testing.T) {
	shallow := history.Bonus(1)
	mid := history.Bonus(10)
	deep := history.Bonus(20)
	capped := history.Bonus(30)
	require.Less(t, shallow, mid)
	require.Less(t, mid, deep)
	require.Equal(t, deep, capped)
}

func TestCorrHistMovesTowardDelta(t *testing.T) {
	var ch history.CorrHist
	hash := uint64(123456789)
	require.Equal(t, int32(0), ch.Correction(hash))

	for i := 0; i < 50; i++ {
		ch.Update(hash, 150, 50, 10)
	}
	corr := ch.Correction(hash)
	require.Greater(t, corr, int32(0))
}

func TestCorrHistClampsToMaxValue(t *testing.T) {
	var ch history.CorrHist
	hash := uint64(42)
	for i := 0; i < 1000; i++ {
		ch.Update(hash, 30000, -30000, 20)
	}
	corr := ch.Correction(hash)
	require.LessOrEqual(t, corr, int32(32))
}

func TestApplyCorrectionClampsAwayFromMate(t *testing.T) {
	got := history.ApplyCorrection(31500, 2000)
	require.LessOrEqual(t, got, 31000)
	require.GreaterOrEqual(t, got, -31000)
}
