package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbiterchess/core/board"
	"github.com/arbiterchess/core/internal/attacks"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/movegen"
	"github.com/arbiterchess/core/piece"
)

func TestMain(m *testing.M) {
	attacks.Init()
	m.Run()
}

// TestSEEWinningPawnTakesUndefendedKnight: a pawn captures a knight
// that nothing recaptures with — clear material win.
func TestSEEWinningPawnTakesUndefendedKnight(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	movegen.UpdateDerived(b)
	m := move.New(piece.E4, piece.D5, move.Capture)
	require.Greater(t, movegen.SEE(b, m), 0)
}

// TestSEELosingQueenTakesDefendedPawn: capturing a pawn defended by
// another pawn with the queen loses material.
func TestSEELosingQueenTakesDefendedPawn(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/2p5/3p4/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	movegen.UpdateDerived(b)
	m := move.New(piece.D1, piece.D5, move.Capture)
	require.Less(t, movegen.SEE(b, m), 0)
}

// TestSEEPawnTakesUndefendedPawn: a pawn captures a pawn that nothing
// recaptures, winning exactly one pawn.
func TestSEEPawnTakesUndefendedPawn(t *testing.T) {
	b, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	movegen.UpdateDerived(b)
	m := move.New(piece.E4, piece.D5, move.Capture)
	require.Equal(t, 100, movegen.SEE(b, m))
}
