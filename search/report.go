package search

import (
	"time"

	"github.com/arbiterchess/core/move"
)

// Report is one iterative-deepening iteration's summary, shaped to map
// directly onto UCI's `info` fields (spec §6).
type Report struct {
	Depth    int
	SelDepth int
	Nodes    uint64
	Time     time.Duration
	ScoreCP  int  // centipawn score, meaningful when !IsMate
	Mate     int  // moves to mate (signed), meaningful when IsMate
	IsMate   bool
	NPS      uint64
	HashFull int
	PV       []move.Move
}

// ReportFunc receives one Report per completed iterative-deepening
// iteration.
type ReportFunc func(Report)

// scoreToReport classifies a raw centipawn score as a normal score or a
// "mate in N", per spec §6's UCI `score` field semantics.
func scoreToReport(raw int) (cp int, mate int, isMate bool) {
	const mateScore = 32000
	const mateMaxPly = 1024
	if raw >= mateScore-mateMaxPly {
		dist := mateScore - raw
		return 0, (dist + 1) / 2, true
	}
	if raw <= -(mateScore - mateMaxPly) {
		dist := mateScore + raw
		return 0, -(dist + 1) / 2, true
	}
	return raw, 0, false
}
