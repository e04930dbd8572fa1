package search

import "time"

// Limits is the union of every way a UCI `go` command can bound a
// search, per spec §4.6.6/§6. Zero/false fields mean "not specified".
type Limits struct {
	Depth     int
	Nodes     uint64
	MoveTime  time.Duration
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
	Infinite  bool
}

// deadline computes the soft and hard time budgets for the side to
// move, following original_source/engine/src/time_management.rs's
// "divide remaining time by an estimated moves-to-go, then reserve a
// fraction of the increment" formula; spec §4.6.6 names soft/hard
// bounds without fixing the arithmetic, so the fractions live in
// config.Tunables and are applied here.
func (l Limits) deadline(us int, soft, hardFraction int, incFraction int) (time.Duration, time.Duration, bool) {
	if l.MoveTime > 0 {
		return l.MoveTime, l.MoveTime, true
	}
	if l.Infinite || l.Depth > 0 || l.Nodes > 0 {
		return 0, 0, false
	}

	var remaining, inc time.Duration
	if us == 0 {
		remaining, inc = l.WTime, l.WInc
	} else {
		remaining, inc = l.BTime, l.BInc
	}
	if remaining <= 0 {
		return 0, 0, false
	}

	movesToGo := l.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}

	base := remaining / time.Duration(movesToGo)
	base += inc * time.Duration(incFraction) / 1000

	soften := base * time.Duration(soft) / 1000
	harden := base * time.Duration(hardFraction) / 1000
	if harden > remaining/2 {
		harden = remaining / 2
	}
	if soften > harden {
		soften = harden
	}
	return soften, harden, true
}
