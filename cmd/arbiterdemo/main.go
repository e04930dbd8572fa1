// arbiterdemo is a thin demonstration binary: it loads a FEN (or the
// starting position), runs one bounded search, and prints a UCI-style
// report line. It is not a UCI protocol loop — spec §1 names the outer
// protocol adapter an explicit Non-goal — it exists only to exercise
// engine.Engine end to end and the github.com/pkg/profile wiring.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/arbiterchess/core/engine"
	"github.com/arbiterchess/core/search"
)

func main() {
	fen := flag.String("fen", "", "FEN to search (defaults to the starting position)")
	depth := flag.Int("depth", 10, "search depth")
	moveTime := flag.Duration("movetime", 0, "fixed search time, overrides -depth")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to ./cpu.pprof")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	e := engine.New()
	if *fen != "" {
		if err := e.NewPosition(*fen); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	limits := search.Limits{Depth: *depth}
	if *moveTime > 0 {
		limits = search.Limits{MoveTime: *moveTime}
	}

	best, report := e.Search(limits, func(r search.Report) {
		fmt.Printf("info depth %d seldepth %d nodes %d time %d nps %d hashfull %d %s pv %s\n",
			r.Depth, r.SelDepth, r.Nodes, r.Time.Milliseconds(), r.NPS, r.HashFull,
			scoreString(r), pvString(r))
	})

	fmt.Printf("bestmove %s\n", best.String())
	_ = report
	_ = time.Now // reserved for a future per-move wall-clock summary
}

func scoreString(r search.Report) string {
	if r.IsMate {
		return fmt.Sprintf("score mate %d", r.Mate)
	}
	return fmt.Sprintf("score cp %d", r.ScoreCP)
}

func pvString(r search.Report) string {
	s := ""
	for i, m := range r.PV {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
