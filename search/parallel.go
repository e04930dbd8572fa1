package search

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/arbiterchess/core/config"
	"github.com/arbiterchess/core/move"
	"github.com/arbiterchess/core/position"
	"github.com/arbiterchess/core/tt"
)

// Pool runs several Lazy-SMP workers against one shared transposition
// table, spec §5's "parallel workers, shared hash table, no other
// synchronization" design.
//
// Grounded on frankkopp-FrankyGo's worker-pool shape for concurrent
// search (other_examples/2b14c265_frankkopp-FrankyGo__internal-
// search-see.go's package sits in the same search/ directory as
// FrankyGo's parallel search driver) and on golang.org/x/sync/errgroup
// as the idiomatic Go fan-out/fan-in primitive the examples reach for
// instead of a hand-rolled sync.WaitGroup with manual error plumbing.
type Pool struct {
	TT  *tt.Table
	Cfg *config.Tunables
}

// NewPool builds a pool backed by table and cfg.
func NewPool(table *tt.Table, cfg *config.Tunables) *Pool {
	return &Pool{TT: table, Cfg: cfg}
}

// Search runs threads workers rooted at pos (each on its own cloned
// Position so MakeMove/UnmakeMove never race) until limits or stop
// fires, and returns the move and score worker 0 (the "main" thread)
// settled on — the rest are configured identically and contribute only
// through the entries they add to the shared table. stop is supplied by the
// caller (engine.Engine) so a UCI `stop` command can reach an
// in-progress search from outside this call.
func (p *Pool) Search(pos *position.Position, threads int, limits Limits, stop *atomic.Bool, report ReportFunc) (move.Move, int) {
	if threads < 1 {
		threads = 1
	}
	if stop == nil {
		stop = &atomic.Bool{}
	}

	if threads == 1 {
		w := NewWorker(0, pos, p.TT, p.Cfg, stop)
		return w.Search(limits, report)
	}

	var g errgroup.Group
	results := make([]move.Move, threads)
	scores := make([]int, threads)

	for i := 0; i < threads; i++ {
		i := i
		clone := pos.Clone()
		w := NewWorker(i, clone, p.TT, p.Cfg, stop)
		g.Go(func() error {
			var rep ReportFunc
			if i == 0 {
				rep = report
			}
			m, s := w.Search(limits, rep)
			results[i] = m
			scores[i] = s
			if i == 0 {
				stop.Store(true)
			}
			return nil
		})
	}
	g.Wait()

	return results[0], scores[0]
}
