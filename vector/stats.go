// File: vector/stats.go
// Author: momentics <momentics@gmail.com>
//
// Operation counters advanced only while EnableStats is set.

package vector

import (
	"sync/atomic"

	"github.com/momentics/hioload-vector/api"
	"github.com/momentics/hioload-vector/control"
)

type statistics struct {
	pushes   atomic.Uint64
	pops     atomic.Uint64
	reads    atomic.Uint64
	writes   atomic.Uint64
	appends  atomic.Uint64
	clears   atomic.Uint64
	grows    atomic.Uint64
	gated    atomic.Uint64
	timeouts atomic.Uint64
	failures atomic.Uint64
}

func bump(cfg control.Config, c *atomic.Uint64) {
	if cfg.EnableStats {
		c.Add(1)
	}
}

func (s *statistics) push(cfg control.Config)    { bump(cfg, &s.pushes) }
func (s *statistics) pop(cfg control.Config)     { bump(cfg, &s.pops) }
func (s *statistics) read(cfg control.Config)    { bump(cfg, &s.reads) }
func (s *statistics) write(cfg control.Config)   { bump(cfg, &s.writes) }
func (s *statistics) append(cfg control.Config)  { bump(cfg, &s.appends) }
func (s *statistics) clear(cfg control.Config)   { bump(cfg, &s.clears) }
func (s *statistics) grow(cfg control.Config)    { bump(cfg, &s.grows) }
func (s *statistics) gate(cfg control.Config)    { bump(cfg, &s.gated) }
func (s *statistics) timeout(cfg control.Config) { bump(cfg, &s.timeouts) }
func (s *statistics) failure(cfg control.Config) { bump(cfg, &s.failures) }

// Stats returns a snapshot of the counters and current fill state.
func (v *Vector[T]) Stats() api.Stats {
	return api.Stats{
		Pushes:   v.stats.pushes.Load(),
		Pops:     v.stats.pops.Load(),
		Reads:    v.stats.reads.Load(),
		Writes:   v.stats.writes.Load(),
		Appends:  v.stats.appends.Load(),
		Clears:   v.stats.clears.Load(),
		Grows:    v.stats.grows.Load(),
		Gated:    v.stats.gated.Load(),
		Timeouts: v.stats.timeouts.Load(),
		Failures: v.stats.failures.Load(),
		Size:     v.Size(),
		Capacity: v.Capacity(),
		MaxSize:  v.MaxSize(),
	}
}
