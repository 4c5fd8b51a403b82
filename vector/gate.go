// File: vector/gate.go
// Author: momentics <momentics@gmail.com>
//
// Admission control derived from fill state. Gates are evaluated with the
// relevant locks held. Draining operations (PopBack, Clear) and storage
// growth are never gated.

package vector

import (
	"time"

	"github.com/momentics/hioload-vector/api"
	"github.com/momentics/hioload-vector/control"
	"github.com/momentics/hioload-vector/internal/concurrency"
)

type access int

const (
	accessRead access = iota
	accessWrite
)

// refused reports whether cfg's gates deny class in the current fill state.
func (v *Vector[T]) refused(cfg control.Config, class access) bool {
	switch class {
	case accessRead:
		return cfg.DisableReadingUntilFull && v.size.Load() < v.maxSize.Load()
	case accessWrite:
		return cfg.DisableWritingUntilEmpty && v.size.Load() > 0
	}
	return false
}

// park handles a refused operation: it releases held and either fails with
// KindGated or, under BlockOnGate, waits for the next size change. A nil
// return means the caller should retry from the top.
func (v *Vector[T]) park(cfg control.Config, class access, op string, held ...*concurrency.Held) error {
	v.stats.gate(cfg)
	if !cfg.BlockOnGate {
		release(held...)
		return api.NewError(api.KindGated, op)
	}
	ch := v.waiters.Enlist()
	release(held...)
	if !v.refused(cfg, class) {
		return nil
	}
	var timeout time.Duration
	if cfg.EnableMutexTimeout {
		timeout = cfg.WaitDuration()
	}
	if err := concurrency.Wait(ch, timeout); err != nil {
		return api.NewError(api.KindGated, op).Wrap(err)
	}
	return nil
}

func release(held ...*concurrency.Held) {
	for i := len(held) - 1; i >= 0; i-- {
		held[i].Release()
	}
}
