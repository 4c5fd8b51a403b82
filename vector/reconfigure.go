// File: vector/reconfigure.go
// Author: momentics <momentics@gmail.com>
//
// Reconfiguration swaps the configuration and its lock structures. It first
// quiesces the container by taking every lock of the outgoing strategy, so
// no operation is in flight across the swap. Operations that were waiting
// on an outgoing lock notice the new epoch once they get it, release and
// retry under the new strategy.
//
// A Dangerous container holds no locks and cannot be quiesced: the caller
// must guarantee exclusive access while reconfiguring it.

package vector

import (
	"fmt"

	"github.com/momentics/hioload-vector/api"
	"github.com/momentics/hioload-vector/control"
)

// Reconfigure replaces the active configuration.
func (v *Vector[T]) Reconfigure(cfg control.Config) error {
	return settleErr(v, v.reconfigure(cfg))
}

func (v *Vector[T]) reconfigure(cfg control.Config) error {
	const op = "reconfigure"
	if err := cfg.Validate(); err != nil {
		return err
	}
	old, h, err := v.lockAll(op)
	if err != nil {
		return err
	}
	defer h.Release()

	if cfg.UnlockedReading && v.capacity.Load() != v.maxSize.Load() {
		return api.NewError(api.KindConfigurationConflict, op).
			Wrap(fmt.Errorf("unlocked_reading needs storage reserved to maxSize"))
	}
	next := v.newLockState(cfg, old.epoch+1)
	v.state.Store(next)
	v.log.Debug("reconfigured", "from", old.cfg.String(), "to", cfg.String(), "epoch", next.epoch)

	// Waiters parked under the old gates re-evaluate under the new ones.
	v.waiters.Broadcast()
	return nil
}

// Epoch counts completed reconfigurations.
func (v *Vector[T]) Epoch() uint64 {
	return v.state.Load().epoch
}
