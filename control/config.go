// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Per-instance container configuration: facets as explicit booleans plus
// tunables, validation and strategy resolution.

package control

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/momentics/hioload-vector/api"
)

const (
	// DefaultWaitDuration bounds timed lock acquisition when none is configured.
	DefaultWaitDuration = 50 * time.Millisecond
	// DefaultShardWidth is the number of indices guarded by one shard lock.
	DefaultShardWidth uint64 = 1024
	// WriteHeavyShardWidth narrows shards to spread writers.
	WriteHeavyShardWidth uint64 = 64
	// ReadHeavyShardWidth widens shards so bulk readers take fewer locks.
	ReadHeavyShardWidth uint64 = 4096
	// DefaultSafetyDivisor keeps RAM-derived reservations well below free memory.
	DefaultSafetyDivisor uint64 = 4
)

// Config selects locking, capacity, gating and failure-reporting behavior.
// A Config is copied into the container at construction and never shared.
type Config struct {
	Dangerous                bool
	ReadHeavy                bool
	WriteHeavy               bool
	OnlyGlobalMutex          bool
	EnableMutexTimeout       bool
	EnableSpinlock           bool
	ReserveMaxSize           bool
	Resizeable               bool
	SnapshotEnabled          bool
	UnlockedReading          bool
	DisableReadingUntilFull  bool
	DisableWritingUntilEmpty bool
	TransactionMode          bool
	EnableStats              bool
	ThrowOnFailure           bool
	BlockOnGate              bool

	// ElementsPerMutex is the shard width; 0 derives it from the heavy hints.
	// Ignored when the strategy resolves to a single global lock.
	ElementsPerMutex uint64
	// TimedMutexWaitDuration bounds acquisition under EnableMutexTimeout.
	TimedMutexWaitDuration time.Duration
	// SafetyDivisor divides free memory when sizing a RAM-aware reservation.
	SafetyDivisor uint64
}

// NoConfig is the zero-argument baseline: global mutex only, no panics.
var NoConfig = Config{OnlyGlobalMutex: true}

// FromFlags expands a bitmask into a Config with default tunables.
func FromFlags(f Flag) Config {
	return Config{
		Dangerous:                f.IsSet(Dangerous),
		ReadHeavy:                f.IsSet(ReadHeavy),
		WriteHeavy:               f.IsSet(WriteHeavy),
		OnlyGlobalMutex:          f.IsSet(OnlyGlobalMutex),
		EnableMutexTimeout:       f.IsSet(EnableMutexTimeout),
		EnableSpinlock:           f.IsSet(EnableSpinlock),
		ReserveMaxSize:           f.IsSet(ReserveMaxSize),
		Resizeable:               f.IsSet(Resizeable),
		SnapshotEnabled:          f.IsSet(SnapshotEnabled),
		UnlockedReading:          f.IsSet(UnlockedReading),
		DisableReadingUntilFull:  f.IsSet(DisableReadingUntilFull),
		DisableWritingUntilEmpty: f.IsSet(DisableWritingUntilEmpty),
		TransactionMode:          f.IsSet(TransactionMode),
		EnableStats:              f.IsSet(EnableStats),
		ThrowOnFailure:           f.IsSet(ThrowOnFailure),
		BlockOnGate:              f.IsSet(BlockOnGate),
	}
}

// Flags folds the boolean facets back into a bitmask.
func (c Config) Flags() Flag {
	var f Flag
	set := func(on bool, bit Flag) {
		if on {
			f |= bit
		}
	}
	set(c.Dangerous, Dangerous)
	set(c.ReadHeavy, ReadHeavy)
	set(c.WriteHeavy, WriteHeavy)
	set(c.OnlyGlobalMutex, OnlyGlobalMutex)
	set(c.EnableMutexTimeout, EnableMutexTimeout)
	set(c.EnableSpinlock, EnableSpinlock)
	set(c.ReserveMaxSize, ReserveMaxSize)
	set(c.Resizeable, Resizeable)
	set(c.SnapshotEnabled, SnapshotEnabled)
	set(c.UnlockedReading, UnlockedReading)
	set(c.DisableReadingUntilFull, DisableReadingUntilFull)
	set(c.DisableWritingUntilEmpty, DisableWritingUntilEmpty)
	set(c.TransactionMode, TransactionMode)
	set(c.EnableStats, EnableStats)
	set(c.ThrowOnFailure, ThrowOnFailure)
	set(c.BlockOnGate, BlockOnGate)
	return f
}

// IsSet reports whether the facet f is enabled.
func (c Config) IsSet(f Flag) bool {
	return c.Flags().IsSet(f)
}

// With returns a copy with the facets in f enabled.
func (c Config) With(f Flag) Config {
	n := FromFlags(c.Flags() | f)
	n.ElementsPerMutex = c.ElementsPerMutex
	n.TimedMutexWaitDuration = c.TimedMutexWaitDuration
	n.SafetyDivisor = c.SafetyDivisor
	return n
}

// Strategy resolves the locking strategy. TransactionMode degrades to a
// single global lock.
func (c Config) Strategy() api.StrategyKind {
	switch {
	case c.Dangerous:
		return api.StrategyDangerous
	case c.OnlyGlobalMutex, c.TransactionMode:
		return api.StrategyGlobal
	default:
		return api.StrategySharded
	}
}

// ShardWidth returns the number of indices per shard lock, or api.Unbounded
// when the whole container shares one lock.
func (c Config) ShardWidth() uint64 {
	if c.Strategy() != api.StrategySharded {
		return api.Unbounded
	}
	switch {
	case c.ElementsPerMutex > 0:
		return c.ElementsPerMutex
	case c.WriteHeavy:
		return WriteHeavyShardWidth
	case c.ReadHeavy:
		return ReadHeavyShardWidth
	default:
		return DefaultShardWidth
	}
}

// WaitDuration returns the timed acquisition bound.
func (c Config) WaitDuration() time.Duration {
	if c.TimedMutexWaitDuration > 0 {
		return c.TimedMutexWaitDuration
	}
	return DefaultWaitDuration
}

// Divisor returns the reservation safety divisor, never below 2.
func (c Config) Divisor() uint64 {
	if c.SafetyDivisor < 2 {
		if c.SafetyDivisor == 0 {
			return DefaultSafetyDivisor
		}
		return 2
	}
	return c.SafetyDivisor
}

// Validate reports every contradictory facet combination at once.
func (c Config) Validate() error {
	var result *multierror.Error
	conflict := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if c.Dangerous {
		if c.EnableMutexTimeout {
			conflict("dangerous mode takes no locks to time out")
		}
		if c.EnableSpinlock {
			conflict("dangerous mode takes no locks to spin on")
		}
		if c.SnapshotEnabled {
			conflict("dangerous mode cannot hold a consistent snapshot")
		}
		if c.TransactionMode {
			conflict("dangerous mode cannot provide transaction locking")
		}
	}
	if c.ReadHeavy && c.WriteHeavy {
		conflict("read_heavy and write_heavy are mutually exclusive hints")
	}
	if c.DisableReadingUntilFull && c.DisableWritingUntilEmpty {
		conflict("disable_reading_until_full with disable_writing_until_empty leaves no readable state")
	}
	if c.BlockOnGate && !c.DisableReadingUntilFull && !c.DisableWritingUntilEmpty {
		conflict("block_on_gate requires a gating facet")
	}
	if c.UnlockedReading && (c.Resizeable || !c.ReserveMaxSize) {
		conflict("unlocked_reading requires reserve_max_size storage that never reallocates")
	}

	if err := result.ErrorOrNil(); err != nil {
		return api.NewError(api.KindConfigurationConflict, "validate").Wrap(err)
	}
	return nil
}

// String renders the facets and non-default tunables.
func (c Config) String() string {
	s := c.Flags().String()
	if c.ElementsPerMutex > 0 {
		s += fmt.Sprintf(" width=%d", c.ElementsPerMutex)
	}
	if c.TimedMutexWaitDuration > 0 {
		s += fmt.Sprintf(" wait=%s", c.TimedMutexWaitDuration)
	}
	return s
}
