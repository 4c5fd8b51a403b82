// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// Unbounded is the maxSize sentinel for a container that grows without a ceiling.
const Unbounded = ^uint64(0)

// StrategyKind enumerates the closed set of locking strategies.
type StrategyKind int

const (
	StrategyGlobal StrategyKind = iota
	StrategySharded
	StrategyDangerous
)

func (s StrategyKind) String() string {
	switch s {
	case StrategyGlobal:
		return "global"
	case StrategySharded:
		return "sharded"
	case StrategyDangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// Stats is a point-in-time copy of a container's operation counters.
type Stats struct {
	Pushes   uint64
	Pops     uint64
	Reads    uint64
	Writes   uint64
	Appends  uint64
	Clears   uint64
	Grows    uint64
	Gated    uint64
	Timeouts uint64
	Failures uint64
	Size     uint64
	Capacity uint64
	MaxSize  uint64
}
