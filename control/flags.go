// control/flags.go
// Author: momentics <momentics@gmail.com>
//
// Fixed-width configuration bitmask with named facets.

package control

import (
	"fmt"
	"math/bits"
	"strings"
)

// Flag is an OR-combinable set of container configuration facets.
type Flag uint64

const (
	Dangerous                Flag = 0x01
	ReadHeavy                Flag = 0x02
	WriteHeavy               Flag = 0x04
	EnableMutexTimeout       Flag = 0x08
	SnapshotEnabled          Flag = 0x10
	UnlockedReading          Flag = 0x20
	TransactionMode          Flag = 0x40
	OnlyGlobalMutex          Flag = 0x80
	DisableReadingUntilFull  Flag = 0x100
	DisableWritingUntilEmpty Flag = 0x200
	EnableStats              Flag = 0x400
	EnableSpinlock           Flag = 0x800
	ReserveMaxSize           Flag = 0x1000
	Resizeable               Flag = 0x2000
	ThrowOnFailure           Flag = 0x4000
	BlockOnGate              Flag = 0x8000

	// NoFlags is the baseline: one global mutex, failures returned as values.
	NoFlags = OnlyGlobalMutex
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Dangerous, "dangerous"},
	{ReadHeavy, "read_heavy"},
	{WriteHeavy, "write_heavy"},
	{EnableMutexTimeout, "enable_mutex_timeout"},
	{SnapshotEnabled, "snapshot_enabled"},
	{UnlockedReading, "unlocked_reading"},
	{TransactionMode, "transaction_mode"},
	{OnlyGlobalMutex, "only_global_mutex"},
	{DisableReadingUntilFull, "disable_reading_until_full"},
	{DisableWritingUntilEmpty, "disable_writing_until_empty"},
	{EnableStats, "enable_stats"},
	{EnableSpinlock, "enable_spinlock"},
	{ReserveMaxSize, "reserve_max_size"},
	{Resizeable, "resizeable"},
	{ThrowOnFailure, "throw_on_failure"},
	{BlockOnGate, "block_on_gate"},
}

// IsSet reports whether every bit of f is present.
func (fl Flag) IsSet(f Flag) bool {
	return f != 0 && fl&f == f
}

// Count returns the number of facets set.
func (fl Flag) Count() int {
	return bits.OnesCount64(uint64(fl))
}

// String renders the set as pipe-joined facet names.
func (fl Flag) String() string {
	if fl == 0 {
		return "none"
	}
	var parts []string
	rest := fl
	for _, fn := range flagNames {
		if fl&fn.flag != 0 {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint64(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseFlags parses a pipe- or comma-separated list of facet names.
func ParseFlags(s string) (Flag, error) {
	var out Flag
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})
	for _, f := range fields {
		name := strings.ToLower(strings.TrimSpace(f))
		if name == "none" {
			continue
		}
		found := false
		for _, fn := range flagNames {
			if fn.name == name {
				out |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("control: unknown flag %q", f)
		}
	}
	return out, nil
}
