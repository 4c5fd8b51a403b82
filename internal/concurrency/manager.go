// File: internal/concurrency/manager.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Manager materializes a lock strategy lazily, exactly once, on first use.

package concurrency

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-vector/api"
)

// Manager owns the lock structures of one configuration.
type Manager struct {
	kind  api.StrategyKind
	width uint64

	once     sync.Once
	strategy Strategy
	onBuild  func(Strategy)
	built    atomic.Bool
}

// NewManager prepares a manager; no locks exist until Strategy is called.
// onBuild, if non-nil, runs once right after construction.
func NewManager(kind api.StrategyKind, width uint64, onBuild func(Strategy)) *Manager {
	return &Manager{kind: kind, width: width, onBuild: onBuild}
}

// Strategy returns the lock strategy, constructing it on first call.
// Concurrent first callers all observe the same instance.
func (m *Manager) Strategy() Strategy {
	m.once.Do(func() {
		var s Strategy
		switch m.kind {
		case api.StrategyGlobal:
			s = NewGlobal()
		case api.StrategySharded:
			s = NewSharded(m.width)
		case api.StrategyDangerous:
			s = Dangerous{}
		}
		if s == nil {
			// The container cannot honor its concurrency contract without locks.
			panic(ErrNilStrategy)
		}
		m.strategy = s
		m.built.Store(true)
		if m.onBuild != nil {
			m.onBuild(s)
		}
	})
	return m.strategy
}

// Kind returns the configured strategy variant without building it.
func (m *Manager) Kind() api.StrategyKind {
	return m.kind
}

// Built reports whether the strategy has been materialized.
func (m *Manager) Built() bool {
	return m.built.Load()
}
