// File: vector/options.go
// Author: momentics <momentics@gmail.com>
//
// Functional options for vector construction.

package vector

import (
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-vector/control"
	"github.com/momentics/hioload-vector/sysmem"
)

// Option configures optional collaborators of a Vector.
type Option func(*options)

type options struct {
	logger   hclog.Logger
	advisor  sysmem.Advisor
	name     string
	registry prometheus.Registerer
	probes   *control.DebugProbes
}

// WithLogger routes container diagnostics to logger.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAdvisor replaces the OS memory advisor used for RAM-aware reservation.
func WithAdvisor(a sysmem.Advisor) Option {
	return func(o *options) {
		if a != nil {
			o.advisor = a
		}
	}
}

// WithName labels the container in logs, metrics and debug probes.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMetrics exports the operation counters to registry. Counters are only
// advanced while EnableStats is set.
func WithMetrics(registry prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithProbes publishes size, capacity and strategy probes into dp.
func WithProbes(dp *control.DebugProbes) Option {
	return func(o *options) {
		o.probes = dp
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{
		logger:  hclog.NewNullLogger(),
		advisor: sysmem.System,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
