package control

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vector/api"
)

type fixedStats api.Stats

func (f fixedStats) Stats() api.Stats { return api.Stats(f) }

func TestStatsCollector(t *testing.T) {
	src := fixedStats{Pushes: 3, Pops: 1, Size: 2, Capacity: 16, MaxSize: 100}
	c := NewStatsCollector("orders", src)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	expected := `
# HELP hioload_vector_size Number of live elements
# TYPE hioload_vector_size gauge
hioload_vector_size{vector="orders"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "hioload_vector_size"))
	// 10 operation series plus 3 gauges
	assert.Equal(t, 13, testutil.CollectAndCount(c))
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	RegisterPlatformProbes(dp)
	dp.RegisterProbe("answer", func() any { return 42 })
	assert.Equal(t, []string{"answer", "platform.cpus", "platform.memory.free", "platform.memory.total"}, dp.Names())

	state := dp.DumpState()
	assert.Equal(t, 42, state["answer"])
	assert.Greater(t, state["platform.cpus"].(int), 0)

	dp.UnregisterProbe("answer")
	assert.NotContains(t, dp.DumpState(), "answer")
}
