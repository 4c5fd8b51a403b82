package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vector/api"
)

func TestFlags_RoundTripThroughConfig(t *testing.T) {
	f := EnableMutexTimeout | Resizeable | EnableStats | ThrowOnFailure
	cfg := FromFlags(f)
	assert.True(t, cfg.EnableMutexTimeout)
	assert.True(t, cfg.Resizeable)
	assert.False(t, cfg.Dangerous)
	assert.Equal(t, f, cfg.Flags())
	assert.True(t, cfg.IsSet(EnableStats))
	assert.False(t, cfg.IsSet(EnableStats|Dangerous))
}

func TestFlags_StringAndParse(t *testing.T) {
	f := OnlyGlobalMutex | ReserveMaxSize
	assert.Equal(t, "only_global_mutex|reserve_max_size", f.String())
	assert.Equal(t, "none", Flag(0).String())

	parsed, err := ParseFlags("only_global_mutex | reserve_max_size")
	require.NoError(t, err)
	assert.Equal(t, f, parsed)

	parsed, err = ParseFlags("none")
	require.NoError(t, err)
	assert.Zero(t, parsed)

	_, err = ParseFlags("resizeable,bogus")
	assert.Error(t, err)
}

func TestNoConfig(t *testing.T) {
	assert.NoError(t, NoConfig.Validate())
	assert.Equal(t, api.StrategyGlobal, NoConfig.Strategy())
	assert.False(t, NoConfig.ThrowOnFailure)
	assert.Equal(t, NoFlags, NoConfig.Flags())
}

func TestStrategyResolution(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want api.StrategyKind
	}{
		{"zero value shards", Config{}, api.StrategySharded},
		{"global", Config{OnlyGlobalMutex: true}, api.StrategyGlobal},
		{"transaction degrades to global", Config{TransactionMode: true}, api.StrategyGlobal},
		{"dangerous wins", Config{Dangerous: true, OnlyGlobalMutex: true}, api.StrategyDangerous},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.Strategy())
		})
	}
}

func TestShardWidth(t *testing.T) {
	assert.Equal(t, DefaultShardWidth, Config{}.ShardWidth())
	assert.Equal(t, WriteHeavyShardWidth, Config{WriteHeavy: true}.ShardWidth())
	assert.Equal(t, ReadHeavyShardWidth, Config{ReadHeavy: true}.ShardWidth())
	assert.Equal(t, uint64(8), Config{ElementsPerMutex: 8, WriteHeavy: true}.ShardWidth())
	// an explicit width is accepted and ignored under a global lock
	cfg := Config{OnlyGlobalMutex: true, ElementsPerMutex: 8}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, api.Unbounded, cfg.ShardWidth())
}

func TestTunableDefaults(t *testing.T) {
	assert.Equal(t, DefaultWaitDuration, Config{}.WaitDuration())
	assert.Equal(t, time.Second, Config{TimedMutexWaitDuration: time.Second}.WaitDuration())
	assert.Equal(t, DefaultSafetyDivisor, Config{}.Divisor())
	assert.Equal(t, uint64(2), Config{SafetyDivisor: 1}.Divisor())
	assert.Equal(t, uint64(9), Config{SafetyDivisor: 9}.Divisor())
}

func TestValidate_AggregatesConflicts(t *testing.T) {
	cfg := Config{
		Dangerous:          true,
		EnableMutexTimeout: true,
		EnableSpinlock:     true,
		ReadHeavy:          true,
		WriteHeavy:         true,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrConfigurationConflict)
	assert.Contains(t, err.Error(), "3 errors occurred")
	assert.Contains(t, err.Error(), "time out")
	assert.Contains(t, err.Error(), "spin")
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_Individual(t *testing.T) {
	bad := []Config{
		{Dangerous: true, SnapshotEnabled: true},
		{Dangerous: true, TransactionMode: true},
		{DisableReadingUntilFull: true, DisableWritingUntilEmpty: true},
		{BlockOnGate: true},
		{UnlockedReading: true},
		{UnlockedReading: true, ReserveMaxSize: true, Resizeable: true},
	}
	for _, cfg := range bad {
		assert.ErrorIs(t, cfg.Validate(), api.ErrConfigurationConflict, cfg.String())
	}
	good := []Config{
		{UnlockedReading: true, ReserveMaxSize: true},
		{BlockOnGate: true, DisableReadingUntilFull: true},
		{Dangerous: true, Resizeable: true},
	}
	for _, cfg := range good {
		assert.NoError(t, cfg.Validate(), cfg.String())
	}
}

func TestWith(t *testing.T) {
	cfg := Config{ElementsPerMutex: 16, TimedMutexWaitDuration: time.Millisecond}
	n := cfg.With(EnableStats | Resizeable)
	assert.True(t, n.EnableStats)
	assert.True(t, n.Resizeable)
	assert.Equal(t, uint64(16), n.ElementsPerMutex)
	assert.Equal(t, time.Millisecond, n.TimedMutexWaitDuration)
	assert.False(t, cfg.EnableStats)
}
