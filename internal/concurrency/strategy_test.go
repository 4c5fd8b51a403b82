package concurrency

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vector/api"
)

func TestSharded_AcquireCoversInclusiveRange(t *testing.T) {
	s := NewSharded(4)
	h, err := s.Acquire(Acquisition{}, 3, 8)
	require.NoError(t, err)
	// shards 0, 1 and 2
	assert.Equal(t, 3, h.Count())
	for id := uint64(0); id <= 2; id++ {
		assert.True(t, s.shard(id).Locked(), "shard %d", id)
	}
	assert.False(t, s.shard(3).Locked())
	h.Release()
	h.Release()
	for id := uint64(0); id <= 2; id++ {
		assert.False(t, s.shard(id).Locked(), "shard %d", id)
	}
}

func TestSharded_ShardCreatedOnce(t *testing.T) {
	s := NewSharded(16)
	const workers = 32
	got := make([]*Mutex, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = s.shard(7)
		}(i)
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
	assert.Equal(t, 1, s.Shards())
}

func TestSharded_TimeoutReleasesPartialSet(t *testing.T) {
	s := NewSharded(2)
	blocker, err := s.Acquire(Acquisition{}, 4, 4) // shard 2
	require.NoError(t, err)
	defer blocker.Release()

	const wait = 20 * time.Millisecond
	start := time.Now()
	h, err := s.Acquire(Acquisition{Timeout: wait}, 0, 5)
	assert.Nil(t, h)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrLockTimeout))
	assert.Less(t, time.Since(start), wait+time.Second)

	// shards 0 and 1 were taken before the timeout and must be free again.
	assert.False(t, s.shard(0).Locked())
	assert.False(t, s.shard(1).Locked())
}

func TestSharded_AscendingOrderAvoidsDeadlock(t *testing.T) {
	s := NewSharded(1)
	var wg sync.WaitGroup
	done := make(chan struct{})
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				lo, hi := uint64(w%4), uint64(7-w%4)
				if w%2 == 1 {
					lo, hi = hi, lo
				}
				h, err := s.Acquire(Acquisition{}, lo, hi)
				if err != nil {
					t.Errorf("acquire: %v", err)
					return
				}
				h.Release()
			}
		}(w)
	}
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("sharded acquisition deadlocked")
	}
}

func TestGlobalAndDangerous(t *testing.T) {
	g := NewGlobal()
	assert.Equal(t, api.StrategyGlobal, g.Kind())
	assert.Equal(t, api.Unbounded, g.Width())
	h, err := g.Acquire(Acquisition{}, 0, 1<<40)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Count())
	_, err = g.Acquire(Acquisition{Timeout: time.Millisecond}, 0, 0)
	assert.ErrorIs(t, err, api.ErrLockTimeout)
	h.Release()

	var d Dangerous
	h, err = d.Acquire(Acquisition{Spin: true}, 0, 100)
	require.NoError(t, err)
	assert.Zero(t, h.Count())
	h.Release()
}

func TestManager_BuildsExactlyOnce(t *testing.T) {
	var builds int
	var mu sync.Mutex
	m := NewManager(api.StrategySharded, 8, func(Strategy) {
		mu.Lock()
		builds++
		mu.Unlock()
	})
	assert.False(t, m.Built())

	const workers = 64
	got := make([]Strategy, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = m.Strategy()
		}(i)
	}
	wg.Wait()

	assert.True(t, m.Built())
	assert.Equal(t, 1, builds)
	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
	assert.Equal(t, uint64(8), m.Strategy().Width())
}
