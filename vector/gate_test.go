package vector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vector/api"
	"github.com/momentics/hioload-vector/control"
)

func TestGate_ReadingUntilFull(t *testing.T) {
	for _, cfg := range []control.Config{
		{DisableReadingUntilFull: true, OnlyGlobalMutex: true},
		{DisableReadingUntilFull: true, ElementsPerMutex: 1},
		{DisableReadingUntilFull: true, SnapshotEnabled: true},
	} {
		t.Run(cfg.String(), func(t *testing.T) {
			v := newVector(t, 4, cfg)
			for size := 0; size < 4; size++ {
				_, err := v.Get(0)
				assert.ErrorIs(t, err, api.ErrGated, "size %d", size)
				assert.ErrorIs(t, v.View(func([]int) {}), api.ErrGated)
				require.NoError(t, v.PushBack(size*10))
			}
			for i := uint64(0); i < 4; i++ {
				got, err := v.Get(i)
				require.NoError(t, err)
				assert.Equal(t, int(i)*10, got)
			}
			if cfg.SnapshotEnabled {
				snap, err := v.Snapshot()
				require.NoError(t, err)
				assert.Equal(t, []int{0, 10, 20, 30}, snap)
			}

			// shrinking below capacity re-engages the gate
			require.NoError(t, v.PopBack(1))
			_, err := v.Get(0)
			assert.ErrorIs(t, err, api.ErrGated)
			require.NoError(t, v.PushBack(30))
			_, err = v.Get(0)
			assert.NoError(t, err)

			require.NoError(t, v.Clear())
			_, err = v.Get(0)
			assert.ErrorIs(t, err, api.ErrGated)
		})
	}
}

func TestGate_WritingUntilEmpty(t *testing.T) {
	v := newVector(t, 8, control.Config{DisableWritingUntilEmpty: true, ElementsPerMutex: 2})
	require.NoError(t, v.PushBack(1))
	assert.ErrorIs(t, v.PushBack(2), api.ErrGated)
	assert.ErrorIs(t, v.Set(0, 5), api.ErrGated)
	assert.ErrorIs(t, v.Modify(func([]int) {}), api.ErrGated)

	// reads and drains are not gated
	got, err := v.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	require.NoError(t, v.PopBack(1))

	require.NoError(t, v.PushBack(3))
	assert.Equal(t, []int{3}, contents(t, v))

	// growth is capacity management, not a write
	require.NoError(t, v.Clear())
	require.NoError(t, v.Reserve(8))
}

func TestGate_AppendDestination(t *testing.T) {
	src := newVector(t, 8, control.NoConfig)
	fill(t, src, 3)
	dst := newVector(t, 8, control.Config{DisableWritingUntilEmpty: true, OnlyGlobalMutex: true})
	require.NoError(t, dst.PushBack(100))

	n, err := src.Append(dst, true, false)
	assert.ErrorIs(t, err, api.ErrGated)
	assert.Equal(t, int64(-1), n)
	assert.Equal(t, uint64(3), src.Size())

	require.NoError(t, dst.Clear())
	n, err = src.Append(dst, true, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestGate_BlockUntilFull(t *testing.T) {
	v := newVector(t, 2, control.Config{
		DisableReadingUntilFull: true,
		BlockOnGate:             true,
		ElementsPerMutex:        1,
	})

	result := make(chan int, 1)
	go func() {
		got, err := v.Get(1)
		if err != nil {
			t.Errorf("blocked get: %v", err)
		}
		result <- got
	}()

	require.Eventually(t, func() bool { return v.waiters.Len() > 0 }, time.Second, time.Millisecond)
	require.NoError(t, v.PushBack(7))
	select {
	case <-result:
		t.Fatal("read admitted before the container was full")
	case <-time.After(20 * time.Millisecond):
	}
	require.NoError(t, v.PushBack(8))

	select {
	case got := <-result:
		assert.Equal(t, 8, got)
	case <-time.After(5 * time.Second):
		t.Fatal("blocked read was never admitted")
	}
}

func TestGate_BlockedWriteTimesOut(t *testing.T) {
	const wait = 20 * time.Millisecond
	v := newVector(t, 4, control.Config{
		DisableWritingUntilEmpty: true,
		BlockOnGate:              true,
		EnableMutexTimeout:       true,
		TimedMutexWaitDuration:   wait,
		OnlyGlobalMutex:          true,
	})
	require.NoError(t, v.PushBack(1))

	start := time.Now()
	err := v.PushBack(2)
	assert.ErrorIs(t, err, api.ErrGated)
	assert.GreaterOrEqual(t, time.Since(start), wait)
	assert.Equal(t, uint64(1), v.Size())

	// the expired waiter is drained by the next size change
	require.NoError(t, v.PopBack(1))
	assert.Zero(t, v.waiters.Len())
	require.NoError(t, v.PushBack(3))
	assert.Equal(t, []int{3}, contents(t, v))
}
