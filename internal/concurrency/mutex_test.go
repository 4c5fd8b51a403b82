package concurrency

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutex_LockUnlock(t *testing.T) {
	m := NewMutex()
	m.Lock()
	assert.True(t, m.Locked())
	assert.False(t, m.TryLock())
	m.Unlock()
	assert.False(t, m.Locked())
	assert.True(t, m.TryLock())
	m.Unlock()
}

func TestMutex_UnlockOfUnlockedPanics(t *testing.T) {
	m := NewMutex()
	assert.Panics(t, m.Unlock)
}

func TestMutex_LockTimeout(t *testing.T) {
	m := NewMutex()
	m.Lock()
	defer m.Unlock()

	const wait = 30 * time.Millisecond
	start := time.Now()
	assert.False(t, m.LockTimeout(wait))
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, wait)
	assert.Less(t, elapsed, wait+time.Second)
}

func TestMutex_SpinTimeout(t *testing.T) {
	m := NewMutex()
	m.Lock()
	assert.False(t, m.SpinTimeout(10*time.Millisecond))

	go func() {
		time.Sleep(5 * time.Millisecond)
		m.Unlock()
	}()
	assert.True(t, m.SpinTimeout(time.Second))
	m.Unlock()
}

func TestMutex_MutualExclusion(t *testing.T) {
	m := NewMutex()
	const workers = 8
	const rounds = 2000
	counter := 0

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(spin bool) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if spin {
					m.Spin()
				} else {
					m.Lock()
				}
				counter++
				m.Unlock()
			}
		}(w%2 == 0)
	}
	wg.Wait()
	require.Equal(t, workers*rounds, counter)
}
