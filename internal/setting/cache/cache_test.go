package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/setting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type countingLoader struct {
	mu    sync.Mutex
	calls int
	value string
	err   error
}

func (l *countingLoader) Load(context.Context) (setting.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return setting.Snapshot{"site_info": json.RawMessage(l.value)}, nil
}

func (l *countingLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestCache_ReadsWithinTTLShareOneLoad(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	loader := &countingLoader{value: `{"name":"A"}`}
	c := New(loader.Load, 0, clock.Now)

	first, err := c.Get(ctx)
	require.NoError(t, err)
	clock.Advance(59 * time.Second)
	second, err := c.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, loader.Calls())
	assert.Equal(t, first, second)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	loader := &countingLoader{value: `{"name":"A"}`}
	c := New(loader.Load, time.Minute, clock.Now)

	_, err := c.Get(ctx)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = c.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, loader.Calls())
}

func TestCache_InvalidateForcesReload(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{value: `{"name":"A"}`}
	c := New(loader.Load, time.Hour, nil)

	_, err := c.Get(ctx)
	require.NoError(t, err)

	loader.value = `{"name":"B"}`
	c.Invalidate()

	s, err := c.Get(ctx)
	require.NoError(t, err)
	info, ok := s.SiteInfo()
	require.True(t, ok)
	assert.Equal(t, "B", info.Name)
	assert.Equal(t, 2, loader.Calls())
}

func TestCache_FailedLoadIsNotCached(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{err: errors.New("db down")}
	c := New(loader.Load, time.Hour, nil)

	_, err := c.Get(ctx)
	require.Error(t, err)

	loader.err = nil
	loader.value = `{"name":"A"}`
	s, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Contains(t, s, "site_info")
	assert.Equal(t, 2, loader.Calls())
}

func TestCache_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{value: `{"name":"A"}`}
	c := New(loader.Load, time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := c.Get(ctx)
			assert.NoError(t, err)
			assert.Contains(t, s, "site_info")
		}()
	}
	wg.Wait()

	// Misses are not coalesced, but once a snapshot is stored it is shared.
	calls := loader.Calls()
	assert.GreaterOrEqual(t, calls, 1)
	_, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, calls, loader.Calls())
}

// blockingLoader reads its value, then waits for release before returning.
type blockingLoader struct {
	mu      sync.Mutex
	calls   int
	value   string
	read    chan struct{}
	release chan struct{}
}

func (l *blockingLoader) Load(context.Context) (setting.Snapshot, error) {
	l.mu.Lock()
	l.calls++
	first := l.calls == 1
	v := l.value
	l.mu.Unlock()

	if first {
		close(l.read)
		<-l.release
	}
	return setting.Snapshot{"site_info": json.RawMessage(v)}, nil
}

func (l *blockingLoader) set(v string) {
	l.mu.Lock()
	l.value = v
	l.mu.Unlock()
}

func TestCache_InvalidateDuringLoadIsNotMasked(t *testing.T) {
	ctx := context.Background()
	loader := &blockingLoader{
		value:   `{"name":"old"}`,
		read:    make(chan struct{}),
		release: make(chan struct{}),
	}
	c := New(loader.Load, time.Hour, nil)

	done := make(chan setting.Snapshot)
	go func() {
		s, err := c.Get(ctx)
		assert.NoError(t, err)
		done <- s
	}()

	<-loader.read
	loader.set(`{"name":"new"}`)
	c.Invalidate()
	close(loader.release)

	inFlight := <-done
	info, ok := inFlight.SiteInfo()
	require.True(t, ok)
	assert.Equal(t, "old", info.Name)

	s, err := c.Get(ctx)
	require.NoError(t, err)
	info, ok = s.SiteInfo()
	require.True(t, ok)
	assert.Equal(t, "new", info.Name)

	loader.mu.Lock()
	defer loader.mu.Unlock()
	assert.Equal(t, 2, loader.calls)
}
