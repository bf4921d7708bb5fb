package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestFetchCachesByKey(t *testing.T) {
	cache := NewQueryCache(time.Minute, newTestLogger())
	ctx := context.Background()

	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "payload", nil
	}

	key := NewKey("leads", "limit=20")
	for i := 0; i < 3; i++ {
		v, err := cache.Fetch(ctx, key, fetch)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if v != "payload" {
			t.Fatalf("Fetch returned %v", v)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("underlying fetch ran %d times, want 1", n)
	}
}

func TestFetchDistinguishesParameterSets(t *testing.T) {
	cache := NewQueryCache(time.Minute, newTestLogger())
	ctx := context.Background()

	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	if _, err := cache.Fetch(ctx, NewKey("leads", "offset=0"), fetch); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Fetch(ctx, NewKey("leads", "offset=20"), fetch); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("distinct parameter sets shared a cache entry: %d fetches", n)
	}
}

func TestConcurrentFetchesCoalesce(t *testing.T) {
	cache := NewQueryCache(time.Minute, newTestLogger())
	ctx := context.Background()

	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	key := NewKey("leads", "q=abc")
	const waiters = 8
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, err := cache.Fetch(ctx, key, fetch); err != nil || v != "shared" {
				t.Errorf("coalesced fetch returned (%v, %v)", v, err)
			}
		}()
	}

	// Give every goroutine time to reach the singleflight barrier, then
	// let the single underlying call finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("concurrent reads of one key ran %d fetches, want 1", n)
	}
}

func TestInvalidateIsScopedToResource(t *testing.T) {
	cache := NewQueryCache(time.Minute, newTestLogger())
	ctx := context.Background()

	counts := map[string]*int32{}
	fetchFor := func(name string) func(context.Context) (interface{}, error) {
		n := new(int32)
		counts[name] = n
		return func(ctx context.Context) (interface{}, error) {
			return atomic.AddInt32(n, 1), nil
		}
	}

	tasksX := NewKey("leadTasks", "lead-x")
	tasksY := NewKey("leadTasks", "lead-y")
	leads := NewKey("leads", "limit=20")

	fx := fetchFor("x")
	fy := fetchFor("y")
	fl := fetchFor("leads")
	for _, step := range []struct {
		key   Key
		fetch func(context.Context) (interface{}, error)
	}{{tasksX, fx}, {tasksY, fy}, {leads, fl}} {
		if _, err := cache.Fetch(ctx, step.key, step.fetch); err != nil {
			t.Fatal(err)
		}
	}

	// A task mutation on lead X invalidates X's collection only.
	cache.InvalidateKey(tasksX)

	if _, err := cache.Fetch(ctx, tasksX, fx); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Fetch(ctx, tasksY, fy); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(counts["x"]); got != 2 {
		t.Errorf("invalidated key fetched %d times, want 2", got)
	}
	if got := atomic.LoadInt32(counts["y"]); got != 1 {
		t.Errorf("unrelated lead's tasks were refetched: %d fetches, want 1", got)
	}

	// Resource-wide invalidation hits every list variant of that resource
	// and nothing else.
	if n := cache.Invalidate("leads"); n != 1 {
		t.Errorf("Invalidate(leads) touched %d entries, want 1", n)
	}
	if _, err := cache.Fetch(ctx, leads, fl); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(counts["leads"]); got != 2 {
		t.Errorf("leads list fetched %d times after invalidation, want 2", got)
	}
}

func TestInvalidateDuringInflightFetchForcesRefetch(t *testing.T) {
	cache := NewQueryCache(time.Minute, newTestLogger())
	ctx := context.Background()
	key := NewKey("leads", "limit=20")

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
			return "pre-mutation", nil
		}
		return "post-mutation", nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.Fetch(ctx, key, fetch)
	}()

	// A mutation commits and invalidates while the read is still in flight.
	<-started
	cache.Invalidate("leads")
	close(release)
	<-done

	// The in-flight result predates the mutation, so the next read must
	// refetch rather than serve it as current.
	v, err := cache.Fetch(ctx, key, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if v != "post-mutation" {
		t.Errorf("read after invalidation returned %v, want post-mutation data", v)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("read after invalidation served stale data without refetching: %d fetches", n)
	}
}

func TestInvalidateKeyDuringInflightFetchForcesRefetch(t *testing.T) {
	cache := NewQueryCache(time.Minute, newTestLogger())
	ctx := context.Background()
	key := NewKey("leadTasks", "lead-x")

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
		return atomic.LoadInt32(&calls), nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.Fetch(ctx, key, fetch)
	}()

	<-started
	cache.InvalidateKey(key)
	close(release)
	<-done

	if _, err := cache.Fetch(ctx, key, fetch); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("key invalidated mid-flight was served without a refetch: %d fetches", n)
	}
}

func TestFailedFetchLeavesCachedValueUntouched(t *testing.T) {
	cache := NewQueryCache(time.Minute, newTestLogger())
	ctx := context.Background()

	key := NewKey("leads", "limit=20")
	if _, err := cache.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return "good", nil
	}); err != nil {
		t.Fatal(err)
	}

	cache.Invalidate("leads")

	boom := errors.New("server exploded")
	if _, err := cache.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Fetch error = %v, want %v", err, boom)
	}

	// The stale value survives for stale-while-revalidate display.
	v, ok := cache.Peek(key)
	if !ok || v != "good" {
		t.Errorf("Peek after failed refetch = (%v, %v), want previous value", v, ok)
	}
}

func TestEntriesGoStaleAfterTTL(t *testing.T) {
	cache := NewQueryCache(10*time.Millisecond, newTestLogger())
	ctx := context.Background()

	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	key := NewKey("users")
	if _, err := cache.Fetch(ctx, key, fetch); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := cache.Fetch(ctx, key, fetch); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("stale entry was served without a refetch: %d fetches", n)
	}
}
