package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "career:PEREZ JUAN|2001", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "career:key:PEREZ JUAN|2001", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "career:PEREZ JUAN|2001" {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return 0.61, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "potential:7:2023/2024", loader); err != nil {
			t.Fatalf("GetOrLoad error: %v", err)
		}
	}
	if got := loads.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("db down")
	if _, err := store.GetOrLoad(context.Background(), "metrics:1:2023/2024", func(context.Context) (any, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("failed load must not be cached")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "candidate:list:pending:0.5:50", []int{1, 2})
	store.Set(ctx, "candidate:stats", 2)
	store.Set(ctx, "career:key:A|?", 1)

	store.DeletePrefix(ctx, "candidate:")

	if _, ok := store.Get(ctx, "candidate:stats"); ok {
		t.Fatalf("expected candidate entries to be dropped")
	}
	if _, ok := store.Get(ctx, "career:key:A|?"); !ok {
		t.Fatalf("expected unrelated entry to survive")
	}
}

func TestStore_InvalidationDuringLoadSkipsStaleWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	loading := make(chan struct{})
	release := make(chan struct{})

	done := make(chan any)
	go func() {
		v, _ := store.GetOrLoad(ctx, "candidate:stats", func(context.Context) (any, error) {
			close(loading)
			<-release
			return "before validation", nil
		})
		done <- v
	}()

	<-loading
	store.DeletePrefix(ctx, "candidate:")
	close(release)

	if v := <-done; v != "before validation" {
		t.Fatalf("caller should still receive its load, got %v", v)
	}
	if _, ok := store.Get(ctx, "candidate:stats"); ok {
		t.Fatalf("stale load must not be cached after invalidation")
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)
	store.Set(ctx, "profile:id:1", "PEREZ")
	time.Sleep(20 * time.Millisecond)

	if _, ok := store.Get(ctx, "profile:id:1"); ok {
		t.Fatalf("expected entry to expire")
	}
}
