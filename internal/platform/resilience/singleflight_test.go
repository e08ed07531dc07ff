package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DoCollapsesFeedFetches(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var fetches atomic.Int32
	var sharedCount atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, shared := g.Do("feed:2023/2024", func() (any, error) {
				fetches.Add(1)
				time.Sleep(20 * time.Millisecond)
				return []byte(`{"player_name":"PEREZ, JUAN"}`), nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
				return
			}
			if raw, _ := v.([]byte); len(raw) == 0 {
				t.Errorf("expected payload, got %v", v)
			}
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := fetches.Load(); got != 1 {
		t.Fatalf("expected one fetch, got %d", got)
	}
	if got := sharedCount.Load(); got == 0 {
		t.Fatalf("expected callers to share the result")
	}
}

func TestSingleFlight_ForgetStartsFreshLoad(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _, _ = g.Do("candidate:list", func() (any, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()
	<-started

	g.Forget("candidate:list")
	v, err, shared := g.Do("candidate:list", func() (any, error) {
		return "fresh", nil
	})
	close(release)
	<-done

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shared || v != "fresh" {
		t.Fatalf("expected an independent fresh load, got v=%v shared=%v", v, shared)
	}
}
