package bindz

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func startLoop(t *testing.T) (*Loop, context.Context) {
	t.Helper()
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})
	go func() { _ = loop.Run(ctx) }()
	return loop, ctx
}

func TestLoopRunsTasksInOrder(t *testing.T) {
	loop, ctx := startLoop(t)

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		loop.Schedule(func() { got = append(got, i) })
	}
	if err := loop.Do(ctx, func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 100 {
		t.Fatalf("expected 100 tasks, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran out of order: got %d", i, v)
		}
	}
}

func TestLoopNestedScheduleRunsAfterCurrentTask(t *testing.T) {
	loop, ctx := startLoop(t)

	var order []string
	err := loop.Do(ctx, func() {
		loop.Schedule(func() { order = append(order, "nested") })
		order = append(order, "outer")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = loop.Do(ctx, func() {})

	if !equal(order, []string{"outer", "nested"}) {
		t.Errorf("expected [outer nested], got %v", order)
	}
}

func TestLoopRunsOneTaskAtATime(t *testing.T) {
	loop, ctx := startLoop(t)

	var active, peak atomic.Int32
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				loop.Schedule(func() {
					if n := active.Add(1); n > peak.Load() {
						peak.Store(n)
					}
					active.Add(-1)
				})
			}
		}()
	}
	wg.Wait()
	_ = loop.Do(ctx, func() {})

	if peak.Load() != 1 {
		t.Errorf("expected tasks never to overlap, peak %d", peak.Load())
	}
}

func TestLoopRunOnce(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()
	_ = loop.Do(ctx, func() {})
	cancel()

	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := loop.Run(context.Background()); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("expected ErrLoopClosed on second run, got %v", err)
	}
}

func TestLoopDoAfterStop(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = loop.Run(ctx)

	if err := loop.Do(context.Background(), func() {}); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("expected ErrLoopClosed, got %v", err)
	}
}

func TestLoopDoHonorsContext(t *testing.T) {
	loop := NewLoop() // never run
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := loop.Do(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestInlineScheduler(t *testing.T) {
	ran := false
	Inline.Schedule(func() { ran = true })
	if !ran {
		t.Error("expected Inline to run immediately")
	}
}

func TestLoopSerializesStreamGraph(t *testing.T) {
	loop, ctx := startLoop(t)

	src := NewSource(0)
	mapper := NewAsyncMapper(func(_ context.Context, n int) (int, error) {
		return n * n, nil
	}).WithScheduler(loop)

	var got []int
	var sub *Subscription
	_ = loop.Do(ctx, func() {
		sub = mapper.Process(src).Subscribe(func(r Result[int]) {
			got = append(got, r.Value())
		})
	})
	defer func() { _ = loop.Do(ctx, sub.Unsubscribe) }()

	waitFor(t, func() bool {
		n := 0
		_ = loop.Do(ctx, func() { n = len(got) })
		return n == 1
	}, "result delivered on the loop")
}
