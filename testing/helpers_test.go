package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/bindz"
)

func TestRecorder(t *testing.T) {
	t.Run("records replay and later values in order", func(t *testing.T) {
		src := bindz.NewSource(1)
		rec := Record[int](t, src)

		SetAll(src, 2, 3)

		values := rec.Values()
		if len(values) != 3 {
			t.Fatalf("expected 3 values, got %d", len(values))
		}
		for i, want := range []int{1, 2, 3} {
			if values[i] != want {
				t.Errorf("value %d: expected %d, got %d", i, want, values[i])
			}
		}
		if last, ok := rec.Last(); !ok || last != 3 {
			t.Errorf("expected last value 3, got %d", last)
		}
	})

	t.Run("next consumes in order", func(t *testing.T) {
		src := bindz.NewSource("a")
		rec := Record[string](t, src)
		src.Set("b")

		if v := rec.Next(t); v != "a" {
			t.Errorf("expected a, got %q", v)
		}
		if v := rec.Next(t); v != "b" {
			t.Errorf("expected b, got %q", v)
		}
		rec.ExpectNone(t, 20*time.Millisecond)
	})

	t.Run("next matching skips values", func(t *testing.T) {
		src := bindz.NewSource(0)
		rec := Record[int](t, src)
		SetAll(src, 1, 2, 3)

		if v := rec.NextMatching(t, func(v int) bool { return v > 1 }); v != 2 {
			t.Errorf("expected 2, got %d", v)
		}
	})

	t.Run("stop unsubscribes", func(t *testing.T) {
		src := bindz.NewSource(0)
		rec := Record[int](t, src)
		rec.Stop()

		src.Set(1)

		if rec.Len() != 1 {
			t.Errorf("expected only the replayed value, got %d", rec.Len())
		}
		if src.Subscribers() != 0 {
			t.Errorf("expected 0 subscribers, got %d", src.Subscribers())
		}
	})

	t.Run("drain empties the channel", func(t *testing.T) {
		rec := NewRecorder[int]()
		rec.Push(1)
		rec.Push(2)
		rec.Drain()
		rec.ExpectNone(t, 10*time.Millisecond)
		if rec.Len() != 2 {
			t.Errorf("expected values to stay recorded, got %d", rec.Len())
		}
	})
}

func TestEventually(t *testing.T) {
	start := time.Now()
	Eventually(t, func() bool { return time.Since(start) > 20*time.Millisecond }, "time passes")
}

func TestSplitResults(t *testing.T) {
	errBoom := errors.New("boom")
	results := []bindz.Result[int]{
		bindz.NewSuccess(1),
		bindz.NewError[int](0, errBoom, "test"),
		bindz.NewSuccess(2),
	}

	values, errs := SplitResults(results)

	if len(values) != 2 || values[0] != 1 || values[1] != 2 {
		t.Errorf("expected [1 2], got %v", values)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if !errors.Is(errs[0], errBoom) {
		t.Errorf("expected error wrapping the cause, got %v", errs[0])
	}

	AssertResultCount(t, results, 3)
	AssertAllSuccess(t, results[:1])
	AssertAllErrors(t, results[1:2])
}
