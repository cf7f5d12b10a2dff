package bindz

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTap(t *testing.T) {
	src := NewSource(1)

	var seen, forwarded []int
	tapped := NewTap(func(n int) { seen = append(seen, n) }).Process(src)
	sub := tapped.Subscribe(func(n int) { forwarded = append(forwarded, n) })
	defer sub.Unsubscribe()

	src.Set(2)

	if !equal(seen, []int{1, 2}) {
		t.Errorf("expected side effect for [1 2], got %v", seen)
	}
	if !equal(forwarded, []int{1, 2}) {
		t.Errorf("expected values unchanged [1 2], got %v", forwarded)
	}
}

func TestTapRecoversPanic(t *testing.T) {
	src := NewSource(0)
	tapped := NewTap(func(n int) {
		if n == 1 {
			panic("diagnostics failed")
		}
	}).WithName("fragile").Process(src)

	var forwarded []int
	sub := tapped.Subscribe(func(n int) { forwarded = append(forwarded, n) })
	defer sub.Unsubscribe()

	src.Set(1)
	src.Set(2)

	if !equal(forwarded, []int{0, 1, 2}) {
		t.Errorf("expected every value forwarded despite the panic, got %v", forwarded)
	}
	if tapped.Name() != "fragile" {
		t.Errorf("expected name fragile, got %s", tapped.Name())
	}
}

func TestTapLogsPanicToConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	src := NewSource(1)
	sub := NewTap(func(int) { panic("boom") }).
		WithName("fetch-diagnostics").
		WithLogger(logger).
		Process(src).
		Subscribe(func(int) {})
	defer sub.Unsubscribe()

	out := buf.String()
	for _, want := range []string{"tap side effect panicked", "stage=fetch-diagnostics", "panic=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output %q", want, out)
		}
	}
}
