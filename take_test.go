package bindz

import "testing"

func TestTake(t *testing.T) {
	src := NewSource(0)
	first := NewTake[int](3).Process(src)

	var got []int
	sub := first.Subscribe(func(n int) { got = append(got, n) })
	defer sub.Unsubscribe()

	for i := 1; i <= 5; i++ {
		src.Set(i)
	}

	if !equal(got, []int{0, 1, 2}) {
		t.Errorf("expected [0 1 2], got %v", got)
	}
	if src.Subscribers() != 0 {
		t.Errorf("expected upstream released after the limit, got %d subscribers", src.Subscribers())
	}
}

func TestTakeLimitDuringReplay(t *testing.T) {
	src := NewSource("only")
	once := NewTake[string](1).Process(src)

	var got []string
	sub := once.Subscribe(func(s string) { got = append(got, s) })
	src.Set("again")

	if !equal(got, []string{"only"}) {
		t.Errorf("expected [only], got %v", got)
	}
	if src.Subscribers() != 0 {
		t.Errorf("expected upstream released, got %d subscribers", src.Subscribers())
	}
	sub.Unsubscribe()
}

func TestTakeZero(t *testing.T) {
	src := NewSource(1)
	none := NewTake[int](0).Process(src)

	called := false
	sub := none.Subscribe(func(int) { called = true })
	defer sub.Unsubscribe()

	if called {
		t.Error("expected no values")
	}
	if src.Subscribers() != 0 {
		t.Errorf("expected no upstream subscription, got %d", src.Subscribers())
	}
}

func TestTakeUnsubscribeEarly(t *testing.T) {
	src := NewSource(0)
	sub := NewTake[int](10).Process(src).Subscribe(func(int) {})
	sub.Unsubscribe()

	if src.Subscribers() != 0 {
		t.Errorf("expected upstream released, got %d subscribers", src.Subscribers())
	}
}
