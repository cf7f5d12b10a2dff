package bindz

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestCombineLatestGatesUntilAllEmitted(t *testing.T) {
	a := NewSource(1)
	pending := NewSource(0)
	b := NewFilter(func(n int) bool { return n > 0 }).Process(pending)

	joined := NewCombineLatest(func(vs []int) string {
		return fmt.Sprint(vs)
	}).Process(a, b)

	var got []string
	sub := joined.Subscribe(func(s string) { got = append(got, s) })
	defer sub.Unsubscribe()

	a.Set(2)
	if len(got) != 0 {
		t.Fatalf("expected nothing until every source emitted, got %v", got)
	}

	pending.Set(10)
	a.Set(3)
	pending.Set(20)

	want := []string{"[2 10]", "[3 10]", "[3 20]"}
	if !equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCombineLatestOneTuplePerEmission(t *testing.T) {
	a := NewSource("a0")
	b := NewSource("b0")
	c := NewSource("c0")

	joined := NewCombineLatest(func(vs []string) string {
		return strings.Join(vs, ",")
	}).Process(a, b, c)

	var got []string
	sub := joined.Subscribe(func(s string) { got = append(got, s) })
	defer sub.Unsubscribe()

	b.Set("b1")
	b.Set("b1")
	a.Set("a1")

	// Replays gate until c, then one tuple per emission, duplicates kept.
	want := []string{"a0,b0,c0", "a0,b1,c0", "a0,b1,c0", "a1,b1,c0"}
	if !equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCombineLatestAggregatorGetsCopy(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)

	var kept [][]int
	joined := NewCombineLatest(func(vs []int) int {
		kept = append(kept, vs)
		return vs[0] + vs[1]
	}).Process(a, b)

	sub := joined.Subscribe(func(int) {})
	a.Set(5)
	sub.Unsubscribe()

	if len(kept) != 2 || kept[0][0] != 1 || kept[1][0] != 5 {
		t.Errorf("expected independent slices per call, got %v", kept)
	}
}

func TestCombineLatestNestedSetsProduceIntermediateTuples(t *testing.T) {
	page := NewSource(0)
	query := NewSource("react")

	// Changing the query resets the page within the same notification chain.
	reset := query.Subscribe(func(string) { page.Set(0) })
	defer reset.Unsubscribe()
	page.Set(3)

	joined := Combine3(query, page, NewSource(true), func(q string, p int, _ bool) string {
		return fmt.Sprintf("%s@%d", q, p)
	})
	var got []string
	sub := joined.Subscribe(func(s string) { got = append(got, s) })
	defer sub.Unsubscribe()

	query.Set("go")

	// The reset reaches the join before the new query does.
	want := []string{"react@3", "react@0", "go@0"}
	if !equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCombineLatestUnsubscribe(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)

	sub := NewCombineLatest(func(vs []int) int { return vs[0] }).Process(a, b).Subscribe(func(int) {})
	sub.Unsubscribe()

	if a.Subscribers() != 0 || b.Subscribers() != 0 {
		t.Errorf("expected every source released, got %d and %d", a.Subscribers(), b.Subscribers())
	}
}

func TestCombineLatestConcurrentSources(t *testing.T) {
	a := NewSource(0)
	b := NewSource(0)

	var (
		mu      sync.Mutex
		active  int
		overlap bool
		count   int
	)
	sub := NewCombineLatest(func(vs []int) int { return vs[0] + vs[1] }).
		Process(a, b).
		Subscribe(func(int) {
			mu.Lock()
			active++
			if active > 1 {
				overlap = true
			}
			count++
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		})
	defer sub.Unsubscribe()

	const n = 200
	var wg sync.WaitGroup
	for _, src := range []*Source[int]{a, b} {
		wg.Add(1)
		go func(src *Source[int]) {
			defer wg.Done()
			for i := 1; i <= n; i++ {
				src.Set(i)
			}
		}(src)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if overlap {
		t.Error("expected emissions to one subscriber to be serialized")
	}
	// One from the gated replay, then one per Set.
	if count != 1+2*n {
		t.Errorf("expected %d emissions, got %d", 1+2*n, count)
	}
}

func TestCombine4Types(t *testing.T) {
	type view struct {
		subject string
		query   string
		page    int
		ok      bool
	}

	subject := NewSource("search")
	query := NewSource("react")
	page := NewSource(0)
	results := NewSource(NewSuccess([]string{"story"}))

	joined := Combine4(subject, query, page, results, func(s, q string, p int, r Result[[]string]) view {
		return view{subject: s, query: q, page: p, ok: r.IsSuccess()}
	})

	var got []view
	sub := joined.Subscribe(func(v view) { got = append(got, v) })
	defer sub.Unsubscribe()

	page.Set(1)
	results.Set(NewError[[]string](1, fmt.Errorf("boom"), "search"))

	if len(got) != 3 {
		t.Fatalf("expected 3 views, got %d", len(got))
	}
	if got[0] != (view{"search", "react", 0, true}) {
		t.Errorf("unexpected initial view %+v", got[0])
	}
	if got[2].page != 1 || got[2].ok {
		t.Errorf("expected page 1 with failed result, got %+v", got[2])
	}
}

func TestCombineNilInterfaceValues(t *testing.T) {
	var none error
	errs := NewSource(none)
	names := NewSource("x")

	joined := Combine3(errs, names, NewSource(0), func(err error, name string, _ int) string {
		if err == nil {
			return name + ":ok"
		}
		return name + ":" + err.Error()
	})

	var got []string
	sub := joined.Subscribe(func(s string) { got = append(got, s) })
	defer sub.Unsubscribe()

	if !equal(got, []string{"x:ok"}) {
		t.Errorf("expected nil interface to pass through, got %v", got)
	}
}

func ExampleCombine3() {
	subject := NewSource("search")
	page := NewSource(0)
	query := NewSource("react")

	requests := Combine3(subject, page, query, func(s string, p int, q string) string {
		return fmt.Sprintf("/%s?query=%s&page=%d", s, q, p)
	})
	sub := requests.Subscribe(func(url string) { fmt.Println(url) })
	defer sub.Unsubscribe()

	page.Set(1)
	subject.Set("search_by_date")

	// Output:
	// /search?query=react&page=0
	// /search?query=react&page=1
	// /search_by_date?query=react&page=1
}
