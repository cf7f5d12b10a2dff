package bindz

import "testing"

func TestFilter(t *testing.T) {
	src := NewSource(0)
	evens := NewFilter(func(n int) bool { return n%2 == 0 }).Process(src)

	var got []int
	sub := evens.Subscribe(func(n int) { got = append(got, n) })
	for i := 1; i <= 6; i++ {
		src.Set(i)
	}
	sub.Unsubscribe()
	src.Set(8)

	if !equal(got, []int{0, 2, 4, 6}) {
		t.Errorf("expected [0 2 4 6], got %v", got)
	}
}

func TestFilterPagesAndQueries(t *testing.T) {
	pages := NewSource(0)
	valid := NewFilter(func(p int) bool { return p >= 0 }).Process(pages)
	var gotPages []int
	subPages := valid.Subscribe(func(p int) { gotPages = append(gotPages, p) })
	defer subPages.Unsubscribe()
	pages.Set(-1)
	pages.Set(1)

	queries := NewSource("react")
	nonEmpty := NewFilter(func(q string) bool { return q != "" }).Process(queries)
	var gotQueries []string
	subQueries := nonEmpty.Subscribe(func(q string) { gotQueries = append(gotQueries, q) })
	defer subQueries.Unsubscribe()
	queries.Set("")
	queries.Set("go")

	if !equal(gotPages, []int{0, 1}) {
		t.Errorf("expected [0 1], got %v", gotPages)
	}
	if !equal(gotQueries, []string{"react", "go"}) {
		t.Errorf("expected [react go], got %v", gotQueries)
	}
}

func TestFilterName(t *testing.T) {
	f := NewFilter(func(int) bool { return true })
	if f.Name() != "filter" {
		t.Errorf("expected default name filter, got %s", f.Name())
	}
	f.WithName("valid-page")
	if f.Name() != "valid-page" {
		t.Errorf("expected valid-page, got %s", f.Name())
	}
	if f.Process(NewSource(0)).Name() != "valid-page" {
		t.Error("expected derived stream to carry the stage name")
	}
}
