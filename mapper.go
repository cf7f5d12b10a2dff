package bindz

// Mapper transforms each value in a stream from one type to another using a
// mapping function. Cardinality and order are preserved 1:1.
type Mapper[In, Out any] struct {
	fn   func(In) Out
	name string
}

// NewMapper creates a stage that transforms values from one type to another.
//
// When to use:
//   - Building request tuples or view models from raw inputs
//   - Extracting fields or computing derived values
//   - Widening a typed stream for a heterogeneous join
//
// Example:
//
//	// Extract the hit list from a search response
//	hits := bindz.NewMapper("hits", func(r SearchResponse) []Story {
//		return r.Hits
//	}).Process(responses)
//
// Parameters:
//   - name: Descriptive name for debugging and monitoring
//   - fn: Pure transformation function from input to output type
//
// Returns a new Mapper stage.
func NewMapper[In, Out any](name string, fn func(In) Out) *Mapper[In, Out] {
	return &Mapper[In, Out]{
		fn:   fn,
		name: name,
	}
}

func (m *Mapper[In, Out]) Process(in Stream[In]) Stream[Out] {
	return newStream(m.name, func(fn func(Out)) *Subscription {
		return in.Subscribe(func(v In) {
			fn(m.fn(v))
		})
	})
}

func (m *Mapper[In, Out]) Name() string {
	return m.name
}
