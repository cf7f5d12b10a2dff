// Package app is the composition root of hnz. It owns the input channels,
// builds the search pipeline over them and exposes the result through a
// bindz.Binding.
//
// Pipeline:
//
//	page ──filter(p >= 0)──────────────────────┐
//	subject ───────────────────────────────────┼─combine─> fetch ─tap─┐
//	query ──debounce──filter(q != "")──────────┘                      │
//	subject, query, page(filtered), results ──────combine──> Snapshot ┘
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/zoobzio/bindz"
	"github.com/zoobzio/bindz/hn"
	"github.com/zoobzio/bindz/internal/observability"
)

// Event names accepted by Session.Dispatch.
const (
	EventChangeQuery   = "change_query"
	EventSelectSubject = "select_subject"
	EventChangePage    = "change_page"
)

// Observability event types emitted by Session.
const (
	EventAttach      observability.EventType = "session.attach"
	EventDetach      observability.EventType = "session.detach"
	EventFetchResult observability.EventType = "session.fetch.result"
)

// DefaultDebounce is the quiet period applied to query edits.
const DefaultDebounce = time.Second

// Searcher performs one search. *hn.Client implements it.
type Searcher interface {
	Search(ctx context.Context, q hn.Query) ([]hn.Story, error)
}

// Options configures a Session. The zero value is usable.
type Options struct {
	// Debounce is the quiet period for query edits. Zero selects DefaultDebounce.
	Debounce time.Duration

	// LatestOnly drops results of searches superseded by a newer request.
	// When false, results are shown in completion order.
	LatestOnly bool

	// Context is passed to every search. It is never cancelled by the session.
	Context context.Context

	Clock     bindz.Clock
	Scheduler bindz.Scheduler
	Observer  observability.Observer

	// Logger records panics raised by the fetch diagnostics. Nil selects
	// slog.Default().
	Logger *slog.Logger

	// OnPageChange runs before the page channel changes, e.g. to scroll
	// the story list back to the top.
	OnPageChange func()
}

// Session wires the channels, the search pipeline and the view binding for
// one interactive search.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Session struct {
	channels  Channels
	fetch     *bindz.AsyncMapper[hn.Query, []hn.Story]
	requests  bindz.Stream[hn.Query]
	snapshots bindz.Stream[Snapshot]
	binding   *bindz.Binding[Snapshot]
	observer  observability.Observer
	ctx       context.Context
	onPage    func()
}

// NewSession builds the pipeline over ch. Nothing is subscribed until Attach.
func NewSession(ch Channels, searcher Searcher, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Clock == nil {
		opts.Clock = bindz.RealClock
	}
	if opts.Scheduler == nil {
		opts.Scheduler = bindz.Inline
	}
	if opts.Observer == nil {
		opts.Observer = observability.NoOpObserver{}
	}

	s := &Session{
		channels: ch,
		observer: opts.Observer,
		ctx:      opts.Context,
		onPage:   opts.OnPageChange,
	}

	pages := bindz.NewFilter(func(p int) bool { return p >= 0 }).
		WithName("valid-page").
		Process(ch.Page)

	debounced := bindz.NewDebounce[string](opts.Debounce, opts.Clock).
		WithName("query-debounce").
		WithScheduler(opts.Scheduler).
		Process(ch.Query)
	queries := bindz.NewFilter(func(q string) bool { return q != "" }).
		WithName("non-empty-query").
		Process(debounced)

	s.requests = bindz.Combine3(ch.Subject, pages, queries, func(subject hn.Subject, page int, text string) hn.Query {
		return hn.Query{Subject: subject, Page: page, Text: text}
	})

	s.fetch = bindz.NewAsyncMapper(searcher.Search).
		WithName("search").
		WithContext(opts.Context).
		WithScheduler(opts.Scheduler).
		WithLatestOnly(opts.LatestOnly)

	results := bindz.NewTap(s.logResult).
		WithName("fetch-diagnostics").
		WithLogger(opts.Logger).
		Process(s.fetch.Process(s.requests))

	s.snapshots = bindz.Combine4(ch.Subject, ch.Query, pages, results,
		func(subject hn.Subject, query string, page int, r bindz.Result[[]hn.Story]) Snapshot {
			snap := Snapshot{Query: query, Subject: subject, Page: page, Fetched: true}
			if r.IsError() {
				snap.Err = r.Err()
				return snap
			}
			snap.Stories = r.Value()
			return snap
		})

	s.binding = bindz.NewBinding(s.snapshots, bindz.Handlers{
		EventChangeQuery:   bindz.On(ch.Query.Set),
		EventSelectSubject: bindz.On(ch.Subject.Set),
		EventChangePage: bindz.On(func(p int) {
			if s.onPage != nil {
				s.onPage()
			}
			ch.Page.Set(p)
		}),
	}, ch.Snapshot()).WithName("session")

	return s
}

func (s *Session) logResult(r bindz.Result[[]hn.Story]) {
	data := map[string]any{}
	if r.IsError() {
		data["error"] = r.Err().Error()
		if q, ok := r.Error().Item.(hn.Query); ok {
			data["subject"] = string(q.Subject)
			data["page"] = q.Page
			data["query"] = q.Text
		}
	} else {
		data["hits"] = len(r.Value())
	}
	s.emit(EventFetchResult, data)
}

func (s *Session) emit(typ observability.EventType, data map[string]any) {
	s.observer.OnEvent(s.ctx, observability.Event{
		Type:      typ,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "app.Session",
		Data:      data,
	})
}

// Attach renders the current snapshot and subscribes render to every update.
func (s *Session) Attach(render func(Snapshot)) error {
	if err := s.binding.Attach(render); err != nil {
		return err
	}
	s.emit(EventAttach, nil)
	return nil
}

// Detach stops rendering. Searches already started keep running.
func (s *Session) Detach() error {
	if err := s.binding.Detach(); err != nil {
		return err
	}
	s.emit(EventDetach, map[string]any{"in_flight": s.fetch.InFlight()})
	return nil
}

// Dispatch forwards a named UI event to its handler.
func (s *Session) Dispatch(event string, arg any) error {
	return s.binding.Dispatch(event, arg)
}

// NextPage advances the page channel by one.
func (s *Session) NextPage() error {
	return s.Dispatch(EventChangePage, s.channels.Page.Get()+1)
}

// PrevPage moves the page channel back by one. It does nothing at page 0.
func (s *Session) PrevPage() error {
	p := s.channels.Page.Get()
	if p <= 0 {
		return nil
	}
	return s.Dispatch(EventChangePage, p-1)
}

// CycleSubject selects the subject following the current one.
func (s *Session) CycleSubject() error {
	return s.Dispatch(EventSelectSubject, s.channels.Subject.Get().Next())
}

// State returns the most recently rendered snapshot.
func (s *Session) State() Snapshot {
	return s.binding.State()
}

// Channels returns the session inputs.
func (s *Session) Channels() Channels {
	return s.channels
}

// Binding returns the underlying view binding.
func (s *Session) Binding() *bindz.Binding[Snapshot] {
	return s.binding
}

// Snapshots returns the composed stream without going through the binding.
func (s *Session) Snapshots() bindz.Stream[Snapshot] {
	return s.snapshots
}

// Requests returns the stream of search tuples the fetch stage receives.
func (s *Session) Requests() bindz.Stream[hn.Query] {
	return s.requests
}

// InFlight returns the number of searches that have not returned yet.
func (s *Session) InFlight() int64 {
	return s.fetch.InFlight()
}
