package tui

import (
	"github.com/zoobzio/bindz"
	"github.com/zoobzio/bindz/internal/app"
)

// Dispatcher receives the UI events of the model. *app.Session implements it.
type Dispatcher interface {
	Dispatch(event string, arg any) error
	NextPage() error
	PrevPage() error
	CycleSubject() error
}

var _ Dispatcher = (*app.Session)(nil)

type scheduled struct {
	next      Dispatcher
	scheduler bindz.Scheduler
	onErr     func(error)
}

// Scheduled returns a Dispatcher that runs every call on s. Calls return
// immediately; failures are reported to onErr.
func Scheduled(d Dispatcher, s bindz.Scheduler, onErr func(error)) Dispatcher {
	return &scheduled{next: d, scheduler: s, onErr: onErr}
}

func (d *scheduled) run(fn func() error) error {
	d.scheduler.Schedule(func() {
		if err := fn(); err != nil && d.onErr != nil {
			d.onErr(err)
		}
	})
	return nil
}

func (d *scheduled) Dispatch(event string, arg any) error {
	return d.run(func() error { return d.next.Dispatch(event, arg) })
}

func (d *scheduled) NextPage() error {
	return d.run(d.next.NextPage)
}

func (d *scheduled) PrevPage() error {
	return d.run(d.next.PrevPage)
}

func (d *scheduled) CycleSubject() error {
	return d.run(d.next.CycleSubject)
}
