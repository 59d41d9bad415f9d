package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrSessionClosed is returned for work submitted after Close.
var ErrSessionClosed = errors.New("session closed")

// ErrJobPanicked wraps the value recovered from a panicking job.
var ErrJobPanicked = errors.New("session job panicked")

type job struct {
	fn   func(*App) error
	done chan error
}

// Session serializes all access to an App on a single goroutine, the way a
// browser runs every handler on its UI thread. Later events supersede earlier
// ones; no handler ever observes another half-applied.
type Session struct {
	app       *App
	jobs      chan job
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession starts the loop for app.
func NewSession(app *App) *Session {
	s := &Session{
		app:  app,
		jobs: make(chan job),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case j := <-s.jobs:
			j.done <- runJob(j.fn, s.app)
		case <-s.done:
			return
		}
	}
}

// runJob turns a panicking handler into an error so the loop survives it.
func runJob(fn func(*App) error, app *App) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()
	return fn(app)
}

// Do runs fn on the session goroutine and waits for it.
func (s *Session) Do(ctx context.Context, fn func(*App) error) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	j := job{fn: fn, done: make(chan error, 1)}
	select {
	case s.jobs <- j:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// Once accepted the job runs to completion; the caller may stop waiting.
	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch applies ev on the session goroutine.
func (s *Session) Dispatch(ctx context.Context, ev Event) error {
	return s.Do(ctx, func(a *App) error { return a.Dispatch(ev) })
}

// Render writes the current document.
func (s *Session) Render(ctx context.Context, w io.Writer) error {
	return s.Do(ctx, func(a *App) error { return a.Render(w) })
}

// Close stops the loop. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
