package async

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Reporter receives errors and recovered panics from background jobs
type Reporter func(ctx context.Context, err error)

// Dispatcher runs jobs in the background and keeps track of the ones still
// running so that shutdown can wait for them.
type Dispatcher struct {
	wg     sync.WaitGroup
	report Reporter
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithReporter sets a Reporter called for every failed or panicking job
func WithReporter(report Reporter) Option {
	return func(d *Dispatcher) {
		d.report = report
	}
}

// New creates a Dispatcher
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes handler in a new goroutine.
//
// The handler receives a background context that keeps the logger of ctx
// but is not cancelled with it. Panics are recovered and logged with their
// stack; returned errors are logged. Both are passed to the Reporter.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)
	logger := ctxlog.From(newCtx).With("job", name)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
				d.reportError(newCtx, goerr.New("panic in async handler",
					goerr.V("job", name),
					goerr.V("recover", fmt.Sprint(r)),
				))
			}
		}()

		if err := handler(newCtx); err != nil {
			logger.Error("error in async handler", "error", err)
			d.reportError(newCtx, err)
		}
	}()
}

func (d *Dispatcher) reportError(ctx context.Context, err error) {
	if d.report != nil {
		d.report(ctx, err)
	}
}

// Wait blocks until every dispatched job has finished or ctx is done
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "background jobs did not finish")
	}
}

// newBackgroundContext creates a context.Background() that carries the
// ctxlog logger of ctx
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	return newCtx
}
