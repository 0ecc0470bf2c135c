package config

import (
	"context"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func newCapturingHub(t *testing.T) (*sentry.Hub, *[]*sentry.Event) {
	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, event)
			return nil
		},
	})
	gt.NoError(t, err)
	return sentry.NewHub(client, sentry.NewScope()), &events
}

func TestSentryReporter_GoerrValues(t *testing.T) {
	hub, events := newCapturingHub(t)
	report := newSentryReporter(hub)

	err := goerr.Wrap(errors.New("connection refused"), "failed to sync project",
		goerr.V("project_id", "sky"),
		goerr.V("attempt", 3),
	)
	report(context.Background(), err)

	gt.Number(t, len(*events)).Equal(1)
	errCtx, ok := (*events)[0].Contexts["goerr"]
	gt.True(t, ok)
	gt.Value(t, errCtx["project_id"]).Equal(any("sky"))
	gt.Value(t, errCtx["attempt"]).Equal(any(3))
}

func TestSentryReporter_PlainError(t *testing.T) {
	hub, events := newCapturingHub(t)
	report := newSentryReporter(hub)

	report(context.Background(), errors.New("boom"))

	gt.Number(t, len(*events)).Equal(1)
	_, ok := (*events)[0].Contexts["goerr"]
	gt.False(t, ok)
}

func TestSentryReporter_ScopeDoesNotLeak(t *testing.T) {
	hub, events := newCapturingHub(t)
	report := newSentryReporter(hub)

	report(context.Background(), goerr.New("first", goerr.V("key", "value")))
	report(context.Background(), errors.New("second"))

	gt.Number(t, len(*events)).Equal(2)
	_, ok := (*events)[1].Contexts["goerr"]
	gt.False(t, ok)
}
