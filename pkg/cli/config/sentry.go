package config

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (error reporting is disabled when empty)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("RELEASEGPT_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("RELEASEGPT_SENTRY_ENV"),
		},
	}
}

// Reporter sends an error to an error tracking service
type Reporter func(ctx context.Context, err error)

// Configure initializes the Sentry client. The returned reporter is nil and
// flush is a no-op when no DSN is set.
func (c *Sentry) Configure() (Reporter, func(), error) {
	if c.DSN == "" {
		return nil, func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     types.Version,
	}); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	flush := func() { sentry.Flush(2 * time.Second) }
	return newSentryReporter(sentry.CurrentHub()), flush, nil
}

// newSentryReporter captures errors on a clone of hub. Values attached with
// goerr are sent as the "goerr" context of the event.
func newSentryReporter(hub *sentry.Hub) Reporter {
	return func(ctx context.Context, err error) {
		local := hub.Clone()
		local.WithScope(func(scope *sentry.Scope) {
			if ge := goerr.Unwrap(err); ge != nil {
				if values := ge.Values(); len(values) > 0 {
					errCtx := sentry.Context{}
					for k, v := range values {
						errCtx[k] = v
					}
					scope.SetContext("goerr", errCtx)
				}
			}
			evID := local.CaptureException(err)
			if evID != nil {
				ctxlog.From(ctx).Info("error reported to sentry", "event_id", *evID)
			}
		})
	}
}
