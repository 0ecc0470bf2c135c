package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/cli/config"
	controller "github.com/m-mizutani/releasegpt/pkg/controller/http"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/infra/fixture"
	"github.com/m-mizutani/releasegpt/pkg/infra/markdown"
	"github.com/m-mizutani/releasegpt/pkg/usecase"
	"github.com/m-mizutani/releasegpt/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		storageCfg config.Storage
		githubCfg  config.GitHub
		slackCfg   config.Slack
		sentryCfg  config.Sentry
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting releasegpt server",
				slog.String("addr", serverCfg.Addr),
				slog.String("storage_dir", storageCfg.Dir),
				slog.Any("github", githubCfg),
				slog.Any("slack", slackCfg),
			)

			report, flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			var dispatcherOpts []async.Option
			var serverOpts []controller.Option
			if report != nil {
				dispatcherOpts = append(dispatcherOpts, async.WithReporter(async.Reporter(report)))
				serverOpts = append(serverOpts, controller.WithErrorReporter(report))
			}
			dispatcher := async.New(dispatcherOpts...)

			uc, err := buildUseCases(ctx, &storageCfg, &githubCfg, &slackCfg, dispatcher)
			if err != nil {
				return err
			}

			serverOpts = append(serverOpts,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			server, err := controller.NewServer(ctx, *uc, serverOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}
			if err := dispatcher.Wait(shutdownCtx); err != nil {
				logger.Warn("Background jobs did not finish", slog.Any("error", err))
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// buildUseCases wires repositories and providers into the use cases. The
// GitHub commit source replaces fixture commits when credentials are given;
// tickets always come from fixtures.
func buildUseCases(
	ctx context.Context,
	storageCfg *config.Storage,
	githubCfg *config.GitHub,
	slackCfg *config.Slack,
	dispatcher *async.Dispatcher,
) (*controller.UseCases, error) {
	logger := ctxlog.From(ctx)

	f, err := fixture.New()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load fixtures")
	}
	conns, err := f.DefaultConnections()
	if err != nil {
		return nil, err
	}

	repo, err := storageCfg.New()
	if err != nil {
		return nil, err
	}

	var commits interfaces.CommitSource = f
	if githubCfg.Enabled() {
		client, err := githubCfg.NewClient()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub client")
		}
		commits = client
		logger.Info("Using GitHub as commit source", slog.Any("repos", githubCfg.Repos))
	}

	var publisher interfaces.Publisher
	slackPublisher, err := slackCfg.NewPublisher()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack publisher")
	}
	if slackPublisher != nil {
		publisher = slackPublisher
	}

	templates, err := usecase.NewTemplate(repo, markdown.New())
	if err != nil {
		return nil, err
	}
	projects := usecase.NewProject(repo, f, commits, f.DefaultProjects())
	generate := usecase.NewGenerate()
	export := usecase.NewExport(projects, templates, generate, publisher, dispatcher)

	return &controller.UseCases{
		Auth:       usecase.NewAuth(f),
		Generate:   generate,
		Template:   templates,
		Project:    projects,
		Export:     export,
		Connection: usecase.NewConnection(repo, f, commits, conns),
		Dashboard:  usecase.NewDashboard(projects, f, commits),
		Webhook:    usecase.NewWebhook(projects, export, dispatcher),
	}, nil
}
