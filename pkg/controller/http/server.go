package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/infra/schema"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	webhookSecret string
	validator     *schema.Validator
	report        func(ctx context.Context, err error)
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret sets the webhook secret. The GitHub webhook endpoint is
// mounted only when a secret is set.
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// WithValidator replaces the request body validator
func WithValidator(v *schema.Validator) Option {
	return func(c *config) {
		c.validator = v
	}
}

// WithErrorReporter sets a function receiving every internal server error
func WithErrorReporter(report func(ctx context.Context, err error)) Option {
	return func(c *config) {
		c.report = report
	}
}

// UseCases bundles the use cases served by the HTTP API
type UseCases struct {
	Auth       interfaces.AuthUseCase
	Generate   interfaces.GenerateUseCase
	Template   interfaces.TemplateUseCase
	Project    interfaces.ProjectUseCase
	Export     interfaces.ExportUseCase
	Connection interfaces.ConnectionUseCase
	Dashboard  interfaces.DashboardUseCase
	Webhook    interfaces.WebhookUseCase
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

type handler struct {
	uc        UseCases
	validator *schema.Validator
	report    func(ctx context.Context, err error)
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, uc UseCases, opts ...Option) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.validator == nil {
		v, err := schema.New(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create request validator")
		}
		cfg.validator = v
	}

	h := &handler{
		uc:        uc,
		validator: cfg.validator,
		report:    cfg.report,
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	router.Post("/api/login", h.login)
	router.Post("/api/generateReleaseNote", h.generateReleaseNote)
	router.Get("/api/dashboard", h.dashboard)

	router.Get("/api/templates", h.listTemplates)
	router.Post("/api/templates", h.createTemplate)
	router.Post("/api/templates/preview", h.previewContent)
	router.Get("/api/templates/{id}", h.getTemplate)
	router.Put("/api/templates/{id}", h.updateTemplateContent)
	router.Delete("/api/templates/{id}", h.deleteTemplate)
	router.Post("/api/templates/{id}/rename", h.renameTemplate)
	router.Post("/api/templates/{id}/duplicate", h.duplicateTemplate)
	router.Post("/api/templates/{id}/reset", h.resetTemplate)
	router.Get("/api/templates/{id}/preview", h.previewTemplate)

	router.Get("/api/projects", h.listProjects)
	router.Post("/api/projects", h.createProject)
	router.Post("/api/projects/reset", h.resetProjects)
	router.Get("/api/projects/{id}", h.getProject)
	router.Delete("/api/projects/{id}", h.deleteProject)
	router.Get("/api/projects/{id}/items", h.listProjectItems)
	router.Post("/api/projects/{id}/sync", h.syncProject)
	router.Get("/api/projects/{id}/selection", h.getSelection)
	router.Put("/api/projects/{id}/selection", h.putSelection)
	router.Get("/api/projects/{id}/export", h.exportProject)
	router.Post("/api/projects/{id}/publish", h.publishProject)

	router.Get("/api/connections", h.listConnections)
	router.Post("/api/connections/{id}/{action}", h.connectionAction)

	if cfg.webhookSecret != "" {
		webhookHandler := NewWebhookHandler(cfg.webhookSecret, uc.Webhook)
		webhookHandler.fail = h.fail
		router.Post("/hooks/github", webhookHandler.Handle)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
