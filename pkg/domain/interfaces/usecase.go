package interfaces

import (
	"context"

	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// GenerateUseCase produces release notes from tickets and commits
type GenerateUseCase interface {
	Generate(ctx context.Context, req *model.GenerateRequest) (*model.GeneratedNote, error)
}

// TemplateUseCase manages release note templates
type TemplateUseCase interface {
	ListTemplates(ctx context.Context, filter string) ([]*model.Template, error)
	GetTemplate(ctx context.Context, id string) (*model.Template, error)
	CreateTemplate(ctx context.Context, input *model.TemplateInput) (*model.Template, error)
	UpdateTemplateContent(ctx context.Context, id, content string) (*model.Template, error)
	RenameTemplate(ctx context.Context, id, name string) (*model.Template, error)
	DuplicateTemplate(ctx context.Context, id string) (*model.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	ResetTemplate(ctx context.Context, id string) (*model.Template, error)
	// PreviewTemplate renders content against the sample context; HTML is filled when withHTML is set
	PreviewTemplate(ctx context.Context, content string, withHTML bool) (*model.Preview, error)
}

// ProjectUseCase manages projects and their item selections
type ProjectUseCase interface {
	ListProjects(ctx context.Context) ([]*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	CreateProject(ctx context.Context, input *model.ProjectInput) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ResetProjects(ctx context.Context) ([]*model.Project, error)
	ListItems(ctx context.Context, id string) (*model.ProjectItems, error)
	GetSelection(ctx context.Context, id string) (*model.Selection, error)
	PutSelection(ctx context.Context, id string, sel *model.Selection) (*model.Selection, error)
	SyncProject(ctx context.Context, id string) (*model.Project, error)
}

// ExportUseCase renders a project's release note into a template
type ExportUseCase interface {
	Export(ctx context.Context, req *model.ExportRequest) (*model.ExportResult, error)
	// Publish exports and hands the result to the publisher in the background
	Publish(ctx context.Context, req *model.ExportRequest) (*model.ExportResult, error)
}

// ConnectionUseCase manages provider connections
type ConnectionUseCase interface {
	ListConnections(ctx context.Context) (*model.Connections, error)
	TestConnection(ctx context.Context, id string) (*model.ConnectionTestResult, error)
	SyncConnection(ctx context.Context, id string) (*model.Provider, error)
	Disconnect(ctx context.Context, id string) (*model.Provider, error)
	Reconnect(ctx context.Context, id string) (*model.Provider, error)
	Configure(ctx context.Context, id string, input *model.ConfigureInput) (*model.Provider, error)
	Connect(ctx context.Context, id string, scopesAccepted bool) (*model.Provider, error)
}

// DashboardUseCase aggregates project and provider data
type DashboardUseCase interface {
	Dashboard(ctx context.Context) (*model.Dashboard, error)
}

// AuthUseCase checks demo credentials
type AuthUseCase interface {
	Login(ctx context.Context, cred *model.Credentials) (*model.User, error)
}
