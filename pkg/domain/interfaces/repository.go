package interfaces

import (
	"context"

	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// TemplateRepository persists release note templates. List order is significant.
type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]*model.Template, error)
	GetTemplate(ctx context.Context, id string) (*model.Template, error)
	// PutTemplate updates a template in place or prepends it when new
	PutTemplate(ctx context.Context, tpl *model.Template) error
	DeleteTemplate(ctx context.Context, id string) error
	// ReplaceTemplates overwrites the whole list
	ReplaceTemplates(ctx context.Context, templates []*model.Template) error
}

// ProjectRepository persists projects and their item selections
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	// PutProject updates a project in place or prepends it when new
	PutProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id string) error
	ReplaceProjects(ctx context.Context, projects []*model.Project) error

	// GetSelection returns an empty selection when none was saved
	GetSelection(ctx context.Context, projectID string) (*model.Selection, error)
	PutSelection(ctx context.Context, projectID string, sel *model.Selection) error
}

// ConnectionRepository persists the connected-accounts state
type ConnectionRepository interface {
	// GetConnections returns nil when nothing was saved yet
	GetConnections(ctx context.Context) (*model.Connections, error)
	PutConnections(ctx context.Context, conns *model.Connections) error
}
