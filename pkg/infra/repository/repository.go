// Package repository stores templates, projects, selections and provider
// connections either in process memory or in a local directory of JSON
// documents.
package repository

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

type collection string

const (
	collectionTemplates   collection = "templates"
	collectionProjects    collection = "projects"
	collectionSelections  collection = "selections"
	collectionConnections collection = "connections"
)

// Repository implements the template, project and connection repositories
type Repository struct {
	mu          sync.RWMutex
	templates   []*model.Template
	projects    []*model.Project
	selections  map[string]*model.Selection
	connections *model.Connections

	// persist is called with the lock held after every mutation
	persist func(c collection, key string) error
}

// commit persists a mutation and reverts the in-memory state with undo when
// writing fails, so memory never runs ahead of storage
func (r *Repository) commit(c collection, key string, undo func()) error {
	if err := r.persist(c, key); err != nil {
		undo()
		return err
	}
	return nil
}

func (r *Repository) restoreTemplates(prev []*model.Template) func() {
	return func() { r.templates = prev }
}

func (r *Repository) restoreProjects(prev []*model.Project) func() {
	return func() { r.projects = prev }
}

func (r *Repository) restoreSelection(projectID string) func() {
	prev, ok := r.selections[projectID]
	return func() {
		if ok {
			r.selections[projectID] = prev
		} else {
			delete(r.selections, projectID)
		}
	}
}

var (
	_ interfaces.TemplateRepository   = (*Repository)(nil)
	_ interfaces.ProjectRepository    = (*Repository)(nil)
	_ interfaces.ConnectionRepository = (*Repository)(nil)
)

// NewMemory creates an in-memory repository
func NewMemory() *Repository {
	return &Repository{
		selections: make(map[string]*model.Selection),
		persist:    func(collection, string) error { return nil },
	}
}

// ListTemplates returns all templates in stored order
func (r *Repository) ListTemplates(ctx context.Context) ([]*model.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t.Copy())
	}
	return out, nil
}

// GetTemplate returns a template by ID
func (r *Repository) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.templateIndex(id); i >= 0 {
		return r.templates[i].Copy(), nil
	}
	return nil, goerr.Wrap(model.ErrNotFound, "template not found", goerr.V("id", id))
}

// PutTemplate updates a template in place or prepends it when new
func (r *Repository) PutTemplate(ctx context.Context, tpl *model.Template) error {
	if tpl == nil || tpl.ID == "" {
		return goerr.Wrap(model.ErrInvalidInput, "template ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	undo := r.restoreTemplates(r.templates)
	if i := r.templateIndex(tpl.ID); i >= 0 {
		r.templates = slices.Clone(r.templates)
		r.templates[i] = tpl.Copy()
	} else {
		r.templates = append([]*model.Template{tpl.Copy()}, r.templates...)
	}
	return r.commit(collectionTemplates, "", undo)
}

// DeleteTemplate removes a template by ID
func (r *Repository) DeleteTemplate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.templateIndex(id)
	if i < 0 {
		return goerr.Wrap(model.ErrNotFound, "template not found", goerr.V("id", id))
	}
	undo := r.restoreTemplates(r.templates)
	r.templates = slices.Delete(slices.Clone(r.templates), i, i+1)
	return r.commit(collectionTemplates, "", undo)
}

// ReplaceTemplates overwrites the whole template list
func (r *Repository) ReplaceTemplates(ctx context.Context, templates []*model.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	undo := r.restoreTemplates(r.templates)
	r.templates = make([]*model.Template, 0, len(templates))
	for _, t := range templates {
		r.templates = append(r.templates, t.Copy())
	}
	return r.commit(collectionTemplates, "", undo)
}

func (r *Repository) templateIndex(id string) int {
	return slices.IndexFunc(r.templates, func(t *model.Template) bool { return t.ID == id })
}

// ListProjects returns all projects in stored order
func (r *Repository) ListProjects(ctx context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p.Copy())
	}
	return out, nil
}

// GetProject returns a project by ID
func (r *Repository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.projectIndex(id); i >= 0 {
		return r.projects[i].Copy(), nil
	}
	return nil, goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("id", id))
}

// PutProject updates a project in place or prepends it when new
func (r *Repository) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil || project.ID == "" {
		return goerr.Wrap(model.ErrInvalidInput, "project ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	undo := r.restoreProjects(r.projects)
	if i := r.projectIndex(project.ID); i >= 0 {
		r.projects = slices.Clone(r.projects)
		r.projects[i] = project.Copy()
	} else {
		r.projects = append([]*model.Project{project.Copy()}, r.projects...)
	}
	return r.commit(collectionProjects, "", undo)
}

// DeleteProject removes a project and its selection
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.projectIndex(id)
	if i < 0 {
		return goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("id", id))
	}
	undo := r.restoreProjects(r.projects)
	r.projects = slices.Delete(slices.Clone(r.projects), i, i+1)
	if err := r.commit(collectionProjects, "", undo); err != nil {
		return err
	}

	if _, ok := r.selections[id]; ok {
		undoSel := r.restoreSelection(id)
		delete(r.selections, id)
		return r.commit(collectionSelections, id, undoSel)
	}
	return nil
}

// ReplaceProjects overwrites the whole project list
func (r *Repository) ReplaceProjects(ctx context.Context, projects []*model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	undo := r.restoreProjects(r.projects)
	r.projects = make([]*model.Project, 0, len(projects))
	for _, p := range projects {
		r.projects = append(r.projects, p.Copy())
	}
	return r.commit(collectionProjects, "", undo)
}

func (r *Repository) projectIndex(id string) int {
	return slices.IndexFunc(r.projects, func(p *model.Project) bool { return p.ID == id })
}

// GetSelection returns the saved selection of a project, or an empty one
func (r *Repository) GetSelection(ctx context.Context, projectID string) (*model.Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sel, ok := r.selections[projectID]
	if !ok {
		return &model.Selection{Tickets: []string{}, Commits: []string{}}, nil
	}
	return copySelection(sel), nil
}

// PutSelection saves the selection of a project
func (r *Repository) PutSelection(ctx context.Context, projectID string, sel *model.Selection) error {
	if projectID == "" || sel == nil {
		return goerr.Wrap(model.ErrInvalidInput, "project ID and selection are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	undo := r.restoreSelection(projectID)
	r.selections[projectID] = copySelection(sel)
	return r.commit(collectionSelections, projectID, undo)
}

func copySelection(sel *model.Selection) *model.Selection {
	return &model.Selection{
		Tickets: append([]string{}, sel.Tickets...),
		Commits: append([]string{}, sel.Commits...),
	}
}

// GetConnections returns the connected-accounts state, or nil when unset
func (r *Repository) GetConnections(ctx context.Context) (*model.Connections, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.connections == nil {
		return nil, nil
	}
	return copyConnections(r.connections)
}

// PutConnections saves the connected-accounts state
func (r *Repository) PutConnections(ctx context.Context, conns *model.Connections) error {
	if conns == nil {
		return goerr.Wrap(model.ErrInvalidInput, "connections are required")
	}
	c, err := copyConnections(conns)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.connections
	r.connections = c
	return r.commit(collectionConnections, "", func() { r.connections = prev })
}

func copyConnections(conns *model.Connections) (*model.Connections, error) {
	raw, err := json.Marshal(conns)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to copy connections")
	}
	var out model.Connections
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to copy connections")
	}
	return &out, nil
}
