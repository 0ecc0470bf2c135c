package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

const (
	minProjectNameLen = 3
	fallbackBranch    = "main"
)

type projectUseCase struct {
	repo     interfaces.ProjectRepository
	items    *itemLoader
	defaults []*model.Project
	opts     *options

	mu     sync.Mutex
	seeded bool
}

// NewProject creates the project use case. defaults are seeded into a
// repository found empty on first use, and restored by ResetProjects.
func NewProject(repo interfaces.ProjectRepository, tickets interfaces.TicketSource, commits interfaces.CommitSource, defaults []*model.Project, opts ...Option) interfaces.ProjectUseCase {
	return &projectUseCase{
		repo:     repo,
		items:    &itemLoader{tickets: tickets, commits: commits},
		defaults: defaults,
		opts:     newOptions(opts),
	}
}

func (uc *projectUseCase) copyDefaults() []*model.Project {
	out := make([]*model.Project, len(uc.defaults))
	for i, p := range uc.defaults {
		out[i] = p.Copy()
	}
	return out
}

func (uc *projectUseCase) list(ctx context.Context) ([]*model.Project, error) {
	projects, err := uc.repo.ListProjects(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	if uc.seeded || len(projects) > 0 || len(uc.defaults) == 0 {
		uc.seeded = true
		return projects, nil
	}

	ctxlog.From(ctx).Info("Seeding default projects", "count", len(uc.defaults))
	projects = uc.copyDefaults()
	if err := uc.repo.ReplaceProjects(ctx, projects); err != nil {
		return nil, goerr.Wrap(err, "failed to seed projects")
	}
	uc.seeded = true
	return projects, nil
}

func (uc *projectUseCase) get(ctx context.Context, id string) (*model.Project, error) {
	if _, err := uc.list(ctx); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetProject(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("id", id))
	}
	return p, nil
}

func (uc *projectUseCase) ListProjects(ctx context.Context) ([]*model.Project, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.list(ctx)
}

func (uc *projectUseCase) GetProject(ctx context.Context, id string) (*model.Project, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.get(ctx, id)
}

// CreateProject validates input and adds the project at the top of the list.
// An empty branch falls back to the repository's default branch, then "main".
func (uc *projectUseCase) CreateProject(ctx context.Context, input *model.ProjectInput) (*model.Project, error) {
	if input == nil {
		return nil, goerr.Wrap(model.ErrInvalidInput, "project input is required")
	}
	p := &model.Project{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(input.Name),
		JiraKey:    strings.ToUpper(strings.TrimSpace(input.JiraKey)),
		DevopsRepo: strings.TrimSpace(input.DevopsRepo),
		Branch:     strings.TrimSpace(input.Branch),
	}
	if len([]rune(p.Name)) < minProjectNameLen {
		return nil, goerr.Wrap(model.ErrInvalidInput, "project name is too short", goerr.V("name", p.Name))
	}
	if p.JiraKey == "" || p.DevopsRepo == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "jira key and repository are required",
			goerr.V("jira_key", p.JiraKey),
			goerr.V("repo", p.DevopsRepo),
		)
	}

	if p.Branch == "" {
		branch, err := uc.defaultBranch(ctx, p.DevopsRepo)
		if err != nil {
			return nil, err
		}
		p.Branch = branch
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, err := uc.list(ctx); err != nil {
		return nil, err
	}
	if err := uc.repo.PutProject(ctx, p); err != nil {
		return nil, goerr.Wrap(err, "failed to save project", goerr.V("id", p.ID))
	}

	ctxlog.From(ctx).Info("Created project", "id", p.ID, "name", p.Name, "branch", p.Branch)
	return p, nil
}

func (uc *projectUseCase) defaultBranch(ctx context.Context, repo string) (string, error) {
	repos, err := uc.items.commits.ListRepositories(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list repositories")
	}
	for _, r := range repos {
		if r.Name == repo && r.DefaultBranch != "" {
			return r.DefaultBranch, nil
		}
	}
	return fallbackBranch, nil
}

func (uc *projectUseCase) DeleteProject(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, err := uc.list(ctx); err != nil {
		return err
	}
	if err := uc.repo.DeleteProject(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete project", goerr.V("id", id))
	}
	ctxlog.From(ctx).Info("Deleted project", "id", id)
	return nil
}

// ResetProjects replaces every project with the defaults
func (uc *projectUseCase) ResetProjects(ctx context.Context) ([]*model.Project, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	projects := uc.copyDefaults()
	if err := uc.repo.ReplaceProjects(ctx, projects); err != nil {
		return nil, goerr.Wrap(err, "failed to reset projects")
	}
	ctxlog.From(ctx).Info("Reset projects", "count", len(projects))
	return projects, nil
}

// ListItems returns the tickets and commits of a project with its saved selection
func (uc *projectUseCase) ListItems(ctx context.Context, id string) (*model.ProjectItems, error) {
	p, err := uc.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	tickets, commits, err := uc.items.load(ctx, p)
	if err != nil {
		return nil, err
	}
	sel, err := uc.repo.GetSelection(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get selection", goerr.V("id", id))
	}

	return &model.ProjectItems{
		Tickets:   tickets,
		Commits:   commits,
		Selection: filterSelection(sel, tickets, commits),
	}, nil
}

func (uc *projectUseCase) GetSelection(ctx context.Context, id string) (*model.Selection, error) {
	if _, err := uc.GetProject(ctx, id); err != nil {
		return nil, err
	}
	sel, err := uc.repo.GetSelection(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get selection", goerr.V("id", id))
	}
	return sel, nil
}

// PutSelection saves the selected item IDs, dropping IDs the providers do not know
func (uc *projectUseCase) PutSelection(ctx context.Context, id string, sel *model.Selection) (*model.Selection, error) {
	if sel == nil {
		return nil, goerr.Wrap(model.ErrInvalidInput, "selection is required")
	}
	p, err := uc.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	tickets, commits, err := uc.items.load(ctx, p)
	if err != nil {
		return nil, err
	}

	filtered := filterSelection(sel, tickets, commits)
	if dropped := len(sel.Tickets) + len(sel.Commits) - len(filtered.Tickets) - len(filtered.Commits); dropped > 0 {
		ctxlog.From(ctx).Warn("Dropped unknown items from selection", "id", id, "dropped", dropped)
	}

	if err := uc.repo.PutSelection(ctx, id, filtered); err != nil {
		return nil, goerr.Wrap(err, "failed to save selection", goerr.V("id", id))
	}
	return filtered, nil
}

// SyncProject refreshes item counts and the last sync time from the providers
func (uc *projectUseCase) SyncProject(ctx context.Context, id string) (*model.Project, error) {
	p, err := uc.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	tickets, commits, err := uc.items.load(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.opts.now()
	p.LastSynced = &now
	p.TicketCount = len(tickets)
	p.CommitCount = len(commits)
	if err := uc.repo.PutProject(ctx, p); err != nil {
		return nil, goerr.Wrap(err, "failed to save project", goerr.V("id", id))
	}

	ctxlog.From(ctx).Info("Synced project",
		"id", id,
		"tickets", p.TicketCount,
		"commits", p.CommitCount,
	)
	return p, nil
}
