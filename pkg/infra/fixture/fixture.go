// Package fixture serves canned demo data embedded in the binary. It
// implements the ticket and commit sources used when no real provider is
// configured, so callers cannot tell simulated data from real data.
package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/tidwall/jsonc"
)

//go:embed data/*.jsonc
var embedded embed.FS

// MaxItems caps ticket and commit lists
const MaxItems = 100

// Fixture holds the demo data set
type Fixture struct {
	jiraProjects []*model.JiraProject
	tickets      []*model.Ticket
	repos        []*model.Repository
	commits      []*model.Commit
	projects     []*model.Project
	users        map[string]*model.User
	connections  []byte
}

type userRecord struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// New loads the embedded demo data set
func New() (*Fixture, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open embedded fixtures")
	}
	return NewFromFS(sub)
}

// NewFromFS loads a data set from fsys. Every file is JSON with comments allowed.
func NewFromFS(fsys fs.FS) (*Fixture, error) {
	f := &Fixture{users: make(map[string]*model.User)}

	if err := decode(fsys, "jira_projects.jsonc", &f.jiraProjects); err != nil {
		return nil, err
	}

	var tickets struct {
		Tickets []*model.Ticket `json:"tickets"`
	}
	if err := decode(fsys, "jira_tickets.jsonc", &tickets); err != nil {
		return nil, err
	}
	f.tickets = tickets.Tickets

	if err := decode(fsys, "devops_repos.jsonc", &f.repos); err != nil {
		return nil, err
	}

	var commits struct {
		Commits []*model.Commit `json:"commits"`
	}
	if err := decode(fsys, "devops_commits.jsonc", &commits); err != nil {
		return nil, err
	}
	f.commits = commits.Commits

	if err := decode(fsys, "projects.jsonc", &f.projects); err != nil {
		return nil, err
	}

	var users []userRecord
	if err := decode(fsys, "users.jsonc", &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		f.users[strings.ToLower(u.Email)] = &model.User{
			Email:    u.Email,
			Name:     u.Name,
			Role:     u.Role,
			Password: u.Password,
		}
	}

	raw, err := fs.ReadFile(fsys, "connected_accounts.jsonc")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read fixture", goerr.V("file", "connected_accounts.jsonc"))
	}
	f.connections = jsonc.ToJSON(raw)
	if _, err := f.DefaultConnections(); err != nil {
		return nil, err
	}

	return f, nil
}

func decode(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, path.Clean(name))
	if err != nil {
		return goerr.Wrap(err, "failed to read fixture", goerr.V("file", name))
	}
	if err := json.Unmarshal(jsonc.ToJSON(raw), v); err != nil {
		return goerr.Wrap(err, "failed to parse fixture", goerr.V("file", name))
	}
	return nil
}

// ListJiraProjects returns the demo Jira projects
func (f *Fixture) ListJiraProjects(ctx context.Context) ([]*model.JiraProject, error) {
	out := make([]*model.JiraProject, 0, len(f.jiraProjects))
	for _, p := range f.jiraProjects {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

// ListTickets returns the demo tickets. Like the hosted demo, tickets are
// shared by all projects so jiraKey does not filter.
func (f *Fixture) ListTickets(ctx context.Context, jiraKey string) ([]*model.Ticket, error) {
	n := min(len(f.tickets), MaxItems)
	out := make([]*model.Ticket, 0, n)
	for _, t := range f.tickets[:n] {
		c := *t
		c.Labels = append([]string(nil), t.Labels...)
		out = append(out, &c)
	}
	return out, nil
}

// ListRepositories returns the demo repositories
func (f *Fixture) ListRepositories(ctx context.Context) ([]*model.Repository, error) {
	out := make([]*model.Repository, 0, len(f.repos))
	for _, r := range f.repos {
		c := *r
		out = append(out, &c)
	}
	return out, nil
}

// ListCommits returns the demo commits for any repository and branch
func (f *Fixture) ListCommits(ctx context.Context, repo, branch string) ([]*model.Commit, error) {
	n := min(len(f.commits), MaxItems)
	out := make([]*model.Commit, 0, n)
	for _, c := range f.commits[:n] {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// FindUser returns the demo user with the given email (case-insensitive)
func (f *Fixture) FindUser(ctx context.Context, email string) (*model.User, error) {
	u, ok := f.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "user not found", goerr.V("email", email))
	}
	c := *u
	return &c, nil
}

// DefaultProjects returns fresh copies of the seed projects
func (f *Fixture) DefaultProjects() []*model.Project {
	out := make([]*model.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p.Copy())
	}
	return out
}

// DefaultConnections returns a fresh copy of the seed connected-accounts state
func (f *Fixture) DefaultConnections() (*model.Connections, error) {
	var conns model.Connections
	if err := json.Unmarshal(f.connections, &conns); err != nil {
		return nil, goerr.Wrap(err, "failed to parse fixture", goerr.V("file", "connected_accounts.jsonc"))
	}
	return &conns, nil
}
