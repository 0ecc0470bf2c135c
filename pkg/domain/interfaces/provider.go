package interfaces

import (
	"context"

	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// TicketSource provides Jira projects and tickets
type TicketSource interface {
	ListJiraProjects(ctx context.Context) ([]*model.JiraProject, error)
	ListTickets(ctx context.Context, jiraKey string) ([]*model.Ticket, error)
}

// CommitSource provides repositories and commits
type CommitSource interface {
	ListRepositories(ctx context.Context) ([]*model.Repository, error)
	ListCommits(ctx context.Context, repo, branch string) ([]*model.Commit, error)
}

// Publisher delivers a rendered release note somewhere outside the service
type Publisher interface {
	Publish(ctx context.Context, title, body string) error
}

// UserDirectory looks up demo users
type UserDirectory interface {
	FindUser(ctx context.Context, email string) (*model.User, error)
}

// HTMLConverter converts Markdown to sanitized HTML
type HTMLConverter interface {
	ToHTML(markdown string) (string, error)
}
