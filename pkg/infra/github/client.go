// Package github implements the commit source on top of the GitHub REST API.
package github

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// maxCommits caps a single ListCommits call
const maxCommits = 100

// Client reads repositories and commits from GitHub
type Client struct {
	githubClient *github.Client
	repos        []string
}

var _ interfaces.CommitSource = (*Client)(nil)

// Option configures a Client
type Option func(*Client) error

// WithBaseURL points the client at another API endpoint, such as GitHub
// Enterprise or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return goerr.Wrap(err, "invalid GitHub base URL", goerr.V("url", baseURL))
		}
		c.githubClient.BaseURL = u
		return nil
	}
}

// NewClient creates a client with GitHub App authentication. repos are the
// "owner/name" repositories exposed by ListRepositories.
func NewClient(appID, installationID int64, privateKey []byte, repos []string, opts ...Option) (*Client, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}
	return newClient(github.NewClient(&http.Client{Transport: itr}), repos, opts)
}

// NewClientWithToken creates a client authenticated with a personal access token
func NewClientWithToken(token string, repos []string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is empty")
	}
	return newClient(github.NewClient(nil).WithAuthToken(token), repos, opts)
}

func newClient(gh *github.Client, repos []string, opts []Option) (*Client, error) {
	c := &Client{githubClient: gh}
	for _, r := range repos {
		if _, _, err := splitRepo(r); err != nil {
			return nil, err
		}
		c.repos = append(c.repos, r)
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func splitRepo(fullName string) (string, string, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", goerr.Wrap(model.ErrInvalidInput, "repository must be owner/name", goerr.V("repo", fullName))
	}
	return owner, name, nil
}

// ListRepositories returns the configured repositories with their default branches
func (c *Client) ListRepositories(ctx context.Context) ([]*model.Repository, error) {
	out := make([]*model.Repository, 0, len(c.repos))
	for _, fullName := range c.repos {
		owner, name, _ := splitRepo(fullName)
		repo, _, err := c.githubClient.Repositories.Get(ctx, owner, name)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get repository", goerr.V("repo", fullName))
		}

		out = append(out, &model.Repository{
			ID:            strconv.FormatInt(repo.GetID(), 10),
			Name:          repo.GetFullName(),
			DefaultBranch: repo.GetDefaultBranch(),
		})
	}
	return out, nil
}

// ListCommits returns the latest commits of a branch. An empty branch means
// the repository's default branch.
func (c *Client) ListCommits(ctx context.Context, repo, branch string) ([]*model.Commit, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	commits, _, err := c.githubClient.Repositories.ListCommits(ctx, owner, name, &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: maxCommits},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commits",
			goerr.V("repo", repo),
			goerr.V("branch", branch),
		)
	}

	out := make([]*model.Commit, 0, len(commits))
	for _, rc := range commits {
		commit := &model.Commit{
			ID:   rc.GetSHA(),
			Hash: rc.GetSHA(),
		}
		subject, _, _ := strings.Cut(rc.GetCommit().GetMessage(), "\n")
		commit.Message = subject

		author := rc.GetCommit().GetAuthor()
		commit.Author = author.GetName()
		if commit.Author == "" {
			commit.Author = rc.GetAuthor().GetLogin()
		}
		if date := author.GetDate(); !date.IsZero() {
			commit.Date = date.Format("2006-01-02")
		}
		out = append(out, commit)
	}
	return out, nil
}
