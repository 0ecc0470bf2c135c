package fixture_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/infra/fixture"
)

func TestFixture_Embedded(t *testing.T) {
	ctx := context.Background()
	f, err := fixture.New()
	gt.NoError(t, err)

	tickets, err := f.ListTickets(ctx, "SR")
	gt.NoError(t, err)
	gt.Number(t, len(tickets)).Greater(0)
	gt.Value(t, tickets[0].Key).Equal("SR-101")
	gt.Value(t, tickets[0].Type).Equal(model.TicketTypeStory)

	commits, err := f.ListCommits(ctx, "team/skyroute-service", "main")
	gt.NoError(t, err)
	gt.Number(t, len(commits)).Greater(0)
	gt.Value(t, commits[0].ShortHash()).Equal("d91a2b3")

	repos, err := f.ListRepositories(ctx)
	gt.NoError(t, err)
	gt.Value(t, repos[0].DefaultBranch).Equal("main")

	projects, err := f.ListJiraProjects(ctx)
	gt.NoError(t, err)
	gt.Value(t, projects[0].Key).Equal("SR")

	gt.Number(t, len(f.DefaultProjects())).Greater(0)

	conns, err := f.DefaultConnections()
	gt.NoError(t, err)
	gt.NotNil(t, conns.Provider("jira"))
	gt.Value(t, conns.Provider("github").Status).Equal(model.ProviderAttention)
	gt.Value(t, conns.Provider("gitlab").SyncMode).Equal(model.SyncModeNone)
}

func TestFixture_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	f, err := fixture.New()
	gt.NoError(t, err)

	tickets, err := f.ListTickets(ctx, "")
	gt.NoError(t, err)
	tickets[0].Title = "changed"

	again, err := f.ListTickets(ctx, "")
	gt.NoError(t, err)
	gt.Value(t, again[0].Title).NotEqual("changed")

	conns, err := f.DefaultConnections()
	gt.NoError(t, err)
	conns.Providers[0].Status = model.ProviderError

	fresh, err := f.DefaultConnections()
	gt.NoError(t, err)
	gt.Value(t, fresh.Providers[0].Status).Equal(model.ProviderConnected)
}

func TestFixture_FindUser(t *testing.T) {
	ctx := context.Background()
	f, err := fixture.New()
	gt.NoError(t, err)

	u, err := f.FindUser(ctx, " Demo@ReleaseGPT.dev ")
	gt.NoError(t, err)
	gt.Value(t, u.Name).Equal("Demo User")
	gt.Value(t, u.Password).Equal("demo1234")

	_, err = f.FindUser(ctx, "nobody@example.com")
	gt.True(t, errors.Is(err, model.ErrNotFound))
}

func TestFixture_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"jira_projects.jsonc":      {Data: []byte(`[] // none`)},
		"jira_tickets.jsonc":       {Data: []byte(`{"tickets": [{"id": "1", "key": "X-1", "title": "t", "type": "Bug",}]}`)},
		"devops_repos.jsonc":       {Data: []byte(`[]`)},
		"devops_commits.jsonc":     {Data: []byte(`{"commits": []}`)},
		"projects.jsonc":           {Data: []byte(`[]`)},
		"users.jsonc":              {Data: []byte(`[]`)},
		"connected_accounts.jsonc": {Data: []byte(`/* empty */ {"providers": []}`)},
	}

	f, err := fixture.NewFromFS(fsys)
	gt.NoError(t, err)

	tickets, err := f.ListTickets(context.Background(), "X")
	gt.NoError(t, err)
	gt.Number(t, len(tickets)).Equal(1)
	gt.Value(t, tickets[0].Type).Equal(model.TicketTypeBug)
}

func TestFixture_Broken(t *testing.T) {
	fsys := fstest.MapFS{
		"jira_projects.jsonc": {Data: []byte(`{not json`)},
	}
	_, err := fixture.NewFromFS(fsys)
	gt.Error(t, err)
}
