package usecase

import (
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// itemLoader reads the tickets and commits available to a project
type itemLoader struct {
	tickets interfaces.TicketSource
	commits interfaces.CommitSource
}

func (l *itemLoader) load(ctx context.Context, p *model.Project) ([]*model.Ticket, []*model.Commit, error) {
	tickets, err := l.tickets.ListTickets(ctx, p.JiraKey)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list tickets", goerr.V("jira_key", p.JiraKey))
	}
	commits, err := l.commits.ListCommits(ctx, p.DevopsRepo, p.Branch)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list commits",
			goerr.V("repo", p.DevopsRepo),
			goerr.V("branch", p.Branch),
		)
	}
	return tickets, commits, nil
}

// pick returns the items whose IDs are in ids, in item order. Unknown IDs are ignored.
func pick[T any](items []T, ids []string, id func(T) string) []T {
	out := make([]T, 0, len(ids))
	for _, item := range items {
		if slices.Contains(ids, id(item)) {
			out = append(out, item)
		}
	}
	return out
}

func ticketID(t *model.Ticket) string { return t.ID }
func commitID(c *model.Commit) string { return c.ID }

// filterSelection drops IDs that do not refer to an available item, keeping
// order and removing duplicates
func filterSelection(sel *model.Selection, tickets []*model.Ticket, commits []*model.Commit) *model.Selection {
	known := func(ids []string, exists func(string) bool) []string {
		out := []string{}
		for _, id := range ids {
			if exists(id) && !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
		return out
	}

	return &model.Selection{
		Tickets: known(sel.Tickets, func(id string) bool {
			return slices.ContainsFunc(tickets, func(t *model.Ticket) bool { return t.ID == id })
		}),
		Commits: known(sel.Commits, func(id string) bool {
			return slices.ContainsFunc(commits, func(c *model.Commit) bool { return c.ID == id })
		}),
	}
}
