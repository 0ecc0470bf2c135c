package usecase

import (
	"cmp"
	"context"
	"slices"

	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// number of recent tickets and commits on the dashboard
const dashboardRecent = 6

type dashboardUseCase struct {
	projects interfaces.ProjectUseCase
	items    *itemLoader
}

// NewDashboard creates the dashboard use case
func NewDashboard(projects interfaces.ProjectUseCase, tickets interfaces.TicketSource, commits interfaces.CommitSource) interfaces.DashboardUseCase {
	return &dashboardUseCase{
		projects: projects,
		items:    &itemLoader{tickets: tickets, commits: commits},
	}
}

// Dashboard aggregates the tickets and commits of every project. Items shared
// by several projects are counted once.
func (uc *dashboardUseCase) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	projects, err := uc.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	var tickets []*model.Ticket
	var commits []*model.Commit
	seenTickets, seenCommits := map[string]bool{}, map[string]bool{}
	for _, p := range projects {
		ts, cs, err := uc.items.load(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, t := range ts {
			if !seenTickets[t.ID] {
				seenTickets[t.ID] = true
				tickets = append(tickets, t)
			}
		}
		for _, c := range cs {
			if !seenCommits[c.ID] {
				seenCommits[c.ID] = true
				commits = append(commits, c)
			}
		}
	}

	byType := map[string]int{}
	for _, t := range tickets {
		byType[string(t.Type)]++
	}
	byAuthor := map[string]int{}
	for _, c := range commits {
		if c.Author != "" {
			byAuthor[c.Author]++
		}
	}

	recentTickets := slices.Clone(tickets)
	slices.SortStableFunc(recentTickets, func(a, b *model.Ticket) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) })
	recentCommits := slices.Clone(commits)
	slices.SortStableFunc(recentCommits, func(a, b *model.Commit) int { return cmp.Compare(b.Date, a.Date) })

	d := &model.Dashboard{
		Totals: model.DashboardTotals{
			Projects: len(projects),
			Tickets:  len(tickets),
			Commits:  len(commits),
			Authors:  len(byAuthor),
		},
		Projects:        projects,
		RecentTickets:   recentTickets[:min(dashboardRecent, len(recentTickets))],
		RecentCommits:   recentCommits[:min(dashboardRecent, len(recentCommits))],
		TicketsByType:   []model.TypeCount{},
		CommitsByAuthor: []model.AuthorCount{},
	}
	for k, v := range byType {
		d.TicketsByType = append(d.TicketsByType, model.TypeCount{Type: k, Count: v})
	}
	slices.SortFunc(d.TicketsByType, func(a, b model.TypeCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Type, b.Type))
	})
	for k, v := range byAuthor {
		d.CommitsByAuthor = append(d.CommitsByAuthor, model.AuthorCount{Author: k, Commits: v})
	}
	slices.SortFunc(d.CommitsByAuthor, func(a, b model.AuthorCount) int {
		return cmp.Or(cmp.Compare(b.Commits, a.Commits), cmp.Compare(a.Author, b.Author))
	})

	return d, nil
}
