package usecase

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// MaxAuditEntries is the number of audit entries kept, newest first
const MaxAuditEntries = 200

// Audit event names
const (
	AuditTestOK        = "test_ok"
	AuditTestFailed    = "test_failed"
	AuditSyncCompleted = "sync_completed"
	AuditDisconnected  = "disconnected"
	AuditReconnected   = "reconnected"
	AuditConfigured    = "configured"
	AuditConnected     = "connected"
)

// issues a successful sync resolves
var resolvedBySync = regexp.MustCompile(`(?i)expired|token`)

var defaultConnectScopes = []string{"read:project", "read:issue", "repo:read"}

type connectionUseCase struct {
	repo     interfaces.ConnectionRepository
	tickets  interfaces.TicketSource
	commits  interfaces.CommitSource
	defaults *model.Connections
	opts     *options

	mu sync.Mutex
}

// NewConnection creates the connection use case. defaults is the state used
// until anything is saved.
func NewConnection(repo interfaces.ConnectionRepository, tickets interfaces.TicketSource, commits interfaces.CommitSource, defaults *model.Connections, opts ...Option) interfaces.ConnectionUseCase {
	if defaults == nil {
		defaults = &model.Connections{}
	}
	return &connectionUseCase{
		repo:     repo,
		tickets:  tickets,
		commits:  commits,
		defaults: defaults,
		opts:     newOptions(opts),
	}
}

func (uc *connectionUseCase) load(ctx context.Context) (*model.Connections, error) {
	conns, err := uc.repo.GetConnections(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get connections")
	}
	if conns != nil {
		return conns, nil
	}

	if err := uc.repo.PutConnections(ctx, uc.defaults); err != nil {
		return nil, goerr.Wrap(err, "failed to seed connections")
	}
	return uc.repo.GetConnections(ctx)
}

// update applies fn to one provider, records an audit entry and saves the state
func (uc *connectionUseCase) update(ctx context.Context, id string, fn func(p *model.Provider, now time.Time) (event, details string, err error)) (*model.Provider, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	conns, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	p := conns.Provider(id)
	if p == nil {
		return nil, goerr.Wrap(model.ErrNotFound, "provider not found", goerr.V("id", id))
	}

	now := uc.opts.now()
	event, details, err := fn(p, now)
	if err != nil {
		return nil, err
	}
	if event != "" {
		addAudit(conns, &model.AuditEntry{At: now, Event: event, Provider: id, Details: details})
	}

	if err := uc.repo.PutConnections(ctx, conns); err != nil {
		return nil, goerr.Wrap(err, "failed to save connections")
	}

	ctxlog.From(ctx).Info("Updated provider",
		"id", id,
		"event", event,
		"status", p.Status,
	)
	return p, nil
}

func addAudit(conns *model.Connections, entry *model.AuditEntry) {
	conns.Audit = append([]*model.AuditEntry{entry}, conns.Audit...)
	if len(conns.Audit) > MaxAuditEntries {
		conns.Audit = conns.Audit[:MaxAuditEntries]
	}
}

func nextSync(mode model.SyncMode, now time.Time) *time.Time {
	interval := mode.Interval()
	if interval == 0 {
		return nil
	}
	t := now.Add(interval)
	return &t
}

func (uc *connectionUseCase) ListConnections(ctx context.Context) (*model.Connections, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.load(ctx)
}

// TestConnection checks a provider. Only providers in error state fail.
func (uc *connectionUseCase) TestConnection(ctx context.Context, id string) (*model.ConnectionTestResult, error) {
	var result model.ConnectionTestResult
	_, err := uc.update(ctx, id, func(p *model.Provider, now time.Time) (string, string, error) {
		if p.Status == model.ProviderError {
			result = model.ConnectionTestResult{OK: false, Message: "Could not reach provider"}
			return AuditTestFailed, result.Message, nil
		}
		result = model.ConnectionTestResult{OK: true, Message: "Connectivity verified"}
		return AuditTestOK, result.Message, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SyncConnection refreshes a provider's stats from its data source
func (uc *connectionUseCase) SyncConnection(ctx context.Context, id string) (*model.Provider, error) {
	return uc.update(ctx, id, func(p *model.Provider, now time.Time) (string, string, error) {
		if p.Status == model.ProviderDisconnected {
			return "", "", goerr.Wrap(model.ErrConflict, "provider is not connected", goerr.V("id", id))
		}

		stats, err := uc.collectStats(ctx, p.Kind)
		if err != nil {
			return "", "", err
		}
		if p.Stats == nil {
			p.Stats = map[string]int{}
		}
		for k, v := range stats {
			p.Stats[k] = v
		}

		p.LastSync = &now
		p.NextSync = nextSync(p.SyncMode, now)
		issues := []string{}
		for _, issue := range p.Issues {
			if !resolvedBySync.MatchString(issue) {
				issues = append(issues, issue)
			}
		}
		p.Issues = issues
		return AuditSyncCompleted, "Data refreshed", nil
	})
}

func (uc *connectionUseCase) collectStats(ctx context.Context, kind string) (map[string]int, error) {
	switch kind {
	case model.ProviderKindTickets:
		projects, err := uc.tickets.ListJiraProjects(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list jira projects")
		}
		tickets, err := uc.tickets.ListTickets(ctx, "")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list tickets")
		}
		return map[string]int{"projects": len(projects), "tickets": len(tickets)}, nil

	case model.ProviderKindCommits:
		repos, err := uc.commits.ListRepositories(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list repositories")
		}
		seen := map[string]bool{}
		for _, r := range repos {
			commits, err := uc.commits.ListCommits(ctx, r.Name, r.DefaultBranch)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to list commits", goerr.V("repo", r.Name))
			}
			for _, c := range commits {
				seen[c.Hash] = true
			}
		}
		return map[string]int{"repos": len(repos), "commits": len(seen)}, nil

	default:
		return nil, nil
	}
}

func (uc *connectionUseCase) Disconnect(ctx context.Context, id string) (*model.Provider, error) {
	return uc.update(ctx, id, func(p *model.Provider, now time.Time) (string, string, error) {
		p.Status = model.ProviderDisconnected
		p.Account = nil
		p.LastSync = nil
		p.NextSync = nil
		p.Scopes = []string{}
		p.Issues = []string{}
		p.SyncMode = model.SyncModeNone
		return AuditDisconnected, "User disconnected provider", nil
	})
}

// Reconnect restores a provider to connected, keeping its account and schedule
func (uc *connectionUseCase) Reconnect(ctx context.Context, id string) (*model.Provider, error) {
	return uc.update(ctx, id, func(p *model.Provider, now time.Time) (string, string, error) {
		p.Status = model.ProviderConnected
		if p.LastSync == nil {
			p.LastSync = &now
		}
		if p.NextSync == nil {
			p.NextSync = nextSync(model.SyncModeDaily, now)
		}
		if p.SyncMode == model.SyncModeNone {
			p.SyncMode = model.SyncModeDaily
		}
		p.Issues = []string{}
		return AuditReconnected, "Token refreshed / re-auth", nil
	})
}

// Configure changes the sync mode. A filter only bumps the filterCount stat.
func (uc *connectionUseCase) Configure(ctx context.Context, id string, input *model.ConfigureInput) (*model.Provider, error) {
	if input == nil || !input.SyncMode.Valid() {
		return nil, goerr.Wrap(model.ErrInvalidInput, "invalid sync mode", goerr.V("id", id))
	}

	return uc.update(ctx, id, func(p *model.Provider, now time.Time) (string, string, error) {
		p.SyncMode = input.SyncMode
		p.NextSync = nextSync(input.SyncMode, now)

		mode := string(input.SyncMode)
		if mode == "" {
			mode = string(model.SyncModeManual)
		}
		details := "Sync mode set to " + mode
		if input.Filter != "" {
			if p.Stats == nil {
				p.Stats = map[string]int{}
			}
			p.Stats["filterCount"]++
			details += " with filter"
		}
		return AuditConfigured, details, nil
	})
}

// Connect completes the mock OAuth flow. Declined scopes leave the provider untouched.
func (uc *connectionUseCase) Connect(ctx context.Context, id string, scopesAccepted bool) (*model.Provider, error) {
	if !scopesAccepted {
		uc.mu.Lock()
		defer uc.mu.Unlock()

		conns, err := uc.load(ctx)
		if err != nil {
			return nil, err
		}
		p := conns.Provider(id)
		if p == nil {
			return nil, goerr.Wrap(model.ErrNotFound, "provider not found", goerr.V("id", id))
		}
		ctxlog.From(ctx).Info("Connect cancelled", "id", id)
		return p, nil
	}

	return uc.update(ctx, id, func(p *model.Provider, now time.Time) (string, string, error) {
		p.Status = model.ProviderConnected
		if p.Account == nil {
			p.Account = &model.ProviderAccount{User: "demo-user", Org: "demo-org"}
		}
		p.LastSync = &now
		p.SyncMode = model.SyncModeDaily
		p.NextSync = nextSync(model.SyncModeDaily, now)
		if len(p.Scopes) == 0 {
			p.Scopes = append([]string{}, defaultConnectScopes...)
		}
		return AuditConnected, "OAuth completed (mock)", nil
	})
}
