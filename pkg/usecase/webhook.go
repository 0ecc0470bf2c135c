package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/utils/async"
)

type webhookUseCase struct {
	projects   interfaces.ProjectUseCase
	export     interfaces.ExportUseCase
	dispatcher *async.Dispatcher
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(projects interfaces.ProjectUseCase, export interfaces.ExportUseCase, dispatcher *async.Dispatcher) interfaces.WebhookUseCase {
	if dispatcher == nil {
		dispatcher = async.New()
	}
	return &webhookUseCase{
		projects:   projects,
		export:     export,
		dispatcher: dispatcher,
	}
}

// ProcessEvent publishes release notes for every project bound to the
// repository of a published release. Other events are only logged.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Warn("Unsupported event received",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	projects, err := uc.projects.ListProjects(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list projects", goerr.V("delivery", event.ID))
	}

	var matched int
	for _, p := range projects {
		if !strings.EqualFold(p.DevopsRepo, event.Repository) {
			continue
		}
		matched++

		projectID := p.ID
		uc.dispatcher.Dispatch(ctx, "release-note:"+projectID, func(ctx context.Context) error {
			return uc.publishRelease(ctx, projectID, event)
		})
	}

	if matched == 0 {
		logger.Info("No project is bound to the released repository", "repository", event.Repository)
	}
	return nil
}

// publishRelease publishes the saved selection of a project, or all of its
// items when nothing is selected
func (uc *webhookUseCase) publishRelease(ctx context.Context, projectID string, event *model.WebhookEvent) error {
	items, err := uc.projects.ListItems(ctx, projectID)
	if err != nil {
		return err
	}

	req := &model.ExportRequest{ProjectID: projectID}
	if items.Selection.Empty() {
		for _, t := range items.Tickets {
			req.TicketIDs = append(req.TicketIDs, t.ID)
		}
		for _, c := range items.Commits {
			req.CommitIDs = append(req.CommitIDs, c.ID)
		}
	}

	result, err := uc.export.Publish(ctx, req)
	if err != nil {
		return goerr.Wrap(err, "failed to publish release note",
			goerr.V("project", projectID),
			goerr.V("tag", event.TagName),
		)
	}

	ctxlog.From(ctx).Info("Release note queued for publishing",
		"project", projectID,
		"tag", event.TagName,
		"filename", result.Filename,
	)
	return nil
}
