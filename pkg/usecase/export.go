package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/render"
	"github.com/m-mizutani/releasegpt/pkg/utils/async"
)

const (
	// ExportContentType is the media type of exported release notes
	ExportContentType = "text/markdown; charset=utf-8"

	exportFilenameSuffix   = "-notes.md"
	exportFilenameFallback = "release"
)

type exportUseCase struct {
	projects   interfaces.ProjectUseCase
	templates  interfaces.TemplateUseCase
	generate   interfaces.GenerateUseCase
	publisher  interfaces.Publisher
	dispatcher *async.Dispatcher
}

// NewExport creates the export use case. publisher may be nil, in which case
// Publish is rejected.
func NewExport(
	projects interfaces.ProjectUseCase,
	templates interfaces.TemplateUseCase,
	generate interfaces.GenerateUseCase,
	publisher interfaces.Publisher,
	dispatcher *async.Dispatcher,
) interfaces.ExportUseCase {
	if dispatcher == nil {
		dispatcher = async.New()
	}
	return &exportUseCase{
		projects:   projects,
		templates:  templates,
		generate:   generate,
		publisher:  publisher,
		dispatcher: dispatcher,
	}
}

// ExportFilename returns the download name for a project's release note
func ExportFilename(jiraKey string) string {
	base := strings.ToLower(strings.TrimSpace(jiraKey))
	if base == "" {
		base = exportFilenameFallback
	}
	return base + exportFilenameSuffix
}

// Export generates the release note of a project and renders it into a template
func (uc *exportUseCase) Export(ctx context.Context, req *model.ExportRequest) (*model.ExportResult, error) {
	if req == nil || req.ProjectID == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "project ID is required")
	}

	project, err := uc.projects.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	items, err := uc.projects.ListItems(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	ticketIDs, commitIDs := req.TicketIDs, req.CommitIDs
	if len(ticketIDs) == 0 && len(commitIDs) == 0 {
		ticketIDs, commitIDs = items.Selection.Tickets, items.Selection.Commits
	}

	note, err := uc.generate.Generate(ctx, &model.GenerateRequest{
		Project: project,
		Tickets: pick(items.Tickets, ticketIDs, ticketID),
		Commits: pick(items.Commits, commitIDs, commitID),
	})
	if err != nil {
		return nil, err
	}

	tpl, err := uc.template(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	body := render.Render(tpl, render.ContextFromNote(note, project))

	ctxlog.From(ctx).Info("Exported release note",
		"project", project.ID,
		"template", tpl.ID,
		"bytes", len(body),
	)

	return &model.ExportResult{
		Filename:    ExportFilename(project.JiraKey),
		ContentType: ExportContentType,
		TemplateID:  tpl.ID,
		Body:        body,
		Note:        note,
	}, nil
}

// template returns the template with id, or the first template when id is empty or unknown
func (uc *exportUseCase) template(ctx context.Context, id string) (*model.Template, error) {
	templates, err := uc.templates.ListTemplates(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, goerr.Wrap(model.ErrNotFound, "no template available")
	}

	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	if id != "" {
		ctxlog.From(ctx).Warn("Unknown template, falling back to the first one",
			"requested", id,
			"fallback", templates[0].ID,
		)
	}
	return templates[0], nil
}

// Publish exports the release note and posts it through the publisher in the background
func (uc *exportUseCase) Publish(ctx context.Context, req *model.ExportRequest) (*model.ExportResult, error) {
	if uc.publisher == nil {
		return nil, goerr.Wrap(model.ErrConflict, "no publisher is configured")
	}

	result, err := uc.Export(ctx, req)
	if err != nil {
		return nil, err
	}

	title, body := result.Note.Title, result.Body
	uc.dispatcher.Dispatch(ctx, "publish", func(ctx context.Context) error {
		if err := uc.publisher.Publish(ctx, title, body); err != nil {
			return goerr.Wrap(err, "failed to publish release note", goerr.V("title", title))
		}
		ctxlog.From(ctx).Info("Published release note", "title", title)
		return nil
	})

	return result, nil
}
