package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/infra/repository"
	"github.com/m-mizutani/releasegpt/pkg/render"
	"github.com/m-mizutani/releasegpt/pkg/usecase"
)

func TestDefaultTemplates(t *testing.T) {
	templates, err := usecase.DefaultTemplates()
	gt.NoError(t, err)
	gt.Number(t, len(templates)).Equal(3)

	ids := []string{templates[0].ID, templates[1].ID, templates[2].ID}
	gt.Value(t, ids).Equal([]string{"classic", "concise", "product-marketing"})

	for _, tpl := range templates {
		gt.True(t, tpl.IsDefault)
		gt.True(t, strings.HasSuffix(tpl.Content, "\n"))
		// built-in templates only use catalog tokens
		rendered := render.RenderString(tpl.Content, render.SampleContext("2025-08-20"))
		gt.False(t, strings.Contains(rendered, "{{"))
	}
	gt.True(t, strings.HasPrefix(templates[0].Content, "# {{TITLE}}\n\n{{NARRATIVE}}\n"))
}

func TestTemplate_SeedAndFilter(t *testing.T) {
	ctx := context.Background()
	uc, err := usecase.NewTemplate(repository.NewMemory(), nil, usecase.WithClock(fixedClock))
	gt.NoError(t, err)

	all, err := uc.ListTemplates(ctx, "")
	gt.NoError(t, err)
	gt.Number(t, len(all)).Equal(3)
	gt.Value(t, all[0].UpdatedAt).Equal(testNow)

	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "EMAIL", want: []string{"concise"}},
		{filter: "  narrative ", want: []string{"classic", "product-marketing"}},
		{filter: "nothing-matches", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := uc.ListTemplates(ctx, tt.filter)
			gt.NoError(t, err)
			ids := []string{}
			for _, tpl := range got {
				ids = append(ids, tpl.ID)
			}
			gt.Value(t, ids).Equal(tt.want)
		})
	}
}

func TestTemplate_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	uc, err := usecase.NewTemplate(repo, nil, usecase.WithClock(fixedClock))
	gt.NoError(t, err)

	created, err := uc.CreateTemplate(ctx, &model.TemplateInput{})
	gt.NoError(t, err)
	gt.Value(t, created.Name).Equal("New Template")
	gt.Value(t, created.Description).Equal("Start customizing your release note format.")
	gt.String(t, created.Content).Contains("{{IMPROVEMENTS}}")
	gt.False(t, created.IsDefault)

	list, err := uc.ListTemplates(ctx, "")
	gt.NoError(t, err)
	gt.Number(t, len(list)).Equal(4)
	gt.Value(t, list[0].ID).Equal(created.ID)

	updated, err := uc.UpdateTemplateContent(ctx, created.ID, "# {{TITLE}}")
	gt.NoError(t, err)
	gt.Value(t, updated.Content).Equal("# {{TITLE}}")

	renamed, err := uc.RenameTemplate(ctx, created.ID, "  Weekly  ")
	gt.NoError(t, err)
	gt.Value(t, renamed.Name).Equal("Weekly")

	_, err = uc.RenameTemplate(ctx, created.ID, " x ")
	gt.True(t, errors.Is(err, model.ErrInvalidInput))

	dup, err := uc.DuplicateTemplate(ctx, "classic")
	gt.NoError(t, err)
	gt.Value(t, dup.Name).Equal("Classic Release Notes (Copy)")
	gt.False(t, dup.IsDefault)
	gt.Value(t, dup.ID).NotEqual("classic")

	list, err = uc.ListTemplates(ctx, "")
	gt.NoError(t, err)
	gt.Value(t, list[0].ID).Equal(dup.ID)

	gt.True(t, errors.Is(uc.DeleteTemplate(ctx, "classic"), model.ErrConflict))
	gt.NoError(t, uc.DeleteTemplate(ctx, dup.ID))
	_, err = uc.GetTemplate(ctx, dup.ID)
	gt.True(t, errors.Is(err, model.ErrNotFound))

	_, err = uc.ResetTemplate(ctx, created.ID)
	gt.True(t, errors.Is(err, model.ErrConflict))
}

func TestTemplate_Reset(t *testing.T) {
	ctx := context.Background()
	uc, err := usecase.NewTemplate(repository.NewMemory(), nil, usecase.WithClock(fixedClock))
	gt.NoError(t, err)

	_, err = uc.UpdateTemplateContent(ctx, "concise", "edited")
	gt.NoError(t, err)
	_, err = uc.RenameTemplate(ctx, "concise", "Mine")
	gt.NoError(t, err)

	reset, err := uc.ResetTemplate(ctx, "concise")
	gt.NoError(t, err)
	gt.Value(t, reset.Name).Equal("Concise (Email style)")
	gt.True(t, strings.HasPrefix(reset.Content, "**{{PROJECT_NAME}} — {{DATE}}**"))
}

func TestTemplate_DeleteLastRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	gt.NoError(t, repo.ReplaceTemplates(ctx, []*model.Template{{ID: "only", Name: "Only", Content: "x"}}))

	uc, err := usecase.NewTemplate(repo, nil, usecase.WithClock(fixedClock))
	gt.NoError(t, err)

	gt.NoError(t, uc.DeleteTemplate(ctx, "only"))
	list, err := uc.ListTemplates(ctx, "")
	gt.NoError(t, err)
	gt.Number(t, len(list)).Equal(3)
	gt.Value(t, list[0].ID).Equal("classic")
}

func TestTemplate_Preview(t *testing.T) {
	ctx := context.Background()

	t.Run("markdown only", func(t *testing.T) {
		uc, err := usecase.NewTemplate(repository.NewMemory(), nil, usecase.WithClock(fixedClock))
		gt.NoError(t, err)

		preview, err := uc.PreviewTemplate(ctx, "{{DATE}} {{FIXES}}", false)
		gt.NoError(t, err)
		gt.True(t, strings.HasPrefix(preview.Markdown, "2025-08-20 - "))
		gt.Value(t, preview.HTML).Equal("")

		_, err = uc.PreviewTemplate(ctx, "{{DATE}}", true)
		gt.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("with HTML", func(t *testing.T) {
		html := &mockHTML{ToHTMLFunc: func(md string) (string, error) {
			return "<p>" + md + "</p>", nil
		}}
		uc, err := usecase.NewTemplate(repository.NewMemory(), html, usecase.WithClock(fixedClock))
		gt.NoError(t, err)

		preview, err := uc.PreviewTemplate(ctx, "{{DATE}}", true)
		gt.NoError(t, err)
		gt.Value(t, preview.Markdown).Equal("2025-08-20")
		gt.Value(t, preview.HTML).Equal("<p>2025-08-20</p>")
	})

	t.Run("converter error", func(t *testing.T) {
		html := &mockHTML{ToHTMLFunc: func(md string) (string, error) {
			return "", errors.New("boom")
		}}
		uc, err := usecase.NewTemplate(repository.NewMemory(), html)
		gt.NoError(t, err)

		_, err = uc.PreviewTemplate(ctx, "x", true)
		gt.Error(t, err)
	})
}
