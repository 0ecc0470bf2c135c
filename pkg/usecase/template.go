package usecase

import (
	"context"
	_ "embed"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/render"
	"github.com/pelletier/go-toml/v2"
)

//go:embed templates/defaults.toml
var defaultsTOML []byte

// minTemplateNameLen is the shortest name a template can be renamed to
const minTemplateNameLen = 2

type templateDefaults struct {
	Blank     templateDef   `toml:"blank"`
	Templates []templateDef `toml:"template"`
}

type templateDef struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Content     string `toml:"content"`
}

func loadTemplateDefaults() (*templateDefaults, error) {
	var defs templateDefaults
	if err := toml.Unmarshal(defaultsTOML, &defs); err != nil {
		return nil, goerr.Wrap(err, "failed to parse built-in templates")
	}
	if len(defs.Templates) == 0 {
		return nil, goerr.New("no built-in templates")
	}
	return &defs, nil
}

// DefaultTemplates returns the built-in templates in seed order
func DefaultTemplates() ([]*model.Template, error) {
	defs, err := loadTemplateDefaults()
	if err != nil {
		return nil, err
	}
	return defs.templates(time.Time{}), nil
}

func (d *templateDefaults) templates(updatedAt time.Time) []*model.Template {
	out := make([]*model.Template, len(d.Templates))
	for i, def := range d.Templates {
		out[i] = &model.Template{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Content:     def.Content,
			UpdatedAt:   updatedAt,
			IsDefault:   true,
		}
	}
	return out
}

type templateUseCase struct {
	repo interfaces.TemplateRepository
	html interfaces.HTMLConverter
	defs *templateDefaults
	opts *options

	// serializes read-modify-write sequences against the repository
	mu sync.Mutex
}

// NewTemplate creates the template use case. html may be nil, in which case
// HTML previews are rejected.
func NewTemplate(repo interfaces.TemplateRepository, html interfaces.HTMLConverter, opts ...Option) (interfaces.TemplateUseCase, error) {
	defs, err := loadTemplateDefaults()
	if err != nil {
		return nil, err
	}
	return &templateUseCase{
		repo: repo,
		html: html,
		defs: defs,
		opts: newOptions(opts),
	}, nil
}

func (uc *templateUseCase) defaultByID(id string) *templateDef {
	for i := range uc.defs.Templates {
		if uc.defs.Templates[i].ID == id {
			return &uc.defs.Templates[i]
		}
	}
	return nil
}

// list returns all templates, seeding the built-in ones into an empty repository
func (uc *templateUseCase) list(ctx context.Context) ([]*model.Template, error) {
	templates, err := uc.repo.ListTemplates(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list templates")
	}
	if len(templates) > 0 {
		return templates, nil
	}

	ctxlog.From(ctx).Info("Seeding built-in templates", "count", len(uc.defs.Templates))
	defaults := uc.defs.templates(uc.opts.now())
	if err := uc.repo.ReplaceTemplates(ctx, defaults); err != nil {
		return nil, goerr.Wrap(err, "failed to seed templates")
	}
	return defaults, nil
}

func (uc *templateUseCase) get(ctx context.Context, id string) (*model.Template, error) {
	if _, err := uc.list(ctx); err != nil {
		return nil, err
	}
	tpl, err := uc.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get template", goerr.V("id", id))
	}
	return tpl, nil
}

func (uc *templateUseCase) put(ctx context.Context, tpl *model.Template) (*model.Template, error) {
	if err := uc.repo.PutTemplate(ctx, tpl); err != nil {
		return nil, goerr.Wrap(err, "failed to save template", goerr.V("id", tpl.ID))
	}
	return tpl, nil
}

// ListTemplates returns templates whose name or description contains filter, case-insensitively
func (uc *templateUseCase) ListTemplates(ctx context.Context, filter string) ([]*model.Template, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	templates, err := uc.list(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter))
	if q == "" {
		return templates, nil
	}
	out := make([]*model.Template, 0, len(templates))
	for _, t := range templates {
		if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (uc *templateUseCase) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.get(ctx, id)
}

// CreateTemplate adds a template at the top of the list. Empty fields take the blank template's values.
func (uc *templateUseCase) CreateTemplate(ctx context.Context, input *model.TemplateInput) (*model.Template, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if input == nil {
		input = &model.TemplateInput{}
	}
	if _, err := uc.list(ctx); err != nil {
		return nil, err
	}

	tpl := &model.Template{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Content:     input.Content,
		UpdatedAt:   uc.opts.now(),
	}
	if tpl.Name == "" {
		tpl.Name = uc.defs.Blank.Name
	}
	if tpl.Description == "" {
		tpl.Description = uc.defs.Blank.Description
	}
	if tpl.Content == "" {
		tpl.Content = uc.defs.Blank.Content
	}

	ctxlog.From(ctx).Info("Creating template", "id", tpl.ID, "name", tpl.Name)
	return uc.put(ctx, tpl)
}

func (uc *templateUseCase) UpdateTemplateContent(ctx context.Context, id, content string) (*model.Template, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	tpl, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl.Content = content
	tpl.UpdatedAt = uc.opts.now()
	return uc.put(ctx, tpl)
}

func (uc *templateUseCase) RenameTemplate(ctx context.Context, id, name string) (*model.Template, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	name = strings.TrimSpace(name)
	if len([]rune(name)) < minTemplateNameLen {
		return nil, goerr.Wrap(model.ErrInvalidInput, "name too short", goerr.V("name", name))
	}

	tpl, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl.Name = name
	tpl.UpdatedAt = uc.opts.now()
	return uc.put(ctx, tpl)
}

// DuplicateTemplate copies a template under a new ID at the top of the list
func (uc *templateUseCase) DuplicateTemplate(ctx context.Context, id string) (*model.Template, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	base, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := base.Copy()
	dup.ID = uuid.NewString()
	dup.Name = base.Name + " (Copy)"
	dup.IsDefault = false
	dup.UpdatedAt = uc.opts.now()
	return uc.put(ctx, dup)
}

// DeleteTemplate removes a user template. Built-in templates cannot be
// deleted, and an emptied list is reseeded with the built-in templates.
func (uc *templateUseCase) DeleteTemplate(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	tpl, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if tpl.IsDefault {
		return goerr.Wrap(model.ErrConflict, "built-in templates cannot be deleted", goerr.V("id", id))
	}

	if err := uc.repo.DeleteTemplate(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete template", goerr.V("id", id))
	}
	ctxlog.From(ctx).Info("Deleted template", "id", id)

	_, err = uc.list(ctx)
	return err
}

// ResetTemplate restores a built-in template to its shipped name and content
func (uc *templateUseCase) ResetTemplate(ctx context.Context, id string) (*model.Template, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	tpl, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	def := uc.defaultByID(id)
	if !tpl.IsDefault || def == nil {
		return nil, goerr.Wrap(model.ErrConflict, "only built-in templates can be reset", goerr.V("id", id))
	}

	tpl.Name = def.Name
	tpl.Description = def.Description
	tpl.Content = def.Content
	tpl.UpdatedAt = uc.opts.now()
	return uc.put(ctx, tpl)
}

// PreviewTemplate renders content against the sample release context
func (uc *templateUseCase) PreviewTemplate(ctx context.Context, content string, withHTML bool) (*model.Preview, error) {
	rc := render.SampleContext(uc.opts.now().Format("2006-01-02"))
	preview := &model.Preview{
		Markdown: render.RenderString(content, rc),
	}

	if withHTML {
		if uc.html == nil {
			return nil, goerr.Wrap(model.ErrInvalidInput, "HTML preview is not available")
		}
		html, err := uc.html.ToHTML(preview.Markdown)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert preview to HTML")
		}
		preview.HTML = html
	}

	return preview, nil
}
