package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/infra/fixture"
	"github.com/m-mizutani/releasegpt/pkg/infra/repository"
	"github.com/m-mizutani/releasegpt/pkg/usecase"
	"github.com/m-mizutani/releasegpt/pkg/utils/async"
)

var testNow = time.Date(2025, 8, 20, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newFixture(t *testing.T) *fixture.Fixture {
	t.Helper()
	f, err := fixture.New()
	gt.NoError(t, err)
	return f
}

// mockPublisher records published notes
type mockPublisher struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, title)
	return nil
}

func (m *mockPublisher) titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.published...)
}

// mockHTML wraps Markdown in a marker instead of converting it
type mockHTML struct {
	ToHTMLFunc func(markdown string) (string, error)
}

func (m *mockHTML) ToHTML(markdown string) (string, error) {
	return m.ToHTMLFunc(markdown)
}

type testEnv struct {
	fixture    *fixture.Fixture
	repo       *repository.Repository
	dispatcher *async.Dispatcher
	publisher  *mockPublisher
	generate   interfaces.GenerateUseCase
	templates  interfaces.TemplateUseCase
	projects   interfaces.ProjectUseCase
	export     interfaces.ExportUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	f := newFixture(t)
	repo := repository.NewMemory()

	templates, err := usecase.NewTemplate(repo, nil, usecase.WithClock(fixedClock))
	gt.NoError(t, err)

	env := &testEnv{
		fixture:    f,
		repo:       repo,
		dispatcher: async.New(),
		publisher:  &mockPublisher{},
		generate:   usecase.NewGenerate(usecase.WithClock(fixedClock)),
		templates:  templates,
		projects:   usecase.NewProject(repo, f, f, f.DefaultProjects(), usecase.WithClock(fixedClock)),
	}
	env.export = usecase.NewExport(env.projects, env.templates, env.generate, env.publisher, env.dispatcher)
	return env
}
