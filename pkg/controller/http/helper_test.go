package http_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/releasegpt/pkg/controller/http"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/infra/fixture"
	"github.com/m-mizutani/releasegpt/pkg/infra/markdown"
	"github.com/m-mizutani/releasegpt/pkg/infra/repository"
	"github.com/m-mizutani/releasegpt/pkg/usecase"
	"github.com/m-mizutani/releasegpt/pkg/utils/async"
)

const testSecret = "test-secret"

var testNow = time.Date(2025, 8, 20, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// mockPublisher records published notes
type mockPublisher struct {
	mu     sync.Mutex
	titles []string
}

func (m *mockPublisher) Publish(ctx context.Context, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.titles = append(m.titles, title)
	return nil
}

func (m *mockPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.titles)
}

type testEnv struct {
	server     *controller.Server
	uc         controller.UseCases
	dispatcher *async.Dispatcher
	publisher  *mockPublisher
}

type envOption func(uc *controller.UseCases, publisher *interfaces.Publisher)

func withoutPublisher() envOption {
	return func(uc *controller.UseCases, publisher *interfaces.Publisher) {
		*publisher = nil
	}
}

func newTestEnv(t *testing.T, opts []envOption, serverOpts ...controller.Option) *testEnv {
	t.Helper()

	f, err := fixture.New()
	gt.NoError(t, err)
	conns, err := f.DefaultConnections()
	gt.NoError(t, err)

	repo := repository.NewMemory()
	dispatcher := async.New()
	mock := &mockPublisher{}

	var publisher interfaces.Publisher = mock
	uc := controller.UseCases{}
	for _, opt := range opts {
		opt(&uc, &publisher)
	}

	templates, err := usecase.NewTemplate(repo, markdown.New(), usecase.WithClock(fixedClock))
	gt.NoError(t, err)
	projects := usecase.NewProject(repo, f, f, f.DefaultProjects(), usecase.WithClock(fixedClock))
	generate := usecase.NewGenerate(usecase.WithClock(fixedClock))
	export := usecase.NewExport(projects, templates, generate, publisher, dispatcher)

	if uc.Auth == nil {
		uc.Auth = usecase.NewAuth(f)
	}
	if uc.Dashboard == nil {
		uc.Dashboard = usecase.NewDashboard(projects, f, f)
	}
	uc.Generate = generate
	uc.Template = templates
	uc.Project = projects
	uc.Export = export
	uc.Connection = usecase.NewConnection(repo, f, f, conns, usecase.WithClock(fixedClock))
	uc.Webhook = usecase.NewWebhook(projects, export, dispatcher)

	serverOpts = append([]controller.Option{
		controller.WithAddr("localhost:0"),
		controller.WithWebhookSecret(testSecret),
	}, serverOpts...)

	server, err := controller.NewServer(context.Background(), uc, serverOpts...)
	gt.NoError(t, err)

	return &testEnv{
		server:     server,
		uc:         uc,
		dispatcher: dispatcher,
		publisher:  mock,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.server.Handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	gt.NoError(t, e.dispatcher.Wait(ctx))
}

