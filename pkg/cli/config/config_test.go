package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasegpt/pkg/cli/config"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

func TestStorage_New(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend without directory", func(t *testing.T) {
		cfg := &config.Storage{}
		repo, err := cfg.New()
		gt.NoError(t, err)

		templates, err := repo.ListTemplates(ctx)
		gt.NoError(t, err)
		gt.Number(t, len(templates)).Equal(0)
	})

	t.Run("file backend persists into directory", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &config.Storage{Dir: dir}
		repo, err := cfg.New()
		gt.NoError(t, err)

		gt.NoError(t, repo.PutProject(ctx, &model.Project{ID: "p1", Name: "Skyroute"}))
		_, err = os.Stat(filepath.Join(dir, "projects.json"))
		gt.NoError(t, err)
	})

	t.Run("directory path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plain")
		gt.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

		cfg := &config.Storage{Dir: path}
		_, err := cfg.New()
		gt.Error(t, err)
	})
}

func TestGitHub_NewClient(t *testing.T) {
	t.Run("disabled without credentials", func(t *testing.T) {
		cfg := &config.GitHub{}
		gt.False(t, cfg.Enabled())
	})

	t.Run("token", func(t *testing.T) {
		cfg := &config.GitHub{Token: "ghp_test", Repos: []string{"team/app"}}
		gt.True(t, cfg.Enabled())

		client, err := cfg.NewClient()
		gt.NoError(t, err)
		gt.Value(t, client).NotNil()
	})

	t.Run("app without installation", func(t *testing.T) {
		cfg := &config.GitHub{AppID: 1}
		gt.True(t, cfg.Enabled())
		_, err := cfg.NewClient()
		gt.Error(t, err)
	})

	t.Run("app without private key", func(t *testing.T) {
		cfg := &config.GitHub{AppID: 1, InstallationID: 2}
		_, err := cfg.NewClient()
		gt.Error(t, err)
	})

	t.Run("missing private key file", func(t *testing.T) {
		cfg := &config.GitHub{
			AppID:          1,
			InstallationID: 2,
			PrivateKeyFile: filepath.Join(t.TempDir(), "missing.pem"),
		}
		_, err := cfg.NewClient()
		gt.Error(t, err)
	})
}

func TestSlack_NewPublisher(t *testing.T) {
	disabled := &config.Slack{}
	pub, err := disabled.NewPublisher()
	gt.NoError(t, err)
	gt.Value(t, pub).Nil()

	enabled := &config.Slack{WebhookURL: "https://hooks.slack.com/services/T000/B000/XXX"}
	pub, err = enabled.NewPublisher()
	gt.NoError(t, err)
	gt.Value(t, pub).NotNil()
}

func TestSentry_ConfigureDisabled(t *testing.T) {
	cfg := &config.Sentry{}
	report, flush, err := cfg.Configure()
	gt.NoError(t, err)
	gt.Value(t, report).Nil()
	flush()
}
