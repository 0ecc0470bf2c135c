package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	WebhookSecret  string `masq:"secret"`
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	PrivateKeyFile string
	Repos          []string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret (webhook endpoint is disabled when empty)",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("RELEASEGPT_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token for reading commits",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELEASEGPT_GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("RELEASEGPT_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("RELEASEGPT_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("RELEASEGPT_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to GitHub App private key (PEM)",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("RELEASEGPT_GITHUB_PRIVATE_KEY_FILE"),
		},
		&cli.StringSliceFlag{
			Name:        "github-repo",
			Usage:       "Repository (owner/name) exposed as a commit source, repeatable",
			Destination: &c.Repos,
			Sources:     cli.EnvVars("RELEASEGPT_GITHUB_REPOS"),
		},
	}
}

// Enabled reports whether credentials for the GitHub commit source are set.
func (c *GitHub) Enabled() bool {
	return c.Token != "" || c.AppID != 0
}

// NewClient creates a GitHub commit source. A token takes precedence over
// GitHub App credentials.
func (c *GitHub) NewClient() (*github.Client, error) {
	if c.Token != "" {
		return github.NewClientWithToken(c.Token, c.Repos)
	}

	if c.AppID == 0 || c.InstallationID == 0 {
		return nil, goerr.New("GitHub App ID and installation ID are required")
	}

	key := []byte(c.PrivateKey)
	if c.PrivateKeyFile != "" {
		raw, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKeyFile))
		}
		key = raw
	}
	if len(key) == 0 {
		return nil, goerr.New("GitHub App private key is required")
	}

	return github.NewClient(c.AppID, c.InstallationID, key, c.Repos)
}
