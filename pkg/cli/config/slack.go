package config

import (
	"github.com/m-mizutani/releasegpt/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration of the release note publisher
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for publishing release notes",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("RELEASEGPT_SLACK_WEBHOOK_URL"),
		},
	}
}

// NewPublisher returns nil when no webhook URL is configured.
func (c *Slack) NewPublisher() (*slack.Publisher, error) {
	if c.WebhookURL == "" {
		return nil, nil
	}
	return slack.New(c.WebhookURL)
}
