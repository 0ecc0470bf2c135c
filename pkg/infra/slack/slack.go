// Package slack publishes release notes to a Slack incoming webhook.
package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/slack-go/slack"
)

// Slack block text limits
const (
	maxHeaderLen  = 150
	maxSectionLen = 3000
)

// Publisher posts release notes to an incoming webhook
type Publisher struct {
	webhookURL string
}

var _ interfaces.Publisher = (*Publisher)(nil)

// New creates a Publisher for the webhook URL
func New(webhookURL string) (*Publisher, error) {
	if webhookURL == "" {
		return nil, goerr.New("slack webhook URL is empty")
	}
	return &Publisher{webhookURL: webhookURL}, nil
}

// Publish posts title as a header block followed by body. Long text is
// truncated to Slack's block limits.
func (p *Publisher) Publish(ctx context.Context, title, body string) error {
	msg := &slack.WebhookMessage{
		Text: title,
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewHeaderBlock(
					slack.NewTextBlockObject(slack.PlainTextType, truncate(title, maxHeaderLen), false, false),
				),
				slack.NewSectionBlock(
					slack.NewTextBlockObject(slack.MarkdownType, truncate(body, maxSectionLen), false, false),
					nil, nil,
				),
			},
		},
	}

	if err := slack.PostWebhookContext(ctx, p.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post to slack", goerr.V("title", title))
	}
	return nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
