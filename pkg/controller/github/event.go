package github

import (
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// ParseEvent converts a GitHub webhook delivery into a WebhookEvent. Release
// and ping payloads are decoded, any other event GitHub knows about is
// reported as EventTypeUnknown.
func ParseEvent(eventType, deliveryID string, body []byte, receivedAt time.Time) (*model.WebhookEvent, error) {
	payload, err := github.ParseWebHook(eventType, body)
	if err != nil {
		return nil, goerr.Wrap(model.ErrInvalidInput, "invalid webhook payload",
			goerr.V("event_type", eventType),
			goerr.V("delivery_id", deliveryID),
			goerr.V("cause", err.Error()),
		)
	}

	event := &model.WebhookEvent{
		ID:         deliveryID,
		Type:       model.EventTypeUnknown,
		ReceivedAt: receivedAt,
		RawPayload: body,
	}

	switch e := payload.(type) {
	case *github.ReleaseEvent:
		event.Type = model.EventTypeRelease
		event.Action = e.GetAction()
		event.Repository = e.GetRepo().GetFullName()
		event.Sender = e.GetSender().GetLogin()
		event.TagName = e.GetRelease().GetTagName()

		if event.Repository == "" {
			return nil, goerr.Wrap(model.ErrInvalidInput, "missing repository in release event",
				goerr.V("delivery_id", deliveryID))
		}

	case *github.PingEvent:
		event.Type = model.EventTypePing
	}

	return event, nil
}
