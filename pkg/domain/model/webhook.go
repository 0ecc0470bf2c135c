package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypeRelease WebhookEventType = "release"
	EventTypePing    WebhookEventType = "ping"
	EventTypeUnknown WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., published, released)
	Repository string           // Repository full name (owner/repo)
	Sender     string           // Sender username
	TagName    string           // Release tag, release events only
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}

// IsSupportedEvent reports whether the event should trigger note generation
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypeRelease:
		return e.Action == "published" || e.Action == "released"
	default:
		return false
	}
}
