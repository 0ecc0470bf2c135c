package model

import "time"

// ProviderStatus is the connection state of an external provider
type ProviderStatus string

const (
	ProviderConnected    ProviderStatus = "connected"
	ProviderAttention    ProviderStatus = "attention"
	ProviderDisconnected ProviderStatus = "disconnected"
	ProviderError        ProviderStatus = "error"
)

// SyncMode controls how often a provider is synced. Empty means unset.
type SyncMode string

const (
	SyncModeNone   SyncMode = ""
	SyncModeManual SyncMode = "manual"
	SyncModeDaily  SyncMode = "daily"
	SyncModeHourly SyncMode = "hourly"
)

// Valid reports whether m is a known sync mode
func (m SyncMode) Valid() bool {
	switch m {
	case SyncModeNone, SyncModeManual, SyncModeDaily, SyncModeHourly:
		return true
	default:
		return false
	}
}

// Interval returns the delay until the next scheduled sync, or zero for no schedule
func (m SyncMode) Interval() time.Duration {
	switch m {
	case SyncModeHourly:
		return time.Hour
	case SyncModeDaily:
		return 24 * time.Hour
	default:
		return 0
	}
}

// ProviderAccount identifies the account a provider is connected with
type ProviderAccount struct {
	Site string `json:"site,omitempty"`
	User string `json:"user,omitempty"`
	Org  string `json:"org,omitempty"`
}

// Provider is an external ticket or source-control integration
type Provider struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Kind     string           `json:"kind"` // "tickets" or "commits"
	Status   ProviderStatus   `json:"status"`
	Account  *ProviderAccount `json:"account"`
	LastSync *time.Time       `json:"lastSync"`
	NextSync *time.Time       `json:"nextSync"`
	Scopes   []string         `json:"scopes"`
	Stats    map[string]int   `json:"stats"`
	Issues   []string         `json:"issues"`
	SyncMode SyncMode         `json:"syncMode"`
}

const (
	ProviderKindTickets = "tickets"
	ProviderKindCommits = "commits"
)

// Mapping links an external project or repository to an internal project
type Mapping struct {
	Provider          string `json:"provider"`
	External          string `json:"external"`
	InternalProjectID string `json:"internalProjectId"`
}

// AuditEntry records a change made to a provider connection
type AuditEntry struct {
	At       time.Time `json:"at"`
	Event    string    `json:"event"`
	Provider string    `json:"provider"`
	Details  string    `json:"details"`
}

// Connections is the whole connected-accounts state
type Connections struct {
	Providers []*Provider   `json:"providers"`
	Mappings  []*Mapping    `json:"mappings"`
	Audit     []*AuditEntry `json:"audit"`
}

// Provider returns the provider with the given ID, or nil
func (c *Connections) Provider(id string) *Provider {
	for _, p := range c.Providers {
		if p.ID == id {
			return p
		}
	}
	return nil
}
