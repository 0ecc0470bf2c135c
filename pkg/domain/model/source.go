package model

import "strings"

// TicketType is the Jira issue type
type TicketType string

const (
	TicketTypeStory       TicketType = "Story"
	TicketTypeTask        TicketType = "Task"
	TicketTypeBug         TicketType = "Bug"
	TicketTypeImprovement TicketType = "Improvement"
	TicketTypeChore       TicketType = "Chore"
	TicketTypeEpic        TicketType = "Epic"
	TicketTypeFeature     TicketType = "Feature"
)

// Ticket represents a Jira ticket
type Ticket struct {
	ID        string     `json:"id"`
	Key       string     `json:"key"`
	Title     string     `json:"title"`
	Type      TicketType `json:"type,omitempty"`
	Labels    []string   `json:"labels,omitempty"`
	Branch    string     `json:"branch,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty"`
}

// Commit represents a source-control commit
type Commit struct {
	ID      string `json:"id"`
	Hash    string `json:"hash"`
	Message string `json:"message"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
}

// ShortHash returns the first seven characters of the commit hash
func (c *Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Subject returns the first line of the commit message
func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}

// JiraProject is a project available on the Jira side
type JiraProject struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Repository is a source repository available on the source-control side
type Repository struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
}
