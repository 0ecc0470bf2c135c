package model

import "time"

// Project binds a Jira key to a source repository and branch
type Project struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	JiraKey     string     `json:"jiraKey" yaml:"jiraKey"`
	DevopsRepo  string     `json:"devopsRepo" yaml:"devopsRepo"`
	Branch      string     `json:"branch" yaml:"branch"`
	LastSynced  *time.Time `json:"lastSynced,omitempty" yaml:"lastSynced,omitempty"`
	TicketCount int        `json:"ticketCount,omitempty" yaml:"ticketCount,omitempty"`
	CommitCount int        `json:"commitCount,omitempty" yaml:"commitCount,omitempty"`
}

// Info returns the metadata exposed to templates
func (p *Project) Info() ProjectInfo {
	return ProjectInfo{
		Name:    p.Name,
		JiraKey: p.JiraKey,
		Repo:    p.DevopsRepo,
		Branch:  p.Branch,
	}
}

// Copy returns a deep copy of the project
func (p *Project) Copy() *Project {
	c := *p
	if p.LastSynced != nil {
		t := *p.LastSynced
		c.LastSynced = &t
	}
	return &c
}

// Selection holds the ticket and commit IDs picked for a project's next release
type Selection struct {
	Tickets []string `json:"tickets"`
	Commits []string `json:"commits"`
}

// Empty reports whether nothing is selected
func (s *Selection) Empty() bool {
	return len(s.Tickets) == 0 && len(s.Commits) == 0
}
