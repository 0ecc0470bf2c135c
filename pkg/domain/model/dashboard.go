package model

// Dashboard summarizes projects and provider data
type Dashboard struct {
	Totals          DashboardTotals `json:"totals"`
	Projects        []*Project      `json:"projects"`
	RecentTickets   []*Ticket       `json:"recentTickets"`
	RecentCommits   []*Commit       `json:"recentCommits"`
	TicketsByType   []TypeCount     `json:"ticketsByType"`
	CommitsByAuthor []AuthorCount   `json:"commitsByAuthor"`
}

// DashboardTotals holds headline counts
type DashboardTotals struct {
	Projects int `json:"projects"`
	Tickets  int `json:"tickets"`
	Commits  int `json:"commits"`
	Authors  int `json:"authors"`
}

// TypeCount is the number of tickets of one type
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// AuthorCount is the number of commits by one author
type AuthorCount struct {
	Author  string `json:"author"`
	Commits int    `json:"commits"`
}
