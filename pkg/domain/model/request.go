package model

// GenerateRequest is the input of release note generation
type GenerateRequest struct {
	Project *Project  `json:"project"`
	Tickets []*Ticket `json:"tickets"`
	Commits []*Commit `json:"commits"`
}

// TemplateInput creates a template. Empty fields take defaults.
type TemplateInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}

// Preview is a template rendered against sample data
type Preview struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html,omitempty"`
}

// ProjectInput creates a project
type ProjectInput struct {
	Name       string `json:"name"`
	JiraKey    string `json:"jiraKey"`
	DevopsRepo string `json:"devopsRepo"`
	Branch     string `json:"branch,omitempty"`
}

// ProjectItems are the tickets and commits available to a project
type ProjectItems struct {
	Tickets   []*Ticket  `json:"tickets"`
	Commits   []*Commit  `json:"commits"`
	Selection *Selection `json:"selection"`
}

// ExportRequest renders a project's release note into a template. Empty ID
// lists fall back to the project's saved selection.
type ExportRequest struct {
	ProjectID  string   `json:"projectId"`
	TemplateID string   `json:"templateId,omitempty"`
	TicketIDs  []string `json:"ticketIds,omitempty"`
	CommitIDs  []string `json:"commitIds,omitempty"`
}

// ExportResult is a rendered release note ready to copy or download
type ExportResult struct {
	Filename    string         `json:"filename"`
	ContentType string         `json:"contentType"`
	TemplateID  string         `json:"templateId"`
	Body        string         `json:"body"`
	Note        *GeneratedNote `json:"note"`
}

// ConnectionTestResult is the outcome of a provider connectivity check
type ConnectionTestResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// ConfigureInput changes a provider's sync settings
type ConfigureInput struct {
	SyncMode SyncMode `json:"syncMode"`
	Filter   string   `json:"filter,omitempty"`
}
