package model

// ProjectInfo is the project metadata available to a template
type ProjectInfo struct {
	Name    string `json:"name" yaml:"name"`
	JiraKey string `json:"jiraKey" yaml:"jiraKey"`
	Repo    string `json:"repo" yaml:"repo"`
	Branch  string `json:"branch" yaml:"branch"`
}

// ReleaseContext is the full set of data a template is rendered against.
// Section names are fixed; nil sections render as empty lists.
type ReleaseContext struct {
	Title        string      `json:"title" yaml:"title"`
	Date         string      `json:"date" yaml:"date"`
	Project      ProjectInfo `json:"project" yaml:"project"`
	Narrative    []string    `json:"narrative" yaml:"narrative"`
	Highlights   []string    `json:"highlights" yaml:"highlights"`
	Features     []string    `json:"features" yaml:"features"`
	Fixes        []string    `json:"fixes" yaml:"fixes"`
	Improvements []string    `json:"improvements" yaml:"improvements"`
	KnownIssues  []string    `json:"knownIssues" yaml:"knownIssues"`
	UpgradeNotes []string    `json:"upgradeNotes" yaml:"upgradeNotes"`
	Credits      []string    `json:"credits" yaml:"credits"`
	Changelog    []string    `json:"changelog" yaml:"changelog"`
}

// Section is a heading with its bullet items, as produced by note generation
type Section struct {
	Heading string   `json:"heading" yaml:"heading"`
	Items   []string `json:"items" yaml:"items"`
}

// GeneratedNote is the output of the release note generator
type GeneratedNote struct {
	Title     string    `json:"title" yaml:"title"`
	Date      string    `json:"date" yaml:"date"`
	Narrative []string  `json:"narrative" yaml:"narrative"`
	Sections  []Section `json:"sections" yaml:"sections"`
	Markdown  string    `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}
