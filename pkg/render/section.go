package render

import (
	"strings"

	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// Canonical section headings used by generated notes
const (
	HeadingHighlights      = "Highlights"
	HeadingFeatures        = "New Features"
	HeadingFixes           = "Bug Fixes"
	HeadingImprovements    = "Improvements"
	HeadingTechnicalNotes  = "Technical Notes"
	HeadingBreakingChanges = "Breaking Changes"
	HeadingKnownIssues     = "Known Issues"
	HeadingUpgradeNotes    = "Upgrade Notes"
	HeadingCredits         = "Credits"
	HeadingChangelog       = "Changelog"
)

// FindSection returns the items of the first section whose heading matches
// heading case-insensitively. It returns nil when nothing matches.
func FindSection(sections []model.Section, heading string) []string {
	for _, s := range sections {
		if strings.EqualFold(s.Heading, heading) {
			return s.Items
		}
	}
	return nil
}

// ContextFromNote builds a ReleaseContext from a generated note. Sections
// are looked up by their canonical headings; missing ones become empty.
func ContextFromNote(note *model.GeneratedNote, project *model.Project) *model.ReleaseContext {
	rc := &model.ReleaseContext{}
	if project != nil {
		rc.Project = project.Info()
	}
	if note == nil {
		return rc
	}

	rc.Title = note.Title
	rc.Date = note.Date
	rc.Narrative = note.Narrative
	rc.Highlights = FindSection(note.Sections, HeadingHighlights)
	rc.Features = FindSection(note.Sections, HeadingFeatures)
	rc.Fixes = FindSection(note.Sections, HeadingFixes)
	rc.Improvements = FindSection(note.Sections, HeadingImprovements)
	rc.KnownIssues = FindSection(note.Sections, HeadingKnownIssues)
	rc.UpgradeNotes = FindSection(note.Sections, HeadingUpgradeNotes)
	rc.Credits = FindSection(note.Sections, HeadingCredits)
	rc.Changelog = FindSection(note.Sections, HeadingChangelog)
	return rc
}

// NoteMarkdown renders every section of a generated note as Markdown with
// "## Heading" blocks, independent of any template.
func NoteMarkdown(note *model.GeneratedNote) string {
	if note == nil {
		return ""
	}

	blocks := []string{"# " + note.Title}
	if len(note.Narrative) > 0 {
		blocks = append(blocks, Paragraphs(note.Narrative))
	}
	for _, s := range note.Sections {
		blocks = append(blocks, "## "+s.Heading+"\n"+Bullets(s.Items))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
