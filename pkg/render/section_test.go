package render_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
	"github.com/m-mizutani/releasegpt/pkg/render"
)

func TestFindSection(t *testing.T) {
	t.Run("case-insensitive exact match", func(t *testing.T) {
		sections := []model.Section{{Heading: "bug fixes", Items: []string{"X"}}}
		items := render.FindSection(sections, "Bug Fixes")
		gt.Value(t, render.Bullets(items)).Equal("- X")
	})

	t.Run("duplicate headings take the first", func(t *testing.T) {
		sections := []model.Section{
			{Heading: "Fixes", Items: []string{"A"}},
			{Heading: "Fixes", Items: []string{"B"}},
		}
		gt.Value(t, render.FindSection(sections, "Fixes")).Equal([]string{"A"})
	})

	t.Run("no partial match", func(t *testing.T) {
		sections := []model.Section{{Heading: "Bug Fixes and more", Items: []string{"A"}}}
		gt.Number(t, len(render.FindSection(sections, "Bug Fixes"))).Equal(0)
	})

	t.Run("missing heading renders none", func(t *testing.T) {
		gt.Value(t, render.Bullets(render.FindSection(nil, "Credits"))).Equal("- None")
	})
}

func TestContextFromNote(t *testing.T) {
	note := &model.GeneratedNote{
		Title:     "Sky — Release Notes (2025-08-20)",
		Date:      "2025-08-20",
		Narrative: []string{"p1"},
		Sections: []model.Section{
			{Heading: "HIGHLIGHTS", Items: []string{"h"}},
			{Heading: "New Features", Items: []string{"SR-1: feat"}},
			{Heading: "bug fixes", Items: []string{"SR-2: fix"}},
			{Heading: "Technical Notes", Items: []string{"ignored"}},
			{Heading: "Changelog", Items: []string{"c1", "c2"}},
		},
	}
	project := &model.Project{Name: "Sky", JiraKey: "SR", DevopsRepo: "team/sky", Branch: "main"}

	rc := render.ContextFromNote(note, project)
	want := &model.ReleaseContext{
		Title:      note.Title,
		Date:       "2025-08-20",
		Project:    model.ProjectInfo{Name: "Sky", JiraKey: "SR", Repo: "team/sky", Branch: "main"},
		Narrative:  []string{"p1"},
		Highlights: []string{"h"},
		Features:   []string{"SR-1: feat"},
		Fixes:      []string{"SR-2: fix"},
		Changelog:  []string{"c1", "c2"},
	}
	if diff := cmp.Diff(want, rc); diff != "" {
		t.Errorf("ContextFromNote() mismatch (-want +got):\n%s", diff)
	}

	out := render.Render(&model.Template{Content: "{{REPO}}\n{{IMPROVEMENTS}}\n{{CHANGELOG}}"}, rc)
	gt.Value(t, out).Equal("team/sky\n- None\n- c1\n- c2")
}

func TestContextFromNote_Nil(t *testing.T) {
	rc := render.ContextFromNote(nil, nil)
	gt.Value(t, render.Render(&model.Template{Content: "{{TITLE}}{{FIXES}}"}, rc)).Equal("- None")
}

func TestNoteMarkdown(t *testing.T) {
	note := &model.GeneratedNote{
		Title:     "T",
		Narrative: []string{"a", "b"},
		Sections: []model.Section{
			{Heading: "Highlights", Items: []string{"h1"}},
			{Heading: "Breaking Changes"},
		},
	}
	want := strings.Join([]string{
		"# T",
		"a\n\nb",
		"## Highlights\n- h1",
		"## Breaking Changes\n- None",
	}, "\n\n") + "\n"
	gt.Value(t, render.NoteMarkdown(note)).Equal(want)
	gt.Value(t, render.NoteMarkdown(nil)).Equal("")
}
