package render

import (
	"strings"

	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// NoneItem is the placeholder line rendered for an empty bullet section
const NoneItem = "- None"

// Render substitutes every catalog token in the template content with its
// value from rc. Unknown tokens are left verbatim. A nil template renders to
// an empty string and a nil context renders as the zero context.
func Render(tpl *model.Template, rc *model.ReleaseContext) string {
	if tpl == nil {
		return ""
	}
	return RenderString(tpl.Content, rc)
}

// RenderString is Render for raw template content
func RenderString(content string, rc *model.ReleaseContext) string {
	if content == "" {
		return ""
	}
	if rc == nil {
		rc = &model.ReleaseContext{}
	}

	pairs := make([]string, 0, len(catalog)*2)
	for _, t := range catalog {
		pairs = append(pairs, t.Marker(), t.Render(rc))
	}

	// A single pass: substituted values are never rescanned for markers.
	return strings.NewReplacer(pairs...).Replace(content)
}

// Bullets renders items as "- item" lines joined by newlines, preserving
// order. An empty list renders as "- None".
func Bullets(items []string) string {
	if len(items) == 0 {
		return NoneItem
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

// Paragraphs joins paragraphs with a single blank line
func Paragraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

// UsedTokens returns the names of catalog tokens that appear in content, in
// catalog order.
func UsedTokens(content string) []string {
	var used []string
	for _, t := range catalog {
		if strings.Contains(content, t.Marker()) {
			used = append(used, t.Name)
		}
	}
	return used
}
