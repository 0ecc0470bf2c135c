package markdown_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasegpt/pkg/infra/markdown"
)

func TestConverter_ToHTML(t *testing.T) {
	c := markdown.New()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "headings and bullets",
			input:    "# Title\n\n## Bug Fixes\n- SR-102: Fix alert\n- None",
			contains: []string{"<h1>Title</h1>", "<h2>Bug Fixes</h2>", "<li>SR-102: Fix alert</li>"},
		},
		{
			name:     "GFM strikethrough",
			input:    "~~old~~",
			contains: []string{"<del>old</del>"},
		},
		{
			name:     "script is removed",
			input:    "hello\n\n<script>alert(1)</script>",
			contains: []string{"<p>hello</p>"},
			excludes: []string{"<script", "alert(1)"},
		},
		{
			name:     "javascript links are dropped",
			input:    "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := c.ToHTML(tt.input)
			gt.NoError(t, err)
			for _, s := range tt.contains {
				gt.String(t, html).Contains(s)
			}
			for _, s := range tt.excludes {
				gt.False(t, strings.Contains(html, s))
			}
		})
	}
}
