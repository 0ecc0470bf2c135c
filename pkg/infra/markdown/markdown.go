// Package markdown converts rendered release notes to HTML for previews.
package markdown

import (
	"bytes"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/interfaces"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Converter renders GitHub flavored Markdown and sanitizes the result.
// Template content is user supplied, so raw HTML in it never reaches the
// output unsanitized.
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

var _ interfaces.HTMLConverter = (*Converter)(nil)

// New creates a Converter. It is safe for concurrent use.
func New() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// ToHTML converts markdown to sanitized HTML
func (c *Converter) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", goerr.Wrap(err, "failed to convert markdown")
	}
	return c.policy.Sanitize(buf.String()), nil
}
