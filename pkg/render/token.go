package render

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// Kind describes how a token's value is produced
type Kind int

const (
	// KindText is a literal string value
	KindText Kind = iota
	// KindParagraphs is a list of paragraphs joined by blank lines
	KindParagraphs
	// KindBullets is a list rendered as "- item" lines
	KindBullets
)

// Token is one entry of the template token catalog
type Token struct {
	Name    string // e.g. FIXES
	Heading string // canonical section heading for bullet tokens
	Kind    Kind
	Value   func(rc *model.ReleaseContext) []string
}

// Marker returns the literal placeholder written in templates
func (t Token) Marker() string {
	return "{{" + t.Name + "}}"
}

// Render returns the substituted value of the token for rc
func (t Token) Render(rc *model.ReleaseContext) string {
	values := t.Value(rc)
	switch t.Kind {
	case KindParagraphs:
		return Paragraphs(values)
	case KindBullets:
		return Bullets(values)
	default:
		return strings.Join(values, "")
	}
}

func text(f func(rc *model.ReleaseContext) string) func(rc *model.ReleaseContext) []string {
	return func(rc *model.ReleaseContext) []string { return []string{f(rc)} }
}

// catalog is fixed; any extension must keep markers free of mutual
// substrings, which init enforces through ValidateCatalog.
var catalog = []Token{
	{Name: "TITLE", Kind: KindText, Value: text(func(rc *model.ReleaseContext) string { return rc.Title })},
	{Name: "DATE", Kind: KindText, Value: text(func(rc *model.ReleaseContext) string { return rc.Date })},
	{Name: "PROJECT_NAME", Kind: KindText, Value: text(func(rc *model.ReleaseContext) string { return rc.Project.Name })},
	{Name: "JIRA_KEY", Kind: KindText, Value: text(func(rc *model.ReleaseContext) string { return rc.Project.JiraKey })},
	{Name: "REPO", Kind: KindText, Value: text(func(rc *model.ReleaseContext) string { return rc.Project.Repo })},
	{Name: "BRANCH", Kind: KindText, Value: text(func(rc *model.ReleaseContext) string { return rc.Project.Branch })},
	{Name: "NARRATIVE", Kind: KindParagraphs, Value: func(rc *model.ReleaseContext) []string { return rc.Narrative }},
	{Name: "HIGHLIGHTS", Heading: HeadingHighlights, Kind: KindBullets, Value: func(rc *model.ReleaseContext) []string { return rc.Highlights }},
	{Name: "FEATURES", Heading: HeadingFeatures, Kind: KindBullets, Value: func(rc *model.ReleaseContext) []string { return rc.Features }},
	{Name: "FIXES", Heading: HeadingFixes, Kind: KindBullets, Value: func(rc *model.ReleaseContext) []string { return rc.Fixes }},
	{Name: "IMPROVEMENTS", Heading: HeadingImprovements, Kind: KindBullets, Value: func(rc *model.ReleaseContext) []string { return rc.Improvements }},
	{Name: "KNOWN_ISSUES", Heading: HeadingKnownIssues, Kind: KindBullets, Value: func(rc *model.ReleaseContext) []string { return rc.KnownIssues }},
	{Name: "UPGRADE_NOTES", Heading: HeadingUpgradeNotes, Kind: KindBullets, Value: func(rc *model.ReleaseContext) []string { return rc.UpgradeNotes }},
	{Name: "CREDITS", Heading: HeadingCredits, Kind: KindBullets, Value: func(rc *model.ReleaseContext) []string { return rc.Credits }},
	{Name: "CHANGELOG", Heading: HeadingChangelog, Kind: KindBullets, Value: func(rc *model.ReleaseContext) []string { return rc.Changelog }},
}

func init() {
	if err := ValidateCatalog(catalog); err != nil {
		panic(err)
	}
}

// Tokens returns a copy of the token catalog in substitution order
func Tokens() []Token {
	out := make([]Token, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog token with the given name
func Lookup(name string) (Token, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Token{}, false
}

// ValidateCatalog checks that every token has a unique, non-empty name and
// that no marker occurs inside another marker.
func ValidateCatalog(tokens []Token) error {
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t.Name == "" {
			return goerr.New("token with empty name in catalog")
		}
		if t.Value == nil {
			return goerr.New("token has no value source", goerr.V("token", t.Name))
		}
		if _, ok := seen[t.Name]; ok {
			return goerr.New("duplicate token in catalog", goerr.V("token", t.Name))
		}
		seen[t.Name] = struct{}{}
	}

	for i, a := range tokens {
		for j, b := range tokens {
			if i == j {
				continue
			}
			if strings.Contains(b.Marker(), a.Marker()) {
				return goerr.New("token marker is a substring of another marker",
					goerr.V("marker", a.Marker()),
					goerr.V("container", b.Marker()),
				)
			}
		}
	}

	return nil
}
