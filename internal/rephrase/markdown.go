package rephrase

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const (
	emptyResponseHeading   = "# No Content Generated"
	defaultResponseHeading = "# Response: "
)

var headingLine = regexp.MustCompile(`(?m)^#{1,6}\s`)

// NormalizeMarkdown guarantees the model output is heading-led Markdown.
// Text that already has a heading on any line is returned trimmed and
// otherwise untouched.
func NormalizeMarkdown(text string) string {
	if text == "" {
		return emptyResponseHeading
	}
	trimmed := strings.TrimSpace(text)
	if headingLine.MatchString(trimmed) {
		return trimmed
	}
	return defaultResponseHeading + "\n\n" + trimmed
}

// RenderHTML converts Markdown to HTML and runs the result through policy.
// A nil policy skips sanitization.
func RenderHTML(md string, policy *bluemonday.Policy) string {
	// Parsers keep state between calls; build one per document.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	out := markdown.Render(doc, renderer)

	if policy == nil {
		return string(out)
	}
	return string(policy.SanitizeBytes(out))
}

// DefaultPolicy allows the formatting elements Markdown produces and strips
// scripts, handlers and unknown attributes.
func DefaultPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}
