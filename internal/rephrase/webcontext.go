package rephrase

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed from HTML context before conversion.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"img", "picture", "figure", "svg", "canvas",
	"iframe", "video", "audio",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// CleanContext reduces a saved web page to prompt-sized context. It is only
// applied when a Service is built with WithContextCleaner. Plain text is only
// trimmed. Raw page HTML (content starting with a tag) is
// reduced to its main content and converted to Markdown; if that fails the
// trimmed input is kept.
func CleanContext(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "<") {
		return trimmed
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return trimmed
	}
	body := doc.Find("body")
	if body.Children().Length() == 0 {
		return trimmed
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return trimmed
	}
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return trimmed
	}
	if md = strings.TrimSpace(md); md == "" {
		return trimmed
	}
	return md
}
