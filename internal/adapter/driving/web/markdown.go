package web

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// notesMarkdown renders invoice notes. Raw HTML in the source is dropped by
// goldmark before the sanitizer sees it.
var notesMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify))

var notesPolicy = newNotesPolicy()

// newNotesPolicy allows text formatting, lists, tables and links. Images are
// not allowed so a printed invoice never pulls remote content.
func newNotesPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "hr", "strong", "em", "del", "code", "pre", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderNotes converts draft notes written in markdown to sanitized HTML for
// the invoice preview. Blank notes render as "".
func RenderNotes(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := notesMarkdown.Convert([]byte(src), &buf); err != nil {
		return notesPolicy.Sanitize(src)
	}
	return notesPolicy.Sanitize(buf.String())
}
