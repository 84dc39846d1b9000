// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize strips unsafe HTML from coordinator-supplied content
// before it is stored. The organization status banner is the only rich-text
// surface in the app; everything else is escaped by the template engine.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe HTML removed. Safe formatting (paragraphs,
// emphasis, links, tables) is preserved.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeHTML sanitizes s and returns it as template.HTML, ready to render
// without re-escaping.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// StripTags removes all HTML, leaving plain text. Used where banner content
// is echoed into contexts that never render markup (logs, plain summaries).
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return bluemonday.StrictPolicy().Sanitize(s)
}
