// Package htmlsanitize provides HTML sanitization for operator-entered rich
// text, such as the about story and project descriptions. It uses bluemonday
// to strip dangerous HTML while preserving formatting.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy is the shared bluemonday policy for sanitizing rich text.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Common text formatting beyond the UGC baseline
		policy.AllowElements("u", "s", "sub", "sup", "mark")

		// Inline images are fine in a story body; the operator is the only
		// author, but sanitizing keeps pasted content safe.
		policy.AllowImages()
	})
	return policy
}

// Sanitize cleans HTML input, removing potentially dangerous elements and
// attributes. Preserves safe formatting like bold, italic, lists, and links.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizeToHTML sanitizes HTML input and returns it as template.HTML,
// which renders directly in Go templates without escaping.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}

// IsPlainText checks if content appears to be plain text (no HTML tags).
// Used to handle story content written before the rich text editor existed.
func IsPlainText(content string) bool {
	if content == "" {
		return true
	}
	// Valid HTML tags require both < and >, so if either is missing, treat
	// the content as plain text.
	return !strings.Contains(content, "<") || !strings.Contains(content, ">")
}

// PlainTextToHTML converts plain text to minimal HTML by escaping entities,
// converting newlines to <br>, and wrapping the result in a <p> tag.
func PlainTextToHTML(text string) string {
	if text == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay takes content (which may be plain text or HTML) and
// returns sanitized template.HTML ready for rendering.
func PrepareForDisplay(content string) template.HTML {
	if content == "" {
		return ""
	}
	if IsPlainText(content) {
		return template.HTML(PlainTextToHTML(content))
	}
	return SanitizeToHTML(content)
}
