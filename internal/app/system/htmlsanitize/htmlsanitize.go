// Package htmlsanitize strips unsafe HTML from user-supplied content.
//
// Post and comment bodies may carry simple formatting, so Sanitize keeps
// the usual text markup while removing scripts, event handlers, and
// dangerous protocols. StripTags reduces content to plain text for the
// NSFW classifier, which should never see markup.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize removes dangerous HTML while preserving common formatting
// (paragraphs, emphasis, lists, links, code blocks). Safe to call on
// plain text, which passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugcPolicy.Sanitize(s)
}

// StripTags removes all HTML, returning plain text with collapsed
// whitespace. Used to build classifier input from post bodies.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(strictPolicy.Sanitize(s)), " ")
}
