// Package htmltext decodes the HTML character references that the trivia
// source embeds in question and answer text.
package htmltext

import (
	"html"
	"strings"
	"unicode/utf8"
)

// Decode replaces named (&quot;, &amp;) and numeric (&#039;, &#x27;)
// character references with the characters they stand for.
//
// Text without references is returned as is. Text that is not valid UTF-8
// cannot be decoded reliably and is also returned unchanged, so callers never
// lose content.
func Decode(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	if !utf8.ValidString(s) {
		return s
	}

	return html.UnescapeString(s)
}

// DecodeAll decodes every element of in into a new slice.
func DecodeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Decode(s)
	}
	return out
}
