// bbs/format.go
package bbs

import (
	"html"
	"html/template"
	"regexp"
	"strings"
)

// Inline markup patterns, applied in declaration order. Double
// underscores must resolve before single underscores or the italic rule
// swallows them. All patterns are non-greedy and global.
var (
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	underlinePattern = regexp.MustCompile(`__(.*?)__`)
	italicPattern    = regexp.MustCompile(`_(.*?)_`)
	strikePattern    = regexp.MustCompile(`~~(.*?)~~`)
	bulletPattern    = regexp.MustCompile(`\n- (.*)`)
)

// FormatText converts the board's inline markup subset to HTML:
// **bold**, __underline__, _italic_, ~~strikethrough~~, "- " list
// lines, and newlines to <br/>. Unmatched or partial markers pass
// through unchanged. Pure and total: any input string, including the
// empty string, yields a result without error.
func FormatText(text string) string {
	out := boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	out = underlinePattern.ReplaceAllString(out, "<u>$1</u>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	out = strikePattern.ReplaceAllString(out, "<s>$1</s>")
	out = bulletPattern.ReplaceAllString(out, "<br/>• $1")
	return strings.ReplaceAll(out, "\n", "<br/>")
}

// FormatHTML escapes raw user content before applying the markup
// conversion, so the only HTML in the result is what FormatText
// produced. The markup markers survive escaping untouched.
func FormatHTML(text string) template.HTML {
	return template.HTML(FormatText(html.EscapeString(text)))
}
