package components

import (
	"regexp"
	"strings"
)

// Lesson content arrives as HTML fragments; the terminal wants plain
// text with paragraph structure preserved.
var (
	blockTagRe  = regexp.MustCompile(`(?i)</?(p|div|br|li|ul|ol|h[1-6]|tr|blockquote)[^>]*>`)
	anyTagRe    = regexp.MustCompile(`<[^>]*>`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
	lineSpaceRe = regexp.MustCompile(`[ \t]+`)
)

var htmlEntities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&hellip;", "...",
)

// HTMLToText converts an HTML fragment to displayable plain text,
// turning block elements into line breaks.
func HTMLToText(raw string) string {
	s := blockTagRe.ReplaceAllString(raw, "\n")
	s = anyTagRe.ReplaceAllString(s, "")
	s = htmlEntities.Replace(s)
	s = lineSpaceRe.ReplaceAllString(s, " ")

	// Trim each line, then collapse runs of blank lines.
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
