package interview

import (
	"regexp"
	"strings"
)

// maxContentChars bounds the cleaned lesson content sent to the LLM so
// a long asset cannot blow the prompt token budget.
const maxContentChars = 2000

// minUsableContent is the smallest cleaned content considered worth
// generating content-specific questions from. Anything shorter falls
// back to topic-level questions.
const minUsableContent = 100

// contentPresenceThreshold decides whether an asset carries content at
// all, before the usability check.
const contentPresenceThreshold = 50

var (
	scriptRe   = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleRe    = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	commentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
	markdownRe = regexp.MustCompile("[#*`_~]")
	spaceRe    = regexp.MustCompile(`\s+`)
	punctRe    = regexp.MustCompile(`\s+([,.!?;:])`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&hellip;", "...",
	"&mdash;", "-",
	"&ndash;", "-",
)

// CleanContent strips HTML and markdown from lesson content and
// truncates it for prompt use.
func CleanContent(raw string) string {
	s := scriptRe.ReplaceAllString(raw, "")
	s = styleRe.ReplaceAllString(s, "")
	s = commentRe.ReplaceAllString(s, "")
	// Tags become spaces so adjacent block elements don't merge words;
	// the whitespace collapse below tidies the result.
	s = tagRe.ReplaceAllString(s, " ")
	s = markdownRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = spaceRe.ReplaceAllString(s, " ")
	s = punctRe.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)

	if len(s) > maxContentChars {
		s = s[:maxContentChars]
	}
	return s
}
