// Package heading scans page text for structural markers: chapter and
// section headings plus numbered-outline headings like "3.2 Details".
package heading

import "regexp"

// Category identifies which heading pattern matched.
type Category int

const (
	CategoryChapter Category = iota
	CategorySection
	CategoryNumbered
	CategoryNumberedStrict
	CategoryMalformedLink
)

// Match is one extracted heading: the matched line and its category.
type Match struct {
	Text     string
	Category Category
}

// Patterns are evaluated in priority order over the whole page text and
// the first category that matches anywhere wins. Category order outranks
// textual position: a "Chapter" line late in the page beats a numbered
// heading on the first line.
var patterns = []struct {
	category Category
	re       *regexp.Regexp
}{
	{CategoryChapter, regexp.MustCompile(`(?im)^(Chapter|CHAPTER)\b.*`)},
	{CategorySection, regexp.MustCompile(`(?im)^(Section|SECTION)\b.*`)},
	{CategoryNumbered, regexp.MustCompile(`(?m)^\d+(?:\.\d+)*\s+.+`)},
	// Stricter numbered variant. Its language is a subset of the rule
	// above, so it never fires first; kept for parity with the known
	// heading set.
	{CategoryNumberedStrict, regexp.MustCompile(`(?m)^\d+(?:\.\d+)*\s+[A-Za-z].*`)},
	// Known malformed-input case, not a general heading rule.
	{CategoryMalformedLink, regexp.MustCompile(`(?im)^chapter\.\s+Here's\s+the\s+link:`)},
}

// Extract returns the page's heading, or false if no pattern matches.
// Exactly one heading is retained per page.
func Extract(text string) (Match, bool) {
	for _, p := range patterns {
		if m := p.re.FindString(text); m != "" {
			return Match{Text: m, Category: p.category}, true
		}
	}
	return Match{}, false
}

var numberedPrefix = regexp.MustCompile(`^\d+(?:\.\d+)*\s+`)

// IsNumbered reports whether a heading starts with a dotted numeral
// sequence, the classification rule for numbered section headings.
func IsNumbered(h string) bool {
	return numberedPrefix.MatchString(h)
}
