package ingest

import (
	"strings"

	"github.com/dgallion1/booktutor/internal/heading"
	"github.com/dgallion1/booktutor/internal/pdf"
)

// State is the accumulator threaded through the page fold. It carries
// the most recently seen chapter so pages without their own chapter
// heading inherit correct provenance.
type State struct {
	Chapter string
}

// Fragment is a page-level text span with its resolved chapter and
// section. The section never crosses pages; only the chapter carries
// forward.
type Fragment struct {
	Text    string
	Page    int
	Chapter string
	Section string
}

// Track processes one page: extract its heading, classify it, and
// resolve the page's chapter and section. Returns the updated state and
// the tagged fragment.
func Track(state State, page pdf.Page) (State, Fragment) {
	frag := Fragment{Text: page.Text, Page: page.Number}

	if m, ok := heading.Extract(page.Text); ok {
		low := strings.ToLower(m.Text)
		switch {
		case strings.Contains(low, "chapter"):
			frag.Chapter = m.Text
			state.Chapter = m.Text
		case strings.Contains(low, "section"):
			frag.Section = m.Text
		case heading.IsNumbered(m.Text):
			frag.Section = m.Text
		}
	}
	if frag.Chapter == "" {
		frag.Chapter = state.Chapter
	}
	return state, frag
}
