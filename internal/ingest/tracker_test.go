package ingest

import (
	"testing"

	"github.com/dgallion1/booktutor/internal/pdf"
)

func TestTrack_ChapterInheritance(t *testing.T) {
	pages := []pdf.Page{
		{Text: "Chapter 1: Foundations\nIntroductory text.", Number: 0},
		{Text: "Plain continuation page with no heading.", Number: 1},
		{Text: "Chapter 2: Advanced Topics\nNew material.", Number: 2},
		{Text: "Another continuation.", Number: 3},
	}

	var state State
	var frags []Fragment
	for _, page := range pages {
		var frag Fragment
		state, frag = Track(state, page)
		frags = append(frags, frag)
	}

	wantChapters := []string{
		"Chapter 1: Foundations",
		"Chapter 1: Foundations",
		"Chapter 2: Advanced Topics",
		"Chapter 2: Advanced Topics",
	}
	for i, want := range wantChapters {
		if frags[i].Chapter != want {
			t.Errorf("page %d: expected chapter %q, got %q", i, want, frags[i].Chapter)
		}
	}
}

func TestTrack_SectionIsPageLocal(t *testing.T) {
	var state State
	state, frag1 := Track(state, pdf.Page{Text: "Section 2.1 Details\nbody", Number: 0})
	if frag1.Section != "Section 2.1 Details" {
		t.Fatalf("expected section on page 0, got %q", frag1.Section)
	}
	_, frag2 := Track(state, pdf.Page{Text: "continuation without heading", Number: 1})
	if frag2.Section != "" {
		t.Errorf("section must not be inherited, got %q", frag2.Section)
	}
}

func TestTrack_NumberedHeadingIsSection(t *testing.T) {
	var state State
	state, frag := Track(state, pdf.Page{Text: "3.2 Convergence proofs\nbody", Number: 0})
	if frag.Section != "3.2 Convergence proofs" {
		t.Errorf("expected numbered heading as section, got %q", frag.Section)
	}
	if frag.Chapter != "" {
		t.Errorf("numbered heading must not set chapter, got %q", frag.Chapter)
	}
	if state.Chapter != "" {
		t.Errorf("numbered heading must not update state, got %q", state.Chapter)
	}
}

func TestTrack_NoChapterYet(t *testing.T) {
	var state State
	state, frag := Track(state, pdf.Page{Text: "Front matter before any chapter.", Number: 0})
	if frag.Chapter != "" {
		t.Errorf("expected empty chapter before any heading, got %q", frag.Chapter)
	}
	if state.Chapter != "" {
		t.Errorf("state must stay empty, got %q", state.Chapter)
	}
}

func TestTrack_SectionPageStillInheritsChapter(t *testing.T) {
	var state State
	state, _ = Track(state, pdf.Page{Text: "Chapter 1: Intro\nbody", Number: 0})
	_, frag := Track(state, pdf.Page{Text: "Section 2.1 Details\nbody", Number: 1})
	if frag.Chapter != "Chapter 1: Intro" {
		t.Errorf("section page must inherit chapter, got %q", frag.Chapter)
	}
	if frag.Section != "Section 2.1 Details" {
		t.Errorf("expected page-local section, got %q", frag.Section)
	}
}
