package heading

import "testing"

func TestExtract_PatternPriority(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     string
		category Category
	}{
		{
			name:     "chapter line",
			text:     "Chapter 3: Gradient Descent\nBody text follows.",
			want:     "Chapter 3: Gradient Descent",
			category: CategoryChapter,
		},
		{
			name:     "uppercase chapter",
			text:     "intro\nCHAPTER TWO\nmore",
			want:     "CHAPTER TWO",
			category: CategoryChapter,
		},
		{
			name:     "lowercase chapter is matched case-insensitively",
			text:     "chapter one: beginnings\ntext",
			want:     "chapter one: beginnings",
			category: CategoryChapter,
		},
		{
			name:     "section line",
			text:     "Section 4.1 Losses\ndetails",
			want:     "Section 4.1 Losses",
			category: CategorySection,
		},
		{
			name:     "numbered heading",
			text:     "3.2 Backpropagation\nexplained here",
			want:     "3.2 Backpropagation",
			category: CategoryNumbered,
		},
		{
			name:     "deep numbered heading",
			text:     "10.4.2 Regularization tricks\nbody",
			want:     "10.4.2 Regularization tricks",
			category: CategoryNumbered,
		},
		{
			name:     "malformed link line",
			text:     "chapter. Here's the link: http://example.com",
			// Contains "chapter" at line start, so the chapter rule
			// fires before the diagnostic pattern gets a chance.
			want:     "chapter. Here's the link: http://example.com",
			category: CategoryChapter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Extract(tt.text)
			if !ok {
				t.Fatalf("expected a heading match, got none")
			}
			if m.Text != tt.want {
				t.Errorf("expected heading %q, got %q", tt.want, m.Text)
			}
			if m.Category != tt.category {
				t.Errorf("expected category %d, got %d", tt.category, m.Category)
			}
		})
	}
}

func TestExtract_CategoryOrderOutranksPosition(t *testing.T) {
	// The numbered heading appears first in the text, but the chapter
	// pattern has higher priority, so the later line wins.
	text := "1.1 Early numbered heading\nfiller\nChapter 7: Late arrival\nmore"
	m, ok := Extract(text)
	if !ok {
		t.Fatal("expected a heading match")
	}
	if m.Text != "Chapter 7: Late arrival" {
		t.Errorf("expected chapter heading to win, got %q", m.Text)
	}
	if m.Category != CategoryChapter {
		t.Errorf("expected chapter category, got %d", m.Category)
	}
}

func TestExtract_MatchMustStartAtLineStart(t *testing.T) {
	text := "see the Chapter on losses mid-sentence\nand nothing else"
	if m, ok := Extract(text); ok {
		t.Errorf("expected no match for mid-line keyword, got %q", m.Text)
	}
}

func TestExtract_NoHeading(t *testing.T) {
	if m, ok := Extract("just ordinary prose without markers"); ok {
		t.Errorf("expected no match, got %q", m.Text)
	}
}

func TestExtract_StrictNumberedIsShadowed(t *testing.T) {
	// Any line the strict numbered rule accepts is also accepted by the
	// general numbered rule, which runs first. The strict rule exists
	// for parity with the known heading set but cannot fire first.
	inputs := []string{
		"3.2 Alpha goes here\n",
		"1 Beta\n",
		"2.10.4 Gamma delta\n",
	}
	for _, text := range inputs {
		m, ok := Extract(text)
		if !ok {
			t.Fatalf("expected a match for %q", text)
		}
		if m.Category != CategoryNumbered {
			t.Errorf("%q: expected general numbered rule to shadow strict one, got category %d", text, m.Category)
		}
	}
}

func TestIsNumbered(t *testing.T) {
	tests := []struct {
		heading string
		want    bool
	}{
		{"3.2 Details", true},
		{"10 Overview", true},
		{"1.2.3.4 Deep", true},
		{"Chapter 3", false},
		{"Appendix A", false},
		{"3.2Details", false},
	}
	for _, tt := range tests {
		if got := IsNumbered(tt.heading); got != tt.want {
			t.Errorf("IsNumbered(%q): expected %v, got %v", tt.heading, tt.want, got)
		}
	}
}
