package answer

import (
	"fmt"
	"strings"

	"github.com/dgallion1/booktutor/internal/chunk"
)

const promptTemplate = `You are an expert tutor who must answer questions using ONLY the information provided in the context excerpts from the book.
Do not use any external knowledge or make assumptions beyond what is explicitly stated in the context.

**CRITICAL INSTRUCTIONS:**
1. If the context does not contain sufficient information to answer the question completely and accurately, respond with: "Insufficient evidence in the provided book excerpts."
2. Your answer must be comprehensive, well-structured, and directly supported by the context.
3. For every key point in your answer, include an inline citation using this exact format: [Chapter: X | Section: Y | Page: Z]
4. If multiple sources support the same point, include all relevant citations.
5. Ensure your response is educational and helpful, maintaining a professional tutoring tone.

**Context excerpts from the book (with metadata tags):**
%s

**Question:** %s

**Answer:**`

// BuildPrompt renders the tutor prompt around the formatted context and
// the user's question.
func BuildPrompt(contextText, question string) string {
	return fmt.Sprintf(promptTemplate, contextText, question)
}

// CitationTag renders a chunk's provenance the way answers cite it.
func CitationTag(m chunk.Metadata) string {
	return fmt.Sprintf("[Chapter: %s | Section: %s | Page: %d]", m.Chapter, m.Section, m.PageNumber)
}

// FormatContext prefixes every retrieved excerpt with its citation tag
// so the model can quote provenance inline.
func FormatContext(chunks []chunk.TextChunk) string {
	formatted := make([]string, len(chunks))
	for i, c := range chunks {
		formatted[i] = CitationTag(c.Metadata) + " " + c.Content
	}
	return strings.Join(formatted, "\n\n")
}
