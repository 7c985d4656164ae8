package chunk

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Metadata is the provenance tag attached to every chunk, used for
// citation display ("[Chapter: X | Section: Y | Page: Z]").
type Metadata struct {
	BookTitle  string `json:"book_title"`
	Chapter    string `json:"chapter"`
	Section    string `json:"section"`
	PageNumber int    `json:"page_number"`
	Source     string `json:"source"`
	ChunkID    string `json:"chunk_id"`
}

// TextChunk is the atomic retrievable unit: a sized piece of document
// text plus its provenance. Immutable once created.
type TextChunk struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// New tags one sub-chunk of a page fragment with full provenance and a
// fresh chunk ID. Returns false when the content trims to nothing;
// empty chunks are never emitted.
func New(content, bookTitle, chapter, section string, page int, source string, fragIdx, subIdx int) (TextChunk, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return TextChunk{}, false
	}
	return TextChunk{
		Content: content,
		Metadata: Metadata{
			BookTitle:  bookTitle,
			Chapter:    chapter,
			Section:    section,
			PageNumber: page,
			Source:     source,
			ChunkID:    NewID(source, page, fragIdx, subIdx),
		},
	}, true
}

// NewID builds a chunk identifier from the chunk's position in the
// document plus a random suffix. The suffix keeps IDs unique even when
// two ingestion runs process files sharing a name.
func NewID(source string, page, fragIdx, subIdx int) string {
	return fmt.Sprintf("%s_p%d_f%d_s%d_%s", source, page, fragIdx, subIdx, uuid.NewString()[:8])
}
