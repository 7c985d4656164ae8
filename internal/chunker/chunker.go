package chunker

import (
	"strings"
	"unicode/utf8"
)

// Config controls splitting behavior.
type Config struct {
	ChunkSize    int // Maximum chunk length in characters.
	ChunkOverlap int // Characters carried over between consecutive chunks.
}

// DefaultConfig returns the standard 1000/200 character split.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}
}

// separators are tried in order: paragraph, line, word, hard cut.
var separators = []string{"\n\n", "\n", " ", ""}

// Split breaks a text fragment into overlapping chunks of at most
// cfg.ChunkSize characters, preferring natural boundaries. A fragment
// at or under the threshold passes through as a single chunk.
// Whitespace-only pieces are discarded.
func Split(text string, cfg Config) []string {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 5
	}
	return splitRecursive(text, separators, cfg)
}

func splitRecursive(text string, seps []string, cfg Config) []string {
	if utf8.RuneCountInString(text) <= cfg.ChunkSize {
		if t := strings.TrimSpace(text); t != "" {
			return []string{t}
		}
		return nil
	}

	// Pick the first separator that actually occurs in the text.
	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return hardCut(text, cfg)
	}

	parts := strings.Split(text, sep)
	var chunks []string
	var pending []string
	flush := func() {
		if len(pending) > 0 {
			chunks = append(chunks, mergeParts(pending, sep, cfg)...)
			pending = nil
		}
	}
	for _, part := range parts {
		if utf8.RuneCountInString(part) <= cfg.ChunkSize {
			pending = append(pending, part)
			continue
		}
		// The part is itself oversized: emit what we have, then recurse
		// into it with finer separators.
		flush()
		chunks = append(chunks, splitRecursive(part, rest, cfg)...)
	}
	flush()
	return chunks
}

// mergeParts greedily packs small parts into windows of at most
// ChunkSize characters. When a window fills, parts are dropped from its
// front until the remainder fits the overlap budget; the survivors seed
// the next window, giving consecutive chunks their overlap.
func mergeParts(parts []string, sep string, cfg Config) []string {
	sepLen := utf8.RuneCountInString(sep)

	var chunks []string
	var window []string
	total := 0

	emit := func() {
		if doc := strings.TrimSpace(strings.Join(window, sep)); doc != "" {
			chunks = append(chunks, doc)
		}
	}

	for _, part := range parts {
		partLen := utf8.RuneCountInString(part)
		join := 0
		if len(window) > 0 {
			join = sepLen
		}
		if total+join+partLen > cfg.ChunkSize && total > 0 {
			emit()
			for len(window) > 0 && (total > cfg.ChunkOverlap || total+sepLen+partLen > cfg.ChunkSize) {
				drop := utf8.RuneCountInString(window[0])
				if len(window) > 1 {
					drop += sepLen
				}
				total -= drop
				window = window[1:]
			}
		}
		window = append(window, part)
		total += partLen
		if len(window) > 1 {
			total += sepLen
		}
	}
	emit()
	return chunks
}

// hardCut slices text into fixed windows when no separator is usable.
func hardCut(text string, cfg Config) []string {
	runes := []rune(text)
	step := cfg.ChunkSize - cfg.ChunkOverlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		if t := strings.TrimSpace(string(runes[start:end])); t != "" {
			chunks = append(chunks, t)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
