package chunker

import "strings"

// Chunker splits normalized text into overlapping fixed-length windows.
// Offsets are rune positions: the corpus mixes Latin and CJK text and byte
// windows would split multi-byte sequences.
type Chunker struct {
	size    int
	overlap int
}

// New returns a Chunker with the given window size and overlap, both in
// runes. Overlap is clamped below size so the window start always advances.
func New(size, overlap int) Chunker {
	if size < 1 {
		size = 1200
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return Chunker{size: size, overlap: overlap}
}

// Split cuts text into windows of at most size runes, consecutive windows
// sharing overlap runes. Input is trimmed first; empty input yields nil.
// Purely positional, no sentence or paragraph awareness.
func (c Chunker) Split(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	length := len(runes)
	if length == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for start < length {
		end := start + c.size
		if end > length {
			end = length
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == length {
			break
		}
		start = end - c.overlap
	}

	return chunks
}
