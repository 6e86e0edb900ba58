package models

// IndexedChunk is the persisted unit: one embedded text window plus the
// scalar metadata inherited from its parent record.
type IndexedChunk struct {
	ID         string
	Text       string
	ChunkIndex int
	Embedding  []float32
	Metadata   map[string]any
}

// RetrievedChunk is one nearest-neighbor hit, ordered by ascending cosine
// distance (most similar first). Ephemeral, never persisted.
type RetrievedChunk struct {
	Text     string
	Metadata map[string]any
	Distance float64
}

// Answer is the generated text together with the retrieved chunks it was
// grounded on.
type Answer struct {
	Text    string
	Sources []RetrievedChunk
}
