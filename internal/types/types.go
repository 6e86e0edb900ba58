package types

import (
	"context"

	"github.com/oncorag/gliorag/internal/models"
)

// Embedder maps text to fixed-length vectors. Batch results are returned in
// submission order; index and query time must use the same model or the
// distances are meaningless.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore persists (id, vector, text, metadata) tuples and answers
// cosine nearest-neighbor queries. Upsert overwrites by id, making
// re-indexing idempotent.
type VectorStore interface {
	Upsert(ctx context.Context, chunks []models.IndexedChunk) error
	Search(ctx context.Context, embedding []float32, topK int) ([]models.RetrievedChunk, error)
	Count(ctx context.Context) (int64, error)
	Close()
}

// Generator is the text-completion collaborator. One payload in, one answer
// out; transport and model choice are configuration, not a runtime probe.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
