package retriever

import (
	"context"
	"fmt"

	"github.com/oncorag/gliorag/internal/models"
	"github.com/oncorag/gliorag/internal/types"
)

// Retriever embeds a question and asks the vector store for the nearest
// chunks. Results keep the backend's native ascending-distance order; no
// re-ranking, deduplication or score thresholding.
type Retriever struct {
	embedder types.Embedder
	store    types.VectorStore
}

func New(embedder types.Embedder, store types.VectorStore) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Retrieve returns at most topK chunks relevant to the question. A topK
// larger than the corpus returns everything available.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) ([]models.RetrievedChunk, error) {
	if topK < 1 {
		topK = 8
	}

	embedding, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := r.store.Search(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	return results, nil
}
