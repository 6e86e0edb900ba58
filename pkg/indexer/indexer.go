package indexer

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/oncorag/gliorag/internal/models"
	"github.com/oncorag/gliorag/internal/types"
	"github.com/oncorag/gliorag/pkg/chunker"
)

type IndexerConfig struct {
	ChunkSize    int
	ChunkOverlap int
	BatchSize    int
}

// Indexer builds the vector index: resolve each record's canonical text,
// chunk it, embed chunks in fixed-size batches, and upsert each batch. A
// failed embedding call aborts the run; batches already written stay valid
// because re-running upserts by id.
type Indexer struct {
	config   IndexerConfig
	chunker  chunker.Chunker
	embedder types.Embedder
	store    types.VectorStore
}

// Stats accounts for one index build.
type Stats struct {
	LiteratureRecords int
	GuidelineRecords  int
	SkippedEmpty      int
	Chunks            int
	Batches           int
}

func NewWithConfig(config IndexerConfig, embedder types.Embedder, store types.VectorStore) *Indexer {
	if config.ChunkSize == 0 {
		config.ChunkSize = 1200
	}
	if config.ChunkOverlap == 0 {
		config.ChunkOverlap = 200
	}
	if config.BatchSize == 0 {
		config.BatchSize = 128
	}

	return &Indexer{
		config:   config,
		chunker:  chunker.New(config.ChunkSize, config.ChunkOverlap),
		embedder: embedder,
		store:    store,
	}
}

// BuildIndex chunks every record, embeds the chunks batch by batch, and
// upserts them. The optional onProgress callback receives the count of
// chunks written so far plus the total.
func (ix *Indexer) BuildIndex(
	ctx context.Context,
	literature []models.LiteratureRecord,
	guidelines []models.GuidelineRecord,
	onProgress func(indexed, total int),
) (Stats, error) {
	var stats Stats
	var pending []models.IndexedChunk

	for _, rec := range literature {
		stats.LiteratureRecords++

		text := rec.ResolveText()
		if text == "" {
			stats.SkippedEmpty++
			continue
		}

		base := map[string]any{
			"source_type":  sourceTypeOr(rec.SourceType, models.SourceTypePubMed),
			"pmid":         rec.PMID,
			"pmcid":        rec.PMCID,
			"title":        rec.Title,
			"journal":      rec.Journal,
			"year":         rec.Year,
			"pub_types":    rec.PubTypes,
			"has_fulltext": rec.HasFulltext(),
		}

		for idx, chunk := range ix.chunker.Split(text) {
			pending = append(pending, models.IndexedChunk{
				ID:         fmt.Sprintf("pubmed-%s-%d", rec.PMID, idx),
				Text:       chunk,
				ChunkIndex: idx,
				Metadata:   chunkMetadata(base, idx),
			})
		}
	}

	for _, rec := range guidelines {
		stats.GuidelineRecords++

		text := rec.ResolveText()
		if text == "" {
			stats.SkippedEmpty++
			continue
		}

		base := map[string]any{
			"source_type":    sourceTypeOr(rec.SourceType, models.SourceTypeGuideline),
			"guideline_name": rec.GuidelineName,
			"year":           rec.Year,
			"file_name":      rec.FileName,
			"url":            rec.URL,
		}

		// Guideline files carry no reliable stable identifier, so the
		// chunk id gets a random suffix to avoid collisions between
		// same-named files.
		fileName := rec.FileName
		if fileName == "" {
			fileName = "guideline"
		}
		for idx, chunk := range ix.chunker.Split(text) {
			pending = append(pending, models.IndexedChunk{
				ID:         fmt.Sprintf("guideline-%s-%d-%s", fileName, idx, randomSuffix()),
				Text:       chunk,
				ChunkIndex: idx,
				Metadata:   chunkMetadata(base, idx),
			})
		}
	}

	stats.Chunks = len(pending)
	if len(pending) == 0 {
		return stats, nil
	}

	for start := 0; start < len(pending); start += ix.config.BatchSize {
		end := start + ix.config.BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		// The embedding API returns vectors in submission order; the
		// pipeline depends on that to line up chunks and metadata.
		embeddings, err := ix.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return stats, fmt.Errorf("embedding batch at chunk %d: %w", start, err)
		}
		for i := range batch {
			batch[i].Embedding = embeddings[i]
		}

		if err := ix.store.Upsert(ctx, batch); err != nil {
			return stats, fmt.Errorf("upserting batch at chunk %d: %w", start, err)
		}
		stats.Batches++

		if onProgress != nil {
			onProgress(end, len(pending))
		}
	}

	return stats, nil
}

func chunkMetadata(base map[string]any, idx int) map[string]any {
	meta := make(map[string]any, len(base)+1)
	for k, v := range base {
		meta[k] = v
	}
	meta["chunk_index"] = idx
	return CleanMetadata(meta)
}

func sourceTypeOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func randomSuffix() string {
	u := uuid.New()
	return hex.EncodeToString(u[:4])
}
