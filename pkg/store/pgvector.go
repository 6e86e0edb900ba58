package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/oncorag/gliorag/internal/models"
)

type VectorStoreConfig struct {
	ConnString string
	TableName  string
	VectorDim  int
}

// VectorStore persists embedded chunks in a pgvector table and answers
// cosine nearest-neighbor queries. Rows are upserted by id, so re-running
// an index build with identical source identifiers overwrites in place.
type VectorStore struct {
	config VectorStoreConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(ctx context.Context, config VectorStoreConfig) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "gbm_rag"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 3072 // text-embedding-3-large
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	vs := &VectorStore{
		config: config,
		pool:   pool,
	}

	if err := vs.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return vs, nil
}

func (vs *VectorStore) initialize(ctx context.Context) error {
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			chunk_index INTEGER,
			embedding vector(%d),
			metadata JSONB
		)`, vs.config.TableName, vs.config.VectorDim)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		vs.config.TableName, vs.config.TableName)

	_, err = vs.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// Upsert writes one batch of embedded chunks inside a transaction. A batch
// either commits whole or not at all, so a crash can leave a partial index
// but never a partial batch.
func (vs *VectorStore) Upsert(ctx context.Context, chunks []models.IndexedChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := vs.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, content, chunk_index, embedding, metadata)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			chunk_index = EXCLUDED.chunk_index,
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata`,
		vs.config.TableName)

	for _, chunk := range chunks {
		if len(chunk.Embedding) != vs.config.VectorDim {
			return fmt.Errorf("chunk %s: embedding dimension %d does not match store dimension %d",
				chunk.ID, len(chunk.Embedding), vs.config.VectorDim)
		}

		_, err = tx.Exec(ctx, stmt,
			chunk.ID,
			sanitizeUTF8(chunk.Text),
			chunk.ChunkIndex,
			pgvector.NewVector(chunk.Embedding),
			chunk.Metadata,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %s: %v", chunk.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

// Search returns the topK stored chunks nearest to the query embedding in
// ascending cosine-distance order. Asking for more results than the table
// holds returns everything, no error.
func (vs *VectorStore) Search(ctx context.Context, embedding []float32, topK int) ([]models.RetrievedChunk, error) {
	if topK < 1 {
		topK = 8
	}

	query := fmt.Sprintf(`
		SELECT content, metadata, embedding <=> $1 AS distance
		FROM %s
		ORDER BY distance
		LIMIT $2`,
		vs.config.TableName)

	rows, err := vs.pool.Query(ctx, query, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %v", err)
	}
	defer rows.Close()

	var results []models.RetrievedChunk
	for rows.Next() {
		var r models.RetrievedChunk
		if err := rows.Scan(&r.Text, &r.Metadata, &r.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %v", err)
	}

	return results, nil
}

// Count reports how many chunks the table holds.
func (vs *VectorStore) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", vs.config.TableName)
	if err := vs.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %v", err)
	}
	return count, nil
}

func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}

func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	v := make([]rune, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size == 1 {
				continue
			}
		}
		v = append(v, r)
	}
	return string(v)
}
