package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the loaded configuration. Missing credentials are fatal:
// the process must not proceed past startup without an OpenAI API key and a
// PubMed contact email.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.OpenAI.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "openai.api_key",
			Message: "OpenAI API key is required",
		})
	}

	if c.OpenAI.BaseURL != "" {
		if _, err := url.Parse(c.OpenAI.BaseURL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "openai.base_url",
				Message: "invalid OpenAI base URL",
			})
		}
	}

	if c.PubMed.Email == "" {
		errors = append(errors, ValidationError{
			Field:   "pubmed.email",
			Message: "PubMed contact email is required",
		})
	}

	if c.Database.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "database connection URL is required",
		})
	} else if _, err := url.Parse(c.Database.URL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "invalid database URL",
		})
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	if c.RAG.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "rag.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	// Overlap must stay below chunk size or the chunker cannot make
	// forward progress.
	if c.RAG.ChunkOverlap < 0 || c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "rag.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	if c.RAG.TopK < 1 {
		errors = append(errors, ValidationError{
			Field:   "rag.top_k",
			Message: "top_k must be positive",
		})
	}

	return errors
}
