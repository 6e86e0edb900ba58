package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ClientConfig configures the OpenAI-backed embedding and generation client.
type ClientConfig struct {
	APIKey      string
	BaseURL     string // optional OpenAI-compatible endpoint
	Model       string
	EmbedModel  string
	MaxTokens   int
	Temperature float64
}

// Client serves both external collaborators of the pipeline: text-to-vector
// embedding and text completion. The same embedding model is used at index
// and query time; mixing models silently produces meaningless distances.
type Client struct {
	config ClientConfig
	llm    *openai.LLM
}

// NewClient creates a Client with the given configuration.
func NewClient(config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Model == "" {
		config.Model = "gpt-4o"
	}
	if config.EmbedModel == "" {
		config.EmbedModel = "text-embedding-3-large"
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	} else if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2")
	}

	opts := []openai.Option{
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
		openai.WithEmbeddingModel(config.EmbedModel),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return &Client{
		config: config,
		llm:    llm,
	}, nil
}

// EmbedTexts embeds a batch of texts in one call. Results come back in
// submission order, which the indexer relies on to line up metadata.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings, err := c.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding call failed: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(embeddings))
	}

	return embeddings, nil
}

// EmbedQuery embeds a single question text.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return embeddings[0], nil
}

// Generate sends one prompt and returns the completion text. Transport and
// model errors propagate uncaught; the caller decides whether to retry.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithMaxTokens(c.config.MaxTokens),
		llms.WithTemperature(c.config.Temperature),
	)
	if err != nil {
		return "", fmt.Errorf("generation call failed: %w", err)
	}
	return answer, nil
}
