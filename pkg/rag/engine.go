package rag

import (
	"context"
	"fmt"

	"github.com/oncorag/gliorag/internal/models"
	"github.com/oncorag/gliorag/internal/types"
)

// Retriever returns the chunks most relevant to a question, best first.
type Retriever interface {
	Retrieve(ctx context.Context, question string, topK int) ([]models.RetrievedChunk, error)
}

// Engine composes retrieval, context assembly, prompt building and
// generation into one question-answering call. Each invocation is
// independent; nothing persists across calls.
type Engine struct {
	retriever Retriever
	generator types.Generator
	topK      int
}

func NewEngine(retriever Retriever, generator types.Generator, topK int) *Engine {
	if topK < 1 {
		topK = 8
	}
	return &Engine{
		retriever: retriever,
		generator: generator,
		topK:      topK,
	}
}

// AnswerQuestion runs the fixed sequence retrieve → assemble → build →
// generate. Zero retrieved chunks still produce a validly formed prompt
// with an empty context block; the model's own insufficient-evidence
// instruction covers that case.
func (e *Engine) AnswerQuestion(ctx context.Context, question string) (models.Answer, error) {
	results, err := e.retriever.Retrieve(ctx, question, e.topK)
	if err != nil {
		return models.Answer{}, fmt.Errorf("retrieval failed: %w", err)
	}

	prompt := BuildPrompt(question, BuildContext(results))

	text, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return models.Answer{}, fmt.Errorf("generation failed: %w", err)
	}

	return models.Answer{Text: text, Sources: results}, nil
}
