package rag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncorag/gliorag/internal/models"
	"github.com/oncorag/gliorag/pkg/rag"
)

type fakeRetriever struct {
	results []models.RetrievedChunk
	err     error
	topK    int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, question string, topK int) ([]models.RetrievedChunk, error) {
	f.topK = topK
	return f.results, f.err
}

type fakeGenerator struct {
	prompt string
	answer string
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func TestAnswerQuestion(t *testing.T) {
	sources := []models.RetrievedChunk{
		{Text: "chunk", Metadata: map[string]any{"source_type": "guideline", "guideline_name": "NCCN", "year": "2024"}, Distance: 0.1},
	}
	ret := &fakeRetriever{results: sources}
	gen := &fakeGenerator{answer: "Grounded answer [source_1]."}

	engine := rag.NewEngine(ret, gen, 8)
	answer, err := engine.AnswerQuestion(context.Background(), "What is recommended?")
	require.NoError(t, err)

	assert.Equal(t, "Grounded answer [source_1].", answer.Text)
	assert.Equal(t, sources, answer.Sources)
	assert.Equal(t, 8, ret.topK)
	assert.Contains(t, gen.prompt, "What is recommended?")
	assert.Contains(t, gen.prompt, "[source_1] Guideline NCCN (2024)")
}

func TestAnswerQuestion_EmptyRetrievalStillGenerates(t *testing.T) {
	ret := &fakeRetriever{results: nil}
	gen := &fakeGenerator{answer: "The retrieved evidence is insufficient to draw a definite conclusion."}

	engine := rag.NewEngine(ret, gen, 8)
	answer, err := engine.AnswerQuestion(context.Background(), "Anything known?")
	require.NoError(t, err)

	// Zero results is not an error: the generator still receives a
	// validly formed prompt with an empty context block.
	assert.NotEmpty(t, gen.prompt)
	assert.Contains(t, gen.prompt, "Anything known?")
	assert.Empty(t, answer.Sources)
}

func TestAnswerQuestion_ErrorsPropagate(t *testing.T) {
	engine := rag.NewEngine(&fakeRetriever{err: errors.New("index down")}, &fakeGenerator{}, 8)
	_, err := engine.AnswerQuestion(context.Background(), "q")
	assert.ErrorContains(t, err, "index down")

	engine = rag.NewEngine(&fakeRetriever{}, &fakeGenerator{err: errors.New("model down")}, 8)
	_, err = engine.AnswerQuestion(context.Background(), "q")
	assert.ErrorContains(t, err, "model down")
}
