package adapter

import (
	"context"
	"iter"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// Gemini is the interface for the embedding and completion services.
// StreamCompletion returns a lazy, finite, non-restartable sequence of
// text increments; the consumer pulls until exhaustion or error.
type Gemini interface {
	Embedding(ctx context.Context, text string) ([]float32, error)
	StreamCompletion(ctx context.Context, history []*genai.Content) iter.Seq2[string, error]
}

type GeminiClient struct {
	client          *genai.Client
	generativeModel string
	embeddingModel  string
}

type GeminiOption func(*GeminiClient)

func WithGenerativeModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.generativeModel = model
	}
}

func WithEmbeddingModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.embeddingModel = model
	}
}

func NewGemini(ctx context.Context, projectID, location string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:          client,
		generativeModel: "gemini-2.5-flash",
		embeddingModel:  "gemini-embedding-001",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GeminiClient) Embedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.embeddingModel, genai.Text(text), &genai.EmbedContentConfig{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed content")
	}
	if len(resp.Embeddings) == 0 {
		return nil, goerr.New("embedding response has no vectors")
	}

	return resp.Embeddings[0].Values, nil
}

func (g *GeminiClient) StreamCompletion(ctx context.Context, history []*genai.Content) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream := g.client.Models.GenerateContentStream(ctx, g.generativeModel, history, &genai.GenerateContentConfig{})
		for resp, err := range stream {
			if err != nil {
				yield("", goerr.Wrap(err, "failed to generate content"))
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}
