// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Maximum batch size accepted by the embedding endpoints.
const maxBatchSize = 32

// Embedder interface for text embedding generation
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	ModelName() string
}

// OpenAIEmbedder implements Embedder against any OpenAI-compatible endpoint.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates a new OpenAI embedder
func NewOpenAIEmbedder(apiKey, baseURL, model string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedding api key is empty")
	}
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Embed generates embeddings for texts, splitting into batches as needed.
// Results are returned in input order.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for batchStart := 0; batchStart < len(texts); batchStart += maxBatchSize {
		batchEnd := batchStart + maxBatchSize
		if batchEnd > len(texts) {
			batchEnd = len(texts)
		}
		batch := texts[batchStart:batchEnd]

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(e.model),
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("unexpected number of embeddings: got %d, expected %d",
				len(resp.Data), len(batch))
		}
		// data.Index handles potential out-of-order responses
		for _, data := range resp.Data {
			if data.Index < 0 || data.Index >= len(batch) {
				return nil, fmt.Errorf("invalid index %d in embedding response", data.Index)
			}
			result[batchStart+data.Index] = data.Embedding
		}
	}
	return result, nil
}

// ModelName returns the model name
func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}
