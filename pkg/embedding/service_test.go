// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

func TestEmbedderForSelection(t *testing.T) {
	service := NewService(map[string]ProviderConfig{
		"openai": {APIKey: "test-key"},
	})

	embedder, err := service.embedderFor("openai:text-embedding-3-small")
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", embedder.ModelName())

	// the embedder is cached per model reference
	again, err := service.embedderFor("openai:text-embedding-3-small")
	require.NoError(t, err)
	assert.Same(t, embedder, again)
}

func TestEmbedderForErrors(t *testing.T) {
	service := NewService(map[string]ProviderConfig{
		"openai": {APIKey: "test-key"},
	})

	_, err := service.embedderFor("text-embedding-3-small")
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))

	_, err = service.embedderFor("openai:")
	require.Error(t, err)

	_, err = service.embedderFor(":model")
	require.Error(t, err)

	_, err = service.embedderFor("cohere:embed-v3")
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestSupported(t *testing.T) {
	service := NewService(map[string]ProviderConfig{
		"openai": {APIKey: "k1"},
		"local":  {APIKey: "k2"},
	})
	assert.Equal(t, []string{"local", "openai"}, service.Supported())

	// a provider without an api key cannot build an embedder
	service = NewService(map[string]ProviderConfig{"openai": {}})
	_, err := service.embedderFor("openai:text-embedding-3-small")
	require.Error(t, err)
}

func TestEmbedTextsInvalidModel(t *testing.T) {
	service := NewService(nil)
	_, err := service.EmbedTexts(context.Background(), "bogus", []string{"hello"})
	require.Error(t, err)
}
