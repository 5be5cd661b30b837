// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package embedding

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	commonconfig "github.com/AMD-AIG-AIMA/artifact-manager/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// ProviderConfig is the connection info for one embedding provider.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
}

// Service resolves "provider:model" references to embedders. Embedders are
// built lazily and cached per model reference.
type Service struct {
	providers map[string]ProviderConfig

	mu    sync.Mutex
	cache map[string]Embedder
}

// NewService creates an embedding service over the given providers.
func NewService(providers map[string]ProviderConfig) *Service {
	if providers == nil {
		providers = map[string]ProviderConfig{}
	}
	return &Service{
		providers: providers,
		cache:     map[string]Embedder{},
	}
}

// NewServiceFromConfig builds the service from system configuration for the
// named providers. Providers without an API key are skipped.
func NewServiceFromConfig(providerNames ...string) *Service {
	providers := map[string]ProviderConfig{}
	for _, name := range providerNames {
		key := commonconfig.GetEmbeddingAPIKey(name)
		if key == "" {
			continue
		}
		providers[name] = ProviderConfig{
			APIKey:  key,
			BaseURL: commonconfig.GetEmbeddingBaseURL(name),
		}
	}
	return NewService(providers)
}

// EmbedTexts generates embeddings for texts using the given model reference.
func (s *Service) EmbedTexts(ctx context.Context, model string, texts []string) ([][]float32, error) {
	embedder, err := s.embedderFor(model)
	if err != nil {
		return nil, err
	}
	return embedder.Embed(ctx, texts)
}

// Supported lists the registered provider names.
func (s *Service) Supported() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) embedderFor(model string) (Embedder, error) {
	parts := strings.SplitN(model, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf(
			"invalid embedding model reference %q, expected provider:model", model))
	}
	provider, modelName := parts[0], parts[1]

	cfg, ok := s.providers[provider]
	if !ok {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf(
			"unsupported embedding provider %q, supported: %s",
			provider, strings.Join(s.Supported(), ", ")))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if embedder, ok := s.cache[model]; ok {
		return embedder, nil
	}
	embedder, err := NewOpenAIEmbedder(cfg.APIKey, cfg.BaseURL, modelName)
	if err != nil {
		return nil, commonerrors.NewInternalError(err.Error())
	}
	s.cache[model] = embedder
	return embedder, nil
}
