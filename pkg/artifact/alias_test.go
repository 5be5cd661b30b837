/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCandidateAliasesReadable(t *testing.T) {
	candidates := generateCandidateAliases("", nil)
	require.Len(t, candidates, aliasCandidatesPerRound)
	for _, candidate := range candidates {
		parts := strings.Split(candidate, "-")
		assert.Len(t, parts, 4, "expected adjective-noun-verb-adverb, got %q", candidate)
		for _, part := range parts {
			assert.NotEmpty(t, part)
		}
	}
}

func TestGenerateCandidateAliasesPattern(t *testing.T) {
	// no placeholders: the pattern is the only candidate
	candidates := generateCandidateAliases("fixed-name", nil)
	assert.Equal(t, []string{"fixed-name"}, candidates)

	// bound placeholders substitute from the id parts
	idParts := map[string]interface{}{
		"animal": []interface{}{"zebra"},
		"color":  "blue",
	}
	candidates = generateCandidateAliases("{color}-{animal}", idParts)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "blue-zebra", candidates[0])
	// a single possible substitution never repeats
	assert.Len(t, candidates, 1)

	// an unbound placeholder falls back to a fresh uuid
	candidates = generateCandidateAliases("run-{missing}", nil)
	require.NotEmpty(t, candidates)
	for _, candidate := range candidates {
		suffix := strings.TrimPrefix(candidate, "run-")
		_, err := uuid.Parse(suffix)
		assert.NoError(t, err, "expected a uuid suffix, got %q", candidate)
	}
}

func TestGenerateCandidateAliasesDeduplicates(t *testing.T) {
	idParts := map[string]interface{}{
		"animal": []interface{}{"ant", "bee"},
	}
	candidates := generateCandidateAliases("{animal}", idParts)
	seen := map[string]bool{}
	for _, candidate := range candidates {
		assert.False(t, seen[candidate], "duplicate candidate %q", candidate)
		seen[candidate] = true
	}
	assert.LessOrEqual(t, len(candidates), 2)
}

func TestUUIDPattern(t *testing.T) {
	assert.True(t, uuidPattern.MatchString(uuid.NewString()))
	id, err := newArtifactId()
	require.NoError(t, err)
	assert.True(t, uuidPattern.MatchString(id))
	assert.False(t, uuidPattern.MatchString("my-dataset"))
	assert.False(t, uuidPattern.MatchString("ws/alias"))
}
