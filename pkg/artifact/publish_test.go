/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
)

func TestBuildDepositionMetadata(t *testing.T) {
	user := &UserInfo{Id: "alice"}
	row := &client.Artifact{Type: "dataset"}
	manifest := map[string]interface{}{
		"name":        "MNIST",
		"description": "Handwritten digits",
		"license":     "mit",
		"tags":        []interface{}{"vision", "digits"},
		"authors": []interface{}{
			map[string]interface{}{"name": "LeCun"},
		},
	}

	metadata := buildDepositionMetadata(row, manifest, user)
	assert.Equal(t, "MNIST", metadata["title"])
	assert.Equal(t, "dataset", metadata["upload_type"])
	assert.Equal(t, "Handwritten digits", metadata["description"])
	assert.Equal(t, "mit", metadata["license"])
	assert.Equal(t, "open", metadata["access_right"])
	assert.Equal(t, []interface{}{"vision", "digits"}, metadata["keywords"])

	creators, ok := metadata["creators"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, creators, 1)
	assert.Equal(t, "LeCun", creators[0]["name"])
}

func TestBuildDepositionMetadataDefaults(t *testing.T) {
	user := &UserInfo{Id: "alice"}
	row := &client.Artifact{Type: TypeGeneric}
	manifest := map[string]interface{}{
		"name":        "thing",
		"description": "a thing",
	}

	metadata := buildDepositionMetadata(row, manifest, user)
	assert.Equal(t, "other", metadata["upload_type"])
	assert.Equal(t, "cc-by", metadata["license"])

	// without authors the publishing user becomes the creator
	creators, ok := metadata["creators"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, creators, 1)
	assert.Equal(t, "alice", creators[0]["name"])
}
