/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

func TestValidateManifestGeneric(t *testing.T) {
	manifest := map[string]interface{}{
		"name":        "mnist",
		"description": "handwritten digits",
		"tags":        []interface{}{"vision", "dataset"},
		"authors":     []interface{}{map[string]interface{}{"name": "alice"}},
	}
	require.NoError(t, validateManifest(TypeGeneric, manifest))

	// extra fields are free-form
	manifest["custom"] = map[string]interface{}{"anything": 1}
	require.NoError(t, validateManifest(TypeGeneric, manifest))

	err := validateManifest(TypeGeneric, map[string]interface{}{"name": 42})
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))

	err = validateManifest(TypeGeneric, map[string]interface{}{"tags": []interface{}{"ok", 7}})
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestValidateManifestCollection(t *testing.T) {
	require.NoError(t, validateManifest(TypeCollection, map[string]interface{}{
		"name":       "datasets",
		"collection": []interface{}{map[string]interface{}{"id": "child"}},
	}))

	err := validateManifest(TypeCollection, map[string]interface{}{
		"collection": []interface{}{"not-an-object"},
	})
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestValidateManifestFreeFormTypes(t *testing.T) {
	// subtypes without a built-in schema pass unchecked
	require.NoError(t, validateManifest("dataset", map[string]interface{}{"name": 42}))
	require.NoError(t, validateManifest(TypeVectorCollection, map[string]interface{}{"name": 42}))
}
