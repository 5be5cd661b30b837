/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// Built-in manifest schemas per artifact type. Free-form subtypes are not
// constrained; the well-known fields of the generic and collection types
// must carry the declared shapes when present.
var builtinManifestSchemas = map[string]interface{}{
	TypeGeneric:    genericManifestSchema(),
	TypeCollection: collectionManifestSchema(),
}

func genericManifestSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":          map[string]interface{}{"type": "string"},
			"description":   map[string]interface{}{"type": "string"},
			"version":       map[string]interface{}{"type": "string"},
			"license":       map[string]interface{}{"type": "string"},
			"documentation": map[string]interface{}{"type": "string"},
			"tags": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"covers": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"authors": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "object"},
			},
			"maintainers": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "object"},
			},
		},
	}
}

func collectionManifestSchema() map[string]interface{} {
	schema := genericManifestSchema()
	properties := schema["properties"].(map[string]interface{})
	properties["collection"] = map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "object"},
	}
	return schema
}

// validateManifest checks a manifest against the built-in schema of its
// artifact type. Types without a built-in schema pass unchecked.
func validateManifest(artifactType string, manifest map[string]interface{}) error {
	schema, ok := builtinManifestSchemas[artifactType]
	if !ok {
		return nil
	}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(manifest))
	if err != nil {
		return commonerrors.NewInternalError(fmt.Sprintf("invalid %s manifest schema: %v", artifactType, err))
	}
	if !result.Valid() {
		messages := ""
		for _, desc := range result.Errors() {
			if messages != "" {
				messages += "; "
			}
			messages += desc.String()
		}
		return commonerrors.NewBadRequest(fmt.Sprintf("invalid %s manifest: %s", artifactType, messages))
	}
	return nil
}
