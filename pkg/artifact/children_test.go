/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"testing"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

func renderAll(t *testing.T, conditions []sqrl.Sqlizer) []string {
	t.Helper()
	rendered := make([]string, 0, len(conditions))
	for _, condition := range conditions {
		sqlStr, _, err := condition.ToSql()
		require.NoError(t, err)
		rendered = append(rendered, sqlStr)
	}
	return rendered
}

func TestBuildChildConditionsKeywords(t *testing.T) {
	conditions, stage, err := buildChildConditions(client.DialectPostgres, []string{"mnist"}, nil)
	require.NoError(t, err)
	assert.False(t, stage)
	rendered := renderAll(t, conditions)
	require.Len(t, rendered, 1)
	assert.Equal(t, "manifest::text ILIKE ?", rendered[0])

	conditions, _, err = buildChildConditions(client.DialectSQLite, []string{"mnist"}, nil)
	require.NoError(t, err)
	rendered = renderAll(t, conditions)
	assert.Equal(t, "manifest LIKE ?", rendered[0])
}

func TestBuildChildConditionsManifest(t *testing.T) {
	filters := map[string]interface{}{
		"manifest": map[string]interface{}{
			"name": "mnist",
		},
	}
	conditions, _, err := buildChildConditions(client.DialectPostgres, nil, filters)
	require.NoError(t, err)
	rendered := renderAll(t, conditions)
	require.Len(t, rendered, 1)
	assert.Equal(t, "manifest->>'name' = ?", rendered[0])

	// '*' in the value switches to a pattern match
	filters["manifest"] = map[string]interface{}{"name": "mnist*"}
	conditions, _, err = buildChildConditions(client.DialectPostgres, nil, filters)
	require.NoError(t, err)
	rendered = renderAll(t, conditions)
	assert.Equal(t, "manifest->>'name' ILIKE ?", rendered[0])

	filters["manifest"] = "not an object"
	_, _, err = buildChildConditions(client.DialectPostgres, nil, filters)
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestBuildChildConditionsPermissions(t *testing.T) {
	filters := map[string]interface{}{
		"config": map[string]interface{}{
			"permissions": map[string]interface{}{
				"alice": "rw",
			},
		},
	}
	conditions, _, err := buildChildConditions(client.DialectPostgres, nil, filters)
	require.NoError(t, err)
	rendered := renderAll(t, conditions)
	require.Len(t, rendered, 1)
	assert.Equal(t, "config->'permissions'->>'alice' = ?", rendered[0])
}

func TestBuildChildConditionsFixedAndRange(t *testing.T) {
	filters := map[string]interface{}{
		"type":       "dataset",
		"view_count": float64(10),
	}
	conditions, _, err := buildChildConditions(client.DialectPostgres, nil, filters)
	require.NoError(t, err)
	rendered := renderAll(t, conditions)
	assert.Contains(t, rendered, "type = ?")
	assert.Contains(t, rendered, "view_count >= ?")

	// [min, max] pair
	filters = map[string]interface{}{
		"created_at": []interface{}{float64(100), float64(200)},
	}
	conditions, _, err = buildChildConditions(client.DialectPostgres, nil, filters)
	require.NoError(t, err)
	sqlStr, args, err := conditions[0].ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(created_at >= ? AND created_at <= ?)", sqlStr)
	assert.Equal(t, []interface{}{float64(100), float64(200)}, args)

	// open-ended bounds skip the nil side
	filters["created_at"] = []interface{}{nil, float64(200)}
	conditions, _, err = buildChildConditions(client.DialectPostgres, nil, filters)
	require.NoError(t, err)
	sqlStr, _, err = conditions[0].ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(created_at <= ?)", sqlStr)

	filters["created_at"] = []interface{}{nil, nil}
	_, _, err = buildChildConditions(client.DialectPostgres, nil, filters)
	require.Error(t, err)

	filters["created_at"] = []interface{}{float64(1), float64(2), float64(3)}
	_, _, err = buildChildConditions(client.DialectPostgres, nil, filters)
	require.Error(t, err)
}

func TestBuildChildConditionsStageAndUnknownKey(t *testing.T) {
	_, stage, err := buildChildConditions(client.DialectPostgres, nil, map[string]interface{}{"stage": true})
	require.NoError(t, err)
	assert.True(t, stage)

	_, _, err = buildChildConditions(client.DialectPostgres, nil, map[string]interface{}{"secrets": "x"})
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestListStageFilterPredicates(t *testing.T) {
	// a staged artifact must only show up under stage=true; the committed
	// side filters on the staging column, never on the manifest
	_, stage, err := buildChildConditions(client.DialectPostgres, nil, map[string]interface{}{"stage": true})
	require.NoError(t, err)
	assert.True(t, stage)
	stagedSQL, _, err := client.DialectPostgres.StageCondition(stage).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(staging IS NOT NULL AND staging::text <> 'null')", stagedSQL)

	_, stage, err = buildChildConditions(client.DialectPostgres, nil, map[string]interface{}{"stage": false})
	require.NoError(t, err)
	assert.False(t, stage)
	committedSQL, _, err := client.DialectPostgres.StageCondition(stage).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(staging IS NULL OR staging::text = 'null')", committedSQL)
}

func TestResolveOrderBy(t *testing.T) {
	orderBy, err := resolveOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "id ASC", orderBy)

	orderBy, err = resolveOrderBy("view_count")
	require.NoError(t, err)
	assert.Equal(t, "view_count DESC", orderBy)

	orderBy, err = resolveOrderBy("created_at<")
	require.NoError(t, err)
	assert.Equal(t, "created_at ASC", orderBy)

	_, err = resolveOrderBy("alias")
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestResolveListFields(t *testing.T) {
	fields, err := resolveListFields(nil)
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = resolveListFields(map[string]interface{}{
		"list_fields": []interface{}{"manifest", "view_count"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"manifest", "view_count"}, fields)

	_, err = resolveListFields(map[string]interface{}{"list_fields": "manifest"})
	require.Error(t, err)

	_, err = resolveListFields(map[string]interface{}{
		"list_fields": []interface{}{"manifest", "secrets"},
	})
	require.Error(t, err)
}

func TestProjectFields(t *testing.T) {
	data := map[string]interface{}{
		"id":         "ws/alias",
		"_id":        "row-id",
		"manifest":   map[string]interface{}{"name": "x"},
		"view_count": float64(3),
		"config":     map[string]interface{}{},
	}
	projected := projectFields(data, []string{"manifest"})
	assert.Equal(t, "ws/alias", projected["id"])
	assert.Equal(t, "row-id", projected["_id"])
	assert.Contains(t, projected, "manifest")
	assert.NotContains(t, projected, "view_count")
	assert.NotContains(t, projected, "config")
}
