/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"strings"
	"testing"

	"gotest.tools/assert"
)

func TestSanitizeJSONKey(t *testing.T) {
	assert.NilError(t, SanitizeJSONKey("name"))
	assert.NilError(t, SanitizeJSONKey("user.id-1_x"))
	assert.Assert(t, SanitizeJSONKey("na'me") != nil)
	assert.Assert(t, SanitizeJSONKey("a b") != nil)
	assert.Assert(t, SanitizeJSONKey("") != nil)
}

func TestKeywordMatch(t *testing.T) {
	sqlStr, args, err := DialectPostgres.KeywordMatch("manifest", "mnist").ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "manifest::text ILIKE ?", sqlStr)
	assert.Equal(t, "%mnist%", args[0])

	sqlStr, _, err = DialectSQLite.KeywordMatch("manifest", "mnist").ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "manifest LIKE ?", sqlStr)
}

func TestJSONEquals(t *testing.T) {
	cond, err := DialectPostgres.JSONEquals("manifest", []string{"name"}, "mnist")
	assert.NilError(t, err)
	sqlStr, args, err := cond.ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "manifest->>'name' = ?", sqlStr)
	assert.Equal(t, "mnist", args[0])

	cond, err = DialectPostgres.JSONEquals("config", []string{"permissions", "alice"}, "rw")
	assert.NilError(t, err)
	sqlStr, _, err = cond.ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "config->'permissions'->>'alice' = ?", sqlStr)

	cond, err = DialectSQLite.JSONEquals("manifest", []string{"name"}, "mnist")
	assert.NilError(t, err)
	sqlStr, _, err = cond.ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "json_extract(manifest, '$.name') = ?", sqlStr)

	_, err = DialectPostgres.JSONEquals("manifest", []string{"na'me"}, "x")
	assert.Assert(t, err != nil)
	_, err = DialectPostgres.JSONEquals("manifest", nil, "x")
	assert.Assert(t, err != nil)
}

func TestJSONLike(t *testing.T) {
	cond, err := DialectPostgres.JSONLike("manifest", []string{"name"}, "mni*")
	assert.NilError(t, err)
	sqlStr, args, err := cond.ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "manifest->>'name' ILIKE ?", sqlStr)
	assert.Equal(t, "mni%", args[0])

	cond, err = DialectSQLite.JSONLike("manifest", []string{"name"}, "mni*")
	assert.NilError(t, err)
	sqlStr, _, err = cond.ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "json_extract(manifest, '$.name') LIKE ?", sqlStr)
}

func TestJSONCompare(t *testing.T) {
	cond, err := DialectPostgres.JSONCompare("manifest", []string{"size"}, ">=", 10)
	assert.NilError(t, err)
	sqlStr, args, err := cond.ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "(manifest->>'size')::numeric >= ?", sqlStr)
	assert.Equal(t, float64(10), args[0])

	cond, err = DialectSQLite.JSONCompare("manifest", []string{"size"}, "<", 10)
	assert.NilError(t, err)
	sqlStr, _, err = cond.ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "CAST(json_extract(manifest, '$.size') AS NUMERIC) < ?", sqlStr)

	_, err = DialectPostgres.JSONCompare("manifest", []string{"size"}, "=", 10)
	assert.Assert(t, err != nil)
}

func TestStageCondition(t *testing.T) {
	sqlStr, _, err := DialectPostgres.StageCondition(true).ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "(staging IS NOT NULL AND staging::text <> 'null')", sqlStr)

	sqlStr, _, err = DialectPostgres.StageCondition(false).ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "(staging IS NULL OR staging::text = 'null')", sqlStr)

	sqlStr, _, err = DialectSQLite.StageCondition(true).ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "(staging IS NOT NULL AND staging <> 'null')", sqlStr)

	sqlStr, _, err = DialectSQLite.StageCondition(false).ToSql()
	assert.NilError(t, err)
	assert.Equal(t, "(staging IS NULL OR staging = 'null')", sqlStr)
}

// stagingConditionHolds evaluates the staging column value the way the
// rendered predicates do: NULL or the JSON literal null means unstaged.
func stagingConditionHolds(staging []byte, staged bool) bool {
	set := len(staging) > 0 && string(staging) != "null"
	if staged {
		return set
	}
	return !set
}

func TestStageConditionsAreDisjoint(t *testing.T) {
	// the unstaged predicate must inspect the staging column, not the
	// manifest; a staged artifact always carries a manifest too
	sqlStr, _, err := DialectPostgres.StageCondition(false).ToSql()
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(sqlStr, "staging"))
	assert.Assert(t, !strings.Contains(sqlStr, "manifest"))

	staged := &Artifact{Id: "a1"}
	staged.SetManifest(map[string]interface{}{"name": "n"})
	staged.SetStaging(nil, true)
	assert.Assert(t, stagingConditionHolds(staged.Staging, true))
	assert.Assert(t, !stagingConditionHolds(staged.Staging, false))

	committed := &Artifact{Id: "a2"}
	committed.SetManifest(map[string]interface{}{"name": "n"})
	committed.SetStaging(nil, false)
	assert.Assert(t, !stagingConditionHolds(committed.Staging, true))
	assert.Assert(t, stagingConditionHolds(committed.Staging, false))

	jsonNull := &Artifact{Id: "a3", Staging: []byte("null")}
	assert.Assert(t, !stagingConditionHolds(jsonNull.Staging, true))
	assert.Assert(t, stagingConditionHolds(jsonNull.Staging, false))
}
