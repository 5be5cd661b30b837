/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"testing"

	"gotest.tools/assert"
)

func TestGetArtifactFieldTags(t *testing.T) {
	tags := GetArtifactFieldTags()
	for _, column := range []string{
		"id", "workspace", "parent_id", "alias", "type",
		"manifest", "staging", "config", "secrets", "versions",
		"download_count", "view_count", "file_count",
		"created_at", "created_by", "last_modified",
	} {
		_, ok := tags[column]
		assert.Assert(t, ok, "missing db tag for column %s", column)
	}
}

func TestStagingList(t *testing.T) {
	a := &Artifact{}

	// a null staging column means not staged
	files, staged, err := a.StagingList()
	assert.NilError(t, err)
	assert.Assert(t, !staged)
	assert.Equal(t, len(files), 0)

	// an empty list still marks the stage as open
	a.SetStaging(nil, true)
	files, staged, err = a.StagingList()
	assert.NilError(t, err)
	assert.Assert(t, staged)
	assert.Equal(t, len(files), 0)

	a.SetStaging([]StagingFile{{Path: "data.bin", DownloadWeight: 2}}, true)
	files, staged, err = a.StagingList()
	assert.NilError(t, err)
	assert.Assert(t, staged)
	assert.Equal(t, len(files), 1)
	assert.Equal(t, files[0].Path, "data.bin")

	// clearing the stage drops the column back to null
	a.SetStaging(nil, false)
	_, staged, err = a.StagingList()
	assert.NilError(t, err)
	assert.Assert(t, !staged)
}

func TestVersionList(t *testing.T) {
	a := &Artifact{}
	versions, err := a.VersionList()
	assert.NilError(t, err)
	assert.Equal(t, len(versions), 0)

	a.SetVersions([]VersionInfo{{Version: "v0", Comment: "Initial version"}})
	versions, err = a.VersionList()
	assert.NilError(t, err)
	assert.Equal(t, len(versions), 1)
	assert.Equal(t, versions[0].Version, "v0")

	// nil normalizes to an empty list, not null
	a.SetVersions(nil)
	assert.Equal(t, string(a.Versions), "[]")
}
