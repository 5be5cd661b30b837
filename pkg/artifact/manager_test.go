/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/s3"
)

func TestResolveRef(t *testing.T) {
	rowId := "0195c9a7-3ac0-7000-8000-000000000000"

	ref, err := resolveRef(rowId, "ws")
	require.NoError(t, err)
	assert.Equal(t, rowId, ref)

	ref, err = resolveRef("other/alias", "ws")
	require.NoError(t, err)
	assert.Equal(t, "other/alias", ref)

	ref, err = resolveRef("alias", "ws")
	require.NoError(t, err)
	assert.Equal(t, "ws/alias", ref)

	_, err = resolveRef("", "ws")
	require.Error(t, err)

	_, err = resolveRef("a/b/c", "ws")
	require.Error(t, err)

	// a bare alias without a context workspace cannot resolve
	_, err = resolveRef("alias", "")
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestGenerateArtifactData(t *testing.T) {
	row := &client.Artifact{
		Id:            "row-id",
		Workspace:     "ws",
		Alias:         sql.NullString{String: "mnist", Valid: true},
		Type:          TypeGeneric,
		Manifest:      []byte(`{"name":"mnist"}`),
		Config:        []byte(`{"permissions":{"alice":"rw"}}`),
		Secrets:       []byte(`{"S3_ACCESS_KEY_ID":"ak"}`),
		Versions:      []byte(`[{"version":"v0","created_at":1}]`),
		DownloadCount: 2,
		ViewCount:     5,
		CreatedBy:     sql.NullString{String: "alice", Valid: true},
	}
	parent := &client.Artifact{
		Id:        "parent-id",
		Workspace: "ws",
		Alias:     sql.NullString{String: "datasets", Valid: true},
	}

	data := generateArtifactData(row, parent)
	assert.Equal(t, "ws/mnist", data["id"])
	assert.Equal(t, "row-id", data["_id"])
	assert.Equal(t, "ws/datasets", data["parent_id"])
	assert.Equal(t, "alice", data["created_by"])
	assert.NotContains(t, data, "secrets")

	manifest, ok := data["manifest"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "mnist", manifest["name"])

	// without a parent row the raw reference is kept
	row.ParentId = sql.NullString{String: "parent-id", Valid: true}
	data = generateArtifactData(row, nil)
	assert.Equal(t, "parent-id", data["parent_id"])

	row.ParentId = sql.NullString{}
	data = generateArtifactData(row, nil)
	assert.Nil(t, data["parent_id"])
}

func TestSnapshotRoundTrip(t *testing.T) {
	row := &client.Artifact{
		Id:        "row-id",
		Workspace: "ws",
		Alias:     sql.NullString{String: "mnist", Valid: true},
		ParentId:  sql.NullString{String: "parent-id", Valid: true},
		Type:      TypeGeneric,
		Manifest:  []byte(`{"name":"mnist"}`),
		Secrets:   []byte(`{"TOKEN":"x"}`),
		Versions:  []byte(`[]`),
		CreatedAt: 42,
		CreatedBy: sql.NullString{String: "alice", Valid: true},
	}
	restored := rowFromDocument(documentFromRow(row))
	assert.Equal(t, row.Id, restored.Id)
	assert.Equal(t, row.Workspace, restored.Workspace)
	assert.Equal(t, row.ParentId, restored.ParentId)
	assert.Equal(t, row.Alias, restored.Alias)
	assert.Equal(t, string(row.Manifest), string(restored.Manifest))
	assert.Equal(t, string(row.Secrets), string(restored.Secrets))
	assert.Equal(t, row.CreatedAt, restored.CreatedAt)
	assert.Equal(t, row.CreatedBy, restored.CreatedBy)
}

func TestResolveS3Credentials(t *testing.T) {
	serverCreds := &s3.Credentials{
		Endpoint:  "https://internal.example.com",
		AccessKey: "server-ak",
		SecretKey: "server-sk",
		Bucket:    "server-bucket",
	}
	m := &Manager{serverCreds: serverCreds}

	// no artifact keys: the server credentials apply
	row := &client.Artifact{Workspace: "ws"}
	creds, err := m.resolveS3Credentials(row, nil)
	require.NoError(t, err)
	assert.Equal(t, "server-ak", creds.AccessKey)
	assert.Equal(t, "server-bucket", creds.Bucket)

	// artifact-owned storage via secrets; the server bucket backfills
	row.Secrets = []byte(`{
		"S3_ACCESS_KEY_ID": "own-ak",
		"S3_SECRET_ACCESS_KEY": "own-sk",
		"S3_ENDPOINT_URL": "https://own.example.com",
		"S3_PREFIX": "team"
	}`)
	creds, err = m.resolveS3Credentials(row, nil)
	require.NoError(t, err)
	assert.Equal(t, "own-ak", creds.AccessKey)
	assert.Equal(t, "https://own.example.com", creds.Endpoint)
	assert.Equal(t, "server-bucket", creds.Bucket)
	assert.Equal(t, "team", creds.Prefix)

	// parent secrets apply to the child and the child overrides
	parent := &client.Artifact{
		Workspace: "ws",
		Secrets: []byte(`{
			"S3_ACCESS_KEY_ID": "parent-ak",
			"S3_SECRET_ACCESS_KEY": "parent-sk",
			"S3_ENDPOINT_URL": "https://parent.example.com",
			"S3_BUCKET": "parent-bucket"
		}`),
	}
	child := &client.Artifact{Workspace: "ws", Secrets: []byte(`{"S3_ACCESS_KEY_ID":"child-ak"}`)}
	creds, err = m.resolveS3Credentials(child, parent)
	require.NoError(t, err)
	assert.Equal(t, "child-ak", creds.AccessKey)
	assert.Equal(t, "parent-sk", creds.SecretKey)
	assert.Equal(t, "parent-bucket", creds.Bucket)

	// incomplete artifact-owned credentials are rejected
	row.Secrets = []byte(`{"S3_ACCESS_KEY_ID":"ak","S3_SECRET_ACCESS_KEY":"sk"}`)
	_, err = m.resolveS3Credentials(row, nil)
	require.Error(t, err)
	assert.True(t, commonerrors.IsBadRequest(err))

	// no artifact keys and no server configuration
	empty := &Manager{}
	_, err = empty.resolveS3Credentials(&client.Artifact{Workspace: "ws"}, nil)
	require.Error(t, err)
	assert.True(t, commonerrors.IsInternal(err))
}

func TestStorageKeys(t *testing.T) {
	m := &Manager{artifactsDir: "artifacts"}
	creds := &s3.Credentials{Prefix: "root"}
	row := &client.Artifact{Id: "abc", Workspace: "ws"}

	base, err := m.artifactPrefix(creds, row)
	require.NoError(t, err)
	assert.Equal(t, "root/ws/artifacts/abc", base)

	key, err := m.snapshotKey(creds, row, 2)
	require.NoError(t, err)
	assert.Equal(t, "root/ws/artifacts/abc/v2.json", key)

	prefix, err := m.versionPrefix(creds, row, 2)
	require.NoError(t, err)
	assert.Equal(t, "root/ws/artifacts/abc/v2", prefix)

	fileKey, err := m.fileKey(creds, row, 0, "dir/data.bin")
	require.NoError(t, err)
	assert.Equal(t, "root/ws/artifacts/abc/v0/dir/data.bin", fileKey)

	_, err = m.fileKey(creds, row, 0, "../escape")
	require.Error(t, err)
}

func TestCollectionName(t *testing.T) {
	row := &client.Artifact{
		Workspace: "ws",
		Alias:     sql.NullString{String: "docs", Valid: true},
	}
	assert.Equal(t, "ws^docs", collectionName(row))
}
