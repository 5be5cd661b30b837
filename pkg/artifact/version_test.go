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
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

func TestResolveVersionIndex(t *testing.T) {
	versions := []client.VersionInfo{
		{Version: "v0"},
		{Version: "v1"},
		{Version: "release"},
	}

	tests := []struct {
		name    string
		version string
		want    int
		wantErr bool
	}{
		{name: "default is newest committed", version: "", want: 2},
		{name: "latest", version: "latest", want: 2},
		{name: "stage is one past the committed list", version: "stage", want: 3},
		{name: "label match", version: "v1", want: 1},
		{name: "named label match", version: "release", want: 2},
		{name: "unknown label", version: "v9", wantErr: true},
		{name: "digit strings are labels, not indices", version: "0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVersionIndex(versions, tt.version)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, commonerrors.IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// an empty history still resolves the default and stage selectors,
	// but "latest" needs at least one committed version
	index, err := ResolveVersionIndex(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	index, err = ResolveVersionIndex(nil, VersionStage)
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	_, err = ResolveVersionIndex(nil, VersionLatest)
	require.Error(t, err)
	assert.True(t, commonerrors.IsNotFound(err))
}

func TestResolveArtifactVersionStageGuard(t *testing.T) {
	committed := &client.Artifact{Id: "a1"}
	committed.SetVersions([]client.VersionInfo{{Version: "v0"}})
	committed.SetStaging(nil, false)

	index, err := resolveArtifactVersion(committed, "")
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	// "stage" on a committed-only artifact is a client error, not an index
	_, err = resolveArtifactVersion(committed, VersionStage)
	require.Error(t, err)
	assert.True(t, commonerrors.IsPreconditionFailed(err))

	staged := &client.Artifact{Id: "a2"}
	staged.SetVersions([]client.VersionInfo{{Version: "v0"}})
	staged.SetStaging(nil, true)

	index, err = resolveArtifactVersion(staged, VersionStage)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	index, err = resolveArtifactVersion(staged, VersionLatest)
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestSafeJoin(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
		wantErr  bool
	}{
		{name: "plain", segments: []string{"prefix", "ws", "artifacts", "id"}, want: "prefix/ws/artifacts/id"},
		{name: "empty segments skipped", segments: []string{"", "ws", "", "id"}, want: "ws/id"},
		{name: "trailing slash trimmed", segments: []string{"prefix/", "file.txt"}, want: "prefix/file.txt"},
		{name: "nested path kept", segments: []string{"base", "dir/file.txt"}, want: "base/dir/file.txt"},
		{name: "absolute rejected", segments: []string{"/etc", "passwd"}, wantErr: true},
		{name: "traversal rejected", segments: []string{"base", "../secrets"}, wantErr: true},
		{name: "embedded traversal rejected", segments: []string{"base", "a/../../b"}, wantErr: true},
		{name: "backslash rejected", segments: []string{"base", `a\b`}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeJoin(tt.segments...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, commonerrors.IsBadRequest(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
