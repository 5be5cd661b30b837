/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPermission(t *testing.T) {
	tests := []struct {
		name      string
		value     interface{}
		contains  []string
		notInside []string
	}{
		{
			name:      "none",
			value:     "n",
			notInside: []string{OpList, OpRead},
		},
		{
			name:      "list only",
			value:     "l",
			contains:  []string{OpList},
			notInside: []string{OpRead, OpCreate},
		},
		{
			name:      "list vectors create",
			value:     "lv+",
			contains:  []string{OpList, OpListVectors, OpAddVectors, OpAddDocuments, OpCommit},
			notInside: []string{OpRead, OpPutFile},
		},
		{
			name:      "read",
			value:     "r",
			contains:  []string{OpRead, OpGetFile, OpSearchByText, OpGetVector},
			notInside: []string{OpEdit, OpCommit, OpResetStats},
		},
		{
			name:      "read create",
			value:     "r+",
			contains:  []string{OpRead, OpPutFile, OpCreate, OpAddDocuments},
			notInside: []string{OpEdit, OpRemoveFile},
		},
		{
			name:      "read write",
			value:     "rw",
			contains:  []string{OpRead, OpEdit, OpRemoveVectors, OpRemoveFile},
			notInside: []string{OpCreate, OpDelete, OpPublish},
		},
		{
			name:      "everything",
			value:     "*",
			contains:  []string{OpRead, OpEdit, OpCreate, OpResetStats, OpPublish},
			notInside: []string{OpDelete},
		},
		{
			name:     "explicit operation list",
			value:    []interface{}{"read", "commit"},
			contains: []string{OpRead, OpCommit},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := ExpandPermission(tt.value)
			for _, op := range tt.contains {
				assert.Contains(t, ops, op)
			}
			for _, op := range tt.notInside {
				assert.NotContains(t, ops, op)
			}
		})
	}
}

func TestCheckArtifactPermissions(t *testing.T) {
	alice := &UserInfo{Id: "alice"}
	anonymous := &UserInfo{Id: "anonymous", IsAnonymous: true}

	config := map[string]interface{}{
		"permissions": map[string]interface{}{
			"alice": "rw",
			"@":     "r",
			"*":     "l",
		},
	}

	// direct grant
	assert.True(t, checkArtifactPermissions(config, alice, OpEdit))
	// fall through to the authenticated entry
	bob := &UserInfo{Id: "bob"}
	assert.True(t, checkArtifactPermissions(config, bob, OpRead))
	// anonymous users skip "@" but still get "*"
	assert.False(t, checkArtifactPermissions(config, anonymous, OpRead))
	assert.True(t, checkArtifactPermissions(config, anonymous, OpList))
	// a non-matching user entry does not block the later entries
	denied := map[string]interface{}{
		"permissions": map[string]interface{}{
			"alice": "n",
			"*":     "r",
		},
	}
	assert.True(t, checkArtifactPermissions(denied, alice, OpRead))

	assert.False(t, checkArtifactPermissions(nil, alice, OpRead))
	assert.False(t, checkArtifactPermissions(map[string]interface{}{}, alice, OpRead))
}

func TestCheckWorkspacePermission(t *testing.T) {
	user := &UserInfo{
		Id: "alice",
		Workspaces: map[string]Permission{
			"ws-a": PermissionReadWrite,
			"*":    PermissionRead,
		},
	}
	assert.True(t, user.CheckPermission("ws-a", PermissionReadWrite))
	assert.False(t, user.CheckPermission("ws-a", PermissionAdmin))
	// the "*" grant applies to unknown workspaces
	assert.True(t, user.CheckPermission("ws-b", PermissionRead))
	assert.False(t, user.CheckPermission("ws-b", PermissionReadWrite))

	var nobody *UserInfo
	assert.False(t, nobody.CheckPermission("ws-a", PermissionRead))
}

func TestRequiredLevel(t *testing.T) {
	level, err := requiredLevel(OpRead)
	require.NoError(t, err)
	assert.Equal(t, PermissionRead, level)

	level, err = requiredLevel(OpPutFile)
	require.NoError(t, err)
	assert.Equal(t, PermissionReadWrite, level)

	level, err = requiredLevel(OpDelete)
	require.NoError(t, err)
	assert.Equal(t, PermissionAdmin, level)

	_, err = requiredLevel("frobnicate")
	require.Error(t, err)
}

func TestParsePermission(t *testing.T) {
	assert.Equal(t, PermissionRead, ParsePermission("read"))
	assert.Equal(t, PermissionReadWrite, ParsePermission("read_write"))
	assert.Equal(t, PermissionAdmin, ParsePermission("admin"))
	assert.Equal(t, PermissionNone, ParsePermission("owner"))
}
