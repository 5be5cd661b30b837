/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"fmt"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// Operation names accepted by the permission checks.
const (
	OpList           = "list"
	OpRead           = "read"
	OpGetVector      = "get_vector"
	OpGetFile        = "get_file"
	OpListFiles      = "list_files"
	OpListVectors    = "list_vectors"
	OpSearchByText   = "search_by_text"
	OpSearchByVector = "search_by_vector"
	OpCreate         = "create"
	OpEdit           = "edit"
	OpCommit         = "commit"
	OpAddVectors     = "add_vectors"
	OpAddDocuments   = "add_documents"
	OpPutFile        = "put_file"
	OpRemoveVectors  = "remove_vectors"
	OpRemoveFile     = "remove_file"
	OpDelete         = "delete"
	OpResetStats     = "reset_stats"
	OpPublish        = "publish"
)

// permissionCodes maps the short codes usable in config.permissions to the
// operations they allow.
var permissionCodes = map[string][]string{
	"n":   {},
	"l":   {OpList},
	"l+":  {OpList, OpCreate, OpCommit},
	"lv":  {OpList, OpListVectors},
	"lv+": {OpList, OpListVectors, OpCreate, OpCommit, OpAddVectors, OpAddDocuments},
	"lf":  {OpList, OpListFiles},
	"lf+": {OpList, OpListFiles, OpCreate, OpCommit, OpPutFile},
	"r": {
		OpRead, OpGetFile, OpListFiles, OpList,
		OpSearchByVector, OpSearchByText, OpGetVector,
	},
	"r+": {
		OpRead, OpGetFile, OpPutFile, OpListFiles, OpList,
		OpSearchByVector, OpSearchByText, OpGetVector,
		OpCreate, OpCommit, OpAddVectors, OpAddDocuments,
	},
	"rw": {
		OpRead, OpGetFile, OpGetVector, OpSearchByVector, OpSearchByText,
		OpListFiles, OpListVectors, OpList,
		OpEdit, OpCommit, OpPutFile, OpAddVectors, OpAddDocuments,
		OpRemoveFile, OpRemoveVectors,
	},
	"rw+": {
		OpRead, OpGetFile, OpGetVector, OpSearchByVector, OpSearchByText,
		OpListFiles, OpListVectors, OpList,
		OpEdit, OpCommit, OpPutFile, OpAddVectors, OpAddDocuments,
		OpRemoveFile, OpRemoveVectors, OpCreate,
	},
	"*": {
		OpRead, OpGetFile, OpGetVector, OpSearchByVector, OpSearchByText,
		OpListFiles, OpListVectors, OpList,
		OpEdit, OpCommit, OpPutFile, OpAddVectors, OpAddDocuments,
		OpRemoveFile, OpRemoveVectors, OpCreate,
		OpResetStats, OpPublish,
	},
}

// operationLevels maps every operation to the workspace tier that grants it
// when no artifact-local permission matches.
var operationLevels = map[string]Permission{
	OpList:           PermissionRead,
	OpRead:           PermissionRead,
	OpGetVector:      PermissionRead,
	OpGetFile:        PermissionRead,
	OpListFiles:      PermissionRead,
	OpListVectors:    PermissionRead,
	OpSearchByText:   PermissionRead,
	OpSearchByVector: PermissionRead,
	OpCreate:         PermissionReadWrite,
	OpEdit:           PermissionReadWrite,
	OpCommit:         PermissionReadWrite,
	OpAddVectors:     PermissionReadWrite,
	OpAddDocuments:   PermissionReadWrite,
	OpPutFile:        PermissionReadWrite,
	OpRemoveVectors:  PermissionReadWrite,
	OpRemoveFile:     PermissionReadWrite,
	OpDelete:         PermissionAdmin,
	OpResetStats:     PermissionAdmin,
	OpPublish:        PermissionAdmin,
}

// ExpandPermission resolves a config.permissions value into the operations it
// allows. The value is either a short code or an explicit operation list.
func ExpandPermission(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return permissionCodes[v]
	case []string:
		return v
	case []interface{}:
		ops := make([]string, 0, len(v))
		for _, item := range v {
			if op, ok := item.(string); ok {
				ops = append(ops, op)
			}
		}
		return ops
	}
	return nil
}

// checkArtifactPermissions evaluates the artifact-local permission table for
// a user and operation. The table is consulted for the user id, then "@"
// (any authenticated user), then "*" (everyone).
func checkArtifactPermissions(config map[string]interface{}, user *UserInfo, operation string) bool {
	if config == nil {
		return false
	}
	permissions, ok := config["permissions"].(map[string]interface{})
	if !ok {
		return false
	}
	if user != nil {
		if value, ok := permissions[user.Id]; ok && containsOp(ExpandPermission(value), operation) {
			return true
		}
		if !user.IsAnonymous {
			if value, ok := permissions["@"]; ok && containsOp(ExpandPermission(value), operation) {
				return true
			}
		}
	}
	if value, ok := permissions["*"]; ok && containsOp(ExpandPermission(value), operation) {
		return true
	}
	return false
}

func containsOp(ops []string, operation string) bool {
	for _, op := range ops {
		if op == operation {
			return true
		}
	}
	return false
}

func requiredLevel(operation string) (Permission, error) {
	level, ok := operationLevels[operation]
	if !ok {
		return PermissionNone, commonerrors.NewInternalError(fmt.Sprintf("operation %q is not supported", operation))
	}
	return level, nil
}
