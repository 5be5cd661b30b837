/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	commonconfig "github.com/AMD-AIG-AIMA/artifact-manager/pkg/config"
)

// Permission is a workspace-level access tier.
type Permission int

const (
	PermissionNone Permission = iota
	PermissionRead
	PermissionReadWrite
	PermissionAdmin
)

// ParsePermission converts a tier name into a Permission. Unknown names map
// to PermissionNone.
func ParsePermission(name string) Permission {
	switch name {
	case "read":
		return PermissionRead
	case "read_write":
		return PermissionReadWrite
	case "admin":
		return PermissionAdmin
	}
	return PermissionNone
}

func (p Permission) String() string {
	switch p {
	case PermissionRead:
		return "read"
	case PermissionReadWrite:
		return "read_write"
	case PermissionAdmin:
		return "admin"
	}
	return "none"
}

// UserInfo identifies the caller and the workspace tiers granted to it.
// The "*" workspace entry applies everywhere.
type UserInfo struct {
	Id          string                `json:"id"`
	IsAnonymous bool                  `json:"is_anonymous,omitempty"`
	Workspaces  map[string]Permission `json:"workspaces,omitempty"`
}

// CheckPermission reports whether the user holds at least the required tier
// in the workspace.
func (u *UserInfo) CheckPermission(workspace string, required Permission) bool {
	if u == nil {
		return false
	}
	if level, ok := u.Workspaces[workspace]; ok && level >= required {
		return true
	}
	if level, ok := u.Workspaces["*"]; ok && level >= required {
		return true
	}
	return false
}

// RequestContext carries the caller identity and the workspace scope of the
// current call. Unscoped artifact references resolve against Workspace.
type RequestContext struct {
	User      *UserInfo
	Workspace string
}

// WorkspaceProvider answers whether a workspace persists data. Ephemeral
// workspaces reject artifact creation.
type WorkspaceProvider interface {
	IsPersistent(workspace string) bool
}

type configWorkspaces struct {
	ephemeral map[string]bool
}

// NewConfigWorkspaceProvider builds a WorkspaceProvider from the ephemeral
// workspace list in system configuration.
func NewConfigWorkspaceProvider() WorkspaceProvider {
	ephemeral := make(map[string]bool)
	for _, ws := range commonconfig.GetEphemeralWorkspaces() {
		ephemeral[ws] = true
	}
	return &configWorkspaces{ephemeral: ephemeral}
}

func (p *configWorkspaces) IsPersistent(workspace string) bool {
	return !p.ephemeral[workspace]
}
