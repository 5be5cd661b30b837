/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"fmt"
	"strings"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// Reserved version names. "new" allocates the next sequential label on
// write operations; "latest" and "stage" address positions on reads.
const (
	VersionNew    = "new"
	VersionLatest = "latest"
	VersionStage  = "stage"
)

// ResolveVersionIndex maps a version name onto a snapshot index.
// An empty name selects the current committed version; "latest" the newest
// committed one; "stage" the slot the staged version will occupy. Anything
// else must match a version label exactly.
func ResolveVersionIndex(versions []client.VersionInfo, version string) (int, error) {
	switch version {
	case "":
		if len(versions) == 0 {
			return 0, nil
		}
		return len(versions) - 1, nil
	case VersionLatest:
		if len(versions) == 0 {
			return 0, commonerrors.NewNotFound("Version", version)
		}
		return len(versions) - 1, nil
	case VersionStage:
		return len(versions), nil
	}
	for i, v := range versions {
		if v.Version == version {
			return i, nil
		}
	}
	return 0, commonerrors.NewNotFound("Version", version)
}

// resolveArtifactVersion resolves a version selector against an artifact
// row. The "stage" selector is only valid while the row carries a staged
// version.
func resolveArtifactVersion(artifact *client.Artifact, version string) (int, error) {
	if version == VersionStage {
		if _, staged, err := artifact.StagingList(); err != nil {
			return 0, err
		} else if !staged {
			return 0, commonerrors.NewNoStagedVersion(artifact.Id)
		}
	}
	versions, err := artifact.VersionList()
	if err != nil {
		return 0, err
	}
	return ResolveVersionIndex(versions, version)
}

// SafeJoin joins key segments with "/", rejecting traversal and absolute
// segments. Empty segments are skipped.
func SafeJoin(segments ...string) (string, error) {
	var parts []string
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		if strings.HasPrefix(segment, "/") || strings.Contains(segment, "\\") {
			return "", commonerrors.NewBadRequest(fmt.Sprintf("invalid path segment: %q", segment))
		}
		for _, piece := range strings.Split(segment, "/") {
			if piece == ".." {
				return "", commonerrors.NewBadRequest(fmt.Sprintf("invalid path segment: %q", segment))
			}
		}
		parts = append(parts, strings.TrimSuffix(segment, "/"))
	}
	return strings.Join(parts, "/"), nil
}
