/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"
)

// Read returns the external view of an artifact at a version. Unless silent,
// the view counter is bumped. Collections report their child count and
// vector collections their point count inside config.
func (m *Manager) Read(ctx context.Context, rc *RequestContext, artifactId, version string, silent bool) (map[string]interface{}, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpRead)
	if err != nil {
		return nil, err
	}
	if !silent {
		if err := sess.IncrementStat(ctx, artifact.Id, "view_count", 1); err != nil {
			return nil, err
		}
	}

	versionIndex, err := resolveArtifactVersion(artifact, version)
	if err != nil {
		return nil, err
	}
	defaultIndex, err := resolveArtifactVersion(artifact, "")
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if versionIndex == defaultIndex {
		data = generateArtifactData(artifact, parent)
	} else {
		s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
		if err != nil {
			return nil, err
		}
		snapshot, err := m.loadVersionSnapshot(ctx, s3Client, creds, artifact, versionIndex, false)
		if err != nil {
			return nil, err
		}
		data = generateArtifactData(snapshot, parent)
	}

	switch artifact.Type {
	case TypeCollection:
		childCount, err := sess.CountChildren(ctx, artifact.Id)
		if err != nil {
			return nil, err
		}
		attachConfigCount(data, "child_count", childCount)
	case TypeVectorCollection:
		if m.vectors != nil {
			vectorCount, err := m.vectors.Count(ctx, collectionName(artifact))
			if err != nil {
				return nil, err
			}
			attachConfigCount(data, "vector_count", int(vectorCount))
		}
	}

	if !silent {
		if err := sess.Commit(); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func attachConfigCount(data map[string]interface{}, key string, count int) {
	config, ok := data["config"].(map[string]interface{})
	if !ok {
		config = map[string]interface{}{}
	}
	config[key] = count
	data["config"] = config
}
