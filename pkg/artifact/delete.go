/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/s3"
)

// Delete removes an artifact, or a single version of it when version names
// one. With recursive the whole subtree goes; with deleteFiles the blob
// store data goes with the metadata.
func (m *Manager) Delete(ctx context.Context, rc *RequestContext, artifactId string, deleteFiles, recursive bool, version string) error {
	if err := checkContext(rc); err != nil {
		return err
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpDelete)
	if err != nil {
		return err
	}

	if version == "" {
		if err := m.deleteTree(ctx, sess, artifact, parent, deleteFiles, recursive); err != nil {
			return err
		}
	} else {
		if err := m.deleteVersion(ctx, sess, artifact, parent, version, deleteFiles); err != nil {
			return err
		}
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	klog.Infof("deleted artifact %s, alias: %s, version: %q", artifact.Id, nullString(artifact.Alias), version)
	return nil
}

// deleteTree removes an artifact and, when recursive, its descendants.
// Children go first so no child row ever points at a missing parent.
func (m *Manager) deleteTree(ctx context.Context, sess *client.Session, artifact, parent *client.Artifact, deleteFiles, recursive bool) error {
	if recursive {
		children, err := sess.ListChildren(ctx, artifact.Id)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := m.deleteTree(ctx, sess, child, artifact, deleteFiles, recursive); err != nil {
				return err
			}
		}
	}

	if artifact.Type == TypeVectorCollection {
		if m.vectors == nil {
			return commonerrors.NewInternalError("the vector store is not configured")
		}
		if err := m.vectors.DeleteCollection(ctx, collectionName(artifact)); err != nil {
			return err
		}
	}

	if deleteFiles {
		s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
		if err != nil {
			return err
		}
		base, err := m.artifactPrefix(creds, artifact)
		if err != nil {
			return err
		}
		if err := s3Client.RemovePrefix(ctx, base+"/"); err != nil {
			return err
		}
	}
	return sess.DeleteArtifact(ctx, artifact.Id)
}

// deleteVersion drops one version entry along with its snapshot and,
// optionally, its files.
func (m *Manager) deleteVersion(ctx context.Context, sess *client.Session, artifact, parent *client.Artifact, version string, deleteFiles bool) error {
	versions, err := artifact.VersionList()
	if err != nil {
		return err
	}
	versionIndex, err := ResolveVersionIndex(versions, version)
	if err != nil {
		return err
	}
	if versionIndex >= len(versions) {
		return commonerrors.NewNotFound("Version", version)
	}
	versions = append(versions[:versionIndex], versions[versionIndex+1:]...)
	artifact.SetVersions(versions)
	if err := sess.UpdateArtifact(ctx, artifact); err != nil {
		return err
	}

	s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
	if err != nil {
		return err
	}
	snapshotKey, err := m.snapshotKey(creds, artifact, versionIndex)
	if err != nil {
		return err
	}
	if err := s3Client.DeleteObject(ctx, snapshotKey, s3.DefaultTimeout); err != nil && !s3.IsNotFound(err) {
		return err
	}
	if deleteFiles {
		versionPrefix, err := m.versionPrefix(creds, artifact, versionIndex)
		if err != nil {
			return err
		}
		if err := s3Client.RemovePrefix(ctx, versionPrefix+"/"); err != nil {
			return err
		}
	}
	return nil
}
