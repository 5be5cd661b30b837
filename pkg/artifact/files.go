/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"
	"time"

	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/s3"
)

// PutFile registers a file on the staged version and returns a presigned
// upload URL for it. The artifact must be staged.
func (m *Manager) PutFile(ctx context.Context, rc *RequestContext, artifactId, filePath string, downloadWeight float64) (string, error) {
	if err := checkContext(rc); err != nil {
		return "", err
	}
	if downloadWeight < 0 {
		return "", commonerrors.NewBadRequest("the download weight must be a non-negative number")
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpPutFile)
	if err != nil {
		return "", err
	}
	files, staged, err := artifact.StagingList()
	if err != nil {
		return "", err
	}
	if !staged {
		return "", commonerrors.NewNoStagedVersion(artifact.Id)
	}

	versions, err := artifact.VersionList()
	if err != nil {
		return "", err
	}
	stageIndex, err := ResolveVersionIndex(versions, VersionStage)
	if err != nil {
		return "", err
	}

	s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
	if err != nil {
		return "", err
	}
	fileKey, err := m.fileKey(creds, artifact, stageIndex, filePath)
	if err != nil {
		return "", err
	}
	presignedURL, err := s3Client.PresignPutObject(ctx, fileKey, presignExpireSeconds*time.Second)
	if err != nil {
		return "", err
	}

	known := false
	for _, file := range files {
		if file.Path == filePath {
			known = true
			break
		}
	}
	if !known {
		files = append(files, client.StagingFile{Path: filePath, DownloadWeight: downloadWeight})
		artifact.SetStaging(files, true)
	}
	if err := m.saveVersionSnapshot(ctx, s3Client, creds, artifact, stageIndex); err != nil {
		return "", err
	}
	if err := sess.UpdateArtifact(ctx, artifact); err != nil {
		return "", err
	}
	if err := sess.Commit(); err != nil {
		return "", err
	}
	klog.Infof("put file %q to artifact %s", filePath, artifact.Id)
	return presignedURL, nil
}

// RemoveFile drops a file from the staged version and deletes its object.
func (m *Manager) RemoveFile(ctx context.Context, rc *RequestContext, artifactId, filePath string) error {
	if err := checkContext(rc); err != nil {
		return err
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpRemoveFile)
	if err != nil {
		return err
	}
	files, staged, err := artifact.StagingList()
	if err != nil {
		return err
	}
	if !staged {
		return commonerrors.NewNoStagedVersion(artifact.Id)
	}

	kept := files[:0]
	for _, file := range files {
		if file.Path != filePath {
			kept = append(kept, file)
		}
	}
	artifact.SetStaging(kept, true)

	versions, err := artifact.VersionList()
	if err != nil {
		return err
	}
	stageIndex, err := ResolveVersionIndex(versions, VersionStage)
	if err != nil {
		return err
	}
	s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
	if err != nil {
		return err
	}
	fileKey, err := m.fileKey(creds, artifact, stageIndex, filePath)
	if err != nil {
		return err
	}
	if err := s3Client.DeleteObject(ctx, fileKey, s3.DefaultTimeout); err != nil && !s3.IsNotFound(err) {
		return err
	}
	if err := m.saveVersionSnapshot(ctx, s3Client, creds, artifact, stageIndex); err != nil {
		return err
	}
	if err := sess.UpdateArtifact(ctx, artifact); err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	klog.Infof("removed file %q from artifact %s", filePath, artifact.Id)
	return nil
}

// GetFile returns a presigned download URL for a file of a version. Unless
// silent, the download counter is bumped by the file's download weight.
func (m *Manager) GetFile(ctx context.Context, rc *RequestContext, artifactId, path, version string, silent bool) (string, error) {
	if err := checkContext(rc); err != nil {
		return "", err
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpGetFile)
	if err != nil {
		return "", err
	}
	versionIndex, err := resolveArtifactVersion(artifact, version)
	if err != nil {
		return "", err
	}

	s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
	if err != nil {
		return "", err
	}
	fileKey, err := m.fileKey(creds, artifact, versionIndex, path)
	if err != nil {
		return "", err
	}
	if _, err := s3Client.HeadObject(ctx, fileKey, s3.DefaultTimeout); err != nil {
		if s3.IsNotFound(err) {
			return "", commonerrors.NewNotFound("File", path)
		}
		return "", err
	}
	presignedURL, err := s3Client.PresignGetObject(ctx, fileKey, presignExpireSeconds*time.Second)
	if err != nil {
		return "", err
	}

	if !silent {
		config, err := artifact.ConfigMap()
		if err != nil {
			return "", err
		}
		weight := downloadWeightFor(config, path)
		if weight > 0 {
			if err := sess.IncrementStat(ctx, artifact.Id, "download_count", weight); err != nil {
				return "", err
			}
		}
		if err := sess.Commit(); err != nil {
			return "", err
		}
	}
	return presignedURL, nil
}

// ListFiles lists the entries of a version, optionally under a directory.
func (m *Manager) ListFiles(ctx context.Context, rc *RequestContext, artifactId, dirPath, version string, limit int) ([]*s3.FileInfo, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1000
	}
	sess, err := m.db.BeginSession(ctx, true)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpListFiles)
	if err != nil {
		return nil, err
	}
	versionIndex, err := resolveArtifactVersion(artifact, version)
	if err != nil {
		return nil, err
	}

	s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
	if err != nil {
		return nil, err
	}
	prefix, err := m.versionPrefix(creds, artifact, versionIndex)
	if err != nil {
		return nil, err
	}
	if dirPath != "" {
		prefix, err = SafeJoin(prefix, dirPath)
		if err != nil {
			return nil, err
		}
	}
	return s3Client.ListObjects(ctx, prefix+"/", limit)
}

func downloadWeightFor(config map[string]interface{}, path string) float64 {
	if config == nil {
		return 0
	}
	weights, ok := config["download_weights"].(map[string]interface{})
	if !ok {
		return 0
	}
	weight, ok := weights[path].(float64)
	if !ok {
		return 0
	}
	return weight
}
