/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"k8s.io/klog/v2"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/s3"
)

// Commit finalizes the staged version of an artifact: every staged file must
// exist in the blob store, the manifest must satisfy the parent collection
// schema, then the staged snapshot becomes the committed state.
func (m *Manager) Commit(ctx context.Context, rc *RequestContext, artifactId, version, comment string) (map[string]interface{}, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	if version == VersionStage {
		return nil, commonerrors.NewBadRequest("the version cannot be 'stage' when committing")
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpCommit)
	if err != nil {
		return nil, err
	}
	if _, staged, err := artifact.StagingList(); err != nil {
		return nil, err
	} else if !staged {
		return nil, commonerrors.NewNoStagedVersion(artifact.Id)
	}

	versions, err := artifact.VersionList()
	if err != nil {
		return nil, err
	}
	stageIndex, err := ResolveVersionIndex(versions, VersionStage)
	if err != nil {
		return nil, err
	}

	s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
	if err != nil {
		return nil, err
	}
	staged, err := m.loadVersionSnapshot(ctx, s3Client, creds, artifact, stageIndex, true)
	if err != nil {
		if commonerrors.IsNotFound(err) {
			return nil, commonerrors.NewNoStagedVersion(artifact.Id)
		}
		return nil, err
	}

	config, err := staged.ConfigMap()
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = map[string]interface{}{}
	}

	stagingFiles, _, err := staged.StagingList()
	if err != nil {
		return nil, err
	}
	if len(stagingFiles) > 0 {
		downloadWeights := map[string]interface{}{}
		for _, file := range stagingFiles {
			fileKey, err := m.fileKey(creds, staged, stageIndex, file.Path)
			if err != nil {
				return nil, err
			}
			if _, err := s3Client.HeadObject(ctx, fileKey, s3.DefaultTimeout); err != nil {
				if s3.IsNotFound(err) {
					return nil, commonerrors.NewNotFound("File", file.Path)
				}
				return nil, err
			}
			if file.DownloadWeight > 0 {
				downloadWeights[file.Path] = file.DownloadWeight
			}
		}
		if len(downloadWeights) > 0 {
			config["download_weights"] = downloadWeights
		}
		versionPrefix, err := m.versionPrefix(creds, staged, stageIndex)
		if err != nil {
			return nil, err
		}
		fileCount, err := s3Client.CountObjects(ctx, versionPrefix+"/")
		if err != nil {
			return nil, err
		}
		staged.FileCount = fileCount
	}

	manifest, err := staged.ManifestMap()
	if err != nil {
		return nil, err
	}
	if len(manifest) == 0 {
		return nil, commonerrors.NewNoStagedVersion(artifact.Id)
	}
	if parent != nil {
		parentConfig, err := parent.ConfigMap()
		if err != nil {
			return nil, err
		}
		if schema, ok := parentConfig["collection_schema"]; ok {
			if err := validateAgainstSchema(manifest, schema); err != nil {
				return nil, err
			}
		}
	}

	if version != "" {
		if version == VersionNew {
			version = newVersionLabel(len(versions))
		}
		versions = append(versions, versionEntry(version, comment))
	}
	staged.SetVersions(versions)
	staged.SetConfig(config)
	staged.SetStaging(nil, false)
	staged.LastModified = time.Now().UTC().Unix()

	if err := sess.UpdateArtifact(ctx, staged); err != nil {
		return nil, err
	}
	if err := sess.Commit(); err != nil {
		return nil, err
	}

	committedIndex, err := ResolveVersionIndex(versions, "")
	if err != nil {
		return nil, err
	}
	if err := m.saveVersionSnapshot(ctx, s3Client, creds, staged, committedIndex); err != nil {
		return nil, err
	}

	klog.Infof("committed artifact %s, alias: %s, version: %s", staged.Id, nullString(staged.Alias), version)
	return generateArtifactData(staged, parent), nil
}

// validateAgainstSchema checks a manifest against a collection JSON schema.
func validateAgainstSchema(manifest map[string]interface{}, schema interface{}) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(manifest))
	if err != nil {
		return commonerrors.NewBadRequest(fmt.Sprintf("invalid collection schema: %v", err))
	}
	if !result.Valid() {
		messages := ""
		for _, desc := range result.Errors() {
			if messages != "" {
				messages += "; "
			}
			messages += desc.String()
		}
		return commonerrors.NewBadRequest(fmt.Sprintf("the manifest does not match the collection schema: %s", messages))
	}
	return nil
}
