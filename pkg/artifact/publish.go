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
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/zenodo"
)

// Publish deposits the committed artifact on Zenodo (or its sandbox) and
// records the resulting record under config.zenodo. Extra metadata from the
// caller overrides the generated deposition metadata.
func (m *Manager) Publish(ctx context.Context, rc *RequestContext, artifactId, to string, metadata map[string]interface{}) (map[string]interface{}, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpPublish)
	if err != nil {
		return nil, err
	}
	manifest, err := artifact.ManifestMap()
	if err != nil {
		return nil, err
	}
	if len(manifest) == 0 {
		return nil, commonerrors.NewPreconditionFailed("the manifest is empty or not committed")
	}
	if _, ok := manifest["name"]; !ok {
		return nil, commonerrors.NewBadRequest("the manifest must have a name")
	}
	if _, ok := manifest["description"]; !ok {
		return nil, commonerrors.NewBadRequest("the manifest must have a description")
	}

	config, err := artifact.ConfigMap()
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = map[string]interface{}{}
	}

	zenodoClient, err := m.zenodoClientFor(artifact, parent, to)
	if err != nil {
		return nil, err
	}
	deposition, _ := config["zenodo"].(map[string]interface{})
	if deposition == nil {
		deposition, err = zenodoClient.CreateDeposition(ctx)
		if err != nil {
			return nil, err
		}
	}

	depositionMetadata := buildDepositionMetadata(artifact, manifest, rc.User)
	for key, value := range metadata {
		depositionMetadata[key] = value
	}
	if _, err := zenodoClient.UpdateMetadata(ctx, deposition, depositionMetadata); err != nil {
		return nil, err
	}

	if err := m.importArtifactFiles(ctx, zenodoClient, deposition, artifact, parent); err != nil {
		return nil, err
	}

	record, err := zenodoClient.Publish(ctx, deposition)
	if err != nil {
		return nil, err
	}

	config["zenodo"] = map[string]interface{}(record)
	artifact.SetConfig(config)
	if err := sess.UpdateArtifact(ctx, artifact); err != nil {
		return nil, err
	}
	if err := sess.Commit(); err != nil {
		return nil, err
	}
	klog.Infof("published artifact %s to %s", artifact.Id, to)
	return record, nil
}

// buildDepositionMetadata derives the deposition metadata from the manifest.
func buildDepositionMetadata(artifact *client.Artifact, manifest map[string]interface{}, user *UserInfo) map[string]interface{} {
	uploadType := "other"
	if artifact.Type == "dataset" {
		uploadType = "dataset"
	}
	title, _ := manifest["name"].(string)
	if title == "" {
		title = "Untitled"
	}
	description, _ := manifest["description"].(string)
	if description == "" {
		description = "No description provided."
	}
	license, _ := manifest["license"].(string)
	if license == "" {
		license = "cc-by"
	}

	creators := []map[string]interface{}{}
	if authors, ok := manifest["authors"].([]interface{}); ok {
		for _, entry := range authors {
			if author, ok := entry.(map[string]interface{}); ok {
				creators = append(creators, map[string]interface{}{"name": author["name"]})
			}
		}
	}
	if len(creators) == 0 {
		creators = append(creators, map[string]interface{}{"name": user.Id})
	}

	keywords := []interface{}{}
	if tags, ok := manifest["tags"].([]interface{}); ok {
		keywords = tags
	}

	return map[string]interface{}{
		"title":        title,
		"upload_type":  uploadType,
		"description":  description,
		"creators":     creators,
		"access_right": "open",
		"license":      license,
		"keywords":     keywords,
		"notes":        "Published automatically from Artifact Manager.",
	}
}

// importArtifactFiles walks the committed version tree and streams every
// file into the deposition through presigned download URLs.
func (m *Manager) importArtifactFiles(ctx context.Context, zenodoClient depositionAPI, deposition zenodo.Deposition, artifact, parent *client.Artifact) error {
	versions, err := artifact.VersionList()
	if err != nil {
		return err
	}
	versionIndex, err := ResolveVersionIndex(versions, "")
	if err != nil {
		return err
	}
	s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
	if err != nil {
		return err
	}
	base, err := m.versionPrefix(creds, artifact, versionIndex)
	if err != nil {
		return err
	}

	var walk func(dirPath string) error
	walk = func(dirPath string) error {
		prefix := base
		if dirPath != "" {
			prefix, err = SafeJoin(base, dirPath)
			if err != nil {
				return err
			}
		}
		entries, err := s3Client.ListObjects(ctx, prefix+"/", 0)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			relative := entry.Name
			if dirPath != "" {
				relative = dirPath + "/" + entry.Name
			}
			if entry.Type == s3.FileTypeDirectory {
				if err := walk(relative); err != nil {
					return err
				}
				continue
			}
			fileKey, err := SafeJoin(base, relative)
			if err != nil {
				return err
			}
			sourceURL, err := s3Client.PresignGetObject(ctx, fileKey, presignExpireSeconds*time.Second)
			if err != nil {
				return err
			}
			if err := zenodoClient.ImportFile(ctx, deposition, entry.Name, sourceURL); err != nil {
				return err
			}
		}
		return nil
	}
	return walk("")
}
