/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
)

// EditRequest is the input of Edit. Nil maps leave the corresponding column
// untouched.
type EditRequest struct {
	ArtifactId string
	Manifest   map[string]interface{}
	Type       string
	Config     map[string]interface{}
	Secrets    map[string]interface{}
	Version    string
	Comment    string
}

// Edit rewrites artifact metadata. With Version "stage" the changes stay
// staged; any other version value commits them, appending a version entry
// when one is named.
func (m *Manager) Edit(ctx context.Context, rc *RequestContext, req *EditRequest) (map[string]interface{}, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	artifact, parent, err := m.getArtifactWithPermission(ctx, sess, rc, req.ArtifactId, OpEdit)
	if err != nil {
		return nil, err
	}

	if req.Type != "" {
		artifact.Type = req.Type
	}
	if req.Manifest != nil {
		if err := validateManifest(artifact.Type, req.Manifest); err != nil {
			return nil, err
		}
		artifact.SetManifest(req.Manifest)
	}

	versions, err := artifact.VersionList()
	if err != nil {
		return nil, err
	}
	version := req.Version
	var versionIndex int
	switch version {
	case "":
		versionIndex, err = ResolveVersionIndex(versions, "")
	case VersionStage:
		versionIndex, err = ResolveVersionIndex(versions, VersionStage)
	default:
		if version == VersionNew {
			version = newVersionLabel(len(versions))
		}
		versions = append(versions, versionEntry(version, req.Comment))
		artifact.SetVersions(versions)
		versionIndex, err = ResolveVersionIndex(versions, VersionLatest)
	}
	if err != nil {
		return nil, err
	}

	if req.Config != nil {
		config := req.Config
		if parent != nil {
			permissions := map[string]interface{}{}
			if declared, ok := config["permissions"].(map[string]interface{}); ok {
				for key, value := range declared {
					permissions[key] = value
				}
			}
			permissions[rc.User.Id] = "*"
			parentConfig, err := parent.ConfigMap()
			if err != nil {
				return nil, err
			}
			if parentPermissions, ok := parentConfig["permissions"].(map[string]interface{}); ok {
				for key, value := range parentPermissions {
					permissions[key] = value
				}
			}
			config["permissions"] = permissions
		}
		artifact.SetConfig(config)
	}
	if req.Secrets != nil {
		artifact.SetSecrets(req.Secrets)
	}

	if version == VersionStage {
		files, _, err := artifact.StagingList()
		if err != nil {
			return nil, err
		}
		artifact.SetStaging(files, true)
	} else {
		artifact.SetStaging(nil, false)
	}

	if err := sess.UpdateArtifact(ctx, artifact); err != nil {
		return nil, err
	}
	if err := sess.Commit(); err != nil {
		return nil, err
	}

	s3Client, creds, err := m.s3ClientFor(ctx, artifact, parent)
	if err != nil {
		return nil, err
	}
	if err := m.saveVersionSnapshot(ctx, s3Client, creds, artifact, versionIndex); err != nil {
		return nil, err
	}

	if version == VersionStage {
		klog.Infof("edited artifact %s (staged), alias: %s", artifact.Id, nullString(artifact.Alias))
	} else {
		klog.Infof("edited artifact %s (committed), alias: %s, version: %s", artifact.Id, nullString(artifact.Alias), version)
	}
	return generateArtifactData(artifact, parent), nil
}

// ResetStats zeroes the view and download counters of an artifact.
func (m *Manager) ResetStats(ctx context.Context, rc *RequestContext, artifactId string) error {
	if err := checkContext(rc); err != nil {
		return err
	}
	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return err
	}
	defer sess.Close()

	artifact, _, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, OpResetStats)
	if err != nil {
		return err
	}
	if err := sess.ResetStats(ctx, artifact.Id); err != nil {
		return err
	}
	return sess.Commit()
}

func newVersionLabel(count int) string {
	return fmt.Sprintf("v%d", count)
}

func versionEntry(version, comment string) client.VersionInfo {
	return client.VersionInfo{
		Version:   version,
		Comment:   comment,
		CreatedAt: time.Now().UTC().Unix(),
	}
}
