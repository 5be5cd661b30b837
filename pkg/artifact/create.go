/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// CreateRequest is the input of Create.
type CreateRequest struct {
	Alias     string
	Workspace string
	ParentId  string
	Type      string
	Manifest  map[string]interface{}
	Config    map[string]interface{}
	Secrets   map[string]interface{}
	PublishTo string
	Version   string
	Comment   string
	Overwrite bool
}

// Create stores a new artifact. With Version "stage" the artifact starts
// staged; otherwise it is committed immediately.
func (m *Manager) Create(ctx context.Context, rc *RequestContext, req *CreateRequest) (map[string]interface{}, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	if len(req.Manifest) == 0 {
		return nil, commonerrors.NewBadRequest("the manifest must be provided")
	}
	artifactType := req.Type
	if artifactType == "" {
		artifactType = TypeGeneric
	}
	if err := validateManifest(artifactType, req.Manifest); err != nil {
		return nil, err
	}

	alias := strings.TrimSpace(req.Alias)
	workspace := req.Workspace
	if alias != "" {
		if strings.Contains(alias, "^") {
			return nil, commonerrors.NewBadRequest("the alias cannot contain the '^' character")
		}
		if strings.Contains(alias, "/") {
			parts := strings.SplitN(alias, "/", 2)
			if workspace != "" && parts[0] != workspace {
				return nil, commonerrors.NewBadRequest("the workspace must match the alias workspace")
			}
			workspace, alias = parts[0], parts[1]
		}
	}

	sess, err := m.db.BeginSession(ctx, false)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	var parent *client.Artifact
	parentId := ""
	if req.ParentId != "" {
		parent, _, err = m.getArtifactWithPermission(ctx, sess, rc, req.ParentId, OpCreate)
		if err != nil {
			return nil, err
		}
		parentId = parent.Id
		if workspace != "" && workspace != parent.Workspace {
			return nil, commonerrors.NewBadRequest("the workspace must match the parent artifact's workspace")
		}
		workspace = parent.Workspace
		if len(parent.Manifest) == 0 {
			return nil, commonerrors.NewPreconditionFailed(
				fmt.Sprintf("parent artifact %s must be committed before creating a child artifact", req.ParentId))
		}
	} else {
		if workspace == "" {
			workspace = rc.Workspace
		}
		if !rc.User.CheckPermission(workspace, PermissionReadWrite) {
			return nil, commonerrors.NewForbidden(
				fmt.Sprintf("user does not have permission to create an orphan artifact in workspace %q", workspace))
		}
	}
	if !m.workspaces.IsPersistent(workspace) {
		return nil, commonerrors.NewWorkspaceNotAllowed(workspace)
	}

	config := req.Config
	if config == nil {
		config = map[string]interface{}{}
	}

	id, err := newArtifactId()
	if err != nil {
		return nil, err
	}
	overwrite := false

	switch {
	case alias != "" && strings.Contains(alias, "{") && strings.Contains(alias, "}"):
		idParts := map[string]interface{}{}
		if parent != nil {
			parentConfig, err := parent.ConfigMap()
			if err != nil {
				return nil, err
			}
			if declared, ok := parentConfig["id_parts"].(map[string]interface{}); ok {
				for key, value := range declared {
					idParts[key] = value
				}
			}
		}
		partId, err := newArtifactId()
		if err != nil {
			return nil, err
		}
		idParts["uuid"] = partId
		idParts["timestamp"] = fmt.Sprintf("%d", time.Now().UTC().Unix())
		idParts["user_id"] = rc.User.Id
		if req.PublishTo != "" {
			zenodoClient, err := m.zenodoClientFor(parent, nil, req.PublishTo)
			if err != nil {
				return nil, err
			}
			deposition, err := zenodoClient.CreateDeposition(ctx)
			if err != nil {
				return nil, err
			}
			idParts["zenodo_id"] = fmt.Sprintf("%v", deposition["id"])
			idParts["zenodo_conceptrecid"] = fmt.Sprintf("%v", deposition["conceptrecid"])
			config["zenodo"] = deposition
		}
		alias, err = generateUniqueAlias(ctx, sess, workspace, alias, idParts)
		if err != nil {
			return nil, err
		}
	case alias == "":
		alias, err = generateUniqueAlias(ctx, sess, workspace, "", nil)
		if err != nil {
			return nil, err
		}
	default:
		if uuidPattern.MatchString(alias) {
			return nil, commonerrors.NewBadRequest("the alias should be a human readable string, it cannot be a UUID")
		}
		existing, err := sess.GetArtifactByAlias(ctx, workspace, alias)
		if err != nil && !commonerrors.IsNotFound(err) {
			return nil, err
		}
		if existing != nil && err == nil {
			if !req.Overwrite {
				if parentId != nullString(existing.ParentId) {
					return nil, commonerrors.NewAlreadyExist(fmt.Sprintf(
						"artifact with alias %q already exists under a different parent artifact (ID: %s/%s)",
						alias, existing.Workspace, nullString(existing.Alias)))
				}
				return nil, commonerrors.NewAlreadyExist(fmt.Sprintf(
					"artifact with alias %q already exists, please choose a different alias or remove it (ID: %s/%s)",
					alias, existing.Workspace, nullString(existing.Alias)))
			}
			id = existing.Id
			overwrite = true
		}
	}

	// The creator is owner; parent permissions always take precedence.
	permissions := map[string]interface{}{}
	if declared, ok := config["permissions"].(map[string]interface{}); ok {
		for key, value := range declared {
			permissions[key] = value
		}
	}
	permissions[rc.User.Id] = "*"
	if parent != nil {
		parentConfig, err := parent.ConfigMap()
		if err != nil {
			return nil, err
		}
		if parentPermissions, ok := parentConfig["permissions"].(map[string]interface{}); ok {
			for key, value := range parentPermissions {
				permissions[key] = value
			}
		}
	}
	config["permissions"] = permissions

	version := req.Version
	var versions []client.VersionInfo
	if version != VersionStage && version != "" {
		if version == VersionNew {
			version = "v0"
		}
		comment := req.Comment
		if comment == "" {
			comment = "Initial version"
		}
		versions = append(versions, client.VersionInfo{
			Version:   version,
			Comment:   comment,
			CreatedAt: time.Now().UTC().Unix(),
		})
	}

	now := time.Now().UTC().Unix()
	artifact := &client.Artifact{
		Id:           id,
		Workspace:    workspace,
		Alias:        sql.NullString{String: alias, Valid: true},
		Type:         artifactType,
		CreatedAt:    now,
		CreatedBy:    sql.NullString{String: rc.User.Id, Valid: true},
		LastModified: now,
	}
	if parentId != "" {
		artifact.ParentId = sql.NullString{String: parentId, Valid: true}
	}
	artifact.SetManifest(req.Manifest)
	artifact.SetConfig(config)
	if req.Secrets != nil {
		artifact.SetSecrets(req.Secrets)
	}
	artifact.SetVersions(versions)
	artifact.SetStaging(nil, version == VersionStage)

	versionIndex, err := ResolveVersionIndex(versions, version)
	if err != nil {
		return nil, err
	}

	if overwrite {
		err = sess.UpdateArtifact(ctx, artifact)
	} else {
		err = sess.InsertArtifact(ctx, artifact)
	}
	if err != nil {
		return nil, err
	}

	if artifactType == TypeVectorCollection {
		if m.vectors == nil {
			return nil, commonerrors.NewInternalError("the vector store is not configured")
		}
		size, distance := vectorsConfig(config)
		if err := m.vectors.CreateCollection(ctx, collectionName(artifact), size, distance); err != nil {
			return nil, err
		}
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
		klog.Infof("created artifact %s (staged), alias: %s, parent: %s", id, alias, parentId)
	} else {
		klog.Infof("created artifact %s (committed), alias: %s, parent: %s", id, alias, parentId)
	}
	return generateArtifactData(artifact, parent), nil
}

func newArtifactId() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", commonerrors.NewInternalError(err.Error())
	}
	return id.String(), nil
}

func vectorsConfig(config map[string]interface{}) (int, string) {
	size, distance := 128, "Cosine"
	declared, ok := config["vectors_config"].(map[string]interface{})
	if !ok {
		return size, distance
	}
	if value, ok := declared["size"].(float64); ok && value > 0 {
		size = int(value)
	}
	if value, ok := declared["distance"].(string); ok && value != "" {
		distance = value
	}
	return size, distance
}

func checkContext(rc *RequestContext) error {
	if rc == nil || rc.Workspace == "" {
		return commonerrors.NewBadRequest("the context must include a workspace")
	}
	if rc.User == nil || rc.User.Id == "" {
		return commonerrors.NewUnauthorized("the caller identity is missing")
	}
	return nil
}
