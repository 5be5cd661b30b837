/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/apiutils"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/artifact"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/handlers/middle"
)

// CreateArtifact creates an artifact or collection, staged or committed.
func (h *Handler) CreateArtifact(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req CreateArtifactRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		return h.manager.Create(c.Request.Context(), rc, &artifact.CreateRequest{
			Alias:     req.Alias,
			Workspace: req.Workspace,
			ParentId:  req.ParentId,
			Type:      req.Type,
			Manifest:  req.Manifest,
			Config:    req.Config,
			Secrets:   req.Secrets,
			PublishTo: req.PublishTo,
			Version:   req.Version,
			Comment:   req.Comment,
			Overwrite: req.Overwrite,
		})
	})
}

// GetArtifact returns the sanitized view of one artifact version.
func (h *Handler) GetArtifact(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		return h.manager.Read(c.Request.Context(), rc, c.Param("artifact_id"),
			c.Query("version"), queryBool(c, "silent"))
	})
}

// EditArtifact updates manifest, type, config or secrets, optionally staging
// or creating a version.
func (h *Handler) EditArtifact(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req EditArtifactRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		return h.manager.Edit(c.Request.Context(), rc, &artifact.EditRequest{
			ArtifactId: c.Param("artifact_id"),
			Manifest:   req.Manifest,
			Type:       req.Type,
			Config:     req.Config,
			Secrets:    req.Secrets,
			Version:    req.Version,
			Comment:    req.Comment,
		})
	})
}

// CommitArtifact turns the staged version into a committed one.
func (h *Handler) CommitArtifact(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req CommitArtifactRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		return h.manager.Commit(c.Request.Context(), rc, c.Param("artifact_id"),
			req.Version, req.Comment)
	})
}

// DeleteArtifact removes an artifact, a subtree or a single version.
func (h *Handler) DeleteArtifact(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		err = h.manager.Delete(c.Request.Context(), rc, c.Param("artifact_id"),
			queryBool(c, "delete_files"), queryBool(c, "recursive"), c.Query("version"))
		return nil, err
	})
}

// ListArtifacts lists the children of a collection, or the top-level
// artifacts of the workspace when no parent is given.
func (h *Handler) ListArtifacts(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req ListChildrenRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		return h.manager.ListChildren(c.Request.Context(), rc, &artifact.ListRequest{
			ParentId:   req.ParentId,
			Keywords:   req.Keywords,
			Filters:    req.Filters,
			Mode:       req.Mode,
			Offset:     req.Offset,
			Limit:      req.Limit,
			OrderBy:    req.OrderBy,
			Silent:     req.Silent,
			Pagination: req.Pagination,
		})
	})
}

// ResetStats zeroes the view and download counters.
func (h *Handler) ResetStats(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		return nil, h.manager.ResetStats(c.Request.Context(), rc, c.Param("artifact_id"))
	})
}

// PublishArtifact deposits the artifact on the configured archive.
func (h *Handler) PublishArtifact(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req PublishArtifactRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		return h.manager.Publish(c.Request.Context(), rc, c.Param("artifact_id"),
			req.To, req.Metadata)
	})
}
