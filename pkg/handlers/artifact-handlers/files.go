/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/apiutils"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/handlers/middle"
)

// PutFile registers a file on the staged version and returns a presigned
// upload URL.
func (h *Handler) PutFile(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req PutFileRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		if req.Path == "" {
			return nil, commonerrors.NewBadRequest("the file path is required")
		}
		url, err := h.manager.PutFile(c.Request.Context(), rc, c.Param("artifact_id"),
			req.Path, req.DownloadWeight)
		if err != nil {
			return nil, err
		}
		return &FileURLResponse{Url: url}, nil
	})
}

// RemoveFile drops a file from the staged version.
func (h *Handler) RemoveFile(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		path := c.Query("path")
		if path == "" {
			return nil, commonerrors.NewBadRequest("the file path is required")
		}
		return nil, h.manager.RemoveFile(c.Request.Context(), rc, c.Param("artifact_id"), path)
	})
}

// GetFileURL returns a presigned download URL for one file of a version.
func (h *Handler) GetFileURL(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		path := c.Query("path")
		if path == "" {
			return nil, commonerrors.NewBadRequest("the file path is required")
		}
		url, err := h.manager.GetFile(c.Request.Context(), rc, c.Param("artifact_id"),
			path, c.Query("version"), queryBool(c, "silent"))
		if err != nil {
			return nil, err
		}
		return &FileURLResponse{Url: url}, nil
	})
}

// ListArtifactFiles lists the entries of a version, optionally under a
// directory.
func (h *Handler) ListArtifactFiles(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		return h.manager.ListFiles(c.Request.Context(), rc, c.Param("artifact_id"),
			c.Query("dir_path"), c.Query("version"), queryInt(c, "limit", 0))
	})
}
