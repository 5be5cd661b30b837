/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact_handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/apiutils"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/artifact"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/handlers/middle"
)

// ReadWorkspaceArtifact serves GET /:workspace/artifacts/:alias.
func (h *Handler) ReadWorkspaceArtifact(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		return h.manager.Read(c.Request.Context(), rc, c.Param("alias"),
			c.Query("version"), queryBool(c, "silent"))
	})
}

// ListWorkspaceChildren serves GET /:workspace/artifacts/:alias/children.
// Keywords are comma separated; filters travel JSON-encoded.
func (h *Handler) ListWorkspaceChildren(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var keywords []string
		if raw := c.Query("keywords"); raw != "" {
			keywords = strings.Split(raw, ",")
		}
		var filters map[string]interface{}
		if raw := c.Query("filters"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &filters); err != nil {
				return nil, commonerrors.NewBadRequest("invalid filters: " + err.Error())
			}
		}
		return h.manager.ListChildren(c.Request.Context(), rc, &artifact.ListRequest{
			ParentId:   c.Param("alias"),
			Keywords:   keywords,
			Filters:    filters,
			Mode:       c.Query("mode"),
			Offset:     queryInt(c, "offset", 0),
			Limit:      queryInt(c, "limit", 0),
			OrderBy:    c.Query("order_by"),
			Silent:     queryBool(c, "silent"),
			Pagination: queryBool(c, "pagination"),
		})
	})
}

// GetWorkspaceFile serves GET /:workspace/artifacts/:alias/files/*path. A
// trailing slash or an empty path lists the directory; otherwise the caller
// is redirected to a presigned download URL.
func (h *Handler) GetWorkspaceFile(c *gin.Context) {
	rc, err := middle.RequestContext(c)
	if err != nil {
		apiutils.AbortWithApiError(c, err)
		return
	}
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.HasSuffix(path, "/") {
		files, err := h.manager.ListFiles(c.Request.Context(), rc, c.Param("alias"),
			strings.TrimSuffix(path, "/"), c.Query("version"), queryInt(c, "limit", 0))
		if err != nil {
			apiutils.AbortWithApiError(c, err)
			return
		}
		c.JSON(http.StatusOK, files)
		return
	}
	url, err := h.manager.GetFile(c.Request.Context(), rc, c.Param("alias"),
		path, c.Query("version"), queryBool(c, "silent"))
	if err != nil {
		apiutils.AbortWithApiError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
