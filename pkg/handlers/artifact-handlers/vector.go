/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact_handlers

import (
	"github.com/gin-gonic/gin"
	"k8s.io/utils/ptr"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/apiutils"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/artifact"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/handlers/middle"
)

// AddVectors upserts points into a vector collection.
func (h *Handler) AddVectors(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req AddVectorsRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		if len(req.Vectors) == 0 {
			return nil, commonerrors.NewBadRequest("the vectors list is empty")
		}
		return nil, h.manager.AddVectors(c.Request.Context(), rc, c.Param("artifact_id"), req.Vectors)
	})
}

// AddDocuments embeds document texts and upserts them as points.
func (h *Handler) AddDocuments(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req AddDocumentsRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		if len(req.Documents) == 0 {
			return nil, commonerrors.NewBadRequest("the documents list is empty")
		}
		return nil, h.manager.AddDocuments(c.Request.Context(), rc, c.Param("artifact_id"), req.Documents)
	})
}

// SearchVectors runs a similarity search by explicit vector or by embedded
// query text.
func (h *Handler) SearchVectors(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req SearchVectorsRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		searchReq := &artifact.SearchRequest{
			ArtifactId:  c.Param("artifact_id"),
			QueryVector: req.QueryVector,
			QueryText:   req.QueryText,
			Filter:      req.Filter,
			Offset:      req.Offset,
			Limit:       req.Limit,
			WithPayload: ptr.Deref(req.WithPayload, true),
			WithVectors: req.WithVectors,
			Pagination:  req.Pagination,
		}
		if len(req.QueryVector) > 0 {
			return h.manager.SearchByVector(c.Request.Context(), rc, searchReq)
		}
		if req.QueryText != "" {
			return h.manager.SearchByText(c.Request.Context(), rc, searchReq)
		}
		return nil, commonerrors.NewBadRequest("either query_vector or query_text is required")
	})
}

// RemoveVectors deletes points by id.
func (h *Handler) RemoveVectors(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		var req RemoveVectorsRequest
		if _, err := apiutils.ParseRequestBody(c.Request, &req); err != nil {
			return nil, err
		}
		if len(req.Ids) == 0 {
			return nil, commonerrors.NewBadRequest("the ids list is empty")
		}
		return nil, h.manager.RemoveVectors(c.Request.Context(), rc, c.Param("artifact_id"), req.Ids)
	})
}

// GetVector fetches a single point with payload and vector.
func (h *Handler) GetVector(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		return h.manager.GetVector(c.Request.Context(), rc, c.Param("artifact_id"), c.Param("vector_id"))
	})
}

// ListVectors pages through the points of a collection.
func (h *Handler) ListVectors(c *gin.Context) {
	handle(c, func(c *gin.Context) (interface{}, error) {
		rc, err := middle.RequestContext(c)
		if err != nil {
			return nil, err
		}
		return h.manager.ListVectors(c.Request.Context(), rc, c.Param("artifact_id"),
			nil, queryInt(c, "offset", 0), queryInt(c, "limit", 0),
			!queryBool(c, "no_payload"), queryBool(c, "with_vectors"))
	})
}
