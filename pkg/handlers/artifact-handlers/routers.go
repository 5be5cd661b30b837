/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/handlers/middle"
)

const (
	RouterRootPath = "/api/v1/"
)

// InitArtifactRouters registers the artifact management API and the
// workspace-scoped read endpoints with the gin engine.
func InitArtifactRouters(e *gin.Engine, h *Handler) {
	group := e.Group(RouterRootPath, middle.Authorize())
	{
		group.POST("artifacts", h.CreateArtifact)
		group.POST("artifacts/list", h.ListArtifacts)
		group.GET("artifacts/:artifact_id", h.GetArtifact)
		group.PUT("artifacts/:artifact_id", h.EditArtifact)
		group.DELETE("artifacts/:artifact_id", h.DeleteArtifact)
		group.POST("artifacts/:artifact_id/commit", h.CommitArtifact)
		group.POST("artifacts/:artifact_id/reset-stats", h.ResetStats)
		group.POST("artifacts/:artifact_id/publish", h.PublishArtifact)

		group.GET("artifacts/:artifact_id/files", h.ListArtifactFiles)
		group.GET("artifacts/:artifact_id/file-url", h.GetFileURL)
		group.POST("artifacts/:artifact_id/files", h.PutFile)
		group.DELETE("artifacts/:artifact_id/files", h.RemoveFile)

		group.POST("artifacts/:artifact_id/vectors", h.AddVectors)
		group.POST("artifacts/:artifact_id/documents", h.AddDocuments)
		group.POST("artifacts/:artifact_id/vectors/search", h.SearchVectors)
		group.DELETE("artifacts/:artifact_id/vectors", h.RemoveVectors)
		group.GET("artifacts/:artifact_id/vectors", h.ListVectors)
		group.GET("artifacts/:artifact_id/vectors/:vector_id", h.GetVector)
	}

	// Workspace-scoped read surface, browsable with only a token query
	// parameter.
	public := e.Group("/:workspace/artifacts", middle.Authorize())
	{
		public.GET(":alias", h.ReadWorkspaceArtifact)
		public.GET(":alias/children", h.ListWorkspaceChildren)
		public.GET(":alias/files/*path", h.GetWorkspaceFile)
	}
}
