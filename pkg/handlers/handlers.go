/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/apiutils"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/artifact"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	artifacthandlers "github.com/AMD-AIG-AIMA/artifact-manager/pkg/handlers/artifact-handlers"
)

// InitHttpHandlers creates the gin engine with logging, recovery and the
// artifact routes.
func InitHttpHandlers(manager *artifact.Manager) *gin.Engine {
	engine := gin.New()
	engine.Use(apiutils.Logger(), gin.Recovery())
	engine.NoRoute(func(c *gin.Context) {
		apiutils.AbortWithApiError(c, commonerrors.NewNotFoundWithMessage(c.Request.RequestURI+" not found"))
	})

	artifacthandlers.InitArtifactRouters(engine, artifacthandlers.NewHandler(manager))
	return engine
}
