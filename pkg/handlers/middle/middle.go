/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package middle

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/apiutils"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/artifact"
	commonconfig "github.com/AMD-AIG-AIMA/artifact-manager/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

const (
	ContextUser = "ArtifactUser"

	HeaderUserId    = "X-User-Id"
	HeaderWorkspace = "X-Workspace"
	QueryToken      = "token"
	AnonymousUser   = "anonymous"
)

// Authorize resolves the caller identity from the token query parameter or
// the Authorization header and stores it on the context. Without a token the
// request is accepted as an internal or anonymous user only when the system
// does not require user tokens.
func Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c)
		if err != nil {
			apiutils.AbortWithApiError(c, err)
			return
		}
		c.Set(ContextUser, user)
	}
}

func authenticate(c *gin.Context) (*artifact.UserInfo, error) {
	tokenStr := c.Query(QueryToken)
	if tokenStr == "" {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			tokenStr = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if tokenStr != "" {
		token, err := ParseToken(tokenStr)
		if err != nil {
			return nil, commonerrors.NewUnauthorized(err.Error())
		}
		return &artifact.UserInfo{
			Id:         token.UserId,
			Workspaces: token.Grants,
		}, nil
	}

	if commonconfig.IsUserTokenRequired() {
		return nil, commonerrors.NewUnauthorized("a user token is required")
	}
	// only for internal users behind a trusted proxy
	if userId := c.GetHeader(HeaderUserId); userId != "" {
		return &artifact.UserInfo{Id: userId}, nil
	}
	return &artifact.UserInfo{Id: AnonymousUser, IsAnonymous: true}, nil
}

// RequestContext assembles the artifact request context from the
// authenticated user and the workspace named by the route or the
// X-Workspace header.
func RequestContext(c *gin.Context) (*artifact.RequestContext, error) {
	value, ok := c.Get(ContextUser)
	if !ok {
		return nil, commonerrors.NewUnauthorized("the user identity is not resolved")
	}
	user, ok := value.(*artifact.UserInfo)
	if !ok || user == nil {
		return nil, commonerrors.NewUnauthorized("the user identity is not resolved")
	}
	workspace := strings.TrimSpace(c.Param("workspace"))
	if workspace == "" {
		workspace = strings.TrimSpace(c.GetHeader(HeaderWorkspace))
	}
	return &artifact.RequestContext{User: user, Workspace: workspace}, nil
}
