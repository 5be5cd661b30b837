/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package errors

import (
	"errors"
	"net/http"
	"testing"

	"gotest.tools/assert"
)

func TestErrorPredicates(t *testing.T) {
	assert.Assert(t, IsBadRequest(NewBadRequest("x")))
	assert.Assert(t, IsInternal(NewInternalError("x")))
	assert.Assert(t, IsAlreadyExist(NewAlreadyExist("x")))
	assert.Assert(t, IsForbidden(NewForbidden("x")))
	assert.Assert(t, IsForbidden(NewWorkspaceNotAllowed("ws")) == false)
	assert.Assert(t, IsUnauthorized(NewUnauthorized("x")))
	assert.Assert(t, IsArtifact(NewBadRequest("x")))
	assert.Assert(t, !IsArtifact(errors.New("plain")))
}

func TestIsNotFound(t *testing.T) {
	assert.Assert(t, IsNotFound(NewNotFound("Artifact", "a")))
	assert.Assert(t, IsNotFound(NewNotFound("Version", "v1")))
	assert.Assert(t, IsNotFound(NewNotFound("File", "data.bin")))
	assert.Assert(t, IsNotFound(NewNotFound("Collection", "c")))
	assert.Assert(t, IsNotFound(NewNotFoundWithMessage("gone")))
	assert.Assert(t, !IsNotFound(NewBadRequest("x")))
	assert.Assert(t, !IsNotFound(errors.New("plain")))
}

func TestIsPreconditionFailed(t *testing.T) {
	assert.Assert(t, IsPreconditionFailed(NewPreconditionFailed("x")))
	assert.Assert(t, IsPreconditionFailed(NewNoStagedVersion("abc")))
	assert.Assert(t, !IsPreconditionFailed(NewBadRequest("x")))
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, GetErrorCode(NewInternalError("x")), InternalError)
	assert.Equal(t, GetErrorCode(NewNotFound("Artifact", "a")), ArtifactNotFound)
	assert.Equal(t, GetErrorCode(NewNotFound("Version", "v1")), VersionNotFound)
	assert.Equal(t, GetErrorCode(NewNoStagedVersion("abc")), NoStagedVersion)
	assert.Equal(t, GetErrorCode(NewWorkspaceNotAllowed("ws")), WorkspaceNotAllowed)
	assert.Equal(t, GetErrorCode(errors.New("plain")), "")
}

func TestHttpCodes(t *testing.T) {
	assert.Equal(t, int(NewBadRequest("x").Status().Code), http.StatusBadRequest)
	assert.Equal(t, int(NewUnauthorized("x").Status().Code), http.StatusUnauthorized)
	assert.Equal(t, int(NewForbidden("x").Status().Code), http.StatusForbidden)
	assert.Equal(t, int(NewNotFound("Artifact", "a").Status().Code), http.StatusNotFound)
	assert.Equal(t, int(NewAlreadyExist("x").Status().Code), http.StatusConflict)
	assert.Equal(t, int(NewPreconditionFailed("x").Status().Code), http.StatusPreconditionFailed)
	assert.Equal(t, int(NewInternalError("x").Status().Code), http.StatusInternalServerError)
	assert.Equal(t, int(NewNotImplemented("x").Status().Code), http.StatusNotImplemented)
}

func TestIgnoreFound(t *testing.T) {
	assert.NilError(t, IgnoreFound(nil))
	assert.NilError(t, IgnoreFound(NewNotFound("Artifact", "a")))
	assert.Assert(t, IgnoreFound(NewForbidden("x")) != nil)
}
