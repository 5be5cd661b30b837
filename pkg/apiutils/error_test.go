/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package apiutils

import (
	"errors"
	"net/http"
	"testing"

	"gotest.tools/assert"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

func TestConvertToErrResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantId   string
	}{
		{
			name:     "not found",
			err:      commonerrors.NewNotFound("Artifact", "a"),
			wantCode: http.StatusNotFound,
			wantId:   commonerrors.ArtifactNotFound,
		},
		{
			name:     "bad request",
			err:      commonerrors.NewBadRequest("nope"),
			wantCode: http.StatusBadRequest,
			wantId:   commonerrors.BadRequest,
		},
		{
			name:     "forbidden",
			err:      commonerrors.NewForbidden("nope"),
			wantCode: http.StatusForbidden,
			wantId:   commonerrors.Forbidden,
		},
		{
			name:     "unauthorized",
			err:      commonerrors.NewUnauthorized("nope"),
			wantCode: http.StatusUnauthorized,
			wantId:   commonerrors.Unauthorized,
		},
		{
			name:     "conflict",
			err:      commonerrors.NewAlreadyExist("dup"),
			wantCode: http.StatusConflict,
			wantId:   commonerrors.AlreadyExist,
		},
		{
			name:     "precondition failed",
			err:      commonerrors.NewNoStagedVersion("abc"),
			wantCode: http.StatusPreconditionFailed,
			wantId:   commonerrors.NoStagedVersion,
		},
		{
			name:     "plain errors fall back to internal",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantId:   commonerrors.InternalError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsp := convertToErrResponse(tt.err)
			assert.Equal(t, rsp.HttpCode, tt.wantCode)
			assert.Equal(t, rsp.ErrorCode, tt.wantId)
			assert.Assert(t, rsp.ErrorMessage != "")
		})
	}
}

func TestConvertToErrResponseKeepsApiError(t *testing.T) {
	original := &ApiError{
		HttpCode:     http.StatusTeapot,
		ErrorCode:    "Artifact.99999",
		ErrorMessage: "kept",
	}
	rsp := convertToErrResponse(original)
	assert.Equal(t, rsp, *original)
}
