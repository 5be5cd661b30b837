/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact_handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

func newTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, recorder
}

func TestHandleSuccess(t *testing.T) {
	c, recorder := newTestContext(t, "/test")
	handle(c, func(*gin.Context) (interface{}, error) {
		return map[string]interface{}{"id": "ws/alias"}, nil
	})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ws/alias", body["id"])
}

func TestHandleRawPayloads(t *testing.T) {
	c, recorder := newTestContext(t, "/test")
	handle(c, func(*gin.Context) (interface{}, error) {
		return []byte(`{"raw":true}`), nil
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, jsonContentType, recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"raw":true}`, recorder.Body.String())
}

func TestHandleErrorRendering(t *testing.T) {
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
			name:     "forbidden",
			err:      commonerrors.NewForbidden("no"),
			wantCode: http.StatusForbidden,
			wantId:   commonerrors.Forbidden,
		},
		{
			name:     "precondition failed",
			err:      commonerrors.NewNoStagedVersion("abc"),
			wantCode: http.StatusPreconditionFailed,
			wantId:   commonerrors.NoStagedVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, recorder := newTestContext(t, "/test")
			handle(c, func(*gin.Context) (interface{}, error) {
				return nil, tt.err
			})
			assert.Equal(t, tt.wantCode, recorder.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantId, body["errorCode"])
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	c, _ := newTestContext(t, "/test?silent=true&limit=25&bad=maybe")
	assert.True(t, queryBool(c, "silent"))
	assert.False(t, queryBool(c, "bad"))
	assert.False(t, queryBool(c, "missing"))
	assert.Equal(t, 25, queryInt(c, "limit", 0))
	assert.Equal(t, 7, queryInt(c, "missing", 7))
}
