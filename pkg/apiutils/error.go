/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package apiutils

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// ApiError is the unified error response, including HTTP code, error code and
// error message.
type ApiError struct {
	HttpCode     int    `json:"-"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// Error returns the error message string.
func (err *ApiError) Error() string {
	return err.ErrorMessage
}

// AbortWithApiError converts the error into the standardized error format and
// aborts the request with a JSON error response.
func AbortWithApiError(c *gin.Context, err error) {
	handleErrors(c, err)
	rsp := convertToErrResponse(err)
	c.AbortWithStatusJSON(rsp.HttpCode, rsp)
}

// convertToErrResponse converts an error into an ApiError. StatusError values
// keep their code and reason; anything else is classified by the apimachinery
// predicates and falls back to an internal error.
func convertToErrResponse(err error) ApiError {
	var result *ApiError
	if errors.As(err, &result) {
		return *result
	}
	var err2 *apierrors.StatusError
	if !errors.As(err, &err2) {
		switch {
		case apierrors.IsNotFound(err):
			err2 = commonerrors.NewNotFoundWithMessage(err.Error())
		case apierrors.IsBadRequest(err), apierrors.IsInvalid(err):
			err2 = commonerrors.NewBadRequest(err.Error())
		case apierrors.IsAlreadyExists(err):
			err2 = commonerrors.NewAlreadyExist(err.Error())
		case apierrors.IsForbidden(err):
			err2 = commonerrors.NewForbidden(err.Error())
		case apierrors.IsUnauthorized(err):
			err2 = commonerrors.NewUnauthorized(err.Error())
		default:
			err2 = commonerrors.NewInternalError(err.Error())
		}
	}
	return ApiError{
		HttpCode:     int(err2.Status().Code),
		ErrorCode:    string(err2.Status().Reason),
		ErrorMessage: err2.Error(),
	}
}

// handleErrors records single errors or error aggregates on the gin context.
func handleErrors(c *gin.Context, err error) {
	var errs []error
	if aggregate, ok := err.(utilerrors.Aggregate); ok {
		errs = aggregate.Errors()
	} else {
		errs = []error{err}
	}
	for _, val := range errs {
		if val != nil {
			_ = c.Error(val)
		}
	}
}
