/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package apiutils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

const (
	DefaultMaxRequestBodyBytes = int64(2 * 1024 * 1024)
)

// ReadBody reads the request body through a LimitedReader so an oversized
// body never lands in memory whole. The body is closed after reading.
func ReadBody(req *http.Request) ([]byte, error) {
	defer req.Body.Close()
	lr := &io.LimitedReader{
		R: req.Body,
		N: DefaultMaxRequestBodyBytes + 1,
	}
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, commonerrors.NewInternalError(err.Error())
	}
	if lr.N <= 0 {
		return nil, commonerrors.NewBadRequest(
			fmt.Sprintf("the request body exceeds the max length of %d bytes", DefaultMaxRequestBodyBytes))
	}
	return data, nil
}

// ParseRequestBody reads the request body and unmarshals it into bodyStruct.
// An empty body returns nil without touching bodyStruct.
func ParseRequestBody(req *http.Request, bodyStruct interface{}) ([]byte, error) {
	body, err := ReadBody(req)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	if err = json.Unmarshal(body, bodyStruct); err != nil {
		return body, commonerrors.NewBadRequest(err.Error())
	}
	return body, nil
}
