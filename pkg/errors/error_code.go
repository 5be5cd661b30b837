/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package errors

import (
	"fmt"
	"net/http"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const ArtifactPrefix = "Artifact."

/*
   5-digit Error Code Convention: [xx][yyy]
   [xx] Business ID (00-99), used to distinguish errors from different business interfaces.
   00: General errors
   01: Artifact-related errors
   02: File-related errors
   03: Vector-related errors
   [yyy] Error code range (000-999)
*/

// public: 00xxx
const (
	InternalError      = ArtifactPrefix + "00001"
	BadRequest         = ArtifactPrefix + "00002"
	Forbidden          = ArtifactPrefix + "00003"
	AlreadyExist       = ArtifactPrefix + "00004"
	NotFound           = ArtifactPrefix + "00005"
	Unauthorized       = ArtifactPrefix + "00006"
	PreconditionFailed = ArtifactPrefix + "00007"
	NotImplemented     = ArtifactPrefix + "00008"
)

// artifact: 01xxx
const (
	ArtifactNotFound    = ArtifactPrefix + "01001"
	NoStagedVersion     = ArtifactPrefix + "01002"
	VersionNotFound     = ArtifactPrefix + "01003"
	WorkspaceNotAllowed = ArtifactPrefix + "01004"
)

// file: 02xxx
const (
	FileNotFound = ArtifactPrefix + "02001"
)

// vector: 03xxx
const (
	CollectionNotFound = ArtifactPrefix + "03001"
)

// IsArtifact returns true if the specified error carries an artifact reason code.
func IsArtifact(err error) bool {
	if err == nil {
		return false
	}
	return strings.HasPrefix(string(apierrors.ReasonForError(err)), ArtifactPrefix)
}

func IsAlreadyExist(err error) bool {
	return apierrors.ReasonForError(err) == AlreadyExist
}

func IsBadRequest(err error) bool {
	return apierrors.ReasonForError(err) == BadRequest
}

func IsInternal(err error) bool {
	return apierrors.ReasonForError(err) == InternalError
}

func IsForbidden(err error) bool {
	return apierrors.ReasonForError(err) == Forbidden
}

func IsUnauthorized(err error) bool {
	return apierrors.ReasonForError(err) == Unauthorized
}

func IsPreconditionFailed(err error) bool {
	reason := apierrors.ReasonForError(err)
	return reason == PreconditionFailed || reason == NoStagedVersion
}

func IsNotFound(err error) bool {
	switch apierrors.ReasonForError(err) {
	case NotFound, ArtifactNotFound, VersionNotFound, FileNotFound, CollectionNotFound:
		return true
	}
	return false
}

func IgnoreFound(err error) error {
	if err == nil || IsNotFound(err) {
		return nil
	}
	return err
}

func GetErrorCode(err error) string {
	if err == nil || !IsArtifact(err) {
		return ""
	}
	return string(apierrors.ReasonForError(err))
}

func NewBadRequest(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusBadRequest,
		Reason:  BadRequest,
		Message: fmt.Sprintf("Bad request. %s", message),
	}}
}

func NewInternalError(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusInternalServerError,
		Reason:  InternalError,
		Message: fmt.Sprintf("Internal error. %s", message),
	}}
}

func NewAlreadyExist(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusConflict,
		Reason:  AlreadyExist,
		Message: message,
	}}
}

func NewForbidden(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusForbidden,
		Reason:  Forbidden,
		Message: message,
	}}
}

func NewUnauthorized(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusUnauthorized,
		Reason:  Unauthorized,
		Message: message,
	}}
}

func NewPreconditionFailed(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusPreconditionFailed,
		Reason:  PreconditionFailed,
		Message: message,
	}}
}

// NewNoStagedVersion reports a commit-family operation invoked on an
// artifact that has no staged changes.
func NewNoStagedVersion(artifactId string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusPreconditionFailed,
		Reason:  NoStagedVersion,
		Message: fmt.Sprintf("artifact %s has no staged version", artifactId),
	}}
}

func NotFoundErrorCode(kind string) metav1.StatusReason {
	switch kind {
	case "Artifact":
		return ArtifactNotFound
	case "Version":
		return VersionNotFound
	case "File":
		return FileNotFound
	case "Collection":
		return CollectionNotFound
	default:
		return NotFound
	}
}

func NewNotFound(kind, name string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status: metav1.StatusFailure,
		Code:   http.StatusNotFound,
		Reason: NotFoundErrorCode(kind),
		Details: &metav1.StatusDetails{
			Kind: kind,
			Name: name,
		},
		Message: fmt.Sprintf("%s %s not found.", kind, name),
	}}
}

func NewNotFoundWithMessage(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusNotFound,
		Reason:  NotFound,
		Message: message,
	}}
}

func NewWorkspaceNotAllowed(workspace string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusForbidden,
		Reason:  WorkspaceNotAllowed,
		Message: fmt.Sprintf("workspace %s does not allow artifact creation", workspace),
	}}
}

func NewNotImplemented(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusNotImplemented,
		Reason:  NotImplemented,
		Message: message,
	}}
}
