/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package s3

import (
	"context"
	"time"
)

const (
	FileTypeFile      = "file"
	FileTypeDirectory = "directory"
)

// FileInfo describes one listed object or sub-prefix.
type FileInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Size         int64  `json:"size,omitempty"`
	LastModified int64  `json:"last_modified,omitempty"`
}

type Interface interface {
	Credentials() *Credentials

	PutObject(ctx context.Context, key string, value []byte, timeout int64) error
	GetObject(ctx context.Context, key string, timeout int64) ([]byte, error)
	HeadObject(ctx context.Context, key string, timeout int64) (*FileInfo, error)
	DeleteObject(ctx context.Context, key string, timeout int64) error

	ListObjects(ctx context.Context, prefix string, limit int) ([]*FileInfo, error)
	CountObjects(ctx context.Context, prefix string) (int, error)
	RemovePrefix(ctx context.Context, prefix string) error

	PresignGetObject(ctx context.Context, key string, expire time.Duration) (string, error)
	PresignPutObject(ctx context.Context, key string, expire time.Duration) (string, error)
}
