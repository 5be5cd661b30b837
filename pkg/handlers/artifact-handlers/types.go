/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact_handlers

import (
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/vector"
)

type CreateArtifactRequest struct {
	Alias     string                 `json:"alias,omitempty"`
	Workspace string                 `json:"workspace,omitempty"`
	ParentId  string                 `json:"parent_id,omitempty"`
	Type      string                 `json:"type,omitempty"`
	Manifest  map[string]interface{} `json:"manifest"`
	Config    map[string]interface{} `json:"config,omitempty"`
	Secrets   map[string]interface{} `json:"secrets,omitempty"`
	PublishTo string                 `json:"publish_to,omitempty"`
	Version   string                 `json:"version,omitempty"`
	Comment   string                 `json:"comment,omitempty"`
	Overwrite bool                   `json:"overwrite,omitempty"`
}

type EditArtifactRequest struct {
	Manifest map[string]interface{} `json:"manifest,omitempty"`
	Type     string                 `json:"type,omitempty"`
	Config   map[string]interface{} `json:"config,omitempty"`
	Secrets  map[string]interface{} `json:"secrets,omitempty"`
	Version  string                 `json:"version,omitempty"`
	Comment  string                 `json:"comment,omitempty"`
}

type CommitArtifactRequest struct {
	Version string `json:"version,omitempty"`
	Comment string `json:"comment,omitempty"`
}

type ListChildrenRequest struct {
	ParentId   string                 `json:"parent_id,omitempty"`
	Keywords   []string               `json:"keywords,omitempty"`
	Filters    map[string]interface{} `json:"filters,omitempty"`
	Mode       string                 `json:"mode,omitempty"`
	Offset     int                    `json:"offset,omitempty"`
	Limit      int                    `json:"limit,omitempty"`
	OrderBy    string                 `json:"order_by,omitempty"`
	Silent     bool                   `json:"silent,omitempty"`
	Pagination bool                   `json:"pagination,omitempty"`
}

type PublishArtifactRequest struct {
	To       string                 `json:"to,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type PutFileRequest struct {
	Path string `json:"path"`
	// DownloadWeight counts against download_count when the file is fetched.
	DownloadWeight float64 `json:"download_weight,omitempty"`
}

type FileURLResponse struct {
	Url string `json:"url"`
}

type AddVectorsRequest struct {
	Vectors []*vector.PointStruct `json:"vectors"`
}

type AddDocumentsRequest struct {
	Documents []map[string]interface{} `json:"documents"`
}

type SearchVectorsRequest struct {
	QueryVector []float32              `json:"query_vector,omitempty"`
	QueryText   string                 `json:"query_text,omitempty"`
	Filter      map[string]interface{} `json:"filter,omitempty"`
	Offset      int                    `json:"offset,omitempty"`
	Limit       int                    `json:"limit,omitempty"`
	WithPayload *bool                  `json:"with_payload,omitempty"`
	WithVectors bool                   `json:"with_vectors,omitempty"`
	Pagination  bool                   `json:"pagination,omitempty"`
}

type RemoveVectorsRequest struct {
	Ids []string `json:"ids"`
}
