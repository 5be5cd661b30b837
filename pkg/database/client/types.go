/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

const (
	DESC = "desc"
	ASC  = "asc"
)

// Artifact is a row of the artifacts table. The JSON document columns stay
// raw here; decoding is the caller's business.
type Artifact struct {
	Id            string         `db:"id"`
	Workspace     string         `db:"workspace"`
	ParentId      sql.NullString `db:"parent_id"`
	Alias         sql.NullString `db:"alias"`
	Type          string         `db:"type"`
	Manifest      []byte         `db:"manifest"`
	Staging       []byte         `db:"staging"`
	Config        []byte         `db:"config"`
	Secrets       []byte         `db:"secrets"`
	Versions      []byte         `db:"versions"`
	DownloadCount float64        `db:"download_count"`
	ViewCount     float64        `db:"view_count"`
	FileCount     int            `db:"file_count"`
	CreatedAt     int64          `db:"created_at"`
	CreatedBy     sql.NullString `db:"created_by"`
	LastModified  int64          `db:"last_modified"`
}

// GetArtifactFieldTags returns the ArtifactFieldTags value.
func GetArtifactFieldTags() map[string]string {
	a := Artifact{}
	return getFieldTags(a)
}

// StagingFile is one entry of the staging column.
type StagingFile struct {
	Path           string  `json:"path"`
	DownloadWeight float64 `json:"download_weight"`
}

// VersionInfo is one entry of the versions column.
type VersionInfo struct {
	Version   string `json:"version"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// ManifestMap decodes the manifest column. A committed artifact always has
// one; nil is returned for a purely staged artifact.
func (a *Artifact) ManifestMap() (map[string]interface{}, error) {
	return decodeJSONMap(a.Manifest)
}

// ConfigMap decodes the config column.
func (a *Artifact) ConfigMap() (map[string]interface{}, error) {
	return decodeJSONMap(a.Config)
}

// SecretsMap decodes the secrets column.
func (a *Artifact) SecretsMap() (map[string]interface{}, error) {
	return decodeJSONMap(a.Secrets)
}

// VersionList decodes the versions column.
func (a *Artifact) VersionList() ([]VersionInfo, error) {
	if !isSetJSON(a.Versions) {
		return nil, nil
	}
	var versions []VersionInfo
	if err := json.Unmarshal(a.Versions, &versions); err != nil {
		return nil, fmt.Errorf("bad versions column for %s: %v", a.Id, err)
	}
	return versions, nil
}

// StagingList decodes the staging column. The second result reports whether
// the artifact has a staged version at all; a staged artifact with no files
// yields an empty list and true.
func (a *Artifact) StagingList() ([]StagingFile, bool, error) {
	if !isSetJSON(a.Staging) {
		return nil, false, nil
	}
	var files []StagingFile
	if err := json.Unmarshal(a.Staging, &files); err != nil {
		return nil, false, fmt.Errorf("bad staging column for %s: %v", a.Id, err)
	}
	return files, true, nil
}

// SetManifest encodes m into the manifest column.
func (a *Artifact) SetManifest(m map[string]interface{}) {
	a.Manifest = encodeJSON(m)
}

// SetConfig encodes m into the config column.
func (a *Artifact) SetConfig(m map[string]interface{}) {
	a.Config = encodeJSON(m)
}

// SetSecrets encodes m into the secrets column.
func (a *Artifact) SetSecrets(m map[string]interface{}) {
	a.Secrets = encodeJSON(m)
}

// SetVersions encodes versions into the versions column. An empty list is
// stored as [] rather than null.
func (a *Artifact) SetVersions(versions []VersionInfo) {
	if versions == nil {
		versions = []VersionInfo{}
	}
	a.Versions = encodeJSON(versions)
}

// SetStaging encodes files into the staging column; nil clears the stage.
func (a *Artifact) SetStaging(files []StagingFile, staged bool) {
	if !staged {
		a.Staging = nil
		return
	}
	if files == nil {
		files = []StagingFile{}
	}
	a.Staging = encodeJSON(files)
}

func isSetJSON(raw []byte) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func decodeJSONMap(raw []byte) (map[string]interface{}, error) {
	if !isSetJSON(raw) {
		return nil, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func encodeJSON(v interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// getFieldTags retrieves FieldTags for internal use.
func getFieldTags(obj interface{}) map[string]string {
	result := make(map[string]string)
	t := reflect.TypeOf(obj)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		result[strings.ToLower(field.Name)] = field.Tag.Get("db")
	}
	return result
}

// generateCommand generates SQL command string using reflection
// Iterates through struct fields and builds column and value lists
// Skips fields with specified ignoreTag
// Returns formatted SQL command with columns and values
func generateCommand(obj interface{}, format, ignoreTag string) string {
	t := reflect.TypeOf(obj)
	columns := make([]string, 0, t.NumField())
	values := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("db")
		if tag == ignoreTag {
			continue
		}
		columns = append(columns, tag)
		values = append(values, fmt.Sprintf(":%s", tag))
	}
	cmd := fmt.Sprintf(format, strings.Join(columns, ", "), strings.Join(values, ", "))
	return cmd
}

// GetFieldTag returns the FieldTag value.
func GetFieldTag(tags map[string]string, name string) string {
	name = strings.ToLower(name)
	return tags[name]
}
