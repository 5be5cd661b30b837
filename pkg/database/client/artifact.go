/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"fmt"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"k8s.io/klog/v2"

	dbutils "github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

const (
	TArtifact = "artifacts"
)

var (
	insertArtifactFormat = `INSERT INTO ` + TArtifact + ` (%s) VALUES (%s)`
	updateArtifactCmd    = fmt.Sprintf(`UPDATE %s
		SET workspace = :workspace,
		    parent_id = :parent_id,
		    alias = :alias,
		    type = :type,
		    manifest = :manifest,
		    staging = :staging,
		    config = :config,
		    secrets = :secrets,
		    versions = :versions,
		    download_count = :download_count,
		    view_count = :view_count,
		    file_count = :file_count,
		    created_by = :created_by,
		    last_modified = :last_modified
		WHERE id = :id`, TArtifact)
)

// statColumns are the only columns IncrementStat and ResetStats may touch.
var statColumns = map[string]bool{
	"view_count":     true,
	"download_count": true,
}

// SelectArtifacts retrieves multiple artifact records.
func (s *Session) SelectArtifacts(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Artifact, error) {
	startTime := time.Now().UTC()
	defer func() {
		if query != nil {
			strQuery := dbutils.CvtToSqlStr(query)
			klog.Infof("select artifacts, query: %s, orderBy: %v, limit: %d, offset: %d, cost (%v)",
				strQuery, orderBy, limit, offset, time.Since(startTime))
		}
	}()
	builder := sqrl.Select("*").PlaceholderFormat(sqrl.Dollar).
		From(TArtifact).
		Where(query).
		OrderBy(orderBy...).
		Offset(uint64(offset))
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	ctx2, cancel := s.withTimeout(ctx)
	defer cancel()
	var artifacts []*Artifact
	err = s.tx.SelectContext(ctx2, &artifacts, sql, args...)
	return artifacts, err
}

// CountArtifacts returns the total count of artifacts matching the criteria.
func (s *Session) CountArtifacts(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	sql, args, err := sqrl.Select("COUNT(*)").PlaceholderFormat(sqrl.Dollar).From(TArtifact).Where(query).ToSql()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = s.tx.GetContext(ctx, &cnt, sql, args...)
	return cnt, err
}

// GetArtifact retrieves an artifact by ID.
func (s *Session) GetArtifact(ctx context.Context, artifactId string) (*Artifact, error) {
	if artifactId == "" {
		return nil, commonerrors.NewBadRequest("artifactId is empty")
	}
	dbTags := GetArtifactFieldTags()
	dbSql := sqrl.Eq{GetFieldTag(dbTags, "Id"): artifactId}
	artifacts, err := s.SelectArtifacts(ctx, dbSql, nil, 1, 0)
	if err != nil {
		klog.ErrorS(err, "failed to select artifact", "sql", dbutils.CvtToSqlStr(dbSql))
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, commonerrors.NewNotFound("Artifact", artifactId)
	}
	return artifacts[0], nil
}

// GetArtifactByAlias retrieves an artifact by workspace and alias.
func (s *Session) GetArtifactByAlias(ctx context.Context, workspace, alias string) (*Artifact, error) {
	if workspace == "" || alias == "" {
		return nil, commonerrors.NewBadRequest("workspace or alias is empty")
	}
	dbTags := GetArtifactFieldTags()
	dbSql := sqrl.And{
		sqrl.Eq{GetFieldTag(dbTags, "Workspace"): workspace},
		sqrl.Eq{GetFieldTag(dbTags, "Alias"): alias},
	}
	artifacts, err := s.SelectArtifacts(ctx, dbSql, nil, 1, 0)
	if err != nil {
		klog.ErrorS(err, "failed to select artifact by alias", "sql", dbutils.CvtToSqlStr(dbSql))
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, commonerrors.NewNotFound("Artifact", workspace+"/"+alias)
	}
	return artifacts[0], nil
}

// InsertArtifact inserts a new artifact row.
func (s *Session) InsertArtifact(ctx context.Context, artifact *Artifact) error {
	if artifact == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	_, err := s.tx.NamedExecContext(ctx, generateCommand(*artifact, insertArtifactFormat, ""), artifact)
	if err != nil {
		klog.ErrorS(err, "failed to insert artifact", "id", artifact.Id)
	}
	return err
}

// UpdateArtifact rewrites the full artifact row.
func (s *Session) UpdateArtifact(ctx context.Context, artifact *Artifact) error {
	if artifact == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	artifact.LastModified = time.Now().UTC().Unix()
	_, err := s.tx.NamedExecContext(ctx, updateArtifactCmd, artifact)
	if err != nil {
		klog.ErrorS(err, "failed to update artifact", "id", artifact.Id)
	}
	return err
}

// DeleteArtifact removes an artifact row. The parent reference is cleared
// first so a self-referencing constraint never blocks the delete.
func (s *Session) DeleteArtifact(ctx context.Context, artifactId string) error {
	cmd := fmt.Sprintf(`UPDATE %s SET parent_id=NULL WHERE id=$1`, TArtifact)
	if _, err := s.tx.ExecContext(ctx, cmd, artifactId); err != nil {
		klog.ErrorS(err, "failed to clear artifact parent", "id", artifactId)
		return err
	}
	cmd = fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, TArtifact)
	if _, err := s.tx.ExecContext(ctx, cmd, artifactId); err != nil {
		klog.ErrorS(err, "failed to delete artifact", "id", artifactId)
		return err
	}
	return nil
}

// ExistingAliases reports which of the candidate aliases are already taken
// in the workspace. One round trip regardless of candidate count.
func (s *Session) ExistingAliases(ctx context.Context, workspace string, aliases []string) (map[string]bool, error) {
	if len(aliases) == 0 {
		return map[string]bool{}, nil
	}
	dbTags := GetArtifactFieldTags()
	sql, args, err := sqrl.Select(GetFieldTag(dbTags, "Alias")).PlaceholderFormat(sqrl.Dollar).
		From(TArtifact).
		Where(sqrl.And{
			sqrl.Eq{GetFieldTag(dbTags, "Workspace"): workspace},
			sqrl.Eq{GetFieldTag(dbTags, "Alias"): aliases},
		}).ToSql()
	if err != nil {
		return nil, err
	}
	var taken []string
	if err = s.tx.SelectContext(ctx, &taken, sql, args...); err != nil {
		klog.ErrorS(err, "failed to probe aliases", "workspace", workspace)
		return nil, err
	}
	result := make(map[string]bool, len(taken))
	for _, alias := range taken {
		result[alias] = true
	}
	return result, nil
}

// ListChildren retrieves the direct children of an artifact.
func (s *Session) ListChildren(ctx context.Context, parentId string) ([]*Artifact, error) {
	dbTags := GetArtifactFieldTags()
	return s.SelectArtifacts(ctx, sqrl.Eq{GetFieldTag(dbTags, "ParentId"): parentId}, nil, 0, 0)
}

// CountChildren returns the number of direct children of an artifact.
func (s *Session) CountChildren(ctx context.Context, parentId string) (int, error) {
	dbTags := GetArtifactFieldTags()
	return s.CountArtifacts(ctx, sqrl.Eq{GetFieldTag(dbTags, "ParentId"): parentId})
}

// IncrementStat atomically bumps a statistics column.
func (s *Session) IncrementStat(ctx context.Context, artifactId, column string, delta float64) error {
	if !statColumns[column] {
		return commonerrors.NewBadRequest(fmt.Sprintf("invalid field: %s", column))
	}
	cmd := fmt.Sprintf(`UPDATE %s SET %s = %s + $1 WHERE id=$2`, TArtifact, column, column)
	_, err := s.tx.ExecContext(ctx, cmd, delta, artifactId)
	if err != nil {
		klog.ErrorS(err, "failed to increment stat", "id", artifactId, "column", column)
	}
	return err
}

// ResetStats zeroes the statistics columns of an artifact.
func (s *Session) ResetStats(ctx context.Context, artifactId string) error {
	cmd := fmt.Sprintf(`UPDATE %s SET view_count = 0, download_count = 0, last_modified = $1 WHERE id=$2`, TArtifact)
	_, err := s.tx.ExecContext(ctx, cmd, time.Now().UTC().Unix(), artifactId)
	if err != nil {
		klog.ErrorS(err, "failed to reset stats", "id", artifactId)
	}
	return err
}
