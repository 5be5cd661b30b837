/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"
	"fmt"
	"strings"

	sqrl "github.com/Masterminds/squirrel"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// ListRequest is the input of ListChildren. Without a ParentId the top-level
// artifacts of the context workspace are listed.
type ListRequest struct {
	ParentId   string
	Keywords   []string
	Filters    map[string]interface{}
	Mode       string
	Offset     int
	Limit      int
	OrderBy    string
	Silent     bool
	Pagination bool
}

// ListResult is one page of listed artifacts. Total is -1 unless the request
// asked for pagination.
type ListResult struct {
	Items  []map[string]interface{} `json:"items"`
	Total  int                      `json:"total"`
	Offset int                      `json:"offset"`
	Limit  int                      `json:"limit"`
}

// fixedFilterFields may be matched exactly; rangeFilterFields accept a
// scalar lower bound or a [min, max] pair.
var (
	fixedFilterFields = map[string]bool{
		"type": true, "alias": true, "workspace": true, "parent_id": true, "created_by": true,
	}
	rangeFilterFields = map[string]bool{
		"created_at": true, "last_modified": true, "download_count": true, "view_count": true,
	}
	orderFields = map[string]bool{
		"id": true, "view_count": true, "download_count": true, "last_modified": true, "created_at": true,
	}
)

// ListChildren lists the children of a collection, or the top-level
// artifacts of the context workspace when no parent is given. Keyword and
// filter conditions combine per Mode ("AND" by default).
func (m *Manager) ListChildren(ctx context.Context, rc *RequestContext, req *ListRequest) (*ListResult, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}

	sess, err := m.db.BeginSession(ctx, req.Silent)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	var parent *client.Artifact
	var listFields []string
	if req.ParentId != "" {
		parent, _, err = m.getArtifactWithPermission(ctx, sess, rc, req.ParentId, OpList)
		if err != nil {
			return nil, err
		}
		parentConfig, err := parent.ConfigMap()
		if err != nil {
			return nil, err
		}
		listFields, err = resolveListFields(parentConfig)
		if err != nil {
			return nil, err
		}
	}

	var base sqrl.Sqlizer
	if parent != nil {
		base = sqrl.Eq{"parent_id": parent.Id}
	} else {
		base = sqrl.And{
			sqrl.Eq{"parent_id": nil},
			sqrl.Eq{"workspace": rc.Workspace},
		}
	}

	conditions, stage, err := buildChildConditions(m.dialect, req.Keywords, req.Filters)
	if err != nil {
		return nil, err
	}
	query := sqrl.And{base, m.dialect.StageCondition(stage)}
	if len(conditions) > 0 {
		if strings.EqualFold(req.Mode, "OR") {
			query = append(query, sqrl.Or(conditions))
		} else {
			query = append(query, sqrl.And(conditions))
		}
	}

	result := &ListResult{Total: -1, Offset: req.Offset, Limit: limit}
	if req.Pagination {
		total, err := sess.CountArtifacts(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Total = total
	}

	orderBy, err := resolveOrderBy(req.OrderBy)
	if err != nil {
		return nil, err
	}
	artifacts, err := sess.SelectArtifacts(ctx, query, []string{orderBy}, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	result.Items = make([]map[string]interface{}, 0, len(artifacts))
	for _, artifact := range artifacts {
		data := generateArtifactData(artifact, parent)
		if len(listFields) > 0 {
			data = projectFields(data, listFields)
		}
		result.Items = append(result.Items, data)
	}

	if !req.Silent && parent != nil {
		if err := sess.IncrementStat(ctx, parent.Id, "view_count", 1); err != nil {
			return nil, err
		}
		if err := sess.Commit(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// buildChildConditions translates keywords and the filter document into SQL
// predicates. Filter values always travel as bound parameters.
func buildChildConditions(dialect client.Dialect, keywords []string, filters map[string]interface{}) ([]sqrl.Sqlizer, bool, error) {
	var conditions []sqrl.Sqlizer
	for _, keyword := range keywords {
		conditions = append(conditions, dialect.KeywordMatch("manifest", keyword))
	}

	stage := false
	for key, value := range filters {
		switch {
		case key == "stage":
			if flag, ok := value.(bool); ok {
				stage = flag
			}
		case key == "manifest":
			nested, ok := value.(map[string]interface{})
			if !ok {
				return nil, false, commonerrors.NewBadRequest("the manifest filter must be an object")
			}
			for manifestKey, manifestValue := range nested {
				condition, err := manifestCondition(dialect, manifestKey, manifestValue)
				if err != nil {
					return nil, false, err
				}
				conditions = append(conditions, condition)
			}
		case key == "config":
			nested, ok := value.(map[string]interface{})
			if !ok {
				return nil, false, commonerrors.NewBadRequest("the config filter must be an object")
			}
			permissions, ok := nested["permissions"].(map[string]interface{})
			if !ok {
				continue
			}
			for userId, permission := range permissions {
				condition, err := dialect.JSONEquals("config", []string{"permissions", userId}, permission)
				if err != nil {
					return nil, false, err
				}
				conditions = append(conditions, condition)
			}
		case fixedFilterFields[key]:
			conditions = append(conditions, sqrl.Eq{key: value})
		case rangeFilterFields[key]:
			condition, err := rangeCondition(key, value)
			if err != nil {
				return nil, false, err
			}
			conditions = append(conditions, condition)
		default:
			return nil, false, commonerrors.NewBadRequest(fmt.Sprintf("invalid filter key: %q", key))
		}
	}
	return conditions, stage, nil
}

func manifestCondition(dialect client.Dialect, key string, value interface{}) (sqrl.Sqlizer, error) {
	if pattern, ok := value.(string); ok && strings.Contains(pattern, "*") {
		return dialect.JSONLike("manifest", []string{key}, pattern)
	}
	return dialect.JSONEquals("manifest", []string{key}, value)
}

func rangeCondition(column string, value interface{}) (sqrl.Sqlizer, error) {
	bounds, ok := value.([]interface{})
	if !ok {
		return sqrl.GtOrEq{column: value}, nil
	}
	if len(bounds) != 2 {
		return nil, commonerrors.NewBadRequest(
			fmt.Sprintf("the range filter for %q must be a [min, max] pair", column))
	}
	condition := sqrl.And{}
	if bounds[0] != nil {
		condition = append(condition, sqrl.GtOrEq{column: bounds[0]})
	}
	if bounds[1] != nil {
		condition = append(condition, sqrl.LtOrEq{column: bounds[1]})
	}
	if len(condition) == 0 {
		return nil, commonerrors.NewBadRequest(
			fmt.Sprintf("the range filter for %q is empty", column))
	}
	return condition, nil
}

// resolveOrderBy validates the order field. A "<" suffix selects ascending
// order; naming a field without the suffix sorts descending. Without an
// order field the listing is ascending by id.
func resolveOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "id ASC", nil
	}
	field := orderBy
	ascending := false
	if idx := strings.Index(orderBy, "<"); idx >= 0 {
		field = orderBy[:idx]
		ascending = true
	}
	if !orderFields[field] {
		return "", commonerrors.NewBadRequest(fmt.Sprintf("invalid order_by field: %q", orderBy))
	}
	if ascending {
		return field + " ASC", nil
	}
	return field + " DESC", nil
}

// resolveListFields reads the projection list from a collection config.
// Secrets can never be projected.
func resolveListFields(config map[string]interface{}) ([]string, error) {
	if config == nil {
		return nil, nil
	}
	declared, ok := config["list_fields"]
	if !ok || declared == nil {
		return nil, nil
	}
	items, ok := declared.([]interface{})
	if !ok {
		return nil, commonerrors.NewBadRequest("invalid list_fields, it should be a list")
	}
	fields := make([]string, 0, len(items))
	for _, item := range items {
		field, ok := item.(string)
		if !ok {
			return nil, commonerrors.NewBadRequest("invalid list_fields, it should be a list of field names")
		}
		if field == "secrets" {
			return nil, commonerrors.NewBadRequest("secrets cannot be included in list_fields")
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func projectFields(data map[string]interface{}, fields []string) map[string]interface{} {
	projected := map[string]interface{}{
		"id":  data["id"],
		"_id": data["_id"],
	}
	for _, field := range fields {
		if value, ok := data[field]; ok {
			projected[field] = value
		}
	}
	return projected
}
