/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"fmt"
	"regexp"
	"strings"

	sqrl "github.com/Masterminds/squirrel"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// Dialect selects the SQL flavor for predicates over the JSON document
// columns. Everything else in this package is dialect-neutral.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// jsonKeyPattern bounds what may be inlined into a JSON path expression.
// Values always travel as bound parameters; only keys are inlined.
var jsonKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// SanitizeJSONKey rejects keys that cannot be safely inlined.
func SanitizeJSONKey(key string) error {
	if !jsonKeyPattern.MatchString(key) {
		return commonerrors.NewBadRequest(fmt.Sprintf("invalid filter key: %q", key))
	}
	return nil
}

// jsonText renders an expression extracting the text value at path inside a
// JSON column. The path must already be sanitized.
func (d Dialect) jsonText(column string, path ...string) string {
	if d == DialectSQLite {
		return fmt.Sprintf("json_extract(%s, '$.%s')", column, strings.Join(path, "."))
	}
	expr := column
	for i, key := range path {
		op := "->"
		if i == len(path)-1 {
			op = "->>"
		}
		expr += fmt.Sprintf("%s'%s'", op, key)
	}
	return expr
}

// KeywordMatch matches a keyword anywhere in the serialized JSON column.
func (d Dialect) KeywordMatch(column, keyword string) sqrl.Sqlizer {
	pattern := "%" + keyword + "%"
	if d == DialectSQLite {
		return sqrl.Expr(fmt.Sprintf("%s LIKE ?", column), pattern)
	}
	return sqrl.Expr(fmt.Sprintf("%s::text ILIKE ?", column), pattern)
}

// JSONEquals matches exact text equality at path.
func (d Dialect) JSONEquals(column string, path []string, value interface{}) (sqrl.Sqlizer, error) {
	if err := sanitizePath(path); err != nil {
		return nil, err
	}
	return sqrl.Expr(fmt.Sprintf("%s = ?", d.jsonText(column, path...)), fmt.Sprintf("%v", value)), nil
}

// JSONLike matches a case-insensitive pattern at path. '*' wildcards are
// translated to SQL '%'.
func (d Dialect) JSONLike(column string, path []string, pattern string) (sqrl.Sqlizer, error) {
	if err := sanitizePath(path); err != nil {
		return nil, err
	}
	sqlPattern := strings.ReplaceAll(pattern, "*", "%")
	if d == DialectSQLite {
		return sqrl.Expr(fmt.Sprintf("%s LIKE ?", d.jsonText(column, path...)), sqlPattern), nil
	}
	return sqrl.Expr(fmt.Sprintf("%s ILIKE ?", d.jsonText(column, path...)), sqlPattern), nil
}

// JSONCompare matches a numeric comparison at path. op must be one of
// <, <=, > or >=.
func (d Dialect) JSONCompare(column string, path []string, op string, value float64) (sqrl.Sqlizer, error) {
	switch op {
	case "<", "<=", ">", ">=":
	default:
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("invalid comparison operator: %q", op))
	}
	if err := sanitizePath(path); err != nil {
		return nil, err
	}
	expr := d.jsonText(column, path...)
	if d == DialectSQLite {
		return sqrl.Expr(fmt.Sprintf("CAST(%s AS NUMERIC) %s ?", expr, op), value), nil
	}
	return sqrl.Expr(fmt.Sprintf("(%s)::numeric %s ?", expr, op), value), nil
}

// StageCondition selects artifacts that do or do not carry a staged version.
// The staged state is defined by the staging column alone: a SQL NULL or the
// JSON literal null means no staged version. The two conditions are exact
// complements so a row never shows up in both listings.
func (d Dialect) StageCondition(staged bool) sqrl.Sqlizer {
	stagingColumn := "staging::text"
	if d == DialectSQLite {
		stagingColumn = "staging"
	}
	if staged {
		return sqrl.Expr(fmt.Sprintf("(staging IS NOT NULL AND %s <> 'null')", stagingColumn))
	}
	return sqrl.Expr(fmt.Sprintf("(staging IS NULL OR %s = 'null')", stagingColumn))
}

func sanitizePath(path []string) error {
	if len(path) == 0 {
		return commonerrors.NewBadRequest("empty filter path")
	}
	for _, key := range path {
		if err := SanitizeJSONKey(key); err != nil {
			return err
		}
	}
	return nil
}
