/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package middle

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/artifact"
)

const (
	TokenExpire  = "The user's token has expired, please renew it"
	InvalidToken = "The user's token is invalid"

	TokenDelim = ":"
	GrantDelim = ","
	LevelDelim = "="
)

// TokenItem is the decoded form of a user token: the user id, a unix expiry
// and the workspace tiers granted to the user. A "*" workspace grant applies
// everywhere.
type TokenItem struct {
	UserId string
	Expire int64
	Grants map[string]artifact.Permission
}

// ParseToken decodes a base64 "user:expire:ws=tier,ws=tier" token. Tokens
// with an expiry in the past are rejected unless the expiry is negative.
func ParseToken(tokenStr string) (*TokenItem, error) {
	decoded, err := base64.StdEncoding.DecodeString(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s", InvalidToken)
	}
	parts := strings.Split(string(decoded), TokenDelim)
	if len(parts) != 3 || parts[0] == "" {
		klog.Errorf("invalid user token, current len: %d", len(parts))
		return nil, fmt.Errorf("%s", InvalidToken)
	}
	expire, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		klog.ErrorS(err, "failed to parse token expire", "user", parts[0], "expire", parts[1])
		return nil, fmt.Errorf("%s", InvalidToken)
	}
	if expire >= 0 && time.Now().Unix() > expire {
		return nil, fmt.Errorf("%s", TokenExpire)
	}

	grants := make(map[string]artifact.Permission)
	if parts[2] != "" {
		for _, grant := range strings.Split(parts[2], GrantDelim) {
			workspace, level, found := strings.Cut(grant, LevelDelim)
			if !found || workspace == "" {
				return nil, fmt.Errorf("%s", InvalidToken)
			}
			grants[workspace] = artifact.ParsePermission(level)
		}
	}
	return &TokenItem{
		UserId: parts[0],
		Expire: expire,
		Grants: grants,
	}, nil
}

// GenerateToken is the inverse of ParseToken.
func GenerateToken(item TokenItem) string {
	grants := make([]string, 0, len(item.Grants))
	for workspace, level := range item.Grants {
		grants = append(grants, workspace+LevelDelim+level.String())
	}
	plain := item.UserId + TokenDelim + strconv.FormatInt(item.Expire, 10) +
		TokenDelim + strings.Join(grants, GrantDelim)
	return base64.StdEncoding.EncodeToString([]byte(plain))
}
