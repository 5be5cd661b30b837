/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package middle

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/artifact"
)

func TestTokenRoundTrip(t *testing.T) {
	item := TokenItem{
		UserId: "alice",
		Expire: time.Now().Add(time.Hour).Unix(),
		Grants: map[string]artifact.Permission{
			"ws-a": artifact.PermissionReadWrite,
			"*":    artifact.PermissionRead,
		},
	}
	parsed, err := ParseToken(GenerateToken(item))
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.UserId)
	assert.Equal(t, item.Expire, parsed.Expire)
	assert.Equal(t, artifact.PermissionReadWrite, parsed.Grants["ws-a"])
	assert.Equal(t, artifact.PermissionRead, parsed.Grants["*"])
}

func TestTokenWithoutGrants(t *testing.T) {
	parsed, err := ParseToken(GenerateToken(TokenItem{UserId: "bob", Expire: -1}))
	require.NoError(t, err)
	assert.Equal(t, "bob", parsed.UserId)
	assert.Empty(t, parsed.Grants)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token := GenerateToken(TokenItem{
		UserId: "alice",
		Expire: time.Now().Add(-time.Hour).Unix(),
	})
	_, err := ParseToken(token)
	require.Error(t, err)
	assert.Equal(t, TokenExpire, err.Error())
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not base64 at all!!!")
	require.Error(t, err)

	// valid base64, wrong shape
	_, err = ParseToken(base64.StdEncoding.EncodeToString([]byte("alice")))
	require.Error(t, err)

	_, err = ParseToken(base64.StdEncoding.EncodeToString([]byte("alice:notanumber:ws=read")))
	require.Error(t, err)

	_, err = ParseToken(base64.StdEncoding.EncodeToString([]byte(":-1:ws=read")))
	require.Error(t, err)

	_, err = ParseToken(base64.StdEncoding.EncodeToString([]byte("alice:-1:noequalsign")))
	require.Error(t, err)
}
