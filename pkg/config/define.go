/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package config

const (
	// server
	serverPrefix = "server."
	serverPort   = serverPrefix + "port"

	// db
	dbPrefix               = "db."
	dbEnable               = dbPrefix + "enable"
	dbSecretPath           = dbPrefix + "secret_path"
	dbSslMode              = dbPrefix + "ssl_mode"
	dbMaxOpenConns         = dbPrefix + "max_open_conns"
	dbMaxIdleConns         = dbPrefix + "max_idle_conns"
	dbMaxLifetime          = dbPrefix + "max_life_time_second"
	dbMaxIdleTimeSecond    = dbPrefix + "max_idle_time_second"
	dbConnectTimeoutSecond = dbPrefix + "connect_timeout_second"
	dbRequestTimeoutSecond = dbPrefix + "request_timeout_second"

	// s3
	s3Prefix         = "s3."
	s3Enable         = s3Prefix + "enable"
	s3SecretPath     = s3Prefix + "secret_path"
	s3Endpoint       = s3Prefix + "endpoint"
	s3PublicEndpoint = s3Prefix + "public_endpoint"
	s3Region         = s3Prefix + "region"
	s3Bucket         = s3Prefix + "bucket"
	s3RootPrefix     = s3Prefix + "prefix"

	// artifact
	artifactPrefix = "artifact."
	artifactDir    = artifactPrefix + "dir"

	// workspace
	workspacePrefix    = "workspace."
	workspaceEphemeral = workspacePrefix + "ephemeral"

	// vector
	vectorPrefix = "vector."
	vectorEnable = vectorPrefix + "enable"

	// embedding
	embeddingPrefix = "embedding."

	// user
	userPrefix        = "user."
	userTokenRequired = userPrefix + "token_required"
)
