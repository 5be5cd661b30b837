/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// SetValue sets a configuration value for the specified key.
func SetValue(key, value string) {
	viper.Set(key, value)
}

// LoadConfig loads configuration from the specified file path.
func LoadConfig(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	return viper.ReadInConfig()
}

func getString(key, defaultValue string) string {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetString(key)
}

func getBool(key string, defaultValue bool) bool {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetBool(key)
}

func getInt(key string, defaultValue int) int {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetInt(key)
}

func getStrings(key string) []string {
	val := viper.GetString(key)
	return removeBlank(strings.Split(val, ","))
}

func removeBlank(slice []string) []string {
	var result []string
	for _, val := range slice {
		if trim := strings.TrimSpace(val); trim != "" {
			result = append(result, trim)
		}
	}
	return result
}

func getFromFile(configPath, item string) string {
	path := getString(configPath, "")
	data, err := os.ReadFile(filepath.Join(path, item))
	if err != nil {
		return ""
	}
	key := string(data)
	return strings.TrimRight(key, "\r\n")
}

// GetServerPort returns the API server port.
func GetServerPort() int {
	return getInt(serverPort, 0)
}

// IsDBEnable returns whether the database is enabled.
func IsDBEnable() bool {
	return getBool(dbEnable, false)
}

// GetDBHost returns the database host address.
func GetDBHost() string {
	if host := getString(dbPrefix+"host", ""); host != "" {
		return host
	}
	return getFromFile(dbSecretPath, "host")
}

// GetDBPort returns the database port number.
func GetDBPort() int {
	if port := getInt(dbPrefix+"port", 0); port != 0 {
		return port
	}
	data := getFromFile(dbSecretPath, "port")
	n, err := strconv.Atoi(data)
	if err != nil {
		return 0
	}
	return n
}

// GetDBName returns the database name.
func GetDBName() string {
	if name := getString(dbPrefix+"dbname", ""); name != "" {
		return name
	}
	return getFromFile(dbSecretPath, "dbname")
}

// GetDBUser returns the database username.
func GetDBUser() string {
	if user := getString(dbPrefix+"user", ""); user != "" {
		return user
	}
	return getFromFile(dbSecretPath, "user")
}

// GetDBPassword returns the database password.
func GetDBPassword() string {
	if passwd := getString(dbPrefix+"password", ""); passwd != "" {
		return passwd
	}
	return getFromFile(dbSecretPath, "password")
}

// GetDBSslMode returns the database SSL mode.
func GetDBSslMode() string {
	return getString(dbSslMode, "require")
}

// GetDBMaxOpenConns returns the maximum number of open database connections.
func GetDBMaxOpenConns() int {
	return getInt(dbMaxOpenConns, 100)
}

// GetDBMaxIdleConns returns the maximum number of idle database connections.
func GetDBMaxIdleConns() int {
	return getInt(dbMaxIdleConns, 10)
}

// GetDBMaxLifetimeSecond returns the maximum lifetime of database connections in seconds.
func GetDBMaxLifetimeSecond() int {
	return getInt(dbMaxLifetime, 600)
}

// GetDBMaxIdleTimeSecond returns the maximum idle time of database connections in seconds.
func GetDBMaxIdleTimeSecond() int {
	return getInt(dbMaxIdleTimeSecond, 60)
}

// GetDBConnectTimeoutSecond returns the database connection timeout in seconds.
func GetDBConnectTimeoutSecond() int {
	return getInt(dbConnectTimeoutSecond, 10)
}

// GetDBRequestTimeoutSecond returns the database request timeout in seconds.
func GetDBRequestTimeoutSecond() int {
	return getInt(dbRequestTimeoutSecond, 20)
}

// IsS3Enable returns whether S3 storage is enabled.
func IsS3Enable() bool {
	return getBool(s3Enable, false)
}

// GetS3AccessKey returns the server-wide S3 access key.
func GetS3AccessKey() string {
	if key := getString(s3Prefix+"access_key", ""); key != "" {
		return key
	}
	return getFromFile(s3SecretPath, "access_key")
}

// GetS3SecretKey returns the server-wide S3 secret key.
func GetS3SecretKey() string {
	if key := getString(s3Prefix+"secret_key", ""); key != "" {
		return key
	}
	return getFromFile(s3SecretPath, "secret_key")
}

// GetS3Bucket returns the server-wide S3 bucket name.
func GetS3Bucket() string {
	if bucket := getString(s3Bucket, ""); bucket != "" {
		return bucket
	}
	return getFromFile(s3SecretPath, "bucket")
}

// GetS3Endpoint returns the S3 endpoint URL.
func GetS3Endpoint() string {
	if endpoint := getString(s3Endpoint, ""); endpoint != "" {
		return endpoint
	}
	return getFromFile(s3SecretPath, "endpoint")
}

// GetS3PublicEndpoint returns the externally reachable S3 endpoint used to
// rewrite presigned URLs. Empty means presigned URLs are returned as-is.
func GetS3PublicEndpoint() string {
	return getString(s3PublicEndpoint, "")
}

// GetS3Region returns the S3 region name.
func GetS3Region() string {
	return getString(s3Region, "us-east-1")
}

// GetS3RootPrefix returns the key prefix under which all workspace data lives.
func GetS3RootPrefix() string {
	return getString(s3RootPrefix, "")
}

// GetArtifactDir returns the directory segment for artifact keys inside a
// workspace prefix.
func GetArtifactDir() string {
	return getString(artifactDir, "artifacts")
}

// GetEphemeralWorkspaces returns workspaces that never persist data and
// therefore reject artifact creation.
func GetEphemeralWorkspaces() []string {
	return getStrings(workspaceEphemeral)
}

// IsVectorEnable returns whether the vector collection store is enabled.
func IsVectorEnable() bool {
	return getBool(vectorEnable, false)
}

// GetEmbeddingAPIKey returns the API key for the named embedding provider.
func GetEmbeddingAPIKey(provider string) string {
	if key := getString(embeddingPrefix+provider+".api_key", ""); key != "" {
		return key
	}
	return getFromFile(embeddingPrefix+provider+".secret_path", "api_key")
}

// GetEmbeddingBaseURL returns the endpoint override for the named embedding
// provider. Empty means the provider default.
func GetEmbeddingBaseURL(provider string) string {
	return getString(embeddingPrefix+provider+".base_url", "")
}

// IsUserTokenRequired returns whether a user token is required for API access.
func IsUserTokenRequired() bool {
	return getBool(userTokenRequired, true)
}
