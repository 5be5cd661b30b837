/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package s3

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	commonconfig "github.com/AMD-AIG-AIMA/artifact-manager/pkg/config"
)

// Credentials is a fully resolved connection target: endpoint, keys, bucket
// and the key prefix under which the caller may operate. PublicEndpoint, when
// set, replaces the endpoint host in presigned URLs handed to clients outside
// the cluster network.
type Credentials struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Region         string
	Bucket         string
	Prefix         string
}

// ServerCredentials returns the system-wide S3 credentials from configuration.
func ServerCredentials() (*Credentials, error) {
	if !commonconfig.IsS3Enable() {
		return nil, fmt.Errorf("s3 is disabled")
	}
	creds := &Credentials{
		Endpoint:       commonconfig.GetS3Endpoint(),
		PublicEndpoint: commonconfig.GetS3PublicEndpoint(),
		AccessKey:      commonconfig.GetS3AccessKey(),
		SecretKey:      commonconfig.GetS3SecretKey(),
		Region:         commonconfig.GetS3Region(),
		Bucket:         commonconfig.GetS3Bucket(),
		Prefix:         commonconfig.GetS3RootPrefix(),
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return creds, nil
}

// Validate checks that the credential set is complete.
func (c *Credentials) Validate() error {
	if c.AccessKey == "" {
		return fmt.Errorf("the s3 AccessKey is empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("the s3 SecretKey is empty")
	}
	if c.Endpoint == "" {
		return fmt.Errorf("the s3 endpoint is empty")
	}
	if c.Bucket == "" {
		return fmt.Errorf("the s3 bucket is empty")
	}
	return nil
}

// awsConfig builds the SDK configuration for this credential set.
func (c *Credentials) awsConfig(ctx context.Context) (aws.Config, error) {
	credProvider := credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")

	// Create HTTP client that skips TLS verification
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
	}

	endpoint := c.Endpoint
	return config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credProvider),
		config.WithHTTPClient(httpClient),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: endpoint,
				}, nil
			}),
		),
	)
}

// RewritePublicURL replaces the internal endpoint host of a presigned URL
// with the public endpoint. The signature stays valid because the host is
// not part of the signed payload for path-style requests.
func (c *Credentials) RewritePublicURL(rawURL string) string {
	if c.PublicEndpoint == "" {
		return rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	public, err := url.Parse(c.PublicEndpoint)
	if err != nil {
		return rawURL
	}
	parsed.Scheme = public.Scheme
	parsed.Host = public.Host
	return parsed.String()
}
