/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const (
	DefaultTimeout = 180

	// DeleteObjects accepts at most 1000 keys per call.
	deleteBatchSize = 1000
)

// Client - S3 client structure that encapsulates the resolved credentials and
// the AWS S3 client. Clients are cheap to build; artifact-owned credentials
// get one per request.
type Client struct {
	creds     *Credentials
	s3Client  *s3.Client
	presigner *s3.PresignClient
}

// NewClient creates and returns a new Client instance using system-wide S3 settings.
func NewClient(ctx context.Context) (Interface, error) {
	creds, err := ServerCredentials()
	if err != nil {
		return nil, err
	}
	return NewClientFromCredentials(ctx, creds)
}

// NewClientFromCredentials creates and returns a new Client instance for the
// given credential set.
func NewClientFromCredentials(ctx context.Context, creds *Credentials) (Interface, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	cfg, err := creds.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &Client{
		creds:     creds,
		s3Client:  s3Client,
		presigner: s3.NewPresignClient(s3Client),
	}, nil
}

// Credentials returns the credential set the client was built from.
func (c *Client) Credentials() *Credentials {
	return c.creds
}

// PutObject upload object to S3 bucket.
func (c *Client) PutObject(ctx context.Context, key string, value []byte, timeout int64) error {
	if c == nil {
		return fmt.Errorf("please init client first")
	}
	if key == "" {
		return fmt.Errorf("the object key is empty")
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.creds.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(value),
	}
	timeoutCtx, cancel := WithOptionalTimeout(ctx, timeout)
	defer cancel()

	_, err := c.s3Client.PutObject(timeoutCtx, input)
	return err
}

// GetObject download object content from S3 bucket.
func (c *Client) GetObject(ctx context.Context, key string, timeout int64) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("please init client first")
	}
	if key == "" {
		return nil, fmt.Errorf("the object key is empty")
	}
	timeoutCtx, cancel := WithOptionalTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.s3Client.GetObject(timeoutCtx, &s3.GetObjectInput{
		Bucket: aws.String(c.creds.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// HeadObject checks that an object exists and returns its metadata.
func (c *Client) HeadObject(ctx context.Context, key string, timeout int64) (*FileInfo, error) {
	if c == nil {
		return nil, fmt.Errorf("please init client first")
	}
	timeoutCtx, cancel := WithOptionalTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.s3Client.HeadObject(timeoutCtx, &s3.HeadObjectInput{
		Bucket: aws.String(c.creds.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	info := &FileInfo{
		Name: key,
		Type: FileTypeFile,
	}
	if resp.ContentLength != nil {
		info.Size = *resp.ContentLength
	}
	if resp.LastModified != nil {
		info.LastModified = resp.LastModified.Unix()
	}
	return info, nil
}

// DeleteObject delete object from S3 bucket.
func (c *Client) DeleteObject(ctx context.Context, key string, timeout int64) error {
	if c == nil {
		return fmt.Errorf("please init client first")
	}
	if key == "" {
		return fmt.Errorf("the object key is empty")
	}
	timeoutCtx, cancel := WithOptionalTimeout(ctx, timeout)
	defer cancel()

	_, err := c.s3Client.DeleteObject(timeoutCtx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.creds.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// ListObjects lists the entries directly under prefix. Sub-prefixes are
// reported as directory entries; names are relative to prefix.
func (c *Client) ListObjects(ctx context.Context, prefix string, limit int) ([]*FileInfo, error) {
	if c == nil {
		return nil, fmt.Errorf("please init client first")
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.creds.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}
	paginator := s3.NewListObjectsV2Paginator(c.s3Client, input)

	var result []*FileInfo
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects with prefix %s: %w", prefix, err)
		}
		for _, dir := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(*dir.Prefix, prefix), "/")
			result = append(result, &FileInfo{Name: name, Type: FileTypeDirectory})
		}
		for _, obj := range page.Contents {
			key := *obj.Key
			if strings.HasSuffix(key, "/") {
				continue // skip directory markers
			}
			info := &FileInfo{
				Name: strings.TrimPrefix(key, prefix),
				Type: FileTypeFile,
			}
			if obj.Size != nil {
				info.Size = *obj.Size
			}
			if obj.LastModified != nil {
				info.LastModified = obj.LastModified.Unix()
			}
			result = append(result, info)
			if limit > 0 && len(result) >= limit {
				return result[:limit], nil
			}
		}
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CountObjects counts all objects under prefix, recursively.
func (c *Client) CountObjects(ctx context.Context, prefix string) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("please init client first")
	}
	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.creds.Bucket),
		Prefix: aws.String(prefix),
	})
	count := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		for _, obj := range page.Contents {
			if !strings.HasSuffix(*obj.Key, "/") {
				count++
			}
		}
	}
	return count, nil
}

// RemovePrefix deletes every object under prefix in batches.
func (c *Client) RemovePrefix(ctx context.Context, prefix string) error {
	if c == nil {
		return fmt.Errorf("please init client first")
	}
	if prefix == "" {
		return fmt.Errorf("the prefix is empty")
	}
	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.creds.Bucket),
		Prefix: aws.String(prefix),
	})
	var batch []types.ObjectIdentifier
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := c.s3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.creds.Bucket),
			Delete: &types.Delete{Objects: batch},
		})
		batch = batch[:0]
		return err
	}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list objects with prefix %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			batch = append(batch, types.ObjectIdentifier{Key: obj.Key})
			if len(batch) >= deleteBatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}
	return flush()
}

// PresignGetObject generates a presigned download URL.
func (c *Client) PresignGetObject(ctx context.Context, key string, expire time.Duration) (string, error) {
	resp, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.creds.Bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = expire
	})
	if err != nil {
		return "", err
	}
	return c.creds.RewritePublicURL(resp.URL), nil
}

// PresignPutObject generates a presigned upload URL.
func (c *Client) PresignPutObject(ctx context.Context, key string, expire time.Duration) (string, error) {
	resp, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.creds.Bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = expire
	})
	if err != nil {
		return "", err
	}
	return c.creds.RewritePublicURL(resp.URL), nil
}

// IsNotFound reports whether an error is an S3 missing-key response.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}

// WithOptionalTimeout add optional timeout to context.
func WithOptionalTimeout(parent context.Context, timeout int64) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return parent, func() {}
	}
	return context.WithTimeout(parent, time.Duration(timeout)*time.Second)
}
