// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package zenodo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// BaseURL is the production deposition endpoint.
	BaseURL = "https://zenodo.org"
	// SandboxBaseURL is the sandbox deposition endpoint.
	SandboxBaseURL = "https://sandbox.zenodo.org"
)

// Deposition is the raw deposition document as returned by the API.
type Deposition = map[string]interface{}

// Client talks to a Zenodo-compatible deposition API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a deposition client for the given endpoint and token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: 5 * time.Minute, // file imports stream through this client
		},
	}
}

// CreateDeposition creates an empty deposition.
func (c *Client) CreateDeposition(ctx context.Context) (Deposition, error) {
	return c.doJSON(ctx, http.MethodPost, c.baseURL+"/api/deposit/depositions", map[string]interface{}{})
}

// GetDeposition loads an existing deposition.
func (c *Client) GetDeposition(ctx context.Context, depositionId string) (Deposition, error) {
	return c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/api/deposit/depositions/%s", c.baseURL, depositionId), nil)
}

// UpdateMetadata rewrites the metadata of a deposition.
func (c *Client) UpdateMetadata(ctx context.Context, deposition Deposition, metadata map[string]interface{}) (Deposition, error) {
	id, err := depositionId(deposition)
	if err != nil {
		return nil, err
	}
	return c.doJSON(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/deposit/depositions/%s", c.baseURL, id),
		map[string]interface{}{"metadata": metadata})
}

// ImportFile streams the content behind sourceURL into the deposition bucket
// under the given name. The source is typically a presigned download URL.
func (c *Client) ImportFile(ctx context.Context, deposition Deposition, name, sourceURL string) error {
	bucket, err := depositionLink(deposition, "bucket")
	if err != nil {
		return err
	}

	srcReq, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return err
	}
	srcResp, err := c.client.Do(srcReq)
	if err != nil {
		return fmt.Errorf("failed to fetch source file %s: %w", name, err)
	}
	defer srcResp.Body.Close()
	if srcResp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch source file %s: status %d", name, srcResp.StatusCode)
	}

	target := fmt.Sprintf("%s/%s", bucket, url.PathEscape(name))
	putReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.withToken(target), srcResp.Body)
	if err != nil {
		return err
	}
	if srcResp.ContentLength >= 0 {
		putReq.ContentLength = srcResp.ContentLength
	}
	putResp, err := c.client.Do(putReq)
	if err != nil {
		return fmt.Errorf("failed to import file %s: %w", name, err)
	}
	defer putResp.Body.Close()
	if putResp.StatusCode < 200 || putResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(putResp.Body, 4096))
		return fmt.Errorf("failed to import file %s: status %d: %s", name, putResp.StatusCode, string(body))
	}
	return nil
}

// Publish publishes the deposition and returns the resulting record.
func (c *Client) Publish(ctx context.Context, deposition Deposition) (Deposition, error) {
	id, err := depositionId(deposition)
	if err != nil {
		return nil, err
	}
	return c.doJSON(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/deposit/depositions/%s/actions/publish", c.baseURL, id), nil)
}

func (c *Client) doJSON(ctx context.Context, method, rawURL string, payload interface{}) (Deposition, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.withToken(rawURL), body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("deposition API error (status %d): %s", resp.StatusCode, string(raw))
	}
	var result Deposition
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deposition response: %w", err)
		}
	}
	return result, nil
}

func (c *Client) withToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("access_token", c.token)
	u.RawQuery = q.Encode()
	return u.String()
}

func depositionId(deposition Deposition) (string, error) {
	switch id := deposition["id"].(type) {
	case string:
		return id, nil
	case float64:
		return fmt.Sprintf("%.0f", id), nil
	default:
		return "", fmt.Errorf("deposition has no id")
	}
}

func depositionLink(deposition Deposition, name string) (string, error) {
	links, ok := deposition["links"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("deposition has no links")
	}
	link, ok := links[name].(string)
	if !ok {
		return "", fmt.Errorf("deposition has no %s link", name)
	}
	return link, nil
}
