/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/vector"
)

// SearchRequest is the input of SearchByVector and SearchByText. Exactly one
// of QueryVector and QueryText is used depending on the operation.
type SearchRequest struct {
	ArtifactId  string
	QueryVector []float32
	QueryText   string
	Filter      map[string]interface{}
	Offset      int
	Limit       int
	WithPayload bool
	WithVectors bool
	Pagination  bool
}

// SearchResult is one page of scored points. Total is -1 unless the request
// asked for pagination.
type SearchResult struct {
	Items  []*vector.ScoredPoint `json:"items"`
	Total  int                   `json:"total"`
	Offset int                   `json:"offset"`
	Limit  int                   `json:"limit"`
}

// AddVectors upserts points into a vector collection. Points without an id
// get a generated one.
func (m *Manager) AddVectors(ctx context.Context, rc *RequestContext, artifactId string, points []*vector.PointStruct) error {
	if err := checkContext(rc); err != nil {
		return err
	}
	artifact, err := m.vectorCollectionFor(ctx, rc, artifactId, OpAddVectors)
	if err != nil {
		return err
	}
	if len(artifact.Manifest) == 0 {
		return commonerrors.NewPreconditionFailed("the artifact must be committed before adding vectors")
	}
	for _, point := range points {
		if point.Id == "" {
			point.Id = uuid.NewString()
		}
	}
	if err := m.vectors.Upsert(ctx, collectionName(artifact), points); err != nil {
		return err
	}
	klog.Infof("upserted %d vectors to artifact %s", len(points), artifact.Id)
	return nil
}

// AddDocuments embeds document texts and upserts them as points. The
// documents become the point payloads.
func (m *Manager) AddDocuments(ctx context.Context, rc *RequestContext, artifactId string, documents []map[string]interface{}) error {
	if err := checkContext(rc); err != nil {
		return err
	}
	artifact, err := m.vectorCollectionFor(ctx, rc, artifactId, OpAddDocuments)
	if err != nil {
		return err
	}
	texts := make([]string, 0, len(documents))
	for _, document := range documents {
		text, ok := document["text"].(string)
		if !ok || text == "" {
			return commonerrors.NewBadRequest("every document must carry a non-empty 'text' field")
		}
		texts = append(texts, text)
	}
	embeddings, err := m.embedTexts(ctx, artifact, texts)
	if err != nil {
		return err
	}
	points := make([]*vector.PointStruct, 0, len(documents))
	for i, document := range documents {
		id, _ := document["id"].(string)
		if id == "" {
			id = uuid.NewString()
		}
		points = append(points, &vector.PointStruct{
			Id:      id,
			Vector:  embeddings[i],
			Payload: document,
		})
	}
	if err := m.vectors.Upsert(ctx, collectionName(artifact), points); err != nil {
		return err
	}
	klog.Infof("upserted %d documents to artifact %s", len(points), artifact.Id)
	return nil
}

// SearchByVector runs a similarity search with an explicit query vector.
func (m *Manager) SearchByVector(ctx context.Context, rc *RequestContext, req *SearchRequest) (*SearchResult, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	artifact, err := m.vectorCollectionFor(ctx, rc, req.ArtifactId, OpSearchByVector)
	if err != nil {
		return nil, err
	}
	return m.search(ctx, artifact, req.QueryVector, req)
}

// SearchByText embeds the query text and runs a similarity search.
func (m *Manager) SearchByText(ctx context.Context, rc *RequestContext, req *SearchRequest) (*SearchResult, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	artifact, err := m.vectorCollectionFor(ctx, rc, req.ArtifactId, OpSearchByText)
	if err != nil {
		return nil, err
	}
	embeddings, err := m.embedTexts(ctx, artifact, []string{req.QueryText})
	if err != nil {
		return nil, err
	}
	return m.search(ctx, artifact, embeddings[0], req)
}

// RemoveVectors deletes points by id.
func (m *Manager) RemoveVectors(ctx context.Context, rc *RequestContext, artifactId string, ids []string) error {
	if err := checkContext(rc); err != nil {
		return err
	}
	artifact, err := m.vectorCollectionFor(ctx, rc, artifactId, OpRemoveVectors)
	if err != nil {
		return err
	}
	if err := m.vectors.DeletePoints(ctx, collectionName(artifact), ids); err != nil {
		return err
	}
	klog.Infof("removed %d vectors from artifact %s", len(ids), artifact.Id)
	return nil
}

// GetVector fetches a single point with payload and vector.
func (m *Manager) GetVector(ctx context.Context, rc *RequestContext, artifactId, id string) (*vector.ScoredPoint, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	artifact, err := m.vectorCollectionFor(ctx, rc, artifactId, OpGetVector)
	if err != nil {
		return nil, err
	}
	points, err := m.vectors.Retrieve(ctx, collectionName(artifact), []string{id}, true, true)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, commonerrors.NewNotFoundWithMessage("vector " + id + " not found")
	}
	return points[0], nil
}

// ListVectors pages through the points of a collection.
func (m *Manager) ListVectors(ctx context.Context, rc *RequestContext, artifactId string, filter map[string]interface{}, offset, limit int, withPayload, withVectors bool) ([]*vector.ScoredPoint, error) {
	if err := checkContext(rc); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	artifact, err := m.vectorCollectionFor(ctx, rc, artifactId, OpListVectors)
	if err != nil {
		return nil, err
	}
	return m.vectors.Scroll(ctx, collectionName(artifact), filter, offset, limit, withPayload, withVectors)
}

func (m *Manager) search(ctx context.Context, artifact *client.Artifact, queryVector []float32, req *SearchRequest) (*SearchResult, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	items, err := m.vectors.Search(ctx, collectionName(artifact), queryVector,
		req.Filter, req.Offset, limit, req.WithPayload, req.WithVectors)
	if err != nil {
		return nil, err
	}
	result := &SearchResult{Items: items, Total: -1, Offset: req.Offset, Limit: limit}
	if req.Pagination {
		total, err := m.vectors.Count(ctx, collectionName(artifact))
		if err != nil {
			return nil, err
		}
		result.Total = int(total)
	}
	return result, nil
}

// vectorCollectionFor loads an artifact, checks the operation and that the
// artifact backs a vector collection.
func (m *Manager) vectorCollectionFor(ctx context.Context, rc *RequestContext, artifactId, operation string) (*client.Artifact, error) {
	sess, err := m.db.BeginSession(ctx, true)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	artifact, _, err := m.getArtifactWithPermission(ctx, sess, rc, artifactId, operation)
	if err != nil {
		return nil, err
	}
	if err := m.requireVectorCollection(artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

// embedTexts runs the embedding model declared by the collection config.
func (m *Manager) embedTexts(ctx context.Context, artifact *client.Artifact, texts []string) ([][]float32, error) {
	if m.embeddings == nil {
		return nil, commonerrors.NewInternalError("the embedding service is not configured")
	}
	config, err := artifact.ConfigMap()
	if err != nil {
		return nil, err
	}
	model, _ := config["embedding_model"].(string)
	if model == "" {
		return nil, commonerrors.NewBadRequest(
			"the embedding model must be configured, e.g. 'openai:text-embedding-3-small'")
	}
	return m.embeddings.EmbedTexts(ctx, model, texts)
}
