// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package vector

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"k8s.io/klog/v2"

	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
)

// payloadKeyPattern bounds payload filter keys; values travel as bound
// parameters.
var payloadKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store keeps vector collections in Postgres through pgvector.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on the given gorm handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the pgvector extension and the backing tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).AutoMigrate(&Collection{}, &Point{})
}

// CreateCollection registers a new collection.
func (s *Store) CreateCollection(ctx context.Context, name string, size int, distance string) error {
	if size <= 0 {
		return commonerrors.NewBadRequest(fmt.Sprintf("invalid vector size: %d", size))
	}
	switch distance {
	case DistanceCosine, DistanceEuclid, DistanceDot:
	default:
		return commonerrors.NewBadRequest(fmt.Sprintf("invalid distance metric: %q", distance))
	}
	collection := &Collection{
		Name:      name,
		Size:      size,
		Distance:  distance,
		CreatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(collection).Error
	if err != nil {
		klog.ErrorS(err, "failed to create vector collection", "name", name)
	}
	return err
}

// DeleteCollection removes a collection and all of its points. Missing
// collections are ignored.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	collection, err := s.getCollection(ctx, name)
	if err != nil {
		return commonerrors.IgnoreFound(err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", collection.Id).Delete(&Point{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Collection{}, collection.Id).Error
	})
}

// Upsert writes points into a collection, replacing points with the same id.
func (s *Store) Upsert(ctx context.Context, name string, points []*PointStruct) error {
	collection, err := s.getCollection(ctx, name)
	if err != nil {
		return err
	}
	rows := make([]*Point, 0, len(points))
	for _, p := range points {
		if len(p.Vector) != collection.Size {
			return commonerrors.NewBadRequest(fmt.Sprintf(
				"vector size mismatch for point %s: got %d, collection expects %d",
				p.Id, len(p.Vector), collection.Size))
		}
		payload, err := json.Marshal(p.Payload)
		if err != nil {
			return commonerrors.NewBadRequest(fmt.Sprintf("invalid payload for point %s: %v", p.Id, err))
		}
		rows = append(rows, &Point{
			CollectionId: collection.Id,
			PointId:      p.Id,
			Embedding:    pgvector.NewVector(p.Vector),
			Payload:      payload,
			UpdatedAt:    time.Now().UTC(),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_id"}, {Name: "point_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "payload", "updated_at"}),
		}).
		Create(rows).Error
	if err != nil {
		klog.ErrorS(err, "failed to upsert vector points", "collection", name, "count", len(rows))
	}
	return err
}

// Retrieve fetches points by id.
func (s *Store) Retrieve(ctx context.Context, name string, ids []string, withPayload, withVectors bool) ([]*ScoredPoint, error) {
	collection, err := s.getCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	var rows []*Point
	err = s.db.WithContext(ctx).
		Where("collection_id = ? AND point_id IN ?", collection.Id, ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return convertPoints(rows, withPayload, withVectors)
}

// Scroll pages through the points of a collection, optionally filtered by
// payload equality.
func (s *Store) Scroll(ctx context.Context, name string, filter map[string]interface{}, offset, limit int, withPayload, withVectors bool) ([]*ScoredPoint, error) {
	collection, err := s.getCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Where("collection_id = ?", collection.Id)
	query, err = applyPayloadFilter(query, filter)
	if err != nil {
		return nil, err
	}
	var rows []*Point
	err = query.Order("point_id").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return convertPoints(rows, withPayload, withVectors)
}

type searchRow struct {
	PointId   string
	Payload   []byte
	Embedding pgvector.Vector
	Score     float64
}

// Search runs a similarity query against a collection. Cosine scores are
// similarities in [0,1]; Euclid scores are distances; Dot scores are inner
// products.
func (s *Store) Search(ctx context.Context, name string, queryVector []float32, filter map[string]interface{}, offset, limit int, withPayload, withVectors bool) ([]*ScoredPoint, error) {
	collection, err := s.getCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(queryVector) != collection.Size {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf(
			"query vector size mismatch: got %d, collection expects %d", len(queryVector), collection.Size))
	}

	var operator, scoreExpr string
	switch collection.Distance {
	case DistanceEuclid:
		operator, scoreExpr = "<->", "embedding <-> ?"
	case DistanceDot:
		operator, scoreExpr = "<#>", "-(embedding <#> ?)"
	default:
		operator, scoreExpr = "<=>", "1 - (embedding <=> ?)"
	}

	filterSQL, filterArgs, err := payloadFilterSQL(filter)
	if err != nil {
		return nil, err
	}

	// Raw SQL for proper pgvector operator handling.
	vectorStr := pgvector.NewVector(queryVector).String()
	sql := fmt.Sprintf(`SELECT point_id, payload, embedding, %s as score
		FROM vector_point
		WHERE collection_id = ?%s
		ORDER BY embedding %s ?
		LIMIT ? OFFSET ?`, scoreExpr, filterSQL, operator)
	args := []interface{}{vectorStr, collection.Id}
	args = append(args, filterArgs...)
	args = append(args, vectorStr, limit, offset)

	var rows []*searchRow
	err = s.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	if err != nil {
		klog.ErrorS(err, "failed to search vector points", "collection", name)
		return nil, err
	}

	result := make([]*ScoredPoint, 0, len(rows))
	for _, row := range rows {
		point := &ScoredPoint{Id: row.PointId, Score: row.Score}
		if withPayload && len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &point.Payload); err != nil {
				return nil, err
			}
		}
		if withVectors {
			point.Vector = row.Embedding.Slice()
		}
		result = append(result, point)
	}
	return result, nil
}

// DeletePoints removes points by id. Missing ids are ignored.
func (s *Store) DeletePoints(ctx context.Context, name string, ids []string) error {
	collection, err := s.getCollection(ctx, name)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("collection_id = ? AND point_id IN ?", collection.Id, ids).
		Delete(&Point{}).Error
}

// Count returns the number of points in a collection.
func (s *Store) Count(ctx context.Context, name string) (int64, error) {
	collection, err := s.getCollection(ctx, name)
	if err != nil {
		return 0, err
	}
	var count int64
	err = s.db.WithContext(ctx).Model(&Point{}).
		Where("collection_id = ?", collection.Id).
		Count(&count).Error
	return count, err
}

func (s *Store) getCollection(ctx context.Context, name string) (*Collection, error) {
	var collection Collection
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&collection).Error
	if err == gorm.ErrRecordNotFound {
		return nil, commonerrors.NewNotFound("Collection", name)
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func applyPayloadFilter(query *gorm.DB, filter map[string]interface{}) (*gorm.DB, error) {
	for key, value := range filter {
		if !payloadKeyPattern.MatchString(key) {
			return nil, commonerrors.NewBadRequest(fmt.Sprintf("invalid payload filter key: %q", key))
		}
		query = query.Where(fmt.Sprintf("payload->>'%s' = ?", key), fmt.Sprintf("%v", value))
	}
	return query, nil
}

func payloadFilterSQL(filter map[string]interface{}) (string, []interface{}, error) {
	sql := ""
	var args []interface{}
	for key, value := range filter {
		if !payloadKeyPattern.MatchString(key) {
			return "", nil, commonerrors.NewBadRequest(fmt.Sprintf("invalid payload filter key: %q", key))
		}
		sql += fmt.Sprintf(" AND payload->>'%s' = ?", key)
		args = append(args, fmt.Sprintf("%v", value))
	}
	return sql, args, nil
}

func convertPoints(rows []*Point, withPayload, withVectors bool) ([]*ScoredPoint, error) {
	result := make([]*ScoredPoint, 0, len(rows))
	for _, row := range rows {
		point := &ScoredPoint{Id: row.PointId}
		if withPayload && len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &point.Payload); err != nil {
				return nil, err
			}
		}
		if withVectors {
			point.Vector = row.Embedding.Slice()
		}
		result = append(result, point)
	}
	return result, nil
}
