// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package vector

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Distance metrics supported by the store. Names follow the public API
// contract; each maps to a pgvector operator.
const (
	DistanceCosine = "Cosine"
	DistanceEuclid = "Euclid"
	DistanceDot    = "Dot"
)

// Collection registers one named vector collection and its geometry.
type Collection struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;uniqueIndex;size:255"`
	Size      int       `gorm:"column:size"`
	Distance  string    `gorm:"column:distance;size:32"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Collection) TableName() string {
	return "vector_collection"
}

// Point is one stored vector with its JSON payload.
type Point struct {
	Id           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionId int64           `gorm:"column:collection_id;uniqueIndex:idx_collection_point"`
	PointId      string          `gorm:"column:point_id;uniqueIndex:idx_collection_point;size:64"`
	Embedding    pgvector.Vector `gorm:"column:embedding;type:vector"`
	Payload      []byte          `gorm:"column:payload;type:jsonb"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (Point) TableName() string {
	return "vector_point"
}

// PointStruct is the API-facing form of a point.
type PointStruct struct {
	Id      string                 `json:"id"`
	Vector  []float32              `json:"vector,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ScoredPoint is a point returned from retrieval or search. Score is only
// meaningful for Search results.
type ScoredPoint struct {
	Id      string                 `json:"id"`
	Score   float64                `json:"score,omitempty"`
	Vector  []float32              `json:"vector,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
