/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package artifact

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	commonconfig "github.com/AMD-AIG-AIMA/artifact-manager/pkg/config"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/embedding"
	commonerrors "github.com/AMD-AIG-AIMA/artifact-manager/pkg/errors"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/s3"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/vector"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/zenodo"
)

// Artifact type names with special behavior.
const (
	TypeGeneric          = "generic"
	TypeCollection       = "collection"
	TypeVectorCollection = "vector-collection"
)

const presignExpireSeconds = 3600

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// depositionAPI is the slice of the Zenodo client the publish flow needs.
type depositionAPI interface {
	CreateDeposition(ctx context.Context) (zenodo.Deposition, error)
	UpdateMetadata(ctx context.Context, deposition zenodo.Deposition, metadata map[string]interface{}) (zenodo.Deposition, error)
	ImportFile(ctx context.Context, deposition zenodo.Deposition, name, sourceURL string) error
	Publish(ctx context.Context, deposition zenodo.Deposition) (zenodo.Deposition, error)
}

// Manager implements the artifact lifecycle over the metadata database, the
// blob store and the vector store.
type Manager struct {
	db           *client.Client
	dialect      client.Dialect
	serverCreds  *s3.Credentials
	vectors      *vector.Store
	embeddings   *embedding.Service
	workspaces   WorkspaceProvider
	artifactsDir string

	// Factory seams; tests swap these for fakes.
	s3Factory     func(ctx context.Context, creds *s3.Credentials) (s3.Interface, error)
	zenodoFactory func(baseURL, token string) depositionAPI
}

// Options configures a Manager. DB is required; the rest default from
// system configuration.
type Options struct {
	DB           *client.Client
	Dialect      client.Dialect
	ServerS3     *s3.Credentials
	Vectors      *vector.Store
	Embeddings   *embedding.Service
	Workspaces   WorkspaceProvider
	ArtifactsDir string
}

// NewManager builds a Manager from options.
func NewManager(opts Options) (*Manager, error) {
	if opts.DB == nil {
		return nil, commonerrors.NewInternalError("the database client is required")
	}
	if opts.Dialect == "" {
		opts.Dialect = client.DialectPostgres
	}
	if opts.Workspaces == nil {
		opts.Workspaces = NewConfigWorkspaceProvider()
	}
	if opts.ArtifactsDir == "" {
		opts.ArtifactsDir = commonconfig.GetArtifactDir()
	}
	return &Manager{
		db:           opts.DB,
		dialect:      opts.Dialect,
		serverCreds:  opts.ServerS3,
		vectors:      opts.Vectors,
		embeddings:   opts.Embeddings,
		workspaces:   opts.Workspaces,
		artifactsDir: opts.ArtifactsDir,
		s3Factory:    s3.NewClientFromCredentials,
		zenodoFactory: func(baseURL, token string) depositionAPI {
			return zenodo.NewClient(baseURL, token)
		},
	}, nil
}

// resolveRef normalizes an artifact reference. A bare alias is scoped to the
// context workspace; a full reference is either a row id or workspace/alias.
func resolveRef(ref, workspace string) (string, error) {
	if ref == "" {
		return "", commonerrors.NewBadRequest("the artifact id is empty")
	}
	if uuidPattern.MatchString(ref) {
		return ref, nil
	}
	if strings.Contains(ref, "/") {
		if len(strings.Split(ref, "/")) != 2 {
			return "", commonerrors.NewBadRequest(
				fmt.Sprintf("invalid artifact id %q, expected workspace/alias", ref))
		}
		return ref, nil
	}
	if workspace == "" {
		return "", commonerrors.NewBadRequest("the context workspace is empty")
	}
	return workspace + "/" + ref, nil
}

// getArtifact loads an artifact row by a normalized reference.
func (m *Manager) getArtifact(ctx context.Context, sess *client.Session, ref string) (*client.Artifact, error) {
	if uuidPattern.MatchString(ref) {
		return sess.GetArtifact(ctx, ref)
	}
	parts := strings.SplitN(ref, "/", 2)
	return sess.GetArtifactByAlias(ctx, parts[0], parts[1])
}

// getArtifactWithParent loads an artifact and, when present, its parent.
// A dangling parent reference yields a nil parent rather than an error.
func (m *Manager) getArtifactWithParent(ctx context.Context, sess *client.Session, ref string) (*client.Artifact, *client.Artifact, error) {
	artifact, err := m.getArtifact(ctx, sess, ref)
	if err != nil {
		return nil, nil, err
	}
	var parent *client.Artifact
	if artifact.ParentId.Valid && artifact.ParentId.String != "" {
		parent, err = sess.GetArtifact(ctx, artifact.ParentId.String)
		if err != nil {
			if !commonerrors.IsNotFound(err) {
				return nil, nil, err
			}
			parent = nil
		}
	}
	return artifact, parent, nil
}

// getArtifactWithPermission loads an artifact and verifies the caller may
// run the operation on it. The artifact-local permission table is consulted
// first, then the caller's workspace tier.
func (m *Manager) getArtifactWithPermission(ctx context.Context, sess *client.Session, rc *RequestContext, ref, operation string) (*client.Artifact, *client.Artifact, error) {
	level, err := requiredLevel(operation)
	if err != nil {
		return nil, nil, err
	}
	normalized, err := resolveRef(ref, rc.Workspace)
	if err != nil {
		return nil, nil, err
	}
	artifact, parent, err := m.getArtifactWithParent(ctx, sess, normalized)
	if err != nil {
		return nil, nil, err
	}
	config, err := artifact.ConfigMap()
	if err != nil {
		return nil, nil, err
	}
	if checkArtifactPermissions(config, rc.User, operation) {
		return artifact, parent, nil
	}
	if rc.User.CheckPermission(artifact.Workspace, level) {
		return artifact, parent, nil
	}
	return nil, nil, commonerrors.NewForbidden(
		fmt.Sprintf("user does not have permission to perform %q on the artifact", operation))
}

// generateArtifactData renders the external view of an artifact row. The id
// is the workspace/alias form, the row id moves to _id, parent references
// are rendered the same way and secrets never leave the server.
func generateArtifactData(artifact, parent *client.Artifact) map[string]interface{} {
	data := map[string]interface{}{
		"id":             artifact.Workspace + "/" + nullString(artifact.Alias),
		"_id":            artifact.Id,
		"workspace":      artifact.Workspace,
		"alias":          nullString(artifact.Alias),
		"type":           artifact.Type,
		"download_count": artifact.DownloadCount,
		"view_count":     artifact.ViewCount,
		"file_count":     artifact.FileCount,
		"created_at":     artifact.CreatedAt,
		"created_by":     nullString(artifact.CreatedBy),
		"last_modified":  artifact.LastModified,
	}
	if parent != nil {
		data["parent_id"] = parent.Workspace + "/" + nullString(parent.Alias)
	} else if artifact.ParentId.Valid {
		data["parent_id"] = artifact.ParentId.String
	} else {
		data["parent_id"] = nil
	}
	data["manifest"] = decodeOrNil(artifact.Manifest)
	data["config"] = decodeOrNil(artifact.Config)
	data["versions"] = decodeOrNil(artifact.Versions)
	data["staging"] = decodeOrNil(artifact.Staging)
	return data
}

func decodeOrNil(raw []byte) interface{} {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return value
}

func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// artifactDocument is the JSON form of an artifact row used for version
// snapshots in the blob store.
type artifactDocument struct {
	Id            string          `json:"id"`
	Workspace     string          `json:"workspace"`
	ParentId      *string         `json:"parent_id"`
	Alias         *string         `json:"alias"`
	Type          string          `json:"type"`
	Manifest      json.RawMessage `json:"manifest,omitempty"`
	Staging       json.RawMessage `json:"staging,omitempty"`
	Config        json.RawMessage `json:"config,omitempty"`
	Secrets       json.RawMessage `json:"secrets,omitempty"`
	Versions      json.RawMessage `json:"versions,omitempty"`
	DownloadCount float64         `json:"download_count"`
	ViewCount     float64         `json:"view_count"`
	FileCount     int             `json:"file_count"`
	CreatedAt     int64           `json:"created_at"`
	CreatedBy     *string         `json:"created_by"`
	LastModified  int64           `json:"last_modified"`
}

func documentFromRow(a *client.Artifact) *artifactDocument {
	doc := &artifactDocument{
		Id:            a.Id,
		Workspace:     a.Workspace,
		Type:          a.Type,
		Manifest:      json.RawMessage(a.Manifest),
		Staging:       json.RawMessage(a.Staging),
		Config:        json.RawMessage(a.Config),
		Secrets:       json.RawMessage(a.Secrets),
		Versions:      json.RawMessage(a.Versions),
		DownloadCount: a.DownloadCount,
		ViewCount:     a.ViewCount,
		FileCount:     a.FileCount,
		CreatedAt:     a.CreatedAt,
		LastModified:  a.LastModified,
	}
	if a.ParentId.Valid {
		parentId := a.ParentId.String
		doc.ParentId = &parentId
	}
	if a.Alias.Valid {
		alias := a.Alias.String
		doc.Alias = &alias
	}
	if a.CreatedBy.Valid {
		createdBy := a.CreatedBy.String
		doc.CreatedBy = &createdBy
	}
	return doc
}

func rowFromDocument(doc *artifactDocument) *client.Artifact {
	a := &client.Artifact{
		Id:            doc.Id,
		Workspace:     doc.Workspace,
		Type:          doc.Type,
		Manifest:      []byte(doc.Manifest),
		Staging:       []byte(doc.Staging),
		Config:        []byte(doc.Config),
		Secrets:       []byte(doc.Secrets),
		Versions:      []byte(doc.Versions),
		DownloadCount: doc.DownloadCount,
		ViewCount:     doc.ViewCount,
		FileCount:     doc.FileCount,
		CreatedAt:     doc.CreatedAt,
		LastModified:  doc.LastModified,
	}
	if doc.ParentId != nil {
		a.ParentId = sql.NullString{String: *doc.ParentId, Valid: true}
	}
	if doc.Alias != nil {
		a.Alias = sql.NullString{String: *doc.Alias, Valid: true}
	}
	if doc.CreatedBy != nil {
		a.CreatedBy = sql.NullString{String: *doc.CreatedBy, Valid: true}
	}
	return a
}

// resolveS3Credentials picks the blob store target for an artifact. Secrets
// merge parent-first so an artifact can override its collection. An artifact
// carrying its own access keys owns its storage; otherwise the server
// credentials and bucket apply.
func (m *Manager) resolveS3Credentials(artifact, parent *client.Artifact) (*s3.Credentials, error) {
	secrets, err := mergedSecrets(artifact, parent)
	if err != nil {
		return nil, err
	}
	accessKey := secretString(secrets, "S3_ACCESS_KEY_ID")
	secretKey := secretString(secrets, "S3_SECRET_ACCESS_KEY")
	if accessKey == "" || secretKey == "" {
		if m.serverCreds == nil {
			return nil, commonerrors.NewInternalError("s3 storage is not configured")
		}
		creds := *m.serverCreds
		return &creds, nil
	}
	bucket := secretString(secrets, "S3_BUCKET")
	if bucket == "" && m.serverCreds != nil {
		bucket = m.serverCreds.Bucket
	}
	creds := &s3.Credentials{
		Endpoint:       secretString(secrets, "S3_ENDPOINT_URL"),
		PublicEndpoint: secretString(secrets, "S3_PUBLIC_ENDPOINT_URL"),
		AccessKey:      accessKey,
		SecretKey:      secretKey,
		Region:         secretString(secrets, "S3_REGION_NAME"),
		Bucket:         bucket,
		Prefix:         secretString(secrets, "S3_PREFIX"),
	}
	if err := creds.Validate(); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	return creds, nil
}

func (m *Manager) s3ClientFor(ctx context.Context, artifact, parent *client.Artifact) (s3.Interface, *s3.Credentials, error) {
	creds, err := m.resolveS3Credentials(artifact, parent)
	if err != nil {
		return nil, nil, err
	}
	s3Client, err := m.s3Factory(ctx, creds)
	if err != nil {
		return nil, nil, err
	}
	return s3Client, creds, nil
}

// zenodoClientFor builds a deposition client from the merged secrets. Only
// the production and sandbox targets are supported.
func (m *Manager) zenodoClientFor(artifact, parent *client.Artifact, publishTo string) (depositionAPI, error) {
	secrets, err := mergedSecrets(artifact, parent)
	if err != nil {
		return nil, err
	}
	switch publishTo {
	case "zenodo":
		token := secretString(secrets, "ZENODO_ACCESS_TOKEN")
		if token == "" {
			return nil, commonerrors.NewBadRequest("the Zenodo access token is not configured in secrets")
		}
		return m.zenodoFactory(zenodo.BaseURL, token), nil
	case "sandbox_zenodo":
		token := secretString(secrets, "SANDBOX_ZENODO_ACCESS_TOKEN")
		if token == "" {
			return nil, commonerrors.NewBadRequest("the sandbox Zenodo access token is not configured in secrets")
		}
		return m.zenodoFactory(zenodo.SandboxBaseURL, token), nil
	}
	return nil, commonerrors.NewBadRequest(fmt.Sprintf("publishing to %q is not supported", publishTo))
}

// mergedSecrets overlays the artifact secrets onto the parent secrets.
func mergedSecrets(artifact, parent *client.Artifact) (map[string]interface{}, error) {
	secrets := map[string]interface{}{}
	if parent != nil {
		parentSecrets, err := parent.SecretsMap()
		if err != nil {
			return nil, err
		}
		for key, value := range parentSecrets {
			secrets[key] = value
		}
	}
	if artifact != nil {
		own, err := artifact.SecretsMap()
		if err != nil {
			return nil, err
		}
		for key, value := range own {
			secrets[key] = value
		}
	}
	return secrets, nil
}

func secretString(secrets map[string]interface{}, key string) string {
	if value, ok := secrets[key].(string); ok {
		return value
	}
	return ""
}

// artifactPrefix is the blob store base key of an artifact.
func (m *Manager) artifactPrefix(creds *s3.Credentials, artifact *client.Artifact) (string, error) {
	return SafeJoin(creds.Prefix, artifact.Workspace, m.artifactsDir, artifact.Id)
}

func (m *Manager) snapshotKey(creds *s3.Credentials, artifact *client.Artifact, versionIndex int) (string, error) {
	base, err := m.artifactPrefix(creds, artifact)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/v%d.json", base, versionIndex), nil
}

func (m *Manager) versionPrefix(creds *s3.Credentials, artifact *client.Artifact, versionIndex int) (string, error) {
	base, err := m.artifactPrefix(creds, artifact)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/v%d", base, versionIndex), nil
}

func (m *Manager) fileKey(creds *s3.Credentials, artifact *client.Artifact, versionIndex int, path string) (string, error) {
	base, err := m.versionPrefix(creds, artifact, versionIndex)
	if err != nil {
		return "", err
	}
	return SafeJoin(base, path)
}

// saveVersionSnapshot writes the full artifact row, secrets included, as the
// snapshot of a version.
func (m *Manager) saveVersionSnapshot(ctx context.Context, s3Client s3.Interface, creds *s3.Credentials, artifact *client.Artifact, versionIndex int) error {
	if versionIndex < 0 {
		return commonerrors.NewInternalError("the version index must be non-negative")
	}
	key, err := m.snapshotKey(creds, artifact, versionIndex)
	if err != nil {
		return err
	}
	body, err := json.Marshal(documentFromRow(artifact))
	if err != nil {
		return err
	}
	return s3Client.PutObject(ctx, key, body, s3.DefaultTimeout)
}

// loadVersionSnapshot reads a version snapshot back into a row. Secrets are
// stripped unless explicitly requested.
func (m *Manager) loadVersionSnapshot(ctx context.Context, s3Client s3.Interface, creds *s3.Credentials, artifact *client.Artifact, versionIndex int, includeSecrets bool) (*client.Artifact, error) {
	if versionIndex < 0 {
		return nil, commonerrors.NewInternalError("the version index must be non-negative")
	}
	key, err := m.snapshotKey(creds, artifact, versionIndex)
	if err != nil {
		return nil, err
	}
	body, err := s3Client.GetObject(ctx, key, s3.DefaultTimeout)
	if err != nil {
		if s3.IsNotFound(err) {
			return nil, commonerrors.NewNotFound("Version", fmt.Sprintf("v%d", versionIndex))
		}
		return nil, err
	}
	var doc artifactDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, commonerrors.NewInternalError(
			fmt.Sprintf("bad version snapshot for %s: %v", artifact.Id, err))
	}
	if !includeSecrets {
		doc.Secrets = nil
	}
	return rowFromDocument(&doc), nil
}

// collectionName is the vector store collection backing an artifact.
func collectionName(artifact *client.Artifact) string {
	return artifact.Workspace + "^" + nullString(artifact.Alias)
}

// requireVectorCollection checks an artifact addresses the vector store.
func (m *Manager) requireVectorCollection(artifact *client.Artifact) error {
	if artifact.Type != TypeVectorCollection {
		return commonerrors.NewBadRequest("the artifact must be a vector collection")
	}
	if m.vectors == nil {
		return commonerrors.NewInternalError("the vector store is not configured")
	}
	return nil
}
