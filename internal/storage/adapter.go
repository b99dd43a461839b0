// Package storage provides the XML mirror's path-addressed storage adapter
// with interchangeable local, Supabase Storage and S3 backends.
package storage

import (
	"context"
	"time"
)

// Backend names accepted in storage settings.
const (
	TypeLocal    = "local"
	TypeSupabase = "supabase"
	TypeS3       = "s3"
)

// PublishedPrefix is the namespace Publish writes under.
const PublishedPrefix = "published/"

// Adapter is the uniform save/load/list/delete/publish surface over a
// backend. Failures are coded errors (STORAGE_ERROR, NOT_FOUND), never
// booleans; a missing object is distinguishable from an empty one.
type Adapter interface {
	Save(ctx context.Context, path string, content []byte) error
	Load(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, path string) error
	Publish(ctx context.Context, path string, content []byte) error
}

// Settings is the persisted storage configuration. The API key and secret
// credentials stay in the service config; only the switchable parameters are
// persisted.
type Settings struct {
	StorageType string    `json:"storageType" bson:"storageType" validate:"required,oneof=local supabase s3"`
	SupabaseURL string    `json:"supabaseUrl,omitempty" bson:"supabaseUrl,omitempty"`
	BucketName  string    `json:"bucketName,omitempty" bson:"bucketName,omitempty"`
	LastUpdated time.Time `json:"lastUpdated" bson:"lastUpdated"`
}
