package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored campaign asset.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket    string
	KeyPrefix string
}

// Service stores campaign assets (cover art, handouts) in remote object storage.
type Service interface {
	UploadObject(ctx context.Context, opts UploadOptions, key, contentType string, body io.Reader) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DeletePrefix(ctx context.Context, bucket, prefix string) error
}
