package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains file/object storage abstractions and utilities for object stores (S3-compatible).
// Implementations must avoid using local disk and rely on streaming I/O only.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible object storage client interface.
// Methods use context and streaming readers/writers; no local disk is used.
// Keys map to public retrieval URLs of the form {endpoint}/{bucket}/{key}.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	// Uploading to an existing key overwrites the object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. An already-absent object is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the deterministic retrieval URL for a key.
	URL(key string) string
	// KeyFromURL resolves the object key from a URL previously issued by URL,
	// stripping the endpoint and bucket segments.
	KeyFromURL(fileURL string) (string, error)
}
