// Package storage uploads rendered avatars to the object-storage endpoint
// and yields the durable public reference for the stored asset.
package storage

import (
	"context"
	"errors"
)

// Service errors
var (
	// ErrMissingConfiguration indicates the storage endpoint or upload preset
	// is not configured. Fatal for end users; requires operator intervention.
	ErrMissingConfiguration = errors.New("storage configuration missing: cloud name or upload preset not set")

	// ErrTransport indicates a network failure or timeout during transmission.
	// The caller may retry.
	ErrTransport = errors.New("network error during upload")

	// ErrRejected indicates the endpoint answered with a non-2xx status.
	ErrRejected = errors.New("upload rejected by storage endpoint")

	// ErrResponseParse indicates a malformed success response; the asset may
	// have been stored but no usable reference was returned, so the upload is
	// treated as failed.
	ErrResponseParse = errors.New("failed to parse storage response")
)

// Asset is a finished raster ready for transmission.
type Asset struct {
	Data        []byte
	Filename    string
	ContentType string
}

// UploadResult is the storage system's durable reference to a stored asset.
type UploadResult struct {
	SecureURL string
	PublicID  string
	Format    string
	Width     int
	Height    int
	Bytes     int64
}

// Progress reports transmission state. Percent is non-decreasing across the
// callbacks of a single upload.
type Progress struct {
	Loaded  int64
	Total   int64
	Percent int
}

// ProgressFunc receives progress callbacks during transmission. May be nil.
type ProgressFunc func(Progress)

// Uploader transmits an asset in exactly one attempt; retry and backoff
// policy belongs to callers.
type Uploader interface {
	Upload(ctx context.Context, asset Asset, onProgress ProgressFunc) (*UploadResult, error)
}
