package storage

import (
	"context"
	"sync"
)

// MockUploader implements Uploader for unit tests.
type MockUploader struct {
	mu sync.Mutex

	Result *UploadResult
	Err    error

	// ProgressSteps, when set, are emitted as percent callbacks before the
	// configured result or error is returned.
	ProgressSteps []int

	Calls     int
	LastAsset Asset
}

// Upload records the call and returns the configured outcome.
func (m *MockUploader) Upload(_ context.Context, asset Asset, onProgress ProgressFunc) (*UploadResult, error) {
	m.mu.Lock()
	m.Calls++
	m.LastAsset = asset
	m.mu.Unlock()

	if onProgress != nil {
		total := int64(len(asset.Data))
		for _, percent := range m.ProgressSteps {
			onProgress(Progress{
				Loaded:  total * int64(percent) / 100,
				Total:   total,
				Percent: percent,
			})
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// Compile-time interface check
var _ Uploader = (*MockUploader)(nil)
