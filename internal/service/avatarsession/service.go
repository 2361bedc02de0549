// Package avatarsession holds the server-side editing state for avatar
// uploads: a validated source image plus its pending zoom and rotation. Each
// user has at most one live session; opening a new one replaces the old.
package avatarsession

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/janisto/avatar-service/internal/avatar"
	applog "github.com/janisto/avatar-service/internal/platform/logging"
	"github.com/janisto/avatar-service/internal/service/profilesync"
	"github.com/janisto/avatar-service/internal/service/storage"
)

// Manager errors
var (
	ErrSessionNotFound = errors.New("avatar session not found")

	// ErrStaleSession means the session was adjusted or replaced while a save
	// was in flight. The stored asset is not synced to the profile.
	ErrStaleSession = errors.New("avatar session is no longer current")

	ErrInvalidRotation = errors.New("rotation must be \"left\" or \"right\"")
)

// Session is the caller-visible snapshot of an editing session.
type Session struct {
	ID          string
	UID         string
	ContentType string
	Size        int64
	Preview     string
	Transform   avatar.TransformState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// session is the internal record. generation increments on every adjustment
// so an in-flight save can detect concurrent edits.
type session struct {
	Session
	data       []byte
	generation uint64
}

// AdjustParams describes one adjustment request. Reset wins over the other
// fields; Rotate is "left", "right" or empty.
type AdjustParams struct {
	ZoomPercent *int
	Rotate      string
	Reset       bool
}

// SaveResult is returned from a successful save.
type SaveResult struct {
	Identity  *profilesync.Identity
	AvatarURL string
	PublicID  string
}

// Syncer propagates a stored avatar URL to the user records.
type Syncer interface {
	Sync(ctx context.Context, identity profilesync.Identity, photoURL string) (*profilesync.Identity, error)
}

// Manager owns all live editing sessions, keyed by user.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	uploader storage.Uploader
	syncer   Syncer
	now      func() time.Time
}

// NewManager creates a session manager.
func NewManager(uploader storage.Uploader, syncer Syncer) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		uploader: uploader,
		syncer:   syncer,
		now:      time.Now,
	}
}

// Open validates the candidate image and starts a session with the default
// transform and an inline preview. Any existing session for the user is
// discarded.
func (m *Manager) Open(ctx context.Context, uid string, img avatar.CandidateImage) (*Session, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	preview, err := avatar.EncodePreview(img)
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	s := &session{
		Session: Session{
			ID:          uuid.NewString(),
			UID:         uid,
			ContentType: img.ContentType,
			Size:        int64(len(img.Data)),
			Preview:     preview,
			Transform:   avatar.DefaultTransform(),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		data: img.Data,
	}

	m.mu.Lock()
	replaced := m.sessions[uid] != nil
	m.sessions[uid] = s
	m.mu.Unlock()

	applog.LogInfo(ctx, "avatar session opened",
		zap.String("session_id", s.ID),
		zap.Int64("size", s.Size),
		zap.String("content_type", s.ContentType),
		zap.Bool("replaced", replaced),
	)

	snapshot := s.Session
	return &snapshot, nil
}

// Get returns the current session snapshot.
func (m *Manager) Get(ctx context.Context, uid, sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.current(uid, sessionID)
	if err != nil {
		return nil, err
	}
	snapshot := s.Session
	return &snapshot, nil
}

// Adjust applies zoom, rotation or reset to the session's transform. Zoom is
// clamped to the allowed range; rotation steps are unclamped. Every
// adjustment invalidates saves already in flight.
func (m *Manager) Adjust(ctx context.Context, uid, sessionID string, params AdjustParams) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.current(uid, sessionID)
	if err != nil {
		return nil, err
	}

	if params.Reset {
		s.Transform.Reset()
	} else {
		if params.ZoomPercent != nil {
			s.Transform.SetZoom(*params.ZoomPercent)
		}
		switch strings.ToLower(params.Rotate) {
		case "":
		case "left":
			s.Transform.RotateLeft()
		case "right":
			s.Transform.RotateRight()
		default:
			return nil, ErrInvalidRotation
		}
	}

	s.generation++
	s.UpdatedAt = m.now().UTC()

	snapshot := s.Session
	return &snapshot, nil
}

// Cancel discards the session without uploading anything.
func (m *Manager) Cancel(ctx context.Context, uid, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.current(uid, sessionID); err != nil {
		return err
	}
	delete(m.sessions, uid)

	applog.LogInfo(ctx, "avatar session cancelled", zap.String("session_id", sessionID))
	return nil
}

// Save renders the session's image with its transform, uploads the result,
// and syncs the stored URL to the user records. Between the upload and the
// sync the session must still be current: an adjustment or replacement made
// while the upload was in flight aborts the save with ErrStaleSession and
// nothing is synced. A successful currency check consumes the session, so the
// sync runs exactly once per saved edit.
func (m *Manager) Save(ctx context.Context, uid, sessionID string, identity profilesync.Identity, onProgress storage.ProgressFunc) (*SaveResult, error) {
	m.mu.Lock()
	s, err := m.current(uid, sessionID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	data := s.data
	contentType := s.ContentType
	transform := s.Transform
	generation := s.generation
	m.mu.Unlock()

	candidate := avatar.CandidateImage{Data: data, ContentType: contentType}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	src, err := avatar.Decode(candidate)
	if err != nil {
		return nil, err
	}
	rendered, err := avatar.Render(src, transform)
	if err != nil {
		return nil, err
	}

	uploaded, err := m.uploader.Upload(ctx, storage.Asset{
		Data:        rendered,
		Filename:    avatar.RenderedFilename,
		ContentType: avatar.RenderedContentType,
	}, onProgress)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	cur := m.sessions[uid]
	if cur == nil || cur.ID != sessionID || cur.generation != generation {
		m.mu.Unlock()
		applog.LogWarn(ctx, "avatar save aborted, session changed during upload",
			zap.String("session_id", sessionID))
		return nil, ErrStaleSession
	}
	delete(m.sessions, uid)
	m.mu.Unlock()

	refreshed, err := m.syncer.Sync(ctx, identity, uploaded.SecureURL)
	if err != nil {
		return nil, err
	}

	applog.LogInfo(ctx, "avatar saved",
		zap.String("session_id", sessionID),
		zap.String("public_id", uploaded.PublicID),
	)

	return &SaveResult{
		Identity:  refreshed,
		AvatarURL: uploaded.SecureURL,
		PublicID:  uploaded.PublicID,
	}, nil
}

// current returns the user's live session iff it matches sessionID. Callers
// hold m.mu.
func (m *Manager) current(uid, sessionID string) (*session, error) {
	s := m.sessions[uid]
	if s == nil || s.ID != sessionID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
