package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/avatar-service/internal/avatar"
	applog "github.com/janisto/avatar-service/internal/platform/logging"
)

const (
	defaultBaseURL = "https://api.cloudinary.com"
	defaultFolder  = "profile-avatars"

	// defaultTimeout bounds a single upload attempt so a hung transmission
	// cannot strand the caller indefinitely.
	defaultTimeout = 30 * time.Second
)

// Client implements Uploader against a Cloudinary-style unsigned upload
// endpoint: a multipart POST carrying the asset, the upload preset and the
// destination folder, answered with a JSON body holding the durable
// reference.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	cloudName    string
	uploadPreset string
	folder       string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom endpoint base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithFolder sets the destination folder for stored assets.
func WithFolder(folder string) Option {
	return func(c *Client) {
		c.folder = folder
	}
}

// NewClient creates an upload client. A nil httpClient gets a default with a
// bounded timeout.
func NewClient(httpClient *http.Client, cloudName, uploadPreset string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	c := &Client{
		httpClient:   httpClient,
		baseURL:      defaultBaseURL,
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		folder:       defaultFolder,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// uploadResponse mirrors the endpoint's success body (snake_case JSON).
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
}

// Upload transmits the asset in a single attempt. Format and size are
// re-validated before any network I/O, and the configuration check runs
// first so a misconfigured deployment never emits a request.
func (c *Client) Upload(ctx context.Context, asset Asset, onProgress ProgressFunc) (*UploadResult, error) {
	if c.cloudName == "" || c.uploadPreset == "" {
		return nil, ErrMissingConfiguration
	}
	if err := avatar.Validate(asset.ContentType, int64(len(asset.Data))); err != nil {
		return nil, err
	}

	body, contentType, err := c.encodeForm(asset)
	if err != nil {
		return nil, fmt.Errorf("encoding upload form: %w", err)
	}

	endpoint := c.baseURL + "/v1_1/" + url.PathEscape(c.cloudName) + "/image/upload"
	reader := &progressReader{
		r:     bytes.NewReader(body),
		total: int64(len(body)),
		cb:    onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	applog.LogInfo(ctx, "uploading avatar asset",
		zap.String("folder", c.folder),
		zap.Int("size", len(body)),
		zap.String("content_type", asset.ContentType),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// All non-2xx statuses are treated uniformly.
		applog.LogWarn(ctx, "upload rejected", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}
	if parsed.SecureURL == "" || parsed.PublicID == "" {
		return nil, fmt.Errorf("%w: response missing secure_url or public_id", ErrResponseParse)
	}

	return &UploadResult{
		SecureURL: parsed.SecureURL,
		PublicID:  parsed.PublicID,
		Format:    parsed.Format,
		Width:     parsed.Width,
		Height:    parsed.Height,
		Bytes:     parsed.Bytes,
	}, nil
}

// encodeForm builds the multipart body: file, upload_preset, folder.
func (c *Client) encodeForm(asset Asset) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := asset.Filename
	if filename == "" {
		filename = avatar.RenderedFilename
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(asset.Data); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("upload_preset", c.uploadPreset); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("folder", c.folder); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// DeliveryURL builds the CDN URL for a stored avatar with fill-crop and
// format/quality transformations applied.
func (c *Client) DeliveryURL(publicID string, width, height int, quality string) string {
	if quality == "" {
		quality = "auto"
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/w_%d,h_%d,c_fill,q_%s,f_auto/%s",
		c.cloudName, width, height, quality, publicID)
}

// progressReader invokes the progress callback as the request body drains.
// Percent never decreases; duplicate values are suppressed.
type progressReader struct {
	r           io.Reader
	total       int64
	loaded      int64
	lastPercent int
	cb          ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		if p.cb != nil && p.total > 0 {
			percent := int(p.loaded * 100 / p.total)
			if percent > p.lastPercent {
				p.lastPercent = percent
				p.cb(Progress{Loaded: p.loaded, Total: p.total, Percent: percent})
			}
		}
	}
	return n, err
}

// Compile-time interface check
var _ Uploader = (*Client)(nil)
