// Package objectstore: клиент Supabase Storage для сгенерированных файлов.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Error: ответ Storage API с кодом >= 400.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %d %s", e.StatusCode, e.Message)
}

type Config struct {
	URL        string // https://<project>.supabase.co
	ServiceKey string
	Bucket     string
	Timeout    time.Duration
}

type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	http       *http.Client
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/") + "/storage/v1",
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		http:       &http.Client{Timeout: cfg.Timeout},
	}
}

type UploadResult struct {
	Path        string
	ContentType string
	PublicURL   string
}

// Upload кладёт объект в бакет (upsert), content-type определяется по содержимому.
func (c *Client) Upload(ctx context.Context, objectPath string, data []byte) (*UploadResult, error) {
	contentType := mimetype.Detect(data).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(objectPath), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")
	req.Header.Set("x-upsert", "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode >= 400 {
		return nil, parseError(body, resp.StatusCode)
	}

	return &UploadResult{
		Path:        objectPath,
		ContentType: contentType,
		PublicURL:   c.PublicURL(objectPath),
	}, nil
}

// PublicURL: ссылка на объект публичного бакета.
func (c *Client) PublicURL(objectPath string) string {
	return c.baseURL + "/object/public/" + c.bucket + "/" + escapePath(objectPath)
}

func (c *Client) objectURL(objectPath string) string {
	return c.baseURL + "/object/" + c.bucket + "/" + escapePath(objectPath)
}

func escapePath(p string) string {
	parts := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

func parseError(body []byte, statusCode int) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &Error{StatusCode: statusCode, Message: string(body)}
	}
	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}
	return &Error{StatusCode: statusCode, Message: msg}
}
