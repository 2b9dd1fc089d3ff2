package downloader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brogergvhs/mangatown/internal/util"
)

// StatusError is returned for HTTP responses the fetcher does not accept.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Code)
}

// HTTPFetcher fetches pages and images over HTTP.
type HTTPFetcher struct {
	client  *http.Client
	retries int
	backoff time.Duration
	referer string
}

func NewHTTPFetcher(c *http.Client, retries int, referer string) *HTTPFetcher {
	if retries < 1 {
		retries = 1
	}

	return &HTTPFetcher{
		client:  c,
		retries: retries,
		backoff: 500 * time.Millisecond,
		referer: referer,
	}
}

func (f *HTTPFetcher) do(ctx context.Context, u, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if f.referer != "" {
		req.Header.Set("Referer", f.referer)
	}

	return util.DoWithRetry(ctx, f.client, req, f.retries, f.backoff)
}

// FetchText returns the body of u. A 404 body is returned as well, the site
// renders its "chapter not found" page with that status.
func (f *HTTPFetcher) FetchText(ctx context.Context, u string) (string, error) {
	resp, err := f.do(ctx, u, "text/html,application/xhtml+xml,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusNotFound && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return "", &StatusError{URL: u, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", u, err)
	}

	return string(data), nil
}

// FetchBinary opens the image at u. The caller closes the returned body.
func (f *HTTPFetcher) FetchBinary(ctx context.Context, u string) (io.ReadCloser, error) {
	resp, err := f.do(ctx, u, "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &StatusError{URL: u, Code: resp.StatusCode}
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("GET %s: unexpected MIME: %s", u, ct)
		}
	}

	return resp.Body, nil
}

// FileStore writes downloaded images to disk.
type FileStore struct{}

// WriteFile creates or truncates path, creating parent folders as needed,
// and copies r into it. A partially written file is removed on error.
func (FileStore) WriteFile(ctx context.Context, path string, r io.Reader, progress func(done int64)) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	written, err := copyWithProgress(f, r, progress)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return written, fmt.Errorf("write %s: %w", path, err)
	}

	return written, nil
}
