package mangatown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"

	"github.com/brogergvhs/mangatown/internal/providers"
)

var (
	ErrInvalidConcurrency = errors.New("page concurrency must be at least 1")
	ErrNoPages            = errors.New("chapter has no pages")
	ErrNoImage            = errors.New("page has no image")
)

// MsgChapterNotFound is the message of a not-found result.
const MsgChapterNotFound = "Could not find chapter"

type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
	FetchBinary(ctx context.Context, url string) (io.ReadCloser, error)
}

// Store persists an image. progress receives the number of bytes written
// so far.
type Store interface {
	WriteFile(ctx context.Context, path string, r io.Reader, progress func(done int64)) (int64, error)
}

type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

type Client struct {
	fetch Fetcher
	store Store
	log   Logger
	base  *url.URL
}

var _ providers.Provider[Config] = (*Client)(nil)

type Option func(*Client)

func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithBaseURL points the client at another origin. Links are resolved
// against it and series URLs are built on it.
func WithBaseURL(u *url.URL) Option {
	return func(c *Client) {
		if u != nil {
			c.base = u
		}
	}
}

func NewClient(f Fetcher, s Store, opts ...Option) *Client {
	c := &Client{
		fetch: f,
		store: s,
		log:   nopLogger{},
		base:  siteURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SeriesURL is BuildSeriesURL on the client's origin.
func (c *Client) SeriesURL(series string) string {
	return seriesURL(c.base, series)
}

// ListChapters returns the chapters of q.Series in q.Ranges, ascending.
// No match is an empty slice.
func (c *Client) ListChapters(ctx context.Context, q providers.SeriesQuery) ([]providers.Chapter, error) {
	u := c.SeriesURL(q.Series)

	markup, err := c.fetch.FetchText(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch series %s: %w", u, err)
	}

	doc, err := parseDocument(markup)
	if err != nil {
		return nil, fmt.Errorf("parse series %s: %w", u, err)
	}

	all := chapterLinks(doc, c.base, q.Series)
	for _, ch := range all {
		if math.IsNaN(ch.Number) {
			c.log.Warnf("Could not read a chapter number for %s\n", ch.URL)
		}
	}
	c.log.Debugf("%s: %d chapters listed\n", q.Series, len(all))

	return providers.Select(all, q.Ranges), nil
}
