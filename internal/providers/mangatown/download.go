package mangatown

import (
	"context"
	"fmt"
	"sync"

	"github.com/brogergvhs/mangatown/internal/downloader"
	"github.com/brogergvhs/mangatown/internal/providers"
)

// ProgressReporter receives page level progress of one chapter. MarkDone is
// only called once every page has been saved.
type ProgressReporter interface {
	SetTotal(total int)
	Update(done, total int, bytes int64)
	MarkDone()
}

// Config controls a chapter download.
type Config struct {
	PageConcurrency int
	Naming          NamingPolicy
	Progress        ProgressReporter
}

// DownloadChapter fetches job.URL, lists its pages and saves one image per
// page, with at most cfg.PageConcurrency pages in flight. A chapter the site
// does not know yields a not-found result. Fetch and write failures are
// returned as errors and no result.
func (c *Client) DownloadChapter(ctx context.Context, job providers.Job, cfg Config) (providers.Result, error) {
	if cfg.PageConcurrency < 1 {
		return providers.Result{}, fmt.Errorf("%w, got %d", ErrInvalidConcurrency, cfg.PageConcurrency)
	}

	markup, err := c.fetch.FetchText(ctx, job.URL)
	if err != nil {
		return providers.Result{}, fmt.Errorf("fetch chapter %s: %w", job.URL, err)
	}

	doc, err := parseDocument(markup)
	if err != nil {
		return providers.Result{}, fmt.Errorf("parse chapter %s: %w", job.URL, err)
	}

	if chapterMissing(doc) {
		c.log.Debugf("%s: chapter not found\n", job.URL)
		return providers.Result{Code: providers.ResultNotFound, Message: MsgChapterNotFound}, nil
	}

	list := pages(doc, c.base)
	if len(list) == 0 {
		return providers.Result{}, fmt.Errorf("%s: %w", job.URL, ErrNoPages)
	}
	c.log.Debugf("%s: %d pages\n", job.URL, len(list))

	tracker := newTracker(cfg.Progress, len(list))

	err = downloader.RunLimited(ctx, cfg.PageConcurrency, len(list), func(ctx context.Context, i int) error {
		return c.downloadPage(ctx, job, cfg, list[i], tracker)
	})
	if err != nil {
		return providers.Result{}, err
	}
	tracker.finish()

	return providers.Result{Code: providers.ResultCompleted}, nil
}

func (c *Client) downloadPage(ctx context.Context, job providers.Job, cfg Config, page providers.Page, t *tracker) error {
	markup, err := c.fetch.FetchText(ctx, page.URL)
	if err != nil {
		return fmt.Errorf("fetch page %s: %w", page.URL, err)
	}

	doc, err := parseDocument(markup)
	if err != nil {
		return fmt.Errorf("parse page %s: %w", page.URL, err)
	}

	img := imageURL(doc, c.base)
	if img == "" {
		return fmt.Errorf("page %s (%s): %w", page.Number, page.URL, ErrNoImage)
	}

	ext, err := ImageExtension(img)
	if err != nil {
		return fmt.Errorf("page %s: image url %q: %w", page.Number, img, err)
	}

	out := cfg.Naming.Path(cfg, job, page, ext)

	body, err := c.fetch.FetchBinary(ctx, img)
	if err != nil {
		return fmt.Errorf("fetch image %s: %w", img, err)
	}
	defer func() {
		_ = body.Close()
	}()

	var last int64
	if _, err := c.store.WriteFile(ctx, out, body, func(done int64) {
		t.addBytes(done - last)
		last = done
	}); err != nil {
		return err
	}

	t.pageDone()
	c.log.Debugf("saved %s\n", out)
	return nil
}

// tracker folds concurrent page progress into one reporter.
type tracker struct {
	mu    sync.Mutex
	r     ProgressReporter
	total int
	done  int
	bytes int64
}

func newTracker(r ProgressReporter, total int) *tracker {
	if r != nil {
		r.SetTotal(total)
	}
	return &tracker{r: r, total: total}
}

func (t *tracker) addBytes(delta int64) {
	if delta <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytes += delta
	if t.r != nil {
		t.r.Update(t.done, t.total, t.bytes)
	}
}

func (t *tracker) pageDone() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	if t.r != nil {
		t.r.Update(t.done, t.total, t.bytes)
	}
}

func (t *tracker) finish() {
	if t.r != nil {
		t.r.MarkDone()
	}
}
