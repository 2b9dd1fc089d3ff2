package providers

import (
	"context"

	"github.com/brogergvhs/mangatown/internal/chapters"
)

// Chapter is one entry of a series' chapter list.
type Chapter struct {
	Series string
	Number float64
	URL    string
}

// Job identifies a chapter to download and where its pages are written.
type Job struct {
	Series  string
	Chapter float64
	URL     string
	Dest    string
}

// Page is one image-bearing sub-page of a chapter. Index follows document
// order of the page selector, Number is the label the site displays.
type Page struct {
	Index  int
	Number string
	URL    string
}

type SeriesQuery struct {
	Series string
	Ranges []chapters.Range
}

type ResultCode string

const (
	ResultCompleted ResultCode = "completed"
	ResultNotFound  ResultCode = "not-found"
)

// Result is the terminal status of a chapter download.
type Result struct {
	Code    ResultCode
	Message string
}

// JobFor builds the download job for a listed chapter.
func JobFor(c Chapter, out string) Job {
	return Job{
		Series:  c.Series,
		Chapter: c.Number,
		URL:     c.URL,
		Dest:    chapters.DestDir(out, c.Series, c.Number),
	}
}

// Provider lists and downloads chapters. T carries provider specific
// download options.
type Provider[T any] interface {
	ListChapters(ctx context.Context, q SeriesQuery) ([]Chapter, error)
	DownloadChapter(ctx context.Context, job Job, opts T) (Result, error)
}
