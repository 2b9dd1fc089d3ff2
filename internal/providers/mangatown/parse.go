package mangatown

import (
	"math"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/mangatown/internal/providers"
)

const (
	selTitle        = "h1.title-top"
	selChapterLinks = ".chapter_list li a"
	selPageSelect   = ".main .page_select"
	selPageOptions  = "select option"
	selImage        = "#viewer img"
	selMissing      = ".no_info"
)

var reLeadingFloat = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

func parseDocument(markup string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}

// parseChapterNumber reads the number at the start of s after leading
// white space, so "5 (end)" is 5. Anything else is NaN.
func parseChapterNumber(s string) float64 {
	m := reLeadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}

	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// chapterLinks returns every chapter list entry in document order. The
// number is the link text with the series title removed.
func chapterLinks(doc *goquery.Document, base *url.URL, series string) []providers.Chapter {
	title := strings.TrimSpace(doc.Find(selTitle).First().Text())

	out := []providers.Chapter{}
	doc.Find(selChapterLinks).Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if title != "" {
			text = strings.Replace(text, title, "", 1)
		}

		href, _ := a.Attr("href")
		out = append(out, providers.Chapter{
			Series: series,
			Number: parseChapterNumber(text),
			URL:    normalizeURL(base, href),
		})
	})

	return out
}

// ExtractChapters parses a series page and returns the chapters of q that
// are in q.Ranges, sorted by chapter number.
func ExtractChapters(markup string, q providers.SeriesQuery) ([]providers.Chapter, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}

	return providers.Select(chapterLinks(doc, siteURL, q.Series), q.Ranges), nil
}

func pages(doc *goquery.Document, base *url.URL) []providers.Page {
	out := []providers.Page{}
	doc.Find(selPageSelect).First().Find(selPageOptions).Each(func(i int, opt *goquery.Selection) {
		value, _ := opt.Attr("value")
		out = append(out, providers.Page{
			Index:  i,
			Number: strings.TrimSpace(opt.Text()),
			URL:    normalizeURL(base, value),
		})
	})

	return out
}

// ExtractPages lists the pages of a chapter from the page selector of any
// of its pages, in document order.
func ExtractPages(markup string) ([]providers.Page, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}

	return pages(doc, siteURL), nil
}

func chapterMissing(doc *goquery.Document) bool {
	return doc.Find(selMissing).Length() > 0
}

// IsChapterMissing reports whether the site rendered its "no info" page
// instead of a chapter.
func IsChapterMissing(markup string) bool {
	doc, err := parseDocument(markup)
	if err != nil {
		return false
	}

	return chapterMissing(doc)
}

func imageURL(doc *goquery.Document, base *url.URL) string {
	src, _ := doc.Find(selImage).First().Attr("src")
	return normalizeURL(base, src)
}

// ExtractImageURL returns the full size image of a page, or "" when the
// page has none.
func ExtractImageURL(markup string) string {
	doc, err := parseDocument(markup)
	if err != nil {
		return ""
	}

	return imageURL(doc, siteURL)
}

// ImageExtension returns the extension of the image file name in u,
// including the dot. Images without one are saved as .jpg.
func ImageExtension(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}

	ext := path.Ext(path.Base(parsed.Path))
	if ext == "" || ext == "." {
		ext = ".jpg"
	}

	return ext, nil
}
