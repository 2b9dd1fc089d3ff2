package mangatown

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/mangatown/internal/chapters"
	"github.com/brogergvhs/mangatown/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func chapterNumbers(cs []providers.Chapter) []float64 {
	out := make([]float64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Number)
	}
	return out
}

func TestExtractChapters_InRange(t *testing.T) {
	q := providers.SeriesQuery{
		Series: "Wakusei No Samidare",
		Ranges: []chapters.Range{{Start: 0, End: 5}, {Start: 63, End: 70}},
	}

	got, err := ExtractChapters(fixture(t, "wakusei_no_samidare.html"), q)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 63, 64, 64.5, 65}, chapterNumbers(got))
	for _, c := range got {
		assert.Equal(t, "Wakusei No Samidare", c.Series)
		assert.Regexp(t, `^https://www\.mangatown\.com/manga/wakusei_no_samidare/v\d+/c\d+`, c.URL)
	}
	assert.Equal(t, "https://www.mangatown.com/manga/wakusei_no_samidare/v07/c064.5/", got[8].URL)
}

func TestExtractChapters_NoMatch(t *testing.T) {
	q := providers.SeriesQuery{
		Series: "Wakusei No Samidare",
		Ranges: []chapters.Range{{Start: 500, End: math.Inf(1)}},
	}

	got, err := ExtractChapters(fixture(t, "wakusei_no_samidare.html"), q)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractChapters_EmptyList(t *testing.T) {
	got, err := ExtractChapters(`<html><h1 class="title-top">X</h1></html>`, providers.SeriesQuery{Ranges: chapters.All})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChapterLinks_DocumentOrder(t *testing.T) {
	doc, err := parseDocument(`
		<h1 class="title-top">Foo</h1>
		<ul class="chapter_list">
			<li><a href="//www.mangatown.com/manga/foo/c003/">Foo 3</a></li>
			<li><a href="//www.mangatown.com/manga/foo/c001/">Foo 1</a></li>
			<li><a href="//www.mangatown.com/manga/foo/c002/">Foo 2 new</a></li>
			<li><a href="//www.mangatown.com/manga/foo/extra/">Foo Extra</a></li>
		</ul>`)
	require.NoError(t, err)

	got := chapterLinks(doc, siteURL, "Foo")
	require.Len(t, got, 4)
	assert.Equal(t, 3.0, got[0].Number)
	assert.Equal(t, 1.0, got[1].Number)
	assert.Equal(t, 2.0, got[2].Number)
	assert.True(t, math.IsNaN(got[3].Number))
	assert.Equal(t, "https://www.mangatown.com/manga/foo/extra/", got[3].URL)
}

func TestParseChapterNumber(t *testing.T) {
	assert.Equal(t, 64.5, parseChapterNumber(" 64.5 "))
	assert.Equal(t, 5.0, parseChapterNumber("5 (end)"))
	assert.Equal(t, 0.0, parseChapterNumber("0"))
	assert.Equal(t, 12.0, parseChapterNumber("12."))
	assert.True(t, math.IsNaN(parseChapterNumber("Extra")))
	assert.True(t, math.IsNaN(parseChapterNumber("")))
}

func TestExtractPages(t *testing.T) {
	got, err := ExtractPages(fixture(t, "wakusei_no_samidare_005_page1.html"))
	require.NoError(t, err)

	assert.Equal(t, []providers.Page{
		{Index: 0, Number: "1", URL: "https://www.mangatown.com/manga/wakusei_no_samidare/v01/c005/"},
		{Index: 1, Number: "2", URL: "https://www.mangatown.com/manga/wakusei_no_samidare/v01/c005/2.html"},
	}, got)
}

func TestExtractPages_SinglePage(t *testing.T) {
	got, err := ExtractPages(`<div class="main"><div class="page_select"><select><option value="/manga/x/c001/">1</option></select></div></div>`)
	require.NoError(t, err)
	assert.Equal(t, []providers.Page{{Index: 0, Number: "1", URL: "https://www.mangatown.com/manga/x/c001/"}}, got)
}

func TestIsChapterMissing(t *testing.T) {
	assert.True(t, IsChapterMissing(fixture(t, "404.html")))
	assert.False(t, IsChapterMissing(fixture(t, "wakusei_no_samidare_005_page1.html")))
}

func TestExtractImageURL(t *testing.T) {
	assert.Equal(t,
		"https://mangatown.secure.footprint.net/store/manga/3531/01-005.0/compressed/m002.jpg?token=5f1a&ttl=1440",
		ExtractImageURL(fixture(t, "wakusei_no_samidare_005_page2.html")))
	assert.Equal(t, "", ExtractImageURL(fixture(t, "404.html")))
}

func TestImageExtension(t *testing.T) {
	ext, err := ImageExtension("https://mangatown.secure.footprint.net/store/m001.jpg?token=5f1a&ttl=1440")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	ext, err = ImageExtension("https://cdn.example/a.b/page.webp")
	require.NoError(t, err)
	assert.Equal(t, ".webp", ext)

	ext, err = ImageExtension("https://cdn.example/image")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	_, err = ImageExtension("http://[::1")
	assert.Error(t, err)
}
