package mangatown

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSeriesURL(t *testing.T) {
	tests := []struct {
		name   string
		series string
		want   string
	}{
		{"lower case with trailing slash", "Wakusei No Samidare", "https://www.mangatown.com/manga/wakusei_no_samidare/"},
		{"spaces", "One Piece", "https://www.mangatown.com/manga/one_piece/"},
		{"dash", "Sun-Ken Rock", "https://www.mangatown.com/manga/sun_ken_rock/"},
		{"colon", "Re:Monster", "https://www.mangatown.com/manga/re_monster/"},
		{"non alphanumerical", "The Breaker: New Waves", "https://www.mangatown.com/manga/the_breaker_new_waves/"},
		{"consecutive separators", "Area D - Inou Ryouiki", "https://www.mangatown.com/manga/area_d_inou_ryouiki/"},
		{"separators around symbols", "Area D - + - Inou Ryouiki", "https://www.mangatown.com/manga/area_d_inou_ryouiki/"},
		{"outer separators", "  -Gantz: ", "https://www.mangatown.com/manga/gantz/"},
		{"empty", "", "https://www.mangatown.com/manga//"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSeriesURL(tt.series))
		})
	}
}

func TestSlug_Idempotent(t *testing.T) {
	for _, name := range []string{"Wakusei No Samidare", "Area D - + - Inou Ryouiki", "Re:Monster", "__a__b__", "Ünïcode ñame"} {
		once := Slug(name)
		assert.Equal(t, once, Slug(once), name)
	}
}

func TestBuildSeriesURL_Shape(t *testing.T) {
	shape := regexp.MustCompile(`^https://www\.mangatown\.com/manga/[a-z0-9]+(?:_[a-z0-9]+)*/$`)
	for _, name := range []string{"One Piece", "Sun-Ken Rock", "x:::y", " 7 Seeds ", "Dr. Stone", "___Hello___World___"} {
		assert.Regexp(t, shape, BuildSeriesURL(name), name)
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://www.mangatown.com/manga/a/c001/", NormalizeURL("//www.mangatown.com/manga/a/c001/"))
	assert.Equal(t, "http://example.com/x", NormalizeURL("http://example.com/x"))
	assert.Equal(t, "https://www.mangatown.com/manga/a/c001/2.html", NormalizeURL(" /manga/a/c001/2.html "))
	assert.Equal(t, "", NormalizeURL(""))
}

func TestNormalizeURL_OtherBase(t *testing.T) {
	base, _ := url.Parse("http://127.0.0.1:8080/")
	assert.Equal(t, "http://127.0.0.1:8080/manga/a/", normalizeURL(base, "/manga/a/"))
	assert.Equal(t, "https://cdn.example/x.jpg", normalizeURL(base, "//cdn.example/x.jpg"))
}
