package mangatown

import (
	"net/url"
	"regexp"
	"strings"
)

const Host = "www.mangatown.com"

var siteURL = &url.URL{Scheme: "https", Host: Host, Path: "/"}

var (
	reSeparators  = regexp.MustCompile(`[\s\-:]+`)
	reInvalidSlug = regexp.MustCompile(`[^a-z0-9_]`)
	reUnderscores = regexp.MustCompile(`_+`)
)

// Slug turns a series name into the path segment the site uses:
// "The Breaker: New Waves" becomes "the_breaker_new_waves".
func Slug(name string) string {
	s := strings.ToLower(name)
	s = reSeparators.ReplaceAllString(s, "_")
	s = reInvalidSlug.ReplaceAllString(s, "")
	s = reUnderscores.ReplaceAllString(s, "_")

	return strings.Trim(s, "_")
}

// BuildSeriesURL returns https://www.mangatown.com/manga/<slug>/.
func BuildSeriesURL(name string) string {
	return seriesURL(siteURL, name)
}

func seriesURL(base *url.URL, name string) string {
	return base.ResolveReference(&url.URL{Path: "/manga/" + Slug(name) + "/"}).String()
}

// NormalizeURL makes a link found on the site absolute. Protocol relative
// links get https, absolute links are kept and anything else is resolved
// against the site root.
func NormalizeURL(ref string) string {
	return normalizeURL(siteURL, ref)
}

func normalizeURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if u.IsAbs() {
		return ref
	}

	return base.ResolveReference(u).String()
}
