// Package mangatown lists and downloads chapters from www.mangatown.com.
//
// Listing fetches the series page, reads its chapter list and narrows it to
// the requested chapter ranges. Downloading fetches a chapter's first page,
// reads the page selector, then fetches every page and its image with a
// bounded number of pages in flight. The site's selectors are fixed.
package mangatown
