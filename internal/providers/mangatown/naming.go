package mangatown

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brogergvhs/mangatown/internal/chapters"
	"github.com/brogergvhs/mangatown/internal/providers"
)

// FilenameFunc returns the output path of the page at index with the given
// image extension.
type FilenameFunc func(cfg Config, job providers.Job, index int, ext string) string

// NamingPolicy decides where each page is written. The zero value is the
// default policy: <job.Dest>/<2 digit page number><ext>.
type NamingPolicy struct {
	custom FilenameFunc
}

func DefaultNaming() NamingPolicy {
	return NamingPolicy{}
}

// CustomNaming uses fn for every page. A nil fn is the default policy.
func CustomNaming(fn FilenameFunc) NamingPolicy {
	return NamingPolicy{custom: fn}
}

func (p NamingPolicy) IsCustom() bool {
	return p.custom != nil
}

// Path returns the output path for page.
func (p NamingPolicy) Path(cfg Config, job providers.Job, page providers.Page, ext string) string {
	if p.custom != nil {
		return p.custom(cfg, job, page.Index, ext)
	}

	return filepath.Join(job.Dest, PadPageNumber(page.Number)+ext)
}

// PadPageNumber left pads a page label with zeros to two characters: "1"
// is "01". Longer labels such as "123" or "007" are returned as they are.
func PadPageNumber(number string) string {
	if len(number) < 2 {
		return strings.Repeat("0", 2-len(number)) + number
	}
	return number
}

// TemplateNaming builds a naming policy from a template such as
// "{dest}/{page}{ext}". Placeholders: {dest}, {series}, {chapter}, {index}
// (0 based), {page} (1 based, two digits) and {ext}. An empty template is
// the default policy.
func TemplateNaming(tmpl string) NamingPolicy {
	tmpl = strings.TrimSpace(tmpl)
	if tmpl == "" {
		return DefaultNaming()
	}

	return CustomNaming(func(_ Config, job providers.Job, index int, ext string) string {
		r := strings.NewReplacer(
			"{dest}", job.Dest,
			"{series}", job.Series,
			"{chapter}", chapters.FormatNumber(job.Chapter),
			"{index}", strconv.Itoa(index),
			"{page}", fmt.Sprintf("%02d", index+1),
			"{ext}", ext,
		)
		return filepath.Clean(r.Replace(tmpl))
	})
}
