package providers

import (
	"sort"

	"github.com/brogergvhs/mangatown/internal/chapters"
)

// Select keeps the chapters whose number is in any of ranges and sorts them
// ascending by number. Chapters with equal numbers keep their list order.
func Select(all []Chapter, ranges []chapters.Range) []Chapter {
	out := []Chapter{}
	for _, c := range all {
		if chapters.InRanges(c.Number, ranges) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})

	return out
}
