package chapters

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Range is an inclusive [Start, End] interval of chapter numbers. End may be
// math.Inf(1).
type Range struct {
	Start float64
	End   float64
}

func (r Range) Contains(n float64) bool {
	return n >= r.Start && n <= r.End
}

func (r Range) String() string {
	if math.IsInf(r.End, 1) {
		return FormatNumber(r.Start) + "-"
	}
	if r.Start == r.End {
		return FormatNumber(r.Start)
	}
	return FormatNumber(r.Start) + "-" + FormatNumber(r.End)
}

// All matches every chapter.
var All = []Range{{Start: math.Inf(-1), End: math.Inf(1)}}

// InRanges reports whether n falls in any of ranges. NaN is never in range.
func InRanges(n float64, ranges []Range) bool {
	if math.IsNaN(n) {
		return false
	}
	for _, r := range ranges {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

// ParseRanges parses a comma separated list such as "0-5,63-70,100,500-".
// A trailing dash leaves the range open ended. An empty string yields All.
func ParseRanges(s string) ([]Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All, nil
	}

	var out []Range
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		r, err := parseRange(part)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	if len(out) == 0 {
		return All, nil
	}
	return out, nil
}

func parseRange(part string) (Range, error) {
	startStr, endStr, isSpan := strings.Cut(part, "-")

	start, err := atof(startStr)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", part, err)
	}
	if !isSpan {
		return Range{Start: start, End: start}, nil
	}

	end := math.Inf(1)
	if strings.TrimSpace(endStr) != "" {
		end, err = atof(endStr)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range %q: %w", part, err)
		}
	}
	if start > end {
		return Range{}, fmt.Errorf("invalid range %q: start is after end", part)
	}

	return Range{Start: start, End: end}, nil
}

func atof(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
