// Package clicks tallies rows of a search-performance export by their
// "Clicks" column.
package clicks

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Column is the header name the counter reads.
const Column = "Clicks"

// Threshold is the click count both threshold counters compare against.
const Threshold = 10

// ErrInvalidClicks is wrapped by every ParseClicks failure.
var ErrInvalidClicks = errors.New("invalid clicks value")

var separators = strings.NewReplacer(".", "", ",", "")

// Row is one data record keyed by header column name.
type Row map[string]string

// Tally holds the result of one full scan.
type Tally struct {
	TotalRows  int `json:"total_rows" yaml:"total_rows"`
	CountGTE10 int `json:"count_gte_10" yaml:"count_gte_10"`
	CountGT10  int `json:"count_gt_10" yaml:"count_gt_10"`
}

// ParseErrorFunc receives the raw text of a Clicks value that failed to parse.
type ParseErrorFunc func(raw string, err error)

// ParseClicks strips every '.' and ',' from raw and parses the rest as a
// base-10 integer. "1.234" and "1,234" both yield 1234; "1.5" yields 15.
// Values beyond the int range saturate to math.MaxInt or math.MinInt.
func ParseClicks(raw string) (int, error) {
	digits := strings.TrimSpace(separators.Replace(raw))
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Atoi already returns the clamped value on overflow.
		if errors.Is(err, strconv.ErrRange) {
			return n, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidClicks, raw)
	}
	return n, nil
}

// Count scans rows once. Every row counts toward TotalRows; rows without a
// Clicks key or with an unparseable value are left out of the threshold
// counters. onError may be nil.
func Count(rows iter.Seq[Row], onError ParseErrorFunc) Tally {
	var t Tally
	for row := range rows {
		t.TotalRows++
		raw, ok := row[Column]
		if !ok {
			continue
		}
		n, err := ParseClicks(raw)
		if err != nil {
			if onError != nil {
				onError(raw, err)
			}
			continue
		}
		if n >= Threshold {
			t.CountGTE10++
		}
		if n > Threshold {
			t.CountGT10++
		}
	}
	return t
}

// Slice adapts an in-memory slice of rows to the sequence Count expects.
func Slice(rows []Row) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range rows {
			if !yield(r) {
				return
			}
		}
	}
}
