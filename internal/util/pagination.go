package util

import "strconv"

const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// ParseInt64 reads an optional integer query value. An empty value is
// reported as absent, not as an error.
func ParseInt64(s string) (v int64, present bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}

// TotalPages is ceil(total/limit). It does not overflow for any positive
// limit, including math.MaxInt64.
func TotalPages(total, limit int64) int64 {
	if limit < 1 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// CurrentPage is floor(offset/limit)+1.
func CurrentPage(offset, limit int64) int64 {
	if limit < 1 {
		return 1
	}
	return offset/limit + 1
}
