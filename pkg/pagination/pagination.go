package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 100
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 500
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Offset int
}

// Normalize returns a copy with the default and maximum limits applied and a
// non-negative offset.
func (p Params) Normalize() Params {
	out := Params{Limit: NormalizeLimit(p.Limit), Offset: p.Offset}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return out
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Parse reads the raw limit/offset query values. Empty strings fall back to
// defaults; anything else must be a non-negative integer.
func Parse(rawLimit, rawOffset string) (Params, error) {
	var params Params
	if v := strings.TrimSpace(rawLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Params{}, fmt.Errorf("invalid limit %q", rawLimit)
		}
		params.Limit = n
	}
	if v := strings.TrimSpace(rawOffset); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Params{}, fmt.Errorf("invalid offset %q", rawOffset)
		}
		params.Offset = n
	}
	return params.Normalize(), nil
}
