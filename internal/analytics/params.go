package analytics

import "strconv"

const (
	// DefaultPage is served when the page parameter is missing or invalid.
	DefaultPage = 1
	// DefaultLimit is served when the limit parameter is missing or invalid.
	DefaultLimit = 50
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 200
)

// ListParams are the normalized event-listing parameters. Build them with
// ParseListParams so page and limit are always within bounds.
type ListParams struct {
	SessionID string
	Page      int
	Limit     int
}

// ParseListParams normalizes raw query values. Non-numeric or out-of-range
// values fall back to the defaults instead of erroring; oversized limits
// clamp to MaxLimit.
func ParseListParams(sessionID, rawPage, rawLimit string) ListParams {
	page := DefaultPage
	if p, err := strconv.Atoi(rawPage); err == nil && p >= 1 {
		page = p
	}

	limit := DefaultLimit
	if l, err := strconv.Atoi(rawLimit); err == nil && l >= 1 {
		limit = l
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return ListParams{SessionID: sessionID, Page: page, Limit: limit}
}
