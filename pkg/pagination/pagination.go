package pagination

import "github.com/angelmondragon/storefront-backend/pkg/types"

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Offset int
}

// Normalize returns params with the limit clamped and a non-negative offset.
func (p Params) Normalize(defaultLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: limit, Offset: offset}
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	return Params{Limit: limit}.Normalize(DefaultLimit).Limit
}

// Build computes page metadata for a result set of total rows.
func Build(total int64, p Params) types.Pagination {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return types.Pagination{
		Total:      total,
		Limit:      limit,
		Offset:     p.Offset,
		Page:       p.Offset/limit + 1,
		TotalPages: totalPages,
		HasNext:    int64(p.Offset+limit) < total,
		HasPrev:    p.Offset > 0,
	}
}
