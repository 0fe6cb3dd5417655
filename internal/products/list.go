package products

import (
	"strings"

	"github.com/google/uuid"
)

// Sort keys accepted by the catalog list.
const (
	SortPriceAsc      = "price_asc"
	SortPriceDesc     = "price_desc"
	SortNameAsc       = "name_asc"
	SortNameDesc      = "name_desc"
	SortCreatedAtAsc  = "createdAt_asc"
	SortCreatedAtDesc = "createdAt_desc"
)

const (
	relatedDefaultLimit   = 4
	adminListDefaultLimit = 50
	brandFacetLimit       = 20
)

// ListFilters describe the supported filter knobs for the catalog list.
type ListFilters struct {
	CategorySlug string
	CategoryID   *uuid.UUID
	Search       string
	Brands       []string
	MinPrice     *int
	MaxPrice     *int
	// Capacities and MemoryTypes match variant name or color, case-insensitively.
	Capacities  []string
	MemoryTypes []string
	Sort        string
}

// SplitList turns a comma-separated query value into trimmed, non-empty parts.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeSort(raw string) string {
	switch raw {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortCreatedAtAsc, SortCreatedAtDesc:
		return raw
	default:
		return SortCreatedAtDesc
	}
}
