package response

import "trade_portal/internal/domain/lifecycle"

// StatusTaxonomyResponse lets the portal screens render badges and filter
// dropdowns without hard-coding status strings.
type StatusTaxonomyResponse struct {
	Name          string                   `json:"name"`
	Statuses      []lifecycle.Descriptor   `json:"statuses"`
	Fallback      lifecycle.Descriptor     `json:"fallback"`
	FilterOptions []lifecycle.FilterOption `json:"filter_options"`
}

func FromTaxonomy(t *lifecycle.Taxonomy) StatusTaxonomyResponse {
	return StatusTaxonomyResponse{
		Name:          t.Name(),
		Statuses:      t.Descriptors(),
		Fallback:      t.Fallback(),
		FilterOptions: t.FilterOptions(),
	}
}
