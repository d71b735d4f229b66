package types

import "net/url"

// ListFilter is the uniform list-query contract shared by every collection
// endpoint: an exact (case-insensitive) status match plus a free-text search
// over a fixed per-entity column set. Empty or "all" status and empty search
// match everything.
type ListFilter struct {
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

func ParseListFilter(values url.Values) ListFilter {
	return ListFilter{
		Status: values.Get("status"),
		Search: values.Get("search"),
	}
}
