package newsapi

import (
	"net/url"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type SearchRequest struct {
	Query    string
	Language string
	SortBy   string
	From     string
	To       string
	PageSize int
}

type HeadlinesRequest struct {
	Query    string
	Category string
	Country  string
	PageSize int
}

type SourcesRequest struct {
	Category string
	Language string
	Country  string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Categories accepted by headlines and sources
var Categories = []string{"business", "entertainment", "general", "health", "science", "sports", "technology"}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (r *SearchRequest) Values() url.Values {
	result := url.Values{}
	set(result, "q", r.Query)
	set(result, "language", r.Language)
	set(result, "sortBy", r.SortBy)
	set(result, "from", r.From)
	set(result, "to", r.To)
	if r.PageSize > 0 {
		result.Set("pageSize", strconv.Itoa(r.PageSize))
	}
	return result
}

func (r *HeadlinesRequest) Values() url.Values {
	result := url.Values{}
	set(result, "q", r.Query)
	set(result, "category", r.Category)
	set(result, "country", r.Country)
	if r.PageSize > 0 {
		result.Set("pageSize", strconv.Itoa(r.PageSize))
	}
	// The endpoint needs at least one filter
	if r.Query == "" && r.Category == "" && r.Country == "" {
		result.Set("category", "general")
	}
	return result
}

func (r *SourcesRequest) Values() url.Values {
	result := url.Values{}
	set(result, "category", r.Category)
	set(result, "language", r.Language)
	set(result, "country", r.Country)
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func set(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
