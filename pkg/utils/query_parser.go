package utils

import (
	"net/url"
	"strconv"
	"strings"

	"inventory-system/pkg/types"
)

// ParseFilterFromQuery разбирает query-параметры листинга проекции:
// ?search=TV&filter[status]=ACTIVE&filter[category]=TV&cursor=TV-001&limit=50
func ParseFilterFromQuery(query url.Values) types.Filter {
	filter := types.Filter{
		Filter: make(map[string]string),
		Limit:  50,
	}

	for key, values := range query {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") && len(values) > 0 {
			filterKey := key[7 : len(key)-1]
			filter.Filter[filterKey] = values[0]
		}
	}

	if search := query.Get("search"); search != "" {
		filter.Search = search
	}
	if cursor := query.Get("cursor"); cursor != "" {
		filter.Cursor = cursor
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 && l <= 500 {
			filter.Limit = l
		}
	}

	return filter
}
