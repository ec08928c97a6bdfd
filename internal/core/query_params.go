// internal/core/query_params.go
package core

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rhinoback/rhinoback/internal/domain"
)

// Default and limit constants for pagination
const (
	DefaultLimit = 50
	MaxLimit     = 500
	DefaultSort  = "updatedAt"
	DefaultOrder = "desc"
)

// SortableProjectFields are the project attributes a list can be ordered by.
var SortableProjectFields = map[string]bool{
	"name":      true,
	"status":    true,
	"createdAt": true,
	"updatedAt": true,
}

// ListQueryOptions holds parsed query parameters for project listings
type ListQueryOptions struct {
	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"

	// Filtering
	Status domain.ProjectStatus // empty = any status
	Search string               // case-insensitive substring of name or description
}

// ParseListQueryOptions extracts pagination, sorting and filter options from query parameters.
// Returns the parsed options and any validation error.
func ParseListQueryOptions(queryParams url.Values) (*ListQueryOptions, error) {
	opts := &ListQueryOptions{
		Limit:     DefaultLimit,
		Offset:    0,
		SortBy:    DefaultSort,
		SortOrder: DefaultOrder,
	}

	// Parse limit
	if limitStr := queryParams.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'limit' parameter: must be an integer")
		}
		if limit < 1 {
			return nil, fmt.Errorf("invalid 'limit' parameter: must be at least 1")
		}
		if limit > MaxLimit {
			return nil, fmt.Errorf("invalid 'limit' parameter: maximum is %d", MaxLimit)
		}
		opts.Limit = limit
	}

	// Parse offset
	if offsetStr := queryParams.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'offset' parameter: must be an integer")
		}
		if offset < 0 {
			return nil, fmt.Errorf("invalid 'offset' parameter: must be non-negative")
		}
		opts.Offset = offset
	}

	// Parse sort field
	if sortBy := queryParams.Get("sort"); sortBy != "" {
		if !SortableProjectFields[sortBy] {
			return nil, fmt.Errorf("invalid 'sort' parameter: '%s' is not a sortable field", sortBy)
		}
		opts.SortBy = sortBy
	}

	// Parse sort order
	if order := queryParams.Get("order"); order != "" {
		lowerOrder := strings.ToLower(order)
		if lowerOrder != "asc" && lowerOrder != "desc" {
			return nil, fmt.Errorf("invalid 'order' parameter: must be 'asc' or 'desc'")
		}
		opts.SortOrder = lowerOrder
	}

	// Parse status filter
	if status := queryParams.Get("status"); status != "" {
		s := domain.ProjectStatus(strings.ToLower(status))
		switch s {
		case domain.ProjectDraft, domain.ProjectBuilding, domain.ProjectDeployed, domain.ProjectError:
			opts.Status = s
		default:
			return nil, fmt.Errorf("invalid 'status' parameter: '%s' is not a project status", status)
		}
	}

	opts.Search = strings.TrimSpace(queryParams.Get("q"))

	return opts, nil
}
