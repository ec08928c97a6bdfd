package store

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
)

// ListProjects filters, sorts and pages projects. It returns the page and the total number of
// matches before paging.
func ListProjects(projects []domain.Project, opts *core.ListQueryOptions) ([]domain.Project, int) {
	search := strings.ToLower(opts.Search)
	matched := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if opts.Status != "" && p.Status != opts.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}

	slices.SortStableFunc(matched, func(a, b domain.Project) int {
		var c int
		switch opts.SortBy {
		case "name":
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case "status":
			c = cmp.Compare(a.Status, b.Status)
		case "createdAt":
			c = a.CreatedAt.Compare(b.CreatedAt)
		default:
			c = a.UpdatedAt.Compare(b.UpdatedAt)
		}
		if opts.SortOrder == "desc" {
			return -c
		}
		return c
	})

	total := len(matched)
	if opts.Offset >= total {
		return []domain.Project{}, total
	}
	end := min(opts.Offset+opts.Limit, total)
	return matched[opts.Offset:end], total
}
