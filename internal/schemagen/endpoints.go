package schemagen

import (
	"fmt"
	"net/http"

	"github.com/rhinoback/rhinoback/internal/domain"
)

// GenerateEndpoints returns the five CRUD endpoints of every table, grouped by table name.
// Reads are public, writes are marked as requiring auth.
func GenerateEndpoints(tables []domain.TableSchema) []domain.ApiEndpoint {
	endpoints := make([]domain.ApiEndpoint, 0, len(tables)*5)
	for _, t := range tables {
		base := "/api/" + t.Name
		item := base + "/:id"
		single := Singularize(t.Name)
		writable := writableFields(t)

		endpoints = append(endpoints,
			domain.ApiEndpoint{
				Method:      http.MethodGet,
				Path:        base,
				Description: fmt.Sprintf("List %s", t.Name),
				Group:       t.Name,
				Parameters:  []string{"limit", "offset", "sort", "order"},
				Responses:   map[string]any{"200": fmt.Sprintf("Array of %s", t.Name)},
			},
			domain.ApiEndpoint{
				Method:      http.MethodGet,
				Path:        item,
				Description: fmt.Sprintf("Get a %s by id", single),
				Group:       t.Name,
				Parameters:  []string{"id"},
				Responses:   map[string]any{"200": capitalize(single), "404": "Not found"},
			},
			domain.ApiEndpoint{
				Method:      http.MethodPost,
				Path:        base,
				Description: fmt.Sprintf("Create a %s", single),
				Group:       t.Name,
				Auth:        true,
				Parameters:  writable,
				Responses:   map[string]any{"201": capitalize(single), "400": "Validation error"},
			},
			domain.ApiEndpoint{
				Method:      http.MethodPut,
				Path:        item,
				Description: fmt.Sprintf("Update a %s", single),
				Group:       t.Name,
				Auth:        true,
				Parameters:  append([]string{"id"}, writable...),
				Responses:   map[string]any{"200": capitalize(single), "404": "Not found"},
			},
			domain.ApiEndpoint{
				Method:      http.MethodDelete,
				Path:        item,
				Description: fmt.Sprintf("Delete a %s", single),
				Group:       t.Name,
				Auth:        true,
				Parameters:  []string{"id"},
				Responses:   map[string]any{"204": "Deleted", "404": "Not found"},
			},
		)
	}
	return endpoints
}

func writableFields(t domain.TableSchema) []string {
	names := []string{}
	for _, f := range t.Fields {
		if f.IsPrimary {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}
