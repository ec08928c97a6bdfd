package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/schemagen"
)

func shopProject(t *testing.T) domain.Project {
	t.Helper()
	result := schemagen.Generate("an online shop")
	return domain.Project{ID: "shop", Name: "Shop", Schema: result.Schema, Database: result.Database}
}

func newSandbox(t *testing.T) *Sandbox {
	t.Helper()
	sandboxes := NewSandboxes(4, time.Minute)
	sb, err := sandboxes.Provision(context.Background(), shopProject(t))
	require.NoError(t, err)
	sb.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { sandboxes.Remove("shop") })
	return sb
}

func category(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "things",
		"slug":        name,
		"parent_id":   "",
		"active":      true,
	}
}

func TestSandboxesLifecycle(t *testing.T) {
	sandboxes := NewSandboxes(1, time.Minute)
	ctx := context.Background()

	_, err := sandboxes.Get("shop")
	assert.ErrorIs(t, err, ErrSandboxNotFound)

	sb, err := sandboxes.Provision(ctx, shopProject(t))
	require.NoError(t, err)
	got, err := sandboxes.Get("shop")
	require.NoError(t, err)
	assert.Same(t, sb, got)

	other := shopProject(t)
	other.ID = "other"
	_, err = sandboxes.Provision(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, sandboxes.Len(), "the least recently used sandbox is evicted")
	_, err = sandboxes.Get("shop")
	assert.ErrorIs(t, err, ErrSandboxNotFound)

	assert.True(t, sandboxes.Remove("other"))
	assert.False(t, sandboxes.Remove("other"))
}

func TestProvisionRejectsBadIdentifiers(t *testing.T) {
	project := shopProject(t)
	project.Schema[0].Name = "drop table;"
	_, err := NewSandboxes(1, time.Minute).Provision(context.Background(), project)
	assert.Error(t, err)
}

func TestSandboxListTables(t *testing.T) {
	sb := newSandbox(t)
	tables, err := sb.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, len(shopProject(t).Schema))

	for i := 1; i < len(tables); i++ {
		assert.Less(t, tables[i-1].Name, tables[i].Name)
	}
	for _, table := range tables {
		assert.Equal(t, "id", table.Columns[0].Name)
		assert.True(t, table.Columns[0].PrimaryKey)
		assert.Zero(t, table.Rows)
	}
}

func TestSandboxRecordCRUD(t *testing.T) {
	sb := newSandbox(t)
	ctx := context.Background()

	created, err := sb.InsertRecord(ctx, "categories", category("books"))
	require.NoError(t, err)
	id, _ := created["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "books", created["name"])
	assert.Equal(t, true, created["active"])
	assert.Equal(t, "2025-03-01T12:00:00Z", created["created_at"])

	got, err := sb.GetRecord(ctx, "categories", id)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := sb.UpdateRecord(ctx, "categories", id, map[string]any{"name": "novels", "active": false})
	require.NoError(t, err)
	assert.Equal(t, "novels", updated["name"])
	assert.Equal(t, false, updated["active"])

	_, err = sb.InsertRecord(ctx, "categories", category("games"))
	require.NoError(t, err)

	list, err := sb.ListRecords(ctx, "categories", url.Values{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = sb.ListRecords(ctx, "categories", url.Values{"active": {"true"}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "games", list[0]["name"])

	list, err = sb.ListRecords(ctx, "categories", url.Values{"limit": {"1"}, "offset": {"1"}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "games", list[0]["name"])

	require.NoError(t, sb.DeleteRecord(ctx, "categories", id))
	_, err = sb.GetRecord(ctx, "categories", id)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, sb.DeleteRecord(ctx, "categories", id), ErrRecordNotFound)
}

func TestSandboxRecordErrors(t *testing.T) {
	sb := newSandbox(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		table string
		data  map[string]any
		want  error
	}{
		{"unknown table", "invoices", map[string]any{"name": "x"}, ErrTableNotFound},
		{"unknown column", "categories", map[string]any{"colour": "red"}, ErrColumnNotFound},
		{"text gets a number", "categories", map[string]any{"name": 42.0}, ErrTypeMismatch},
		{"boolean gets text", "categories", map[string]any{"name": "x", "active": "yes"}, ErrTypeMismatch},
		{"only id", "categories", map[string]any{"id": "abc"}, ErrEmptyRecord},
		{"missing required column", "categories", map[string]any{"name": "x"}, ErrConstraintViolation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sb.InsertRecord(ctx, tc.table, tc.data)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := sb.UpdateRecord(ctx, "categories", "missing", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSandboxColumnNamesIgnoreCase(t *testing.T) {
	sb := newSandbox(t)
	ctx := context.Background()

	data := category("books")
	delete(data, "active")
	data["Active"] = true
	data["NAME"] = "Books"
	delete(data, "name")

	created, err := sb.InsertRecord(ctx, "categories", data)
	require.NoError(t, err)
	assert.Equal(t, true, created["active"])
	assert.Equal(t, "Books", created["name"])

	list, err := sb.ListRecords(ctx, "categories", url.Values{"Active": {"true"}})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := sb.UpdateRecord(ctx, "categories", created["id"].(string), map[string]any{"ACTIVE": false})
	require.NoError(t, err)
	assert.Equal(t, false, updated["active"])

	dup := category("games")
	dup["Name"] = "Games"
	_, err = sb.InsertRecord(ctx, "categories", dup)
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = sb.ListRecords(ctx, "categories", url.Values{"active": {"true"}, "Active": {"false"}})
	assert.ErrorIs(t, err, ErrInvalidFilterValue)
}

func TestSandboxListRecordsFilters(t *testing.T) {
	sb := newSandbox(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		params url.Values
	}{
		{"bad key", url.Values{"name;": {"x"}}},
		{"unknown key", url.Values{"colour": {"red"}}},
		{"bad boolean", url.Values{"active": {"maybe"}}},
		{"limit too big", url.Values{"limit": {"100000"}}},
		{"negative offset", url.Values{"offset": {"-1"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sb.ListRecords(ctx, "categories", tc.params)
			assert.ErrorIs(t, err, ErrInvalidFilterValue)
		})
	}
}

func TestColumnValue(t *testing.T) {
	v, err := columnValue("INTEGER", domain.FieldNumber, 3.0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = columnValue("INTEGER", domain.FieldNumber, 3.5)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	v, err = columnValue("REAL", domain.FieldDecimal, 9.99)
	require.NoError(t, err)
	assert.Equal(t, 9.99, v)

	v, err = columnValue("TEXT", domain.FieldJSON, map[string]any{"a": 1.0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, v.(string))

	v, err = columnValue("TEXT", domain.FieldText, nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}
