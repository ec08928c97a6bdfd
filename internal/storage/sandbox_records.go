// internal/storage/sandbox_records.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
)

// Query parameters of ListRecords that are not column filters.
const (
	ParamLimit  = "limit"
	ParamOffset = "offset"

	DefaultRecordLimit = 50
	MaxRecordLimit     = 500
)

// InsertRecord validates data against the table and inserts it. A missing id gets a fresh
// UUID, and missing created_at/updated_at columns get the current time.
func (sb *Sandbox) InsertRecord(ctx context.Context, tableName string, data map[string]any) (map[string]any, error) {
	columns, err := sb.columnTypes(ctx, tableName)
	if err != nil {
		return nil, err
	}

	values, err := sb.recordValues(tableName, columns, data)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrEmptyRecord
	}

	id, _ := data["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	values["id"] = id
	now := sb.now().UTC().Format(time.RFC3339)
	for _, ts := range []string{"created_at", "updated_at"} {
		if _, ok := columns[ts]; ok && values[ts] == nil {
			values[ts] = now
		}
	}

	query, args, err := sb.qb.Insert(quoteIdent(tableName)).SetMap(quoteKeys(values)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := sb.db.ExecContext(ctx, query, args...); err != nil {
		customLog.Warnf("Storage: Failed INSERT: %v\nSQL: %s", err, query)
		return nil, classify(err, "insert")
	}
	return sb.GetRecord(ctx, tableName, id)
}

// ListRecords returns the rows of a table. Every query parameter except limit and offset is an
// equality filter on a column, converted to the column's type.
func (sb *Sandbox) ListRecords(ctx context.Context, tableName string, queryParams url.Values) ([]map[string]any, error) {
	columns, err := sb.columnTypes(ctx, tableName)
	if err != nil {
		return nil, err
	}

	limit, offset, err := pageParams(queryParams)
	if err != nil {
		return nil, err
	}

	where := squirrel.Eq{}
	for key, values := range queryParams {
		if key == ParamLimit || key == ParamOffset || len(values) == 0 {
			continue
		}
		if !core.IsValidIdentifier(key) {
			return nil, fmt.Errorf("%w: invalid filter key format '%s'", ErrInvalidFilterValue, key)
		}
		col, exists := columns[strings.ToLower(key)]
		if !exists {
			return nil, fmt.Errorf("%w: filter key '%s' not found in table schema", ErrInvalidFilterValue, key)
		}
		if _, dup := where[quoteIdent(col.name)]; dup {
			return nil, fmt.Errorf("%w: filter key '%s' given more than once", ErrInvalidFilterValue, key)
		}

		converted, err := filterValue(col.sqlType, sb.fieldType(tableName, col.name), values[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFilterValue, err.Error())
		}
		where[quoteIdent(col.name)] = converted
	}

	builder := sb.qb.Select("*").From(quoteIdent(tableName)).
		OrderBy("rowid").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if len(where) > 0 {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	customLog.Debugf("Storage: Executing List Records SQL: %s | Args: %v", query, args)
	rows, err := sb.db.QueryContext(ctx, query, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed filtered SELECT *: %v\nSQL: %s", err, query)
		return nil, classify(err, "list")
	}
	defer rows.Close()

	results := make([]map[string]any, 0)
	for rows.Next() {
		record, err := sb.scanRecord(tableName, rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed processing all records: %w", err)
	}
	return results, nil
}

// GetRecord returns a single row by id or ErrRecordNotFound.
func (sb *Sandbox) GetRecord(ctx context.Context, tableName, id string) (map[string]any, error) {
	if _, ok := sb.tables[tableName]; !ok {
		return nil, ErrTableNotFound
	}

	query, args, err := sb.qb.Select("*").From(quoteIdent(tableName)).Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := sb.db.QueryContext(ctx, query, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed SELECT by ID: %v\nSQL: %s", err, query)
		return nil, classify(err, "get")
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("failed checking for record: %w", err)
		}
		return nil, ErrRecordNotFound
	}
	return sb.scanRecord(tableName, rows)
}

// UpdateRecord applies a partial update and returns the updated row. updated_at is refreshed
// when the table has one and the update does not set it.
func (sb *Sandbox) UpdateRecord(ctx context.Context, tableName, id string, data map[string]any) (map[string]any, error) {
	columns, err := sb.columnTypes(ctx, tableName)
	if err != nil {
		return nil, err
	}

	values, err := sb.recordValues(tableName, columns, data)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrEmptyRecord
	}
	if _, ok := columns["updated_at"]; ok && values["updated_at"] == nil {
		values["updated_at"] = sb.now().UTC().Format(time.RFC3339)
	}

	query, args, err := sb.qb.Update(quoteIdent(tableName)).SetMap(quoteKeys(values)).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}
	result, err := sb.db.ExecContext(ctx, query, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed UPDATE: %v\nSQL: %s", err, query)
		return nil, classify(err, "update")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed confirming update: %w", err)
	}
	if affected == 0 {
		return nil, ErrRecordNotFound
	}
	return sb.GetRecord(ctx, tableName, id)
}

// DeleteRecord removes a row by id.
func (sb *Sandbox) DeleteRecord(ctx context.Context, tableName, id string) error {
	if _, ok := sb.tables[tableName]; !ok {
		return ErrTableNotFound
	}

	query, args, err := sb.qb.Delete(quoteIdent(tableName)).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	result, err := sb.db.ExecContext(ctx, query, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed DELETE: %v\nSQL: %s", err, query)
		return classify(err, "delete")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed confirming delete: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

type column struct {
	name    string
	sqlType string
}

// columnTypes maps lower-cased column names to the column's declared name and SQLite type.
func (sb *Sandbox) columnTypes(ctx context.Context, tableName string) (map[string]column, error) {
	info, err := sb.tableInfo(ctx, tableName)
	if err != nil {
		return nil, err
	}
	types := make(map[string]column, len(info))
	for _, col := range info {
		types[strings.ToLower(col.Name)] = column{name: col.Name, sqlType: col.Type}
	}
	return types, nil
}

// recordValues validates the writable columns of data. id is never writable here.
func (sb *Sandbox) recordValues(tableName string, columns map[string]column, data map[string]any) (map[string]any, error) {
	values := make(map[string]any, len(data))
	for key, val := range data {
		lowerKey := strings.ToLower(key)
		if lowerKey == "id" {
			continue
		}
		if !core.IsValidIdentifier(key) {
			return nil, fmt.Errorf("%w: '%s'", ErrColumnNotFound, key)
		}
		col, exists := columns[lowerKey]
		if !exists {
			return nil, fmt.Errorf("%w: '%s'", ErrColumnNotFound, key)
		}
		if _, dup := values[col.name]; dup {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateColumn, col.name)
		}

		converted, err := columnValue(col.sqlType, sb.fieldType(tableName, col.name), val)
		if err != nil {
			customLog.Debugf("Storage: Record type error: Key: %s, Expected: %s, Got Type: %T", key, col.sqlType, val)
			return nil, fmt.Errorf("%w: column '%s' expects %s", ErrTypeMismatch, key, col.sqlType)
		}
		values[col.name] = converted
	}
	return values, nil
}

// columnValue checks a JSON value against a column and converts it for the driver.
func columnValue(sqlType string, fieldType domain.FieldType, val any) (any, error) {
	if val == nil {
		return nil, nil
	}
	if fieldType == domain.FieldBoolean {
		switch v := val.(type) {
		case bool:
			if v {
				return 1, nil
			}
			return 0, nil
		case float64:
			if v == 0 || v == 1 {
				return int64(v), nil
			}
		}
		return nil, ErrTypeMismatch
	}
	if fieldType == domain.FieldJSON {
		switch val.(type) {
		case map[string]any, []any:
			raw, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			return string(raw), nil
		}
	}

	switch sqlType {
	case "INTEGER":
		if v, ok := val.(float64); ok && math.Floor(v) == v {
			return int64(v), nil
		}
	case "REAL":
		if v, ok := val.(float64); ok {
			return v, nil
		}
	case "TEXT":
		if v, ok := val.(string); ok {
			return v, nil
		}
	default:
		return val, nil
	}
	return nil, ErrTypeMismatch
}

func filterValue(sqlType string, fieldType domain.FieldType, raw string) (any, error) {
	if fieldType == domain.FieldBoolean {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected true or false")
		}
		if b {
			return 1, nil
		}
		return 0, nil
	}
	switch sqlType {
	case "INTEGER":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected an integer")
		}
		return v, nil
	case "REAL":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number")
		}
		return v, nil
	default:
		return raw, nil
	}
}

func pageParams(q url.Values) (int, int, error) {
	limit, offset := DefaultRecordLimit, 0
	if raw := q.Get(ParamLimit); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > MaxRecordLimit {
			return 0, 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidFilterValue, MaxRecordLimit)
		}
		limit = v
	}
	if raw := q.Get(ParamOffset); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, fmt.Errorf("%w: offset must be a non-negative integer", ErrInvalidFilterValue)
		}
		offset = v
	}
	return limit, offset, nil
}

// scanRecord reads the current row into a map, turning text back into strings and boolean
// columns back into bools.
func (sb *Sandbox) scanRecord(tableName string, rows *sql.Rows) (map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed processing results: %w", err)
	}

	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	if err := rows.Scan(scanArgs...); err != nil {
		return nil, fmt.Errorf("failed reading record data: %w", err)
	}

	record := make(map[string]any, len(columns))
	for i, col := range columns {
		switch v := values[i].(type) {
		case []byte:
			record[col] = string(v)
		case int64:
			if sb.fieldType(tableName, col) == domain.FieldBoolean {
				record[col] = v != 0
			} else {
				record[col] = v
			}
		default:
			record[col] = v
		}
	}
	return record, nil
}

// quoteKeys quotes column names for squirrel's SetMap.
func quoteKeys(values map[string]any) map[string]any {
	quoted := make(map[string]any, len(values))
	for k, v := range values {
		quoted[quoteIdent(k)] = v
	}
	return quoted
}
