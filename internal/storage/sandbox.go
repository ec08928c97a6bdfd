// internal/storage/sandbox.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mattn/go-sqlite3"

	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/domain"
)

// Specific errors for sandbox operations
var (
	ErrSandboxNotFound     = errors.New("sandbox not found")
	ErrRecordNotFound      = errors.New("record not found")
	ErrTableNotFound       = errors.New("table not found")
	ErrColumnNotFound      = errors.New("column not found")
	ErrTypeMismatch        = errors.New("datatype mismatch")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidFilterValue  = errors.New("invalid value provided for filter")
	ErrEmptyRecord         = errors.New("record has no writable columns")
	ErrDuplicateColumn     = errors.New("column given more than once")
)

const (
	DefaultSandboxMax = 16
	DefaultSandboxTTL = 30 * time.Minute
)

// Sandboxes keeps one in-memory SQLite database per project, built from the project's
// generated schema. Least recently used and idle sandboxes are closed and forgotten.
type Sandboxes struct {
	cache *expirable.LRU[string, *Sandbox]
}

func NewSandboxes(size int, ttl time.Duration) *Sandboxes {
	if size <= 0 {
		size = DefaultSandboxMax
	}
	if ttl <= 0 {
		ttl = DefaultSandboxTTL
	}
	onEvict := func(projectID string, sb *Sandbox) {
		customLog.Printf("Storage: Closing sandbox for project %s", projectID)
		if err := sb.db.Close(); err != nil {
			customLog.Warnf("Storage: Error closing sandbox for project %s: %v", projectID, err)
		}
	}
	return &Sandboxes{cache: expirable.NewLRU[string, *Sandbox](size, onEvict, ttl)}
}

// Provision (re)creates the sandbox of project from its current schema. Any previous sandbox
// of the project is dropped with its data.
func (s *Sandboxes) Provision(ctx context.Context, project domain.Project) (*Sandbox, error) {
	migration, err := codegen.GenerateMigration(project.Schema, domain.SQLite)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.ExecContext(ctx, migration); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create sandbox schema for project %s: %v\nSQL: %s", project.ID, err, migration)
		return nil, fmt.Errorf("failed to create sandbox schema: %w", err)
	}

	sb := &Sandbox{
		ProjectID: project.ID,
		CreatedAt: time.Now().UTC(),
		db:        db,
		qb:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		tables:    make(map[string]domain.TableSchema, len(project.Schema)),
		now:       time.Now,
	}
	for _, t := range project.Schema {
		sb.tables[t.Name] = t
	}

	// Add does not evict a replaced value, so close the old sandbox first.
	s.cache.Remove(project.ID)
	s.cache.Add(project.ID, sb)
	customLog.Printf("Storage: Sandbox ready for project %s with %d tables", project.ID, len(project.Schema))
	return sb, nil
}

// Get returns the live sandbox of a project or ErrSandboxNotFound.
func (s *Sandboxes) Get(projectID string) (*Sandbox, error) {
	sb, ok := s.cache.Get(projectID)
	if !ok {
		return nil, ErrSandboxNotFound
	}
	return sb, nil
}

// Remove closes the sandbox of a project. It reports whether one existed.
func (s *Sandboxes) Remove(projectID string) bool {
	return s.cache.Remove(projectID)
}

func (s *Sandboxes) Len() int {
	return s.cache.Len()
}

// Sandbox is a scratch database holding a project's tables.
type Sandbox struct {
	ProjectID string
	CreatedAt time.Time

	db     *sql.DB
	qb     squirrel.StatementBuilderType
	tables map[string]domain.TableSchema
	now    func() time.Time
}

// ColumnInfo is one column as SQLite reports it.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"notNull"`
	PrimaryKey bool   `json:"primaryKey"`
	Default    string `json:"default,omitempty"`
}

// TableInfo describes a sandbox table and how many rows it holds.
type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
	Rows    int64        `json:"rows"`
}

// ListTables returns the sandbox tables in name order.
func (sb *Sandbox) ListTables(ctx context.Context) ([]TableInfo, error) {
	names := make([]string, 0, len(sb.tables))
	for name := range sb.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		columns, err := sb.tableInfo(ctx, name)
		if err != nil {
			return nil, err
		}

		query, args, err := sb.qb.Select("COUNT(*)").From(quoteIdent(name)).ToSql()
		if err != nil {
			return nil, fmt.Errorf("build count query: %w", err)
		}
		var rows int64
		if err := sb.db.QueryRowContext(ctx, query, args...).Scan(&rows); err != nil {
			customLog.Warnf("Storage: Error counting rows of sandbox table '%s': %v", name, err)
			return nil, fmt.Errorf("database error counting rows: %w", err)
		}
		tables = append(tables, TableInfo{Name: name, Columns: columns, Rows: rows})
	}
	return tables, nil
}

// tableInfo reads PRAGMA table_info for a table known to the project schema.
func (sb *Sandbox) tableInfo(ctx context.Context, tableName string) ([]ColumnInfo, error) {
	if _, ok := sb.tables[tableName]; !ok {
		return nil, ErrTableNotFound
	}

	rows, err := sb.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s);", quoteIdent(tableName)))
	if err != nil {
		customLog.Warnf("Storage: Failed PRAGMA for Table '%s': %v", tableName, err)
		return nil, fmt.Errorf("failed to retrieve schema: %w", err)
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var (
			cid       int
			col       ColumnInfo
			notnull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notnull, &dfltValue, &pk); err != nil {
			customLog.Warnf("Storage: Failed scanning PRAGMA for Table '%s': %v", tableName, err)
			return nil, fmt.Errorf("failed to parse schema: %w", err)
		}
		col.Type = strings.ToUpper(col.Type)
		col.NotNull = notnull == 1
		col.PrimaryKey = pk > 0
		col.Default = dfltValue.String
		columns = append(columns, col)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	if len(columns) == 0 {
		return nil, ErrTableNotFound
	}
	return columns, nil
}

// fieldType returns the generated type of a column, or "" for unknown columns.
// Column names match case-insensitively, as they do in SQLite.
func (sb *Sandbox) fieldType(tableName, column string) domain.FieldType {
	for _, f := range sb.tables[tableName].Fields {
		if strings.EqualFold(f.Name, column) {
			return f.Type
		}
	}
	return ""
}

// classify maps driver errors onto the storage sentinels.
func classify(err error, op string) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return ErrTableNotFound
	case strings.Contains(msg, "has no column named"), strings.Contains(msg, "no such column"):
		return ErrColumnNotFound
	case strings.Contains(msg, "datatype mismatch"):
		return ErrTypeMismatch
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %s", ErrConstraintViolation, msg)
	}
	return fmt.Errorf("database error during %s: %w", op, err)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
