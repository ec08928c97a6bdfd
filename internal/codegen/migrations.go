package codegen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
)

var ErrInvalidIdentifier = errors.New("invalid table or field name")

type dialect struct {
	name        string
	quote       func(string) string
	types       map[domain.FieldType]string
	inlineFKs   bool
	ifNotExists bool
}

var postgresDialect = dialect{
	name:  "postgresql",
	quote: func(s string) string { return `"` + s + `"` },
	types: map[domain.FieldType]string{
		domain.FieldText:     "VARCHAR(255)",
		domain.FieldTextarea: "TEXT",
		domain.FieldNumber:   "INTEGER",
		domain.FieldDecimal:  "NUMERIC(12,2)",
		domain.FieldEmail:    "VARCHAR(255)",
		domain.FieldPassword: "VARCHAR(255)",
		domain.FieldDate:     "DATE",
		domain.FieldDateTime: "TIMESTAMPTZ",
		domain.FieldBoolean:  "BOOLEAN",
		domain.FieldJSON:     "JSONB",
		domain.FieldFile:     "TEXT",
		domain.FieldUUID:     "UUID",
		domain.FieldEnum:     "VARCHAR(50)",
	},
	ifNotExists: true,
}

var mysqlDialect = dialect{
	name:  "mysql",
	quote: func(s string) string { return "`" + s + "`" },
	types: map[domain.FieldType]string{
		domain.FieldText:     "VARCHAR(255)",
		domain.FieldTextarea: "TEXT",
		domain.FieldNumber:   "INT",
		domain.FieldDecimal:  "DECIMAL(12,2)",
		domain.FieldEmail:    "VARCHAR(255)",
		domain.FieldPassword: "VARCHAR(255)",
		domain.FieldDate:     "DATE",
		domain.FieldDateTime: "DATETIME",
		domain.FieldBoolean:  "BOOLEAN",
		domain.FieldJSON:     "JSON",
		domain.FieldFile:     "TEXT",
		domain.FieldUUID:     "CHAR(36)",
		domain.FieldEnum:     "VARCHAR(50)",
	},
}

var sqliteDialect = dialect{
	name:  "sqlite",
	quote: func(s string) string { return `"` + s + `"` },
	types: map[domain.FieldType]string{
		domain.FieldText:     "TEXT",
		domain.FieldTextarea: "TEXT",
		domain.FieldNumber:   "INTEGER",
		domain.FieldDecimal:  "REAL",
		domain.FieldEmail:    "TEXT",
		domain.FieldPassword: "TEXT",
		domain.FieldDate:     "TEXT",
		domain.FieldDateTime: "TEXT",
		domain.FieldBoolean:  "INTEGER",
		domain.FieldJSON:     "TEXT",
		domain.FieldFile:     "TEXT",
		domain.FieldUUID:     "TEXT",
		domain.FieldEnum:     "TEXT",
	},
	inlineFKs:   true,
	ifNotExists: true,
}

func dialectFor(dbType domain.DatabaseType) dialect {
	switch dbType {
	case domain.MySQL:
		return mysqlDialect
	case domain.SQLite:
		return sqliteDialect
	default:
		return postgresDialect
	}
}

// GenerateMigration renders CREATE TABLE / CREATE INDEX statements for the schema.
// Engines without a SQL dialect get the PostgreSQL rendering as a reference schema.
func GenerateMigration(tables []domain.TableSchema, dbType domain.DatabaseType) (string, error) {
	d := dialectFor(dbType)
	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		if !core.IsValidIdentifier(t.Name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, t.Name)
		}
		for _, f := range t.Fields {
			if !core.IsValidIdentifier(f.Name) {
				return "", fmt.Errorf("%w: %q.%q", ErrInvalidIdentifier, t.Name, f.Name)
			}
		}
		known[t.Name] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Initial schema (%s)\n", d.name)
	if dbType != "" && dialectFor(dbType).name != string(dbType) {
		fmt.Fprintf(&b, "-- %s has no SQL dialect; this is a reference schema\n", dbType)
	}

	var foreignKeys []string
	for _, t := range tables {
		b.WriteString("\n")
		fks := writeCreateTable(&b, d, t, known)
		foreignKeys = append(foreignKeys, fks...)
		writeIndexes(&b, d, t)
	}

	if len(foreignKeys) > 0 {
		b.WriteString("\n")
		for _, stmt := range foreignKeys {
			b.WriteString(stmt)
		}
	}
	return b.String(), nil
}

// writeCreateTable returns the ALTER TABLE statements for foreign keys when the dialect does not inline them.
func writeCreateTable(b *strings.Builder, d dialect, t domain.TableSchema, known map[string]bool) []string {
	references := map[string]string{}
	for _, rel := range t.Relationships {
		if rel.SourceField == "id" || !known[rel.TargetTable] || !hasField(t, rel.SourceField) {
			continue
		}
		references[rel.SourceField] = rel.TargetTable
	}

	create := "CREATE TABLE "
	if d.ifNotExists {
		create += "IF NOT EXISTS "
	}
	fmt.Fprintf(b, "%s%s (\n", create, d.quote(t.Name))

	lines := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		lines = append(lines, "  "+columnDefinition(d, f, references[f.Name]))
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")

	if d.inlineFKs {
		return nil
	}
	var stmts []string
	for _, f := range t.Fields {
		target, ok := references[f.Name]
		if !ok {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s);\n",
			d.quote(t.Name), d.quote(fmt.Sprintf("%s_%s_fkey", t.Name, f.Name)), d.quote(f.Name), d.quote(target), d.quote("id")))
	}
	return stmts
}

func columnDefinition(d dialect, f domain.FieldSchema, references string) string {
	sqlType, ok := d.types[f.Type]
	if !ok {
		sqlType = d.types[domain.FieldText]
	}
	parts := []string{d.quote(f.Name), sqlType}
	if f.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
	} else {
		if f.IsRequired {
			parts = append(parts, "NOT NULL")
		}
		if f.IsUnique {
			parts = append(parts, "UNIQUE")
		}
	}
	if def, ok := sqlDefault(f.DefaultValue); ok {
		parts = append(parts, "DEFAULT "+def)
	}
	if f.Type == domain.FieldEnum && len(f.EnumOptions) > 0 {
		quoted := make([]string, 0, len(f.EnumOptions))
		for _, o := range f.EnumOptions {
			quoted = append(quoted, sqlString(o))
		}
		parts = append(parts, fmt.Sprintf("CHECK (%s IN (%s))", d.quote(f.Name), strings.Join(quoted, ", ")))
	}
	if references != "" && d.inlineFKs {
		parts = append(parts, fmt.Sprintf("REFERENCES %s (%s)", d.quote(references), d.quote("id")))
	}
	return strings.Join(parts, " ")
}

func writeIndexes(b *strings.Builder, d dialect, t domain.TableSchema) {
	for _, idx := range t.Indexes {
		if idx.Name == t.Name+"_pkey" || len(idx.Fields) == 0 {
			continue
		}
		cols := make([]string, 0, len(idx.Fields))
		for _, f := range idx.Fields {
			cols = append(cols, d.quote(f))
		}
		stmt := "CREATE "
		if idx.IsUnique {
			stmt += "UNIQUE "
		}
		stmt += "INDEX "
		if d.ifNotExists {
			stmt += "IF NOT EXISTS "
		}
		fmt.Fprintf(b, "%s%s ON %s (%s);\n", stmt, d.quote(idx.Name), d.quote(t.Name), strings.Join(cols, ", "))
	}
}

func hasField(t domain.TableSchema, name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func sqlDefault(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		if val {
			return "TRUE", true
		}
		return "FALSE", true
	case string:
		return sqlString(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	default:
		return "", false
	}
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
