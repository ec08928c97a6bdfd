// internal/core/validation.go
package core

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rhinoback/rhinoback/internal/domain"
)

// EnumTag is the struct tag validating closed string enums (domain.FieldType, domain.DatabaseType, ...).
const EnumTag = "enum"

// enum is implemented by every closed string enum of the domain package.
type enum interface {
	Valid() bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations adds the custom tags to v. The API registers them on gin's validator.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(EnumTag, isValidEnum)
}

func isValidEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.CanInterface() {
		return false
	}
	e, ok := field.Interface().(enum)
	return ok && e.Valid()
}

// ValidateStruct checks s against its binding tags, the same rules gin applies to request bodies.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// Regular expression for valid table/field names (alphanumeric + underscore)
var nameValidationRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Engine aliases accepted from model output and user input (lower-case keys).
var databaseAliases = map[string]domain.DatabaseType{
	"postgres":      domain.PostgreSQL,
	"postgresql":    domain.PostgreSQL,
	"pg":            domain.PostgreSQL,
	"mysql":         domain.MySQL,
	"mariadb":       domain.MySQL,
	"sqlite":        domain.SQLite,
	"sqlite3":       domain.SQLite,
	"mongodb":       domain.MongoDB,
	"mongo":         domain.MongoDB,
	"redis":         domain.Redis,
	"pinecone":      domain.Pinecone,
	"influxdb":      domain.InfluxDB,
	"influx":        domain.InfluxDB,
	"elasticsearch": domain.Elasticsearch,
	"elastic":       domain.Elasticsearch,
}

// IsValidIdentifier checks if a string is a valid identifier (e.g., table_name, field_name)
// Applies basic format and length checks.
func IsValidIdentifier(name string) bool {
	return nameValidationRegex.MatchString(name) && len(name) > 0 && len(name) <= 64
}

// NormalizeFieldType matches a field type case-insensitively, returning its canonical spelling.
func NormalizeFieldType(fieldType string) (domain.FieldType, bool) {
	trimmed := strings.TrimSpace(fieldType)
	for _, known := range domain.AllFieldTypes {
		if strings.EqualFold(string(known), trimmed) {
			return known, true
		}
	}
	return "", false
}

// NormalizeDatabaseType maps an engine name or common alias to its identifier.
func NormalizeDatabaseType(name string) (domain.DatabaseType, bool) {
	dbType, ok := databaseAliases[strings.ToLower(strings.TrimSpace(name))]
	return dbType, ok
}

// NormalizeLevel matches Low/Medium/High case-insensitively and returns def for anything else.
func NormalizeLevel(level domain.Level, def domain.Level) domain.Level {
	for _, known := range []domain.Level{domain.LevelLow, domain.LevelMedium, domain.LevelHigh} {
		if strings.EqualFold(string(known), strings.TrimSpace(string(level))) {
			return known
		}
	}
	return def
}
