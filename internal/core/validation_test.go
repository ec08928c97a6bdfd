// internal/core/validation_test.go
package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/rhinoback/rhinoback/internal/domain"
)

func TestIsValidIdentifier(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    bool
		comment string
	}{
		{"valid simple", "order_items", true, ""},
		{"valid with numbers", "table_123", true, ""},
		{"valid uppercase", "MY_TABLE", true, ""},
		{"valid underscore start", "_table", true, ""},
		{"valid number start", "123table", true, ""},
		{"valid short", "a", true, ""},
		{"valid long (64 chars)", strings.Repeat("a", 64), true, ""},
		{"invalid empty", "", false, "empty string"},
		{"invalid space", "my table", false, "contains space"},
		{"invalid hyphen", "my-table", false, "contains hyphen"},
		{"invalid quote", `users"; DROP TABLE x`, false, "contains quote"},
		{"invalid path separator", "table/name", false, "contains path separator"},
		{"invalid too long", strings.Repeat("a", 65), false, "exceeds 64 chars"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsValidIdentifier(tc.input)
			if got != tc.want {
				t.Errorf("IsValidIdentifier(%q) = %v; want %v. %s", tc.input, got, tc.want, tc.comment)
			}
		})
	}
}

func TestNormalizeFieldType(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantType domain.FieldType
		wantOk   bool
	}{
		{"exact", "Text", domain.FieldText, true},
		{"lower", "datetime", domain.FieldDateTime, true},
		{"upper", "UUID", domain.FieldUUID, true},
		{"padded", " Decimal ", domain.FieldDecimal, true},
		{"unknown", "VARCHAR", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotType, gotOk := NormalizeFieldType(tc.input)
			if gotOk != tc.wantOk || gotType != tc.wantType {
				t.Errorf("NormalizeFieldType(%q) = (%q, %v); want (%q, %v)", tc.input, gotType, gotOk, tc.wantType, tc.wantOk)
			}
		})
	}
}

func TestNormalizeDatabaseType(t *testing.T) {
	testCases := []struct {
		input  string
		want   domain.DatabaseType
		wantOk bool
	}{
		{"PostgreSQL", domain.PostgreSQL, true},
		{"postgres", domain.PostgreSQL, true},
		{"MongoDB", domain.MongoDB, true},
		{"Elastic", domain.Elasticsearch, true},
		{"oracle", "", false},
	}

	for _, tc := range testCases {
		got, ok := NormalizeDatabaseType(tc.input)
		if ok != tc.wantOk || got != tc.want {
			t.Errorf("NormalizeDatabaseType(%q) = (%q, %v); want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestNormalizeLevel(t *testing.T) {
	testCases := []struct {
		input domain.Level
		want  domain.Level
	}{
		{"High", domain.LevelHigh},
		{"high", domain.LevelHigh},
		{" LOW ", domain.LevelLow},
		{"", domain.LevelMedium},
		{"Critical", domain.LevelMedium},
	}

	for _, tc := range testCases {
		if got := NormalizeLevel(tc.input, domain.LevelMedium); got != tc.want {
			t.Errorf("NormalizeLevel(%q) = %q; want %q", tc.input, got, tc.want)
		}
	}
}

func TestValidateStructEnums(t *testing.T) {
	field := func(ft domain.FieldType) domain.TableSchema {
		return domain.TableSchema{Name: "users", Fields: []domain.FieldSchema{{Name: "id", Type: ft}}}
	}

	testCases := []struct {
		name    string
		input   any
		wantErr bool
	}{
		{"empty project", domain.Project{Name: "Shop"}, false},
		{"known values", domain.Project{Status: domain.ProjectDeployed, Schema: []domain.TableSchema{field(domain.FieldJSON)}, Database: domain.DatabaseConfig{Type: domain.Redis}}, false},
		{"unknown status", domain.Project{Status: "bogus"}, true},
		{"unknown engine", domain.DatabaseConfig{Type: "oracle"}, true},
		{"unknown field type", field("Money"), true},
		{"missing field type", field(""), true},
		{"unknown relationship", domain.TableSchema{Relationships: []domain.Relationship{{Type: "several"}}}, true},
		{"unknown message author", domain.ChatMessage{Type: "robot"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateStruct() error = %v; wantErr %v", err, tc.wantErr)
			}
			var verrs validator.ValidationErrors
			if err != nil && (!errors.As(err, &verrs) || verrs[0].Tag() != EnumTag) {
				t.Errorf("expected an %q validation error, got %v", EnumTag, err)
			}
		})
	}
}
