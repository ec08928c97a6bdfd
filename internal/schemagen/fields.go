package schemagen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rhinoback/rhinoback/internal/domain"
)

// Anchored on both ends; whitespace is never part of an address or URL.
const (
	EmailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	URLPattern   = `^https?://\S+$`
)

// StatusOptions are the enum values of generated status fields.
var StatusOptions = []string{"active", "inactive", "pending", "deleted"}

var newID = func() string { return uuid.NewString()[:8] }

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// GenerateFieldSchema derives a typed field from its name. Tests run in order, first match wins;
// anything unmatched becomes a required Text field.
func GenerateFieldSchema(entityName, fieldName string) domain.FieldSchema {
	field := domain.FieldSchema{
		ID:   fmt.Sprintf("%s_%s_%s", entityName, fieldName, newID()),
		Name: fieldName,
	}

	switch {
	case fieldName == "id":
		field.Type = domain.FieldUUID
		field.IsPrimary = true
		field.IsRequired = true
		field.IsUnique = true
		field.Description = "Unique identifier"

	case strings.Contains(fieldName, "email"):
		field.Type = domain.FieldEmail
		field.IsRequired = true
		field.IsUnique = true
		field.Description = "Email address"
		field.Validation = []domain.ValidationRule{
			{Type: domain.RulePattern, Value: EmailPattern, Message: "Must be a valid email"},
		}

	case strings.Contains(fieldName, "password"):
		field.Type = domain.FieldPassword
		field.IsRequired = true
		field.Description = "Hashed password"
		field.Validation = []domain.ValidationRule{
			{Type: domain.RuleMinLength, Value: float64(8), Message: "Password must be at least 8 characters"},
		}

	case containsAny(fieldName, "created", "updated", "date"):
		field.Type = domain.FieldDateTime
		field.IsRequired = true
		field.Description = "Timestamp"

	case containsAny(fieldName, "count", "quantity", "amount", "price"):
		field.Type = domain.FieldNumber
		if containsAny(fieldName, "price", "amount") {
			field.Type = domain.FieldDecimal
		}
		field.IsRequired = true
		field.Description = "Numeric value"
		if strings.Contains(fieldName, "price") {
			field.Description = "Price in cents"
		}
		field.Validation = []domain.ValidationRule{
			{Type: domain.RuleMin, Value: float64(0), Message: "Must be positive"},
		}

	case containsAny(fieldName, "description", "content", "bio"):
		field.Type = domain.FieldTextarea
		field.Description = "Long text content"

	case containsAny(fieldName, "active", "enabled", "verified"):
		field.Type = domain.FieldBoolean
		field.DefaultValue = false
		field.Description = "Boolean flag"

	case containsAny(fieldName, "url", "link"):
		field.Type = domain.FieldText
		field.Description = "URL or link"
		field.Validation = []domain.ValidationRule{
			{Type: domain.RulePattern, Value: URLPattern, Message: "Must be a valid URL"},
		}

	case strings.Contains(fieldName, "status"):
		field.Type = domain.FieldEnum
		field.IsRequired = true
		field.EnumOptions = append([]string(nil), StatusOptions...)
		field.DefaultValue = "active"
		field.Description = "Status value"

	default:
		field.Type = domain.FieldText
		field.IsRequired = true
		field.Description = fieldName + " field"
	}

	return field
}
