package schemagen

import "strings"

// Singularize returns a best-effort singular form of a plural table name.
// Only the suffixes produced by the built-in archetypes are handled.
func Singularize(name string) string {
	switch {
	case name == "media" || name == "inventory" || name == "search_index":
		return name
	case strings.HasSuffix(name, "ies") && len(name) > 3:
		return strings.TrimSuffix(name, "ies") + "y"
	case strings.HasSuffix(name, "sses"):
		return strings.TrimSuffix(name, "es")
	case strings.HasSuffix(name, "ss"):
		return name
	case strings.HasSuffix(name, "s") && len(name) > 1:
		return strings.TrimSuffix(name, "s")
	}
	return name
}
