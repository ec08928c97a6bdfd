package advisor

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://rhinoback.dev/schemas/"

var responseSchemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		panic(err)
	}

	compiler := jsonschema.NewCompiler()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		raw, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			panic(err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			panic(fmt.Sprintf("schema %s: %v", e.Name(), err))
		}
		if err := compiler.AddResource(schemaBaseURL+e.Name(), doc); err != nil {
			panic(fmt.Sprintf("schema %s: %v", e.Name(), err))
		}
		names = append(names, e.Name())
	}

	schemas := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		schemas[strings.TrimSuffix(name, ".json")] = compiler.MustCompile(schemaBaseURL + name)
	}
	return schemas
}

// validateShape checks the decoded model answer against the named response schema.
func validateShape(name string, raw []byte) error {
	schema, ok := responseSchemas[name]
	if !ok {
		return fmt.Errorf("no response schema named %q", name)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: not JSON: %v", ErrInvalidResponse, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
