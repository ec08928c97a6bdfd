package codegen

import (
	"encoding/json"
	"fmt"

	"github.com/rhinoback/rhinoback/internal/domain"
)

type dependency struct {
	name    string
	version string
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

const expressInstructions = `Setup Instructions:
1. npm install
2. Copy .env.example to .env and configure database
3. npm run dev`

// expressDependencies returns runtime dependencies in install order.
func expressDependencies(dbType domain.DatabaseType, includeAuth bool) []dependency {
	deps := []dependency{
		{"express", "^4.18.2"},
		{"cors", "^2.8.5"},
		{"helmet", "^7.0.0"},
		{"dotenv", "^16.3.1"},
	}
	switch dbType {
	case domain.PostgreSQL:
		deps = append(deps, dependency{"pg", "^8.11.3"})
	case domain.MySQL:
		deps = append(deps, dependency{"mysql2", "^3.6.0"})
	case domain.MongoDB:
		deps = append(deps, dependency{"mongoose", "^7.5.0"})
	}
	if includeAuth {
		deps = append(deps, dependency{"jsonwebtoken", "^9.0.2"}, dependency{"bcrypt", "^5.1.1"})
	}
	return deps
}

func expressDevDependencies(typescript, includeTests bool) map[string]string {
	dev := map[string]string{"nodemon": "^3.0.1"}
	if typescript {
		dev["typescript"] = "^5.2.2"
		dev["@types/node"] = "^20.6.0"
		dev["@types/express"] = "^4.17.17"
		dev["@types/cors"] = "^2.8.14"
		dev["ts-node-dev"] = "^2.0.0"
	}
	if includeTests {
		dev["jest"] = "^29.7.0"
		dev["supertest"] = "^6.3.3"
	}
	return dev
}

type expressData struct {
	Project    domain.Project
	TypeScript bool
	Framework  Framework
	Table      domain.TableSchema
}

func generateExpress(req Request) (*GeneratedCode, error) {
	ts := req.Language == TypeScript
	ext := "js"
	if ts {
		ext = "ts"
	}

	deps := expressDependencies(req.Project.Database.Type, req.IncludeAuth)
	pkg := packageJSON{
		Name:        PackageName(req.Project.Name),
		Version:     "1.0.0",
		Description: req.Project.Description,
		Main:        "src/app." + ext,
		Scripts: map[string]string{
			"dev":   "nodemon src/app.js",
			"build": "echo 'No build step needed'",
			"start": "node src/app.js",
			"test":  "echo 'No tests specified'",
		},
		Dependencies:    make(map[string]string, len(deps)),
		DevDependencies: expressDevDependencies(ts, req.IncludeTests),
	}
	if ts {
		pkg.Scripts["dev"] = "ts-node-dev src/app.ts"
		pkg.Scripts["build"] = "tsc"
		pkg.Scripts["start"] = "node dist/app.js"
	}
	if req.IncludeTests {
		pkg.Scripts["test"] = "jest"
	}
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		pkg.Dependencies[d.name] = d.version
		names = append(names, d.name)
	}

	pkgContent, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}

	data := expressData{Project: req.Project, TypeScript: ts, Framework: req.Framework}
	if data.Framework == "" {
		data.Framework = Express
	}

	appCode, err := render("app", expressAppTemplate, data)
	if err != nil {
		return nil, err
	}

	files := []File{
		{Path: "package.json", Content: string(pkgContent), Description: "Package configuration and dependencies"},
		{Path: "src/app." + ext, Content: appCode, Description: "Main application entry point"},
	}

	for _, table := range req.Project.Schema {
		data.Table = table
		route, err := render("route", expressRouteTemplate, data)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Path:        fmt.Sprintf("src/routes/%s.%s", RouteName(table), ext),
			Content:     route,
			Description: "CRUD routes for " + table.Name,
		})
	}

	env, err := render("env", envTemplate, req.Project.Database)
	if err != nil {
		return nil, err
	}
	files = append(files, File{Path: ".env.example", Content: env, Description: "Environment variables template"})

	if ts {
		files = append(files, File{Path: "tsconfig.json", Content: tsConfig, Description: "TypeScript configuration"})
	}

	readme, err := render("readme", readmeTemplate, data)
	if err != nil {
		return nil, err
	}
	files = append(files, File{Path: "README.md", Content: readme, Description: "Project documentation"})

	return &GeneratedCode{
		Files:        files,
		Instructions: expressInstructions,
		Dependencies: names,
	}, nil
}
