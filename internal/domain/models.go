// internal/domain/models.go
package domain

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectDraft    ProjectStatus = "draft"
	ProjectBuilding ProjectStatus = "building"
	ProjectDeployed ProjectStatus = "deployed"
	ProjectError    ProjectStatus = "error"
)

// Valid reports whether s is one of the project lifecycle states.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectDraft, ProjectBuilding, ProjectDeployed, ProjectError:
		return true
	}
	return false
}

// Project is the unit the user builds. It owns its schema, endpoints and database config.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      ProjectStatus   `json:"status" binding:"omitempty,enum"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Schema      []TableSchema   `json:"schema" binding:"dive"`
	Endpoints   []ApiEndpoint   `json:"endpoints"`
	Database    DatabaseConfig  `json:"database"`
	Deployment  *DeploymentInfo `json:"deployment,omitempty"`
}

// TableSchema describes one generated table.
// Fields always start with the UUID primary key named "id".
type TableSchema struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Fields        []FieldSchema  `json:"fields" binding:"dive"`
	Relationships []Relationship `json:"relationships" binding:"dive"`
	Indexes       []Index        `json:"indexes"`
	Position      *Position      `json:"position,omitempty"`
	Color         string         `json:"color,omitempty"`
	EstimatedRows int            `json:"estimatedRows,omitempty"`
}

// Position is the layout coordinate of a table in the schema canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FieldSchema describes one column of a table.
type FieldSchema struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Type              FieldType        `json:"type" binding:"enum"`
	IsPrimary         bool             `json:"isPrimary,omitempty"`
	IsRequired        bool             `json:"isRequired,omitempty"`
	IsUnique          bool             `json:"isUnique,omitempty"`
	IsForeignKey      bool             `json:"isForeignKey,omitempty"`
	DefaultValue      any              `json:"defaultValue,omitempty"`
	Description       string           `json:"description,omitempty"`
	Validation        []ValidationRule `json:"validation,omitempty"`
	EnumOptions       []string         `json:"enumOptions,omitempty"`
	HasIndex          bool             `json:"hasIndex,omitempty"`
	MaxFileSize       int64            `json:"maxFileSize,omitempty"`
	AcceptedFileTypes []string         `json:"acceptedFileTypes,omitempty"`
}

// ValidationRule is a single constraint on a field. Value holds a string or a float64.
type ValidationRule struct {
	Type    RuleType `json:"type"`
	Value   any      `json:"value"`
	Message string   `json:"message,omitempty"`
}

// Relationship is a typed edge from the owning table to TargetTable.
type Relationship struct {
	Type        RelationshipType `json:"type" binding:"enum"`
	TargetTable string           `json:"targetTable"`
	SourceField string           `json:"sourceField"`
	TargetField string           `json:"targetField"`
}

// Index is a (possibly unique) index over an ordered field list.
type Index struct {
	Name     string   `json:"name"`
	Fields   []string `json:"fields"`
	IsUnique bool     `json:"isUnique"`
}

// ApiEndpoint is one generated REST endpoint.
type ApiEndpoint struct {
	Method      string         `json:"method"`
	Path        string         `json:"path"`
	Description string         `json:"description"`
	Group       string         `json:"group"`
	Auth        bool           `json:"auth"`
	Parameters  []string       `json:"parameters"`
	Responses   map[string]any `json:"responses"`
}

// Credentials for a database connection.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DatabaseConfig is the storage engine chosen for a project.
type DatabaseConfig struct {
	Type        DatabaseType `json:"type" binding:"omitempty,enum"`
	Host        string       `json:"host,omitempty"`
	Port        int          `json:"port,omitempty"`
	Database    string       `json:"database,omitempty"`
	Credentials *Credentials `json:"credentials,omitempty"`
	Reasoning   string       `json:"reasoning,omitempty"`
	Features    []string     `json:"features,omitempty"`
}

// DeploymentInfo is informational only; deployments are not performed by this service.
type DeploymentInfo struct {
	URL         string    `json:"url"`
	Status      string    `json:"status"`
	LastDeploy  time.Time `json:"lastDeploy"`
	Environment string    `json:"environment"`
}

// ChatMessage is one entry of the assistant conversation.
type ChatMessage struct {
	ID        string           `json:"id"`
	Type      MessageType      `json:"type" binding:"enum"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// MessageMetadata counts what an assistant message produced.
type MessageMetadata struct {
	TablesGenerated  int    `json:"tablesGenerated,omitempty"`
	EndpointsCreated int    `json:"endpointsCreated,omitempty"`
	Action           string `json:"action,omitempty"`
}

// User is the (decorative) signed-in user shown by the UI.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Plan   string `json:"plan"`
}

// TableNames returns the names of the given tables in order.
func TableNames(tables []TableSchema) []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	return names
}
