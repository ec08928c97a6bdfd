package domain

// FieldType is the semantic type of a field.
type FieldType string

const (
	FieldText     FieldType = "Text"
	FieldTextarea FieldType = "Textarea"
	FieldNumber   FieldType = "Number"
	FieldDecimal  FieldType = "Decimal"
	FieldEmail    FieldType = "Email"
	FieldPassword FieldType = "Password"
	FieldDate     FieldType = "Date"
	FieldDateTime FieldType = "DateTime"
	FieldBoolean  FieldType = "Boolean"
	FieldJSON     FieldType = "JSON"
	FieldFile     FieldType = "File"
	FieldUUID     FieldType = "UUID"
	FieldEnum     FieldType = "Enum"
)

// AllFieldTypes lists every field type in display order.
var AllFieldTypes = []FieldType{
	FieldText, FieldTextarea, FieldNumber, FieldDecimal, FieldEmail, FieldPassword,
	FieldDate, FieldDateTime, FieldBoolean, FieldJSON, FieldFile, FieldUUID, FieldEnum,
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	for _, known := range AllFieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RuleType is the kind of a validation rule.
type RuleType string

const (
	RulePattern   RuleType = "pattern"
	RuleMin       RuleType = "min"
	RuleMax       RuleType = "max"
	RuleMinLength RuleType = "minLength"
	RuleMaxLength RuleType = "maxLength"
	RuleCustom    RuleType = "custom"
)

// RelationshipType is the cardinality of a relationship.
type RelationshipType string

const (
	OneToOne   RelationshipType = "one-to-one"
	OneToMany  RelationshipType = "one-to-many"
	ManyToOne  RelationshipType = "many-to-one"
	ManyToMany RelationshipType = "many-to-many"
)

func (r RelationshipType) Valid() bool {
	switch r {
	case OneToOne, OneToMany, ManyToOne, ManyToMany:
		return true
	}
	return false
}

// DatabaseType identifies a storage engine.
type DatabaseType string

const (
	PostgreSQL    DatabaseType = "postgresql"
	MySQL         DatabaseType = "mysql"
	SQLite        DatabaseType = "sqlite"
	MongoDB       DatabaseType = "mongodb"
	Redis         DatabaseType = "redis"
	Pinecone      DatabaseType = "pinecone"
	InfluxDB      DatabaseType = "influxdb"
	Elasticsearch DatabaseType = "elasticsearch"
)

// AllDatabaseTypes lists every supported engine.
var AllDatabaseTypes = []DatabaseType{
	PostgreSQL, MySQL, SQLite, MongoDB, Redis, Pinecone, InfluxDB, Elasticsearch,
}

// Valid reports whether d is one of the known engines.
func (d DatabaseType) Valid() bool {
	for _, known := range AllDatabaseTypes {
		if d == known {
			return true
		}
	}
	return false
}

// MessageType is the author of a chat message.
type MessageType string

const (
	MessageUser   MessageType = "user"
	MessageAI     MessageType = "ai"
	MessageSystem MessageType = "system"
)

func (m MessageType) Valid() bool {
	return m == MessageUser || m == MessageAI || m == MessageSystem
}

// Level is the Low/Medium/High scale used by recommendation records.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Valid reports whether l is Low, Medium or High.
func (l Level) Valid() bool {
	return l == LevelLow || l == LevelMedium || l == LevelHigh
}
