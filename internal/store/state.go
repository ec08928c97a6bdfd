package store

import (
	"errors"
	"maps"
	"slices"

	"github.com/rhinoback/rhinoback/internal/domain"
)

var ErrProjectNotFound = errors.New("project not found")

// Tab is the workspace panel shown next to the chat.
type Tab string

const (
	TabSchema    Tab = "schema"
	TabAPI       Tab = "api"
	TabAnalytics Tab = "analytics"
)

func (t Tab) Valid() bool {
	switch t {
	case TabSchema, TabAPI, TabAnalytics:
		return true
	}
	return false
}

// State is the whole application state. Values returned by the Store are copies.
type State struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`

	IsLoading              bool `json:"isLoading"`
	HasCompletedOnboarding bool `json:"hasCompletedOnboarding"`

	CurrentProject *domain.Project  `json:"currentProject"`
	Projects       []domain.Project `json:"projects"`

	ChatMessages []domain.ChatMessage `json:"chatMessages"`
	IsAITyping   bool                 `json:"isAiTyping"`

	SidebarCollapsed      bool `json:"sidebarCollapsed"`
	ActiveTab             Tab  `json:"activeTab"`
	PreviewPanelCollapsed bool `json:"previewPanelCollapsed"`

	SearchQuery    string   `json:"searchQuery"`
	SelectedTables []string `json:"selectedTables"`
}

// InitialState is the state of a fresh session.
func InitialState() State {
	return State{
		Projects:       []domain.Project{},
		ChatMessages:   []domain.ChatMessage{},
		ActiveTab:      TabSchema,
		SelectedTables: []string{},
	}
}

// clone copies the slices and pointers a reader could otherwise alias.
func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.CurrentProject != nil {
		p := cloneProject(*s.CurrentProject)
		out.CurrentProject = &p
	}
	if s.Projects != nil {
		out.Projects = make([]domain.Project, len(s.Projects))
		for i, p := range s.Projects {
			out.Projects[i] = cloneProject(p)
		}
	}
	out.ChatMessages = slices.Clone(s.ChatMessages)
	for i, m := range out.ChatMessages {
		if m.Metadata != nil {
			md := *m.Metadata
			out.ChatMessages[i].Metadata = &md
		}
	}
	out.SelectedTables = slices.Clone(s.SelectedTables)
	return out
}

// cloneProject copies the slices, maps and pointers held by p and its tables.
func cloneProject(p domain.Project) domain.Project {
	if p.Schema != nil {
		p.Schema = make([]domain.TableSchema, len(p.Schema))
		for i, t := range p.Schema {
			p.Schema[i] = cloneTable(t)
		}
	}
	if p.Endpoints != nil {
		p.Endpoints = slices.Clone(p.Endpoints)
		for i, e := range p.Endpoints {
			p.Endpoints[i].Parameters = slices.Clone(e.Parameters)
			p.Endpoints[i].Responses = maps.Clone(e.Responses)
		}
	}
	p.Database.Features = slices.Clone(p.Database.Features)
	if p.Database.Credentials != nil {
		c := *p.Database.Credentials
		p.Database.Credentials = &c
	}
	if p.Deployment != nil {
		d := *p.Deployment
		p.Deployment = &d
	}
	return p
}

func cloneTable(t domain.TableSchema) domain.TableSchema {
	if t.Fields != nil {
		t.Fields = slices.Clone(t.Fields)
		for i, f := range t.Fields {
			t.Fields[i].Validation = slices.Clone(f.Validation)
			t.Fields[i].EnumOptions = slices.Clone(f.EnumOptions)
			t.Fields[i].AcceptedFileTypes = slices.Clone(f.AcceptedFileTypes)
		}
	}
	t.Relationships = slices.Clone(t.Relationships)
	if t.Indexes != nil {
		t.Indexes = slices.Clone(t.Indexes)
		for i, idx := range t.Indexes {
			t.Indexes[i].Fields = slices.Clone(idx.Fields)
		}
	}
	if t.Position != nil {
		pos := *t.Position
		t.Position = &pos
	}
	return t
}

// FindProject returns the project with the given id.
func (s State) FindProject(id string) (domain.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}
