package store

import (
	"encoding/json"
	"fmt"

	"github.com/rhinoback/rhinoback/internal/domain"
)

type ActionType string

const (
	SetUser               ActionType = "SET_USER"
	SetLoading            ActionType = "SET_LOADING"
	SetOnboardingComplete ActionType = "SET_ONBOARDING_COMPLETE"
	SetCurrentProject     ActionType = "SET_CURRENT_PROJECT"
	AddProject            ActionType = "ADD_PROJECT"
	UpdateProject         ActionType = "UPDATE_PROJECT"
	DeleteProject         ActionType = "DELETE_PROJECT"
	AddChatMessage        ActionType = "ADD_CHAT_MESSAGE"
	SetAITyping           ActionType = "SET_AI_TYPING"
	ClearChat             ActionType = "CLEAR_CHAT"
	ToggleSidebar         ActionType = "TOGGLE_SIDEBAR"
	SetActiveTab          ActionType = "SET_ACTIVE_TAB"
	SetSearchQuery        ActionType = "SET_SEARCH_QUERY"
	UpdateSchema          ActionType = "UPDATE_SCHEMA"
	UpdateEndpoints       ActionType = "UPDATE_ENDPOINTS"
	UpdateDatabase        ActionType = "UPDATE_DATABASE"
)

// AllActionTypes lists every action the reducer understands.
var AllActionTypes = []ActionType{
	SetUser, SetLoading, SetOnboardingComplete, SetCurrentProject,
	AddProject, UpdateProject, DeleteProject,
	AddChatMessage, SetAITyping, ClearChat,
	ToggleSidebar, SetActiveTab, SetSearchQuery,
	UpdateSchema, UpdateEndpoints, UpdateDatabase,
}

// changesSnapshot reports whether the action can change projects or chat messages.
func (t ActionType) changesSnapshot() bool {
	switch t {
	case SetCurrentProject, AddProject, UpdateProject, DeleteProject,
		AddChatMessage, ClearChat,
		UpdateSchema, UpdateEndpoints, UpdateDatabase:
		return true
	}
	return false
}

// Action is one state transition request, as dispatched over HTTP or in process.
type Action struct {
	Type    ActionType      `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewAction encodes payload for the given action type.
func NewAction(t ActionType, payload any) (Action, error) {
	if payload == nil {
		return Action{Type: t}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Action{}, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return Action{Type: t, Payload: raw}, nil
}

// ProjectPatch is the payload of UPDATE_PROJECT. Nil fields are left unchanged.
type ProjectPatch struct {
	ID          string                 `json:"id"`
	Name        *string                `json:"name,omitempty"`
	Description *string                `json:"description,omitempty"`
	Status      *domain.ProjectStatus  `json:"status,omitempty" binding:"omitempty,enum"`
	Schema      *[]domain.TableSchema  `json:"schema,omitempty" binding:"omitempty,dive"`
	Endpoints   *[]domain.ApiEndpoint  `json:"endpoints,omitempty"`
	Database    *domain.DatabaseConfig `json:"database,omitempty" binding:"omitempty"`
	Deployment  *domain.DeploymentInfo `json:"deployment,omitempty"`
}

func (p ProjectPatch) apply(project domain.Project) domain.Project {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
	if p.Schema != nil {
		project.Schema = *p.Schema
	}
	if p.Endpoints != nil {
		project.Endpoints = *p.Endpoints
	}
	if p.Database != nil {
		project.Database = *p.Database
	}
	if p.Deployment != nil {
		d := *p.Deployment
		project.Deployment = &d
	}
	return project
}
