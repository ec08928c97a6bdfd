package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
)

var ErrInvalidPayload = errors.New("invalid action payload")

// Reduce applies a to s and returns the next state. s is never modified.
// Unknown action types return s unchanged.
func Reduce(s State, a Action, now time.Time) (State, error) {
	next := s

	switch a.Type {
	case SetUser:
		user, err := decodeNullable[domain.User](a)
		if err != nil {
			return s, err
		}
		next.User = user
		next.IsAuthenticated = user != nil

	case SetLoading:
		v, err := decode[bool](a)
		if err != nil {
			return s, err
		}
		next.IsLoading = v

	case SetOnboardingComplete:
		v, err := decode[bool](a)
		if err != nil {
			return s, err
		}
		next.HasCompletedOnboarding = v

	case SetCurrentProject:
		p, err := decodeNullable[domain.Project](a)
		if err != nil {
			return s, err
		}
		if p != nil {
			if err := validPayload(a, *p); err != nil {
				return s, err
			}
		}
		next.CurrentProject = p

	case AddProject:
		p, err := decode[domain.Project](a)
		if err != nil {
			return s, err
		}
		if p.ID == "" {
			return s, fmt.Errorf("%w: project id is required", ErrInvalidPayload)
		}
		if err := validPayload(a, p); err != nil {
			return s, err
		}
		next.Projects = append(slices.Clone(s.Projects), p)
		next.CurrentProject = &p

	case UpdateProject:
		patch, err := decode[ProjectPatch](a)
		if err != nil {
			return s, err
		}
		if patch.ID == "" {
			return s, fmt.Errorf("%w: project id is required", ErrInvalidPayload)
		}
		if err := validPayload(a, patch); err != nil {
			return s, err
		}
		next.Projects = make([]domain.Project, len(s.Projects))
		for i, p := range s.Projects {
			if p.ID == patch.ID {
				p = patch.apply(p)
				p.UpdatedAt = now
			}
			next.Projects[i] = p
		}
		if s.CurrentProject != nil && s.CurrentProject.ID == patch.ID {
			p := patch.apply(*s.CurrentProject)
			p.UpdatedAt = now
			next.CurrentProject = &p
		}

	case DeleteProject:
		id, err := decode[string](a)
		if err != nil {
			return s, err
		}
		next.Projects = slices.DeleteFunc(slices.Clone(s.Projects), func(p domain.Project) bool { return p.ID == id })
		if s.CurrentProject != nil && s.CurrentProject.ID == id {
			next.CurrentProject = nil
		}

	case AddChatMessage:
		m, err := decode[domain.ChatMessage](a)
		if err != nil {
			return s, err
		}
		if err := validPayload(a, m); err != nil {
			return s, err
		}
		next.ChatMessages = append(slices.Clone(s.ChatMessages), m)

	case SetAITyping:
		v, err := decode[bool](a)
		if err != nil {
			return s, err
		}
		next.IsAITyping = v

	case ClearChat:
		next.ChatMessages = []domain.ChatMessage{}

	case ToggleSidebar:
		next.SidebarCollapsed = !s.SidebarCollapsed

	case SetActiveTab:
		tab, err := decode[Tab](a)
		if err != nil {
			return s, err
		}
		if !tab.Valid() {
			return s, fmt.Errorf("%w: unknown tab %q", ErrInvalidPayload, tab)
		}
		next.ActiveTab = tab

	case SetSearchQuery:
		q, err := decode[string](a)
		if err != nil {
			return s, err
		}
		next.SearchQuery = q

	case UpdateSchema:
		tables, err := decode[[]domain.TableSchema](a)
		if err != nil {
			return s, err
		}
		for _, t := range tables {
			if err := validPayload(a, t); err != nil {
				return s, err
			}
		}
		return updateCurrent(s, now, func(p *domain.Project) { p.Schema = tables }), nil

	case UpdateEndpoints:
		endpoints, err := decode[[]domain.ApiEndpoint](a)
		if err != nil {
			return s, err
		}
		return updateCurrent(s, now, func(p *domain.Project) { p.Endpoints = endpoints }), nil

	case UpdateDatabase:
		db, err := decode[domain.DatabaseConfig](a)
		if err != nil {
			return s, err
		}
		if err := validPayload(a, db); err != nil {
			return s, err
		}
		return updateCurrent(s, now, func(p *domain.Project) { p.Database = db }), nil
	}

	return next, nil
}

// updateCurrent changes the current project and its entry in Projects.
// Without a current project the state is returned unchanged.
func updateCurrent(s State, now time.Time, change func(p *domain.Project)) State {
	if s.CurrentProject == nil {
		return s
	}

	next := s
	current := *s.CurrentProject
	change(&current)
	current.UpdatedAt = now
	next.CurrentProject = &current

	next.Projects = make([]domain.Project, len(s.Projects))
	for i, p := range s.Projects {
		if p.ID == current.ID {
			change(&p)
			p.UpdatedAt = now
		}
		next.Projects[i] = p
	}
	return next
}

// validPayload rejects payloads holding values outside the closed enums.
func validPayload(a Action, v any) error {
	if err := core.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, a.Type, err)
	}
	return nil
}

func decode[T any](a Action) (T, error) {
	var v T
	if len(bytes.TrimSpace(a.Payload)) == 0 {
		return v, fmt.Errorf("%w: %s needs a payload", ErrInvalidPayload, a.Type)
	}
	if err := json.Unmarshal(a.Payload, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, a.Type, err)
	}
	return v, nil
}

// decodeNullable treats a missing or null payload as nil.
func decodeNullable[T any](a Action) (*T, error) {
	raw := bytes.TrimSpace(a.Payload)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	v, err := decode[T](a)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
