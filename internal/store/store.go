// Package store holds the application state and applies actions to it one at a time.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Persister keeps a durable copy of the projects and chat history.
type Persister interface {
	SaveSnapshot(ctx context.Context, projects []domain.Project, messages []domain.ChatMessage) error
}

// Store is the single writer of State. Dispatch calls are serialized in arrival order.
type Store struct {
	mu        sync.Mutex
	state     State
	now       func() time.Time
	persister Persister
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithSnapshot seeds the store with previously saved projects and messages.
func WithSnapshot(projects []domain.Project, messages []domain.ChatMessage) Option {
	return func(s *Store) {
		if projects != nil {
			s.state.Projects = projects
		}
		if messages != nil {
			s.state.ChatMessages = messages
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		state: InitialState(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Dispatch applies the action and returns a copy of the resulting state.
// A rejected payload leaves the state untouched. A failed snapshot is reported after the
// in-memory state has already moved on.
func (s *Store) Dispatch(ctx context.Context, a Action) (State, error) {
	return s.DispatchAll(ctx, a)
}

// DispatchAll applies the actions in order as one step: either all of them are applied or,
// on the first rejected payload, none are. At most one snapshot is saved.
func (s *Store) DispatchAll(ctx context.Context, actions ...Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next    = s.state
		now     = s.now().UTC()
		persist bool
		err     error
	)
	for _, a := range actions {
		if next, err = Reduce(next, a, now); err != nil {
			return s.state.clone(), err
		}
		persist = persist || a.Type.changesSnapshot()
	}
	s.state = next

	if s.persister != nil && persist {
		if err := s.persister.SaveSnapshot(ctx, s.state.Projects, s.state.ChatMessages); err != nil {
			customLog.Warnf("Store: Failed to save snapshot: %v", err)
			return s.state.clone(), fmt.Errorf("save snapshot: %w", err)
		}
	}
	return s.state.clone(), nil
}
