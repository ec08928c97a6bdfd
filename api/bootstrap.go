// api/bootstrap.go
package api

import (
	"context"
	"fmt"

	"github.com/rhinoback/rhinoback/config"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/logger"
	"github.com/rhinoback/rhinoback/internal/storage"
	"github.com/rhinoback/rhinoback/internal/store"
)

var (
	customLog = logger.NewLogger()
)

// Bootstrap builds the router dependencies from cfg. When state persistence is on, the store is
// restored from the state database and saves back to it. The returned close func releases the db.
func Bootstrap(ctx context.Context, cfg *config.Config) (Dependencies, func(), error) {
	deps := Dependencies{
		Config: cfg,
		Client: llm.NewGroqClient(cfg),
	}

	if !cfg.PersistState {
		deps.Store = store.New()
		return deps, func() {}, nil
	}

	db, err := storage.ConnectStateDB(cfg)
	if err != nil {
		return Dependencies{}, nil, fmt.Errorf("connect state db: %w", err)
	}
	repo := storage.NewSnapshotRepository(db)

	projects, messages, err := repo.LoadSnapshot(ctx)
	if err != nil {
		db.Close()
		return Dependencies{}, nil, fmt.Errorf("load snapshot: %w", err)
	}
	customLog.Printf("Restored %d projects and %d chat messages", len(projects), len(messages))

	deps.Store = store.New(store.WithSnapshot(projects, messages), store.WithPersister(repo))
	closeDB := func() {
		customLog.Println("Closing state database connection...")
		if err := db.Close(); err != nil {
			customLog.Printf("Error closing state database: %v", err)
		}
	}
	return deps, closeDB, nil
}
