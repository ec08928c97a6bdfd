package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/rhinoback/rhinoback/internal/domain"
)

var ErrProjectNotFound = errors.New("project not found")

// SnapshotRepository stores the projects and chat history of the single local session.
// A snapshot replaces the previous one.
type SnapshotRepository struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// SaveSnapshot replaces the stored projects and messages in one transaction.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, projects []domain.Project, messages []domain.ChatMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"projects", "chat_messages"} {
		query, args, err := r.qb.Delete(table).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if len(projects) > 0 {
		insert := r.qb.Insert("projects").Columns("id", "position", "name", "status", "data", "created_at", "updated_at")
		for i, p := range projects {
			data, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("encode project %s: %w", p.ID, err)
			}
			insert = insert.Values(p.ID, i, p.Name, string(p.Status), string(data), p.CreatedAt, p.UpdatedAt)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			customLog.Warnf("Storage: Failed to insert %d projects: %v", len(projects), err)
			return fmt.Errorf("database error saving projects: %w", err)
		}
	}

	if len(messages) > 0 {
		insert := r.qb.Insert("chat_messages").Columns("message_id", "type", "content", "metadata", "sent_at")
		for _, m := range messages {
			var metadata any
			if m.Metadata != nil {
				raw, err := json.Marshal(m.Metadata)
				if err != nil {
					return fmt.Errorf("encode message %s metadata: %w", m.ID, err)
				}
				metadata = string(raw)
			}
			insert = insert.Values(m.ID, string(m.Type), m.Content, metadata, m.Timestamp)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			customLog.Warnf("Storage: Failed to insert %d chat messages: %v", len(messages), err)
			return fmt.Errorf("database error saving chat messages: %w", err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot returns the stored projects and messages in their original order.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) ([]domain.Project, []domain.ChatMessage, error) {
	projects, err := r.ListProjects(ctx)
	if err != nil {
		return nil, nil, err
	}
	messages, err := r.ListChatMessages(ctx)
	if err != nil {
		return nil, nil, err
	}
	return projects, messages, nil
}

func (r *SnapshotRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	query, args, err := r.qb.Select("data").From("projects").OrderBy("position").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("database error listing projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// FindProject retrieves one stored project by id.
func (r *SnapshotRepository) FindProject(ctx context.Context, id string) (domain.Project, error) {
	query, args, err := r.qb.Select("data").From("projects").Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return domain.Project{}, err
	}
	p, err := scanProject(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, ErrProjectNotFound
	}
	return p, err
}

func (r *SnapshotRepository) ListChatMessages(ctx context.Context) ([]domain.ChatMessage, error) {
	query, args, err := r.qb.Select("message_id", "type", "content", "metadata", "sent_at").
		From("chat_messages").OrderBy("seq").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("database error listing chat messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var (
			m        domain.ChatMessage
			metadata sql.NullString
			sentAt   time.Time
		)
		if err := rows.Scan(&m.ID, &m.Type, &m.Content, &metadata, &sentAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		m.Timestamp = sentAt.UTC()
		if metadata.Valid {
			m.Metadata = &domain.MessageMetadata{}
			if err := json.Unmarshal([]byte(metadata.String), m.Metadata); err != nil {
				return nil, fmt.Errorf("decode message %s metadata: %w", m.ID, err)
			}
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (domain.Project, error) {
	var (
		p    domain.Project
		data string
	)
	if err := row.Scan(&data); err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return p, fmt.Errorf("decode project: %w", err)
	}
	return p, nil
}
