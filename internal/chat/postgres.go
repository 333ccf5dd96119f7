package chat

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

type postgresStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

// InitSchema creates the tables and seeds the FAQ knowledge base on first run.
// Idempotent, safe to call on every start.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *postgresStore) CreateConversation(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO conversations DEFAULT VALUES
		RETURNING id
	`).Scan(&id)
	return id, err
}

func (s *postgresStore) AppendMessage(ctx context.Context, conversationID int64, sender Sender, text string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (conversation_id, sender, body)
		VALUES ($1, $2, $3)
		RETURNING id
	`,
		conversationID,
		string(sender),
		text,
	).Scan(&id)
	return id, err
}

func (s *postgresStore) RecentMessages(ctx context.Context, conversationID int64, limit int) ([]Message, error) {
	query := `
		SELECT id, conversation_id, sender, body, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY id ASC
	`
	args := []any{conversationID}

	if limit > 0 {
		// Newest N, then flipped back to chronological order.
		query = `
		SELECT id, conversation_id, sender, body, created_at
		FROM (
			SELECT id, conversation_id, sender, body, created_at
			FROM messages
			WHERE conversation_id = $1
			ORDER BY id DESC
			LIMIT $2
		) latest
		ORDER BY id ASC
	`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var sender string
		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&sender,
			&m.Text,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.Sender = Sender(sender)
		out = append(out, m)
	}

	return out, rows.Err()
}

func (s *postgresStore) ConversationExists(ctx context.Context, conversationID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM conversations WHERE id = $1)
	`, conversationID).Scan(&exists)
	return exists, err
}

func (s *postgresStore) FAQs(ctx context.Context) ([]FAQ, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer
		FROM faqs
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FAQ
	for rows.Next() {
		var f FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer); err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, rows.Err()
}
