package comms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const messageColumns = `id, call_id, customer_id, channel, kind, recipient, subject, body,
	campaign, sequence, dedupe_key, status, scheduled_at, sent_at, last_error, created_at, updated_at`

// PostgresStore persists scheduled communications in Postgres. The dedupe
// key carries a unique constraint, so double-scheduling is rejected by the
// database rather than by application locks.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, m *Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = StatusPending
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO scheduled_communications (`+messageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (dedupe_key) DO NOTHING`,
		m.ID, m.CallID, m.CustomerID, string(m.Channel), string(m.Kind), m.Recipient, m.Subject, m.Body,
		m.Campaign, m.Sequence, m.DedupeKey, string(m.Status), m.ScheduledAt, m.SentAt, m.LastError,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("comms: create message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicate
	}
	return nil
}

func (s *PostgresStore) ListDue(ctx context.Context, asOf time.Time, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+messageColumns+`
		FROM scheduled_communications
		WHERE status = 'pending' AND scheduled_at <= $1
		ORDER BY scheduled_at ASC
		LIMIT $2`, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("comms: list due: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (s *PostgresStore) ListByCall(ctx context.Context, callID string) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+messageColumns+`
		FROM scheduled_communications
		WHERE call_id = $1
		ORDER BY scheduled_at ASC`, callID)
	if err != nil {
		return nil, fmt.Errorf("comms: list by call: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (s *PostgresStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	tag, err := s.db.Exec(ctx, `
		UPDATE scheduled_communications SET status = 'sent', sent_at = $1, updated_at = $1
		WHERE id = $2 AND status = 'pending'`, now, id)
	if err != nil {
		return fmt.Errorf("comms: mark sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *PostgresStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	now := time.Now().UTC()
	tag, err := s.db.Exec(ctx, `
		UPDATE scheduled_communications SET status = 'failed', last_error = $1, updated_at = $2
		WHERE id = $3 AND status = 'pending'`, reason, now, id)
	if err != nil {
		return fmt.Errorf("comms: mark failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func scanMessages(rows pgx.Rows) ([]Message, error) {
	var out []Message
	for rows.Next() {
		var m Message
		var channel, kind, status string
		err := rows.Scan(
			&m.ID, &m.CallID, &m.CustomerID, &channel, &kind, &m.Recipient, &m.Subject, &m.Body,
			&m.Campaign, &m.Sequence, &m.DedupeKey, &status, &m.ScheduledAt, &m.SentAt, &m.LastError,
			&m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("comms: scan message: %w", err)
		}
		m.Channel = Channel(channel)
		m.Kind = Kind(kind)
		m.Status = MessageStatus(status)
		out = append(out, m)
	}
	return out, rows.Err()
}
