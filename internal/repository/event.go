package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cricket-scorer/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// AppendEvent adds one operation to the match's audit log with the next sequence number.
func (r *MatchRepository) AppendEvent(ctx context.Context, matchID, kind string, payload any) (*domain.EventRecord, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event payload: %w", err)
	}
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM match_events WHERE match_id = $1`, matchID,
	).Scan(&seq); err != nil {
		return nil, fmt.Errorf("failed to read event sequence: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO match_events (id, match_id, seq, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, matchID, seq, kind, string(body), now.UnixMilli(),
	); err != nil {
		return nil, fmt.Errorf("failed to insert event for match %s: %w", matchID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event: %w", err)
	}

	return &domain.EventRecord{
		ID:        id,
		MatchID:   matchID,
		Seq:       seq,
		Kind:      kind,
		Payload:   body,
		CreatedAt: time.UnixMilli(now.UnixMilli()).UTC(),
	}, nil
}

// Events returns the audit log of a match in sequence order.
func (r *MatchRepository) Events(ctx context.Context, matchID string) ([]domain.EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, match_id, seq, kind, payload, created_at
		FROM match_events WHERE match_id = $1 ORDER BY seq`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	out := []domain.EventRecord{}
	for rows.Next() {
		var (
			e         domain.EventRecord
			payload   string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Seq, &e.Kind, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Payload = json.RawMessage(payload)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
