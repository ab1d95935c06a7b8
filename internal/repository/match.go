package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/scoring"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("record not found")

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *MatchRepository) Create(ctx context.Context, rec *domain.MatchRecord) error {
	cfg, err := json.Marshal(rec.Config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	state, err := json.Marshal(rec.State)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	first, err := encodeOptional(rec.FirstInnings)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO matches (id, team_a, team_b, total_overs, config, phase, state, first_innings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.TeamA, rec.TeamB, rec.TotalOvers, string(cfg), string(rec.Phase), string(state), first,
		rec.CreatedAt.UnixMilli(), rec.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", rec.ID, err)
	}
	return nil
}

// SaveState overwrites the live snapshot of a match.
func (r *MatchRepository) SaveState(ctx context.Context, id string, phase scoring.Phase, state scoring.State, first *scoring.State) error {
	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	firstEncoded, err := encodeOptional(first)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE matches SET phase = $1, state = $2, first_innings = $3, updated_at = $4
		WHERE id = $5`,
		string(phase), string(encoded), firstEncoded, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MatchRepository) Get(ctx context.Context, id string) (*domain.MatchRecord, error) {
	var (
		rec                  domain.MatchRecord
		cfg, phase, state    string
		first                sql.NullString
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, team_a, team_b, total_overs, config, phase, state, first_innings, created_at, updated_at
		FROM matches WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.TeamA, &rec.TeamB, &rec.TotalOvers, &cfg, &phase, &state, &first, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(cfg), &rec.Config); err != nil {
		return nil, fmt.Errorf("failed to decode config of match %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(state), &rec.State); err != nil {
		return nil, fmt.Errorf("failed to decode state of match %s: %w", id, err)
	}
	if first.Valid {
		var s scoring.State
		if err := json.Unmarshal([]byte(first.String), &s); err != nil {
			return nil, fmt.Errorf("failed to decode first innings of match %s: %w", id, err)
		}
		rec.FirstInnings = &s
	}
	rec.Phase = scoring.Phase(phase)
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	rec.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &rec, nil
}

// List returns the most recently updated matches first.
func (r *MatchRepository) List(ctx context.Context, limit int) ([]domain.MatchSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_a, team_b, total_overs, phase, updated_at
		FROM matches ORDER BY updated_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	out := []domain.MatchSummary{}
	for rows.Next() {
		var (
			m         domain.MatchSummary
			phase     string
			updatedAt int64
		)
		if err := rows.Scan(&m.ID, &m.TeamA, &m.TeamB, &m.TotalOvers, &phase, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.Phase = scoring.Phase(phase)
		m.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

func encodeOptional(s *scoring.State) (any, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode first innings: %w", err)
	}
	return string(b), nil
}
