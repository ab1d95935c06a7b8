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
)

func (r *MatchRepository) SaveResult(ctx context.Context, matchID string, res scoring.Result) error {
	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO match_results (match_id, winner, outcome, margin, margin_type, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (match_id) DO UPDATE SET
			winner = excluded.winner,
			outcome = excluded.outcome,
			margin = excluded.margin,
			margin_type = excluded.margin_type,
			result = excluded.result`,
		matchID, res.Winner, res.Outcome, res.Margin, string(res.MarginType), string(body), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save result for match %s: %w", matchID, err)
	}
	return nil
}

func (r *MatchRepository) GetResult(ctx context.Context, matchID string) (*domain.ResultRecord, error) {
	var (
		rec        domain.ResultRecord
		marginType string
		body       string
		createdAt  int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT match_id, winner, outcome, margin, margin_type, result, created_at
		FROM match_results WHERE match_id = $1`, matchID,
	).Scan(&rec.MatchID, &rec.Winner, &rec.Outcome, &rec.Margin, &marginType, &body, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result for match %s: %w", matchID, err)
	}

	if err := json.Unmarshal([]byte(body), &rec.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result for match %s: %w", matchID, err)
	}
	rec.MarginType = scoring.MarginType(marginType)
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &rec, nil
}
