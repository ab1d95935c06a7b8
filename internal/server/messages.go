package server

import (
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/scoring"
)

type CreateMatchRequest struct {
	Config scoring.Config `json:"config"`
}

type ApplyEventRequest struct {
	MatchID string        `json:"matchId"`
	Event   scoring.Event `json:"event"`
}

type MatchRequest struct {
	MatchID string `json:"matchId"`
}

type MatchResponse struct {
	Match domain.MatchView `json:"match"`
}

type ResultResponse struct {
	MatchID string         `json:"matchId"`
	Result  scoring.Result `json:"result"`
}

type ListMatchesRequest struct {
	Limit int `json:"limit"`
}

type ListMatchesResponse struct {
	Matches []domain.MatchSummary `json:"matches"`
}
