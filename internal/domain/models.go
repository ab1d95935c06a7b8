package domain

import (
	"encoding/json"
	"time"

	"cricket-scorer/internal/scoring"
)

// Operation kinds recorded in the event log next to the scoring event types.
const (
	OpUndo               = "UNDO"
	OpStartSecondInnings = "START_SECOND_INNINGS"
)

type MatchRecord struct {
	ID           string         `json:"id"`
	TeamA        string         `json:"teamA"`
	TeamB        string         `json:"teamB"`
	TotalOvers   int            `json:"totalOvers"`
	Config       scoring.Config `json:"config"`
	Phase        scoring.Phase  `json:"phase"`
	State        scoring.State  `json:"state"`
	FirstInnings *scoring.State `json:"firstInnings,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// MatchSummary is the list view of a match.
type MatchSummary struct {
	ID         string        `json:"id"`
	TeamA      string        `json:"teamA"`
	TeamB      string        `json:"teamB"`
	TotalOvers int           `json:"totalOvers"`
	Phase      scoring.Phase `json:"phase"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type EventRecord struct {
	ID        string          `json:"id"` // nanoid
	MatchID   string          `json:"matchId"`
	Seq       int             `json:"seq"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ResultRecord struct {
	MatchID    string             `json:"matchId"`
	Winner     string             `json:"winner,omitempty"`
	Outcome    string             `json:"outcome"`
	Margin     int                `json:"margin"`
	MarginType scoring.MarginType `json:"marginType"`
	Result     scoring.Result     `json:"result"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// MatchView is what callers see after every operation.
type MatchView struct {
	ID           string          `json:"id"`
	Phase        scoring.Phase   `json:"phase"`
	Config       scoring.Config  `json:"config"`
	State        scoring.State   `json:"state"`
	FirstInnings *scoring.State  `json:"firstInnings,omitempty"`
	Result       *scoring.Result `json:"result,omitempty"`
	CanUndo      bool            `json:"canUndo"`
}

// MatchScorecard holds one scorecard per innings played so far.
type MatchScorecard struct {
	ID      string              `json:"id"`
	Phase   scoring.Phase       `json:"phase"`
	Innings []scoring.Scorecard `json:"innings"`
	Result  string              `json:"result,omitempty"`
}
