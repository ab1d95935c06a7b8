package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/scoring"

	"github.com/rs/zerolog"
)

func testResult() scoring.Result {
	return scoring.Result{
		State:        scoring.State{BattingTeamName: "Tigers", Score: 48, Wickets: 3, Overs: 5, Balls: 2},
		FirstInnings: scoring.State{BattingTeamName: "Lions", Score: 50, Wickets: 7, Overs: 6},
		Outcome:      "Lions won by 1 run",
		Winner:       "Lions",
		Margin:       1,
		MarginType:   scoring.MarginRuns,
		TotalOvers:   6,
	}
}

func TestPublish(t *testing.T) {
	var (
		got  ResultMessage
		auth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewResultPublisher(&config.Config{ResultWebhookURL: srv.URL, ResultWebhookToken: "secret"}, zerolog.Nop())
	if err := p.Publish(context.Background(), "m1", testResult()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if auth != "Bearer secret" {
		t.Fatalf("authorization = %q", auth)
	}
	if got.MatchID != "m1" || got.Outcome != "Lions won by 1 run" || got.Margin != 1 {
		t.Fatalf("message = %+v", got)
	}
	if got.FirstScore != "Lions 50/7 (6.0)" || got.FinalScore != "Tigers 48/3 (5.2)" {
		t.Fatalf("score lines = %q / %q", got.FirstScore, got.FinalScore)
	}
}

func TestPublishRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewResultPublisher(&config.Config{ResultWebhookURL: srv.URL}, zerolog.Nop())
	if err := p.Publish(context.Background(), "m1", testResult()); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}

func TestPublishDisabled(t *testing.T) {
	p := NewResultPublisher(&config.Config{}, zerolog.Nop())
	if p.Enabled() {
		t.Fatalf("publisher enabled without a url")
	}
	if err := p.Publish(context.Background(), "m1", testResult()); err != nil {
		t.Fatalf("publish: %v", err)
	}
}
