package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/scoring"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// ResultMessage is the body posted to the result webhook.
type ResultMessage struct {
	MatchID    string             `json:"matchId"`
	Outcome    string             `json:"result"`
	Winner     string             `json:"winner,omitempty"`
	Margin     int                `json:"margin"`
	MarginType scoring.MarginType `json:"marginType"`
	TotalOvers int                `json:"totalOvers"`
	FirstScore string             `json:"firstInnings"`
	FinalScore string             `json:"secondInnings"`
	Result     scoring.Result     `json:"detail"`
}

// ResultPublisher hands finished match results to an external consumer.
type ResultPublisher struct {
	url    string
	token  string
	client *fasthttp.Client
	logger zerolog.Logger
}

func NewResultPublisher(cfg *config.Config, logger zerolog.Logger) *ResultPublisher {
	return &ResultPublisher{
		url:   cfg.ResultWebhookURL,
		token: cfg.ResultWebhookToken,
		client: &fasthttp.Client{
			MaxConnsPerHost:     constants.WebhookMaxConnsPerHost,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: constants.WebhookIdleConnTimeout,
		},
		logger: logger,
	}
}

func (p *ResultPublisher) Enabled() bool {
	return p.url != ""
}

// Publish posts the result. It does nothing when no webhook is configured.
func (p *ResultPublisher) Publish(ctx context.Context, matchID string, res scoring.Result) error {
	if !p.Enabled() {
		return nil
	}

	msg := ResultMessage{
		MatchID:    matchID,
		Outcome:    res.Outcome,
		Winner:     res.Winner,
		Margin:     res.Margin,
		MarginType: res.MarginType,
		TotalOvers: res.TotalOvers,
		FirstScore: scoreLine(res.FirstInnings),
		FinalScore: scoreLine(res.State),
		Result:     res,
	}
	if err := doPost(ctx, p, msg); err != nil {
		return fmt.Errorf("failed to publish result for match %s: %w", matchID, err)
	}

	p.logger.Info().Str("match_id", matchID).Str("result", res.Outcome).Msg("result published")
	return nil
}

func scoreLine(s scoring.State) string {
	return fmt.Sprintf("%s %d/%d (%s)", s.BattingTeamName, s.Score, s.Wickets, scoring.OverNotation(s.Overs, s.Balls))
}

func doPost[T any](ctx context.Context, p *ResultPublisher, body T) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(payload)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		return err
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("webhook error: %d", code)
	}
	return nil
}
