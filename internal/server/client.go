package server

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// ScoringServiceClient calls the scoring procedures over connect with the JSON codec.
type ScoringServiceClient struct {
	createMatch        *connect.Client[CreateMatchRequest, MatchResponse]
	applyEvent         *connect.Client[ApplyEventRequest, MatchResponse]
	undo               *connect.Client[MatchRequest, MatchResponse]
	startSecondInnings *connect.Client[MatchRequest, MatchResponse]
	getMatch           *connect.Client[MatchRequest, MatchResponse]
	getResult          *connect.Client[MatchRequest, ResultResponse]
	listMatches        *connect.Client[ListMatchesRequest, ListMatchesResponse]
}

func NewScoringServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ScoringServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &ScoringServiceClient{
		createMatch:        connect.NewClient[CreateMatchRequest, MatchResponse](httpClient, baseURL+CreateMatchProcedure, opts...),
		applyEvent:         connect.NewClient[ApplyEventRequest, MatchResponse](httpClient, baseURL+ApplyEventProcedure, opts...),
		undo:               connect.NewClient[MatchRequest, MatchResponse](httpClient, baseURL+UndoProcedure, opts...),
		startSecondInnings: connect.NewClient[MatchRequest, MatchResponse](httpClient, baseURL+StartSecondInningsProcedure, opts...),
		getMatch:           connect.NewClient[MatchRequest, MatchResponse](httpClient, baseURL+GetMatchProcedure, opts...),
		getResult:          connect.NewClient[MatchRequest, ResultResponse](httpClient, baseURL+GetResultProcedure, opts...),
		listMatches:        connect.NewClient[ListMatchesRequest, ListMatchesResponse](httpClient, baseURL+ListMatchesProcedure, opts...),
	}
}

func (c *ScoringServiceClient) CreateMatch(ctx context.Context, req *connect.Request[CreateMatchRequest]) (*connect.Response[MatchResponse], error) {
	return c.createMatch.CallUnary(ctx, req)
}

func (c *ScoringServiceClient) ApplyEvent(ctx context.Context, req *connect.Request[ApplyEventRequest]) (*connect.Response[MatchResponse], error) {
	return c.applyEvent.CallUnary(ctx, req)
}

func (c *ScoringServiceClient) Undo(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[MatchResponse], error) {
	return c.undo.CallUnary(ctx, req)
}

func (c *ScoringServiceClient) StartSecondInnings(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[MatchResponse], error) {
	return c.startSecondInnings.CallUnary(ctx, req)
}

func (c *ScoringServiceClient) GetMatch(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[MatchResponse], error) {
	return c.getMatch.CallUnary(ctx, req)
}

func (c *ScoringServiceClient) GetResult(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[ResultResponse], error) {
	return c.getResult.CallUnary(ctx, req)
}

func (c *ScoringServiceClient) ListMatches(ctx context.Context, req *connect.Request[ListMatchesRequest]) (*connect.Response[ListMatchesResponse], error) {
	return c.listMatches.CallUnary(ctx, req)
}
